package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"

	"git.lost.host/meutraa/osuacc/internal/config"
)

func main() {
	log.SetFlags(0)
	if err := run(); nil != err {
		log.Fatalln(err)
	}
}

func run() error {
	c, err := config.Parse(os.Args[1:])
	if nil != err {
		return fmt.Errorf("unable to parse arguments: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	p, err := NewProgram(c, os.Stdout)
	if nil != err {
		return err
	}
	defer func() {
		if err := p.Close(); nil != err {
			log.Println("unable to close:", err)
		}
	}()

	return p.Run(ctx)
}
