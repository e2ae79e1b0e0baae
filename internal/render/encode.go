package render

import (
	"io"

	jsoniter "github.com/json-iterator/go"
	"gopkg.in/yaml.v3"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type JSONRenderer struct{}

func (r *JSONRenderer) Report(w io.Writer, report *Report) error {
	return r.encode(w, report)
}

func (r *JSONRenderer) History(w io.Writer, reports []*Report) error {
	return r.encode(w, reports)
}

func (r *JSONRenderer) encode(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

type YAMLRenderer struct{}

func (r *YAMLRenderer) Report(w io.Writer, report *Report) error {
	return r.encode(w, report)
}

func (r *YAMLRenderer) History(w io.Writer, reports []*Report) error {
	return r.encode(w, reports)
}

func (r *YAMLRenderer) encode(w io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); nil != err {
		return err
	}
	return enc.Close()
}
