package util

import (
	"encoding/json"
	"io"
	"os"

	"github.com/pkg/errors"
	yaml "gopkg.in/yaml.v2"
)

type OutputFormat string

const (
	OutputJSON OutputFormat = "json"
	OutputYAML OutputFormat = "yaml"
)

func (f OutputFormat) Validate() error {
	switch f {
	case OutputJSON, OutputYAML:
		return nil
	default:
		return errors.Errorf("'%s' is not a valid output format", f)
	}
}

func (f OutputFormat) Marshal(data interface{}) ([]byte, error) {
	switch f {
	case OutputJSON:
		out, err := json.MarshalIndent(data, "", "   ")
		return out, errors.Wrap(err, "problem writing json data")
	case OutputYAML:
		out, err := yaml.Marshal(data)
		return out, errors.Wrap(err, "problem writing yaml data")
	default:
		return nil, errors.WithStack(f.Validate())
	}
}

// WriteOutput renders data in the given format to fn, or to standard output
// when fn is empty.
func WriteOutput(fn string, format OutputFormat, data interface{}) error {
	out, err := format.Marshal(data)
	if err != nil {
		return errors.WithStack(err)
	}

	if fn == "" {
		return errors.WithStack(writeBytes(os.Stdout, out))
	}

	f, err := os.Create(fn)
	if err != nil {
		return errors.WithStack(err)
	}
	defer f.Close()

	if err = writeBytes(f, out); err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(f.Sync())
}

func writeBytes(w io.Writer, data []byte) error {
	if _, err := w.Write(data); err != nil {
		return errors.WithStack(err)
	}

	if len(data) > 0 && data[len(data)-1] == '\n' {
		return nil
	}

	_, err := io.WriteString(w, "\n")
	return errors.WithStack(err)
}
