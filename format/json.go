package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/jvmapi/api"
)

type JSONEncoder struct {
	w   io.Writer
	typ *api.Type
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

// Encode writes one indented JSON document per type, followed by a newline.
func (e *JSONEncoder) Encode(t *api.Type) error {
	e.typ = t
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(append(text, '\n'))
	return err
}

func (e *JSONEncoder) MarshalText() ([]byte, error) {
	data, err := buildTypeData(e.typ)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(data, "", "  ")
}
