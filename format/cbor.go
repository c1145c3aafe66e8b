package format

import (
	"fmt"
	"io"

	"github.com/dhamidi/jvmapi/api"
	"github.com/fxamacker/cbor/v2"
)

var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("format: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

// CBOREncoder writes a CBOR sequence: one canonical data item per type.
type CBOREncoder struct {
	w   io.Writer
	typ *api.Type
}

func NewCBOREncoder(w io.Writer) *CBOREncoder {
	return &CBOREncoder{w: w}
}

func (e *CBOREncoder) Encode(t *api.Type) error {
	e.typ = t
	data, err := e.MarshalBinary()
	if err != nil {
		return err
	}
	_, err = e.w.Write(data)
	return err
}

func (e *CBOREncoder) MarshalBinary() ([]byte, error) {
	data, err := buildTypeData(e.typ)
	if err != nil {
		return nil, err
	}
	out, err := cborEncMode.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("format: marshal %s: %w", e.typ.SourceName(), err)
	}
	return out, nil
}
