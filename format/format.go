// Package format renders api types for the command line. Every encoder
// forces the lazy parts of a type it touches.
package format

import (
	"github.com/dhamidi/jvmapi/api"
)

type Encoder interface {
	Encode(t *api.Type) error
}

// typeData is the plain form of a type shared by the JSON and CBOR
// encoders. cbor falls back to the json tags.
type typeData struct {
	Name           string         `json:"name"`
	Kind           string         `json:"kind"`
	Public         bool           `json:"public"`
	Deprecated     bool           `json:"deprecated,omitempty"`
	Incubating     bool           `json:"incubating,omitempty"`
	SAM            bool           `json:"sam,omitempty"`
	TypeParameters []usageData    `json:"typeParameters,omitempty"`
	Functions      []functionData `json:"functions,omitempty"`
}

type functionData struct {
	Name           string          `json:"name"`
	Public         bool            `json:"public"`
	Static         bool            `json:"static,omitempty"`
	Constructor    bool            `json:"constructor,omitempty"`
	Deprecated     bool            `json:"deprecated,omitempty"`
	Incubating     bool            `json:"incubating,omitempty"`
	TypeParameters []usageData     `json:"typeParameters,omitempty"`
	Parameters     []parameterData `json:"parameters,omitempty"`
	ReturnType     usageData       `json:"returnType"`
}

type parameterData struct {
	Name    string    `json:"name,omitempty"`
	Varargs bool      `json:"varargs,omitempty"`
	Type    usageData `json:"type"`
}

type usageData struct {
	Name      string      `json:"name"`
	Nullable  bool        `json:"nullable,omitempty"`
	Variance  string      `json:"variance,omitempty"`
	Raw       bool        `json:"raw,omitempty"`
	Arguments []usageData `json:"arguments,omitempty"`
	Bounds    []usageData `json:"bounds,omitempty"`
}

func buildTypeData(t *api.Type) (typeData, error) {
	data := typeData{Name: t.SourceName()}
	var err error
	if data.Kind, err = typeKind(t); err != nil {
		return data, err
	}
	if data.Public, err = t.IsPublic(); err != nil {
		return data, err
	}
	if data.Deprecated, err = t.IsDeprecated(); err != nil {
		return data, err
	}
	if data.Incubating, err = t.IsIncubating(); err != nil {
		return data, err
	}
	if data.SAM, err = t.IsSAM(); err != nil {
		return data, err
	}

	params, err := t.TypeParameters()
	if err != nil {
		return data, err
	}
	if data.TypeParameters, err = buildUsages(params); err != nil {
		return data, err
	}

	fns, err := t.Functions()
	if err != nil {
		return data, err
	}
	for _, fn := range fns {
		fd, err := buildFunctionData(fn)
		if err != nil {
			return data, err
		}
		data.Functions = append(data.Functions, fd)
	}
	return data, nil
}

func buildFunctionData(fn *api.Function) (functionData, error) {
	data := functionData{
		Name:        fn.Name(),
		Public:      fn.IsPublic(),
		Static:      fn.IsStatic(),
		Constructor: fn.IsConstructor(),
	}
	var err error
	if data.Deprecated, err = fn.IsDeprecated(); err != nil {
		return data, err
	}
	if data.Incubating, err = fn.IsIncubating(); err != nil {
		return data, err
	}

	typeParams, err := fn.TypeParameters()
	if err != nil {
		return data, err
	}
	if data.TypeParameters, err = buildUsages(typeParams); err != nil {
		return data, err
	}

	params, err := fn.Parameters()
	if err != nil {
		return data, err
	}
	for _, p := range params {
		name, err := p.Name()
		if err != nil {
			return data, err
		}
		usage, err := buildUsage(p.Type())
		if err != nil {
			return data, err
		}
		data.Parameters = append(data.Parameters, parameterData{Name: name, Varargs: p.IsVarargs(), Type: usage})
	}

	ret, err := fn.ReturnType()
	if err != nil {
		return data, err
	}
	data.ReturnType, err = buildUsage(ret)
	return data, err
}

func buildUsage(u *api.TypeUsage) (usageData, error) {
	data := usageData{
		Name:     u.SourceName(),
		Nullable: u.IsNullable(),
	}
	if u.Variance() != api.Invariant {
		data.Variance = u.Variance().String()
	}
	if u.IsStar() {
		return data, nil
	}

	var err error
	if len(u.Bounds()) > 0 {
		data.Bounds, err = buildUsages(u.Bounds())
		return data, err
	}
	if data.Raw, err = u.IsRaw(); err != nil {
		return data, err
	}
	data.Arguments, err = buildUsages(u.TypeArguments())
	return data, err
}

func buildUsages(usages []*api.TypeUsage) ([]usageData, error) {
	if len(usages) == 0 {
		return nil, nil
	}
	result := make([]usageData, len(usages))
	for i, u := range usages {
		var err error
		if result[i], err = buildUsage(u); err != nil {
			return nil, err
		}
	}
	return result, nil
}

func typeKind(t *api.Type) (string, error) {
	node, err := t.Node()
	if err != nil {
		return "", err
	}
	switch {
	case node.IsAnnotation():
		return "annotation", nil
	case node.IsEnum():
		return "enum", nil
	case node.IsInterface():
		return "interface", nil
	default:
		return "class", nil
	}
}
