package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/jvmapi/api"
)

// LineEncoder writes one tab separated record per type, type parameter and
// function:
//
//	interface	com.example.Finder	public,sam
//	typeparam	T	kotlin.Any
//	function	find	key: kotlin.String, fallback: kotlin.String?	kotlin.Any?	public
type LineEncoder struct {
	w   io.Writer
	typ *api.Type
}

func NewLineEncoder(w io.Writer) *LineEncoder {
	return &LineEncoder{w: w}
}

func (e *LineEncoder) Encode(t *api.Type) error {
	e.typ = t
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *LineEncoder) MarshalText() ([]byte, error) {
	data, err := buildTypeData(e.typ)
	if err != nil {
		return nil, err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s\t%s\t%s\n", data.Kind, data.Name, typeModifiersStr(data))

	for _, tp := range data.TypeParameters {
		fmt.Fprintf(&sb, "typeparam\t%s\t%s\n", tp.Name, usagesStr(tp.Bounds, " & "))
	}

	for _, fn := range data.Functions {
		fmt.Fprintf(&sb, "function\t%s\t%s\t%s\t%s\n",
			functionNameStr(fn),
			parametersStr(fn.Parameters),
			usageStr(fn.ReturnType),
			functionModifiersStr(fn),
		)
	}

	return []byte(sb.String()), nil
}

func typeModifiersStr(data typeData) string {
	var mods []string
	if data.Public {
		mods = append(mods, "public")
	}
	if data.Deprecated {
		mods = append(mods, "deprecated")
	}
	if data.Incubating {
		mods = append(mods, "incubating")
	}
	if data.SAM {
		mods = append(mods, "sam")
	}
	if len(mods) == 0 {
		return "-"
	}
	return strings.Join(mods, ",")
}

func functionModifiersStr(fn functionData) string {
	var mods []string
	if fn.Public {
		mods = append(mods, "public")
	}
	if fn.Static {
		mods = append(mods, "static")
	}
	if fn.Constructor {
		mods = append(mods, "constructor")
	}
	if fn.Deprecated {
		mods = append(mods, "deprecated")
	}
	if fn.Incubating {
		mods = append(mods, "incubating")
	}
	if len(mods) == 0 {
		return "-"
	}
	return strings.Join(mods, ",")
}

func functionNameStr(fn functionData) string {
	if len(fn.TypeParameters) == 0 {
		return fn.Name
	}
	params := make([]string, len(fn.TypeParameters))
	for i, tp := range fn.TypeParameters {
		params[i] = tp.Name
		if len(tp.Bounds) > 0 {
			params[i] += " : " + usagesStr(tp.Bounds, " & ")
		}
	}
	return "<" + strings.Join(params, ", ") + "> " + fn.Name
}

func parametersStr(params []parameterData) string {
	if len(params) == 0 {
		return "-"
	}
	parts := make([]string, len(params))
	for i, p := range params {
		var sb strings.Builder
		if p.Varargs {
			sb.WriteString("vararg ")
		}
		if p.Name != "" {
			sb.WriteString(p.Name)
			sb.WriteString(": ")
		}
		sb.WriteString(usageStr(p.Type))
		parts[i] = sb.String()
	}
	return strings.Join(parts, ", ")
}

func usagesStr(usages []usageData, sep string) string {
	if len(usages) == 0 {
		return "-"
	}
	parts := make([]string, len(usages))
	for i, u := range usages {
		parts[i] = usageStr(u)
	}
	return strings.Join(parts, sep)
}

func usageStr(u usageData) string {
	var sb strings.Builder
	if u.Variance != "" {
		sb.WriteString(u.Variance)
		sb.WriteByte(' ')
	}
	sb.WriteString(u.Name)
	if len(u.Arguments) > 0 {
		sb.WriteByte('<')
		sb.WriteString(usagesStr(u.Arguments, ", "))
		sb.WriteByte('>')
	}
	if u.Nullable {
		sb.WriteByte('?')
	}
	return sb.String()
}
