// Package signature parses the generic signature strings stored in class
// file Signature attributes (JVMS 4.7.9.1) into a small syntax tree.
//
// Every production of the grammar is one concrete type implementing
// TypeSignature; consumers switch over them exhaustively.
package signature

import (
	"strings"
)

// TypeSignature is one of *BaseType, *ClassType, *ArrayType or
// *TypeVariable.
type TypeSignature interface {
	typeSignature()
	String() string
}

// BaseType is a primitive, or void when used as a method result.
type BaseType struct {
	Descriptor byte
}

var baseTypeNames = map[byte]string{
	'B': "byte",
	'C': "char",
	'D': "double",
	'F': "float",
	'I': "int",
	'J': "long",
	'S': "short",
	'Z': "boolean",
	'V': "void",
}

func (b *BaseType) Name() string   { return baseTypeNames[b.Descriptor] }
func (b *BaseType) String() string { return b.Name() }
func (*BaseType) typeSignature()   {}

// ClassType is a possibly nested class reference. Segments run from the
// outermost class to the innermost; each may carry its own type arguments.
type ClassType struct {
	Package  string
	Segments []ClassSegment
}

type ClassSegment struct {
	Name      string
	Arguments []TypeArgument
}

// BinaryName joins package and segments the way Class.getName does:
// "java.util.Map$Entry".
func (c *ClassType) BinaryName() string {
	var sb strings.Builder
	if c.Package != "" {
		sb.WriteString(strings.ReplaceAll(c.Package, "/", "."))
		sb.WriteByte('.')
	}
	for i, seg := range c.Segments {
		if i > 0 {
			sb.WriteByte('$')
		}
		sb.WriteString(seg.Name)
	}
	return sb.String()
}

// Arguments flattens the type arguments of every segment, outermost first.
func (c *ClassType) Arguments() []TypeArgument {
	var args []TypeArgument
	for _, seg := range c.Segments {
		args = append(args, seg.Arguments...)
	}
	return args
}

func (c *ClassType) String() string {
	var sb strings.Builder
	if c.Package != "" {
		sb.WriteString(strings.ReplaceAll(c.Package, "/", "."))
		sb.WriteByte('.')
	}
	for i, seg := range c.Segments {
		if i > 0 {
			sb.WriteByte('.')
		}
		sb.WriteString(seg.Name)
		writeArguments(&sb, seg.Arguments)
	}
	return sb.String()
}

func (*ClassType) typeSignature() {}

type ArrayType struct {
	Element TypeSignature
}

func (a *ArrayType) String() string { return a.Element.String() + "[]" }
func (*ArrayType) typeSignature()   {}

type TypeVariable struct {
	Name string
}

func (v *TypeVariable) String() string { return v.Name }
func (*TypeVariable) typeSignature()   {}

type Wildcard int

const (
	// WildcardNone is an exact type argument: List<String>.
	WildcardNone Wildcard = iota
	// WildcardExtends is '+': List<? extends Number>.
	WildcardExtends
	// WildcardSuper is '-': List<? super Integer>.
	WildcardSuper
	// WildcardUnbounded is '*': List<?>. Type is nil.
	WildcardUnbounded
)

type TypeArgument struct {
	Wildcard Wildcard
	Type     TypeSignature
}

func (a TypeArgument) String() string {
	switch a.Wildcard {
	case WildcardExtends:
		return "? extends " + a.Type.String()
	case WildcardSuper:
		return "? super " + a.Type.String()
	case WildcardUnbounded:
		return "?"
	}
	return a.Type.String()
}

// TypeParameter is a formal type parameter. ClassBound is nil when the
// parameter only has interface bounds (<T::Ljava/lang/Comparable<TT;>;>).
type TypeParameter struct {
	Name            string
	ClassBound      TypeSignature
	InterfaceBounds []TypeSignature
}

// Bounds lists the class bound, if any, followed by the interface bounds.
func (p TypeParameter) Bounds() []TypeSignature {
	var bounds []TypeSignature
	if p.ClassBound != nil {
		bounds = append(bounds, p.ClassBound)
	}
	return append(bounds, p.InterfaceBounds...)
}

func (p TypeParameter) String() string {
	bounds := p.Bounds()
	if len(bounds) == 0 {
		return p.Name
	}
	parts := make([]string, len(bounds))
	for i, b := range bounds {
		parts[i] = b.String()
	}
	return p.Name + " extends " + strings.Join(parts, " & ")
}

type ClassSignature struct {
	TypeParameters []TypeParameter
	SuperClass     *ClassType
	Interfaces     []*ClassType
}

type MethodSignature struct {
	TypeParameters []TypeParameter
	Parameters     []TypeSignature
	// Result is a *BaseType with Descriptor 'V' for void methods.
	Result TypeSignature
	Throws []TypeSignature
}

func (m *MethodSignature) IsVoid() bool {
	b, ok := m.Result.(*BaseType)
	return ok && b.Descriptor == 'V'
}

func writeArguments(sb *strings.Builder, args []TypeArgument) {
	if len(args) == 0 {
		return
	}
	sb.WriteByte('<')
	for i, arg := range args {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(arg.String())
	}
	sb.WriteByte('>')
}
