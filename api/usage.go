package api

import (
	"github.com/dhamidi/jvmapi/classfile"
	"github.com/dhamidi/jvmapi/signature"
)

type Variance int

const (
	Invariant Variance = iota
	Covariant
	Contravariant
)

func (v Variance) String() string {
	switch v {
	case Covariant:
		return "out"
	case Contravariant:
		return "in"
	}
	return "invariant"
}

// TypeUsage is a reference to a type at a use site: a return type, a
// parameter type, a type argument, or a formal type parameter with its
// bounds.
type TypeUsage struct {
	provider   *Provider
	sourceName string
	nullable   bool
	variance   Variance
	arguments  []*TypeUsage
	bounds     []*TypeUsage

	// resolvable is false for primitives, arrays and type variables, which
	// never name a class in the repository.
	resolvable bool
	resolved   lazy[*Type]
	raw        lazy[bool]
}

// StarUsage stands for every unbounded wildcard. Compare with ==.
var StarUsage = &TypeUsage{sourceName: starName}

func (u *TypeUsage) SourceName() string          { return u.sourceName }
func (u *TypeUsage) IsNullable() bool            { return u.nullable }
func (u *TypeUsage) Variance() Variance          { return u.variance }
func (u *TypeUsage) TypeArguments() []*TypeUsage { return u.arguments }

// Bounds is only populated for formal type parameters.
func (u *TypeUsage) Bounds() []*TypeUsage { return u.bounds }

func (u *TypeUsage) IsStar() bool {
	return u == StarUsage
}

// Type resolves the usage against the provider. It returns nil, without an
// error, when the name is not a known type.
func (u *TypeUsage) Type() (*Type, error) {
	if !u.resolvable {
		return nil, nil
	}
	return u.resolved.get(func() (*Type, error) {
		return u.provider.Type(u.sourceName)
	})
}

// IsRaw reports whether the usage carries no type arguments and names a
// type that is either unresolved or declares no type parameters itself.
func (u *TypeUsage) IsRaw() (bool, error) {
	if u == StarUsage {
		return true, nil
	}
	return u.raw.get(func() (bool, error) {
		if len(u.arguments) > 0 {
			return false, nil
		}
		t, err := u.Type()
		if err != nil {
			return false, err
		}
		if t == nil {
			return true, nil
		}
		generic, err := t.hasTypeParameters()
		if err != nil {
			return false, err
		}
		return !generic, nil
	})
}

func (u *TypeUsage) String() string {
	s := u.sourceName
	switch u.variance {
	case Covariant:
		s = "out " + s
	case Contravariant:
		s = "in " + s
	}
	if len(u.arguments) > 0 {
		s += "<"
		for i, arg := range u.arguments {
			if i > 0 {
				s += ", "
			}
			s += arg.String()
		}
		s += ">"
	}
	if u.nullable {
		s += "?"
	}
	return s
}

func (p *Provider) usageFor(binaryName string, nullable bool, variance Variance, arguments []*TypeUsage, resolvable bool) *TypeUsage {
	if binaryName == "?" {
		return StarUsage
	}
	return &TypeUsage{
		provider:   p,
		sourceName: SourceNameOfBinaryName(binaryName),
		nullable:   nullable,
		variance:   variance,
		arguments:  arguments,
		resolvable: resolvable,
	}
}

// signatureUsage converts one node of a parsed generic signature.
func (p *Provider) signatureUsage(sig signature.TypeSignature, nullable bool, variance Variance) *TypeUsage {
	switch s := sig.(type) {
	case *signature.BaseType:
		return p.usageFor(s.Name(), nullable, variance, nil, false)
	case *signature.TypeVariable:
		return &TypeUsage{provider: p, sourceName: s.Name, nullable: nullable, variance: variance}
	case *signature.ArrayType:
		element := p.signatureUsage(s.Element, false, Invariant)
		return p.arrayUsage(element, nullable, variance)
	case *signature.ClassType:
		var args []*TypeUsage
		for _, arg := range s.Arguments() {
			args = append(args, p.argumentUsage(arg))
		}
		return p.usageFor(s.BinaryName(), nullable, variance, args, true)
	}
	panic("unreachable signature type")
}

func (p *Provider) argumentUsage(arg signature.TypeArgument) *TypeUsage {
	switch arg.Wildcard {
	case signature.WildcardUnbounded:
		return StarUsage
	case signature.WildcardExtends:
		return p.signatureUsage(arg.Type, false, Covariant)
	case signature.WildcardSuper:
		return p.signatureUsage(arg.Type, false, Contravariant)
	}
	return p.signatureUsage(arg.Type, false, Invariant)
}

func (p *Provider) typeParameterUsages(params []signature.TypeParameter) []*TypeUsage {
	if len(params) == 0 {
		return nil
	}
	usages := make([]*TypeUsage, len(params))
	for i, param := range params {
		var bounds []*TypeUsage
		for _, bound := range param.Bounds() {
			bounds = append(bounds, p.signatureUsage(bound, false, Invariant))
		}
		usages[i] = &TypeUsage{
			provider:   p,
			sourceName: param.Name,
			variance:   Invariant,
			bounds:     bounds,
		}
	}
	return usages
}

// descriptorUsage converts an erased descriptor type. It never carries type
// arguments other than the element of an array.
func (p *Provider) descriptorUsage(ft *classfile.FieldType, nullable bool) *TypeUsage {
	if ft.IsArray() {
		element := *ft
		element.ArrayDepth--
		return p.arrayUsage(p.descriptorUsage(&element, false), nullable, Invariant)
	}
	return p.usageFor(ft.ElementBinaryName(), nullable, Invariant, nil, !ft.IsPrimitive())
}

func (p *Provider) arrayUsage(element *TypeUsage, nullable bool, variance Variance) *TypeUsage {
	return &TypeUsage{
		provider:   p,
		sourceName: arrayName,
		nullable:   nullable,
		variance:   variance,
		arguments:  []*TypeUsage{element},
	}
}

func (p *Provider) voidUsage() *TypeUsage {
	return p.usageFor("void", false, Invariant, nil, false)
}
