package api

import (
	"fmt"
	"strings"

	"github.com/dhamidi/jvmapi/classfile"
	"github.com/dhamidi/jvmapi/signature"
)

// Function is one significant method of a Type.
type Function struct {
	owner *Type
	node  *classfile.MethodNode

	generic        lazy[*signature.MethodSignature]
	typeParameters lazy[[]*TypeUsage]
	parameters     lazy[[]*Parameter]
	returnType     lazy[*TypeUsage]
	parameterNames lazy[[]string]
}

func newFunction(owner *Type, node *classfile.MethodNode) *Function {
	return &Function{owner: owner, node: node}
}

func (f *Function) Owner() *Type    { return f.owner }
func (f *Function) Name() string    { return f.node.Name }
func (f *Function) IsPublic() bool  { return f.node.IsPublic() }
func (f *Function) IsStatic() bool  { return f.node.IsStatic() }
func (f *Function) IsVarargs() bool { return f.node.IsVarargs() }

// IsConstructor reports whether the function is an instance initializer,
// named "<init>".
func (f *Function) IsConstructor() bool { return f.node.IsConstructor() }

// Descriptor is the erased JVM method descriptor, e.g. "(Ljava/util/List;)I".
func (f *Function) Descriptor() string { return f.node.Descriptor }

func (f *Function) String() string {
	return f.owner.sourceName + "." + f.node.Name + f.node.Descriptor
}

func (f *Function) IsDeprecated() (bool, error) {
	if f.node.Deprecated || f.owner.provider.annotations.isDeprecated(f.node.HasAnnotation) {
		return true, nil
	}
	return f.owner.IsDeprecated()
}

func (f *Function) IsIncubating() (bool, error) {
	if f.owner.provider.annotations.isIncubating(f.node.HasAnnotation) {
		return true, nil
	}
	return f.owner.IsIncubating()
}

// genericSignature returns nil for methods compiled without a Signature
// attribute.
func (f *Function) genericSignature() (*signature.MethodSignature, error) {
	return f.generic.get(func() (*signature.MethodSignature, error) {
		if f.node.Signature == "" {
			return nil, nil
		}
		sig, err := signature.ParseMethodSignature(f.node.Signature)
		if err != nil {
			return nil, fmt.Errorf("method %s: %w", f, err)
		}
		return sig, nil
	})
}

func (f *Function) descriptor() (*classfile.MethodDescriptor, error) {
	md := f.node.ParsedDescriptor()
	if md == nil {
		return nil, fmt.Errorf("method %s: malformed descriptor", f)
	}
	return md, nil
}

func (f *Function) TypeParameters() ([]*TypeUsage, error) {
	return f.typeParameters.get(func() ([]*TypeUsage, error) {
		sig, err := f.genericSignature()
		if err != nil || sig == nil {
			return nil, err
		}
		return f.owner.provider.typeParameterUsages(sig.TypeParameters), nil
	})
}

// Parameters follow the generic signature when there is one and the erased
// descriptor otherwise.
func (f *Function) Parameters() ([]*Parameter, error) {
	return f.parameters.get(func() ([]*Parameter, error) {
		p := f.owner.provider
		sig, err := f.genericSignature()
		if err != nil {
			return nil, err
		}

		var usages []*TypeUsage
		if sig != nil {
			for i, param := range sig.Parameters {
				usages = append(usages, p.signatureUsage(param, f.parameterIsNullable(i, len(sig.Parameters)), Invariant))
			}
		} else {
			md, err := f.descriptor()
			if err != nil {
				return nil, err
			}
			for i := range md.Parameters {
				usages = append(usages, p.descriptorUsage(&md.Parameters[i], f.parameterIsNullable(i, len(md.Parameters))))
			}
		}

		params := make([]*Parameter, len(usages))
		for i, usage := range usages {
			params[i] = &Parameter{
				function: f,
				index:    i,
				varargs:  i == len(usages)-1 && f.node.IsVarargs(),
				typ:      usage,
			}
		}
		return params, nil
	})
}

func (f *Function) ReturnType() (*TypeUsage, error) {
	return f.returnType.get(func() (*TypeUsage, error) {
		p := f.owner.provider
		nullable := p.annotations.isNullable(f.node.HasAnnotation)
		sig, err := f.genericSignature()
		if err != nil {
			return nil, err
		}
		if sig != nil {
			return p.signatureUsage(sig.Result, nullable, Invariant), nil
		}

		md, err := f.descriptor()
		if err != nil {
			return nil, err
		}
		if md.ReturnType == nil {
			return p.voidUsage(), nil
		}
		return p.descriptorUsage(md.ReturnType, nullable), nil
	})
}

func (f *Function) parameterIsNullable(index, count int) bool {
	return f.owner.provider.annotations.isNullable(func(desc string) bool {
		return f.node.ParameterHasAnnotation(index, count, desc)
	})
}

// ParameterNameKey is the key handed to the ParameterNameResolver.
func (f *Function) ParameterNameKey() (string, error) {
	md, err := f.descriptor()
	if err != nil {
		return "", err
	}
	return f.owner.sourceName + "." + f.node.Name + "(" + strings.Join(md.ParameterBinaryNames(), ",") + ")", nil
}

// names asks the resolver first and falls back to the MethodParameters
// attribute. Both follow the descriptor, which for inner class and enum
// constructors starts with synthetic parameters the signature leaves out, so
// only the trailing names are kept. A source with too few names is ignored.
func (f *Function) names() ([]string, error) {
	return f.parameterNames.get(func() ([]string, error) {
		p := f.owner.provider
		params, err := f.Parameters()
		if err != nil {
			return nil, err
		}

		if p.paramNames != nil {
			if err := p.checkOpen(); err != nil {
				return nil, err
			}
			key, err := f.ParameterNameKey()
			if err != nil {
				return nil, err
			}
			if names, ok := p.paramNames(key); ok {
				if trailing := trailingNames(names, len(params)); trailing != nil {
					return trailing, nil
				}
			}
		}
		return trailingNames(f.node.ParameterNames, len(params)), nil
	})
}

func trailingNames(names []string, count int) []string {
	if len(names) < count || len(names) == 0 {
		return nil
	}
	return names[len(names)-count:]
}

// Parameter is one declared parameter of a Function.
type Parameter struct {
	function *Function
	index    int
	varargs  bool
	typ      *TypeUsage
}

func (p *Parameter) Index() int          { return p.index }
func (p *Parameter) IsVarargs() bool     { return p.varargs }
func (p *Parameter) Type() *TypeUsage    { return p.typ }
func (p *Parameter) Function() *Function { return p.function }

// Name returns the empty string when no name was recorded.
func (p *Parameter) Name() (string, error) {
	names, err := p.function.names()
	if err != nil {
		return "", err
	}
	if p.index >= len(names) {
		return "", nil
	}
	return names[p.index], nil
}
