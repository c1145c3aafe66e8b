package api

import (
	"fmt"

	"github.com/dhamidi/jvmapi/classfile"
	"github.com/dhamidi/jvmapi/signature"
)

// Type is one class, interface, enum or annotation type. Everything except
// SourceName is computed on first access and memoized.
type Type struct {
	provider   *Provider
	sourceName string
	load       func() ([]byte, error)

	node           lazy[*classfile.ClassNode]
	typeParameters lazy[[]*TypeUsage]
	functions      lazy[[]*Function]
}

func newType(p *Provider, sourceName string, load func() ([]byte, error)) *Type {
	return &Type{provider: p, sourceName: sourceName, load: load}
}

func (t *Type) SourceName() string {
	return t.sourceName
}

func (t *Type) String() string {
	return t.sourceName
}

// Node returns the parsed class file. The provider must still be open the
// first time it is called.
func (t *Type) Node() (*classfile.ClassNode, error) {
	return t.node.get(func() (*classfile.ClassNode, error) {
		if err := t.provider.checkOpen(); err != nil {
			return nil, err
		}
		data, err := t.load()
		if err != nil {
			return nil, fmt.Errorf("failed to load class bytes for %s: %w", t.sourceName, err)
		}
		node, err := classfile.ParseBytes(data, classfile.SkipCode(), classfile.SkipDebug(), classfile.SkipFrames())
		if err != nil {
			return nil, fmt.Errorf("failed to parse class %s: %w", t.sourceName, err)
		}
		return node, nil
	})
}

func (t *Type) IsPublic() (bool, error) {
	node, err := t.Node()
	if err != nil {
		return false, err
	}
	return node.AccessFlags.IsPublic(), nil
}

func (t *Type) IsDeprecated() (bool, error) {
	node, err := t.Node()
	if err != nil {
		return false, err
	}
	return node.Deprecated || t.provider.annotations.isDeprecated(node.HasAnnotation), nil
}

func (t *Type) IsIncubating() (bool, error) {
	node, err := t.Node()
	if err != nil {
		return false, err
	}
	return t.provider.annotations.isIncubating(node.HasAnnotation), nil
}

// IsSAM reports whether the type is abstract and declares exactly one
// abstract instance method, which is public.
func (t *Type) IsSAM() (bool, error) {
	node, err := t.Node()
	if err != nil {
		return false, err
	}
	if !node.AccessFlags.IsAbstract() {
		return false, nil
	}
	var single *classfile.MethodNode
	for i := range node.Methods {
		m := &node.Methods[i]
		if !m.IsAbstract() || m.IsStatic() {
			continue
		}
		if single != nil {
			return false, nil
		}
		single = m
	}
	return single != nil && single.IsPublic(), nil
}

// TypeParameters lists the formal type parameters of a generic type, each
// carrying its bounds. Non-generic types have none.
func (t *Type) TypeParameters() ([]*TypeUsage, error) {
	return t.typeParameters.get(func() ([]*TypeUsage, error) {
		node, err := t.Node()
		if err != nil {
			return nil, err
		}
		if node.Signature == "" {
			return nil, nil
		}
		sig, err := signature.ParseClassSignature(node.Signature)
		if err != nil {
			return nil, fmt.Errorf("class %s: %w", t.sourceName, err)
		}
		return t.provider.typeParameterUsages(sig.TypeParameters), nil
	})
}

// Functions lists the significant methods in declaration order: those that
// are not bridges or synthetic, and that no ancestor already declares with
// the same descriptor and signature.
func (t *Type) Functions() ([]*Function, error) {
	return t.functions.get(func() ([]*Function, error) {
		node, err := t.Node()
		if err != nil {
			return nil, err
		}
		var fns []*Function
		for i := range node.Methods {
			m := &node.Methods[i]
			ok, err := t.isSignificant(node, m)
			if err != nil {
				return nil, err
			}
			if ok {
				fns = append(fns, newFunction(t, m))
			}
		}
		return fns, nil
	})
}

// hasTypeParameters is used by TypeUsage.IsRaw.
func (t *Type) hasTypeParameters() (bool, error) {
	params, err := t.TypeParameters()
	if err != nil {
		return false, err
	}
	return len(params) > 0, nil
}
