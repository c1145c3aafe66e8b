package api

import (
	"github.com/dhamidi/jvmapi/classfile"
)

// isSignificant reports whether m adds API surface to the type owning node.
//
// Ancestors are visited depth first, interfaces before the superclass, each
// at most once and never the type itself. Ancestors outside the repository
// are skipped. Any visited ancestor declaring the same name, descriptor and
// signature makes m an unmodified override.
func (t *Type) isSignificant(node *classfile.ClassNode, m *classfile.MethodNode) (bool, error) {
	if m.IsBridge() || m.IsSynthetic() {
		return false, nil
	}
	if !node.HasSupertypes() {
		return true, nil
	}

	visited := map[string]bool{node.Name: true}
	stack := pushSupertypes(nil, node)
	for len(stack) > 0 {
		name := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[name] {
			continue
		}
		visited[name] = true

		ancestor, err := t.provider.Type(classfile.InternalToSourceName(name))
		if err != nil {
			return false, err
		}
		if ancestor == nil {
			t.provider.log.Debugf("%s: skipping unresolved ancestor %s", t.sourceName, name)
			continue
		}
		ancestorNode, err := ancestor.Node()
		if err != nil {
			return false, err
		}
		if declaresSame(ancestorNode, m) {
			return false, nil
		}
		stack = pushSupertypes(stack, ancestorNode)
	}
	return true, nil
}

// pushSupertypes pushes the superclass, then the interfaces in reverse, so
// that the first interface is popped first.
func pushSupertypes(stack []string, node *classfile.ClassNode) []string {
	if node.SuperName != "" {
		stack = append(stack, node.SuperName)
	}
	for i := len(node.Interfaces) - 1; i >= 0; i-- {
		stack = append(stack, node.Interfaces[i])
	}
	return stack
}

// declaresSame relies on a class never declaring two methods with the same
// name and descriptor.
func declaresSame(node *classfile.ClassNode, m *classfile.MethodNode) bool {
	candidate := node.GetMethod(m.Name, m.Descriptor)
	return candidate != nil && candidate.Signature == m.Signature
}
