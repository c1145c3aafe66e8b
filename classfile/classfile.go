// Package classfile reads JVM class files into a ClassNode: the declaration
// level shape of a type (flags, supertypes, methods, generic signatures and
// annotation descriptors). Method bodies, debug tables and stack map frames
// can be skipped while reading, see ParseOption.
package classfile

import "slices"

// ClassNode is the code-free representation of one compiled type. Names are
// kept in internal form (java/util/Map$Entry).
type ClassNode struct {
	MinorVersion uint16
	MajorVersion uint16
	AccessFlags  AccessFlags
	Name         string
	SuperName    string
	Interfaces   []string
	Signature    string
	SourceFile   string
	Deprecated   bool

	// Annotations holds the field descriptors of visible and invisible
	// type annotations, e.g. "Ljava/lang/Deprecated;".
	Annotations []string
	Methods     []MethodNode
	FieldCount  int
}

type MethodNode struct {
	AccessFlags AccessFlags
	Name        string
	Descriptor  string
	Signature   string
	Deprecated  bool
	Annotations []string

	// ParameterAnnotations is indexed by declared parameter position and is
	// nil when the method carries no parameter annotation attribute at all.
	ParameterAnnotations [][]string
	ParameterNames       []string

	// Code is nil for abstract and native methods and when the class was
	// read with SkipCode.
	Code *Code
}

type Code struct {
	MaxStack       uint16
	MaxLocals      uint16
	Bytecode       []byte
	LineNumbers    []LineNumber
	LocalVariables []LocalVariable
	StackMapFrames int
}

type LineNumber struct {
	StartPC    uint16
	LineNumber uint16
}

type LocalVariable struct {
	StartPC    uint16
	Length     uint16
	Name       string
	Descriptor string
	Index      uint16
}

func (cn *ClassNode) IsInterface() bool {
	return cn.AccessFlags.IsInterface() && !cn.AccessFlags.IsAnnotation()
}

func (cn *ClassNode) IsAnnotation() bool {
	return cn.AccessFlags.IsAnnotation()
}

func (cn *ClassNode) IsEnum() bool {
	return cn.AccessFlags.IsEnum()
}

// HasSupertypes reports whether the class names a superclass or implements
// at least one interface. Only java/lang/Object answers false.
func (cn *ClassNode) HasSupertypes() bool {
	return cn.SuperName != "" || len(cn.Interfaces) > 0
}

func (cn *ClassNode) GetMethod(name, descriptor string) *MethodNode {
	for i := range cn.Methods {
		if cn.Methods[i].Name == name {
			if descriptor == "" || cn.Methods[i].Descriptor == descriptor {
				return &cn.Methods[i]
			}
		}
	}
	return nil
}

func (cn *ClassNode) HasAnnotation(descriptor string) bool {
	return slices.Contains(cn.Annotations, descriptor)
}

func (m *MethodNode) IsPublic() bool    { return m.AccessFlags.IsPublic() }
func (m *MethodNode) IsStatic() bool    { return m.AccessFlags.IsStatic() }
func (m *MethodNode) IsAbstract() bool  { return m.AccessFlags.IsAbstract() }
func (m *MethodNode) IsBridge() bool    { return m.AccessFlags.IsBridge() }
func (m *MethodNode) IsVarargs() bool   { return m.AccessFlags.IsVarargs() }
func (m *MethodNode) IsSynthetic() bool { return m.AccessFlags.IsSynthetic() }

func (m *MethodNode) IsConstructor() bool {
	return m.Name == "<init>"
}

func (m *MethodNode) HasAnnotation(descriptor string) bool {
	return slices.Contains(m.Annotations, descriptor)
}

// ParameterHasAnnotation looks up parameter index out of count parameters.
// javac leaves synthetic leading parameters out of the annotation tables
// while generic signatures leave them out of the parameter list, so tables
// and parameters are matched from the end.
func (m *MethodNode) ParameterHasAnnotation(index, count int, descriptor string) bool {
	i := index + len(m.ParameterAnnotations) - count
	if index < 0 || index >= count || i < 0 || i >= len(m.ParameterAnnotations) {
		return false
	}
	return slices.Contains(m.ParameterAnnotations[i], descriptor)
}

func (m *MethodNode) ParsedDescriptor() *MethodDescriptor {
	return ParseMethodDescriptor(m.Descriptor)
}
