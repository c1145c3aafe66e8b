package api

import (
	"github.com/dhamidi/jvmapi/api/apitest"
	"github.com/dhamidi/jvmapi/classfile"
	"github.com/dhamidi/jvmapi/classfile/classfiletest"
)

func newFakeRepository(classes ...classfiletest.Class) *apitest.Repository {
	return apitest.NewRepository(classes...)
}

func class(name, super string, methods ...classfiletest.Method) classfiletest.Class {
	return classfiletest.Class{
		Access:  classfile.AccPublic | classfile.AccSuper,
		Name:    name,
		Super:   super,
		Methods: methods,
	}
}

func iface(name string, supers []string, methods ...classfiletest.Method) classfiletest.Class {
	return classfiletest.Class{
		Access:     classfile.AccPublic | classfile.AccInterface | classfile.AccAbstract,
		Name:       name,
		Super:      "java/lang/Object",
		Interfaces: supers,
		Methods:    methods,
	}
}

func method(name, descriptor string) classfiletest.Method {
	return classfiletest.Method{Access: classfile.AccPublic, Name: name, Descriptor: descriptor, Code: true}
}

func abstractMethod(name, descriptor string) classfiletest.Method {
	return classfiletest.Method{Access: classfile.AccPublic | classfile.AccAbstract, Name: name, Descriptor: descriptor}
}

func functionNames(fns []*Function) []string {
	names := make([]string, len(fns))
	for i, fn := range fns {
		names[i] = fn.Name()
	}
	return names
}
