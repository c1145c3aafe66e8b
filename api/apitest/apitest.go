// Package apitest provides an in-memory class repository for tests of code
// built on the api package.
package apitest

import (
	"errors"
	"iter"
	"strings"

	"github.com/dhamidi/jvmapi/classfile"
	"github.com/dhamidi/jvmapi/classfile/classfiletest"
)

// Repository serves synthesized classes in the order they were added and
// counts how it is used.
type Repository struct {
	classes map[string][]byte
	order   []string

	Lookups map[string]int
	Loads   map[string]int
	Closes  int
}

func NewRepository(classes ...classfiletest.Class) *Repository {
	r := &Repository{
		classes: make(map[string][]byte),
		Lookups: make(map[string]int),
		Loads:   make(map[string]int),
	}
	for _, c := range classes {
		r.Add(c)
	}
	return r
}

func (r *Repository) Add(c classfiletest.Class) {
	name := strings.ReplaceAll(classfile.InternalToSourceName(c.Name), "$", ".")
	if _, ok := r.classes[name]; !ok {
		r.order = append(r.order, name)
	}
	r.classes[name] = c.Bytes()
}

func (r *Repository) ClassBytesFor(sourceName string) ([]byte, bool, error) {
	r.Lookups[sourceName]++
	data, ok := r.classes[sourceName]
	return data, ok, nil
}

func (r *Repository) AllClassBytes() iter.Seq2[string, func() ([]byte, error)] {
	return func(yield func(string, func() ([]byte, error)) bool) {
		for _, name := range r.order {
			supplier := func() ([]byte, error) {
				r.Loads[name]++
				if r.Closes > 0 {
					return nil, errors.New("apitest: repository closed")
				}
				return r.classes[name], nil
			}
			if !yield(name, supplier) {
				return
			}
		}
	}
}

func (r *Repository) Close() error {
	r.Closes++
	return nil
}
