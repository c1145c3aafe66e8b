// Package api is a lazily computed, read-only model of the public API
// surface of a library, built on demand from compiled class files.
//
// Nothing in this package is safe for concurrent use. Give each goroutine its
// own Provider, or serialize access externally.
package api

import (
	"errors"
	"fmt"
	"iter"
	"strings"

	"github.com/tliron/commonlog"
)

// ErrClosed is returned by every operation that needs the provider after
// Close has been called.
var ErrClosed = errors.New("api: provider is closed")

// ClassBytesRepository supplies raw class file bytes by source name.
type ClassBytesRepository interface {
	// ClassBytesFor reports false when no class with that name exists.
	ClassBytesFor(sourceName string) ([]byte, bool, error)
	// AllClassBytes enumerates every class. Each supplier is called at
	// most once, and only when its element is consumed.
	AllClassBytes() iter.Seq2[string, func() ([]byte, error)]
	Close() error
}

// ParameterNameResolver looks up parameter names recorded outside the class
// file. The key has the form
//
//	<ownerSourceName>.<functionName>(<comma-joined parameter binary names>)
//
// for example "com.example.A.m(java.util.List,int[])".
type ParameterNameResolver func(key string) ([]string, bool)

type Provider struct {
	repo        ClassBytesRepository
	cache       map[string]*Type
	closed      bool
	paramNames  ParameterNameResolver
	annotations annotationSet
	log         commonlog.Logger
}

type Option func(*Provider)

func WithParameterNames(resolver ParameterNameResolver) Option {
	return func(p *Provider) {
		p.paramNames = resolver
	}
}

func WithAnnotations(a Annotations) Option {
	return func(p *Provider) {
		p.annotations = a.WithDefaults().descriptors()
	}
}

func NewProvider(repo ClassBytesRepository, opts ...Option) *Provider {
	p := &Provider{
		repo:        repo,
		cache:       make(map[string]*Type),
		annotations: DefaultAnnotations().descriptors(),
		log:         commonlog.GetLogger("jvmapi.api"),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Type returns the type named sourceName, or nil when the repository does
// not know it. Results, including misses, are cached: asking twice yields
// the same *Type.
func (p *Provider) Type(sourceName string) (*Type, error) {
	if p.closed {
		return nil, ErrClosed
	}

	key := normalizeSourceName(sourceName)
	if t, ok := p.cache[key]; ok {
		return t, nil
	}

	data, found, err := p.repo.ClassBytesFor(key)
	if err != nil {
		return nil, fmt.Errorf("failed to read class bytes for %s: %w", key, err)
	}
	if !found {
		p.log.Debugf("type %s not found", key)
		p.cache[key] = nil
		return nil, nil
	}

	t := newType(p, key, func() ([]byte, error) { return data, nil })
	p.cache[key] = t
	return t, nil
}

// AllTypes enumerates every type in repository order. Types already
// returned by Type are reused. Each call starts a fresh enumeration.
func (p *Provider) AllTypes() iter.Seq2[*Type, error] {
	return func(yield func(*Type, error) bool) {
		if p.closed {
			yield(nil, ErrClosed)
			return
		}
		for name, supplier := range p.repo.AllClassBytes() {
			if p.closed {
				yield(nil, ErrClosed)
				return
			}
			key := normalizeSourceName(name)
			t := p.cache[key]
			if t == nil {
				t = newType(p, key, supplier)
				p.cache[key] = t
			}
			if !yield(t, nil) {
				return
			}
		}
	}
}

// Close releases the repository. Calling it again is a no-op.
func (p *Provider) Close() error {
	if p.closed {
		return nil
	}
	p.closed = true
	if err := p.repo.Close(); err != nil {
		return fmt.Errorf("failed to close class repository: %w", err)
	}
	return nil
}

func (p *Provider) checkOpen() error {
	if p.closed {
		return ErrClosed
	}
	return nil
}

// normalizeSourceName turns nested class separators into dots so that
// "java.util.Map$Entry" and "java.util.Map.Entry" share one cache entry.
func normalizeSourceName(name string) string {
	return strings.ReplaceAll(name, "$", ".")
}
