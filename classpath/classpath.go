// Package classpath reads class files from directories and jar archives, the
// way the JVM resolves a -classpath argument.
package classpath

import (
	"errors"
	"fmt"
	"iter"
	"os"
	"path/filepath"
	"strings"

	"github.com/tliron/commonlog"
)

var ErrClosed = errors.New("classpath: repository is closed")

var log = commonlog.GetLogger("jvmapi.classpath")

type entry interface {
	Path() string
	// read returns false when the entry has no such file.
	read(classFile string) ([]byte, bool, error)
	// classFiles lists class file paths relative to the entry root, with
	// forward slashes, in lexical order.
	classFiles() []string
	close() error
}

// Repository serves class bytes from an ordered list of entries. The first
// entry containing a class wins.
type Repository struct {
	entries []entry
	closed  bool
}

// Open opens every entry up front. Archives stay open until Close. A single
// .class file is served under the name recorded inside it. Entries that do
// not exist are skipped with a warning.
func Open(paths ...string) (*Repository, error) {
	r := &Repository{}
	for _, path := range paths {
		info, err := os.Stat(path)
		if errors.Is(err, os.ErrNotExist) {
			log.Warningf("skipping missing classpath entry %s", path)
			continue
		}
		if err != nil {
			r.Close()
			return nil, fmt.Errorf("failed to stat classpath entry %s: %w", path, err)
		}

		if info.IsDir() {
			r.entries = append(r.entries, &dirEntry{root: path})
			continue
		}
		switch strings.ToLower(filepath.Ext(path)) {
		case ".class":
			file, err := openClassFile(path)
			if err != nil {
				r.Close()
				return nil, err
			}
			r.entries = append(r.entries, file)
		case ".jar", ".zip":
			jar, err := openJar(path)
			if err != nil {
				r.Close()
				return nil, err
			}
			r.entries = append(r.entries, jar)
		default:
			log.Warningf("skipping classpath entry %s: not a directory, archive or class file", path)
		}
	}
	return r, nil
}

// Entries lists the paths that were opened, in lookup order.
func (r *Repository) Entries() []string {
	paths := make([]string, len(r.entries))
	for i, e := range r.entries {
		paths[i] = e.Path()
	}
	return paths
}

// ClassBytesFor finds the class file for a source name. Since dots in a
// source name may separate packages or nested classes, candidates are tried
// from "a/b/C/D.class" to "a/b/C$D.class" and so on, right to left.
func (r *Repository) ClassBytesFor(sourceName string) ([]byte, bool, error) {
	if r.closed {
		return nil, false, ErrClosed
	}
	for _, candidate := range candidateFiles(sourceName) {
		for _, e := range r.entries {
			data, ok, err := e.read(candidate)
			if err != nil {
				return nil, false, fmt.Errorf("failed to read %s from %s: %w", candidate, e.Path(), err)
			}
			if ok {
				return data, true, nil
			}
		}
	}
	return nil, false, nil
}

// AllClassBytes enumerates classes entry by entry, each entry in lexical
// order. A class shadowed by an earlier entry is not yielded again.
// module-info, package-info and anonymous classes are left out.
func (r *Repository) AllClassBytes() iter.Seq2[string, func() ([]byte, error)] {
	return func(yield func(string, func() ([]byte, error)) bool) {
		seen := make(map[string]bool)
		for _, e := range r.entries {
			if r.closed {
				return
			}
			for _, file := range e.classFiles() {
				name, ok := sourceNameOf(file)
				if !ok || seen[name] {
					continue
				}
				seen[name] = true

				supplier := func() ([]byte, error) {
					if r.closed {
						return nil, ErrClosed
					}
					data, found, err := e.read(file)
					if err != nil {
						return nil, fmt.Errorf("failed to read %s from %s: %w", file, e.Path(), err)
					}
					if !found {
						return nil, fmt.Errorf("%s vanished from %s", file, e.Path())
					}
					return data, nil
				}
				if !yield(name, supplier) {
					return
				}
			}
		}
	}
}

// Close releases every archive. Only the first call has an effect.
func (r *Repository) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	var errs []error
	for _, e := range r.entries {
		if err := e.close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close %s: %w", e.Path(), err))
		}
	}
	return errors.Join(errs...)
}

// Split breaks an OS path list such as "a.jar:build/classes" into entries.
func Split(pathList string) []string {
	var paths []string
	for _, path := range filepath.SplitList(pathList) {
		if path = strings.TrimSpace(path); path != "" {
			paths = append(paths, path)
		}
	}
	return paths
}

func candidateFiles(sourceName string) []string {
	internal := strings.ReplaceAll(sourceName, ".", "/")
	candidates := []string{internal + ".class"}
	for {
		i := strings.LastIndexByte(internal, '/')
		if i < 0 {
			break
		}
		internal = internal[:i] + "$" + internal[i+1:]
		candidates = append(candidates, internal+".class")
	}
	return candidates
}

// sourceNameOf turns "com/example/Outer$Inner.class" into
// "com.example.Outer.Inner".
func sourceNameOf(classFile string) (string, bool) {
	internal, ok := strings.CutSuffix(classFile, ".class")
	if !ok || strings.HasPrefix(internal, "META-INF/") {
		return "", false
	}
	base := internal[strings.LastIndexByte(internal, '/')+1:]
	if base == "module-info" || base == "package-info" || isAnonymous(base) {
		return "", false
	}
	name := strings.ReplaceAll(internal, "/", ".")
	return strings.ReplaceAll(name, "$", "."), true
}

// isAnonymous reports whether any nested segment of a class name is
// numeric, as in "Outer$1" or "Outer$1$Local".
func isAnonymous(base string) bool {
	segments := strings.Split(base, "$")
	for _, seg := range segments[1:] {
		if seg == "" {
			continue
		}
		numeric := true
		for _, c := range seg {
			if c < '0' || c > '9' {
				numeric = false
				break
			}
		}
		if numeric {
			return true
		}
	}
	return false
}
