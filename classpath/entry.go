package classpath

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dhamidi/jvmapi/classfile"
)

type dirEntry struct {
	root string
}

func (d *dirEntry) Path() string { return d.root }

func (d *dirEntry) read(classFile string) ([]byte, bool, error) {
	data, err := os.ReadFile(filepath.Join(d.root, filepath.FromSlash(classFile)))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

func (d *dirEntry) classFiles() []string {
	var files []string
	err := filepath.WalkDir(d.root, func(path string, de fs.DirEntry, err error) error {
		if err != nil {
			log.Warningf("skipping %s: %v", path, err)
			if de != nil && de.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if de.IsDir() || !strings.HasSuffix(path, ".class") {
			return nil
		}
		rel, err := filepath.Rel(d.root, path)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		log.Warningf("failed to list %s: %v", d.root, err)
	}
	sort.Strings(files)
	return files
}

func (d *dirEntry) close() error { return nil }

type jarEntry struct {
	path  string
	zr    *zip.ReadCloser
	files map[string]*zip.File
	names []string
}

func openJar(path string) (*jarEntry, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive %s: %w", path, err)
	}
	jar := &jarEntry{path: path, zr: zr, files: make(map[string]*zip.File)}
	for _, f := range zr.File {
		if f.FileInfo().IsDir() || !strings.HasSuffix(f.Name, ".class") {
			continue
		}
		if _, dup := jar.files[f.Name]; dup {
			log.Warningf("%s: duplicate entry %s", path, f.Name)
			continue
		}
		jar.files[f.Name] = f
		jar.names = append(jar.names, f.Name)
	}
	sort.Strings(jar.names)
	return jar, nil
}

func (j *jarEntry) Path() string { return j.path }

func (j *jarEntry) read(classFile string) ([]byte, bool, error) {
	f, ok := j.files[classFile]
	if !ok {
		return nil, false, nil
	}
	rc, err := f.Open()
	if err != nil {
		return nil, false, err
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

func (j *jarEntry) classFiles() []string { return j.names }

func (j *jarEntry) close() error { return j.zr.Close() }

// fileEntry is a lone class file. Its location on disk says nothing about
// its package, so the name comes from the class file itself.
type fileEntry struct {
	path      string
	classFile string
}

func openClassFile(path string) (*fileEntry, error) {
	node, err := classfile.ParseFile(path, classfile.SkipCode(), classfile.SkipDebug(), classfile.SkipFrames())
	if err != nil {
		return nil, fmt.Errorf("failed to read class file %s: %w", path, err)
	}
	return &fileEntry{path: path, classFile: node.Name + ".class"}, nil
}

func (f *fileEntry) Path() string { return f.path }

func (f *fileEntry) read(classFile string) ([]byte, bool, error) {
	if classFile != f.classFile {
		return nil, false, nil
	}
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

func (f *fileEntry) classFiles() []string { return []string{f.classFile} }

func (f *fileEntry) close() error { return nil }
