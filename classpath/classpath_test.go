package classpath

import (
	"archive/zip"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/dhamidi/jvmapi/classfile"
	"github.com/dhamidi/jvmapi/classfile/classfiletest"
)

func classBytes(name string) []byte {
	return classfiletest.Class{Access: classfile.AccPublic, Name: name, Super: "java/lang/Object"}.Bytes()
}

func writeDir(t *testing.T, files map[string][]byte) string {
	t.Helper()
	root := t.TempDir()
	for name, data := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func writeJar(t *testing.T, names ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lib.jar")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	zw := zip.NewWriter(f)
	for _, name := range names {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		data := []byte("Manifest-Version: 1.0\n")
		if filepath.Ext(name) == ".class" {
			internal := name[:len(name)-len(".class")]
			data = classBytes(internal)
		}
		if _, err := w.Write(data); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	return path
}

func collect(t *testing.T, r *Repository) []string {
	t.Helper()
	var names []string
	for name := range r.AllClassBytes() {
		names = append(names, name)
	}
	return names
}

func TestDirectoryEntry(t *testing.T) {
	root := writeDir(t, map[string][]byte{
		"com/example/B.class":             classBytes("com/example/B"),
		"com/example/A.class":             classBytes("com/example/A"),
		"com/example/A$Nested.class":      classBytes("com/example/A$Nested"),
		"com/example/A$1.class":           classBytes("com/example/A$1"),
		"com/example/package-info.class":  classBytes("com/example/package-info"),
		"module-info.class":               classBytes("module-info"),
		"com/example/resources/data.json": []byte("{}"),
	})

	r, err := Open(root)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer r.Close()

	t.Run("enumeration", func(t *testing.T) {
		want := []string{"com.example.A.Nested", "com.example.A", "com.example.B"}
		if got := collect(t, r); !reflect.DeepEqual(got, want) {
			t.Errorf("AllClassBytes() = %v, want %v", got, want)
		}
	})

	t.Run("lookup", func(t *testing.T) {
		data, ok, err := r.ClassBytesFor("com.example.A")
		if err != nil || !ok {
			t.Fatalf("ClassBytesFor = %v, %v", ok, err)
		}
		cn, err := classfile.ParseBytes(data)
		if err != nil {
			t.Fatalf("Parse: %v", err)
		}
		if cn.Name != "com/example/A" {
			t.Errorf("Name = %q, want %q", cn.Name, "com/example/A")
		}
	})

	t.Run("nested lookup", func(t *testing.T) {
		for _, name := range []string{"com.example.A.Nested", "com.example.A$Nested"} {
			if _, ok, err := r.ClassBytesFor(name); err != nil || !ok {
				t.Errorf("ClassBytesFor(%q) = %v, %v", name, ok, err)
			}
		}
	})

	t.Run("missing", func(t *testing.T) {
		_, ok, err := r.ClassBytesFor("com.example.Missing")
		if err != nil || ok {
			t.Errorf("ClassBytesFor = %v, %v, want not found", ok, err)
		}
	})

	t.Run("supplier", func(t *testing.T) {
		for name, supplier := range r.AllClassBytes() {
			data, err := supplier()
			if err != nil {
				t.Fatalf("%s: %v", name, err)
			}
			if len(data) == 0 {
				t.Errorf("%s: empty class bytes", name)
			}
		}
	})
}

func TestJarEntry(t *testing.T) {
	jar := writeJar(t,
		"META-INF/MANIFEST.MF",
		"META-INF/versions/11/org/lib/Util.class",
		"org/lib/Util.class",
		"org/lib/Api.class",
	)

	r, err := Open(jar)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	want := []string{"org.lib.Api", "org.lib.Util"}
	if got := collect(t, r); !reflect.DeepEqual(got, want) {
		t.Errorf("AllClassBytes() = %v, want %v", got, want)
	}
	if _, ok, err := r.ClassBytesFor("org.lib.Util"); err != nil || !ok {
		t.Errorf("ClassBytesFor = %v, %v", ok, err)
	}

	if err := r.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := r.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
	if _, _, err := r.ClassBytesFor("org.lib.Util"); !errors.Is(err, ErrClosed) {
		t.Errorf("ClassBytesFor after Close = %v, want ErrClosed", err)
	}
}

func TestClassFileEntry(t *testing.T) {
	dir := writeDir(t, map[string][]byte{
		"Inner.class":  classBytes("org/lib/Outer$Inner"),
		"broken.class": []byte("not a class"),
	})
	path := filepath.Join(dir, "Inner.class")

	r, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer r.Close()

	if got := r.Entries(); !reflect.DeepEqual(got, []string{path}) {
		t.Errorf("Entries() = %v", got)
	}
	if got, want := collect(t, r), []string{"org.lib.Outer.Inner"}; !reflect.DeepEqual(got, want) {
		t.Errorf("AllClassBytes() = %v, want %v", got, want)
	}
	data, ok, err := r.ClassBytesFor("org.lib.Outer.Inner")
	if err != nil || !ok {
		t.Fatalf("ClassBytesFor = %v, %v", ok, err)
	}
	if cn, err := classfile.ParseBytes(data); err != nil || cn.Name != "org/lib/Outer$Inner" {
		t.Errorf("ClassBytesFor returned %v, %v", cn, err)
	}
	if _, ok, _ := r.ClassBytesFor("Inner"); ok {
		t.Error("the file name should not be a lookup key")
	}

	if _, err := Open(filepath.Join(dir, "broken.class")); err == nil {
		t.Error("Open of a malformed class file should fail")
	}
}

func TestEntryOrder(t *testing.T) {
	first := writeDir(t, map[string][]byte{
		"org/lib/Util.class": classBytes("org/lib/Shadow"),
		"org/app/Main.class": classBytes("org/app/Main"),
	})
	jar := writeJar(t, "org/lib/Util.class", "org/lib/Api.class")

	r, err := Open(first, filepath.Join(t.TempDir(), "missing.jar"), jar)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer r.Close()

	if got := r.Entries(); !reflect.DeepEqual(got, []string{first, jar}) {
		t.Errorf("Entries() = %v", got)
	}

	want := []string{"org.app.Main", "org.lib.Util", "org.lib.Api"}
	if got := collect(t, r); !reflect.DeepEqual(got, want) {
		t.Errorf("AllClassBytes() = %v, want %v", got, want)
	}

	data, _, err := r.ClassBytesFor("org.lib.Util")
	if err != nil {
		t.Fatal(err)
	}
	cn, err := classfile.ParseBytes(data)
	if err != nil {
		t.Fatal(err)
	}
	if cn.Name != "org/lib/Shadow" {
		t.Errorf("first entry should win, got %q", cn.Name)
	}
}

func TestSplit(t *testing.T) {
	list := "a.jar" + string(os.PathListSeparator) + string(os.PathListSeparator) + "build/classes "
	want := []string{"a.jar", "build/classes"}
	if got := Split(list); !reflect.DeepEqual(got, want) {
		t.Errorf("Split(%q) = %v, want %v", list, got, want)
	}
}
