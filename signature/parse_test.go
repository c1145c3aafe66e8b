package signature

import (
	"errors"
	"testing"
)

func TestParseTypeSignature(t *testing.T) {
	tests := []struct {
		name string
		sig  string
		want string
	}{
		{"primitive", "I", "int"},
		{"class", "Ljava/lang/String;", "java.lang.String"},
		{"default package", "LFoo;", "Foo"},
		{"type variable", "TT;", "T"},
		{"array of primitives", "[[J", "long[][]"},
		{"array of variables", "[TE;", "E[]"},
		{"parameterized", "Ljava/util/Map<Ljava/lang/String;Ljava/util/List<TV;>;>;", "java.util.Map<java.lang.String, java.util.List<V>>"},
		{"wildcards", "Ljava/util/Map<*+Ljava/lang/Number;>;", "java.util.Map<?, ? extends java.lang.Number>"},
		{"super wildcard", "Ljava/util/Comparator<-TT;>;", "java.util.Comparator<? super T>"},
		{"inner class", "Lcom/example/Outer<TK;>.Inner<TV;>;", "com.example.Outer<K>.Inner<V>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTypeSignature(tt.sig)
			if err != nil {
				t.Fatalf("ParseTypeSignature(%q): %v", tt.sig, err)
			}
			if got.String() != tt.want {
				t.Errorf("String() = %q, want %q", got.String(), tt.want)
			}
		})
	}
}

func TestClassTypeNames(t *testing.T) {
	sig, err := ParseTypeSignature("Lcom/example/Outer<TK;>.Inner<TV;*>;")
	if err != nil {
		t.Fatalf("ParseTypeSignature: %v", err)
	}
	ct, ok := sig.(*ClassType)
	if !ok {
		t.Fatalf("got %T, want *ClassType", sig)
	}
	if got := ct.BinaryName(); got != "com.example.Outer$Inner" {
		t.Errorf("BinaryName() = %q, want %q", got, "com.example.Outer$Inner")
	}
	if ct.Package != "com/example" {
		t.Errorf("Package = %q, want %q", ct.Package, "com/example")
	}

	args := ct.Arguments()
	if len(args) != 3 {
		t.Fatalf("Arguments() = %v, want 3 arguments", args)
	}
	if v, ok := args[0].Type.(*TypeVariable); !ok || v.Name != "K" {
		t.Errorf("args[0] = %v, want K", args[0])
	}
	if v, ok := args[1].Type.(*TypeVariable); !ok || v.Name != "V" {
		t.Errorf("args[1] = %v, want V", args[1])
	}
	if args[2].Wildcard != WildcardUnbounded || args[2].Type != nil {
		t.Errorf("args[2] = %+v, want unbounded wildcard", args[2])
	}
}

func TestParseClassSignature(t *testing.T) {
	t.Run("recursive bound", func(t *testing.T) {
		sig, err := ParseClassSignature("<E:Ljava/lang/Enum<TE;>;>Ljava/lang/Object;Ljava/lang/Comparable<TE;>;Ljava/io/Serializable;")
		if err != nil {
			t.Fatalf("ParseClassSignature: %v", err)
		}
		if len(sig.TypeParameters) != 1 {
			t.Fatalf("TypeParameters = %v", sig.TypeParameters)
		}
		if got := sig.TypeParameters[0].String(); got != "E extends java.lang.Enum<E>" {
			t.Errorf("TypeParameters[0] = %q", got)
		}
		if got := sig.SuperClass.BinaryName(); got != "java.lang.Object" {
			t.Errorf("SuperClass = %q", got)
		}
		if len(sig.Interfaces) != 2 || sig.Interfaces[1].BinaryName() != "java.io.Serializable" {
			t.Errorf("Interfaces = %v", sig.Interfaces)
		}
	})

	t.Run("interface bounds only", func(t *testing.T) {
		sig, err := ParseClassSignature("<T::Ljava/lang/Comparable<TT;>;:Ljava/io/Serializable;U:Ljava/lang/Object;>Ljava/lang/Object;")
		if err != nil {
			t.Fatalf("ParseClassSignature: %v", err)
		}
		if len(sig.TypeParameters) != 2 {
			t.Fatalf("TypeParameters = %v", sig.TypeParameters)
		}
		tp := sig.TypeParameters[0]
		if tp.ClassBound != nil {
			t.Errorf("ClassBound = %v, want nil", tp.ClassBound)
		}
		if len(tp.Bounds()) != 2 {
			t.Errorf("Bounds() = %v, want 2 bounds", tp.Bounds())
		}
		if sig.TypeParameters[1].Name != "U" {
			t.Errorf("TypeParameters[1].Name = %q", sig.TypeParameters[1].Name)
		}
	})
}

func TestParseMethodSignature(t *testing.T) {
	t.Run("generic method", func(t *testing.T) {
		sig, err := ParseMethodSignature("<T:Ljava/lang/Object;>(Ljava/util/List<+TT;>;I[TT;)TT;^Ljava/io/IOException;^TX;")
		if err != nil {
			t.Fatalf("ParseMethodSignature: %v", err)
		}
		if len(sig.TypeParameters) != 1 || sig.TypeParameters[0].Name != "T" {
			t.Errorf("TypeParameters = %v", sig.TypeParameters)
		}
		if len(sig.Parameters) != 3 {
			t.Fatalf("Parameters = %v", sig.Parameters)
		}
		if _, ok := sig.Parameters[1].(*BaseType); !ok {
			t.Errorf("Parameters[1] = %T, want *BaseType", sig.Parameters[1])
		}
		if _, ok := sig.Parameters[2].(*ArrayType); !ok {
			t.Errorf("Parameters[2] = %T, want *ArrayType", sig.Parameters[2])
		}
		if sig.IsVoid() {
			t.Error("IsVoid() = true, want false")
		}
		if len(sig.Throws) != 2 {
			t.Errorf("Throws = %v", sig.Throws)
		}
	})

	t.Run("void", func(t *testing.T) {
		sig, err := ParseMethodSignature("()V")
		if err != nil {
			t.Fatalf("ParseMethodSignature: %v", err)
		}
		if !sig.IsVoid() || len(sig.Parameters) != 0 {
			t.Errorf("sig = %+v", sig)
		}
	})
}

func TestSyntaxErrors(t *testing.T) {
	tests := []struct {
		name   string
		parse  func(string) error
		sig    string
		offset int
	}{
		{"void field", typeSig, "V", 0},
		{"unterminated class", typeSig, "Ljava/lang/String", 17},
		{"trailing input", typeSig, "II", 1},
		{"empty arguments", typeSig, "Ljava/util/List<>;", 17},
		{"bad argument", typeSig, "Ljava/util/List<I>;", 16},
		{"missing result", methodSig, "(I)", 3},
		{"missing paren", methodSig, "I)V", 0},
		{"void parameter", methodSig, "(V)V", 1},
		{"array thrown", methodSig, "()V^[Ljava/lang/Exception;", 26},
		{"missing superclass", classSig, "<T:Ljava/lang/Object;>", 22},
		{"unnamed parameter", classSig, "<:Ljava/lang/Object;>Ljava/lang/Object;", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.parse(tt.sig)
			var syntaxErr *SyntaxError
			if !errors.As(err, &syntaxErr) {
				t.Fatalf("err = %v, want *SyntaxError", err)
			}
			if syntaxErr.Offset != tt.offset {
				t.Errorf("Offset = %d, want %d (%v)", syntaxErr.Offset, tt.offset, err)
			}
			if syntaxErr.Signature != tt.sig {
				t.Errorf("Signature = %q, want %q", syntaxErr.Signature, tt.sig)
			}
		})
	}
}

func typeSig(s string) error {
	_, err := ParseTypeSignature(s)
	return err
}

func methodSig(s string) error {
	_, err := ParseMethodSignature(s)
	return err
}

func classSig(s string) error {
	_, err := ParseClassSignature(s)
	return err
}
