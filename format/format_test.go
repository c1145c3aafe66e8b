package format

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/dhamidi/jvmapi/api"
	"github.com/dhamidi/jvmapi/api/apitest"
	"github.com/dhamidi/jvmapi/classfile"
	"github.com/dhamidi/jvmapi/classfile/classfiletest"
	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func finderProvider(t *testing.T) *api.Provider {
	t.Helper()
	repo := apitest.NewRepository(
		classfiletest.Class{
			Access:    classfile.AccPublic | classfile.AccInterface | classfile.AccAbstract,
			Name:      "com/example/Finder",
			Super:     "java/lang/Object",
			Signature: "<T:Ljava/lang/Object;>Ljava/lang/Object;",
			Methods: []classfiletest.Method{{
				Access:               classfile.AccPublic | classfile.AccAbstract,
				Name:                 "find",
				Descriptor:           "(Ljava/lang/String;Ljava/lang/Object;)Ljava/lang/Object;",
				Signature:            "(Ljava/lang/String;TT;)TT;",
				InvisibleAnnotations: []string{"Ljavax/annotation/Nullable;"},
				ParameterAnnotations: [][]string{nil, {"Lorg/jetbrains/annotations/Nullable;"}},
				ParameterNames:       []string{"key", "fallback"},
			}},
		},
		classfiletest.Class{
			Access:      classfile.AccPublic | classfile.AccSuper,
			Name:        "com/example/Legacy",
			Super:       "java/lang/Object",
			Annotations: []string{"Ljava/lang/Deprecated;"},
			Methods: []classfiletest.Method{
				{Access: classfile.AccPublic | classfile.AccStatic, Name: "count", Descriptor: "([I)I", Code: true},
				{Access: classfile.AccPublic | classfile.AccVarargs, Name: "join", Descriptor: "([Ljava/lang/String;)V", Code: true},
				{Access: classfile.AccPublic, Name: "<init>", Descriptor: "()V", Code: true},
			},
		},
	)
	p := api.NewProvider(repo)
	t.Cleanup(func() { p.Close() })
	return p
}

func lookup(t *testing.T, p *api.Provider, name string) *api.Type {
	t.Helper()
	typ, err := p.Type(name)
	require.NoError(t, err)
	require.NotNil(t, typ, name)
	return typ
}

func TestLineEncoder(t *testing.T) {
	p := finderProvider(t)

	tests := []struct {
		name string
		want string
	}{
		{
			name: "com.example.Finder",
			want: "interface\tcom.example.Finder\tpublic,sam\n" +
				"typeparam\tT\tkotlin.Any\n" +
				"function\tfind\tkey: kotlin.String, fallback: T?\tT?\tpublic\n",
		},
		{
			name: "com.example.Legacy",
			want: "class\tcom.example.Legacy\tpublic,deprecated\n" +
				"function\tcount\tkotlin.Array<kotlin.Int>\tkotlin.Int\tpublic,static,deprecated\n" +
				"function\tjoin\tvararg kotlin.Array<kotlin.String>\tkotlin.Unit\tpublic,deprecated\n" +
				"function\t<init>\t-\tkotlin.Unit\tpublic,constructor,deprecated\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, NewLineEncoder(&buf).Encode(lookup(t, p, tt.name)))
			assert.Equal(t, tt.want, buf.String())
		})
	}
}

func TestJSONEncoder(t *testing.T) {
	p := finderProvider(t)

	var buf bytes.Buffer
	require.NoError(t, NewJSONEncoder(&buf).Encode(lookup(t, p, "com.example.Finder")))

	var got typeData
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "com.example.Finder", got.Name)
	assert.Equal(t, "interface", got.Kind)
	assert.True(t, got.SAM)
	require.Len(t, got.TypeParameters, 1)
	assert.Equal(t, "T", got.TypeParameters[0].Name)
	require.Len(t, got.TypeParameters[0].Bounds, 1)
	assert.Equal(t, "kotlin.Any", got.TypeParameters[0].Bounds[0].Name)

	require.Len(t, got.Functions, 1)
	find := got.Functions[0]
	assert.Equal(t, "find", find.Name)
	require.Len(t, find.Parameters, 2)
	assert.Equal(t, "key", find.Parameters[0].Name)
	assert.False(t, find.Parameters[0].Type.Nullable)
	assert.Equal(t, "fallback", find.Parameters[1].Name)
	assert.True(t, find.Parameters[1].Type.Nullable)
	assert.Equal(t, "T", find.ReturnType.Name)
	assert.True(t, find.ReturnType.Nullable)
	assert.Equal(t, byte('\n'), buf.Bytes()[buf.Len()-1])
}

func TestCBOREncoder(t *testing.T) {
	p := finderProvider(t)

	var buf bytes.Buffer
	enc := NewCBOREncoder(&buf)
	require.NoError(t, enc.Encode(lookup(t, p, "com.example.Finder")))
	require.NoError(t, enc.Encode(lookup(t, p, "com.example.Legacy")))

	dec := cbor.NewDecoder(&buf)
	var first, second typeData
	require.NoError(t, dec.Decode(&first))
	require.NoError(t, dec.Decode(&second))
	assert.Equal(t, "com.example.Finder", first.Name)
	assert.Equal(t, "com.example.Legacy", second.Name)
	assert.True(t, second.Deprecated)

	require.Len(t, second.Functions, 3)
	assert.True(t, second.Functions[2].Constructor)
	join := second.Functions[1]
	require.Len(t, join.Parameters, 1)
	assert.True(t, join.Parameters[0].Varargs)
	assert.Equal(t, "kotlin.Array", join.Parameters[0].Type.Name)
	assert.Equal(t, "kotlin.String", join.Parameters[0].Type.Arguments[0].Name)
	assert.Equal(t, "kotlin.Unit", join.ReturnType.Name)

	t.Run("canonical", func(t *testing.T) {
		again, err := (&CBOREncoder{typ: lookup(t, p, "com.example.Legacy")}).MarshalBinary()
		require.NoError(t, err)
		want, err := cborEncMode.Marshal(second)
		require.NoError(t, err)
		assert.Equal(t, want, again)
	})
}

func TestEncodeAfterClose(t *testing.T) {
	p := finderProvider(t)
	typ := lookup(t, p, "com.example.Legacy")
	require.NoError(t, p.Close())

	for name, enc := range map[string]Encoder{
		"line": NewLineEncoder(&bytes.Buffer{}),
		"json": NewJSONEncoder(&bytes.Buffer{}),
		"cbor": NewCBOREncoder(&bytes.Buffer{}),
	} {
		t.Run(name, func(t *testing.T) {
			assert.ErrorIs(t, enc.Encode(typ), api.ErrClosed)
		})
	}
}
