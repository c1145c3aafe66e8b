// Package classfiletest assembles small class files in memory so tests can
// exercise the class file reader and everything built on it without binary
// fixtures.
package classfiletest

import (
	"bytes"
	"encoding/binary"

	"github.com/dhamidi/jvmapi/classfile"
)

const MajorVersion = 52

type Class struct {
	Access     classfile.AccessFlags
	Name       string
	Super      string
	Interfaces []string
	Signature  string
	SourceFile string
	Deprecated bool

	Annotations          []string
	InvisibleAnnotations []string

	Fields  []Field
	Methods []Method
}

type Field struct {
	Access     classfile.AccessFlags
	Name       string
	Descriptor string
	// LongValue, when set, adds a ConstantValue attribute backed by a
	// two-slot CONSTANT_Long entry.
	LongValue *int64
}

type Method struct {
	Access     classfile.AccessFlags
	Name       string
	Descriptor string
	Signature  string
	Deprecated bool

	Annotations          []string
	InvisibleAnnotations []string
	ParameterAnnotations [][]string
	ParameterNames       []string

	// Code adds a trivial body with line number, local variable and stack
	// map tables.
	Code bool
}

// Bytes renders the class. Every annotation carries one element value pair
// holding an array of a string, an enum constant and a nested annotation, so
// readers must walk element values to stay aligned.
func (c Class) Bytes() []byte {
	w := &writer{pool: newPool()}
	body := &bytes.Buffer{}

	u2(body, uint16(c.Access))
	u2(body, w.pool.class(c.Name))
	if c.Super == "" {
		u2(body, 0)
	} else {
		u2(body, w.pool.class(c.Super))
	}
	u2(body, uint16(len(c.Interfaces)))
	for _, iface := range c.Interfaces {
		u2(body, w.pool.class(iface))
	}

	u2(body, uint16(len(c.Fields)))
	for _, f := range c.Fields {
		w.field(body, f)
	}

	u2(body, uint16(len(c.Methods)))
	for _, m := range c.Methods {
		w.method(body, m)
	}

	var attrs []attribute
	if c.Signature != "" {
		attrs = append(attrs, w.indexAttribute("Signature", c.Signature))
	}
	if c.SourceFile != "" {
		attrs = append(attrs, w.indexAttribute("SourceFile", c.SourceFile))
	}
	if c.Deprecated {
		attrs = append(attrs, attribute{name: "Deprecated"})
	}
	if len(c.Annotations) > 0 {
		attrs = append(attrs, w.annotations("RuntimeVisibleAnnotations", c.Annotations))
	}
	if len(c.InvisibleAnnotations) > 0 {
		attrs = append(attrs, w.annotations("RuntimeInvisibleAnnotations", c.InvisibleAnnotations))
	}
	w.attributes(body, attrs)

	out := &bytes.Buffer{}
	u4(out, classfile.Magic)
	u2(out, 0)
	u2(out, MajorVersion)
	w.pool.writeTo(out)
	out.Write(body.Bytes())
	return out.Bytes()
}

type attribute struct {
	name string
	info []byte
}

type writer struct {
	pool *pool
}

func (w *writer) field(buf *bytes.Buffer, f Field) {
	u2(buf, uint16(f.Access))
	u2(buf, w.pool.utf8(f.Name))
	u2(buf, w.pool.utf8(f.Descriptor))
	var attrs []attribute
	if f.LongValue != nil {
		info := &bytes.Buffer{}
		u2(info, w.pool.long(*f.LongValue))
		attrs = append(attrs, attribute{name: "ConstantValue", info: info.Bytes()})
	}
	w.attributes(buf, attrs)
}

func (w *writer) method(buf *bytes.Buffer, m Method) {
	u2(buf, uint16(m.Access))
	u2(buf, w.pool.utf8(m.Name))
	u2(buf, w.pool.utf8(m.Descriptor))

	var attrs []attribute
	if m.Code {
		attrs = append(attrs, w.code())
	}
	if m.Signature != "" {
		attrs = append(attrs, w.indexAttribute("Signature", m.Signature))
	}
	if m.Deprecated {
		attrs = append(attrs, attribute{name: "Deprecated"})
	}
	if len(m.Annotations) > 0 {
		attrs = append(attrs, w.annotations("RuntimeVisibleAnnotations", m.Annotations))
	}
	if len(m.InvisibleAnnotations) > 0 {
		attrs = append(attrs, w.annotations("RuntimeInvisibleAnnotations", m.InvisibleAnnotations))
	}
	if m.ParameterAnnotations != nil {
		info := &bytes.Buffer{}
		info.WriteByte(byte(len(m.ParameterAnnotations)))
		for _, descs := range m.ParameterAnnotations {
			u2(info, uint16(len(descs)))
			for _, desc := range descs {
				w.annotation(info, desc)
			}
		}
		attrs = append(attrs, attribute{name: "RuntimeVisibleParameterAnnotations", info: info.Bytes()})
	}
	if m.ParameterNames != nil {
		info := &bytes.Buffer{}
		info.WriteByte(byte(len(m.ParameterNames)))
		for _, name := range m.ParameterNames {
			if name == "" {
				u2(info, 0)
			} else {
				u2(info, w.pool.utf8(name))
			}
			u2(info, 0)
		}
		attrs = append(attrs, attribute{name: "MethodParameters", info: info.Bytes()})
	}
	w.attributes(buf, attrs)
}

func (w *writer) code() attribute {
	info := &bytes.Buffer{}
	u2(info, 1)
	u2(info, 1)
	bytecode := []byte{0x2a, 0xb1} // aload_0, return
	u4(info, uint32(len(bytecode)))
	info.Write(bytecode)
	u2(info, 0)

	lines := &bytes.Buffer{}
	u2(lines, 1)
	u2(lines, 0)
	u2(lines, 42)

	locals := &bytes.Buffer{}
	u2(locals, 1)
	u2(locals, 0)
	u2(locals, uint16(len(bytecode)))
	u2(locals, w.pool.utf8("this"))
	u2(locals, w.pool.utf8("Ljava/lang/Object;"))
	u2(locals, 0)

	frames := &bytes.Buffer{}
	u2(frames, 1)
	frames.WriteByte(0) // same_frame

	w.attributes(info, []attribute{
		{name: "LineNumberTable", info: lines.Bytes()},
		{name: "LocalVariableTable", info: locals.Bytes()},
		{name: "StackMapTable", info: frames.Bytes()},
	})
	return attribute{name: "Code", info: info.Bytes()}
}

func (w *writer) indexAttribute(name, value string) attribute {
	info := &bytes.Buffer{}
	u2(info, w.pool.utf8(value))
	return attribute{name: name, info: info.Bytes()}
}

func (w *writer) annotations(name string, descs []string) attribute {
	info := &bytes.Buffer{}
	u2(info, uint16(len(descs)))
	for _, desc := range descs {
		w.annotation(info, desc)
	}
	return attribute{name: name, info: info.Bytes()}
}

func (w *writer) annotation(buf *bytes.Buffer, desc string) {
	u2(buf, w.pool.utf8(desc))
	u2(buf, 1)
	u2(buf, w.pool.utf8("value"))

	buf.WriteByte('[')
	u2(buf, 3)

	buf.WriteByte('s')
	u2(buf, w.pool.utf8("since 1.0"))

	buf.WriteByte('e')
	u2(buf, w.pool.utf8("Ljava/lang/annotation/RetentionPolicy;"))
	u2(buf, w.pool.utf8("RUNTIME"))

	buf.WriteByte('@')
	u2(buf, w.pool.utf8("Ljava/lang/annotation/Documented;"))
	u2(buf, 1)
	u2(buf, w.pool.utf8("level"))
	buf.WriteByte('I')
	u2(buf, w.pool.integer(3))
}

func (w *writer) attributes(buf *bytes.Buffer, attrs []attribute) {
	u2(buf, uint16(len(attrs)))
	for _, attr := range attrs {
		u2(buf, w.pool.utf8(attr.name))
		u4(buf, uint32(len(attr.info)))
		buf.Write(attr.info)
	}
}

type pool struct {
	buf   bytes.Buffer
	next  uint16
	utf8s map[string]uint16
	names map[string]uint16
}

func newPool() *pool {
	return &pool{next: 1, utf8s: map[string]uint16{}, names: map[string]uint16{}}
}

func (p *pool) utf8(s string) uint16 {
	if idx, ok := p.utf8s[s]; ok {
		return idx
	}
	p.buf.WriteByte(byte(classfile.ConstantUtf8))
	u2(&p.buf, uint16(len(s)))
	p.buf.WriteString(s)
	idx := p.take(1)
	p.utf8s[s] = idx
	return idx
}

func (p *pool) class(name string) uint16 {
	if idx, ok := p.names[name]; ok {
		return idx
	}
	nameIndex := p.utf8(name)
	p.buf.WriteByte(byte(classfile.ConstantClass))
	u2(&p.buf, nameIndex)
	idx := p.take(1)
	p.names[name] = idx
	return idx
}

func (p *pool) integer(v int32) uint16 {
	p.buf.WriteByte(byte(classfile.ConstantInteger))
	u4(&p.buf, uint32(v))
	return p.take(1)
}

func (p *pool) long(v int64) uint16 {
	p.buf.WriteByte(byte(classfile.ConstantLong))
	u4(&p.buf, uint32(uint64(v)>>32))
	u4(&p.buf, uint32(v))
	return p.take(2)
}

func (p *pool) take(slots uint16) uint16 {
	idx := p.next
	p.next += slots
	return idx
}

func (p *pool) writeTo(buf *bytes.Buffer) {
	u2(buf, p.next)
	buf.Write(p.buf.Bytes())
}

func u2(buf *bytes.Buffer, v uint16) {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], v)
	buf.Write(b[:])
}

func u4(buf *bytes.Buffer, v uint32) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	buf.Write(b[:])
}
