package classfile

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

type reader struct {
	r   io.Reader
	err error
}

func (r *reader) readU1() uint8 {
	if r.err != nil {
		return 0
	}
	var buf [1]byte
	_, r.err = io.ReadFull(r.r, buf[:])
	return buf[0]
}

func (r *reader) readU2() uint16 {
	if r.err != nil {
		return 0
	}
	var buf [2]byte
	_, r.err = io.ReadFull(r.r, buf[:])
	return binary.BigEndian.Uint16(buf[:])
}

func (r *reader) readU4() uint32 {
	if r.err != nil {
		return 0
	}
	var buf [4]byte
	_, r.err = io.ReadFull(r.r, buf[:])
	return binary.BigEndian.Uint32(buf[:])
}

func (r *reader) readBytes(n int) []byte {
	if r.err != nil {
		return nil
	}
	buf := make([]byte, n)
	_, r.err = io.ReadFull(r.r, buf)
	return buf
}

func (r *reader) skip(n int64) {
	if r.err != nil || n == 0 {
		return
	}
	var copied int64
	copied, r.err = io.CopyN(io.Discard, r.r, n)
	if r.err == nil && copied != n {
		r.err = io.ErrUnexpectedEOF
	}
}

type parseOptions struct {
	skipCode   bool
	skipDebug  bool
	skipFrames bool
}

// ParseOption tunes how much of a class file is retained. The API model only
// needs declarations, so it reads with all three skips enabled.
type ParseOption func(*parseOptions)

// SkipCode drops Code attributes entirely: MethodNode.Code stays nil.
func SkipCode() ParseOption {
	return func(o *parseOptions) { o.skipCode = true }
}

// SkipDebug drops SourceFile, LineNumberTable and LocalVariableTable.
func SkipDebug() ParseOption {
	return func(o *parseOptions) { o.skipDebug = true }
}

// SkipFrames drops StackMapTable attributes.
func SkipFrames() ParseOption {
	return func(o *parseOptions) { o.skipFrames = true }
}

func ParseFile(path string, opts ...ParseOption) (*ClassNode, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open class file: %w", err)
	}
	defer f.Close()
	return Parse(f, opts...)
}

func ParseBytes(data []byte, opts ...ParseOption) (*ClassNode, error) {
	return Parse(bytes.NewReader(data), opts...)
}

type parser struct {
	r    *reader
	cp   ConstantPool
	opts parseOptions
}

func Parse(rd io.Reader, opts ...ParseOption) (*ClassNode, error) {
	p := &parser{r: &reader{r: rd}}
	for _, opt := range opts {
		opt(&p.opts)
	}
	r := p.r

	magic := r.readU4()
	if r.err != nil {
		return nil, fmt.Errorf("failed to read magic: %w", r.err)
	}
	if magic != Magic {
		return nil, fmt.Errorf("invalid magic number: 0x%X (expected 0xCAFEBABE)", magic)
	}

	cn := &ClassNode{
		MinorVersion: r.readU2(),
		MajorVersion: r.readU2(),
	}
	if r.err != nil {
		return nil, fmt.Errorf("failed to read version: %w", r.err)
	}

	if err := p.readConstantPool(); err != nil {
		return nil, err
	}

	cn.AccessFlags = AccessFlags(r.readU2())
	thisClass := r.readU2()
	superClass := r.readU2()
	interfacesCount := r.readU2()
	if r.err != nil {
		return nil, fmt.Errorf("failed to read class info: %w", r.err)
	}
	cn.Name = p.cp.GetClassName(thisClass)
	if superClass != 0 {
		cn.SuperName = p.cp.GetClassName(superClass)
	}

	cn.Interfaces = make([]string, 0, interfacesCount)
	for i := uint16(0); i < interfacesCount; i++ {
		cn.Interfaces = append(cn.Interfaces, p.cp.GetClassName(r.readU2()))
	}
	if r.err != nil {
		return nil, fmt.Errorf("failed to read interfaces: %w", r.err)
	}

	fieldsCount := r.readU2()
	if r.err != nil {
		return nil, fmt.Errorf("failed to read fields count: %w", r.err)
	}
	for i := uint16(0); i < fieldsCount; i++ {
		if err := p.skipField(); err != nil {
			return nil, fmt.Errorf("failed to read field %d: %w", i, err)
		}
	}
	cn.FieldCount = int(fieldsCount)

	methodsCount := r.readU2()
	if r.err != nil {
		return nil, fmt.Errorf("failed to read methods count: %w", r.err)
	}
	cn.Methods = make([]MethodNode, methodsCount)
	for i := uint16(0); i < methodsCount; i++ {
		if err := p.readMethod(&cn.Methods[i]); err != nil {
			return nil, fmt.Errorf("failed to read method %d: %w", i, err)
		}
	}

	attrs, err := p.readAttributes(p.wantClassAttribute)
	if err != nil {
		return nil, fmt.Errorf("failed to read class attributes: %w", err)
	}
	for _, attr := range attrs {
		switch attr.name {
		case attrSignature:
			cn.Signature, err = p.parseSignature(attr.info)
		case attrSourceFile:
			cn.SourceFile, err = p.parseSourceFile(attr.info)
		case attrDeprecated:
			cn.Deprecated = true
		case attrRuntimeVisibleAnnotations, attrRuntimeInvisibleAnnotations:
			var descs []string
			descs, err = p.parseAnnotations(attr.info)
			cn.Annotations = append(cn.Annotations, descs...)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s attribute: %w", attr.name, err)
		}
	}

	return cn, nil
}

func (p *parser) readConstantPool() error {
	r := p.r
	count := r.readU2()
	if r.err != nil {
		return fmt.Errorf("failed to read constant pool count: %w", r.err)
	}
	if count == 0 {
		return fmt.Errorf("invalid constant pool count: 0")
	}

	p.cp = make(ConstantPool, count)
	for i := uint16(1); i < count; i++ {
		tag := ConstantTag(r.readU1())
		if r.err != nil {
			return fmt.Errorf("failed to read constant pool entry %d: %w", i, r.err)
		}

		switch tag {
		case ConstantUtf8:
			length := r.readU2()
			data := r.readBytes(int(length))
			p.cp[i] = &ConstantUtf8Info{Value: decodeModifiedUtf8(data)}
		case ConstantClass:
			p.cp[i] = &ConstantClassInfo{NameIndex: r.readU2()}
		default:
			size, ok := tag.payloadSize()
			if !ok {
				return fmt.Errorf("unknown constant pool tag: %d", tag)
			}
			r.skip(int64(size))
			p.cp[i] = &ConstantOtherInfo{tag: tag}
			if tag == ConstantLong || tag == ConstantDouble {
				i++
			}
		}
		if r.err != nil {
			return fmt.Errorf("failed to read constant pool entry %d: %w", i, r.err)
		}
	}
	return nil
}

func (p *parser) skipField() error {
	p.r.skip(6)
	if _, err := p.readAttributes(func(string) bool { return false }); err != nil {
		return err
	}
	return p.r.err
}

func (p *parser) readMethod(m *MethodNode) error {
	r := p.r
	m.AccessFlags = AccessFlags(r.readU2())
	m.Name = p.cp.GetUtf8(r.readU2())
	m.Descriptor = p.cp.GetUtf8(r.readU2())
	if r.err != nil {
		return r.err
	}

	attrs, err := p.readAttributes(p.wantMethodAttribute)
	if err != nil {
		return err
	}
	for _, attr := range attrs {
		switch attr.name {
		case attrSignature:
			m.Signature, err = p.parseSignature(attr.info)
		case attrDeprecated:
			m.Deprecated = true
		case attrRuntimeVisibleAnnotations, attrRuntimeInvisibleAnnotations:
			var descs []string
			descs, err = p.parseAnnotations(attr.info)
			m.Annotations = append(m.Annotations, descs...)
		case attrRuntimeVisibleParameterAnnotations, attrRuntimeInvisibleParameterAnnotations:
			var params [][]string
			params, err = p.parseParameterAnnotations(attr.info)
			m.ParameterAnnotations = mergeParameterAnnotations(m.ParameterAnnotations, params)
		case attrMethodParameters:
			m.ParameterNames, err = p.parseMethodParameters(attr.info)
		case attrCode:
			m.Code, err = p.parseCode(attr.info)
		}
		if err != nil {
			return fmt.Errorf("%s attribute: %w", attr.name, err)
		}
	}
	return nil
}

type rawAttribute struct {
	name string
	info []byte
}

// readAttributes reads an attribute table and keeps the bodies of the
// attributes accepted by want; all others are skipped without allocating.
func (p *parser) readAttributes(want func(name string) bool) ([]rawAttribute, error) {
	r := p.r
	count := r.readU2()
	if r.err != nil {
		return nil, r.err
	}

	var attrs []rawAttribute
	for i := uint16(0); i < count; i++ {
		nameIndex := r.readU2()
		length := r.readU4()
		if r.err != nil {
			return nil, r.err
		}
		name := p.cp.GetUtf8(nameIndex)
		if !want(name) {
			r.skip(int64(length))
			continue
		}
		info := r.readBytes(int(length))
		if r.err != nil {
			return nil, r.err
		}
		attrs = append(attrs, rawAttribute{name: name, info: info})
	}
	return attrs, nil
}

func (p *parser) wantClassAttribute(name string) bool {
	switch name {
	case attrSignature, attrDeprecated, attrRuntimeVisibleAnnotations, attrRuntimeInvisibleAnnotations:
		return true
	case attrSourceFile:
		return !p.opts.skipDebug
	}
	return false
}

func (p *parser) wantMethodAttribute(name string) bool {
	switch name {
	case attrSignature, attrDeprecated, attrMethodParameters,
		attrRuntimeVisibleAnnotations, attrRuntimeInvisibleAnnotations,
		attrRuntimeVisibleParameterAnnotations, attrRuntimeInvisibleParameterAnnotations:
		return true
	case attrCode:
		return !p.opts.skipCode
	}
	return false
}

func (p *parser) wantCodeAttribute(name string) bool {
	switch name {
	case attrLineNumberTable, attrLocalVariableTable:
		return !p.opts.skipDebug
	case attrStackMapTable:
		return !p.opts.skipFrames
	}
	return false
}

func mergeParameterAnnotations(dst, src [][]string) [][]string {
	for len(dst) < len(src) {
		dst = append(dst, nil)
	}
	for i, descs := range src {
		dst[i] = append(dst[i], descs...)
	}
	return dst
}

func decodeModifiedUtf8(data []byte) string {
	runes := make([]rune, 0, len(data))
	i := 0
	for i < len(data) {
		b := data[i]
		switch {
		case b&0x80 == 0:
			runes = append(runes, rune(b))
			i++
		case b&0xE0 == 0xC0 && i+1 < len(data):
			runes = append(runes, rune(b&0x1F)<<6|rune(data[i+1]&0x3F))
			i += 2
		case b&0xF0 == 0xE0 && i+2 < len(data):
			r := rune(b&0x0F)<<12 | rune(data[i+1]&0x3F)<<6 | rune(data[i+2]&0x3F)
			// Supplementary characters are stored as two encoded surrogates.
			if r >= 0xD800 && r <= 0xDBFF && i+5 < len(data) && data[i+3]&0xF0 == 0xE0 {
				low := rune(data[i+3]&0x0F)<<12 | rune(data[i+4]&0x3F)<<6 | rune(data[i+5]&0x3F)
				if low >= 0xDC00 && low <= 0xDFFF {
					runes = append(runes, 0x10000+((r-0xD800)<<10)+(low-0xDC00))
					i += 6
					continue
				}
			}
			runes = append(runes, r)
			i += 3
		default:
			runes = append(runes, rune(b))
			i++
		}
	}
	return string(runes)
}
