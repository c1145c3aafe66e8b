package classfile

import (
	"bytes"
	"fmt"
)

func (p *parser) infoReader(info []byte) *reader {
	return &reader{r: bytes.NewReader(info)}
}

func (p *parser) parseSignature(info []byte) (string, error) {
	r := p.infoReader(info)
	index := r.readU2()
	if r.err != nil {
		return "", r.err
	}
	return p.cp.GetUtf8(index), nil
}

func (p *parser) parseSourceFile(info []byte) (string, error) {
	r := p.infoReader(info)
	index := r.readU2()
	if r.err != nil {
		return "", r.err
	}
	return p.cp.GetUtf8(index), nil
}

// parseAnnotations returns the type descriptor of every annotation in a
// Runtime(In)VisibleAnnotations attribute. Element values are walked only to
// find where the next annotation starts.
func (p *parser) parseAnnotations(info []byte) ([]string, error) {
	r := p.infoReader(info)
	count := r.readU2()
	descs := make([]string, 0, count)
	for i := uint16(0); i < count; i++ {
		descs = append(descs, p.readAnnotation(r))
	}
	if r.err != nil {
		return nil, r.err
	}
	return descs, nil
}

func (p *parser) parseParameterAnnotations(info []byte) ([][]string, error) {
	r := p.infoReader(info)
	numParameters := r.readU1()
	params := make([][]string, numParameters)
	for i := range params {
		count := r.readU2()
		for j := uint16(0); j < count; j++ {
			params[i] = append(params[i], p.readAnnotation(r))
		}
	}
	if r.err != nil {
		return nil, r.err
	}
	return params, nil
}

func (p *parser) readAnnotation(r *reader) string {
	typeIndex := r.readU2()
	numPairs := r.readU2()
	for i := uint16(0); i < numPairs && r.err == nil; i++ {
		r.skip(2)
		p.skipElementValue(r)
	}
	return p.cp.GetUtf8(typeIndex)
}

func (p *parser) skipElementValue(r *reader) {
	tag := r.readU1()
	if r.err != nil {
		return
	}
	switch tag {
	case 'B', 'C', 'D', 'F', 'I', 'J', 'S', 'Z', 's', 'c':
		r.skip(2)
	case 'e':
		r.skip(4)
	case '@':
		p.readAnnotation(r)
	case '[':
		count := r.readU2()
		for i := uint16(0); i < count && r.err == nil; i++ {
			p.skipElementValue(r)
		}
	default:
		r.err = fmt.Errorf("unknown element value tag %q", tag)
	}
}

// parseMethodParameters returns the recorded parameter names; entries
// without a name (index 0) come back empty.
func (p *parser) parseMethodParameters(info []byte) ([]string, error) {
	r := p.infoReader(info)
	count := r.readU1()
	names := make([]string, count)
	for i := range names {
		names[i] = p.cp.GetUtf8(r.readU2())
		r.skip(2)
	}
	if r.err != nil {
		return nil, r.err
	}
	return names, nil
}

func (p *parser) parseCode(info []byte) (*Code, error) {
	r := p.infoReader(info)
	code := &Code{
		MaxStack:  r.readU2(),
		MaxLocals: r.readU2(),
	}
	codeLength := r.readU4()
	code.Bytecode = r.readBytes(int(codeLength))
	exceptionTableLength := r.readU2()
	r.skip(int64(exceptionTableLength) * 8)
	if r.err != nil {
		return nil, r.err
	}

	nested := &parser{r: r, cp: p.cp, opts: p.opts}
	attrs, err := nested.readAttributes(p.wantCodeAttribute)
	if err != nil {
		return nil, err
	}
	for _, attr := range attrs {
		ar := p.infoReader(attr.info)
		switch attr.name {
		case attrLineNumberTable:
			count := ar.readU2()
			for i := uint16(0); i < count; i++ {
				code.LineNumbers = append(code.LineNumbers, LineNumber{
					StartPC:    ar.readU2(),
					LineNumber: ar.readU2(),
				})
			}
		case attrLocalVariableTable:
			count := ar.readU2()
			for i := uint16(0); i < count; i++ {
				code.LocalVariables = append(code.LocalVariables, LocalVariable{
					StartPC:    ar.readU2(),
					Length:     ar.readU2(),
					Name:       p.cp.GetUtf8(ar.readU2()),
					Descriptor: p.cp.GetUtf8(ar.readU2()),
					Index:      ar.readU2(),
				})
			}
		case attrStackMapTable:
			code.StackMapFrames = int(ar.readU2())
		}
		if ar.err != nil {
			return nil, fmt.Errorf("%s attribute: %w", attr.name, ar.err)
		}
	}
	return code, nil
}
