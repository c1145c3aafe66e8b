package signature

import (
	"fmt"
	"strings"
)

type SyntaxError struct {
	Signature string
	Offset    int
	Msg       string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("signature %q: offset %d: %s", e.Signature, e.Offset, e.Msg)
}

type parser struct {
	src string
	pos int
}

func ParseClassSignature(s string) (*ClassSignature, error) {
	p := &parser{src: s}
	sig := &ClassSignature{}
	var err error
	if sig.TypeParameters, err = p.typeParameters(); err != nil {
		return nil, err
	}
	if sig.SuperClass, err = p.classType(); err != nil {
		return nil, err
	}
	for !p.eof() {
		iface, err := p.classType()
		if err != nil {
			return nil, err
		}
		sig.Interfaces = append(sig.Interfaces, iface)
	}
	return sig, nil
}

func ParseMethodSignature(s string) (*MethodSignature, error) {
	p := &parser{src: s}
	sig := &MethodSignature{}
	var err error
	if sig.TypeParameters, err = p.typeParameters(); err != nil {
		return nil, err
	}
	if err := p.expect('('); err != nil {
		return nil, err
	}
	for p.peek() != ')' {
		if p.eof() {
			return nil, p.errorf("unterminated parameter list")
		}
		param, err := p.javaType()
		if err != nil {
			return nil, err
		}
		sig.Parameters = append(sig.Parameters, param)
	}
	p.pos++

	if p.peek() == 'V' {
		p.pos++
		sig.Result = &BaseType{Descriptor: 'V'}
	} else if sig.Result, err = p.javaType(); err != nil {
		return nil, err
	}

	for !p.eof() {
		if err := p.expect('^'); err != nil {
			return nil, err
		}
		thrown, err := p.referenceType()
		if err != nil {
			return nil, err
		}
		if _, ok := thrown.(*ArrayType); ok {
			return nil, p.errorf("array type in throws clause")
		}
		sig.Throws = append(sig.Throws, thrown)
	}
	return sig, nil
}

// ParseTypeSignature parses a field or type-use signature such as
// "Ljava/util/List<Ljava/lang/String;>;" and requires the whole input to be
// consumed.
func ParseTypeSignature(s string) (TypeSignature, error) {
	p := &parser{src: s}
	t, err := p.javaType()
	if err != nil {
		return nil, err
	}
	if !p.eof() {
		return nil, p.errorf("unexpected trailing input %q", s[p.pos:])
	}
	return t, nil
}

func (p *parser) eof() bool {
	return p.pos >= len(p.src)
}

func (p *parser) peek() byte {
	if p.eof() {
		return 0
	}
	return p.src[p.pos]
}

func (p *parser) expect(c byte) error {
	if p.peek() != c {
		if p.eof() {
			return p.errorf("expected %q, found end of input", c)
		}
		return p.errorf("expected %q, found %q", c, p.peek())
	}
	p.pos++
	return nil
}

func (p *parser) errorf(format string, args ...any) error {
	return &SyntaxError{Signature: p.src, Offset: p.pos, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) typeParameters() ([]TypeParameter, error) {
	if p.peek() != '<' {
		return nil, nil
	}
	p.pos++

	var params []TypeParameter
	for p.peek() != '>' {
		if p.eof() {
			return nil, p.errorf("unterminated type parameter list")
		}
		param, err := p.typeParameter()
		if err != nil {
			return nil, err
		}
		params = append(params, param)
	}
	p.pos++
	if len(params) == 0 {
		return nil, p.errorf("empty type parameter list")
	}
	return params, nil
}

func (p *parser) typeParameter() (TypeParameter, error) {
	param := TypeParameter{Name: p.identifier()}
	if param.Name == "" {
		return param, p.errorf("missing type parameter name")
	}

	if err := p.expect(':'); err != nil {
		return param, err
	}
	if c := p.peek(); c != ':' && c != '>' {
		bound, err := p.referenceType()
		if err != nil {
			return param, err
		}
		param.ClassBound = bound
	}
	for p.peek() == ':' {
		p.pos++
		bound, err := p.referenceType()
		if err != nil {
			return param, err
		}
		param.InterfaceBounds = append(param.InterfaceBounds, bound)
	}
	return param, nil
}

func (p *parser) javaType() (TypeSignature, error) {
	if c := p.peek(); c != 'V' {
		if _, ok := baseTypeNames[c]; ok {
			p.pos++
			return &BaseType{Descriptor: c}, nil
		}
	}
	return p.referenceType()
}

func (p *parser) referenceType() (TypeSignature, error) {
	switch p.peek() {
	case 'L':
		return p.classType()
	case 'T':
		p.pos++
		name := p.identifier()
		if name == "" {
			return nil, p.errorf("missing type variable name")
		}
		if err := p.expect(';'); err != nil {
			return nil, err
		}
		return &TypeVariable{Name: name}, nil
	case '[':
		p.pos++
		elem, err := p.javaType()
		if err != nil {
			return nil, err
		}
		return &ArrayType{Element: elem}, nil
	case 0:
		return nil, p.errorf("expected type, found end of input")
	}
	return nil, p.errorf("unexpected %q, expected type", p.peek())
}

func (p *parser) classType() (*ClassType, error) {
	if err := p.expect('L'); err != nil {
		return nil, err
	}

	start := p.pos
	for !p.eof() && strings.IndexByte("<.;", p.peek()) < 0 {
		p.pos++
	}
	path := p.src[start:p.pos]
	ct := &ClassType{}
	if slash := strings.LastIndexByte(path, '/'); slash >= 0 {
		ct.Package = path[:slash]
		path = path[slash+1:]
	}
	if path == "" {
		return nil, p.errorf("missing class name")
	}

	seg := ClassSegment{Name: path}
	for {
		args, err := p.typeArguments()
		if err != nil {
			return nil, err
		}
		seg.Arguments = args
		ct.Segments = append(ct.Segments, seg)

		if p.peek() != '.' {
			break
		}
		p.pos++
		seg = ClassSegment{Name: p.identifier()}
		if seg.Name == "" {
			return nil, p.errorf("missing inner class name")
		}
	}

	if err := p.expect(';'); err != nil {
		return nil, err
	}
	return ct, nil
}

func (p *parser) typeArguments() ([]TypeArgument, error) {
	if p.peek() != '<' {
		return nil, nil
	}
	p.pos++

	var args []TypeArgument
	for p.peek() != '>' {
		if p.eof() {
			return nil, p.errorf("unterminated type argument list")
		}
		arg, err := p.typeArgument()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	p.pos++
	if len(args) == 0 {
		return nil, p.errorf("empty type argument list")
	}
	return args, nil
}

func (p *parser) typeArgument() (TypeArgument, error) {
	var arg TypeArgument
	switch p.peek() {
	case '*':
		p.pos++
		arg.Wildcard = WildcardUnbounded
		return arg, nil
	case '+':
		p.pos++
		arg.Wildcard = WildcardExtends
	case '-':
		p.pos++
		arg.Wildcard = WildcardSuper
	}
	t, err := p.referenceType()
	if err != nil {
		return arg, err
	}
	arg.Type = t
	return arg, nil
}

// identifier reads up to the next character the grammar reserves.
func (p *parser) identifier() string {
	start := p.pos
	for !p.eof() && strings.IndexByte(".;[/<>:", p.peek()) < 0 {
		p.pos++
	}
	return p.src[start:p.pos]
}
