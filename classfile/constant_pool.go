package classfile

type ConstantPoolEntry interface {
	Tag() ConstantTag
}

type ConstantUtf8Info struct {
	Value string
}

func (c *ConstantUtf8Info) Tag() ConstantTag { return ConstantUtf8 }

type ConstantClassInfo struct {
	NameIndex uint16
}

func (c *ConstantClassInfo) Tag() ConstantTag { return ConstantClass }

// ConstantOtherInfo stands in for entries whose payload the API model never
// looks at (numbers, member references, invokedynamic data and the like).
type ConstantOtherInfo struct {
	tag ConstantTag
}

func (c *ConstantOtherInfo) Tag() ConstantTag { return c.tag }

// ConstantPool is indexed from 1 as in the class file; slot 0 and the second
// slot of long and double entries hold nil.
type ConstantPool []ConstantPoolEntry

func (cp ConstantPool) entry(index uint16) ConstantPoolEntry {
	if index == 0 || int(index) >= len(cp) {
		return nil
	}
	return cp[index]
}

func (cp ConstantPool) GetUtf8(index uint16) string {
	if utf8, ok := cp.entry(index).(*ConstantUtf8Info); ok {
		return utf8.Value
	}
	return ""
}

func (cp ConstantPool) GetClassName(index uint16) string {
	if class, ok := cp.entry(index).(*ConstantClassInfo); ok {
		return cp.GetUtf8(class.NameIndex)
	}
	return ""
}
