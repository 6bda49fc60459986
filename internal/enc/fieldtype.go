package enc

// FieldType is the declared type of an attribute field, following the
// value domains of the S-57 attribute catalogue (Appendix A chapter 2).
//
// List types exist in the source data but are not representable in every
// output format; consumers are expected to retype them before writing.
type FieldType int

const (
	FieldInteger FieldType = iota
	FieldReal
	FieldString
	FieldDate
	FieldIntegerList
	FieldStringList
)

// IsList reports whether the type is a list-valued type.
func (t FieldType) IsList() bool {
	return t == FieldIntegerList || t == FieldStringList
}

func (t FieldType) String() string {
	switch t {
	case FieldInteger:
		return "Integer"
	case FieldReal:
		return "Real"
	case FieldString:
		return "String"
	case FieldDate:
		return "Date"
	case FieldIntegerList:
		return "IntegerList"
	case FieldStringList:
		return "StringList"
	}
	return "Unknown"
}
