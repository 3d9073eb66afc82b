package generator

// Kind names a field value strategy.
type Kind string

// Field kinds.
const (
	KindUUID      Kind = "uuid"
	KindLiteral   Kind = "literal"
	KindReference Kind = "reference"
	KindEntity    Kind = "entity"
	KindBool      Kind = "bool"
	KindString    Kind = "string"
	KindInteger   Kind = "integer"
	KindDecimal   Kind = "decimal"
	KindDate      Kind = "date"
	KindDict      Kind = "dict"
	KindEnum      Kind = "enum"
	KindSerial    Kind = "serial"
	KindFaker     Kind = "faker"
	KindExpr      Kind = "expr"
)

// Kinds returns every recognized kind in declaration order.
func Kinds() []Kind {
	return []Kind{
		KindUUID, KindLiteral, KindReference, KindEntity, KindBool,
		KindString, KindInteger, KindDecimal, KindDate, KindDict,
		KindEnum, KindSerial, KindFaker, KindExpr,
	}
}

// Valid reports whether k is a recognized kind.
func (k Kind) Valid() bool {
	switch k {
	case KindUUID, KindLiteral, KindReference, KindEntity, KindBool,
		KindString, KindInteger, KindDecimal, KindDate, KindDict,
		KindEnum, KindSerial, KindFaker, KindExpr:
		return true
	default:
		return false
	}
}

// ParseKind converts s to a Kind.
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if !k.Valid() {
		return "", &UnknownFieldKindError{Kind: s}
	}
	return k, nil
}
