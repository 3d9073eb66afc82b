package generator

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getmockd/fixturegen/pkg/random"
)

func TestField_RepetitionExactCount(t *testing.T) {
	g := New("Thing")
	g.MustWithField("codes", KindString, Options{Len: 12, Count: &CountRange{Min: 2, Max: 2}})
	f, _ := g.Field("codes")

	for i := 0; i < 20; i++ {
		values, ok := f.Value().([]any)
		require.True(t, ok)
		require.Len(t, values, 2)
		assert.NotEqual(t, values[0], values[1], "each element is produced independently")
	}
}

func TestField_RepetitionRange(t *testing.T) {
	f := NewField(KindLiteral, literalProducer{value: "x"}, &CountRange{Min: 1, Max: 3}, random.NewSeeded(5))
	seen := map[int]bool{}
	for i := 0; i < 200; i++ {
		n := len(f.Value().([]any))
		require.GreaterOrEqual(t, n, 1)
		require.LessOrEqual(t, n, 3)
		seen[n] = true
	}
	assert.Len(t, seen, 3)
}

func TestField_ScalarWithoutCount(t *testing.T) {
	f := NewField(KindLiteral, literalProducer{value: 42}, nil, nil)
	assert.Equal(t, 42, f.Value())
	assert.Nil(t, f.CountRange())
}

func TestField_CountWithoutRandomizer(t *testing.T) {
	f := NewField(KindLiteral, literalProducer{value: 1}, &CountRange{Min: 2, Max: 2}, nil)
	require.NotPanics(t, func() {
		assert.Equal(t, []any{1, 1}, f.Value())
	})
}

func TestField_LiteralInvariant(t *testing.T) {
	payload := map[string]any{"k": "v"}
	g := New("Thing")
	g.MustWithField("const", KindLiteral, Options{Value: "fixed"}).
		MustWithField("obj", KindLiteral, Options{Value: payload})

	for i := 0; i < 10; i++ {
		rec := g.One()
		assert.Equal(t, "fixed", get(t, rec, "const"))
		assert.Equal(t, payload, get(t, rec, "obj"))
	}
}

func TestField_NotImplemented(t *testing.T) {
	f := NewField(Kind("abstract"), nil, nil, nil)

	assert.PanicsWithError(t, "field value producer not implemented: abstract field", func() { f.One() })

	defer func() {
		r := recover()
		require.NotNil(t, r)
		err, ok := r.(error)
		require.True(t, ok)
		assert.ErrorIs(t, err, ErrNotImplemented)
	}()
	f.Value()
}

func TestCountRange_Count(t *testing.T) {
	src := random.New()
	assert.Equal(t, 2, CountRange{Min: 2, Max: 2}.Count(src))
	assert.Equal(t, 0, CountRange{Min: -4, Max: -1}.Count(src))
	for i := 0; i < 50; i++ {
		n := CountRange{Min: 5, Max: 3}.Count(src)
		assert.GreaterOrEqual(t, n, 3)
		assert.LessOrEqual(t, n, 5)
	}
	assert.Equal(t, "[1,3]", CountRange{Min: 1, Max: 3}.String())
}

// The nested count of an entity field is fixed at one record per value; a
// CountRange on the field repeats that single-record value instead of asking
// the entity for more records.
func TestEntityField_AlwaysOneNestedRecord(t *testing.T) {
	address := New("Address")
	address.MustWithField("city", KindLiteral, Options{Value: "Denver"})

	g := New("Person")
	g.MustWithField("home", KindEntity, Options{Entity: address}).
		MustWithField("past", KindEntity, Options{Entity: address, Count: &CountRange{Min: 3, Max: 3}})

	rec := g.One()

	home := mustRecord(t, get(t, rec, "home"))
	assert.Equal(t, []string{"$id", "city"}, home.Keys())
	assert.Equal(t, "Denver", get(t, home, "city"))

	past, ok := get(t, rec, "past").([]any)
	require.True(t, ok)
	require.Len(t, past, 3)
	for _, item := range past {
		nested := mustRecord(t, item)
		assert.Equal(t, []string{"$id", "city"}, nested.Keys())
	}

	f, _ := g.Field("home")
	nested := mustRecord(t, f.Producer().One())
	assert.Equal(t, "Denver", get(t, nested, "city"))
}

func TestBoolField(t *testing.T) {
	g := New("Flag", WithRandom(random.NewSeeded(2)))
	g.MustWithField("on", KindBool, Options{})

	trues := 0
	for i := 0; i < 2000; i++ {
		if get(t, g.One(), "on").(bool) {
			trues++
		}
	}
	assert.InDelta(t, 1000, trues, 150)
}

func TestStringField(t *testing.T) {
	g := New("S")
	g.MustWithField("s", KindString, Options{Len: 17})
	s := get(t, g.One(), "s").(string)
	assert.Regexp(t, regexp.MustCompile(`^[a-zA-Z0-9]{17}$`), s)
}

func TestDecimalField(t *testing.T) {
	g := New("D")
	g.MustWithField("amount", KindDecimal, Options{Min: 4.25, Max: 4.3, Precision: 2})
	for i := 0; i < 50; i++ {
		v, ok := get(t, g.One(), "amount").(float64)
		require.True(t, ok, "decimal values are numbers, not strings")
		assert.GreaterOrEqual(t, v, 4.25)
		assert.LessOrEqual(t, v, 4.3)
	}
}

func TestDictField(t *testing.T) {
	g := New("D")
	g.MustWithField("prefix", KindDict, Options{Name: "name_prefixes"})
	assert.Equal(t, "from dictionary name_prefixes", get(t, g.One(), "prefix"))
}

func TestEnumField(t *testing.T) {
	values := []any{"one", "two", "three"}
	g := New("E")
	g.MustWithField("pick", KindEnum, Options{Values: values}).
		MustWithField("none", KindEnum, Options{})

	for i := 0; i < 30; i++ {
		rec := g.One()
		assert.Contains(t, values, get(t, rec, "pick"))
		assert.Nil(t, get(t, rec, "none"))
	}
}

func TestSerialField(t *testing.T) {
	start := int64(100)
	seqs := NewSequenceStore()
	g := New("Invoice", WithSequences(seqs))
	g.MustWithField("number", KindSerial, Options{Start: &start})

	records, err := g.Many(3)
	require.NoError(t, err)
	for i, rec := range records {
		assert.Equal(t, int64(100+i), get(t, rec, "number"))
	}
	assert.Equal(t, int64(103), seqs.Current("Invoice.number"))

	child := Extend("", g)
	assert.Equal(t, int64(103), get(t, child.One(), "number"), "children of the same type continue the sequence")

	_, err = g.WithField("bad", KindSerial, Options{Count: &CountRange{Min: 1, Max: 2}})
	assert.ErrorIs(t, err, ErrSerialCount)

	seqs.Reset("Invoice.number")
	assert.Equal(t, int64(100), get(t, g.One(), "number"))
}

func TestFakerField(t *testing.T) {
	g := New("F")
	g.MustWithField("email", KindFaker, Options{Name: "email"})
	assert.Contains(t, get(t, g.One(), "email"), "@")

	_, err := g.WithField("zodiac", KindFaker, Options{Name: "zodiac"})
	assert.ErrorIs(t, err, random.ErrUnknownFaker)
	assert.False(t, g.HasField("zodiac"))
}

func TestExprField(t *testing.T) {
	g := New("User")
	g.MustWithField("email", KindExpr, Options{Expr: `lower(first) + "." + last + "@example.com"`}).
		MustWithField("first", KindLiteral, Options{Value: "Ada"}).
		MustWithField("last", KindLiteral, Options{Value: "lovelace"}).
		MustWithField("adult", KindExpr, Options{Expr: "age >= 18"}).
		MustWithField("age", KindInteger, Options{Min: 30, Max: 30})

	rec := g.One()
	assert.Equal(t, []string{"$id", "email", "first", "last", "adult", "age"}, rec.Keys(), "computed fields keep their declared position")
	assert.Equal(t, "ada.lovelace@example.com", get(t, rec, "email"))
	assert.Equal(t, true, get(t, rec, "adult"))
}

func TestExprField_NestedAndInherited(t *testing.T) {
	address := New("Address")
	address.MustWithField("city", KindLiteral, Options{Value: "Oslo"})

	parent := New("Person")
	parent.MustWithField("home", KindEntity, Options{Entity: address}).
		MustWithField("label", KindExpr, Options{Expr: `"lives in " + home.city`})

	assert.Equal(t, "lives in Oslo", get(t, parent.One(), "label"))

	child := Extend("Tenant", parent)
	assert.Equal(t, "lives in Oslo", get(t, child.One(), "label"))
}

func TestExprField_Errors(t *testing.T) {
	g := New("X")
	_, err := g.WithField("broken", KindExpr, Options{Expr: "1 +"})
	assert.ErrorIs(t, err, ErrInvalidExpression)
	assert.False(t, g.HasField("broken"))

	g.MustWithField("fails", KindExpr, Options{Expr: `missing.field`})
	assert.Nil(t, get(t, g.One(), "fails"))
}

func TestReferenceField_Explicit(t *testing.T) {
	source := New("Source")
	source.MustWithField("token", KindLiteral, Options{Value: "abc"})

	g := New("Sink")
	g.MustWithField("token", KindReference, Options{Generator: source}).
		MustWithField("copy", KindReference, Options{Generator: source, Key: "token"}).
		MustWithField("gone", KindReference, Options{Generator: source, Key: "missing"})

	rec := g.One()
	assert.Equal(t, "abc", get(t, rec, "token"))
	assert.Equal(t, "abc", get(t, rec, "copy"))
	assert.Nil(t, get(t, rec, "gone"))
}

func TestGenerator_String(t *testing.T) {
	g := newPerson(t)
	assert.True(t, strings.HasPrefix(g.String(), "Person{$id, name, age"))
}
