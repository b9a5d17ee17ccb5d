package common

import "strconv"

// Kind is the JSON scalar type a Value was decoded from.
type Kind uint8

const (
	KindNull Kind = iota
	KindText
	KindNumber
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindText:
		return "text"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// Value is a single scalar field value. Its text form is fixed when the
// Value is constructed, so writers never branch on the kind.
type Value struct {
	kind Kind
	text string
}

// Null returns the null value.
func Null() Value { return Value{kind: KindNull} }

// Text returns a text value. s passes through unchanged.
func Text(s string) Value { return Value{kind: KindText, text: s} }

// Number returns a number value rendered as its JSON literal.
func Number(literal string) Value { return Value{kind: KindNumber, text: literal} }

// Bool returns a boolean value rendered as true or false.
func Bool(b bool) Value { return Value{kind: KindBool, text: strconv.FormatBool(b)} }

func (v Value) Kind() Kind     { return v.kind }
func (v Value) IsNull() bool   { return v.kind == KindNull }
func (v Value) String() string { return v.text }

// Record is an ordered mapping from field name to value. Keys keep the
// order in which they were first set.
type Record struct {
	keys   []string
	values map[string]Value
}

// NewRecord creates an empty record with room for n fields.
func NewRecord(n int) *Record {
	return &Record{
		keys:   make([]string, 0, n),
		values: make(map[string]Value, n),
	}
}

// Set stores v under key. A repeated key keeps its first position.
func (r *Record) Set(key string, v Value) {
	if _, ok := r.values[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.values[key] = v
}

// Get returns the value stored under key.
func (r *Record) Get(key string) (Value, bool) {
	v, ok := r.values[key]
	return v, ok
}

// Keys returns the field names in insertion order.
func (r *Record) Keys() []string {
	return append([]string(nil), r.keys...)
}

func (r *Record) Len() int { return len(r.keys) }

// Table is a header plus data rows. Every row has len(Header) values in
// header order.
type Table struct {
	Header []string
	Rows   [][]Value
}

// Strings returns the table as text, header first.
func (t *Table) Strings() [][]string {
	out := make([][]string, 0, len(t.Rows)+1)
	out = append(out, append([]string(nil), t.Header...))
	for _, row := range t.Rows {
		line := make([]string, len(row))
		for i, v := range row {
			line[i] = v.String()
		}
		out = append(out, line)
	}
	return out
}
