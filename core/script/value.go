package script

import (
	"errors"
	"fmt"
	"strconv"
)

var (
	// ErrDecode is returned when a script fails to load or run.
	ErrDecode = errors.New("script decode failed")
	// ErrUnsupportedKey is returned when a table key is neither a string nor an integer.
	ErrUnsupportedKey = errors.New("unsupported table key")
)

// Kind identifies the variant held by a Value.
type Kind int

const (
	KindNil Kind = iota
	KindString
	KindInteger
	KindNumber
	KindBool
	KindTable
	KindOther
)

func (k Kind) String() string {
	switch k {
	case KindNil:
		return "nil"
	case KindString:
		return "string"
	case KindInteger:
		return "integer"
	case KindNumber:
		return "number"
	case KindBool:
		return "boolean"
	case KindTable:
		return "table"
	default:
		return "other"
	}
}

// Value is a decoded script value.
type Value interface {
	Kind() Kind
}

// Table is a decoded table. Implementations are read-only views.
type Table interface {
	Value
	// Get returns the value stored under a string key, Nil if absent.
	Get(key string) (Value, error)
	// Pairs calls fn for every key/value pair until fn returns an error.
	// Keys of any kind are passed through; use KeyString to name them.
	// Iteration order is unspecified.
	Pairs(fn func(key, value Value) error) error
}

// String is a string value.
type String string

func (String) Kind() Kind { return KindString }

// Integer is an integral number.
type Integer int64

func (Integer) Kind() Kind { return KindInteger }

// Number is a non-integral number.
type Number float64

func (Number) Kind() Kind { return KindNumber }

// Bool is a boolean value.
type Bool bool

func (Bool) Kind() Kind { return KindBool }

// Nil is the absent value.
type Nil struct{}

func (Nil) Kind() Kind { return KindNil }

// Other holds values with no data representation (functions, userdata).
type Other struct {
	TypeName string
}

func (Other) Kind() Kind { return KindOther }

// AsString returns the string held by v.
func AsString(v Value) (string, bool) {
	s, ok := v.(String)
	return string(s), ok
}

// AsTable returns the table held by v.
func AsTable(v Value) (Table, bool) {
	if v == nil || v.Kind() != KindTable {
		return nil, false
	}
	t, ok := v.(Table)
	return t, ok
}

// KeyString renders a table key for diagnostics.
// String keys are used verbatim, integer keys in decimal.
func KeyString(key Value) (string, error) {
	switch k := key.(type) {
	case String:
		return string(k), nil
	case Integer:
		return strconv.FormatInt(int64(k), 10), nil
	case nil:
		return "", fmt.Errorf("%w: <nil>", ErrUnsupportedKey)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedKey, key.Kind())
	}
}
