package models

import (
	"math"
	"strconv"
	"strings"
	"time"
)

type Kind int

const (
	KindString Kind = iota
	KindNumber
	KindBool
	KindTime
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindTime:
		return "time"
	default:
		return "unknown"
	}
}

// Value is a single cell of a Record. A missing value keeps its kind so
// downstream transforms can still check the column dtype.
type Value struct {
	Kind    Kind
	Str     string
	Num     float64
	Bool    bool
	Time    time.Time
	Missing bool
}

func String(s string) Value   { return Value{Kind: KindString, Str: s} }
func Number(f float64) Value  { return Value{Kind: KindNumber, Num: f, Missing: math.IsNaN(f)} }
func Int(n int) Value         { return Value{Kind: KindNumber, Num: float64(n)} }
func Bool(b bool) Value       { return Value{Kind: KindBool, Bool: b} }
func Time(t time.Time) Value  { return Value{Kind: KindTime, Time: t} }
func NullTime() Value         { return Value{Kind: KindTime, Missing: true} }
func Missing(kind Kind) Value { return Value{Kind: kind, Num: math.NaN(), Missing: true} }
func NaN() Value              { return Missing(KindNumber) }

// Float returns the numeric content, NaN when missing or not a number.
func (v Value) Float() float64 {
	if v.Missing {
		return math.NaN()
	}
	switch v.Kind {
	case KindNumber:
		return v.Num
	case KindBool:
		if v.Bool {
			return 1
		}
		return 0
	default:
		return math.NaN()
	}
}

// ToNumber coerces a value to KindNumber. Anything that does not parse
// becomes NaN.
func (v Value) ToNumber() Value {
	if v.Missing {
		return NaN()
	}
	switch v.Kind {
	case KindNumber:
		return v
	case KindBool:
		return Number(v.Float())
	case KindString:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.Str), 64)
		if err != nil {
			return NaN()
		}
		return Number(f)
	default:
		return NaN()
	}
}

// Blank reports whether the value is a string made only of whitespace.
func (v Value) Blank() bool {
	return v.Kind == KindString && !v.Missing && strings.TrimSpace(v.Str) == ""
}

// Record is one row of named columns.
type Record map[string]Value

func (r Record) Has(column string) bool {
	_, ok := r[column]
	return ok
}

func (r Record) Drop(columns ...string) {
	for _, c := range columns {
		delete(r, c)
	}
}
