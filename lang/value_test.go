package lang

import (
	"math"
	"math/big"
	"testing"
)

// bigValue returns the integer Value of the decimal digits s.
func bigValue(t *testing.T, s string) Value {
	t.Helper()

	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		t.Fatalf("invalid integer %q", s)
	}

	return BigInteger(n)
}

func TestValue_Text(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want string
	}{
		{"integer", Integer(8080), "8080"},
		{"zero", Integer(0), "0"},
		{"big integer", bigValue(t, "99999999999999999999"), "99999999999999999999"},
		{"list big integer", List(bigValue(t, "18446744073709551616")), "[18446744073709551616]"},
		{"float infinity", Float(math.Inf(1)), "inf"},
		{"float whole", Float(5), "5.0"},
		{"float fraction", Float(0.5), "0.5"},
		{"float zero", Float(0), "0.0"},
		{"float small fixed", Float(0.0001), "0.0001"},
		{"float small exponent", Float(0.00001), "1e-05"},
		{"float large fixed", Float(1e15), "1000000000000000.0"},
		{"float large exponent", Float(1e16), "1e+16"},
		{"float shortest", Float(3.14), "3.14"},
		{"string", String("hello world"), "hello world"},
		{"identifier", Identifier("localhost"), "localhost"},
		{"empty list", List(), "[]"},
		{
			"nested list",
			List(Integer(1), String("a"), List(Integer(2), Integer(3))),
			"[1, 'a', [2, 3]]",
		},
		{"list quote choice", List(String("it's")), `["it's"]`},
		{"list escapes", List(String(`a'b"c`)), `['a\'b"c']`},
		{"list float", List(Float(2)), "[2.0]"},
		{"invalid", Value{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.Text(); got != tt.want {
				t.Errorf("Text() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValue_Equal(t *testing.T) {
	tests := []struct {
		name string
		a, b Value
		want bool
	}{
		{"same integer", Integer(1), Integer(1), true},
		{"different integer", Integer(1), Integer(2), false},
		{"same big integer", bigValue(t, "99999999999999999999"), bigValue(t, "99999999999999999999"), true},
		{"different big integer", bigValue(t, "99999999999999999999"), bigValue(t, "99999999999999999998"), false},
		{"big vs small integer", bigValue(t, "99999999999999999999"), Integer(1), false},
		{"small big integer", bigValue(t, "42"), Integer(42), true},
		{"integer vs float", Integer(1), Float(1), false},
		{"string vs identifier", String("a"), Identifier("a"), false},
		{"lists", List(Integer(1), List()), List(Integer(1), List()), true},
		{"list length", List(Integer(1)), List(Integer(1), Integer(1)), false},
		{"list element", List(Integer(1)), List(Integer(2)), false},
		{"nil and empty list", List(), List([]Value{}...), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Equal(tt.b); got != tt.want {
				t.Errorf("%v.Equal(%v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestValue_Native(t *testing.T) {
	v := List(Integer(1), Float(1.5), Identifier("x"), List())

	got, ok := v.Native().([]any)
	if !ok || len(got) != 4 {
		t.Fatalf("Native() = %#v", v.Native())
	}

	if got[0] != int64(1) || got[1] != 1.5 || got[2] != "x" {
		t.Errorf("Native() = %#v", got)
	}

	if inner, ok := got[3].([]any); !ok || len(inner) != 0 {
		t.Errorf("empty list native = %#v", got[3])
	}
}

func TestValue_BigInteger(t *testing.T) {
	v := bigValue(t, "99999999999999999999")

	if v.IsInt64() || v.Int() != 0 {
		t.Errorf("IsInt64() = %v, Int() = %d", v.IsInt64(), v.Int())
	}

	n, ok := v.Native().(*big.Int)
	if !ok || n.String() != "99999999999999999999" {
		t.Fatalf("Native() = %#v", v.Native())
	}

	// The value keeps its own copy.
	n.SetInt64(0)
	if v.Text() != "99999999999999999999" {
		t.Errorf("Text() after modifying Native() = %q", v.Text())
	}

	if small := bigValue(t, "7"); !small.IsInt64() || small.Native() != int64(7) {
		t.Errorf("small BigInteger = %#v", small.Native())
	}

	if Float(1).Big() != nil {
		t.Error("Big() of a float is not nil")
	}
}

func TestValue_String(t *testing.T) {
	if got := Integer(7).String(); got != "integer(7)" {
		t.Errorf("String() = %q", got)
	}

	if got := List(Identifier("a")).String(); got != "list(['a'])" {
		t.Errorf("String() = %q", got)
	}
}

func TestValue_Expr(t *testing.T) {
	tests := []struct {
		v    Value
		want string
	}{
		{Integer(1), "1"},
		{bigValue(t, "99999999999999999999"), "99999999999999999999"},
		{Float(math.Inf(1)), infLiteral},
		{Float(1e16), "10000000000000000.0"},
		{String("a b"), `"a b"`},
		{Identifier("a"), "a"},
		{List(Integer(1), List(), String("x")), `list(1, list(), "x")`},
	}

	for _, tt := range tests {
		if got := tt.v.Expr(); got != tt.want {
			t.Errorf("%v.Expr() = %q, want %q", tt.v, got, tt.want)
		}

		back, err := Evaluate(tt.v.Expr())
		if err != nil {
			t.Errorf("Evaluate(%q) error: %v", tt.v.Expr(), err)
		} else if !back.Equal(tt.v) {
			t.Errorf("Evaluate(%q) = %v, want %v", tt.v.Expr(), back, tt.v)
		}
	}
}
