package cart

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoerceQuantity(t *testing.T) {
	cases := []struct {
		name string
		raw  any
		want int
	}{
		{name: "int", raw: 3, want: 3},
		{name: "int64", raw: int64(7), want: 7},
		{name: "float truncates", raw: 3.9, want: 3},
		{name: "negative float truncates toward zero", raw: -2.7, want: -2},
		{name: "nan", raw: math.NaN(), want: 0},
		{name: "string", raw: "12", want: 12},
		{name: "string with trailing garbage", raw: "12abc", want: 12},
		{name: "string with sign", raw: "-4", want: -4},
		{name: "plus sign", raw: "+5", want: 5},
		{name: "padded string", raw: "  8  ", want: 8},
		{name: "decimal string keeps integer prefix", raw: "3.9", want: 3},
		{name: "non numeric string", raw: "abc", want: 0},
		{name: "bare sign", raw: "-", want: 0},
		{name: "empty string", raw: "", want: 0},
		{name: "nil", raw: nil, want: 0},
		{name: "bool", raw: true, want: 0},
		{name: "json number", raw: json.Number("42"), want: 42},
		{name: "struct", raw: struct{}{}, want: 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, CoerceQuantity(tc.raw))
		})
	}
}
