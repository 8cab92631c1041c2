package shop

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatMoney(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{500, "500"},
		{1000, "1,000"},
		{50000, "50,000"},
		{1234567, "1,234,567"},
		{10000.5, "10,000.5"},
		{-50000, "-50,000"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatMoney(tc.in))
	}
}
