package currency

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		amount float64
		want   string
	}{
		{0, "0.00 ₽"},
		{5, "5.00 ₽"},
		{99.9, "99.90 ₽"},
		{1500, "1 500.00 ₽"},
		{1234567.8, "1 234 567.80 ₽"},
		{-25, "-25.00 ₽"},
		{-1234.5, "-1 234.50 ₽"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Format(tt.amount), "amount=%v", tt.amount)
	}
}
