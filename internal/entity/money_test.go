package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMoneyPercent(t *testing.T) {
	tests := []struct {
		name        string
		cents       int64
		basisPoints int64
		want        int64
	}{
		{"five percent exact", 10000, 500, 500},
		{"rounds half up", 990, 500, 50},      // 49.5 -> 50
		{"rounds down below half", 989, 500, 49}, // 49.45 -> 49
		{"zero amount", 0, 500, 0},
		{"zero rate", 12345, 0, 0},
		{"large subtotal no overflow", 1_000_000_00, 500, 5_000_000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewMoney(tt.cents, "INR").Percent(tt.basisPoints)
			assert.Equal(t, tt.want, got.Cents)
			assert.Equal(t, "INR", got.Currency)
		})
	}
}

func TestMoneyArithmetic(t *testing.T) {
	a := NewMoney(150, "INR")
	b := NewMoney(250, "INR")
	assert.Equal(t, int64(400), a.Add(b).Cents)
	assert.Equal(t, int64(450), a.MulQty(3).Cents)
	assert.True(t, NewMoney(0, "INR").IsZero())
	assert.False(t, a.IsZero())
}

func TestMoneyString(t *testing.T) {
	assert.Equal(t, "INR 123.45", NewMoney(12345, "INR").String())
	assert.Equal(t, "INR 0.05", NewMoney(5, "INR").String())
	assert.Equal(t, "-INR 1.00", NewMoney(-100, "INR").String())
}
