package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Money тесты
// =============================================================================

func TestNewMoney(t *testing.T) {
	tests := []struct {
		name     string
		amount   float64
		expected int64
		wantErr  bool
	}{
		{"положительная сумма", 10000, 10000, false},
		{"единица", 1, 1, false},
		{"дробная сумма округляется вниз", 10000.4, 10000, false},
		{"ровно половина округляется вверх", 10000.5, 10001, false},
		{"нулевая сумма", 0, 0, true},
		{"отрицательная сумма", -100, 0, true},
		{"дробная отрицательная сумма", -0.5, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewMoney(tt.amount)

			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidAmount)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, m.Amount())
		})
	}
}

func TestMoney_MulRate(t *testing.T) {
	tests := []struct {
		name     string
		amount   float64
		rate     float64
		expected int64
	}{
		{"скидка VIP 15%", 10000, 0.85, 8500},
		{"скидка обычная 10%", 10000, 0.90, 9000},
		{"налог Корея 10%", 8500, 1.10, 9350},
		{"налог США 7%", 8500, 1.07, 9095},
		{"округление вверх при 0.5", 15, 0.90, 14}, // 13.5 -> 14
		{"округление вниз", 11, 0.85, 9},           // 9.35 -> 9
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewMoney(tt.amount)
			require.NoError(t, err)

			assert.Equal(t, tt.expected, m.MulRate(tt.rate).Amount())
		})
	}
}

func TestMoney_GreaterThan(t *testing.T) {
	m := MoneyFromUnits(100000)

	assert.True(t, m.GreaterThan(99999))
	assert.False(t, m.GreaterThan(100000)) // Строго больше, не >=
	assert.False(t, m.GreaterThan(100001))
}

func TestMoneyFromUnits(t *testing.T) {
	// Восстановление из хранилища не валидирует сумму
	assert.Equal(t, int64(0), MoneyFromUnits(0).Amount())
	assert.Equal(t, int64(9350), MoneyFromUnits(9350).Amount())
}
