package domain

import "math"

// Money — денежная сумма в целых единицах валюты.
// Value object: неизменяемый, сравнивается по значению.
// Код валюты не хранится — процесс работает с одной валютой.
type Money struct {
	amount int64
}

// NewMoney создаёт денежную сумму из исходного значения.
// Суммы меньше либо равные нулю отклоняются с ErrInvalidAmount.
// Дробное значение округляется до ближайшей целой единицы (0.5 — вверх).
func NewMoney(amount float64) (Money, error) {
	if amount <= 0 {
		return Money{}, ErrInvalidAmount
	}
	return Money{amount: roundHalfUp(amount)}, nil
}

// MoneyFromUnits восстанавливает сумму из уже сохранённых целых единиц.
// Используется слоем персистентности, валидация не выполняется.
func MoneyFromUnits(units int64) Money {
	return Money{amount: units}
}

// Amount возвращает сумму в целых единицах валюты.
func (m Money) Amount() int64 {
	return m.amount
}

// MulRate умножает сумму на коэффициент.
// Результат округляется до ближайшей целой единицы (0.5 — вверх).
func (m Money) MulRate(rate float64) Money {
	return Money{amount: roundHalfUp(float64(m.amount) * rate)}
}

// GreaterThan возвращает true, если сумма строго больше порога в целых единицах.
func (m Money) GreaterThan(units int64) bool {
	return m.amount > units
}

// roundHalfUp округляет до ближайшего целого, ровно 0.5 — в большую сторону.
func roundHalfUp(v float64) int64 {
	return int64(math.Floor(v + 0.5))
}
