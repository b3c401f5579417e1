// Package policy содержит правила расчёта скидок и налогов.
// Политики — чистые функции над Money; выбор налоговой политики по стране
// выполняет PolicyRegistry.
package policy

import "example.com/payment-system/internal/domain"

// Коэффициенты скидки по умолчанию.
const (
	defaultVIPDiscountRate     = 0.85 // VIP: скидка 15%
	defaultRegularDiscountRate = 0.90 // Обычный клиент: скидка 10%
)

// DiscountPolicy — правило расчёта скидки от исходной цены.
// На один процесс активна ровно одна политика скидок; интерфейс позволяет
// подменить таблицу коэффициентов, не трогая агрегат и оркестратор.
type DiscountPolicy interface {
	// Apply возвращает цену после скидки.
	Apply(originalPrice domain.Money, isVip bool) domain.Money
}

// RateDiscountPolicy — скидка по фиксированным коэффициентам.
type RateDiscountPolicy struct {
	vipRate     float64
	regularRate float64
}

// NewRateDiscountPolicy создаёт политику скидок с заданными коэффициентами.
func NewRateDiscountPolicy(vipRate, regularRate float64) *RateDiscountPolicy {
	return &RateDiscountPolicy{
		vipRate:     vipRate,
		regularRate: regularRate,
	}
}

// DefaultDiscountPolicy возвращает политику скидок по умолчанию:
// 15% для VIP, 10% для остальных.
func DefaultDiscountPolicy() *RateDiscountPolicy {
	return NewRateDiscountPolicy(defaultVIPDiscountRate, defaultRegularDiscountRate)
}

// Apply возвращает цену после скидки с округлением до целой единицы.
func (p *RateDiscountPolicy) Apply(originalPrice domain.Money, isVip bool) domain.Money {
	if isVip {
		return originalPrice.MulRate(p.vipRate)
	}
	return originalPrice.MulRate(p.regularRate)
}
