package policy

import "example.com/payment-system/internal/domain"

// Налоговые коэффициенты поддерживаемых стран.
const (
	koreaTaxRate = 1.10 // Корея: НДС 10%
	usTaxRate    = 1.07 // США: налог с продаж 7%
)

// TaxPolicy — правило расчёта налога от цены после скидки.
type TaxPolicy interface {
	// Apply возвращает итоговую сумму с налогом.
	Apply(discountedPrice domain.Money) domain.Money
}

// RateTaxPolicy — налог по фиксированному коэффициенту.
type RateTaxPolicy struct {
	rate float64
}

// NewRateTaxPolicy создаёт налоговую политику с заданным коэффициентом.
func NewRateTaxPolicy(rate float64) *RateTaxPolicy {
	return &RateTaxPolicy{rate: rate}
}

// KoreaTaxPolicy возвращает налоговую политику Кореи (10%).
func KoreaTaxPolicy() *RateTaxPolicy {
	return NewRateTaxPolicy(koreaTaxRate)
}

// USTaxPolicy возвращает налоговую политику США (7%).
func USTaxPolicy() *RateTaxPolicy {
	return NewRateTaxPolicy(usTaxRate)
}

// Apply возвращает сумму с налогом с округлением до целой единицы.
func (p *RateTaxPolicy) Apply(discountedPrice domain.Money) domain.Money {
	return discountedPrice.MulRate(p.rate)
}
