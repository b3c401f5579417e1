package policy

import "example.com/payment-system/internal/domain"

// PolicyRegistry — реестр налоговых политик по странам с политикой
// по умолчанию. Собирается один раз при старте процесса и передаётся
// оркестратору явно, без глобального состояния.
type PolicyRegistry struct {
	policies map[domain.CountryCode]TaxPolicy
	fallback TaxPolicy
}

// NewPolicyRegistry создаёт пустой реестр с политикой по умолчанию.
func NewPolicyRegistry(fallback TaxPolicy) *PolicyRegistry {
	return &PolicyRegistry{
		policies: make(map[domain.CountryCode]TaxPolicy),
		fallback: fallback,
	}
}

// DefaultPolicyRegistry возвращает реестр с политиками Кореи и США.
// Политика по умолчанию — корейская.
func DefaultPolicyRegistry() *PolicyRegistry {
	r := NewPolicyRegistry(KoreaTaxPolicy())
	r.Register(domain.CountryKR, KoreaTaxPolicy())
	r.Register(domain.CountryUS, USTaxPolicy())
	return r
}

// Register привязывает налоговую политику к стране.
// Вызывается до первого Resolve, при сборке приложения.
func (r *PolicyRegistry) Register(country domain.CountryCode, policy TaxPolicy) {
	r.policies[country] = policy
}

// Resolve возвращает налоговую политику для страны.
// Для любого кода без явной привязки, включая нераспознанные, действует
// политика по умолчанию. Это намеренное упрощение, а не пропуск.
func (r *PolicyRegistry) Resolve(country domain.CountryCode) TaxPolicy {
	if policy, ok := r.policies[country]; ok {
		return policy
	}
	return r.fallback
}
