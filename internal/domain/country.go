package domain

import "strings"

// CountryCode — нормализованный код страны происхождения платежа.
// Value object: используется только как ключ выбора налоговой политики,
// поведения не несёт. Нормализация: обрезка пробелов + верхний регистр.
type CountryCode struct {
	code string
}

// Страны с выделенной налоговой политикой.
var (
	CountryKR = CountryCode{code: "KR"}
	CountryUS = CountryCode{code: "US"}
)

// NewCountryCode создаёт код страны.
// Пустая или состоящая из пробелов строка отклоняется с ErrInvalidCountry.
// Нераспознанные, но непустые коды допустимы — для них действует
// налоговая политика по умолчанию (см. policy.PolicyRegistry).
func NewCountryCode(code string) (CountryCode, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	if normalized == "" {
		return CountryCode{}, ErrInvalidCountry
	}
	return CountryCode{code: normalized}, nil
}

// CountryCodeFromStored восстанавливает код страны из хранилища.
// Используется слоем персистентности: сохранённые коды уже нормализованы.
func CountryCodeFromStored(code string) CountryCode {
	return CountryCode{code: code}
}

// String возвращает нормализованный код страны.
func (c CountryCode) String() string {
	return c.code
}
