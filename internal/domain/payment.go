package domain

import (
	"fmt"
	"time"
)

// PaymentStatus — статус платежа в системе.
type PaymentStatus string

const (
	// PaymentStatusPending — платёж создан, расчёт ещё не выполнен.
	PaymentStatusPending PaymentStatus = "PENDING"

	// PaymentStatusCompleted — скидка и налог рассчитаны, платёж завершён.
	PaymentStatusCompleted PaymentStatus = "COMPLETED"

	// PaymentStatusFailed — расчёт не удался.
	// Зарезервированное терминальное состояние: переход Fail() существует
	// и проверяется, но в текущем потоке создания платежа недостижим —
	// при валидных входных данных расчёт всегда успешен.
	PaymentStatusFailed PaymentStatus = "FAILED"

	// PaymentStatusRefunded — платёж возвращён.
	PaymentStatusRefunded PaymentStatus = "REFUNDED"
)

// ParsePaymentStatus валидирует строковое представление статуса.
func ParsePaymentStatus(s string) (PaymentStatus, error) {
	switch status := PaymentStatus(s); status {
	case PaymentStatusPending, PaymentStatusCompleted, PaymentStatusFailed, PaymentStatusRefunded:
		return status, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
	}
}

// IsTerminal возвращает true, если платёж в финальном состоянии.
// COMPLETED не терминальный — из него возможен переход в REFUNDED.
func (s PaymentStatus) IsTerminal() bool {
	return s == PaymentStatusFailed || s == PaymentStatusRefunded
}

// =============================================================================
// Допустимые переходы состояний (State Machine)
// =============================================================================

// allowedTransitions определяет валидные переходы состояний платежа.
var allowedTransitions = map[PaymentStatus][]PaymentStatus{
	PaymentStatusPending:   {PaymentStatusCompleted, PaymentStatusFailed},
	PaymentStatusCompleted: {PaymentStatusRefunded},
	// PaymentStatusFailed и PaymentStatusRefunded — терминальные состояния
}

// =============================================================================
// Payment — агрегат
// =============================================================================

// Payment — платёж в системе.
// Единственная граница консистентности: статус меняется только методами
// агрегата, напрямую присваивать поля снаружи нельзя.
type Payment struct {
	ID               string        // UUID платежа; пустой до первого сохранения
	OriginalPrice    Money         // Исходная цена
	DiscountedAmount *Money        // Сумма после скидки; nil до расчёта
	FinalAmount      *Money        // Итоговая сумма с налогом; nil до расчёта
	Country          CountryCode   // Страна происхождения (выбор налога)
	IsVip            bool          // VIP-клиент (повышенная скидка)
	Status           PaymentStatus // Текущий статус
	CreatedAt        time.Time     // Дата создания
	UpdatedAt        time.Time     // Дата обновления
}

// NewPayment создаёт платёж в статусе PENDING.
// Валидность цены и страны гарантируется конструкторами Money и CountryCode.
func NewPayment(originalPrice Money, country CountryCode, isVip bool) *Payment {
	now := time.Now()
	return &Payment{
		OriginalPrice: originalPrice,
		Country:       country,
		IsVip:         isVip,
		Status:        PaymentStatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// CanTransitionTo проверяет, допустим ли переход в указанное состояние.
func (p *Payment) CanTransitionTo(newStatus PaymentStatus) bool {
	allowed, ok := allowedTransitions[p.Status]
	if !ok {
		return false // Терминальное состояние
	}
	for _, status := range allowed {
		if status == newStatus {
			return true
		}
	}
	return false
}

// transitionTo выполняет переход в новое состояние.
func (p *Payment) transitionTo(newStatus PaymentStatus) error {
	if !p.CanTransitionTo(newStatus) {
		return ErrInvalidTransition
	}
	p.Status = newStatus
	p.UpdatedAt = time.Now()
	return nil
}

// Complete завершает платёж с рассчитанными суммами.
// Допустим только из PENDING, иначе ErrInvalidTransition.
func (p *Payment) Complete(discountedAmount, finalAmount Money) error {
	if err := p.transitionTo(PaymentStatusCompleted); err != nil {
		return err
	}
	p.DiscountedAmount = &discountedAmount
	p.FinalAmount = &finalAmount
	return nil
}

// Fail помечает платёж как неудачный.
// Допустим только из PENDING. Состояние зарезервировано: текущий поток
// создания не порождает ошибок расчёта.
func (p *Payment) Fail() error {
	return p.transitionTo(PaymentStatusFailed)
}

// Refund выполняет возврат платежа.
// Допустим только из COMPLETED; повторный возврат — ошибка, не no-op.
func (p *Payment) Refund() error {
	return p.transitionTo(PaymentStatusRefunded)
}
