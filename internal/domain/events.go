package domain

import "time"

// Доменные события платежа. Неизменяемые: несут снапшот суммы на момент
// перехода, а не ссылку на агрегат, и получают временную метку при создании.

// PaymentCompletedEvent — платёж успешно завершён.
type PaymentCompletedEvent struct {
	PaymentID   string    // ID завершённого платежа
	FinalAmount Money     // Итоговая сумма на момент завершения
	OccurredAt  time.Time // Момент возникновения события
}

// NewPaymentCompletedEvent создаёт событие завершения платежа.
func NewPaymentCompletedEvent(paymentID string, finalAmount Money) PaymentCompletedEvent {
	return PaymentCompletedEvent{
		PaymentID:   paymentID,
		FinalAmount: finalAmount,
		OccurredAt:  time.Now(),
	}
}

// PaymentRefundedEvent — платёж возвращён.
type PaymentRefundedEvent struct {
	PaymentID      string    // ID возвращённого платежа
	RefundedAmount Money     // Возвращённая сумма
	OccurredAt     time.Time // Момент возникновения события
}

// NewPaymentRefundedEvent создаёт событие возврата платежа.
func NewPaymentRefundedEvent(paymentID string, refundedAmount Money) PaymentRefundedEvent {
	return PaymentRefundedEvent{
		PaymentID:      paymentID,
		RefundedAmount: refundedAmount,
		OccurredAt:     time.Now(),
	}
}
