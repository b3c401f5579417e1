// Package domain содержит бизнес-сущности платёжного сервиса.
package domain

import "errors"

// Доменные ошибки платёжного сервиса.
var (
	// ErrInvalidAmount — некорректная сумма платежа (ноль или отрицательная).
	ErrInvalidAmount = errors.New("сумма платежа должна быть больше нуля")

	// ErrInvalidCountry — пустой код страны.
	ErrInvalidCountry = errors.New("код страны не может быть пустым")

	// ErrInvalidTransition — недопустимый переход состояния.
	ErrInvalidTransition = errors.New("недопустимый переход состояния платежа")

	// ErrPaymentNotFound — платёж не найден.
	ErrPaymentNotFound = errors.New("платёж не найден")

	// ErrInvalidStatus — неизвестный статус платежа.
	ErrInvalidStatus = errors.New("неизвестный статус платежа")
)
