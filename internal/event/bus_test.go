package event

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"example.com/payment-system/internal/domain"
)

// recordingObserver записывает полученные события и имитирует сбои.
type recordingObserver struct {
	name      string
	log       *[]string
	err       error
	panicking bool
}

func (o *recordingObserver) OnPaymentCompleted(_ context.Context, _ domain.PaymentCompletedEvent) error {
	*o.log = append(*o.log, o.name)
	if o.panicking {
		panic("наблюдатель упал")
	}
	return o.err
}

func (o *recordingObserver) OnPaymentRefunded(_ context.Context, _ domain.PaymentRefundedEvent) error {
	*o.log = append(*o.log, o.name)
	if o.panicking {
		panic("наблюдатель упал")
	}
	return o.err
}

func testMoney(t *testing.T, amount float64) domain.Money {
	t.Helper()
	m, err := domain.NewMoney(amount)
	if err != nil {
		t.Fatalf("не удалось создать Money: %v", err)
	}
	return m
}

func TestBus_PublishCompleted(t *testing.T) {
	event := domain.NewPaymentCompletedEvent("pay-1", testMoney(t, 9350))

	t.Run("наблюдатели уведомляются в порядке регистрации", func(t *testing.T) {
		var log []string
		bus := NewBus([]CompletedObserver{
			&recordingObserver{name: "первый", log: &log},
			&recordingObserver{name: "второй", log: &log},
			&recordingObserver{name: "третий", log: &log},
		}, nil)

		bus.PublishCompleted(context.Background(), event)

		assert.Equal(t, []string{"первый", "второй", "третий"}, log)
	})

	t.Run("ошибка наблюдателя не мешает остальным", func(t *testing.T) {
		var log []string
		bus := NewBus([]CompletedObserver{
			&recordingObserver{name: "сбойный", log: &log, err: errors.New("брокер недоступен")},
			&recordingObserver{name: "следующий", log: &log},
		}, nil)

		bus.PublishCompleted(context.Background(), event)

		assert.Equal(t, []string{"сбойный", "следующий"}, log)
	})

	t.Run("паника наблюдателя не мешает остальным", func(t *testing.T) {
		var log []string
		bus := NewBus([]CompletedObserver{
			&recordingObserver{name: "паникующий", log: &log, panicking: true},
			&recordingObserver{name: "следующий", log: &log},
		}, nil)

		assert.NotPanics(t, func() {
			bus.PublishCompleted(context.Background(), event)
		})
		assert.Equal(t, []string{"паникующий", "следующий"}, log)
	})

	t.Run("шина без наблюдателей не падает", func(t *testing.T) {
		bus := NewBus(nil, nil)

		assert.NotPanics(t, func() {
			bus.PublishCompleted(context.Background(), event)
		})
	})
}

func TestBus_PublishRefunded(t *testing.T) {
	event := domain.NewPaymentRefundedEvent("pay-2", testMoney(t, 9350))

	t.Run("каждый наблюдатель получает событие ровно один раз", func(t *testing.T) {
		var log []string
		bus := NewBus(nil, []RefundedObserver{
			&recordingObserver{name: "первый", log: &log},
			&recordingObserver{name: "второй", log: &log},
		})

		bus.PublishRefunded(context.Background(), event)

		assert.Equal(t, []string{"первый", "второй"}, log)
	})

	t.Run("паника наблюдателя возврата изолируется", func(t *testing.T) {
		var log []string
		bus := NewBus(nil, []RefundedObserver{
			&recordingObserver{name: "паникующий", log: &log, panicking: true},
			&recordingObserver{name: "следующий", log: &log},
		})

		assert.NotPanics(t, func() {
			bus.PublishRefunded(context.Background(), event)
		})
		assert.Equal(t, []string{"паникующий", "следующий"}, log)
	})
}
