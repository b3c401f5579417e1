package event

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"example.com/payment-system/internal/domain"
)

func TestSettlementObserver_OnPaymentCompleted(t *testing.T) {
	tests := []struct {
		name       string
		amount     float64
		wantTask   bool
		wantAmount int64
	}{
		{
			name:     "сумма ниже порога не попадает в реестр",
			amount:   9350,
			wantTask: false,
		},
		{
			name:     "сумма ровно на пороге не попадает в реестр",
			amount:   100000,
			wantTask: false,
		},
		{
			name:       "сумма выше порога ставит задачу зачисления",
			amount:     100001,
			wantTask:   true,
			wantAmount: 100001,
		},
		{
			name:       "крупный платёж ставит задачу зачисления",
			amount:     550000,
			wantTask:   true,
			wantAmount: 550000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := NewMemorySettlementRecorder()
			observer := NewSettlementObserver(recorder, DefaultSettlementThreshold)

			event := domain.NewPaymentCompletedEvent("pay-1", testMoney(t, tt.amount))
			err := observer.OnPaymentCompleted(context.Background(), event)
			require.NoError(t, err)

			tasks := recorder.Tasks()
			if !tt.wantTask {
				assert.Empty(t, tasks)
				return
			}

			require.Len(t, tasks, 1)
			assert.Equal(t, "pay-1", tasks[0].PaymentID)
			assert.Equal(t, tt.wantAmount, tasks[0].Amount)
			assert.Equal(t, SettlementKindSettle, tasks[0].Kind)
			assert.Equal(t, event.OccurredAt, tasks[0].OccurredAt)
		})
	}
}

func TestSettlementObserver_OnPaymentRefunded(t *testing.T) {
	t.Run("крупный возврат ставит компенсирующую задачу", func(t *testing.T) {
		recorder := NewMemorySettlementRecorder()
		observer := NewSettlementObserver(recorder, DefaultSettlementThreshold)

		event := domain.NewPaymentRefundedEvent("pay-2", testMoney(t, 250000))
		err := observer.OnPaymentRefunded(context.Background(), event)
		require.NoError(t, err)

		tasks := recorder.Tasks()
		require.Len(t, tasks, 1)
		assert.Equal(t, SettlementKindCompensate, tasks[0].Kind)
		assert.Equal(t, int64(250000), tasks[0].Amount)
	})

	t.Run("небольшой возврат реестр не затрагивает", func(t *testing.T) {
		recorder := NewMemorySettlementRecorder()
		observer := NewSettlementObserver(recorder, DefaultSettlementThreshold)

		event := domain.NewPaymentRefundedEvent("pay-3", testMoney(t, 9350))
		err := observer.OnPaymentRefunded(context.Background(), event)
		require.NoError(t, err)

		assert.Empty(t, recorder.Tasks())
	})
}

func TestNewSettlementObserver(t *testing.T) {
	t.Run("неположительный порог заменяется значением по умолчанию", func(t *testing.T) {
		observer := NewSettlementObserver(NewMemorySettlementRecorder(), 0)

		assert.Equal(t, DefaultSettlementThreshold, observer.threshold)
	})

	t.Run("пользовательский порог сохраняется", func(t *testing.T) {
		observer := NewSettlementObserver(NewMemorySettlementRecorder(), 500)

		assert.Equal(t, int64(500), observer.threshold)
	})
}

func TestRedisSettlementRecorder_Record(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	recorder := NewRedisSettlementRecorder(client, "settlement:queue")

	event := domain.NewPaymentCompletedEvent("pay-4", testMoney(t, 150000))
	task := SettlementTask{
		PaymentID:  event.PaymentID,
		Amount:     event.FinalAmount.Amount(),
		Kind:       SettlementKindSettle,
		OccurredAt: event.OccurredAt,
	}

	err = recorder.Record(context.Background(), task)
	require.NoError(t, err)

	// Задача лежит в очереди в виде JSON.
	raw, err := mr.Lpop("settlement:queue")
	require.NoError(t, err)

	var got SettlementTask
	require.NoError(t, json.Unmarshal([]byte(raw), &got))
	assert.Equal(t, "pay-4", got.PaymentID)
	assert.Equal(t, int64(150000), got.Amount)
	assert.Equal(t, SettlementKindSettle, got.Kind)
}
