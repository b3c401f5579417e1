package event

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"example.com/payment-system/internal/domain"
)

// DefaultSettlementThreshold — порог итоговой суммы в целых единицах,
// строго выше которого платёж попадает в расчётный реестр.
const DefaultSettlementThreshold int64 = 100000

// Виды расчётных задач.
const (
	// SettlementKindSettle — зачисление по завершённому платежу.
	SettlementKindSettle = "settle"

	// SettlementKindCompensate — компенсация по возвращённому платежу.
	SettlementKindCompensate = "compensate"
)

// SettlementTask — задача расчётного реестра.
type SettlementTask struct {
	PaymentID  string    `json:"payment_id"`
	Amount     int64     `json:"amount"`
	Kind       string    `json:"kind"`
	OccurredAt time.Time `json:"occurred_at"`
}

// SettlementRecorder — порт записи расчётных задач.
type SettlementRecorder interface {
	Record(ctx context.Context, task SettlementTask) error
}

// SettlementObserver ставит расчётную задачу для крупных платежей.
// Платежи с суммой не выше порога реестр не затрагивают.
type SettlementObserver struct {
	recorder  SettlementRecorder
	threshold int64
}

// NewSettlementObserver создаёт наблюдатель расчётного реестра.
// Неположительный порог заменяется значением по умолчанию.
func NewSettlementObserver(recorder SettlementRecorder, threshold int64) *SettlementObserver {
	if threshold <= 0 {
		threshold = DefaultSettlementThreshold
	}
	return &SettlementObserver{
		recorder:  recorder,
		threshold: threshold,
	}
}

// OnPaymentCompleted ставит задачу зачисления, если сумма выше порога.
func (o *SettlementObserver) OnPaymentCompleted(ctx context.Context, e domain.PaymentCompletedEvent) error {
	if !e.FinalAmount.GreaterThan(o.threshold) {
		return nil
	}

	return o.recorder.Record(ctx, SettlementTask{
		PaymentID:  e.PaymentID,
		Amount:     e.FinalAmount.Amount(),
		Kind:       SettlementKindSettle,
		OccurredAt: e.OccurredAt,
	})
}

// OnPaymentRefunded ставит компенсирующую задачу для крупного возврата.
func (o *SettlementObserver) OnPaymentRefunded(ctx context.Context, e domain.PaymentRefundedEvent) error {
	if !e.RefundedAmount.GreaterThan(o.threshold) {
		return nil
	}

	return o.recorder.Record(ctx, SettlementTask{
		PaymentID:  e.PaymentID,
		Amount:     e.RefundedAmount.Amount(),
		Kind:       SettlementKindCompensate,
		OccurredAt: e.OccurredAt,
	})
}

// =============================================================================
// Реализации SettlementRecorder
// =============================================================================

// RedisSettlementRecorder пишет расчётные задачи в Redis список.
// Внешний расчётный воркер забирает задачи через BRPOP.
type RedisSettlementRecorder struct {
	redis    *redis.Client
	queueKey string
}

// NewRedisSettlementRecorder создаёт Redis-реализацию расчётного реестра.
func NewRedisSettlementRecorder(client *redis.Client, queueKey string) *RedisSettlementRecorder {
	return &RedisSettlementRecorder{
		redis:    client,
		queueKey: queueKey,
	}
}

// Record сериализует задачу в JSON и добавляет в очередь.
func (r *RedisSettlementRecorder) Record(ctx context.Context, task SettlementTask) error {
	payload, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("ошибка сериализации расчётной задачи: %w", err)
	}

	if err := r.redis.LPush(ctx, r.queueKey, payload).Err(); err != nil {
		return fmt.Errorf("ошибка записи расчётной задачи в Redis: %w", err)
	}

	return nil
}

// MemorySettlementRecorder хранит расчётные задачи в памяти.
// Используется в тестах и при локальном запуске без Redis.
type MemorySettlementRecorder struct {
	mu    sync.Mutex
	tasks []SettlementTask
}

// NewMemorySettlementRecorder создаёт in-memory реализацию реестра.
func NewMemorySettlementRecorder() *MemorySettlementRecorder {
	return &MemorySettlementRecorder{}
}

// Record добавляет задачу в память.
func (r *MemorySettlementRecorder) Record(_ context.Context, task SettlementTask) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.tasks = append(r.tasks, task)
	return nil
}

// Tasks возвращает копию записанных задач.
func (r *MemorySettlementRecorder) Tasks() []SettlementTask {
	r.mu.Lock()
	defer r.mu.Unlock()

	tasks := make([]SettlementTask, len(r.tasks))
	copy(tasks, r.tasks)
	return tasks
}
