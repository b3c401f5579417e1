// Package repository содержит реализацию доступа к данным платежей.
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"example.com/payment-system/internal/domain"
)

// PaymentRepository определяет интерфейс для работы с платежами в БД.
type PaymentRepository interface {
	// Save сохраняет платёж. Платёж без ID получает UUID и создаётся;
	// платёж с ID обновляется целиком.
	Save(ctx context.Context, payment *domain.Payment) error

	// FindByID возвращает платёж по ID.
	FindByID(ctx context.Context, paymentID string) (*domain.Payment, error)

	// FindByStatus возвращает платежи в указанном статусе.
	FindByStatus(ctx context.Context, status domain.PaymentStatus) ([]*domain.Payment, error)

	// FindAll возвращает все платежи.
	FindAll(ctx context.Context) ([]*domain.Payment, error)

	// DeleteByID удаляет платёж по ID.
	DeleteByID(ctx context.Context, paymentID string) error
}

// =============================================================================
// GORM модель
// =============================================================================

// PaymentModel — GORM модель для таблицы payments.
// Суммы хранятся в целых единицах, необязательные — как nullable колонки.
type PaymentModel struct {
	ID               string    `gorm:"column:id;type:varchar(36);primaryKey"`
	OriginalPrice    int64     `gorm:"column:original_price;not null"`
	DiscountedAmount *int64    `gorm:"column:discounted_amount"`
	FinalAmount      *int64    `gorm:"column:final_amount"`
	Country          string    `gorm:"column:country;type:varchar(2);not null;index"`
	IsVip            bool      `gorm:"column:is_vip;not null"`
	Status           string    `gorm:"column:status;type:varchar(20);not null;index"`
	CreatedAt        time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName возвращает имя таблицы в БД.
func (PaymentModel) TableName() string {
	return "payments"
}

// toDomain конвертирует GORM модель в доменную сущность.
func (m *PaymentModel) toDomain() *domain.Payment {
	return &domain.Payment{
		ID:               m.ID,
		OriginalPrice:    domain.MoneyFromUnits(m.OriginalPrice),
		DiscountedAmount: moneyFromColumn(m.DiscountedAmount),
		FinalAmount:      moneyFromColumn(m.FinalAmount),
		Country:          domain.CountryCodeFromStored(m.Country),
		IsVip:            m.IsVip,
		Status:           domain.PaymentStatus(m.Status),
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

// paymentModelFromDomain конвертирует доменную сущность в GORM модель.
func paymentModelFromDomain(p *domain.Payment) *PaymentModel {
	return &PaymentModel{
		ID:               p.ID,
		OriginalPrice:    p.OriginalPrice.Amount(),
		DiscountedAmount: moneyToColumn(p.DiscountedAmount),
		FinalAmount:      moneyToColumn(p.FinalAmount),
		Country:          p.Country.String(),
		IsVip:            p.IsVip,
		Status:           string(p.Status),
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}

func moneyFromColumn(units *int64) *domain.Money {
	if units == nil {
		return nil
	}
	m := domain.MoneyFromUnits(*units)
	return &m
}

func moneyToColumn(m *domain.Money) *int64 {
	if m == nil {
		return nil
	}
	units := m.Amount()
	return &units
}

// =============================================================================
// Реализация репозитория
// =============================================================================

// paymentRepository — GORM реализация PaymentRepository.
type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository создаёт новый репозиторий платежей.
func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

// Save сохраняет платёж.
// Идентичность назначается хранилищем: платёж без ID получает UUID
// при первом сохранении, уже сохранённый — обновляется целиком.
func (r *paymentRepository) Save(ctx context.Context, payment *domain.Payment) error {
	if payment.ID == "" {
		payment.ID = uuid.New().String()

		model := paymentModelFromDomain(payment)
		if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
			// ID не назначен, пока запись не легла в БД
			payment.ID = ""
			return err
		}

		payment.CreatedAt = model.CreatedAt
		payment.UpdatedAt = model.UpdatedAt
		return nil
	}

	model := paymentModelFromDomain(payment)
	model.UpdatedAt = time.Now()

	result := r.db.WithContext(ctx).
		Model(&PaymentModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"discounted_amount": model.DiscountedAmount,
			"final_amount":      model.FinalAmount,
			"status":            model.Status,
			"updated_at":        model.UpdatedAt,
		})

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return domain.ErrPaymentNotFound
	}

	payment.UpdatedAt = model.UpdatedAt
	return nil
}

// FindByID возвращает платёж по ID.
func (r *paymentRepository) FindByID(ctx context.Context, id string) (*domain.Payment, error) {
	var model PaymentModel

	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPaymentNotFound
		}
		return nil, err
	}

	return model.toDomain(), nil
}

// FindByStatus возвращает платежи в указанном статусе.
// Отсутствие совпадений — пустой список, не ошибка.
func (r *paymentRepository) FindByStatus(ctx context.Context, status domain.PaymentStatus) ([]*domain.Payment, error) {
	var models []PaymentModel

	if err := r.db.WithContext(ctx).
		Where("status = ?", string(status)).
		Order("created_at ASC").
		Find(&models).Error; err != nil {
		return nil, err
	}

	return toDomainList(models), nil
}

// FindAll возвращает все платежи.
func (r *paymentRepository) FindAll(ctx context.Context) ([]*domain.Payment, error) {
	var models []PaymentModel

	if err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&models).Error; err != nil {
		return nil, err
	}

	return toDomainList(models), nil
}

// DeleteByID удаляет платёж по ID.
func (r *paymentRepository) DeleteByID(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&PaymentModel{})

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return domain.ErrPaymentNotFound
	}

	return nil
}

func toDomainList(models []PaymentModel) []*domain.Payment {
	payments := make([]*domain.Payment, 0, len(models))
	for _, m := range models {
		payments = append(payments, m.toDomain())
	}
	return payments
}
