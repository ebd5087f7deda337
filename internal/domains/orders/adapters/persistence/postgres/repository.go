package postgres

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/happypaws/happypaws-api/internal/domains/orders/domain"
	"github.com/happypaws/happypaws-api/internal/domains/orders/ports"
	"github.com/happypaws/happypaws-api/internal/shared/projection"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists orders in PostgreSQL using GORM-mapped columns.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed order repository.
func NewRepository(db *gorm.DB) *Repository {
	repo := &Repository{db: db}
	if db != nil {
		if err := db.AutoMigrate(&orderRecord{}); err != nil {
			log.Printf("postgres order repository migration failed: %v", err)
		}
	}
	return repo
}

type orderRecord struct {
	ID              string         `gorm:"primaryKey;column:id;size:64"`
	UserID          string         `gorm:"column:user_id;size:64;index"`
	ListingIDs      pq.StringArray `gorm:"column:listing_ids;type:text[]"`
	Total           float64        `gorm:"column:total"`
	PaymentMethod   string         `gorm:"column:payment_method;size:16"`
	ShippingAddress string         `gorm:"column:shipping_address"`
	Status          string         `gorm:"column:status;size:16;index"`
	CreatedAt       time.Time      `gorm:"column:created_at"`
	UpdatedAt       time.Time      `gorm:"column:updated_at"`
}

func (orderRecord) TableName() string { return "orders" }

func newOrderRecord(o *domain.Order) orderRecord {
	return orderRecord{
		ID:              o.ID,
		UserID:          o.UserID,
		ListingIDs:      pq.StringArray(append([]string{}, o.ListingIDs...)),
		Total:           o.Total,
		PaymentMethod:   string(o.PaymentMethod),
		ShippingAddress: o.ShippingAddress,
		Status:          string(o.Status),
	}
}

func (r *orderRecord) toDomain() *domain.Order {
	if r == nil {
		return nil
	}
	order := &domain.Order{
		ID:              r.ID,
		UserID:          r.UserID,
		Total:           r.Total,
		PaymentMethod:   domain.PaymentMethod(r.PaymentMethod),
		ShippingAddress: r.ShippingAddress,
		Status:          domain.Status(r.Status),
	}
	if len(r.ListingIDs) > 0 {
		order.ListingIDs = append([]string{}, r.ListingIDs...)
	}
	return order
}

// Save inserts or updates an order aggregate.
func (r *Repository) Save(ctx context.Context, order *domain.Order) (*projection.Projection[*domain.Order], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if order == nil {
		return nil, errors.New("cannot save nil order")
	}
	record := newOrderRecord(order)
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"status":     record.Status,
				"updated_at": gorm.Expr("NOW()"),
			}),
		}).Create(&record).Error; err != nil {
		return nil, err
	}
	return r.GetByID(ctx, order.ID)
}

// GetByID fetches an order by identifier.
func (r *Repository) GetByID(ctx context.Context, id string) (*projection.Projection[*domain.Order], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record orderRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return toProjection(&record), nil
}

// ListByUser returns the user's orders, newest first.
func (r *Repository) ListByUser(ctx context.Context, userID string) ([]*projection.Projection[*domain.Order], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []orderRecord
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return toProjections(records), nil
}

// List returns every order, newest first.
func (r *Repository) List(ctx context.Context) ([]*projection.Projection[*domain.Order], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []orderRecord
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return toProjections(records), nil
}

// Delete removes an order by identifier.
func (r *Repository) Delete(ctx context.Context, id string) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Delete(&orderRecord{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

func toProjection(record *orderRecord) *projection.Projection[*domain.Order] {
	if record == nil {
		return nil
	}
	return &projection.Projection[*domain.Order]{
		Entity:   record.toDomain(),
		Metadata: projection.Metadata{CreatedAt: record.CreatedAt, UpdatedAt: record.UpdatedAt},
	}
}

func toProjections(records []orderRecord) []*projection.Projection[*domain.Order] {
	result := make([]*projection.Projection[*domain.Order], 0, len(records))
	for i := range records {
		result = append(result, toProjection(&records[i]))
	}
	return result
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres order repository not configured")
	}
	return nil
}
