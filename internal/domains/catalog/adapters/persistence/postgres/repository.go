package postgres

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/happypaws/happypaws-api/internal/domains/catalog/domain"
	"github.com/happypaws/happypaws-api/internal/domains/catalog/ports"
	"github.com/happypaws/happypaws-api/internal/shared/projection"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists listings in PostgreSQL using GORM-mapped columns.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. The caller owns the DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	repo := &Repository{db: db}
	if db != nil {
		if err := db.AutoMigrate(&listingRecord{}); err != nil {
			log.Printf("postgres catalog repository migration failed: %v", err)
		}
	}
	return repo
}

type listingRecord struct {
	ID          string         `gorm:"primaryKey;column:id;size:64"`
	Name        string         `gorm:"column:name"`
	Breed       string         `gorm:"column:breed;index"`
	Age         int            `gorm:"column:age;index"`
	Price       float64        `gorm:"column:price;index"`
	Description string         `gorm:"column:description"`
	ImageURLs   pq.StringArray `gorm:"column:image_urls;type:text[]"`
	Available   bool           `gorm:"column:available;index"`
	CreatedAt   time.Time      `gorm:"column:created_at"`
	UpdatedAt   time.Time      `gorm:"column:updated_at"`
}

func (listingRecord) TableName() string { return "listings" }

func newListingRecord(l *domain.Listing) listingRecord {
	return listingRecord{
		ID:          l.ID,
		Name:        l.Name,
		Breed:       l.Breed,
		Age:         l.Age,
		Price:       l.Price,
		Description: l.Description,
		ImageURLs:   pq.StringArray(append([]string{}, l.ImageURLs...)),
		Available:   l.Available,
	}
}

func (r *listingRecord) toDomain() *domain.Listing {
	if r == nil {
		return nil
	}
	listing := &domain.Listing{
		ID:          r.ID,
		Name:        r.Name,
		Breed:       r.Breed,
		Age:         r.Age,
		Price:       r.Price,
		Description: r.Description,
		Available:   r.Available,
	}
	if len(r.ImageURLs) > 0 {
		listing.ImageURLs = append([]string{}, r.ImageURLs...)
	}
	return listing
}

// Save inserts or updates a listing aggregate.
func (r *Repository) Save(ctx context.Context, listing *domain.Listing) (*projection.Projection[*domain.Listing], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if listing == nil {
		return nil, errors.New("cannot save nil listing")
	}
	record := newListingRecord(listing)
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"name":        record.Name,
				"breed":       record.Breed,
				"age":         record.Age,
				"price":       record.Price,
				"description": record.Description,
				"image_urls":  record.ImageURLs,
				"available":   record.Available,
				"updated_at":  gorm.Expr("NOW()"),
			}),
		}).Create(&record).Error; err != nil {
		return nil, err
	}
	return r.GetByID(ctx, listing.ID)
}

// GetByID fetches a listing by identifier.
func (r *Repository) GetByID(ctx context.Context, id string) (*projection.Projection[*domain.Listing], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record listingRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return toProjection(&record), nil
}

// GetByIDs resolves identifiers in input order; unresolved IDs are skipped.
func (r *Repository) GetByIDs(ctx context.Context, ids []string) ([]*projection.Projection[*domain.Listing], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}
	var records []listingRecord
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&records).Error; err != nil {
		return nil, err
	}
	byID := make(map[string]*listingRecord, len(records))
	for i := range records {
		byID[records[i].ID] = &records[i]
	}
	result := make([]*projection.Projection[*domain.Listing], 0, len(ids))
	for _, id := range ids {
		if record, ok := byID[id]; ok {
			result = append(result, toProjection(record))
		}
	}
	return result, nil
}

// Delete removes a listing by identifier.
func (r *Repository) Delete(ctx context.Context, id string) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Delete(&listingRecord{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

// FindByTab returns listings matching the tab predicate, oldest first.
func (r *Repository) FindByTab(ctx context.Context, tab domain.Tab) ([]*projection.Projection[*domain.Listing], error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []listingRecord
	if err := tabScope(r.db.WithContext(ctx), tab).
		Order("created_at ASC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	result := make([]*projection.Projection[*domain.Listing], 0, len(records))
	for i := range records {
		result = append(result, toProjection(&records[i]))
	}
	return result, nil
}

// CountByTab runs the count-only variant of the tab query.
func (r *Repository) CountByTab(ctx context.Context, tab domain.Tab) (int64, error) {
	if err := r.ensureDB(); err != nil {
		return 0, err
	}
	var count int64
	if err := tabScope(r.db.WithContext(ctx).Model(&listingRecord{}), tab).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// List returns every persisted listing, oldest first.
func (r *Repository) List(ctx context.Context) ([]*projection.Projection[*domain.Listing], error) {
	return r.FindByTab(ctx, domain.TabAll)
}

func tabScope(db *gorm.DB, tab domain.Tab) *gorm.DB {
	switch tab {
	case domain.TabAvailable:
		return db.Where("available = ?", true)
	case domain.TabPuppies:
		return db.Where("age <= ?", domain.PuppyMaxAge)
	case domain.TabAdults:
		return db.Where("age > ?", domain.PuppyMaxAge)
	default:
		return db
	}
}

func toProjection(record *listingRecord) *projection.Projection[*domain.Listing] {
	if record == nil {
		return nil
	}
	return &projection.Projection[*domain.Listing]{
		Entity:   record.toDomain(),
		Metadata: projection.Metadata{CreatedAt: record.CreatedAt, UpdatedAt: record.UpdatedAt},
	}
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres catalog repository not configured")
	}
	return nil
}
