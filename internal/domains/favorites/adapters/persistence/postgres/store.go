package postgres

import (
	"context"
	"errors"
	"log"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/happypaws/happypaws-api/internal/domains/favorites/ports"
)

var _ ports.Store = (*Store)(nil)

// Store persists favorite marks in PostgreSQL, one row per user and listing.
type Store struct {
	db *gorm.DB
}

// NewStore wires a PostgreSQL-backed favorites store.
func NewStore(db *gorm.DB) *Store {
	store := &Store{db: db}
	if db != nil {
		if err := db.AutoMigrate(&favoriteRecord{}); err != nil {
			log.Printf("postgres favorites store migration failed: %v", err)
		}
	}
	return store
}

type favoriteRecord struct {
	UserID    string    `gorm:"primaryKey;column:user_id;size:64"`
	ListingID string    `gorm:"primaryKey;column:listing_id;size:64"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (favoriteRecord) TableName() string { return "favorites" }

// List returns the favorite identifiers in mark order.
func (s *Store) List(ctx context.Context, userID string) ([]string, error) {
	if err := s.ensureDB(); err != nil {
		return nil, err
	}
	var records []favoriteRecord
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(records))
	for _, record := range records {
		ids = append(ids, record.ListingID)
	}
	return ids, nil
}

// Add marks a listing; a conflicting insert keeps the original mark time.
func (s *Store) Add(ctx context.Context, userID, listingID string) error {
	if err := s.ensureDB(); err != nil {
		return err
	}
	record := favoriteRecord{UserID: userID, ListingID: listingID}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "listing_id"}},
		DoNothing: true,
	}).Create(&record).Error
}

// Remove clears a mark; removing an absent one is a no-op.
func (s *Store) Remove(ctx context.Context, userID, listingID string) error {
	if err := s.ensureDB(); err != nil {
		return err
	}
	return s.db.WithContext(ctx).
		Where("user_id = ? AND listing_id = ?", userID, listingID).
		Delete(&favoriteRecord{}).Error
}

func (s *Store) ensureDB() error {
	if s == nil || s.db == nil {
		return errors.New("postgres favorites store not configured")
	}
	return nil
}
