package postgres

import (
	"context"
	"errors"
	"log"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/happypaws/happypaws-api/internal/domains/carts/ports"
)

var _ ports.Store = (*Store)(nil)

// Store persists cart membership in PostgreSQL, one row per user and listing.
type Store struct {
	db *gorm.DB
}

// NewStore wires a PostgreSQL-backed cart store.
func NewStore(db *gorm.DB) *Store {
	store := &Store{db: db}
	if db != nil {
		if err := db.AutoMigrate(&cartItemRecord{}); err != nil {
			log.Printf("postgres cart store migration failed: %v", err)
		}
	}
	return store
}

type cartItemRecord struct {
	UserID    string    `gorm:"primaryKey;column:user_id;size:64"`
	ListingID string    `gorm:"primaryKey;column:listing_id;size:64"`
	Position  int       `gorm:"column:position"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (cartItemRecord) TableName() string { return "cart_items" }

// Get loads the stored identifiers for a user in insertion order.
func (s *Store) Get(ctx context.Context, userID string) ([]string, error) {
	if err := s.ensureDB(); err != nil {
		return nil, err
	}
	var records []cartItemRecord
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("position ASC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(records))
	for _, record := range records {
		ids = append(ids, record.ListingID)
	}
	return ids, nil
}

// AddItem appends an identifier; a conflicting insert is left untouched so
// re-adding keeps the original position.
func (s *Store) AddItem(ctx context.Context, userID, listingID string) error {
	if err := s.ensureDB(); err != nil {
		return err
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var next int64
		if err := tx.Model(&cartItemRecord{}).
			Where("user_id = ?", userID).
			Select("COALESCE(MAX(position), -1) + 1").
			Scan(&next).Error; err != nil {
			return err
		}
		record := cartItemRecord{UserID: userID, ListingID: listingID, Position: int(next)}
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "listing_id"}},
			DoNothing: true,
		}).Create(&record).Error
	})
}

// RemoveItem drops an identifier; removing an absent one is a no-op.
func (s *Store) RemoveItem(ctx context.Context, userID, listingID string) error {
	if err := s.ensureDB(); err != nil {
		return err
	}
	return s.db.WithContext(ctx).
		Where("user_id = ? AND listing_id = ?", userID, listingID).
		Delete(&cartItemRecord{}).Error
}

// Replace overwrites the whole membership for a user.
func (s *Store) Replace(ctx context.Context, userID string, listingIDs []string) error {
	if err := s.ensureDB(); err != nil {
		return err
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&cartItemRecord{}).Error; err != nil {
			return err
		}
		if len(listingIDs) == 0 {
			return nil
		}
		records := make([]cartItemRecord, 0, len(listingIDs))
		for i, id := range listingIDs {
			records = append(records, cartItemRecord{UserID: userID, ListingID: id, Position: i})
		}
		return tx.Create(&records).Error
	})
}

func (s *Store) ensureDB() error {
	if s == nil || s.db == nil {
		return errors.New("postgres cart store not configured")
	}
	return nil
}
