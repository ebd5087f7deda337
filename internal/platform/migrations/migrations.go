package migrations

import (
	"fmt"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// The record structs below mirror the persistence adapters' table mappings.
// AutoMigrate keeps the schema in sync with them on startup.

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

type cartItemRecord struct {
	UserID    string    `gorm:"primaryKey;column:user_id;size:64"`
	ListingID string    `gorm:"primaryKey;column:listing_id;size:64"`
	Position  int       `gorm:"column:position"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (cartItemRecord) TableName() string { return "cart_items" }

type favoriteRecord struct {
	UserID    string    `gorm:"primaryKey;column:user_id;size:64"`
	ListingID string    `gorm:"primaryKey;column:listing_id;size:64"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (favoriteRecord) TableName() string { return "favorites" }

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

type userRecord struct {
	ID        string    `gorm:"primaryKey;column:id;size:64"`
	Name      string    `gorm:"column:name"`
	Email     string    `gorm:"column:email;uniqueIndex"`
	Role      string    `gorm:"column:role;size:16"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (userRecord) TableName() string { return "users" }

type sessionRecord struct {
	Token     string     `gorm:"primaryKey;column:token;size:512"`
	UserID    string     `gorm:"column:user_id;index;size:64"`
	ExpiresAt *time.Time `gorm:"column:expires_at;index"`
	CreatedAt time.Time  `gorm:"column:created_at;index"`
	UpdatedAt time.Time  `gorm:"column:updated_at;index"`
}

func (sessionRecord) TableName() string { return "user_sessions" }

// Run applies the schema migrations for every persistence adapter.
func Run(db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("migrations require a database connection")
	}
	return db.AutoMigrate(
		&listingRecord{},
		&cartItemRecord{},
		&favoriteRecord{},
		&orderRecord{},
		&userRecord{},
		&sessionRecord{},
	)
}
