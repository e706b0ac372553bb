package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"pharmadz/internal/core/domain"

	"gorm.io/gorm"
)

// ============================================================
// Auth tables
// ============================================================

// User represents users table. Staff accounts carry the pharmacy they manage;
// admin accounts have an empty PharmacyID.
type User struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	Username   string         `gorm:"uniqueIndex;size:50;not null" json:"username"`
	Password   string         `gorm:"size:255;not null" json:"-"`
	Role       string         `gorm:"size:20;default:'pharmacy'" json:"role"`
	PharmacyID string         `gorm:"size:36;index" json:"pharmacy_id,omitempty"`
	Phone      string         `gorm:"size:30" json:"phone,omitempty"`
	Email      string         `gorm:"size:100" json:"email,omitempty"`
	GoogleID   *string        `gorm:"uniqueIndex;size:100" json:"-"`
	IsActive   bool           `gorm:"default:true" json:"is_active"`
	CreatedAt  time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// UserResponse DTO
type UserResponse struct {
	ID         uint      `json:"id"`
	Username   string    `json:"username"`
	Role       string    `json:"role"`
	PharmacyID string    `json:"pharmacy_id,omitempty"`
	Phone      string    `json:"phone,omitempty"`
	Email      string    `json:"email,omitempty"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:         u.ID,
		Username:   u.Username,
		Role:       u.Role,
		PharmacyID: u.PharmacyID,
		Phone:      u.Phone,
		Email:      u.Email,
		IsActive:   u.IsActive,
		CreatedAt:  u.CreatedAt,
	}
}

// RefreshToken represents refresh_tokens table
type RefreshToken struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"index;not null" json:"user_id"`
	TokenHash string     `gorm:"size:255;not null;index" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	RevokedAt *time.Time `gorm:"index" json:"revoked_at"`
	User      User       `gorm:"foreignKey:UserID" json:"-"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

func (rt *RefreshToken) IsRevoked() bool {
	return rt.RevokedAt != nil
}

func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

// SessionToken represents session_tokens table: one-time tokens handed to the
// browser after an OAuth round trip, exchanged exactly once for a session.
type SessionToken struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	Token      string     `gorm:"uniqueIndex;size:36;not null" json:"-"`
	UserID     uint       `gorm:"index;not null" json:"user_id"`
	ExpiresAt  time.Time  `gorm:"not null" json:"expires_at"`
	ConsumedAt *time.Time `gorm:"index" json:"consumed_at"`
	CreatedAt  time.Time  `gorm:"autoCreateTime" json:"created_at"`
	User       User       `gorm:"foreignKey:UserID" json:"-"`
}

func (SessionToken) TableName() string {
	return "session_tokens"
}

func (st *SessionToken) IsConsumed() bool {
	return st.ConsumedAt != nil
}

func (st *SessionToken) IsExpired() bool {
	return time.Now().After(st.ExpiresAt)
}

// ============================================================
// Pharmacy tables
// ============================================================

// Location holds a pharmacy's coordinates and administrative address.
type Location struct {
	Lat      float64 `gorm:"not null" json:"lat"`
	Lng      float64 `gorm:"not null" json:"lng"`
	Address  string  `gorm:"size:255" json:"address"`
	Wilaya   string  `gorm:"size:50;index" json:"wilaya"`
	Commune  string  `gorm:"size:50;index" json:"commune"`
	Quartier string  `gorm:"size:50" json:"quartier,omitempty"`
}

// Pharmacy represents pharmacies table. The ID is an opaque UUID, immutable
// after creation.
type Pharmacy struct {
	ID                 string         `gorm:"primaryKey;size:36" json:"id"`
	Name               string         `gorm:"size:100;not null" json:"name"`
	Phone              string         `gorm:"size:30" json:"phone"`
	Email              string         `gorm:"size:100" json:"email,omitempty"`
	Location           Location       `gorm:"embedded;embeddedPrefix:loc_" json:"location"`
	IsGuard            bool           `gorm:"default:false" json:"is_guard"`
	SubscriptionActive bool           `gorm:"default:false" json:"subscription_active"`
	Stock              []StockItem    `gorm:"foreignKey:PharmacyID;references:ID" json:"stock"`
	CreatedAt          time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Pharmacy) TableName() string {
	return "pharmacies"
}

// StockItem represents stock_items table. Position preserves insertion order
// for display; duplicates of a medication name are permitted.
type StockItem struct {
	ID             uint    `gorm:"primaryKey" json:"-"`
	PharmacyID     string  `gorm:"size:36;index;not null" json:"-"`
	Position       int     `gorm:"not null" json:"-"`
	MedicationName string  `gorm:"size:150;not null" json:"medication_name"`
	Quantity       int     `gorm:"not null" json:"quantity"`
	Price          float64 `gorm:"type:decimal(10,2);not null" json:"price"`
	Available      bool    `gorm:"default:true" json:"available"`
}

func (StockItem) TableName() string {
	return "stock_items"
}

// StockToDomain converts stored stock rows to the domain list.
func StockToDomain(items []StockItem) domain.StockList {
	list := make(domain.StockList, 0, len(items))
	for _, item := range items {
		list = append(list, domain.StockItem{
			MedicationName: item.MedicationName,
			Quantity:       item.Quantity,
			Price:          item.Price,
			Available:      item.Available,
		})
	}
	return list
}

// StockFromDomain converts a domain list to stored rows, assigning positions
// from insertion order.
func StockFromDomain(pharmacyID string, list domain.StockList) []StockItem {
	items := make([]StockItem, 0, len(list))
	for i, entry := range list {
		items = append(items, StockItem{
			PharmacyID:     pharmacyID,
			Position:       i,
			MedicationName: entry.MedicationName,
			Quantity:       entry.Quantity,
			Price:          entry.Price,
			Available:      entry.Available,
		})
	}
	return items
}

// ============================================================
// Orders & chat tables
// ============================================================

// StringList stores a JSON-encoded string array in a text column.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	return json.Marshal(l)
}

func (l *StringList) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*l = nil
		return nil
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return errors.New("unsupported type for StringList")
	}
}

// Prescription status values
const (
	PrescriptionPending   = "pending"
	PrescriptionProcessed = "processed"
	PrescriptionReady     = "ready"
	PrescriptionDelivered = "delivered"
)

// Prescription represents prescriptions table: a medication order submitted
// to one pharmacy.
type Prescription struct {
	ID          string     `gorm:"primaryKey;size:36" json:"id"`
	UserID      string     `gorm:"size:64;index;not null" json:"user_id"`
	PharmacyID  string     `gorm:"size:36;index;not null" json:"pharmacy_id"`
	Medications StringList `gorm:"type:text" json:"medications"`
	ImageURL    *string    `gorm:"size:255" json:"image_url,omitempty"`
	Status      string     `gorm:"size:20;default:'pending'" json:"status"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
}

func (Prescription) TableName() string {
	return "prescriptions"
}

// ChatMessage represents chat_messages table: one assistant exchange scoped
// to a pharmacy.
type ChatMessage struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	PharmacyID string    `gorm:"size:36;index;not null" json:"pharmacy_id"`
	UserID     string    `gorm:"size:64;index;not null" json:"user_id"`
	Message    string    `gorm:"type:text;not null" json:"message"`
	Response   string    `gorm:"type:text" json:"response"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}

// AutoMigrate creates or updates all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&RefreshToken{},
		&SessionToken{},
		&Pharmacy{},
		&StockItem{},
		&Prescription{},
		&ChatMessage{},
	)
}
