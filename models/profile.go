package models

import (
	"time"

	"gorm.io/gorm"
)

// Profile is the per-user rewards record. The ID is assigned by the external
// identity service; this service never creates accounts, only profiles.
type Profile struct {
	ID          string `gorm:"primaryKey;type:uuid" json:"id"`
	DisplayName string `json:"display_name"`

	// Balances. Both are clamped at zero by the ledger — a delta can never
	// drive them negative.
	Points int64 `json:"points" gorm:"default:0"`
	Spins  int64 `json:"spins" gorm:"default:1"`

	// ReferralCode is generated at profile creation and compared
	// case-insensitively; it is always stored uppercase.
	ReferralCode string `gorm:"uniqueIndex;size:8;not null" json:"referral_code"`

	Timestamps
}

// Timestamps adds GORM auto-times
type Timestamps struct {
	CreatedAt time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}
