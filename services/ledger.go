package services

import (
	"errors"
	"fmt"
	"log"

	"aqube-rewards-backend/models"

	"gorm.io/gorm"
)

// LedgerService is the single writer for point/spin balances. Every feature
// that grants or consumes a reward (games, wheel, referrals, survey) goes
// through ApplyDelta — no caller writes Profile balances directly.
type LedgerService struct {
	DB *gorm.DB
}

func NewLedgerService(db *gorm.DB) *LedgerService {
	return &LedgerService{DB: db}
}

// ApplyDelta applies a point/spin delta to the user's own profile and returns
// the refreshed row. Both balances clamp at zero. The read-compute-write runs
// inside one transaction so two concurrent reward events cannot overwrite
// each other's grants; the final balance reflects the sum of all applied
// deltas.
func (s *LedgerService) ApplyDelta(userID string, pointsDelta, spinsDelta int64) (*models.Profile, error) {
	if pointsDelta == 0 && spinsDelta == 0 {
		// Nothing to write — still hand back the stored state.
		return s.refresh(userID)
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		return s.ApplyDeltaTx(tx, userID, pointsDelta, spinsDelta)
	})
	if err != nil {
		return nil, err
	}

	// Callers always get the stored row, read after commit.
	return s.refresh(userID)
}

// ApplyDeltaTx is the update step of ApplyDelta for callers that need the
// balance change inside a larger transaction (referral credit + spin grant).
func (s *LedgerService) ApplyDeltaTx(tx *gorm.DB, userID string, pointsDelta, spinsDelta int64) error {
	var p models.Profile
	if err := tx.Where("id = ?", userID).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProfileNotFound
		}
		return err
	}

	p.Points = clampAtZero(p.Points + pointsDelta)
	p.Spins = clampAtZero(p.Spins + spinsDelta)

	if err := tx.Save(&p).Error; err != nil {
		return err
	}

	log.Printf("💰 Ledger: %s points %+d spins %+d → points=%d spins=%d",
		userID, pointsDelta, spinsDelta, p.Points, p.Spins)
	return nil
}

func (s *LedgerService) refresh(userID string) (*models.Profile, error) {
	var p models.Profile
	if err := s.DB.Where("id = ?", userID).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("refresh profile %s: %w", userID, err)
	}
	return &p, nil
}

func clampAtZero(v int64) int64 {
	if v < 0 {
		return 0
	}
	return v
}
