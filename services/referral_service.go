package services

import (
	"errors"
	"log"
	"strings"

	"aqube-rewards-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReferralService validates and records referral relationships. A credited
// referral grants the referrer exactly one spin through the ledger.
type ReferralService struct {
	DB       *gorm.DB
	Profiles *ProfileService
	Ledger   *LedgerService
}

func NewReferralService(db *gorm.DB, profiles *ProfileService, ledger *LedgerService) *ReferralService {
	return &ReferralService{DB: db, Profiles: profiles, Ledger: ledger}
}

// ProcessResult reports what Process actually did, since duplicate
// submissions succeed without doing anything.
type ProcessResult struct {
	Referral    *models.Referral `json:"referral,omitempty"`
	AlreadySeen bool             `json:"already_seen"`
}

// Process credits a referral for the user who signed up with the given code.
//
// Duplicate (referrer, referred) pairs are a no-op success. A referrer at the
// cap is rejected without inserting and without granting a spin. The row
// insert and the spin grant run in one transaction so a failed grant never
// leaves a credited-but-unrewarded referral behind.
func (s *ReferralService) Process(newUserID, code string) (*ProcessResult, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))

	referrer, err := s.Profiles.FindByReferralCode(normalized)
	if err != nil {
		return nil, err
	}
	if referrer.ID == newUserID {
		return nil, ErrSelfReferral
	}

	var result ProcessResult
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		// A user can be referred at most once — duplicates are idempotent.
		var existing models.Referral
		err := tx.Where("referrer_id = ? AND referred_id = ?", referrer.ID, newUserID).
			First(&existing).Error
		if err == nil {
			log.Printf("Referral already exists for referred=%s, skipping", newUserID)
			result.AlreadySeen = true
			result.Referral = &existing
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		var count int64
		if err := tx.Model(&models.Referral{}).
			Where("referrer_id = ?", referrer.ID).Count(&count).Error; err != nil {
			return err
		}
		if count >= models.MaxReferralsPerUser {
			return ErrReferralCapReached
		}

		referral := models.Referral{
			ID:           uuid.NewString(),
			ReferrerID:   referrer.ID,
			ReferredID:   newUserID,
			ReferralCode: normalized,
		}
		if err := tx.Create(&referral).Error; err != nil {
			return err
		}
		result.Referral = &referral

		// One spin per credited referral, through the ledger.
		if err := s.Ledger.ApplyDeltaTx(tx, referrer.ID, 0, 1); err != nil {
			return err
		}

		log.Printf("✅ Referral credited: %s referred %s (code %s), spin granted", referrer.ID, newUserID, normalized)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// ListForReferrer returns a referrer's credited referrals, newest first.
func (s *ReferralService) ListForReferrer(referrerID string) ([]models.Referral, error) {
	var referrals []models.Referral
	err := s.DB.Where("referrer_id = ?", referrerID).
		Order("created_at DESC").
		Find(&referrals).Error
	return referrals, err
}

// CountForReferrer returns how many referrals a referrer has been credited.
func (s *ReferralService) CountForReferrer(referrerID string) (int64, error) {
	var count int64
	err := s.DB.Model(&models.Referral{}).
		Where("referrer_id = ?", referrerID).Count(&count).Error
	return count, err
}
