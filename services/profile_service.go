package services

import (
	"errors"
	"math/rand"
	"strings"

	"aqube-rewards-backend/models"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gorm.io/gorm"
)

// DefaultStartingSpins is the spin balance a brand-new profile opens with.
const DefaultStartingSpins = 1

const referralCodeLength = 8
const referralCodeCharset = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

type ProfileService struct {
	DB *gorm.DB
}

func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{DB: db}
}

// Ensure creates the profile row for a user if it does not exist yet
// (idempotent). New profiles get a fresh referral code, the starting spin
// balance, and a title-cased display name.
func (s *ProfileService) Ensure(userID, displayName string) (*models.Profile, error) {
	var p models.Profile
	err := s.DB.Where("id = ?", userID).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		code, genErr := s.generateReferralCode()
		if genErr != nil {
			return nil, genErr
		}
		p = models.Profile{
			ID:           userID,
			DisplayName:  displayNameTitler.String(strings.TrimSpace(displayName)),
			Points:       0,
			Spins:        DefaultStartingSpins,
			ReferralCode: code,
		}
		if err := s.DB.Create(&p).Error; err != nil {
			return nil, err
		}
		return &p, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *ProfileService) Get(userID string) (*models.Profile, error) {
	var p models.Profile
	if err := s.DB.Where("id = ?", userID).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &p, nil
}

// FindByReferralCode resolves a profile from a referral code,
// case-insensitively. Codes are stored uppercase but users type them however
// they like.
func (s *ProfileService) FindByReferralCode(code string) (*models.Profile, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	if normalized == "" {
		return nil, ErrInvalidReferralCode
	}
	var p models.Profile
	err := s.DB.Where("UPPER(referral_code) = ?", normalized).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidReferralCode
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// LeaderboardEntry is one row of the points leaderboard.
type LeaderboardEntry struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	Points      int64  `json:"points"`
}

// displayNameTitler normalizes user-typed display names ("jane doe" becomes
// "Jane Doe") at profile creation.
var displayNameTitler = cases.Title(language.English)

// Leaderboard returns the top-N profiles by point balance, descending.
// Profiles without a display name show as "Anonymous Gamer".
func (s *ProfileService) Leaderboard(limit int) ([]LeaderboardEntry, error) {
	if limit < 1 || limit > 100 {
		limit = 10
	}
	var profiles []models.Profile
	if err := s.DB.Order("points DESC").Limit(limit).Find(&profiles).Error; err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, 0, len(profiles))
	for _, p := range profiles {
		name := strings.TrimSpace(p.DisplayName)
		if name == "" {
			name = "Anonymous Gamer"
		}
		entries = append(entries, LeaderboardEntry{
			ID:          p.ID,
			DisplayName: name,
			Points:      p.Points,
		})
	}
	return entries, nil
}

// generateReferralCode draws short uppercase codes until one is free. The
// charset drops easily-confused characters (0/O, 1/I).
func (s *ProfileService) generateReferralCode() (string, error) {
	for attempt := 0; attempt < 10; attempt++ {
		b := make([]byte, referralCodeLength)
		for i := range b {
			b[i] = referralCodeCharset[rand.Intn(len(referralCodeCharset))]
		}
		code := string(b)

		var count int64
		if err := s.DB.Model(&models.Profile{}).
			Where("referral_code = ?", code).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return code, nil
		}
	}
	// Practically unreachable with an 8-char code; fall back to a uuid slice.
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:referralCodeLength]), nil
}
