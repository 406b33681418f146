package services

import (
	"errors"
	"log"

	"aqube-rewards-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SurveyService stores the one-time feedback survey. The first submission
// per user earns a fixed point bonus; repeats are rejected before any write.
type SurveyService struct {
	DB     *gorm.DB
	Ledger *LedgerService
}

func NewSurveyService(db *gorm.DB, ledger *LedgerService) *SurveyService {
	return &SurveyService{DB: db, Ledger: ledger}
}

// SurveyInput carries the form fields as submitted.
type SurveyInput struct {
	AgeGroup           string   `json:"age_group"`
	IsGamer            string   `json:"is_gamer"`
	GamingFrequency    string   `json:"gaming_frequency"`
	MonthlySpending    string   `json:"monthly_spending"`
	InterestedFeatures []string `json:"interested_features"`
	PreferredRewards   string   `json:"preferred_rewards"`
	PrimaryCard        string   `json:"primary_card"`
	Suggestions        string   `json:"suggestions"`
}

// Submit inserts the survey row and awards the bonus in one transaction.
// Surveys are write-once: a second submission returns ErrSurveySubmitted.
func (s *SurveyService) Submit(userID string, in SurveyInput) (*models.Survey, *models.Profile, error) {
	survey := models.Survey{
		ID:                 uuid.NewString(),
		UserID:             userID,
		AgeGroup:           in.AgeGroup,
		IsGamer:            in.IsGamer,
		GamingFrequency:    in.GamingFrequency,
		MonthlySpending:    in.MonthlySpending,
		InterestedFeatures: in.InterestedFeatures,
		PreferredRewards:   in.PreferredRewards,
		PrimaryCard:        in.PrimaryCard,
		Suggestions:        in.Suggestions,
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var existing models.Survey
		err := tx.Where("user_id = ?", userID).First(&existing).Error
		if err == nil {
			return ErrSurveySubmitted
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := tx.Create(&survey).Error; err != nil {
			return err
		}
		return s.Ledger.ApplyDeltaTx(tx, userID, models.SurveyPointsAward, 0)
	})
	if err != nil {
		return nil, nil, err
	}

	profile, err := s.Ledger.refresh(userID)
	if err != nil {
		return nil, nil, err
	}

	log.Printf("📋 Survey: %s submitted, %d points awarded", userID, models.SurveyPointsAward)
	return &survey, profile, nil
}
