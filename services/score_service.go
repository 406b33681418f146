package services

import (
	"log"
	"math/rand"
	"time"

	"aqube-rewards-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// scoreDivisors convert each game's raw in-game score to platform points:
// pointsEarned = floor(rawScore / divisor). The divisors differ per game on
// purpose — each game's raw scores run on its own scale — so they are kept
// exactly as tuned and never unified.
var scoreDivisors = map[models.GameKey]int64{
	models.GameWordScramble:   3,
	models.GameTargetRush:     5,
	models.GameClickChallenge: 10,
}

// ScoreService settles raw scores from the free-play games (word scramble,
// click challenge, target rush). Unlike the quiz these have no daily gate;
// every run is recorded.
type ScoreService struct {
	DB     *gorm.DB
	Ledger *LedgerService
	rng    *rand.Rand
}

func NewScoreService(db *gorm.DB, ledger *LedgerService) *ScoreService {
	return &ScoreService{
		DB:     db,
		Ledger: ledger,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Submit converts a raw score into points and applies it through the ledger.
// Negative raw scores (a click-challenge run sunk by bombs) clamp to zero
// earned points.
func (s *ScoreService) Submit(userID string, gameKey models.GameKey, rawScore int64) (*models.GamePlay, *models.Profile, error) {
	divisor, ok := scoreDivisors[gameKey]
	if !ok {
		return nil, nil, ErrUnknownGame
	}

	if rawScore < 0 {
		rawScore = 0
	}
	pointsEarned := rawScore / divisor

	play := models.GamePlay{
		ID:           uuid.NewString(),
		UserID:       userID,
		GameKey:      gameKey,
		PlayedOn:     time.Now().Format("2006-01-02"),
		Score:        rawScore,
		PointsEarned: pointsEarned,
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&play).Error; err != nil {
			return err
		}
		return s.Ledger.ApplyDeltaTx(tx, userID, pointsEarned, 0)
	})
	if err != nil {
		return nil, nil, err
	}

	profile, err := s.Ledger.refresh(userID)
	if err != nil {
		return nil, nil, err
	}

	log.Printf("🎯 %s: %s scored %d → %d points", gameKey, userID, rawScore, pointsEarned)
	return &play, profile, nil
}

// DrawTarget picks the next target type to spawn for the click-based games.
func (s *ScoreService) DrawTarget(gameKey models.GameKey) (*Prize, error) {
	var table WeightedTable
	switch gameKey {
	case models.GameClickChallenge:
		table = ClickChallengeTargets
	case models.GameTargetRush:
		table = TargetRushTargets
	default:
		return nil, ErrUnknownGame
	}
	prize := table[table.Draw(s.rng)]
	return &prize, nil
}

// History returns a user's recorded plays, newest first.
func (s *ScoreService) History(userID string, limit int) ([]models.GamePlay, error) {
	if limit < 1 || limit > 100 {
		limit = 20
	}
	var plays []models.GamePlay
	err := s.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&plays).Error
	return plays, err
}
