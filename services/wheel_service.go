package services

import (
	"log"
	"math/rand"
	"time"

	"gorm.io/gorm"
)

// WheelService runs the rewards wheel. Same settlement rules as the slot
// machine, different board and different selection odds.
type WheelService struct {
	DB     *gorm.DB
	Ledger *LedgerService
	rng    *rand.Rand
}

func NewWheelService(db *gorm.DB, ledger *LedgerService) *WheelService {
	return &WheelService{
		DB:     db,
		Ledger: ledger,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// WheelResult includes the winning segment index so the UI can animate the
// wheel landing on it.
type WheelResult struct {
	Index int `json:"index"`
	SpinResult
}

func (s *WheelService) Spin(userID string) (*WheelResult, error) {
	profile, err := s.Ledger.refresh(userID)
	if err != nil {
		return nil, err
	}
	if profile.Spins < 1 {
		return nil, ErrNoSpinsLeft
	}

	idx := PickWheelIndex(s.rng)
	prize := WheelPrizes[idx]

	pointsDelta := int64(0)
	spinsDelta := int64(-1)
	if prize.Special {
		if prize.Name == "Extra Spin" {
			spinsDelta = +1
		}
	} else {
		pointsDelta = prize.Points
	}

	updated, err := s.Ledger.ApplyDelta(userID, pointsDelta, spinsDelta)
	if err != nil {
		return nil, err
	}

	log.Printf("🎡 Wheel: %s landed on %q (points %+d, spins %+d)", userID, prize.Name, pointsDelta, spinsDelta)
	return &WheelResult{
		Index:      idx,
		SpinResult: SpinResult{Prize: prize, Profile: updated},
	}, nil
}
