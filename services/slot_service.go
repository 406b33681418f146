package services

import (
	"log"
	"math/rand"
	"time"

	"aqube-rewards-backend/models"

	"gorm.io/gorm"
)

// SlotService runs the slot machine: one spin consumes one spin credit and
// pays out a symbol from SlotSymbols.
type SlotService struct {
	DB     *gorm.DB
	Ledger *LedgerService
	rng    *rand.Rand
}

func NewSlotService(db *gorm.DB, ledger *LedgerService) *SlotService {
	return &SlotService{
		DB:     db,
		Ledger: ledger,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// SpinResult is what a slot spin (or wheel spin) paid out, plus the refreshed
// balances the UI should display.
type SpinResult struct {
	Prize   Prize           `json:"prize"`
	Profile *models.Profile `json:"profile"`
}

// Spin draws a symbol and settles it against the ledger. A player with no
// spins left is rejected before anything is written.
func (s *SlotService) Spin(userID string) (*SpinResult, error) {
	profile, err := s.Ledger.refresh(userID)
	if err != nil {
		return nil, err
	}
	if profile.Spins < 1 {
		return nil, ErrNoSpinsLeft
	}

	prize := SlotSymbols[SlotSymbols.Draw(s.rng)]

	// Default settlement: the spin is consumed. Extra Spin waives the
	// deduction and adds one instead, netting +1.
	pointsDelta := int64(0)
	spinsDelta := int64(-1)
	if prize.Special {
		if prize.Name == "Extra Spin" {
			spinsDelta = +1
		}
		// Physical prizes keep the plain -1; fulfillment happens off-platform.
	} else {
		pointsDelta = prize.Points
	}

	updated, err := s.Ledger.ApplyDelta(userID, pointsDelta, spinsDelta)
	if err != nil {
		return nil, err
	}

	log.Printf("🎰 Slot: %s won %q (points %+d, spins %+d)", userID, prize.Name, pointsDelta, spinsDelta)
	return &SpinResult{Prize: prize, Profile: updated}, nil
}
