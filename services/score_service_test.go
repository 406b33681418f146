package services

import (
	"errors"
	"testing"

	"aqube-rewards-backend/models"
)

func TestScoreSubmitClickChallenge(t *testing.T) {
	db := setupTestDB(t, t.Name())
	ledger := NewLedgerService(db)
	scores := NewScoreService(db, ledger)
	seedProfile(t, db, "u1", "AAAA1111", 0, 2)

	play, profile, err := scores.Submit("u1", models.GameClickChallenge, 47)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if play.PointsEarned != 4 {
		t.Fatalf("expected floor(47/10)=4 points earned, got %d", play.PointsEarned)
	}
	if profile.Points != 4 {
		t.Fatalf("expected balance 4, got %d", profile.Points)
	}
	if profile.Spins != 2 {
		t.Fatalf("score submission must not touch spins, got %d", profile.Spins)
	}
}

func TestScoreSubmitDivisorsPerGame(t *testing.T) {
	db := setupTestDB(t, t.Name())
	ledger := NewLedgerService(db)
	scores := NewScoreService(db, ledger)
	seedProfile(t, db, "u1", "AAAA1111", 0, 0)

	play, _, err := scores.Submit("u1", models.GameWordScramble, 29)
	if err != nil {
		t.Fatalf("word scramble: %v", err)
	}
	if play.PointsEarned != 9 {
		t.Fatalf("word scramble 29/3 should floor to 9, got %d", play.PointsEarned)
	}

	play, profile, err := scores.Submit("u1", models.GameTargetRush, 104)
	if err != nil {
		t.Fatalf("target rush: %v", err)
	}
	if play.PointsEarned != 20 {
		t.Fatalf("target rush 104/5 should floor to 20, got %d", play.PointsEarned)
	}
	if profile.Points != 29 {
		t.Fatalf("expected accumulated balance 29, got %d", profile.Points)
	}
}

func TestScoreSubmitClampsNegative(t *testing.T) {
	db := setupTestDB(t, t.Name())
	ledger := NewLedgerService(db)
	scores := NewScoreService(db, ledger)
	seedProfile(t, db, "u1", "AAAA1111", 30, 0)

	play, profile, err := scores.Submit("u1", models.GameClickChallenge, -40)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if play.Score != 0 || play.PointsEarned != 0 {
		t.Fatalf("negative score should clamp to zero, got score=%d earned=%d", play.Score, play.PointsEarned)
	}
	if profile.Points != 30 {
		t.Fatalf("balance must be unchanged, got %d", profile.Points)
	}
}

func TestScoreSubmitUnknownGame(t *testing.T) {
	db := setupTestDB(t, t.Name())
	ledger := NewLedgerService(db)
	scores := NewScoreService(db, ledger)
	seedProfile(t, db, "u1", "AAAA1111", 0, 0)

	if _, _, err := scores.Submit("u1", models.GameKey("tetris"), 100); !errors.Is(err, ErrUnknownGame) {
		t.Fatalf("expected ErrUnknownGame, got %v", err)
	}
	// The slot and wheel settle through their own services, not raw scores.
	if _, _, err := scores.Submit("u1", models.GameSlotMachine, 100); !errors.Is(err, ErrUnknownGame) {
		t.Fatalf("expected ErrUnknownGame for slot machine, got %v", err)
	}
}

func TestScoreRepeatPlaysAllRecorded(t *testing.T) {
	db := setupTestDB(t, t.Name())
	ledger := NewLedgerService(db)
	scores := NewScoreService(db, ledger)
	seedProfile(t, db, "u1", "AAAA1111", 0, 0)

	for i := 0; i < 3; i++ {
		if _, _, err := scores.Submit("u1", models.GameWordScramble, 30); err != nil {
			t.Fatalf("submit %d: %v", i, err)
		}
	}

	plays, err := scores.History("u1", 10)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(plays) != 3 {
		t.Fatalf("free-play games have no daily gate, expected 3 plays, got %d", len(plays))
	}

	p, err := ledger.refresh("u1")
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if p.Points != 30 {
		t.Fatalf("expected 3x10 points, got %d", p.Points)
	}
}

func TestDrawTargetMembership(t *testing.T) {
	db := setupTestDB(t, t.Name())
	scores := NewScoreService(db, NewLedgerService(db))

	inTable := func(table WeightedTable, name string) bool {
		for _, p := range table {
			if p.Name == name {
				return true
			}
		}
		return false
	}

	for i := 0; i < 50; i++ {
		prize, err := scores.DrawTarget(models.GameClickChallenge)
		if err != nil {
			t.Fatalf("draw: %v", err)
		}
		if !inTable(ClickChallengeTargets, prize.Name) {
			t.Fatalf("drew %q outside the click challenge table", prize.Name)
		}
	}
	for i := 0; i < 50; i++ {
		prize, err := scores.DrawTarget(models.GameTargetRush)
		if err != nil {
			t.Fatalf("draw: %v", err)
		}
		if !inTable(TargetRushTargets, prize.Name) {
			t.Fatalf("drew %q outside the target rush table", prize.Name)
		}
	}

	if _, err := scores.DrawTarget(models.GameQuiz); !errors.Is(err, ErrUnknownGame) {
		t.Fatalf("expected ErrUnknownGame, got %v", err)
	}
}
