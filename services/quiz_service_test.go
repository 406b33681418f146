package services

import (
	"errors"
	"testing"
	"time"
)

func TestDailySeedFoldsDate(t *testing.T) {
	d := time.Date(2025, time.March, 7, 15, 4, 5, 0, time.UTC)
	if got := DailySeed(d); got != 20250307 {
		t.Fatalf("DailySeed = %d, want 20250307", got)
	}
}

func TestDailyQuestionsDeterministicWithinDay(t *testing.T) {
	day := time.Date(2025, time.June, 1, 9, 0, 0, 0, time.UTC)
	later := time.Date(2025, time.June, 1, 23, 59, 0, 0, time.UTC)

	a := DailyQuestions(day)
	b := DailyQuestions(later)

	if len(a) != DailyQuestionCount {
		t.Fatalf("expected %d questions, got %d", DailyQuestionCount, len(a))
	}
	for i := range a {
		if a[i].ID != b[i].ID {
			t.Fatalf("same date produced different sets at position %d: %d vs %d", i, a[i].ID, b[i].ID)
		}
	}
}

func TestDailyQuestionsChangeAcrossDays(t *testing.T) {
	a := DailyQuestions(time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC))
	b := DailyQuestions(time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC))

	same := true
	for i := range a {
		if a[i].ID != b[i].ID {
			same = false
			break
		}
	}
	if same {
		t.Fatalf("consecutive days produced an identical ordered subset")
	}
}

func TestDailyQuestionsDoNotMutateBank(t *testing.T) {
	before := make([]int, len(questionBank))
	for i, q := range questionBank {
		before[i] = q.ID
	}
	_ = DailyQuestions(time.Date(2025, time.June, 3, 0, 0, 0, 0, time.UTC))
	for i, q := range questionBank {
		if q.ID != before[i] {
			t.Fatalf("question bank order was mutated at %d", i)
		}
	}
}

func TestQuizSubmitConvertsScore(t *testing.T) {
	db := setupTestDB(t, t.Name())
	ledger := NewLedgerService(db)
	quiz := NewQuizService(db, ledger)
	seedProfile(t, db, "u1", "AAAA1111", 0, 2)

	now := time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)
	play, profile, err := quiz.Submit("u1", 95, now)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if play.PointsEarned != 47 {
		t.Fatalf("expected floor(95/2)=47 points earned, got %d", play.PointsEarned)
	}
	if profile.Points != 47 {
		t.Fatalf("expected profile points 47, got %d", profile.Points)
	}
	if profile.Spins != 2 {
		t.Fatalf("quiz must not touch spins, got %d", profile.Spins)
	}
}

func TestQuizOncePerDay(t *testing.T) {
	db := setupTestDB(t, t.Name())
	ledger := NewLedgerService(db)
	quiz := NewQuizService(db, ledger)
	seedProfile(t, db, "u1", "AAAA1111", 0, 1)

	now := time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)
	if _, _, err := quiz.Submit("u1", 50, now); err != nil {
		t.Fatalf("first submit: %v", err)
	}
	if _, _, err := quiz.Submit("u1", 80, now.Add(2*time.Hour)); !errors.Is(err, ErrAlreadyPlayedToday) {
		t.Fatalf("expected ErrAlreadyPlayedToday, got %v", err)
	}
	if _, err := quiz.Questions("u1", now.Add(3*time.Hour)); !errors.Is(err, ErrAlreadyPlayedToday) {
		t.Fatalf("expected questions to be gated, got %v", err)
	}

	// Balance unchanged by the rejected second run.
	p, err := ledger.refresh("u1")
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if p.Points != 25 {
		t.Fatalf("expected points 25 from single run, got %d", p.Points)
	}

	// Next calendar day is playable again.
	tomorrow := now.AddDate(0, 0, 1)
	if _, err := quiz.Questions("u1", tomorrow); err != nil {
		t.Fatalf("expected next day to be playable: %v", err)
	}
}
