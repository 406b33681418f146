package services

import (
	"errors"
	"strings"
	"testing"
)

func TestEnsureCreatesThenReuses(t *testing.T) {
	db := setupTestDB(t, t.Name())
	profiles := NewProfileService(db)

	created, err := profiles.Ensure("u1", "Ada")
	if err != nil {
		t.Fatalf("ensure: %v", err)
	}
	if created.Points != 0 || created.Spins != DefaultStartingSpins {
		t.Fatalf("new profile should start 0/%d, got points=%d spins=%d", DefaultStartingSpins, created.Points, created.Spins)
	}
	if len(created.ReferralCode) != referralCodeLength {
		t.Fatalf("referral code %q has wrong length", created.ReferralCode)
	}
	for _, r := range created.ReferralCode {
		if !strings.ContainsRune(referralCodeCharset, r) {
			t.Fatalf("referral code %q contains %q outside the charset", created.ReferralCode, r)
		}
	}

	// A second Ensure is a no-op read, balances included.
	if _, err := NewLedgerService(db).ApplyDelta("u1", 75, 2); err != nil {
		t.Fatalf("apply delta: %v", err)
	}
	again, err := profiles.Ensure("u1", "Someone Else")
	if err != nil {
		t.Fatalf("ensure again: %v", err)
	}
	if again.DisplayName != "Ada" || again.Points != 75 || again.ReferralCode != created.ReferralCode {
		t.Fatalf("ensure overwrote an existing profile: %+v", again)
	}
}

func TestEnsureTitleCasesDisplayName(t *testing.T) {
	db := setupTestDB(t, t.Name())
	profiles := NewProfileService(db)

	p, err := profiles.Ensure("u1", "  jane doe ")
	if err != nil {
		t.Fatalf("ensure: %v", err)
	}
	if p.DisplayName != "Jane Doe" {
		t.Fatalf("expected title-cased display name, got %q", p.DisplayName)
	}
}

func TestGetMissingProfile(t *testing.T) {
	db := setupTestDB(t, t.Name())
	profiles := NewProfileService(db)

	if _, err := profiles.Get("nobody"); !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}
}

func TestFindByReferralCodeCaseInsensitive(t *testing.T) {
	db := setupTestDB(t, t.Name())
	profiles := NewProfileService(db)
	seedProfile(t, db, "u1", "ABC23XYZ", 0, 0)

	for _, input := range []string{"ABC23XYZ", "abc23xyz", "  aBc23XyZ  "} {
		p, err := profiles.FindByReferralCode(input)
		if err != nil {
			t.Fatalf("lookup %q: %v", input, err)
		}
		if p.ID != "u1" {
			t.Fatalf("lookup %q resolved to %q", input, p.ID)
		}
	}

	if _, err := profiles.FindByReferralCode("ZZZZ9999"); !errors.Is(err, ErrInvalidReferralCode) {
		t.Fatalf("expected ErrInvalidReferralCode, got %v", err)
	}
	if _, err := profiles.FindByReferralCode("   "); !errors.Is(err, ErrInvalidReferralCode) {
		t.Fatalf("blank code should be invalid, got %v", err)
	}
}

func TestLeaderboardOrderingAndFallback(t *testing.T) {
	db := setupTestDB(t, t.Name())
	profiles := NewProfileService(db)
	seedProfile(t, db, "low", "AAAA1111", 10, 0)
	seedProfile(t, db, "high", "BBBB2222", 900, 0)
	seedProfile(t, db, "mid", "CCCC3333", 350, 0)

	anon := seedProfile(t, db, "anon", "DDDD4444", 500, 0)
	if err := db.Model(anon).Update("display_name", "  ").Error; err != nil {
		t.Fatalf("blank name: %v", err)
	}

	entries, err := profiles.Leaderboard(3)
	if err != nil {
		t.Fatalf("leaderboard: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if entries[0].ID != "high" || entries[1].ID != "anon" || entries[2].ID != "mid" {
		t.Fatalf("wrong order: %q %q %q", entries[0].ID, entries[1].ID, entries[2].ID)
	}
	if entries[1].DisplayName != "Anonymous Gamer" {
		t.Fatalf("blank display name should fall back, got %q", entries[1].DisplayName)
	}
}

func TestLeaderboardLimitBounds(t *testing.T) {
	db := setupTestDB(t, t.Name())
	profiles := NewProfileService(db)
	for i := 0; i < 12; i++ {
		id := string(rune('a' + i))
		seedProfile(t, db, id, "CODE000"+id, int64(i), 0)
	}

	entries, err := profiles.Leaderboard(0)
	if err != nil {
		t.Fatalf("leaderboard: %v", err)
	}
	if len(entries) != 10 {
		t.Fatalf("out-of-range limit should default to 10, got %d", len(entries))
	}
}
