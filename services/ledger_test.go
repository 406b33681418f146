package services

import (
	"errors"
	"fmt"
	"testing"

	"aqube-rewards-backend/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T, name string) *gorm.DB {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Profile{},
		&models.Referral{},
		&models.Survey{},
		&models.GamePlay{},
		&models.MiniGame{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedProfile(t *testing.T, db *gorm.DB, id, code string, points, spins int64) *models.Profile {
	p := models.Profile{ID: id, DisplayName: "Player " + id, Points: points, Spins: spins, ReferralCode: code}
	if err := db.Create(&p).Error; err != nil {
		t.Fatalf("seed profile: %v", err)
	}
	// Struct-based Create swaps zero values for the model's `default` tags, so
	// force the exact balances with a map update (maps write zeros as-is).
	if err := db.Model(&p).Updates(map[string]interface{}{"points": points, "spins": spins}).Error; err != nil {
		t.Fatalf("seed profile balances: %v", err)
	}
	p.Points = points
	p.Spins = spins
	return &p
}

func TestApplyDeltaAddsAndRefreshes(t *testing.T) {
	db := setupTestDB(t, t.Name())
	ledger := NewLedgerService(db)
	seedProfile(t, db, "u1", "AAAA1111", 10, 2)

	p, err := ledger.ApplyDelta("u1", 100, -1)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if p.Points != 110 {
		t.Fatalf("expected points 110, got %d", p.Points)
	}
	if p.Spins != 1 {
		t.Fatalf("expected spins 1, got %d", p.Spins)
	}
}

func TestApplyDeltaClampsAtZero(t *testing.T) {
	db := setupTestDB(t, t.Name())
	ledger := NewLedgerService(db)
	seedProfile(t, db, "u1", "AAAA1111", 5, 1)

	p, err := ledger.ApplyDelta("u1", -50, -10)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if p.Points != 0 || p.Spins != 0 {
		t.Fatalf("expected both balances clamped to 0, got points=%d spins=%d", p.Points, p.Spins)
	}
}

func TestApplyDeltaZeroIsNoWrite(t *testing.T) {
	db := setupTestDB(t, t.Name())
	ledger := NewLedgerService(db)
	before := seedProfile(t, db, "u1", "AAAA1111", 7, 3)

	p, err := ledger.ApplyDelta("u1", 0, 0)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if p.Points != 7 || p.Spins != 3 {
		t.Fatalf("expected unchanged balances, got points=%d spins=%d", p.Points, p.Spins)
	}
	var after models.Profile
	if err := db.First(&after, "id = ?", "u1").Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !after.UpdatedAt.Equal(before.UpdatedAt) {
		t.Fatalf("expected no write for zero deltas")
	}
}

func TestApplyDeltaUnknownProfile(t *testing.T) {
	db := setupTestDB(t, t.Name())
	ledger := NewLedgerService(db)

	if _, err := ledger.ApplyDelta("ghost", 10, 0); !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}
}

func TestApplyDeltaSumOfSequentialDeltas(t *testing.T) {
	db := setupTestDB(t, t.Name())
	ledger := NewLedgerService(db)
	seedProfile(t, db, "u1", "AAAA1111", 0, 0)

	deltas := []int64{10, 25, 3, 100, 7}
	var want int64
	for _, d := range deltas {
		want += d
		if _, err := ledger.ApplyDelta("u1", d, 0); err != nil {
			t.Fatalf("apply %d: %v", d, err)
		}
	}

	p, err := ledger.ApplyDelta("u1", 0, 0)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if p.Points != want {
		t.Fatalf("expected %d points after all deltas, got %d", want, p.Points)
	}
}
