// workers/signup_sync_worker.go
package workers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"aqube-rewards-backend/models"
	"aqube-rewards-backend/services"
	"aqube-rewards-backend/utils"

	"gorm.io/gorm"
)

// SignupRecord matches the JSON the identity service returns for one created
// account. The referral code is the one the user typed at sign-up, if any.
type SignupRecord struct {
	UserID       string    `json:"user_id"`
	DisplayName  string    `json:"display_name"`
	ReferralCode string    `json:"referral_code"`
	CreatedAt    time.Time `json:"created_at"`
}

type signupChangesResponse struct {
	Signups []SignupRecord `json:"signups"`
}

// SignupSyncWorker reconciles accounts created at the identity service with
// local profiles and referral credits. The signup handler processes referrals
// inline when it can; this worker picks up anything that path missed (mobile
// clients that talk to the identity service directly, handler crashes between
// account creation and referral credit).
type SignupSyncWorker struct {
	db           *gorm.DB
	profiles     *services.ProfileService
	referrals    *services.ReferralService
	interval     time.Duration
	baseURL      string
	endpointPath string
	serviceToken string
	httpClient   *http.Client
}

func NewSignupSyncWorker(db *gorm.DB, profiles *services.ProfileService, referrals *services.ReferralService, identityBaseURL, endpointPath, serviceToken string) *SignupSyncWorker {
	return &SignupSyncWorker{
		db:           db,
		profiles:     profiles,
		referrals:    referrals,
		interval:     1 * time.Minute,
		baseURL:      identityBaseURL,
		endpointPath: endpointPath,
		serviceToken: serviceToken,
		httpClient:   utils.HTTPClient,
	}
}

func (w *SignupSyncWorker) Start(ctx context.Context) {
	log.Println("🔁 Starting Signup Sync Worker (identity service → profiles/referrals)…")
	go w.run(ctx)
}

func (w *SignupSyncWorker) run(ctx context.Context) {
	// Initial backfill from the newest profile we already know about.
	if err := w.syncBatch(ctx, w.getLastSyncTime()); err != nil {
		log.Printf("⚠️ Initial signup sync failed: %v", err)
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := w.syncBatch(ctx, w.getLastSyncTime()); err != nil {
				log.Printf("❌ Signup sync batch failed: %v", err)
			}
		case <-ctx.Done():
			log.Println("⏹️ Signup Sync Worker stopped")
			return
		}
	}
}

// getLastSyncTime finds the most recent profile creation we have recorded.
func (w *SignupSyncWorker) getLastSyncTime() time.Time {
	var lastTime time.Time
	err := w.db.Model(&models.Profile{}).
		Select("MAX(created_at)").Scan(&lastTime).Error
	if err != nil || lastTime.IsZero() {
		return time.Unix(0, 0)
	}
	return lastTime
}

// syncBatch fetches signups since the watermark and applies them: ensure a
// profile exists, and credit a referral if a code was captured at sign-up.
func (w *SignupSyncWorker) syncBatch(ctx context.Context, since time.Time) error {
	base, err := url.Parse(w.baseURL)
	if err != nil {
		return fmt.Errorf("invalid identity service URL %q: %w", w.baseURL, err)
	}
	endpoint, err := base.Parse(w.endpointPath)
	if err != nil {
		return fmt.Errorf("invalid signup endpoint path %q: %w", w.endpointPath, err)
	}

	q := endpoint.Query()
	q.Set("since", since.UTC().Format(time.RFC3339))
	endpoint.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, "GET", endpoint.String(), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("X-Service-Token", w.serviceToken)

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call identity service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("identity service returned status %d: %s", resp.StatusCode, string(body))
	}

	var changes signupChangesResponse
	if err := json.NewDecoder(resp.Body).Decode(&changes); err != nil {
		return fmt.Errorf("failed to decode signup response: %w", err)
	}

	if len(changes.Signups) == 0 {
		return nil
	}
	log.Printf("[SYNC] 📥 %d signup(s) since %s", len(changes.Signups), since.UTC().Format(time.RFC3339))

	for _, signup := range changes.Signups {
		if _, err := w.profiles.Ensure(signup.UserID, signup.DisplayName); err != nil {
			log.Printf("❌ [SYNC] Failed to ensure profile for %s: %v", signup.UserID, err)
			continue
		}
		if signup.ReferralCode == "" {
			continue
		}
		if _, err := w.referrals.Process(signup.UserID, signup.ReferralCode); err != nil {
			// Expected outcomes (bad code, cap, self-referral) are logged and
			// dropped — the worker must keep draining the batch.
			if errors.Is(err, services.ErrInvalidReferralCode) ||
				errors.Is(err, services.ErrReferralCapReached) ||
				errors.Is(err, services.ErrSelfReferral) {
				log.Printf("[SYNC] Referral for %s not credited: %v", signup.UserID, err)
				continue
			}
			log.Printf("❌ [SYNC] Referral processing failed for %s: %v", signup.UserID, err)
		}
	}
	return nil
}
