package models

// Referral records one successful referral event. A user can be referred at
// most once (unique referred_id), and a referrer is capped at
// MaxReferralsPerUser rows — both enforced by the referral service.
type Referral struct {
	ID         string `gorm:"primaryKey;type:uuid" json:"id"`
	ReferrerID string `gorm:"index;not null" json:"referrer_id"`
	ReferredID string `gorm:"uniqueIndex;not null" json:"referred_id"`

	// ReferralCode is the code that was submitted, normalized to uppercase.
	ReferralCode string `gorm:"not null" json:"referral_code"`

	Timestamps
}

// MaxReferralsPerUser caps how many referrals a single referrer can be
// credited for. Each credited referral grants one spin.
const MaxReferralsPerUser = 3
