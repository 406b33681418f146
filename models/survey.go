package models

// Survey is the one-time-per-user feedback form. Write-once: rows are never
// updated after creation. The first (and only) submission awards
// SurveyPointsAward points through the ledger.
type Survey struct {
	ID     string `gorm:"primaryKey;type:uuid" json:"id"`
	UserID string `gorm:"uniqueIndex;not null" json:"user_id"`

	AgeGroup           string   `json:"age_group"`
	IsGamer            string   `json:"is_gamer"`
	GamingFrequency    string   `json:"gaming_frequency"`
	MonthlySpending    string   `json:"monthly_spending"`
	InterestedFeatures []string `gorm:"serializer:json" json:"interested_features"`
	PreferredRewards   string   `json:"preferred_rewards"`
	PrimaryCard        string   `json:"primary_card"`
	Suggestions        string   `gorm:"type:text" json:"suggestions"`

	Timestamps
}

const SurveyPointsAward = 500
