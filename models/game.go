package models

import "time"

// GameKey identifies one of the browser mini-games.
type GameKey string

const (
	GameSlotMachine    GameKey = "slot-machine"
	GameRewardsWheel   GameKey = "rewards-wheel"
	GameQuiz           GameKey = "gaming-quiz"
	GameWordScramble   GameKey = "word-scramble"
	GameClickChallenge GameKey = "click-challenge"
	GameTargetRush     GameKey = "target-rush"
)

// GamePlay is one completed game session: what was scored and what the score
// converted to in platform points. The free-play games can have any number of
// rows per day; the quiz service enforces its one-per-day rule on top of the
// (user, game, day) index.
type GamePlay struct {
	ID       string  `gorm:"primaryKey;type:uuid" json:"id"`
	UserID   string  `gorm:"index;not null;index:idx_daily_play" json:"user_id"`
	GameKey  GameKey `gorm:"not null;index:idx_daily_play" json:"game_key"`
	PlayedOn string  `gorm:"size:10;not null;index:idx_daily_play" json:"played_on"` // YYYY-MM-DD

	Score        int64 `json:"score"`
	PointsEarned int64 `json:"points_earned"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// MiniGameStatus is the catalog publishing status
type MiniGameStatus string

const (
	MiniGameStatusDraft     MiniGameStatus = "draft"
	MiniGameStatusScheduled MiniGameStatus = "scheduled"
	MiniGameStatusPublished MiniGameStatus = "published"
	MiniGameStatusArchived  MiniGameStatus = "archived"
)

// MiniGame is a catalog entry shown on the landing page. Scheduled entries
// are flipped to published by the catalog scheduler once publish_at passes.
type MiniGame struct {
	ID          string         `gorm:"primaryKey;type:uuid" json:"id"`
	Name        string         `gorm:"not null" json:"name"`
	Slug        string         `gorm:"uniqueIndex;not null" json:"slug"`
	GameKey     GameKey        `gorm:"index" json:"game_key"`
	Description string         `gorm:"type:text" json:"description"`
	ArtworkURL  string         `gorm:"type:text" json:"artwork_url"`
	Status      MiniGameStatus `gorm:"not null;default:'draft'" json:"status"`
	PublishAt   *time.Time     `json:"publish_at,omitempty"`

	Timestamps
}
