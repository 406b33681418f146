package services

import (
	"errors"
	"log"
	"math"
	"time"

	"aqube-rewards-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// QuizQuestion is one entry of the fixed question bank.
type QuizQuestion struct {
	ID       int      `json:"id"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Correct  int      `json:"correct"`
	Points   int64    `json:"points"`
}

// DailyQuestionCount is how many questions make up one day's quiz.
const DailyQuestionCount = 8

// quizScoreDivisor converts a raw quiz score to platform points:
// pointsEarned = floor(score / 2).
const quizScoreDivisor = 2

// QuizService serves the daily quiz: the same 8 questions for every user on a
// given calendar day, one play per user per day.
type QuizService struct {
	DB     *gorm.DB
	Ledger *LedgerService
}

func NewQuizService(db *gorm.DB, ledger *LedgerService) *QuizService {
	return &QuizService{DB: db, Ledger: ledger}
}

// DailySeed folds a calendar date into one integer (year*10000 + month*100 +
// day), so the seed changes exactly once per day.
func DailySeed(t time.Time) int64 {
	return int64(t.Year())*10000 + int64(t.Month())*100 + int64(t.Day())
}

// seededUnit maps an integer seed to a unit value in [0, 1). Determinism
// across re-execution is the goal here, not unpredictability.
func seededUnit(seed int64) float64 {
	x := math.Sin(float64(seed)) * 10000
	return x - math.Floor(x)
}

// DailyQuestions returns the day's question set: a Fisher–Yates shuffle of
// the bank driven by a linear-congruential sequence re-seeded from the date,
// truncated to DailyQuestionCount. The slice is both the set and the
// presentation order.
func DailyQuestions(t time.Time) []QuizQuestion {
	shuffled := make([]QuizQuestion, len(questionBank))
	copy(shuffled, questionBank)

	seed := DailySeed(t)
	for i := len(shuffled); i != 0; {
		seed = (seed*9301 + 49297) % 233280
		j := int(seededUnit(seed) * float64(i))
		i--
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}

	return shuffled[:DailyQuestionCount]
}

// Questions returns today's quiz for a user, or ErrAlreadyPlayedToday if they
// already submitted a run for this calendar day.
func (s *QuizService) Questions(userID string, now time.Time) ([]QuizQuestion, error) {
	played, err := s.playedToday(userID, now)
	if err != nil {
		return nil, err
	}
	if played {
		return nil, ErrAlreadyPlayedToday
	}
	return DailyQuestions(now), nil
}

// Submit records a finished quiz run and pays out floor(score/2) points.
// The once-per-day check and the insert run in the same transaction as the
// payout.
func (s *QuizService) Submit(userID string, score int64, now time.Time) (*models.GamePlay, *models.Profile, error) {
	if score < 0 {
		score = 0
	}

	play := models.GamePlay{
		ID:       uuid.NewString(),
		UserID:   userID,
		GameKey:  models.GameQuiz,
		PlayedOn: now.Format("2006-01-02"),
		Score:    score,
	}
	play.PointsEarned = score / quizScoreDivisor

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.GamePlay{}).
			Where("user_id = ? AND game_key = ? AND played_on = ?", userID, models.GameQuiz, play.PlayedOn).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrAlreadyPlayedToday
		}
		if err := tx.Create(&play).Error; err != nil {
			return err
		}
		return s.Ledger.ApplyDeltaTx(tx, userID, play.PointsEarned, 0)
	})
	if err != nil {
		return nil, nil, err
	}

	profile, err := s.Ledger.refresh(userID)
	if err != nil {
		return nil, nil, err
	}

	log.Printf("🧠 Quiz: %s scored %d → %d points", userID, score, play.PointsEarned)
	return &play, profile, nil
}

func (s *QuizService) playedToday(userID string, now time.Time) (bool, error) {
	var play models.GamePlay
	err := s.DB.Where("user_id = ? AND game_key = ? AND played_on = ?",
		userID, models.GameQuiz, now.Format("2006-01-02")).
		First(&play).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

var questionBank = []QuizQuestion{
	{ID: 1, Question: "Which game popularized the Battle Royale genre?",
		Options: []string{"Fortnite", "PUBG", "Apex Legends", "Call of Duty: Warzone"}, Correct: 1, Points: 10},
	{ID: 2, Question: "What does 'FPS' stand for in gaming?",
		Options: []string{"First Person Shooter", "Frames Per Second", "Fast Paced Strategy", "Both A and B"}, Correct: 3, Points: 15},
	{ID: 3, Question: "Which company developed the game 'Among Us'?",
		Options: []string{"InnerSloth", "Epic Games", "Valve", "Riot Games"}, Correct: 0, Points: 20},
	{ID: 4, Question: "What is the maximum level in most Pokemon games?",
		Options: []string{"50", "99", "100", "120"}, Correct: 2, Points: 10},
	{ID: 5, Question: "Which gaming platform is owned by Valve?",
		Options: []string{"Epic Games Store", "Steam", "Origin", "Uplay"}, Correct: 1, Points: 15},
	{ID: 6, Question: "What does 'RPG' stand for?",
		Options: []string{"Real Player Game", "Role Playing Game", "Rapid Pace Gaming", "Random Player Generator"}, Correct: 1, Points: 10},
	{ID: 7, Question: "Which esports tournament has the highest prize pool?",
		Options: []string{"League of Legends Worlds", "The International (Dota 2)", "CS:GO Major", "Fortnite World Cup"}, Correct: 1, Points: 25},
	{ID: 8, Question: "What is the currency called in Minecraft?",
		Options: []string{"Coins", "Emeralds", "Diamonds", "There is no official currency"}, Correct: 3, Points: 15},
	{ID: 9, Question: "Which game was the first to introduce the 'loot box' concept?",
		Options: []string{"FIFA", "Counter-Strike", "Team Fortress 2", "Overwatch"}, Correct: 2, Points: 20},
	{ID: 10, Question: "What does 'NPC' stand for?",
		Options: []string{"New Player Character", "Non-Player Character", "Network Protocol Control", "Next Phase Challenge"}, Correct: 1, Points: 10},
	{ID: 11, Question: "Which game engine is used by Epic Games?",
		Options: []string{"Unity", "Unreal Engine", "CryEngine", "Godot"}, Correct: 1, Points: 15},
	{ID: 12, Question: "What is the highest rank in Valorant?",
		Options: []string{"Immortal", "Radiant", "Champion", "Ascendant"}, Correct: 1, Points: 20},
	{ID: 13, Question: "Which company created League of Legends?",
		Options: []string{"Blizzard", "Riot Games", "Valve", "Epic Games"}, Correct: 1, Points: 15},
	{ID: 14, Question: "What does 'MMO' stand for?",
		Options: []string{"Massive Multiplayer Online", "Multi-Mode Operation", "Maximum Memory Optimization", "Main Menu Options"}, Correct: 0, Points: 10},
	{ID: 15, Question: "Which game popularized the term 'camping' in FPS games?",
		Options: []string{"Doom", "Quake", "Counter-Strike", "Call of Duty"}, Correct: 2, Points: 15},
	{ID: 16, Question: "What is the currency in Roblox called?",
		Options: []string{"Coins", "Robux", "Gems", "Credits"}, Correct: 1, Points: 10},
	{ID: 17, Question: "Which game introduced the concept of 'respawning'?",
		Options: []string{"Doom", "Wolfenstein", "Quake", "Duke Nukem"}, Correct: 0, Points: 20},
	{ID: 18, Question: "What does 'GG' commonly mean in gaming?",
		Options: []string{"Great Game", "Good Game", "Get Going", "Gamer's Guild"}, Correct: 1, Points: 10},
	{ID: 19, Question: "Which game has the most registered players worldwide?",
		Options: []string{"Minecraft", "Fortnite", "PUBG Mobile", "League of Legends"}, Correct: 0, Points: 25},
	{ID: 20, Question: "What is the maximum number of players in a Fall Guys match?",
		Options: []string{"50", "60", "100", "120"}, Correct: 1, Points: 15},
}
