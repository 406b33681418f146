package services

import (
	"errors"
	"time"

	"aqube-rewards-backend/models"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

// CatalogService manages the mini-game catalog shown on the landing page.
type CatalogService struct {
	DB *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{DB: db}
}

// ListPublished returns the catalog entries visible to visitors.
func (s *CatalogService) ListPublished() ([]models.MiniGame, error) {
	var games []models.MiniGame
	err := s.DB.Where("status = ?", models.MiniGameStatusPublished).
		Order("name ASC").
		Find(&games).Error
	return games, err
}

// CreateInput is the admin payload for a new catalog entry.
type CreateInput struct {
	Name        string                `json:"name"`
	GameKey     models.GameKey        `json:"game_key"`
	Description string                `json:"description"`
	Status      models.MiniGameStatus `json:"status"`
	PublishAt   *time.Time            `json:"publish_at"`
}

// Create adds a catalog entry, deriving the slug from the name.
func (s *CatalogService) Create(in CreateInput) (*models.MiniGame, error) {
	if in.Name == "" {
		return nil, errors.New("name is required")
	}
	status := in.Status
	if status == "" {
		status = models.MiniGameStatusDraft
	}

	game := models.MiniGame{
		ID:          uuid.NewString(),
		Name:        in.Name,
		Slug:        slug.Make(in.Name),
		GameKey:     in.GameKey,
		Description: in.Description,
		Status:      status,
		PublishAt:   in.PublishAt,
	}
	if err := s.DB.Create(&game).Error; err != nil {
		return nil, err
	}
	return &game, nil
}

// Get fetches one catalog entry by id.
func (s *CatalogService) Get(id string) (*models.MiniGame, error) {
	var game models.MiniGame
	if err := s.DB.Where("id = ?", id).First(&game).Error; err != nil {
		return nil, err
	}
	return &game, nil
}

// SetArtwork stores the uploaded artwork URL on a catalog entry.
func (s *CatalogService) SetArtwork(id, url string) (*models.MiniGame, error) {
	var game models.MiniGame
	if err := s.DB.Where("id = ?", id).First(&game).Error; err != nil {
		return nil, err
	}
	game.ArtworkURL = url
	if err := s.DB.Save(&game).Error; err != nil {
		return nil, err
	}
	return &game, nil
}
