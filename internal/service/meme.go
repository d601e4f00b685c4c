package service

import (
	"context"
	"errors"
	"strings"

	"github.com/memegallery/api/internal/domain"
	"github.com/memegallery/api/internal/logger"
	"github.com/memegallery/api/internal/repository"
	"gorm.io/gorm"
)

// MemeService exposes the list and create operations over the repository.
// It is stateless; each call performs exactly one repository round trip.
type MemeService struct {
	repo *repository.MemeRepository
	log  *logger.Logger
}

// NewMemeService creates a new MemeService.
// Parameters:
//   - repo: meme repository.
//   - log: base logger.
// Returns:
//   - *MemeService: initialized service.
func NewMemeService(repo *repository.MemeRepository, log *logger.Logger) *MemeService {
	return &MemeService{
		repo: repo,
		log:  log.WithField(logger.FieldComponent, "meme_service"),
	}
}

// CreateMemeInput carries the caller-supplied fields of a new meme.
// Description and Rating are optional; Rating defaults to 0.
type CreateMemeInput struct {
	URL         string
	Title       string
	Description *string
	Rating      *int
	Author      string
}

// List returns every stored meme in store-native order.
func (s *MemeService) List(ctx context.Context) ([]domain.Meme, error) {
	return s.repo.ListAll(ctx)
}

// Create validates the input, persists a new meme and returns the full
// persisted record including the store-assigned id and created_at.
// Missing required fields are rejected before reaching the store so
// callers get a field-level error instead of an opaque constraint failure.
func (s *MemeService) Create(ctx context.Context, input CreateMemeInput) (*domain.Meme, error) {
	if strings.TrimSpace(input.URL) == "" {
		return nil, missingField("url")
	}
	if strings.TrimSpace(input.Title) == "" {
		return nil, missingField("title")
	}
	if strings.TrimSpace(input.Author) == "" {
		return nil, missingField("author")
	}

	rating := 0
	if input.Rating != nil {
		rating = *input.Rating
	}

	meme := &domain.Meme{
		URL:         input.URL,
		Title:       input.Title,
		Description: input.Description,
		Rating:      rating,
		Author:      input.Author,
	}

	if err := s.repo.Create(ctx, meme); err != nil {
		return nil, err
	}

	s.log.WithFields(logger.Fields{
		logger.FieldMemeID: meme.ID,
	}).Infof("Meme created: title=%q author=%q", meme.Title, meme.Author)

	return meme, nil
}

// Get returns one meme by id, or ErrNotFound if no row matches.
func (s *MemeService) Get(ctx context.Context, id int64) (*domain.Meme, error) {
	meme, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return meme, nil
}

// Stats reports aggregate gallery numbers.
func (s *MemeService) Stats(ctx context.Context) (*StatsResult, error) {
	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, err
	}
	return &StatsResult{TotalMemes: total}, nil
}

// StatsResult is the payload of the stats operation.
type StatsResult struct {
	TotalMemes int64 `json:"total_memes"`
}
