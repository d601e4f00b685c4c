package repository

import (
	"context"
	"fmt"

	"github.com/memegallery/api/internal/domain"
	"gorm.io/gorm"
)

// MemeRepository translates meme operations into store access. It carries
// no business logic beyond shape translation; every method is a single
// round trip with no caching and no transactions.
type MemeRepository struct {
	db *gorm.DB
}

// NewMemeRepository creates a new MemeRepository.
// Parameters:
//   - db: GORM database handle used for queries.
// Returns:
//   - *MemeRepository: repository instance bound to db.
func NewMemeRepository(db *gorm.DB) *MemeRepository {
	return &MemeRepository{db: db}
}

// ListAll retrieves every meme row in store-native order. Callers must
// not assume chronological or id order.
// Parameters:
//   - ctx: context for cancellation and deadlines.
// Returns:
//   - []domain.Meme: all meme records, empty slice when the table is empty.
//   - error: non-nil if the query fails; carries the driver diagnostic.
func (r *MemeRepository) ListAll(ctx context.Context) ([]domain.Meme, error) {
	memes := make([]domain.Meme, 0)
	if err := r.db.WithContext(ctx).Find(&memes).Error; err != nil {
		return nil, fmt.Errorf("failed to list memes: %w", err)
	}
	return memes, nil
}

// Create inserts a new meme row. The store assigns ID and CreatedAt; both
// are populated on the passed record before returning.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - meme: meme record to persist.
// Returns:
//   - error: non-nil if the insert fails, including constraint violations.
func (r *MemeRepository) Create(ctx context.Context, meme *domain.Meme) error {
	if err := r.db.WithContext(ctx).Create(meme).Error; err != nil {
		return fmt.Errorf("failed to insert meme: %w", err)
	}
	return nil
}

// GetByID retrieves a meme by its ID.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - id: meme ID.
// Returns:
//   - *domain.Meme: meme record if found.
//   - error: gorm.ErrRecordNotFound when no row matches.
func (r *MemeRepository) GetByID(ctx context.Context, id int64) (*domain.Meme, error) {
	var meme domain.Meme
	if err := r.db.WithContext(ctx).First(&meme, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &meme, nil
}

// Count returns the total number of meme rows.
// Parameters:
//   - ctx: context for cancellation and deadlines.
// Returns:
//   - int64: number of records.
//   - error: non-nil if the query fails.
func (r *MemeRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.Meme{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count memes: %w", err)
	}
	return count, nil
}
