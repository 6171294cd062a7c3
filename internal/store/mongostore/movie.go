package mongostore

import (
	"context"
	"fmt"
	"regexp"

	"moviesgo/internal/model"
	"moviesgo/internal/store"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// movieFilter 轉換列表條件；標題為不分大小寫的子字串比對
func movieFilter(f store.MovieFilter) bson.D {
	filter := bson.D{}
	if f.Category != "" {
		filter = append(filter, bson.E{Key: "category", Value: f.Category})
	}
	if f.Title != "" {
		filter = append(filter, bson.E{Key: "title", Value: bson.Regex{Pattern: regexp.QuoteMeta(f.Title), Options: "i"}})
	}
	return filter
}

func (s *Store) CreateMovie(ctx context.Context, m *model.Movie) error {
	m.ID = store.NewID()
	m.CreatedAt = store.Now()
	m.UpdatedAt = m.CreatedAt
	m.Deleted = false
	if _, err := s.col(ColMovies).InsertOne(ctx, m); err != nil {
		return fmt.Errorf("CreateMovie: %w", wrapError(err))
	}
	return nil
}

func (s *Store) GetMovieByID(ctx context.Context, id string, scope store.Scope) (*model.Movie, error) {
	return findOne[model.Movie](ctx, s.col(ColMovies), scoped(byID(id), scope))
}

func (s *Store) ListMovies(ctx context.Context, f store.MovieFilter, p store.Page) ([]model.Movie, int64, error) {
	return findPage[model.Movie](ctx, s.col(ColMovies), scoped(movieFilter(f), store.ActiveOnly), p, nil)
}

func (s *Store) UpdateMovie(ctx context.Context, m *model.Movie) error {
	m.UpdatedAt = store.Now()
	err := updateActive(ctx, s.col(ColMovies), m.ID, bson.D{
		{Key: "title", Value: m.Title},
		{Key: "genre", Value: m.Genre},
		{Key: "year", Value: m.Year},
		{Key: "description", Value: m.Description},
		{Key: "image_url", Value: m.ImageURL},
		{Key: "category", Value: m.Category},
		{Key: "updated_at", Value: m.UpdatedAt},
	})
	if err != nil {
		return fmt.Errorf("UpdateMovie: %w", err)
	}
	return nil
}

func (s *Store) SoftDeleteMovie(ctx context.Context, id string) error {
	if err := softDelete(ctx, s.col(ColMovies), id); err != nil {
		return fmt.Errorf("SoftDeleteMovie: %w", err)
	}
	return nil
}
