package pgstore

import (
	"context"
	"fmt"
	"strings"

	"moviesgo/internal/model"
	"moviesgo/internal/store"

	"github.com/jackc/pgx/v5"
)

const movieColumns = `id, title, genre, year, description, image_url, category, deleted, created_at, updated_at`

func scanMovie(row pgx.Row) (*model.Movie, error) {
	m := &model.Movie{}
	if err := row.Scan(
		&m.ID,
		&m.Title,
		&m.Genre,
		&m.Year,
		&m.Description,
		&m.ImageURL,
		&m.Category,
		&m.Deleted,
		&m.CreatedAt,
		&m.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return m, nil
}

// movieWhere 產生列表條件與對應參數，參數編號從 $1 開始
func movieWhere(f store.MovieFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	if f.Category != "" {
		args = append(args, f.Category)
		conds = append(conds, fmt.Sprintf("category = $%d", len(args)))
	}
	if f.Title != "" {
		args = append(args, "%"+escapeLike(f.Title)+"%")
		conds = append(conds, fmt.Sprintf("title ILIKE $%d", len(args)))
	}
	return activeWhere(strings.Join(conds, " AND "), store.ActiveOnly), args
}

func (s *Store) CreateMovie(ctx context.Context, m *model.Movie) error {
	m.ID = store.NewID()
	m.CreatedAt = store.Now()
	m.UpdatedAt = m.CreatedAt
	m.Deleted = false
	_, err := s.db.Exec(ctx,
		`INSERT INTO movies (id, title, genre, year, description, image_url, category, deleted, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, FALSE, $8, $9)`,
		m.ID,
		m.Title,
		m.Genre,
		m.Year,
		m.Description,
		m.ImageURL,
		string(m.Category),
		m.CreatedAt,
		m.UpdatedAt,
	)
	return wrapError("CreateMovie", err)
}

func (s *Store) GetMovieByID(ctx context.Context, id string, scope store.Scope) (*model.Movie, error) {
	row := s.db.QueryRow(ctx,
		fmt.Sprintf(`SELECT %s FROM movies WHERE %s`, movieColumns, activeWhere("id = $1", scope)),
		id,
	)
	m, err := scanMovie(row)
	if err != nil {
		return nil, wrapError("GetMovieByID", err)
	}
	return m, nil
}

func (s *Store) ListMovies(ctx context.Context, f store.MovieFilter, p store.Page) ([]model.Movie, int64, error) {
	where, args := movieWhere(f)
	total, err := s.count(ctx, "ListMovies", "movies", where, args...)
	if err != nil {
		return nil, 0, err
	}

	q := fmt.Sprintf(`SELECT %s FROM movies WHERE %s ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d`,
		movieColumns, where, len(args)+1, len(args)+2)
	rows, err := s.db.Query(ctx, q, append(args, p.Limit, p.Offset())...)
	if err != nil {
		return nil, 0, wrapError("ListMovies", err)
	}
	defer rows.Close()

	movies := make([]model.Movie, 0, p.Limit)
	for rows.Next() {
		m, err := scanMovie(rows)
		if err != nil {
			return nil, 0, wrapError("ListMovies", err)
		}
		movies = append(movies, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, wrapError("ListMovies", err)
	}
	return movies, total, nil
}

func (s *Store) UpdateMovie(ctx context.Context, m *model.Movie) error {
	m.UpdatedAt = store.Now()
	return s.execActive(ctx, "UpdateMovie",
		`UPDATE movies
		 SET title = $1, genre = $2, year = $3, description = $4, image_url = $5, category = $6, updated_at = $7
		 WHERE id = $8 AND NOT deleted`,
		m.Title,
		m.Genre,
		m.Year,
		m.Description,
		m.ImageURL,
		string(m.Category),
		m.UpdatedAt,
		m.ID,
	)
}

func (s *Store) SoftDeleteMovie(ctx context.Context, id string) error {
	return s.execActive(ctx, "SoftDeleteMovie",
		`UPDATE movies SET deleted = TRUE, updated_at = $1 WHERE id = $2 AND NOT deleted`,
		store.Now(),
		id,
	)
}
