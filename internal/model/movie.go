package model

import (
	"regexp"
	"strings"
	"time"

	"moviesgo/internal/validate"
)

// Category 電影分類
type Category string

const (
	CategoryAction Category = "action"
	CategoryComedy Category = "comedy"
	CategoryDrama  Category = "drama"
)

var imageURLPattern = regexp.MustCompile(`^https?://.+\..+`)

// Valid 是否為允許的分類
func (c Category) Valid() bool {
	switch c {
	case CategoryAction, CategoryComedy, CategoryDrama:
		return true
	}
	return false
}

type Movie struct {
	ID          string    `db:"id" bson:"_id" json:"id"`
	Title       string    `db:"title" bson:"title" json:"title"`
	Genre       string    `db:"genre" bson:"genre" json:"genre"`
	Year        int       `db:"year" bson:"year" json:"year"`
	Description string    `db:"description" bson:"description,omitempty" json:"description,omitempty"`
	ImageURL    string    `db:"image_url" bson:"image_url" json:"imageUrl"`
	Category    Category  `db:"category" bson:"category" json:"category"`
	Deleted     bool      `db:"deleted" bson:"deleted" json:"-"`
	CreatedAt   time.Time `db:"created_at" bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" bson:"updated_at" json:"updatedAt"`
}

// MovieFields 建立電影時的輸入
type MovieFields struct {
	Title       string
	Genre       string
	Year        int
	Description string
	ImageURL    string
	Category    string
}

// MoviePatch 更新電影；nil 代表不修改
type MoviePatch struct {
	Title       *string
	Genre       *string
	Year        *int
	Description *string
	ImageURL    *string
	Category    *string
}

// NewMovie 建立並驗證電影，now 用來計算年份上限
func NewMovie(f MovieFields, now time.Time) (*Movie, error) {
	m := &Movie{
		Title:       strings.TrimSpace(f.Title),
		Genre:       strings.TrimSpace(f.Genre),
		Year:        f.Year,
		Description: strings.TrimSpace(f.Description),
		ImageURL:    f.ImageURL,
		Category:    Category(f.Category),
	}
	if err := m.validate(now); err != nil {
		return nil, err
	}
	return m, nil
}

// Apply 合併更新欄位後重新驗證；驗證失敗時不修改 m
func (m *Movie) Apply(p MoviePatch, now time.Time) error {
	next := *m
	if p.Title != nil {
		next.Title = strings.TrimSpace(*p.Title)
	}
	if p.Genre != nil {
		next.Genre = strings.TrimSpace(*p.Genre)
	}
	if p.Year != nil {
		next.Year = *p.Year
	}
	if p.Description != nil {
		next.Description = strings.TrimSpace(*p.Description)
	}
	if p.ImageURL != nil {
		next.ImageURL = *p.ImageURL
	}
	if p.Category != nil {
		next.Category = Category(*p.Category)
	}
	if err := next.validate(now); err != nil {
		return err
	}
	*m = next
	return nil
}

func (m *Movie) validate(now time.Time) error {
	if !validate.IsNonEmpty(m.Title) {
		return invalid("title", "title is required")
	}
	if !validate.IsNonEmpty(m.Genre) {
		return invalid("genre", "genre is required")
	}
	if !validate.IsYearInRange(m.Year, validate.MinMovieYear, validate.MaxMovieYear(now)) {
		return invalid("year", "year must be between 1900 and the current year + 5")
	}
	if !imageURLPattern.MatchString(m.ImageURL) {
		return invalid("imageUrl", "invalid image url")
	}
	if !m.Category.Valid() {
		return invalid("category", "invalid category")
	}
	return nil
}
