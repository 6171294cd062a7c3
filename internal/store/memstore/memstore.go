// Package memstore 以記憶體實作 store.Backend，供本機開發與測試使用
package memstore

import (
	"context"
	"sort"
	"strings"
	"sync"

	"moviesgo/internal/model"
	"moviesgo/internal/store"
)

type record[T any] struct {
	seq int64
	val T
}

type Store struct {
	mu       sync.RWMutex
	seq      int64
	users    map[string]*record[model.User]
	movies   map[string]*record[model.Movie]
	contacts map[string]*record[model.Contact]
}

var _ store.Backend = (*Store)(nil)

func New() *Store {
	return &Store{
		users:    make(map[string]*record[model.User]),
		movies:   make(map[string]*record[model.Movie]),
		contacts: make(map[string]*record[model.Contact]),
	}
}

func (s *Store) Ping(context.Context) error { return nil }
func (s *Store) Close() error               { return nil }

func (s *Store) nextSeq() int64 {
	s.seq++
	return s.seq
}

// visible 軟刪除過濾集中在這裡
func visible(deleted bool, scope store.Scope) bool {
	return scope == store.IncludeDeleted || !deleted
}

// page 依建立時間由新到舊排序後切片
func page[T any](recs []*record[T], createdAt func(T) int64, p store.Page) ([]T, int64) {
	sort.Slice(recs, func(i, j int) bool {
		ci, cj := createdAt(recs[i].val), createdAt(recs[j].val)
		if ci != cj {
			return ci > cj
		}
		return recs[i].seq > recs[j].seq
	})
	total := int64(len(recs))
	out := make([]T, 0, p.Limit)
	start := p.Offset()
	if start < 0 {
		start = 0
	}
	for i := start; i < len(recs) && len(out) < p.Limit; i++ {
		out = append(out, recs[i].val)
	}
	return out, total
}

// ============================================================================
// Users
// ============================================================================

func (s *Store) userConflict(u *model.User) error {
	for id, r := range s.users {
		if id == u.ID || r.val.Deleted {
			continue
		}
		if r.val.Email == u.Email {
			return &store.DuplicateError{Field: "email"}
		}
		if r.val.Username == u.Username {
			return &store.DuplicateError{Field: "username"}
		}
	}
	return nil
}

func (s *Store) CreateUser(_ context.Context, u *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.userConflict(u); err != nil {
		return err
	}
	u.ID = store.NewID()
	u.CreatedAt = store.Now()
	u.UpdatedAt = u.CreatedAt
	u.Deleted = false
	s.users[u.ID] = &record[model.User]{seq: s.nextSeq(), val: *u}
	return nil
}

func (s *Store) GetUserByID(_ context.Context, id string, scope store.Scope) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.users[id]
	if !ok || !visible(r.val.Deleted, scope) {
		return nil, store.ErrNotFound
	}
	u := r.val
	return &u, nil
}

func (s *Store) findUser(match func(model.User) bool) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.users {
		if !r.val.Deleted && match(r.val) {
			u := r.val
			return &u, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *Store) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	return s.findUser(func(u model.User) bool { return u.Email == email })
}

func (s *Store) GetUserByUsername(_ context.Context, username string) (*model.User, error) {
	return s.findUser(func(u model.User) bool { return u.Username == username })
}

func (s *Store) ListUsers(_ context.Context, p store.Page) ([]model.User, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var recs []*record[model.User]
	for _, r := range s.users {
		if visible(r.val.Deleted, store.ActiveOnly) {
			recs = append(recs, r)
		}
	}
	items, total := page(recs, func(u model.User) int64 { return u.CreatedAt.UnixNano() }, p)
	for i := range items {
		items[i] = items[i].Public()
	}
	return items, total, nil
}

func (s *Store) UpdateUser(_ context.Context, u *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.users[u.ID]
	if !ok || r.val.Deleted {
		return store.ErrNotFound
	}
	if err := s.userConflict(u); err != nil {
		return err
	}
	r.val.Username = u.Username
	r.val.Email = u.Email
	r.val.UpdatedAt = store.Now()
	u.UpdatedAt = r.val.UpdatedAt
	return nil
}

func (s *Store) UpdateUserPassword(_ context.Context, id, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.users[id]
	if !ok || r.val.Deleted {
		return store.ErrNotFound
	}
	r.val.PasswordHash = passwordHash
	r.val.UpdatedAt = store.Now()
	return nil
}

func (s *Store) SoftDeleteUser(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.users[id]
	if !ok || r.val.Deleted {
		return store.ErrNotFound
	}
	r.val.Deleted = true
	r.val.UpdatedAt = store.Now()
	return nil
}

// ============================================================================
// Movies
// ============================================================================

func (s *Store) CreateMovie(_ context.Context, m *model.Movie) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m.ID = store.NewID()
	m.CreatedAt = store.Now()
	m.UpdatedAt = m.CreatedAt
	m.Deleted = false
	s.movies[m.ID] = &record[model.Movie]{seq: s.nextSeq(), val: *m}
	return nil
}

func (s *Store) GetMovieByID(_ context.Context, id string, scope store.Scope) (*model.Movie, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.movies[id]
	if !ok || !visible(r.val.Deleted, scope) {
		return nil, store.ErrNotFound
	}
	m := r.val
	return &m, nil
}

func (s *Store) ListMovies(_ context.Context, f store.MovieFilter, p store.Page) ([]model.Movie, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	title := strings.ToLower(f.Title)
	var recs []*record[model.Movie]
	for _, r := range s.movies {
		if !visible(r.val.Deleted, store.ActiveOnly) {
			continue
		}
		if f.Category != "" && string(r.val.Category) != f.Category {
			continue
		}
		if title != "" && !strings.Contains(strings.ToLower(r.val.Title), title) {
			continue
		}
		recs = append(recs, r)
	}
	items, total := page(recs, func(m model.Movie) int64 { return m.CreatedAt.UnixNano() }, p)
	return items, total, nil
}

func (s *Store) UpdateMovie(_ context.Context, m *model.Movie) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.movies[m.ID]
	if !ok || r.val.Deleted {
		return store.ErrNotFound
	}
	m.CreatedAt = r.val.CreatedAt
	m.UpdatedAt = store.Now()
	m.Deleted = false
	r.val = *m
	return nil
}

func (s *Store) SoftDeleteMovie(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.movies[id]
	if !ok || r.val.Deleted {
		return store.ErrNotFound
	}
	r.val.Deleted = true
	r.val.UpdatedAt = store.Now()
	return nil
}

// ============================================================================
// Contacts
// ============================================================================

func (s *Store) CreateContact(_ context.Context, c *model.Contact) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.ID = store.NewID()
	c.CreatedAt = store.Now()
	c.UpdatedAt = c.CreatedAt
	c.Deleted = false
	s.contacts[c.ID] = &record[model.Contact]{seq: s.nextSeq(), val: *c}
	return nil
}

func (s *Store) GetContactByID(_ context.Context, id string, scope store.Scope) (*model.Contact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.contacts[id]
	if !ok || !visible(r.val.Deleted, scope) {
		return nil, store.ErrNotFound
	}
	c := r.val
	return &c, nil
}

func (s *Store) ListContacts(_ context.Context, p store.Page) ([]model.Contact, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var recs []*record[model.Contact]
	for _, r := range s.contacts {
		if visible(r.val.Deleted, store.ActiveOnly) {
			recs = append(recs, r)
		}
	}
	items, total := page(recs, func(c model.Contact) int64 { return c.CreatedAt.UnixNano() }, p)
	return items, total, nil
}

func (s *Store) UpdateContact(_ context.Context, c *model.Contact) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.contacts[c.ID]
	if !ok || r.val.Deleted {
		return store.ErrNotFound
	}
	r.val.Name, r.val.Email, r.val.Message = c.Name, c.Email, c.Message
	r.val.UpdatedAt = store.Now()
	*c = r.val
	return nil
}

func (s *Store) SoftDeleteContact(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.contacts[id]
	if !ok || r.val.Deleted {
		return store.ErrNotFound
	}
	r.val.Deleted = true
	r.val.UpdatedAt = store.Now()
	return nil
}
