package service

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"go-rentify/internal/model"
)

type memTokenStore struct {
	mu      sync.Mutex
	records []model.TokenRecord
	inserts int
	deletes int
	err     error
}

func newMemTokenStore() *memTokenStore {
	return &memTokenStore{}
}

func (s *memTokenStore) FindLatestByUser(_ context.Context, userID string) (model.TokenRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.err != nil {
		return model.TokenRecord{}, s.err
	}

	matches := make([]int, 0)
	for i, rec := range s.records {
		if rec.UserID == userID {
			matches = append(matches, i)
		}
	}
	if len(matches) == 0 {
		return model.TokenRecord{}, model.ErrTokenNotFound
	}

	// Newest first; later insertion wins a created_at tie.
	sort.SliceStable(matches, func(a, b int) bool {
		ra, rb := s.records[matches[a]], s.records[matches[b]]
		if ra.CreatedAt.Equal(rb.CreatedAt) {
			return matches[a] > matches[b]
		}
		return ra.CreatedAt.After(rb.CreatedAt)
	})
	return s.records[matches[0]], nil
}

func (s *memTokenStore) Insert(_ context.Context, rec model.TokenRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.err != nil {
		return s.err
	}
	s.inserts++
	s.records = append(s.records, rec)
	return nil
}

func (s *memTokenStore) DeleteByUser(_ context.Context, userID string) error {
	return s.deleteWhere(func(rec model.TokenRecord) bool { return rec.UserID == userID })
}

func (s *memTokenStore) DeleteByTokenID(_ context.Context, tokenID string) error {
	return s.deleteWhere(func(rec model.TokenRecord) bool { return rec.TokenID == tokenID })
}

func (s *memTokenStore) deleteWhere(match func(model.TokenRecord) bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.err != nil {
		return s.err
	}
	kept := s.records[:0]
	for _, rec := range s.records {
		if match(rec) {
			s.deletes++
			continue
		}
		kept = append(kept, rec)
	}
	s.records = kept
	return nil
}

func (s *memTokenStore) countFor(userID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, rec := range s.records {
		if rec.UserID == userID {
			n++
		}
	}
	return n
}

type memUserStore struct {
	mu    sync.Mutex
	users map[string]model.User
}

func newMemUserStore(users ...model.User) *memUserStore {
	s := &memUserStore{users: map[string]model.User{}}
	for _, u := range users {
		s.users[u.ID] = u
	}
	return s
}

func (s *memUserStore) FindByID(_ context.Context, id string) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return model.User{}, model.ErrUserNotFound
	}
	return u, nil
}

func (s *memUserStore) FindByEmail(_ context.Context, email string) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == model.NormalizeEmail(email) {
			return u, nil
		}
	}
	return model.User{}, model.ErrUserNotFound
}

func (s *memUserStore) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := s.FindByEmail(ctx, email)
	return err == nil, nil
}

func (s *memUserStore) Create(_ context.Context, user model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Email == user.Email {
			return model.ErrUserAlreadyExists
		}
	}
	s.users[user.ID] = user
	return nil
}

type memPropertyStore struct {
	mu         sync.Mutex
	properties map[string]model.Property
}

func newMemPropertyStore() *memPropertyStore {
	return &memPropertyStore{properties: map[string]model.Property{}}
}

func (s *memPropertyStore) List(_ context.Context) ([]model.Property, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Property, 0, len(s.properties))
	for _, p := range s.properties {
		out = append(out, p)
	}
	return out, nil
}

func (s *memPropertyStore) ListBySeller(_ context.Context, sellerID string) ([]model.Property, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Property, 0)
	for _, p := range s.properties {
		if p.SellerID == sellerID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *memPropertyStore) FindByID(_ context.Context, id string) (model.Property, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.properties[id]
	if !ok {
		return model.Property{}, model.ErrPropertyNotFound
	}
	return p, nil
}

func (s *memPropertyStore) Create(_ context.Context, p model.Property) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.properties[p.ID] = p
	return nil
}

func (s *memPropertyStore) Update(_ context.Context, p model.Property) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.properties[p.ID]; !ok {
		return model.ErrPropertyNotFound
	}
	s.properties[p.ID] = p
	return nil
}

func (s *memPropertyStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.properties[id]; !ok {
		return model.ErrPropertyNotFound
	}
	delete(s.properties, id)
	return nil
}

func storeDown() error {
	return fmt.Errorf("find latest token: %w: %w", model.ErrStoreUnavailable, context.DeadlineExceeded)
}
