package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"pharmadz/internal/adapters/persistence/models"
	"pharmadz/internal/adapters/persistence/repositories"

	"gorm.io/gorm"
)

// In-memory repository fakes backing the service tests.

type fakeUserRepo struct {
	users  map[uint]*models.User
	nextID uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uint]*models.User), nextID: 1}
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	user.ID = r.nextID
	r.nextID++
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id uint) (*models.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *user
	return &clone, nil
}

func (r *fakeUserRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	for _, user := range r.users {
		if user.Username == username {
			clone := *user
			return &clone, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) GetByGoogleID(_ context.Context, googleID string) (*models.User, error) {
	for _, user := range r.users {
		if user.GoogleID != nil && *user.GoogleID == googleID {
			clone := *user
			return &clone, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) Update(_ context.Context, user *models.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) ExistsByUsername(_ context.Context, username string) (bool, error) {
	for _, user := range r.users {
		if user.Username == username {
			return true, nil
		}
	}
	return false, nil
}

type fakeRefreshTokenRepo struct {
	tokens map[uint]*models.RefreshToken
	nextID uint
}

func newFakeRefreshTokenRepo() *fakeRefreshTokenRepo {
	return &fakeRefreshTokenRepo{tokens: make(map[uint]*models.RefreshToken), nextID: 1}
}

func (r *fakeRefreshTokenRepo) Create(_ context.Context, token *models.RefreshToken) error {
	token.ID = r.nextID
	r.nextID++
	clone := *token
	r.tokens[token.ID] = &clone
	return nil
}

func (r *fakeRefreshTokenRepo) GetByTokenHash(_ context.Context, tokenHash string) (*models.RefreshToken, error) {
	for _, token := range r.tokens {
		if token.TokenHash == tokenHash {
			clone := *token
			return &clone, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeRefreshTokenRepo) Revoke(_ context.Context, id uint) error {
	token, ok := r.tokens[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	now := time.Now()
	token.RevokedAt = &now
	return nil
}

func (r *fakeRefreshTokenRepo) RevokeByTokenHash(_ context.Context, tokenHash string) error {
	for _, token := range r.tokens {
		if token.TokenHash == tokenHash {
			now := time.Now()
			token.RevokedAt = &now
		}
	}
	return nil
}

func (r *fakeRefreshTokenRepo) RevokeAllByUserID(_ context.Context, userID uint) error {
	for _, token := range r.tokens {
		if token.UserID == userID {
			now := time.Now()
			token.RevokedAt = &now
		}
	}
	return nil
}

func (r *fakeRefreshTokenRepo) DeleteExpired(_ context.Context) error {
	for id, token := range r.tokens {
		if token.IsExpired() {
			delete(r.tokens, id)
		}
	}
	return nil
}

type fakeSessionTokenRepo struct {
	tokens map[uint]*models.SessionToken
	nextID uint
}

func newFakeSessionTokenRepo() *fakeSessionTokenRepo {
	return &fakeSessionTokenRepo{tokens: make(map[uint]*models.SessionToken), nextID: 1}
}

func (r *fakeSessionTokenRepo) Create(_ context.Context, token *models.SessionToken) error {
	token.ID = r.nextID
	r.nextID++
	clone := *token
	r.tokens[token.ID] = &clone
	return nil
}

func (r *fakeSessionTokenRepo) GetByToken(_ context.Context, token string) (*models.SessionToken, error) {
	for _, stored := range r.tokens {
		if stored.Token == token {
			clone := *stored
			return &clone, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeSessionTokenRepo) Consume(_ context.Context, id uint) error {
	token, ok := r.tokens[id]
	if !ok || token.ConsumedAt != nil {
		return gorm.ErrRecordNotFound
	}
	now := time.Now()
	token.ConsumedAt = &now
	return nil
}

func (r *fakeSessionTokenRepo) DeleteExpired(_ context.Context) error {
	for id, token := range r.tokens {
		if token.IsExpired() {
			delete(r.tokens, id)
		}
	}
	return nil
}

type fakePharmacyRepo struct {
	pharmacies map[string]*models.Pharmacy
}

func newFakePharmacyRepo() *fakePharmacyRepo {
	return &fakePharmacyRepo{pharmacies: make(map[string]*models.Pharmacy)}
}

func (r *fakePharmacyRepo) Create(_ context.Context, pharmacy *models.Pharmacy) error {
	clone := *pharmacy
	r.pharmacies[pharmacy.ID] = &clone
	return nil
}

func (r *fakePharmacyRepo) GetByID(_ context.Context, id string) (*models.Pharmacy, error) {
	pharmacy, ok := r.pharmacies[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *pharmacy
	clone.Stock = append([]models.StockItem(nil), pharmacy.Stock...)
	return &clone, nil
}

func (r *fakePharmacyRepo) Update(_ context.Context, pharmacy *models.Pharmacy) error {
	stored, ok := r.pharmacies[pharmacy.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	clone := *pharmacy
	clone.Stock = stored.Stock
	r.pharmacies[pharmacy.ID] = &clone
	return nil
}

func (r *fakePharmacyRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.pharmacies[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.pharmacies, id)
	return nil
}

func (r *fakePharmacyRepo) List(_ context.Context, filter repositories.PharmacyFilter) ([]*models.Pharmacy, error) {
	var out []*models.Pharmacy
	for _, pharmacy := range r.pharmacies {
		if filter.Wilaya != "" && pharmacy.Location.Wilaya != filter.Wilaya {
			continue
		}
		if filter.Commune != "" && pharmacy.Location.Commune != filter.Commune {
			continue
		}
		if filter.Quartier != "" && pharmacy.Location.Quartier != filter.Quartier {
			continue
		}
		if filter.SubscribedOnly && !pharmacy.SubscriptionActive {
			continue
		}
		if filter.Medication != "" {
			found := false
			for _, item := range pharmacy.Stock {
				if item.Available && strings.Contains(strings.ToLower(item.MedicationName), strings.ToLower(filter.Medication)) {
					found = true
					break
				}
			}
			if !found {
				continue
			}
		}
		clone := *pharmacy
		clone.Stock = append([]models.StockItem(nil), pharmacy.Stock...)
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakePharmacyRepo) ListPaginated(_ context.Context, offset, limit int) ([]*models.Pharmacy, int64, error) {
	all, _ := r.List(context.Background(), repositories.PharmacyFilter{})
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (r *fakePharmacyRepo) ReplaceStock(_ context.Context, pharmacyID string, items []models.StockItem) error {
	pharmacy, ok := r.pharmacies[pharmacyID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	pharmacy.Stock = append([]models.StockItem(nil), items...)
	return nil
}
