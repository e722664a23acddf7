package memory

import (
	"context"
	"sync"
	"time"

	"github.com/vpopov/authgate/internal/model"
)

var _ model.RevokedTokenStore = (*RevokedTokenRepository)(nil)

type RevokedTokenRepository struct {
	mu     sync.RWMutex
	tokens map[string]time.Time
}

func NewRevokedTokenRepository() *RevokedTokenRepository {
	return &RevokedTokenRepository{tokens: make(map[string]time.Time)}
}

func (r *RevokedTokenRepository) Revoke(_ context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tokens[token]; !ok {
		r.tokens[token] = time.Now()
	}
	return nil
}

func (r *RevokedTokenRepository) IsRevoked(_ context.Context, token string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.tokens[token]
	return ok, nil
}

func (r *RevokedTokenRepository) DeleteExpiredBefore(_ context.Context, cutoff time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var pruned int64
	for token, revokedAt := range r.tokens {
		if revokedAt.Before(cutoff) {
			delete(r.tokens, token)
			pruned++
		}
	}
	return pruned, nil
}
