package repositories

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"andhrawala/internal/models"
)

const sessionTokenBytes = 24

type SessionRepository interface {
	Create(identity models.Session) (string, error)
	Resolve(token string) (models.Session, bool)
	Count() int64
}

// sessionRepository maps opaque bearer tokens to identities. Sessions never
// expire and are never revoked; a restart drops them all.
type sessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]models.Session
}

func NewSessionRepository() SessionRepository {
	return &sessionRepository{sessions: make(map[string]models.Session)}
}

func (r *sessionRepository) Create(identity models.Session) (string, error) {
	buf := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}
	token := hex.EncodeToString(buf)

	identity.CreatedAt = time.Now()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[token] = identity
	return token, nil
}

func (r *sessionRepository) Resolve(token string) (models.Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	session, ok := r.sessions[token]
	return session, ok
}

func (r *sessionRepository) Count() int64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.sessions))
}
