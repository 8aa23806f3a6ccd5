package repositories

import (
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"

	"andhrawala/internal/database"
	"andhrawala/internal/models"
	"andhrawala/internal/utils"
)

var (
	ErrDuplicateContact  = fmt.Errorf("contact already exists")
	ErrDuplicateUsername = fmt.Errorf("username already exists")
)

type UserRepository interface {
	Create(user *models.User) (*models.User, error)
	FindByContact(contact string) *models.User
	FindByUsername(username string) *models.User
	CountAll() int64
}

// userRepository layers uniqueness checks over the whole-file store. The
// mutex holds the check-and-insert in one critical section so two concurrent
// signups cannot both pass the duplicate check.
type userRepository struct {
	mu sync.Mutex
	db database.Service
}

func NewUserRepository(db database.Service) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *models.User) (*models.User, error) {
	queryType := "create"
	repository := "user"
	timer := prometheus.NewTimer(prometheus.ObserverFunc(func(v float64) {
		utils.StoreOperationDurationSeconds.WithLabelValues(queryType, repository).Observe(v)
	}))
	defer timer.ObserveDuration()

	r.mu.Lock()
	defer r.mu.Unlock()

	users := r.db.ReadUsers()
	for i := range users {
		if users[i].Contact == user.Contact {
			return nil, ErrDuplicateContact
		}
		if users[i].Username == user.Username {
			return nil, ErrDuplicateUsername
		}
	}

	users = append(users, *user)
	if err := r.db.WriteUsers(users); err != nil {
		utils.StoreOperationErrorsTotal.WithLabelValues(queryType, repository).Inc()
		log.Error().Err(err).Str("username", user.Username).Msg("Failed to persist user")
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

func (r *userRepository) FindByContact(contact string) *models.User {
	timer := prometheus.NewTimer(prometheus.ObserverFunc(func(v float64) {
		utils.StoreOperationDurationSeconds.WithLabelValues("findByContact", "user").Observe(v)
	}))
	defer timer.ObserveDuration()

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.db.ReadUsers() {
		if u.Contact == contact {
			return &u
		}
	}
	return nil
}

func (r *userRepository) FindByUsername(username string) *models.User {
	timer := prometheus.NewTimer(prometheus.ObserverFunc(func(v float64) {
		utils.StoreOperationDurationSeconds.WithLabelValues("findByUsername", "user").Observe(v)
	}))
	defer timer.ObserveDuration()

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.db.ReadUsers() {
		if u.Username == username {
			return &u
		}
	}
	return nil
}

func (r *userRepository) CountAll() int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.db.ReadUsers()))
}
