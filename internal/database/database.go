package database

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"

	"andhrawala/internal/models"
)

// Service is the flat-file user collection. Every write rewrites the whole
// file; readers always see the last complete write.
type Service interface {
	Health() map[string]string
	ReadUsers() []models.User
	WriteUsers(users []models.User) error
}

type service struct {
	path string
}

// New opens the user store at path, creating an empty collection file if none
// exists yet.
func New(path string) Service {
	s := &service{path: path}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := s.WriteUsers([]models.User{}); err != nil {
			log.Fatal().Err(err).Str("path", path).Msg("Failed to initialize user store")
		}
	}
	return s
}

func (s *service) Health() map[string]string {
	info, err := os.Stat(s.path)
	if err != nil {
		log.Error().Err(err).Str("path", s.path).Msg("User store health check failed")
		return map[string]string{
			"message": "store down",
			"error":   err.Error(),
		}
	}

	return map[string]string{
		"message": "It's healthy",
		"users":   fmt.Sprintf("%d bytes", info.Size()),
	}
}

// ReadUsers loads the full collection. A missing or unparsable file loads as
// an empty collection; corruption is logged but not surfaced to callers.
func (s *service) ReadUsers() []models.User {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Error().Err(err).Str("path", s.path).Msg("Failed to read user store")
		}
		return []models.User{}
	}

	var users []models.User
	if err := json.Unmarshal(data, &users); err != nil {
		log.Error().Err(err).Str("path", s.path).Msg("User store is unparsable, treating as empty")
		return []models.User{}
	}
	return users
}

// WriteUsers replaces the collection. The file is written to a sibling temp
// file and renamed over the old one so a crash mid-write cannot truncate it.
func (s *service) WriteUsers(users []models.User) error {
	data, err := json.MarshalIndent(users, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode users: %w", err)
	}

	tmp := filepath.Join(filepath.Dir(s.path), "."+filepath.Base(s.path)+".tmp")
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write user store: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace user store: %w", err)
	}
	return nil
}
