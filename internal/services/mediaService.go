package services

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"

	"andhrawala/internal/models"
)

// MediaService enumerates and resolves video files under a single directory.
type MediaService interface {
	List() ([]models.Movie, error)
	Resolve(name string) (string, os.FileInfo, error)
	EnsureDir() error
}

type mediaService struct {
	dir  string
	exts map[string]bool
}

func NewMediaService(dir string, exts []string) MediaService {
	allowed := make(map[string]bool, len(exts))
	for _, ext := range exts {
		allowed[strings.ToLower(ext)] = true
	}
	return &mediaService{dir: dir, exts: allowed}
}

// EnsureDir creates the media directory if it doesn't exist, so listings on a
// fresh install return an empty catalog instead of failing.
func (s *mediaService) EnsureDir() error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("failed to create media directory %s: %w", s.dir, err)
	}
	return nil
}

// List returns the catalog: every regular file in the media directory whose
// extension is allowed, mapped to its playback URL.
func (s *mediaService) List() ([]models.Movie, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		log.Error().Err(err).Str("dir", s.dir).Msg("Failed to read media directory")
		return nil, fmt.Errorf("failed to read media directory: %w", err)
	}

	movies := make([]models.Movie, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !s.exts[strings.ToLower(filepath.Ext(name))] {
			continue
		}
		movies = append(movies, models.Movie{
			Name: name,
			URL:  "/video/" + url.PathEscape(name),
		})
	}

	sort.Slice(movies, func(i, j int) bool { return movies[i].Name < movies[j].Name })
	return movies, nil
}

// Resolve maps a requested filename to its path inside the media directory.
// The name is reduced to its base component so path traversal cannot escape
// the directory. Returns os.ErrNotExist-wrapped errors for missing files.
func (s *mediaService) Resolve(name string) (string, os.FileInfo, error) {
	name = filepath.Base(name)
	if name == "." || name == string(filepath.Separator) {
		return "", nil, fmt.Errorf("invalid file name: %w", os.ErrNotExist)
	}

	path := filepath.Join(s.dir, name)
	info, err := os.Stat(path)
	if err != nil {
		return "", nil, fmt.Errorf("file not found: %w", err)
	}
	if info.IsDir() {
		return "", nil, fmt.Errorf("file not found: %w", os.ErrNotExist)
	}
	return path, info, nil
}
