package handlers

import (
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"andhrawala/internal/models"
	"andhrawala/internal/services"
	"andhrawala/internal/utils"
)

type MediaHandler struct {
	mediaService services.MediaService
}

func NewMediaHandler(mediaService services.MediaService) *MediaHandler {
	return &MediaHandler{mediaService: mediaService}
}

func (h *MediaHandler) ListMovies(w http.ResponseWriter, r *http.Request) {
	movies, err := h.mediaService.List()
	if err != nil {
		utils.SendJSONError(w, "Failed to list movies", http.StatusInternalServerError)
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, models.MovieList{Movies: movies})
}

// StreamVideo serves one media file, honoring a single bytes=start-end range.
// Multi-range requests are not supported; only the first range is parsed.
func (h *MediaHandler) StreamVideo(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	path, info, err := h.mediaService.Resolve(name)
	if err != nil {
		log.Warn().Str("name", name).Msg("Requested video not found")
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}

	total := info.Size()
	contentType := mediaContentType(path)

	rangeHeader := r.Header.Get("Range")
	if rangeHeader == "" {
		h.serveFull(w, path, total, contentType)
		return
	}

	start, end, err := parseRange(rangeHeader, total)
	if err != nil {
		w.Header().Set("Content-Range", fmt.Sprintf("bytes */%d", total))
		http.Error(w, err.Error(), http.StatusRequestedRangeNotSatisfiable)
		return
	}

	h.servePartial(w, path, start, end, total, contentType)
}

func (h *MediaHandler) serveFull(w http.ResponseWriter, path string, total int64, contentType string) {
	f, err := os.Open(path)
	if err != nil {
		log.Error().Err(err).Str("path", path).Msg("Failed to open media file")
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}
	defer f.Close()

	w.Header().Set("Content-Length", strconv.FormatInt(total, 10))
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)

	n, err := io.Copy(w, f)
	utils.StreamedBytesTotal.WithLabelValues("200").Add(float64(n))
	if err != nil {
		// Client went away mid-stream; nothing to answer with anymore.
		log.Debug().Err(err).Str("path", path).Int64("sent", n).Msg("Full stream interrupted")
	}
}

func (h *MediaHandler) servePartial(w http.ResponseWriter, path string, start, end, total int64, contentType string) {
	f, err := os.Open(path)
	if err != nil {
		log.Error().Err(err).Str("path", path).Msg("Failed to open media file")
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}
	defer f.Close()

	if _, err := f.Seek(start, io.SeekStart); err != nil {
		log.Error().Err(err).Str("path", path).Int64("start", start).Msg("Failed to seek media file")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	length := end - start + 1
	w.Header().Set("Content-Range", fmt.Sprintf("bytes %d-%d/%d", start, end, total))
	w.Header().Set("Accept-Ranges", "bytes")
	w.Header().Set("Content-Length", strconv.FormatInt(length, 10))
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusPartialContent)

	n, err := io.CopyN(w, f, length)
	utils.StreamedBytesTotal.WithLabelValues("206").Add(float64(n))
	if err != nil {
		log.Debug().Err(err).Str("path", path).Int64("sent", n).Msg("Partial stream interrupted")
	}
}

// parseRange parses a single "bytes=start-end" header. end is optional and
// defaults to total-1. Bounds at or past the end of the file are rejected
// with a diagnostic naming the offending bound.
func parseRange(header string, total int64) (int64, int64, error) {
	rng := strings.TrimPrefix(header, "bytes=")
	if rng == header {
		return 0, 0, fmt.Errorf("requested range not satisfiable: unsupported unit in %q", header)
	}

	// Only the first range of a multi-range request is honored.
	if i := strings.IndexByte(rng, ','); i >= 0 {
		rng = rng[:i]
	}

	startStr, endStr, ok := strings.Cut(rng, "-")
	if !ok {
		return 0, 0, fmt.Errorf("requested range not satisfiable: malformed range %q", header)
	}

	start, err := strconv.ParseInt(strings.TrimSpace(startStr), 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("requested range not satisfiable: malformed range %q", header)
	}

	end := total - 1
	if endStr = strings.TrimSpace(endStr); endStr != "" {
		end, err = strconv.ParseInt(endStr, 10, 64)
		if err != nil {
			return 0, 0, fmt.Errorf("requested range not satisfiable: malformed range %q", header)
		}
	}

	if start >= total {
		return 0, 0, fmt.Errorf("requested range not satisfiable: start %d >= %d", start, total)
	}
	if end >= total {
		return 0, 0, fmt.Errorf("requested range not satisfiable: end %d >= %d", end, total)
	}
	if start < 0 || end < start {
		return 0, 0, fmt.Errorf("requested range not satisfiable: malformed range %q", header)
	}
	return start, end, nil
}

func mediaContentType(path string) string {
	if ct := mime.TypeByExtension(filepath.Ext(path)); ct != "" {
		return ct
	}
	return "video/mp4"
}
