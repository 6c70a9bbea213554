package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/TimilsinaBimal/tmdb-addon/models"
	"github.com/TimilsinaBimal/tmdb-addon/services/metadata"
)

const defaultLanguage = "en-US"

// catalogPageSize is the number of entries per catalog page; skip offsets are
// converted to pages at this granularity.
const catalogPageSize = 20

type metadataService interface {
	GetMeta(ctx context.Context, mediaType, language, tmdbID, rpdbKey string) (*models.Meta, error)
	GetCatalog(ctx context.Context, mediaType, language string, page int, catalogID, genre string) ([]models.Meta, error)
	ResolveIMDB(ctx context.Context, mediaType, imdbID string) (string, error)
	ClearCache() error
}

var _ metadataService = (*metadata.Service)(nil)

// AddonHandler exposes the meta and catalog endpoints plus the manual cache
// reset. It is a thin wrapper: parsing in, JSON and cache headers out.
type AddonHandler struct {
	Service metadataService
}

func NewAddonHandler(s metadataService) *AddonHandler {
	return &AddonHandler{Service: s}
}

// Register wires the addon routes onto the router.
func (h *AddonHandler) Register(r *mux.Router) {
	r.HandleFunc("/meta/{type}/{id}", h.Meta).Methods(http.MethodGet)
	r.HandleFunc("/catalog/{type}/{id}", h.Catalog).Methods(http.MethodGet)
	r.HandleFunc("/catalog/{type}/{id}/{extra}", h.Catalog).Methods(http.MethodGet)
	r.HandleFunc("/cache/reset", h.ResetCache).Methods(http.MethodPost)
}

// cacheOpts describes the Cache-Control directives the reverse proxy / CDN
// layer honors.
type cacheOpts struct {
	maxAge          time.Duration
	staleRevalidate time.Duration
	staleError      time.Duration
}

func (o cacheOpts) header() string {
	parts := make([]string, 0, 4)
	if o.maxAge > 0 {
		parts = append(parts, fmt.Sprintf("max-age=%d", int(o.maxAge.Seconds())))
	}
	if o.staleRevalidate > 0 {
		parts = append(parts, fmt.Sprintf("stale-while-revalidate=%d", int(o.staleRevalidate.Seconds())))
	}
	if o.staleError > 0 {
		parts = append(parts, fmt.Sprintf("stale-if-error=%d", int(o.staleError.Seconds())))
	}
	if len(parts) == 0 {
		return ""
	}
	return strings.Join(parts, ", ") + ", public"
}

func respond(w http.ResponseWriter, data any, opts cacheOpts) {
	if header := opts.header(); header != "" {
		w.Header().Set("Cache-Control", header)
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(data)
}

type metaResponse struct {
	Meta *models.Meta `json:"meta"`
}

type catalogResponse struct {
	Metas []models.Meta `json:"metas"`
}

// Meta serves one unified record. The id is either "tmdb:<id>.json" or an
// IMDB "tt<id>.json" which is resolved to a TMDB id first. Unknown ids and
// upstream failures both read as a null meta, never an error status.
func (h *AddonHandler) Meta(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	mediaType := vars["type"]
	id := strings.TrimSuffix(vars["id"], ".json")
	language := requestLanguage(r)
	rpdbKey := r.URL.Query().Get("rpdb")

	opts := cacheOpts{
		maxAge:          12 * time.Hour,
		staleRevalidate: 24 * time.Hour,
		staleError:      14 * 24 * time.Hour,
	}

	var tmdbID string
	switch {
	case strings.HasPrefix(id, "tmdb:"):
		tmdbID = strings.TrimPrefix(id, "tmdb:")
	case strings.HasPrefix(id, "tt"):
		resolved, err := h.Service.ResolveIMDB(r.Context(), mediaType, id)
		if err != nil {
			log.Printf("[addon] resolve %s: %v", id, err)
		}
		tmdbID = resolved
	}
	if tmdbID == "" {
		respond(w, metaResponse{}, opts)
		return
	}

	meta, err := h.Service.GetMeta(r.Context(), mediaType, language, tmdbID, rpdbKey)
	if err != nil {
		log.Printf("[addon] meta %s/%s: %v", mediaType, tmdbID, err)
		respond(w, metaResponse{}, opts)
		return
	}
	respond(w, metaResponse{Meta: meta}, opts)
}

// Catalog serves one catalog page. The optional extra segment carries
// url-encoded discriminators ("genre=Action&skip=20.json").
func (h *AddonHandler) Catalog(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	mediaType := vars["type"]
	catalogID := strings.TrimSuffix(vars["id"], ".json")
	language := requestLanguage(r)

	genre, page := parseExtra(vars["extra"])

	metas, err := h.Service.GetCatalog(r.Context(), mediaType, language, page, catalogID, genre)
	if err != nil {
		log.Printf("[addon] catalog %s/%s: %v", mediaType, catalogID, err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadGateway)
		json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
		return
	}
	respond(w, catalogResponse{Metas: metas}, cacheOpts{
		maxAge:          12 * time.Hour,
		staleRevalidate: 7 * 24 * time.Hour,
		staleError:      14 * 24 * time.Hour,
	})
}

// ResetCache drops every cached entry.
func (h *AddonHandler) ResetCache(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.ClearCache(); err != nil {
		log.Printf("[addon] cache reset: %v", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func requestLanguage(r *http.Request) string {
	if language := r.URL.Query().Get("language"); language != "" {
		return language
	}
	return defaultLanguage
}

// parseExtra decodes the extra path segment into (genre, page). A skip offset
// converts to a 1-based page; anything absent or malformed reads as defaults.
func parseExtra(extra string) (string, int) {
	extra = strings.TrimSuffix(extra, ".json")
	if extra == "" {
		return "", 1
	}
	values, err := url.ParseQuery(extra)
	if err != nil {
		return "", 1
	}
	genre := values.Get("genre")
	page := 1
	if skip, err := strconv.Atoi(values.Get("skip")); err == nil && skip > 0 {
		page = skip/catalogPageSize + 1
	}
	return genre, page
}
