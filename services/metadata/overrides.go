package metadata

import (
	_ "embed"
	"encoding/json"
	"fmt"
)

// Curated correction tables for titles whose TMDB data is known to be wrong
// or whose canonical season/episode structure does not match the intended
// viewing order. Loaded once at startup, never mutated, looked up by exact
// TMDB id.

//go:embed static/episode_orders.json
var episodeOrdersJSON []byte

//go:embed static/imdb_overrides.json
var imdbOverridesJSON []byte

// OrderingOverride points a series at a curated episode group. When
// WatchOrderOnly is set only the viewing order is overridden and episode ids
// keep their canonical season/episode numbers; otherwise ids are rebuilt from
// the group order and position within the group.
type OrderingOverride struct {
	Title          string `json:"title"`
	TMDBID         string `json:"tmdbId"`
	EpisodeGroupID string `json:"episodeGroupId"`
	WatchOrderOnly bool   `json:"watchOrderOnly"`
}

// IDOverride replaces the IMDB id TMDB reports for a title.
type IDOverride struct {
	Title  string `json:"title"`
	TMDBID string `json:"tmdbId"`
	IMDBID string `json:"imdbId"`
}

type Overrides struct {
	ordering map[string]OrderingOverride
	imdb     map[string]IDOverride
}

// LoadOverrides parses the embedded override tables.
func LoadOverrides() (*Overrides, error) {
	var orders []OrderingOverride
	if err := json.Unmarshal(episodeOrdersJSON, &orders); err != nil {
		return nil, fmt.Errorf("parse episode order overrides: %w", err)
	}
	var ids []IDOverride
	if err := json.Unmarshal(imdbOverridesJSON, &ids); err != nil {
		return nil, fmt.Errorf("parse imdb overrides: %w", err)
	}

	o := &Overrides{
		ordering: make(map[string]OrderingOverride, len(orders)),
		imdb:     make(map[string]IDOverride, len(ids)),
	}
	for _, entry := range orders {
		o.ordering[entry.TMDBID] = entry
	}
	for _, entry := range ids {
		o.imdb[entry.TMDBID] = entry
	}
	return o, nil
}

// Ordering returns the ordering override for a TMDB id, if any.
func (o *Overrides) Ordering(tmdbID string) (OrderingOverride, bool) {
	entry, ok := o.ordering[tmdbID]
	return entry, ok
}

// IMDBID returns the corrected IMDB id for a TMDB id, or the given fallback
// when no correction exists.
func (o *Overrides) IMDBID(tmdbID, fallback string) string {
	if entry, ok := o.imdb[tmdbID]; ok {
		return entry.IMDBID
	}
	return fallback
}
