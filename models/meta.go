package models

import "time"

// Meta is the unified record served for a single title. It is the same shape
// for movies and series; series carry Videos and scheduled-video hints, movies
// never do. Field names follow the Stremio meta object.
type Meta struct {
	ID          string   `json:"id"`
	Type        string   `json:"type"`
	Name        string   `json:"name"`
	IMDBID      string   `json:"imdb_id,omitempty"`
	Slug        string   `json:"slug,omitempty"`
	Description string   `json:"description,omitempty"`
	Genres      []string `json:"genres,omitempty"`
	Cast        []string `json:"cast,omitempty"`
	Director    []string `json:"director,omitempty"`
	Writer      []string `json:"writer,omitempty"`
	Country     []string `json:"country,omitempty"`

	ReleaseInfo string     `json:"releaseInfo,omitempty"`
	Released    *time.Time `json:"released,omitempty"`
	Runtime     string     `json:"runtime,omitempty"`

	Poster     string `json:"poster,omitempty"`
	Background string `json:"background,omitempty"`
	Logo       string `json:"logo,omitempty"`

	IMDBRating    string `json:"imdbRating,omitempty"`
	Certification string `json:"ageRating,omitempty"`

	Links          []Link          `json:"links,omitempty"`
	Trailers       []Trailer       `json:"trailers,omitempty"`
	TrailerStreams []TrailerStream `json:"trailerStreams,omitempty"`

	// Videos is the ordered episode list. Always empty for movies.
	Videos []Video `json:"videos,omitempty"`

	BehaviorHints *BehaviorHints `json:"behaviorHints,omitempty"`
}

// Video is one episode of a series. Season/Episode are the emitted ordinals,
// which differ from the provider's raw numbering when an ordering override is
// active.
type Video struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Season      int        `json:"season"`
	Episode     int        `json:"episode"`
	Number      int        `json:"number"`
	Thumbnail   string     `json:"thumbnail,omitempty"`
	Overview    string     `json:"overview,omitempty"`
	Description string     `json:"description,omitempty"`
	Rating      string     `json:"rating,omitempty"`
	FirstAired  *time.Time `json:"firstAired,omitempty"`
	Released    *time.Time `json:"released,omitempty"`
}

// Link is a decorated outbound link (imdb, share, genre filter, person search).
type Link struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	URL      string `json:"url"`
}

// Trailer is an informational trailer entry (YouTube video key).
type Trailer struct {
	Source string `json:"source"`
	Type   string `json:"type"`
}

// TrailerStream is a playable trailer stream entry.
type TrailerStream struct {
	Title string `json:"title"`
	YtID  string `json:"ytId"`
}

type BehaviorHints struct {
	DefaultVideoID     string `json:"defaultVideoId"`
	HasScheduledVideos bool   `json:"hasScheduledVideos"`
}
