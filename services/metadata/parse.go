package metadata

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/mozillazg/go-unidecode"

	"github.com/TimilsinaBimal/tmdb-addon/models"
	"github.com/TimilsinaBimal/tmdb-addon/services/tmdb"
)

// Pure mapping from raw TMDB structures to unified record fields. Every
// function here is total over well-formed input and degrades to empty values
// on missing optional data.

const (
	posterBaseURL   = "https://image.tmdb.org/t/p/w500"
	backdropBaseURL = "https://image.tmdb.org/t/p/original"
	thumbBaseURL    = "https://image.tmdb.org/t/p/w500"
	logoBaseURL     = "https://images.metahub.space/logo/medium"

	castLimit = 5
)

func parseCast(credits tmdb.Credits) []string {
	names := make([]string, 0, castLimit)
	for _, member := range credits.Cast {
		if member.Name == "" {
			continue
		}
		names = append(names, member.Name)
		if len(names) == castLimit {
			break
		}
	}
	return names
}

func parseDirector(credits tmdb.Credits) []string {
	var names []string
	for _, member := range credits.Crew {
		if member.Job == "Director" && member.Name != "" {
			names = append(names, member.Name)
		}
	}
	return names
}

func parseWriter(credits tmdb.Credits) []string {
	var names []string
	for _, member := range credits.Crew {
		switch member.Job {
		case "Writer", "Screenplay", "Story":
			if member.Name != "" {
				names = append(names, member.Name)
			}
		}
	}
	return names
}

func parseCreatedBy(tv *tmdb.TV) []string {
	var names []string
	for _, creator := range tv.CreatedBy {
		if creator.Name != "" {
			names = append(names, creator.Name)
		}
	}
	return names
}

func parseCountry(countries []tmdb.ProductionCountry) []string {
	var names []string
	for _, country := range countries {
		if country.Name != "" {
			names = append(names, country.Name)
		}
	}
	return names
}

func parseGenres(genres []tmdb.Genre) []string {
	var names []string
	for _, genre := range genres {
		if genre.Name != "" {
			names = append(names, genre.Name)
		}
	}
	return names
}

// parseRuntime renders minutes the way Stremio clients expect: "2h15min" past
// the hour mark, "45min" below it, empty when unknown.
func parseRuntime(minutes int) string {
	if minutes <= 0 {
		return ""
	}
	if minutes < 60 {
		return fmt.Sprintf("%dmin", minutes)
	}
	h := minutes / 60
	m := minutes % 60
	if m == 0 {
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dh%dmin", h, m)
}

func parseMovieYear(releaseDate string) string {
	if len(releaseDate) < 4 {
		return ""
	}
	return releaseDate[:4]
}

// parseSeriesYear renders a year range: "2008-2013" for ended series, an
// open-ended "2008-" otherwise.
func parseSeriesYear(status, firstAirDate, lastAirDate string) string {
	first := parseMovieYear(firstAirDate)
	if first == "" {
		return ""
	}
	if status == "Ended" {
		last := parseMovieYear(lastAirDate)
		if last != "" {
			return first + "-" + last
		}
	}
	return first + "-"
}

var slugStrip = regexp.MustCompile(`[^a-z0-9]+`)

// parseSlug builds a URL-safe slug like "series/breaking-bad-903747".
// Non-ASCII titles are transliterated first.
func parseSlug(mediaType, title, imdbID string) string {
	base := unidecode.Unidecode(title)
	base = strings.ToLower(base)
	base = slugStrip.ReplaceAllString(base, "-")
	base = strings.Trim(base, "-")
	if imdbID != "" {
		base = base + "-" + strings.TrimPrefix(imdbID, "tt")
	}
	return mediaType + "/" + base
}

// parseTrailers splits out the informational trailer entries: YouTube videos
// TMDB tags as trailers.
func parseTrailers(videos tmdb.Videos) []models.Trailer {
	var trailers []models.Trailer
	for _, video := range videos.Results {
		if video.Site == "YouTube" && video.Type == "Trailer" && video.Key != "" {
			trailers = append(trailers, models.Trailer{Source: video.Key, Type: "Trailer"})
		}
	}
	return trailers
}

// parseTrailerStreams builds the playable counterpart of parseTrailers.
func parseTrailerStreams(videos tmdb.Videos) []models.TrailerStream {
	var streams []models.TrailerStream
	for _, video := range videos.Results {
		if video.Site == "YouTube" && video.Type == "Trailer" && video.Key != "" {
			streams = append(streams, models.TrailerStream{Title: video.Name, YtID: video.Key})
		}
	}
	return streams
}

// parseIMDBLink decorates the cross-reference link with the resolved rating
// text so clients render "8.8" next to the IMDB mark.
func parseIMDBLink(rating, imdbID string) models.Link {
	return models.Link{
		Name:     rating,
		Category: "imdb",
		URL:      "https://imdb.com/title/" + imdbID,
	}
}

func parseShareLink(title, imdbID, mediaType string) models.Link {
	return models.Link{
		Name:     title,
		Category: "share",
		URL:      "https://www.strem.io/s/" + parseSlug(mediaType, title, imdbID),
	}
}

// parseGenreLinks emits one catalog filter link per genre, in provider order.
func parseGenreLinks(genres []tmdb.Genre, mediaType, language, hostName string) []models.Link {
	links := make([]models.Link, 0, len(genres))
	transport := url.QueryEscape(hostName + "/manifest.json")
	for _, genre := range genres {
		if genre.Name == "" {
			continue
		}
		links = append(links, models.Link{
			Name:     genre.Name,
			Category: "Genres",
			URL: fmt.Sprintf("stremio:///discover/%s/%s/tmdb.top?genre=%s",
				transport, mediaType, url.QueryEscape(genre.Name)),
		})
	}
	return links
}

// parseCreditsLinks emits search links for the credited people: bounded cast,
// directors and writers.
func parseCreditsLinks(credits tmdb.Credits) []models.Link {
	var links []models.Link
	for _, name := range parseCast(credits) {
		links = append(links, personLink(name, "Cast"))
	}
	for _, name := range parseDirector(credits) {
		links = append(links, personLink(name, "Directors"))
	}
	for _, name := range parseWriter(credits) {
		links = append(links, personLink(name, "Writers"))
	}
	return links
}

func personLink(name, category string) models.Link {
	return models.Link{
		Name:     name,
		Category: category,
		URL:      "stremio:///search?search=" + url.QueryEscape(name),
	}
}

func posterURL(path string) string {
	if path == "" {
		return ""
	}
	return posterBaseURL + path
}

func backdropURL(path string) string {
	if path == "" {
		return ""
	}
	return backdropBaseURL + path
}

func thumbnailURL(path string) string {
	if path == "" {
		return ""
	}
	return thumbBaseURL + path
}

func logoURL(imdbID string) string {
	if imdbID == "" {
		return ""
	}
	return logoBaseURL + "/" + imdbID + "/img"
}
