package metadata

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/TimilsinaBimal/tmdb-addon/services/tmdb"
)

const fallbackCertCountry = "US"

// resolveRating prefers the community rating from the secondary source and
// falls back to TMDB's own vote average formatted to one decimal place.
// Secondary-source failures are logged and swallowed; resolution always
// returns a value.
func (s *Service) resolveRating(ctx context.Context, mediaType, imdbID string, voteAverage float64) string {
	if imdbID != "" && s.cinemeta != nil {
		rating, err := s.cinemeta.Rating(ctx, mediaType, imdbID)
		if err != nil {
			log.Printf("[metadata] cinemeta rating for %s: %v", imdbID, err)
		} else if rating != "" {
			return rating
		}
	}
	return fmt.Sprintf("%.1f", voteAverage)
}

// countryFromLanguage derives the certification region from the trailing
// region code of an ISO language tag ("en-US" -> "US").
func countryFromLanguage(language string) string {
	if i := strings.LastIndex(language, "-"); i >= 0 && i+1 < len(language) {
		return strings.ToUpper(language[i+1:])
	}
	if len(language) == 2 {
		return strings.ToUpper(language)
	}
	return fallbackCertCountry
}

// findMovieCertification searches the release-date list for a certification
// in the requested country, then in the fixed default region. Absence is
// never an error; it reads as an empty label.
func findMovieCertification(rd tmdb.ReleaseDates, country string) string {
	lookup := func(code string) string {
		for _, entry := range rd.Results {
			if entry.ISO != code {
				continue
			}
			for _, release := range entry.ReleaseDates {
				if release.Certification != "" {
					return release.Certification
				}
			}
		}
		return ""
	}
	if cert := lookup(country); cert != "" {
		return cert
	}
	if country != fallbackCertCountry {
		return lookup(fallbackCertCountry)
	}
	return ""
}

// findTVCertification mirrors findMovieCertification for content ratings,
// which carry one label per country.
func findTVCertification(cr tmdb.ContentRatings, country string) string {
	lookup := func(code string) string {
		for _, entry := range cr.Results {
			if entry.ISO == code && entry.Rating != "" {
				return entry.Rating
			}
		}
		return ""
	}
	if cert := lookup(country); cert != "" {
		return cert
	}
	if country != fallbackCertCountry {
		return lookup(fallbackCertCountry)
	}
	return ""
}
