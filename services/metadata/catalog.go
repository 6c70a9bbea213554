package metadata

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/TimilsinaBimal/tmdb-addon/internal/cache"
	"github.com/TimilsinaBimal/tmdb-addon/models"
	"github.com/TimilsinaBimal/tmdb-addon/services/tmdb"
)

// GetCatalog returns one page of a catalog listing: shallow records without
// episodes or credit detail. Pages are cache-wrapped under the catalog TTL;
// an absent genre discriminator canonicalizes to the empty string so
// equivalent requests share one cache entry.
func (s *Service) GetCatalog(ctx context.Context, mediaType, language string, page int, catalogID, genre string) ([]models.Meta, error) {
	if page < 1 {
		page = 1
	}
	key := cache.Key("catalog", language, mediaType, catalogID, genre, strconv.Itoa(page))
	return cache.GetOrCompute(s.store, key, s.catalogTTL, func() ([]models.Meta, error) {
		return s.buildCatalogPage(ctx, mediaType, language, page, genre)
	})
}

func (s *Service) buildCatalogPage(ctx context.Context, mediaType, language string, page int, genre string) ([]models.Meta, error) {
	genres, err := s.tmdb.GenreList(ctx, mediaType, language)
	if err != nil {
		// The listing still works without the lookup table; entries just
		// lose their genre names.
		log.Printf("[metadata] genre list %s/%s: %v", mediaType, language, err)
	}

	var genreID int64
	if genre != "" {
		genreID = findGenreID(genres, genre)
		if genreID == 0 {
			return nil, fmt.Errorf("unknown genre %q for %s", genre, mediaType)
		}
	}

	items, err := s.tmdb.Discover(ctx, mediaType, language, page, genreID)
	if err != nil {
		log.Printf("[metadata] discover %s page %d: %v", mediaType, page, err)
		return nil, err
	}

	byID := make(map[int64]string, len(genres))
	for _, g := range genres {
		byID[g.ID] = g.Name
	}

	metas := make([]models.Meta, 0, len(items))
	for _, item := range items {
		metas = append(metas, catalogMeta(item, mediaType, byID))
	}
	return metas, nil
}

// catalogMeta maps one discover row to a shallow unified record.
func catalogMeta(item tmdb.DiscoverItem, mediaType string, genreNames map[int64]string) models.Meta {
	name := item.Title
	releaseDate := item.ReleaseDate
	if mediaType == "series" {
		name = item.Name
		releaseDate = item.FirstAirDate
	}

	var genres []string
	for _, id := range item.GenreIDs {
		if n := genreNames[id]; n != "" {
			genres = append(genres, n)
		}
	}

	return models.Meta{
		ID:          fmt.Sprintf("tmdb:%d", item.ID),
		Type:        mediaType,
		Name:        name,
		Description: item.Overview,
		Genres:      genres,
		ReleaseInfo: parseMovieYear(releaseDate),
		Poster:      posterURL(item.PosterPath),
		Background:  backdropURL(item.BackdropPath),
		IMDBRating:  fmt.Sprintf("%.1f", item.VoteAverage),
	}
}

func findGenreID(genres []tmdb.Genre, name string) int64 {
	for _, genre := range genres {
		if strings.EqualFold(genre.Name, name) {
			return genre.ID
		}
	}
	return 0
}
