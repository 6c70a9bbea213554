package metadata

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/sourcegraph/conc"

	"github.com/TimilsinaBimal/tmdb-addon/internal/cache"
	"github.com/TimilsinaBimal/tmdb-addon/models"
	"github.com/TimilsinaBimal/tmdb-addon/services/cinemeta"
	"github.com/TimilsinaBimal/tmdb-addon/services/rpdb"
	"github.com/TimilsinaBimal/tmdb-addon/services/tmdb"
)

// stableIDTTLMultiplier stretches the cache TTL for IMDB-to-TMDB id mappings,
// which rarely change.
const stableIDTTLMultiplier = 7

// Service assembles unified records from the TMDB gateway, the override
// tables, the secondary rating source and the poster service, behind the
// kind-specific TTL cache.
type Service struct {
	tmdb      *tmdb.Client
	cinemeta  *cinemeta.Client
	rpdb      *rpdb.Client
	store     cache.Store
	overrides *Overrides

	hostName   string
	metaTTL    time.Duration
	catalogTTL time.Duration
}

func NewService(tmdbClient *tmdb.Client, cinemetaClient *cinemeta.Client, rpdbClient *rpdb.Client, store cache.Store, overrides *Overrides, hostName string, metaTTL, catalogTTL time.Duration) *Service {
	if metaTTL <= 0 {
		metaTTL = 24 * time.Hour
	}
	if catalogTTL <= 0 {
		catalogTTL = 12 * time.Hour
	}
	return &Service{
		tmdb:       tmdbClient,
		cinemeta:   cinemetaClient,
		rpdb:       rpdbClient,
		store:      store,
		overrides:  overrides,
		hostName:   hostName,
		metaTTL:    metaTTL,
		catalogTTL: catalogTTL,
	}
}

// GetMeta returns the unified record for one title, computing and caching it
// on miss. An upstream failure propagates as an error so nothing spurious is
// cached; the handler decides how to surface it.
func (s *Service) GetMeta(ctx context.Context, mediaType, language, tmdbID, rpdbKey string) (*models.Meta, error) {
	key := cache.Key("meta", language, mediaType, tmdbID)
	return cache.GetOrCompute(s.store, key, s.metaTTL, func() (*models.Meta, error) {
		switch mediaType {
		case "movie":
			return s.buildMovieMeta(ctx, language, tmdbID, rpdbKey)
		case "series":
			return s.buildSeriesMeta(ctx, language, tmdbID, rpdbKey)
		default:
			return nil, fmt.Errorf("unsupported media type %q", mediaType)
		}
	})
}

// ResolveIMDB maps an IMDB id to a TMDB id. Mappings are cached with a
// longer TTL since they rarely change. An empty result means TMDB has no
// record for the id.
func (s *Service) ResolveIMDB(ctx context.Context, mediaType, imdbID string) (string, error) {
	key := cache.Key("id", mediaType, imdbID)
	return cache.GetOrCompute(s.store, key, s.metaTTL*stableIDTTLMultiplier, func() (string, error) {
		tmdbID, err := s.tmdb.FindByIMDB(ctx, mediaType, imdbID)
		if err != nil {
			return "", err
		}
		if tmdbID == 0 {
			return "", nil
		}
		return fmt.Sprintf("%d", tmdbID), nil
	})
}

// ClearCache removes every cached record. Safe to call at any time.
func (s *Service) ClearCache() error {
	if s.store == nil {
		return nil
	}
	return s.store.Reset()
}

func (s *Service) buildMovieMeta(ctx context.Context, language, tmdbID, rpdbKey string) (*models.Meta, error) {
	movie, err := s.tmdb.MovieInfo(ctx, tmdbID, language)
	if err != nil {
		log.Printf("[metadata] movie info %s: %v", tmdbID, err)
		return nil, err
	}

	imdbID := s.overrides.IMDBID(tmdbID, movie.IMDBID)
	certification := findMovieCertification(movie.ReleaseDates, countryFromLanguage(language))

	// Rating and poster lookups hit independent services; fan out.
	var rating, poster string
	var wg conc.WaitGroup
	wg.Go(func() {
		rating = s.resolveRating(ctx, "movie", imdbID, movie.VoteAverage)
	})
	wg.Go(func() {
		poster = s.resolvePoster(ctx, "movie", tmdbID, movie.PosterPath, language, rpdbKey)
	})
	wg.Wait()

	released := normalizeAirDate(movie.ReleaseDate)
	meta := &models.Meta{
		ID:             "tmdb:" + tmdbID,
		Type:           "movie",
		Name:           movie.Title,
		IMDBID:         imdbID,
		Slug:           parseSlug("movie", movie.Title, imdbID),
		Description:    movie.Overview,
		Genres:         parseGenres(movie.Genres),
		Cast:           parseCast(movie.Credits),
		Director:       parseDirector(movie.Credits),
		Writer:         parseWriter(movie.Credits),
		Country:        parseCountry(movie.ProductionCountries),
		ReleaseInfo:    parseMovieYear(movie.ReleaseDate),
		Released:       released,
		Runtime:        parseRuntime(movie.Runtime),
		Poster:         poster,
		Background:     backdropURL(movie.BackdropPath),
		Logo:           logoURL(imdbID),
		IMDBRating:     rating,
		Certification:  certification,
		Trailers:       parseTrailers(movie.Videos),
		TrailerStreams: parseTrailerStreams(movie.Videos),
		BehaviorHints: &models.BehaviorHints{
			DefaultVideoID:     defaultVideoID(imdbID, tmdbID),
			HasScheduledVideos: false,
		},
	}
	meta.Links = s.assembleLinks(rating, imdbID, movie.Title, "movie", language, movie.Genres, movie.Credits)
	return meta, nil
}

func (s *Service) buildSeriesMeta(ctx context.Context, language, tmdbID, rpdbKey string) (*models.Meta, error) {
	tv, err := s.tmdb.TVInfo(ctx, tmdbID, language)
	if err != nil {
		log.Printf("[metadata] tv info %s: %v", tmdbID, err)
		return nil, err
	}

	// The curated identifier override wins over TMDB's own external id.
	imdbID := s.overrides.IMDBID(tmdbID, tv.ExternalIDs.IMDBID)
	certification := findTVCertification(tv.ContentRatings, countryFromLanguage(language))

	// Rating, poster and the episode list are independent; fan out and wait
	// for all. Episode assembly failure degrades to an empty list rather
	// than failing the record.
	var rating, poster string
	var videos []models.Video
	var wg conc.WaitGroup
	wg.Go(func() {
		rating = s.resolveRating(ctx, "series", imdbID, tv.VoteAverage)
	})
	wg.Go(func() {
		poster = s.resolvePoster(ctx, "series", tmdbID, tv.PosterPath, language, rpdbKey)
	})
	wg.Go(func() {
		eps, err := s.assembleEpisodes(ctx, language, tmdbID, imdbID, tv.Seasons)
		if err != nil {
			log.Printf("[metadata] episodes for %s: %v", tmdbID, err)
			return
		}
		videos = eps
	})
	wg.Wait()

	writer := parseCreatedBy(tv)
	if len(writer) == 0 {
		writer = parseWriter(tv.Credits)
	}

	released := normalizeAirDate(tv.FirstAirDate)
	meta := &models.Meta{
		ID:             "tmdb:" + tmdbID,
		Type:           "series",
		Name:           tv.Name,
		IMDBID:         imdbID,
		Slug:           parseSlug("series", tv.Name, imdbID),
		Description:    tv.Overview,
		Genres:         parseGenres(tv.Genres),
		Cast:           parseCast(tv.Credits),
		Director:       parseDirector(tv.Credits),
		Writer:         writer,
		Country:        parseCountry(tv.ProductionCountries),
		ReleaseInfo:    parseSeriesYear(tv.Status, tv.FirstAirDate, tv.LastAirDate),
		Released:       released,
		Runtime:        parseRuntime(seriesRuntime(tv)),
		Poster:         poster,
		Background:     backdropURL(tv.BackdropPath),
		Logo:           logoURL(imdbID),
		IMDBRating:     rating,
		Certification:  certification,
		Trailers:       parseTrailers(tv.Videos),
		TrailerStreams: parseTrailerStreams(tv.Videos),
		Videos:         videos,
		BehaviorHints: &models.BehaviorHints{
			HasScheduledVideos: true,
		},
	}
	meta.Links = s.assembleLinks(rating, imdbID, tv.Name, "series", language, tv.Genres, tv.Credits)
	return meta, nil
}

// assembleLinks builds the decorated link list: the rating-labelled imdb
// link, a share link, per-genre filter links and per-person search links.
func (s *Service) assembleLinks(rating, imdbID, title, mediaType, language string, genres []tmdb.Genre, credits tmdb.Credits) []models.Link {
	links := make([]models.Link, 0, 8)
	if imdbID != "" {
		links = append(links, parseIMDBLink(rating, imdbID))
	}
	links = append(links, parseShareLink(title, imdbID, mediaType))
	links = append(links, parseGenreLinks(genres, mediaType, language, s.hostName)...)
	links = append(links, parseCreditsLinks(credits)...)
	return links
}

// resolvePoster prefers a ranked poster from the external poster service when
// the caller supplied a ranking key and the service has one; otherwise the
// provider's own poster is used.
func (s *Service) resolvePoster(ctx context.Context, mediaType, tmdbID, posterPath, language, rpdbKey string) string {
	if rpdbKey != "" && s.rpdb != nil {
		ranked := rpdb.PosterURL(rpdbKey, mediaType, tmdbID, language)
		if s.rpdb.Exists(ctx, ranked) {
			return ranked
		}
	}
	return posterURL(posterPath)
}

// seriesRuntime picks the most representative episode runtime TMDB offers.
func seriesRuntime(tv *tmdb.TV) int {
	if len(tv.EpisodeRunTime) > 0 {
		return tv.EpisodeRunTime[0]
	}
	if tv.NextEpisodeToAir != nil && tv.NextEpisodeToAir.Runtime > 0 {
		return tv.NextEpisodeToAir.Runtime
	}
	if tv.LastEpisodeToAir != nil {
		return tv.LastEpisodeToAir.Runtime
	}
	return 0
}

func defaultVideoID(imdbID, tmdbID string) string {
	if imdbID != "" {
		return imdbID
	}
	return "tmdb:" + tmdbID
}
