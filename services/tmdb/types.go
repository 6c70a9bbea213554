package tmdb

// Raw TMDB response shapes. Only the fields the unified record needs are
// declared; everything else is dropped at decode time.

type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type CastMember struct {
	Name      string `json:"name"`
	Character string `json:"character"`
	Order     int    `json:"order"`
}

type CrewMember struct {
	Name       string `json:"name"`
	Job        string `json:"job"`
	Department string `json:"department"`
}

type Credits struct {
	Cast []CastMember `json:"cast"`
	Crew []CrewMember `json:"crew"`
}

type VideoItem struct {
	Key  string `json:"key"`
	Name string `json:"name"`
	Site string `json:"site"`
	Type string `json:"type"`
}

type Videos struct {
	Results []VideoItem `json:"results"`
}

type ProductionCountry struct {
	ISO  string `json:"iso_3166_1"`
	Name string `json:"name"`
}

type ReleaseDate struct {
	Certification string `json:"certification"`
	ReleaseDate   string `json:"release_date"`
}

type ReleaseDatesResult struct {
	ISO          string        `json:"iso_3166_1"`
	ReleaseDates []ReleaseDate `json:"release_dates"`
}

type ReleaseDates struct {
	Results []ReleaseDatesResult `json:"results"`
}

type ContentRating struct {
	ISO    string `json:"iso_3166_1"`
	Rating string `json:"rating"`
}

type ContentRatings struct {
	Results []ContentRating `json:"results"`
}

type ExternalIDs struct {
	IMDBID string `json:"imdb_id"`
}

// Movie is the movie-info payload with videos, credits and release_dates
// expanded in the same response.
type Movie struct {
	ID                  int64               `json:"id"`
	IMDBID              string              `json:"imdb_id"`
	Title               string              `json:"title"`
	Overview            string              `json:"overview"`
	ReleaseDate         string              `json:"release_date"`
	Runtime             int                 `json:"runtime"`
	VoteAverage         float64             `json:"vote_average"`
	PosterPath          string              `json:"poster_path"`
	BackdropPath        string              `json:"backdrop_path"`
	Genres              []Genre             `json:"genres"`
	ProductionCountries []ProductionCountry `json:"production_countries"`
	Credits             Credits             `json:"credits"`
	Videos              Videos              `json:"videos"`
	ReleaseDates        ReleaseDates        `json:"release_dates"`
}

type SeasonRef struct {
	SeasonNumber int `json:"season_number"`
}

type EpisodeRuntimeRef struct {
	Runtime int `json:"runtime"`
}

// TV is the tv-info payload with videos, credits, external_ids and
// content_ratings expanded in the same response.
type TV struct {
	ID                  int64               `json:"id"`
	Name                string              `json:"name"`
	Overview            string              `json:"overview"`
	FirstAirDate        string              `json:"first_air_date"`
	LastAirDate         string              `json:"last_air_date"`
	Status              string              `json:"status"`
	EpisodeRunTime      []int               `json:"episode_run_time"`
	NextEpisodeToAir    *EpisodeRuntimeRef  `json:"next_episode_to_air"`
	LastEpisodeToAir    *EpisodeRuntimeRef  `json:"last_episode_to_air"`
	VoteAverage         float64             `json:"vote_average"`
	PosterPath          string              `json:"poster_path"`
	BackdropPath        string              `json:"backdrop_path"`
	Genres              []Genre             `json:"genres"`
	ProductionCountries []ProductionCountry `json:"production_countries"`
	CreatedBy           []struct {
		Name string `json:"name"`
	} `json:"created_by"`
	Credits        Credits        `json:"credits"`
	Videos         Videos         `json:"videos"`
	ExternalIDs    ExternalIDs    `json:"external_ids"`
	ContentRatings ContentRatings `json:"content_ratings"`
	Seasons        []SeasonRef    `json:"seasons"`
}

type Episode struct {
	Name          string  `json:"name"`
	SeasonNumber  int     `json:"season_number"`
	EpisodeNumber int     `json:"episode_number"`
	Overview      string  `json:"overview"`
	StillPath     string  `json:"still_path"`
	VoteAverage   float64 `json:"vote_average"`
	AirDate       string  `json:"air_date"`
}

// SeasonDetail is one "season/N" sub-resource from a season-expanded tv-info
// call.
type SeasonDetail struct {
	SeasonNumber int       `json:"season_number"`
	Episodes     []Episode `json:"episodes"`
}

// EpisodeGroup is one ordered sub-group of a curated episode grouping.
type EpisodeGroup struct {
	Name     string    `json:"name"`
	Order    int       `json:"order"`
	Episodes []Episode `json:"episodes"`
}

type EpisodeGroupDetails struct {
	ID     string         `json:"id"`
	Name   string         `json:"name"`
	Groups []EpisodeGroup `json:"groups"`
}

type findRef struct {
	ID int64 `json:"id"`
}

type findResponse struct {
	MovieResults []findRef `json:"movie_results"`
	TVResults    []findRef `json:"tv_results"`
}

// DiscoverItem is one row of a discover listing. Discover responses carry
// genre ids, not expanded genre objects.
type DiscoverItem struct {
	ID           int64   `json:"id"`
	Title        string  `json:"title"`
	Name         string  `json:"name"`
	Overview     string  `json:"overview"`
	ReleaseDate  string  `json:"release_date"`
	FirstAirDate string  `json:"first_air_date"`
	PosterPath   string  `json:"poster_path"`
	BackdropPath string  `json:"backdrop_path"`
	VoteAverage  float64 `json:"vote_average"`
	GenreIDs     []int64 `json:"genre_ids"`
}

type discoverResponse struct {
	Page    int            `json:"page"`
	Results []DiscoverItem `json:"results"`
}

type genreListResponse struct {
	Genres []Genre `json:"genres"`
}
