package tmdb

import "github.com/watchvaultapp/watchvault-server/internal/domain"

// Item is the normalized catalog result: exactly the fields the watchlist
// snapshots when an item is added.
type Item struct {
	ID            int              `json:"id"`
	MediaKind     domain.MediaKind `json:"media_type"`
	Title         string           `json:"title"`
	PosterPath    string           `json:"poster_path,omitempty"`
	CatalogRating float64          `json:"vote_average"`
	ReleaseDate   string           `json:"release_date,omitempty"`
	Overview      string           `json:"overview,omitempty"`
}

// Entry converts the item into a watchlist entry skeleton. The container
// fills in the mutable fields.
func (i Item) Entry() domain.Entry {
	return domain.Entry{
		ID:            i.ID,
		MediaKind:     i.MediaKind,
		Title:         i.Title,
		PosterPath:    i.PosterPath,
		CatalogRating: i.CatalogRating,
		ReleaseDate:   i.ReleaseDate,
	}
}

// Page is one page of catalog results.
type Page struct {
	Page         int    `json:"page"`
	TotalPages   int    `json:"total_pages"`
	TotalResults int    `json:"total_results"`
	Results      []Item `json:"results"`
}

// Detail is the full record for a single title.
type Detail struct {
	Item
	IMDBID   string   `json:"imdb_id,omitempty"`
	Genres   []string `json:"genres,omitempty"`
	Tagline  string   `json:"tagline,omitempty"`
	Homepage string   `json:"homepage,omitempty"`
}

// Raw API response types. Movies carry title/release_date, series carry
// name/first_air_date; normalization collapses the two.

type rawResult struct {
	ID           int     `json:"id"`
	MediaType    string  `json:"media_type"`
	Title        string  `json:"title"`
	Name         string  `json:"name"`
	PosterPath   string  `json:"poster_path"`
	VoteAverage  float64 `json:"vote_average"`
	ReleaseDate  string  `json:"release_date"`
	FirstAirDate string  `json:"first_air_date"`
	Overview     string  `json:"overview"`
}

type rawPage struct {
	Page         int         `json:"page"`
	TotalPages   int         `json:"total_pages"`
	TotalResults int         `json:"total_results"`
	Results      []rawResult `json:"results"`
}

type rawGenre struct {
	Name string `json:"name"`
}

type rawDetail struct {
	rawResult
	IMDBID      string `json:"imdb_id"`
	ExternalIDs struct {
		IMDBID string `json:"imdb_id"`
	} `json:"external_ids"`
	Genres   []rawGenre `json:"genres"`
	Tagline  string     `json:"tagline"`
	Homepage string     `json:"homepage"`
}

// normalize converts a raw result. fallbackKind applies when the payload
// carries no media_type (kind-scoped endpoints omit it).
func (r rawResult) normalize(fallbackKind domain.MediaKind) (Item, bool) {
	kind := fallbackKind
	if r.MediaType != "" {
		parsed, ok := domain.ParseMediaKind(r.MediaType)
		if !ok {
			// people and other non-title results
			return Item{}, false
		}
		kind = parsed
	}
	if kind == "" {
		return Item{}, false
	}

	title := r.Title
	release := r.ReleaseDate
	if kind == domain.KindSeries {
		title = r.Name
		release = r.FirstAirDate
	}
	if title == "" {
		return Item{}, false
	}

	return Item{
		ID:            r.ID,
		MediaKind:     kind,
		Title:         title,
		PosterPath:    r.PosterPath,
		CatalogRating: r.VoteAverage,
		ReleaseDate:   release,
		Overview:      r.Overview,
	}, true
}
