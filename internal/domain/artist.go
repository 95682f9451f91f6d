package domain

// ArtistLink is a search result pointing at an artist page.
type ArtistLink struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// ArtistRecord is the unit written to the output stream, one line per artist.
type ArtistRecord struct {
	Genre   string   `json:"genre"`
	Name    string   `json:"name"`
	Members []string `json:"members"`
	Sites   []string `json:"sites"`
	Albums  []Album  `json:"albums"`
}

// NewArtistRecord returns a record whose collections encode as empty arrays.
func NewArtistRecord(genre, name string) *ArtistRecord {
	return &ArtistRecord{
		Genre:   genre,
		Name:    name,
		Members: []string{},
		Sites:   []string{},
		Albums:  []Album{},
	}
}
