package domain

// AlbumDetail holds the fields read from a concrete release page.
type AlbumDetail struct {
	RecordLabel string   `json:"record_label"`
	Styles      []string `json:"styles"`
	Tracks      []Track  `json:"tracks"`
}

// NewAlbumDetail returns a detail with the label placeholder and empty collections,
// so a partially read page still serialises every key.
func NewAlbumDetail() *AlbumDetail {
	return &AlbumDetail{
		RecordLabel: LabelNotFound,
		Styles:      []string{},
		Tracks:      []Track{},
	}
}

// Album is a discography entry. The embedded detail is nil until the album
// is enriched, in which case only name, link and year are serialised.
type Album struct {
	Name string `json:"name"`
	Link string `json:"link"`
	Year string `json:"year"`

	*AlbumDetail
}

// Enrich attaches detail to the album. Name, link and year are left untouched.
func (a *Album) Enrich(detail *AlbumDetail) {
	if detail == nil {
		return
	}
	a.AlbumDetail = detail
}

// Enriched reports whether release details were attached.
func (a *Album) Enriched() bool {
	return a.AlbumDetail != nil
}
