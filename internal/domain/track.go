package domain

// Sentinels substituted when a field cannot be read from the page.
const (
	UnknownField    = "N/A"
	UnknownDuration = "Desconhecido"
	LabelNotFound   = "Gravadora não encontrada"
)

// Track represents one row of a release tracklist.
// All three fields are always set, falling back to the sentinels above.
type Track struct {
	Number string `json:"number"`
	Name   string `json:"name"`
	Time   string `json:"time"`
}
