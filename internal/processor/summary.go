package processor

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Summary counts what a run did.
type Summary struct {
	RunID    string
	Genre    string
	Location string

	ArtistsDiscovered int
	ArtistsWritten    int
	ArtistsDropped    int

	AlbumsSeen       int
	AlbumsEnriched   int
	AlbumsUnresolved int
	AlbumsFailed     int

	Duration time.Duration
	started  time.Time
}

func (s *Summary) finish() {
	if !s.started.IsZero() {
		s.Duration = time.Since(s.started)
	}
}

// Render writes the summary as a two column table.
func (s *Summary) Render(w io.Writer) error {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	rows := [][2]string{
		{"Run", s.RunID},
		{"Genre", s.Genre},
		{"Artists discovered", strconv.Itoa(s.ArtistsDiscovered)},
		{"Artists written", strconv.Itoa(s.ArtistsWritten)},
		{"Artists dropped", strconv.Itoa(s.ArtistsDropped)},
		{"Albums seen", strconv.Itoa(s.AlbumsSeen)},
		{"Albums enriched", strconv.Itoa(s.AlbumsEnriched)},
		{"Albums without version", strconv.Itoa(s.AlbumsUnresolved)},
		{"Albums without details", strconv.Itoa(s.AlbumsFailed)},
		{"Output", s.Location},
		{"Duration", s.Duration.Round(time.Millisecond).String()},
	}
	for _, r := range rows {
		tw.AppendRow(table.Row{r[0], r[1]})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft},
		{Number: 2, Align: text.AlignRight},
	})

	_, err := fmt.Fprintln(w, tw.Render())
	return err
}
