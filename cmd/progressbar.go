package main

import (
	"io"
	"os"

	"github.com/k0kubun/go-ansi"
	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"

	"github.com/jaki95/discogs-scraper/internal/progress"
)

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// artistBar renders artist-level progress events. The bar is created once the
// number of artists is known.
type artistBar struct {
	bar *progressbar.ProgressBar
}

func newProgressBar() *artistBar {
	return &artistBar{}
}

func (a *artistBar) Update(event progress.Event) {
	switch event.Stage {
	case progress.StageArtists:
		details := event.ArtistDetails
		if details == nil || details.TotalArtists == 0 {
			return
		}
		if a.bar == nil {
			a.bar = progressbar.NewOptions(
				details.TotalArtists,
				progressbar.OptionSetWriter(ansi.NewAnsiStdout()),
				progressbar.OptionEnableColorCodes(true),
				progressbar.OptionSetTheme(progressbar.ThemeASCII),
				progressbar.OptionFullWidth(),
				progressbar.OptionShowCount(),
				progressbar.OptionSetDescription("[cyan][artists][reset] Crawling..."),
			)
		}
		if details.CurrentArtist != "" {
			a.bar.Describe("[cyan][artists][reset] " + details.CurrentArtist)
		}
		_ = a.bar.Set(details.ProcessedArtists)
	case progress.StageComplete:
		if a.bar != nil {
			_ = a.bar.Finish()
		}
	case progress.StageError:
		if a.bar != nil {
			_ = a.bar.Exit()
		}
	}
}
