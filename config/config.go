package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

const AppName = "discogs-scraper"

// DefaultPath is the config file looked up relative to the working directory.
const DefaultPath = "./config/config.yaml"

type Config struct {
	LogLevel  int    `yaml:"log_level" toml:"log_level"`
	LogFormat string `yaml:"log_format" toml:"log_format"`
	Genre     string `yaml:"genre" toml:"genre"`

	Site      SiteConfig    `yaml:"site" toml:"site"`
	Browser   BrowserConfig `yaml:"browser" toml:"browser"`
	Output    OutputConfig  `yaml:"output" toml:"output"`
	Selectors Selectors     `yaml:"selectors" toml:"selectors"`
}

type SiteConfig struct {
	BaseURL   string `yaml:"base_url" toml:"base_url"`
	// SearchURL must contain {genre}, replaced by the query-escaped genre.
	SearchURL string `yaml:"search_url" toml:"search_url"`
}

type BrowserConfig struct {
	// Driver is "rod" (Chromium) or "static" (plain HTTP, no JavaScript).
	Driver          string   `yaml:"driver" toml:"driver"`
	Headless        bool     `yaml:"headless" toml:"headless"`
	Bin             string   `yaml:"bin" toml:"bin"`
	UserAgent       string   `yaml:"user_agent" toml:"user_agent"`
	PageLoadTimeout Duration `yaml:"page_load_timeout" toml:"page_load_timeout"`
	ElementTimeout  Duration `yaml:"element_timeout" toml:"element_timeout"`
}

type OutputConfig struct {
	// Type of storage: "local" or "gcs"
	Type   string    `yaml:"type" toml:"type"`
	Dir    string    `yaml:"dir" toml:"dir"`
	File   string    `yaml:"file" toml:"file"`
	Append bool      `yaml:"append" toml:"append"`
	GCS    GCSConfig `yaml:"gcs" toml:"gcs"`
}

type GCSConfig struct {
	Bucket          string `yaml:"bucket" toml:"bucket"`
	Prefix          string `yaml:"prefix" toml:"prefix"`
	CredentialsFile string `yaml:"credentials_file" toml:"credentials_file"`
}

// Selectors describe the target site's markup. They change whenever the site does.
type Selectors struct {
	Search   SearchSelectors  `yaml:"search" toml:"search"`
	Artist   ArtistSelectors  `yaml:"artist" toml:"artist"`
	Versions VersionSelectors `yaml:"versions" toml:"versions"`
	Release  ReleaseSelectors `yaml:"release" toml:"release"`
}

type SearchSelectors struct {
	Results string `yaml:"results" toml:"results"`
	// Slot is a format string taking the 1-based result position.
	Slot    string `yaml:"slot" toml:"slot"`
}

type ArtistSelectors struct {
	Name        string `yaml:"name" toml:"name"`
	Members     string `yaml:"members" toml:"members"`
	Sites       string `yaml:"sites" toml:"sites"`
	AlbumsTab   string `yaml:"albums_tab" toml:"albums_tab"`
	Discography string `yaml:"discography" toml:"discography"`
	AlbumRow    string `yaml:"album_row" toml:"album_row"`
	AlbumLink   string `yaml:"album_link" toml:"album_link"`
	AlbumYear   string `yaml:"album_year" toml:"album_year"`
}

type VersionSelectors struct {
	Link string `yaml:"link" toml:"link"`
}

type ReleaseSelectors struct {
	Tracklist   string `yaml:"tracklist" toml:"tracklist"`
	Label       string `yaml:"label" toml:"label"`
	Styles      string `yaml:"styles" toml:"styles"`
	TrackRow    string `yaml:"track_row" toml:"track_row"`
	TrackNumber string `yaml:"track_number" toml:"track_number"`
	TrackTitle  string `yaml:"track_title" toml:"track_title"`
	TrackTime   string `yaml:"track_time" toml:"track_time"`
}

// Default returns the configuration used when no file overrides a key.
func Default() *Config {
	return &Config{
		LogLevel:  0,
		LogFormat: "text",
		Genre:     "rock",
		Site: SiteConfig{
			BaseURL:   "https://www.discogs.com",
			SearchURL: "https://www.discogs.com/pt_BR/search/?sort=want%2Cdesc&q={genre}&type=artist&layout=sm",
		},
		Browser: BrowserConfig{
			Driver:          "rod",
			Headless:        true,
			PageLoadTimeout: Duration(120 * time.Second),
			ElementTimeout:  Duration(60 * time.Second),
		},
		Output: OutputConfig{
			Type: "local",
			Dir:  ".",
			File: "discogsArtistsAlbums.jsonl",
		},
		Selectors: Selectors{
			Search: SearchSelectors{
				Results: "#search_results",
				Slot:    "#search_results > li:nth-child(%d) > div.card_body > h4 > a",
			},
			Artist: ArtistSelectors{
				Name:        "h1.MuiTypography-root",
				Members:     `th:contains("Membros") + td a.link_1ctor`,
				Sites:       `th:contains("Sites") + td a`,
				AlbumsTab:   "p.facet_1Bq8g",
				Discography: ".discographyGrid_31ecR",
				AlbumRow:    ".discographyGrid_31ecR tbody tr",
				AlbumLink:   "td.title_oY1q1 a.link_1ctor",
				AlbumYear:   "td.year_2QrBV",
			},
			Versions: VersionSelectors{
				Link: "#versions table tbody tr td.title_3z5nf.cell_WT9P- a",
			},
			Release: ReleaseSelectors{
				Tracklist:   "#release-tracklist table",
				Label:       `th:contains("Label") + td`,
				Styles:      `th:contains("Style") + td a`,
				TrackRow:    "#release-tracklist table tbody tr",
				TrackNumber: "td.trackPos_2RCje span",
				TrackTitle:  "td.trackTitle_CTKp4 > span",
				TrackTime:   "td.duration_2t4qr span",
			},
		},
	}
}

// Load reads a YAML or TOML file over the defaults. TOML is chosen by the .toml extension.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	config := Default()

	if strings.EqualFold(filepath.Ext(path), ".toml") {
		err = toml.Unmarshal(data, config)
	} else {
		err = yaml.Unmarshal(data, config)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	// Set defaults if not provided
	if config.Output.Type == "" {
		config.Output.Type = "local"
	}

	if config.Output.Dir == "" {
		config.Output.Dir = "."
	}

	if config.Browser.Driver == "" {
		config.Browser.Driver = "rod"
	}

	return config, nil
}

// Resolve picks the config file to use: explicit path, then ./config/config.yaml,
// then the XDG config directory. An empty result means built-in defaults.
func Resolve(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if _, err := os.Stat(DefaultPath); err == nil {
		return DefaultPath
	}
	if path, err := xdg.SearchConfigFile(filepath.Join(AppName, "config.yaml")); err == nil {
		return path
	}
	return ""
}

// LoadOrDefault loads the resolved config file, or the defaults when there is none.
func LoadOrDefault(explicit string) (*Config, string, error) {
	path := Resolve(explicit)
	if path == "" {
		return Default(), "", nil
	}
	cfg, err := Load(path)
	if err != nil {
		return nil, path, err
	}
	return cfg, path, nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch c.Browser.Driver {
	case "rod", "static":
	default:
		return fmt.Errorf("unknown browser driver %q", c.Browser.Driver)
	}

	switch c.Output.Type {
	case "local":
	case "gcs":
		if c.Output.GCS.Bucket == "" {
			return errors.New("output.gcs.bucket is required for gcs output")
		}
	default:
		return fmt.Errorf("unknown output type %q", c.Output.Type)
	}

	if c.Output.File == "" {
		return errors.New("output.file is required")
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("unknown log format %q", c.LogFormat)
	}
	if c.Site.BaseURL == "" {
		return errors.New("site.base_url is required")
	}
	if !strings.Contains(c.Site.SearchURL, "{genre}") {
		return errors.New("site.search_url must contain {genre}")
	}
	if c.Browser.PageLoadTimeout <= 0 || c.Browser.ElementTimeout <= 0 {
		return errors.New("browser timeouts must be positive")
	}

	for name, sel := range c.Selectors.required() {
		if strings.TrimSpace(sel) == "" {
			return fmt.Errorf("selectors.%s is required", name)
		}
	}
	if !strings.Contains(c.Selectors.Search.Slot, "%d") {
		return errors.New("selectors.search.slot must contain %d")
	}

	return nil
}

func (s Selectors) required() map[string]string {
	return map[string]string{
		"search.results":       s.Search.Results,
		"search.slot":          s.Search.Slot,
		"artist.name":          s.Artist.Name,
		"artist.members":       s.Artist.Members,
		"artist.sites":         s.Artist.Sites,
		"artist.albums_tab":    s.Artist.AlbumsTab,
		"artist.discography":   s.Artist.Discography,
		"artist.album_row":     s.Artist.AlbumRow,
		"artist.album_link":    s.Artist.AlbumLink,
		"artist.album_year":    s.Artist.AlbumYear,
		"versions.link":        s.Versions.Link,
		"release.tracklist":    s.Release.Tracklist,
		"release.label":        s.Release.Label,
		"release.styles":       s.Release.Styles,
		"release.track_row":    s.Release.TrackRow,
		"release.track_number": s.Release.TrackNumber,
		"release.track_title":  s.Release.TrackTitle,
		"release.track_time":   s.Release.TrackTime,
	}
}
