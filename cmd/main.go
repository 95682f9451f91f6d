// Command discogs-scraper crawls Discogs artists of one genre and writes one
// JSON line per artist with their albums and tracklists.
//
// Usage:
//
//	discogs-scraper --genre rock
//	discogs-scraper --config config/config.toml --driver static --append
package main

func main() {
	Execute()
}
