package browser

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const listMarkup = `<html><body>
<table id="rows">
  <tr><th>Membros</th><td><a class="m" href="/artist/1">Freddie Mercury</a><a class="m" href="/artist/2">Brian May</a></td></tr>
  <tr><th>Sites</th><td><a href="https://queenonline.com">queenonline.com</a><a>broken</a></td></tr>
</table>
</body></html>`

func TestElementsNavigation(t *testing.T) {
	page, err := NewHTMLPage("https://example.test/artist", listMarkup)
	require.NoError(t, err)

	root, err := page.Root()
	require.NoError(t, err)

	members := root.Locate(`th:contains("Membros") + td a.m`)
	assert.Equal(t, 2, members.Count())
	assert.Equal(t, "Freddie Mercury", members.First().Text())
	assert.Equal(t, "Brian May", members.Nth(1).Text())
	assert.Equal(t, 0, members.Nth(2).Count())
	assert.Equal(t, 0, members.Nth(-1).Count())

	href, ok := members.Nth(1).Attr("href")
	assert.True(t, ok)
	assert.Equal(t, "/artist/2", href)

	_, ok = root.Locate(`th:contains("Sites") + td a`).Nth(1).Attr("href")
	assert.False(t, ok)

	var names []string
	members.Each(func(_ int, el Elements) {
		names = append(names, el.Text())
	})
	assert.Equal(t, []string{"Freddie Mercury", "Brian May"}, names)
}

func TestZeroElements(t *testing.T) {
	var empty Elements

	assert.Equal(t, 0, empty.Count())
	assert.Equal(t, "", empty.Text())
	assert.Equal(t, 0, empty.Locate("a").Count())
	_, ok := empty.Attr("href")
	assert.False(t, ok)
}

func TestHTMLPageWaitAndClick(t *testing.T) {
	page, err := NewHTMLPage("https://example.test/artist", listMarkup)
	require.NoError(t, err)
	ctx := context.Background()

	assert.NoError(t, page.WaitFor(ctx, "#rows", time.Second))
	assert.ErrorIs(t, page.WaitFor(ctx, "#missing", time.Second), ErrTimeout)

	assert.NoError(t, page.Click(ctx, "a.m"))
	assert.ErrorIs(t, page.Click(ctx, "p.tab"), ErrNotFound)

	assert.Equal(t, "https://example.test/artist", page.URL())
	assert.NoError(t, page.Close())
}

func TestNewUnknownDriver(t *testing.T) {
	b, err := New(Options{Driver: "phantom"})
	assert.Error(t, err)
	assert.Nil(t, b)
}

func TestNewStaticDriver(t *testing.T) {
	b, err := New(Options{Driver: DriverStatic})
	require.NoError(t, err)
	assert.IsType(t, &StaticBrowser{}, b)
}
