package geolayer

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
)

// TileFetcher retrieves the raw feature-collection payload for a tile URL.
// Retry policy belongs to the fetcher, not to the cache.
type TileFetcher func(url string) ([]byte, error)

// HTTPFetcher returns a TileFetcher backed by the given HTTP client.
// A nil client uses http.DefaultClient.
func HTTPFetcher(client *http.Client) TileFetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return func(url string) ([]byte, error) {
		resp, err := client.Get(url)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("geolayer: tile fetch %s: status %s", url, resp.Status)
		}
		return io.ReadAll(resp.Body)
	}
}

// TileCache deduplicates tile-fetch requests by URL and feeds fetched
// payloads into an Ingestor. A URL is fetched at most once for the lifetime
// of the cache; a fetch already in flight when the viewport moves on simply
// completes and ingests late data, which is harmless because the buffers
// are append-only.
//
// By default the seen-set grows without bound, which is acceptable for the
// short sessions this layer targets (tile URLs are finite per zoom level).
// Setting a limit turns the set into an LRU so long-running sessions can
// re-fetch tiles that have not been requested recently.
//
// TileCache shares the store's single-threaded model and needs no locking.
type TileCache struct {
	ingestor *Ingestor
	fetch    TileFetcher
	limit    int

	seen map[string]*seenEntry
	// Doubly-linked recency list; front is most recently requested.
	front, back *seenEntry
}

type seenEntry struct {
	url        string
	prev, next *seenEntry
}

// NewTileCache creates a TileCache delegating payloads to the ingestor.
// limit bounds the seen-set (0 means unlimited). A nil fetcher defaults to
// HTTPFetcher(nil).
func NewTileCache(ingestor *Ingestor, fetch TileFetcher, limit int) *TileCache {
	if fetch == nil {
		fetch = HTTPFetcher(nil)
	}
	return &TileCache{
		ingestor: ingestor,
		fetch:    fetch,
		limit:    limit,
		seen:     make(map[string]*seenEntry),
	}
}

// RequestTile fetches and ingests the tile payload unless the URL has
// already been requested. Fetch and parse failures are logged and dropped;
// the URL stays marked as seen either way.
func (c *TileCache) RequestTile(url string) {
	if e, ok := c.seen[url]; ok {
		c.moveToFront(e)
		Logger().Debug("geolayer: tile already requested", "url", url)
		return
	}
	c.mark(url)

	payload, err := c.fetch(url)
	if err != nil {
		Logger().Warn("geolayer: tile fetch failed", "url", url, "err", err)
		return
	}
	if err := c.ingestor.Ingest(payload); err != nil {
		Logger().Warn("geolayer: tile payload rejected", "url", url, "err", err)
	}
}

// TileURL expands a z/x/y URL template for the tile containing the
// geographic coordinate at the given zoom level. The placeholders {z}, {x}
// and {y} are replaced with the zoom, tile column and tile row from
// [TileAt].
//
//	TileURL("https://tiles.test/{z}/{x}/{y}.json", -90, 45, 1)
//	// "https://tiles.test/1/0/0.json"
func TileURL(template string, lng, lat float64, zoom int) string {
	col, row := TileAt(lng, lat, zoom)
	return strings.NewReplacer(
		"{z}", strconv.Itoa(zoom),
		"{x}", strconv.Itoa(col),
		"{y}", strconv.Itoa(row),
	).Replace(template)
}

// RequestTileAt requests the tile containing the geographic coordinate,
// building its URL from a z/x/y template; see [TileURL]. Coordinates that
// land in an already-requested tile are deduplicated by the resulting URL.
func (c *TileCache) RequestTileAt(template string, lng, lat float64, zoom int) {
	c.RequestTile(TileURL(template, lng, lat, zoom))
}

// Seen reports whether the URL has been requested before.
func (c *TileCache) Seen(url string) bool {
	_, ok := c.seen[url]
	return ok
}

// Len returns the number of URLs currently tracked.
func (c *TileCache) Len() int { return len(c.seen) }

func (c *TileCache) mark(url string) {
	e := &seenEntry{url: url}
	c.seen[url] = e
	c.pushFront(e)
	if c.limit > 0 && len(c.seen) > c.limit {
		if old := c.removeBack(); old != nil {
			delete(c.seen, old.url)
		}
	}
}

func (c *TileCache) pushFront(e *seenEntry) {
	e.next = c.front
	if c.front != nil {
		c.front.prev = e
	}
	c.front = e
	if c.back == nil {
		c.back = e
	}
}

func (c *TileCache) moveToFront(e *seenEntry) {
	if c.front == e {
		return
	}
	// Unlink.
	if e.prev != nil {
		e.prev.next = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	}
	if c.back == e {
		c.back = e.prev
	}
	e.prev, e.next = nil, nil
	c.pushFront(e)
}

func (c *TileCache) removeBack() *seenEntry {
	e := c.back
	if e == nil {
		return nil
	}
	c.back = e.prev
	if c.back != nil {
		c.back.next = nil
	} else {
		c.front = nil
	}
	e.prev, e.next = nil, nil
	return e
}
