package feed

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"time"
)

// userAgent identifies the client on every fetch
const userAgent = "gator"

// Feed is the normalized channel produced by a fetch. Item fields are copied
// verbatim from the document; PubDate stays a raw string.
type Feed struct {
	Title       string
	Link        string
	Description string
	Items       []Item
}

// Item is a single entry of a fetched channel
type Item struct {
	Title       string
	Link        string
	Description string
	PubDate     string
}

// MalformedError indicates a document that fetched fine but does not carry a
// usable channel. Transport and HTTP failures are plain errors.
type MalformedError struct {
	URL    string
	Reason string
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("malformed feed %s: %s", e.URL, e.Reason)
}

// Fetcher retrieves and parses remote feeds over HTTP
type Fetcher struct {
	client *http.Client
}

// NewFetcher creates a feed fetcher with the given request timeout
func NewFetcher(timeout time.Duration) *Fetcher {
	return &Fetcher{client: &http.Client{Timeout: timeout}}
}

// rss mirrors the consumed document shape. Only the channel and the listed
// fields are extracted; everything else in the document is ignored.
type rss struct {
	Channel *rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title       string    `xml:"title"`
	Link        string    `xml:"link"`
	Description string    `xml:"description"`
	Items       []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
	PubDate     string `xml:"pubDate"`
}

// Fetch retrieves the document at url and parses it into a Feed. One call is
// one network round trip - no retries, no caching. A reachable document
// without a channel element or without items fails as malformed; a missing
// field on an individual item is just an empty value.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*Feed, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch feed %s: unexpected status code %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read feed body: %w", err)
	}

	return parse(url, body)
}

func parse(url string, body []byte) (*Feed, error) {
	var doc rss
	if err := xml.Unmarshal(body, &doc); err != nil {
		return nil, &MalformedError{URL: url, Reason: err.Error()}
	}

	if doc.Channel == nil {
		return nil, &MalformedError{URL: url, Reason: "channel not found"}
	}
	if len(doc.Channel.Items) == 0 {
		return nil, &MalformedError{URL: url, Reason: "items not found"}
	}

	result := &Feed{
		Title:       doc.Channel.Title,
		Link:        doc.Channel.Link,
		Description: doc.Channel.Description,
		Items:       make([]Item, 0, len(doc.Channel.Items)),
	}
	for _, item := range doc.Channel.Items {
		result.Items = append(result.Items, Item{
			Title:       item.Title,
			Link:        item.Link,
			Description: item.Description,
			PubDate:     item.PubDate,
		})
	}

	return result, nil
}
