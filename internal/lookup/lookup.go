// Package lookup resolves bibliographic data for an ISBN from public
// catalog services. Two providers are queried concurrently and their
// answers merged field by field, Open Library taking priority.
package lookup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// ErrNoData is returned when every provider answered but none of them
// knows the ISBN. Transport failures are reported as wrapped errors
// instead so callers can tell "unknown book" from "network down".
var ErrNoData = errors.New("no bibliographic data found")

// Result holds the merged bibliographic fields for one ISBN.
type Result struct {
	Title     string
	Author    string
	Publisher string
	Year      string
	Cover     string
}

func (r *Result) empty() bool {
	return r.Title == "" && r.Author == "" && r.Publisher == "" && r.Year == "" && r.Cover == ""
}

type Client struct {
	httpClient     *http.Client
	userAgent      string
	openLibraryURL string
	googleBooksURL string
	limiter        *rate.Limiter
	maxRetries     int
	log            zerolog.Logger
}

// New creates a lookup client. rps bounds the combined request rate
// across both providers.
func New(userAgent string, rps int, log zerolog.Logger) *Client {
	if rps <= 0 {
		rps = 1
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		userAgent:      userAgent,
		openLibraryURL: "https://openlibrary.org",
		googleBooksURL: "https://www.googleapis.com",
		limiter:        rate.NewLimiter(rate.Every(time.Second/time.Duration(rps)), 1),
		maxRetries:     2,
		log:            log,
	}
}

// Lookup queries both providers for isbn and merges the answers.
// isbn should already be in canonical digit form.
func (c *Client) Lookup(ctx context.Context, isbn string) (*Result, error) {
	type answer struct {
		res *Result
		err error
	}

	olCh := make(chan answer, 1)
	gbCh := make(chan answer, 1)

	go func() {
		res, err := c.openLibrary(ctx, isbn)
		olCh <- answer{res, err}
	}()
	go func() {
		res, err := c.googleBooks(ctx, isbn)
		gbCh <- answer{res, err}
	}()

	ol := <-olCh
	gb := <-gbCh

	if ol.err != nil && gb.err != nil {
		return nil, fmt.Errorf("lookup %s: %w", isbn, ol.err)
	}

	var transportErr error
	if ol.err != nil {
		c.log.Warn().Err(ol.err).Str("isbn", isbn).Msg("open library lookup failed")
		transportErr = ol.err
		ol.res = &Result{}
	}
	if gb.err != nil {
		c.log.Warn().Err(gb.err).Str("isbn", isbn).Msg("google books lookup failed")
		transportErr = gb.err
		gb.res = &Result{}
	}

	merged := &Result{
		Title:     pick(ol.res.Title, gb.res.Title),
		Author:    pick(ol.res.Author, gb.res.Author),
		Publisher: pick(ol.res.Publisher, gb.res.Publisher),
		Year:      pick(ol.res.Year, gb.res.Year),
		Cover:     pick(ol.res.Cover, gb.res.Cover),
	}
	if merged.empty() {
		// An empty answer with a provider down is not evidence the
		// book is unknown; surface the transport failure instead.
		if transportErr != nil {
			return nil, fmt.Errorf("lookup %s: %w", isbn, transportErr)
		}
		return nil, fmt.Errorf("lookup %s: %w", isbn, ErrNoData)
	}
	return merged, nil
}

func pick(primary, secondary string) string {
	if primary != "" {
		return primary
	}
	return secondary
}

// olBook matches api/books?jscmd=data entries.
type olBook struct {
	Title   string `json:"title"`
	Authors []struct {
		Name string `json:"name"`
	} `json:"authors"`
	Publishers []struct {
		Name string `json:"name"`
	} `json:"publishers"`
	PublishDate string `json:"publish_date"`
	Cover       struct {
		Large string `json:"large"`
	} `json:"cover"`
}

func (c *Client) openLibrary(ctx context.Context, isbn string) (*Result, error) {
	u := fmt.Sprintf("%s/api/books?bibkeys=ISBN:%s&jscmd=data&format=json",
		c.openLibraryURL, url.QueryEscape(isbn))

	var res map[string]olBook
	if err := c.get(ctx, u, &res); err != nil {
		return nil, err
	}

	book, ok := res["ISBN:"+isbn]
	if !ok {
		return &Result{}, nil
	}

	authors := make([]string, 0, len(book.Authors))
	for _, a := range book.Authors {
		if a.Name != "" {
			authors = append(authors, a.Name)
		}
	}

	out := &Result{
		Title:  book.Title,
		Author: strings.Join(authors, ", "),
		Year:   extractYear(book.PublishDate),
		Cover:  book.Cover.Large,
	}
	if len(book.Publishers) > 0 {
		out.Publisher = book.Publishers[0].Name
	}
	return out, nil
}

// gbVolumes matches books/v1/volumes?q=isbn:…
type gbVolumes struct {
	TotalItems int `json:"totalItems"`
	Items      []struct {
		VolumeInfo struct {
			Title         string   `json:"title"`
			Authors       []string `json:"authors"`
			Publisher     string   `json:"publisher"`
			PublishedDate string   `json:"publishedDate"`
			ImageLinks    struct {
				Thumbnail string `json:"thumbnail"`
			} `json:"imageLinks"`
		} `json:"volumeInfo"`
	} `json:"items"`
}

func (c *Client) googleBooks(ctx context.Context, isbn string) (*Result, error) {
	u := fmt.Sprintf("%s/books/v1/volumes?q=%s",
		c.googleBooksURL, url.QueryEscape("isbn:"+isbn))

	var res gbVolumes
	if err := c.get(ctx, u, &res); err != nil {
		return nil, err
	}
	if res.TotalItems == 0 || len(res.Items) == 0 {
		return &Result{}, nil
	}

	info := res.Items[0].VolumeInfo
	return &Result{
		Title:     info.Title,
		Author:    strings.Join(info.Authors, ", "),
		Publisher: info.Publisher,
		Year:      extractYear(info.PublishedDate),
		Cover:     info.ImageLinks.Thumbnail,
	}, nil
}

var yearRe = regexp.MustCompile(`\b(\d{4})\b`)

// extractYear pulls a four-digit year out of the free-form publish
// dates the providers return ("March 1994", "2004-07", "1994").
func extractYear(date string) string {
	return yearRe.FindString(date)
}

func (c *Client) get(ctx context.Context, url string, target interface{}) error {
	var lastErr error
	for i := 0; i <= c.maxRetries; i++ {
		if i > 0 {
			backoff := time.Duration(1<<uint(i-1)) * time.Second
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}

		req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
		if err != nil {
			return err
		}
		req.Header.Set("User-Agent", c.userAgent)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
				lastErr = fmt.Errorf("unexpected status code: %d", resp.StatusCode)
				continue
			}
			return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
		}

		err = json.NewDecoder(resp.Body).Decode(target)
		resp.Body.Close()
		return err
	}
	return fmt.Errorf("after %d retries: %w", c.maxRetries, lastErr)
}
