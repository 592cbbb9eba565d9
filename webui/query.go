package webui

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"bookforge/catalog"
)

// errMissingParams is returned when a catalog request omits a required
// parameter. The message is shown to clients as-is.
var errMissingParams = errors.New("Missing required query parameters: seed, language, likes, reviews")

// PageLimits bounds page sizes accepted from clients.
type PageLimits struct {
	DefaultSize int
	MaxSize     int
}

func (l PageLimits) clamp(n int) int {
	return max(1, min(n, l.MaxSize))
}

// bookQuery is a parsed catalog request.
type bookQuery struct {
	Params catalog.Params
	Page   catalog.Page
}

// parseBookQuery reads seed, language (or locale), likes, reviews, page and
// count from q. Missing required fields yield errMissingParams; malformed
// numbers wrap catalog.ErrInvalidArgument.
func parseBookQuery(q url.Values, limits PageLimits) (bookQuery, error) {
	lang := q.Get("language")
	if lang == "" {
		lang = q.Get("locale")
	}
	seed, likes, reviews := q.Get("seed"), q.Get("likes"), q.Get("reviews")
	if seed == "" || lang == "" || likes == "" || reviews == "" {
		return bookQuery{}, errMissingParams
	}

	avgLikes, err := parseFloatParam("likes", likes)
	if err != nil {
		return bookQuery{}, err
	}
	avgReviews, err := parseFloatParam("reviews", reviews)
	if err != nil {
		return bookQuery{}, err
	}

	page, err := parseIntParam(q, "page", 0)
	if err != nil {
		return bookQuery{}, err
	}
	count, err := parseIntParam(q, "count", limits.DefaultSize)
	if err != nil {
		return bookQuery{}, err
	}

	return bookQuery{
		Params: catalog.Params{
			Seed:       seed,
			Locale:     lang,
			AvgLikes:   avgLikes,
			AvgReviews: avgReviews,
		},
		Page: catalog.Page{Number: page, Size: limits.clamp(count)},
	}, nil
}

func parseFloatParam(name, raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a number, got %q", catalog.ErrInvalidArgument, name, raw)
	}
	return v, nil
}

// parseIntParam returns def when name is absent.
func parseIntParam(q url.Values, name string, def int) (int, error) {
	raw := q.Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer, got %q", catalog.ErrInvalidArgument, name, raw)
	}
	return v, nil
}
