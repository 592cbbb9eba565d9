package webui

import (
	"errors"
	"net/url"
	"testing"

	"bookforge/catalog"
)

func TestParseBookQuery(t *testing.T) {
	limits := PageLimits{DefaultSize: 20, MaxSize: 100}

	tests := []struct {
		name      string
		query     string
		wantErr   error
		wantPage  int
		wantCount int
		wantLang  string
	}{
		{"all fields", "seed=42&language=de-DE&likes=2.5&reviews=1&page=3&count=10", nil, 3, 10, "de-DE"},
		{"defaults", "seed=42&language=en-US&likes=0&reviews=0", nil, 0, 20, "en-US"},
		{"locale alias", "seed=42&locale=ja-JP&likes=1&reviews=1", nil, 0, 20, "ja-JP"},
		{"language wins over alias", "seed=42&language=en-US&locale=ja-JP&likes=1&reviews=1", nil, 0, 20, "en-US"},
		{"count clamped high", "seed=42&language=en-US&likes=1&reviews=1&count=5000", nil, 0, 100, "en-US"},
		{"count clamped low", "seed=42&language=en-US&likes=1&reviews=1&count=0", nil, 0, 1, "en-US"},
		{"missing seed", "language=en-US&likes=1&reviews=1", errMissingParams, 0, 0, ""},
		{"missing language", "seed=42&likes=1&reviews=1", errMissingParams, 0, 0, ""},
		{"missing likes", "seed=42&language=en-US&reviews=1", errMissingParams, 0, 0, ""},
		{"missing reviews", "seed=42&language=en-US&likes=1", errMissingParams, 0, 0, ""},
		{"bad likes", "seed=42&language=en-US&likes=lots&reviews=1", catalog.ErrInvalidArgument, 0, 0, ""},
		{"bad reviews", "seed=42&language=en-US&likes=1&reviews=x", catalog.ErrInvalidArgument, 0, 0, ""},
		{"bad page", "seed=42&language=en-US&likes=1&reviews=1&page=two", catalog.ErrInvalidArgument, 0, 0, ""},
		{"bad count", "seed=42&language=en-US&likes=1&reviews=1&count=1.5", catalog.ErrInvalidArgument, 0, 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := url.ParseQuery(tt.query)
			if err != nil {
				t.Fatal(err)
			}

			got, err := parseBookQuery(q, limits)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("parseBookQuery() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseBookQuery() error = %v", err)
			}
			if got.Page.Number != tt.wantPage || got.Page.Size != tt.wantCount {
				t.Errorf("page = %+v, want number %d size %d", got.Page, tt.wantPage, tt.wantCount)
			}
			if got.Params.Locale != tt.wantLang {
				t.Errorf("locale = %q, want %q", got.Params.Locale, tt.wantLang)
			}
			if got.Params.Seed != "42" {
				t.Errorf("seed = %q, want 42", got.Params.Seed)
			}
		})
	}
}

func TestParseBookQuery_Rates(t *testing.T) {
	q := url.Values{"seed": {"s"}, "language": {"en-US"}, "likes": {" 3.7 "}, "reviews": {"0.5"}}
	got, err := parseBookQuery(q, PageLimits{DefaultSize: 20, MaxSize: 100})
	if err != nil {
		t.Fatal(err)
	}
	if got.Params.AvgLikes != 3.7 || got.Params.AvgReviews != 0.5 {
		t.Errorf("rates = %v/%v, want 3.7/0.5", got.Params.AvgLikes, got.Params.AvgReviews)
	}
}

func TestClientMessageQuery(t *testing.T) {
	msg := ClientMessage{
		Type:   MessageTypePage,
		Params: map[string]any{"seed": "42", "locale": "de-DE", "likes": 2.5, "reviews": "1", "ignored": nil},
		Page:   2,
		Count:  10,
	}

	q := msg.query()
	want := map[string]string{
		"seed": "42", "locale": "de-DE", "likes": "2.5", "reviews": "1", "page": "2", "count": "10",
	}
	for k, v := range want {
		if got := q.Get(k); got != v {
			t.Errorf("query[%s] = %q, want %q", k, got, v)
		}
	}
	if q.Has("ignored") {
		t.Error("nil params should be dropped")
	}

	msg.Count = 0
	if msg.query().Has("count") {
		t.Error("zero count should be left to the default")
	}
}
