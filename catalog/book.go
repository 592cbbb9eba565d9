// Package catalog composes seed fan-out, fractional sampling and locale text
// into reproducible book records.
package catalog

// Book is one generated catalog entry. It is fully determined by the root
// seed, its index, the locale and the two average rates.
type Book struct {
	// Index is the 1-based position shown to users.
	Index     int      `json:"index"`
	ID        string   `json:"id"`
	ISBN      string   `json:"isbn"`
	Title     string   `json:"title"`
	Authors   []string `json:"authors"`
	Publisher string   `json:"publisher"`
	Likes     int      `json:"likes"`
	Reviews   []Review `json:"reviews"`
	CoverSeed string   `json:"coverSeed"`
	Locale    string   `json:"locale"`
}

// Review is a single reader review.
type Review struct {
	Author string `json:"author"`
	Text   string `json:"text"`
}
