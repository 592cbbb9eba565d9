package seedtree

import "testing"

func TestDeriveSubSeed(t *testing.T) {
	tests := []struct {
		name  string
		root  string
		index int
		path  []string
		want  string
	}{
		{"book only", "42", 0, nil, "42_book_0"},
		{"single field", "42", 3, []string{"title"}, "42_book_3_title"},
		{"multi segment", "42", 7, []string{"review_content", "3", "text"}, "42_book_7_review_content_3_text"},
		{"empty root", "", 1, []string{"isbn"}, "_book_1_isbn"},
		{"unicode root", "種", 12, []string{"author", "0"}, "種_book_12_author_0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DeriveSubSeed(tt.root, tt.index, tt.path...)
			if got != tt.want {
				t.Errorf("DeriveSubSeed(%q, %d, %v) = %q, want %q", tt.root, tt.index, tt.path, got, tt.want)
			}
		})
	}
}

func TestChild_MatchesDerive(t *testing.T) {
	book := BookSeed("seed", 5)
	review := Child(book, "review_content", Seg(2))

	if got := Child(review, "author"); got != DeriveSubSeed("seed", 5, "review_content", "2", "author") {
		t.Errorf("Child chain = %q, does not match DeriveSubSeed", got)
	}
	if got := Child(book); got != book {
		t.Errorf("Child with no path = %q, want %q", got, book)
	}
}

func TestDeriveSubSeed_OrderMatters(t *testing.T) {
	a := DeriveSubSeed("r", 1, "x", "y")
	b := DeriveSubSeed("r", 1, "y", "x")
	if a == b {
		t.Errorf("segment order ignored: %q == %q", a, b)
	}
}
