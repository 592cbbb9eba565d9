package seedtree

import (
	"strconv"
	"strings"
)

// Separator joins the segments of a derivation path.
const Separator = "_"

// BookSeed returns the structure seed that roots every field of one book.
// It doubles as the book ID and the cover seed.
func BookSeed(root string, index int) string {
	return root + "_book_" + strconv.Itoa(index)
}

// DeriveSubSeed returns the sub-seed for a field of the book at index.
// Segments are appended in order; an empty path yields the book seed itself.
func DeriveSubSeed(root string, index int, path ...string) string {
	return Child(BookSeed(root, index), path...)
}

// Child appends path segments to an existing sub-seed.
func Child(subSeed string, path ...string) string {
	if len(path) == 0 {
		return subSeed
	}
	return subSeed + Separator + strings.Join(path, Separator)
}

// Seg formats an integer position as a path segment.
func Seg(i int) string {
	return strconv.Itoa(i)
}
