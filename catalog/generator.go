package catalog

import (
	"fmt"
	"math"

	"github.com/brianvoe/gofakeit/v7"
	"go.uber.org/zap"

	"bookforge/locale"
	"bookforge/sampling"
	"bookforge/seedtree"
)

// MaxTitleLength caps every title, in UTF-16 code units.
const MaxTitleLength = 40

// Leaf names under a book seed.
const (
	fieldAuthorCount   = "author_count"
	fieldAuthor        = "author"
	fieldPublisher     = "publisher"
	fieldTitle         = "title"
	fieldISBN          = "isbn"
	fieldLikesCount    = "likes_count"
	fieldReviewsCount  = "reviews_count"
	fieldReviewContent = "review_content"
	fieldReviewAuthor  = "author"
	fieldReviewText    = "text"
)

// Author counts are a bounded uniform pick.
const (
	minAuthors = 1
	maxAuthors = 3
)

// Generator builds books. It holds no mutable state and is safe for
// concurrent use; each call constructs its own streams.
type Generator struct {
	locales *locale.Registry
	logger  *zap.Logger
}

// NewGenerator creates a Generator. A nil registry means locale.Default();
// a nil logger discards output.
func NewGenerator(locales *locale.Registry, logger *zap.Logger) *Generator {
	if locales == nil {
		locales = locale.Default()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{locales: locales, logger: logger}
}

// Locales returns the registry the generator resolves locales against.
func (g *Generator) Locales() *locale.Registry {
	return g.locales
}

// GenerateBook builds the book at the 0-based index.
func (g *Generator) GenerateBook(index int, p Params) (Book, error) {
	if err := p.Validate(); err != nil {
		return Book{}, err
	}
	// Index is reported 1-based, so math.MaxInt has no position.
	if index < 0 || index == math.MaxInt {
		return Book{}, fmt.Errorf("%w: index must be between 0 and %d, got %d", ErrInvalidArgument, math.MaxInt-1, index)
	}
	return g.build(index, p, g.resolve(p.Locale))
}

// GeneratePage builds every book on the page, in index order.
func (g *Generator) GeneratePage(p Params, page Page) ([]Book, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := page.validate(); err != nil {
		return nil, err
	}

	prov := g.resolve(p.Locale)
	books := make([]Book, 0, page.Size)
	first := page.FirstIndex()
	for i := 0; i < page.Size; i++ {
		book, err := g.build(first+i, p, prov)
		if err != nil {
			return nil, err
		}
		books = append(books, book)
	}

	g.logger.Debug("Generated page",
		zap.String("seed", p.Seed),
		zap.String("locale", prov.Code()),
		zap.Int("page", page.Number),
		zap.Int("count", page.Size),
	)
	return books, nil
}

func (g *Generator) resolve(code string) locale.Provider {
	prov := g.locales.Resolve(code)
	if prov.Code() != code {
		g.logger.Debug("Unsupported locale, using fallback",
			zap.String("requested", code),
			zap.String("fallback", prov.Code()),
		)
	}
	return prov
}

// build derives every field from its own leaf of the book's seed tree.
func (g *Generator) build(index int, p Params, prov locale.Provider) (Book, error) {
	bookSeed := seedtree.BookSeed(p.Seed, index)
	leaf := func(path ...string) string { return seedtree.Child(bookSeed, path...) }
	fakerAt := func(path ...string) *gofakeit.Faker {
		return locale.NewFaker(seedtree.NumericSeed(leaf(path...)))
	}

	authorCount := sampling.UniformInt(seedtree.NewStream(leaf(fieldAuthorCount)), minAuthors, maxAuthors)
	authors := make([]string, authorCount)
	for i := range authors {
		authors[i] = prov.FullName(fakerAt(fieldAuthor, seedtree.Seg(i)))
	}

	publisher := prov.Company(fakerAt(fieldPublisher))
	title := generateTitle(fakerAt(fieldTitle), prov)
	isbn := newISBN(fakerAt(fieldISBN))

	likes, err := sampling.Count(p.AvgLikes, seedtree.NewStream(leaf(fieldLikesCount)))
	if err != nil {
		return Book{}, fmt.Errorf("%w: likes: %w", ErrInvalidArgument, err)
	}

	addReview := func(reviews []Review) []Review {
		content := seedtree.Child(bookSeed, fieldReviewContent, seedtree.Seg(len(reviews)))
		return append(reviews, Review{
			Author: prov.FullName(locale.NewFaker(seedtree.NumericSeed(seedtree.Child(content, fieldReviewAuthor)))),
			Text:   prov.ReviewText(locale.NewFaker(seedtree.NumericSeed(seedtree.Child(content, fieldReviewText)))),
		})
	}
	buildReviews, err := sampling.Repeat(p.AvgReviews, addReview, seedtree.NewStream(leaf(fieldReviewsCount)))
	if err != nil {
		return Book{}, fmt.Errorf("%w: reviews: %w", ErrInvalidArgument, err)
	}

	return Book{
		Index:     index + 1,
		ID:        bookSeed,
		ISBN:      isbn,
		Title:     title,
		Authors:   authors,
		Publisher: publisher,
		Likes:     likes,
		Reviews:   buildReviews([]Review{}),
		CoverSeed: bookSeed,
		Locale:    prov.Code(),
	}, nil
}

// generateTitle picks a shape from the title faker itself, so the choice is
// as reproducible as the words.
func generateTitle(f *gofakeit.Faker, prov locale.Provider) string {
	shapes := prov.TitleShapes()
	shape := shapes[f.Number(0, len(shapes)-1)]
	return locale.TruncateUTF16(prov.FinishTitle(shape(f)), MaxTitleLength)
}
