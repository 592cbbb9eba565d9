package locale

import (
	"github.com/brianvoe/gofakeit/v7"
)

// EnglishUS draws on gofakeit's built-in English data.
type EnglishUS struct{}

func (EnglishUS) Code() string { return "en-US" }

func (EnglishUS) FullName(f *gofakeit.Faker) string { return f.Name() }

func (EnglishUS) Company(f *gofakeit.Faker) string { return f.Company() }

func (EnglishUS) TitleShapes() []TitleShape {
	return []TitleShape{
		func(f *gofakeit.Faker) string {
			return f.Adjective() + " " + f.ProductMaterial()
		},
		func(f *gofakeit.Faker) string {
			return "The " + f.Noun() + " of " + f.Noun()
		},
		func(f *gofakeit.Faker) string {
			return f.BuzzWord() + " " + f.Noun()
		},
	}
}

func (EnglishUS) FinishTitle(title string) string { return capitalizeWords(title) }

func (EnglishUS) ReviewText(f *gofakeit.Faker) string {
	return f.Paragraph(1, 2, 10, " ")
}
