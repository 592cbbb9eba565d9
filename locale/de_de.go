package locale

import (
	"github.com/brianvoe/gofakeit/v7"
)

var (
	deFirstNames = []string{
		"Anna", "Ben", "Clara", "David", "Elena", "Felix", "Greta", "Hannah",
		"Jonas", "Katharina", "Leon", "Marie", "Niklas", "Paul", "Sophie", "Tobias",
	}
	deLastNames = []string{
		"Müller", "Schmidt", "Schneider", "Fischer", "Weber", "Meyer", "Wagner", "Becker",
		"Schulz", "Hoffmann", "Koch", "Richter", "Klein", "Wolf", "Schröder", "Neumann",
	}
	deCompanySuffixes = []string{"GmbH", "AG", "KG", "& Söhne", "Verlag", "GmbH & Co. KG"}
	deAdjectives      = []string{
		"dunkle", "verlorene", "stille", "ewige", "kalte", "goldene", "letzte", "vergessene",
		"wilde", "geheime", "leuchtende", "ferne",
	}
	deNouns = []string{
		"Stadt", "Wald", "Nacht", "Erbe", "Fluss", "Spiegel", "Brief", "Garten",
		"Turm", "Winter", "Grenze", "Stimme", "Insel", "Zeit",
	}
	deArticles = []string{"des", "der", "des"}
	deWords    = []string{
		"das", "buch", "ist", "spannend", "und", "gut", "geschrieben", "die", "figuren",
		"wirken", "lebendig", "ein", "wenig", "lang", "aber", "lesenswert", "ende", "hat",
		"mich", "überrascht", "sehr", "empfehlenswert",
	}
)

// GermanDE uses embedded German word tables picked through the faker.
type GermanDE struct{}

func (GermanDE) Code() string { return "de-DE" }

func (GermanDE) FullName(f *gofakeit.Faker) string {
	return f.RandomString(deFirstNames) + " " + f.RandomString(deLastNames)
}

func (GermanDE) Company(f *gofakeit.Faker) string {
	return f.RandomString(deLastNames) + " " + f.RandomString(deCompanySuffixes)
}

func (GermanDE) TitleShapes() []TitleShape {
	return []TitleShape{
		func(f *gofakeit.Faker) string {
			return f.RandomString(deAdjectives) + " " + f.RandomString(deNouns)
		},
		func(f *gofakeit.Faker) string {
			return "Das Geheimnis " + f.RandomString(deArticles) + " " + f.RandomString(deNouns)
		},
	}
}

func (GermanDE) FinishTitle(title string) string { return capitalizeFirst(title) }

func (GermanDE) ReviewText(f *gofakeit.Faker) string {
	return pickSentences(f, deWords, 2, 8, " ", ".", " ")
}
