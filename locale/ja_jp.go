package locale

import (
	"github.com/brianvoe/gofakeit/v7"
)

// jaTitleCap is the ja-JP title cap in UTF-16 code units.
const jaTitleCap = 20

var (
	jaSurnames = []string{
		"佐藤", "鈴木", "高橋", "田中", "伊藤", "渡辺", "山本", "中村", "小林", "加藤",
	}
	jaGivenNames = []string{
		"翔", "陽菜", "蓮", "結衣", "大翔", "葵", "悠真", "美咲", "颯太", "さくら",
	}
	jaCompanySuffixes = []string{"出版", "書房", "書店", "文庫", "株式会社"}
	jaNouns           = []string{"伝説", "冒険", "星", "影", "魔法", "未来", "記憶", "戦い", "夢", "希望"}
	jaParticles       = []string{"の", "と", "へ"}
	jaWords           = []string{
		"物語", "とても", "面白い", "登場人物", "魅力的", "最後", "感動", "展開", "少し",
		"長い", "おすすめ", "世界観", "素晴らしい", "また", "読みたい",
	}
)

// JapaneseJP uses embedded Japanese word tables picked through the faker.
type JapaneseJP struct{}

func (JapaneseJP) Code() string { return "ja-JP" }

func (JapaneseJP) FullName(f *gofakeit.Faker) string {
	return f.RandomString(jaSurnames) + " " + f.RandomString(jaGivenNames)
}

func (JapaneseJP) Company(f *gofakeit.Faker) string {
	return f.RandomString(jaSurnames) + f.RandomString(jaCompanySuffixes)
}

func (JapaneseJP) TitleShapes() []TitleShape {
	return []TitleShape{
		func(f *gofakeit.Faker) string {
			first := f.RandomString(jaNouns)
			second := f.RandomString(jaNouns)
			return first + f.RandomString(jaParticles) + second
		},
		func(f *gofakeit.Faker) string {
			return f.RandomString(jaWords) + " " + f.RandomString(jaWords) + " " + f.RandomString(jaNouns)
		},
	}
}

func (JapaneseJP) FinishTitle(title string) string { return TruncateUTF16(title, jaTitleCap) }

func (JapaneseJP) ReviewText(f *gofakeit.Faker) string {
	return pickSentences(f, jaWords, 2, 6, "", "。", "")
}
