// Package versestoretest builds small verse data files for tests.
package versestoretest

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/taiwoajasa245/march16-verse-api/internal/versestore"
)

// Definition ids in the fixture.
const (
	NewYearID   int64 = 1
	March16ID   int64 = 2
	December1ID int64 = 3
	ChristmasID int64 = 4
)

// PrimaryDataset has four days. Christmas has no NKRV text.
func PrimaryDataset() versestore.Dataset {
	return versestore.Dataset{
		Definitions: []versestore.Definition{
			{ID: NewYearID, Month: 1, Day: 1, BookKey: "LAM", Chapter: 3, StartVerse: 22, EndVerse: versestore.IntPtr(23)},
			{ID: March16ID, Month: 3, Day: 16, BookKey: "JHN", Chapter: 3, StartVerse: 16, EndVerse: versestore.IntPtr(16)},
			{ID: December1ID, Month: 12, Day: 1, BookKey: "ECC", Chapter: 12, StartVerse: 1, EndVerse: versestore.IntPtr(2)},
			{ID: ChristmasID, Month: 12, Day: 25, BookKey: "MAT", Chapter: 12, StartVerse: 18},
		},
		Texts: []versestore.Text{
			{DailyID: NewYearID, VersionCode: "WEBBE", BookName: "Lamentations", Content: "It is because of Yahweh's loving kindnesses that we are not consumed, because his compassion doesn't fail. They are new every morning. Great is your faithfulness."},
			{DailyID: NewYearID, VersionCode: "NKRV", BookName: "예레미야애가", Content: "여호와의 인자와 긍휼이 무궁하시므로 우리가 진멸되지 아니함이니이다 이것들이 아침마다 새로우니 주의 성실하심이 크시도소이다"},
			{DailyID: March16ID, VersionCode: "WEBBE", BookName: "John", Content: "For God so loved the world, that he gave his only born Son, that whoever believes in him should not perish, but have eternal life."},
			{DailyID: March16ID, VersionCode: "NKRV", BookName: "요한복음", Content: "하나님이 세상을 이처럼 사랑하사 독생자를 주셨으니 이는 그를 믿는 자마다 멸망하지 않고 영생을 얻게 하려 하심이라"},
			{DailyID: December1ID, VersionCode: "WEBBE", BookName: "Ecclesiastes", Content: "Remember also your Creator in the days of your youth, before the evil days come, and the years draw near, when you will say, \"I have no pleasure in them;\" before the sun, the light, the moon, and the stars are darkened, and the clouds return after the rain;"},
			{DailyID: December1ID, VersionCode: "NKRV", BookName: "전도서", Content: "너는 청년의 때에 너의 창조주를 기억하라 곧 곤고한 날이 이르기 전에, 나는 아무 낙이 없다고 할 해들이 가깝기 전에 해와 빛과 달과 별들이 어둡기 전에, 비 뒤에 구름이 다시 일어나기 전에 그리하라"},
			{DailyID: ChristmasID, VersionCode: "WEBBE", BookName: "Matthew", Content: "\"Behold, my servant whom I have chosen; my beloved in whom my soul is well pleased. I will put my Spirit on him. He will proclaim justice to the nations."},
		},
	}
}

// SecondaryDataset carries KJV for December 1 and Christmas.
func SecondaryDataset() versestore.Dataset {
	return versestore.Dataset{
		Texts: []versestore.Text{
			{DailyID: December1ID, VersionCode: "KJV", BookName: "Ecclesiastes", Content: "Remember now thy Creator in the days of thy youth, while the evil days come not, nor the years draw nigh, when thou shalt say, I have no pleasure in them; While the sun, or the light, or the moon, or the stars, be not darkened, nor the clouds return after the rain:"},
			{DailyID: ChristmasID, VersionCode: "KJV", BookName: "Matthew", Content: "Behold my servant, whom I have chosen; my beloved, in whom my soul is well pleased: I will put my spirit upon him, and he shall shew judgment to the Gentiles."},
		},
	}
}

// BuildFile writes ds into dir/name and returns the path.
func BuildFile(t testing.TB, dir, name string, ds versestore.Dataset) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := versestore.Build(context.Background(), path, ds); err != nil {
		t.Fatalf("build %s: %v", name, err)
	}
	return path
}

// PrimaryFile builds the primary fixture in a temp dir.
func PrimaryFile(t testing.TB) string {
	t.Helper()
	return BuildFile(t, t.TempDir(), "March16.sqlite", PrimaryDataset())
}

// SecondaryFile builds the KJV fixture in a temp dir.
func SecondaryFile(t testing.TB) string {
	t.Helper()
	return BuildFile(t, t.TempDir(), "KJV.sqlite", SecondaryDataset())
}

// Open builds and opens the primary fixture. The store is closed when the test ends.
func Open(t testing.TB) *versestore.Store {
	t.Helper()
	s, err := versestore.Open(context.Background(), PrimaryFile(t))
	if err != nil {
		t.Fatalf("open fixture: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}
