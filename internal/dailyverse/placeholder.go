package dailyverse

import (
	"strings"

	"github.com/taiwoajasa245/march16-verse-api/internal/translation"
	"github.com/taiwoajasa245/march16-verse-api/internal/versestore"
)

// Placeholder is shown when no verse can be found for a day: John 3:16 in
// Korean for Korean readers, English otherwise.
func Placeholder(lang string) versestore.Verse {
	v := versestore.Verse{
		BookKey:    "JHN",
		Chapter:    3,
		StartVerse: 16,
	}
	if isKorean(lang) {
		v.BookName = "요한복음"
		v.VersionCode = translation.NKRV.String()
		v.Content = "하나님이 세상을 이처럼 사랑하사 독생자를 주셨으니 이는 그를 믿는 자마다 멸망하지 않고 영생을 얻게 하려 하심이라"
		return v
	}
	v.BookName = "John"
	v.VersionCode = translation.WEBBE.String()
	v.Content = "For God so loved the world, that he gave his only born Son, that whoever believes in him should not perish, but have eternal life."
	return v
}

func isKorean(lang string) bool {
	lang = strings.ToLower(lang)
	return lang == "ko" || strings.HasPrefix(lang, "ko-") || strings.HasPrefix(lang, "ko_")
}
