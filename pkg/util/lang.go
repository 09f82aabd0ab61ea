package util

import (
	"net/http"
	"strings"

	"golang.org/x/text/language"
)

// PreferredLanguage returns the base language the client asked for: the
// "lang" query parameter first, then the highest weighted Accept-Language
// tag. Empty when neither is usable.
func PreferredLanguage(r *http.Request) string {
	if base := BaseLanguage(r.URL.Query().Get("lang")); base != "" {
		return base
	}

	tags, _, err := language.ParseAcceptLanguage(r.Header.Get("Accept-Language"))
	if err != nil || len(tags) == 0 {
		return ""
	}
	base, conf := tags[0].Base()
	if conf == language.No {
		return ""
	}
	return base.String()
}

// BaseLanguage reduces a BCP 47 tag such as "ko-KR" to its base language.
// Empty when tag does not parse.
func BaseLanguage(tag string) string {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return ""
	}
	t, err := language.Parse(tag)
	if err != nil {
		return ""
	}
	base, _ := t.Base()
	return base.String()
}
