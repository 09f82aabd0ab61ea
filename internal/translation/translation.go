// Package translation decides which Bible translation a reader sees.
package translation

import (
	"errors"
	"strings"
)

// Code identifies a translation in the verse store.
type Code string

const (
	NKRV  Code = "NKRV"
	WEBBE Code = "WEBBE"
	KJV   Code = "KJV"
)

// Default is what every lookup falls back to.
const Default = WEBBE

var ErrUnknownCode = errors.New("unknown translation code")

var displayNames = map[Code]string{
	NKRV:  "개역개정 (NKRV)",
	WEBBE: "World English Bible (WEBBE)",
	KJV:   "King James Version (KJV)",
}

// All lists the known codes in display order.
func All() []Code {
	return []Code{NKRV, WEBBE, KJV}
}

// Parse accepts a code in any letter case.
func Parse(s string) (Code, error) {
	c := Code(strings.ToUpper(strings.TrimSpace(s)))
	if _, ok := displayNames[c]; !ok {
		return "", ErrUnknownCode
	}
	return c, nil
}

func (c Code) String() string { return string(c) }

// DisplayName is the label shown in the translation picker.
func (c Code) DisplayName() string {
	if name, ok := displayNames[c]; ok {
		return name
	}
	return string(c)
}

// Secondary reports whether c ships outside the primary data file.
func (c Code) Secondary() bool {
	return c == KJV
}
