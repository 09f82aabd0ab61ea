package translation

import "strings"

// Inputs is everything the policy looks at. Zero values mean "unknown".
type Inputs struct {
	Override          Code
	Language          string
	Region            string
	SecondaryAttached bool
}

// Policy maps the reader's context to a translation code.
type Policy struct {
	LocalLanguage    string
	RestrictedRegion string
}

// DefaultPolicy is the policy the app ships with.
func DefaultPolicy() Policy {
	return Policy{LocalLanguage: "ko", RestrictedRegion: "GBR"}
}

// Select applies the rules in order and returns the first match:
// an available override, the local language, the restricted region,
// an attached secondary translation, and finally the default.
func (p Policy) Select(in Inputs) Code {
	if in.Override != "" && p.Available(in.Override, in.SecondaryAttached) {
		return in.Override
	}
	if p.LocalLanguage != "" && baseLanguage(in.Language) == p.LocalLanguage {
		return NKRV
	}
	if p.RestrictedRegion != "" && strings.EqualFold(in.Region, p.RestrictedRegion) {
		return WEBBE
	}
	if in.SecondaryAttached {
		return KJV
	}
	return Default
}

// Available reports whether code can be served right now.
func (p Policy) Available(code Code, attached bool) bool {
	if _, ok := displayNames[code]; !ok {
		return false
	}
	if code.Secondary() {
		return attached
	}
	return true
}

// Options lists the codes a settings screen may offer.
func (p Policy) Options(attached bool) []Code {
	out := make([]Code, 0, 3)
	for _, c := range All() {
		if p.Available(c, attached) {
			out = append(out, c)
		}
	}
	return out
}

// LocaleDefault is the code used when nothing but the language is known.
func (p Policy) LocaleDefault(lang string) Code {
	if p.LocalLanguage != "" && baseLanguage(lang) == p.LocalLanguage {
		return NKRV
	}
	return Default
}

// Restricted reports whether region is the market where the secondary
// translation is never offered.
func (p Policy) Restricted(region string) bool {
	return p.RestrictedRegion != "" && strings.EqualFold(region, p.RestrictedRegion)
}

func baseLanguage(tag string) string {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if i := strings.IndexAny(tag, "-_"); i >= 0 {
		tag = tag[:i]
	}
	return tag
}
