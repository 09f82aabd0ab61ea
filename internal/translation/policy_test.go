package translation

import (
	"errors"
	"testing"
)

func TestPolicy_Select(t *testing.T) {
	p := DefaultPolicy()

	tests := []struct {
		name string
		in   Inputs
		want Code
	}{
		{"override primary", Inputs{Override: WEBBE, Language: "ko"}, WEBBE},
		{"override secondary attached", Inputs{Override: KJV, Language: "ko", SecondaryAttached: true}, KJV},
		{"override secondary not attached", Inputs{Override: KJV, Language: "en", Region: "USA"}, WEBBE},
		{"override secondary not attached korean", Inputs{Override: KJV, Language: "ko-KR"}, NKRV},
		{"unknown override ignored", Inputs{Override: "ESV", Language: "en"}, WEBBE},
		{"korean", Inputs{Language: "ko"}, NKRV},
		{"korean region tag", Inputs{Language: "ko-KR", Region: "GBR", SecondaryAttached: true}, NKRV},
		{"restricted region", Inputs{Language: "en", Region: "GBR"}, WEBBE},
		{"restricted region lowercase", Inputs{Language: "en", Region: "gbr", SecondaryAttached: true}, WEBBE},
		{"secondary attached", Inputs{Language: "en", Region: "USA", SecondaryAttached: true}, KJV},
		{"unknown region attached", Inputs{Language: "en", SecondaryAttached: true}, KJV},
		{"nothing known", Inputs{}, WEBBE},
		{"english us", Inputs{Language: "en-US", Region: "USA"}, WEBBE},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.Select(tt.in); got != tt.want {
				t.Errorf("Select(%+v) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestPolicy_RegionBeatsSecondary(t *testing.T) {
	p := DefaultPolicy()
	got := p.Select(Inputs{Language: "en", Region: "GBR", SecondaryAttached: true})
	if got != WEBBE {
		t.Fatalf("restricted region must win over an attached secondary, got %s", got)
	}
}

func TestPolicy_Options(t *testing.T) {
	p := DefaultPolicy()

	if got := p.Options(false); len(got) != 2 || got[0] != NKRV || got[1] != WEBBE {
		t.Errorf("Options(false) = %v", got)
	}
	if got := p.Options(true); len(got) != 3 || got[2] != KJV {
		t.Errorf("Options(true) = %v", got)
	}
}

func TestPolicy_LocaleDefault(t *testing.T) {
	p := DefaultPolicy()
	if got := p.LocaleDefault("ko_KR"); got != NKRV {
		t.Errorf("LocaleDefault(ko_KR) = %s", got)
	}
	if got := p.LocaleDefault("en-GB"); got != WEBBE {
		t.Errorf("LocaleDefault(en-GB) = %s", got)
	}
}

func TestParse(t *testing.T) {
	c, err := Parse(" kjv ")
	if err != nil || c != KJV {
		t.Fatalf("Parse(kjv) = %s, %v", c, err)
	}
	if _, err := Parse("esv"); !errors.Is(err, ErrUnknownCode) {
		t.Fatalf("expected ErrUnknownCode, got %v", err)
	}
}

func TestDisplayName(t *testing.T) {
	if got := WEBBE.DisplayName(); got != "World English Bible (WEBBE)" {
		t.Errorf("unexpected display name %q", got)
	}
	if got := Code("XYZ").DisplayName(); got != "XYZ" {
		t.Errorf("unknown code should display as itself, got %q", got)
	}
}
