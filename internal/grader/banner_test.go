package grader

import (
	"strings"
	"testing"
)

func TestSuccessBannerLocalization(t *testing.T) {
	cases := []struct {
		lang   string
		marker string
	}{
		{"en_US.UTF-8", "Success"},
		{"ru_RU.UTF-8", "Успех"},
		{"fr_FR", "Succès"},
		{"C", "Success"},
		{"", "Success"},
		{"xx_YY", "Success"},
	}
	for _, tc := range cases {
		t.Run(tc.lang, func(t *testing.T) {
			t.Setenv("LC_ALL", "")
			t.Setenv("LC_MESSAGES", "")
			t.Setenv("LANG", tc.lang)
			got := SuccessBanner()
			if !strings.HasPrefix(got, tc.marker) {
				t.Fatalf("banner %q does not start with %q", got, tc.marker)
			}
			if !strings.HasSuffix(got, "(success)!") {
				t.Fatalf("banner %q missing literal suffix", got)
			}
		})
	}
}

func TestSuccessBannerPrefersLCAll(t *testing.T) {
	t.Setenv("LC_ALL", "ja_JP.UTF-8")
	t.Setenv("LANG", "en_US.UTF-8")
	if got := SuccessBanner(); !strings.HasPrefix(got, "成功") {
		t.Fatalf("LC_ALL must win, got %q", got)
	}
}
