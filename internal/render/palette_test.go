package render

import "testing"

func TestResolvePalette_NilTheme(t *testing.T) {
	p := ResolvePalette(nil)
	if p.Primary != DefaultPrimary {
		t.Fatalf("primary = %q, want %q", p.Primary, DefaultPrimary)
	}
	if p.Secondary != DefaultSecondary {
		t.Fatalf("secondary = %q, want %q", p.Secondary, DefaultSecondary)
	}
	if p.Accent != DefaultAccent {
		t.Fatalf("accent = %q, want %q", p.Accent, DefaultAccent)
	}
	if p.Background != DefaultBackground {
		t.Fatalf("background = %q, want %q", p.Background, DefaultBackground)
	}
}

func TestResolvePalette_PartialTheme(t *testing.T) {
	p := ResolvePalette(&Theme{PrimaryColor: "#111"})
	if p.Primary != "#111" {
		t.Fatalf("primary = %q, want #111", p.Primary)
	}
	if p.Secondary != DefaultSecondary || p.Accent != DefaultAccent || p.Background != DefaultBackground {
		t.Fatalf("unexpected fallback values: %+v", p)
	}
}

func TestResolvePalette_WhitespaceTreatedAsAbsent(t *testing.T) {
	p := ResolvePalette(&Theme{AccentColor: "   "})
	if p.Accent != DefaultAccent {
		t.Fatalf("accent = %q, want default", p.Accent)
	}
}

func TestResolveFontFamily(t *testing.T) {
	if got := ResolveFontFamily(nil); got != "Arial" {
		t.Fatalf("nil theme font = %q", got)
	}
	if got := ResolveFontFamily(&Theme{FontFamily: "Inter"}); got != "Inter" {
		t.Fatalf("font = %q, want Inter", got)
	}
}
