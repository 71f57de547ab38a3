package render

import (
	"reflect"
	"testing"
)

func TestInitialsBadge(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"Ana Souza", "AS"},
		{"ana", "A"},
		{"ana maria souza", "AM"},
		{"  ", "CV"},
		{"", "CV"},
		{"123 456", "CV"},
		{"josé álvares", "JÁ"},
	}
	for _, tc := range cases {
		if got := initialsBadge(tc.name); got != tc.want {
			t.Errorf("initialsBadge(%q) = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestTruncateText(t *testing.T) {
	if got := truncateText("curto", 120); got != "curto" {
		t.Fatalf("short text changed: %q", got)
	}
	long := make([]rune, 0, 150)
	for i := 0; i < 150; i++ {
		long = append(long, 'ã')
	}
	got := truncateText(string(long), 120)
	runes := []rune(got)
	if runes[len(runes)-1] != '…' {
		t.Fatalf("truncated text missing ellipsis: %q", got)
	}
	if len(runes) > 121 {
		t.Fatalf("truncated text too long: %d runes", len(runes))
	}
	if truncateText("qualquer", 0) != "qualquer" {
		t.Fatal("zero budget must disable truncation")
	}
}

func TestFormatEducationPeriod(t *testing.T) {
	cases := []struct {
		record EducationRecord
		want   string
	}{
		{EducationRecord{StartYear: "2019", EndYear: "2021"}, "2019 – 2021"},
		{EducationRecord{StartYear: "2019"}, "2019"},
		{EducationRecord{EndYear: "2021"}, "2021"},
		{EducationRecord{Period: "Summer"}, "Summer"},
		{EducationRecord{StartYear: "2019", Period: "ignored"}, "2019"},
		{EducationRecord{}, ""},
	}
	for _, tc := range cases {
		if got := formatEducationPeriod(tc.record); got != tc.want {
			t.Errorf("formatEducationPeriod(%+v) = %q, want %q", tc.record, got, tc.want)
		}
	}
}

func TestContactItems(t *testing.T) {
	p := Profile{Email: "a@b.c", Location: "Lisboa"}
	got := contactItems(p)
	want := []string{"a@b.c", "Lisboa"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("contactItems = %v, want %v", got, want)
	}
	if items := contactItems(Profile{}); len(items) != 0 {
		t.Fatalf("empty profile produced contact items: %v", items)
	}
}

func TestShowPhoto(t *testing.T) {
	hide := false
	show := true
	cases := []struct {
		profile Profile
		want    bool
	}{
		{Profile{PhotoURL: "https://x/p.png"}, true},
		{Profile{PhotoURL: "https://x/p.png", ShowPhoto: &show}, true},
		{Profile{PhotoURL: "https://x/p.png", ShowPhoto: &hide}, false},
		{Profile{ShowPhoto: &show}, false},
		{Profile{}, false},
	}
	for i, tc := range cases {
		if got := showPhoto(tc.profile); got != tc.want {
			t.Errorf("case %d: showPhoto = %v, want %v", i, got, tc.want)
		}
	}
}

func TestFilterSocialLinks(t *testing.T) {
	links := map[string]string{
		"github":    "https://github.com/ana",
		"linkedin":  "",
		"instagram": "https://instagram.com/ana",
		"mastodon":  "https://masto.example/@ana", // 未知平台被忽略
	}
	got := filterSocialLinks(links)
	want := []SocialLink{
		{Name: "github", URL: "https://github.com/ana"},
		{Name: "instagram", URL: "https://instagram.com/ana"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("filterSocialLinks = %v, want %v", got, want)
	}
	if out := filterSocialLinks(nil); out != nil {
		t.Fatalf("nil map should produce nil, got %v", out)
	}
}
