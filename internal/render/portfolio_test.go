package render

import (
	"fmt"
	"strings"
	"testing"
)

func samplePortfolioProps() PortfolioProps {
	return PortfolioProps{
		Profile: Profile{
			Name:     "Ana Souza",
			Headline: "Engenheira de Software",
			Bio:      "Construo produtos web.",
			Email:    "ana@example.com",
			SocialLinks: map[string]string{
				"github":   "https://github.com/ana",
				"linkedin": "https://linkedin.com/in/ana",
			},
		},
		Experiences: []Experience{{ID: "e1", Title: "Staff Engineer", Company: "Acme"}},
		Projects: []Project{
			{ID: "p1", Title: "folio-cli", Description: "CLI de portfólios", LinkURL: "https://github.com/ana/folio-cli"},
			{ID: "p2", Title: "sem-link", Description: "Projeto interno"},
		},
		Videos: []FeaturedVideo{
			{ID: "v1", Title: "Talk GopherCon", Description: "Palestra sobre renderização", Platform: "YouTube"},
		},
		Articles: []Article{{ID: "a1", Title: "Templates em Go", Publication: "Medium"}},
		Locale:   LocalePT,
	}
}

func TestRenderPortfolio_EmptyProfileAllTemplates(t *testing.T) {
	for _, locale := range allLocales {
		for _, id := range PortfolioTemplateIDs() {
			t.Run(fmt.Sprintf("%s_%s", id, locale), func(t *testing.T) {
				out, err := RenderPortfolio(id, PortfolioProps{Locale: locale})
				if err != nil {
					t.Fatalf("render failed: %v", err)
				}
				if !strings.Contains(out, namePlaceholder) {
					t.Error("output missing name placeholder")
				}
				if !strings.Contains(out, bioPrompt(locale)) {
					t.Error("output missing bio prompt")
				}
				labels := PortfolioLabelsFor(locale)
				for _, label := range []string{labels.Projects, labels.Videos, labels.Articles, labels.Experience} {
					if strings.Contains(out, ">"+label+"<") {
						t.Errorf("empty section %q still rendered", label)
					}
				}
			})
		}
	}
}

func TestRenderPortfolio_FullProfileAllTemplates(t *testing.T) {
	props := samplePortfolioProps()
	for _, id := range PortfolioTemplateIDs() {
		out, err := RenderPortfolio(id, props)
		if err != nil {
			t.Fatalf("%s: render failed: %v", id, err)
		}
		for _, want := range []string{"Ana Souza", "folio-cli", "Talk GopherCon", "Templates em Go"} {
			if !strings.Contains(out, want) {
				t.Errorf("%s: output missing %q", id, want)
			}
		}
	}
}

// "Ver projeto" 链接只在项目带 URL 时出现。
func TestRenderPortfolio_ProjectLinkOnlyWhenPresent(t *testing.T) {
	props := samplePortfolioProps()
	out, err := RenderPortfolio(PortfolioModern, props)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	label := PortfolioLabelsFor(LocalePT).ViewProject
	if got := strings.Count(out, label); got != 1 {
		t.Fatalf("view-project label rendered %d times, want 1", got)
	}
	if !strings.Contains(out, "https://github.com/ana/folio-cli") {
		t.Fatal("project link missing")
	}
}

func TestRenderPortfolio_SocialLinksFiltered(t *testing.T) {
	props := samplePortfolioProps()
	props.Profile.SocialLinks["website"] = "   "
	out, err := RenderPortfolio(PortfolioDark, props)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if !strings.Contains(out, "https://github.com/ana") {
		t.Fatal("github link missing")
	}
	if strings.Contains(out, ">website<") {
		t.Fatal("empty website link rendered")
	}
}

func TestRenderPortfolio_VideoCap(t *testing.T) {
	props := samplePortfolioProps()
	props.Videos = nil
	for i := 0; i < 6; i++ {
		props.Videos = append(props.Videos, FeaturedVideo{
			ID:    fmt.Sprintf("v%d", i),
			Title: fmt.Sprintf("Video %02d", i),
		})
	}
	out, err := RenderPortfolio(PortfolioMinimal, props) // 上限 2
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if !strings.Contains(out, "Video 01") {
		t.Fatal("video within cap missing")
	}
	if strings.Contains(out, "Video 02") {
		t.Fatal("video beyond cap rendered")
	}
}
