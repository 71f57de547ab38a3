package render

import (
	"strings"
	"testing"
)

// 历史遗留的模板标识必须静默回落到 modern，而不是报错。
func TestParseCVTemplateID_UnknownFallsBack(t *testing.T) {
	if got := ParseCVTemplateID("legacy-2021"); got != CVModern {
		t.Fatalf("unknown id parsed to %q, want modern", got)
	}
	if got := ParseCVTemplateID(" corporate "); got != CVCorporate {
		t.Fatalf("trimmed id parsed to %q, want corporate", got)
	}
	if got := ParsePortfolioTemplateID("deprecated"); got != PortfolioModern {
		t.Fatalf("unknown portfolio id parsed to %q, want modern", got)
	}
}

func TestRenderCV_UnknownIDDispatchesToModern(t *testing.T) {
	props := sampleCVProps()
	unknown, err := RenderCV(CVTemplateID("legacy-2021"), props)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	modern, err := RenderCV(CVModern, props)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if unknown != modern {
		t.Fatal("unknown id did not dispatch to modern implementation")
	}
}

func TestRenderPortfolio_UnknownIDDispatchesToModern(t *testing.T) {
	props := samplePortfolioProps()
	unknown, err := RenderPortfolio(PortfolioTemplateID("old"), props)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	modern, err := RenderPortfolio(PortfolioModern, props)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if unknown != modern {
		t.Fatal("unknown id did not dispatch to modern implementation")
	}
}

func TestTemplateIDsCoverRegistries(t *testing.T) {
	if len(CVTemplateIDs()) != len(cvTemplates) {
		t.Fatalf("cv id list has %d entries, registry has %d", len(CVTemplateIDs()), len(cvTemplates))
	}
	for _, id := range CVTemplateIDs() {
		if _, ok := cvTemplates[id]; !ok {
			t.Errorf("cv id %q missing from registry", id)
		}
	}
	if len(PortfolioTemplateIDs()) != len(portfolioTemplates) {
		t.Fatalf("portfolio id list has %d entries, registry has %d", len(PortfolioTemplateIDs()), len(portfolioTemplates))
	}
	for _, id := range PortfolioTemplateIDs() {
		if _, ok := portfolioTemplates[id]; !ok {
			t.Errorf("portfolio id %q missing from registry", id)
		}
	}
}

func TestWrapPage(t *testing.T) {
	body, err := RenderCV(CVModern, sampleCVProps())
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	page, err := WrapPage("Ana Souza", body, LocalePT, nil)
	if err != nil {
		t.Fatalf("wrap failed: %v", err)
	}
	if !strings.HasPrefix(page, "<!DOCTYPE html>") {
		t.Fatal("page shell missing doctype")
	}
	if !strings.Contains(page, `lang="pt"`) {
		t.Fatal("page shell missing lang attribute")
	}
	if !strings.Contains(page, "Ana Souza") {
		t.Fatal("page shell missing body content")
	}
}
