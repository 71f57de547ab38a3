package render

import (
	"fmt"
	"strings"
	"testing"
)

func sampleCVProps() CVProps {
	return CVProps{
		Profile: Profile{
			Name:     "Ana Souza",
			Headline: "Engenheira de Software",
			Bio:      "Dez anos construindo sistemas distribuídos.",
			Email:    "ana@example.com",
			Phone:    "+351 900 000 000",
			Location: "Lisboa",
			Skills:   []string{"Go", "Postgres", "Redis"},
			Education: []EducationRecord{
				{Institution: "IST", Degree: "Engenharia Informática", StartYear: "2010", EndYear: "2014"},
			},
		},
		Experiences: []Experience{
			{ID: "e1", Title: "Staff Engineer", Company: "Acme", Period: "2020 – 2024", Description: "Plataforma de pagamentos."},
		},
		Projects: []Project{
			{ID: "p1", Title: "folio-cli", Description: "Gerador de portfólios em linha de comando."},
		},
		Articles: []Article{
			{ID: "a1", Title: "Go em produção", Publication: "dev.to"},
		},
		Locale: LocalePT,
	}
}

// 空档案（全部可选字段缺失、列表为空）必须在所有模板下渲染成功，
// 并逐项落到占位串。
func TestRenderCV_EmptyProfileAllTemplates(t *testing.T) {
	for _, locale := range allLocales {
		for _, id := range CVTemplateIDs() {
			t.Run(fmt.Sprintf("%s_%s", id, locale), func(t *testing.T) {
				out, err := RenderCV(id, CVProps{Locale: locale})
				if err != nil {
					t.Fatalf("render failed: %v", err)
				}
				if !strings.Contains(out, namePlaceholder) {
					t.Error("output missing name placeholder")
				}
				if !strings.Contains(out, bioPrompt(locale)) {
					t.Error("output missing bio prompt")
				}
				if !strings.Contains(out, CVLabelsFor(locale).Summary) {
					t.Error("output missing summary label")
				}
				// 空列表不允许渲染出空分节标题
				for _, label := range []string{
					CVLabelsFor(locale).Experience,
					CVLabelsFor(locale).Projects,
					CVLabelsFor(locale).Articles,
					CVLabelsFor(locale).Skills,
					CVLabelsFor(locale).Education,
				} {
					if strings.Contains(out, ">"+label+"<") {
						t.Errorf("empty section %q still rendered", label)
					}
				}
			})
		}
	}
}

func TestRenderCV_FullProfileAllTemplates(t *testing.T) {
	props := sampleCVProps()
	for _, id := range CVTemplateIDs() {
		out, err := RenderCV(id, props)
		if err != nil {
			t.Fatalf("%s: render failed: %v", id, err)
		}
		for _, want := range []string{"Ana Souza", "Staff Engineer", "folio-cli", "Go em produção", "2010 – 2014"} {
			if !strings.Contains(out, want) {
				t.Errorf("%s: output missing %q", id, want)
			}
		}
	}
}

// 列表超过模板上限时只渲染前 cap 条，且保持原有顺序。
func TestRenderCV_ExperienceCapKeepsOrder(t *testing.T) {
	props := sampleCVProps()
	props.Experiences = nil
	for i := 0; i < 10; i++ {
		props.Experiences = append(props.Experiences, Experience{
			ID:    fmt.Sprintf("e%d", i),
			Title: fmt.Sprintf("Cargo %02d", i),
		})
	}

	// creativeAccent 的上限是 2，便于断言
	out, err := RenderCV(CVCreativeAccent, props)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if !strings.Contains(out, "Cargo 00") || !strings.Contains(out, "Cargo 01") {
		t.Fatal("head of experience list missing")
	}
	if strings.Contains(out, "Cargo 02") {
		t.Fatal("experience beyond template cap rendered")
	}
	if strings.Index(out, "Cargo 00") > strings.Index(out, "Cargo 01") {
		t.Fatal("experience order not preserved")
	}
}

func TestRenderCV_SkillCap(t *testing.T) {
	props := sampleCVProps()
	props.Profile.Skills = nil
	for i := 0; i < 20; i++ {
		props.Profile.Skills = append(props.Profile.Skills, fmt.Sprintf("skill-%02d", i))
	}
	out, err := RenderCV(CVMinimal, props) // 上限 8
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if !strings.Contains(out, "skill-07") {
		t.Fatal("skill within cap missing")
	}
	if strings.Contains(out, "skill-08") {
		t.Fatal("skill beyond cap rendered")
	}
}

func TestRenderCV_PhotoGating(t *testing.T) {
	hide := false
	props := sampleCVProps()
	props.Profile.PhotoURL = "https://cdn.example/ana.png"
	props.Profile.ShowPhoto = &hide

	out, err := RenderCV(CVModern, props)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if strings.Contains(out, "cdn.example/ana.png") {
		t.Fatal("photo rendered although show flag is false")
	}
	if !strings.Contains(out, ">AS<") {
		t.Fatal("initials badge missing when photo hidden")
	}
}

func TestRenderCV_TruncatesLongDescription(t *testing.T) {
	props := sampleCVProps()
	props.Experiences[0].Description = strings.Repeat("x", 500)
	out, err := RenderCV(CVCorporate, props) // 预算 120
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if !strings.Contains(out, "…") {
		t.Fatal("long description not truncated with ellipsis")
	}
	if strings.Contains(out, strings.Repeat("x", 200)) {
		t.Fatal("description rendered beyond budget")
	}
}

func TestRenderCV_HeadlineFallbackLocalized(t *testing.T) {
	props := CVProps{Locale: LocaleES}
	out, err := RenderCV(CVMinimalElegant, props)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if !strings.Contains(out, headlineFallback(LocaleES, 1)) {
		t.Fatal("localized headline fallback missing")
	}
}
