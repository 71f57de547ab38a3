package render

import "html/template"

type portfolioTemplate struct {
	policy portfolioPolicy
	tmpl   *template.Template
}

func (t portfolioTemplate) render(props PortfolioProps) (string, error) {
	return executeTemplate(t.tmpl, buildPortfolioView(props, t.policy))
}

// modern：公开页默认版式，头部卡片 + 项目网格。
const portfolioModernHTML = `
<div class="pf pf-modern" style="font-family:'{{.FontFamily}}',sans-serif;background:{{.Palette.Background | safeCSS}};color:#1b1b26;">
  <header style="background:{{.Palette.Primary | safeCSS}};color:#fff;padding:48px 32px;text-align:center;">
    {{if .ShowPhoto}}
      <img src="{{.PhotoURL | safeURL}}" alt="{{.Name}}" style="width:120px;height:120px;border-radius:50%;object-fit:cover;" />
    {{else}}
      <div class="pf-initials" style="width:120px;height:120px;border-radius:50%;margin:0 auto;background:{{.Palette.Accent | safeCSS}};display:flex;align-items:center;justify-content:center;font-size:40px;">{{.Initials}}</div>
    {{end}}
    <h1 style="margin:16px 0 0;">{{.Name}}</h1>
    <p style="margin:6px 0 0;opacity:.85;">{{.Headline}}</p>
    {{if .Social}}
    <nav class="pf-social">
      {{range .Social}}<a href="{{.URL | safeURL}}" style="color:#fff;margin:0 8px;">{{.Name}}</a>{{end}}
    </nav>
    {{end}}
  </header>
  <main style="max-width:920px;margin:0 auto;padding:32px 24px;">
    <section>
      <h2 style="color:{{.Palette.Secondary | safeCSS}};">{{.Labels.About}}</h2>
      <p>{{.Bio}}</p>
    </section>
    {{if .Projects}}
    <section>
      <h2 style="color:{{.Palette.Secondary | safeCSS}};">{{.Labels.Projects}}</h2>
      <div style="display:grid;grid-template-columns:repeat(2,1fr);gap:16px;">
        {{range .Projects}}
        <article style="border:1px solid #e6e2ee;border-radius:10px;padding:16px;">
          <strong>{{.Title}}</strong>
          <p>{{.Description}}</p>
          {{if .LinkURL}}<a href="{{.LinkURL | safeURL}}" style="color:{{$.Palette.Accent | safeCSS}};">{{$.Labels.ViewProject}}</a>{{end}}
        </article>
        {{end}}
      </div>
    </section>
    {{end}}
    {{if .Experiences}}
    <section>
      <h2 style="color:{{.Palette.Secondary | safeCSS}};">{{.Labels.Experience}}</h2>
      {{range .Experiences}}<article><strong>{{.Title}}</strong>{{if .Company}} · {{.Company}}{{end}}{{if .Period}} <em>({{.Period}})</em>{{end}}{{if .Description}}<p>{{.Description}}</p>{{end}}</article>{{end}}
    </section>
    {{end}}
    {{if .Videos}}
    <section>
      <h2 style="color:{{.Palette.Secondary | safeCSS}};">{{.Labels.Videos}}</h2>
      {{range .Videos}}<article><strong>{{.Title}}</strong>{{if .Platform}} <span style="color:{{$.Palette.Accent | safeCSS}};">[{{.Platform}}]</span>{{end}}<p>{{.Description}}</p></article>{{end}}
    </section>
    {{end}}
    {{if .Articles}}
    <section>
      <h2 style="color:{{.Palette.Secondary | safeCSS}};">{{.Labels.Articles}}</h2>
      {{range .Articles}}<article><strong>{{.Title}}</strong>{{if .Publication}} — {{.Publication}}{{end}}{{if .Summary}}<p>{{.Summary}}</p>{{end}}</article>{{end}}
    </section>
    {{end}}
    {{if .Contact}}
    <section>
      <h2 style="color:{{.Palette.Secondary | safeCSS}};">{{.Labels.Contact}}</h2>
      <ul>{{range .Contact}}<li>{{.}}</li>{{end}}</ul>
    </section>
    {{end}}
  </main>
</div>
`

// minimal：窄幅单栏，不裁剪，只留必要信息。
const portfolioMinimalHTML = `
<div class="pf pf-minimal" style="font-family:'{{.FontFamily}}',sans-serif;background:{{.Palette.Background | safeCSS}};color:#26262c;max-width:680px;margin:0 auto;padding:48px 20px;">
  <header>
    <h1 style="margin:0;">{{.Name}}</h1>
    <p style="margin:4px 0 0;color:{{.Palette.Primary | safeCSS}};">{{.Headline}}</p>
    {{if .Social}}<nav class="pf-social">{{range .Social}}<a href="{{.URL | safeURL}}" style="color:{{$.Palette.Accent | safeCSS}};margin-right:12px;">{{.Name}}</a>{{end}}</nav>{{end}}
  </header>
  <section>
    <h2>{{.Labels.About}}</h2>
    <p>{{.Bio}}</p>
  </section>
  {{if .Projects}}
  <section>
    <h2>{{.Labels.Projects}}</h2>
    {{range .Projects}}
    <article style="border-bottom:1px solid #eee;padding:10px 0;">
      <strong>{{.Title}}</strong>
      <p>{{.Description}}</p>
      {{if .LinkURL}}<a href="{{.LinkURL | safeURL}}" style="color:{{$.Palette.Accent | safeCSS}};">{{$.Labels.ViewProject}}</a>{{end}}
    </article>
    {{end}}
  </section>
  {{end}}
  {{if .Experiences}}
  <section>
    <h2>{{.Labels.Experience}}</h2>
    {{range .Experiences}}<p><strong>{{.Title}}</strong>{{if .Company}}, {{.Company}}{{end}}{{if .Period}} ({{.Period}}){{end}}</p>{{end}}
  </section>
  {{end}}
  {{if .Articles}}
  <section>
    <h2>{{.Labels.Articles}}</h2>
    {{range .Articles}}<p><strong>{{.Title}}</strong>{{if .Publication}} — {{.Publication}}{{end}}</p>{{end}}
  </section>
  {{end}}
  {{if .Videos}}
  <section>
    <h2>{{.Labels.Videos}}</h2>
    {{range .Videos}}<p><strong>{{.Title}}</strong>{{if .Platform}} [{{.Platform}}]{{end}}</p>{{end}}
  </section>
  {{end}}
  {{if .Contact}}
  <section>
    <h2>{{.Labels.Contact}}</h2>
    <p>{{range $i, $c := .Contact}}{{if $i}} · {{end}}{{$c}}{{end}}</p>
  </section>
  {{end}}
</div>
`

// dark：深色底，Background 仅用于卡片内衬。
const portfolioDarkHTML = `
<div class="pf pf-dark" style="font-family:'{{.FontFamily}}',sans-serif;background:#12121a;color:#e8e6f0;">
  <header style="padding:56px 32px;text-align:center;">
    {{if .ShowPhoto}}
      <img src="{{.PhotoURL | safeURL}}" alt="{{.Name}}" style="width:112px;height:112px;border-radius:50%;object-fit:cover;border:3px solid {{.Palette.Accent | safeCSS}};" />
    {{else}}
      <div class="pf-initials" style="width:112px;height:112px;border-radius:50%;margin:0 auto;border:3px solid {{.Palette.Accent | safeCSS}};color:{{.Palette.Accent | safeCSS}};display:flex;align-items:center;justify-content:center;font-size:38px;">{{.Initials}}</div>
    {{end}}
    <h1 style="margin:16px 0 0;color:#fff;">{{.Name}}</h1>
    <p style="margin:6px 0 0;color:{{.Palette.Accent | safeCSS}};">{{.Headline}}</p>
    {{if .Social}}<nav class="pf-social">{{range .Social}}<a href="{{.URL | safeURL}}" style="color:#bdb8d4;margin:0 8px;">{{.Name}}</a>{{end}}</nav>{{end}}
  </header>
  <main style="max-width:880px;margin:0 auto;padding:0 24px 48px;">
    <section>
      <h2 style="color:{{.Palette.Accent | safeCSS}};">{{.Labels.About}}</h2>
      <p>{{.Bio}}</p>
    </section>
    {{if .Projects}}
    <section>
      <h2 style="color:{{.Palette.Accent | safeCSS}};">{{.Labels.Projects}}</h2>
      {{range .Projects}}
      <article style="background:#1c1c28;border-radius:10px;padding:16px;margin-bottom:12px;">
        <strong style="color:#fff;">{{.Title}}</strong>
        <p>{{.Description}}</p>
        {{if .LinkURL}}<a href="{{.LinkURL | safeURL}}" style="color:{{$.Palette.Accent | safeCSS}};">{{$.Labels.ViewProject}}</a>{{end}}
      </article>
      {{end}}
    </section>
    {{end}}
    {{if .Videos}}
    <section>
      <h2 style="color:{{.Palette.Accent | safeCSS}};">{{.Labels.Videos}}</h2>
      {{range .Videos}}<article style="background:#1c1c28;border-radius:10px;padding:12px;margin-bottom:10px;"><strong style="color:#fff;">{{.Title}}</strong>{{if .Platform}} <span>[{{.Platform}}]</span>{{end}}<p>{{.Description}}</p></article>{{end}}
    </section>
    {{end}}
    {{if .Experiences}}
    <section>
      <h2 style="color:{{.Palette.Accent | safeCSS}};">{{.Labels.Experience}}</h2>
      {{range .Experiences}}<article><strong style="color:#fff;">{{.Title}}</strong>{{if .Company}} · {{.Company}}{{end}}{{if .Period}} <em>({{.Period}})</em>{{end}}{{if .Description}}<p>{{.Description}}</p>{{end}}</article>{{end}}
    </section>
    {{end}}
    {{if .Articles}}
    <section>
      <h2 style="color:{{.Palette.Accent | safeCSS}};">{{.Labels.Articles}}</h2>
      {{range .Articles}}<article><strong style="color:#fff;">{{.Title}}</strong>{{if .Publication}} — {{.Publication}}{{end}}</article>{{end}}
    </section>
    {{end}}
    {{if .Contact}}
    <section>
      <h2 style="color:{{.Palette.Accent | safeCSS}};">{{.Labels.Contact}}</h2>
      <ul>{{range .Contact}}<li>{{.}}</li>{{end}}</ul>
    </section>
    {{end}}
  </main>
</div>
`

// gradient：主/强调色大面积渐变头部，适合视觉向的作品集。
const portfolioGradientHTML = `
<div class="pf pf-gradient" style="font-family:'{{.FontFamily}}',sans-serif;background:{{.Palette.Background | safeCSS}};color:#1f1f2c;">
  <header style="background:linear-gradient(135deg,{{.Palette.Primary | safeCSS}} 0%,{{.Palette.Accent | safeCSS}} 100%);color:#fff;padding:64px 32px;">
    <div style="max-width:880px;margin:0 auto;display:flex;align-items:center;gap:28px;">
      {{if .ShowPhoto}}
        <img src="{{.PhotoURL | safeURL}}" alt="{{.Name}}" style="width:128px;height:128px;border-radius:24px;object-fit:cover;" />
      {{else}}
        <div class="pf-initials" style="width:128px;height:128px;border-radius:24px;background:rgba(255,255,255,.22);display:flex;align-items:center;justify-content:center;font-size:44px;">{{.Initials}}</div>
      {{end}}
      <div>
        <h1 style="margin:0;font-size:36px;">{{.Name}}</h1>
        <p style="margin:8px 0 0;font-size:18px;opacity:.9;">{{.Headline}}</p>
        {{if .Social}}<nav class="pf-social">{{range .Social}}<a href="{{.URL | safeURL}}" style="color:#fff;margin-right:14px;">{{.Name}}</a>{{end}}</nav>{{end}}
      </div>
    </div>
  </header>
  <main style="max-width:880px;margin:0 auto;padding:36px 24px;">
    <section>
      <h2 style="color:{{.Palette.Primary | safeCSS}};">{{.Labels.About}}</h2>
      <p>{{.Bio}}</p>
    </section>
    {{if .Projects}}
    <section>
      <h2 style="color:{{.Palette.Primary | safeCSS}};">{{.Labels.Projects}}</h2>
      <div style="display:grid;grid-template-columns:repeat(3,1fr);gap:14px;">
        {{range .Projects}}
        <article style="border-radius:12px;padding:14px;background:linear-gradient(160deg,#faf8fd,#f1ecf8);">
          <strong>{{.Title}}</strong>
          <p>{{.Description}}</p>
          {{if .LinkURL}}<a href="{{.LinkURL | safeURL}}" style="color:{{$.Palette.Accent | safeCSS}};">{{$.Labels.ViewProject}}</a>{{end}}
        </article>
        {{end}}
      </div>
    </section>
    {{end}}
    {{if .Videos}}
    <section>
      <h2 style="color:{{.Palette.Primary | safeCSS}};">{{.Labels.Videos}}</h2>
      {{range .Videos}}<article><strong>{{.Title}}</strong>{{if .Platform}} <span style="color:{{$.Palette.Accent | safeCSS}};">[{{.Platform}}]</span>{{end}}<p>{{.Description}}</p></article>{{end}}
    </section>
    {{end}}
    {{if .Experiences}}
    <section>
      <h2 style="color:{{.Palette.Primary | safeCSS}};">{{.Labels.Experience}}</h2>
      {{range .Experiences}}<article><strong>{{.Title}}</strong>{{if .Company}} · {{.Company}}{{end}}{{if .Period}} <em>({{.Period}})</em>{{end}}{{if .Description}}<p>{{.Description}}</p>{{end}}</article>{{end}}
    </section>
    {{end}}
    {{if .Articles}}
    <section>
      <h2 style="color:{{.Palette.Primary | safeCSS}};">{{.Labels.Articles}}</h2>
      {{range .Articles}}<article><strong>{{.Title}}</strong>{{if .Publication}} — {{.Publication}}{{end}}{{if .Summary}}<p>{{.Summary}}</p>{{end}}</article>{{end}}
    </section>
    {{end}}
    {{if .Contact}}
    <section>
      <h2 style="color:{{.Palette.Primary | safeCSS}};">{{.Labels.Contact}}</h2>
      <ul>{{range .Contact}}<li>{{.}}</li>{{end}}</ul>
    </section>
    {{end}}
  </main>
</div>
`

var portfolioTemplates = map[PortfolioTemplateID]portfolioTemplate{
	PortfolioModern: {
		policy: portfolioPolicy{maxExperiences: 4, maxProjects: 6, maxVideos: 3, maxArticles: 4, textBudget: 240, headlineVariant: 0},
		tmpl:   mustParse("pf-modern", portfolioModernHTML),
	},
	PortfolioMinimal: {
		policy: portfolioPolicy{maxExperiences: 3, maxProjects: 4, maxVideos: 2, maxArticles: 3, textBudget: 0, headlineVariant: 1},
		tmpl:   mustParse("pf-minimal", portfolioMinimalHTML),
	},
	PortfolioDark: {
		policy: portfolioPolicy{maxExperiences: 4, maxProjects: 5, maxVideos: 4, maxArticles: 3, textBudget: 200, headlineVariant: 2},
		tmpl:   mustParse("pf-dark", portfolioDarkHTML),
	},
	PortfolioGradient: {
		policy: portfolioPolicy{maxExperiences: 3, maxProjects: 6, maxVideos: 3, maxArticles: 3, textBudget: 160, headlineVariant: 2},
		tmpl:   mustParse("pf-gradient", portfolioGradientHTML),
	},
}
