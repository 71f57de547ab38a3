package render

import "html/template"

// cvTemplate 将一份展示策略与一个版式模板绑定。
// 渲染是纯函数：同样的输入永远得到同样的片段。
type cvTemplate struct {
	policy cvPolicy
	tmpl   *template.Template
}

func (t cvTemplate) render(props CVProps) (string, error) {
	return executeTemplate(t.tmpl, buildCVView(props, t.policy))
}

// modern：左侧栏（照片/联系/技能/formação）+ 右侧主栏。
const cvModernHTML = `
<div class="cv cv-modern" style="font-family:'{{.FontFamily}}',sans-serif;background:{{.Palette.Background | safeCSS}};color:#1c1c28;display:flex;">
  <aside style="width:32%;background:{{.Palette.Primary | safeCSS}};color:#fff;padding:28px 20px;">
    {{if .ShowPhoto}}
      <img src="{{.PhotoURL | safeURL}}" alt="{{.Name}}" style="width:112px;height:112px;border-radius:50%;object-fit:cover;" />
    {{else}}
      <div class="cv-initials" style="width:112px;height:112px;border-radius:50%;background:{{.Palette.Accent | safeCSS}};display:flex;align-items:center;justify-content:center;font-size:36px;">{{.Initials}}</div>
    {{end}}
    {{if .Contact}}
    <section>
      <h3>{{.Labels.Contact}}</h3>
      <ul>{{range .Contact}}<li>{{.}}</li>{{end}}</ul>
    </section>
    {{end}}
    {{if .Skills}}
    <section>
      <h3>{{.Labels.Skills}}</h3>
      <ul class="cv-skills">{{range .Skills}}<li>{{.}}</li>{{end}}</ul>
    </section>
    {{end}}
    {{if .Education}}
    <section>
      <h3>{{.Labels.Education}}</h3>
      {{range .Education}}
      <div class="cv-edu">
        <strong>{{.Institution}}</strong>
        <span>{{.Degree}}</span>
        {{if .Period}}<em>{{.Period}}</em>{{end}}
      </div>
      {{end}}
    </section>
    {{end}}
  </aside>
  <main style="width:68%;padding:28px 24px;">
    <header>
      <h1 style="color:{{.Palette.Secondary | safeCSS}};margin:0;">{{.Name}}</h1>
      <h2 style="color:{{.Palette.Accent | safeCSS}};font-weight:400;margin:4px 0 16px;">{{.Headline}}</h2>
    </header>
    <section>
      <h3 style="color:{{.Palette.Primary | safeCSS}};">{{.Labels.Summary}}</h3>
      <p>{{.Bio}}</p>
    </section>
    {{if .Experiences}}
    <section>
      <h3 style="color:{{.Palette.Primary | safeCSS}};">{{.Labels.Experience}}</h3>
      {{range .Experiences}}
      <article class="cv-exp">
        <strong>{{.Title}}</strong>{{if .Company}} · <span>{{.Company}}</span>{{end}}
        {{if .Period}}<em style="float:right;">{{.Period}}</em>{{end}}
        {{if .Description}}<p>{{.Description}}</p>{{end}}
      </article>
      {{end}}
    </section>
    {{end}}
    {{if .Projects}}
    <section>
      <h3 style="color:{{.Palette.Primary | safeCSS}};">{{.Labels.Projects}}</h3>
      {{range .Projects}}
      <article class="cv-proj">
        <strong>{{.Title}}</strong>
        <p>{{.Description}}</p>
      </article>
      {{end}}
    </section>
    {{end}}
    {{if .Articles}}
    <section>
      <h3 style="color:{{.Palette.Primary | safeCSS}};">{{.Labels.Articles}}</h3>
      {{range .Articles}}
      <article class="cv-article">
        <strong>{{.Title}}</strong>{{if .Publication}} — <span>{{.Publication}}</span>{{end}}
        {{if .Summary}}<p>{{.Summary}}</p>{{end}}
      </article>
      {{end}}
    </section>
    {{end}}
  </main>
</div>
`

// minimal：单栏细线版式，不裁剪长文本。
const cvMinimalHTML = `
<div class="cv cv-minimal" style="font-family:'{{.FontFamily}}',sans-serif;background:{{.Palette.Background | safeCSS}};color:#222;padding:36px;">
  <header style="border-bottom:1px solid {{.Palette.Secondary | safeCSS}};padding-bottom:12px;">
    <h1 style="margin:0;">{{.Name}}</h1>
    <p style="margin:2px 0 0;color:{{.Palette.Primary | safeCSS}};">{{.Headline}}</p>
    {{if .Contact}}<p class="cv-contact">{{range $i, $c := .Contact}}{{if $i}} · {{end}}{{$c}}{{end}}</p>{{end}}
  </header>
  <section>
    <h3>{{.Labels.Summary}}</h3>
    <p>{{.Bio}}</p>
  </section>
  {{if .Experiences}}
  <section>
    <h3>{{.Labels.Experience}}</h3>
    {{range .Experiences}}
    <article>
      <strong>{{.Title}}</strong>{{if .Company}}, {{.Company}}{{end}}{{if .Period}} ({{.Period}}){{end}}
      {{if .Description}}<p>{{.Description}}</p>{{end}}
    </article>
    {{end}}
  </section>
  {{end}}
  {{if .Projects}}
  <section>
    <h3>{{.Labels.Projects}}</h3>
    {{range .Projects}}<article><strong>{{.Title}}</strong><p>{{.Description}}</p></article>{{end}}
  </section>
  {{end}}
  {{if .Articles}}
  <section>
    <h3>{{.Labels.Articles}}</h3>
    {{range .Articles}}<article><strong>{{.Title}}</strong>{{if .Publication}} — {{.Publication}}{{end}}</article>{{end}}
  </section>
  {{end}}
  {{if .Skills}}
  <section>
    <h3>{{.Labels.Skills}}</h3>
    <p>{{range $i, $s := .Skills}}{{if $i}} · {{end}}{{$s}}{{end}}</p>
  </section>
  {{end}}
  {{if .Education}}
  <section>
    <h3>{{.Labels.Education}}</h3>
    {{range .Education}}<p><strong>{{.Institution}}</strong>{{if .Degree}} — {{.Degree}}{{end}}{{if .Period}} ({{.Period}}){{end}}</p>{{end}}
  </section>
  {{end}}
</div>
`

// creative：渐变横幅头部 + 技能徽标。
const cvCreativeHTML = `
<div class="cv cv-creative" style="font-family:'{{.FontFamily}}',sans-serif;background:{{.Palette.Background | safeCSS}};color:#1f1f2e;">
  <header style="background:linear-gradient(120deg,{{.Palette.Primary | safeCSS}},{{.Palette.Accent | safeCSS}});color:#fff;padding:32px;display:flex;align-items:center;gap:20px;">
    {{if .ShowPhoto}}
      <img src="{{.PhotoURL | safeURL}}" alt="{{.Name}}" style="width:96px;height:96px;border-radius:16px;object-fit:cover;" />
    {{else}}
      <div class="cv-initials" style="width:96px;height:96px;border-radius:16px;background:rgba(255,255,255,.25);display:flex;align-items:center;justify-content:center;font-size:32px;">{{.Initials}}</div>
    {{end}}
    <div>
      <h1 style="margin:0;">{{.Name}}</h1>
      <p style="margin:4px 0 0;">{{.Headline}}</p>
      {{if .Contact}}<p class="cv-contact">{{range $i, $c := .Contact}}{{if $i}} · {{end}}{{$c}}{{end}}</p>{{end}}
    </div>
  </header>
  <main style="padding:24px 32px;">
    <p class="cv-bio">{{.Bio}}</p>
    {{if .Skills}}
    <section>
      <h3 style="color:{{.Palette.Primary | safeCSS}};">{{.Labels.Skills}}</h3>
      <div class="cv-skills">{{range .Skills}}<span style="background:{{$.Palette.Secondary | safeCSS}};color:#fff;border-radius:12px;padding:2px 10px;margin:2px;display:inline-block;">{{.}}</span>{{end}}</div>
    </section>
    {{end}}
    {{if .Projects}}
    <section>
      <h3 style="color:{{.Palette.Primary | safeCSS}};">{{.Labels.Projects}}</h3>
      <div style="display:grid;grid-template-columns:1fr 1fr;gap:12px;">
        {{range .Projects}}<article style="border:1px solid {{$.Palette.Accent | safeCSS}};border-radius:8px;padding:10px;"><strong>{{.Title}}</strong><p>{{.Description}}</p></article>{{end}}
      </div>
    </section>
    {{end}}
    {{if .Experiences}}
    <section>
      <h3 style="color:{{.Palette.Primary | safeCSS}};">{{.Labels.Experience}}</h3>
      {{range .Experiences}}<article><strong>{{.Title}}</strong>{{if .Company}} · {{.Company}}{{end}}{{if .Period}} <em>({{.Period}})</em>{{end}}{{if .Description}}<p>{{.Description}}</p>{{end}}</article>{{end}}
    </section>
    {{end}}
    {{if .Articles}}
    <section>
      <h3 style="color:{{.Palette.Primary | safeCSS}};">{{.Labels.Articles}}</h3>
      {{range .Articles}}<article><strong>{{.Title}}</strong>{{if .Publication}} — {{.Publication}}{{end}}</article>{{end}}
    </section>
    {{end}}
    {{if .Education}}
    <section>
      <h3 style="color:{{.Palette.Primary | safeCSS}};">{{.Labels.Education}}</h3>
      {{range .Education}}<p><strong>{{.Institution}}</strong>{{if .Degree}} — {{.Degree}}{{end}}{{if .Period}} ({{.Period}}){{end}}</p>{{end}}
    </section>
    {{end}}
  </main>
</div>
`

// executive：衬线字体、居中头部的保守版式，适合较长的正文。
const cvExecutiveHTML = `
<div class="cv cv-executive" style="font-family:'{{.FontFamily}}',Georgia,serif;background:{{.Palette.Background | safeCSS}};color:#14141e;padding:40px;">
  <header style="text-align:center;border-bottom:3px double {{.Palette.Secondary | safeCSS}};padding-bottom:16px;">
    <h1 style="margin:0;letter-spacing:1px;">{{.Name}}</h1>
    <p style="margin:6px 0 0;color:{{.Palette.Primary | safeCSS}};">{{.Headline}}</p>
    {{if .Contact}}<p class="cv-contact">{{range $i, $c := .Contact}}{{if $i}} | {{end}}{{$c}}{{end}}</p>{{end}}
  </header>
  <section>
    <h3 style="text-transform:uppercase;letter-spacing:2px;">{{.Labels.Summary}}</h3>
    <p>{{.Bio}}</p>
  </section>
  {{if .Experiences}}
  <section>
    <h3 style="text-transform:uppercase;letter-spacing:2px;">{{.Labels.Experience}}</h3>
    {{range .Experiences}}
    <article>
      <strong>{{.Title}}</strong>{{if .Company}} — {{.Company}}{{end}}{{if .Period}}<em style="float:right;">{{.Period}}</em>{{end}}
      {{if .Description}}<p>{{.Description}}</p>{{end}}
    </article>
    {{end}}
  </section>
  {{end}}
  {{if .Education}}
  <section>
    <h3 style="text-transform:uppercase;letter-spacing:2px;">{{.Labels.Education}}</h3>
    {{range .Education}}<p><strong>{{.Institution}}</strong>{{if .Degree}} — {{.Degree}}{{end}}{{if .Period}} ({{.Period}}){{end}}</p>{{end}}
  </section>
  {{end}}
  {{if .Projects}}
  <section>
    <h3 style="text-transform:uppercase;letter-spacing:2px;">{{.Labels.Projects}}</h3>
    {{range .Projects}}<article><strong>{{.Title}}</strong><p>{{.Description}}</p></article>{{end}}
  </section>
  {{end}}
  {{if .Articles}}
  <section>
    <h3 style="text-transform:uppercase;letter-spacing:2px;">{{.Labels.Articles}}</h3>
    {{range .Articles}}<article><strong>{{.Title}}</strong>{{if .Publication}} — {{.Publication}}{{end}}{{if .Summary}}<p>{{.Summary}}</p>{{end}}</article>{{end}}
  </section>
  {{end}}
  {{if .Skills}}
  <section>
    <h3 style="text-transform:uppercase;letter-spacing:2px;">{{.Labels.Skills}}</h3>
    <p>{{range $i, $s := .Skills}}{{if $i}}, {{end}}{{$s}}{{end}}</p>
  </section>
  {{end}}
</div>
`

// modernClassic：modern 的镜像变体，侧栏在右。
const cvModernClassicHTML = `
<div class="cv cv-modern-classic" style="font-family:'{{.FontFamily}}',sans-serif;background:{{.Palette.Background | safeCSS}};color:#1c1c28;display:flex;">
  <main style="width:66%;padding:30px 26px;">
    <header style="border-left:6px solid {{.Palette.Accent | safeCSS}};padding-left:14px;">
      <h1 style="margin:0;color:{{.Palette.Secondary | safeCSS}};">{{.Name}}</h1>
      <h2 style="margin:4px 0 0;font-weight:400;color:{{.Palette.Primary | safeCSS}};">{{.Headline}}</h2>
    </header>
    <section>
      <h3>{{.Labels.Summary}}</h3>
      <p>{{.Bio}}</p>
    </section>
    {{if .Experiences}}
    <section>
      <h3>{{.Labels.Experience}}</h3>
      {{range .Experiences}}<article><strong>{{.Title}}</strong>{{if .Company}} · {{.Company}}{{end}}{{if .Period}} <em>({{.Period}})</em>{{end}}{{if .Description}}<p>{{.Description}}</p>{{end}}</article>{{end}}
    </section>
    {{end}}
    {{if .Projects}}
    <section>
      <h3>{{.Labels.Projects}}</h3>
      {{range .Projects}}<article><strong>{{.Title}}</strong><p>{{.Description}}</p></article>{{end}}
    </section>
    {{end}}
    {{if .Articles}}
    <section>
      <h3>{{.Labels.Articles}}</h3>
      {{range .Articles}}<article><strong>{{.Title}}</strong>{{if .Publication}} — {{.Publication}}{{end}}</article>{{end}}
    </section>
    {{end}}
  </main>
  <aside style="width:34%;background:#f4f2f8;padding:30px 20px;">
    {{if .ShowPhoto}}
      <img src="{{.PhotoURL | safeURL}}" alt="{{.Name}}" style="width:104px;height:104px;border-radius:50%;object-fit:cover;" />
    {{else}}
      <div class="cv-initials" style="width:104px;height:104px;border-radius:50%;background:{{.Palette.Primary | safeCSS}};color:#fff;display:flex;align-items:center;justify-content:center;font-size:34px;">{{.Initials}}</div>
    {{end}}
    {{if .Contact}}
    <section><h3 style="color:{{.Palette.Secondary | safeCSS}};">{{.Labels.Contact}}</h3><ul>{{range .Contact}}<li>{{.}}</li>{{end}}</ul></section>
    {{end}}
    {{if .Skills}}
    <section><h3 style="color:{{.Palette.Secondary | safeCSS}};">{{.Labels.Skills}}</h3><ul>{{range .Skills}}<li>{{.}}</li>{{end}}</ul></section>
    {{end}}
    {{if .Education}}
    <section><h3 style="color:{{.Palette.Secondary | safeCSS}};">{{.Labels.Education}}</h3>{{range .Education}}<div class="cv-edu"><strong>{{.Institution}}</strong><span>{{.Degree}}</span>{{if .Period}}<em>{{.Period}}</em>{{end}}</div>{{end}}</section>
    {{end}}
  </aside>
</div>
`

// minimalElegant：单栏、字距拉开的小标题，不裁剪长文本。
const cvMinimalElegantHTML = `
<div class="cv cv-minimal-elegant" style="font-family:'{{.FontFamily}}',sans-serif;background:{{.Palette.Background | safeCSS}};color:#26262e;padding:44px 48px;">
  <header style="text-align:center;">
    {{if .ShowPhoto}}
      <img src="{{.PhotoURL | safeURL}}" alt="{{.Name}}" style="width:88px;height:88px;border-radius:50%;object-fit:cover;" />
    {{else}}
      <div class="cv-initials" style="width:88px;height:88px;border-radius:50%;margin:0 auto;border:2px solid {{.Palette.Accent | safeCSS}};color:{{.Palette.Primary | safeCSS}};display:flex;align-items:center;justify-content:center;font-size:28px;">{{.Initials}}</div>
    {{end}}
    <h1 style="margin:12px 0 0;letter-spacing:4px;text-transform:uppercase;">{{.Name}}</h1>
    <p style="margin:4px 0 0;color:{{.Palette.Accent | safeCSS}};letter-spacing:2px;">{{.Headline}}</p>
    {{if .Contact}}<p class="cv-contact">{{range $i, $c := .Contact}}{{if $i}} — {{end}}{{$c}}{{end}}</p>{{end}}
  </header>
  <section><h3 style="letter-spacing:3px;text-transform:uppercase;color:{{.Palette.Secondary | safeCSS}};">{{.Labels.Summary}}</h3><p>{{.Bio}}</p></section>
  {{if .Experiences}}
  <section>
    <h3 style="letter-spacing:3px;text-transform:uppercase;color:{{.Palette.Secondary | safeCSS}};">{{.Labels.Experience}}</h3>
    {{range .Experiences}}<article><strong>{{.Title}}</strong>{{if .Company}} · {{.Company}}{{end}}{{if .Period}} <em>({{.Period}})</em>{{end}}{{if .Description}}<p>{{.Description}}</p>{{end}}</article>{{end}}
  </section>
  {{end}}
  {{if .Projects}}
  <section>
    <h3 style="letter-spacing:3px;text-transform:uppercase;color:{{.Palette.Secondary | safeCSS}};">{{.Labels.Projects}}</h3>
    {{range .Projects}}<article><strong>{{.Title}}</strong><p>{{.Description}}</p></article>{{end}}
  </section>
  {{end}}
  {{if .Articles}}
  <section>
    <h3 style="letter-spacing:3px;text-transform:uppercase;color:{{.Palette.Secondary | safeCSS}};">{{.Labels.Articles}}</h3>
    {{range .Articles}}<article><strong>{{.Title}}</strong>{{if .Publication}} — {{.Publication}}{{end}}</article>{{end}}
  </section>
  {{end}}
  {{if .Skills}}
  <section><h3 style="letter-spacing:3px;text-transform:uppercase;color:{{.Palette.Secondary | safeCSS}};">{{.Labels.Skills}}</h3><p>{{range $i, $s := .Skills}}{{if $i}} · {{end}}{{$s}}{{end}}</p></section>
  {{end}}
  {{if .Education}}
  <section><h3 style="letter-spacing:3px;text-transform:uppercase;color:{{.Palette.Secondary | safeCSS}};">{{.Labels.Education}}</h3>{{range .Education}}<p><strong>{{.Institution}}</strong>{{if .Degree}} — {{.Degree}}{{end}}{{if .Period}} ({{.Period}}){{end}}</p>{{end}}</section>
  {{end}}
</div>
`

// corporate：顶栏 + 三栏密排，文本预算最紧。
const cvCorporateHTML = `
<div class="cv cv-corporate" style="font-family:'{{.FontFamily}}',sans-serif;background:{{.Palette.Background | safeCSS}};color:#181820;">
  <header style="background:{{.Palette.Secondary | safeCSS}};color:#fff;padding:20px 28px;display:flex;justify-content:space-between;align-items:center;">
    <div>
      <h1 style="margin:0;font-size:24px;">{{.Name}}</h1>
      <p style="margin:2px 0 0;color:{{.Palette.Accent | safeCSS}};">{{.Headline}}</p>
    </div>
    {{if .Contact}}<ul style="list-style:none;text-align:right;margin:0;padding:0;font-size:12px;">{{range .Contact}}<li>{{.}}</li>{{end}}</ul>{{end}}
  </header>
  <p class="cv-bio" style="padding:14px 28px 0;">{{.Bio}}</p>
  <main style="display:grid;grid-template-columns:1fr 1fr 1fr;gap:16px;padding:14px 28px 28px;">
    <section>
      {{if .Experiences}}
      <h3 style="border-bottom:2px solid {{.Palette.Primary | safeCSS}};">{{.Labels.Experience}}</h3>
      {{range .Experiences}}<article><strong>{{.Title}}</strong>{{if .Company}}<br/><span>{{.Company}}</span>{{end}}{{if .Period}}<br/><em>{{.Period}}</em>{{end}}{{if .Description}}<p>{{.Description}}</p>{{end}}</article>{{end}}
      {{end}}
      {{if .Education}}
      <h3 style="border-bottom:2px solid {{.Palette.Primary | safeCSS}};">{{.Labels.Education}}</h3>
      {{range .Education}}<p><strong>{{.Institution}}</strong>{{if .Degree}}<br/>{{.Degree}}{{end}}{{if .Period}}<br/><em>{{.Period}}</em>{{end}}</p>{{end}}
      {{end}}
    </section>
    <section>
      {{if .Projects}}
      <h3 style="border-bottom:2px solid {{.Palette.Primary | safeCSS}};">{{.Labels.Projects}}</h3>
      {{range .Projects}}<article><strong>{{.Title}}</strong><p>{{.Description}}</p></article>{{end}}
      {{end}}
      {{if .Articles}}
      <h3 style="border-bottom:2px solid {{.Palette.Primary | safeCSS}};">{{.Labels.Articles}}</h3>
      {{range .Articles}}<article><strong>{{.Title}}</strong>{{if .Publication}}<br/><span>{{.Publication}}</span>{{end}}</article>{{end}}
      {{end}}
    </section>
    <section>
      {{if .Skills}}
      <h3 style="border-bottom:2px solid {{.Palette.Primary | safeCSS}};">{{.Labels.Skills}}</h3>
      <ul>{{range .Skills}}<li>{{.}}</li>{{end}}</ul>
      {{end}}
    </section>
  </main>
</div>
`

// creativeAccent：左侧窄色条 + 大号首字母徽标，突出项目。
const cvCreativeAccentHTML = `
<div class="cv cv-creative-accent" style="font-family:'{{.FontFamily}}',sans-serif;background:{{.Palette.Background | safeCSS}};color:#1d1d2a;display:flex;">
  <aside style="width:14%;background:{{.Palette.Accent | safeCSS}};display:flex;align-items:flex-start;justify-content:center;padding-top:36px;">
    {{if .ShowPhoto}}
      <img src="{{.PhotoURL | safeURL}}" alt="{{.Name}}" style="width:72px;height:72px;border-radius:50%;object-fit:cover;" />
    {{else}}
      <div class="cv-initials" style="width:72px;height:72px;border-radius:50%;background:#fff;color:{{.Palette.Accent | safeCSS}};display:flex;align-items:center;justify-content:center;font-size:26px;font-weight:700;">{{.Initials}}</div>
    {{end}}
  </aside>
  <main style="width:86%;padding:32px 30px;">
    <header>
      <h1 style="margin:0;color:{{.Palette.Primary | safeCSS}};">{{.Name}}</h1>
      <p style="margin:4px 0 12px;color:{{.Palette.Secondary | safeCSS}};">{{.Headline}}</p>
      {{if .Contact}}<p class="cv-contact">{{range $i, $c := .Contact}}{{if $i}} · {{end}}{{$c}}{{end}}</p>{{end}}
    </header>
    <p class="cv-bio">{{.Bio}}</p>
    {{if .Projects}}
    <section>
      <h3 style="color:{{.Palette.Accent | safeCSS}};">{{.Labels.Projects}}</h3>
      <div style="display:grid;grid-template-columns:1fr 1fr;gap:10px;">
        {{range .Projects}}<article style="background:#faf7fc;border-radius:8px;padding:10px;"><strong>{{.Title}}</strong><p>{{.Description}}</p></article>{{end}}
      </div>
    </section>
    {{end}}
    {{if .Experiences}}
    <section>
      <h3 style="color:{{.Palette.Accent | safeCSS}};">{{.Labels.Experience}}</h3>
      {{range .Experiences}}<article><strong>{{.Title}}</strong>{{if .Company}} · {{.Company}}{{end}}{{if .Period}} <em>({{.Period}})</em>{{end}}{{if .Description}}<p>{{.Description}}</p>{{end}}</article>{{end}}
    </section>
    {{end}}
    {{if .Skills}}
    <section>
      <h3 style="color:{{.Palette.Accent | safeCSS}};">{{.Labels.Skills}}</h3>
      <div>{{range .Skills}}<span style="border:1px solid {{$.Palette.Primary | safeCSS}};border-radius:10px;padding:2px 8px;margin:2px;display:inline-block;">{{.}}</span>{{end}}</div>
    </section>
    {{end}}
    {{if .Articles}}
    <section>
      <h3 style="color:{{.Palette.Accent | safeCSS}};">{{.Labels.Articles}}</h3>
      {{range .Articles}}<article><strong>{{.Title}}</strong>{{if .Publication}} — {{.Publication}}{{end}}</article>{{end}}
    </section>
    {{end}}
    {{if .Education}}
    <section>
      <h3 style="color:{{.Palette.Accent | safeCSS}};">{{.Labels.Education}}</h3>
      {{range .Education}}<p><strong>{{.Institution}}</strong>{{if .Degree}} — {{.Degree}}{{end}}{{if .Period}} ({{.Period}}){{end}}</p>{{end}}
    </section>
    {{end}}
  </main>
</div>
`

// 每个模板自带截断上限与文本预算，互相独立。
var cvTemplates = map[CVTemplateID]cvTemplate{
	CVModern: {
		policy: cvPolicy{maxExperiences: 4, maxProjects: 3, maxArticles: 3, maxSkills: 10, textBudget: 220, headlineVariant: 0},
		tmpl:   mustParse("cv-modern", cvModernHTML),
	},
	CVMinimal: {
		policy: cvPolicy{maxExperiences: 3, maxProjects: 2, maxArticles: 2, maxSkills: 8, textBudget: 0, headlineVariant: 0},
		tmpl:   mustParse("cv-minimal", cvMinimalHTML),
	},
	CVCreative: {
		policy: cvPolicy{maxExperiences: 3, maxProjects: 4, maxArticles: 2, maxSkills: 12, textBudget: 180, headlineVariant: 2},
		tmpl:   mustParse("cv-creative", cvCreativeHTML),
	},
	CVExecutive: {
		policy: cvPolicy{maxExperiences: 5, maxProjects: 2, maxArticles: 3, maxSkills: 8, textBudget: 360, headlineVariant: 0},
		tmpl:   mustParse("cv-executive", cvExecutiveHTML),
	},
	CVModernClassic: {
		policy: cvPolicy{maxExperiences: 4, maxProjects: 3, maxArticles: 2, maxSkills: 10, textBudget: 200, headlineVariant: 0},
		tmpl:   mustParse("cv-modern-classic", cvModernClassicHTML),
	},
	CVMinimalElegant: {
		policy: cvPolicy{maxExperiences: 3, maxProjects: 3, maxArticles: 2, maxSkills: 9, textBudget: 0, headlineVariant: 1},
		tmpl:   mustParse("cv-minimal-elegant", cvMinimalElegantHTML),
	},
	CVCorporate: {
		policy: cvPolicy{maxExperiences: 4, maxProjects: 3, maxArticles: 3, maxSkills: 16, textBudget: 120, headlineVariant: 0},
		tmpl:   mustParse("cv-corporate", cvCorporateHTML),
	},
	CVCreativeAccent: {
		policy: cvPolicy{maxExperiences: 2, maxProjects: 4, maxArticles: 2, maxSkills: 12, textBudget: 150, headlineVariant: 2},
		tmpl:   mustParse("cv-creative-accent", cvCreativeAccentHTML),
	},
}
