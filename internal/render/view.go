package render

import "strings"

// cvPolicy 是单个 CV 模板的展示策略：列表截断上限与文本预算
// 属于模板自身的版式决定，不是数据层关心的事。
type cvPolicy struct {
	maxExperiences  int
	maxProjects     int
	maxArticles     int
	maxSkills       int
	textBudget      int // 0 表示不裁剪
	headlineVariant int
}

// portfolioPolicy 是单个作品集模板的展示策略。
type portfolioPolicy struct {
	maxExperiences  int
	maxProjects     int
	maxVideos       int
	maxArticles     int
	textBudget      int
	headlineVariant int
}

type educationView struct {
	Institution string
	Degree      string
	Period      string
}

type experienceView struct {
	Title       string
	Company     string
	Period      string
	Description string
}

type projectView struct {
	Title       string
	Description string
	LinkURL     string
}

type articleView struct {
	Title       string
	Summary     string
	Publication string
}

type videoView struct {
	Title       string
	Description string
	Platform    string
}

// cvView 是模板执行前算好的视图：占位、过滤、截断都在这里完成，
// 模板本身只负责排版。
type cvView struct {
	Palette     Palette
	FontFamily  string
	Labels      CVLabels
	Name        string
	Headline    string
	Bio         string
	ShowPhoto   bool
	PhotoURL    string
	Initials    string
	Contact     []string
	Skills      []string
	Education   []educationView
	Experiences []experienceView
	Projects    []projectView
	Articles    []articleView
}

type portfolioView struct {
	Palette     Palette
	FontFamily  string
	Labels      PortfolioLabels
	Name        string
	Headline    string
	Bio         string
	ShowPhoto   bool
	PhotoURL    string
	Initials    string
	Contact     []string
	Social      []SocialLink
	Experiences []experienceView
	Projects    []projectView
	Videos      []videoView
	Articles    []articleView
}

func buildCVView(props CVProps, policy cvPolicy) cvView {
	p := props.Profile
	view := cvView{
		Palette:    ResolvePalette(props.Theme),
		FontFamily: ResolveFontFamily(props.Theme),
		Labels:     CVLabelsFor(props.Locale),
		Name:       displayName(p.Name),
		Headline:   strings.TrimSpace(p.Headline),
		Bio:        strings.TrimSpace(p.Bio),
		ShowPhoto:  showPhoto(p),
		PhotoURL:   strings.TrimSpace(p.PhotoURL),
		Initials:   initialsBadge(p.Name),
		Contact:    contactItems(p),
		Skills:     capStrings(p.Skills, policy.maxSkills),
	}
	if view.Headline == "" {
		view.Headline = headlineFallback(props.Locale, policy.headlineVariant)
	}
	if view.Bio == "" {
		view.Bio = bioPrompt(props.Locale)
	}
	view.Bio = truncateText(view.Bio, policy.textBudget)

	for _, e := range p.Education {
		view.Education = append(view.Education, educationView{
			Institution: strings.TrimSpace(e.Institution),
			Degree:      strings.TrimSpace(e.Degree),
			Period:      formatEducationPeriod(e),
		})
	}
	view.Experiences = experienceViews(props.Experiences, policy.maxExperiences, policy.textBudget)
	view.Projects = projectViews(props.Projects, policy.maxProjects, policy.textBudget)
	view.Articles = articleViews(props.Articles, policy.maxArticles, policy.textBudget)
	return view
}

func buildPortfolioView(props PortfolioProps, policy portfolioPolicy) portfolioView {
	p := props.Profile
	view := portfolioView{
		Palette:    ResolvePalette(props.Theme),
		FontFamily: ResolveFontFamily(props.Theme),
		Labels:     PortfolioLabelsFor(props.Locale),
		Name:       displayName(p.Name),
		Headline:   strings.TrimSpace(p.Headline),
		Bio:        strings.TrimSpace(p.Bio),
		ShowPhoto:  showPhoto(p),
		PhotoURL:   strings.TrimSpace(p.PhotoURL),
		Initials:   initialsBadge(p.Name),
		Contact:    contactItems(p),
		Social:     filterSocialLinks(p.SocialLinks),
	}
	if view.Headline == "" {
		view.Headline = headlineFallback(props.Locale, policy.headlineVariant)
	}
	if view.Bio == "" {
		view.Bio = bioPrompt(props.Locale)
	}
	view.Bio = truncateText(view.Bio, policy.textBudget)

	view.Experiences = experienceViews(props.Experiences, policy.maxExperiences, policy.textBudget)
	view.Projects = projectViews(props.Projects, policy.maxProjects, policy.textBudget)
	view.Articles = articleViews(props.Articles, policy.maxArticles, policy.textBudget)
	for i, v := range props.Videos {
		if policy.maxVideos > 0 && i >= policy.maxVideos {
			break
		}
		view.Videos = append(view.Videos, videoView{
			Title:       strings.TrimSpace(v.Title),
			Description: truncateText(v.Description, policy.textBudget),
			Platform:    strings.TrimSpace(v.Platform),
		})
	}
	return view
}

func experienceViews(items []Experience, max, budget int) []experienceView {
	out := make([]experienceView, 0, len(items))
	for i, e := range items {
		if max > 0 && i >= max {
			break
		}
		out = append(out, experienceView{
			Title:       strings.TrimSpace(e.Title),
			Company:     strings.TrimSpace(e.Company),
			Period:      strings.TrimSpace(e.Period),
			Description: truncateText(e.Description, budget),
		})
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func projectViews(items []Project, max, budget int) []projectView {
	out := make([]projectView, 0, len(items))
	for i, p := range items {
		if max > 0 && i >= max {
			break
		}
		out = append(out, projectView{
			Title:       strings.TrimSpace(p.Title),
			Description: truncateText(p.Description, budget),
			LinkURL:     strings.TrimSpace(p.LinkURL),
		})
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func articleViews(items []Article, max, budget int) []articleView {
	out := make([]articleView, 0, len(items))
	for i, a := range items {
		if max > 0 && i >= max {
			break
		}
		out = append(out, articleView{
			Title:       strings.TrimSpace(a.Title),
			Summary:     truncateText(a.Summary, budget),
			Publication: strings.TrimSpace(a.Publication),
		})
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
