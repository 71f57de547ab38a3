package render

// CVLabels 是 CV 模板使用的分节标题。
type CVLabels struct {
	Summary    string
	Experience string
	Projects   string
	Articles   string
	Contact    string
	Skills     string
	Education  string
}

// PortfolioLabels 是作品集模板使用的分节标题。
type PortfolioLabels struct {
	About       string
	Experience  string
	Projects    string
	Videos      string
	Articles    string
	Contact     string
	ViewProject string
}

// 三种语言都必须有完整条目，缺失语言不是运行时状态。
// 覆盖完整性由 labels_test.go 的穷举断言保证。
var cvLabels = map[Locale]CVLabels{
	LocalePT: {
		Summary:    "Resumo",
		Experience: "Experiência",
		Projects:   "Projetos",
		Articles:   "Artigos",
		Contact:    "Contato",
		Skills:     "Habilidades",
		Education:  "Formação",
	},
	LocaleEN: {
		Summary:    "Summary",
		Experience: "Experience",
		Projects:   "Projects",
		Articles:   "Articles",
		Contact:    "Contact",
		Skills:     "Skills",
		Education:  "Education",
	},
	LocaleES: {
		Summary:    "Resumen",
		Experience: "Experiencia",
		Projects:   "Proyectos",
		Articles:   "Artículos",
		Contact:    "Contacto",
		Skills:     "Habilidades",
		Education:  "Formación",
	},
}

var portfolioLabels = map[Locale]PortfolioLabels{
	LocalePT: {
		About:       "Sobre",
		Experience:  "Experiência",
		Projects:    "Projetos",
		Videos:      "Vídeos",
		Articles:    "Artigos",
		Contact:     "Contato",
		ViewProject: "Ver projeto",
	},
	LocaleEN: {
		About:       "About",
		Experience:  "Experience",
		Projects:    "Projects",
		Videos:      "Videos",
		Articles:    "Articles",
		Contact:     "Contact",
		ViewProject: "View project",
	},
	LocaleES: {
		About:       "Acerca de",
		Experience:  "Experiencia",
		Projects:    "Proyectos",
		Videos:      "Vídeos",
		Articles:    "Artículos",
		Contact:     "Contacto",
		ViewProject: "Ver proyecto",
	},
}

// CVLabelsFor 返回指定语言的 CV 分节标题。
func CVLabelsFor(locale Locale) CVLabels {
	if labels, ok := cvLabels[locale]; ok {
		return labels
	}
	return cvLabels[DefaultLocale]
}

// PortfolioLabelsFor 返回指定语言的作品集分节标题。
func PortfolioLabelsFor(locale Locale) PortfolioLabels {
	if labels, ok := portfolioLabels[locale]; ok {
		return labels
	}
	return portfolioLabels[DefaultLocale]
}

// 姓名缺失的占位串是跨语言固定值，避免在姓名位置混入界面语言。
const namePlaceholder = "—"

// 各语言的通用职业头衔，按模板风格取不同下标。
var headlineFallbacks = map[Locale][]string{
	LocalePT: {
		"Profissional",
		"Especialista na sua área",
		"Profissional criativo",
	},
	LocaleEN: {
		"Professional",
		"Specialist in your field",
		"Creative professional",
	},
	LocaleES: {
		"Profesional",
		"Especialista en su área",
		"Profesional creativo",
	},
}

// 简介缺失时显示的提示式占位文本。
var bioPrompts = map[Locale]string{
	LocalePT: "Adicione uma breve apresentação sobre você e sua trajetória.",
	LocaleEN: "Add a short introduction about yourself and your journey.",
	LocaleES: "Agregue una breve presentación sobre usted y su trayectoria.",
}

func headlineFallback(locale Locale, variant int) string {
	list, ok := headlineFallbacks[locale]
	if !ok {
		list = headlineFallbacks[DefaultLocale]
	}
	if variant < 0 || variant >= len(list) {
		variant = 0
	}
	return list[variant]
}

// 公开页的订阅状态文案:宽限期横幅和封锁占位页。
var graceBanners = map[Locale]string{
	LocalePT: "A assinatura deste portfólio expirou. O conteúdo continua visível durante o período de carência.",
	LocaleEN: "This portfolio's subscription has lapsed. Content stays visible during the grace period.",
	LocaleES: "La suscripción de este portafolio ha vencido. El contenido sigue visible durante el período de gracia.",
}

var unavailableNotices = map[Locale]string{
	LocalePT: "Este portfólio não está disponível no momento.",
	LocaleEN: "This portfolio is not available right now.",
	LocaleES: "Este portafolio no está disponible en este momento.",
}

// GraceBanner 返回宽限期提示文案。
func GraceBanner(locale Locale) string {
	if banner, ok := graceBanners[locale]; ok {
		return banner
	}
	return graceBanners[DefaultLocale]
}

// UnavailableNotice 返回封锁占位页文案。
func UnavailableNotice(locale Locale) string {
	if notice, ok := unavailableNotices[locale]; ok {
		return notice
	}
	return unavailableNotices[DefaultLocale]
}

func bioPrompt(locale Locale) string {
	if prompt, ok := bioPrompts[locale]; ok {
		return prompt
	}
	return bioPrompts[DefaultLocale]
}
