package render

import (
	"strings"

	"golang.org/x/text/language"
)

// Locale 是受支持的界面语言。标签表对这三种语言做静态全覆盖，
// 不存在运行时兜底语言。
type Locale string

const (
	LocalePT Locale = "pt"
	LocaleEN Locale = "en"
	LocaleES Locale = "es"
)

// DefaultLocale 在解析失败时使用。
const DefaultLocale = LocalePT

var supportedTags = []language.Tag{
	language.Portuguese, // 顺序即 Matcher 的优先级，pt 在前
	language.English,
	language.Spanish,
}

var localeMatcher = language.NewMatcher(supportedTags)

var tagToLocale = map[language.Tag]Locale{
	language.Portuguese: LocalePT,
	language.English:    LocaleEN,
	language.Spanish:    LocaleES,
}

// ParseLocale 将外部输入（query 参数、Accept-Language）解析为受支持的 Locale。
// 无法识别时返回 DefaultLocale 和 false。
func ParseLocale(raw string) (Locale, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultLocale, false
	}

	switch Locale(strings.ToLower(raw)) {
	case LocalePT, LocaleEN, LocaleES:
		return Locale(strings.ToLower(raw)), true
	}

	tags, _, err := language.ParseAcceptLanguage(raw)
	if err != nil || len(tags) == 0 {
		return DefaultLocale, false
	}
	_, index, confidence := localeMatcher.Match(tags...)
	if confidence == language.No {
		return DefaultLocale, false
	}
	return tagToLocale[supportedTags[index]], true
}

// Valid 判断是否为受支持的 Locale 值。
func (l Locale) Valid() bool {
	switch l {
	case LocalePT, LocaleEN, LocaleES:
		return true
	}
	return false
}

// Profile 是所有模板消费的档案契约。模板只读取这里的字段，
// 从不接触数据库行；任何可选字段缺失都不允许破坏渲染。
type Profile struct {
	ID          string
	Name        string
	Headline    string
	Bio         string
	Location    string
	Email       string
	Phone       string
	PhotoURL    string
	ShowPhoto   *bool // nil 表示未设置；只有显式 false 才隐藏照片
	Skills      []string
	Education   []EducationRecord
	SocialLinks map[string]string
	Locale      Locale
}

// EducationRecord 中的时间段要么是起止年份，要么是一段自由文本。
type EducationRecord struct {
	Institution string
	Degree      string
	StartYear   string
	EndYear     string
	Period      string
}

// Experience 条目顺序由调用方给定，模板只消费一个有界前缀。
type Experience struct {
	ID          string
	Title       string
	Company     string
	Description string
	Period      string
}

// Project 与 Experience 不同，描述是必填字段。
type Project struct {
	ID          string
	Title       string
	Description string
	LinkURL     string
}

// Article 表示一篇已发表/待发表的文章。
type Article struct {
	ID          string
	Title       string
	Summary     string
	Publication string
}

// FeaturedVideo 表示作品集里的精选视频。
type FeaturedVideo struct {
	ID          string
	Title       string
	Description string
	Platform    string
}

// Theme 是用户选择的视觉主题，所有字段都允许为空，
// 颜色缺失由 ResolvePalette 补齐。
type Theme struct {
	PrimaryColor    string
	SecondaryColor  string
	AccentColor     string
	BackgroundColor string
	FontFamily      string
	Mode            string
	Layout          string
}

// CVProps 是 8 个 CV 模板共享的输入契约。
type CVProps struct {
	Profile     Profile
	Experiences []Experience
	Projects    []Project
	Articles    []Article
	Locale      Locale
	Theme       *Theme
}

// PortfolioProps 是 4 个作品集模板共享的输入契约。
type PortfolioProps struct {
	Profile     Profile
	Experiences []Experience
	Projects    []Project
	Videos      []FeaturedVideo
	Articles    []Article
	Locale      Locale
	Theme       *Theme
}
