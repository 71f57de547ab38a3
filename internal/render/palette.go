package render

import "strings"

// Palette 是从主题解析出来的四色组合，四个字段保证非空。
type Palette struct {
	Primary    string
	Secondary  string
	Accent     string
	Background string
}

// 调色板默认值。部分指定的主题逐字段回落到这里，
// 保证任何模板都不会拿到未定义的颜色。
const (
	DefaultPrimary    = "#6a0dad"
	DefaultSecondary  = "#2d2550"
	DefaultAccent     = "#c92563"
	DefaultBackground = "#ffffff"
)

// ResolvePalette 把可选的主题解析为完整调色板。全函数，无错误分支。
func ResolvePalette(theme *Theme) Palette {
	p := Palette{
		Primary:    DefaultPrimary,
		Secondary:  DefaultSecondary,
		Accent:     DefaultAccent,
		Background: DefaultBackground,
	}
	if theme == nil {
		return p
	}
	if c := strings.TrimSpace(theme.PrimaryColor); c != "" {
		p.Primary = c
	}
	if c := strings.TrimSpace(theme.SecondaryColor); c != "" {
		p.Secondary = c
	}
	if c := strings.TrimSpace(theme.AccentColor); c != "" {
		p.Accent = c
	}
	if c := strings.TrimSpace(theme.BackgroundColor); c != "" {
		p.Background = c
	}
	return p
}

// ResolveFontFamily 返回主题字体，缺省时使用系统无衬线。
func ResolveFontFamily(theme *Theme) string {
	if theme == nil {
		return "Arial"
	}
	if f := strings.TrimSpace(theme.FontFamily); f != "" {
		return f
	}
	return "Arial"
}
