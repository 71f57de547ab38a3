package render

import (
	"strings"
	"unicode"
)

// displayName 返回用于渲染的姓名，空白姓名回落到占位串。
func displayName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return namePlaceholder
	}
	return name
}

// initialsBadge 取姓名前两个空白分隔片段的首字母并大写，
// 取不到任何字母时退回通用的 "CV" 徽标。
func initialsBadge(name string) string {
	var b strings.Builder
	for _, token := range strings.Fields(name) {
		for _, r := range token {
			if unicode.IsLetter(r) {
				b.WriteRune(unicode.ToUpper(r))
				break
			}
		}
		if b.Len() >= 2 {
			break
		}
	}
	if b.Len() == 0 {
		return "CV"
	}
	return b.String()
}

// truncateText 把长文本裁剪到给定字符预算，超出时附加省略号。
// 按 rune 计数，避免把多字节字符截断成乱码。
func truncateText(s string, budget int) string {
	s = strings.TrimSpace(s)
	if budget <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= budget {
		return s
	}
	return strings.TrimSpace(string(runes[:budget])) + "…"
}

// formatEducationPeriod 按固定优先级格式化教育经历的时间段：
// 起止年份都在 → "start – end"；只有其一 → 该年份；
// 否则使用自由文本 Period；全部缺失 → 空串。
func formatEducationPeriod(e EducationRecord) string {
	start := strings.TrimSpace(e.StartYear)
	end := strings.TrimSpace(e.EndYear)
	switch {
	case start != "" && end != "":
		return start + " – " + end
	case start != "":
		return start
	case end != "":
		return end
	}
	return strings.TrimSpace(e.Period)
}

// contactItems 按 email、phone、location 的固定顺序收集非空联系信息。
func contactItems(p Profile) []string {
	items := make([]string, 0, 3)
	for _, v := range []string{p.Email, p.Phone, p.Location} {
		if v = strings.TrimSpace(v); v != "" {
			items = append(items, v)
		}
	}
	return items
}

// showPhoto 仅在照片存在且展示开关未被显式关闭时为真。
func showPhoto(p Profile) bool {
	if strings.TrimSpace(p.PhotoURL) == "" {
		return false
	}
	return p.ShowPhoto == nil || *p.ShowPhoto
}

// socialOrder 固定了公开页上社交链接的展示顺序。
var socialOrder = []string{"github", "linkedin", "website", "instagram"}

// SocialLink 是过滤后的一条社交链接。
type SocialLink struct {
	Name string
	URL  string
}

// filterSocialLinks 只保留已知平台中值非空的链接，保持固定顺序。
func filterSocialLinks(links map[string]string) []SocialLink {
	if len(links) == 0 {
		return nil
	}
	out := make([]SocialLink, 0, len(socialOrder))
	for _, name := range socialOrder {
		if url := strings.TrimSpace(links[name]); url != "" {
			out = append(out, SocialLink{Name: name, URL: url})
		}
	}
	return out
}

// capStrings 返回最多 n 个元素的前缀，保持原有顺序。
func capStrings(items []string, n int) []string {
	if n <= 0 || len(items) <= n {
		return items
	}
	return items[:n]
}
