package render

import "strings"

// CVTemplateID 是 CV 模板的封闭枚举。模板标识会被持久化到外部，
// 枚举演进后老标识仍可能回流，所以查找失败一律落到 modern，
// 绝不报错。
type CVTemplateID string

const (
	CVModern         CVTemplateID = "modern"
	CVMinimal        CVTemplateID = "minimal"
	CVCreative       CVTemplateID = "creative"
	CVExecutive      CVTemplateID = "executive"
	CVModernClassic  CVTemplateID = "modernClassic"
	CVMinimalElegant CVTemplateID = "minimalElegant"
	CVCorporate      CVTemplateID = "corporate"
	CVCreativeAccent CVTemplateID = "creativeAccent"
)

// PortfolioTemplateID 是作品集模板的封闭枚举，回落规则同上。
type PortfolioTemplateID string

const (
	PortfolioModern   PortfolioTemplateID = "modern"
	PortfolioMinimal  PortfolioTemplateID = "minimal"
	PortfolioDark     PortfolioTemplateID = "dark"
	PortfolioGradient PortfolioTemplateID = "gradient"
)

// CVTemplateIDs 按固定顺序列出全部 CV 模板标识（接口返回模板清单用）。
func CVTemplateIDs() []CVTemplateID {
	return []CVTemplateID{
		CVModern, CVMinimal, CVCreative, CVExecutive,
		CVModernClassic, CVMinimalElegant, CVCorporate, CVCreativeAccent,
	}
}

// PortfolioTemplateIDs 按固定顺序列出全部作品集模板标识。
func PortfolioTemplateIDs() []PortfolioTemplateID {
	return []PortfolioTemplateID{
		PortfolioModern, PortfolioMinimal, PortfolioDark, PortfolioGradient,
	}
}

// ParseCVTemplateID 把外部存储的字符串解析为模板标识，
// 未知值（例如已下线的历史标识）解析为 CVModern。
func ParseCVTemplateID(raw string) CVTemplateID {
	id := CVTemplateID(strings.TrimSpace(raw))
	if _, ok := cvTemplates[id]; ok {
		return id
	}
	return CVModern
}

// ParsePortfolioTemplateID 解析作品集模板标识，未知值回落到 modern。
func ParsePortfolioTemplateID(raw string) PortfolioTemplateID {
	id := PortfolioTemplateID(strings.TrimSpace(raw))
	if _, ok := portfolioTemplates[id]; ok {
		return id
	}
	return PortfolioModern
}

// RenderCV 按模板标识渲染 CV 片段。
func RenderCV(id CVTemplateID, props CVProps) (string, error) {
	t, ok := cvTemplates[id]
	if !ok {
		t = cvTemplates[CVModern]
	}
	return t.render(props)
}

// RenderPortfolio 按模板标识渲染作品集片段。
func RenderPortfolio(id PortfolioTemplateID, props PortfolioProps) (string, error) {
	t, ok := portfolioTemplates[id]
	if !ok {
		t = portfolioTemplates[PortfolioModern]
	}
	return t.render(props)
}
