package render

// 独立页面外壳：片段本身不带 <html>，发布与导出 PDF 时包一层。
const pageShellHTML = `<!DOCTYPE html>
<html lang="{{.Lang}}">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{.Title}}</title>
  <style>
    body { margin: 0; background: {{.Background | safeCSS}}; }
    h1, h2, h3 { line-height: 1.25; }
    p { line-height: 1.5; }
    a { text-decoration: none; }
    @media print {
      @page { size: A4; margin: 0; }
      body { -webkit-print-color-adjust: exact; print-color-adjust: exact; }
    }
  </style>
</head>
<body>
{{.Body | safeHTML}}
</body>
</html>
`

var pageShellTmpl = mustParse("page-shell", pageShellHTML)

type pageShellView struct {
	Lang       string
	Title      string
	Background string
	Body       string
}

// WrapPage 把渲染好的片段包装成可独立打开/打印的完整 HTML 文档。
func WrapPage(title, body string, locale Locale, theme *Theme) (string, error) {
	palette := ResolvePalette(theme)
	if title == "" {
		title = "phFolio"
	}
	return executeTemplate(pageShellTmpl, pageShellView{
		Lang:       string(locale),
		Title:      title,
		Background: palette.Background,
		Body:       body,
	})
}
