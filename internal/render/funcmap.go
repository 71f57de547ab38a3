package render

import (
	"bytes"
	"fmt"
	"html/template"
)

// templateFuncs 是所有模板共享的函数表。
// safe* 系列用于跳过 html/template 的上下文转义：
// 调色板颜色与字体来自 ResolvePalette/ResolveFontFamily，
// 富文本简介在写入边界已经过 bluemonday 清洗。
var templateFuncs = template.FuncMap{
	"add": func(a, b int) int { return a + b },
	"safeHTML": func(s string) template.HTML {
		return template.HTML(s)
	},
	"safeCSS": func(s string) template.CSS {
		return template.CSS(s)
	},
	"safeURL": func(s string) template.URL {
		return template.URL(s)
	},
}

func mustParse(name, text string) *template.Template {
	return template.Must(template.New(name).Funcs(templateFuncs).Parse(text))
}

func executeTemplate(t *template.Template, view any) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("execute template %q: %w", t.Name(), err)
	}
	return buf.String(), nil
}
