package api

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// 写入边界统一消毒:富文本字段允许安全的内联标记，
// 其余字段剥掉所有 HTML。模板层假定拿到的内容已经干净。
var (
	richTextPolicy  = bluemonday.UGCPolicy()
	plainTextPolicy = bluemonday.StrictPolicy()
)

func sanitizeRichText(s string) string {
	return strings.TrimSpace(richTextPolicy.Sanitize(s))
}

func sanitizePlainText(s string) string {
	return strings.TrimSpace(plainTextPolicy.Sanitize(s))
}
