package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Make 生成 URL 片段：去掉重音符号，仅保留 ASCII 字母数字、下划线与连字符，
// 空白和连字符序列合并成单个连字符，首尾的 - 与 _ 被去掉。
func Make(s string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}
	folded = strings.ToLower(folded)

	var b strings.Builder
	b.Grow(len(folded))
	pendingDash := false
	for _, r := range folded {
		switch {
		case r > unicode.MaxASCII:
			continue
		case unicode.IsSpace(r) || r == '-':
			pendingDash = b.Len() > 0
		case r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r):
			if pendingDash {
				b.WriteByte('-')
				pendingDash = false
			}
			b.WriteRune(r)
		}
	}
	return strings.Trim(b.String(), "-_")
}
