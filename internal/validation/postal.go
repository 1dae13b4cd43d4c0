package validation

import (
	"regexp"
	"strconv"
	"strings"
)

// postalFormat 某个国家的邮编规则
type postalFormat struct {
	normalize func(string) string
	valid     func(string) bool
}

var (
	nlPattern = regexp.MustCompile(`^\d{4} [A-Z]{2}$`)
	bePattern = regexp.MustCompile(`^[1-9]\d{3}$`)
	dePattern = regexp.MustCompile(`^\d{5}$`)
	usPattern = regexp.MustCompile(`^\d{5}(-\d{4})?$`)
)

var postalFormats = map[string]postalFormat{
	// 荷兰：1234 AB，数字部分不小于 1000
	"NL": {
		normalize: func(v string) string {
			v = strings.ToUpper(strings.ReplaceAll(v, " ", ""))
			if len(v) == 6 {
				v = v[:4] + " " + v[4:]
			}
			return v
		},
		valid: func(v string) bool {
			if !nlPattern.MatchString(v) {
				return false
			}
			n, err := strconv.Atoi(v[:4])
			return err == nil && n >= 1000
		},
	},
	"BE": {normalize: strings.TrimSpace, valid: bePattern.MatchString},
	"DE": {normalize: strings.TrimSpace, valid: dePattern.MatchString},
	"US": {normalize: strings.TrimSpace, valid: usPattern.MatchString},
}

// NormalizePostalCode 按国家规则规范化邮编；未知国家只去掉首尾空白
func NormalizePostalCode(country, v string) string {
	v = strings.TrimSpace(v)
	if f, ok := postalFormats[strings.ToUpper(country)]; ok {
		return f.normalize(v)
	}
	return v
}

// ValidPostalCode 校验已规范化的邮编；未知国家不做格式检查
func ValidPostalCode(country, v string) bool {
	f, ok := postalFormats[strings.ToUpper(country)]
	if !ok {
		return true
	}
	return f.valid(v)
}

// SupportedCountry 是否有该国家的邮编规则
func SupportedCountry(country string) bool {
	_, ok := postalFormats[strings.ToUpper(country)]
	return ok
}
