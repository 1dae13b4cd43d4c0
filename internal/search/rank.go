// Package search 是全文检索的进程内实现，供没有 tsvector 的数据库（sqlite）使用。
// 权重与 PostgreSQL 侧保持一致：标题 A=1.0，正文 B=0.4。
package search

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
)

const (
	WeightTitle = 1.0
	WeightBody  = 0.4
)

// Document 参与排序的文本
type Document struct {
	Title string
	Body  string
}

// Terms 把查询串切成去重后的词（大小写折叠）
func Terms(s string) []string {
	words := tokenize(s)
	seen := make(map[string]struct{}, len(words))
	out := make([]string, 0, len(words))
	for _, w := range words {
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out
}

func tokenize(s string) []string {
	folded := cases.Fold().String(s)
	return strings.FieldsFunc(folded, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func wordSet(s string) map[string]struct{} {
	words := tokenize(s)
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// Rank 计算文档对查询词的得分：每个词取命中字段的最高权重，再对所有词求平均
func Rank(terms []string, doc Document) float64 {
	if len(terms) == 0 {
		return 0
	}
	title := wordSet(doc.Title)
	body := wordSet(doc.Body)

	var sum float64
	for _, t := range terms {
		if _, ok := title[t]; ok {
			sum += WeightTitle
			continue
		}
		if _, ok := body[t]; ok {
			sum += WeightBody
		}
	}
	return sum / float64(len(terms))
}

// Hit 一条排序结果
type Hit struct {
	Index int
	Rank  float64
}

// RankAll 对全部文档打分，过滤掉低于 minRank 的结果，按得分降序返回；
// 得分相同的保持输入顺序
func RankAll(query string, docs []Document, minRank float64) []Hit {
	terms := Terms(query)
	if len(terms) == 0 {
		return nil
	}
	hits := make([]Hit, 0, len(docs))
	for i, d := range docs {
		r := Rank(terms, d)
		if r > 0 && r >= minRank {
			hits = append(hits, Hit{Index: i, Rank: r})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].Rank > hits[j].Rank })
	return hits
}
