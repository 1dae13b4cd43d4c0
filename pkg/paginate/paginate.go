// Package paginate 把总数 + 每页大小换算成页码窗口。
//
// 页码解析是宽松的：非整数回落到第一页，越界回落到最后一页，
// 这样列表页永远有内容可返回，而不是 404。
package paginate

import (
	"strconv"
	"strings"
)

// LastPage 作为页码参数时表示最后一页
const LastPage = "last"

// Paginator 分页器
type Paginator struct {
	count   int64
	perPage int
}

// New 创建分页器，perPage 小于 1 时按 1 处理
func New(count int64, perPage int) *Paginator {
	if perPage < 1 {
		perPage = 1
	}
	if count < 0 {
		count = 0
	}
	return &Paginator{count: count, perPage: perPage}
}

// Count 总条数
func (p *Paginator) Count() int64 { return p.count }

// NumPages 总页数，空集合也有一页
func (p *Paginator) NumPages() int {
	if p.count == 0 {
		return 1
	}
	return int((p.count + int64(p.perPage) - 1) / int64(p.perPage))
}

// Page 解析原始页码参数并返回对应窗口
func (p *Paginator) Page(raw string) Window {
	return p.window(p.resolve(raw))
}

func (p *Paginator) resolve(raw string) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 1
	}
	if raw == LastPage {
		return p.NumPages()
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 1
	}
	if n < 1 || n > p.NumPages() {
		return p.NumPages()
	}
	return n
}

func (p *Paginator) window(n int) Window {
	num := p.NumPages()
	w := Window{
		Number:   n,
		PerPage:  p.perPage,
		NumPages: num,
		Count:    p.count,
		Offset:   (n - 1) * p.perPage,
		HasNext:  n < num,
		HasPrev:  n > 1,
	}
	if w.HasNext {
		next := n + 1
		w.NextNumber = &next
	}
	if w.HasPrev {
		prev := n - 1
		w.PreviousNumber = &prev
	}
	return w
}

// Window 某一页的位置信息
type Window struct {
	Number   int   `json:"number"`
	PerPage  int   `json:"per_page"`
	NumPages int   `json:"num_pages"`
	Count    int64 `json:"count"`
	Offset   int   `json:"-"`
	HasNext  bool  `json:"has_next"`
	HasPrev  bool  `json:"has_previous"`

	// 没有下一页/上一页时为 null
	NextNumber     *int `json:"next_page_number"`
	PreviousNumber *int `json:"previous_page_number"`
}

// Limit 本页最多条数
func (w Window) Limit() int { return w.PerPage }
