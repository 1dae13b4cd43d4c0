package service

import (
	"context"
	"encoding/xml"
	"fmt"
	"strings"
	"time"
)

// RSS 2.0 文档
type RSS struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel RSSChannel `xml:"channel"`
}

type RSSChannel struct {
	Title       string    `xml:"title"`
	Link        string    `xml:"link"`
	Description string    `xml:"description"`
	Items       []RSSItem `xml:"item"`
}

type RSSItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
	PubDate     string `xml:"pubDate"`
	GUID        string `xml:"guid"`
}

const feedSummaryWords = 30

// truncateWords 保留前 n 个词，超出部分用 … 结尾
func truncateWords(s string, n int) string {
	words := strings.Fields(s)
	if len(words) <= n {
		return strings.Join(words, " ")
	}
	return strings.Join(words[:n], " ") + " …"
}

// Feed 最新已发布文章的 RSS
func (s *BlogService) Feed(ctx context.Context, baseURL string) (*RSS, error) {
	posts, err := s.posts.Latest(ctx, s.opts.FeedSize)
	if err != nil {
		return nil, fmt.Errorf("feed posts: %w", err)
	}
	base := strings.TrimRight(baseURL, "/")
	rss := &RSS{
		Version: "2.0",
		Channel: RSSChannel{
			Title:       "My blog",
			Link:        base + "/api/v1/blog/posts",
			Description: "New posts of my blog.",
			Items:       make([]RSSItem, 0, len(posts)),
		},
	}
	for _, p := range posts {
		link := base + p.Path(s.opts.Location)
		rss.Channel.Items = append(rss.Channel.Items, RSSItem{
			Title:       p.Title,
			Link:        link,
			Description: truncateWords(p.Body, feedSummaryWords),
			PubDate:     p.Publish.In(s.opts.Location).Format(time.RFC1123Z),
			GUID:        link,
		})
	}
	return rss, nil
}
