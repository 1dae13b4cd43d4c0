package model

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// 文章状态
const (
	PostStatusDraft     = "DF"
	PostStatusPublished = "PB"
)

// PostPathPrefix 文章详情路由前缀
const PostPathPrefix = "/api/v1/blog/posts"

// PublishDayLayout PublishDay 的格式
const PublishDayLayout = "2006-01-02"

// Post 博客文章
// 已发布文章由 (发布日期, slug) 唯一定位，数据库层由 idx_post_slug_day 保证
type Post struct {
	ID       uint      `json:"id" gorm:"primaryKey"`
	Title    string    `json:"title" gorm:"type:varchar(250);not null"`
	Slug     string    `json:"slug" gorm:"type:varchar(250);not null;index:idx_post_slug_publish;uniqueIndex:idx_post_slug_day,priority:1"`
	AuthorID uint      `json:"author_id" gorm:"not null;index"`
	Author   *User     `json:"author,omitempty" gorm:"foreignKey:AuthorID"`
	Body     string    `json:"body" gorm:"type:text"`
	Publish  time.Time `json:"publish" gorm:"not null;index;index:idx_post_slug_publish"`

	// PublishDay 博客时区下的发布日期，为空时按 UTC 补齐
	PublishDay string    `json:"-" gorm:"type:varchar(10);uniqueIndex:idx_post_slug_day,priority:2"`
	Status     string    `json:"status" gorm:"type:varchar(2);not null;default:DF;index"`
	Tags       []Tag     `json:"tags" gorm:"many2many:post_tags;"`
	Comments   []Comment `json:"-" gorm:"foreignKey:PostID"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Post) TableName() string { return "posts" }

// BeforeSave 补齐 PublishDay
func (p *Post) BeforeSave(*gorm.DB) error {
	if p.PublishDay == "" && !p.Publish.IsZero() {
		p.PublishDay = p.Publish.UTC().Format(PublishDayLayout)
	}
	return nil
}

// IsPublished 是否已发布
func (p *Post) IsPublished() bool { return p.Status == PostStatusPublished }

// Path 文章详情的规范路径，日期按 loc 时区计算，月和日不补零
func (p *Post) Path(loc *time.Location) string {
	t := p.Publish.In(loc)
	return fmt.Sprintf("%s/%d/%d/%d/%s", PostPathPrefix, t.Year(), int(t.Month()), t.Day(), p.Slug)
}

// TagIDs 文章关联标签的 ID
func (p *Post) TagIDs() []uint {
	ids := make([]uint, len(p.Tags))
	for i, t := range p.Tags {
		ids[i] = t.ID
	}
	return ids
}
