package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/d60-Lab/gin-blog/internal/cache"
	"github.com/d60-Lab/gin-blog/internal/model"
	"github.com/d60-Lab/gin-blog/internal/repository"
	"github.com/d60-Lab/gin-blog/pkg/logger"
	"github.com/d60-Lab/gin-blog/pkg/slug"
)

// PublishInput 新文章
type PublishInput struct {
	AuthorID uint
	Title    string
	Slug     string // 为空时由标题生成
	Body     string
	Publish  time.Time // 为零值时取当前时间
	Status   string    // 为空时为草稿
	Tags     []string  // 标签名，按 slug 复用已有标签
}

// Publisher 负责事务内写 posts + tags + post_tags
type Publisher struct {
	db    *gorm.DB
	cache *cache.PostCache
	loc   *time.Location
	now   func() time.Time
}

func NewPublisher(db *gorm.DB, postCache *cache.PostCache, loc *time.Location) *Publisher {
	if loc == nil {
		loc = time.UTC
	}
	return &Publisher{db: db, cache: postCache, loc: loc, now: time.Now}
}

// Publish 在一个事务内落地文章及其标签
func (p *Publisher) Publish(ctx context.Context, in PublishInput) (*model.Post, error) {
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return nil, invalid("title", "This field is required.")
	}
	postSlug := slug.Make(in.Slug)
	if postSlug == "" {
		postSlug = slug.Make(in.Title)
	}
	if postSlug == "" {
		return nil, invalid("slug", "Enter a valid slug.")
	}
	status := in.Status
	if status == "" {
		status = model.PostStatusDraft
	}
	if status != model.PostStatusDraft && status != model.PostStatusPublished {
		return nil, invalid("status", fmt.Sprintf("Select a valid choice. %s is not one of the available choices.", status))
	}
	publish := in.Publish
	if publish.IsZero() {
		publish = p.now()
	}
	publish = publish.UTC()

	from, to := dayBounds(publish, p.loc)
	post := &model.Post{
		Title:      in.Title,
		Slug:       postSlug,
		AuthorID:   in.AuthorID,
		Body:       in.Body,
		Publish:    publish,
		PublishDay: from.Format(model.PublishDayLayout),
		Status:     status,
	}

	err := p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		posts := repository.NewPostRepository(tx)
		taken, err := posts.SlugTaken(ctx, postSlug, from, to, 0)
		if err != nil {
			return err
		}
		if taken {
			return ErrSlugTaken
		}

		tags, err := upsertTags(tx, in.Tags)
		if err != nil {
			return err
		}
		post.Tags = tags
		// 并发发布时由唯一索引兜底
		if err := posts.Create(ctx, post); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrSlugTaken
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if post.IsPublished() {
		if err := p.cache.FlushSimilar(ctx); err != nil {
			logger.Warn("flush similar cache failed", zap.Error(err))
		}
	}
	return post, nil
}

func upsertTags(tx *gorm.DB, names []string) ([]model.Tag, error) {
	seen := make(map[string]struct{}, len(names))
	tags := make([]model.Tag, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		s := slug.Make(name)
		if s == "" {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}

		var tag model.Tag
		err := tx.Where("slug = ?", s).First(&tag).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			tag = model.Tag{Name: name, Slug: s}
			err = tx.Create(&tag).Error
		}
		if err != nil {
			return nil, fmt.Errorf("upsert tag %q: %w", s, err)
		}
		tags = append(tags, tag)
	}
	return tags, nil
}
