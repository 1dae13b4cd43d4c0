package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/d60-Lab/gin-blog/config"
	"github.com/d60-Lab/gin-blog/internal/cache"
	"github.com/d60-Lab/gin-blog/internal/model"
	"github.com/d60-Lab/gin-blog/internal/repository"
	"github.com/d60-Lab/gin-blog/pkg/database"
	"github.com/d60-Lab/gin-blog/pkg/mail"
)

type fixture struct {
	db     *gorm.DB
	blog   *BlogService
	pub    *Publisher
	outbox *mail.Outbox
	author *model.User
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open(config.DatabaseConfig{Driver: "sqlite", DSN: ":memory:", LogLevel: "silent"})
	require.NoError(t, err)
	require.NoError(t, repository.AutoMigrate(db))
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

func newFixture(t *testing.T, postCache *cache.PostCache) *fixture {
	t.Helper()
	db := newTestDB(t)
	author := &model.User{Username: "admin", Email: "admin@example.com"}
	require.NoError(t, db.Create(author).Error)

	outbox := &mail.Outbox{}
	blog := NewBlogService(
		repository.NewPostRepository(db),
		repository.NewTagRepository(db),
		repository.NewCommentRepository(db),
		postCache,
		outbox,
		BlogOptions{
			PageSize:      3,
			SimilarLimit:  4,
			SearchMinRank: 0.3,
			FeedSize:      5,
			Location:      time.UTC,
			MailFrom:      "blog@example.com",
		},
	)
	return &fixture{
		db:     db,
		blog:   blog,
		pub:    NewPublisher(db, postCache, time.UTC),
		outbox: outbox,
		author: author,
	}
}

func (f *fixture) publish(t *testing.T, title string, at time.Time, tags ...string) *model.Post {
	t.Helper()
	p, err := f.pub.Publish(context.Background(), PublishInput{
		AuthorID: f.author.ID,
		Title:    title,
		Body:     "This post is about " + title,
		Publish:  at,
		Status:   model.PostStatusPublished,
		Tags:     tags,
	})
	require.NoError(t, err)
	return p
}

func at(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}
