package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/d60-Lab/gin-blog/config"
	"github.com/d60-Lab/gin-blog/internal/model"
	"github.com/d60-Lab/gin-blog/pkg/database"
)

func newTestDB(t testing.TB) *gorm.DB {
	t.Helper()
	db, err := database.Open(config.DatabaseConfig{Driver: "sqlite", DSN: ":memory:", LogLevel: "silent"})
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db))
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

func seedAuthor(t testing.TB, db *gorm.DB) *model.User {
	t.Helper()
	u := &model.User{Username: "admin", Email: "admin@example.com"}
	require.NoError(t, db.Create(u).Error)
	return u
}

func seedTags(t testing.TB, db *gorm.DB, slugs ...string) map[string]model.Tag {
	t.Helper()
	out := make(map[string]model.Tag, len(slugs))
	for _, s := range slugs {
		tag := model.Tag{Name: s, Slug: s}
		require.NoError(t, db.Create(&tag).Error)
		out[s] = tag
	}
	return out
}

func seedPost(t testing.TB, db *gorm.DB, author *model.User, title, slug, status string, publish time.Time, tags ...model.Tag) *model.Post {
	t.Helper()
	p := &model.Post{
		Title:    title,
		Slug:     slug,
		AuthorID: author.ID,
		Body:     "body of " + title,
		Publish:  publish.UTC(),
		Status:   status,
		Tags:     tags,
	}
	require.NoError(t, db.Create(p).Error)
	return p
}

func day(y int, m time.Month, d, h int) time.Time {
	return time.Date(y, m, d, h, 0, 0, 0, time.UTC)
}
