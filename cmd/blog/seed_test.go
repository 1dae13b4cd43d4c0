package main

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/gin-blog/config"
	"github.com/d60-Lab/gin-blog/internal/model"
	"github.com/d60-Lab/gin-blog/internal/repository"
	"github.com/d60-Lab/gin-blog/pkg/database"
)

func TestSeed(t *testing.T) {
	db, err := database.Open(config.DatabaseConfig{Driver: "sqlite", DSN: ":memory:", LogLevel: "silent"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	require.NoError(t, repository.AutoMigrate(db))

	require.NoError(t, seed(context.Background(), db, time.UTC))

	var posts, published, tags int64
	require.NoError(t, db.Model(&model.Post{}).Count(&posts).Error)
	require.NoError(t, db.Model(&model.Post{}).Where("status = ?", model.PostStatusPublished).Count(&published).Error)
	require.NoError(t, db.Model(&model.Tag{}).Count(&tags).Error)
	assert.Equal(t, int64(len(demoPosts)), posts)
	assert.Equal(t, int64(len(demoPosts)-1), published)
	assert.Equal(t, int64(5), tags)
}
