package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/gin-blog/internal/model"
)

func TestCommentRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()
	author := seedAuthor(t, db)
	post := seedPost(t, db, author, "P", "p", model.PostStatusPublished, day(2024, 1, 1, 0))
	other := seedPost(t, db, author, "Q", "q", model.PostStatusPublished, day(2024, 1, 1, 0))

	first := &model.Comment{PostID: post.ID, Name: "ann", Email: "ann@example.com", Body: "first", CreatedAt: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)}
	second := &model.Comment{PostID: post.ID, Name: "bob", Email: "bob@example.com", Body: "second", CreatedAt: time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)}
	require.NoError(t, repo.Create(ctx, second))
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, &model.Comment{PostID: other.ID, Name: "c", Email: "c@example.com", Body: "elsewhere"}))

	inactive := &model.Comment{PostID: post.ID, Name: "spam", Email: "s@example.com", Body: "spam"}
	require.NoError(t, repo.Create(ctx, inactive))
	require.NoError(t, db.Model(inactive).Update("active", false).Error)

	list, err := repo.ListActive(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "first", list[0].Body)
	assert.Equal(t, "second", list[1].Body)
}

func TestTagRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewTagRepository(db)
	ctx := context.Background()
	seedTags(t, db, "web", "go")

	tag, err := repo.GetBySlug(ctx, "go")
	require.NoError(t, err)
	assert.Equal(t, "go", tag.Name)

	_, err = repo.GetBySlug(ctx, "rust")
	assert.Error(t, err)

	tags, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, tags, 2)
	assert.Equal(t, "go", tags[0].Slug)
}
