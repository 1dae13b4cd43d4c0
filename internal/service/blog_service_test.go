package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/gin-blog/internal/cache"
	"github.com/d60-Lab/gin-blog/internal/model"
	"github.com/d60-Lab/gin-blog/pkg/mail"
)

func titles(posts []*model.Post) []string {
	out := make([]string, len(posts))
	for i, p := range posts {
		out[i] = p.Title
	}
	return out
}

func TestBlogService_ListPosts(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	for i, title := range []string{"One", "Two", "Three", "Four", "Five"} {
		tags := []string{"all"}
		if i%2 == 0 {
			tags = append(tags, "even")
		}
		f.publish(t, title, at(2024, 1, i+1), tags...)
	}
	_, err := f.pub.Publish(ctx, PublishInput{AuthorID: f.author.ID, Title: "Draft", Publish: at(2024, 2, 1), Tags: []string{"even"}})
	require.NoError(t, err)

	t.Run("first page", func(t *testing.T) {
		list, err := f.blog.ListPosts(ctx, "", "")
		require.NoError(t, err)
		assert.Equal(t, []string{"Five", "Four", "Three"}, titles(list.Posts))
		assert.Equal(t, 1, list.Page.Number)
		assert.Equal(t, 2, list.Page.NumPages)
		assert.Equal(t, int64(5), list.Page.Count)
		assert.True(t, list.Page.HasNext)
		assert.Nil(t, list.Tag)
	})

	t.Run("second page", func(t *testing.T) {
		list, err := f.blog.ListPosts(ctx, "", "2")
		require.NoError(t, err)
		assert.Equal(t, []string{"Two", "One"}, titles(list.Posts))
		assert.False(t, list.Page.HasNext)
	})

	t.Run("non integer page falls back to first", func(t *testing.T) {
		list, err := f.blog.ListPosts(ctx, "", "abc")
		require.NoError(t, err)
		assert.Equal(t, 1, list.Page.Number)
	})

	t.Run("out of range page falls back to last", func(t *testing.T) {
		list, err := f.blog.ListPosts(ctx, "", "42")
		require.NoError(t, err)
		assert.Equal(t, 2, list.Page.Number)
		assert.Equal(t, []string{"Two", "One"}, titles(list.Posts))
	})

	t.Run("tag filter", func(t *testing.T) {
		list, err := f.blog.ListPosts(ctx, "even", "")
		require.NoError(t, err)
		require.NotNil(t, list.Tag)
		assert.Equal(t, "even", list.Tag.Slug)
		assert.Equal(t, []string{"Five", "Three", "One"}, titles(list.Posts))
		assert.Equal(t, 1, list.Page.NumPages)
	})

	t.Run("unknown tag", func(t *testing.T) {
		_, err := f.blog.ListPosts(ctx, "nope", "")
		assert.ErrorIs(t, err, ErrTagNotFound)
	})
}

func TestBlogService_GetPost(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	target := f.publish(t, "Target", at(2024, 3, 5), "go", "db")
	f.publish(t, "Shares two", at(2024, 3, 1), "go", "db")
	f.publish(t, "Shares one", at(2024, 3, 2), "db")
	f.publish(t, "Shares none", at(2024, 3, 3), "misc")

	c1, err := f.blog.AddComment(ctx, target.ID, CommentForm{Name: "ann", Email: "ann@example.com", Body: "nice"})
	require.NoError(t, err)
	hidden, err := f.blog.AddComment(ctx, target.ID, CommentForm{Name: "bot", Email: "bot@example.com", Body: "spam"})
	require.NoError(t, err)
	require.NoError(t, f.db.Model(hidden).Update("active", false).Error)

	detail, err := f.blog.GetPost(ctx, 2024, 3, 5, "target")
	require.NoError(t, err)
	assert.Equal(t, target.ID, detail.Post.ID)
	require.Len(t, detail.Comments, 1)
	assert.Equal(t, c1.ID, detail.Comments[0].ID)
	assert.Equal(t, []string{"Shares two", "Shares one"}, titles(detail.Similar))

	tests := []struct {
		name             string
		year, month, day int
		slug             string
	}{
		{"wrong day", 2024, 3, 6, "target"},
		{"wrong slug", 2024, 3, 5, "other"},
		{"impossible date", 2024, 2, 30, "target"},
		{"month 13", 2024, 13, 1, "target"},
		{"empty slug", 2024, 3, 5, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.blog.GetPost(ctx, tt.year, tt.month, tt.day, tt.slug)
			assert.ErrorIs(t, err, ErrPostNotFound)
		})
	}
}

func TestBlogService_GetPost_Timezone(t *testing.T) {
	f := newFixture(t, nil)
	f.blog.opts.Location = time.FixedZone("UTC+9", 9*3600)
	ctx := context.Background()

	// 2024-03-05 20:00 UTC 在 UTC+9 已是 3 月 6 日
	f.publish(t, "Late", time.Date(2024, 3, 5, 20, 0, 0, 0, time.UTC))

	_, err := f.blog.GetPost(ctx, 2024, 3, 5, "late")
	assert.ErrorIs(t, err, ErrPostNotFound)

	detail, err := f.blog.GetPost(ctx, 2024, 3, 6, "late")
	require.NoError(t, err)
	assert.Equal(t, "Late", detail.Post.Title)
}

func TestBlogService_SimilarPostsCached(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	postCache := cache.NewPostCache(client, time.Minute)

	f := newFixture(t, postCache)
	ctx := context.Background()

	f.publish(t, "Target", at(2024, 3, 5), "go")
	f.publish(t, "Sibling", at(2024, 3, 1), "go")

	detail, err := f.blog.GetPost(ctx, 2024, 3, 5, "target")
	require.NoError(t, err)
	assert.Equal(t, []string{"Sibling"}, titles(detail.Similar))

	detail, err = f.blog.GetPost(ctx, 2024, 3, 5, "target")
	require.NoError(t, err)
	assert.Equal(t, []string{"Sibling"}, titles(detail.Similar))

	hits, misses := postCache.Counters()
	assert.Equal(t, int64(1), hits)
	assert.Equal(t, int64(1), misses)

	// 发布新文章会清空相似文章缓存
	f.publish(t, "Cousin", at(2024, 3, 2), "go")
	detail, err = f.blog.GetPost(ctx, 2024, 3, 5, "target")
	require.NoError(t, err)
	assert.Equal(t, []string{"Cousin", "Sibling"}, titles(detail.Similar))
}

func TestBlogService_SharePost(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	post := f.publish(t, "Who was Django Reinhardt?", at(2024, 1, 2))

	res, err := f.blog.SharePost(ctx, post.ID, ShareForm{
		Name:     " Ann ",
		Email:    "ann@example.com",
		To:       "bob@example.com",
		Comments: "Great read",
	}, "https://blog.example.com/")
	require.NoError(t, err)
	assert.True(t, res.Sent)

	msgs := f.outbox.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, "blog@example.com", msgs[0].From)
	assert.Equal(t, []string{"bob@example.com"}, msgs[0].To)
	assert.Equal(t, "Ann recommends you read Who was Django Reinhardt?", msgs[0].Subject)
	assert.Equal(t,
		"Read Who was Django Reinhardt? at https://blog.example.com/api/v1/blog/posts/2024/1/2/who-was-django-reinhardt\n\nAnn's comments: Great read",
		msgs[0].Body)
}

func TestBlogService_SharePost_Invalid(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	post := f.publish(t, "Hello", at(2024, 1, 2))

	res, err := f.blog.SharePost(ctx, post.ID, ShareForm{Name: "", Email: "bad", To: ""}, "http://x")
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "name")
	assert.Contains(t, verr.Fields, "email")
	assert.Contains(t, verr.Fields, "to")
	assert.NotContains(t, verr.Fields, "comments")
	require.NotNil(t, res)
	assert.False(t, res.Sent)
	assert.Empty(t, f.outbox.Messages())

	_, err = f.blog.SharePost(ctx, 9999, ShareForm{Name: "a", Email: "a@example.com", To: "b@example.com"}, "http://x")
	assert.ErrorIs(t, err, ErrPostNotFound)

	draft, err := f.pub.Publish(ctx, PublishInput{AuthorID: f.author.ID, Title: "Draft", Publish: at(2024, 1, 3)})
	require.NoError(t, err)
	_, err = f.blog.SharePost(ctx, draft.ID, ShareForm{Name: "a", Email: "a@example.com", To: "b@example.com"}, "http://x")
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestBlogService_SharePost_MailUnavailable(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	post := f.publish(t, "Hello", at(2024, 1, 2))

	q := mail.NewQueue(f.outbox, 1)
	stop := q.Start(1)
	require.NoError(t, stop(ctx))
	f.blog.mailer = q

	res, err := f.blog.SharePost(ctx, post.ID, ShareForm{Name: "a", Email: "a@example.com", To: "b@example.com"}, "http://x")
	assert.ErrorIs(t, err, ErrMailUnavailable)
	assert.False(t, res.Sent)
}

func TestBlogService_AddComment(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	post := f.publish(t, "Hello", at(2024, 1, 2))

	c, err := f.blog.AddComment(ctx, post.ID, CommentForm{Name: "Ann", Email: "ann@example.com", Body: " hi "})
	require.NoError(t, err)
	assert.NotZero(t, c.ID)
	assert.Equal(t, post.ID, c.PostID)
	assert.Equal(t, "hi", c.Body)
	assert.True(t, c.Active)

	_, err = f.blog.AddComment(ctx, post.ID, CommentForm{Name: "Ann", Email: "nope", Body: "   "})
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "Enter a valid email address.", verr.Fields["email"])
	assert.Equal(t, "This field is required.", verr.Fields["body"])

	var cnt int64
	require.NoError(t, f.db.Model(&model.Comment{}).Count(&cnt).Error)
	assert.Equal(t, int64(1), cnt, "无效表单不落库")

	_, err = f.blog.AddComment(ctx, 4242, CommentForm{Name: "Ann", Email: "ann@example.com", Body: "hi"})
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestBlogService_Search(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	f.publish(t, "Django tips", at(2024, 1, 1))
	f.publish(t, "Gardening", at(2024, 1, 2))

	res, err := f.blog.Search(ctx, SearchForm{Query: " django "})
	require.NoError(t, err)
	assert.Equal(t, "django", res.Query)
	require.Len(t, res.Results, 1)
	assert.Equal(t, "Django tips", res.Results[0].Post.Title)

	_, err = f.blog.Search(ctx, SearchForm{Query: "   "})
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.Fields, "query")
}

func TestBlogService_StatsAndFeed(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	a := f.publish(t, "Alpha", at(2024, 1, 1), "go")
	f.publish(t, "Beta", at(2024, 1, 2), "django")
	_, err := f.blog.AddComment(ctx, a.ID, CommentForm{Name: "n", Email: "n@example.com", Body: "b"})
	require.NoError(t, err)

	stats, err := f.blog.Stats(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalPosts)
	assert.Equal(t, []string{"Beta", "Alpha"}, titles(stats.LatestPosts))
	require.NotEmpty(t, stats.MostCommented)
	assert.Equal(t, "Alpha", stats.MostCommented[0].Title)
	require.Len(t, stats.Tags, 2)
	assert.Equal(t, "django", stats.Tags[0].Slug)
	assert.Equal(t, "go", stats.Tags[1].Slug)

	rss, err := f.blog.Feed(ctx, "https://blog.example.com")
	require.NoError(t, err)
	assert.Equal(t, "2.0", rss.Version)
	require.Len(t, rss.Channel.Items, 2)
	assert.Equal(t, "Beta", rss.Channel.Items[0].Title)
	assert.Equal(t, "https://blog.example.com/api/v1/blog/posts/2024/1/2/beta", rss.Channel.Items[0].Link)
	assert.Equal(t, "Tue, 02 Jan 2024 12:00:00 +0000", rss.Channel.Items[0].PubDate)
}

func TestTruncateWords(t *testing.T) {
	assert.Equal(t, "a b c", truncateWords("a  b\nc", 3))
	assert.Equal(t, "a b …", truncateWords("a b c d", 2))
}
