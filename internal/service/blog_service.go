package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/d60-Lab/gin-blog/config"
	"github.com/d60-Lab/gin-blog/internal/cache"
	"github.com/d60-Lab/gin-blog/internal/model"
	"github.com/d60-Lab/gin-blog/internal/repository"
	"github.com/d60-Lab/gin-blog/internal/validation"
	"github.com/d60-Lab/gin-blog/pkg/logger"
	"github.com/d60-Lab/gin-blog/pkg/mail"
	"github.com/d60-Lab/gin-blog/pkg/paginate"
)

// BlogOptions 博客服务参数
type BlogOptions struct {
	PageSize       int
	SimilarLimit   int
	SearchMinRank  float64
	SearchLanguage string
	FeedSize       int
	Location       *time.Location
	MailFrom       string
}

// BlogOptionsFromConfig 从应用配置构造参数
func BlogOptionsFromConfig(cfg *config.Config) BlogOptions {
	return BlogOptions{
		PageSize:       cfg.Blog.PageSize,
		SimilarLimit:   cfg.Blog.SimilarLimit,
		SearchMinRank:  cfg.Blog.SearchMinRank,
		SearchLanguage: cfg.Blog.SearchLanguage,
		FeedSize:       cfg.Blog.FeedSize,
		Location:       cfg.Blog.Location(),
		MailFrom:       cfg.Mail.From,
	}
}

// BlogService 博客的读写流程：列表、详情、分享、评论、检索
type BlogService struct {
	posts    repository.PostRepository
	tags     repository.TagRepository
	comments repository.CommentRepository
	cache    *cache.PostCache
	mailer   mail.Sender
	validate *validation.Validator
	opts     BlogOptions
}

func NewBlogService(
	posts repository.PostRepository,
	tags repository.TagRepository,
	comments repository.CommentRepository,
	postCache *cache.PostCache,
	mailer mail.Sender,
	opts BlogOptions,
) *BlogService {
	if opts.PageSize <= 0 {
		opts.PageSize = 3
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.FeedSize <= 0 {
		opts.FeedSize = 5
	}
	return &BlogService{
		posts:    posts,
		tags:     tags,
		comments: comments,
		cache:    postCache,
		mailer:   mailer,
		validate: validation.New(),
		opts:     opts,
	}
}

// PostList 列表页结果
type PostList struct {
	Posts []*model.Post   `json:"posts"`
	Page  paginate.Window `json:"page"`
	Tag   *model.Tag      `json:"tag,omitempty"`
}

// ListPosts 已发布文章分页列表，tagSlug 非空时只列出带该标签的文章
func (s *BlogService) ListPosts(ctx context.Context, tagSlug, rawPage string) (*PostList, error) {
	var tag *model.Tag
	var tagID uint
	if tagSlug != "" {
		t, err := s.tags.GetBySlug(ctx, tagSlug)
		if err != nil {
			return nil, notFound(err, ErrTagNotFound)
		}
		tag, tagID = t, t.ID
	}

	count, err := s.posts.CountPublished(ctx, tagID)
	if err != nil {
		return nil, fmt.Errorf("count posts: %w", err)
	}
	page := paginate.New(count, s.opts.PageSize).Page(rawPage)

	posts, err := s.posts.ListPublished(ctx, tagID, page.Offset, page.Limit())
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return &PostList{Posts: posts, Page: page, Tag: tag}, nil
}

// PostDetail 详情页结果
type PostDetail struct {
	Post     *model.Post      `json:"post"`
	Comments []*model.Comment `json:"comments"`
	Similar  []*model.Post    `json:"similar_posts"`
}

// dayBounds 返回 t 在 loc 时区所在自然日的 [from, to)
func dayBounds(t time.Time, loc *time.Location) (time.Time, time.Time) {
	y, m, d := t.In(loc).Date()
	from := time.Date(y, m, d, 0, 0, 0, 0, loc)
	return from, from.AddDate(0, 0, 1)
}

// GetPost 按 (年, 月, 日, slug) 取已发布文章，带有效评论与相似文章
func (s *BlogService) GetPost(ctx context.Context, year, month, day int, slug string) (*PostDetail, error) {
	date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, s.opts.Location)
	if date.Year() != year || int(date.Month()) != month || date.Day() != day || slug == "" {
		return nil, ErrPostNotFound
	}
	from, to := dayBounds(date, s.opts.Location)

	post, err := s.posts.GetPublishedBySlug(ctx, slug, from, to)
	if err != nil {
		return nil, notFound(err, ErrPostNotFound)
	}

	comments, err := s.comments.ListActive(ctx, post.ID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	if comments == nil {
		comments = []*model.Comment{}
	}

	similar, err := s.similarPosts(ctx, post)
	if err != nil {
		return nil, err
	}
	return &PostDetail{Post: post, Comments: comments, Similar: similar}, nil
}

func (s *BlogService) similarPosts(ctx context.Context, post *model.Post) ([]*model.Post, error) {
	ids, ok := s.cache.SimilarIDs(ctx, post.ID)
	if !ok {
		var err error
		ids, err = s.posts.SimilarIDs(ctx, post.ID, post.TagIDs(), s.opts.SimilarLimit)
		if err != nil {
			return nil, fmt.Errorf("similar posts: %w", err)
		}
		s.cache.SetSimilarIDs(ctx, post.ID, ids)
	}
	posts, err := s.posts.GetPublishedByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load similar posts: %w", err)
	}
	return posts, nil
}

// ShareResult 分享结果
type ShareResult struct {
	Post *model.Post `json:"post"`
	Sent bool        `json:"sent"`
}

// SharePost 校验分享表单并发送推荐邮件；baseURL 用于拼接文章绝对地址
func (s *BlogService) SharePost(ctx context.Context, postID uint, form ShareForm, baseURL string) (*ShareResult, error) {
	post, err := s.posts.GetPublishedByID(ctx, postID)
	if err != nil {
		return nil, notFound(err, ErrPostNotFound)
	}
	res := &ShareResult{Post: post}

	form.clean()
	fields, err := s.validate.Struct(form)
	if err != nil {
		return res, err
	}
	if fields != nil {
		return res, &ValidationError{Fields: fields}
	}

	postURL := strings.TrimRight(baseURL, "/") + post.Path(s.opts.Location)
	msg := mail.Message{
		From:    s.opts.MailFrom,
		To:      []string{form.To},
		Subject: fmt.Sprintf("%s recommends you read %s", form.Name, post.Title),
		Body:    fmt.Sprintf("Read %s at %s\n\n%s's comments: %s", post.Title, postURL, form.Name, form.Comments),
	}
	if err := s.mailer.Send(ctx, msg); err != nil {
		if errors.Is(err, mail.ErrQueueFull) || errors.Is(err, mail.ErrQueueClosed) {
			return res, fmt.Errorf("%w: %v", ErrMailUnavailable, err)
		}
		return res, fmt.Errorf("send share mail: %w", err)
	}
	logger.Info("post shared", zap.Uint("post_id", post.ID), zap.String("to", form.To))
	res.Sent = true
	return res, nil
}

// AddComment 校验评论表单并保存，评论默认有效
func (s *BlogService) AddComment(ctx context.Context, postID uint, form CommentForm) (*model.Comment, error) {
	post, err := s.posts.GetPublishedByID(ctx, postID)
	if err != nil {
		return nil, notFound(err, ErrPostNotFound)
	}

	form.clean()
	fields, err := s.validate.Struct(form)
	if err != nil {
		return nil, err
	}
	if fields != nil {
		return nil, &ValidationError{Fields: fields}
	}

	comment := &model.Comment{
		PostID: post.ID,
		Name:   form.Name,
		Email:  form.Email,
		Body:   form.Body,
		Active: true,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	return comment, nil
}

// SearchResult 检索结果
type SearchResult struct {
	Query   string                  `json:"query"`
	Results []repository.RankedPost `json:"results"`
}

// Search 加权全文检索：标题权重高于正文，低于阈值的结果被过滤
func (s *BlogService) Search(ctx context.Context, form SearchForm) (*SearchResult, error) {
	form.Query = strings.TrimSpace(form.Query)
	fields, err := s.validate.Struct(form)
	if err != nil {
		return nil, err
	}
	if fields != nil {
		return nil, &ValidationError{Fields: fields}
	}

	results, err := s.posts.Search(ctx, form.Query, repository.SearchOptions{
		Language: s.opts.SearchLanguage,
		MinRank:  s.opts.SearchMinRank,
	})
	if err != nil {
		return nil, fmt.Errorf("search posts: %w", err)
	}
	return &SearchResult{Query: form.Query, Results: results}, nil
}

// Stats 侧边栏统计
type Stats struct {
	TotalPosts    int64                     `json:"total_posts"`
	LatestPosts   []*model.Post             `json:"latest_posts"`
	MostCommented []repository.CommentCount `json:"most_commented"`
	Tags          []*model.Tag              `json:"tags"`
}

// Stats 汇总已发布文章数、最新文章、评论最多的文章与全部标签
func (s *BlogService) Stats(ctx context.Context, count int) (*Stats, error) {
	if count < 1 {
		count = 5
	}
	if count > 20 {
		count = 20
	}
	total, err := s.posts.CountPublished(ctx, 0)
	if err != nil {
		return nil, fmt.Errorf("count posts: %w", err)
	}
	latest, err := s.posts.Latest(ctx, count)
	if err != nil {
		return nil, fmt.Errorf("latest posts: %w", err)
	}
	most, err := s.posts.MostCommented(ctx, count)
	if err != nil {
		return nil, fmt.Errorf("most commented: %w", err)
	}
	tags, err := s.tags.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	return &Stats{TotalPosts: total, LatestPosts: latest, MostCommented: most, Tags: tags}, nil
}
