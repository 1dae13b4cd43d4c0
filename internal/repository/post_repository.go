package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/d60-Lab/gin-blog/internal/model"
	"github.com/d60-Lab/gin-blog/internal/search"
)

// SearchOptions 全文检索参数
type SearchOptions struct {
	Language string  // PostgreSQL text search 配置名，如 english
	MinRank  float64 // 低于该得分的结果被丢弃
	Limit    int     // <= 0 表示不限制
}

// RankedPost 检索结果
type RankedPost struct {
	Post *model.Post `json:"post"`
	Rank float64     `json:"rank"`
}

// CommentCount 文章及其有效评论数
type CommentCount struct {
	ID            uint   `json:"id"`
	Title         string `json:"title"`
	TotalComments int64  `json:"total_comments"`
}

// PostRepository 文章仓储；除 Create 外只返回已发布文章
type PostRepository interface {
	Create(ctx context.Context, post *model.Post) error
	CountPublished(ctx context.Context, tagID uint) (int64, error)
	// ListPublished 按发布时间倒序分页，tagID 为 0 表示不按标签过滤
	ListPublished(ctx context.Context, tagID uint, offset, limit int) ([]*model.Post, error)
	// GetPublishedBySlug 在 [from, to) 发布时间窗口内按 slug 取一篇
	GetPublishedBySlug(ctx context.Context, slug string, from, to time.Time) (*model.Post, error)
	GetPublishedByID(ctx context.Context, id uint) (*model.Post, error)
	// GetPublishedByIDs 按 ids 的顺序返回，缺失的 id 被跳过
	GetPublishedByIDs(ctx context.Context, ids []uint) ([]*model.Post, error)
	// SlugTaken 同一发布日期窗口内 slug 是否已被其他文章占用
	SlugTaken(ctx context.Context, slug string, from, to time.Time, excludeID uint) (bool, error)
	// SimilarIDs 与给定标签共享最多的已发布文章，排除自身
	SimilarIDs(ctx context.Context, postID uint, tagIDs []uint, limit int) ([]uint, error)
	Search(ctx context.Context, query string, opts SearchOptions) ([]RankedPost, error)
	Latest(ctx context.Context, limit int) ([]*model.Post, error)
	MostCommented(ctx context.Context, limit int) ([]CommentCount, error)
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository { return &postRepository{db: db} }

func (r *postRepository) published(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&model.Post{}).Where("posts.status = ?", model.PostStatusPublished)
}

func withTag(q *gorm.DB, tagID uint) *gorm.DB {
	if tagID == 0 {
		return q
	}
	return q.Joins("JOIN post_tags ON post_tags.post_id = posts.id").Where("post_tags.tag_id = ?", tagID)
}

func (r *postRepository) Create(ctx context.Context, post *model.Post) error {
	// sqlite 以文本比较时间，统一存 UTC
	post.Publish = post.Publish.UTC()
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *postRepository) CountPublished(ctx context.Context, tagID uint) (int64, error) {
	var cnt int64
	err := withTag(r.published(ctx), tagID).Count(&cnt).Error
	return cnt, err
}

func (r *postRepository) ListPublished(ctx context.Context, tagID uint, offset, limit int) ([]*model.Post, error) {
	var posts []*model.Post
	err := withTag(r.published(ctx), tagID).
		Preload("Tags").
		Preload("Author").
		Order("posts.publish DESC, posts.id DESC").
		Offset(offset).
		Limit(limit).
		Find(&posts).Error
	return posts, err
}

func (r *postRepository) GetPublishedBySlug(ctx context.Context, slug string, from, to time.Time) (*model.Post, error) {
	var post model.Post
	err := r.published(ctx).
		Preload("Tags").
		Preload("Author").
		Where("posts.slug = ? AND posts.publish >= ? AND posts.publish < ?", slug, from.UTC(), to.UTC()).
		Order("posts.publish DESC").
		First(&post).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) GetPublishedByID(ctx context.Context, id uint) (*model.Post, error) {
	var post model.Post
	err := r.published(ctx).Preload("Tags").Where("posts.id = ?", id).First(&post).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) GetPublishedByIDs(ctx context.Context, ids []uint) ([]*model.Post, error) {
	if len(ids) == 0 {
		return []*model.Post{}, nil
	}
	var rows []*model.Post
	if err := r.published(ctx).
		Preload("Tags").
		Preload("Author").
		Where("posts.id IN ?", ids).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	byID := make(map[uint]*model.Post, len(rows))
	for _, p := range rows {
		byID[p.ID] = p
	}
	out := make([]*model.Post, 0, len(ids))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *postRepository) SlugTaken(ctx context.Context, slug string, from, to time.Time, excludeID uint) (bool, error) {
	var cnt int64
	q := r.db.WithContext(ctx).Model(&model.Post{}).
		Where("slug = ? AND publish >= ? AND publish < ?", slug, from.UTC(), to.UTC())
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}

func (r *postRepository) SimilarIDs(ctx context.Context, postID uint, tagIDs []uint, limit int) ([]uint, error) {
	if len(tagIDs) == 0 || limit <= 0 {
		return []uint{}, nil
	}
	type row struct {
		ID       uint
		SameTags int64
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Table("posts").
		Select("posts.id AS id, COUNT(post_tags.tag_id) AS same_tags").
		Joins("JOIN post_tags ON post_tags.post_id = posts.id").
		Where("post_tags.tag_id IN ?", tagIDs).
		Where("posts.status = ? AND posts.id <> ?", model.PostStatusPublished, postID).
		Group("posts.id, posts.publish").
		Order("same_tags DESC, posts.publish DESC, posts.id DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	ids := make([]uint, len(rows))
	for i, rw := range rows {
		ids[i] = rw.ID
	}
	return ids, nil
}

func (r *postRepository) Search(ctx context.Context, query string, opts SearchOptions) ([]RankedPost, error) {
	var (
		hits []rankedID
		err  error
	)
	if r.db.Dialector.Name() == "postgres" {
		hits, err = r.searchTSVector(ctx, query, opts)
	} else {
		hits, err = r.searchInProcess(ctx, query, opts)
	}
	if err != nil {
		return nil, err
	}

	ids := make([]uint, len(hits))
	rank := make(map[uint]float64, len(hits))
	for i, h := range hits {
		ids[i] = h.ID
		rank[h.ID] = h.Rank
	}
	posts, err := r.GetPublishedByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make([]RankedPost, len(posts))
	for i, p := range posts {
		out[i] = RankedPost{Post: p, Rank: rank[p.ID]}
	}
	return out, nil
}

type rankedID struct {
	ID   uint
	Rank float64
}

const tsRankSQL = `
SELECT id, rank FROM (
	SELECT posts.id AS id,
		ts_rank(
			setweight(to_tsvector(CAST(@lang AS regconfig), posts.title), 'A') ||
			setweight(to_tsvector(CAST(@lang AS regconfig), posts.body), 'B'),
			plainto_tsquery(CAST(@lang AS regconfig), @query)
		) AS rank
	FROM posts
	WHERE posts.status = @status
) ranked
WHERE rank >= @min_rank
ORDER BY rank DESC, id DESC`

func (r *postRepository) searchTSVector(ctx context.Context, query string, opts SearchOptions) ([]rankedID, error) {
	var hits []rankedID
	err := tsRankQuery(r.db.WithContext(ctx), query, opts).Scan(&hits).Error
	return hits, err
}

// tsRankQuery 构造 ts_rank 检索语句，标题权重 A，正文权重 B
func tsRankQuery(db *gorm.DB, query string, opts SearchOptions) *gorm.DB {
	lang := opts.Language
	if lang == "" {
		lang = "english"
	}
	sql := tsRankSQL
	args := map[string]interface{}{
		"lang":     lang,
		"query":    query,
		"status":   model.PostStatusPublished,
		"min_rank": opts.MinRank,
	}
	if opts.Limit > 0 {
		sql += "\nLIMIT @limit"
		args["limit"] = opts.Limit
	}
	return db.Raw(sql, args)
}

func (r *postRepository) searchInProcess(ctx context.Context, query string, opts SearchOptions) ([]rankedID, error) {
	type doc struct {
		ID    uint
		Title string
		Body  string
	}
	var rows []doc
	if err := r.published(ctx).
		Select("posts.id, posts.title, posts.body").
		Order("posts.publish DESC, posts.id DESC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	docs := make([]search.Document, len(rows))
	for i, d := range rows {
		docs[i] = search.Document{Title: d.Title, Body: d.Body}
	}
	found := search.RankAll(query, docs, opts.MinRank)
	if opts.Limit > 0 && len(found) > opts.Limit {
		found = found[:opts.Limit]
	}
	hits := make([]rankedID, len(found))
	for i, h := range found {
		hits[i] = rankedID{ID: rows[h.Index].ID, Rank: h.Rank}
	}
	return hits, nil
}

func (r *postRepository) Latest(ctx context.Context, limit int) ([]*model.Post, error) {
	var posts []*model.Post
	err := r.published(ctx).
		Preload("Tags").
		Order("posts.publish DESC, posts.id DESC").
		Limit(limit).
		Find(&posts).Error
	return posts, err
}

func (r *postRepository) MostCommented(ctx context.Context, limit int) ([]CommentCount, error) {
	var rows []CommentCount
	err := r.db.WithContext(ctx).
		Table("posts").
		Select("posts.id AS id, posts.title AS title, COUNT(comments.id) AS total_comments").
		Joins("LEFT JOIN comments ON comments.post_id = posts.id AND comments.active = ?", true).
		Where("posts.status = ?", model.PostStatusPublished).
		Group("posts.id, posts.title").
		Order("total_comments DESC, posts.id ASC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}
