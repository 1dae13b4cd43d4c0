package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/d60-Lab/gin-blog/internal/model"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *model.Comment) error
	// ListActive 文章下的有效评论，按创建时间正序
	ListActive(ctx context.Context, postID uint) ([]*model.Comment, error)
}

type commentRepository struct{ db *gorm.DB }

func NewCommentRepository(db *gorm.DB) CommentRepository { return &commentRepository{db: db} }

func (r *commentRepository) Create(ctx context.Context, comment *model.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *commentRepository) ListActive(ctx context.Context, postID uint) ([]*model.Comment, error) {
	var res []*model.Comment
	err := r.db.WithContext(ctx).
		Where("post_id = ? AND active = ?", postID, true).
		Order("created_at ASC, id ASC").
		Find(&res).Error
	return res, err
}
