package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/d60-Lab/gin-blog/internal/model"
)

type TagRepository interface {
	GetBySlug(ctx context.Context, slug string) (*model.Tag, error)
	List(ctx context.Context) ([]*model.Tag, error)
}

type tagRepository struct{ db *gorm.DB }

func NewTagRepository(db *gorm.DB) TagRepository { return &tagRepository{db: db} }

func (r *tagRepository) GetBySlug(ctx context.Context, slug string) (*model.Tag, error) {
	var tag model.Tag
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

func (r *tagRepository) List(ctx context.Context) ([]*model.Tag, error) {
	var tags []*model.Tag
	err := r.db.WithContext(ctx).Order("name").Find(&tags).Error
	return tags, err
}
