package model

import "time"

// Comment 文章评论，提交即创建，之后不再修改
type Comment struct {
	ID     uint   `json:"id" gorm:"primaryKey"`
	PostID uint   `json:"post_id" gorm:"not null;index:idx_comment_post_created"`
	Name   string `json:"name" gorm:"type:varchar(80);not null"`
	Email  string `json:"email" gorm:"type:varchar(254);not null"`
	Body   string `json:"body" gorm:"type:text;not null"`
	Active bool   `json:"active" gorm:"not null;default:true;index"`

	CreatedAt time.Time `json:"created" gorm:"index:idx_comment_post_created"`
	UpdatedAt time.Time `json:"updated"`
}

func (Comment) TableName() string { return "comments" }
