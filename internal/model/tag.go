package model

// Tag 标签，与文章多对多（post_tags）
type Tag struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"type:varchar(100);not null"`
	Slug string `json:"slug" gorm:"type:varchar(100);uniqueIndex;not null"`
}

func (Tag) TableName() string { return "tags" }
