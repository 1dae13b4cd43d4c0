package repository

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/d60-Lab/gin-blog/internal/model"
)

// AutoMigrate 初始化全部表结构
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.User{},
		&model.Tag{},
		&model.Post{},
		&model.Comment{},
		&model.Order{},
	); err != nil {
		return fmt.Errorf("failed to migrate tables: %w", err)
	}
	return nil
}
