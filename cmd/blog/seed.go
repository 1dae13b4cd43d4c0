package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/d60-Lab/gin-blog/internal/model"
	"github.com/d60-Lab/gin-blog/internal/repository"
	"github.com/d60-Lab/gin-blog/internal/service"
	"github.com/d60-Lab/gin-blog/pkg/database"
	"github.com/d60-Lab/gin-blog/pkg/logger"
)

type seedPost struct {
	title string
	body  string
	tags  []string
}

var demoPosts = []seedPost{
	{"Who was Django Reinhardt?", "Django Reinhardt was a Belgian-born Romani-French jazz guitarist and composer.", []string{"music", "jazz"}},
	{"Another post", "Gypsy jazz grew out of the Paris musette scene.", []string{"jazz"}},
	{"Notes on weighted search", "Titles weigh more than bodies when ranking search results.", []string{"search", "postgres"}},
	{"Pagination without surprises", "Out of range pages fall back to the last page.", []string{"django"}},
	{"Draft in progress", "Not ready yet.", nil},
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert demo author, posts, tags and comments",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			defer logger.Sync()

			db, err := database.InitDB(cfg)
			if err != nil {
				return err
			}
			defer database.Close(db)
			if err := repository.AutoMigrate(db); err != nil {
				return err
			}
			return seed(cmd.Context(), db, cfg.Blog.Location())
		},
	}
}

func seed(ctx context.Context, db *gorm.DB, loc *time.Location) error {
	if ctx == nil {
		ctx = context.Background()
	}
	author := model.User{Username: "admin", Email: "admin@example.com"}
	if err := db.Where("username = ?", author.Username).FirstOrCreate(&author).Error; err != nil {
		return err
	}

	pub := service.NewPublisher(db, nil, loc)
	comments := repository.NewCommentRepository(db)
	base := time.Now().In(loc).AddDate(0, 0, -len(demoPosts))
	for i, sp := range demoPosts {
		status := model.PostStatusPublished
		if sp.tags == nil {
			status = model.PostStatusDraft
		}
		post, err := pub.Publish(ctx, service.PublishInput{
			AuthorID: author.ID,
			Title:    sp.title,
			Body:     sp.body,
			Publish:  base.AddDate(0, 0, i),
			Status:   status,
			Tags:     sp.tags,
		})
		if errors.Is(err, service.ErrSlugTaken) {
			logger.Info("seed post exists", zap.String("title", sp.title))
			continue
		}
		if err != nil {
			return fmt.Errorf("seed %q: %w", sp.title, err)
		}
		for j := 0; j <= i%3; j++ {
			c := &model.Comment{
				PostID: post.ID,
				Name:   fmt.Sprintf("reader%d", j),
				Email:  fmt.Sprintf("reader%d@example.com", j),
				Body:   "Thanks for writing this.",
				Active: true,
			}
			if err := comments.Create(ctx, c); err != nil {
				return err
			}
		}
		logger.Info("seeded post", zap.Uint("id", post.ID), zap.String("path", post.Path(loc)))
	}
	return nil
}
