package main

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/d60-Lab/gin-blog/config"
	"github.com/d60-Lab/gin-blog/internal/model"
	"github.com/d60-Lab/gin-blog/internal/repository"
	"github.com/d60-Lab/gin-blog/internal/service"
	"github.com/d60-Lab/gin-blog/pkg/database"
	"github.com/d60-Lab/gin-blog/pkg/mail"
)

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

func pct(vs []time.Duration, p float64) time.Duration {
	if len(vs) == 0 {
		return 0
	}
	xs := append([]time.Duration(nil), vs...)
	sort.Slice(xs, func(i, j int) bool { return xs[i] < xs[j] })
	k := int(math.Ceil(p*float64(len(xs)))) - 1
	if k < 0 {
		k = 0
	}
	if k >= len(xs) {
		k = len(xs) - 1
	}
	return xs[k]
}

func envInt(name string, def int) int {
	if s := os.Getenv(name); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 {
			return v
		}
	}
	return def
}

func report(name string, ds []time.Duration) {
	if len(ds) == 0 {
		return
	}
	var sum time.Duration
	for _, d := range ds {
		sum += d
	}
	fmt.Printf("%-10s n=%d avg=%v p50=%v p95=%v p99=%v\n", name, len(ds), sum/time.Duration(len(ds)), pct(ds, 0.5), pct(ds, 0.95), pct(ds, 0.99))
}

var vocabulary = strings.Fields("django jazz guitar python search index postgres rank title body music paris swing tag slug page comment share order postal")

func sentence(r *rand.Rand, n int) string {
	words := make([]string, n)
	for i := range words {
		words[i] = vocabulary[r.Intn(len(vocabulary))]
	}
	return strings.Join(words, " ")
}

func main() {
	ctx := context.Background()
	cfg := must(config.Load())
	db := must(database.InitDB(cfg))
	defer database.Close(db)
	if err := repository.AutoMigrate(db); err != nil {
		panic(err)
	}

	// params
	POSTS := envInt("POSTS", 2000)
	QUERIES := envInt("QUERIES", 200)
	TAGS := envInt("TAGS", 20)
	r := rand.New(rand.NewSource(42))

	author := model.User{Username: "bench-" + uuid.NewString()[:8], Email: "bench@example.com"}
	if err := db.Create(&author).Error; err != nil {
		panic(err)
	}

	pub := service.NewPublisher(db, nil, cfg.Blog.Location())
	start := time.Now().AddDate(0, 0, -POSTS)
	pubDurations := make([]time.Duration, 0, POSTS)
	for i := 0; i < POSTS; i++ {
		tags := []string{fmt.Sprintf("tag%d", r.Intn(TAGS)), fmt.Sprintf("tag%d", r.Intn(TAGS))}
		st := time.Now()
		_, err := pub.Publish(ctx, service.PublishInput{
			AuthorID: author.ID,
			Title:    fmt.Sprintf("%s %d", sentence(r, 4), i),
			Body:     sentence(r, 120),
			Publish:  start.AddDate(0, 0, i),
			Status:   model.PostStatusPublished,
			Tags:     tags,
		})
		if err != nil {
			panic(err)
		}
		pubDurations = append(pubDurations, time.Since(st))
	}

	blog := service.NewBlogService(
		repository.NewPostRepository(db),
		repository.NewTagRepository(db),
		repository.NewCommentRepository(db),
		nil,
		&mail.Outbox{},
		service.BlogOptionsFromConfig(cfg),
	)

	searchDurations := make([]time.Duration, 0, QUERIES)
	listDurations := make([]time.Duration, 0, QUERIES)
	hits := 0
	for i := 0; i < QUERIES; i++ {
		st := time.Now()
		res, err := blog.Search(ctx, service.SearchForm{Query: sentence(r, 1+r.Intn(2))})
		if err != nil {
			panic(err)
		}
		searchDurations = append(searchDurations, time.Since(st))
		hits += len(res.Results)

		st = time.Now()
		if _, err := blog.ListPosts(ctx, fmt.Sprintf("tag%d", r.Intn(TAGS)), strconv.Itoa(1+r.Intn(50))); err != nil {
			panic(err)
		}
		listDurations = append(listDurations, time.Since(st))
	}

	fmt.Printf("driver=%s POSTS=%d QUERIES=%d TAGS=%d\n", cfg.Database.Driver, POSTS, QUERIES, TAGS)
	report("publish", pubDurations)
	report("search", searchDurations)
	report("list", listDurations)
	fmt.Printf("avg hits per query: %.1f\n", float64(hits)/float64(QUERIES))
}
