package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"

	"github.com/d60-Lab/gin-blog/internal/repository"
	"github.com/d60-Lab/gin-blog/internal/service"
	"github.com/d60-Lab/gin-blog/pkg/response"
)

// ListPosts 已发布文章列表
// @Summary 文章列表
// @Tags 博客
// @Produce json
// @Param page query string false "页码，可为 last" default(1)
// @Param tag query string false "标签 slug"
// @Success 200 {object} response.Response{data=service.PostList}
// @Failure 404 {object} response.Response
// @Router /api/v1/blog/posts [get]
func (h *Handler) ListPosts(c *gin.Context) {
	h.listPosts(c, c.Query("tag"))
}

// ListPostsByTag 按标签列出文章
// @Summary 标签下的文章列表
// @Tags 博客
// @Produce json
// @Param tag_slug path string true "标签 slug"
// @Param page query string false "页码，可为 last" default(1)
// @Success 200 {object} response.Response{data=service.PostList}
// @Failure 404 {object} response.Response
// @Router /api/v1/blog/tag/{tag_slug} [get]
func (h *Handler) ListPostsByTag(c *gin.Context) {
	h.listPosts(c, c.Param("tag_slug"))
}

func (h *Handler) listPosts(c *gin.Context, tagSlug string) {
	list, err := h.blog.ListPosts(c.Request.Context(), tagSlug, c.Query("page"))
	if err != nil {
		fail(c, err, nil)
		return
	}
	response.Success(c, list)
}

// GetPost 文章详情
// @Summary 文章详情（有效评论与相似文章）
// @Tags 博客
// @Produce json
// @Param year path int true "年"
// @Param month path int true "月"
// @Param day path int true "日"
// @Param slug path string true "文章 slug"
// @Success 200 {object} response.Response{data=service.PostDetail}
// @Failure 404 {object} response.Response
// @Router /api/v1/blog/posts/{year}/{month}/{day}/{slug} [get]
func (h *Handler) GetPost(c *gin.Context) {
	year, err1 := strconv.Atoi(c.Param("year"))
	month, err2 := strconv.Atoi(c.Param("month"))
	day, err3 := strconv.Atoi(c.Param("day"))
	if err1 != nil || err2 != nil || err3 != nil {
		response.NotFound(c, service.ErrPostNotFound.Error())
		return
	}
	detail, err := h.blog.GetPost(c.Request.Context(), year, month, day, c.Param("slug"))
	if err != nil {
		fail(c, err, nil)
		return
	}
	response.Success(c, detail)
}

// SharePost 通过邮件推荐文章
// @Summary 分享文章
// @Tags 博客
// @Accept json
// @Produce json
// @Param id path int true "文章ID"
// @Param request body service.ShareForm true "分享表单"
// @Success 200 {object} response.Response{data=service.ShareResult}
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 429 {object} response.Response
// @Failure 503 {object} response.Response
// @Router /api/v1/blog/posts/{id}/share [post]
func (h *Handler) SharePost(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		response.NotFound(c, service.ErrPostNotFound.Error())
		return
	}
	var form service.ShareForm
	if err := c.ShouldBind(&form); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	base, err := h.absoluteBase(c)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	res, err := h.blog.SharePost(c.Request.Context(), id, form, base)
	if err != nil {
		fail(c, err, res)
		return
	}
	response.Success(c, res)
}

// AddComment 发表评论
// @Summary 发表评论
// @Tags 博客
// @Accept json
// @Produce json
// @Param id path int true "文章ID"
// @Param request body service.CommentForm true "评论表单"
// @Success 201 {object} response.Response{data=model.Comment}
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 429 {object} response.Response
// @Router /api/v1/blog/posts/{id}/comment [post]
func (h *Handler) AddComment(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		response.NotFound(c, service.ErrPostNotFound.Error())
		return
	}
	var form service.CommentForm
	if err := c.ShouldBind(&form); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	comment, err := h.blog.AddComment(c.Request.Context(), id, form)
	if err != nil {
		fail(c, err, form)
		return
	}
	response.Created(c, comment)
}

// Search 全文检索
// @Summary 检索文章
// @Description 不带 query 参数时返回空结果；query 为空白时校验失败
// @Tags 博客
// @Produce json
// @Param query query string false "检索词"
// @Success 200 {object} response.Response{data=service.SearchResult}
// @Failure 400 {object} response.Response
// @Router /api/v1/blog/search [get]
func (h *Handler) Search(c *gin.Context) {
	query, ok := c.GetQuery("query")
	if !ok {
		response.Success(c, service.SearchResult{Results: []repository.RankedPost{}})
		return
	}
	res, err := h.blog.Search(c.Request.Context(), service.SearchForm{Query: query})
	if err != nil {
		fail(c, err, nil)
		return
	}
	response.Success(c, res)
}

// Stats 侧边栏统计
// @Summary 博客统计
// @Tags 博客
// @Produce json
// @Param count query int false "最新/最多评论文章数量" default(5)
// @Success 200 {object} response.Response{data=service.Stats}
// @Router /api/v1/blog/stats [get]
func (h *Handler) Stats(c *gin.Context) {
	count, _ := strconv.Atoi(c.DefaultQuery("count", "5"))
	stats, err := h.blog.Stats(c.Request.Context(), count)
	if err != nil {
		fail(c, err, nil)
		return
	}
	response.Success(c, stats)
}

const rssContentType = "application/rss+xml; charset=utf-8"

// Feed RSS 订阅
// @Summary 最新文章 RSS
// @Tags 博客
// @Produce application/rss+xml
// @Success 200 {object} service.RSS
// @Failure 400 {object} response.Response
// @Router /api/v1/blog/feed [get]
func (h *Handler) Feed(c *gin.Context) {
	base, err := h.absoluteBase(c)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	rss, err := h.blog.Feed(c.Request.Context(), base)
	if err != nil {
		fail(c, err, nil)
		return
	}
	// render.XML 只在未设置 Content-Type 时写入 application/xml
	c.Header("Content-Type", rssContentType)
	c.Render(http.StatusOK, render.XML{Data: rss})
}
