package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/air846/personal-blog-system/pkg/domain"
)

// defaultLimit is used by the hot and recommended listings when limit <= 0.
const defaultLimit = 10

// ArticleQuery filters the paginated article list. Zero fields are omitted.
type ArticleQuery struct {
	Page       int
	Size       int
	CategoryID int64
	Status     string
	Keyword    string
}

func (q ArticleQuery) values() url.Values {
	params := url.Values{}
	if q.Page > 0 {
		params.Set("page", strconv.Itoa(q.Page))
	}
	if q.Size > 0 {
		params.Set("size", strconv.Itoa(q.Size))
	}
	if q.CategoryID > 0 {
		params.Set("categoryId", strconv.FormatInt(q.CategoryID, 10))
	}
	if q.Status != "" {
		params.Set("status", q.Status)
	}
	if q.Keyword != "" {
		params.Set("keyword", q.Keyword)
	}
	return params
}

// ArticleRequest is the payload for creating or updating an article.
type ArticleRequest struct {
	Title       string  `json:"title"`
	Content     string  `json:"content"`
	Summary     string  `json:"summary,omitempty"`
	CoverImage  string  `json:"coverImage,omitempty"`
	CategoryID  int64   `json:"categoryId,omitempty"`
	Status      string  `json:"status,omitempty"`
	TagIDs      []int64 `json:"tagIds,omitempty"`
	IsTop       int     `json:"isTop"`
	IsRecommend int     `json:"isRecommend"`
}

func articlePath(id int64) string {
	return "/article/" + strconv.FormatInt(id, 10)
}

// ListArticles fetches a page of articles.
func (c *Client) ListArticles(ctx context.Context, q ArticleQuery) (*domain.Page[domain.Article], error) {
	var page domain.Page[domain.Article]
	if err := c.get(ctx, "/article/list", q.values(), &page); err != nil {
		return nil, fmt.Errorf("client.ListArticles: %w", err)
	}
	return &page, nil
}

// GetArticle fetches a single article by ID. The server counts it as a view.
func (c *Client) GetArticle(ctx context.Context, id int64) (*domain.Article, error) {
	var article domain.Article
	if err := c.get(ctx, articlePath(id), nil, &article); err != nil {
		return nil, fmt.Errorf("client.GetArticle: %w", err)
	}
	return &article, nil
}

// CreateArticle creates a new article owned by the caller.
func (c *Client) CreateArticle(ctx context.Context, req ArticleRequest) error {
	if err := c.post(ctx, "/article", req, nil); err != nil {
		return fmt.Errorf("client.CreateArticle: %w", err)
	}
	return nil
}

// UpdateArticle replaces an article's fields. Only the author may update.
func (c *Client) UpdateArticle(ctx context.Context, id int64, req ArticleRequest) error {
	if err := c.put(ctx, articlePath(id), req, nil); err != nil {
		return fmt.Errorf("client.UpdateArticle: %w", err)
	}
	return nil
}

// DeleteArticle deletes an article. Only the author may delete.
func (c *Client) DeleteArticle(ctx context.Context, id int64) error {
	if err := c.delete(ctx, articlePath(id)); err != nil {
		return fmt.Errorf("client.DeleteArticle: %w", err)
	}
	return nil
}

// PublishArticle moves a draft to published.
func (c *Client) PublishArticle(ctx context.Context, id int64) error {
	if err := c.post(ctx, articlePath(id)+"/publish", nil, nil); err != nil {
		return fmt.Errorf("client.PublishArticle: %w", err)
	}
	return nil
}

// LikeArticle likes an article as the caller.
func (c *Client) LikeArticle(ctx context.Context, id int64) error {
	if err := c.post(ctx, articlePath(id)+"/like", nil, nil); err != nil {
		return fmt.Errorf("client.LikeArticle: %w", err)
	}
	return nil
}

// UnlikeArticle removes the caller's like.
func (c *Client) UnlikeArticle(ctx context.Context, id int64) error {
	if err := c.delete(ctx, articlePath(id)+"/like"); err != nil {
		return fmt.Errorf("client.UnlikeArticle: %w", err)
	}
	return nil
}

// HotArticles returns the most viewed articles.
func (c *Client) HotArticles(ctx context.Context, limit int) ([]domain.Article, error) {
	var articles []domain.Article
	if err := c.get(ctx, "/article/hot", limitParams(limit), &articles); err != nil {
		return nil, fmt.Errorf("client.HotArticles: %w", err)
	}
	return articles, nil
}

// RecommendedArticles returns articles flagged as recommended.
func (c *Client) RecommendedArticles(ctx context.Context, limit int) ([]domain.Article, error) {
	var articles []domain.Article
	if err := c.get(ctx, "/article/recommend", limitParams(limit), &articles); err != nil {
		return nil, fmt.Errorf("client.RecommendedArticles: %w", err)
	}
	return articles, nil
}

// SearchArticles searches articles by keyword.
func (c *Client) SearchArticles(ctx context.Context, keyword string, page, size int) (*domain.Page[domain.Article], error) {
	params := url.Values{}
	params.Set("keyword", keyword)
	if page > 0 {
		params.Set("page", strconv.Itoa(page))
	}
	if size > 0 {
		params.Set("size", strconv.Itoa(size))
	}

	var result domain.Page[domain.Article]
	if err := c.get(ctx, "/article/search", params, &result); err != nil {
		return nil, fmt.Errorf("client.SearchArticles: %w", err)
	}
	return &result, nil
}

func limitParams(limit int) url.Values {
	if limit <= 0 {
		limit = defaultLimit
	}
	params := url.Values{}
	params.Set("limit", strconv.Itoa(limit))
	return params
}
