package client

import (
	"context"
	"fmt"
	"strconv"

	"github.com/air846/personal-blog-system/pkg/domain"
)

// ListCategories returns all enabled categories.
func (c *Client) ListCategories(ctx context.Context) ([]domain.Category, error) {
	var categories []domain.Category
	if err := c.get(ctx, "/category/list", nil, &categories); err != nil {
		return nil, fmt.Errorf("client.ListCategories: %w", err)
	}
	return categories, nil
}

// GetCategory fetches a single category by ID.
func (c *Client) GetCategory(ctx context.Context, id int64) (*domain.Category, error) {
	var category domain.Category
	if err := c.get(ctx, "/category/"+strconv.FormatInt(id, 10), nil, &category); err != nil {
		return nil, fmt.Errorf("client.GetCategory: %w", err)
	}
	return &category, nil
}

// ListTags returns all tags.
func (c *Client) ListTags(ctx context.Context) ([]domain.Tag, error) {
	var tags []domain.Tag
	if err := c.get(ctx, "/tag/list", nil, &tags); err != nil {
		return nil, fmt.Errorf("client.ListTags: %w", err)
	}
	return tags, nil
}

// GetTag fetches a single tag by ID.
func (c *Client) GetTag(ctx context.Context, id int64) (*domain.Tag, error) {
	var tag domain.Tag
	if err := c.get(ctx, "/tag/"+strconv.FormatInt(id, 10), nil, &tag); err != nil {
		return nil, fmt.Errorf("client.GetTag: %w", err)
	}
	return &tag, nil
}
