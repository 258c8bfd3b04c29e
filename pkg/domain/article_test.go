package domain

import (
	"encoding/json"
	"testing"
)

func TestValidStatus(t *testing.T) {
	tests := []struct {
		name   string
		status string
		valid  bool
	}{
		{"valid draft", "DRAFT", true},
		{"valid published", "PUBLISHED", true},
		{"valid archived", "ARCHIVED", true},
		{"invalid empty", "", false},
		{"invalid lowercase", "draft", false},
		{"invalid unknown", "DELETED", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidStatus(tt.status); got != tt.valid {
				t.Errorf("ValidStatus(%q) = %v, want %v", tt.status, got, tt.valid)
			}
		})
	}
}

func TestArticleDecodesServerShape(t *testing.T) {
	raw := `{"id":7,"title":"Hello","content":"# hi","categoryId":2,"authorId":3,
		"status":"PUBLISHED","viewCount":10,"likeCount":4,"isTop":1,"isRecommend":0,
		"publishTime":"2024-03-01T09:30:00","createTime":"2024-02-28 08:00:00","updateTime":null}`

	var a Article
	if err := json.Unmarshal([]byte(raw), &a); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if a.ID != 7 || a.Title != "Hello" {
		t.Errorf("got id=%d title=%q, want 7 %q", a.ID, a.Title, "Hello")
	}
	if !a.Published() {
		t.Error("Published() = false, want true")
	}
	if !a.Pinned() {
		t.Error("Pinned() = false, want true")
	}
	if a.Recommended() {
		t.Error("Recommended() = true, want false")
	}
	if a.PublishTime.Year() != 2024 || a.PublishTime.Month() != 3 || a.PublishTime.Hour() != 9 {
		t.Errorf("PublishTime = %v, want 2024-03-01 09:30", a.PublishTime.Time)
	}
	if a.CreateTime.Day() != 28 {
		t.Errorf("CreateTime = %v, want day 28", a.CreateTime.Time)
	}
	if !a.UpdateTime.IsZero() {
		t.Errorf("UpdateTime = %v, want zero", a.UpdateTime.Time)
	}
}

func TestPageHasNext(t *testing.T) {
	tests := []struct {
		current, pages int64
		want           bool
	}{
		{1, 3, true},
		{3, 3, false},
		{1, 0, false},
	}
	for _, tt := range tests {
		p := Page[Article]{Current: tt.current, Pages: tt.pages}
		if got := p.HasNext(); got != tt.want {
			t.Errorf("Page{Current:%d, Pages:%d}.HasNext() = %v, want %v", tt.current, tt.pages, got, tt.want)
		}
	}
}
