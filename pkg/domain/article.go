package domain

// Article status values.
const (
	StatusDraft     = "DRAFT"
	StatusPublished = "PUBLISHED"
	StatusArchived  = "ARCHIVED"
)

// Article is a blog post as returned by the article endpoints.
type Article struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Content      string    `json:"content"` // Markdown
	Summary      string    `json:"summary,omitempty"`
	CoverImage   string    `json:"coverImage,omitempty"`
	CategoryID   int64     `json:"categoryId,omitempty"`
	AuthorID     int64     `json:"authorId,omitempty"`
	Status       string    `json:"status,omitempty"`
	ViewCount    int64     `json:"viewCount"`
	LikeCount    int64     `json:"likeCount"`
	CommentCount int64     `json:"commentCount"`
	IsTop        int       `json:"isTop"`
	IsRecommend  int       `json:"isRecommend"`
	PublishTime  Timestamp `json:"publishTime"`
	CreateTime   Timestamp `json:"createTime"`
	UpdateTime   Timestamp `json:"updateTime"`
}

// Published reports whether the article is visible to readers.
func (a Article) Published() bool {
	return a.Status == StatusPublished
}

// Pinned reports whether the article is pinned to the top of listings.
func (a Article) Pinned() bool {
	return a.IsTop == 1
}

// Recommended reports whether the article is flagged as recommended.
func (a Article) Recommended() bool {
	return a.IsRecommend == 1
}

// ValidStatus reports whether s is a known article status.
func ValidStatus(s string) bool {
	switch s {
	case StatusDraft, StatusPublished, StatusArchived:
		return true
	}
	return false
}
