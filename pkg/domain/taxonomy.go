package domain

// Category groups articles. Status 1 means enabled.
type Category struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Sort        int       `json:"sort"`
	Status      int       `json:"status"`
	CreateTime  Timestamp `json:"createTime"`
	UpdateTime  Timestamp `json:"updateTime"`
}

// Enabled reports whether the category accepts articles.
func (c Category) Enabled() bool {
	return c.Status == 1
}

// Tag labels articles across categories.
type Tag struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Color      string    `json:"color,omitempty"`
	CreateTime Timestamp `json:"createTime"`
	UpdateTime Timestamp `json:"updateTime"`
}
