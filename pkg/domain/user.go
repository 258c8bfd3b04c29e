package domain

// UserProfile is the authenticated user's profile (never includes the password).
type UserProfile struct {
	ID         int64     `json:"id"`
	Username   string    `json:"username"`
	Email      string    `json:"email,omitempty"`
	Nickname   string    `json:"nickname,omitempty"`
	Avatar     string    `json:"avatar,omitempty"`
	Role       string    `json:"role,omitempty"`
	Status     int       `json:"status"`
	CreateTime Timestamp `json:"createTime"`
}

// DisplayName returns the nickname, falling back to the username.
func (u UserProfile) DisplayName() string {
	if u.Nickname != "" {
		return u.Nickname
	}
	return u.Username
}
