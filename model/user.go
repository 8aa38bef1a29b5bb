package model

import "time"

type User struct {
	ID           int64      `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Bio          string     `json:"bio"`
	ProfileImage string     `json:"profileImage,omitempty"`
	IsOnline     bool       `json:"isOnline"`
	LastSeen     *time.Time `json:"lastSeen,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// PublicUser is the projection of a User safe to return to any client.
// The password hash is excluded by construction, not redacted.
type PublicUser struct {
	ID           int64      `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	Bio          string     `json:"bio"`
	ProfileImage string     `json:"profileImage,omitempty"`
	IsOnline     bool       `json:"isOnline"`
	LastSeen     *time.Time `json:"lastSeen,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
}

// Public returns the client-visible projection of u.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		Bio:          u.Bio,
		ProfileImage: u.ProfileImage,
		IsOnline:     u.IsOnline,
		LastSeen:     u.LastSeen,
		CreatedAt:    u.CreatedAt,
	}
}

// RegisterReq represents user registration payload
// swagger:model RegisterReq
type RegisterReq struct {
	Name     string `json:"name" validate:"required,min=2,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=128"`
	Bio      string `json:"bio" validate:"omitempty,max=500"`
}

// LoginReq represents login payload
// swagger:model LoginReq
type LoginReq struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserStats aggregates activity counters shown on a profile.
type UserStats struct {
	PostsCount    int64 `json:"postsCount"`
	TotalLikes    int64 `json:"totalLikes"`
	TotalComments int64 `json:"totalComments"`
}
