package model

import "time"

type Post struct {
	ID        int64      `json:"id"`
	Content   string     `json:"content"`
	Author    PublicUser `json:"author"`
	Images    []string   `json:"images,omitempty"`
	Likes     []int64    `json:"likes"`
	Comments  []Comment  `json:"comments"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// Comment entries are immutable once created: no edit, only delete.
type Comment struct {
	ID        int64      `json:"id"`
	User      PublicUser `json:"user"`
	Content   string     `json:"content"`
	CreatedAt time.Time  `json:"createdAt"`
}

// CreatePostReq represents post creation payload
// swagger:model CreatePostReq
type CreatePostReq struct {
	Content string   `json:"content" validate:"required"`
	Images  []string `json:"images" validate:"omitempty,max=5,dive,url"`
}

// CreateCommentReq represents comment creation payload
// swagger:model CreateCommentReq
type CreateCommentReq struct {
	Content string `json:"content" validate:"required"`
}

// Pagination describes one page of a list result.
type Pagination struct {
	Page    int   `json:"page"`
	Limit   int   `json:"limit"`
	Total   int64 `json:"total"`
	Pages   int   `json:"pages"`
	HasNext bool  `json:"hasNext"`
	HasPrev bool  `json:"hasPrev"`
}
