package postsvc

import (
	"context"
	"database/sql"
	"errors"
	"net/url"
	"path"
	"strings"

	"github.com/LakshyaVerma123kl/Clone-Linkendin/model"
	postrepo "github.com/LakshyaVerma123kl/Clone-Linkendin/repository/post"
)

// errors used by controllers

type ErrCode string

const (
	ErrNotFound     ErrCode = "NOT_FOUND"
	ErrForbidden    ErrCode = "FORBIDDEN"
	ErrEmptyContent ErrCode = "EMPTY_CONTENT"
	ErrContentLong  ErrCode = "CONTENT_TOO_LONG"
	ErrTooManyImgs  ErrCode = "TOO_MANY_IMAGES"
	ErrInvalidImage ErrCode = "INVALID_IMAGE_URL"
)

type codedError struct {
	code ErrCode
	msg  string
}

func (e codedError) Error() string { return e.msg }
func (e codedError) Code() ErrCode { return e.code }
func makeErr(c ErrCode, msg string) error {
	return codedError{code: c, msg: msg}
}

// Code extracts error code
func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

const (
	maxContentLen = 1000
	maxCommentLen = 500
	maxImages     = 5
)

// LikeState is the result of a like toggle.
type LikeState struct {
	Liked      bool  `json:"liked"`
	LikesCount int64 `json:"likesCount"`
}

type Service interface {
	Create(ctx context.Context, authorID int64, content string, images []string) (*model.Post, error)
	List(ctx context.Context, authorID int64, page, limit int) ([]model.Post, model.Pagination, error)
	Delete(ctx context.Context, userID, postID int64) error
	ToggleLike(ctx context.Context, userID, postID int64) (*LikeState, error)
	AddComment(ctx context.Context, userID, postID int64, content string) (*model.Post, error)
	DeleteComment(ctx context.Context, userID, postID, commentID int64) (*model.Post, error)
}

type service struct {
	r          postrepo.Repo
	imageHosts map[string]bool
	imageExts  map[string]bool
}

func New(r postrepo.Repo, imageHosts, imageExts []string) Service {
	s := &service{
		r:          r,
		imageHosts: make(map[string]bool, len(imageHosts)),
		imageExts:  make(map[string]bool, len(imageExts)),
	}
	for _, h := range imageHosts {
		s.imageHosts[strings.ToLower(h)] = true
	}
	for _, e := range imageExts {
		s.imageExts[strings.ToLower(e)] = true
	}
	return s
}

func (s *service) Create(ctx context.Context, authorID int64, content string, images []string) (*model.Post, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, makeErr(ErrEmptyContent, "post content cannot be empty")
	}
	if len([]rune(content)) > maxContentLen {
		return nil, makeErr(ErrContentLong, "post content cannot exceed 1000 characters")
	}
	if len(images) > maxImages {
		return nil, makeErr(ErrTooManyImgs, "a post can carry at most 5 images")
	}
	for _, img := range images {
		if !s.validImageURL(img) {
			return nil, makeErr(ErrInvalidImage, "image URL not allowed: "+img)
		}
	}

	id, err := s.r.Insert(ctx, authorID, content, images)
	if err != nil {
		return nil, err
	}
	return s.r.ByID(ctx, id)
}

// validImageURL accepts only http(s) URLs on an allow-listed host with an
// allow-listed file extension, both case-insensitive.
func (s *service) validImageURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	if !s.imageHosts[strings.ToLower(u.Hostname())] {
		return false
	}
	return s.imageExts[strings.ToLower(path.Ext(u.Path))]
}

func (s *service) List(ctx context.Context, authorID int64, page, limit int) ([]model.Post, model.Pagination, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	if limit > 50 {
		limit = 50
	}
	skip := (page - 1) * limit

	posts, total, err := s.r.List(ctx, authorID, limit, skip)
	if err != nil {
		return nil, model.Pagination{}, err
	}
	if posts == nil {
		posts = []model.Post{}
	}

	pages := int((total + int64(limit) - 1) / int64(limit))
	return posts, model.Pagination{
		Page:    page,
		Limit:   limit,
		Total:   total,
		Pages:   pages,
		HasNext: int64(skip+limit) < total,
		HasPrev: page > 1,
	}, nil
}

func (s *service) Delete(ctx context.Context, userID, postID int64) error {
	author, err := s.r.AuthorID(ctx, postID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return makeErr(ErrNotFound, "post not found")
		}
		return err
	}
	if author != userID {
		return makeErr(ErrForbidden, "only the author may delete a post")
	}
	return s.r.Delete(ctx, postID)
}

// ToggleLike flips the caller's membership in the post's like set. Two
// rapid toggles from the same user alternate deterministically; there is no
// separate "already liked" error.
func (s *service) ToggleLike(ctx context.Context, userID, postID int64) (*LikeState, error) {
	if _, err := s.r.AuthorID(ctx, postID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, makeErr(ErrNotFound, "post not found")
		}
		return nil, err
	}

	added, err := s.r.AddLike(ctx, postID, userID)
	if err != nil {
		return nil, err
	}
	if !added {
		if _, err := s.r.RemoveLike(ctx, postID, userID); err != nil {
			return nil, err
		}
	}

	count, err := s.r.LikeCount(ctx, postID)
	if err != nil {
		return nil, err
	}
	return &LikeState{Liked: added, LikesCount: count}, nil
}

func (s *service) AddComment(ctx context.Context, userID, postID int64, content string) (*model.Post, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, makeErr(ErrEmptyContent, "comment content cannot be empty")
	}
	if len([]rune(content)) > maxCommentLen {
		return nil, makeErr(ErrContentLong, "comment cannot exceed 500 characters")
	}

	if _, err := s.r.AuthorID(ctx, postID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, makeErr(ErrNotFound, "post not found")
		}
		return nil, err
	}

	if _, err := s.r.InsertComment(ctx, postID, userID, content); err != nil {
		return nil, err
	}
	return s.r.ByID(ctx, postID)
}

// DeleteComment enforces the dual-ownership rule: the comment's author or
// the post's author may delete, nobody else.
func (s *service) DeleteComment(ctx context.Context, userID, postID, commentID int64) (*model.Post, error) {
	postAuthor, err := s.r.AuthorID(ctx, postID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, makeErr(ErrNotFound, "post not found")
		}
		return nil, err
	}

	commentAuthor, err := s.r.CommentAuthor(ctx, postID, commentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, makeErr(ErrNotFound, "comment not found")
		}
		return nil, err
	}

	if userID != commentAuthor && userID != postAuthor {
		return nil, makeErr(ErrForbidden, "not the comment or post author")
	}

	if err := s.r.DeleteComment(ctx, commentID); err != nil {
		return nil, err
	}
	return s.r.ByID(ctx, postID)
}
