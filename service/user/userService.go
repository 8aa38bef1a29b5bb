package usersvc

import (
	"context"
	"database/sql"
	"errors"

	"github.com/LakshyaVerma123kl/Clone-Linkendin/model"
	postrepo "github.com/LakshyaVerma123kl/Clone-Linkendin/repository/post"
	userrepo "github.com/LakshyaVerma123kl/Clone-Linkendin/repository/user"
)

type ErrCode string

const ErrNotFound ErrCode = "NOT_FOUND"

type codedError struct {
	code ErrCode
	msg  string
}

func (e codedError) Error() string { return e.msg }
func (e codedError) Code() ErrCode { return e.code }

// Code extracts error code
func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

// Profile bundles everything the profile page shows.
type Profile struct {
	User  model.PublicUser `json:"user"`
	Posts []model.Post     `json:"posts"`
	Stats model.UserStats  `json:"stats"`
}

// profilePostCap bounds how many recent posts a profile view carries.
const profilePostCap = 100

type Service interface {
	Profile(ctx context.Context, userID int64) (*Profile, error)
}

type service struct {
	ur userrepo.Repo
	pr postrepo.Repo
}

func New(ur userrepo.Repo, pr postrepo.Repo) Service {
	return &service{ur: ur, pr: pr}
}

func (s *service) Profile(ctx context.Context, userID int64) (*Profile, error) {
	u, err := s.ur.ByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, codedError{code: ErrNotFound, msg: "user not found"}
		}
		return nil, err
	}

	posts, _, err := s.pr.List(ctx, userID, profilePostCap, 0)
	if err != nil {
		return nil, err
	}
	if posts == nil {
		posts = []model.Post{}
	}

	stats, err := s.pr.StatsByAuthor(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &Profile{User: u.Public(), Posts: posts, Stats: stats}, nil
}
