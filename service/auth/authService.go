package authsvc

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/LakshyaVerma123kl/Clone-Linkendin/model"
	userrepo "github.com/LakshyaVerma123kl/Clone-Linkendin/repository/user"
	"github.com/LakshyaVerma123kl/Clone-Linkendin/util/hash"
	jwtutil "github.com/LakshyaVerma123kl/Clone-Linkendin/util/jwt"
)

type ErrCode string

const (
	ErrEmailTaken   ErrCode = "EMAIL_TAKEN"
	ErrInvalidCreds ErrCode = "INVALID_CREDENTIALS"
	ErrBadInput     ErrCode = "BAD_INPUT"
	ErrNotFound     ErrCode = "NOT_FOUND"
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

type Service interface {
	Register(ctx context.Context, req model.RegisterReq) (*model.User, string, error)
	Login(ctx context.Context, req model.LoginReq) (*model.User, string, error)
	Me(ctx context.Context, userID int64) (*model.User, error)
}

type service struct {
	ur     userrepo.Repo
	secret string
	ttl    time.Duration
}

func New(ur userrepo.Repo, secret string, ttl time.Duration) Service {
	return &service{ur: ur, secret: secret, ttl: ttl}
}

func (s *service) Register(ctx context.Context, req model.RegisterReq) (*model.User, string, error) {
	name := strings.TrimSpace(req.Name)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if name == "" || email == "" || len(req.Password) < 6 {
		return nil, "", makeErr(ErrBadInput, "name, email and a password of at least 6 characters are required")
	}

	hashed, err := hash.HashPassword(req.Password)
	if err != nil {
		return nil, "", err
	}

	u := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: hashed,
		Bio:          strings.TrimSpace(req.Bio),
	}

	if err := s.ur.Create(ctx, u); err != nil {
		if isUniqueViolation(err) {
			return nil, "", makeErr(ErrEmailTaken, "email already registered")
		}
		return nil, "", err
	}

	token, err := jwtutil.Issue(s.secret, u.ID, s.ttl)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}

// Login deliberately returns the same error for an unknown email and a
// wrong password.
func (s *service) Login(ctx context.Context, req model.LoginReq) (*model.User, string, error) {
	u, err := s.ur.ByEmail(ctx, req.Email)
	if err != nil {
		return nil, "", makeErr(ErrInvalidCreds, "invalid email or password")
	}
	if !hash.Check(u.PasswordHash, req.Password) {
		return nil, "", makeErr(ErrInvalidCreds, "invalid email or password")
	}

	token, err := jwtutil.Issue(s.secret, u.ID, s.ttl)
	if err != nil {
		return nil, "", err
	}

	// presence ping, best effort
	_ = s.ur.TouchPresence(ctx, u.ID, true)

	return u, token, nil
}

func (s *service) Me(ctx context.Context, userID int64) (*model.User, error) {
	u, err := s.ur.ByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, makeErr(ErrNotFound, "user not found")
		}
		return nil, err
	}
	return u, nil
}
