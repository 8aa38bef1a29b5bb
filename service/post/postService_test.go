package postsvc_test

import (
	"context"
	"database/sql"
	"strings"
	"testing"

	"github.com/LakshyaVerma123kl/Clone-Linkendin/model"
	postrepo "github.com/LakshyaVerma123kl/Clone-Linkendin/repository/post"
	postsvc "github.com/LakshyaVerma123kl/Clone-Linkendin/service/post"

	"github.com/stretchr/testify/require"
)

type repoMock struct {
	insertFn        func(ctx context.Context, authorID int64, content string, images []string) (int64, error)
	byIDFn          func(ctx context.Context, id int64) (*model.Post, error)
	listFn          func(ctx context.Context, authorID int64, limit, offset int) ([]model.Post, int64, error)
	authorIDFn      func(ctx context.Context, postID int64) (int64, error)
	deleteFn        func(ctx context.Context, postID int64) error
	addLikeFn       func(ctx context.Context, postID, userID int64) (bool, error)
	removeLikeFn    func(ctx context.Context, postID, userID int64) (bool, error)
	likeCountFn     func(ctx context.Context, postID int64) (int64, error)
	insertCommentFn func(ctx context.Context, postID, userID int64, content string) (int64, error)
	commentAuthorFn func(ctx context.Context, postID, commentID int64) (int64, error)
	deleteCommentFn func(ctx context.Context, commentID int64) error
	statsFn         func(ctx context.Context, userID int64) (model.UserStats, error)
}

var _ postrepo.Repo = (*repoMock)(nil)

func (m *repoMock) Insert(ctx context.Context, authorID int64, content string, images []string) (int64, error) {
	return m.insertFn(ctx, authorID, content, images)
}
func (m *repoMock) ByID(ctx context.Context, id int64) (*model.Post, error) {
	if m.byIDFn == nil {
		return &model.Post{ID: id}, nil
	}
	return m.byIDFn(ctx, id)
}
func (m *repoMock) List(ctx context.Context, authorID int64, limit, offset int) ([]model.Post, int64, error) {
	return m.listFn(ctx, authorID, limit, offset)
}
func (m *repoMock) AuthorID(ctx context.Context, postID int64) (int64, error) {
	return m.authorIDFn(ctx, postID)
}
func (m *repoMock) Delete(ctx context.Context, postID int64) error { return m.deleteFn(ctx, postID) }
func (m *repoMock) AddLike(ctx context.Context, postID, userID int64) (bool, error) {
	return m.addLikeFn(ctx, postID, userID)
}
func (m *repoMock) RemoveLike(ctx context.Context, postID, userID int64) (bool, error) {
	return m.removeLikeFn(ctx, postID, userID)
}
func (m *repoMock) LikeCount(ctx context.Context, postID int64) (int64, error) {
	return m.likeCountFn(ctx, postID)
}
func (m *repoMock) InsertComment(ctx context.Context, postID, userID int64, content string) (int64, error) {
	return m.insertCommentFn(ctx, postID, userID, content)
}
func (m *repoMock) CommentAuthor(ctx context.Context, postID, commentID int64) (int64, error) {
	return m.commentAuthorFn(ctx, postID, commentID)
}
func (m *repoMock) DeleteComment(ctx context.Context, commentID int64) error {
	return m.deleteCommentFn(ctx, commentID)
}
func (m *repoMock) StatsByAuthor(ctx context.Context, userID int64) (model.UserStats, error) {
	return m.statsFn(ctx, userID)
}

var (
	hosts = []string{"images.unsplash.com", "res.cloudinary.com"}
	exts  = []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}
)

func newSvc(m *repoMock) postsvc.Service { return postsvc.New(m, hosts, exts) }

// --- create ---

func TestCreate_ContentBounds(t *testing.T) {
	ctx := context.Background()
	m := &repoMock{
		insertFn: func(ctx context.Context, authorID int64, content string, images []string) (int64, error) {
			return 1, nil
		},
	}
	s := newSvc(m)

	_, err := s.Create(ctx, 1, "   ", nil)
	require.Equal(t, postsvc.ErrEmptyContent, postsvc.Code(err))

	exact := strings.Repeat("a", 1000)
	_, err = s.Create(ctx, 1, exact, nil)
	require.NoError(t, err)

	_, err = s.Create(ctx, 1, exact+"a", nil)
	require.Equal(t, postsvc.ErrContentLong, postsvc.Code(err))
}

func TestCreate_TrimsContent(t *testing.T) {
	var got string
	m := &repoMock{
		insertFn: func(ctx context.Context, authorID int64, content string, images []string) (int64, error) {
			got = content
			return 1, nil
		},
	}
	_, err := newSvc(m).Create(context.Background(), 1, "  Hello  ", nil)
	require.NoError(t, err)
	require.Equal(t, "Hello", got)
}

func TestCreate_ImageAllowLists(t *testing.T) {
	ctx := context.Background()
	m := &repoMock{
		insertFn: func(ctx context.Context, authorID int64, content string, images []string) (int64, error) {
			return 1, nil
		},
	}
	s := newSvc(m)

	_, err := s.Create(ctx, 1, "pic", []string{"https://images.unsplash.com/photo.jpg"})
	require.NoError(t, err)

	// case-insensitive on both host and extension
	_, err = s.Create(ctx, 1, "pic", []string{"https://IMAGES.UNSPLASH.COM/photo.JPG"})
	require.NoError(t, err)

	_, err = s.Create(ctx, 1, "pic", []string{"https://evil.com/x.jpg"})
	require.Equal(t, postsvc.ErrInvalidImage, postsvc.Code(err))

	_, err = s.Create(ctx, 1, "pic", []string{"https://images.unsplash.com/photo.exe"})
	require.Equal(t, postsvc.ErrInvalidImage, postsvc.Code(err))

	_, err = s.Create(ctx, 1, "pic", []string{"ftp://images.unsplash.com/photo.jpg"})
	require.Equal(t, postsvc.ErrInvalidImage, postsvc.Code(err))

	// one bad entry rejects the whole create
	_, err = s.Create(ctx, 1, "pic", []string{
		"https://images.unsplash.com/a.png",
		"https://evil.com/b.png",
	})
	require.Equal(t, postsvc.ErrInvalidImage, postsvc.Code(err))
}

func TestCreate_ImageCap(t *testing.T) {
	m := &repoMock{}
	six := make([]string, 6)
	for i := range six {
		six[i] = "https://images.unsplash.com/photo.jpg"
	}
	_, err := newSvc(m).Create(context.Background(), 1, "pics", six)
	require.Equal(t, postsvc.ErrTooManyImgs, postsvc.Code(err))
}

// --- list ---

func TestList_PaginationMath(t *testing.T) {
	var gotLimit, gotOffset int
	m := &repoMock{
		listFn: func(ctx context.Context, authorID int64, limit, offset int) ([]model.Post, int64, error) {
			gotLimit, gotOffset = limit, offset
			return make([]model.Post, limit), 45, nil
		},
	}
	s := newSvc(m)

	_, pg, err := s.List(context.Background(), 0, 3, 10)
	require.NoError(t, err)
	require.Equal(t, 10, gotLimit)
	require.Equal(t, 20, gotOffset)
	require.Equal(t, model.Pagination{
		Page: 3, Limit: 10, Total: 45, Pages: 5, HasNext: true, HasPrev: true,
	}, pg)

	// last page
	_, pg, err = s.List(context.Background(), 0, 5, 10)
	require.NoError(t, err)
	require.False(t, pg.HasNext)
	require.True(t, pg.HasPrev)

	// defaults and clamping
	_, pg, _ = s.List(context.Background(), 0, 0, 0)
	require.Equal(t, 1, pg.Page)
	require.Equal(t, 10, pg.Limit)

	_, pg, _ = s.List(context.Background(), 0, 1, 500)
	require.Equal(t, 50, pg.Limit)
}

func TestList_PastTheEndPageKeepsTotal(t *testing.T) {
	m := &repoMock{
		listFn: func(ctx context.Context, authorID int64, limit, offset int) ([]model.Post, int64, error) {
			// the repo reports the real total even when the page is empty
			return []model.Post{}, 45, nil
		},
	}
	posts, pg, err := newSvc(m).List(context.Background(), 0, 6, 10)
	require.NoError(t, err)
	require.Empty(t, posts)
	require.Equal(t, model.Pagination{
		Page: 6, Limit: 10, Total: 45, Pages: 5, HasNext: false, HasPrev: true,
	}, pg)
}

func TestList_EmptyResultIsNotNil(t *testing.T) {
	m := &repoMock{
		listFn: func(ctx context.Context, authorID int64, limit, offset int) ([]model.Post, int64, error) {
			return nil, 0, nil
		},
	}
	posts, pg, err := newSvc(m).List(context.Background(), 7, 1, 10)
	require.NoError(t, err)
	require.NotNil(t, posts)
	require.Empty(t, posts)
	require.Equal(t, 0, pg.Pages)
	require.False(t, pg.HasNext)
}

// --- delete ---

func TestDelete_OwnershipAndNotFound(t *testing.T) {
	ctx := context.Background()
	deleted := false
	m := &repoMock{
		authorIDFn: func(ctx context.Context, postID int64) (int64, error) {
			if postID == 404 {
				return 0, sql.ErrNoRows
			}
			return 1, nil
		},
		deleteFn: func(ctx context.Context, postID int64) error {
			deleted = true
			return nil
		},
	}
	s := newSvc(m)

	err := s.Delete(ctx, 2, 10)
	require.Equal(t, postsvc.ErrForbidden, postsvc.Code(err))
	require.False(t, deleted)

	err = s.Delete(ctx, 1, 404)
	require.Equal(t, postsvc.ErrNotFound, postsvc.Code(err))

	require.NoError(t, s.Delete(ctx, 1, 10))
	require.True(t, deleted)
}

// --- likes ---

// toggleRepo keeps an in-memory like set so consecutive toggles are
// exercised against real set semantics.
type toggleRepo struct {
	repoMock
	likes map[int64]bool
}

func newToggleRepo() *toggleRepo {
	tr := &toggleRepo{likes: make(map[int64]bool)}
	tr.authorIDFn = func(ctx context.Context, postID int64) (int64, error) { return 99, nil }
	return tr
}

func (m *toggleRepo) AddLike(ctx context.Context, postID, userID int64) (bool, error) {
	if m.likes[userID] {
		return false, nil
	}
	m.likes[userID] = true
	return true, nil
}
func (m *toggleRepo) RemoveLike(ctx context.Context, postID, userID int64) (bool, error) {
	if !m.likes[userID] {
		return false, nil
	}
	delete(m.likes, userID)
	return true, nil
}
func (m *toggleRepo) LikeCount(ctx context.Context, postID int64) (int64, error) {
	return int64(len(m.likes)), nil
}

func TestToggleLike_Alternates(t *testing.T) {
	ctx := context.Background()
	s := postsvc.New(newToggleRepo(), hosts, exts)

	st, err := s.ToggleLike(ctx, 5, 1)
	require.NoError(t, err)
	require.True(t, st.Liked)
	require.EqualValues(t, 1, st.LikesCount)

	st, err = s.ToggleLike(ctx, 5, 1)
	require.NoError(t, err)
	require.False(t, st.Liked)
	require.EqualValues(t, 0, st.LikesCount)

	st, err = s.ToggleLike(ctx, 5, 1)
	require.NoError(t, err)
	require.True(t, st.Liked)
	require.EqualValues(t, 1, st.LikesCount)
}

func TestToggleLike_DistinctUsersAccumulate(t *testing.T) {
	ctx := context.Background()
	s := postsvc.New(newToggleRepo(), hosts, exts)

	_, err := s.ToggleLike(ctx, 5, 1)
	require.NoError(t, err)
	st, err := s.ToggleLike(ctx, 6, 1)
	require.NoError(t, err)
	require.True(t, st.Liked)
	require.EqualValues(t, 2, st.LikesCount)
}

func TestToggleLike_PostNotFound(t *testing.T) {
	m := &repoMock{
		authorIDFn: func(ctx context.Context, postID int64) (int64, error) {
			return 0, sql.ErrNoRows
		},
	}
	_, err := newSvc(m).ToggleLike(context.Background(), 1, 404)
	require.Equal(t, postsvc.ErrNotFound, postsvc.Code(err))
}

// --- comments ---

func TestAddComment_Bounds(t *testing.T) {
	ctx := context.Background()
	m := &repoMock{
		authorIDFn: func(ctx context.Context, postID int64) (int64, error) { return 9, nil },
		insertCommentFn: func(ctx context.Context, postID, userID int64, content string) (int64, error) {
			return 77, nil
		},
	}
	s := newSvc(m)

	_, err := s.AddComment(ctx, 1, 10, " \t ")
	require.Equal(t, postsvc.ErrEmptyContent, postsvc.Code(err))

	_, err = s.AddComment(ctx, 1, 10, strings.Repeat("c", 501))
	require.Equal(t, postsvc.ErrContentLong, postsvc.Code(err))

	p, err := s.AddComment(ctx, 1, 10, strings.Repeat("c", 500))
	require.NoError(t, err)
	require.NotNil(t, p)
}

func TestDeleteComment_DualOwnership(t *testing.T) {
	ctx := context.Background()
	const (
		postAuthor    = int64(1)
		commentAuthor = int64(2)
		thirdParty    = int64(3)
	)

	newRepo := func() *repoMock {
		return &repoMock{
			authorIDFn: func(ctx context.Context, postID int64) (int64, error) {
				return postAuthor, nil
			},
			commentAuthorFn: func(ctx context.Context, postID, commentID int64) (int64, error) {
				if commentID == 404 {
					return 0, sql.ErrNoRows
				}
				return commentAuthor, nil
			},
			deleteCommentFn: func(ctx context.Context, commentID int64) error { return nil },
		}
	}

	_, err := newSvc(newRepo()).DeleteComment(ctx, thirdParty, 10, 20)
	require.Equal(t, postsvc.ErrForbidden, postsvc.Code(err))

	_, err = newSvc(newRepo()).DeleteComment(ctx, commentAuthor, 10, 20)
	require.NoError(t, err)

	_, err = newSvc(newRepo()).DeleteComment(ctx, postAuthor, 10, 20)
	require.NoError(t, err)

	_, err = newSvc(newRepo()).DeleteComment(ctx, postAuthor, 10, 404)
	require.Equal(t, postsvc.ErrNotFound, postsvc.Code(err))
}
