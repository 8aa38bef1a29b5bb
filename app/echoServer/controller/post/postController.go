package post

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/LakshyaVerma123kl/Clone-Linkendin/app/echoServer/jwtx"
	"github.com/LakshyaVerma123kl/Clone-Linkendin/app/echoServer/respond"
	"github.com/LakshyaVerma123kl/Clone-Linkendin/model"
	postsvc "github.com/LakshyaVerma123kl/Clone-Linkendin/service/post"
	"github.com/LakshyaVerma123kl/Clone-Linkendin/util/validate"

	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc postsvc.Service
	Log *slog.Logger
}

func (ct *Controller) fail(c echo.Context, err error, op string) error {
	switch postsvc.Code(err) {
	case postsvc.ErrNotFound:
		return respond.Fail(c, http.StatusNotFound, respond.CodeNotFound, err.Error(), nil)
	case postsvc.ErrForbidden:
		return respond.Fail(c, http.StatusForbidden, respond.CodeForbidden, err.Error(), nil)
	case postsvc.ErrEmptyContent, postsvc.ErrContentLong, postsvc.ErrTooManyImgs:
		return respond.Fail(c, http.StatusBadRequest, respond.CodeValidation, err.Error(), nil)
	case postsvc.ErrInvalidImage:
		return respond.Fail(c, http.StatusBadRequest, respond.CodeInvalidImageURL, err.Error(), nil)
	default:
		ct.Log.Error(op+" failed",
			"err", err,
			"req_id", c.Response().Header().Get(echo.HeaderXRequestID),
			"path", c.Path(),
			"method", c.Request().Method,
		)
		return respond.Fail(c, http.StatusInternalServerError, respond.CodeInternal, "Internal server error", err.Error())
	}
}

func postID(c echo.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	return id, err == nil && id > 0
}

// List posts
// @Summary      List posts
// @Description  Paginated feed, newest first, optional author filter
// @Tags         posts
// @Produce      json
// @Param        userId  query  int  false  "Filter by author"
// @Param        page    query  int  false  "Page (default 1)"
// @Param        limit   query  int  false  "Page size (1-50, default 10)"
// @Success      200  {object}  map[string]any
// @Router       /v1/posts [get]
func (ct *Controller) List(c echo.Context) error {
	authorID, _ := strconv.ParseInt(c.QueryParam("userId"), 10, 64)
	page, _ := strconv.Atoi(c.QueryParam("page"))
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	posts, pagination, err := ct.Svc.List(c.Request().Context(), authorID, page, limit)
	if err != nil {
		return ct.fail(c, err, "post list")
	}
	return respond.OK(c, http.StatusOK, echo.Map{
		"posts":      posts,
		"pagination": pagination,
	}, "")
}

// Create a post
// @Summary      Create post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body  model.CreatePostReq  true  "Post payload"
// @Success      201  {object}  map[string]any
// @Failure      400  {object}  map[string]any
// @Failure      401  {object}  map[string]any
// @Router       /v1/posts [post]
func (ct *Controller) Create(c echo.Context) error {
	uid, err := jwtx.UserID(c)
	if err != nil {
		return respond.Fail(c, http.StatusUnauthorized, respond.CodeUnauthorized, "Authentication required", nil)
	}

	var req model.CreatePostReq
	if err := c.Bind(&req); err != nil {
		ct.Log.Warn("bind failed", "path", c.Path(), "err", err)
		return respond.Fail(c, http.StatusBadRequest, respond.CodeInvalidPayload, "Invalid payload", nil)
	}
	if err := c.Validate(&req); err != nil {
		ct.Log.Warn("validation failed", "path", c.Path(), "err", err)
		return respond.Fail(c, http.StatusBadRequest, respond.CodeValidation, "Validation failed", err.Error())
	}

	fields := map[string]string{"content": req.Content}
	if res := validate.Apply(fields, validate.PostSchema); !res.Valid {
		return respond.Fail(c, http.StatusBadRequest, respond.CodeValidation, "Validation failed",
			map[string]any{"errors": res.Errors})
	}

	p, err := ct.Svc.Create(c.Request().Context(), uid, fields["content"], req.Images)
	if err != nil {
		return ct.fail(c, err, "post create")
	}
	return respond.OK(c, http.StatusCreated, echo.Map{"post": p}, "Post created successfully")
}

// Delete a post
// @Summary      Delete post
// @Description  Only the author may delete a post
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "Post id"
// @Success      200  {object}  map[string]any
// @Failure      403  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Router       /v1/posts/{id} [delete]
func (ct *Controller) Delete(c echo.Context) error {
	uid, err := jwtx.UserID(c)
	if err != nil {
		return respond.Fail(c, http.StatusUnauthorized, respond.CodeUnauthorized, "Authentication required", nil)
	}
	id, ok := postID(c)
	if !ok {
		return respond.Fail(c, http.StatusBadRequest, respond.CodeInvalidPayload, "invalid post id", nil)
	}

	if err := ct.Svc.Delete(c.Request().Context(), uid, id); err != nil {
		return ct.fail(c, err, "post delete")
	}
	return respond.OK(c, http.StatusOK, echo.Map{"deletedPostId": id}, "Post deleted successfully")
}

// Toggle like
// @Summary      Toggle like
// @Description  Likes the post, or removes the caller's existing like
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "Post id"
// @Success      200  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Router       /v1/posts/{id}/like [post]
func (ct *Controller) ToggleLike(c echo.Context) error {
	uid, err := jwtx.UserID(c)
	if err != nil {
		return respond.Fail(c, http.StatusUnauthorized, respond.CodeUnauthorized, "Authentication required", nil)
	}
	id, ok := postID(c)
	if !ok {
		return respond.Fail(c, http.StatusBadRequest, respond.CodeInvalidPayload, "invalid post id", nil)
	}

	state, err := ct.Svc.ToggleLike(c.Request().Context(), uid, id)
	if err != nil {
		return ct.fail(c, err, "like toggle")
	}
	return respond.OK(c, http.StatusOK, state, "")
}

// Add comment
// @Summary      Add comment
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path  int                     true  "Post id"
// @Param        payload  body  model.CreateCommentReq  true  "Comment payload"
// @Success      200  {object}  map[string]any
// @Failure      400  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Router       /v1/posts/{id}/comments [post]
func (ct *Controller) AddComment(c echo.Context) error {
	uid, err := jwtx.UserID(c)
	if err != nil {
		return respond.Fail(c, http.StatusUnauthorized, respond.CodeUnauthorized, "Authentication required", nil)
	}
	id, ok := postID(c)
	if !ok {
		return respond.Fail(c, http.StatusBadRequest, respond.CodeInvalidPayload, "invalid post id", nil)
	}

	var req model.CreateCommentReq
	if err := c.Bind(&req); err != nil {
		ct.Log.Warn("bind failed", "path", c.Path(), "err", err)
		return respond.Fail(c, http.StatusBadRequest, respond.CodeInvalidPayload, "Invalid payload", nil)
	}

	fields := map[string]string{"content": req.Content}
	if res := validate.Apply(fields, validate.CommentSchema); !res.Valid {
		return respond.Fail(c, http.StatusBadRequest, respond.CodeValidation, "Validation failed",
			map[string]any{"errors": res.Errors})
	}

	p, err := ct.Svc.AddComment(c.Request().Context(), uid, id, fields["content"])
	if err != nil {
		return ct.fail(c, err, "comment add")
	}
	return respond.OK(c, http.StatusOK, echo.Map{"post": p}, "Comment added successfully")
}

// Delete comment
// @Summary      Delete comment
// @Description  Allowed for the comment's author or the post's author
// @Tags         posts
// @Produce      json
// @Security     BearerAuth
// @Param        id         path  int  true  "Post id"
// @Param        commentId  path  int  true  "Comment id"
// @Success      200  {object}  map[string]any
// @Failure      403  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Router       /v1/posts/{id}/comments/{commentId} [delete]
func (ct *Controller) DeleteComment(c echo.Context) error {
	uid, err := jwtx.UserID(c)
	if err != nil {
		return respond.Fail(c, http.StatusUnauthorized, respond.CodeUnauthorized, "Authentication required", nil)
	}
	id, ok := postID(c)
	if !ok {
		return respond.Fail(c, http.StatusBadRequest, respond.CodeInvalidPayload, "invalid post id", nil)
	}
	commentID, err := strconv.ParseInt(c.Param("commentId"), 10, 64)
	if err != nil || commentID <= 0 {
		return respond.Fail(c, http.StatusBadRequest, respond.CodeInvalidPayload, "invalid comment id", nil)
	}

	p, err := ct.Svc.DeleteComment(c.Request().Context(), uid, id, commentID)
	if err != nil {
		return ct.fail(c, err, "comment delete")
	}
	return respond.OK(c, http.StatusOK, echo.Map{"post": p}, "Comment deleted successfully")
}
