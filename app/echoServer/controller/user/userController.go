package user

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/LakshyaVerma123kl/Clone-Linkendin/app/echoServer/respond"
	usersvc "github.com/LakshyaVerma123kl/Clone-Linkendin/service/user"

	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc usersvc.Service
	Log *slog.Logger
}

// Profile
// @Summary      User profile
// @Description  Public profile with the user's posts and activity stats
// @Tags         users
// @Produce      json
// @Param        id  path  int  true  "User id"
// @Success      200  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Router       /v1/users/{id} [get]
func (ct *Controller) Profile(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return respond.Fail(c, http.StatusBadRequest, respond.CodeInvalidPayload, "invalid user id", nil)
	}

	p, err := ct.Svc.Profile(c.Request().Context(), id)
	if err != nil {
		if usersvc.Code(err) == usersvc.ErrNotFound {
			return respond.Fail(c, http.StatusNotFound, respond.CodeNotFound, "user not found", nil)
		}
		ct.Log.Error("profile failed",
			"err", err,
			"req_id", c.Response().Header().Get(echo.HeaderXRequestID),
			"path", c.Path(),
		)
		return respond.Fail(c, http.StatusInternalServerError, respond.CodeInternal, "Internal server error", err.Error())
	}

	return respond.OK(c, http.StatusOK, p, "")
}
