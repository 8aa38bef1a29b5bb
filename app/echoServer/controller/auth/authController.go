package auth

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/LakshyaVerma123kl/Clone-Linkendin/app/echoServer/jwtx"
	"github.com/LakshyaVerma123kl/Clone-Linkendin/app/echoServer/respond"
	"github.com/LakshyaVerma123kl/Clone-Linkendin/model"
	authsvc "github.com/LakshyaVerma123kl/Clone-Linkendin/service/auth"
	"github.com/LakshyaVerma123kl/Clone-Linkendin/util/validate"

	"github.com/labstack/echo/v4"
)

type Controller struct {
	Svc authsvc.Service
	Log *slog.Logger

	// cookie policy
	CookieTTL    time.Duration
	SecureCookie bool
}

func (ct *Controller) setTokenCookie(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     "token",
		Value:    token,
		Path:     "/",
		MaxAge:   int(ct.CookieTTL.Seconds()),
		HttpOnly: true,
		Secure:   ct.SecureCookie,
		SameSite: http.SameSiteStrictMode,
	})
}

// Register a new user
// @Summary      Register user
// @Description  Register a new user; sets an HTTP-only session cookie
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        payload  body  model.RegisterReq  true  "Register payload"
// @Success      201  {object}  map[string]any
// @Failure      400  {object}  map[string]any
// @Failure      409  {object}  map[string]any "email already registered"
// @Failure      500  {object}  map[string]any
// @Router       /v1/auth/register [post]
func (ct *Controller) Register(c echo.Context) error {
	var req model.RegisterReq
	if err := c.Bind(&req); err != nil {
		ct.Log.Warn("bind failed", "path", c.Path(), "err", err)
		return respond.Fail(c, http.StatusBadRequest, respond.CodeInvalidPayload, "Invalid payload", nil)
	}

	fields := map[string]string{
		"name":     req.Name,
		"email":    req.Email,
		"password": req.Password,
		"bio":      req.Bio,
	}
	if res := validate.Apply(fields, validate.UserSchema); !res.Valid {
		ct.Log.Warn("validation failed", "path", c.Path(), "errors", res.Errors)
		return respond.Fail(c, http.StatusBadRequest, respond.CodeValidation, "Validation failed",
			map[string]any{"errors": res.Errors})
	}

	u, token, err := ct.Svc.Register(c.Request().Context(), req)
	if err != nil {
		switch authsvc.Code(err) {
		case authsvc.ErrEmailTaken:
			return respond.Fail(c, http.StatusConflict, respond.CodeDuplicate, "email already registered", nil)
		case authsvc.ErrBadInput:
			return respond.Fail(c, http.StatusBadRequest, respond.CodeValidation, err.Error(), nil)
		default:
			ct.Log.Error("register failed",
				"err", err,
				"req_id", c.Response().Header().Get(echo.HeaderXRequestID),
				"path", c.Path(),
				"method", c.Request().Method,
			)
			return respond.Fail(c, http.StatusInternalServerError, respond.CodeInternal, "Internal server error", err.Error())
		}
	}

	ct.setTokenCookie(c, token)
	return respond.OK(c, http.StatusCreated, echo.Map{
		"user":  u.Public(),
		"token": token,
	}, "User created successfully")
}

// Login
// @Summary      Login
// @Description  Login with email + password; sets an HTTP-only session cookie
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        payload  body  model.LoginReq  true  "Login payload"
// @Success      200  {object}  map[string]any
// @Failure      400  {object}  map[string]any
// @Failure      401  {object}  map[string]any
// @Failure      500  {object}  map[string]any
// @Router       /v1/auth/login [post]
func (ct *Controller) Login(c echo.Context) error {
	var req model.LoginReq
	if err := c.Bind(&req); err != nil {
		ct.Log.Warn("bind failed", "path", c.Path(), "err", err)
		return respond.Fail(c, http.StatusBadRequest, respond.CodeInvalidPayload, "Invalid payload", nil)
	}

	fields := map[string]string{"email": req.Email, "password": req.Password}
	if res := validate.Apply(fields, validate.Schema{
		"email":    {Required: true},
		"password": {Required: true},
	}); !res.Valid {
		return respond.Fail(c, http.StatusBadRequest, respond.CodeValidation, "Validation failed",
			map[string]any{"errors": res.Errors})
	}

	u, token, err := ct.Svc.Login(c.Request().Context(), req)
	if err != nil {
		switch authsvc.Code(err) {
		case authsvc.ErrInvalidCreds:
			return respond.Fail(c, http.StatusUnauthorized, respond.CodeUnauthorized, "invalid email or password", nil)
		default:
			ct.Log.Error("login failed",
				"err", err,
				"req_id", c.Response().Header().Get(echo.HeaderXRequestID),
				"path", c.Path(),
				"method", c.Request().Method,
			)
			return respond.Fail(c, http.StatusInternalServerError, respond.CodeInternal, "Internal server error", err.Error())
		}
	}

	ct.setTokenCookie(c, token)
	return respond.OK(c, http.StatusOK, echo.Map{
		"user":  u.Public(),
		"token": token,
	}, "Login successful")
}

// Me
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]any
// @Failure      401  {object}  map[string]any
// @Router       /v1/auth/me [get]
func (ct *Controller) Me(c echo.Context) error {
	uid, err := jwtx.UserID(c)
	if err != nil {
		return respond.Fail(c, http.StatusUnauthorized, respond.CodeUnauthorized, "Authentication required", nil)
	}

	u, err := ct.Svc.Me(c.Request().Context(), uid)
	if err != nil {
		if authsvc.Code(err) == authsvc.ErrNotFound {
			return respond.Fail(c, http.StatusNotFound, respond.CodeNotFound, "user not found", nil)
		}
		ct.Log.Error("me failed", "err", err,
			"req_id", c.Response().Header().Get(echo.HeaderXRequestID))
		return respond.Fail(c, http.StatusInternalServerError, respond.CodeInternal, "Internal server error", err.Error())
	}

	return respond.OK(c, http.StatusOK, echo.Map{"user": u.Public()}, "")
}
