package echoServer

import (
	"net/http"

	authctrl "github.com/LakshyaVerma123kl/Clone-Linkendin/app/echoServer/controller/auth"
	postctrl "github.com/LakshyaVerma123kl/Clone-Linkendin/app/echoServer/controller/post"
	userctrl "github.com/LakshyaVerma123kl/Clone-Linkendin/app/echoServer/controller/user"
	"github.com/LakshyaVerma123kl/Clone-Linkendin/app/echoServer/jwtx"
	"github.com/LakshyaVerma123kl/Clone-Linkendin/app/echoServer/respond"
	"github.com/LakshyaVerma123kl/Clone-Linkendin/config"
	"github.com/LakshyaVerma123kl/Clone-Linkendin/util/ratelimit"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

type C struct {
	Auth *authctrl.Controller
	Post *postctrl.Controller
	User *userctrl.Controller

	JWTSecret string
	Limiter   ratelimit.Limiter
	Cfg       config.App
}

// Register wires the route table: every route passes request-id and access
// logging (global middleware), then its rate-limit class, then auth where
// required, then the controller. Admission always precedes token checks:
// an over-limit caller is told 429 whether or not it carries credentials.
func Register(e *echo.Echo, c C) {
	jwt := echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(c.JWTSecret),
		// bearer header first, session cookie as fallback
		TokenLookup: "header:Authorization:Bearer ,cookie:token",
		ErrorHandler: func(ctx echo.Context, err error) error {
			return respond.Fail(ctx, http.StatusUnauthorized,
				respond.CodeUnauthorized, "Authentication required", err.Error())
		},
	})

	// Public
	pub := e.Group("/v1")
	pub.POST("/auth/register", c.Auth.Register, RateLimit(c.Limiter, c.Cfg.RateAuth))
	pub.POST("/auth/login", c.Auth.Login, RateLimit(c.Limiter, c.Cfg.RateAuth))
	pub.GET("/posts", c.Post.List, RateLimit(c.Limiter, c.Cfg.RateGeneral), OptionalIdentity(c.JWTSecret))
	pub.GET("/users/:id", c.User.Profile, RateLimit(c.Limiter, c.Cfg.RateGeneral), OptionalIdentity(c.JWTSecret))

	// Authenticated, one group per rate-limit class. Group middleware runs
	// in the order given, so the limiter sees the request before the token
	// is ever looked at.
	posts := e.Group("/v1", RateLimit(c.Limiter, c.Cfg.RatePosts), jwt, userIDFromClaims)
	posts.POST("/posts", c.Post.Create)

	comments := e.Group("/v1", RateLimit(c.Limiter, c.Cfg.RateComments), jwt, userIDFromClaims)
	comments.POST("/posts/:id/comments", c.Post.AddComment)

	general := e.Group("/v1", RateLimit(c.Limiter, c.Cfg.RateGeneral), jwt, userIDFromClaims)
	general.GET("/auth/me", c.Auth.Me)
	general.DELETE("/posts/:id", c.Post.Delete)
	general.POST("/posts/:id/like", c.Post.ToggleLike)
	general.DELETE("/posts/:id/comments/:commentId", c.Post.DeleteComment)
}

// userIDFromClaims pulls the subject claim out of the verified token and
// stores the user id for controllers.
func userIDFromClaims(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		uid, err := jwtx.UserIDFromToken(c)
		if err != nil {
			return respond.Fail(c, http.StatusUnauthorized,
				respond.CodeUnauthorized, "Authentication required", err.Error())
		}
		jwtx.SetUserID(c, uid)
		return next(c)
	}
}
