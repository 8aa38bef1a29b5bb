// Package main professional network API.
//
// @title           Professional Network API
// @version         1.0
// @description     Social/professional networking service (auth, posts, likes, comments, profiles).
// @BasePath        /
// @schemes         http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description  Use:  Bearer <JWT>
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/LakshyaVerma123kl/Clone-Linkendin/app/echoServer"
	authctrl "github.com/LakshyaVerma123kl/Clone-Linkendin/app/echoServer/controller/auth"
	postctrl "github.com/LakshyaVerma123kl/Clone-Linkendin/app/echoServer/controller/post"
	userctrl "github.com/LakshyaVerma123kl/Clone-Linkendin/app/echoServer/controller/user"
	"github.com/LakshyaVerma123kl/Clone-Linkendin/app/echoServer/validation"
	"github.com/LakshyaVerma123kl/Clone-Linkendin/config"
	postrepo "github.com/LakshyaVerma123kl/Clone-Linkendin/repository/post"
	userrepo "github.com/LakshyaVerma123kl/Clone-Linkendin/repository/user"
	authsvc "github.com/LakshyaVerma123kl/Clone-Linkendin/service/auth"
	postsvc "github.com/LakshyaVerma123kl/Clone-Linkendin/service/post"
	usersvc "github.com/LakshyaVerma123kl/Clone-Linkendin/service/user"
	"github.com/LakshyaVerma123kl/Clone-Linkendin/util/database"
	"github.com/LakshyaVerma123kl/Clone-Linkendin/util/ratelimit"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
)

func main() {

	cfg := config.Load()
	ctx := context.Background()

	// logger
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(log)

	// DB handle: lazy, idempotent acquire
	handle := database.NewHandle(cfg.DatabaseURL)
	db, err := handle.Acquire(ctx)
	if err != nil {
		log.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer handle.Shutdown()

	// repos
	ur := userrepo.New(db)
	pr := postrepo.New(db)

	// services
	as := authsvc.New(ur, cfg.JWTSecret, cfg.TokenTTL)
	ps := postsvc.New(pr, cfg.ImageHosts, cfg.ImageExts)
	us := usersvc.New(ur, pr)

	// controllers
	authC := &authctrl.Controller{
		Svc:          as,
		Log:          log,
		CookieTTL:    cfg.TokenTTL,
		SecureCookie: !cfg.Dev(),
	}
	postC := &postctrl.Controller{Svc: ps, Log: log}
	userC := &userctrl.Controller{Svc: us, Log: log}

	// rate limiter with periodic sweep
	limiter := ratelimit.NewFixedWindow()
	go func() {
		t := time.NewTicker(time.Minute)
		defer t.Stop()
		for range t.C {
			limiter.Sweep()
		}
	}()

	// echo
	e := echo.New()
	e.HideBanner = true
	e.Debug = cfg.Dev()
	e.Validator = validation.New()
	e.HTTPErrorHandler = echoServer.ErrorHandler(log)
	echoServer.RegisterMiddlewares(e)

	e.GET("/health", func(c echo.Context) error {
		pool, err := handle.DB()
		if err == nil {
			err = pool.PingContext(c.Request().Context())
		}
		if err != nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]any{
				"status":  "degraded",
				"message": "Database unavailable",
			})
		}
		return c.JSON(http.StatusOK, map[string]any{
			"status":  "ok",
			"message": "Service is healthy and connected",
		})
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	echoServer.Register(e, echoServer.C{
		Auth: authC,
		Post: postC,
		User: userC,

		JWTSecret: cfg.JWTSecret,
		Limiter:   limiter,
		Cfg:       cfg,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}

	log.Info("starting server", "port", port, "env", cfg.Env)

	e.Logger.Fatal(e.Start(":" + port))
}
