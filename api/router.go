// Package api contains all endpoints available
package api

import (
	"time"

	"devjobs/board-api/config"
	"devjobs/board-api/db"
	"devjobs/board-api/internal/auth"
	"devjobs/board-api/internal/service"
	"devjobs/board-api/pkg/middleware"
	"devjobs/board-api/pkg/security"

	cache "github.com/chenyahui/gin-cache"
	"github.com/chenyahui/gin-cache/persist"
	ginzap "github.com/gin-contrib/zap"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"
)

const (
	gray  = "\x1b[90m"
	reset = "\x1b[0m"
)

var store = persist.NewMemoryStore(time.Minute)

type API struct {
	DB     *gorm.DB
	Router *gin.Engine
	Auth   *auth.Service
	Files  service.FileStore
}

func NewRouter() (*API, error) {
	a := &API{}

	database, err := db.New()
	if err != nil {
		return nil, err
	}
	a.DB = database

	makeLogger()

	router := gin.New()
	a.Router = router

	router.Use(
		cors.New(cors.Config{
			AllowOrigins:     []string{"http://localhost:5173"},
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "TurnstileToken"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
		gin.Recovery(),
		middleware.NewRequestIDMiddleware(),
		ginzap.GinzapWithConfig(zap.L(), &ginzap.Config{
			TimeFormat: "15:04:05.000",
			UTC:        true,
			Skipper: func(c *gin.Context) bool {
				return c.Request.Method == "HEAD"
			},
			Context: func(c *gin.Context) []zapcore.Field {
				fields := []zapcore.Field{}

				if v := c.GetString("requestID"); v != "" {
					fields = append(fields, zap.String("request_id", v))
				}

				if v := c.GetString("userID"); v != "" {
					fields = append(fields, zap.String("userID", v))
				}

				return fields
			},
		}),
	)

	router.HandleMethodNotAllowed = true
	router.RedirectFixedPath = true
	a.Router.MaxMultipartMemory = 5 << 20

	files, err := service.NewFileStore()
	if err != nil {
		return nil, err
	}
	a.Files = files

	a.Auth = auth.NewService(
		database,
		security.New(viper.GetInt("security.bcrypt_cost")),
		service.NewMailer(),
		config.Origin(),
	)

	guard := middleware.NewSessionGuard(database)
	turnstile := middleware.NewTurnstileMiddleware()
	throttle := middleware.RateLimiterMiddleware(middleware.RateLimiterConfig{
		RequestsPerSecond: 1,
		Burst:             5,
	})

	cvMaxSize := viper.GetInt64("upload.cv_max_size")

	main := router.Group("/api")
	{
		// HEAD /api/heartbeat 		-> Used to check if the server is alive
		main.HEAD("/heartbeat", a.Heartbeat)

		// HEAD /api/validate		-> Validates the session cookie
		main.HEAD("/validate", guard, a.Validate)
	}

	users := main.Group("/users", middleware.BodySizeLimiter(1<<20))
	{
		// GET /api/users		-> Returns the profile and vacancies of a user
		users.GET("", guard, a.UserFetch)

		// POST /api/users 		-> Registers a new user
		users.POST("", turnstile, a.UserRegister)

		// POST /api/users/login 	-> Logs in a user and sets the session cookie
		users.POST("/login", throttle, a.UserLogin)

		// POST /api/users/logout 	-> Clears the session cookie
		users.POST("/logout", a.UserLogout)

		// PUT /api/users 		-> Edits the profile, optionally with a new image
		users.PUT("", guard, a.UserEdit)
	}

	resets := main.Group("/reestablecer-password", middleware.BodySizeLimiter(1<<20))
	{
		// POST /api/reestablecer-password		-> Issues a reset token and mails the link
		resets.POST("", throttle, turnstile, a.ResetRequest)

		// GET /api/reestablecer-password/:token	-> Checks if a reset link is still valid
		resets.GET("/:token", a.ResetValidate)

		// POST /api/reestablecer-password/:token	-> Sets the new password and burns the token
		resets.POST("/:token", a.ResetConsume)
	}

	vacancies := main.Group("/vacantes")
	{
		// GET /api/vacantes 		-> Lists all vacancies
		vacancies.GET("", cacheFor(30), a.VacancyList)

		// GET /api/vacantes/:url 	-> Returns one vacancy by its slug
		vacancies.GET("/:url", a.VacancyFetch)

		// POST /api/vacantes/buscador 	-> Searches vacancies by title
		vacancies.POST("/buscador", a.VacancySearch)

		// POST /api/vacantes 		-> Publishes a new vacancy
		vacancies.POST("", guard, middleware.BodySizeLimiter(1<<20), a.VacancyCreate)

		// PUT /api/vacantes/:url 	-> Edits an owned vacancy
		vacancies.PUT("/:url", guard, middleware.BodySizeLimiter(1<<20), a.VacancyEdit)

		// DELETE /api/vacantes/:id 	-> Deletes an owned vacancy
		vacancies.DELETE("/:id", guard, a.VacancyDelete)

		// POST /api/vacantes/:url/candidatos	-> Applies to a vacancy with a CV upload
		vacancies.POST("/:url/candidatos", turnstile, middleware.BodySizeLimiter(cvMaxSize+(1<<20)), a.CandidateApply)

		// GET /api/vacantes/:url/candidatos	-> Lists candidates of an owned vacancy
		vacancies.GET("/:url/candidatos", guard, a.CandidateList)
	}

	uploads := main.Group("/uploads")
	{
		// GET /api/uploads/:name 	-> Serves an uploaded file
		uploads.GET("/:name", a.UploadServe)
	}

	if viper.GetBool("app.sweep_tokens") {
		service.TokenCleanup(time.Hour, database)
	}

	return a, nil
}

func makeLogger() {
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.EncoderConfig.EncodeTime = func(t time.Time, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + t.Format("15:04:05.000") + reset)
	}
	cfg.EncoderConfig.EncodeCaller = func(ec zapcore.EntryCaller, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + ec.TrimmedPath() + reset)
	}

	cfg.DisableStacktrace = true

	log, _ := cfg.Build()
	zap.ReplaceGlobals(log)
}

func cacheFor(sec int) gin.HandlerFunc {
	return cache.CacheByRequestURI(store, time.Second*time.Duration(sec))
}
