// File: internal/router/router.go
package router

import (
	"log/slog"

	"github.com/labstack/echo/v4"

	"moviesgo/internal/cache"
	"moviesgo/internal/handler"
	"moviesgo/internal/handler/contacts"
	"moviesgo/internal/handler/movies"
	"moviesgo/internal/handler/users"
	"moviesgo/internal/media"
	"moviesgo/internal/middleware"
	"moviesgo/internal/service"
	"moviesgo/internal/store"
	"moviesgo/internal/worker"
)

// Deps 路由需要的所有元件，由 cmd/service 組裝
type Deps struct {
	Store   store.Backend
	Cache   cache.Cache // 可為 nil
	Tokens  *service.TokenService
	Limiter *service.LoginLimiter
	Media   media.Uploader
	Folder  string
	Cleanup worker.Pool // 可為 nil
	Logger  *slog.Logger
}

// Setup 註冊所有路由與中介層
func Setup(e *echo.Echo, d Deps) {
	api := e.Group("/api")
	auth := middleware.RequireAuth(d.Store, d.Tokens)

	// 健康檢查
	api.GET("/ping", handler.PingHandler(d.Store, d.Cache))

	// 聯絡訊息：建立公開，其餘需登入
	apiContact := api.Group("/contact")
	apiContact.POST("", contacts.CreateContactHandler(d.Store))
	apiContact.GET("", contacts.ListContactsHandler(d.Store), auth)
	apiContact.PUT("/:id", contacts.UpdateContactHandler(d.Store), auth)
	apiContact.DELETE("/:id", contacts.DeleteContactHandler(d.Store), auth)

	// 電影：讀取公開，寫入需登入
	md := movies.Deps{
		Movies:  d.Store,
		Media:   d.Media,
		Folder:  d.Folder,
		Logger:  d.Logger,
		Cleanup: d.Cleanup,
	}
	apiMovies := api.Group("/movies")
	apiMovies.GET("", movies.ListMoviesHandler(md))
	apiMovies.GET("/:id", movies.GetMovieHandler(md))
	apiMovies.POST("", movies.CreateMovieHandler(md), auth)
	apiMovies.PUT("/:id", movies.UpdateMovieHandler(md), auth)
	apiMovies.DELETE("/:id", movies.DeleteMovieHandler(md), auth)

	// 使用者：註冊與登入公開，/me 必須在 /:id 之前
	ud := users.Deps{
		Users:   d.Store,
		Tokens:  d.Tokens,
		Limiter: d.Limiter,
		Logger:  d.Logger,
	}
	apiUsers := api.Group("/users")
	apiUsers.POST("", users.RegisterHandler(ud))
	apiUsers.POST("/login", users.LoginHandler(ud))
	apiUsers.GET("", users.ListUsersHandler(ud), auth)
	apiUsers.GET("/me", users.GetMeHandler(), auth)
	apiUsers.PUT("/:id", users.UpdateUserHandler(ud), auth)
	apiUsers.DELETE("/:id", users.DeleteUserHandler(ud), auth)
	apiUsers.PUT("/:id/password", users.UpdatePasswordHandler(ud), auth)
}
