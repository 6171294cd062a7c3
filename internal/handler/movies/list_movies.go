package movies

import (
	"strings"

	"moviesgo/internal/api"
	"moviesgo/internal/apperror"
	"moviesgo/internal/store"

	"github.com/labstack/echo/v4"
)

// ListMoviesHandler 分頁列出電影，可依分類與片名過濾
// @Summary     List movies
// @Description title 為不分大小寫的部分比對
// @Tags        movies
// @Produce     json
// @Param       page     query    int    false "頁碼，預設 1"
// @Param       limit    query    int    false "每頁筆數，預設 10，上限 50"
// @Param       category query    string false "分類" Enums(action, comedy, drama)
// @Param       title    query    string false "片名關鍵字"
// @Success     200 {object} api.Envelope{data=[]model.Movie}
// @Failure     400 {object} apperror.Response
// @Router      /movies [get]
func ListMoviesHandler(d Deps) echo.HandlerFunc {
	return func(c echo.Context) error {
		page, err := api.ParsePagination(c)
		if err != nil {
			return err
		}
		filter := store.MovieFilter{
			Category: strings.TrimSpace(c.QueryParam("category")),
			Title:    strings.TrimSpace(c.QueryParam("title")),
		}
		items, total, err := d.Movies.ListMovies(c.Request().Context(), filter, page)
		if err != nil {
			return apperror.Internal(err)
		}
		return api.List(c, items, page, total)
	}
}
