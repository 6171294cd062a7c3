package movies

import (
	"net/http"

	"moviesgo/internal/api"
	"moviesgo/internal/store"

	"github.com/labstack/echo/v4"
)

// GetMovieHandler 取得單一電影
// @Summary     Get a movie
// @Tags        movies
// @Produce     json
// @Param       id  path     string true "電影 ID"
// @Success     200 {object} api.Envelope{data=model.Movie}
// @Failure     400 {object} apperror.Response
// @Failure     404 {object} apperror.Response
// @Router      /movies/{id} [get]
func GetMovieHandler(d Deps) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := api.ParseID(c, "id")
		if err != nil {
			return err
		}
		movie, err := d.Movies.GetMovieByID(c.Request().Context(), id, store.ActiveOnly)
		if err != nil {
			return api.StoreError(err, notFoundMessage)
		}
		return api.OK(c, http.StatusOK, movie)
	}
}
