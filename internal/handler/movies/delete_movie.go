package movies

import (
	"fmt"
	"net/http"

	"moviesgo/internal/api"
	"moviesgo/internal/media"
	"moviesgo/internal/store"

	"github.com/labstack/echo/v4"
)

// DeleteMovieHandler 軟刪除電影並移除海報
// @Summary     Delete a movie
// @Tags        movies
// @Produce     json
// @Param       id  path     string true "電影 ID"
// @Success     200 {object} api.Envelope{data=api.IDResponse}
// @Failure     400 {object} apperror.Response
// @Failure     401 {object} apperror.Response
// @Failure     404 {object} apperror.Response
// @Security    ApiKeyAuth
// @Router      /movies/{id} [delete]
func DeleteMovieHandler(d Deps) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := api.ParseID(c, "id")
		if err != nil {
			return err
		}
		ctx := c.Request().Context()
		movie, err := d.Movies.GetMovieByID(ctx, id, store.ActiveOnly)
		if err != nil {
			return api.StoreError(err, notFoundMessage)
		}
		if err := d.Movies.SoftDeleteMovie(ctx, id); err != nil {
			return api.StoreError(err, notFoundMessage)
		}
		if storageID := media.StorageIDFromURL(movie.ImageURL, d.Folder); storageID != "" {
			d.discard(ctx, storageID)
		}
		return api.Message(c, http.StatusOK, api.IDResponse{ID: id}, fmt.Sprintf("movie %q deleted", movie.Title))
	}
}
