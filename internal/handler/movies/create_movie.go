// File: internal/handler/movies/create_movie.go
package movies

import (
	"net/http"
	"strconv"
	"strings"

	"moviesgo/internal/api"
	"moviesgo/internal/apperror"
	"moviesgo/internal/model"
	"moviesgo/internal/validate"

	"github.com/labstack/echo/v4"
)

// CreateMovieHandler 建立電影並上傳海報
// @Summary     Create a movie
// @Description 先上傳圖片再寫入資料；寫入失敗時會刪除剛上傳的圖片
// @Tags        movies
// @Accept      multipart/form-data
// @Produce     json
// @Param       title       formData string true  "片名"
// @Param       genre       formData string true  "類型"
// @Param       year        formData int    true  "年份 (1900 ~ 今年 + 5)"
// @Param       description formData string false "簡介"
// @Param       category    formData string true  "分類" Enums(action, comedy, drama)
// @Param       image       formData file   true  "海報 (JPEG / PNG, 5MB 以內)"
// @Success     201 {object} api.Envelope{data=model.Movie}
// @Failure     400 {object} apperror.Response
// @Failure     401 {object} apperror.Response
// @Failure     500 {object} apperror.Response
// @Security    ApiKeyAuth
// @Router      /movies [post]
func CreateMovieHandler(d Deps) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.CreateMovieRequest
		if err := api.Bind(c, &req); err != nil {
			return err
		}

		now := d.now()
		year, err := strconv.Atoi(strings.TrimSpace(req.Year))
		if err != nil || !validate.IsYearInRange(year, validate.MinMovieYear, validate.MaxMovieYear(now)) {
			return apperror.BadRequest("year must be a number between 1900 and the current year + 5")
		}

		img, err := readImage(c, true)
		if err != nil {
			return err
		}

		ctx := c.Request().Context()
		uploaded, err := d.Media.Upload(ctx, *img)
		if err != nil {
			return apperror.Upload("image upload failed", err)
		}

		movie, err := model.NewMovie(model.MovieFields{
			Title:       req.Title,
			Genre:       req.Genre,
			Year:        year,
			Description: req.Description,
			ImageURL:    uploaded.URL,
			Category:    req.Category,
		}, now)
		if err != nil {
			d.discard(ctx, uploaded.StorageID)
			return api.ValidationError(err)
		}
		if err := d.Movies.CreateMovie(ctx, movie); err != nil {
			d.discard(ctx, uploaded.StorageID)
			return api.StoreError(err, notFoundMessage)
		}
		return api.OK(c, http.StatusCreated, movie)
	}
}
