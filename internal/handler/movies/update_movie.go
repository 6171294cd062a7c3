package movies

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"moviesgo/internal/api"
	"moviesgo/internal/apperror"
	"moviesgo/internal/media"
	"moviesgo/internal/model"
	"moviesgo/internal/store"
	"moviesgo/internal/validate"

	"github.com/labstack/echo/v4"
)

// UpdateMovieHandler 部分更新電影，可同時更換海報
// @Summary     Update a movie
// @Description 只更新有提供的欄位；year 必須是 4 位數字；description 送出空字串代表清除簡介
// @Tags        movies
// @Accept      multipart/form-data
// @Produce     json
// @Param       id          path     string true  "電影 ID"
// @Param       title       formData string false "片名"
// @Param       genre       formData string false "類型"
// @Param       year        formData string false "年份 (4 位數)"
// @Param       description formData string false "簡介"
// @Param       category    formData string false "分類" Enums(action, comedy, drama)
// @Param       image       formData file   false "新海報"
// @Success     200 {object} api.Envelope{data=model.Movie}
// @Failure     400 {object} apperror.Response
// @Failure     401 {object} apperror.Response
// @Failure     404 {object} apperror.Response
// @Security    ApiKeyAuth
// @Router      /movies/{id} [put]
func UpdateMovieHandler(d Deps) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := api.ParseID(c, "id")
		if err != nil {
			return err
		}
		var req api.UpdateMovieRequest
		if err := api.Bind(c, &req); err != nil {
			return err
		}

		form, err := c.FormParams()
		if err != nil {
			return apperror.BadRequest("invalid request body")
		}
		patch, err := buildPatch(req, form)
		if err != nil {
			return err
		}

		ctx := c.Request().Context()
		movie, err := d.Movies.GetMovieByID(ctx, id, store.ActiveOnly)
		if err != nil {
			return api.StoreError(err, notFoundMessage)
		}

		img, err := readImage(c, false)
		if err != nil {
			return err
		}

		now := d.now()
		if err := movie.Apply(patch, now); err != nil {
			return api.ValidationError(err)
		}
		if img == nil {
			if err := d.Movies.UpdateMovie(ctx, movie); err != nil {
				return api.StoreError(err, notFoundMessage)
			}
			return api.OK(c, http.StatusOK, movie)
		}

		oldStorageID := media.StorageIDFromURL(movie.ImageURL, d.Folder)
		uploaded, err := d.Media.Upload(ctx, *img)
		if err != nil {
			return apperror.Upload("image upload failed", err)
		}
		url := uploaded.URL
		if err := movie.Apply(model.MoviePatch{ImageURL: &url}, now); err != nil {
			d.discard(ctx, uploaded.StorageID)
			return api.ValidationError(err)
		}
		if err := d.Movies.UpdateMovie(ctx, movie); err != nil {
			d.discard(ctx, uploaded.StorageID)
			return api.StoreError(err, notFoundMessage)
		}
		if oldStorageID != "" {
			d.discard(ctx, oldStorageID)
		}
		return api.OK(c, http.StatusOK, movie)
	}
}

// buildPatch 空字串視為未提供；description 例外，有送出欄位即覆寫
func buildPatch(req api.UpdateMovieRequest, form url.Values) (model.MoviePatch, error) {
	var p model.MoviePatch
	if req.Year = strings.TrimSpace(req.Year); req.Year != "" {
		if !validate.IsFourDigitYear(req.Year) {
			return p, apperror.BadRequest("year must be a 4-digit number")
		}
		year, _ := strconv.Atoi(req.Year)
		p.Year = &year
	}
	if req.Title != "" {
		p.Title = &req.Title
	}
	if req.Genre != "" {
		p.Genre = &req.Genre
	}
	if _, ok := form["description"]; ok || req.Description != "" {
		p.Description = &req.Description
	}
	if req.Category != "" {
		p.Category = &req.Category
	}
	return p, nil
}
