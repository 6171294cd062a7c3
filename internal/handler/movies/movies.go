// Package movies 電影的 CRUD 與海報上傳
package movies

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"moviesgo/internal/apperror"
	"moviesgo/internal/media"
	"moviesgo/internal/store"
	"moviesgo/internal/worker"

	"github.com/labstack/echo/v4"
)

const notFoundMessage = "movie not found"

// Deps 電影 handler 的相依元件
type Deps struct {
	Movies store.MovieStore
	Media  media.Uploader
	// Folder 媒體服務中的資料夾，用於由網址推回 storage id
	Folder string
	Logger *slog.Logger
	Now    func() time.Time

	// Cleanup 有設定時圖片清理改在背景執行
	Cleanup worker.Pool
}

func (d Deps) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

func (d Deps) logger() *slog.Logger {
	if d.Logger != nil {
		return d.Logger
	}
	return slog.Default()
}

// readImage 讀取 image 欄位；required 為 false 時沒有檔案回傳 nil
func readImage(c echo.Context, required bool) (*media.Image, error) {
	fh, err := c.FormFile("image")
	if err != nil {
		if required {
			return nil, apperror.BadRequest("image is required")
		}
		return nil, nil
	}
	img, err := media.ReadImage(fh)
	switch {
	case errors.Is(err, media.ErrImageTooLarge), errors.Is(err, media.ErrUnsupportedImage):
		return nil, apperror.BadRequest(err.Error())
	case err != nil:
		return nil, apperror.Internal(err)
	}
	return &img, nil
}

// discard 刪除已上傳但未被使用的圖片，失敗只記錄
func (d Deps) discard(ctx context.Context, storageID string) {
	ctx = context.WithoutCancel(ctx)
	task := func() {
		if err := d.Media.Delete(ctx, storageID); err != nil {
			d.logger().Error("delete orphaned image", "storage_id", storageID, "error", err)
		}
	}
	if d.Cleanup != nil {
		d.Cleanup.Submit(task)
		return
	}
	task()
}
