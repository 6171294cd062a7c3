// Package media 處理電影海報圖片的檢查、上傳與刪除
package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// MaxImageSize 單張圖片大小上限
const MaxImageSize = 5 << 20

var (
	ErrImageTooLarge    = errors.New("image exceeds 5MB")
	ErrUnsupportedImage = errors.New("only JPEG and PNG images are allowed")
)

// Image 已通過檢查的圖片內容
type Image struct {
	Data        []byte
	ContentType string
	// Ext 含開頭的點，例如 ".png"
	Ext string
}

// Result 上傳結果；StorageID 用於之後刪除
type Result struct {
	URL       string
	StorageID string
}

// Uploader 圖片託管服務
type Uploader interface {
	Upload(ctx context.Context, img Image) (Result, error)
	Delete(ctx context.Context, storageID string) error
}

// ReadImage 讀取 multipart 檔案，依內容判斷格式
func ReadImage(fh *multipart.FileHeader) (Image, error) {
	if fh.Size > MaxImageSize {
		return Image{}, ErrImageTooLarge
	}
	f, err := fh.Open()
	if err != nil {
		return Image{}, fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, MaxImageSize+1))
	if err != nil {
		return Image{}, fmt.Errorf("read upload: %w", err)
	}
	return NewImage(data)
}

// NewImage 檢查位元組內容是否為允許的圖片
func NewImage(data []byte) (Image, error) {
	if len(data) > MaxImageSize {
		return Image{}, ErrImageTooLarge
	}
	mt := mimetype.Detect(data)
	switch {
	case mt.Is("image/jpeg"), mt.Is("image/png"):
	default:
		return Image{}, ErrUnsupportedImage
	}
	return Image{Data: data, ContentType: mt.String(), Ext: mt.Extension()}, nil
}

// StorageIDFromURL 由公開網址推回 storage id：folder/<檔名去副檔名>
func StorageIDFromURL(url, folder string) string {
	url = strings.TrimSpace(url)
	if url == "" {
		return ""
	}
	if i := strings.IndexAny(url, "?#"); i >= 0 {
		url = url[:i]
	}
	name := path.Base(url)
	name = strings.TrimSuffix(name, path.Ext(name))
	if name == "" || name == "." || name == "/" {
		return ""
	}
	if folder = strings.Trim(folder, "/"); folder == "" {
		return name
	}
	return folder + "/" + name
}
