package media

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

// pngBytes 產生 1x1 PNG
func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.Set(0, 0, color.White)
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func fileHeader(t *testing.T, name string, data []byte) *multipart.FileHeader {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	fw, err := w.CreateFormFile("image", name)
	require.NoError(t, err)
	_, err = fw.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(MaxImageSize*2))
	return req.MultipartForm.File["image"][0]
}

func TestReadImage(t *testing.T) {
	img, err := ReadImage(fileHeader(t, "poster.bin", pngBytes(t)))
	require.NoError(t, err)
	require.Equal(t, "image/png", img.ContentType)
	require.Equal(t, ".png", img.Ext)

	// 副檔名騙不過內容檢查
	_, err = ReadImage(fileHeader(t, "poster.png", []byte("plain text, not an image")))
	require.ErrorIs(t, err, ErrUnsupportedImage)

	big := append(pngBytes(t), make([]byte, MaxImageSize)...)
	_, err = ReadImage(fileHeader(t, "big.png", big))
	require.ErrorIs(t, err, ErrImageTooLarge)
}

func TestNewImageJPEG(t *testing.T) {
	jpegHeader := []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00}
	img, err := NewImage(jpegHeader)
	require.NoError(t, err)
	require.Equal(t, "image/jpeg", img.ContentType)
	require.Equal(t, ".jpg", img.Ext)
}

func TestStorageIDFromURL(t *testing.T) {
	cases := []struct {
		url  string
		want string
	}{
		{"http://cdn.example.com/moviesgo/moviesgo/movie-1700000000000-abc123.png", "moviesgo/movie-1700000000000-abc123"},
		{"https://cdn.example.com/b/moviesgo/poster.jpg?v=2", "moviesgo/poster"},
		{"https://cdn.example.com/b/noext", "moviesgo/noext"},
		{"", ""},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, StorageIDFromURL(tc.url, "moviesgo"), tc.url)
	}

	// 設定中多餘的斜線不影響推回的 id
	url := "http://minio:9000/moviesgo/moviesgo/movie-1-abcdef.png"
	for _, folder := range []string{"moviesgo/", "/moviesgo", "/moviesgo/"} {
		require.Equal(t, "moviesgo/movie-1-abcdef", StorageIDFromURL(url, folder), folder)
	}
	require.Equal(t, "movie-1-abcdef", StorageIDFromURL(url, ""))
}

func TestFakeUploader(t *testing.T) {
	f := &FakeUploader{}
	require.Panics(t, func() { _, _ = f.Upload(context.Background(), Image{}) })
	require.Panics(t, func() { _ = f.Delete(context.Background(), "x") })

	f.UploadFn = func(context.Context, Image) (Result, error) { return Result{URL: "u", StorageID: "s"}, nil }
	f.DeleteFn = func(context.Context, string) error { return nil }
	res, err := f.Upload(context.Background(), Image{})
	require.NoError(t, err)
	require.Equal(t, "s", res.StorageID)
	require.NoError(t, f.Delete(context.Background(), "s"))
}
