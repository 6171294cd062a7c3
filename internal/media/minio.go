package media

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"moviesgo/internal/config"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// objectAPI 為 *minio.Client 中用到的方法，測試時替換
type objectAPI interface {
	BucketExists(ctx context.Context, bucket string) (bool, error)
	MakeBucket(ctx context.Context, bucket string, opts minio.MakeBucketOptions) error
	SetBucketPolicy(ctx context.Context, bucket, policy string) error
	PutObject(ctx context.Context, bucket, key string, r io.Reader, size int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	ListObjects(ctx context.Context, bucket string, opts minio.ListObjectsOptions) <-chan minio.ObjectInfo
	RemoveObject(ctx context.Context, bucket, key string, opts minio.RemoveObjectOptions) error
}

var minioNew = func(endpoint string, opts *minio.Options) (objectAPI, error) {
	return minio.New(endpoint, opts)
}

// MinIOUploader 把圖片存到 MinIO bucket
type MinIOUploader struct {
	client    objectAPI
	bucket    string
	folder    string
	publicURL string
	now       func() time.Time
	logger    *slog.Logger
}

var _ Uploader = (*MinIOUploader)(nil)

// NewMinIOUploader 建立 MinIO 用戶端
func NewMinIOUploader(cfg config.MinIOConfig, logger *slog.Logger) (*MinIOUploader, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("minio endpoint is required")
	}
	if cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, fmt.Errorf("minio access_key and secret_key are required")
	}
	mc, err := minioNew(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &MinIOUploader{
		client:    mc,
		bucket:    cfg.Bucket,
		folder:    strings.Trim(cfg.Folder, "/"),
		publicURL: cfg.MediaPublicURL(),
		now:       time.Now,
		logger:    logger,
	}, nil
}

// Folder 物件鍵的前綴資料夾
func (u *MinIOUploader) Folder() string { return u.folder }

// EnsureBucket 確保 bucket 存在並允許匿名讀取
func (u *MinIOUploader) EnsureBucket(ctx context.Context) error {
	exists, err := u.client.BucketExists(ctx, u.bucket)
	if err != nil {
		return fmt.Errorf("check bucket: %w", err)
	}
	if exists {
		return nil
	}
	if err := u.client.MakeBucket(ctx, u.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("create bucket: %w", err)
	}
	if err := u.client.SetBucketPolicy(ctx, u.bucket, publicReadPolicy(u.bucket)); err != nil {
		return fmt.Errorf("set bucket policy: %w", err)
	}
	u.logger.Info("created bucket", "bucket", u.bucket)
	return nil
}

func publicReadPolicy(bucket string) string {
	return fmt.Sprintf(`{"Version":"2012-10-17","Statement":[{"Effect":"Allow","Principal":{"AWS":["*"]},"Action":["s3:GetObject"],"Resource":["arn:aws:s3:::%s/*"]}]}`, bucket)
}

// objectKey 產生 <folder>/movie-<unix ms>-<6 碼亂數>
func (u *MinIOUploader) objectKey() string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:6]
	return fmt.Sprintf("%s/movie-%d-%s", u.folder, u.now().UnixMilli(), suffix)
}

// Upload 上傳圖片並回傳公開網址
func (u *MinIOUploader) Upload(ctx context.Context, img Image) (Result, error) {
	id := u.objectKey()
	key := id + img.Ext
	_, err := u.client.PutObject(ctx, u.bucket, key, bytes.NewReader(img.Data), int64(len(img.Data)), minio.PutObjectOptions{
		ContentType: img.ContentType,
	})
	if err != nil {
		return Result{}, fmt.Errorf("upload %s: %w", key, err)
	}
	return Result{
		URL:       u.publicURL + "/" + u.bucket + "/" + key,
		StorageID: id,
	}, nil
}

// Delete 刪除 storage id 對應的所有物件（不論副檔名）
func (u *MinIOUploader) Delete(ctx context.Context, storageID string) error {
	if storageID == "" {
		return nil
	}
	objects := u.client.ListObjects(ctx, u.bucket, minio.ListObjectsOptions{Prefix: storageID + "."})
	for obj := range objects {
		if obj.Err != nil {
			return fmt.Errorf("list %s: %w", storageID, obj.Err)
		}
		if err := u.client.RemoveObject(ctx, u.bucket, obj.Key, minio.RemoveObjectOptions{}); err != nil {
			return fmt.Errorf("remove %s: %w", obj.Key, err)
		}
	}
	return nil
}
