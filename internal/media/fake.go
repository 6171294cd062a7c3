package media

import "context"

// FakeUploader 測試用，未設定的方法會 panic
type FakeUploader struct {
	UploadFn func(ctx context.Context, img Image) (Result, error)
	DeleteFn func(ctx context.Context, storageID string) error
}

// Upload 執行 Fake 設定或 panic
func (f *FakeUploader) Upload(ctx context.Context, img Image) (Result, error) {
	if f.UploadFn != nil {
		return f.UploadFn(ctx, img)
	}
	panic("unexpected Upload")
}

// Delete 執行 Fake 設定或 panic
func (f *FakeUploader) Delete(ctx context.Context, storageID string) error {
	if f.DeleteFn != nil {
		return f.DeleteFn(ctx, storageID)
	}
	panic("unexpected Delete")
}
