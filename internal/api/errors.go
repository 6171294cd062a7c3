package api

import (
	"errors"

	"moviesgo/internal/apperror"
	"moviesgo/internal/model"
	"moviesgo/internal/store"
)

// StoreError 把儲存層錯誤轉成 API 錯誤
func StoreError(err error, notFoundMsg string) error {
	var ve *model.ValidationError
	switch {
	case err == nil:
		return nil
	case errors.Is(err, store.ErrNotFound):
		return apperror.NotFound(notFoundMsg)
	case errors.As(err, &ve):
		return apperror.BadRequest(ve.Message)
	default:
		return apperror.Internal(err)
	}
}

// ValidationError 模型驗證失敗轉 BadRequest，其餘原樣回傳
func ValidationError(err error) error {
	var ve *model.ValidationError
	if errors.As(err, &ve) {
		return apperror.BadRequest(ve.Message)
	}
	return err
}
