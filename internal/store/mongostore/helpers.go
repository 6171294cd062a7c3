package mongostore

import (
	"context"
	"errors"
	"strings"

	"moviesgo/internal/store"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// scoped 把呼叫端的條件與 deleted=false 組合；IncludeDeleted 時原樣回傳
func scoped(filter bson.D, scope store.Scope) bson.D {
	if scope == store.IncludeDeleted {
		return filter
	}
	out := make(bson.D, 0, len(filter)+1)
	out = append(out, filter...)
	return append(out, bson.E{Key: "deleted", Value: false})
}

func byID(id string) bson.D {
	return bson.D{{Key: "_id", Value: id}}
}

func wrapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, mongo.ErrNoDocuments) {
		return store.ErrNotFound
	}
	if mongo.IsDuplicateKeyError(err) {
		return &store.DuplicateError{Field: duplicateField(err.Error())}
	}
	return err
}

// duplicateField 從 E11000 訊息中的索引名稱判斷欄位
func duplicateField(msg string) string {
	switch {
	case strings.Contains(msg, idxUsersEmail):
		return "email"
	case strings.Contains(msg, idxUsersUsername):
		return "username"
	default:
		return "key"
	}
}

func findOne[T any](ctx context.Context, col *mongo.Collection, filter bson.D, opts ...options.Lister[options.FindOneOptions]) (*T, error) {
	var result T
	if err := col.FindOne(ctx, filter, opts...).Decode(&result); err != nil {
		return nil, wrapError(err)
	}
	return &result, nil
}

// findPage 依 created_at 由新到舊分頁查詢，並回傳總數
func findPage[T any](ctx context.Context, col *mongo.Collection, filter bson.D, p store.Page, projection bson.D) ([]T, int64, error) {
	total, err := col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, wrapError(err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(int64(p.Offset())).
		SetLimit(int64(p.Limit))
	if projection != nil {
		opts = opts.SetProjection(projection)
	}

	cursor, err := col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, wrapError(err)
	}
	defer cursor.Close(ctx)

	results := make([]T, 0, p.Limit)
	for cursor.Next(ctx) {
		var item T
		if err := cursor.Decode(&item); err != nil {
			return nil, 0, err
		}
		results = append(results, item)
	}
	if err := cursor.Err(); err != nil {
		return nil, 0, err
	}
	return results, total, nil
}

// updateActive 只更新未刪除的文件；沒有命中時回傳 ErrNotFound
func updateActive(ctx context.Context, col *mongo.Collection, id string, set bson.D) error {
	res, err := col.UpdateOne(ctx, scoped(byID(id), store.ActiveOnly), bson.D{{Key: "$set", Value: set}})
	if err != nil {
		return wrapError(err)
	}
	if res.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func softDelete(ctx context.Context, col *mongo.Collection, id string) error {
	return updateActive(ctx, col, id, bson.D{
		{Key: "deleted", Value: true},
		{Key: "updated_at", Value: store.Now()},
	})
}
