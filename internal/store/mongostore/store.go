// Package mongostore 以 MongoDB 實作 store.Backend
//
// 使用 mongo-driver v2，文件直接以 model 的 bson tag 編碼；
// _id 為應用程式產生的 UUID 字串。
package mongostore

import (
	"context"
	"fmt"
	"time"

	"moviesgo/internal/store"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const (
	ColUsers    = "users"
	ColMovies   = "movies"
	ColContacts = "contacts"
)

// 唯一索引名稱，衝突時用來判斷欄位
const (
	idxUsersEmail    = "users_email_active"
	idxUsersUsername = "users_username_active"
)

type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

var _ store.Backend = (*Store)(nil)

// NewStore 連線並建立索引
//
// uri: 如 "mongodb://localhost:27017"；dbName: 如 "moviesgo"
// 索引建立失敗時回傳錯誤，唯一性依賴這些索引
func NewStore(uri, dbName string) (*Store, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongostore: connect failed: %w", err)
	}
	if err := pingClient(ctx, client); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongostore: ping failed: %w", err)
	}

	s := &Store{client: client, db: client.Database(dbName)}
	if err := ensureIndexesFn(s, ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongostore: ensure indexes failed: %w", err)
	}
	return s, nil
}

// 測試時替換
var (
	pingClient      = func(ctx context.Context, c *mongo.Client) error { return c.Ping(ctx, nil) }
	ensureIndexesFn = (*Store).ensureIndexes
)

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

func (s *Store) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

func (s *Store) col(name string) *mongo.Collection {
	return s.db.Collection(name)
}

func (s *Store) ensureIndexes(ctx context.Context) error {
	active := bson.D{{Key: "deleted", Value: false}}
	type idx struct {
		col    string
		name   string
		keys   bson.D
		unique bool
	}
	indexes := []idx{
		{ColUsers, idxUsersEmail, bson.D{{Key: "email", Value: 1}}, true},
		{ColUsers, idxUsersUsername, bson.D{{Key: "username", Value: 1}}, true},
		{ColUsers, "users_created_at", bson.D{{Key: "deleted", Value: 1}, {Key: "created_at", Value: -1}}, false},
		{ColMovies, "movies_created_at", bson.D{{Key: "deleted", Value: 1}, {Key: "created_at", Value: -1}}, false},
		{ColMovies, "movies_category", bson.D{{Key: "category", Value: 1}}, false},
		{ColContacts, "contacts_created_at", bson.D{{Key: "deleted", Value: 1}, {Key: "created_at", Value: -1}}, false},
	}

	for _, i := range indexes {
		opts := options.Index().SetName(i.name)
		if i.unique {
			// 只對未刪除的文件要求唯一
			opts = opts.SetUnique(true).SetPartialFilterExpression(active)
		}
		if _, err := s.col(i.col).Indexes().CreateOne(ctx, mongo.IndexModel{Keys: i.keys, Options: opts}); err != nil {
			return fmt.Errorf("create index %s on %s: %w", i.name, i.col, err)
		}
	}
	return nil
}
