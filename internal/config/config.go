// Package config 統一設定管理
//
// 載入順序：
//  1. .env（不存在時略過）
//  2. CONFIG_FILE 指定的 YAML 檔提供預設值
//  3. 環境變數覆蓋 YAML
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

type StoreConfig struct {
	Driver        string `yaml:"driver"`
	MongoURI      string `yaml:"mongo_uri"`
	MongoDatabase string `yaml:"mongo_database"`
	DatabaseURL   string `yaml:"database_url"`
}

type MinIOConfig struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Bucket    string `yaml:"bucket"`
	UseSSL    bool   `yaml:"use_ssl"`
	// PublicURL 對外存取圖片的位址，空白時由 Endpoint 推得
	PublicURL string `yaml:"public_url"`
	Folder    string `yaml:"folder"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type LoginConfig struct {
	MaxAttempts int           `yaml:"max_attempts"`
	Window      time.Duration `yaml:"window"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Config 應用設定，於 cmd/service 建立一次後注入各元件
type Config struct {
	Port        string        `yaml:"port"`
	JWTSecret   string        `yaml:"jwt_secret"`
	TokenTTL    time.Duration `yaml:"token_ttl"`
	CORSOrigins []string      `yaml:"cors_origins"`
	Store       StoreConfig   `yaml:"store"`
	MinIO       MinIOConfig   `yaml:"minio"`
	Redis       RedisConfig   `yaml:"redis"`
	Login       LoginConfig   `yaml:"login"`
	Log         LogConfig     `yaml:"log"`

	// CleanupWorkers 背景刪除圖片的 worker 數
	CleanupWorkers int `yaml:"cleanup_workers"`
}

// 便於測試替換
var (
	dotenvLoad = godotenv.Load
	readFile   = os.ReadFile
	lookupEnv  = os.LookupEnv
)

// Default 回傳所有預設值
func Default() Config {
	return Config{
		Port:           "5000",
		TokenTTL:       30 * 24 * time.Hour,
		CORSOrigins:    []string{"*"},
		CleanupWorkers: 2,
		Store: StoreConfig{
			Driver:        DriverMongo,
			MongoDatabase: "moviesgo",
		},
		MinIO: MinIOConfig{
			Bucket: "moviesgo",
			Folder: "moviesgo",
		},
		Login: LoginConfig{
			MaxAttempts: 5,
			Window:      15 * time.Minute,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load 讀取 .env、YAML 與環境變數，回傳驗證過的設定
func Load() (*Config, error) {
	_ = dotenvLoad()

	cfg := Default()
	if path, ok := lookupEnv("CONFIG_FILE"); ok && path != "" {
		data, err := readFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	// storage id 與物件鍵都以 "folder/" 組成，前後斜線一律去掉
	cfg.MinIO.Folder = strings.Trim(strings.TrimSpace(cfg.MinIO.Folder), "/")
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyEnv() error {
	setString(&c.Port, "PORT")
	setString(&c.JWTSecret, "JWT_SECRET")
	setString(&c.Store.Driver, "STORE_DRIVER")
	setString(&c.Store.MongoURI, "MONGO_URI")
	setString(&c.Store.MongoDatabase, "MONGO_DATABASE")
	setString(&c.Store.DatabaseURL, "DATABASE_URL")
	setString(&c.MinIO.Endpoint, "MINIO_ENDPOINT")
	setString(&c.MinIO.AccessKey, "MINIO_ACCESS_KEY")
	setString(&c.MinIO.SecretKey, "MINIO_SECRET_KEY")
	setString(&c.MinIO.Bucket, "MINIO_BUCKET")
	setString(&c.MinIO.PublicURL, "MINIO_PUBLIC_URL")
	setString(&c.MinIO.Folder, "MEDIA_FOLDER")
	setString(&c.Redis.Addr, "REDIS_ADDR")
	setString(&c.Redis.Password, "REDIS_PASSWORD")
	setString(&c.Log.Level, "LOG_LEVEL")
	setString(&c.Log.Format, "LOG_FORMAT")

	if v, ok := lookupEnv("CORS_ORIGINS"); ok && v != "" {
		c.CORSOrigins = splitList(v)
	}

	var errs []error
	if err := setBool(&c.MinIO.UseSSL, "MINIO_USE_SSL"); err != nil {
		errs = append(errs, err)
	}
	if err := setInt(&c.CleanupWorkers, "CLEANUP_WORKERS"); err != nil {
		errs = append(errs, err)
	}
	if err := setInt(&c.Redis.DB, "REDIS_DB"); err != nil {
		errs = append(errs, err)
	}
	if err := setInt(&c.Login.MaxAttempts, "LOGIN_MAX_ATTEMPTS"); err != nil {
		errs = append(errs, err)
	}
	if err := setDuration(&c.Login.Window, "LOGIN_WINDOW"); err != nil {
		errs = append(errs, err)
	}
	if err := setDuration(&c.TokenTTL, "TOKEN_TTL"); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Validate 檢查必要設定
func (c *Config) Validate() error {
	var errs []error
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	if c.Port == "" {
		errs = append(errs, errors.New("PORT is required"))
	}
	switch c.Store.Driver {
	case DriverMongo:
		if c.Store.MongoURI == "" {
			errs = append(errs, errors.New("MONGO_URI is required for the mongo driver"))
		}
		if c.Store.MongoDatabase == "" {
			errs = append(errs, errors.New("MONGO_DATABASE is required for the mongo driver"))
		}
	case DriverPostgres:
		if c.Store.DatabaseURL == "" {
			errs = append(errs, errors.New("DATABASE_URL is required for the postgres driver"))
		}
	case DriverMemory:
	default:
		errs = append(errs, fmt.Errorf("unknown STORE_DRIVER %q", c.Store.Driver))
	}
	if c.MinIO.Endpoint == "" {
		errs = append(errs, errors.New("MINIO_ENDPOINT is required"))
	}
	if c.MinIO.AccessKey == "" || c.MinIO.SecretKey == "" {
		errs = append(errs, errors.New("MINIO_ACCESS_KEY and MINIO_SECRET_KEY are required"))
	}
	if c.MinIO.Bucket == "" {
		errs = append(errs, errors.New("MINIO_BUCKET is required"))
	}
	return errors.Join(errs...)
}

// MediaPublicURL 圖片對外網址前綴
func (m MinIOConfig) MediaPublicURL() string {
	if m.PublicURL != "" {
		return strings.TrimRight(m.PublicURL, "/")
	}
	scheme := "http"
	if m.UseSSL {
		scheme = "https"
	}
	return scheme + "://" + m.Endpoint
}

func setString(dst *string, key string) {
	if v, ok := lookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func setBool(dst *bool, key string) error {
	v, ok := lookupEnv(key)
	if !ok || v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = b
	return nil
}

func setInt(dst *int, key string) error {
	v, ok := lookupEnv(key)
	if !ok || v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = n
	return nil
}

func setDuration(dst *time.Duration, key string) error {
	v, ok := lookupEnv(key)
	if !ok || v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = d
	return nil
}

func splitList(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
