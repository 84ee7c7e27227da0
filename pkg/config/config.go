package config

import (
	"fmt"
	"os"
	"runtime"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config はアプリケーション全体の設定を保持します
type Config struct {
	// Database設定
	Database DatabaseConfig

	// HTTPサーバー設定
	Server ServerConfig

	// 埋め込み設定
	Embedding EmbeddingConfig

	// 検索設定
	Query QueryConfig

	// 取り込み設定
	Ingest IngestConfig

	// ログ設定
	Log LogConfig
}

// DatabaseConfig はデータベース接続設定
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// ServerConfig はHTTPサーバー設定
type ServerConfig struct {
	Port int
}

// EmbeddingConfig は埋め込みベクトル設定
type EmbeddingConfig struct {
	Dimensions int
}

// QueryConfig は検索設定
type QueryConfig struct {
	Limit   int
	Timeout time.Duration
}

// IngestConfig はCSV取り込み設定
type IngestConfig struct {
	DataDir   string
	BatchSize int
	Workers   int
}

// LogConfig はログ設定
type LogConfig struct {
	Level  string
	Format string // "json" or "text"
}

// Load は環境変数または.envファイルから設定を読み込みます
func Load(envFilePath string) (*Config, error) {
	// .envファイルが存在する場合は読み込む
	if envFilePath != "" {
		if err := godotenv.Load(envFilePath); err != nil {
			// ファイルが存在しない場合はエラーとしない（環境変数のみで動作可能）
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to load .env file: %w", err)
			}
		}
	}

	cfg := &Config{
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "integral"),
			Password: getEnv("DB_PASSWORD", ""),
			DBName:   getEnv("DB_NAME", "integral_rag"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Server: ServerConfig{
			Port: getEnvAsInt("PORT", 3000),
		},
		Embedding: EmbeddingConfig{
			// 旧来の綴り EMEDDING_DIMENSIONS も受け付ける
			Dimensions: getEnvAsInt("EMBEDDING_DIMENSIONS", getEnvAsInt("EMEDDING_DIMENSIONS", 384)),
		},
		Query: QueryConfig{
			Limit:   getEnvAsInt("QUERY_LIMIT", 5),
			Timeout: getEnvAsDuration("QUERY_TIMEOUT", 10*time.Second),
		},
		Ingest: IngestConfig{
			DataDir:   getEnv("DATA_DIR", "data"),
			BatchSize: getEnvAsInt("INGEST_BATCH_SIZE", 25),
			Workers:   getEnvAsInt("INGEST_WORKERS", max(runtime.NumCPU()/2, 1)),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	if cfg.Embedding.Dimensions <= 0 {
		return nil, fmt.Errorf("EMBEDDING_DIMENSIONS must be positive: %d", cfg.Embedding.Dimensions)
	}

	return cfg, nil
}

// getEnv は環境変数を取得し、存在しない場合はデフォルト値を返します
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt は環境変数を整数として取得します
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsDuration は環境変数を time.Duration として取得します
// "10s" 形式のほか、単位なしの整数はミリ秒として扱います
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	if ms, err := strconv.Atoi(valueStr); err == nil {
		return time.Duration(ms) * time.Millisecond
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
