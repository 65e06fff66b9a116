package config

import (
	"os"
	"strconv"
)

// BatchIssuePolicy 批次發行策略
type BatchIssuePolicy string

const (
	// BatchPolicyAtomic 全有全無：任一項驗證失敗，整批不發行
	BatchPolicyAtomic BatchIssuePolicy = "atomic"
	// BatchPolicyBestEffort 盡力而為：跳過無效項，回報失敗的索引
	BatchPolicyBestEffort BatchIssuePolicy = "best_effort"
)

type Config struct {
	Database DatabaseConfig
	Redis    RedisConfig
	Registry RegistryConfig
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// RegistryConfig 註冊表設定：管理員在初始化時固定，之後不可變更
type RegistryConfig struct {
	AdminID          string
	MaxBatchSize     int
	MaxInfoBytes     int
	MinPrice         float64
	BatchIssuePolicy BatchIssuePolicy
}

var AppConfig *Config

func LoadConfig() *Config {
	AppConfig = &Config{
		Database: GetDatabaseConfig(),
		Redis:    GetRedisConfig(),
		Registry: GetRegistryConfig(),
	}

	return AppConfig
}

func LoadTestConfig() *Config {
	testConfig := &DatabaseConfig{
		Host:     "localhost",
		Port:     "5433", // 測試 DB 用 5433 port
		User:     "postgres",
		Password: "postgres",
		DBName:   "test_db",
		SSLMode:  "disable",
	}

	testRedisConfig := RedisConfig{
		Host:     "localhost",
		Port:     "6380", // 測試 Redis 用 6380 port
		Password: "",
		DB:       1,
	}

	return &Config{
		Database: *testConfig,
		Redis:    testRedisConfig,
		Registry: RegistryConfig{
			AdminID:          "admin",
			MaxBatchSize:     50,
			MaxInfoBytes:     128,
			MinPrice:         10,
			BatchIssuePolicy: BatchPolicyAtomic,
		},
	}
}

func GetDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", "postgres"),
		DBName:   getEnv("DB_NAME", "postgres"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}
}

func GetRedisConfig() RedisConfig {
	db, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		panic(err)
	}

	return RedisConfig{
		Host:     getEnv("REDIS_HOST", "localhost"),
		Port:     getEnv("REDIS_PORT", "6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       db,
	}
}

func GetRegistryConfig() RegistryConfig {
	adminID := os.Getenv("REGISTRY_ADMIN_ID")
	if adminID == "" {
		panic("REGISTRY_ADMIN_ID is required")
	}

	maxBatch, err := strconv.Atoi(getEnv("REGISTRY_MAX_BATCH_SIZE", "50"))
	if err != nil {
		panic(err)
	}

	maxInfo, err := strconv.Atoi(getEnv("REGISTRY_MAX_INFO_BYTES", "128"))
	if err != nil {
		panic(err)
	}

	minPrice, err := strconv.ParseFloat(getEnv("REGISTRY_MIN_PRICE", "10"), 64)
	if err != nil {
		panic(err)
	}

	policy := BatchIssuePolicy(getEnv("BATCH_ISSUE_POLICY", string(BatchPolicyAtomic)))
	if policy != BatchPolicyAtomic && policy != BatchPolicyBestEffort {
		panic("BATCH_ISSUE_POLICY must be atomic or best_effort")
	}

	return RegistryConfig{
		AdminID:          adminID,
		MaxBatchSize:     maxBatch,
		MaxInfoBytes:     maxInfo,
		MinPrice:         minPrice,
		BatchIssuePolicy: policy,
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
