package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Keys      APIKeys
	Ai        AIConfig
	Ingest    IngestConfig
	Retrieval RetrievalConfig
	RateLimit RateLimitConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	UploadDir          string
	TikaURL            string
	MaxUploadBytes     int
	RequestTimeout     time.Duration
	CacheTTL           time.Duration
}

type DatabaseConfig struct {
	Connection string
}

type APIKeys struct {
	OpenRouterPrimary  string
	OpenRouterFallback string
	HuggingFace        string
	JwtSecret          string
	EmbedDocumentTopic string // background embedding topic
}

type AIConfig struct {
	CompletionModel string
	ChatModel       string
	EmbeddingModel  string
	EmbeddingDim    int
}

type IngestConfig struct {
	ChunkSize       int
	ChunkOverlap    int
	InsertBatchSize int
}

type RetrievalConfig struct {
	MatchThreshold float64
	MatchCount     int
}

type RateLimitConfig struct {
	Requests int
	Window   time.Duration
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			UploadDir:          getEnv("UPLOAD_DIR", "uploads"),
			TikaURL:            getEnv("TIKA_URL", "http://localhost:9998"),
			MaxUploadBytes:     getEnvAsInt("MAX_UPLOAD_BYTES", 10*1024*1024),
			RequestTimeout:     time.Duration(getEnvAsInt("REQUEST_TIMEOUT_SECONDS", 60)) * time.Second,
			CacheTTL:           time.Duration(getEnvAsInt("CACHE_TTL_SECONDS", 300)) * time.Second,
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Keys: APIKeys{
			OpenRouterPrimary:  getEnv("OPENROUTER_API_KEY", ""),
			OpenRouterFallback: getEnv("OPENROUTER_API_KEY_FALLBACK", ""),
			HuggingFace:        getEnv("HUGGINGFACE_API_KEY", ""),
			JwtSecret:          getEnv("JWT_SECRET", ""),
			EmbedDocumentTopic: getEnv("EMBED_DOCUMENT_TOPIC_NAME", "EMBED_DOCUMENT_CHUNKS"),
		},
		Ai: AIConfig{
			CompletionModel: getEnv("COMPLETION_MODEL", "nvidia/nemotron-nano-9b-v2:free"),
			ChatModel:       getEnv("CHAT_MODEL", "nvidia/nemotron-nano-9b-v2:free"),
			EmbeddingModel:  getEnv("EMBEDDING_MODEL", "sentence-transformers/all-MiniLM-L6-v2"),
			EmbeddingDim:    getEnvAsInt("EMBEDDING_DIM", 384),
		},
		Ingest: IngestConfig{
			ChunkSize:       getEnvAsInt("CHUNK_SIZE", 800),
			ChunkOverlap:    getEnvAsInt("CHUNK_OVERLAP", 100),
			InsertBatchSize: getEnvAsInt("INSERT_BATCH_SIZE", 50),
		},
		Retrieval: RetrievalConfig{
			MatchThreshold: getEnvAsFloat("MATCH_THRESHOLD", 0.3),
			MatchCount:     getEnvAsInt("MATCH_COUNT", 10),
		},
		RateLimit: RateLimitConfig{
			Requests: getEnvAsInt("RATE_LIMIT_REQUESTS", 100),
			Window:   time.Duration(getEnvAsInt("RATE_LIMIT_WINDOW_SECONDS", 60)) * time.Second,
		},
	}
}

// SupportedFileTypes lists the upload extensions the extractor understands.
func SupportedFileTypes() []string {
	return []string{".pdf", ".docx", ".txt"}
}

func IsSupportedFileType(ext string) bool {
	ext = strings.ToLower(ext)
	for _, t := range SupportedFileTypes() {
		if t == ext {
			return true
		}
	}
	return false
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}
