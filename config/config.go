package config

import (
	"os"
	"strconv"
	"time"
)

// Config は環境変数から一度だけ組み立てる不変の設定。
// 各コンポーネントへは値として渡し、暗黙のグローバル参照はしない。
type Config struct {
	// 生成バックエンド。"gemini" / "claude" / "openai" / "ollama" / "none"
	Provider   string
	Timeout    time.Duration
	MaxRetries int

	GeminiAPIKey string
	GeminiModel  string

	ClaudeAPIKey string
	ClaudeModel  string

	OpenAIAPIKey string
	OpenAIModel  string

	OllamaBaseURL string
	OllamaModel   string

	ServerAddr string
}

// FromEnv は環境変数を読んで Config を返す。既定値は元運用に合わせる。
func FromEnv() Config {
	return Config{
		Provider:   getenv("LLM_PROVIDER", "gemini"),
		Timeout:    time.Duration(getint("LLM_TIMEOUT", 30)) * time.Second,
		MaxRetries: getint("LLM_MAX_RETRIES", 3),

		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		GeminiModel:  getenv("GEMINI_MODEL", "gemini-2.5-flash"),

		ClaudeAPIKey: os.Getenv("CLAUDE_API_KEY"),
		ClaudeModel:  getenv("CLAUDE_MODEL", "claude-sonnet-4-20250514"),

		OpenAIAPIKey: os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:  getenv("OPENAI_MODEL", "gpt-4o-mini"),

		OllamaBaseURL: getenv("OLLAMA_BASE_URL", "http://localhost:11434"),
		OllamaModel:   getenv("OLLAMA_MODEL", "llama3.2"),

		ServerAddr: getenv("SERVER_ADDR", ":8080"),
	}
}

func getenv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getint(key string, fallback int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
