// internal/config/config.go
package config

import (
    "os"
    "strconv"
)

// Defaults for the generation providers.
const (
    DefaultTextModel        = "gpt-4o"
    DefaultImageModel       = "gemini-3-pro-image-preview"
    DefaultFallbackImageURL = "https://image.pollinations.ai"
    DefaultMediaBucket      = "media"
    DefaultModelRateLimit   = 30 // provider calls per minute
)

// Config holds everything read from the environment except the DB settings,
// which internal/db reads itself.
type Config struct {
    Port    string
    AMQPURL string

    OpenAIAPIKey  string
    OpenAIBaseURL string
    TextModel     string

    GoogleAPIKey     string
    ImageModel       string
    FallbackImageURL string

    SupabaseURL    string
    SupabaseKey    string
    SupabaseBucket string

    FacebookPageID      string
    FacebookAccessToken string

    SMTPHost     string
    SMTPPort     string
    SMTPUsername string
    SMTPPassword string
    SMTPFrom     string

    ModelRateLimit int // provider calls per minute across text and image
}

func Load() *Config {
    return &Config{
        Port:    getEnv("PORT", "8080"),
        AMQPURL: getEnv("AMQP_URL", ""),

        OpenAIAPIKey:  getEnv("OPENAI_API_KEY", ""),
        OpenAIBaseURL: getEnv("OPENAI_BASE_URL", ""),
        TextModel:     getEnv("OPENAI_MODEL", DefaultTextModel),

        GoogleAPIKey:     getEnv("GOOGLE_API_KEY", ""),
        ImageModel:       getEnv("GEMINI_IMAGE_MODEL", DefaultImageModel),
        FallbackImageURL: getEnv("FALLBACK_IMAGE_URL", DefaultFallbackImageURL),

        SupabaseURL:    getEnv("SUPABASE_URL", ""),
        SupabaseKey:    getEnv("SUPABASE_SERVICE_ROLE_KEY", ""),
        SupabaseBucket: getEnv("SUPABASE_BUCKET", DefaultMediaBucket),

        FacebookPageID:      getEnv("FACEBOOK_PAGE_ID", ""),
        FacebookAccessToken: getEnv("FACEBOOK_ACCESS_TOKEN", ""),

        SMTPHost:     getEnv("SMTP_HOST", ""),
        SMTPPort:     getEnv("SMTP_PORT", "587"),
        SMTPUsername: getEnv("SMTP_USERNAME", ""),
        SMTPPassword: getEnv("SMTP_PASSWORD", ""),
        SMTPFrom:     getEnv("SMTP_FROM", ""),

        ModelRateLimit: getEnvInt("MODEL_RATE_LIMIT", DefaultModelRateLimit),
    }
}

func getEnv(key, fallback string) string {
    if v := os.Getenv(key); v != "" {
        return v
    }
    return fallback
}

func getEnvInt(key string, fallback int) int {
    if v := os.Getenv(key); v != "" {
        if n, err := strconv.Atoi(v); err == nil && n > 0 {
            return n
        }
    }
    return fallback
}
