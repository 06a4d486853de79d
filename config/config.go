package config

import (
	"os"
	"strings"

	"newsdesk/types"
)

// Config holds all runtime settings, resolved from the environment.
// Optional integrations (Redis, Kafka, S3, Cohere) stay disabled when their
// settings are absent.
type Config struct {
	Port string

	// Feed settings
	FeedURL  string            // JSON market-feed endpoint; queried as ?market=<code>
	RSSFeeds map[string]string // market code -> RSS/Atom URL, merged into the same pool
	Markets  []string
	Window   types.Window
	// ExtractContent enables readability full-text extraction for items
	// whose feed entry carries no body.
	ExtractContent bool

	// Transformation settings
	AIEndpoint        string
	CohereAPIKey      string
	CohereModel       string
	TranslateEndpoint string
	TargetLang        string

	// Persistence settings
	CMSURL string

	// Optional durable dedup store
	RedisAddr string
	RedisPass string
	RedisKey  string

	// Optional post-persist fan-out
	KafkaBrokers []string
	KafkaTopic   string
	S3Bucket     string
	S3Region     string
	S3Profile    string
	S3Prefix     string
	S3PathStyle  bool
}

// GetEnvOrDefault returns the environment value for key, or def when unset.
func GetEnvOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// Load resolves configuration from environment variables. It never fails;
// missing values fall back to defaults that keep optional integrations off.
func Load() Config {
	cfg := Config{
		Port:              GetEnvOrDefault("PORT", "8080"),
		FeedURL:           os.Getenv("FEED_URL"),
		RSSFeeds:          parsePairs(os.Getenv("RSS_FEEDS")),
		Markets:           splitList(GetEnvOrDefault("MARKETS", "SA,US")),
		ExtractContent:    strings.EqualFold(os.Getenv("EXTRACT_CONTENT"), "true"),
		AIEndpoint:        os.Getenv("AI_ENDPOINT"),
		CohereAPIKey:      os.Getenv("COHERE_API_KEY"),
		CohereModel:       os.Getenv("COHERE_MODEL"),
		TranslateEndpoint: os.Getenv("TRANSLATE_ENDPOINT"),
		TargetLang:        GetEnvOrDefault("TARGET_LANG", "ar"),
		CMSURL:            os.Getenv("CMS_URL"),
		RedisAddr:         os.Getenv("REDIS_ADDR"),
		RedisPass:         os.Getenv("REDIS_PASS"),
		RedisKey:          GetEnvOrDefault("REDIS_KEY", "newsdesk:attempted"),
		KafkaBrokers:      splitList(os.Getenv("KAFKA_BROKERS")),
		KafkaTopic:        GetEnvOrDefault("KAFKA_TOPIC", "article.generated"),
		S3Bucket:          strings.TrimSpace(os.Getenv("S3_BUCKET")),
		S3Region:          strings.TrimSpace(os.Getenv("S3_REGION")),
		S3Profile:         strings.TrimSpace(os.Getenv("S3_PROFILE")),
		S3Prefix:          strings.TrimSpace(os.Getenv("S3_PREFIX")),
		S3PathStyle:       strings.EqualFold(strings.TrimSpace(os.Getenv("S3_USE_PATH_STYLE")), "true"),
	}

	window, err := types.ParseWindow(GetEnvOrDefault("RECENCY_WINDOW", string(types.WindowWeek)))
	if err != nil {
		window = types.WindowWeek
	}
	cfg.Window = window

	if cfg.S3Prefix != "" {
		cfg.S3Prefix = strings.Trim(cfg.S3Prefix, "/") + "/"
	}

	return cfg
}

// DefaultMarket is the market assigned when a source market is not
// recognized among the configured ones.
func (c Config) DefaultMarket() string {
	if len(c.Markets) > 0 {
		return c.Markets[0]
	}
	return "SA"
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// parsePairs parses "SA=https://a/rss,US=https://b/rss" into a map.
func parsePairs(s string) map[string]string {
	out := map[string]string{}
	for _, part := range strings.Split(s, ",") {
		kv := strings.SplitN(strings.TrimSpace(part), "=", 2)
		if len(kv) == 2 && kv[0] != "" && kv[1] != "" {
			out[kv[0]] = kv[1]
		}
	}
	return out
}
