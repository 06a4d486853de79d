package main

import (
	"context"
	"log"
	"net/http"

	"newsdesk/api"
	"newsdesk/cascade"
	"newsdesk/config"
	"newsdesk/dedup"
	"newsdesk/feed"
	"newsdesk/normalize"
	"newsdesk/persist"
	"newsdesk/scheduler"

	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables from .env if present (non-fatal if missing)
	_ = godotenv.Load()

	cfg := config.Load()
	ctx := context.Background()

	pool := buildPool(cfg)
	go pool.Run(ctx)

	sched := scheduler.New(scheduler.Options{
		Pool:       pool,
		Tracker:    buildTracker(cfg),
		Cascade:    buildCascade(cfg),
		Normalizer: normalize.New(cfg.Markets, cfg.DefaultMarket()),
		Gateway:    persist.NewHTTPGateway(cfg.CMSURL),
		Sinks:      buildSinks(ctx, cfg),
	})

	r := api.NewRouter(sched, pool)
	addr := ":" + cfg.Port

	log.Printf("Starting API server on %s", addr)
	log.Println("API endpoints available:")
	log.Println("  GET  /api/health")
	log.Println("  POST /api/generation/start")
	log.Println("  POST /api/generation/stop")
	log.Println("  GET  /api/generation/status")
	log.Println("  GET  /api/generation/logs")
	log.Println("  PUT  /api/generation/window")
	log.Println("  GET  /api/pool")
	log.Println("  POST /api/pool/refresh")

	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func buildPool(cfg config.Config) *feed.Pool {
	var sources []feed.Source
	if cfg.FeedURL != "" {
		client := feed.NewClient(cfg.FeedURL)
		for _, market := range cfg.Markets {
			sources = append(sources, client.MarketSource(market))
		}
	}
	for market, url := range cfg.RSSFeeds {
		sources = append(sources, feed.NewRSSSource(market, url))
	}
	if len(sources) == 0 {
		log.Println("Warning: no feed sources configured (set FEED_URL or RSS_FEEDS)")
	}

	return feed.NewPool(feed.PoolOptions{
		Sources:        sources,
		Window:         cfg.Window,
		ExtractContent: cfg.ExtractContent,
	})
}

// buildTracker prefers the durable Redis store and falls back to the
// session-scoped set when Redis is unconfigured or unreachable.
func buildTracker(cfg config.Config) dedup.Tracker {
	if cfg.RedisAddr == "" {
		return dedup.NewMemoryTracker()
	}

	tracker, err := dedup.NewRedisTracker(dedup.RedisConfig{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPass,
		Key:      cfg.RedisKey,
	})
	if err != nil {
		log.Printf("Warning: %v (using in-memory dedup)", err)
		return dedup.NewMemoryTracker()
	}
	log.Printf("Dedup store: redis at %s (key %s)", cfg.RedisAddr, cfg.RedisKey)
	return tracker
}

func buildCascade(cfg config.Config) *cascade.Cascade {
	rewriter := cascade.SelectRewriter(cfg.CohereAPIKey, cfg.CohereModel, cfg.AIEndpoint)
	if rewriter == nil {
		log.Println("Warning: no rewrite provider configured (set COHERE_API_KEY or AI_ENDPOINT)")
	}

	var translator cascade.Translator
	if cfg.TranslateEndpoint != "" {
		translator = cascade.NewHTTPTranslator(cfg.TranslateEndpoint)
	}

	return cascade.New(rewriter, translator, cfg.TargetLang)
}

func buildSinks(ctx context.Context, cfg config.Config) []persist.Sink {
	var sinks []persist.Sink

	archive, err := persist.NewArchive(ctx, cfg)
	if err != nil {
		log.Printf("Warning: %v (S3 archive disabled)", err)
	} else if archive != nil {
		log.Printf("S3 archive: bucket %q prefix %q", cfg.S3Bucket, cfg.S3Prefix)
		sinks = append(sinks, archive)
	}

	publisher, err := persist.NewPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
	if err != nil {
		log.Printf("Warning: %v (Kafka events disabled)", err)
	} else if publisher != nil {
		log.Printf("Kafka events: topic %q via %v", cfg.KafkaTopic, cfg.KafkaBrokers)
		sinks = append(sinks, publisher)
	}

	return sinks
}
