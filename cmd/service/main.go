package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/dropDatabas3/portero/internal/cache"
	cachememory "github.com/dropDatabas3/portero/internal/cache/memory"
	cacheredis "github.com/dropDatabas3/portero/internal/cache/redis"
	"github.com/dropDatabas3/portero/internal/config"
	accountctrl "github.com/dropDatabas3/portero/internal/http/controllers/account"
	healthctrl "github.com/dropDatabas3/portero/internal/http/controllers/health"
	mw "github.com/dropDatabas3/portero/internal/http/middlewares"
	"github.com/dropDatabas3/portero/internal/http/router"
	accountsvc "github.com/dropDatabas3/portero/internal/http/services/account"
	"github.com/dropDatabas3/portero/internal/observability/logger"
	"github.com/dropDatabas3/portero/internal/rate"
	"github.com/dropDatabas3/portero/internal/store"
	"github.com/dropDatabas3/portero/internal/store/pg"
	"github.com/dropDatabas3/portero/internal/verifier"

	httpserver "github.com/dropDatabas3/portero/internal/http"
)

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func getenvBool(key string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func parseDuration(s string, def time.Duration) time.Duration {
	if d, err := time.ParseDuration(s); err == nil {
		return d
	}
	return def
}

// loadConfig: YAML si hay archivo, env vars como override.
func loadConfig(path string) *config.Config {
	var c *config.Config
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			logger.L().Fatal("config load failed", logger.Err(err), logger.Any("path", path))
		}
		c = loaded
	} else {
		c = config.Default()
	}

	// --- overrides por env ---
	c.App.Env = getenv("APP_ENV", c.App.Env)
	c.Server.Addr = getenv("SERVER_ADDR", c.Server.Addr)
	c.Log.Level = getenv("LOG_LEVEL", c.Log.Level)

	c.Storage.Driver = getenv("STORAGE_DRIVER", c.Storage.Driver)
	c.Storage.DSN = getenv("STORAGE_DSN", c.Storage.DSN)

	c.Cache.Kind = getenv("CACHE_KIND", c.Cache.Kind)
	c.Cache.Redis.Addr = getenv("CACHE_REDIS_ADDR", c.Cache.Redis.Addr)
	c.Cache.Redis.DB = getenvInt("CACHE_REDIS_DB", c.Cache.Redis.DB)

	c.Verifier.Mode = getenv("VERIFIER_MODE", c.Verifier.Mode)
	c.Verifier.JWT.Secret = getenv("VERIFIER_JWT_SECRET", c.Verifier.JWT.Secret)
	c.Verifier.JWT.Issuer = getenv("VERIFIER_JWT_ISSUER", c.Verifier.JWT.Issuer)
	c.Verifier.JWT.Audience = getenv("VERIFIER_JWT_AUDIENCE", c.Verifier.JWT.Audience)

	c.Rate.Enabled = getenvBool("RATE_ENABLED", c.Rate.Enabled)

	return c
}

func main() {
	_ = godotenv.Load()

	var configPath string
	flag.StringVar(&configPath, "config", getenv("PORTERO_CONFIG", ""), "ruta al YAML de configuración")
	flag.Parse()

	cfg := loadConfig(configPath)

	logger.Init(logger.Config{
		Env:         cfg.App.Env,
		Level:       cfg.Log.Level,
		ServiceName: "portero",
	})
	defer func() { _ = logger.Sync() }()
	log := logger.Named("main")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Store ---
	repo, err := store.Open(ctx, store.Config{
		Driver: cfg.Storage.Driver,
		DSN:    cfg.Storage.DSN,
		Postgres: pg.Tuning{
			MaxOpenConns:    cfg.Storage.Postgres.MaxOpenConns,
			MaxIdleConns:    cfg.Storage.Postgres.MaxIdleConns,
			ConnMaxLifetime: cfg.Storage.Postgres.ConnMaxLifetime,
		},
	})
	if err != nil {
		log.Fatal("store open failed", logger.Err(err), logger.Driver(cfg.Storage.Driver))
	}
	defer repo.Close()
	log.Info("store ready", logger.Driver(cfg.Storage.Driver))

	// --- Cache de whitelist (opcional) + rate limiter ---
	var loginLimiter rate.Limiter
	if cfg.Cache.Kind != "off" {
		var c cache.Cache
		switch cfg.Cache.Kind {
		case "redis":
			rc := cacheredis.New(cfg.Cache.Redis.Addr, cfg.Cache.Redis.DB, cfg.Cache.Redis.Prefix)
			c = rc
			if cfg.Rate.Enabled {
				loginLimiter = rate.NewRedisLimiter(
					rc.Client(), "rl:",
					cfg.Rate.Login.Limit,
					parseDuration(cfg.Rate.Login.Window, time.Minute),
				)
			}
		default:
			c = cachememory.New(parseDuration(cfg.Cache.Memory.DefaultTTL, 2*time.Minute))
		}
		repo = store.NewCached(repo, c, parseDuration(cfg.Cache.WhitelistTTL, 30*time.Second))
		log.Info("whitelist cache enabled", logger.Any("kind", cfg.Cache.Kind))
	}
	if cfg.Rate.Enabled && loginLimiter == nil {
		log.Warn("rate limiting enabled but no redis cache configured; skipping")
	}

	// --- Verifier ---
	vcfg := verifier.Config{Mode: cfg.Verifier.Mode}
	vcfg.JWT.Secret = cfg.Verifier.JWT.Secret
	vcfg.JWT.Issuer = cfg.Verifier.JWT.Issuer
	vcfg.JWT.Audience = cfg.Verifier.JWT.Audience
	vcfg.Static.AccountName = cfg.Verifier.Static.AccountName
	vcfg.Static.Provider = cfg.Verifier.Static.Provider
	vcfg.Static.ProviderID = cfg.Verifier.Static.ProviderID
	tv, err := verifier.New(vcfg)
	if err != nil {
		log.Fatal("verifier init failed", logger.Err(err))
	}
	log.Info("verifier ready", logger.Any("mode", cfg.Verifier.Mode))

	// --- Services y controllers ---
	svcs := accountsvc.NewServices(accountsvc.Deps{Store: repo, Verifier: tv})
	controllers := accountctrl.NewControllers(svcs)
	health := healthctrl.NewController(repo)

	// --- Métricas ---
	metricsHandler, err := httpserver.RegisterMetrics(nil)
	if err != nil {
		log.Fatal("metrics registration failed", logger.Err(err))
	}

	handler := router.New(router.Deps{
		AccountControllers: controllers,
		HealthController:   health,
		MetricsHandler:     metricsHandler,
		InstrumentRoute:    func(path string) mw.Middleware { return httpserver.WithMetrics(path) },
		LoginLimiter:       loginLimiter,
	})

	log.Info("listening", logger.Any("addr", cfg.Server.Addr))
	if err := httpserver.StartWithShutdown(ctx, cfg.Server.Addr, handler); err != nil {
		log.Fatal("server stopped", logger.Err(err))
	}
	log.Info("shutdown complete")
}
