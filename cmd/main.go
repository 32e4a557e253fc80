package main

import (
	"crypto/tls"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"gameclub/cache"
	"gameclub/config"
	"gameclub/db"
	"gameclub/events"
	"gameclub/handlers"
	"gameclub/middleware"
	"gameclub/monitoring"
	"gameclub/utils"
)

func main() {
	if err := config.LoadDotEnv(".env"); err != nil {
		utils.Log.Warnf("could not read .env: %v", err)
	}

	utils.InitLogger()
	cfg := config.Load()

	db.InitDB(cfg)

	if cfg.RedisURL != "" {
		if err := cache.InitRedis(cfg.RedisURL, cfg.RedisPassword, cfg.CacheTTL); err != nil {
			utils.LogWarn("Redis unavailable, reference lists will not be cached", map[string]interface{}{"error": err.Error()})
		} else {
			defer func() { _ = cache.CloseRedis() }()
			// Lists cached by an earlier run may predate migrations or seeding.
			if err := cache.InvalidateAllRefs(); err != nil {
				utils.LogWarn("could not clear cached reference lists", map[string]interface{}{"error": err.Error()})
			}
		}
	}

	monitoring.InitMetrics()

	// Set to release mode in production
	if cfg.GinMode == gin.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.ErrorLogger())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.RemovePoweredBy())
	r.Use(monitoring.PrometheusMiddleware())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", middleware.CSRFHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.Use(middleware.CSRFProtection())
	r.Use(middleware.WriteRateLimit(cfg.RateLimitWrites, cfg.RateLimitWindow))

	publisher := events.New(cfg.AMQPURL, cfg.AMQPQueue)
	handlers.New(db.DB, publisher).RegisterRoutes(r)

	addr := ":" + cfg.Port

	if cfg.UseHTTPS && cfg.TLSCertFile != "" && cfg.TLSKeyFile != "" {
		utils.LogInfo("Starting server with HTTPS", map[string]interface{}{
			"port": cfg.Port,
			"cert": cfg.TLSCertFile,
		})

		// TLS Configuration with secure defaults
		tlsConfig := &tls.Config{
			MinVersion:       tls.VersionTLS12,
			CurvePreferences: []tls.CurveID{tls.CurveP521, tls.CurveP384, tls.CurveP256},
			CipherSuites: []uint16{
				tls.TLS_ECDHE_RSA_WITH_AES_256_GCM_SHA384,
				tls.TLS_ECDHE_RSA_WITH_AES_128_GCM_SHA256,
				tls.TLS_ECDHE_ECDSA_WITH_AES_256_GCM_SHA384,
				tls.TLS_ECDHE_ECDSA_WITH_AES_128_GCM_SHA256,
			},
		}

		server := &http.Server{
			Addr:              addr,
			Handler:           r,
			TLSConfig:         tlsConfig,
			ReadHeaderTimeout: 10 * time.Second,
		}

		if err := server.ListenAndServeTLS(cfg.TLSCertFile, cfg.TLSKeyFile); err != nil {
			utils.Log.Fatalf("Failed to start HTTPS server: %v", err)
		}
		return
	}

	utils.LogInfo("Starting server with HTTP", map[string]interface{}{"port": cfg.Port})
	if !cfg.UseHTTPS {
		utils.LogWarn("Running without HTTPS. Set USE_HTTPS=true for production", nil)
	}

	if err := r.Run(addr); err != nil {
		utils.Log.Fatalf("Failed to start server: %v", err)
	}
}
