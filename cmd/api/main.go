package main

import (
	"log"

	"github.com/hiveden/hwsnap/internal/api"
	"github.com/hiveden/hwsnap/internal/config"
	"github.com/hiveden/hwsnap/internal/hw"
	"github.com/hiveden/hwsnap/internal/logging"
	"github.com/hiveden/hwsnap/internal/metrics"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func main() {
	v := viper.New()
	config.SetDefaults(v)

	configFile := pflag.String("config", "", "config file (YAML)")
	pflag.String("listen", config.DefaultListen, "Address to listen on")
	pflag.String("log-level", config.DefaultLogLevel, "Log level: debug, info, warn, error")
	pflag.String("path", "", "Report the volume containing this path (default is the working directory)")
	pflag.Parse()

	v.BindPFlag(config.KeyListen, pflag.Lookup("listen"))
	v.BindPFlag(config.KeyLogLevel, pflag.Lookup("log-level"))
	v.BindPFlag(config.KeyPath, pflag.Lookup("path"))

	cfg, err := config.Load(v, *configFile)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer logger.Sync()

	collector := hw.NewCollector(hw.WithLogger(logger), hw.WithStoragePath(cfg.Path))

	registry := prometheus.NewRegistry()
	registry.MustRegister(metrics.NewSnapshotCollector(collector, logger))

	gin.SetMode(gin.ReleaseMode)
	r := api.NewRouter(api.NewAPIHandler(collector, logger), registry)

	logger.Info("starting api server", zap.String("listen", cfg.Listen))
	if err := r.Run(cfg.Listen); err != nil {
		logger.Fatal("failed to run server", zap.Error(err))
	}
}
