package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/StudioBelezaApp/salon-scheduler/internal/config"
	dbpkg "github.com/StudioBelezaApp/salon-scheduler/internal/db"
	"github.com/StudioBelezaApp/salon-scheduler/internal/locking"
	"github.com/StudioBelezaApp/salon-scheduler/internal/logging"
	"github.com/StudioBelezaApp/salon-scheduler/internal/routes"
)

func main() {

	cfg := config.Load()

	logging.Init(cfg.IsProduction())
	defer logging.Sync()

	db := dbpkg.NewDB(cfg)
	rdb := locking.NewClient(cfg.RedisAddr, cfg.RedisPassword)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, rdb, cfg)

	logging.L().Info("server running", zap.String("addr", cfg.Addr()))
	if err := r.Run(cfg.Addr()); err != nil {
		logging.L().Fatal("failed to start server", zap.Error(err))
	}
}
