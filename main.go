package main

import (
	"log"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/Candratama/Floo/api"
	"github.com/Candratama/Floo/config"
	"github.com/Candratama/Floo/db"
	_ "github.com/Candratama/Floo/docs"
	"github.com/Candratama/Floo/ledger"
)

// @title FLOO API
// @version 1.0.0
// @description Financial Logger/Organizer Online API
// @BasePath /api/v1
// @SecurityDefinitions.apikey ApiKeyAuth
// @In header
// @Name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	storage, err := db.NewStorage(cfg.PostgresURL)
	if err != nil {
		log.Fatal(err)
	}
	defer storage.Close()

	maintainer := ledger.NewMaintainer(storage)
	handler := api.NewHandler(storage, maintainer, cfg.JWTSecret, cfg.TokenTTL())

	r := gin.Default()
	handler.RegisterRoutes(r)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
