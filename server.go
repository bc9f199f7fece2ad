package main

import (
	"flag"
	"fmt"
	"log"

	"bookswap/api/middleware"
	"bookswap/api/routes"
	"bookswap/config"
	"bookswap/db"
	"bookswap/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	_ = godotenv.Load()

	var configPath string
	flag.StringVar(&configPath, "config", "config.yaml", "Path to the configuration file")
	flag.Parse()

	err := config.LoadConfig(configPath)
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}
	log.Println("Starting server...")

	if err = db.ConnectDB(); err != nil {
		panic("Failed to connect to the database: " + err.Error())
	}

	// Redis и RabbitMQ опциональны: без них работает кэш-фолбэк на БД
	// и no-op публикация событий
	if err = services.InitRedis(); err != nil {
		log.Println("Redis is not available:", err)
	}
	if err = services.InitRabbitMQ(); err != nil {
		log.Println("RabbitMQ is not available:", err)
	}
	defer services.CloseRedis()
	defer services.CloseRabbitMQ()

	router := gin.Default()

	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.PrometheusMiddleware("bookswap"))

	routes.PublicApi(router)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	addr := fmt.Sprintf("%s:%d", config.AppConfig.Backend.Host, config.AppConfig.Backend.Port)
	if config.AppConfig.Backend.Port == 0 {
		addr = ":8080"
	}
	if err := router.Run(addr); err != nil {
		panic(err)
	}
}
