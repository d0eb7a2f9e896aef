package main

import (
	"log"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"doudizhu/internal/engine"
	"doudizhu/internal/server"
)

func main() {
	cfg := loadConfig()

	logger, err := buildLogger(cfg.GetString("log_level"))
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	rules := engine.ClassicPreset()
	rules.GoodHandProbability = cfg.GetFloat64("good_hand_probability")
	session := server.NewSession(logger, rules)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type"},
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	router.GET("/ws", server.WSHandler(logger, session))

	if dist := cfg.GetString("web_dist"); dist != "" {
		router.Static("/app", dist)
		router.NoRoute(func(c *gin.Context) {
			// SPA fallback for client side routes.
			if c.Request.Method == "GET" && !strings.HasPrefix(c.Request.URL.Path, "/ws") {
				c.File(dist + "/index.html")
				return
			}
			c.JSON(404, gin.H{"error": "not found"})
		})
	}

	addr := cfg.GetString("addr")
	logger.Info("listening", zap.String("addr", addr))
	if err := router.Run(addr); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func loadConfig() *viper.Viper {
	v := viper.New()
	v.SetDefault("addr", ":8080")
	v.SetDefault("good_hand_probability", 0.5)
	v.SetDefault("log_level", "info")
	v.SetDefault("web_dist", "")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.SetEnvPrefix("DOUDIZHU")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Fatalf("config: %v", err)
		}
	}
	return v
}

func buildLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}
	return cfg.Build()
}
