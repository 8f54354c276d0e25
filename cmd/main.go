package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"larder/internal/advisor"
	"larder/internal/api"
	"larder/internal/database"
	"larder/internal/monitoring"
)

var (
	port        = flag.Int("port", 8080, "API server port")
	metricsPort = flag.Int("metrics-port", 9090, "Metrics server port")
	configFile  = flag.String("config", "configs/config.yaml", "Path to configuration file")
)

func main() {
	flag.Parse()

	// Optional .env for local development
	_ = godotenv.Load()

	// Load configuration
	config, err := loadConfig(*configFile)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize database
	if err := database.InitDB(config.DatabasePath); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.CloseDB()

	// Initialize the generative model. Missing credential is expected and
	// degrades the advisor to canned responses.
	generator, err := advisor.NewLLMGenerator(config.OpenAIKey, config.OpenAIModel)
	if err != nil {
		log.Fatalf("Failed to initialize LLM: %v", err)
	}
	if !generator.Configured() {
		log.Println("No OpenAI credential configured; serving canned advisory responses")
	}

	store := database.NewPantryStore(database.GetDB())
	monitor := monitoring.NewMonitor()

	adv := advisor.New(store, generator, monitor)
	if config.ModelTimeoutSeconds > 0 {
		adv.Timeout = time.Duration(config.ModelTimeoutSeconds) * time.Second
	}

	server := api.NewServer(adv, store, monitor, config.JWTSecret)

	// Start metrics server
	if config.MetricsConfig.Enabled {
		go startMetricsServer(*metricsPort, config.MetricsConfig.Path, monitor)
	}

	// Start API server
	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", *port),
		Handler: server.Router,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down servers...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("API server shutdown error: %v", err)
		}
	}()

	log.Printf("Starting API server on port %d", *port)
	if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("API server error: %v", err)
	}
}

// Config represents the application configuration
type Config struct {
	OpenAIKey           string `yaml:"openai_key"`
	OpenAIModel         string `yaml:"openai_model"`
	DatabasePath        string `yaml:"database_path"`
	JWTSecret           string `yaml:"jwt_secret"`
	ModelTimeoutSeconds int    `yaml:"model_timeout_seconds"`
	MetricsConfig       struct {
		Enabled bool   `yaml:"enabled"`
		Port    int    `yaml:"port"`
		Path    string `yaml:"path"`
	} `yaml:"metrics"`
}

// loadConfig reads the yaml configuration, falling back to defaults when
// the file is absent, then applies environment overrides for secrets
func loadConfig(path string) (*Config, error) {
	config := &Config{
		OpenAIModel:         "gpt-4o-mini",
		DatabasePath:        "larder.db",
		JWTSecret:           "larder-dev-secret",
		ModelTimeoutSeconds: 45,
	}
	config.MetricsConfig.Enabled = true
	config.MetricsConfig.Path = "/metrics"

	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		config.OpenAIKey = key
	}
	if secret := os.Getenv("LARDER_JWT_SECRET"); secret != "" {
		config.JWTSecret = secret
	}
	if dbPath := os.Getenv("LARDER_DB_PATH"); dbPath != "" {
		config.DatabasePath = dbPath
	}

	return config, nil
}

// startMetricsServer serves the prometheus scrape endpoint on its own port
func startMetricsServer(port int, path string, monitor *monitoring.Monitor) {
	if path == "" {
		path = "/metrics"
	}

	metricsRouter := gin.Default()
	metricsRouter.GET(path, gin.WrapH(monitor.Handler()))

	metricsServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: metricsRouter,
	}

	log.Printf("Starting metrics server on port %d", port)
	if err := metricsServer.ListenAndServe(); err != http.ErrServerClosed {
		log.Printf("Metrics server error: %v", err)
	}
}
