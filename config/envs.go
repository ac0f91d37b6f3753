package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the application's configuration values. It is built once at
// startup by Load and passed explicitly to the components that need it.
type Config struct {
	HostIP           string // Host IP for the server
	RESTPort         int    // Port for the A2A endpoint
	CardURL          string // URL advertised in the agent card; derived from host/port when empty
	GinMode          string // Mode for the Gin framework (e.g., release, debug, test)
	SolverStrategy   string // Grid solving strategy: "bfs" or "random"
	RandomWalkBudget int    // Step budget for the random-walk strategy
	TaskStoreBackend string // Task store backend: "memory" or "redis"
	RedisAddr        string // Address of the Redis server, for the redis backend
	TaskTTLSeconds   int    // TTL for tasks in the redis backend
	RecordResults    bool   // Whether to persist solve records to MongoDB
	DBHost           string // Hostname or IP address for the database
	DBPort           int    // Port number for the database
	DBUser           string // Username for the database
	DBPassword       string // Password for the database
	DBName           string // Name of the database
}

// Load builds the application configuration from environment variables.
// It loads a .env file when one is available. Database variables are only
// required when result recording is enabled.
func Load() Config {
	// Load .env file if available
	if err := godotenv.Load(); err != nil {
		log.Printf("[APP] [INFO] .env file not found or could not be loaded: %v", err)
	}

	cfg := Config{
		HostIP:           getEnvWithDefault("HOST_IP", "0.0.0.0"),
		RESTPort:         getEnvAsIntWithDefault("REST_PORT", 8000),
		CardURL:          getEnvWithDefault("CARD_URL", ""),
		GinMode:          getEnvWithDefault("GIN_MODE", "release"),
		SolverStrategy:   getEnvWithDefault("SOLVER_STRATEGY", "bfs"),
		RandomWalkBudget: getEnvAsIntWithDefault("RANDOM_WALK_BUDGET", 256),
		TaskStoreBackend: getEnvWithDefault("TASK_STORE", "memory"),
		RedisAddr:        getEnvWithDefault("REDIS_ADDR", "localhost:6379"),
		TaskTTLSeconds:   getEnvAsIntWithDefault("TASK_TTL_SECONDS", 3600),
		RecordResults:    getEnvAsBoolWithDefault("RECORD_RESULTS", false),
	}

	if cfg.RecordResults {
		cfg.DBHost = mustGetEnv("DB_HOST")
		cfg.DBPort = mustGetEnvAsInt("DB_PORT")
		cfg.DBUser = mustGetEnv("DB_USER")
		cfg.DBPassword = mustGetEnv("DB_PASS")
		cfg.DBName = mustGetEnv("DB_NAME")
	}

	return cfg
}

// mustGetEnv retrieves the value of an environment variable or logs a fatal error if not set.
func mustGetEnv(key string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		log.Fatalf("[APP] [FATAL] Environment variable %s is not set", key)
	}
	return value
}

// mustGetEnvAsInt retrieves the value of an environment variable as an integer or logs a fatal error if not set or cannot be parsed.
func mustGetEnvAsInt(key string) int {
	valueStr := mustGetEnv(key)
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Fatalf("[APP] [FATAL] Environment variable %s must be an integer: %v", key, err)
	}
	return value
}

// getEnvWithDefault retrieves the value of an environment variable or returns a default value if not set.
func getEnvWithDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsIntWithDefault retrieves the value of an environment variable as an integer or returns a default value if not set or not parsable.
func getEnvAsIntWithDefault(key string, defaultValue int) int {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("[APP] [WARN] Environment variable %s is not an integer, using default %d", key, defaultValue)
		return defaultValue
	}
	return value
}

// getEnvAsBoolWithDefault retrieves the value of an environment variable as a boolean or returns a default value if not set or not parsable.
func getEnvAsBoolWithDefault(key string, defaultValue bool) bool {
	valueStr, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("[APP] [WARN] Environment variable %s is not a boolean, using default %t", key, defaultValue)
		return defaultValue
	}
	return value
}
