package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/dharmasatrya/tripplanner/internal/ratelimit"
)

type Config struct {
	Server    ServerConfig
	Cache     CacheConfig
	HTTP      HTTPConfig
	Services  ServicesConfig
	Storage   StorageConfig
	Planner   PlannerConfig
	RateLimit map[string]ratelimit.Limit
}

type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

type CacheConfig struct {
	Enabled       bool
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	TTL           time.Duration
}

type HTTPConfig struct {
	Timeout   time.Duration
	UserAgent string
}

type ServicesConfig struct {
	OpenAIKey       string
	OpenAIModel     string
	OpenAIURL       string
	OpenWeatherKey  string
	OpenWeatherURL  string
	ExchangeRateKey string
	ExchangeRateURL string
	SearchURL       string
	NominatimURL    string
	OverpassURL     string
}

type StorageConfig struct {
	PlansDir       string
	FeedbackDir    string
	CostTablesFile string
}

type PlannerConfig struct {
	GatherTimeout time.Duration
}

// requiredKeys lists the credentials the service cannot start without, in
// reporting order.
var requiredKeys = []struct {
	env     string
	purpose string
}{
	{"OPENAI_API_KEY", "OpenAI API key is required for trip planning"},
	{"OPENWEATHER_API_KEY", "OpenWeather API key is required for weather information"},
	{"EXCHANGERATES_API_KEY", "ExchangeRates API key is required for currency conversion"},
}

// MissingKeysError names every required credential that is unset.
type MissingKeysError struct {
	Missing []string
}

func (e *MissingKeysError) Error() string {
	return "missing required API keys: " + strings.Join(e.Missing, "; ")
}

// Load reads an optional .env file, then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			ReadTimeout:     getEnvDuration("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout:    getEnvDuration("SERVER_WRITE_TIMEOUT", 90*time.Second),
			IdleTimeout:     getEnvDuration("SERVER_IDLE_TIMEOUT", 120*time.Second),
			ShutdownTimeout: getEnvDuration("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Cache: CacheConfig{
			Enabled:       getEnvBool("CACHE_ENABLED", false),
			RedisHost:     getEnv("REDIS_HOST", "localhost"),
			RedisPort:     getEnv("REDIS_PORT", "6379"),
			RedisPassword: getEnv("REDIS_PASSWORD", ""),
			RedisDB:       getEnvInt("REDIS_DB", 0),
			TTL:           getEnvDuration("REDIS_TTL", 30*time.Minute),
		},
		HTTP: HTTPConfig{
			Timeout:   getEnvDuration("HTTP_CLIENT_TIMEOUT", 15*time.Second),
			UserAgent: getEnv("HTTP_USER_AGENT", ""),
		},
		Services: ServicesConfig{
			OpenAIKey:       os.Getenv("OPENAI_API_KEY"),
			OpenAIModel:     getEnv("OPENAI_MODEL", "gpt-3.5-turbo"),
			OpenAIURL:       getEnv("OPENAI_URL", "https://api.openai.com/v1/chat/completions"),
			OpenWeatherKey:  os.Getenv("OPENWEATHER_API_KEY"),
			OpenWeatherURL:  getEnv("OPENWEATHER_URL", "https://api.openweathermap.org/data/2.5/forecast"),
			ExchangeRateKey: os.Getenv("EXCHANGERATES_API_KEY"),
			ExchangeRateURL: getEnv("EXCHANGERATES_URL", "https://api.exchangeratesapi.io/v1/latest"),
			SearchURL:       getEnv("SEARCH_URL", "https://api.duckduckgo.com/"),
			NominatimURL:    getEnv("NOMINATIM_URL", "https://nominatim.openstreetmap.org/search"),
			OverpassURL:     getEnv("OVERPASS_URL", "https://overpass-api.de/api/interpreter"),
		},
		Storage: StorageConfig{
			PlansDir:       getEnv("PLANS_DIR", "plans"),
			FeedbackDir:    getEnv("FEEDBACK_DIR", "feedback"),
			CostTablesFile: getEnv("COST_TABLES_FILE", ""),
		},
		Planner: PlannerConfig{
			GatherTimeout: getEnvDuration("PLANNER_GATHER_TIMEOUT", 20*time.Second),
		},
		RateLimit: map[string]ratelimit.Limit{
			"openai":        getEnvLimit("OPENAI", ratelimit.Limit{RequestsPerSecond: 3, BurstSize: 3}),
			"openweather":   getEnvLimit("OPENWEATHER", ratelimit.Limit{RequestsPerSecond: 1, BurstSize: 5}),
			"exchangerates": getEnvLimit("EXCHANGERATES", ratelimit.Limit{RequestsPerSecond: 5, BurstSize: 10}),
			"duckduckgo":    getEnvLimit("DUCKDUCKGO", ratelimit.Limit{RequestsPerSecond: 1, BurstSize: 2}),
			// Nominatim usage policy: at most one request per second.
			"nominatim": getEnvLimit("NOMINATIM", ratelimit.Limit{RequestsPerSecond: 1, BurstSize: 1}),
			"overpass":  getEnvLimit("OVERPASS", ratelimit.Limit{RequestsPerSecond: 1, BurstSize: 2}),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate fails when any required API key is missing.
func (c *Config) Validate() error {
	present := map[string]bool{
		"OPENAI_API_KEY":        c.Services.OpenAIKey != "",
		"OPENWEATHER_API_KEY":   c.Services.OpenWeatherKey != "",
		"EXCHANGERATES_API_KEY": c.Services.ExchangeRateKey != "",
	}

	var missing []string
	for _, k := range requiredKeys {
		if !present[k.env] {
			missing = append(missing, fmt.Sprintf("%s (%s)", k.env, k.purpose))
		}
	}
	if len(missing) > 0 {
		return &MissingKeysError{Missing: missing}
	}

	if c.Server.Port == "" {
		return errors.New("PORT must not be empty")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return duration
}

// getEnvLimit reads <PREFIX>_RPS and <PREFIX>_BURST.
func getEnvLimit(prefix string, def ratelimit.Limit) ratelimit.Limit {
	return ratelimit.Limit{
		RequestsPerSecond: getEnvFloat(prefix+"_RPS", def.RequestsPerSecond),
		BurstSize:         getEnvInt(prefix+"_BURST", def.BurstSize),
	}
}
