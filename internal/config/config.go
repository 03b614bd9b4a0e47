package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config defines server configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	DB      DBConfig      `yaml:"db"`
	Log     LogConfig     `yaml:"log"`
	Auth    AuthConfig    `yaml:"auth"`
	Redis   RedisConfig   `yaml:"redis"`
	Storage StorageConfig `yaml:"storage"`
	LLM     LLMConfig     `yaml:"llm"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type DBConfig struct {
	Path string `yaml:"path"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

type AuthConfig struct {
	JWTSecret string `yaml:"jwt_secret"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type StorageConfig struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Bucket    string `yaml:"bucket"`
	PublicURL string `yaml:"public_url"`
	UseSSL    bool   `yaml:"use_ssl"`
}

type LLMConfig struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
	Model   string `yaml:"model"`
}

// Load reads configuration from an optional YAML file and environment variables.
func Load() (Config, error) {
	cfg := Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		DB: DBConfig{
			Path: "atelier.db",
		},
		Log: LogConfig{
			Level: "info",
		},
		Redis: RedisConfig{
			Addr: "localhost:6379",
		},
		LLM: LLMConfig{
			Model: "gemini-2.5-flash",
		},
	}

	if path := os.Getenv("ATELIER_CONFIG_PATH"); path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if host := os.Getenv("ATELIER_SERVER_HOST"); host != "" {
		cfg.Server.Host = host
	}
	if portStr := os.Getenv("ATELIER_SERVER_PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid ATELIER_SERVER_PORT: %w", err)
		}
		cfg.Server.Port = port
	}
	if dbPath := os.Getenv("ATELIER_DB_PATH"); dbPath != "" {
		cfg.DB.Path = dbPath
	}
	if level := os.Getenv("ATELIER_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if secret := os.Getenv("ATELIER_JWT_SECRET"); secret != "" {
		cfg.Auth.JWTSecret = secret
	}
	if addr := os.Getenv("ATELIER_REDIS_ADDR"); addr != "" {
		cfg.Redis.Addr = addr
	}
	if password := os.Getenv("ATELIER_REDIS_PASSWORD"); password != "" {
		cfg.Redis.Password = password
	}
	if dbStr := os.Getenv("ATELIER_REDIS_DB"); dbStr != "" {
		db, err := strconv.Atoi(dbStr)
		if err != nil {
			return Config{}, fmt.Errorf("invalid ATELIER_REDIS_DB: %w", err)
		}
		cfg.Redis.DB = db
	}
	if endpoint := os.Getenv("ATELIER_STORAGE_ENDPOINT"); endpoint != "" {
		cfg.Storage.Endpoint = endpoint
	}
	if key := os.Getenv("ATELIER_STORAGE_ACCESS_KEY"); key != "" {
		cfg.Storage.AccessKey = key
	}
	if secret := os.Getenv("ATELIER_STORAGE_SECRET_KEY"); secret != "" {
		cfg.Storage.SecretKey = secret
	}
	if bucket := os.Getenv("ATELIER_STORAGE_BUCKET"); bucket != "" {
		cfg.Storage.Bucket = bucket
	}
	if publicURL := os.Getenv("ATELIER_STORAGE_PUBLIC_URL"); publicURL != "" {
		cfg.Storage.PublicURL = publicURL
	}
	if ssl := os.Getenv("ATELIER_STORAGE_USE_SSL"); ssl != "" {
		useSSL, err := strconv.ParseBool(ssl)
		if err != nil {
			return Config{}, fmt.Errorf("invalid ATELIER_STORAGE_USE_SSL: %w", err)
		}
		cfg.Storage.UseSSL = useSSL
	}
	if apiKey := os.Getenv("ATELIER_LLM_API_KEY"); apiKey != "" {
		cfg.LLM.APIKey = apiKey
	}
	if baseURL := os.Getenv("ATELIER_LLM_BASE_URL"); baseURL != "" {
		cfg.LLM.BaseURL = baseURL
	}
	if model := os.Getenv("ATELIER_LLM_MODEL"); model != "" {
		cfg.LLM.Model = model
	}

	return cfg, nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}
