package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port       string        `env:"PORT,        default=8080"`
	Env        string        `env:"ENV,         default=development"`
	JWTSecret  string        `env:"JWT_SECRET"`
	LogLevel   string        `env:"LOG_LEVEL,   default=info"`
	SessionTTL time.Duration `env:"SESSION_TTL, default=24h"`

	Mongo   MongoConfig
	Redis   RedisConfig
	Model   ModelConfig
	Upload  UploadConfig
	Predict PredictConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=soyleaf"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// ModelConfig locates the trained artifact and the class registry sources.
// ClassNamesPath wins over DatasetDir when both exist, mirroring how the
// training pipeline publishes its label ordering.
type ModelConfig struct {
	Path         string        `env:"MODEL_PATH,          default=models/model.onnx"`
	MetadataPath string        `env:"MODEL_METADATA_PATH, default=models/model_metadata.json"`
	ClassNames   string        `env:"CLASS_NAMES_PATH,    default=class_names.json"`
	DatasetDir   string        `env:"DATASET_DIR,         default=dataset"`
	Timeout      time.Duration `env:"INFERENCE_TIMEOUT,   default=10s"`
}

type UploadConfig struct {
	Dir   string `env:"UPLOAD_DIR,    default=static/uploads"`
	MaxMB int64  `env:"UPLOAD_MAX_MB, default=10"`
}

// PredictConfig fixes the confidence rounding for one deployment. Display and
// record precision intentionally differ: two decimals on responses, four in
// persisted reports.
type PredictConfig struct {
	DisplayDecimals int `env:"CONFIDENCE_DISPLAY_DECIMALS, default=2"`
	RecordDecimals  int `env:"CONFIDENCE_RECORD_DECIMALS,  default=4"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
