package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Asset backends understood by helpers.NewAssetHost.
const (
	AssetBackendCloudinary = "cloudinary"
	AssetBackendS3         = "s3"
)

// Config holds everything the server needs at start-up. It is built once in
// main and handed to every collaborator; nothing reads the environment later.
type Config struct {
	Port    string `env:"PORT" envDefault:"8000"`
	GinMode string `env:"GIN_MODE" envDefault:"release"`

	MongoURI string `env:"MONGODB_URI,required"`
	MongoDB  string `env:"MONGODB_DB" envDefault:"videotube"`

	CORSOrigins  []string `env:"CORS_ORIGIN" envSeparator:"," envDefault:"http://localhost:5173"`
	CookieSecure bool     `env:"COOKIE_SECURE" envDefault:"true"`

	AccessTokenSecret  string        `env:"ACCESS_TOKEN_SECRET,required"`
	AccessTokenTTL     time.Duration `env:"ACCESS_TOKEN_EXPIRY" envDefault:"1h"`
	RefreshTokenSecret string        `env:"REFRESH_TOKEN_SECRET,required"`
	RefreshTokenTTL    time.Duration `env:"REFRESH_TOKEN_EXPIRY" envDefault:"240h"`

	AssetBackend  string `env:"ASSET_BACKEND" envDefault:"cloudinary"`
	CloudinaryURL string `env:"CLOUDINARY_URL"`
	S3Bucket      string `env:"S3_BUCKET"`
	S3Region      string `env:"S3_REGION" envDefault:"us-east-1"`
	S3Endpoint    string `env:"S3_ENDPOINT"`
	S3PublicURL   string `env:"S3_PUBLIC_URL"`

	UploadDir   string `env:"UPLOAD_DIR" envDefault:"./public/temp"`
	MaxUploadMB int64  `env:"MAX_UPLOAD_MB" envDefault:"100"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
	LogFile   string `env:"LOG_FILE"`

	RateLimitRPS   float64 `env:"RATE_LIMIT_RPS" envDefault:"20"`
	RateLimitBurst int     `env:"RATE_LIMIT_BURST" envDefault:"40"`
}

// Load reads the given dotenv files (".env" when none are given) into the
// process environment and parses the result into a Config.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}
	return Parse(env.Options{})
}

// Parse builds a Config from the process environment, or from opts.Environment
// when it is set.
func Parse(opts env.Options) (*Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks cross-field rules the struct tags cannot express.
func (c *Config) Validate() error {
	c.AssetBackend = strings.ToLower(strings.TrimSpace(c.AssetBackend))
	switch c.AssetBackend {
	case AssetBackendCloudinary:
		if c.CloudinaryURL == "" {
			return errors.New("config: CLOUDINARY_URL is required for the cloudinary asset backend")
		}
	case AssetBackendS3:
		if c.S3Bucket == "" {
			return errors.New("config: S3_BUCKET is required for the s3 asset backend")
		}
	default:
		return fmt.Errorf("config: unknown ASSET_BACKEND %q", c.AssetBackend)
	}
	if c.MaxUploadMB <= 0 {
		return errors.New("config: MAX_UPLOAD_MB must be positive")
	}
	if c.AccessTokenTTL <= 0 || c.RefreshTokenTTL <= 0 {
		return errors.New("config: token expiry must be positive")
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Port
}
