package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/a11ykit/a11ydocs/internal/errors"
)

const (
	// ConfigFileName is the name of the configuration file.
	ConfigFileName = "a11ydocs.json"

	// DefaultAddress is the default listen address of the server.
	DefaultAddress = "localhost:3000"

	// DefaultContentDir holds the markdown pages and site.yaml.
	DefaultContentDir = "content"

	// DefaultManifest is the site manifest file inside the content dir.
	DefaultManifest = "site.yaml"

	// DefaultOutput is the default build output directory.
	DefaultOutput = "dist"

	// DefaultRegion is used for publishing when none is configured.
	DefaultRegion = "us-east-1"
)

// Config represents the complete a11ydocs.json configuration.
type Config struct {
	// Name is the site name shown in the page header.
	Name string `json:"name,omitempty"`

	Server  ServerConfig  `json:"server,omitempty"`
	Content ContentConfig `json:"content,omitempty"`
	Cache   CacheConfig   `json:"cache,omitempty"`
	Build   BuildConfig   `json:"build,omitempty"`
	Publish PublishConfig `json:"publish,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// ServerConfig contains HTTP and live session settings.
type ServerConfig struct {
	// Address is the host:port to listen on.
	Address string `json:"address,omitempty"`

	// ShutdownTimeout bounds graceful shutdown (e.g., "10s").
	ShutdownTimeout string `json:"shutdownTimeout,omitempty"`

	// ReadTimeout closes a live session that sends nothing, not even a
	// ping, for this long.
	ReadTimeout string `json:"readTimeout,omitempty"`

	// ReadBufferSize and WriteBufferSize size the WebSocket buffers.
	ReadBufferSize  int `json:"readBufferSize,omitempty"`
	WriteBufferSize int `json:"writeBufferSize,omitempty"`

	// MaxQueuedEvents is how many events a session buffers before it
	// rejects new ones.
	MaxQueuedEvents int `json:"maxQueuedEvents,omitempty"`

	// AllowedOrigins lists origins allowed to open live sessions. Empty
	// means same-origin only.
	AllowedOrigins []string `json:"allowedOrigins,omitempty"`
}

// ContentConfig locates the docs content.
type ContentConfig struct {
	Dir      string `json:"dir,omitempty"`
	Manifest string `json:"manifest,omitempty"`

	// LoaderURL overrides where the browser loads the web components from.
	LoaderURL string `json:"loaderUrl,omitempty"`
}

// CacheConfig controls the rendered page cache.
type CacheConfig struct {
	Enabled bool `json:"enabled,omitempty"`

	// RedisAddr selects the Redis cache. Empty means in-memory.
	RedisAddr string `json:"redisAddr,omitempty"`

	// TTL is how long a rendered page stays cached (e.g., "10m").
	TTL string `json:"ttl,omitempty"`
}

// BuildConfig contains static export settings.
type BuildConfig struct {
	Output string `json:"output,omitempty"`
}

// PublishConfig describes the S3-compatible bucket a build is uploaded to.
type PublishConfig struct {
	Bucket   string `json:"bucket,omitempty"`
	Prefix   string `json:"prefix,omitempty"`
	Region   string `json:"region,omitempty"`
	Endpoint string `json:"endpoint,omitempty"`

	// PublicURL is the base URL pages are served from after publishing.
	PublicURL string `json:"publicUrl,omitempty"`

	// Credentials are never read from the file.
	AccessKeyID     string `json:"-"`
	SecretAccessKey string `json:"-"`
}

// New creates a new Config with default values.
func New() *Config {
	cfg := &Config{Name: "Accessibility docs"}
	cfg.applyDefaults()
	return cfg
}

// Load reads a11ydocs.json from the specified directory.
func Load(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads configuration from the specified file path and applies
// environment overrides.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New("E100").
				WithDetail("No " + ConfigFileName + " found in " + filepath.Dir(path)).
				WithSuggestion("Create " + ConfigFileName + " or run from the site root")
		}
		return nil, errors.New("E101").Wrap(err)
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.New("E101").
			WithDetail("Failed to parse " + ConfigFileName + ": " + err.Error()).
			WithSuggestion("Check that " + ConfigFileName + " is valid JSON")
	}

	cfg.configPath = path
	cfg.applyDefaults()
	cfg.ApplyEnv(os.Getenv)

	return cfg, nil
}

// LoadOrDefault loads a11ydocs.json from dir, falling back to defaults
// rooted at dir when the file does not exist.
func LoadOrDefault(dir string) (*Config, error) {
	cfg, err := Load(dir)
	if errors.HasCode(err, "E100") {
		cfg = New()
		cfg.configPath = filepath.Join(dir, ConfigFileName)
		cfg.ApplyEnv(os.Getenv)
		return cfg, nil
	}
	return cfg, err
}

// ApplyEnv overrides values from the environment. getenv is os.Getenv
// outside tests.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := getenv("A11YDOCS_ADDR"); v != "" {
		c.Server.Address = v
	}
	if v := getenv("A11YDOCS_REDIS_ADDR"); v != "" {
		c.Cache.RedisAddr = v
		c.Cache.Enabled = true
	}
	if v := getenv("A11YDOCS_S3_BUCKET"); v != "" {
		c.Publish.Bucket = v
	}
	if v := getenv("A11YDOCS_S3_ENDPOINT"); v != "" {
		c.Publish.Endpoint = v
	}
	if v := getenv("A11YDOCS_S3_REGION"); v != "" {
		c.Publish.Region = v
	}
	if v := getenv("AWS_ACCESS_KEY_ID"); v != "" {
		c.Publish.AccessKeyID = v
	}
	if v := getenv("AWS_SECRET_ACCESS_KEY"); v != "" {
		c.Publish.SecretAccessKey = v
	}
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

// applyDefaults fills in default values for empty fields.
func (c *Config) applyDefaults() {
	if c.Server.Address == "" {
		c.Server.Address = DefaultAddress
	}
	if c.Server.ShutdownTimeout == "" {
		c.Server.ShutdownTimeout = "10s"
	}
	if c.Server.ReadTimeout == "" {
		c.Server.ReadTimeout = "60s"
	}
	if c.Server.ReadBufferSize == 0 {
		c.Server.ReadBufferSize = 1024
	}
	if c.Server.WriteBufferSize == 0 {
		c.Server.WriteBufferSize = 4096
	}
	if c.Server.MaxQueuedEvents == 0 {
		c.Server.MaxQueuedEvents = 32
	}

	if c.Content.Dir == "" {
		c.Content.Dir = DefaultContentDir
	}
	if c.Content.Manifest == "" {
		c.Content.Manifest = DefaultManifest
	}

	if c.Cache.TTL == "" {
		c.Cache.TTL = "10m"
	}

	if c.Build.Output == "" {
		c.Build.Output = DefaultOutput
	}

	if c.Publish.Region == "" {
		c.Publish.Region = DefaultRegion
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	for name, value := range map[string]string{
		"server.shutdownTimeout": c.Server.ShutdownTimeout,
		"server.readTimeout":     c.Server.ReadTimeout,
		"cache.ttl":              c.Cache.TTL,
	} {
		d, err := time.ParseDuration(value)
		if err != nil || d <= 0 {
			return errors.New("E102").
				WithDetailf("%s must be a positive duration such as \"30s\", got %q", name, value)
		}
	}
	if c.Server.MaxQueuedEvents < 0 {
		return errors.New("E102").
			WithDetailf("server.maxQueuedEvents must not be negative, got %d", c.Server.MaxQueuedEvents)
	}
	if c.Server.ReadBufferSize < 0 || c.Server.WriteBufferSize < 0 {
		return errors.New("E102").WithDetail("WebSocket buffer sizes must not be negative")
	}
	if strings.HasPrefix(c.Publish.Prefix, "/") {
		return errors.New("E102").
			WithDetailf("publish.prefix must be relative, got %q", c.Publish.Prefix)
	}
	return nil
}

// ShutdownTimeout returns the parsed server.shutdownTimeout.
func (c *Config) ShutdownTimeout() time.Duration {
	return parseDuration(c.Server.ShutdownTimeout, 10*time.Second)
}

// ReadTimeout returns the parsed server.readTimeout.
func (c *Config) ReadTimeout() time.Duration {
	return parseDuration(c.Server.ReadTimeout, time.Minute)
}

// CacheTTL returns the parsed cache.ttl.
func (c *Config) CacheTTL() time.Duration {
	return parseDuration(c.Cache.TTL, 10*time.Minute)
}

// ContentPath returns the absolute path to the content directory.
func (c *Config) ContentPath() string {
	return c.resolve(c.Content.Dir)
}

// OutputPath returns the absolute path to the build output directory.
func (c *Config) OutputPath() string {
	return c.resolve(c.Build.Output)
}

func (c *Config) resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.Dir(), path)
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

// FindProjectRoot walks up from dir until it finds a11ydocs.json.
func FindProjectRoot(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	for {
		if Exists(dir) {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("E100").
				WithSuggestion("Run the command from the site root or pass --dir")
		}
		dir = parent
	}
}

// Exists reports whether dir contains a11ydocs.json.
func Exists(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ConfigFileName))
	return err == nil
}
