package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Load reads the YAML config at configPath, then applies environment overrides.
// A missing file is tolerated only when configPath is empty (default path).
func Load(configPath string) (*AppConfig, error) {
	return load(configPath, os.LookupEnv)
}

func load(configPath string, lookup func(string) (string, bool)) (*AppConfig, error) {
	path := strings.TrimSpace(configPath)
	explicit := path != ""
	if !explicit {
		path = DefaultConfigPath
	}

	cfg := defaultAppConfig()

	content, err := os.ReadFile(path)
	switch {
	case err == nil:
		raw, err := decodeRaw(content)
		if err != nil {
			return nil, fmt.Errorf("parse config file %q: %w", path, err)
		}
		applyRawAppConfig(&cfg, raw)
	case errors.Is(err, fs.ErrNotExist) && !explicit:
	default:
		return nil, fmt.Errorf("read config file %q: %w", path, err)
	}

	applyEnv(&cfg, lookup)
	normalize(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func decodeRaw(content []byte) (rawAppConfig, error) {
	raw := rawAppConfig{}
	if len(bytes.TrimSpace(content)) == 0 {
		return raw, nil
	}
	decoder := yaml.NewDecoder(bytes.NewReader(content))
	decoder.KnownFields(true)
	if err := decoder.Decode(&raw); err != nil {
		return raw, err
	}
	return raw, nil
}

func defaultAppConfig() AppConfig {
	return AppConfig{
		Port: defaultPort,
		Env:  defaultEnv,
		Database: DatabaseConfig{
			Driver:    defaultDBDriver,
			Path:      defaultSQLitePath,
			Host:      defaultDBHost,
			Port:      defaultDBPort,
			User:      defaultDBUser,
			Name:      defaultDBName,
			Charset:   defaultDBCharset,
			ParseTime: true,
			Loc:       defaultDBLoc,
		},
		Redis: RedisConfig{
			Host: defaultRedisHost,
			Port: defaultRedisPort,
		},
		Cache: CacheConfig{TTLSeconds: defaultCacheTTL},
		Media: MediaConfig{
			Driver:      defaultMediaDriver,
			MaxUploadMB: defaultMaxUploadMB,
		},
		Mail: MailConfig{Port: defaultSMTPPort},
		Admin: AdminConfig{
			Email:    defaultAdminEmail,
			Username: defaultAdminUsername,
			Password: defaultAdminPassword,
		},
		Paths: PathsConfig{
			Logs:   defaultLogsDir,
			Static: defaultStaticDir,
		},
	}
}

func applyRawAppConfig(cfg *AppConfig, raw rawAppConfig) {
	if raw.Port != 0 {
		cfg.Port = raw.Port
	}
	setString(&cfg.Env, raw.Env)
	setString(&cfg.JWTSecret, raw.JWTSecret)
	if raw.AllowedOrigins != nil {
		cfg.AllowedOrigins = raw.AllowedOrigins
	}

	db := &cfg.Database
	setString(&db.Driver, raw.Database.Driver)
	setString(&db.DSN, raw.Database.DSN)
	setString(&db.DSN, raw.Database.URL)
	setString(&db.Path, raw.Database.Path)
	setString(&db.Host, raw.Database.Host)
	if raw.Database.Port != 0 {
		db.Port = raw.Database.Port
	}
	setString(&db.User, raw.Database.User)
	setString(&db.Password, raw.Database.Password)
	setString(&db.Name, raw.Database.Name)
	setString(&db.Charset, raw.Database.Charset)
	if raw.Database.ParseTime != nil {
		db.ParseTime = *raw.Database.ParseTime
	}
	setString(&db.Loc, raw.Database.Loc)
	if raw.Database.Params != nil {
		db.Params = copyStringMap(raw.Database.Params)
	}

	rd := &cfg.Redis
	if raw.Redis.Enable != nil {
		rd.Enable = *raw.Redis.Enable
	}
	setString(&rd.URL, raw.Redis.URL)
	setString(&rd.Host, raw.Redis.Host)
	if raw.Redis.Port != 0 {
		rd.Port = raw.Redis.Port
	}
	setString(&rd.Username, raw.Redis.Username)
	setString(&rd.Password, raw.Redis.Password)
	if raw.Redis.DB != nil {
		rd.DB = *raw.Redis.DB
	}
	if raw.Redis.TLS != nil {
		rd.TLS = *raw.Redis.TLS
	}

	if raw.Cache.Disable != nil {
		cfg.Cache.Disable = *raw.Cache.Disable
	}
	if raw.Cache.TTLSeconds != 0 {
		cfg.Cache.TTLSeconds = raw.Cache.TTLSeconds
	}

	m := &cfg.Media
	setString(&m.Driver, raw.Media.Driver)
	if raw.Media.MaxUploadMB != 0 {
		m.MaxUploadMB = raw.Media.MaxUploadMB
	}
	setString(&m.PublicBaseURL, raw.Media.PublicBaseURL)
	setString(&m.S3.Bucket, raw.Media.S3.Bucket)
	setString(&m.S3.Region, raw.Media.S3.Region)
	setString(&m.S3.Endpoint, raw.Media.S3.Endpoint)
	setString(&m.S3.AccessKeyID, raw.Media.S3.AccessKeyID)
	setString(&m.S3.SecretAccessKey, raw.Media.S3.SecretAccessKey)
	if raw.Media.S3.PathStyle != nil {
		m.S3.PathStyle = *raw.Media.S3.PathStyle
	}
	setString(&m.Cloudinary.URL, raw.Media.Cloudinary.URL)
	setString(&m.Cloudinary.Folder, raw.Media.Cloudinary.Folder)

	ml := &cfg.Mail
	if raw.Mail.Enable != nil {
		ml.Enable = *raw.Mail.Enable
	}
	setString(&ml.Host, raw.Mail.Host)
	if raw.Mail.Port != 0 {
		ml.Port = raw.Mail.Port
	}
	setString(&ml.User, raw.Mail.User)
	setString(&ml.Pass, raw.Mail.Pass)
	setString(&ml.From, raw.Mail.From)
	setString(&ml.Recipient, raw.Mail.Recipient)
	setString(&ml.ResendKey, raw.Mail.ResendKey)

	setString(&cfg.Notify.BarkKey, raw.Notify.BarkKey)
	setString(&cfg.Notify.BarkServer, raw.Notify.BarkServer)
	setString(&cfg.Notify.SiteName, raw.Notify.SiteName)

	setString(&cfg.Admin.Email, raw.Admin.Email)
	setString(&cfg.Admin.Username, raw.Admin.Username)
	setString(&cfg.Admin.Password, raw.Admin.Password)

	setString(&cfg.Paths.Logs, raw.Paths.Logs)
	setString(&cfg.Paths.Static, raw.Paths.Static)
}

func normalize(cfg *AppConfig) {
	cfg.Env = normalizeEnv(cfg.Env)
	cfg.AllowedOrigins = normalizeOrigins(cfg.AllowedOrigins)
	cfg.Database.Driver = strings.ToLower(strings.TrimSpace(cfg.Database.Driver))
	cfg.Media.Driver = strings.ToLower(strings.TrimSpace(cfg.Media.Driver))
	cfg.Media.PublicBaseURL = strings.TrimRight(cfg.Media.PublicBaseURL, "/")
	if cfg.Cache.TTLSeconds <= 0 {
		cfg.Cache.TTLSeconds = defaultCacheTTL
	}
	if cfg.Media.MaxUploadMB <= 0 {
		cfg.Media.MaxUploadMB = defaultMaxUploadMB
	}
	if cfg.Mail.Port == 0 {
		cfg.Mail.Port = defaultSMTPPort
	}
	if cfg.Mail.Host == "" && cfg.Mail.User != "" {
		cfg.Mail.Host = defaultSMTPHost
	}
	if cfg.Mail.Recipient == "" {
		cfg.Mail.Recipient = cfg.Mail.User
	}
	if cfg.Mail.From == "" && cfg.Mail.ResendKey == "" {
		cfg.Mail.From = cfg.Mail.User
	}
}

// Validate checks ranges and driver-specific required fields.
func (c *AppConfig) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d, expected 1-65535", c.Port)
	}
	switch c.Database.Driver {
	case DriverSQLite, DriverMySQL:
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	if c.Database.Driver == DriverMySQL && (c.Database.Port < 1 || c.Database.Port > 65535) {
		return fmt.Errorf("invalid database.port %d, expected 1-65535", c.Database.Port)
	}
	if c.Redis.Enable && c.Redis.URL == "" && (c.Redis.Port < 1 || c.Redis.Port > 65535) {
		return fmt.Errorf("invalid redis.port %d, expected 1-65535", c.Redis.Port)
	}
	switch c.Media.Driver {
	case MediaLocal:
	case MediaS3:
		if c.Media.S3.Bucket == "" || c.Media.S3.Region == "" {
			return errors.New("media.s3 requires bucket and region")
		}
		if c.Media.PublicBaseURL == "" {
			return errors.New("media.s3 requires media.public_base_url")
		}
	case MediaCloudinary:
		if c.Media.Cloudinary.URL == "" {
			return errors.New("media.cloudinary requires url")
		}
	default:
		return fmt.Errorf("unsupported media driver %q", c.Media.Driver)
	}
	return nil
}

// IsDev reports whether the app runs in development mode.
func (c *AppConfig) IsDev() bool { return c.Env == "development" }

// StaticDir returns the absolute directory for locally stored media.
func (c *AppConfig) StaticDir() string { return ResolveRuntimePath(c.Paths.Static, defaultStaticDir) }

// LogDir returns the absolute directory for log files.
func (c *AppConfig) LogDir() string { return ResolveRuntimePath(c.Paths.Logs, defaultLogsDir) }

// CacheTTL returns the public read cache lifetime.
func (c *AppConfig) CacheTTL() time.Duration { return time.Duration(c.Cache.TTLSeconds) * time.Second }

// MaxUploadBytes returns the content image size ceiling.
func (c *AppConfig) MaxUploadBytes() int64 { return int64(c.Media.MaxUploadMB) << 20 }

func setString(dst *string, v string) {
	if v = strings.TrimSpace(v); v != "" {
		*dst = v
	}
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "prod", "production":
		return "production"
	case "test":
		return "test"
	default:
		return "development"
	}
}

func normalizeOrigins(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, item := range in {
		v := strings.TrimRight(strings.TrimSpace(item), "/")
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

func copyStringMap(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
