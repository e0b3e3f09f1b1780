package config

const (
	// DefaultConfigPath is used when --config is not provided.
	DefaultConfigPath = "config.yml"

	defaultPort          = 5000
	defaultEnv           = "development"
	defaultDBDriver      = DriverSQLite
	defaultSQLitePath    = "data/portfolio.db"
	defaultDBHost        = "127.0.0.1"
	defaultDBPort        = 3306
	defaultDBUser        = "root"
	defaultDBName        = "portfolio"
	defaultDBCharset     = "utf8mb4"
	defaultDBLoc         = "Local"
	defaultRedisHost     = "localhost"
	defaultRedisPort     = 6379
	defaultCacheTTL      = 30
	defaultMediaDriver   = MediaLocal
	defaultMaxUploadMB   = 5
	defaultSMTPPort      = 587
	defaultSMTPHost      = "smtp.gmail.com"
	defaultStaticDir     = "static"
	defaultLogsDir       = "logs"
	defaultAdminEmail    = "admin@example.com"
	defaultAdminUsername = "admin"
	defaultAdminPassword = "admin123"
)

// Database drivers.
const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

// Media drivers.
const (
	MediaLocal      = "local"
	MediaS3         = "s3"
	MediaCloudinary = "cloudinary"
)
