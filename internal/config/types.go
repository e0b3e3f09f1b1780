package config

// AppConfig holds runtime startup configuration.
type AppConfig struct {
	Port           int
	Env            string // "development" | "production"
	JWTSecret      string
	AllowedOrigins []string
	Database       DatabaseConfig
	Redis          RedisConfig
	Cache          CacheConfig
	Media          MediaConfig
	Mail           MailConfig
	Notify         NotifyConfig
	Admin          AdminConfig
	Paths          PathsConfig
}

type DatabaseConfig struct {
	Driver    string
	DSN       string
	Path      string // sqlite file
	Host      string
	Port      int
	User      string
	Password  string
	Name      string
	Charset   string
	ParseTime bool
	Loc       string
	Params    map[string]string
}

type RedisConfig struct {
	Enable   bool
	URL      string
	Host     string
	Port     int
	Username string
	Password string
	DB       int
	TLS      bool
}

type CacheConfig struct {
	Disable    bool
	TTLSeconds int
}

type MediaConfig struct {
	Driver        string
	MaxUploadMB   int
	PublicBaseURL string
	S3            S3Config
	Cloudinary    CloudinaryConfig
}

type S3Config struct {
	Bucket          string
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	PathStyle       bool
}

type CloudinaryConfig struct {
	URL    string
	Folder string
}

type MailConfig struct {
	Enable    bool
	Host      string
	Port      int
	User      string
	Pass      string
	From      string
	Recipient string
	ResendKey string
}

// NotifyConfig configures Bark push notifications for contact messages.
type NotifyConfig struct {
	BarkKey    string
	BarkServer string
	SiteName   string
}

type AdminConfig struct {
	Email    string
	Username string
	Password string
}

type PathsConfig struct {
	Logs   string
	Static string
}

type rawAppConfig struct {
	Port           int         `yaml:"port"`
	Env            string      `yaml:"env"`
	JWTSecret      string      `yaml:"jwt_secret"`
	AllowedOrigins []string    `yaml:"allowed_origins"`
	Database       rawDatabase `yaml:"database"`
	Redis          rawRedis    `yaml:"redis"`
	Cache          rawCache    `yaml:"cache"`
	Media          rawMedia    `yaml:"media"`
	Mail           rawMail     `yaml:"mail"`
	Notify         rawNotify   `yaml:"notify"`
	Admin          rawAdmin    `yaml:"admin"`
	Paths          rawPaths    `yaml:"paths"`
}

type rawDatabase struct {
	Driver    string            `yaml:"driver"`
	DSN       string            `yaml:"dsn"`
	URL       string            `yaml:"url"`
	Path      string            `yaml:"path"`
	Host      string            `yaml:"host"`
	Port      int               `yaml:"port"`
	User      string            `yaml:"user"`
	Password  string            `yaml:"password"`
	Name      string            `yaml:"name"`
	Charset   string            `yaml:"charset"`
	ParseTime *bool             `yaml:"parse_time"`
	Loc       string            `yaml:"loc"`
	Params    map[string]string `yaml:"params"`
}

type rawRedis struct {
	Enable   *bool  `yaml:"enable"`
	URL      string `yaml:"url"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	DB       *int   `yaml:"db"`
	TLS      *bool  `yaml:"tls"`
}

type rawCache struct {
	Disable    *bool `yaml:"disable"`
	TTLSeconds int   `yaml:"ttl_seconds"`
}

type rawMedia struct {
	Driver        string        `yaml:"driver"`
	MaxUploadMB   int           `yaml:"max_upload_mb"`
	PublicBaseURL string        `yaml:"public_base_url"`
	S3            rawS3         `yaml:"s3"`
	Cloudinary    rawCloudinary `yaml:"cloudinary"`
}

type rawS3 struct {
	Bucket          string `yaml:"bucket"`
	Region          string `yaml:"region"`
	Endpoint        string `yaml:"endpoint"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
	PathStyle       *bool  `yaml:"path_style"`
}

type rawCloudinary struct {
	URL    string `yaml:"url"`
	Folder string `yaml:"folder"`
}

type rawMail struct {
	Enable    *bool  `yaml:"enable"`
	Host      string `yaml:"host"`
	Port      int    `yaml:"port"`
	User      string `yaml:"user"`
	Pass      string `yaml:"pass"`
	From      string `yaml:"from"`
	Recipient string `yaml:"recipient"`
	ResendKey string `yaml:"resend_key"`
}

type rawNotify struct {
	BarkKey    string `yaml:"bark_key"`
	BarkServer string `yaml:"bark_server"`
	SiteName   string `yaml:"site_name"`
}

type rawAdmin struct {
	Email    string `yaml:"email"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

type rawPaths struct {
	Logs   string `yaml:"logs"`
	Static string `yaml:"static"`
}
