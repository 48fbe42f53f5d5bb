package config

import (
	"errors"
	"fmt"
	"io/fs"
	"reflect"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"tripinvite/portal/internal/model"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	State    StateConfig    `mapstructure:"state"`
	Guard    GuardConfig    `mapstructure:"guard"`
	Admin    AdminConfig    `mapstructure:"admin"`
	Mail     MailConfig     `mapstructure:"mail"`
	Trip     TripConfig     `mapstructure:"trip"`
	CORS     CORSConfig     `mapstructure:"cors"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Host                    string        `mapstructure:"host"`
	Port                    int           `mapstructure:"port"`
	Mode                    string        `mapstructure:"mode"`
	ReadTimeout             time.Duration `mapstructure:"read_timeout"`
	WriteTimeout            time.Duration `mapstructure:"write_timeout"`
	GracefulShutdownTimeout time.Duration `mapstructure:"graceful_shutdown_timeout"`
	// TrustedProxies lists the proxy IPs or CIDRs whose X-Forwarded-For is believed.
	// Empty means the client IP is always the connection's remote address.
	TrustedProxies []string `mapstructure:"trusted_proxies"`
}

type DatabaseConfig struct {
	Driver   string         `mapstructure:"driver"` // "postgres" | "sqlite"
	Postgres PostgresConfig `mapstructure:"postgres"`
	SQLite   SQLiteConfig   `mapstructure:"sqlite"`
	Redis    RedisConfig    `mapstructure:"redis"`
}

type PostgresConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	DB              string        `mapstructure:"db"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	AutoMigrate     bool          `mapstructure:"auto_migrate"`
}

type SQLiteConfig struct {
	Path        string `mapstructure:"path"`
	AutoMigrate bool   `mapstructure:"auto_migrate"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

type StateConfig struct {
	Backend string `mapstructure:"backend"` // "redis" | "memory"
}

// GuardConfig throttles unknown-token lookups per client.
type GuardConfig struct {
	MaxMisses int           `mapstructure:"max_misses"`
	Window    time.Duration `mapstructure:"window"`
}

type AdminConfig struct {
	LinkParam     string `mapstructure:"link_param"`
	LinkToken     string `mapstructure:"link_token"`
	LinkTokenHash string `mapstructure:"link_token_hash"`
}

// Enabled reports whether an admin secret is configured at all.
func (c AdminConfig) Enabled() bool {
	return c.LinkToken != "" || c.LinkTokenHash != ""
}

type MailConfig struct {
	Provider  string        `mapstructure:"provider"` // "mailgun" | "smtp"
	FromEmail string        `mapstructure:"from_email"`
	FromName  string        `mapstructure:"from_name"`
	Timeout   time.Duration `mapstructure:"timeout"`
	Mailgun   MailgunConfig `mapstructure:"mailgun"`
	SMTP      SMTPConfig    `mapstructure:"smtp"`
}

type MailgunConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Domain  string `mapstructure:"domain"`
	APIBase string `mapstructure:"api_base"`
}

type SMTPConfig struct {
	Host          string `mapstructure:"host"`
	Port          int    `mapstructure:"port"`
	Username      string `mapstructure:"username"`
	Password      string `mapstructure:"password"`
	UseSTARTTLS   bool   `mapstructure:"use_starttls"`
	SkipTLSVerify bool   `mapstructure:"skip_tls_verify"`
}

type PriceEstimate struct {
	Label string `mapstructure:"label"`
	Price int    `mapstructure:"price"`
}

type WeatherConfig struct {
	AvgHighF int    `mapstructure:"avg_high_f"`
	AvgLowF  int    `mapstructure:"avg_low_f"`
	Note     string `mapstructure:"note"`
}

type SurveyOptions struct {
	Liquor         []string `mapstructure:"liquor"`
	Events         []string `mapstructure:"events"`
	ArrivalWindows []string `mapstructure:"arrival_windows"`
	PlusOne        []string `mapstructure:"plus_one"`
	Budgets        []string `mapstructure:"budgets"`
}

// TripConfig describes the single trip the portal is built around.
type TripConfig struct {
	Name                   string            `mapstructure:"name"`
	Title                  string            `mapstructure:"title"`
	Tagline                string            `mapstructure:"tagline"`
	DestCity               string            `mapstructure:"dest_city"`
	DestIATA               string            `mapstructure:"dest_iata"`
	StartDate              model.Date        `mapstructure:"start_date"`
	EndDate                model.Date        `mapstructure:"end_date"`
	StartTime              model.ClockTime   `mapstructure:"start_time"`
	Timezone               string            `mapstructure:"timezone"`
	AllowRSVPRedo          bool              `mapstructure:"allow_rsvp_redo"`
	DeclinedMessage        string            `mapstructure:"declined_message"`
	DefaultOrigin          string            `mapstructure:"default_origin"`
	OriginAliases          map[string]string `mapstructure:"origin_aliases"`
	PriceEstimates         []PriceEstimate   `mapstructure:"price_estimates"`
	PassportStandardWeeks  int               `mapstructure:"passport_standard_weeks"`
	PassportExpeditedWeeks int               `mapstructure:"passport_expedited_weeks"`
	PassportInfoURL        string            `mapstructure:"passport_info_url"`
	Weather                WeatherConfig     `mapstructure:"weather"`
	GalleryDir             string            `mapstructure:"gallery_dir"`
	GalleryURLs            []string          `mapstructure:"gallery_urls"`
	AutoRefreshSeconds     int               `mapstructure:"auto_refresh_seconds"`
	Survey                 SurveyOptions     `mapstructure:"survey"`
}

// Location returns the trip's time zone, falling back to the process-local one.
func (t TripConfig) Location() *time.Location {
	if t.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(t.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

type CORSConfig struct {
	AllowedOrigins   []string      `mapstructure:"allowed_origins"`
	AllowedMethods   []string      `mapstructure:"allowed_methods"`
	AllowedHeaders   []string      `mapstructure:"allowed_headers"`
	AllowCredentials bool          `mapstructure:"allow_credentials"`
	MaxAge           time.Duration `mapstructure:"max_age"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads the YAML file at path, overlays environment variables, and returns Config.
// A missing file is not an error: defaults and the environment still apply.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	// Environment variable override: DATABASE_POSTGRES_HOST -> database.postgres.host
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindLegacyEnv(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
		stringToDateHook(),
		stringToClockTimeHook(),
	))); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations the portal cannot serve with.
// Mail settings are not checked: missing mail credentials only disable sending.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "postgres":
		if c.Database.Postgres.Host == "" || c.Database.Postgres.DB == "" {
			return errors.New("database.postgres.host and database.postgres.db are required")
		}
	case "sqlite":
		if c.Database.SQLite.Path == "" {
			return errors.New("database.sqlite.path is required")
		}
	default:
		return fmt.Errorf("unknown database driver %q", c.Database.Driver)
	}
	if c.Trip.StartDate.IsZero() || c.Trip.EndDate.IsZero() {
		return errors.New("trip.start_date and trip.end_date are required")
	}
	if c.Trip.EndDate.Time().Before(c.Trip.StartDate.Time()) {
		return errors.New("trip.end_date is before trip.start_date")
	}
	if c.Trip.PassportExpeditedWeeks > c.Trip.PassportStandardWeeks {
		return errors.New("trip.passport_expedited_weeks must not exceed trip.passport_standard_weeks")
	}
	if c.Admin.LinkParam == "" {
		return errors.New("admin.link_param must not be empty")
	}
	return nil
}

// DSN builds a connection string for the gorm postgres driver.
func (c PostgresConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DB, c.SSLMode)
}

func bindLegacyEnv(v *viper.Viper) {
	_ = v.BindEnv("mail.mailgun.api_key", "MAIL_MAILGUN_API_KEY", "MAILGUN_API_KEY")
	_ = v.BindEnv("mail.mailgun.domain", "MAIL_MAILGUN_DOMAIN", "MAILGUN_DOMAIN")
	_ = v.BindEnv("mail.from_email", "MAIL_FROM_EMAIL", "MAILGUN_FROM_EMAIL")
	_ = v.BindEnv("admin.link_token", "ADMIN_LINK_TOKEN")
}

func stringToDateHook() mapstructure.DecodeHookFuncType {
	return func(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
		if to != reflect.TypeOf(model.Date{}) {
			return data, nil
		}
		switch v := data.(type) {
		case string:
			return model.ParseDate(v)
		case time.Time:
			return model.DateOf(v), nil
		}
		return data, nil
	}
}

func stringToClockTimeHook() mapstructure.DecodeHookFuncType {
	return func(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
		if to != reflect.TypeOf(model.ClockTime{}) {
			return data, nil
		}
		if s, ok := data.(string); ok {
			return model.ParseClockTime(s)
		}
		return data, nil
	}
}
