package utils

import (
	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	PayPal   PayPalConfig
	Sheets   SheetsConfig
	Email    EmailConfig
	Booking  BookingConfig
}

type AppConfig struct {
	Name           string
	Port           string
	Debug          bool
	LogPath        string
	AllowedOrigins []string
	AdminAPIKey    string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type PayPalConfig struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
	Currency     string
}

type SheetsConfig struct {
	SpreadsheetID     string
	BookingsRange     string
	CredentialsBase64 string
}

type EmailConfig struct {
	APIKey       string
	From         string
	OperatorAddr string
}

type BookingConfig struct {
	SourceTag       string
	DraftTTLMinutes int
	MinGuests       int
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("PAYPAL_BASE_URL", "https://api-m.paypal.com")
	viper.SetDefault("PAYPAL_CURRENCY", "EUR")
	viper.SetDefault("SHEETS_BOOKINGS_RANGE", "Bookings!A:A")
	viper.SetDefault("BOOKING_SOURCE", "Website")
	viper.SetDefault("DRAFT_TTL_MINUTES", 60)
	viper.SetDefault("MIN_GUESTS", 2)

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:           viper.GetString("APP_NAME"),
			Port:           viper.GetString("PORT"),
			Debug:          viper.GetBool("DEBUG"),
			LogPath:        viper.GetString("LOG_PATH"),
			AllowedOrigins: viper.GetStringSlice("ALLOWED_ORIGINS"),
			AdminAPIKey:    viper.GetString("ADMIN_API_KEY"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		Redis: RedisConfig{
			Addr:     viper.GetString("REDIS_ADDR"),
			Password: viper.GetString("REDIS_PASS"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		PayPal: PayPalConfig{
			BaseURL:      viper.GetString("PAYPAL_BASE_URL"),
			ClientID:     viper.GetString("PAYPAL_CLIENT_ID"),
			ClientSecret: viper.GetString("PAYPAL_CLIENT_SECRET"),
			Currency:     viper.GetString("PAYPAL_CURRENCY"),
		},
		Sheets: SheetsConfig{
			SpreadsheetID:     viper.GetString("GOOGLE_SHEET_ID"),
			BookingsRange:     viper.GetString("SHEETS_BOOKINGS_RANGE"),
			CredentialsBase64: viper.GetString("GOOGLE_SERVICE_ACCOUNT_BASE64"),
		},
		Email: EmailConfig{
			APIKey:       viper.GetString("RESEND_API_KEY"),
			From:         viper.GetString("EMAIL_FROM"),
			OperatorAddr: viper.GetString("EMAIL_OPERATOR"),
		},
		Booking: BookingConfig{
			SourceTag:       viper.GetString("BOOKING_SOURCE"),
			DraftTTLMinutes: viper.GetInt("DRAFT_TTL_MINUTES"),
			MinGuests:       viper.GetInt("MIN_GUESTS"),
		},
	}

	return config, nil
}
