package config

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"

	"gebedsrooster/models"
	"gebedsrooster/services/schedule"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Store backend: firestore, mongo or memory.
	StoreBackend string `mapstructure:"STORE_BACKEND"`
	DatabaseURL  string `mapstructure:"DATABASE_URL"`
	DatabaseName string `mapstructure:"DATABASE_NAME"`

	// Firebase project.
	FirebaseCredentialsFile string `mapstructure:"FIREBASE_CREDENTIALS_FILE"`
	FirebaseProjectID       string `mapstructure:"FIREBASE_PROJECT_ID"`
	FirebaseAPIKey          string `mapstructure:"FIREBASE_API_KEY"`

	// Redis configuration.
	RedisAddr            string `mapstructure:"REDIS_ADDR"`
	RedisPassword        string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB         int    `mapstructure:"REDIS_CACHE_DB"`
	RedisReminderQueueDB int    `mapstructure:"REDIS_REMINDER_QUEUE_DB"`

	// Campaign.
	CampaignStart    string `mapstructure:"CAMPAIGN_START"`
	CampaignEnd      string `mapstructure:"CAMPAIGN_END"`
	CampaignTimezone string `mapstructure:"CAMPAIGN_TIMEZONE"`
	WeekStartDay     string `mapstructure:"WEEK_START_DAY"`
	RoundingMode     string `mapstructure:"ROUNDING_MODE"`
	DailyStartHour   int    `mapstructure:"DAILY_START_HOUR"`
	DailyEndHour     int    `mapstructure:"DAILY_END_HOUR"`
	BlockedHours     string `mapstructure:"BLOCKED_HOURS"`

	MailFrom       string        `mapstructure:"MAIL_FROM"`
	ReminderLead   time.Duration `mapstructure:"REMINDER_LEAD"`
	AllowedOrigins []string      `mapstructure:"ALLOWED_ORIGINS"`
}

var AppConfig Config

// campaignLayouts are tried in order for CAMPAIGN_START and CAMPAIGN_END.
// Layouts without an offset are read in CAMPAIGN_TIMEZONE.
var campaignLayouts = []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02 15:04"}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	v.SetDefault("STORE_BACKEND", "firestore")
	v.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	v.SetDefault("DATABASE_NAME", "gebedsrooster")
	v.SetDefault("FIREBASE_CREDENTIALS_FILE", "")
	v.SetDefault("FIREBASE_PROJECT_ID", "")
	v.SetDefault("FIREBASE_API_KEY", "")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_CACHE_DB", 0)
	v.SetDefault("REDIS_REMINDER_QUEUE_DB", 1)
	v.SetDefault("CAMPAIGN_START", "2020-03-01T11:00")
	v.SetDefault("CAMPAIGN_END", "2020-03-22T10:00")
	v.SetDefault("CAMPAIGN_TIMEZONE", "Europe/Amsterdam")
	v.SetDefault("WEEK_START_DAY", "monday")
	v.SetDefault("ROUNDING_MODE", "ceil")
	v.SetDefault("DAILY_START_HOUR", 0)
	v.SetDefault("DAILY_END_HOUR", 23)
	v.SetDefault("BLOCKED_HOURS", "")
	v.SetDefault("MAIL_FROM", "Gebedsmarathon <noreply@gebedsmarathon.nl>")
	v.SetDefault("REMINDER_LEAD", "24h")
	v.SetDefault("ALLOWED_ORIGINS", []string{"*"})
}

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()
	setDefaults(viper.GetViper())

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

// ScheduleOptions turns the campaign keys into grid options.
func (c Config) ScheduleOptions() (schedule.Options, error) {
	var opts schedule.Options

	loc := time.Local
	if c.CampaignTimezone != "" {
		l, err := time.LoadLocation(c.CampaignTimezone)
		if err != nil {
			return opts, fmt.Errorf("invalid CAMPAIGN_TIMEZONE: %w", err)
		}
		loc = l
	}

	start, err := parseCampaignTime(c.CampaignStart, loc)
	if err != nil {
		return opts, fmt.Errorf("invalid CAMPAIGN_START: %w", err)
	}
	end, err := parseCampaignTime(c.CampaignEnd, loc)
	if err != nil {
		return opts, fmt.Errorf("invalid CAMPAIGN_END: %w", err)
	}

	weekDay, err := schedule.ParseWeekStartDay(c.WeekStartDay)
	if err != nil {
		return opts, err
	}
	rounding, err := schedule.ParseRoundingMode(c.RoundingMode)
	if err != nil {
		return opts, err
	}
	blocked, err := parseHours(c.BlockedHours)
	if err != nil {
		return opts, fmt.Errorf("invalid BLOCKED_HOURS: %w", err)
	}

	return schedule.Options{
		Range:        models.CampaignRange{Start: start, End: end},
		WeekStartDay: weekDay,
		Rounding:     rounding,
		Hours: &schedule.HourWindow{
			DailyStartHour: c.DailyStartHour,
			DailyEndHour:   c.DailyEndHour,
			BlockedHours:   blocked,
		},
		Location: loc,
	}, nil
}

func parseCampaignTime(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range campaignLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t.In(loc), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised time %q", s)
}

// parseHours reads a comma separated list such as "17,18".
func parseHours(s string) ([]int, error) {
	var hours []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		h, err := strconv.Atoi(part)
		if err != nil {
			return nil, err
		}
		hours = append(hours, h)
	}
	return hours, nil
}
