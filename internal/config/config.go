package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
)

type Config struct {
	Env        string
	DBUrl      string
	ServerPort string
	LogLevel   string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	APIToken    string
	JWTSecret   string
	CORSOrigins []string

	Timezone        string
	WorkStart       string
	WorkEnd         string
	SlotStepMinutes int
	CancelPolicy    appointment.CancelPolicy

	LockTTL  time.Duration
	LockWait time.Duration

	ReminderLead   time.Duration
	ReminderWindow time.Duration
}

// Load reads the environment, after merging an optional .env file.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Env:           getEnv("APP_ENV", "development"),
		DBUrl:         getEnv("DATABASE_URL", ""),
		ServerPort:    getEnv("SERVER_PORT", "8080"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		APIToken:      getEnv("API_TOKEN", ""),
		JWTSecret:     getEnv("JWT_SECRET", ""),
		CORSOrigins:   splitList(getEnv("CORS_ORIGINS", "")),
		Timezone:      getEnv("SALON_TIMEZONE", "UTC"),
		WorkStart:     getEnv("WORK_START", "09:00"),
		WorkEnd:       getEnv("WORK_END", "18:00"),
	}

	var err error
	if cfg.RedisDB, err = getInt("REDIS_DB", 0); err != nil {
		return nil, err
	}
	if cfg.SlotStepMinutes, err = getInt("SLOT_STEP_MINUTES", 30); err != nil {
		return nil, err
	}
	if cfg.CancelPolicy, err = appointment.ParseCancelPolicy(getEnv("CANCEL_POLICY", "idempotent")); err != nil {
		return nil, err
	}
	if cfg.LockTTL, err = getDuration("LOCK_TTL", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.LockWait, err = getDuration("LOCK_WAIT", 3*time.Second); err != nil {
		return nil, err
	}
	if cfg.ReminderLead, err = getDuration("REMINDER_LEAD", 3*time.Hour); err != nil {
		return nil, err
	}
	if cfg.ReminderWindow, err = getDuration("REMINDER_WINDOW", 5*time.Minute); err != nil {
		return nil, err
	}

	if _, err := cfg.WorkingHours(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// WorkingHours is the initial salon window; runtime changes go through Settings.
func (c *Config) WorkingHours() (appointment.WorkingHours, error) {
	start, err := appointment.ParseClock(c.WorkStart)
	if err != nil {
		return appointment.WorkingHours{}, fmt.Errorf("WORK_START: %w", err)
	}
	end, err := appointment.ParseClock(c.WorkEnd)
	if err != nil {
		return appointment.WorkingHours{}, fmt.Errorf("WORK_END: %w", err)
	}

	wh := appointment.WorkingHours{
		Start:           start,
		End:             end,
		SlotStepMinutes: c.SlotStepMinutes,
	}
	if err := wh.Validate(); err != nil {
		return appointment.WorkingHours{}, err
	}
	return wh, nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%s", c.ServerPort)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer (got %q)", key, v)
	}
	return n, nil
}

func getDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%s must be a positive duration (got %q)", key, v)
	}
	return d, nil
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
