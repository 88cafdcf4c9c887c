package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	defaultAddr             = ":8080"
	defaultOpenMinutes      = 8 * 60  // 08:00
	defaultCloseMinutes     = 19 * 60 // 19:00
	defaultSlotStepMinutes  = 60
	defaultGridOpenMinutes  = 10 * 60 // legacy UI grid window
	defaultGridCloseMinutes = 20 * 60
	defaultGridStepMinutes  = 30
	defaultMinDuration      = 60
	defaultMaxDuration      = 480
	defaultRescheduleNotice = 8.0 // hours; below this rescheduling is refused
)

type Config struct {
	Addr        string
	DatabaseURL string
	JWTSecret   string

	// Operating window and slot granularity for the main availability path.
	OpenMinutes     int
	CloseMinutes    int
	SlotStepMinutes int

	// Legacy storefront grid: fixed window, half-hour ticks.
	GridOpenMinutes  int
	GridCloseMinutes int
	GridStepMinutes  int

	MinDurationMinutes int
	MaxDurationMinutes int

	MinRescheduleNoticeHours float64

	StripeWebhookSecret string
	CheckinSecret       string

	SMTPHost  string
	SMTPPort  string
	EmailFrom string
}

func Load() (*Config, error) {
	// .env is a local-dev convenience; missing file is fine.
	_ = godotenv.Load()

	cfg := &Config{
		Addr:                     getEnv("ADDR", defaultAddr),
		DatabaseURL:              strings.TrimSpace(os.Getenv("DATABASE_URL")),
		JWTSecret:                strings.TrimSpace(os.Getenv("JWT_SECRET")),
		StripeWebhookSecret:      strings.TrimSpace(os.Getenv("STRIPE_WEBHOOK_SECRET")),
		CheckinSecret:            strings.TrimSpace(os.Getenv("CHECKIN_SECRET")),
		SMTPHost:                 getEnv("SMTP_HOST", "localhost"),
		SMTPPort:                 getEnv("SMTP_PORT", "1025"),
		EmailFrom:                getEnv("EMAIL_FROM", "bookings@musicstudio.local"),
		MinRescheduleNoticeHours: defaultRescheduleNotice,
	}

	var err error
	if cfg.OpenMinutes, err = getEnvMinutes("STUDIO_OPEN", defaultOpenMinutes); err != nil {
		return nil, err
	}
	if cfg.CloseMinutes, err = getEnvMinutes("STUDIO_CLOSE", defaultCloseMinutes); err != nil {
		return nil, err
	}
	if cfg.SlotStepMinutes, err = getEnvInt("SLOT_STEP_MINUTES", defaultSlotStepMinutes); err != nil {
		return nil, err
	}
	if cfg.GridOpenMinutes, err = getEnvMinutes("GRID_OPEN", defaultGridOpenMinutes); err != nil {
		return nil, err
	}
	if cfg.GridCloseMinutes, err = getEnvMinutes("GRID_CLOSE", defaultGridCloseMinutes); err != nil {
		return nil, err
	}
	if cfg.GridStepMinutes, err = getEnvInt("GRID_STEP_MINUTES", defaultGridStepMinutes); err != nil {
		return nil, err
	}
	if cfg.MinDurationMinutes, err = getEnvInt("MIN_DURATION_MINUTES", defaultMinDuration); err != nil {
		return nil, err
	}
	if cfg.MaxDurationMinutes, err = getEnvInt("MAX_DURATION_MINUTES", defaultMaxDuration); err != nil {
		return nil, err
	}

	if cfg.CloseMinutes <= cfg.OpenMinutes {
		return nil, fmt.Errorf("config: STUDIO_CLOSE (%d) must be after STUDIO_OPEN (%d)",
			cfg.CloseMinutes, cfg.OpenMinutes)
	}
	if cfg.SlotStepMinutes <= 0 || cfg.GridStepMinutes <= 0 {
		return nil, fmt.Errorf("config: slot step must be positive")
	}
	if cfg.MinDurationMinutes <= 0 || cfg.MaxDurationMinutes < cfg.MinDurationMinutes {
		return nil, fmt.Errorf("config: duration range [%d,%d] is invalid",
			cfg.MinDurationMinutes, cfg.MaxDurationMinutes)
	}

	return cfg, nil
}

func getEnv(name, def string) string {
	if v := strings.TrimSpace(os.Getenv(name)); v != "" {
		return v
	}
	return def
}

func getEnvInt(name string, def int) (int, error) {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s=%q is not an integer", name, v)
	}
	return n, nil
}

// getEnvMinutes accepts either "HH:MM" or a plain minutes-since-midnight integer.
func getEnvMinutes(name string, def int) (int, error) {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return def, nil
	}
	if strings.Contains(v, ":") {
		parts := strings.SplitN(v, ":", 2)
		h, err1 := strconv.Atoi(parts[0])
		m, err2 := strconv.Atoi(parts[1])
		if err1 != nil || err2 != nil || h < 0 || h > 24 || m < 0 || m > 59 {
			return 0, fmt.Errorf("config: %s=%q is not a valid HH:MM time", name, v)
		}
		return h*60 + m, nil
	}
	return getEnvInt(name, def)
}
