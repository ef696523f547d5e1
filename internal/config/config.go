package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds the runtime settings of the web frontend. Everything comes
// from the environment, with defaults that match a local backend.
type Config struct {
	ListenAddr     string
	BackendURL     string
	CookieName     string
	RequestTimeout time.Duration
	SlotRefresh    time.Duration
	BookingRefresh time.Duration
}

func Load() Config {
	cfg := Config{
		ListenAddr:     ":" + getenv("PORT", "3000"),
		BackendURL:     getenv("BACKEND_URL", "http://localhost:5000"),
		CookieName:     getenv("SESSION_COOKIE", "parking_token"),
		RequestTimeout: durationEnv("REQUEST_TIMEOUT_SECONDS", 10*time.Second),
		SlotRefresh:    durationEnv("SLOT_REFRESH_SECONDS", 30*time.Second),
		BookingRefresh: durationEnv("BOOKING_REFRESH_SECONDS", 60*time.Second),
	}
	return cfg
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func durationEnv(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	secs, err := strconv.Atoi(v)
	if err != nil || secs <= 0 {
		return def
	}
	return time.Duration(secs) * time.Second
}
