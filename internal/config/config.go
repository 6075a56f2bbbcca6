package config // package config loads application configuration from environment variables

import (
	"log"     // log is used to report configuration errors and halt execution
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types
	"time"    // time expresses TTL and timeout durations
)

// Config holds all runtime configuration values. Each field corresponds to
// an environment variable. Beyond connection details the gate's behavior
// is fixed: the event it serves, the key scan credentials are verified
// with, and the TTL/timeout windows of the scan pipeline.
type Config struct {
	Env        string // application environment (e.g. "dev", "prod")
	Port       string // HTTP port to listen on
	DBUser     string // database username
	DBPass     string // database password (optional)
	DBHost     string // database host address
	DBPort     string // database port number
	DBName     string // database name
	SessionKey string // shared HS256 key scan credentials are signed with
	EventID    string // event identifier this gate deployment serves

	TicketCacheTTL time.Duration // lifetime of cached ticket views (default 120s)
	ReplayTTL      time.Duration // lifetime of anti-replay markers (default 300s)
	DepTimeout     time.Duration // per-call bound on external dependencies (default 3s)
}

// Load reads configuration values from environment variables and returns a
// Config. Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.
func Load() Config {
	return Config{
		Env:        must("APP_ENV"),
		Port:       must("APP_PORT"),
		DBUser:     must("DB_USER"),
		DBPass:     os.Getenv("DB_PASS"), // empty allowed
		DBHost:     must("DB_HOST"),
		DBPort:     must("DB_PORT"),
		DBName:     must("DB_NAME"),
		SessionKey: must("SESSION_KEY"),
		EventID:    must("EVENT_ID"),

		TicketCacheTTL: secondsOr("TICKET_CACHE_TTL_SEC", 120),
		ReplayTTL:      secondsOr("REPLAY_TTL_SEC", 300),
		DepTimeout:     millisOr("DEP_TIMEOUT_MS", 3000),
	}
}

// must retrieves the value of a required environment variable. If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// secondsOr reads an integer number of seconds from the environment,
// falling back to def when unset. An unparsable value is fatal: a mistyped
// TTL on a correctness-adjacent window should stop the deploy, not be
// silently replaced.
func secondsOr(key string, def int) time.Duration {
	return time.Duration(intOr(key, def)) * time.Second
}

// millisOr is secondsOr for millisecond-granularity values.
func millisOr(key string, def int) time.Duration {
	return time.Duration(intOr(key, def)) * time.Millisecond
}

func intOr(key string, def int) int {
	s, ok := os.LookupEnv(key)
	if !ok || s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}
