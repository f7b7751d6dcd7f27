package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort string
	AppEnv  string

	MySQLHost string
	MySQLPort string
	MySQLDB   string
	MySQLUser string
	MySQLPass string

	RedisAddr string
	RedisPass string
	RedisDB   int

	IdempTTLSecs int

	SentryDSN string

	// ProofAttesterPubKey is the hex-encoded ed25519 key credential
	// proofs must be signed by.
	ProofAttesterPubKey string
	ProofValidityHours  int
	ConsentWindowHours  int

	// Policy thresholds; defaults match the community launch parameters.
	PolicyMinScore      int64
	PolicyIncomeMin     int64
	PolicyIncomeMax     int64
	PolicyAttributes    []int64
	PolicyMinHistoryBps int64
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getenvInt(k string, d int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return d
}

func getenvInt64(k string, d int64) int64 {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return d
}

// parseInt64List reads a comma-separated list; malformed elements are
// skipped rather than failing the whole load.
func parseInt64List(raw string) []int64 {
	var out []int64
	for _, p := range strings.Split(raw, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if n, err := strconv.ParseInt(p, 10, 64); err == nil {
			out = append(out, n)
		}
	}
	return out
}

func Load() *Config {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	return &Config{
		AppPort: getenv("APP_PORT", "8080"),
		AppEnv:  getenv("APP_ENV", "development"),

		MySQLHost: getenv("MYSQL_HOST", "mysql"),
		MySQLPort: getenv("MYSQL_PORT", "3306"),
		MySQLDB:   getenv("MYSQL_DB", "lendpact"),
		MySQLUser: getenv("MYSQL_USER", "lendpact"),
		MySQLPass: getenv("MYSQL_PASS", "lendpact"),

		RedisAddr: getenv("REDIS_ADDR", "redis:6379"),
		RedisPass: os.Getenv("REDIS_PASSWORD"),
		RedisDB:   getenvInt("REDIS_DB", 0),

		IdempTTLSecs: getenvInt("IDEMPOTENCY_TTL_SECONDS", 300),

		SentryDSN: os.Getenv("SENTRY_DSN"),

		ProofAttesterPubKey: os.Getenv("PROOF_ATTESTER_PUBKEY"),
		ProofValidityHours:  getenvInt("PROOF_VALIDITY_HOURS", 24),
		ConsentWindowHours:  getenvInt("CONSENT_WINDOW_HOURS", 24),

		PolicyMinScore:      getenvInt64("POLICY_MIN_SCORE", 70),
		PolicyIncomeMin:     getenvInt64("POLICY_INCOME_MIN", 0),
		PolicyIncomeMax:     getenvInt64("POLICY_INCOME_MAX", 0),
		PolicyAttributes:    parseInt64List(os.Getenv("POLICY_ATTRIBUTES")),
		PolicyMinHistoryBps: getenvInt64("POLICY_MIN_HISTORY_BPS", 8000),
	}
}

func (c *Config) Validate() error {
	if c.MySQLHost == "" || c.MySQLPort == "" || c.MySQLDB == "" || c.MySQLUser == "" {
		return errors.New("missing MySQL config (MYSQL_HOST/PORT/DB/USER)")
	}
	// ensure port is valid
	if _, err := net.LookupPort("tcp", c.MySQLPort); err != nil {
		return fmt.Errorf("invalid MYSQL_PORT %q: %w", c.MySQLPort, err)
	}
	if c.AppPort == "" {
		return errors.New("missing APP_PORT")
	}
	if c.ProofAttesterPubKey == "" {
		return errors.New("missing PROOF_ATTESTER_PUBKEY")
	}
	if c.ProofValidityHours <= 0 || c.ConsentWindowHours <= 0 {
		return errors.New("PROOF_VALIDITY_HOURS and CONSENT_WINDOW_HOURS must be positive")
	}
	return nil
}

func (c *Config) mysqlAddr() string { return net.JoinHostPort(c.MySQLHost, c.MySQLPort) }

func (c *Config) MySQLDSN() string {
	// multiStatements=true is handy for migrations; parseTime needed for DATETIME
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?multiStatements=true&parseTime=true&charset=utf8mb4,utf8",
		c.MySQLUser, c.MySQLPass, c.mysqlAddr(), c.MySQLDB)
}
