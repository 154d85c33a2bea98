package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/SscSPs/coop_savings_ledger/internal/core/domain"
	portssvc "github.com/SscSPs/coop_savings_ledger/internal/core/ports/services"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

const defaultJWTSecret = "a-very-secret-key-should-be-longer-and-random"

// Storage drivers.
const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL        string
	Port               string
	IsProduction       bool
	EnableDBCheck      bool
	StorageDriver      string
	MigrationsPath     string
	DBStatementTimeout time.Duration

	JWTSecret string
	JWTIssuer string

	// Ledger rules
	UnitPrice         decimal.Decimal
	MinBalanceForLoan decimal.Decimal
	RepaymentPolicy   domain.RepaymentPolicy
	HistoryMode       portssvc.HistoryMode

	// SeedMembers preloads the in-memory member directory, as "id:role" pairs
	// separated by commas. Empty disables identity checks for the memory driver.
	SeedMembers []domain.Member

	RateLimit          string // ulule/limiter formatted rate, e.g. "100-M"
	RedisURL           string
	AMQPURL            string
	AMQPExchange       string
	CORSAllowedOrigins []string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("STORAGE_DRIVER", StoragePostgres)
	viper.SetDefault("MIGRATIONS_PATH", "file://migrations")
	viper.SetDefault("DB_STATEMENT_TIMEOUT", "5s")
	viper.SetDefault("JWT_SECRET", defaultJWTSecret)
	viper.SetDefault("JWT_ISSUER", "coop-savings-ledger")
	viper.SetDefault("UNIT_PRICE", "2500")
	viper.SetDefault("MIN_BALANCE_FOR_LOAN", "2000")
	viper.SetDefault("REPAYMENT_RECORD_POLICY", string(domain.RepaymentAccumulate))
	viper.SetDefault("HISTORY_MODE", string(portssvc.HistoryBestEffort))
	viper.SetDefault("SEED_MEMBERS", "")
	viper.SetDefault("RATE_LIMIT", "100-M")
	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("AMQP_URL", "")
	viper.SetDefault("AMQP_EXCHANGE", "ledger_events")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "*")

	viper.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:    viper.GetString("PGSQL_URL"),
		Port:           viper.GetString("PORT"),
		IsProduction:   viper.GetBool("IS_PRODUCTION"),
		EnableDBCheck:  viper.GetBool("ENABLE_DB_CHECK"),
		StorageDriver:  strings.ToLower(viper.GetString("STORAGE_DRIVER")),
		MigrationsPath: viper.GetString("MIGRATIONS_PATH"),
		JWTSecret:      viper.GetString("JWT_SECRET"),
		JWTIssuer:      viper.GetString("JWT_ISSUER"),
		RateLimit:      viper.GetString("RATE_LIMIT"),
		RedisURL:       viper.GetString("REDIS_URL"),
		AMQPURL:        viper.GetString("AMQP_URL"),
		AMQPExchange:   viper.GetString("AMQP_EXCHANGE"),
	}

	switch cfg.StorageDriver {
	case StoragePostgres:
		if cfg.DatabaseURL == "" {
			log.Println("Warning: PGSQL_URL environment variable not set.")
		}
	case StorageMemory:
		log.Println("Warning: STORAGE_DRIVER=memory, ledger state will not survive a restart.")
	default:
		return nil, fmt.Errorf("invalid STORAGE_DRIVER %q: want %q or %q", cfg.StorageDriver, StoragePostgres, StorageMemory)
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	if cfg.JWTSecret == "" || cfg.JWTSecret == defaultJWTSecret {
		cfg.JWTSecret = defaultJWTSecret // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	timeout, err := time.ParseDuration(viper.GetString("DB_STATEMENT_TIMEOUT"))
	if err != nil || timeout < 0 {
		timeout = 5 * time.Second
		log.Printf("Warning: Invalid value for DB_STATEMENT_TIMEOUT. Defaulting to %s.\n", timeout)
	}
	cfg.DBStatementTimeout = timeout

	if cfg.UnitPrice, err = positiveWholeAmount("UNIT_PRICE"); err != nil {
		return nil, err
	}
	if cfg.MinBalanceForLoan, err = positiveWholeAmount("MIN_BALANCE_FOR_LOAN"); err != nil {
		return nil, err
	}

	cfg.RepaymentPolicy = domain.RepaymentPolicy(strings.ToLower(viper.GetString("REPAYMENT_RECORD_POLICY")))
	if !cfg.RepaymentPolicy.Valid() {
		return nil, fmt.Errorf("invalid REPAYMENT_RECORD_POLICY %q", cfg.RepaymentPolicy)
	}

	cfg.HistoryMode = portssvc.HistoryMode(strings.ToLower(viper.GetString("HISTORY_MODE")))
	if cfg.HistoryMode != portssvc.HistoryBestEffort && cfg.HistoryMode != portssvc.HistoryTransactional {
		return nil, fmt.Errorf("invalid HISTORY_MODE %q", cfg.HistoryMode)
	}

	if cfg.SeedMembers, err = parseMembers(viper.GetString("SEED_MEMBERS")); err != nil {
		return nil, err
	}

	cfg.CORSAllowedOrigins = splitList(viper.GetString("CORS_ALLOWED_ORIGINS"))

	if cfg.AMQPURL == "" {
		log.Println("Warning: AMQP_URL not set. History events will not be published.")
	}

	return cfg, nil
}

func positiveWholeAmount(key string) (decimal.Decimal, error) {
	raw := viper.GetString(key)
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil || !d.IsPositive() || !d.IsInteger() {
		return decimal.Zero, fmt.Errorf("invalid %s %q: must be a positive whole number", key, raw)
	}
	return d, nil
}

func parseMembers(raw string) ([]domain.Member, error) {
	var members []domain.Member
	for _, pair := range splitList(raw) {
		id, role, found := strings.Cut(pair, ":")
		if !found {
			role = string(domain.RoleMember)
		}
		r := domain.Role(strings.ToLower(strings.TrimSpace(role)))
		if r != domain.RoleAdmin && r != domain.RoleMember {
			return nil, fmt.Errorf("invalid SEED_MEMBERS entry %q: unknown role", pair)
		}
		members = append(members, domain.Member{
			MemberID: strings.TrimSpace(id),
			Role:     r,
			Status:   domain.MemberActive,
		})
	}
	return members, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
