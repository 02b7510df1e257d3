package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Audit sink backends.
const (
	AuditSinkMemory   = "memory"
	AuditSinkPostgres = "postgres"
	AuditSinkKafka    = "kafka"
)

// Config captures everything the server needs at startup.
type Config struct {
	Server      Server
	Upstream    Upstream
	Engine      Engine
	Audit       Audit
	Cache       Cache
	LogLevel    string
	LogFormat   string
	ServiceName string
}

// Server captures HTTP server level configuration.
type Server struct {
	Addr            string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

// Credentials is a client-credentials OAuth pair.
type Credentials struct {
	ClientID     string
	ClientSecret string
}

// Upstream locates the CRM and invoice (CES) gateways.
type Upstream struct {
	GatewayURL    string
	CESGatewayURL string
	CRM           Credentials
	CES           Credentials
	Timeout       time.Duration
}

// Engine holds the adjudication thresholds.
type Engine struct {
	HoldWindow      time.Duration
	MaxClaimAgeDays int
	Workers         int
	Mode            string
}

// Audit selects where audit events go.
type Audit struct {
	Sink          string
	DatabaseURL   string
	KafkaBrokers  []string
	Topic         string
	RelayInterval time.Duration
}

// Cache configures the optional Redis read-through cache in front of the CRM.
// An empty URL disables caching.
type Cache struct {
	URL          string
	TTL          time.Duration
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// FromEnv builds a Config from environment variables so main stays lean.
// A .env file in the working directory is loaded first when present; real
// environment variables win over it.
//
// Errors: a malformed numeric or duration variable, or a selected audit
// backend with no connection settings.
func FromEnv() (Config, error) {
	_ = godotenv.Load()

	var p parser
	gateway := strings.TrimRight(os.Getenv("GATEWAY_URL"), "/")
	crm := Credentials{
		ClientID:     os.Getenv("CLIENT_ID"),
		ClientSecret: os.Getenv("CLIENT_SECRET"),
	}

	cfg := Config{
		Server: Server{
			Addr:            envOr("SOTCREDIT_ADDR", ":8080"),
			RequestTimeout:  p.duration("REQUEST_TIMEOUT", 60*time.Second),
			ShutdownTimeout: p.duration("SHUTDOWN_TIMEOUT", 15*time.Second),
		},
		Upstream: Upstream{
			GatewayURL:    gateway,
			CESGatewayURL: strings.TrimRight(envOr("CES_GATEWAY_URL", gateway), "/"),
			CRM:           crm,
			CES: Credentials{
				ClientID:     envOr("CES_CLIENT_ID", crm.ClientID),
				ClientSecret: envOr("CES_CLIENT_SECRET", crm.ClientSecret),
			},
			Timeout: p.duration("UPSTREAM_TIMEOUT", 30*time.Second),
		},
		Engine: Engine{
			HoldWindow:      p.duration("HOLD_WINDOW", 24*time.Hour),
			MaxClaimAgeDays: p.int("MAX_CLAIM_AGE_DAYS", 14),
			Workers:         p.int("ADJUDICATION_WORKERS", 4),
			Mode:            envOr("ADJUDICATION_MODE", "fail_fast"),
		},
		Audit: Audit{
			Sink:          strings.ToLower(envOr("AUDIT_SINK", AuditSinkMemory)),
			DatabaseURL:   os.Getenv("DATABASE_URL"),
			KafkaBrokers:  splitList(os.Getenv("KAFKA_BROKERS")),
			Topic:         envOr("AUDIT_TOPIC", "sotcredit.audit"),
			RelayInterval: p.duration("AUDIT_RELAY_INTERVAL", 2*time.Second),
		},
		Cache: Cache{
			URL:          os.Getenv("REDIS_URL"),
			TTL:          p.duration("CRM_CACHE_TTL", 10*time.Minute),
			PoolSize:     p.int("REDIS_POOL_SIZE", 10),
			MinIdleConns: p.int("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  p.duration("REDIS_DIAL_TIMEOUT", 2*time.Second),
			ReadTimeout:  p.duration("REDIS_READ_TIMEOUT", 500*time.Millisecond),
			WriteTimeout: p.duration("REDIS_WRITE_TIMEOUT", 500*time.Millisecond),
		},
		LogLevel:    envOr("LOG_LEVEL", "info"),
		LogFormat:   envOr("LOG_FORMAT", "json"),
		ServiceName: envOr("SERVICE_NAME", "sotcredit"),
	}
	if p.err != nil {
		return Config{}, p.err
	}
	if err := cfg.Audit.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (a Audit) validate() error {
	switch a.Sink {
	case AuditSinkMemory:
		return nil
	case AuditSinkPostgres:
		if a.DatabaseURL == "" {
			return fmt.Errorf("AUDIT_SINK=%s requires DATABASE_URL", a.Sink)
		}
		return nil
	case AuditSinkKafka:
		if a.DatabaseURL == "" || len(a.KafkaBrokers) == 0 {
			return fmt.Errorf("AUDIT_SINK=%s requires DATABASE_URL and KAFKA_BROKERS", a.Sink)
		}
		return nil
	default:
		return fmt.Errorf("unknown AUDIT_SINK %q", a.Sink)
	}
}

// parser keeps the first conversion error so FromEnv can report it once.
type parser struct {
	err error
}

func (p *parser) int(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil && p.err == nil {
		p.err = fmt.Errorf("%s: %w", key, err)
	}
	return n
}

func (p *parser) duration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil && p.err == nil {
		p.err = fmt.Errorf("%s: %w", key, err)
	}
	return d
}

func envOr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
