package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type StoreDriver string

const (
	StoreSupabase StoreDriver = "supabase"
	StorePostgres StoreDriver = "postgres"
	StoreMemory   StoreDriver = "memory"
)

type Config struct {
	Port string

	StoreDriver     StoreDriver
	SupabaseURL     string
	SupabaseKey     string
	SupabaseTimeout time.Duration
	DatabaseURL     string
	DBAutoMigrate   bool

	ZAPIInstance    string
	ZAPIToken       string
	ZAPIBaseURL     string
	ZAPIClientToken string
	ZAPITimeout     time.Duration

	WebhookReuseLead bool
	FormRateLimit    int
	AllowedOrigins   []string

	RabbitMQURL string

	MailHost    string
	MailPort    int
	MailUser    string
	MailPass    string
	MailFrom    string
	NotifyEmail string
}

func getEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getBoolEnv(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if v == "1" || v == "true" || v == "TRUE" {
		return true
	}
	return false
}

func getIntEnv(key string, def int) int {
	v, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return def
	}
	return v
}

// getDurationEnv aceita "10s" ou um número puro de segundos.
func getDurationEnv(key string, def time.Duration) time.Duration {
	v := getEnv(key, "")
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second
	}
	return def
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

// Load lê as variáveis de ambiente. O .env já deve ter sido carregado pelo main.
func Load() *Config {
	return &Config{
		Port: getEnv("PORT", "8001"),

		StoreDriver:     StoreDriver(strings.ToLower(getEnv("STORE_DRIVER", string(StoreSupabase)))),
		SupabaseURL:     getEnv("SUPABASE_URL", ""),
		SupabaseKey:     getEnv("SUPABASE_KEY", ""),
		SupabaseTimeout: getDurationEnv("SUPABASE_TIMEOUT", 0),
		DatabaseURL:     getEnv("DATABASE_URL", ""),
		DBAutoMigrate:   getBoolEnv("DB_AUTO_MIGRATE", false),

		ZAPIInstance:    getEnv("ZAPI_INSTANCE", ""),
		ZAPIToken:       getEnv("ZAPI_TOKEN", ""),
		ZAPIBaseURL:     getEnv("ZAPI_BASE_URL", "https://api.z-api.io"),
		ZAPIClientToken: getEnv("ZAPI_CLIENT_TOKEN", ""),
		ZAPITimeout:     getDurationEnv("ZAPI_TIMEOUT", 0),

		WebhookReuseLead: getBoolEnv("WEBHOOK_REUSE_LEAD", false),
		FormRateLimit:    getIntEnv("FORM_RATE_LIMIT", 30),
		AllowedOrigins:   splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),

		RabbitMQURL: getEnv("RABBITMQ_URL", ""),

		MailHost:    getEnv("MAIL_HOST", ""),
		MailPort:    getIntEnv("MAIL_PORT", 587),
		MailUser:    getEnv("MAIL_USER", ""),
		MailPass:    getEnv("MAIL_PASS", ""),
		MailFrom:    getEnv("MAIL_FROM", getEnv("MAIL_USER", "")),
		NotifyEmail: getEnv("NOTIFY_EMAIL", ""),
	}
}

// Validate confere se o store escolhido tem as credenciais necessárias.
// Z-API sem credencial não é fatal: cada envio falha na própria requisição.
func (c *Config) Validate() error {
	switch c.StoreDriver {
	case StoreSupabase:
		if c.SupabaseURL == "" || c.SupabaseKey == "" {
			return fmt.Errorf("STORE_DRIVER=supabase exige SUPABASE_URL e SUPABASE_KEY")
		}
	case StorePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("STORE_DRIVER=postgres exige DATABASE_URL")
		}
	case StoreMemory:
	default:
		return fmt.Errorf("STORE_DRIVER inválido: %q", c.StoreDriver)
	}
	if c.FormRateLimit < 0 {
		return fmt.Errorf("FORM_RATE_LIMIT não pode ser negativo")
	}
	return nil
}

func (c *Config) ZAPIConfigured() bool {
	return c.ZAPIInstance != "" && c.ZAPIToken != ""
}

// MailConfigured indica se o worker de notificação por e-mail deve rodar.
func (c *Config) MailConfigured() bool {
	return c.MailHost != "" && c.NotifyEmail != ""
}

// Status descreve cada credencial como "set" ou "missing", sem expor valores.
func (c *Config) Status() map[string]string {
	mark := func(v string) string {
		if v == "" {
			return "missing"
		}
		return "set"
	}
	return map[string]string{
		"SUPABASE_URL":  mark(c.SupabaseURL),
		"SUPABASE_KEY":  mark(c.SupabaseKey),
		"DATABASE_URL":  mark(c.DatabaseURL),
		"ZAPI_INSTANCE": mark(c.ZAPIInstance),
		"ZAPI_TOKEN":    mark(c.ZAPIToken),
		"RABBITMQ_URL":  mark(c.RabbitMQURL),
		"MAIL_HOST":     mark(c.MailHost),
	}
}
