package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	BackendAirtable = "airtable"
	BackendPostgres = "postgres"

	FAQScopeGlobal = "global"
	FAQScopeTenant = "tenant"
)

type Config struct {
	LogLevel    string
	ServiceName string
	Environment string
	Port        string

	OpenAIAPIKeys []string
	OpenAIModel   string
	OpenAIBaseURL string
	OpenAITimeout time.Duration

	StoreBackend         string
	AirtableAPIKey       string
	AirtableBaseID       string
	AirtableGlobalBaseID string
	AirtableRPS          float64
	DatabaseURL          string

	DefaultSlug          string
	FAQScope             string
	FactsDirect          bool
	InstructorGroupSlugs []string

	AdminToken       string
	ElasticAddresses []string
	FAQIndex         string
	FAQSyncInterval  time.Duration
	RedisURL         string

	AllowedOrigins []string
}

func LoadConfig() (*Config, error) {
	openAIKeys := splitList(os.Getenv("OPENAI_API_KEY"))
	if len(openAIKeys) == 0 {
		return nil, errors.New("OPENAI_API_KEY is required")
	}

	storeBackend := strings.ToLower(os.Getenv("STORE_BACKEND"))
	if storeBackend == "" {
		storeBackend = BackendAirtable
	}
	if storeBackend != BackendAirtable && storeBackend != BackendPostgres {
		return nil, errors.New("STORE_BACKEND must be airtable or postgres")
	}

	airtableAPIKey := os.Getenv("AIRTABLE_API_KEY")
	airtableBaseID := os.Getenv("AIRTABLE_BASE_ID")
	databaseURL := os.Getenv("DATABASE_URL")
	switch storeBackend {
	case BackendAirtable:
		if airtableAPIKey == "" {
			return nil, errors.New("AIRTABLE_API_KEY is required")
		}
		if airtableBaseID == "" {
			return nil, errors.New("AIRTABLE_BASE_ID is required")
		}
	case BackendPostgres:
		if databaseURL == "" {
			return nil, errors.New("DATABASE_URL is required when STORE_BACKEND=postgres")
		}
	}

	openAIModel := os.Getenv("OPENAI_MODEL")
	if openAIModel == "" {
		openAIModel = "gpt-4o-mini"
	}

	openAITimeout := 20 * time.Second
	if ms := os.Getenv("OPENAI_TIMEOUT_MS"); ms != "" {
		if parsed, err := strconv.Atoi(ms); err == nil && parsed > 0 {
			openAITimeout = time.Duration(parsed) * time.Millisecond
		}
	}

	airtableRPS := 5.0
	if rps := os.Getenv("AIRTABLE_RPS"); rps != "" {
		if parsed, err := strconv.ParseFloat(rps, 64); err == nil && parsed > 0 {
			airtableRPS = parsed
		}
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}

	serviceName := os.Getenv("SERVICE_NAME")
	if serviceName == "" {
		serviceName = "autoskola-bot"
	}

	environment := os.Getenv("ENVIRONMENT")
	if environment == "" {
		environment = "development"
	}

	defaultSlug := os.Getenv("DEFAULT_SLUG")
	if defaultSlug == "" {
		defaultSlug = "default"
	}

	faqScope := strings.ToLower(os.Getenv("FAQ_SCOPE"))
	if faqScope != FAQScopeTenant {
		faqScope = FAQScopeGlobal
	}

	factsDirect := true
	if fd := os.Getenv("FACTS_DIRECT"); fd != "" {
		if parsed, err := strconv.ParseBool(fd); err == nil {
			factsDirect = parsed
		}
	}

	faqIndex := os.Getenv("FAQ_INDEX")
	if faqIndex == "" {
		faqIndex = "autoskola-faq"
	}

	var syncInterval time.Duration
	if si := os.Getenv("FAQ_SYNC_INTERVAL"); si != "" {
		if parsed, err := time.ParseDuration(si); err == nil {
			syncInterval = parsed
		}
	}

	allowedOrigins := []string{"*"}
	if ao := splitList(os.Getenv("ALLOWED_ORIGINS")); len(ao) > 0 {
		allowedOrigins = ao
	}

	return &Config{
		LogLevel:             logLevel,
		ServiceName:          serviceName,
		Environment:          environment,
		Port:                 port,
		OpenAIAPIKeys:        openAIKeys,
		OpenAIModel:          openAIModel,
		OpenAIBaseURL:        os.Getenv("OPENAI_BASE_URL"),
		OpenAITimeout:        openAITimeout,
		StoreBackend:         storeBackend,
		AirtableAPIKey:       airtableAPIKey,
		AirtableBaseID:       airtableBaseID,
		AirtableGlobalBaseID: os.Getenv("AIRTABLE_GLOBAL_BASE_ID"),
		AirtableRPS:          airtableRPS,
		DatabaseURL:          databaseURL,
		DefaultSlug:          defaultSlug,
		FAQScope:             faqScope,
		FactsDirect:          factsDirect,
		InstructorGroupSlugs: splitList(os.Getenv("INSTRUCTOR_GROUP_SLUGS")),
		AdminToken:           os.Getenv("ADMIN_TOKEN"),
		ElasticAddresses:     splitList(os.Getenv("ELASTICSEARCH_URL")),
		FAQIndex:             faqIndex,
		FAQSyncInterval:      syncInterval,
		RedisURL:             os.Getenv("REDIS_URL"),
		AllowedOrigins:       allowedOrigins,
	}, nil
}

// splitList parses a comma-separated env value, dropping blanks.
func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
