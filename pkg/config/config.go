package config

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/plamenbalkanski/meetup-scheduler/pkg/client"
	"github.com/plamenbalkanski/meetup-scheduler/pkg/logger"
)

// Quota period buckets. Monthly matches the canonical rate-limit policy;
// daily is kept as a deployment choice.
const (
	PeriodMonthly = "monthly"
	PeriodDaily   = "daily"
)

// What a repeat submission from the same participant name does.
const (
	ResponsePolicyAccumulate = "accumulate"
	ResponsePolicyReplace    = "replace"
)

type Config struct {
	MongoURI          string
	MongoDatabaseName string
	MongoConnTimeout  time.Duration

	Port    string
	BaseURL string

	QuotaLimit         int
	QuotaPeriod        string
	QuotaExemptEmails  []string
	QuotaExemptDomains []string
	Plan               Plan

	ResponsePolicy string

	SMTPHost    string
	SMTPPort    string
	SMTPFrom    string
	ShareLimit  int
	ShareWindow time.Duration

	KafkaBrokers        []string
	KafkaAnalyticsTopic string

	RequestTimeout time.Duration
	MaxRequestSize int

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	Log    *logger.Logger
	Client *client.Client
}

func Load(serviceName string) *Config {
	cfg := &Config{
		MongoURI:          getEnvStr(EnvMongoURI, DefaultMongoURI),
		MongoDatabaseName: getEnvStr(EnvMongoDatabaseName, DefaultMongoDatabaseName),
		MongoConnTimeout:  getEnvDuration(EnvMongoConnTimeout, DefaultMongoConnTimeout),

		Port:    getEnvStr(EnvPort, DefaultPort),
		BaseURL: strings.TrimRight(getEnvStr(EnvBaseURL, DefaultBaseURL), "/"),

		QuotaLimit:         getEnvNum(EnvQuotaLimit, DefaultQuotaLimit),
		QuotaPeriod:        getEnvStr(EnvQuotaPeriod, DefaultQuotaPeriod),
		QuotaExemptEmails:  getEnvList(EnvQuotaExemptEmails, nil),
		QuotaExemptDomains: getEnvList(EnvQuotaExemptDomains, nil),
		Plan:               Plan(getEnvStr(EnvPlan, string(DefaultPlan))),

		ResponsePolicy: getEnvStr(EnvResponsePolicy, DefaultResponsePolicy),

		SMTPHost:    getEnvStr(EnvSMTPHost, DefaultSMTPHost),
		SMTPPort:    getEnvStr(EnvSMTPPort, DefaultSMTPPort),
		SMTPFrom:    getEnvStr(EnvSMTPFrom, DefaultSMTPFrom),
		ShareLimit:  getEnvNum(EnvShareLimit, DefaultShareLimit),
		ShareWindow: getEnvDuration(EnvShareWindow, DefaultShareWindow),

		KafkaBrokers:        getEnvList(EnvKafkaBrokers, nil),
		KafkaAnalyticsTopic: getEnvStr(EnvKafkaAnalyticsTopic, DefaultKafkaAnalyticsTopic),

		RequestTimeout: getEnvDuration(EnvRequestTimeout, DefaultRequestTimeout),
		MaxRequestSize: getEnvNum(EnvMaxRequestSize, DefaultMaxRequestSize),

		ReadTimeout:     getEnvDuration(EnvReadTimeout, DefaultReadTimeout),
		WriteTimeout:    getEnvDuration(EnvWriteTimeout, DefaultWriteTimeout),
		IdleTimeout:     getEnvDuration(EnvIdleTimeout, DefaultIdleTimeout),
		ShutdownTimeout: getEnvDuration(EnvShutdownTimeout, DefaultShutdownTimeout),

		Log: logger.New(logger.Config{
			Level:     getEnvStr(EnvLogLevel, logger.INFO),
			Format:    logger.JSON,
			AddSource: true,
			Service:   serviceName,
		}),
		Client: client.NewClient(),
	}

	return cfg
}

func (cfg *Config) SetMongo() {
	cfg.Client.SetMongo(cfg.Log, cfg.MongoURI, cfg.MongoConnTimeout)
}

func (cfg *Config) Validate() error {
	var problems []string

	if port, err := strconv.Atoi(cfg.Port); err != nil || port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("Port must be between 1 and 65535, got: %s", cfg.Port))
	}

	if cfg.MongoURI == "" {
		problems = append(problems, "MongoURI cannot be empty")
	} else if !regexp.MustCompile(`^mongodb(\+srv)?://`).MatchString(cfg.MongoURI) {
		problems = append(problems, fmt.Sprintf("MongoURI must start with 'mongodb://' or 'mongodb+srv://', got: %s", cfg.MongoURI))
	}

	if cfg.MongoDatabaseName == "" {
		problems = append(problems, "MongoDatabaseName cannot be empty")
	}
	if cfg.MongoConnTimeout <= 0 {
		problems = append(problems, fmt.Sprintf("MongoConnTimeout must be positive, got: %s", cfg.MongoConnTimeout))
	}

	if cfg.QuotaLimit < 1 {
		problems = append(problems, fmt.Sprintf("QuotaLimit must be at least 1, got: %d", cfg.QuotaLimit))
	}
	if cfg.QuotaPeriod != PeriodMonthly && cfg.QuotaPeriod != PeriodDaily {
		problems = append(problems, fmt.Sprintf("QuotaPeriod must be %q or %q, got: %s", PeriodMonthly, PeriodDaily, cfg.QuotaPeriod))
	}
	if !cfg.Plan.Valid() {
		problems = append(problems, fmt.Sprintf("Plan must be %q or %q, got: %s", PlanFree, PlanPro, cfg.Plan))
	}

	if cfg.ResponsePolicy != ResponsePolicyAccumulate && cfg.ResponsePolicy != ResponsePolicyReplace {
		problems = append(problems, fmt.Sprintf("ResponsePolicy must be %q or %q, got: %s", ResponsePolicyAccumulate, ResponsePolicyReplace, cfg.ResponsePolicy))
	}

	if cfg.ShareLimit < 1 {
		problems = append(problems, fmt.Sprintf("ShareLimit must be at least 1, got: %d", cfg.ShareLimit))
	}
	if cfg.ShareWindow <= 0 {
		problems = append(problems, fmt.Sprintf("ShareWindow must be positive, got: %s", cfg.ShareWindow))
	}

	if cfg.RequestTimeout <= 0 {
		problems = append(problems, fmt.Sprintf("RequestTimeout must be positive, got: %s", cfg.RequestTimeout))
	}
	if cfg.MaxRequestSize <= 0 {
		problems = append(problems, fmt.Sprintf("MaxRequestSize must be positive, got: %d", cfg.MaxRequestSize))
	}
	if cfg.ShutdownTimeout <= 0 {
		problems = append(problems, fmt.Sprintf("ShutdownTimeout must be positive, got: %s", cfg.ShutdownTimeout))
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

func (cfg *Config) LogConfiguration() {
	cfg.Log.Info("Configuration loaded",
		"mongo_database", cfg.MongoDatabaseName,
		"port", cfg.Port,
		"base_url", cfg.BaseURL,
		"quota_limit", cfg.QuotaLimit,
		"quota_period", cfg.QuotaPeriod,
		"quota_exempt_emails", len(cfg.QuotaExemptEmails),
		"quota_exempt_domains", len(cfg.QuotaExemptDomains),
		"plan", cfg.Plan,
		"response_policy", cfg.ResponsePolicy,
		"smtp_host", cfg.SMTPHost,
		"share_limit", cfg.ShareLimit,
		"share_window", cfg.ShareWindow,
		"kafka_brokers", len(cfg.KafkaBrokers),
		"request_timeout", cfg.RequestTimeout,
		"max_request_size", cfg.MaxRequestSize,
	)
}
