package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "meetup_scheduler"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort    = "8080"
	DefaultBaseURL = "http://localhost:8080"

	DefaultQuotaLimit  = 3
	DefaultQuotaPeriod = PeriodMonthly
	DefaultPlan        = PlanFree

	DefaultResponsePolicy = ResponsePolicyAccumulate

	DefaultSMTPHost    = "localhost"
	DefaultSMTPPort    = "1025"
	DefaultSMTPFrom    = "meetup@meetwhen.app"
	DefaultShareLimit  = 9
	DefaultShareWindow = 1 * time.Hour

	DefaultKafkaAnalyticsTopic = "meetup.analytics"

	DefaultRequestTimeout = 30 * time.Second
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second
)
