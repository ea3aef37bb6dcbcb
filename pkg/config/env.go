package config

const (
	EnvMongoURI          = "MONGO_URI"
	EnvMongoDatabaseName = "MONGO_DATABASE_NAME"
	EnvMongoConnTimeout  = "MONGO_CONN_TIMEOUT"

	EnvPort     = "PORT"
	EnvBaseURL  = "BASE_URL"
	EnvLogLevel = "LOG_LEVEL"

	EnvQuotaLimit         = "QUOTA_LIMIT"
	EnvQuotaPeriod        = "QUOTA_PERIOD"
	EnvQuotaExemptEmails  = "QUOTA_EXEMPT_EMAILS"
	EnvQuotaExemptDomains = "QUOTA_EXEMPT_DOMAINS"
	EnvPlan               = "PLAN"

	EnvResponsePolicy = "RESPONSE_POLICY"

	EnvSMTPHost        = "SMTP_HOST"
	EnvSMTPPort        = "SMTP_PORT"
	EnvSMTPFrom        = "SMTP_FROM"
	EnvShareLimit      = "SHARE_EMAIL_LIMIT"
	EnvShareWindow     = "SHARE_EMAIL_WINDOW"

	EnvKafkaBrokers        = "KAFKA_BROKERS"
	EnvKafkaAnalyticsTopic = "KAFKA_ANALYTICS_TOPIC"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"
)
