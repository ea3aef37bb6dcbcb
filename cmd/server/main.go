package main

import (
	analyticshandler "github.com/plamenbalkanski/meetup-scheduler/internal/analytics/handler"
	meetupshandler "github.com/plamenbalkanski/meetup-scheduler/internal/meetups/handler"
	meetupsrepo "github.com/plamenbalkanski/meetup-scheduler/internal/meetups/repository"
	meetupsservice "github.com/plamenbalkanski/meetup-scheduler/internal/meetups/service"
	meetupsvalidator "github.com/plamenbalkanski/meetup-scheduler/internal/meetups/validator"
	quotarepo "github.com/plamenbalkanski/meetup-scheduler/internal/quota/repository"
	quotaservice "github.com/plamenbalkanski/meetup-scheduler/internal/quota/service"
	responseshandler "github.com/plamenbalkanski/meetup-scheduler/internal/responses/handler"
	responsesrepo "github.com/plamenbalkanski/meetup-scheduler/internal/responses/repository"
	responsesservice "github.com/plamenbalkanski/meetup-scheduler/internal/responses/service"
	responsesvalidator "github.com/plamenbalkanski/meetup-scheduler/internal/responses/validator"
	"github.com/plamenbalkanski/meetup-scheduler/pkg/app"
	"github.com/plamenbalkanski/meetup-scheduler/pkg/config"
	"github.com/plamenbalkanski/meetup-scheduler/pkg/kafka"
	"github.com/plamenbalkanski/meetup-scheduler/pkg/mailer"
	"github.com/plamenbalkanski/meetup-scheduler/pkg/middleware"
)

func main() {
	cfg := config.Load("meetup-scheduler")
	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal("Invalid configuration", "error", err)
	}
	cfg.LogConfiguration()

	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	meetupRepo := meetupsrepo.NewMongoMeetupRepository(cfg)
	responseRepo := responsesrepo.NewMongoResponseRepository(cfg)
	rateLimitRepo := quotarepo.NewMongoRateLimitRepository(cfg)

	quotaSvc := quotaservice.NewQuotaService(cfg, rateLimitRepo)

	var sender mailer.Sender
	if cfg.SMTPHost != "" {
		sender = mailer.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPFrom)
	} else {
		cfg.Log.Warn("SMTP host not configured, email delivery disabled")
	}
	emailLimiter := middleware.NewEmailRateLimiter(cfg.ShareLimit, cfg.ShareWindow, cfg.Log)

	meetupSvc := meetupsservice.NewMeetupService(
		cfg,
		meetupRepo,
		responseRepo,
		meetupsvalidator.NewMeetupValidator(cfg.Log),
		quotaSvc,
		sender,
		emailLimiter,
	)
	responseSvc := responsesservice.NewResponseService(
		cfg,
		responseRepo,
		meetupRepo,
		responsesvalidator.NewResponseValidator(cfg.Log),
	)

	var producer *kafka.Producer
	if len(cfg.KafkaBrokers) > 0 {
		var err error
		producer, err = kafka.NewProducer(cfg.KafkaBrokers, cfg.KafkaAnalyticsTopic)
		if err != nil {
			cfg.Log.Fatal("Failed to create analytics producer", "error", err)
		}
		cfg.Log.Info("Analytics producer configured", "topic", cfg.KafkaAnalyticsTopic)
	} else {
		cfg.Log.Warn("Kafka brokers not configured, analytics events disabled")
	}

	application := app.NewApplication()
	application.SetApp(
		cfg,
		emailLimiter,
		producer,
		meetupshandler.NewMeetupHandler(meetupSvc, cfg.Log),
		responseshandler.NewResponseHandler(responseSvc, cfg.Log),
		analyticshandler.NewAnalyticsHandler(producer, cfg.Log),
	)
	application.Run()
}
