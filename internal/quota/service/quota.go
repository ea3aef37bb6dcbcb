package service

import (
	"context"
	"time"

	"github.com/plamenbalkanski/meetup-scheduler/internal/quota/repository"
	"github.com/plamenbalkanski/meetup-scheduler/pkg/config"
	"github.com/plamenbalkanski/meetup-scheduler/pkg/model"
	"github.com/plamenbalkanski/meetup-scheduler/pkg/sanitizer"
)

// QuotaService gates meetup creation on per-period usage counters.
type QuotaService interface {
	// ShouldBlock reports whether a creation by this email/IP pair would
	// exceed the configured limit for the current period.
	ShouldBlock(ctx context.Context, email, ip string) (bool, error)
	// Record bumps the counters for both identifiers. Call it inside the
	// same transaction that persists the meetup.
	Record(ctx context.Context, email, ip string) error
}

type quotaService struct {
	cfg  *config.Config
	repo repository.RateLimitRepository
	now  func() time.Time
}

func NewQuotaService(cfg *config.Config, repo repository.RateLimitRepository) QuotaService {
	return &quotaService{
		cfg:  cfg,
		repo: repo,
		now:  time.Now,
	}
}

// periodKey buckets the current instant into the configured quota period.
// Daily deployments reuse the month field for the day of year, so the same
// unique index covers both layouts.
func (s *quotaService) periodKey() (month, year int) {
	t := s.now().UTC()
	if s.cfg.QuotaPeriod == config.PeriodDaily {
		return t.YearDay(), t.Year()
	}
	return int(t.Month()), t.Year()
}

func (s *quotaService) exempt(email string) bool {
	email = sanitizer.NormalizeEmail(email)
	for _, e := range s.cfg.QuotaExemptEmails {
		if sanitizer.NormalizeEmail(e) == email {
			return true
		}
	}
	domain := sanitizer.EmailDomain(email)
	for _, d := range s.cfg.QuotaExemptDomains {
		if sanitizer.NormalizeEmail(d) == domain {
			return true
		}
	}
	return false
}

func (s *quotaService) ShouldBlock(ctx context.Context, email, ip string) (bool, error) {
	if s.cfg.Plan.HasFeature(config.FeatureUnlimitedMeetups) {
		return false, nil
	}
	if s.exempt(email) {
		return false, nil
	}

	month, year := s.periodKey()

	identifiers := []struct {
		value string
		kind  string
	}{
		{sanitizer.NormalizeEmail(email), model.IdentifierEmail},
		{ip, model.IdentifierIP},
	}

	for _, id := range identifiers {
		if id.value == "" {
			continue
		}
		counter, err := s.repo.Find(ctx, id.value, id.kind, month, year)
		if err != nil {
			return false, err
		}
		if counter != nil && counter.Count >= s.cfg.QuotaLimit {
			return true, nil
		}
	}
	return false, nil
}

// Record increments counters even for exempt identifiers, so usage stays
// visible if an exemption is later removed.
func (s *quotaService) Record(ctx context.Context, email, ip string) error {
	month, year := s.periodKey()

	if email = sanitizer.NormalizeEmail(email); email != "" {
		if err := s.repo.Increment(ctx, email, model.IdentifierEmail, month, year); err != nil {
			return err
		}
	}
	if ip != "" {
		if err := s.repo.Increment(ctx, ip, model.IdentifierIP, month, year); err != nil {
			return err
		}
	}
	return nil
}
