package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/plamenbalkanski/meetup-scheduler/pkg/config"
	"github.com/plamenbalkanski/meetup-scheduler/pkg/model"
)

type mockRateLimitRepository struct {
	findFunc      func(ctx context.Context, identifier, identifierType string, month, year int) (*model.RateLimitCounter, error)
	incrementFunc func(ctx context.Context, identifier, identifierType string, month, year int) error
}

func (m *mockRateLimitRepository) Find(ctx context.Context, identifier, identifierType string, month, year int) (*model.RateLimitCounter, error) {
	if m.findFunc != nil {
		return m.findFunc(ctx, identifier, identifierType, month, year)
	}
	return nil, nil
}

func (m *mockRateLimitRepository) Increment(ctx context.Context, identifier, identifierType string, month, year int) error {
	if m.incrementFunc != nil {
		return m.incrementFunc(ctx, identifier, identifierType, month, year)
	}
	return nil
}

func (m *mockRateLimitRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	return 0, nil
}

func testConfig() *config.Config {
	return &config.Config{
		QuotaLimit:  3,
		QuotaPeriod: config.PeriodMonthly,
		Plan:        config.PlanFree,
	}
}

func newTestService(cfg *config.Config, repo *mockRateLimitRepository) *quotaService {
	svc := NewQuotaService(cfg, repo).(*quotaService)
	svc.now = func() time.Time {
		return time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)
	}
	return svc
}

func TestShouldBlock_UnderLimit(t *testing.T) {
	repo := &mockRateLimitRepository{
		findFunc: func(ctx context.Context, identifier, identifierType string, month, year int) (*model.RateLimitCounter, error) {
			return &model.RateLimitCounter{Count: 2}, nil
		},
	}
	svc := newTestService(testConfig(), repo)

	blocked, err := svc.ShouldBlock(context.Background(), "alice@example.com", "203.0.113.7")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if blocked {
		t.Error("expected creation under limit to be allowed")
	}
}

func TestShouldBlock_EmailAtLimit(t *testing.T) {
	repo := &mockRateLimitRepository{
		findFunc: func(ctx context.Context, identifier, identifierType string, month, year int) (*model.RateLimitCounter, error) {
			if identifierType == model.IdentifierEmail {
				return &model.RateLimitCounter{Count: 3}, nil
			}
			return nil, nil
		},
	}
	svc := newTestService(testConfig(), repo)

	blocked, err := svc.ShouldBlock(context.Background(), "alice@example.com", "203.0.113.7")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !blocked {
		t.Error("expected email at limit to block")
	}
}

func TestShouldBlock_IPAtLimit(t *testing.T) {
	repo := &mockRateLimitRepository{
		findFunc: func(ctx context.Context, identifier, identifierType string, month, year int) (*model.RateLimitCounter, error) {
			if identifierType == model.IdentifierIP {
				return &model.RateLimitCounter{Count: 5}, nil
			}
			return nil, nil
		},
	}
	svc := newTestService(testConfig(), repo)

	blocked, err := svc.ShouldBlock(context.Background(), "fresh@example.com", "203.0.113.7")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !blocked {
		t.Error("expected ip at limit to block even with a fresh email")
	}
}

func TestShouldBlock_NoCounterYet(t *testing.T) {
	repo := &mockRateLimitRepository{}
	svc := newTestService(testConfig(), repo)

	blocked, err := svc.ShouldBlock(context.Background(), "alice@example.com", "203.0.113.7")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if blocked {
		t.Error("expected first creation of the period to be allowed")
	}
}

func TestShouldBlock_ExemptEmail(t *testing.T) {
	cfg := testConfig()
	cfg.QuotaExemptEmails = []string{"VIP@Example.com"}
	repo := &mockRateLimitRepository{
		findFunc: func(ctx context.Context, identifier, identifierType string, month, year int) (*model.RateLimitCounter, error) {
			return &model.RateLimitCounter{Count: 99}, nil
		},
	}
	svc := newTestService(cfg, repo)

	blocked, err := svc.ShouldBlock(context.Background(), "vip@example.com", "203.0.113.7")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if blocked {
		t.Error("expected exempt email to bypass the limit")
	}
}

func TestShouldBlock_ExemptDomain(t *testing.T) {
	cfg := testConfig()
	cfg.QuotaExemptDomains = []string{"partner.org"}
	repo := &mockRateLimitRepository{
		findFunc: func(ctx context.Context, identifier, identifierType string, month, year int) (*model.RateLimitCounter, error) {
			return &model.RateLimitCounter{Count: 99}, nil
		},
	}
	svc := newTestService(cfg, repo)

	blocked, err := svc.ShouldBlock(context.Background(), "anyone@partner.org", "203.0.113.7")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if blocked {
		t.Error("expected exempt domain to bypass the limit")
	}
}

func TestShouldBlock_UnlimitedPlan(t *testing.T) {
	cfg := testConfig()
	cfg.Plan = config.PlanPro

	var lookups int
	repo := &mockRateLimitRepository{
		findFunc: func(ctx context.Context, identifier, identifierType string, month, year int) (*model.RateLimitCounter, error) {
			lookups++
			return &model.RateLimitCounter{Count: 99}, nil
		},
	}
	svc := newTestService(cfg, repo)

	blocked, err := svc.ShouldBlock(context.Background(), "alice@example.com", "203.0.113.7")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if blocked {
		t.Error("expected unlimited plan to never block")
	}
	if lookups != 0 {
		t.Errorf("expected no counter lookups on unlimited plan, got %d", lookups)
	}
}

func TestShouldBlock_RepositoryError(t *testing.T) {
	repoErr := errors.New("connection reset")
	repo := &mockRateLimitRepository{
		findFunc: func(ctx context.Context, identifier, identifierType string, month, year int) (*model.RateLimitCounter, error) {
			return nil, repoErr
		},
	}
	svc := newTestService(testConfig(), repo)

	if _, err := svc.ShouldBlock(context.Background(), "alice@example.com", "203.0.113.7"); !errors.Is(err, repoErr) {
		t.Errorf("expected repository error to propagate, got %v", err)
	}
}

func TestShouldBlock_MonthlyPeriodKey(t *testing.T) {
	var gotMonth, gotYear int
	repo := &mockRateLimitRepository{
		findFunc: func(ctx context.Context, identifier, identifierType string, month, year int) (*model.RateLimitCounter, error) {
			gotMonth, gotYear = month, year
			return nil, nil
		},
	}
	svc := newTestService(testConfig(), repo)

	if _, err := svc.ShouldBlock(context.Background(), "alice@example.com", "203.0.113.7"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotMonth != 3 || gotYear != 2024 {
		t.Errorf("expected period (3, 2024), got (%d, %d)", gotMonth, gotYear)
	}
}

func TestShouldBlock_DailyPeriodKey(t *testing.T) {
	cfg := testConfig()
	cfg.QuotaPeriod = config.PeriodDaily

	var gotMonth int
	repo := &mockRateLimitRepository{
		findFunc: func(ctx context.Context, identifier, identifierType string, month, year int) (*model.RateLimitCounter, error) {
			gotMonth = month
			return nil, nil
		},
	}
	svc := newTestService(cfg, repo)

	if _, err := svc.ShouldBlock(context.Background(), "alice@example.com", "203.0.113.7"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 2024-03-15 is day 75 of a leap year.
	if gotMonth != 75 {
		t.Errorf("expected day-of-year bucket 75, got %d", gotMonth)
	}
}

func TestRecord_IncrementsBothIdentifiers(t *testing.T) {
	var increments []string
	repo := &mockRateLimitRepository{
		incrementFunc: func(ctx context.Context, identifier, identifierType string, month, year int) error {
			increments = append(increments, identifierType+":"+identifier)
			return nil
		},
	}
	svc := newTestService(testConfig(), repo)

	if err := svc.Record(context.Background(), "Alice@Example.COM", "203.0.113.7"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(increments) != 2 {
		t.Fatalf("expected 2 increments, got %d", len(increments))
	}
	if increments[0] != "email:alice@example.com" {
		t.Errorf("expected normalized email increment first, got %s", increments[0])
	}
	if increments[1] != "ip:203.0.113.7" {
		t.Errorf("expected ip increment second, got %s", increments[1])
	}
}

func TestRecord_SkipsEmptyIP(t *testing.T) {
	var increments int
	repo := &mockRateLimitRepository{
		incrementFunc: func(ctx context.Context, identifier, identifierType string, month, year int) error {
			increments++
			return nil
		},
	}
	svc := newTestService(testConfig(), repo)

	if err := svc.Record(context.Background(), "alice@example.com", ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if increments != 1 {
		t.Errorf("expected 1 increment when ip is unknown, got %d", increments)
	}
}

func TestRecord_ExemptEmailStillRecorded(t *testing.T) {
	cfg := testConfig()
	cfg.QuotaExemptEmails = []string{"vip@example.com"}

	var increments int
	repo := &mockRateLimitRepository{
		incrementFunc: func(ctx context.Context, identifier, identifierType string, month, year int) error {
			increments++
			return nil
		},
	}
	svc := newTestService(cfg, repo)

	if err := svc.Record(context.Background(), "vip@example.com", "203.0.113.7"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if increments != 2 {
		t.Errorf("expected exempt usage to still be recorded, got %d increments", increments)
	}
}
