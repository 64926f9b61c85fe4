package jobs

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labaid/labaid-api/internal/domain"
	"github.com/labaid/labaid-api/internal/mailer"
	"github.com/labaid/labaid-api/internal/metrics"
	"github.com/labaid/labaid-api/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

func TestScheduler_AddAndRemove(t *testing.T) {
	s := NewScheduler(zap.NewNop(), time.Second)
	noop := func(context.Context) error { return nil }

	require.NoError(t, s.AddJob("b", "@every 1h", noop))
	require.NoError(t, s.AddJob("a", "0 0 7 * * *", noop))
	assert.Error(t, s.AddJob("a", "@every 1h", noop))
	assert.Error(t, s.AddJob("bad", "not a cron", noop))
	assert.Equal(t, []string{"a", "b"}, s.JobNames())

	require.NoError(t, s.RemoveJob("a"))
	assert.Error(t, s.RemoveJob("a"))
	assert.Equal(t, []string{"b"}, s.JobNames())
}

func TestScheduler_StopLeavesNoGoroutines(t *testing.T) {
	defer goleak.VerifyNone(t)

	s := NewScheduler(zap.NewNop(), time.Second)
	ran := make(chan struct{}, 1)
	require.NoError(t, s.AddJob("tick", "@every 1s", func(ctx context.Context) error {
		select {
		case ran <- struct{}{}:
		default:
		}
		return nil
	}))
	s.Start()

	select {
	case <-ran:
	case <-time.After(3 * time.Second):
		t.Fatal("job did not run")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, s.Stop(ctx))
}

func TestScheduler_StopCancelsRunningJob(t *testing.T) {
	defer goleak.VerifyNone(t)

	s := NewScheduler(zap.NewNop(), time.Minute)
	started := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		done <- s.RunNow("slow", func(ctx context.Context) error {
			close(started)
			<-ctx.Done()
			return ctx.Err()
		})
	}()
	<-started

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, s.Stop(ctx))
	assert.ErrorIs(t, <-done, context.Canceled)
}

func TestScheduler_RunNowAppliesTimeout(t *testing.T) {
	s := NewScheduler(zap.NewNop(), 10*time.Millisecond)
	err := s.RunNow("slow", func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

type fakeLabs struct{ labs []domain.Lab }

func (f fakeLabs) ListActive(context.Context) ([]domain.Lab, error) { return f.labs, nil }

type fakeSummaries map[uuid.UUID]*domain.DashboardSummaryDTO

func (f fakeSummaries) SummaryForLab(_ context.Context, labID uuid.UUID) (*domain.DashboardSummaryDTO, error) {
	s, ok := f[labID]
	if !ok {
		return nil, errors.New("summary failed")
	}
	return s, nil
}

type fakeRecipients map[uuid.UUID][]domain.User

func (f fakeRecipients) ListByLabAndRoles(_ context.Context, labID uuid.UUID, roles []domain.UserRole) ([]domain.User, error) {
	var out []domain.User
	for _, u := range f[labID] {
		if slices.Contains(roles, u.Role) {
			out = append(out, u)
		}
	}
	return out, nil
}

type recordingSender struct {
	mu   sync.Mutex
	sent []mailer.Message
}

func (r *recordingSender) Send(_ context.Context, msg mailer.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, msg)
	return nil
}

func newLab(name string) domain.Lab {
	lab := domain.Lab{Name: name, IsActive: true}
	lab.ID = uuid.New()
	return lab
}

func TestExpiryAlertJob_Run(t *testing.T) {
	alerting := newLab("Flow Core")
	quiet := newLab("Quiet Lab")
	broken := newLab("Broken Lab")
	due := "2026-01-10"

	summaries := fakeSummaries{
		alerting.ID: {
			ExpiredLots:    1,
			LowStock:       2,
			ExpiryWarnDays: 30,
			Priorities: []domain.PriorityItemDTO{
				{Kind: domain.PriorityExpiredLot, Severity: 1, Title: "CD3-FITC lot L1", Detail: "expired", DueDate: &due},
			},
		},
		quiet.ID: {ExpiryWarnDays: 30},
	}
	recipients := fakeRecipients{
		alerting.ID: {
			{Email: "admin@flow.example", Role: domain.RoleLabAdmin},
			{Email: "sup@flow.example", Role: domain.RoleSupervisor},
			{Email: "tech@flow.example", Role: domain.RoleTech},
		},
		quiet.ID: {{Email: "admin@quiet.example", Role: domain.RoleLabAdmin}},
	}
	sender := &recordingSender{}

	job := NewExpiryAlertJob(fakeLabs{labs: []domain.Lab{alerting, quiet, broken}}, summaries, recipients, sender, "https://labaid.example/", zap.NewNop())
	err := job.Run(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Broken Lab")

	require.Len(t, sender.sent, 1)
	msg := sender.sent[0]
	assert.Equal(t, []string{"admin@flow.example"}, msg.To)
	assert.Equal(t, "[LabAid] Flow Core: 1 expired, 2 low stock", msg.Subject)
	assert.Contains(t, msg.Text, "CD3-FITC lot L1: expired (2026-01-10)")
	assert.Contains(t, msg.Text, "https://labaid.example/")
}

func TestDigestText_TruncatesPriorities(t *testing.T) {
	s := &domain.DashboardSummaryDTO{LowStock: maxDigestItems + 5}
	for i := 0; i < maxDigestItems+5; i++ {
		s.Priorities = append(s.Priorities, domain.PriorityItemDTO{Title: "item"})
	}
	text := digestText("Lab", s, "")
	assert.Equal(t, maxDigestItems, strings.Count(text, "  - item"))
	assert.Contains(t, text, "... and 5 more")
	assert.NotContains(t, text, "Open the dashboard")
}

type fakePurger struct {
	days  int
	calls int
}

func (f *fakePurger) PurgeOlderThan(_ context.Context, days int) (int64, error) {
	f.calls++
	f.days = days
	return 7, nil
}

func TestAuditRetentionJob(t *testing.T) {
	purger := &fakePurger{}
	require.NoError(t, NewAuditRetentionJob(purger, 365, zap.NewNop()).Run(context.Background()))
	assert.Equal(t, 1, purger.calls)
	assert.Equal(t, 365, purger.days)

	require.NoError(t, NewAuditRetentionJob(purger, 0, zap.NewNop()).Run(context.Background()))
	assert.Equal(t, 1, purger.calls)
}

func TestRegisterAuditRetentionJob_DisabledSchedulesNothing(t *testing.T) {
	s := NewScheduler(zap.NewNop(), time.Second)
	require.NoError(t, RegisterAuditRetentionJob(s, &fakePurger{}, 0, "@weekly", zap.NewNop()))
	assert.Empty(t, s.JobNames())

	require.NoError(t, RegisterAuditRetentionJob(s, &fakePurger{}, 30, "@weekly", zap.NewNop()))
	assert.Equal(t, []string{AuditRetentionJobName}, s.JobNames())
}

type fakeCounter struct{}

func (fakeCounter) CountByStatus(context.Context) ([]repository.StatusCount, error) {
	return []repository.StatusCount{{Status: domain.VialStatusSealed, Count: 4}}, nil
}

func TestMetricsRefreshJob(t *testing.T) {
	m := metrics.New()
	s := NewScheduler(zap.NewNop(), time.Second)
	require.NoError(t, RegisterMetricsRefreshJob(s, m, fakeCounter{}, "@every 5m"))
	require.NoError(t, s.RunNow(MetricsRefreshJobName, MetricsRefreshJob(m, fakeCounter{})))

	families, err := m.Registry().Gather()
	require.NoError(t, err)
	found := false
	for _, f := range families {
		if f.GetName() == "labaid_vials" {
			found = true
			require.Len(t, f.GetMetric(), 1)
			assert.Equal(t, 4.0, f.GetMetric()[0].GetGauge().GetValue())
		}
	}
	assert.True(t, found)
}
