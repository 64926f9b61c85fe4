package jobs

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/labaid/labaid-api/internal/domain"
	"github.com/labaid/labaid-api/internal/mailer"
	"go.uber.org/zap"
)

// ExpiryAlertJobName is the name of the daily digest job
const ExpiryAlertJobName = "expiry_alerts"

// LabLister lists the labs that receive digests
type LabLister interface {
	ListActive(ctx context.Context) ([]domain.Lab, error)
}

// SummaryProvider computes the dashboard of one lab
type SummaryProvider interface {
	SummaryForLab(ctx context.Context, labID uuid.UUID) (*domain.DashboardSummaryDTO, error)
}

// RecipientFinder finds the users a lab's digest is sent to
type RecipientFinder interface {
	ListByLabAndRoles(ctx context.Context, labID uuid.UUID, roles []domain.UserRole) ([]domain.User, error)
}

var digestRoles = []domain.UserRole{domain.RoleLabAdmin}

// maxDigestItems caps the priority lines listed in one email
const maxDigestItems = 25

// ExpiryAlertJob emails each active lab's admins a digest of
// expired, expiring and low-stock inventory. Labs with nothing to report get no mail.
type ExpiryAlertJob struct {
	labs       LabLister
	summaries  SummaryProvider
	recipients RecipientFinder
	sender     mailer.Sender
	publicURL  string
	logger     *zap.Logger
}

func NewExpiryAlertJob(labs LabLister, summaries SummaryProvider, recipients RecipientFinder, sender mailer.Sender, publicURL string, logger *zap.Logger) *ExpiryAlertJob {
	return &ExpiryAlertJob{
		labs:       labs,
		summaries:  summaries,
		recipients: recipients,
		sender:     sender,
		publicURL:  strings.TrimRight(publicURL, "/"),
		logger:     logger,
	}
}

// Run sends the digests. A failing lab is logged and skipped; the joined errors are returned.
func (j *ExpiryAlertJob) Run(ctx context.Context) error {
	labs, err := j.labs.ListActive(ctx)
	if err != nil {
		return fmt.Errorf("failed to list labs: %w", err)
	}

	var errs []error
	sent := 0
	for i := range labs {
		if err := ctx.Err(); err != nil {
			return err
		}
		ok, err := j.runLab(ctx, &labs[i])
		if err != nil {
			j.logger.Warn("expiry digest failed",
				zap.String("lab_id", labs[i].ID.String()),
				zap.Error(err))
			errs = append(errs, err)
			continue
		}
		if ok {
			sent++
		}
	}

	j.logger.Info("expiry digests processed",
		zap.Int("labs", len(labs)),
		zap.Int("sent", sent),
		zap.Int("failed", len(errs)))
	return errors.Join(errs...)
}

func (j *ExpiryAlertJob) runLab(ctx context.Context, lab *domain.Lab) (bool, error) {
	summary, err := j.summaries.SummaryForLab(ctx, lab.ID)
	if err != nil {
		return false, fmt.Errorf("lab %s: %w", lab.Name, err)
	}
	if !summary.HasAlerts() {
		return false, nil
	}

	users, err := j.recipients.ListByLabAndRoles(ctx, lab.ID, digestRoles)
	if err != nil {
		return false, fmt.Errorf("lab %s: failed to list recipients: %w", lab.Name, err)
	}
	to := make([]string, 0, len(users))
	for _, u := range users {
		to = append(to, u.Email)
	}
	if len(to) == 0 {
		j.logger.Debug("no digest recipients", zap.String("lab_id", lab.ID.String()))
		return false, nil
	}

	msg := mailer.Message{
		To:      to,
		Subject: digestSubject(lab.Name, summary),
		Text:    digestText(lab.Name, summary, j.publicURL),
	}
	if err := j.sender.Send(ctx, msg); err != nil {
		return false, fmt.Errorf("lab %s: %w", lab.Name, err)
	}
	return true, nil
}

func digestSubject(labName string, s *domain.DashboardSummaryDTO) string {
	parts := make([]string, 0, 4)
	if n := s.ExpiredLots + s.ExpiredOpenVials; n > 0 {
		parts = append(parts, fmt.Sprintf("%d expired", n))
	}
	if s.ExpiringLots > 0 {
		parts = append(parts, fmt.Sprintf("%d expiring", s.ExpiringLots))
	}
	if n := s.LowStock + s.ApprovedLow; n > 0 {
		parts = append(parts, fmt.Sprintf("%d low stock", n))
	}
	return fmt.Sprintf("[LabAid] %s: %s", labName, strings.Join(parts, ", "))
}

func digestText(labName string, s *domain.DashboardSummaryDTO, publicURL string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Inventory digest for %s\n\n", labName)
	fmt.Fprintf(&b, "Expired lots:         %d\n", s.ExpiredLots)
	fmt.Fprintf(&b, "Expired open vials:   %d\n", s.ExpiredOpenVials)
	fmt.Fprintf(&b, "Expiring in %3d days: %d\n", s.ExpiryWarnDays, s.ExpiringLots)
	fmt.Fprintf(&b, "Low stock:            %d\n", s.LowStock)
	fmt.Fprintf(&b, "Approved low:         %d\n", s.ApprovedLow)
	fmt.Fprintf(&b, "Pending QC:           %d\n", s.PendingQC)

	if len(s.Priorities) > 0 {
		b.WriteString("\nPriorities\n")
		for i, p := range s.Priorities {
			if i == maxDigestItems {
				fmt.Fprintf(&b, "  ... and %d more\n", len(s.Priorities)-maxDigestItems)
				break
			}
			line := "  - " + p.Title
			if p.Detail != "" {
				line += ": " + p.Detail
			}
			if p.DueDate != nil {
				line += " (" + *p.DueDate + ")"
			}
			b.WriteString(line + "\n")
		}
	}
	if publicURL != "" {
		fmt.Fprintf(&b, "\nOpen the dashboard: %s/\n", publicURL)
	}
	return b.String()
}

// RegisterExpiryAlertJob adds the digest job to the scheduler
func RegisterExpiryAlertJob(scheduler *Scheduler, job *ExpiryAlertJob, cronExpr string) error {
	return scheduler.AddJob(ExpiryAlertJobName, cronExpr, job.Run)
}
