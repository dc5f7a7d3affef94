package notification

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/budgetsnap/backend/internal/application/adapter"
	"github.com/budgetsnap/backend/internal/domain/entity"
)

// alertThreshold is the budget fraction that triggers an alert.
var alertThreshold = decimal.NewFromFloat(0.9)

// BudgetAlertInput represents the input for the budget alert check, run
// after a receipt is persisted.
type BudgetAlertInput struct {
	SubjectID string
	Receipt   *entity.Receipt
	Now       time.Time
}

// BudgetAlertUseCase raises notifications when the month's spending in a
// category crosses 90% of its configured limit. Limits come from the
// user's settings; an email goes out when the user has email budget
// alerts enabled.
type BudgetAlertUseCase struct {
	receiptRepo      adapter.ReceiptRepository
	settingsRepo     adapter.SettingsRepository
	profileRepo      adapter.ProfileRepository
	notificationRepo adapter.NotificationRepository
	emailSender      adapter.EmailSender
	logger           *slog.Logger
}

// NewBudgetAlertUseCase creates a new BudgetAlertUseCase instance.
func NewBudgetAlertUseCase(
	receiptRepo adapter.ReceiptRepository,
	settingsRepo adapter.SettingsRepository,
	profileRepo adapter.ProfileRepository,
	notificationRepo adapter.NotificationRepository,
	emailSender adapter.EmailSender,
	logger *slog.Logger,
) *BudgetAlertUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &BudgetAlertUseCase{
		receiptRepo:      receiptRepo,
		settingsRepo:     settingsRepo,
		profileRepo:      profileRepo,
		notificationRepo: notificationRepo,
		emailSender:      emailSender,
		logger:           logger,
	}
}

// Execute checks the categories touched by the receipt against the user's
// budget limits.
func (uc *BudgetAlertUseCase) Execute(ctx context.Context, input BudgetAlertInput) error {
	settings, err := uc.settingsRepo.FindByUser(ctx, input.SubjectID)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	if settings == nil || !settings.Notifications.BudgetAlerts || len(settings.BudgetLimits) == 0 {
		return nil
	}

	now := input.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	receipts, err := uc.receiptRepo.FindOwnedBetween(ctx, input.SubjectID, monthStart, now)
	if err != nil {
		return fmt.Errorf("failed to load month receipts: %w", err)
	}

	spentByCategory := make(map[string]decimal.Decimal)
	for _, receipt := range receipts {
		for _, item := range receipt.Items {
			spentByCategory[item.Category] = spentByCategory[item.Category].Add(item.Subtotal())
		}
	}

	for _, category := range touchedCategories(input.Receipt) {
		limit, ok := settings.BudgetLimits[category]
		if !ok || !limit.IsPositive() {
			continue
		}
		spent := spentByCategory[category]
		if spent.LessThan(limit.Mul(alertThreshold)) {
			continue
		}
		if err := uc.raiseAlert(ctx, input.SubjectID, settings, category, spent, limit); err != nil {
			return err
		}
	}
	return nil
}

func touchedCategories(receipt *entity.Receipt) []string {
	seen := make(map[string]struct{})
	var categories []string
	for _, item := range receipt.Items {
		if _, ok := seen[item.Category]; ok {
			continue
		}
		seen[item.Category] = struct{}{}
		categories = append(categories, item.Category)
	}
	return categories
}

func (uc *BudgetAlertUseCase) raiseAlert(ctx context.Context, subjectID string, settings *entity.UserSettings, category string, spent, limit decimal.Decimal) error {
	percentage := spent.Mul(decimal.NewFromInt(100)).DivRound(limit, 0)

	title := fmt.Sprintf("Budget Alert: %s", category)
	message := fmt.Sprintf(
		"You have spent $%s of your $%s %s budget this month (%s%%).",
		spent.StringFixed(2), limit.StringFixed(2), category, percentage,
	)
	notification := entity.NewNotification(subjectID, entity.NotificationTypeBudget, title, message)
	if err := uc.notificationRepo.Create(ctx, notification); err != nil {
		return fmt.Errorf("failed to create budget notification: %w", err)
	}

	if !settings.Notifications.Email || uc.emailSender == nil {
		return nil
	}
	profile, err := uc.profileRepo.FindByUser(ctx, subjectID)
	if err != nil || profile == nil || profile.Email == "" {
		uc.logger.Warn("no email address for budget alert", "subject_id", subjectID)
		return nil
	}
	email := adapter.SendEmailInput{
		To:      profile.Email,
		Subject: title,
		HTML:    fmt.Sprintf("<p>%s</p>", message),
		Text:    message,
	}
	if err := uc.emailSender.Send(ctx, email); err != nil {
		// Email is best effort; the in-app notification already exists.
		uc.logger.Warn("failed to send budget alert email", "subject_id", subjectID, "error", err)
	}
	return nil
}
