// Package repository defines the persistence interfaces and sentinel
// errors shared by implementations.
package repository

import (
	"context"
	"errors"

	"github.com/baterdene/telewatch/internal/models"
)

// ErrRunNotFound is returned when a site has no recorded run yet.
var ErrRunNotFound = errors.New("run not found")

// Subscriptions manages Telegram chats subscribed to change alerts.
type Subscriptions interface {
	SubscribeChat(ctx context.Context, chatID int64) error
	UnsubscribeChat(ctx context.Context, chatID int64) error
	GetSubscribedChats(ctx context.Context) ([]int64, error)
}

// Runs records per-site monitoring outcomes.
type Runs interface {
	RecordRun(ctx context.Context, run *models.RunRecord) error
	GetLastRun(ctx context.Context, siteKey string) (*models.RunRecord, error)
	GetLatestRuns(ctx context.Context) ([]models.RunRecord, error)
}
