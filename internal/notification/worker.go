package notification

import (
	"context"
	"fmt"
	"net/http"

	"github.com/SherClockHolmes/webpush-go"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"venue-status-backend/internal/model"
)

// NotificationSender defines the interface for sending a web push notification.
type NotificationSender interface {
	Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error)
}

// WebPushSender is a real implementation of NotificationSender using the webpush library.
type WebPushSender struct{}

// Send sends a notification using the webpush library.
func (s *WebPushSender) Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
	return webpush.SendNotification(payload, sub, options)
}

// WorkerPool manages a pool of workers that notify subscribers when a venue
// they follow transitions to open.
type WorkerPool struct {
	size    int
	jobs    chan int64
	db      *gorm.DB
	webpush *webpush.Options
	sender  NotificationSender
	logger  *zap.Logger
}

// NewWorkerPool creates a new worker pool.
func NewWorkerPool(size int, db *gorm.DB, webpushOptions *webpush.Options, logger *zap.Logger) *WorkerPool {
	return &WorkerPool{
		size:    size,
		jobs:    make(chan int64, size),
		db:      db,
		webpush: webpushOptions,
		sender:  &WebPushSender{},
		logger:  logger,
	}
}

// Start launches the worker goroutines.
func (wp *WorkerPool) Start(ctx context.Context) {
	for i := 0; i < wp.size; i++ {
		go wp.worker(ctx, i)
	}
}

func (wp *WorkerPool) worker(ctx context.Context, id int) {
	wp.logger.Debug("worker started", zap.Int("worker", id))
	for {
		select {
		case venueID := <-wp.jobs:
			wp.sendNotificationsForVenue(ctx, venueID)
		case <-ctx.Done():
			wp.logger.Debug("worker shutting down", zap.Int("worker", id))
			return
		}
	}
}

// Dispatch sends a job to the worker pool.
func (wp *WorkerPool) Dispatch(venueID int64) {
	wp.jobs <- venueID
}

// Jobs returns the jobs channel for testing.
func (wp *WorkerPool) Jobs() chan int64 {
	return wp.jobs
}

// sendNotificationsForVenue fetches subscriptions and sends notifications for
// a venue that just opened.
func (wp *WorkerPool) sendNotificationsForVenue(ctx context.Context, venueID int64) {
	var subscriptions []model.PushSubscription
	err := wp.db.WithContext(ctx).
		Joins("JOIN subscription_venue_mapping svm ON svm.push_subscription_endpoint = push_subscriptions.endpoint").
		Where("svm.venue_id = ?", venueID).
		Find(&subscriptions).Error
	if err != nil {
		wp.logger.Error("failed to fetch subscriptions",
			zap.Int64("venue_id", venueID), zap.Error(err))
		return
	}

	if len(subscriptions) == 0 {
		return
	}

	var venue model.Venue
	venueLabel := fmt.Sprintf("venue %d", venueID)
	if err := wp.db.WithContext(ctx).
		Select("name").
		First(&venue, venueID).Error; err != nil {
		wp.logger.Error("failed to fetch venue",
			zap.Int64("venue_id", venueID), zap.Error(err))
	} else if venue.Name != "" {
		venueLabel = venue.Name
	}

	wp.logger.Info("sending notifications",
		zap.Int64("venue_id", venueID), zap.Int("count", len(subscriptions)))

	message := fmt.Sprintf("%s is now open!", venueLabel)
	for _, sub := range subscriptions {
		wp.sendNotification(sub, []byte(message))
	}
}

// sendNotification sends a single web push notification. A 410 from the push
// service means the subscription is gone and gets pruned.
func (wp *WorkerPool) sendNotification(sub model.PushSubscription, payload []byte) {
	wpSub := &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256DH,
			Auth:   sub.Auth,
		},
	}

	resp, err := wp.sender.Send(payload, wpSub, wp.webpush)
	if err != nil {
		wp.logger.Error("failed to send notification",
			zap.String("endpoint", sub.Endpoint), zap.Error(err))
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusGone {
		wp.logger.Info("pruning expired subscription", zap.String("endpoint", sub.Endpoint))
		if err := wp.db.Delete(&model.PushSubscription{Endpoint: sub.Endpoint}).Error; err != nil {
			wp.logger.Error("failed to delete expired subscription",
				zap.String("endpoint", sub.Endpoint), zap.Error(err))
		}
	}
}
