package adapters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/zakat-calculator/backend/internal/application/adapter"
)

const (
	scheduledSetKey     = "notifications:scheduled"
	scheduledPayloadKey = "notifications:payloads"
	smsOutboxKey        = "notifications:sms:outbox"

	// DefaultInboxSize caps the per-user push history.
	DefaultInboxSize = 50
)

// UserChannel is the pub/sub channel carrying a user's push notifications.
func UserChannel(userID uuid.UUID) string {
	return "notifications:user:" + userID.String()
}

func inboxKey(userID uuid.UUID) string {
	return "notifications:inbox:" + userID.String()
}

// SMSMessage is an entry in the SMS outbox consumed by the SMS gateway.
type SMSMessage struct {
	PhoneNumber string    `json:"phone_number"`
	Message     string    `json:"message"`
	QueuedAt    time.Time `json:"queued_at"`
}

// RedisNotificationService delivers push notifications over Redis pub/sub and
// keeps a bounded inbox per user. Emails go through the email queue and text
// messages into an outbox list. Scheduled pushes live in a sorted set keyed by
// delivery time.
type RedisNotificationService struct {
	client    *redis.Client
	email     adapter.EmailService
	inboxSize int64
}

var _ adapter.NotificationService = (*RedisNotificationService)(nil)

// NewRedisNotificationService creates a notification service.
func NewRedisNotificationService(client *redis.Client, email adapter.EmailService, inboxSize int) *RedisNotificationService {
	if inboxSize <= 0 {
		inboxSize = DefaultInboxSize
	}
	return &RedisNotificationService{client: client, email: email, inboxSize: int64(inboxSize)}
}

// SendPush publishes the notification and records it in the user's inbox.
func (s *RedisNotificationService) SendPush(ctx context.Context, n adapter.PushNotification) error {
	if n.UserID == uuid.Nil {
		return errors.New("push notification requires a user id")
	}
	payload, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("encode push notification: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.Publish(ctx, UserChannel(n.UserID), payload)
	pipe.LPush(ctx, inboxKey(n.UserID), payload)
	pipe.LTrim(ctx, inboxKey(n.UserID), 0, s.inboxSize-1)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("send push notification: %w", err)
	}
	return nil
}

// SendEmail queues the email through the email service.
func (s *RedisNotificationService) SendEmail(ctx context.Context, n adapter.EmailNotification) error {
	if s.email == nil {
		return errors.New("email delivery is not configured")
	}
	input := adapter.QueueReminderInput{
		UserEmail:     n.To,
		UserName:      n.Name,
		Subject:       n.Subject,
		Message:       n.Message,
		ScheduledDate: n.ScheduledDate,
	}
	if n.ReminderID != nil {
		input.ReminderID = n.ReminderID.String()
	}
	return s.email.QueueReminderEmail(ctx, input)
}

// SendSMS appends the message to the SMS outbox.
func (s *RedisNotificationService) SendSMS(ctx context.Context, phoneNumber, message string) error {
	if phoneNumber == "" {
		return errors.New("sms requires a phone number")
	}
	payload, err := json.Marshal(SMSMessage{
		PhoneNumber: phoneNumber,
		Message:     message,
		QueuedAt:    time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("encode sms: %w", err)
	}
	if err := s.client.LPush(ctx, smsOutboxKey, payload).Err(); err != nil {
		return fmt.Errorf("queue sms: %w", err)
	}
	return nil
}

// Schedule stores the notification for delivery at the given instant.
func (s *RedisNotificationService) Schedule(ctx context.Context, n adapter.PushNotification, at time.Time) (string, error) {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	payload, err := json.Marshal(n)
	if err != nil {
		return "", fmt.Errorf("encode scheduled notification: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.ZAdd(ctx, scheduledSetKey, redis.Z{Score: float64(at.Unix()), Member: n.ID})
	pipe.HSet(ctx, scheduledPayloadKey, n.ID, payload)
	if _, err := pipe.Exec(ctx); err != nil {
		return "", fmt.Errorf("schedule notification: %w", err)
	}
	return n.ID, nil
}

// CancelScheduled drops a scheduled notification.
func (s *RedisNotificationService) CancelScheduled(ctx context.Context, notificationID string) error {
	pipe := s.client.TxPipeline()
	pipe.ZRem(ctx, scheduledSetKey, notificationID)
	pipe.HDel(ctx, scheduledPayloadKey, notificationID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("cancel notification: %w", err)
	}
	return nil
}

// DispatchDue sends every scheduled notification due at or before now.
// An entry is claimed by removing it from the sorted set, so concurrent
// dispatchers never deliver the same notification twice.
func (s *RedisNotificationService) DispatchDue(ctx context.Context, now time.Time) (int, error) {
	ids, err := s.client.ZRangeByScore(ctx, scheduledSetKey, &redis.ZRangeBy{
		Min: "-inf",
		Max: strconv.FormatInt(now.Unix(), 10),
	}).Result()
	if err != nil {
		return 0, fmt.Errorf("list due notifications: %w", err)
	}

	sent := 0
	for _, id := range ids {
		claimed, err := s.client.ZRem(ctx, scheduledSetKey, id).Result()
		if err != nil {
			return sent, fmt.Errorf("claim notification %s: %w", id, err)
		}
		if claimed == 0 {
			continue
		}

		payload, err := s.client.HGet(ctx, scheduledPayloadKey, id).Bytes()
		s.client.HDel(ctx, scheduledPayloadKey, id)
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			return sent, fmt.Errorf("load notification %s: %w", id, err)
		}

		var n adapter.PushNotification
		if err := json.Unmarshal(payload, &n); err != nil {
			slog.Warn("Dropping malformed scheduled notification", "id", id, "error", err)
			continue
		}
		if err := s.SendPush(ctx, n); err != nil {
			slog.Error("Failed to dispatch scheduled notification", "id", id, "error", err)
			continue
		}
		sent++
	}
	return sent, nil
}

// Inbox returns the user's most recent push notifications, newest first.
func (s *RedisNotificationService) Inbox(ctx context.Context, userID uuid.UUID, limit int) ([]adapter.PushNotification, error) {
	if limit <= 0 || int64(limit) > s.inboxSize {
		limit = int(s.inboxSize)
	}
	raw, err := s.client.LRange(ctx, inboxKey(userID), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("read inbox: %w", err)
	}
	out := make([]adapter.PushNotification, 0, len(raw))
	for _, item := range raw {
		var n adapter.PushNotification
		if err := json.Unmarshal([]byte(item), &n); err != nil {
			continue
		}
		out = append(out, n)
	}
	return out, nil
}

// PendingSMS returns the queued text messages, oldest first.
func (s *RedisNotificationService) PendingSMS(ctx context.Context) ([]SMSMessage, error) {
	raw, err := s.client.LRange(ctx, smsOutboxKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("read sms outbox: %w", err)
	}
	out := make([]SMSMessage, 0, len(raw))
	for i := len(raw) - 1; i >= 0; i-- {
		var m SMSMessage
		if err := json.Unmarshal([]byte(raw[i]), &m); err != nil {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}
