package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/zakat-calculator/backend/internal/application/adapter"
	domainerror "github.com/zakat-calculator/backend/internal/domain/error"
	"github.com/zakat-calculator/backend/internal/domain/valueobject"
	"github.com/zakat-calculator/backend/internal/integration/persistence"
	"github.com/zakat-calculator/backend/internal/integration/persistence/model"
)

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func currency(t *testing.T, code string) valueobject.Currency {
	t.Helper()
	c, err := valueobject.ParseCurrency(code)
	require.NoError(t, err)
	return c
}

func newPriceService(client *redis.Client) *RedisPriceService {
	return NewRedisPriceService(client, time.Hour, FallbackPrices{
		Currency: valueobject.USD,
		Gold:     decimal.RequireFromString("65.00"),
		Silver:   decimal.RequireFromString("0.80"),
	})
}

func TestPriceService_CachedQuotesWin(t *testing.T) {
	ctx := context.Background()
	_, client := newRedis(t)
	prices := newPriceService(client)

	gold, err := valueobject.NewMoney(decimal.RequireFromString("70.25"), "USD")
	require.NoError(t, err)
	require.NoError(t, prices.SetMetalPrice(ctx, valueobject.AssetTypeGold, gold))

	got, err := prices.GoldPricePerGram(ctx, valueobject.USD)
	require.NoError(t, err)
	assert.Equal(t, "USD 70.25", got.String())

	silver, err := prices.SilverPricePerGram(ctx, valueobject.USD)
	require.NoError(t, err)
	assert.Equal(t, "USD 0.80", silver.String())
}

func TestPriceService_FallbackConvertsThroughRates(t *testing.T) {
	ctx := context.Background()
	mr, client := newRedis(t)
	prices := newPriceService(client)
	gbp := currency(t, "GBP")

	_, err := prices.GoldPricePerGram(ctx, gbp)
	assert.True(t, domainerror.IsInvariantViolation(err))

	require.NoError(t, prices.SetConversionRate(ctx, gbp, valueobject.USD, decimal.RequireFromString("1.25")))
	assert.True(t, mr.Exists("fx:GBP:USD"))

	rate, err := prices.ConversionRate(ctx, valueobject.USD, gbp)
	require.NoError(t, err)
	assert.True(t, rate.Equal(decimal.RequireFromString("0.8")), rate.String())

	gold, err := prices.GoldPricePerGram(ctx, gbp)
	require.NoError(t, err)
	assert.Equal(t, "GBP 52.00", gold.String())
}

func TestPriceService_StockQuotes(t *testing.T) {
	ctx := context.Background()
	mr, client := newRedis(t)
	prices := newPriceService(client)

	_, err := prices.StockPrice(ctx, "aapl", valueobject.USD)
	assert.ErrorIs(t, err, domainerror.ErrPriceUnavailable)

	quote, err := valueobject.NewMoney(decimal.RequireFromString("189.50"), "USD")
	require.NoError(t, err)
	require.NoError(t, prices.SetStockPrice(ctx, " aapl ", quote))
	assert.True(t, mr.Exists("price:stock:AAPL:USD"))

	got, err := prices.StockPrice(ctx, "AAPL", valueobject.USD)
	require.NoError(t, err)
	assert.True(t, got.Equals(quote))

	mr.FastForward(2 * time.Hour)
	_, err = prices.StockPrice(ctx, "AAPL", valueobject.USD)
	assert.ErrorIs(t, err, domainerror.ErrPriceUnavailable)
}

func TestPriceService_RejectsNonMetal(t *testing.T) {
	_, client := newRedis(t)
	price, err := valueobject.NewMoney(decimal.NewFromInt(1), "USD")
	require.NoError(t, err)
	err = newPriceService(client).SetMetalPrice(context.Background(), valueobject.AssetTypeCash, price)
	assert.True(t, domainerror.IsValidation(err))
}

type recordingEmail struct {
	reminders []adapter.QueueReminderInput
}

func (r *recordingEmail) QueueWelcomeEmail(context.Context, adapter.QueueWelcomeInput) error {
	return nil
}

func (r *recordingEmail) QueueReminderEmail(_ context.Context, input adapter.QueueReminderInput) error {
	r.reminders = append(r.reminders, input)
	return nil
}

func TestNotificationService_PushPublishesAndKeepsInbox(t *testing.T) {
	ctx := context.Background()
	_, client := newRedis(t)
	notifier := NewRedisNotificationService(client, nil, 2)
	userID := uuid.New()

	sub := client.Subscribe(ctx, UserChannel(userID))
	defer sub.Close()
	_, err := sub.Receive(ctx)
	require.NoError(t, err)

	for i := 1; i <= 3; i++ {
		require.NoError(t, notifier.SendPush(ctx, adapter.PushNotification{
			UserID: userID,
			Title:  fmt.Sprintf("n%d", i),
			Body:   "body",
		}))
	}

	msg, err := sub.ReceiveMessage(ctx)
	require.NoError(t, err)
	var first adapter.PushNotification
	require.NoError(t, json.Unmarshal([]byte(msg.Payload), &first))
	assert.Equal(t, "n1", first.Title)

	inbox, err := notifier.Inbox(ctx, userID, 10)
	require.NoError(t, err)
	require.Len(t, inbox, 2)
	assert.Equal(t, "n3", inbox[0].Title)
	assert.Equal(t, "n2", inbox[1].Title)

	assert.Error(t, notifier.SendPush(ctx, adapter.PushNotification{Title: "orphan"}))
}

func TestNotificationService_ScheduleCancelAndDispatch(t *testing.T) {
	ctx := context.Background()
	_, client := newRedis(t)
	notifier := NewRedisNotificationService(client, nil, 0)
	userID := uuid.New()
	now := time.Date(2025, 2, 10, 12, 0, 0, 0, time.UTC)

	dueID, err := notifier.Schedule(ctx, adapter.PushNotification{UserID: userID, Title: "due"}, now.Add(-time.Minute))
	require.NoError(t, err)
	assert.NotEmpty(t, dueID)

	laterID, err := notifier.Schedule(ctx, adapter.PushNotification{ID: "later", UserID: userID, Title: "later"}, now.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, "later", laterID)

	cancelled, err := notifier.Schedule(ctx, adapter.PushNotification{UserID: userID, Title: "cancelled"}, now.Add(-time.Hour))
	require.NoError(t, err)
	require.NoError(t, notifier.CancelScheduled(ctx, cancelled))
	require.NoError(t, notifier.CancelScheduled(ctx, "unknown"))

	sent, err := notifier.DispatchDue(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, 1, sent)

	sent, err = notifier.DispatchDue(ctx, now)
	require.NoError(t, err)
	assert.Zero(t, sent)

	inbox, err := notifier.Inbox(ctx, userID, 0)
	require.NoError(t, err)
	require.Len(t, inbox, 1)
	assert.Equal(t, "due", inbox[0].Title)
	assert.Equal(t, dueID, inbox[0].ID)

	sent, err = notifier.DispatchDue(ctx, now.Add(2*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 1, sent)
}

func TestNotificationService_EmailAndSMS(t *testing.T) {
	ctx := context.Background()
	_, client := newRedis(t)
	email := &recordingEmail{}
	notifier := NewRedisNotificationService(client, email, 0)
	reminderID := uuid.New()

	require.NoError(t, notifier.SendEmail(ctx, adapter.EmailNotification{
		To:         "amina@example.com",
		Subject:    "Zakat due",
		Message:    "Pay zakat",
		ReminderID: &reminderID,
	}))
	require.Len(t, email.reminders, 1)
	assert.Equal(t, reminderID.String(), email.reminders[0].ReminderID)

	require.NoError(t, notifier.SendSMS(ctx, "+15550100", "first"))
	require.NoError(t, notifier.SendSMS(ctx, "+15550100", "second"))
	assert.Error(t, notifier.SendSMS(ctx, "", "nobody"))

	outbox, err := notifier.PendingSMS(ctx)
	require.NoError(t, err)
	require.Len(t, outbox, 2)
	assert.Equal(t, "first", outbox[0].Message)

	withoutEmail := NewRedisNotificationService(client, nil, 0)
	assert.Error(t, withoutEmail.SendEmail(ctx, adapter.EmailNotification{To: "x@example.com"}))
}

func newTokenService(t *testing.T, durations TokenDurations) adapter.TokenService {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.RefreshTokenModel{}))
	return NewTokenService("test-secret", durations, persistence.NewTokenRepository(db))
}

func TestTokenService_IssueValidateRevoke(t *testing.T) {
	ctx := context.Background()
	tokens := newTokenService(t, DefaultTokenDurations())
	userID := uuid.New()

	pair, err := tokens.GenerateTokenPair(ctx, userID, "amina@example.com", false)
	require.NoError(t, err)

	claims, err := tokens.ValidateAccessToken(ctx, pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "amina@example.com", claims.Email)

	_, err = tokens.ValidateAccessToken(ctx, pair.RefreshToken)
	assertAuthCode(t, err, domainerror.ErrCodeInvalidToken)

	_, err = tokens.ValidateRefreshToken(ctx, pair.RefreshToken)
	require.NoError(t, err)

	valid, err := tokens.IsRefreshTokenValid(ctx, pair.RefreshToken)
	require.NoError(t, err)
	assert.True(t, valid)

	require.NoError(t, tokens.InvalidateRefreshToken(ctx, pair.RefreshToken))
	valid, err = tokens.IsRefreshTokenValid(ctx, pair.RefreshToken)
	require.NoError(t, err)
	assert.False(t, valid)

	other, err := tokens.GenerateTokenPair(ctx, userID, "amina@example.com", true)
	require.NoError(t, err)
	require.NoError(t, tokens.InvalidateAllUserTokens(ctx, userID))
	valid, err = tokens.IsRefreshTokenValid(ctx, other.RefreshToken)
	require.NoError(t, err)
	assert.False(t, valid)
}

func TestTokenService_RejectsExpiredAndForeignTokens(t *testing.T) {
	ctx := context.Background()
	expired := newTokenService(t, TokenDurations{Access: -time.Minute, Refresh: time.Hour})
	pair, err := expired.GenerateTokenPair(ctx, uuid.New(), "a@example.com", false)
	require.NoError(t, err)

	_, err = expired.ValidateAccessToken(ctx, pair.AccessToken)
	assertAuthCode(t, err, domainerror.ErrCodeExpiredToken)

	other := NewTokenService("other-secret", DefaultTokenDurations(), nil)
	_, err = other.ValidateRefreshToken(ctx, pair.RefreshToken)
	assertAuthCode(t, err, domainerror.ErrCodeInvalidToken)

	_, err = other.ValidateAccessToken(ctx, "garbage")
	assertAuthCode(t, err, domainerror.ErrCodeInvalidToken)
}

func assertAuthCode(t *testing.T, err error, code domainerror.AuthErrorCode) {
	t.Helper()
	var authErr *domainerror.AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, code, authErr.Code)
}

func TestPasswordService(t *testing.T) {
	passwords := NewPasswordService(4)

	hash, err := passwords.HashPassword("bismillah123")
	require.NoError(t, err)
	assert.NoError(t, passwords.VerifyPassword(hash, "bismillah123"))
	assert.Error(t, passwords.VerifyPassword(hash, "wrong-password1"))

	tests := []struct {
		password string
		wantErr  bool
	}{
		{"short1", true},
		{"onlyletters", true},
		{"1234567890", true},
		{"letters123", false},
	}
	for _, tt := range tests {
		t.Run(tt.password, func(t *testing.T) {
			err := passwords.ValidatePasswordStrength(tt.password)
			if tt.wantErr {
				assert.ErrorIs(t, err, domainerror.ErrWeakPassword)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestApproximateHijriCalendar(t *testing.T) {
	ctx := context.Background()
	fixed := time.Date(2025, 2, 13, 9, 0, 0, 0, time.UTC)
	calendar := &ApproximateHijriCalendar{now: func() time.Time { return fixed }}

	today, err := calendar.CurrentDate(ctx)
	require.NoError(t, err)
	assert.Equal(t, "1446-02-13H", today.String())

	back, err := calendar.ToGregorian(ctx, today)
	require.NoError(t, err)
	roundTrip, err := calendar.ToHijri(ctx, back)
	require.NoError(t, err)
	assert.True(t, roundTrip.Equals(today), roundTrip.String())

	ramadan, err := calendar.RamadanStart(ctx, 1446)
	require.NoError(t, err)
	assert.Equal(t, "1446-09-01H", ramadan.String())

	days, err := calendar.DaysBetween(ctx, today, ramadan)
	require.NoError(t, err)
	assert.InDelta(t, 7*29.5-12, days, 0.001)
}
