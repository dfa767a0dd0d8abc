// Package usecasetest provides in-memory adapter implementations for use case tests.
package usecasetest

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/zakat-calculator/backend/internal/application/adapter"
	"github.com/zakat-calculator/backend/internal/domain/entity"
	domainerror "github.com/zakat-calculator/backend/internal/domain/error"
	"github.com/zakat-calculator/backend/internal/domain/valueobject"
)

// ErrInjected is returned by fakes configured to fail.
var ErrInjected = errors.New("injected failure")

func notFound(code domainerror.ZakatErrorCode, sentinel error, id uuid.UUID) error {
	return domainerror.NewZakatError(code, fmt.Sprintf("%s: %s", sentinel, id), sentinel)
}

// UserRepo is an in-memory adapter.UserRepository.
type UserRepo struct {
	mu    sync.Mutex
	users []*entity.User
}

// NewUserRepo seeds the repository with users.
func NewUserRepo(users ...*entity.User) *UserRepo {
	return &UserRepo{users: users}
}

func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users = append(r.users, u)
	return nil
}

func (r *UserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, notFound(domainerror.ErrCodeUserNotFound, domainerror.ErrUserNotFound, id)
}

func (r *UserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domainerror.NewZakatError(domainerror.ErrCodeUserNotFound, "user not found", domainerror.ErrUserNotFound)
}

func (r *UserRepo) List(_ context.Context, offset, limit int) ([]*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if offset >= len(r.users) {
		return nil, nil
	}
	end := offset + limit
	if end > len(r.users) {
		end = len(r.users)
	}
	return append([]*entity.User(nil), r.users[offset:end]...), nil
}

func (r *UserRepo) Update(_ context.Context, _ *entity.User) error {
	return nil
}

func (r *UserRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, u := range r.users {
		if u.ID == id {
			r.users = append(r.users[:i], r.users[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *UserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.FindByEmail(ctx, email)
	return err == nil, nil
}

// AssetRepo is an in-memory adapter.AssetRepository.
type AssetRepo struct {
	mu      sync.Mutex
	assets  []*entity.Asset
	Updates int
	// FailUpdate makes Update return ErrInjected.
	FailUpdate bool
}

// NewAssetRepo seeds the repository with assets.
func NewAssetRepo(assets ...*entity.Asset) *AssetRepo {
	return &AssetRepo{assets: assets}
}

func (r *AssetRepo) Create(_ context.Context, a *entity.Asset) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.assets = append(r.assets, a)
	return nil
}

func (r *AssetRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Asset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.assets {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, notFound(domainerror.ErrCodeAssetNotFound, domainerror.ErrAssetNotFound, id)
}

func (r *AssetRepo) FindByUserID(_ context.Context, userID uuid.UUID) ([]*entity.Asset, error) {
	return r.filter(func(a *entity.Asset) bool { return a.UserID == userID }), nil
}

func (r *AssetRepo) FindByUserIDAndType(_ context.Context, userID uuid.UUID, t valueobject.AssetType) ([]*entity.Asset, error) {
	return r.filter(func(a *entity.Asset) bool { return a.UserID == userID && a.Type == t }), nil
}

func (r *AssetRepo) FindByKind(_ context.Context, kind entity.AssetKind) ([]*entity.Asset, error) {
	return r.filter(func(a *entity.Asset) bool { return a.Kind == kind }), nil
}

func (r *AssetRepo) Update(_ context.Context, _ *entity.Asset) error {
	if r.FailUpdate {
		return ErrInjected
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Updates++
	return nil
}

func (r *AssetRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, a := range r.assets {
		if a.ID == id {
			r.assets = append(r.assets[:i], r.assets[i+1:]...)
			return nil
		}
	}
	return notFound(domainerror.ErrCodeAssetNotFound, domainerror.ErrAssetNotFound, id)
}

func (r *AssetRepo) filter(keep func(*entity.Asset) bool) []*entity.Asset {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Asset
	for _, a := range r.assets {
		if keep(a) {
			out = append(out, a)
		}
	}
	return out
}

// LiabilityRepo is an in-memory adapter.LiabilityRepository.
type LiabilityRepo struct {
	mu          sync.Mutex
	liabilities []*entity.Liability
}

// NewLiabilityRepo seeds the repository with liabilities.
func NewLiabilityRepo(liabilities ...*entity.Liability) *LiabilityRepo {
	return &LiabilityRepo{liabilities: liabilities}
}

func (r *LiabilityRepo) Create(_ context.Context, l *entity.Liability) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.liabilities = append(r.liabilities, l)
	return nil
}

func (r *LiabilityRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Liability, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, l := range r.liabilities {
		if l.ID == id {
			return l, nil
		}
	}
	return nil, notFound(domainerror.ErrCodeLiabilityNotFound, domainerror.ErrLiabilityNotFound, id)
}

func (r *LiabilityRepo) FindByUserID(_ context.Context, userID uuid.UUID) ([]*entity.Liability, error) {
	return r.filter(func(l *entity.Liability) bool { return l.UserID == userID }), nil
}

func (r *LiabilityRepo) FindDeductibleByUserID(_ context.Context, userID uuid.UUID) ([]*entity.Liability, error) {
	return r.filter(func(l *entity.Liability) bool { return l.UserID == userID && l.IsDeductible() }), nil
}

func (r *LiabilityRepo) Update(_ context.Context, _ *entity.Liability) error {
	return nil
}

func (r *LiabilityRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, l := range r.liabilities {
		if l.ID == id {
			r.liabilities = append(r.liabilities[:i], r.liabilities[i+1:]...)
			return nil
		}
	}
	return notFound(domainerror.ErrCodeLiabilityNotFound, domainerror.ErrLiabilityNotFound, id)
}

func (r *LiabilityRepo) filter(keep func(*entity.Liability) bool) []*entity.Liability {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Liability
	for _, l := range r.liabilities {
		if keep(l) {
			out = append(out, l)
		}
	}
	return out
}

// ReminderRepo is an in-memory adapter.ReminderRepository.
type ReminderRepo struct {
	mu        sync.Mutex
	reminders []*entity.Reminder
	// FailUpdateFor makes Update fail for the listed reminder IDs.
	FailUpdateFor map[uuid.UUID]bool
}

// NewReminderRepo seeds the repository with reminders.
func NewReminderRepo(reminders ...*entity.Reminder) *ReminderRepo {
	return &ReminderRepo{reminders: reminders, FailUpdateFor: map[uuid.UUID]bool{}}
}

// All returns every stored reminder.
func (r *ReminderRepo) All() []*entity.Reminder {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*entity.Reminder(nil), r.reminders...)
}

func (r *ReminderRepo) Create(_ context.Context, rem *entity.Reminder) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reminders = append(r.reminders, rem)
	return nil
}

func (r *ReminderRepo) CreateBatch(ctx context.Context, reminders []*entity.Reminder) error {
	for _, rem := range reminders {
		if err := r.Create(ctx, rem); err != nil {
			return err
		}
	}
	return nil
}

func (r *ReminderRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Reminder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, rem := range r.reminders {
		if rem.ID == id {
			return rem, nil
		}
	}
	return nil, notFound(domainerror.ErrCodeReminderNotFound, domainerror.ErrReminderNotFound, id)
}

func (r *ReminderRepo) FindByUserID(_ context.Context, userID uuid.UUID, filter adapter.ReminderFilter) ([]*entity.Reminder, error) {
	out := r.filter(func(rem *entity.Reminder) bool {
		return rem.UserID == userID &&
			(filter.Status == "" || rem.Status == filter.Status) &&
			(filter.Type == "" || rem.Type == filter.Type)
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].ScheduledDate.IsBefore(out[j].ScheduledDate) })
	return out, nil
}

func (r *ReminderRepo) FindDue(_ context.Context, date valueobject.HijriDate, now time.Time, limit int) ([]*entity.Reminder, error) {
	out := r.filter(func(rem *entity.Reminder) bool {
		awake := rem.Status == entity.ReminderStatusPending ||
			(rem.Status == entity.ReminderStatusSnoozed && (rem.SnoozedUntil == nil || !rem.SnoozedUntil.After(now)))
		return awake && !rem.ScheduledDate.IsAfter(date)
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].ScheduledDate.IsBefore(out[j].ScheduledDate) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *ReminderRepo) Exists(_ context.Context, userID uuid.UUID, assetID *uuid.UUID, t entity.ReminderType, date valueobject.HijriDate) (bool, error) {
	found := r.filter(func(rem *entity.Reminder) bool {
		return rem.UserID == userID && rem.Type == t && rem.ScheduledDate.Equals(date) &&
			sameAsset(rem.AssetID, assetID)
	})
	return len(found) > 0, nil
}

func (r *ReminderRepo) Update(_ context.Context, rem *entity.Reminder) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailUpdateFor[rem.ID] {
		return ErrInjected
	}
	return nil
}

func (r *ReminderRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, rem := range r.reminders {
		if rem.ID == id {
			r.reminders = append(r.reminders[:i], r.reminders[i+1:]...)
			return nil
		}
	}
	return notFound(domainerror.ErrCodeReminderNotFound, domainerror.ErrReminderNotFound, id)
}

func (r *ReminderRepo) DeleteByAssetID(_ context.Context, assetID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.reminders[:0]
	for _, rem := range r.reminders {
		if rem.AssetID == nil || *rem.AssetID != assetID {
			kept = append(kept, rem)
		}
	}
	r.reminders = kept
	return nil
}

func (r *ReminderRepo) filter(keep func(*entity.Reminder) bool) []*entity.Reminder {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Reminder
	for _, rem := range r.reminders {
		if keep(rem) {
			out = append(out, rem)
		}
	}
	return out
}

func sameAsset(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// PriceService returns fixed per-gram metal prices in any currency.
type PriceService struct {
	Gold   decimal.Decimal
	Silver decimal.Decimal
	Stocks map[string]decimal.Decimal
	// Fail makes every lookup return ErrInjected.
	Fail bool
}

func (p *PriceService) GoldPricePerGram(_ context.Context, c valueobject.Currency) (valueobject.Money, error) {
	return p.price(p.Gold, c)
}

func (p *PriceService) SilverPricePerGram(_ context.Context, c valueobject.Currency) (valueobject.Money, error) {
	return p.price(p.Silver, c)
}

func (p *PriceService) StockPrice(_ context.Context, symbol string, c valueobject.Currency) (valueobject.Money, error) {
	price, ok := p.Stocks[symbol]
	if !ok {
		return valueobject.Money{}, domainerror.NewZakatError(domainerror.ErrCodePriceUnavailable, "no price for "+symbol, domainerror.ErrPriceUnavailable)
	}
	return p.price(price, c)
}

func (p *PriceService) ConversionRate(_ context.Context, _, _ valueobject.Currency) (decimal.Decimal, error) {
	return decimal.NewFromInt(1), nil
}

func (p *PriceService) price(amount decimal.Decimal, c valueobject.Currency) (valueobject.Money, error) {
	if p.Fail {
		return valueobject.Money{}, ErrInjected
	}
	return valueobject.NewMoneyIn(amount, c)
}

// Calendar is an adapter.HijriCalendarService pinned to a fixed date.
type Calendar struct {
	Today valueobject.HijriDate
}

func (c *Calendar) CurrentDate(_ context.Context) (valueobject.HijriDate, error) {
	return c.Today, nil
}

func (c *Calendar) ToHijri(_ context.Context, t time.Time) (valueobject.HijriDate, error) {
	return valueobject.TodayFrom(t), nil
}

func (c *Calendar) ToGregorian(_ context.Context, d valueobject.HijriDate) (time.Time, error) {
	return time.Date(d.Year(), time.Month(d.Month()), d.Day(), 0, 0, 0, 0, time.UTC), nil
}

func (c *Calendar) RamadanStart(_ context.Context, year int) (valueobject.HijriDate, error) {
	return valueobject.NewHijriDate(year, 9, 1)
}

func (c *Calendar) DaysBetween(_ context.Context, start, end valueobject.HijriDate) (float64, error) {
	return start.ApproximateDaysUntil(end), nil
}

// Notifier records notifications instead of delivering them.
type Notifier struct {
	mu     sync.Mutex
	Pushes []adapter.PushNotification
	Emails []adapter.EmailNotification
	SMS    []string
	// Scheduled maps notification IDs to their delivery time.
	Scheduled map[string]time.Time
	// FailPushFor makes SendPush fail for the listed users.
	FailPushFor map[uuid.UUID]bool
}

// NewNotifier creates an empty Notifier.
func NewNotifier() *Notifier {
	return &Notifier{FailPushFor: map[uuid.UUID]bool{}, Scheduled: map[string]time.Time{}}
}

func (n *Notifier) SendPush(_ context.Context, p adapter.PushNotification) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.FailPushFor[p.UserID] {
		return ErrInjected
	}
	n.Pushes = append(n.Pushes, p)
	return nil
}

func (n *Notifier) SendEmail(_ context.Context, e adapter.EmailNotification) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Emails = append(n.Emails, e)
	return nil
}

func (n *Notifier) SendSMS(_ context.Context, phone, message string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.SMS = append(n.SMS, phone+": "+message)
	return nil
}

func (n *Notifier) Schedule(_ context.Context, p adapter.PushNotification, at time.Time) (string, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	id := p.ID
	if id == "" {
		id = uuid.NewString()
	}
	n.Scheduled[id] = at
	return id, nil
}

func (n *Notifier) CancelScheduled(_ context.Context, id string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	delete(n.Scheduled, id)
	return nil
}

func (n *Notifier) DispatchDue(_ context.Context, _ time.Time) (int, error) {
	return 0, nil
}
