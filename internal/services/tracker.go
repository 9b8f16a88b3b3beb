package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"kakei/internal/core"
	"kakei/internal/events"
	applog "kakei/internal/log"
	"kakei/internal/metrics"
	"kakei/internal/notify"
	ports "kakei/internal/sheets"
	"kakei/internal/store"
)

var (
	ErrValidation          = errors.New("validation failed")
	ErrNotConfirmed        = errors.New("deletion not confirmed")
	ErrSyncNotConfigured   = errors.New("sync URL not configured")
	ErrNothingToSync       = errors.New("no data to sync")
	ErrSyncFailed          = errors.New("sync failed")
	ErrNotifyNotConfigured = errors.New("notification token not configured")
	ErrNotifyFailed        = errors.New("notification failed")
)

// Tracker runs the user commands against the record store and the two
// outbound integrations.
type Tracker struct {
	store      *store.RecordStore
	categories core.Categories
	exporter   ports.Exporter
	notifier   notify.Notifier
	identity   notify.Identity
	publisher  events.Publisher
	now        func() time.Time
}

type Option func(*Tracker)

// WithExporter enables sync. Without it OnSync reports ErrSyncNotConfigured.
func WithExporter(e ports.Exporter) Option {
	return func(t *Tracker) { t.exporter = e }
}

// WithNotifier enables the completion notification.
func WithNotifier(n notify.Notifier, id notify.Identity) Option {
	return func(t *Tracker) {
		t.notifier = n
		t.identity = id
	}
}

func WithPublisher(p events.Publisher) Option {
	return func(t *Tracker) { t.publisher = p }
}

func WithCategories(c core.Categories) Option {
	return func(t *Tracker) { t.categories = c }
}

func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

func NewTracker(st *store.RecordStore, opts ...Option) *Tracker {
	t := &Tracker{
		store:      st,
		categories: core.DefaultCategories(),
		now:        time.Now,
	}
	for _, o := range opts {
		o(t)
	}
	return t
}

// Categories returns the labels offered by the form, in display order.
func (t *Tracker) Categories() core.Categories {
	return append(core.Categories(nil), t.categories...)
}

// Today is the default date for the create form.
func (t *Tracker) Today() core.Date {
	return core.DateOf(t.now())
}

// SyncConfigured reports whether an exporter is wired.
func (t *Tracker) SyncConfigured() bool { return t.exporter != nil }

// NotifyConfigured reports whether a notifier is wired.
func (t *Tracker) NotifyConfigured() bool { return t.notifier != nil }

// OnAdd validates the form, stores a new record and reports the outcome.
// The store is untouched when validation fails.
func (t *Tracker) OnAdd(ctx context.Context, form core.AddForm, r Reporter) (core.Record, error) {
	rec, err := form.Record(t.categories)
	if err != nil {
		r.ReportError(validationMessage(err))
		metrics.CountCommand("add", metrics.OutcomeRejected)
		return core.Record{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	rec, err = t.store.AddNew(ctx, rec, t.now())
	if err != nil {
		r.ReportError("failed to save expense: " + err.Error())
		metrics.CountCommand("add", metrics.OutcomeFailed)
		return core.Record{}, fmt.Errorf("save expense: %w", err)
	}

	applog.ForComponent(ctx, applog.ComponentTracker).InfoContext(ctx, "Expense added",
		applog.FieldOperation, applog.OpAdd,
		"id", rec.ID,
		"date", rec.Date.String(),
		"category", rec.Category,
		"amount", rec.Amount)
	t.publish(ctx, events.Added(rec, t.now()))
	metrics.CountCommand("add", metrics.OutcomeOK)
	r.ReportSuccess("expense added")
	return rec, nil
}

// OnDelete removes the record with id once the user has confirmed. An id
// that is not present still counts as deleted.
func (t *Tracker) OnDelete(ctx context.Context, id int64, confirmed bool, r Reporter) error {
	if !confirmed {
		metrics.CountCommand("delete", metrics.OutcomeRejected)
		return ErrNotConfirmed
	}

	removed, err := t.store.Remove(ctx, id)
	if err != nil {
		r.ReportError("failed to delete expense: " + err.Error())
		metrics.CountCommand("delete", metrics.OutcomeFailed)
		return fmt.Errorf("delete expense %d: %w", id, err)
	}

	applog.ForComponent(ctx, applog.ComponentTracker).InfoContext(ctx, "Expense deleted",
		applog.FieldOperation, applog.OpDelete,
		"id", id,
		"found", removed)
	if removed {
		t.publish(ctx, events.Removed(id, t.now()))
	}
	metrics.CountCommand("delete", metrics.OutcomeOK)
	r.ReportSuccess("expense deleted")
	return nil
}

// OnSync exports the full collection and returns how many records were sent.
func (t *Tracker) OnSync(ctx context.Context, r Reporter) (int, error) {
	if t.exporter == nil {
		r.ReportError("sync URL is not configured")
		metrics.CountCommand("sync", metrics.OutcomeRejected)
		return 0, ErrSyncNotConfigured
	}

	records, err := t.store.LoadAll(ctx)
	if err != nil {
		r.ReportError("sync failed: " + err.Error())
		metrics.CountCommand("sync", metrics.OutcomeFailed)
		return 0, fmt.Errorf("load records: %w", err)
	}
	if len(records) == 0 {
		r.ReportError("no data to sync")
		metrics.CountCommand("sync", metrics.OutcomeRejected)
		return 0, ErrNothingToSync
	}

	r.ReportInfo("syncing...")
	if err := t.exporter.Export(ctx, records); err != nil {
		applog.ForComponent(ctx, applog.ComponentSync).ErrorContext(ctx, "Sync failed",
			applog.FieldOperation, applog.OpSync,
			"count", len(records),
			applog.FieldError, err)
		r.ReportError("sync failed: " + err.Error())
		metrics.CountCommand("sync", metrics.OutcomeFailed)
		return 0, fmt.Errorf("%w: %w", ErrSyncFailed, err)
	}

	metrics.CountCommand("sync", metrics.OutcomeOK)
	r.ReportSuccess(fmt.Sprintf("synced %d records", len(records)))
	return len(records), nil
}

// OnNotify sends the completion notification stamped with the current time.
func (t *Tracker) OnNotify(ctx context.Context, r Reporter) error {
	if t.notifier == nil {
		r.ReportError("notification token is not configured")
		metrics.CountCommand("notify", metrics.OutcomeRejected)
		return ErrNotifyNotConfigured
	}

	r.ReportInfo("sending notification...")
	msg := notify.Compose(t.identity, t.now())
	if err := t.notifier.Notify(ctx, msg); err != nil {
		applog.ForComponent(ctx, applog.ComponentNotify).ErrorContext(ctx, "Notification failed",
			applog.FieldOperation, applog.OpNotify,
			applog.FieldError, err)
		r.ReportError("notification failed: " + err.Error())
		metrics.CountCommand("notify", metrics.OutcomeFailed)
		return fmt.Errorf("%w: %w", ErrNotifyFailed, err)
	}

	metrics.CountCommand("notify", metrics.OutcomeOK)
	r.ReportSuccess("notification sent")
	return nil
}

func (t *Tracker) publish(ctx context.Context, e events.Event) {
	if t.publisher == nil {
		return
	}
	if err := t.publisher.Publish(ctx, e); err != nil {
		applog.ForComponent(ctx, applog.ComponentEvents).ErrorContext(ctx, "Failed to publish record event",
			"kind", e.Kind,
			"id", e.ID,
			applog.FieldError, err)
	}
}

func validationMessage(err error) string {
	switch {
	case errors.Is(err, core.ErrInvalidDate):
		return "please enter a valid date"
	case errors.Is(err, core.ErrEmptyCategory):
		return "please choose a category"
	case errors.Is(err, core.ErrUnknownCategory):
		return "please choose one of the listed categories"
	case errors.Is(err, core.ErrInvalidAmount):
		return "amount must be a whole number of at least 1"
	default:
		return err.Error()
	}
}
