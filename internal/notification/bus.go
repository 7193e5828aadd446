package notification

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/aegisops/aegis-api/internal/models"
)

// DefaultTTL matches the dashboard toast lifetime.
const DefaultTTL = 3 * time.Second

// Bus holds the transient user-facing toasts. Every toast expires on
// its own after the bus TTL; nothing else removes a toast early.
// Show never deduplicates, and expiry is allowed to race harmlessly
// with registry mutations.
type Bus struct {
	ttl       time.Duration
	logger    zerolog.Logger
	notifiers []Notifier

	mu     sync.Mutex
	toasts []models.Toast
}

func NewBus(ttl time.Duration, logger zerolog.Logger, notifiers ...Notifier) *Bus {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	active := make([]Notifier, 0, len(notifiers))
	for _, notifier := range notifiers {
		if notifier != nil {
			active = append(active, notifier)
		}
	}
	return &Bus{
		ttl:       ttl,
		logger:    logger.With().Str("component", "notification_bus").Logger(),
		notifiers: active,
	}
}

// Show enqueues a toast and schedules its own removal after the TTL.
func (b *Bus) Show(message string, severity models.ToastSeverity) models.Toast {
	switch severity {
	case models.ToastSeveritySuccess, models.ToastSeverityError, models.ToastSeverityInfo:
	default:
		severity = models.ToastSeverityInfo
	}

	toast := models.Toast{
		ID:       uuid.NewString(),
		Message:  message,
		Severity: severity,
	}

	b.mu.Lock()
	b.toasts = append(b.toasts, toast)
	b.mu.Unlock()

	time.AfterFunc(b.ttl, func() { b.remove(toast.ID) })

	for _, notifier := range b.notifiers {
		if err := notifier.Notify(toast); err != nil {
			b.logger.Warn().Err(err).Str("toast_id", toast.ID).Msg("failed to deliver toast")
		}
	}
	return toast
}

// List returns the live toasts oldest-first, as a copy.
func (b *Bus) List() []models.Toast {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]models.Toast, len(b.toasts))
	copy(out, b.toasts)
	return out
}

func (b *Bus) remove(id string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, toast := range b.toasts {
		if toast.ID == id {
			b.toasts = append(b.toasts[:i], b.toasts[i+1:]...)
			return
		}
	}
}
