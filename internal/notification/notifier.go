package notification

import (
	"github.com/rs/zerolog"

	"github.com/aegisops/aegis-api/internal/models"
)

// Notifier receives a copy of every toast shown on the bus. Delivery
// failures are logged, never propagated to the caller of Show.
type Notifier interface {
	Notify(toast models.Toast) error
}

// LogNotifier mirrors toasts into the structured log so operators can
// reconstruct what the dashboard displayed.
type LogNotifier struct {
	logger zerolog.Logger
}

func NewLogNotifier(logger zerolog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger.With().Str("component", "toast").Logger()}
}

func (n *LogNotifier) Notify(toast models.Toast) error {
	n.logger.Info().
		Str("toast_id", toast.ID).
		Str("severity", string(toast.Severity)).
		Msg(toast.Message)
	return nil
}
