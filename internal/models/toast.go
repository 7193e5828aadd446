package models

type ToastSeverity string

const (
	ToastSeveritySuccess ToastSeverity = "success"
	ToastSeverityError   ToastSeverity = "error"
	ToastSeverityInfo    ToastSeverity = "info"
)

// Toast is a short-lived, non-blocking user notification. Toasts are
// never removed by consumers; each one expires on its own after the
// bus TTL.
type Toast struct {
	ID       string        `json:"id"`
	Message  string        `json:"message"`
	Severity ToastSeverity `json:"severity"`
}
