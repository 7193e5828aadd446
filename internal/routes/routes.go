package routes

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/aegisops/aegis-api/internal/handlers"
)

// NewRouter sets up the API routes
func NewRouter(
	auth *handlers.AuthHandler,
	alarm *handlers.AlarmHandler,
	issue *handlers.IssueHandler,
	toast *handlers.ToastHandler,
	camera *handlers.CameraHandler,
	vehicle *handlers.VehicleHandler,
) *mux.Router {
	router := mux.NewRouter()

	// Health check route
	router.HandleFunc("/health", handlers.HealthCheck).Methods(http.MethodGet)

	// Public auth endpoint
	router.HandleFunc("/api/login", auth.Login).Methods(http.MethodPost)

	// Everything else requires an authenticated session.
	api := router.PathPrefix("/api").Subrouter()
	api.Use(auth.JWTMiddleware)

	api.HandleFunc("/logout", auth.Logout).Methods(http.MethodPost)

	api.HandleFunc("/alarms", alarm.List).Methods(http.MethodGet)
	api.HandleFunc("/alarms", alarm.Report).Methods(http.MethodPost)
	api.HandleFunc("/alarms/{alarmID}", alarm.Get).Methods(http.MethodGet)
	api.HandleFunc("/alarms/{alarmID}/status", alarm.UpdateStatus).Methods(http.MethodPut)
	api.HandleFunc("/alarms/{alarmID}/issue", issue.CreateFromAlarm).Methods(http.MethodPost)

	api.HandleFunc("/issues", issue.List).Methods(http.MethodGet)
	api.HandleFunc("/issues", issue.Create).Methods(http.MethodPost)
	api.HandleFunc("/issues/{issueID}", issue.Get).Methods(http.MethodGet)
	api.HandleFunc("/issues/{issueID}/actions", issue.HandleAction).Methods(http.MethodPost)

	api.HandleFunc("/toasts", toast.List).Methods(http.MethodGet)
	api.HandleFunc("/cameras", camera.List).Methods(http.MethodGet)
	api.HandleFunc("/vehicles", vehicle.List).Methods(http.MethodGet)
	api.HandleFunc("/vehicles/{vehicleID}/watchlist", vehicle.ToggleWatchlist).Methods(http.MethodPut)

	return router
}
