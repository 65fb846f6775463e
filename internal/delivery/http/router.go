package http

import (
	"net/http"

	"surgery-reservation-system/internal/delivery/http/handler"
	"surgery-reservation-system/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router              *mux.Router
	authHandler         *handler.AuthHandler
	appointmentHandler  *handler.AppointmentHandler
	notificationHandler *handler.NotificationHandler
	roomHandler         *handler.RoomHandler
	authMiddleware      *middleware.AuthMiddleware
	corsMiddleware      *middleware.CORSMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	appointmentHandler *handler.AppointmentHandler,
	notificationHandler *handler.NotificationHandler,
	roomHandler *handler.RoomHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:              mux.NewRouter(),
		authHandler:         authHandler,
		appointmentHandler:  appointmentHandler,
		notificationHandler: notificationHandler,
		roomHandler:         roomHandler,
		authMiddleware:      authMiddleware,
		corsMiddleware:      corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register", r.authHandler.RegisterPatient).Methods(http.MethodPost)
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.GetCurrentUser).Methods(http.MethodGet)

	// Staff account creation (admin only)
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireAdmin)
	admin.HandleFunc("/staff", r.authHandler.RegisterStaff).Methods(http.MethodPost)

	// Appointment routes (all authenticated)
	appointments := api.PathPrefix("/appointments").Subrouter()
	appointments.Use(r.authMiddleware.Authenticate)

	// Read endpoints available to every authenticated user
	appointments.HandleFunc("/daily", r.appointmentHandler.GetByDate).Methods(http.MethodGet)
	appointments.HandleFunc("/weekly", r.appointmentHandler.GetWeek).Methods(http.MethodGet)
	appointments.HandleFunc("/my", r.appointmentHandler.GetMyAppointments).Methods(http.MethodGet)
	appointments.HandleFunc("/rooms/{id}/schedule", r.appointmentHandler.GetRoomSchedule).Methods(http.MethodGet)
	appointments.HandleFunc("/beds/{id}/schedule", r.appointmentHandler.GetBedSchedule).Methods(http.MethodGet)
	appointments.HandleFunc("", r.appointmentHandler.SearchByStatuses).Methods(http.MethodGet)
	appointments.HandleFunc("/pending-confirmations", r.appointmentHandler.GetPendingConfirmations).Methods(http.MethodGet)
	appointments.HandleFunc("/{id}", r.appointmentHandler.GetAppointment).Methods(http.MethodGet)

	// Scheduling (admin or attending doctor)
	scheduling := api.PathPrefix("/appointments").Subrouter()
	scheduling.Use(r.authMiddleware.Authenticate)
	scheduling.Use(middleware.RequireAdminOrDoctor)
	scheduling.HandleFunc("", r.appointmentHandler.CreateAppointment).Methods(http.MethodPost)
	scheduling.HandleFunc("/{id}", r.appointmentHandler.UpdateAppointment).Methods(http.MethodPut)
	scheduling.HandleFunc("/{id}", r.appointmentHandler.DeleteAppointment).Methods(http.MethodDelete)
	scheduling.HandleFunc("/{id}/notify", r.appointmentHandler.NotifyPatient).Methods(http.MethodPost)
	scheduling.HandleFunc("/{id}/start", r.appointmentHandler.StartSurgery).Methods(http.MethodPost)
	scheduling.HandleFunc("/{id}/complete", r.appointmentHandler.CompleteSurgery).Methods(http.MethodPost)
	scheduling.HandleFunc("/{id}/postpone", r.appointmentHandler.PostponeAppointment).Methods(http.MethodPost)
	scheduling.HandleFunc("/{id}/reschedule", r.appointmentHandler.RescheduleAppointment).Methods(http.MethodPost)
	scheduling.HandleFunc("/{id}/force-cancel", r.appointmentHandler.ForceCancelAppointment).Methods(http.MethodPost)

	// Team confirmation (anesthesiologist or nurse)
	team := api.PathPrefix("/appointments").Subrouter()
	team.Use(r.authMiddleware.Authenticate)
	team.Use(middleware.RequireSurgicalTeam)
	team.HandleFunc("/{id}/confirm", r.appointmentHandler.ConfirmByTeamMember).Methods(http.MethodPost)

	// Final confirmation (attending doctor)
	doctor := api.PathPrefix("/appointments").Subrouter()
	doctor.Use(r.authMiddleware.Authenticate)
	doctor.Use(middleware.RequireDoctor)
	doctor.HandleFunc("/{id}/final-confirm", r.appointmentHandler.DoctorFinalConfirm).Methods(http.MethodPost)

	// Self-service cancellation (patient)
	patient := api.PathPrefix("/appointments").Subrouter()
	patient.Use(r.authMiddleware.Authenticate)
	patient.Use(middleware.RequirePatient)
	patient.HandleFunc("/{id}/cancel", r.appointmentHandler.CancelAppointment).Methods(http.MethodPost)

	// Notification routes
	notifications := api.PathPrefix("/notifications").Subrouter()
	notifications.Use(r.authMiddleware.Authenticate)
	notifications.HandleFunc("", r.notificationHandler.GetMyNotifications).Methods(http.MethodGet)
	notifications.HandleFunc("/unread-count", r.notificationHandler.GetUnreadCount).Methods(http.MethodGet)
	notifications.HandleFunc("/{id}/read", r.notificationHandler.MarkAsRead).Methods(http.MethodPost)

	// Operating room routes
	rooms := api.PathPrefix("/rooms").Subrouter()
	rooms.Use(r.authMiddleware.Authenticate)
	rooms.HandleFunc("", r.roomHandler.ListRooms).Methods(http.MethodGet)
	rooms.HandleFunc("/{id}", r.roomHandler.GetRoom).Methods(http.MethodGet)
	rooms.HandleFunc("/{id}/beds", r.roomHandler.ListBedsByRoom).Methods(http.MethodGet)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
