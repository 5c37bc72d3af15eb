package http

import (
	"net/http"

	"trial-bridge/internal/delivery/http/handler"
	"trial-bridge/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

// Handlers groups every HTTP handler the router mounts.
type Handlers struct {
	Auth           *handler.AuthHandler
	Trial          *handler.TrialHandler
	Application    *handler.ApplicationHandler
	Patient        *handler.PatientHandler
	HealthRecord   *handler.HealthRecordHandler
	Education      *handler.EducationHandler
	Message        *handler.MessageHandler
	Forum          *handler.ForumHandler
	Reward         *handler.RewardHandler
	RiskAssessment *handler.RiskAssessmentHandler
	Appointment    *handler.AppointmentHandler
	AuditLog       *handler.AuditLogHandler
}

type Router struct {
	router         *mux.Router
	handlers       Handlers
	authMiddleware *middleware.AuthMiddleware
	corsMiddleware *middleware.CORSMiddleware
}

func NewRouter(
	handlers Handlers,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:         mux.NewRouter(),
		handlers:       handlers,
		authMiddleware: authMiddleware,
		corsMiddleware: corsMiddleware,
	}
}

// Setup registers every route and returns the root handler. CORS wraps the
// whole router so preflight requests are answered for any path.
func (r *Router) Setup() http.Handler {
	h := r.handlers

	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register/patient", h.Auth.RegisterPatient).Methods(http.MethodPost)
	auth.HandleFunc("/register/trial-team", h.Auth.RegisterTrialTeam).Methods(http.MethodPost)
	auth.HandleFunc("/login/patient", h.Auth.LoginPatient).Methods(http.MethodPost)
	auth.HandleFunc("/login/trial-team", h.Auth.LoginTrialTeam).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", h.Auth.RefreshToken).Methods(http.MethodPost)

	// Catalog routes (public)
	api.HandleFunc("/trials", h.Trial.GetTrials).Methods(http.MethodGet)
	api.HandleFunc("/trials/{id}", h.Trial.GetTrial).Methods(http.MethodGet)
	api.HandleFunc("/resources", h.Education.GetResources).Methods(http.MethodGet)
	api.HandleFunc("/resources/{id}", h.Education.GetResource).Methods(http.MethodGet)
	api.HandleFunc("/resources/{id}/feedback", h.Education.GetResourceFeedback).Methods(http.MethodGet)
	api.HandleFunc("/resources/{id}/rating", h.Education.GetResourceRating).Methods(http.MethodGet)
	api.HandleFunc("/forum/posts", h.Forum.GetPosts).Methods(http.MethodGet)
	api.HandleFunc("/forum/posts/{id}", h.Forum.GetPost).Methods(http.MethodGet)
	api.HandleFunc("/rewards", h.Reward.GetRewards).Methods(http.MethodGet)

	// Any logged-in user
	authed := api.NewRoute().Subrouter()
	authed.Use(r.authMiddleware.Authenticate)
	authed.HandleFunc("/auth/logout", h.Auth.Logout).Methods(http.MethodPost)
	authed.HandleFunc("/auth/me", h.Auth.GetCurrentUser).Methods(http.MethodGet)
	authed.HandleFunc("/messages", h.Message.GetMyMessages).Methods(http.MethodGet)
	authed.HandleFunc("/messages", h.Message.SendMessage).Methods(http.MethodPost)
	authed.HandleFunc("/messages/conversation/{userId}", h.Message.GetConversation).Methods(http.MethodGet)
	authed.HandleFunc("/messages/{id}/read", h.Message.MarkAsRead).Methods(http.MethodPut)
	authed.HandleFunc("/forum/posts", h.Forum.CreatePost).Methods(http.MethodPost)
	authed.HandleFunc("/forum/posts/{id}/comments", h.Forum.AddComment).Methods(http.MethodPost)

	// Feedback lives under /resources but only patients may leave it
	feedback := api.NewRoute().Subrouter()
	feedback.Use(r.authMiddleware.Authenticate)
	feedback.Use(middleware.RequirePatient)
	feedback.HandleFunc("/resources/{id}/feedback", h.Education.SubmitFeedback).Methods(http.MethodPost)

	// Patient routes
	patient := api.PathPrefix("/patient").Subrouter()
	patient.Use(r.authMiddleware.Authenticate)
	patient.Use(middleware.RequirePatient)
	patient.HandleFunc("/profile", h.Patient.GetSelfProfile).Methods(http.MethodGet)
	patient.HandleFunc("/profile", h.Patient.UpdateSelfProfile).Methods(http.MethodPut)
	patient.HandleFunc("/health-records", h.HealthRecord.GetMyHealthRecords).Methods(http.MethodGet)
	patient.HandleFunc("/health-records", h.HealthRecord.AddHealthRecord).Methods(http.MethodPost)
	patient.HandleFunc("/applications", h.Application.GetMyApplications).Methods(http.MethodGet)
	patient.HandleFunc("/applications", h.Application.ApplyForTrial).Methods(http.MethodPost)
	patient.HandleFunc("/points", h.Reward.GetMyPoints).Methods(http.MethodGet)
	patient.HandleFunc("/achievements", h.Reward.GetMyAchievements).Methods(http.MethodGet)
	patient.HandleFunc("/rewards/{id}/redeem", h.Reward.RedeemReward).Methods(http.MethodPost)
	patient.HandleFunc("/risk-assessments", h.RiskAssessment.AssessTrialRisk).Methods(http.MethodPost)
	patient.HandleFunc("/appointments", h.Appointment.GetMyAppointments).Methods(http.MethodGet)
	patient.HandleFunc("/appointments", h.Appointment.ScheduleAppointment).Methods(http.MethodPost)
	patient.HandleFunc("/appointments/{id}", h.Appointment.CancelAppointment).Methods(http.MethodDelete)

	// Trial team routes
	team := api.PathPrefix("/team").Subrouter()
	team.Use(r.authMiddleware.Authenticate)
	team.Use(middleware.RequireTrialTeam)
	team.HandleFunc("/applications", h.Application.GetAllApplications).Methods(http.MethodGet)
	team.HandleFunc("/applications/{id}/status", h.Application.UpdateApplicationStatus).Methods(http.MethodPut)
	team.HandleFunc("/trials/{id}/enrolled", h.Trial.GetEnrolledPatients).Methods(http.MethodGet)
	team.HandleFunc("/patients", h.Patient.GetAllPatients).Methods(http.MethodGet)
	team.HandleFunc("/patients/{email}", h.Patient.GetPatient).Methods(http.MethodGet)
	team.HandleFunc("/patients/{email}/health-records", h.HealthRecord.GetPatientHealthRecords).Methods(http.MethodGet)
	team.HandleFunc("/patients/{email}/achievements/{id}", h.Reward.AwardAchievement).Methods(http.MethodPost)
	team.HandleFunc("/audit-logs", h.AuditLog.GetAllAuditLogs).Methods(http.MethodGet)
	team.HandleFunc("/audit-logs/{id}", h.AuditLog.GetAuditLog).Methods(http.MethodGet)

	return r.corsMiddleware.Handle(r.router)
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
