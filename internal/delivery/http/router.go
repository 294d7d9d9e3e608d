package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"eventmanagement/internal/delivery/http/controllers"
	"eventmanagement/internal/delivery/http/middleware"
	"eventmanagement/internal/domain"
)

// NewRouter initializes the HTTP router with all application routes.
// Event mutations require the admin role; registration routes require
// authentication; event reads and auth endpoints are public.
func NewRouter(
	authController *controllers.AuthController,
	eventController *controllers.EventController,
	registrationController *controllers.RegistrationController,
	verifier domain.TokenVerifier,
) *http.ServeMux {
	mux := http.NewServeMux()

	withAuth := middleware.RequireAuth(verifier)
	adminOnly := func(h http.HandlerFunc) http.HandlerFunc {
		return withAuth(middleware.RequireRole(domain.RoleAdmin)(h))
	}

	// Auth
	mux.HandleFunc("POST /auth/signup", authController.SignUp)
	mux.HandleFunc("POST /auth/login", authController.Login)
	mux.HandleFunc("POST /auth/change-password", withAuth(authController.ChangePassword))

	// Events
	mux.HandleFunc("GET /events", eventController.List)
	mux.HandleFunc("GET /events/available", eventController.ListAvailable)
	mux.HandleFunc("GET /events/search", eventController.Search)
	mux.HandleFunc("GET /events/date/{date}", eventController.ListByDate)
	mux.HandleFunc("GET /events/{id}", eventController.GetByID)
	mux.HandleFunc("POST /events", adminOnly(eventController.Create))
	mux.HandleFunc("PATCH /events/{id}/title", adminOnly(eventController.UpdateTitle))
	mux.HandleFunc("PATCH /events/{id}/location", adminOnly(eventController.UpdateLocation))
	mux.HandleFunc("PATCH /events/{id}/date", adminOnly(eventController.UpdateDate))
	mux.HandleFunc("PATCH /events/{id}/participants", adminOnly(eventController.UpdateParticipants))
	mux.HandleFunc("DELETE /events/{id}", adminOnly(eventController.Delete))

	// Registrations
	mux.HandleFunc("GET /registrations", withAuth(registrationController.List))
	mux.HandleFunc("GET /registrations/{id}", withAuth(registrationController.GetByID))
	mux.HandleFunc("GET /registrations/user/{id}", withAuth(registrationController.ListByUser))
	mux.HandleFunc("GET /registrations/event/{id}", withAuth(registrationController.ListByEvent))
	mux.HandleFunc("POST /registrations", withAuth(registrationController.Create))
	mux.HandleFunc("DELETE /registrations/{id}", withAuth(registrationController.DeleteByID))
	mux.HandleFunc("DELETE /registrations/user/{userID}/event/{eventID}", withAuth(registrationController.DeleteByUserAndEvent))
	mux.HandleFunc("DELETE /registrations/user/{id}", withAuth(registrationController.DeleteAllByUser))
	mux.HandleFunc("DELETE /registrations/event/{id}", withAuth(registrationController.DeleteAllByEvent))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
