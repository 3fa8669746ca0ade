// Package http exposes the REST API.
package http

import (
	"net/http"

	"caredesk/internal/adapters/http/middleware"
	"caredesk/internal/adapters/http/response"
	"caredesk/internal/config"
	"caredesk/internal/logger"
)

type RouterDeps struct {
	Auth       *AuthHandler
	Account    *AccountHandler
	Patient    *PatientHandler
	Doctor     *DoctorHandler
	Assignment *AssignmentHandler
	Health     *HealthHandler

	// Ws is optional.
	Ws http.Handler

	Authenticator *middleware.Authenticator
	Writer        response.ResponseWriter
	Log           logger.Logger
}

func NewRouter(cfg *config.Config, deps *RouterDeps) http.Handler {
	mux := http.NewServeMux()

	globalMw := middleware.New()
	globalMw.Use(middleware.RequestID())
	globalMw.Use(middleware.Logger(deps.Log))
	globalMw.Use(middleware.Recover(deps.Log, deps.Writer))
	globalMw.Use(middleware.CORS(cfg))

	userStack := middleware.New()
	userStack.Use(middleware.AuthGuard(deps.Authenticator, deps.Writer))

	guarded := func(h http.HandlerFunc) http.Handler {
		return userStack.Then(h)
	}

	mux.HandleFunc("GET /health", deps.Health.Check)

	if deps.Ws != nil {
		mux.Handle("GET /ws", deps.Ws)
	}

	mux.HandleFunc("POST /api/auth/register", deps.Auth.Register)
	mux.HandleFunc("POST /api/auth/login", deps.Auth.Login)
	mux.Handle("POST /api/auth/logout", guarded(deps.Auth.Logout))
	mux.Handle("GET /api/auth/me", guarded(deps.Auth.User))

	mux.Handle("DELETE /api/account", guarded(deps.Account.Destroy))

	mux.Handle("GET /api/patients", guarded(deps.Patient.Index))
	mux.Handle("POST /api/patients", guarded(deps.Patient.Store))
	mux.Handle("GET /api/patients/{id}", guarded(deps.Patient.Show))
	mux.Handle("PUT /api/patients/{id}", guarded(deps.Patient.Update))
	mux.Handle("DELETE /api/patients/{id}", guarded(deps.Patient.Destroy))

	mux.HandleFunc("GET /api/doctors", deps.Doctor.Index)
	mux.HandleFunc("GET /api/doctors/{id}", deps.Doctor.Show)
	mux.Handle("POST /api/doctors", guarded(deps.Doctor.Store))
	mux.Handle("PUT /api/doctors/{id}", guarded(deps.Doctor.Update))
	mux.Handle("DELETE /api/doctors/{id}", guarded(deps.Doctor.Destroy))

	mux.Handle("GET /api/assignments", guarded(deps.Assignment.Index))
	mux.Handle("POST /api/assignments", guarded(deps.Assignment.Store))
	mux.Handle("GET /api/assignments/{patientId}", guarded(deps.Assignment.ForPatient))
	mux.Handle("DELETE /api/assignments/{id}", guarded(deps.Assignment.Destroy))

	return globalMw.Apply(mux)
}
