// File: handlers/bundle.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gebedsrooster/middleware"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Verifier backs the ID-token middleware.
	Verifier middleware.TokenVerifier
	// Metrics serves GET /metrics.
	Metrics http.Handler

	// Schedule endpoints
	GetScheduleHandler    gin.HandlerFunc
	GetStatsHandler       gin.HandlerFunc
	GetOptionsHandler     gin.HandlerFunc
	GetSlotHandler        gin.HandlerFunc
	StreamScheduleHandler gin.HandlerFunc

	// Registration endpoints
	SignUpHandler             gin.HandlerFunc
	QuickSignUpHandler        gin.HandlerFunc
	DeleteRegistrationHandler gin.HandlerFunc

	// Account endpoints
	SignInHandler               gin.HandlerFunc
	AccountSignUpHandler        gin.HandlerFunc
	SignOutHandler              gin.HandlerFunc
	RequestPasswordResetHandler gin.HandlerFunc
	ConfirmPasswordResetHandler gin.HandlerFunc
	UpdateProfileHandler        gin.HandlerFunc
	MeHandler                   gin.HandlerFunc
}

// NewHandlerBundle wires the handler methods into a bundle.
func NewHandlerBundle(schedule *ScheduleHandler, reg *RegistrationHandler, auth *AuthHandler, verifier middleware.TokenVerifier, metrics http.Handler) *HandlerBundle {
	return &HandlerBundle{
		Verifier: verifier,
		Metrics:  metrics,

		GetScheduleHandler:    schedule.GetScheduleHandler,
		GetStatsHandler:       schedule.GetStatsHandler,
		GetOptionsHandler:     schedule.GetOptionsHandler,
		GetSlotHandler:        schedule.GetSlotHandler,
		StreamScheduleHandler: schedule.StreamScheduleHandler,

		SignUpHandler:             reg.SignUpHandler,
		QuickSignUpHandler:        reg.QuickSignUpHandler,
		DeleteRegistrationHandler: reg.DeleteRegistrationHandler,

		SignInHandler:               auth.SignInHandler,
		AccountSignUpHandler:        auth.SignUpHandler,
		SignOutHandler:              auth.SignOutHandler,
		RequestPasswordResetHandler: auth.RequestPasswordResetHandler,
		ConfirmPasswordResetHandler: auth.ConfirmPasswordResetHandler,
		UpdateProfileHandler:        auth.UpdateProfileHandler,
		MeHandler:                   auth.MeHandler,
	}
}
