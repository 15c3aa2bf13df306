package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"gebedsrooster/models"
	"gebedsrooster/services/registration"
)

type RegistrationHandler struct {
	Service registration.RegistrationService
}

func NewRegistrationHandler(svc registration.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{Service: svc}
}

// SignUpHandler handles POST /api/registrations.
func (h *RegistrationHandler) SignUpHandler(c *gin.Context) {
	logger := getLogger(c)

	var req models.SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Info("Invalid sign-up request", zap.Error(err))
		respondBindError(c, err)
		return
	}
	req.OwnerID = c.GetString("userID")

	regs, err := h.Service.SignUp(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	public := make([]models.PublicRegistration, len(regs))
	for i, r := range regs {
		public[i] = r.Public()
	}
	logger.Info("Sign-up stored", zap.Int("count", len(regs)), zap.Time("date", req.Date))
	c.JSON(http.StatusCreated, gin.H{"registrations": public})
}

// QuickSignUpHandler handles POST /api/registrations/quick.
func (h *RegistrationHandler) QuickSignUpHandler(c *gin.Context) {
	logger := getLogger(c)

	var req models.QuickSignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Info("Invalid quick sign-up request", zap.Error(err))
		respondBindError(c, err)
		return
	}
	req.OwnerID = c.GetString("userID")

	reg, err := h.Service.QuickSignUp(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"registration": reg.Public()})
}

// DeleteRegistrationHandler handles DELETE /api/registrations/:id. The email
// proof comes from a JSON body or the email query parameter.
func (h *RegistrationHandler) DeleteRegistrationHandler(c *gin.Context) {
	var req models.DeleteRegistrationRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindError(c, err)
			return
		}
	}
	if req.Email == "" {
		req.Email = c.Query("email")
	}
	req.RequesterUID = c.GetString("userID")

	id := c.Param("id")
	if err := h.Service.Delete(c.Request.Context(), id, req); err != nil {
		respondError(c, err)
		return
	}
	getLogger(c).Info("Registration deleted", zap.String("id", id))
	c.JSON(http.StatusOK, gin.H{"message": "Registration deleted"})
}
