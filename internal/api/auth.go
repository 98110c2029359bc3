package api

import (
	"net/http" // HTTP status codes

	"moneyvault/internal/utils" // JWT utility functions
	"moneyvault/internal/vault"

	"github.com/gin-gonic/gin" // Gin web framework
)

// SetupRequest is the first-run admin creation payload.
type SetupRequest struct {
	Name       string `json:"name"`
	PIN        string `json:"pin"`
	ConfirmPIN string `json:"confirm_pin"`
}

// LoginRequest carries only the PIN; principals are identified by it.
type LoginRequest struct {
	PIN string `json:"pin"`
}

// AuthResponse returns the session token and the principal it belongs to.
type AuthResponse struct {
	Token     string            `json:"token"`
	Principal PrincipalResponse `json:"principal"`
}

// SetupHandler performs first-run setup and logs the new admin in.
func SetupHandler(dir *vault.Directory, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SetupRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		admin, err := dir.Initialize(req.Name, req.PIN, req.ConfirmPIN)
		if err != nil {
			abortError(c, err)
			return
		}
		token, err := utils.GenerateJWT(admin.ID, jwtSecret)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}
		c.JSON(http.StatusCreated, AuthResponse{Token: token, Principal: toPrincipalResponse(admin)})
	}
}

// LoginHandler authenticates a PIN and returns a session token. Failures
// carry a generic message regardless of cause.
func LoginHandler(dir *vault.Directory, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		p, err := dir.Authenticate(req.PIN)
		if err != nil {
			abortError(c, err)
			return
		}
		token, err := utils.GenerateJWT(p.ID, jwtSecret)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}
		c.JSON(http.StatusOK, AuthResponse{Token: token, Principal: toPrincipalResponse(p)})
	}
}

// LogoutHandler clears the persisted session.
func LogoutHandler(session *vault.Session) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := session.Logout(); err != nil {
			abortError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
	}
}
