package api

import (
	"net/http"
	"time"

	"moneyvault/internal/domain"
	"moneyvault/internal/middleware"
	"moneyvault/internal/vault"

	"github.com/gin-gonic/gin"
)

// GetSettingsHandler returns the persisted settings record.
func GetSettingsHandler(settings *vault.SettingsStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, settings.Get())
	}
}

// UpdateSettingsHandler merges the provided fields into the settings
// record.
func UpdateSettingsHandler(settings *vault.SettingsStore, session *vault.Session) gin.HandlerFunc {
	return func(c *gin.Context) {
		var patch domain.Settings
		if err := c.ShouldBindJSON(&patch); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		updated, err := settings.Update(patch)
		if err != nil {
			abortError(c, err)
			return
		}
		// An auto-lock toggle takes effect on the running watchdog
		// immediately, not at the next request.
		session.Touch()
		c.JSON(http.StatusOK, updated)
	}
}

// ChangePINRequest is the self-service PIN change payload.
type ChangePINRequest struct {
	CurrentPIN    string `json:"current_pin"`
	NewPIN        string `json:"new_pin"`
	ConfirmNewPIN string `json:"confirm_new_pin"`
}

// ChangePINHandler lets the authenticated principal rotate its own PIN.
func ChangePINHandler(dir *vault.Directory) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := middleware.CurrentPrincipal(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var req ChangePINRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		if err := dir.ChangeOwnPIN(actor, req.CurrentPIN, req.NewPIN, req.ConfirmNewPIN); err != nil {
			abortError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "PIN changed"})
	}
}

// ExportBackupHandler streams the full backup envelope as a download.
func ExportBackupHandler(backup *vault.Backup) gin.HandlerFunc {
	return func(c *gin.Context) {
		now := time.Now()
		raw, err := backup.Export(now)
		if err != nil {
			abortError(c, err)
			return
		}
		filename := "MoneyVault_Backup_" + now.Format("2006-01-02") + ".json"
		c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
		c.Data(http.StatusOK, "application/json", raw)
	}
}

// RestoreBackupHandler applies an uploaded envelope to the store.
func RestoreBackupHandler(backup *vault.Backup) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.GetRawData()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		if err := backup.Restore(raw); err != nil {
			abortError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Data restored"})
	}
}

// ResetRequest carries the typed confirmation token.
type ResetRequest struct {
	Confirm string `json:"confirm"`
}

// ResetHandler clears the entire store after explicit confirmation.
func ResetHandler(backup *vault.Backup) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ResetRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		if err := backup.ResetAll(req.Confirm); err != nil {
			abortError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "App reset complete"})
	}
}
