package api

import (
	"net/http"
	"time"

	"moneyvault/internal/domain"
	"moneyvault/internal/vault"

	"github.com/gin-gonic/gin"
)

// AddDebtHandler records a new borrow/lend entry; status always starts
// pending.
func AddDebtHandler(ledger *vault.Debts) gin.HandlerFunc {
	return func(c *gin.Context) {
		var draft domain.DebtDraft
		if err := c.ShouldBindJSON(&draft); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		debt, err := ledger.Add(draft)
		if err != nil {
			abortError(c, err)
			return
		}
		c.JSON(http.StatusCreated, debt)
	}
}

// ListDebtsHandler returns debts matching the optional type/status query
// filters.
func ListDebtsHandler(ledger *vault.Debts) gin.HandlerFunc {
	return func(c *gin.Context) {
		debts := ledger.Query(vault.DebtFilter{
			Type:   c.Query("type"),
			Status: c.Query("status"),
		})
		c.JSON(http.StatusOK, gin.H{"debts": debts, "count": len(debts)})
	}
}

// UpdateDebtHandler applies a partial update (fields or status) to a debt.
func UpdateDebtHandler(ledger *vault.Debts) gin.HandlerFunc {
	return func(c *gin.Context) {
		var patch domain.DebtPatch
		if err := c.ShouldBindJSON(&patch); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		debt, err := ledger.Update(c.Param("id"), patch)
		if err != nil {
			abortError(c, err)
			return
		}
		c.JSON(http.StatusOK, debt)
	}
}

// DeleteDebtHandler removes a debt record.
func DeleteDebtHandler(ledger *vault.Debts) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := ledger.Delete(c.Param("id")); err != nil {
			abortError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Debt deleted"})
	}
}

// DebtStatsHandler returns the unpaid borrow/lend totals.
func DebtStatsHandler(ledger *vault.Debts) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, ledger.Stats())
	}
}

// SweepDebtsHandler runs the overdue sweep on demand.
func SweepDebtsHandler(ledger *vault.Debts) gin.HandlerFunc {
	return func(c *gin.Context) {
		count, err := ledger.SweepOverdue(time.Now())
		if err != nil {
			abortError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"overdue": count})
	}
}
