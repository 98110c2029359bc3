package api

import (
	"net/http"
	"time"

	"moneyvault/internal/domain"
	"moneyvault/internal/middleware"
	"moneyvault/internal/vault"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// AddTransactionHandler records a new income/expense entry for the
// authenticated principal.
func AddTransactionHandler(ledger *vault.Transactions) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := middleware.CurrentPrincipal(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var draft domain.TransactionDraft
		if err := c.ShouldBindJSON(&draft); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		tx, err := ledger.Add(actor, draft)
		if err != nil {
			abortError(c, err)
			return
		}
		c.JSON(http.StatusCreated, tx)
	}
}

// ListTransactionsHandler returns transactions matching the optional
// type/member/from/to query filters, newest first.
func ListTransactionsHandler(ledger *vault.Transactions) gin.HandlerFunc {
	return func(c *gin.Context) {
		txs := ledger.Query(transactionFilter(c))
		c.JSON(http.StatusOK, gin.H{"transactions": txs, "count": len(txs)})
	}
}

// DeleteTransactionHandler removes a transaction; only an admin or the
// owning member may delete.
func DeleteTransactionHandler(ledger *vault.Transactions) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := middleware.CurrentPrincipal(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		if err := ledger.Delete(actor, c.Param("id")); err != nil {
			abortError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Transaction deleted"})
	}
}

// TransactionStatsHandler returns income/expense totals over the filtered
// scope.
func TransactionStatsHandler(ledger *vault.Transactions) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, ledger.Stats(transactionFilter(c)))
	}
}

// ExportTransactionsHandler streams the CSV projection with its summary
// block.
func ExportTransactionsHandler(ledger *vault.Transactions) gin.HandlerFunc {
	return func(c *gin.Context) {
		now := time.Now()
		filename := "MoneyVault_Export_" + now.Format("2006-01-02") + ".csv"
		c.Header("Content-Type", "text/csv")
		c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
		if err := ledger.ExportCSV(c.Writer, now); err != nil {
			// Headers are already out; log instead of responding twice.
			logrus.WithError(err).Error("transaction export failed")
		}
	}
}

func transactionFilter(c *gin.Context) vault.TransactionFilter {
	return vault.TransactionFilter{
		Type:     c.Query("type"),
		MemberID: c.Query("member"),
		From:     c.Query("from"),
		To:       c.Query("to"),
	}
}
