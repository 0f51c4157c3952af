package handlers

import (
	"net/http"

	"foodshare-api/statemachine"

	"github.com/gin-gonic/gin"
)

// GetLifecycleInfo returns the donation status lifecycle for documentation
func GetLifecycleInfo(c *gin.Context) {
	transitions := make([]gin.H, 0)
	for _, t := range statemachine.GetAllTransitions() {
		transitions = append(transitions, gin.H{
			"from":  t.From,
			"to":    t.To,
			"actor": t.Actor,
		})
	}
	c.JSON(http.StatusOK, gin.H{
		"lifecycle":       transitions,
		"terminal_states": []string{"completed", "removed"},
		"note":            "admins may override a donation to any status directly",
	})
}
