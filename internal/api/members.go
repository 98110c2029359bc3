package api

import (
	"net/http"

	"moneyvault/internal/domain"
	"moneyvault/internal/vault"

	"github.com/gin-gonic/gin"
)

// MemberRequest is the add/update payload. PIN is optional on update;
// empty means unchanged.
type MemberRequest struct {
	Name string `json:"name"`
	PIN  string `json:"pin"`
	Role string `json:"role"`
}

// ListMembersHandler returns the full directory.
func ListMembersHandler(dir *vault.Directory) gin.HandlerFunc {
	return func(c *gin.Context) {
		principals := dir.List()
		members := make([]PrincipalResponse, len(principals))
		for i, p := range principals {
			members[i] = toPrincipalResponse(p)
		}
		c.JSON(http.StatusOK, gin.H{"members": members, "count": len(members)})
	}
}

// AddMemberHandler creates a new member (admin-gated by middleware).
func AddMemberHandler(dir *vault.Directory) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req MemberRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		if req.Role == "" {
			req.Role = domain.RoleMember
		}
		member, err := dir.AddMember(req.Name, req.PIN, req.Role)
		if err != nil {
			abortError(c, err)
			return
		}
		c.JSON(http.StatusCreated, toPrincipalResponse(member))
	}
}

// UpdateMemberHandler edits an existing member.
func UpdateMemberHandler(dir *vault.Directory) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req MemberRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		member, err := dir.UpdateMember(c.Param("id"), req.Name, req.PIN, req.Role)
		if err != nil {
			abortError(c, err)
			return
		}
		c.JSON(http.StatusOK, toPrincipalResponse(member))
	}
}

// DeleteMemberHandler removes a member; their transactions are preserved.
func DeleteMemberHandler(dir *vault.Directory) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := dir.DeleteMember(c.Param("id")); err != nil {
			abortError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Member deleted"})
	}
}
