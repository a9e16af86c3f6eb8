package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const livenessMessage = "Scholarship server is available"

func (h *Handler) Liveness(c *gin.Context) {
	c.String(http.StatusOK, livenessMessage)
}

type issueTokenRequest struct {
	Email string `json:"email" binding:"required"`
}

// IssueToken signs a 24h token for the posted email. The email is not checked
// against the users collection.
func (h *Handler) IssueToken(c *gin.Context) {
	var req issueTokenRequest
	if !h.bindJSON(c, &req) {
		return
	}

	token, err := h.Tokens.GenerateJWT(req.Email)
	if err != nil {
		h.fail(c, http.StatusInternalServerError, "Failed to issue token.", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}
