package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type sendMessageRequest struct {
	ReceiverID string `json:"receiverId"`
	Content    string `json:"content"`
}

func (a *API) SendMessage(c *gin.Context) {
	claims, ok := claimsFrom(c)
	if !ok {
		fail(c, http.StatusUnauthorized, "Authentication required")
		return
	}
	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	msg, err := a.Chat.Send(c.Request.Context(), claims.Subject, req.ReceiverID, req.Content)
	if err != nil {
		respondErr(c, err)
		return
	}
	respond(c, http.StatusOK, "Message sent", msg)
}

func (a *API) GetHistory(c *gin.Context) {
	claims, ok := claimsFrom(c)
	if !ok {
		fail(c, http.StatusUnauthorized, "Authentication required")
		return
	}
	msgs, err := a.Chat.History(c.Request.Context(), claims.Subject, c.Param("userId"))
	if err != nil {
		respondErr(c, err)
		return
	}
	respond(c, http.StatusOK, "Messages fetched successfully", msgs)
}
