package handlers

import (
	"net/http"
	"time"

	"recipe-studio/internal/core/session"

	"github.com/gin-gonic/gin"
)

// ChatRequest 料理問答
type ChatRequest struct {
	Question string `json:"question" binding:"required"`
}

// ChatResponse 回答與目前的問答紀錄
type ChatResponse struct {
	Answer  string             `json:"answer"`
	History []session.ChatTurn `json:"history"`
}

// Chat 回答料理問題並附加到工作階段紀錄
func (h *Handler) Chat(c *gin.Context) {
	var req ChatRequest
	if !bindJSON(c, &req) {
		return
	}

	sess := currentSession(c)
	answer, err := h.recipes.Chat(c.Request.Context(), sess.APIKey, req.Question)
	if err != nil {
		writeError(c, err)
		return
	}

	sess.History = append(sess.History, session.ChatTurn{
		Question:  req.Question,
		Answer:    answer,
		CreatedAt: time.Now(),
	})
	if !h.saveSession(c, sess) {
		return
	}

	c.JSON(http.StatusOK, ChatResponse{Answer: answer, History: sess.History})
}
