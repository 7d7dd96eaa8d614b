package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"kairosai/internal/app"
	"kairosai/internal/transport/http/response"
)

type ChatHandler struct {
	chatService         *app.ChatService
	defaultHistoryLimit int
}

func NewChatHandler(chatService *app.ChatService, defaultHistoryLimit int) *ChatHandler {
	return &ChatHandler{chatService: chatService, defaultHistoryLimit: defaultHistoryLimit}
}

type ChatMessageRequest struct {
	Message string `json:"message" binding:"required"`
}

func (h *ChatHandler) Chat(c *gin.Context) {
	projectID, err := parseUintParam(c, "id")
	if err != nil || projectID == 0 {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid project id")
		return
	}
	var req ChatMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request payload")
		return
	}

	result, err := h.chatService.Chat(c.Request.Context(), app.ChatInput{
		ProjectID: projectID,
		Message:   req.Message,
	})
	if err != nil {
		switch {
		case errors.Is(err, app.ErrInvalidInput):
			response.Error(c, http.StatusBadRequest, response.CodeBadRequest, err.Error())
		case errors.Is(err, app.ErrProjectNotFound):
			response.Error(c, http.StatusNotFound, response.CodeProjectNotFound, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "chat failed")
		}
		return
	}
	response.OK(c, result)
}

func (h *ChatHandler) History(c *gin.Context) {
	projectID, err := parseUintParam(c, "id")
	if err != nil || projectID == 0 {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid project id")
		return
	}
	limit := h.defaultHistoryLimit
	if s := c.Query("limit"); s != "" {
		if v, err := strconv.Atoi(s); err == nil {
			limit = v
		}
	}

	messages, err := h.chatService.GetHistory(c.Request.Context(), projectID, limit)
	if err != nil {
		if errors.Is(err, app.ErrProjectNotFound) {
			response.Error(c, http.StatusNotFound, response.CodeProjectNotFound, err.Error())
		} else {
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "get history failed")
		}
		return
	}
	response.OK(c, messages)
}

// ClearHistory deletes the project's chat transcript.
func (h *ChatHandler) ClearHistory(c *gin.Context) {
	projectID, err := parseUintParam(c, "id")
	if err != nil || projectID == 0 {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid project id")
		return
	}
	if err := h.chatService.ClearHistory(c.Request.Context(), projectID); err != nil {
		if errors.Is(err, app.ErrProjectNotFound) {
			response.Error(c, http.StatusNotFound, response.CodeProjectNotFound, err.Error())
		} else {
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "clear history failed")
		}
		return
	}
	response.OK(c, gin.H{"cleared_project_id": projectID})
}

func (h *ChatHandler) Message(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil || id == 0 {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid message id")
		return
	}
	message, err := h.chatService.GetMessage(id)
	if err != nil {
		if errors.Is(err, app.ErrChatMessageNotFound) {
			response.Error(c, http.StatusNotFound, response.CodeChatMessageNotFound, err.Error())
		} else {
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "get chat message failed")
		}
		return
	}
	response.OK(c, message)
}

type SummaryRequest struct {
	SummaryType string `json:"summary_type"`
}

func (h *ChatHandler) Summary(c *gin.Context) {
	projectID, err := parseUintParam(c, "id")
	if err != nil || projectID == 0 {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid project id")
		return
	}

	// The body is optional; an empty summary type means "general".
	var req SummaryRequest
	_ = c.ShouldBindJSON(&req)
	summaryType := req.SummaryType
	if summaryType == "" {
		summaryType = c.DefaultQuery("summary_type", "general")
	}

	summary, err := h.chatService.Summarize(c.Request.Context(), projectID, summaryType)
	if err != nil {
		if errors.Is(err, app.ErrProjectNotFound) {
			response.Error(c, http.StatusNotFound, response.CodeProjectNotFound, err.Error())
		} else {
			response.Error(c, http.StatusInternalServerError, response.CodeInternalServer, "generate summary failed")
		}
		return
	}
	response.OK(c, gin.H{"summary": summary, "summary_type": summaryType})
}
