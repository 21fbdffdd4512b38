package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/loctime/controldoc/internal/domain/services"
	"github.com/loctime/controldoc/internal/interfaces/dto"
)

type NotificationHandler struct {
	notificationSvc *services.NotificationService
	authSvc         *services.AuthService
}

func NewNotificationHandler(notificationSvc *services.NotificationService, authSvc *services.AuthService) *NotificationHandler {
	return &NotificationHandler{notificationSvc: notificationSvc, authSvc: authSvc}
}

func (h *NotificationHandler) GetList(c *gin.Context) {
	user, ok := requireUser(c, h.authSvc)
	if !ok {
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			respondWithError(c, http.StatusBadRequest, 400, "limit must be a non-negative integer")
			return
		}
		limit = parsed
	}

	notifications, err := h.notificationSvc.ListForUser(c.Request.Context(), user.ID, limit)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	respondWithSuccess(c, nil, dto.NotificationListResponse{Notifications: notifications})
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	user, ok := requireUser(c, h.authSvc)
	if !ok {
		return
	}

	id := c.Param("id")
	if err := h.notificationSvc.MarkRead(c.Request.Context(), id, user.ID); err != nil {
		handleServiceError(c, err)
		return
	}

	respondWithSuccess(c, dto.NotificationReadResponse{ID: id, Success: true}, nil)
}
