package handler

import (
	"RedBlack/internal/api/dto"
	"RedBlack/internal/pkg/response"
	"RedBlack/internal/service"

	"github.com/gin-gonic/gin"
)

type SysBoxHandler struct {
	sysBoxService service.SysBoxService
}

func NewSysBoxHandler(s service.SysBoxService) *SysBoxHandler {
	return &SysBoxHandler{
		sysBoxService: s,
	}
}

// GetNotificationList 当前用户的通知，按时间倒序分页
func (h *SysBoxHandler) GetNotificationList(c *gin.Context) {
	var query dto.PageQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	list, err := h.sysBoxService.GetNotificationList(c.Request.Context(), currentUserID(c), query.Page, query.Limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, list)
}

// GetUnreadCount 获取未读数
func (h *SysBoxHandler) GetUnreadCount(c *gin.Context) {
	unread, err := h.sysBoxService.GetUnreadCount(c.Request.Context(), currentUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, unread)
}

// MarkRead 标记单条已读，重复标记视为成功
func (h *SysBoxHandler) MarkRead(c *gin.Context) {
	var req dto.SysBoxReadDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	if err := h.sysBoxService.MarkRead(c.Request.Context(), currentUserID(c), req.ID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (h *SysBoxHandler) MarkAllRead(c *gin.Context) {
	if err := h.sysBoxService.MarkAllRead(c.Request.Context(), currentUserID(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
