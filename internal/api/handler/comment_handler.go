package handler

import (
	"RedBlack/internal/api/dto"
	"RedBlack/internal/pkg/response"
	"RedBlack/internal/service"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	commentSvc service.CommentService
}

func NewCommentHandler(commentSvc service.CommentService) *CommentHandler {
	return &CommentHandler{
		commentSvc: commentSvc,
	}
}

// ListComments 帖子评论分页
func (s *CommentHandler) ListComments(c *gin.Context) {
	var query dto.PageQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	page, err := s.commentSvc.ListComments(c.Request.Context(), c.Param("post_id"), query.Page, query.Limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPage(c, page.Items, page.Pagination)
}

// CreateComment 发表评论
func (s *CommentHandler) CreateComment(c *gin.Context) {
	var req dto.CommentCreateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	result, err := s.commentSvc.CreateComment(c.Request.Context(), currentUserID(c), c.Param("post_id"), req.Content)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithMessage(c, result, "评论发布成功")
}
