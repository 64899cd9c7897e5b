package handler

import (
	"RedBlack/internal/api/dto"
	"RedBlack/internal/model"
	"RedBlack/internal/pkg/response"
	"RedBlack/internal/service"

	"github.com/gin-gonic/gin"
)

type ReactionHandler struct {
	reactionSvc service.ReactionService
}

func NewReactionHandler(reactionSvc service.ReactionService) *ReactionHandler {
	return &ReactionHandler{
		reactionSvc: reactionSvc,
	}
}

// ReactToMerchant 对商家点赞/点踩
func (s *ReactionHandler) ReactToMerchant(c *gin.Context) {
	var req dto.ReactionDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	result, err := s.reactionSvc.ReactToMerchant(c.Request.Context(), currentUserID(c), c.Param("slug"), req.Type)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithMessage(c, result, reactionMessage(result))
}

// ReactToPost 对帖子点赞/点踩，重复同一反应视为取消
func (s *ReactionHandler) ReactToPost(c *gin.Context) {
	var req dto.ReactionDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	result, err := s.reactionSvc.ReactToPost(c.Request.Context(), currentUserID(c), c.Param("post_id"), req.Type)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithMessage(c, result, reactionMessage(result))
}

// GetPostReaction 当前用户对帖子的反应 {type}，未登录或未反应时 data 为 null
func (s *ReactionHandler) GetPostReaction(c *gin.Context) {
	typ, err := s.reactionSvc.GetPostReaction(c.Request.Context(), currentUserID(c), c.Param("post_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	if typ == nil {
		response.Success(c, nil)
		return
	}
	response.Success(c, &dto.ReactionDTO{Type: string(*typ)})
}

func reactionMessage(result *dto.ReactionResultDTO) string {
	switch {
	case result.UserReaction == nil:
		return "已取消"
	case *result.UserReaction == model.ReactionDislike:
		return "已点踩"
	default:
		return "已点赞"
	}
}
