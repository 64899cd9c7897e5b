package handler

import (
	"RedBlack/internal/api/dto"
	"RedBlack/internal/pkg/response"
	"RedBlack/internal/service"

	"github.com/gin-gonic/gin"
)

type RatingHandler struct {
	ratingSvc service.RatingService
}

func NewRatingHandler(ratingSvc service.RatingService) *RatingHandler {
	return &RatingHandler{
		ratingSvc: ratingSvc,
	}
}

// ListRatings 商家的全部评价，按时间倒序
func (s *RatingHandler) ListRatings(c *gin.Context) {
	ratings, err := s.ratingSvc.ListRatings(c.Request.Context(), c.Param("slug"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, ratings)
}

// Rate 提交评分，同一用户再次提交覆盖之前的评分
func (s *RatingHandler) Rate(c *gin.Context) {
	var req dto.RatingCreateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	if req.Rating == nil {
		response.Error(c, service.ErrRatingOutOfRange)
		return
	}

	result, err := s.ratingSvc.Rate(c.Request.Context(), currentUserID(c), c.Param("slug"), *req.Rating, req.Comment)
	if err != nil {
		response.Error(c, err)
		return
	}

	message := "评价已更新"
	if result.Created {
		message = "评价已提交"
	}
	response.SuccessWithMessage(c, result, message)
}
