package handler

import (
	"RedBlack/internal/api/dto"
	"RedBlack/internal/pkg/response"
	"RedBlack/internal/service"

	"github.com/gin-gonic/gin"
)

type MerchantHandler struct {
	merchantSvc service.MerchantService
}

func NewMerchantHandler(merchantSvc service.MerchantService) *MerchantHandler {
	return &MerchantHandler{
		merchantSvc: merchantSvc,
	}
}

// ListMerchants 商家列表，登录时附带当前用户的反应
func (s *MerchantHandler) ListMerchants(c *gin.Context) {
	merchants, err := s.merchantSvc.ListMerchants(c.Request.Context(), currentUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, merchants)
}

func (s *MerchantHandler) GetMerchant(c *gin.Context) {
	merchant, err := s.merchantSvc.GetMerchant(c.Request.Context(), c.Param("slug"), currentUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, merchant)
}

// GetMe 当前登录者的商家身份，匿名访问不报错
func (s *MerchantHandler) GetMe(c *gin.Context) {
	me, err := s.merchantSvc.GetMe(c.Request.Context(), currentUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, me)
}

// Apply 申请成为商家
func (s *MerchantHandler) Apply(c *gin.Context) {
	var req dto.MerchantApplyDTO
	// 允许空请求体
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, err)
			return
		}
	}

	merchant, err := s.merchantSvc.Apply(c.Request.Context(), currentUserID(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithMessage(c, merchant, "申请成功，已成为商家")
}
