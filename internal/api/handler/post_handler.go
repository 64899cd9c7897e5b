package handler

import (
	"RedBlack/internal/api/dto"
	"RedBlack/internal/pkg/response"
	"RedBlack/internal/pkg/util"
	"RedBlack/internal/service"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	postSvc service.PostService
}

func NewPostHandler(postSvc service.PostService) *PostHandler {
	return &PostHandler{
		postSvc: postSvc,
	}
}

func (s *PostHandler) ListPosts(c *gin.Context) {
	var query dto.PageQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	posts, err := s.postSvc.ListPosts(c.Request.Context(), query.Page, query.Limit, currentUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPage(c, posts.Items, posts.Pagination)
}

func (s *PostHandler) SearchPosts(c *gin.Context) {
	var searchDTO dto.PostSearchDTO
	if err := c.ShouldBindQuery(&searchDTO); err != nil {
		response.Error(c, err)
		return
	}

	posts, err := s.postSvc.SearchPosts(c.Request.Context(), searchDTO.Keyword, searchDTO.Page, searchDTO.Limit, currentUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPage(c, posts.Items, posts.Pagination)
}

// CreatePost 发布曝光帖子
func (s *PostHandler) CreatePost(c *gin.Context) {
	var req dto.PostCreateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&req); err != nil {
		response.Error(c, err)
		return
	}

	post, err := s.postSvc.CreatePost(c.Request.Context(), currentUserID(c), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithMessage(c, post, "曝光帖子发布成功")
}

// GetPost 帖子详情，同时累加一次浏览
func (s *PostHandler) GetPost(c *gin.Context) {
	post, err := s.postSvc.GetPost(c.Request.Context(), c.Param("post_id"), currentUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, post)
}
