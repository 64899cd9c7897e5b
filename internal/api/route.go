package api

import (
	"RedBlack/internal/api/middleware"
	"RedBlack/internal/pkg/logger"
	"RedBlack/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.AuditMiddleware())
	r.Use(middleware.CORSMiddleware(group.CORSOrigins))
	logger.SetupGin(r)

	auth := middleware.AuthMiddleware(group.Revocation)
	authOpt := middleware.AuthOptionalMiddleware(group.Revocation)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			response.SuccessWithMessage(c, nil, "pong")
		})

		merchantGroup := apiGroup.Group("/merchants")
		{
			merchantGroup.GET("/:slug/ratings", group.RatingHandler.ListRatings)

			authOptGroup := merchantGroup.Group("")
			authOptGroup.Use(authOpt)
			{
				authOptGroup.GET("", group.MerchantHandler.ListMerchants)
				authOptGroup.GET("/me", group.MerchantHandler.GetMe)
				authOptGroup.GET("/:slug", group.MerchantHandler.GetMerchant)
			}

			authGroup := merchantGroup.Group("")
			authGroup.Use(auth)
			{
				authGroup.POST("/apply", group.MerchantHandler.Apply)
				authGroup.POST("/:slug/reactions", group.ReactionHandler.ReactToMerchant)
				authGroup.POST("/:slug/ratings", group.RatingHandler.Rate)
			}
		}

		postGroup := apiGroup.Group("/posts")
		{
			postGroup.GET("/search", authOpt, group.PostHandler.SearchPosts)
			postGroup.GET("/:post_id/comments", group.CommentHandler.ListComments)

			authOptGroup := postGroup.Group("")
			authOptGroup.Use(authOpt)
			{
				authOptGroup.GET("", group.PostHandler.ListPosts)
				authOptGroup.GET("/:post_id", group.PostHandler.GetPost)
				authOptGroup.GET("/:post_id/reactions", group.ReactionHandler.GetPostReaction)
			}

			authGroup := postGroup.Group("")
			authGroup.Use(auth)
			{
				authGroup.POST("", group.PostHandler.CreatePost)
				authGroup.POST("/:post_id/reactions", group.ReactionHandler.ReactToPost)
				authGroup.POST("/:post_id/comments", group.CommentHandler.CreateComment)
			}
		}

		uploadGroup := apiGroup.Group("/upload")
		uploadGroup.Use(auth)
		{
			uploadGroup.POST("/image", group.MediaHandler.UploadImage)
		}

		sysbox := apiGroup.Group("/sysbox")
		sysbox.Use(auth)
		{
			sysbox.GET("/list", group.SysBoxHandler.GetNotificationList)
			sysbox.GET("/unread", group.SysBoxHandler.GetUnreadCount)
			sysbox.POST("/read", group.SysBoxHandler.MarkRead)
			sysbox.POST("/read/all", group.SysBoxHandler.MarkAllRead)
		}
	}

	return r
}
