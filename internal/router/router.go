package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"yilin/internal/handlers"
	"yilin/internal/repository"
)

func RegisterRoutes(r *gin.Engine, database *gorm.DB) {
	// Repositories (store handle injected, no globals)
	commentRepo := repository.NewCommentRepository(database)
	citizenRepo := repository.NewCitizenRepository(database)

	// Handlers
	commentHandler := handlers.NewCommentHandler(commentRepo)
	citizenHandler := handlers.NewCitizenHandler(citizenRepo)

	api := r.Group("/api")
	{
		// 评论 (Comments)
		api.GET("/comments", commentHandler.List)    // 全部评论
		api.POST("/comments", commentHandler.Create) // 发表评论

		// 某个议题下的评论，按创建时间倒序
		api.GET("/subjects/:context/:reference/comments", commentHandler.ListFor)

		api.POST("/comments/:cid/reply", commentHandler.Reply)       // 回复
		api.POST("/comments/:cid/upvote", commentHandler.Upvote)     // 赞成
		api.POST("/comments/:cid/downvote", commentHandler.Downvote) // 反对
		api.POST("/comments/:cid/flag", commentHandler.Flag)         // 举报
		api.POST("/comments/:cid/unflag", commentHandler.Unflag)     // 撤销举报

		// 公民 (Citizens)
		api.POST("/citizens", citizenHandler.Create)
		api.GET("/citizens/:id", citizenHandler.Get)
	}
}
