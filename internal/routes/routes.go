package routes

import (
	"github.com/gin-gonic/gin"

	"linkup/internal/handlers"
	"linkup/internal/middleware"
	"linkup/internal/services"
)

func SetupRoutes(
	r *gin.Engine,
	authHandler *handlers.AuthHandler,
	postHandler *handlers.PostHandler,
	uploadHandler *handlers.UploadHandler,
	tokens services.TokenService,
) *gin.Engine {

	api := r.Group("/api")

	// ---- public
	auth := api.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/verify-otp", authHandler.VerifyOtp)
		auth.POST("/login", authHandler.Login)
		auth.POST("/forgot-password", authHandler.ForgotPassword)
		auth.POST("/confirm-password", authHandler.ConfirmPassword)
		// logout валидирует токен сам (см. хендлер)
		auth.POST("/logout", authHandler.Logout)
	}

	// ---- protected
	authMW := middleware.AuthMiddleware(tokens)

	authed := api.Group("/auth", authMW)
	{
		authed.GET("/verify-token", authHandler.VerifyToken)
		authed.GET("/me", authHandler.Me)
		authed.PUT("/update", authHandler.UpdateProfile)
	}

	posts := api.Group("/posts", authMW)
	{
		posts.GET("/", postHandler.List)
		posts.POST("/", postHandler.Create)
		posts.GET("/user/me", postHandler.MyPosts)
		posts.GET("/user/:id", postHandler.UserPosts)
		posts.PUT("/:id/like", postHandler.Like)
		posts.POST("/:id/comment", postHandler.Comment)
		posts.DELETE("/:id/comment/:commentId", postHandler.DeleteComment)
		posts.GET("/:id", postHandler.Get)
		posts.DELETE("/:id", postHandler.Delete)
	}

	upload := api.Group("/upload", authMW)
	{
		upload.POST("/profile", uploadHandler.UploadProfileImage)
		upload.POST("/post", uploadHandler.UploadPostImage)
	}

	return r
}
