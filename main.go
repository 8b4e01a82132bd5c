package main

import (
	"github.com/joho/godotenv"

	"linkup/internal/app"
)

// @title           LinkUp API
// @version         1.0
// @description     Social networking backend: auth with email OTP, posts, likes, comments, image upload.
// @BasePath        /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	_ = godotenv.Load()
	app.Run()
}
