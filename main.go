package main

import (
	"context"
	"log"
	"os"
	"time"

	"membership-app/config"
	"membership-app/database"
	routes "membership-app/internal/app/http"
	"membership-app/internal/identity"
	"membership-app/internal/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	// gin.SetMode(gin.ReleaseMode) uncomment only in production
	config.LoadEnv()
	database.InitDB()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	idp, err := identity.New(ctx, identity.Config{
		Issuer:       config.IDP_ISSUER,
		ClientID:     config.IDP_CLIENT_ID,
		ClientSecret: config.IDP_CLIENT_SECRET,
	})
	if err != nil {
		log.Fatal("Identity provider setup failed:", err)
	}

	profiles := store.NewGormStore(database.DB)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{os.Getenv("CORS_ORIGIN")},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(r, idp, profiles)

	r.Run(":" + config.PORT)
}
