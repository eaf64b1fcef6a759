package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"

	"userregistry/internal/config"
	"userregistry/internal/database"
	"userregistry/internal/handlers"
	"userregistry/internal/service"
	"userregistry/internal/store"
)

func main() {
	config.Load()

	connector := database.NewConnector(config.AppEnv.MongoURI, config.AppEnv.DBName)

	ctx, cancel := context.WithTimeout(context.Background(), config.AppEnv.MongoTimeout)
	db, err := connector.DB(ctx)
	cancel()
	if err != nil {
		log.Fatal("failed to connect to MongoDB: ", err)
	}

	log.Println("MongoDB connected to:", db.Name())

	if err := database.EnsureUserIndexes(db); err != nil {
		log.Printf("⚠️ user index warning: %v", err)
	}

	users := service.NewUsers(store.NewUsers(connector))

	r := gin.New()
	r.Use(gin.Logger(), handlers.RecoverJSON())

	r.GET("/health", handlers.Health(connector))

	api := r.Group("/api/v1/users")
	{
		api.POST("/register", handlers.RegisterUser(users))
		api.GET("", handlers.GetUsers(users))
		api.GET("/:id", handlers.GetUserByID(users))
		api.PUT("/:id", handlers.UpdateUser(users))
		api.DELETE("/:id", handlers.DeleteUser(users))
	}

	r.NoRoute(handlers.NotFoundRoute())

	if err := r.Run(":" + config.AppEnv.Port); err != nil {
		log.Fatal(err)
	}
}
