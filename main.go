package main

import (
	"os"
	"time"

	"coursehub/config"
	"coursehub/database"
	routes "coursehub/internal/app/http"
	"coursehub/internal/infra/jobs"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func main() {
	// gin.SetMode(gin.ReleaseMode) uncomment only in production
	config.LoadEnv()
	database.InitDB()

	redisClient := redis.NewClient(&redis.Options{Addr: config.REDIS_ADDR})

	queue := jobs.NewQueue(redisClient, 3)
	queue.Register(jobs.TypeCourseUpdate, jobs.HandleCourseUpdate)
	queue.Register(jobs.TypeDeactivateUsers, jobs.HandleDeactivateUsers)
	queue.Schedule(24*time.Hour, jobs.TypeDeactivateUsers, nil)
	queue.Start()
	defer queue.Stop()
	jobs.Default = queue

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{os.Getenv("CORS_ORIGIN")},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(r)

	r.Run(":" + config.PORT)
}
