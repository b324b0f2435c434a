package main

import (
	"fmt"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"salonops-backend/config"
	"salonops-backend/models"
	"salonops-backend/routes"
	"salonops-backend/services"
	"salonops-backend/store"
)

func init() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	config.ConnectDB()

	config.DB.AutoMigrate(
		&models.Salon{},
		&models.Staff{},
		&models.Service{},
		&models.Consultation{},
		&models.AttendanceRecord{},
		&models.WorkLogEntry{},
	)
}

func main() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	reconciler := services.NewReconciler(
		store.NewGormAttendance(config.DB),
		store.NewGormSalons(config.DB),
		config.GetLogger(),
	)
	reconciler.StartScheduler()
	defer reconciler.Stop()

	r := routes.SetupRouter()
	printRoutes(r)
	r.Run(":" + port)
}

func printRoutes(r *gin.Engine) {
	routes := r.Routes()
	for _, route := range routes {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
