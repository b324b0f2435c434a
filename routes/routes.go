package routes

import (
	"os"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"salonops-backend/config"
	"salonops-backend/controllers"
	"salonops-backend/services"
	"salonops-backend/store"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	origins := []string{"http://localhost:3000"}
	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		origins = strings.Split(env, ",")
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.Use(config.PerformanceLogger())

	log := config.GetLogger()

	salons := store.NewGormSalons(config.DB)
	staffStore := store.NewGormStaff(config.DB)
	serviceStore := store.NewGormServices(config.DB)
	consultationStore := store.NewGormConsultations(config.DB)
	attendanceStore := store.NewGormAttendance(config.DB)
	worklogStore := store.NewGormWorkLogs(config.DB)

	staffDirectory := services.NewStaffDirectory(staffStore)
	attendance := services.NewAttendanceService(attendanceStore, log)
	worklogs := services.NewWorkLogService(worklogStore, serviceStore)
	consultations := services.NewConsultationService(consultationStore, staffStore)
	aggregation := services.NewAggregationService(attendanceStore, worklogStore, consultationStore, staffStore, log)

	salonCtl := controllers.NewSalonController(salons)
	staffCtl := controllers.NewStaffController(staffDirectory)
	serviceCtl := controllers.NewServiceController(serviceStore)
	consultationCtl := controllers.NewConsultationController(consultations, staffDirectory)
	attendanceCtl := controllers.NewAttendanceController(attendance, staffDirectory)
	worklogCtl := controllers.NewWorkLogController(worklogs, staffDirectory)
	dashboardCtl := controllers.NewDashboardController(aggregation)

	api := r.Group("/api")
	{
		// Public intake. Clients submit here and look their submission up
		// again with the access code; no session anywhere.
		api.POST("/consultations", consultationCtl.Submit)
		api.GET("/consultations/lookup/:accessCode", consultationCtl.Lookup)

		// Staff act through their shareable link code.
		staff := api.Group("/staff/:linkCode")
		{
			staff.GET("", staffCtl.Whoami)
			staff.POST("/clock-in", attendanceCtl.ClockIn)
			staff.POST("/clock-out", attendanceCtl.ClockOut)
			staff.GET("/clock-status", attendanceCtl.Status)
			staff.POST("/worklogs", worklogCtl.Log)
			staff.GET("/worklogs", worklogCtl.ListByStaff)
			staff.POST("/consultations/:id/claim", consultationCtl.Claim)
			staff.POST("/consultations/:id/serve", consultationCtl.Serve)
			staff.GET("/consultations/served", consultationCtl.ListServed)
		}

		// Owner and admin reads, keyed by salon.
		api.POST("/salons", salonCtl.Create)
		salon := api.Group("/salons/:salonId")
		{
			salon.GET("", salonCtl.Get)

			salon.POST("/staff", staffCtl.Add)
			salon.GET("/staff", staffCtl.List)
			salon.PUT("/staff/:id", staffCtl.Update)

			salon.POST("/services", serviceCtl.Create)
			salon.GET("/services", serviceCtl.List)
			salon.GET("/services/:id", serviceCtl.Get)

			salon.POST("/consultations", consultationCtl.CreateManual)
			salon.GET("/consultations/unclaimed", consultationCtl.ListUnclaimed)

			salon.GET("/attendance/active", attendanceCtl.Active)
			salon.GET("/attendance", attendanceCtl.History)

			salon.GET("/worklogs", worklogCtl.ListBySalon)

			salon.GET("/dashboard", dashboardCtl.Overview)
			salon.GET("/feed", dashboardCtl.Feed)
		}
	}

	return r
}
