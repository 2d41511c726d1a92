package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pulsemind/fitness-coach/internal/assistant"
	"pulsemind/fitness-coach/internal/service"
)

func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	planService service.PlanService,
	workoutService service.WorkoutService,
	exportService service.ExportService,
	bridge *assistant.Bridge,
) {
	authHandler := NewAuthHandler(authService)
	planHandler := NewPlanHandler(planService, exportService)
	workoutHandler := NewWorkoutHandler(workoutService)
	assistantHandler := NewAssistantHandler(bridge, authService)

	authMiddleware := AuthMiddleware(jwtSecret)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", func(c *gin.Context) {
			userID, err := getUserIDFromContext(c)
			if err != nil {
				abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
				return
			}
			user, err := authService.CurrentUser(c.Request.Context(), userID)
			if err != nil {
				abortWithError(c, http.StatusNotFound, "User not found")
				return
			}
			c.JSON(http.StatusOK, MapUserToResponse(user))
		})

		// --- Plan Routes ---
		planGroup := protected.Group("/plans")
		{
			planGroup.GET("", planHandler.GetPlans)
			planGroup.GET("/active", planHandler.GetActivePlan)
			planGroup.POST("", planHandler.CreatePlan)
			planGroup.POST("/:planId/activate", planHandler.ActivatePlan)
			planGroup.DELETE("/:planId", planHandler.DeletePlan)
			planGroup.GET("/:planId/export", planHandler.ExportPlan)
		}
		protected.GET("/exports", planHandler.GetExports)

		// --- Workout Routes ---
		workoutGroup := protected.Group("/workouts")
		{
			trackingGroup := workoutGroup.Group("/tracking")
			{
				trackingGroup.POST("/start", workoutHandler.StartTracking)
				trackingGroup.GET("", workoutHandler.GetTracking)
				trackingGroup.POST("/sets/toggle", workoutHandler.ToggleSet)
				trackingGroup.POST("/sets/reps", workoutHandler.UpdateSetReps)
				trackingGroup.POST("/sets/weight", workoutHandler.UpdateSetWeight)
				trackingGroup.POST("/notes", workoutHandler.UpdateNotes)
				trackingGroup.POST("/rest/start", workoutHandler.StartRest)
				trackingGroup.POST("/rest/stop", workoutHandler.StopRest)
				trackingGroup.POST("/rest/reset", workoutHandler.ResetRest)
				trackingGroup.POST("/rest/duration", workoutHandler.SetRestDuration)
				trackingGroup.POST("/clock/toggle", workoutHandler.ToggleClock)
				trackingGroup.POST("/save", workoutHandler.SaveTracking)
				trackingGroup.DELETE("", workoutHandler.StopTracking)
			}

			workoutGroup.GET("/sessions", workoutHandler.GetSessions)
			workoutGroup.GET("/sessions/:date", workoutHandler.GetSessionByDate)
			workoutGroup.DELETE("/sessions/:sessionId", workoutHandler.DeleteSession)
			workoutGroup.GET("/plans/:planId/sessions", workoutHandler.GetSessionsByPlan)
			workoutGroup.GET("/records", workoutHandler.GetRecords)
			workoutGroup.GET("/records/:exerciseName", workoutHandler.GetRecordByExercise)
			workoutGroup.GET("/calendar", workoutHandler.GetCalendar)
		}

		// --- Assistant Bridge ---
		protected.GET("/assistant/call", assistantHandler.Call)
	}
}
