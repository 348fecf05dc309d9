package server

import (
	"fmt"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func (s *Server) setupRouter() *gin.Engine {
	ginMode := os.Getenv("GIN_MODE")
	if ginMode == "test" {
		r := gin.New()
		s.defineRoutes(r)
		return r
	}

	r := gin.New()

	// LoggerWithFormatter middleware will write the logs to gin.DefaultWriter
	// By default gin.DefaultWriter = os.Stdout
	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		return fmt.Sprintf("%s - [%s] \"%s %s %s %d %s \"%s\" %s\"\n",
			param.ClientIP,
			param.TimeStamp.Format(time.RFC1123),
			param.Method,
			param.Path,
			param.Request.Proto,
			param.StatusCode,
			param.Latency,
			param.Request.UserAgent(),
			param.ErrorMessage,
		)
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.MaxMultipartMemory = 32 << 20
	s.defineRoutes(r)

	return r
}

func (s *Server) defineRoutes(router *gin.Engine) {
	apirouter := router.Group("/api/v1")

	// Demo mode runs against the seeded local data path only; none of the
	// Postgres-backed routes are mounted.
	if s.Config.DemoMode && s.Registry != nil && s.Roster != nil {
		apirouter.GET("/ws/notifications", s.handleNotificationsWS())

		demo := apirouter.Group("/demo")
		demo.POST("/login", s.handleDemoLogin())
		demo.POST("/logout", s.handleDemoLogout())
		demo.GET("/me", s.handleDemoCurrentUser())
		demo.GET("/vehicles", s.handleDemoListVehicles())
		demo.GET("/vehicles/:id", s.handleDemoGetVehicle())
		demo.POST("/vehicles", s.handleDemoAddVehicle())
		demo.POST("/vehicles/:id/tips", s.handleDemoAddTip())
		demo.PUT("/vehicles/:id/tips/:tipID/status", s.handleDemoUpdateTipStatus())
		demo.GET("/leaderboard", s.handleDemoLeaderboard())
		return
	}

	otpLimiter := limitRateForOTP(newOTPRateStore())

	apirouter.POST("/auth/signup", s.handleSignup())
	apirouter.POST("/auth/login", s.handleLogin())
	apirouter.POST("/auth/provider", s.handleProviderLogin())
	apirouter.POST("/auth/otp/request", otpLimiter, s.handleRequestOTP())
	apirouter.POST("/auth/otp/verify", s.handleVerifyOTP())
	apirouter.GET("/google/login", s.HandleGoogleLogin())
	apirouter.GET("/auth/google/callback", s.HandleGoogleCallback())

	apirouter.GET("/lost_cars", s.handleSearchReports())
	apirouter.GET("/lost_cars/:id", s.handleGetReport())
	apirouter.GET("/lost_cars/:id/tips", s.handleListTipsForReport())
	apirouter.GET("/leaderboard", s.handleLeaderboard())
	apirouter.GET("/plans", s.handleGetPlans())
	apirouter.GET("/points/rate", s.handleConversionRate())

	apirouter.GET("/ws/notifications", s.handleNotificationsWS())
	apirouter.GET("/ws/search", s.handleSearchWS())

	authorized := apirouter.Group("/")
	authorized.Use(s.Authorize())
	authorized.GET("/logout", s.handleLogout())
	authorized.GET("/me", s.handleShowProfile())
	authorized.PUT("/me/profile", s.handleEditUserProfile())
	authorized.POST("/me/avatar", s.handleUploadAvatar())
	authorized.GET("/me/points", s.handlePointsBalance())
	authorized.GET("/me/reports", s.handleGetMyReports())
	authorized.POST("/user/report", s.handleCreateReport())
	authorized.PUT("/user/report/:id", s.handleUpdateReport())
	authorized.PUT("/user/report/:id/status", s.handleUpdateReportStatus())
	authorized.POST("/lost_cars/:id/tips", s.handleSubmitTip())
	authorized.POST("/plans/select", s.handleSelectPlan())

	admin := authorized.Group("/admin")
	admin.Use(s.AdminOnly())
	admin.GET("/tips", s.handleListPendingTips())
	admin.PUT("/tips/:tipID/approve", s.handleApproveTip())
	admin.PUT("/tips/:tipID/reject", s.handleRejectTip())
	admin.GET("/users", s.handleGetAllUsers())
}
