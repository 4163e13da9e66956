package routes

import (
	adminapi "coursehub/internal/api/admin"
	authapi "coursehub/internal/api/auth"
	coursesapi "coursehub/internal/api/courses"
	lessonsapi "coursehub/internal/api/lessons"
	paymentsapi "coursehub/internal/api/payments"
	stripewebhooks "coursehub/internal/api/stripewebhook"
	usersapi "coursehub/internal/api/users"
	"coursehub/internal/app/http/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	// raw body required for signature verification, so no sanitizer here
	r.POST("/webhook", stripewebhooks.StripeWebhook)
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	public := r.Group("/")
	public.Use(middleware.SanitizeInputMiddleware())

	public.POST("/register", authapi.Register)
	public.POST("/login", authapi.Login)
	public.GET("/verify", usersapi.VerifyEmail)
	public.POST("/resend-verification", authapi.ResendVerification)
	public.POST("/request-password-reset", authapi.RequestPasswordReset)
	public.POST("/reset-password", authapi.ResetPassword)

	public.GET("/auth/google", authapi.GoogleStart)
	public.GET("/auth/google/callback", authapi.GoogleCallback)

	// Authenticated
	auth := r.Group("/")
	auth.Use(middleware.AuthMiddleware())
	auth.GET("/me", usersapi.GetCurrentUser)
	auth.POST("/change-password", authapi.ChangePassword)

	auth.GET("/courses", coursesapi.ListCourses)
	auth.POST("/courses", coursesapi.CreateCourse)
	auth.GET("/courses/:id", coursesapi.GetCourse)
	auth.PUT("/courses/:id", coursesapi.UpdateCourse)
	auth.DELETE("/courses/:id", coursesapi.DeleteCourse)

	auth.POST("/courses/:id/subscribe", coursesapi.Subscribe)
	auth.DELETE("/courses/:id/unsubscribe", coursesapi.Unsubscribe)

	auth.GET("/lessons", lessonsapi.ListLessons)
	auth.POST("/lessons", lessonsapi.CreateLesson)
	auth.GET("/my/lessons", lessonsapi.ListMyLessons)
	auth.GET("/lessons/:id", lessonsapi.GetLesson)
	auth.PUT("/lessons/:id", lessonsapi.UpdateLesson)
	auth.DELETE("/lessons/:id", lessonsapi.DeleteLesson)

	// Verified accounts only
	pay := auth.Group("/")
	pay.Use(middleware.RequireVerified())
	pay.GET("/payments", paymentsapi.ListPayments)
	pay.POST("/payments", paymentsapi.CreatePayment)
	pay.POST("/payments/create-payment-intent", paymentsapi.CreatePaymentIntent)
	pay.GET("/payments/:id/check-status", paymentsapi.CheckStatus)

	// Admin routes
	admin := r.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireRole("admin"))
	admin.GET("/dashboard", adminapi.AdminDashboard)
	admin.GET("/users", adminapi.ListAllUsers)
	admin.GET("/payments", adminapi.ListAllPayments)
	admin.GET("/user/:id", adminapi.GetUserDetails)
}
