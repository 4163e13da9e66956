package admin

import (
	"net/http"
	"time"

	"coursehub/database"
	"coursehub/internal/domain/payments"
	"coursehub/internal/domain/users"

	"github.com/gin-gonic/gin"
)

type AdminUser struct {
	ID         uint     `json:"id"`
	Name       string   `json:"name"`
	Lastname   string   `json:"lastname"`
	Phone      string   `json:"phone"`
	City       string   `json:"city"`
	Email      string   `json:"email"`
	Roles      []string `json:"roles"`
	IsVerified bool     `json:"is_verified"`
}

type AdminStats struct {
	TotalUsers        int            `json:"total_users"`
	TotalRevenue      float64        `json:"total_revenue"`
	RecentRevenue     float64        `json:"recent_revenue"`
	PaymentsPerMethod map[string]int `json:"payments_per_method"`
}

func AdminDashboard(c *gin.Context) {
	var stats AdminStats

	var totalUsers int64
	var totalRevenue float64
	var recentRevenue float64

	database.DB.Model(&users.User{}).Count(&totalUsers)
	database.DB.Model(&payments.Payment{}).
		Select("COALESCE(SUM(amount), 0)").Scan(&totalRevenue)

	thirtyDaysAgo := time.Now().AddDate(0, 0, -30)
	database.DB.Model(&payments.Payment{}).
		Where("payment_date >= ?", thirtyDaysAgo).
		Select("COALESCE(SUM(amount), 0)").Scan(&recentRevenue)

	stats.TotalUsers = int(totalUsers)
	stats.TotalRevenue = totalRevenue
	stats.RecentRevenue = recentRevenue

	type MethodCount struct {
		Method string
		Count  int
	}
	var counts []MethodCount
	database.DB.
		Table("payments").
		Select("method, COUNT(id) as count").
		Group("method").
		Scan(&counts)

	stats.PaymentsPerMethod = map[string]int{}
	for _, mc := range counts {
		stats.PaymentsPerMethod[mc.Method] = mc.Count
	}

	c.JSON(http.StatusOK, stats)
}

func ListAllUsers(c *gin.Context) {
	var list []users.User
	if err := database.DB.Preload("Roles").Find(&list).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load users"})
		return
	}

	var adminUsers []AdminUser
	for _, u := range list {
		adminUsers = append(adminUsers, AdminUser{
			ID:         u.ID,
			Name:       u.Name,
			Lastname:   u.Lastname,
			Phone:      u.Phone,
			City:       u.City,
			Email:      u.Email,
			Roles:      u.RoleNames(),
			IsVerified: u.IsVerified,
		})
	}

	c.JSON(http.StatusOK, adminUsers)
}

func ListAllPayments(c *gin.Context) {
	var list []payments.Payment
	if err := database.DB.
		Preload("PaidCourse").
		Preload("PaidLesson").
		Order("payment_date DESC").
		Find(&list).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load payments"})
		return
	}
	c.JSON(http.StatusOK, list)
}

func GetUserDetails(c *gin.Context) {
	userID := c.Param("id")

	var user users.User
	if err := database.DB.Preload("Roles").First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var history []payments.Payment
	if err := database.DB.Where("user_id = ?", userID).Find(&history).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch payments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":     user,
		"payments": history,
	})
}
