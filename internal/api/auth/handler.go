package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"time"

	"coursehub/config"
	"coursehub/database"
	"coursehub/internal/domain/users"
	"coursehub/internal/infra/mail"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

func isPasswordStrong(password string) bool {
	if len(password) < 8 {
		return false
	}
	hasLetter := false
	hasDigit := false
	for _, c := range password {
		switch {
		case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z':
			hasLetter = true
		case '0' <= c && c <= '9':
			hasDigit = true
		}
	}
	return hasLetter && hasDigit
}

func generateVerificationToken() string {
	bytes := make([]byte, 16)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}

func issueAppJWT(user users.User) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"roles":   user.RoleNames(),
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
	})
	return t.SignedString([]byte(config.JWT_SECRET))
}

func Register(c *gin.Context) {
	var input struct {
		Name     string `json:"name" binding:"required"`
		Lastname string `json:"lastname"`
		Phone    string `json:"phone"`
		City     string `json:"city"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !isPasswordStrong(input.Password) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Password must be at least 8 characters long and contain both letters and numbers"})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}
	hashed := string(hashedPassword)

	user := users.User{
		Name:         input.Name,
		Lastname:     input.Lastname,
		Phone:        input.Phone,
		City:         input.City,
		Email:        input.Email,
		Password:     &hashed,
		AuthProvider: "local",
		IsVerified:   false,
		IsActive:     true,
	}

	if err := database.DB.Create(&user).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Email may already exist"})
		return
	}

	token := generateVerificationToken()
	verif := users.VerificationToken{
		UserID: user.ID,
		Token:  token,
		Type:   users.TokenTypeVerifyEmail,
	}
	if err := database.DB.Create(&verif).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create verification token"})
		return
	}

	if err := mail.SendVerificationEmail(user.Email, token); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send verification email"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully. Please check your email to verify your account."})
}

func Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user users.User
	err := database.DB.Preload("Roles").Where("email = ?", input.Email).First(&user).Error
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	if !user.IsVerified {
		c.JSON(http.StatusForbidden, gin.H{"error": "Please verify your email before logging in"})
		return
	}

	if !user.IsActive {
		c.JSON(http.StatusForbidden, gin.H{"error": "Account is deactivated"})
		return
	}

	if user.Password == nil || *user.Password == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "This account uses Google sign-in"})
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*user.Password), []byte(input.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	now := time.Now()
	database.DB.Model(&users.User{}).Where("id = ?", user.ID).Update("last_login", now)

	tokenString, err := issueAppJWT(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": tokenString})
}

func ResendVerification(c *gin.Context) {
	var body struct {
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing or invalid email"})
		return
	}

	var user users.User
	if err := database.DB.Where("email = ?", body.Email).First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if user.IsVerified {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User already verified"})
		return
	}

	database.DB.Where("user_id = ?", user.ID).Delete(&users.VerificationToken{})

	token := generateVerificationToken()
	newToken := users.VerificationToken{
		UserID: user.ID,
		Token:  token,
		Type:   users.TokenTypeVerifyEmail,
	}
	if err := database.DB.Create(&newToken).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store verification token"})
		return
	}

	if err := mail.SendVerificationEmail(user.Email, token); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send verification email"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Verification email resent"})
}

func RequestPasswordReset(c *gin.Context) {
	var body struct {
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email"})
		return
	}

	var user users.User
	if err := database.DB.Where("email = ?", body.Email).First(&user).Error; err != nil {
		// Don't expose whether the email exists
		c.JSON(http.StatusOK, gin.H{"message": "If your email exists, you'll receive a reset link."})
		return
	}

	database.DB.Where("user_id = ? AND type = ?", user.ID, users.TokenTypePasswordReset).Delete(&users.VerificationToken{})

	token := generateVerificationToken()
	reset := users.VerificationToken{
		UserID:    user.ID,
		Token:     token,
		Type:      users.TokenTypePasswordReset,
		ExpiresAt: time.Now().Add(1 * time.Hour),
	}
	database.DB.Create(&reset)

	resetLink := fmt.Sprintf("%s/reset-password?token=%s", config.FRONTEND_URL, token)
	body2 := fmt.Sprintf("Use the following link to reset your password:\n\n%s", resetLink)
	_ = mail.Send([]string{user.Email}, "Password Reset", body2)

	c.JSON(http.StatusOK, gin.H{"message": "If your email exists, you'll receive a reset link."})
}

func ResetPassword(c *gin.Context) {
	var body struct {
		Token       string `json:"token"`
		NewPassword string `json:"new_password"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if !isPasswordStrong(body.NewPassword) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Password must be at least 8 characters with letters and numbers"})
		return
	}

	var reset users.VerificationToken
	err := database.DB.Where("token = ? AND type = ?", body.Token, users.TokenTypePasswordReset).First(&reset).Error
	if err != nil || reset.ExpiresAt.Before(time.Now()) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or expired token"})
		return
	}

	hashed, _ := bcrypt.GenerateFromPassword([]byte(body.NewPassword), bcrypt.DefaultCost)
	database.DB.Model(&users.User{}).Where("id = ?", reset.UserID).Update("password", string(hashed))

	database.DB.Delete(&reset)

	c.JSON(http.StatusOK, gin.H{"message": "Password reset successful"})
}

func ChangePassword(c *gin.Context) {
	userID := c.GetUint("user_id")
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var body struct {
		OldPassword string `json:"old_password"`
		NewPassword string `json:"new_password"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	if !isPasswordStrong(body.NewPassword) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "New password must be at least 8 characters with letters and numbers"})
		return
	}

	var user users.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return
	}

	if user.Password == nil || *user.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "This account does not have a password. Sign in with Google or set a password first.",
		})
		return
	}

	if err := bcrypt.CompareHashAndPassword(
		[]byte(*user.Password),
		[]byte(body.OldPassword),
	); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Old password is incorrect"})
		return
	}

	hashedNew, _ := bcrypt.GenerateFromPassword([]byte(body.NewPassword), bcrypt.DefaultCost)
	database.DB.Model(&user).Update("password", string(hashedNew))

	c.JSON(http.StatusOK, gin.H{"message": "Password changed successfully"})
}
