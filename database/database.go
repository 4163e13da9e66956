package database

import (
	"fmt"
	"log"
	"os"

	"coursehub/internal/domain/catalog"
	"coursehub/internal/domain/payments"
	"coursehub/internal/domain/users"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func InitDB() {
	dsn := os.Getenv("DB_URL")
	if dsn == "" {
		log.Fatal("DB_URL not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	DB = db

	if err := DB.AutoMigrate(
		// users
		&users.User{},
		&users.Role{},
		&users.VerificationToken{},

		// catalog
		&catalog.Course{},
		&catalog.Lesson{},
		&catalog.Subscription{},

		// payments
		&payments.Payment{},
	); err != nil {
		log.Fatal("AutoMigrate error:", err)
	}

	seedRoles()

	fmt.Println("Connected and migrated successfully")
}

func seedRoles() {
	for _, name := range []string{users.RoleModerator, users.RoleAdmin} {
		role := users.Role{Name: name}
		if err := DB.Where("name = ?", name).FirstOrCreate(&role).Error; err != nil {
			log.Fatal("Failed to seed roles:", err)
		}
	}
}
