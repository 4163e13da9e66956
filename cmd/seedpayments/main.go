// Command seedpayments fills the database with sample cash/transfer
// payments for existing users, courses and lessons.
package main

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"coursehub/config"
	"coursehub/database"
	"coursehub/internal/domain/catalog"
	"coursehub/internal/domain/payments"
	"coursehub/internal/domain/users"
)

var amounts = []float64{1000.00, 1500.00, 2000.00, 3000.00, 5000.00}

var methods = []string{payments.MethodCash, payments.MethodTransfer}

func main() {
	config.LoadEnv()
	database.InitDB()

	var userList []users.User
	if err := database.DB.Limit(5).Find(&userList).Error; err != nil || len(userList) == 0 {
		log.Fatal("No users found. Create users first.")
	}

	var courses []catalog.Course
	var lessons []catalog.Lesson
	database.DB.Find(&courses)
	database.DB.Find(&lessons)
	if len(courses) == 0 && len(lessons) == 0 {
		log.Fatal("No courses or lessons found. Create them first.")
	}

	created := 0
	for _, u := range userList {
		n := 2 + rand.Intn(4)
		for i := 0; i < n; i++ {
			p := payments.Payment{
				UserID:      u.ID,
				PaymentDate: time.Now(),
				Amount:      amounts[rand.Intn(len(amounts))],
				Method:      methods[rand.Intn(len(methods))],
			}

			if len(courses) > 0 && (len(lessons) == 0 || rand.Intn(2) == 0) {
				id := courses[rand.Intn(len(courses))].ID
				p.PaidCourseID = &id
			} else {
				id := lessons[rand.Intn(len(lessons))].ID
				p.PaidLessonID = &id
			}

			if err := database.DB.Create(&p).Error; err != nil {
				log.Fatal("Failed to create payment:", err)
			}
			created++
		}
	}

	fmt.Printf("Successfully created %d payments\n", created)
}
