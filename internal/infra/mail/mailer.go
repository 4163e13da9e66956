package mail

import (
	"fmt"
	"net/smtp"
	"os"
	"strings"
)

func Send(to []string, subject, body string) error {
	from := os.Getenv("SMTP_FROM")
	password := os.Getenv("SMTP_PASSWORD")
	host := os.Getenv("SMTP_HOST")
	port := os.Getenv("SMTP_PORT")

	auth := smtp.PlainAuth("", from, password, host)

	message := []byte("Subject: " + subject + "\r\n" +
		"From: " + from + "\r\n" +
		"To: " + strings.Join(to, ", ") + "\r\n" +
		"Content-Type: text/plain; charset=UTF-8\r\n" +
		"\r\n" +
		body + "\r\n")

	err := smtp.SendMail(host+":"+port, auth, from, to, message)
	if err != nil {
		fmt.Println("SMTP error:", err)
	}
	return err
}

func SendVerificationEmail(to string, token string) error {
	link := fmt.Sprintf("http://localhost:8080/verify?token=%s", token)
	body := fmt.Sprintf("Click the following link to verify your account:\n\n%s", link)
	return Send([]string{to}, "Verify Your Account", body)
}
