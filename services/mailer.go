package services

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

// SendEmail mengirim email plain text lewat SMTP yang dikonfigurasi di env.
func SendEmail(to, subject, body string) error {
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		return fmt.Errorf("SMTP_HOST not configured")
	}
	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil {
		port = 587
	}
	user := os.Getenv("SMTP_USER")
	pass := os.Getenv("SMTP_PASSWORD")
	from := os.Getenv("SMTP_FROM")
	if from == "" {
		from = user
	}

	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(host, port, user, pass)
	return d.DialAndSend(m)
}

// SendPasswordResetEmail mengirim link reset password ke akun staff.
func SendPasswordResetEmail(to, name, token string) error {
	base := os.Getenv("APP_BASE_URL")
	if base == "" {
		base = "http://localhost:8080"
	}
	body := fmt.Sprintf(
		"Hi %s,\n\n"+
			"We received a request to reset your password.\n"+
			"Open the link below within 15 minutes to choose a new one:\n\n"+
			"%s/reset-password?token=%s\n\n"+
			"If you did not request this, you can ignore this email.\n",
		name, base, token)
	return SendEmail(to, "Password Reset Request", body)
}
