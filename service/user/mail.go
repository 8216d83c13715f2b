package user

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

// sendWelcomeEmail is best-effort: signup never fails because of SMTP.
// Skipped entirely when SMTP_HOST is unset.
func sendWelcomeEmail(email, name string) {
	smtpHost := os.Getenv("SMTP_HOST")
	if smtpHost == "" {
		return
	}

	smtpUser := os.Getenv("SMTP_USER")
	smtpPass := os.Getenv("SMTP_PASS")
	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil {
		log.Printf("Invalid SMTP port: %v", err)
		return
	}

	m := gomail.NewMessage()
	m.SetHeader("From", smtpUser)
	m.SetHeader("To", email)
	m.SetHeader("Subject", "뉴스피드 가입을 환영합니다!")
	m.SetBody("text/plain", fmt.Sprintf("%s님, 뉴스피드 회원가입이 완료되었습니다.", name))

	d := gomail.NewDialer(smtpHost, port, smtpUser, smtpPass)
	if err := d.DialAndSend(m); err != nil {
		log.Printf("Error sending welcome email: %v", err)
	}
}
