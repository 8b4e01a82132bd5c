package services

import (
	"fmt"
	"log"

	"gopkg.in/gomail.v2"
)

// EmailService is the notification gateway. Sends are fire-and-forget: every
// method returns immediately, delivery happens on a detached goroutine and a
// failure is logged, never surfaced to the calling flow.
type EmailService interface {
	SendOTPEmail(email, name, otp string)
	SendAccountCreatedEmail(email, name string)
	SendPasswordResetEmail(email, resetLink string)
}

type emailService struct {
	dialer  *gomail.Dialer
	from    string
	appName string
}

func NewEmailService(smtpHost string, smtpPort int, smtpUser, smtpPassword, fromEmail, appName string) EmailService {
	dialer := gomail.NewDialer(smtpHost, smtpPort, smtpUser, smtpPassword)
	return &emailService{
		dialer:  dialer,
		from:    fromEmail,
		appName: appName,
	}
}

func (s *emailService) send(tag, to, subject, body string) {
	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(s.from, s.appName))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	go func() {
		if err := s.dialer.DialAndSend(m); err != nil {
			log.Printf("[email][%s] send to %s failed: %v", tag, to, err)
		}
	}()
}

func (s *emailService) SendOTPEmail(email, name, otp string) {
	if name == "" {
		name = "User"
	}
	body := fmt.Sprintf(`
		<h2>Verify Your Account</h2>
		<p>Hello %s,</p>
		<p>Thank you for registering with <strong>%s</strong>.
		To complete your registration and activate your account, please verify your email address.</p>
		<p><strong>Your One-Time Password (OTP):</strong></p>
		<div style="font-size:24px; font-weight:bold; letter-spacing:4px;">%s</div>
		<p>This OTP is valid for <strong>10 minutes</strong>. Do not share it with anyone.</p>
		<p>If you did not request this, please ignore this email.</p>
	`, name, s.appName, otp)

	s.send("otp", email, "Verify Your Account - Action Required", body)
}

func (s *emailService) SendAccountCreatedEmail(email, name string) {
	body := fmt.Sprintf(`
		<h2>Welcome, %s!</h2>
		<p>Your account with <strong>%s</strong> has been created successfully.</p>
		<p>You can now log in and enjoy our services.</p>
	`, name, s.appName)

	s.send("welcome", email, "Account Created Successfully", body)
}

func (s *emailService) SendPasswordResetEmail(email, resetLink string) {
	body := fmt.Sprintf(`
		<h3>Password reset requested</h3>
		<p>We received a request to reset the password for your account.</p>
		<p><a href="%s">Reset your password</a></p>
		<p>This link is valid for 10 minutes. If you did not request this change, you can ignore this email.</p>
	`, resetLink)

	s.send("reset", email, "Reset Your Password", body)
}
