package mail

import (
	"fmt"
	"log"

	"gopkg.in/gomail.v2"
)

// Sender delivers a password-reset code out of band. Implementations are
// best-effort: they report delivery as a flag and never return an error.
type Sender interface {
	Send(email, code string) bool
}

// SMTPSender sends reset codes over SMTP. The dialer is constructed once
// at startup and reused for every message.
type SMTPSender struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPSender builds a sender for the given SMTP account.
func NewSMTPSender(host string, port int, username, password, from string) *SMTPSender {
	return &SMTPSender{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

// Send mails the code to the address. Failures are logged and reported
// as false; the issued code stays valid either way.
func (s *SMTPSender) Send(email, code string) bool {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Password Reset OTP - Task Management App")
	m.SetBody("text/html", fmt.Sprintf(otpBody, code))

	if err := s.dialer.DialAndSend(m); err != nil {
		log.Printf("send otp mail to %s: %v", email, err)
		return false
	}
	return true
}

const otpBody = `<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px; border: 1px solid #e0e0e0; border-radius: 5px;">
  <h2 style="color: #3949ab;">Task Management App</h2>
  <p>Hello,</p>
  <p>You have requested to reset your password. Please use the following OTP to complete the process:</p>
  <h3 style="background-color: #f5f5f5; padding: 10px; text-align: center; font-size: 24px; letter-spacing: 5px;">%s</h3>
  <p>This OTP will expire in 10 minutes.</p>
  <p>If you did not request a password reset, please ignore this email.</p>
  <p>Thank you,<br>Task Management App Team</p>
</div>`
