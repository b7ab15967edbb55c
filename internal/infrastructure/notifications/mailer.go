package notifications

import (
	"fmt"
	"net/smtp"
	"strings"
	"time"

	"adlicense.backend/internal/config"
)

var smtpSendMail = smtp.SendMail

// Mailer sends transactional HTML mail over SMTP
type Mailer struct {
	cfg config.SMTPConfig
}

// NewMailer creates a new mailer
func NewMailer(cfg config.SMTPConfig) *Mailer {
	return &Mailer{cfg: cfg}
}

// SendWelcome greets a newly registered user
func (m *Mailer) SendWelcome(to, name, uid string) error {
	subject := "Welcome to AdLicense"
	body := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
    <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
        <h2 style="color: #2563eb;">Welcome%s!</h2>
        <p>Your account has been created. Your user ID is:</p>
        <div style="background-color: #f3f4f6; padding: 15px; text-align: center; font-size: 24px; font-weight: bold; letter-spacing: 5px; margin: 20px 0;">
            %s
        </div>
        <p>Complete your profile and identity verification to purchase a license.</p>
        <hr style="border: none; border-top: 1px solid #e5e7eb; margin: 20px 0;">
        <p style="color: #6b7280; font-size: 12px;">This email was sent automatically. Please do not reply.</p>
    </div>
</body>
</html>
`, salutation(name), uid)
	return m.sendHTML(to, subject, body)
}

// SendLicenseKey delivers a freshly minted license key
func (m *Mailer) SendLicenseKey(to, name, key string, expiresAt time.Time) error {
	subject := "Your AdLicense key"
	body := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
    <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
        <h2 style="color: #2563eb;">Payment confirmed</h2>
        <p>Hello%s,</p>
        <p>Your payment has been received. Your license key is:</p>
        <div style="background-color: #f3f4f6; padding: 15px; text-align: center; font-size: 20px; font-weight: bold; letter-spacing: 2px; margin: 20px 0;">
            %s
        </div>
        <p>It is valid until <strong>%s</strong>. Enter the key in the extension to activate it.</p>
        <hr style="border: none; border-top: 1px solid #e5e7eb; margin: 20px 0;">
        <p style="color: #6b7280; font-size: 12px;">This email was sent automatically. Please do not reply.</p>
    </div>
</body>
</html>
`, salutation(name), key, expiresAt.Format("January 2, 2006"))
	return m.sendHTML(to, subject, body)
}

// SendPaymentFailed tells the user their payment was not accepted
func (m *Mailer) SendPaymentFailed(to, name, reason string) error {
	subject := "Your AdLicense payment"
	body := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
    <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
        <h2 style="color: #dc2626;">Payment not accepted</h2>
        <p>Hello%s,</p>
        <p>%s</p>
        <p>You can start a new payment from your dashboard at any time.</p>
        <hr style="border: none; border-top: 1px solid #e5e7eb; margin: 20px 0;">
        <p style="color: #6b7280; font-size: 12px;">This email was sent automatically. Please do not reply.</p>
    </div>
</body>
</html>
`, salutation(name), reason)
	return m.sendHTML(to, subject, body)
}

// SendKYCResult reports the outcome of an identity review
func (m *Mailer) SendKYCResult(to, name string, approved bool, reason string) error {
	subject := "Your identity verification"
	var block string
	if approved {
		block = `<h2 style="color: #16a34a;">Verification approved</h2>
        <p>Your identity has been verified. You can now purchase a license.</p>`
	} else {
		block = fmt.Sprintf(`<h2 style="color: #dc2626;">Verification declined</h2>
        <p>Reason: %s</p>
        <p>You can submit new documents from your dashboard.</p>`, reason)
	}
	body := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
    <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
        <p>Hello%s,</p>
        %s
        <hr style="border: none; border-top: 1px solid #e5e7eb; margin: 20px 0;">
        <p style="color: #6b7280; font-size: 12px;">This email was sent automatically. Please do not reply.</p>
    </div>
</body>
</html>
`, salutation(name), block)
	return m.sendHTML(to, subject, body)
}

// SendExpiryReminder warns that a license is about to lapse
func (m *Mailer) SendExpiryReminder(to, name, key string, expiresAt time.Time, daysLeft int) error {
	subject := "Your AdLicense key expires soon"
	body := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
    <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
        <h2 style="color: #d97706;">License expiring</h2>
        <p>Hello%s,</p>
        <p>Your license key <strong>%s</strong> expires in %d day(s), on %s.</p>
        <p>Renew from your dashboard to keep the extension active.</p>
        <hr style="border: none; border-top: 1px solid #e5e7eb; margin: 20px 0;">
        <p style="color: #6b7280; font-size: 12px;">This email was sent automatically. Please do not reply.</p>
    </div>
</body>
</html>
`, salutation(name), key, daysLeft, expiresAt.Format("January 2, 2006"))
	return m.sendHTML(to, subject, body)
}

func salutation(name string) string {
	if name == "" {
		return ""
	}
	return " " + name
}

func (m *Mailer) sendHTML(to, subject, body string) error {
	headers := []string{
		"From: " + m.cfg.From,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/html; charset=UTF-8",
	}

	var msg strings.Builder
	msg.WriteString(strings.Join(headers, "\r\n"))
	msg.WriteString("\r\n\r\n")
	msg.WriteString(body)

	auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)

	return smtpSendMail(addr, auth, m.cfg.From, []string{to}, []byte(msg.String()))
}
