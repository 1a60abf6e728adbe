package utils

import (
	"cocina/config"
	"fmt"
	"net/smtp"
	"strings"
	"time"
)

// Generic Send Email
func SendEmail(to []string, subject string, htmlBody string) error {
	smtpHost := config.AppConfig.SMTPHost
	smtpPort := config.AppConfig.SMTPPort

	from := config.AppConfig.EmailSender
	password := config.AppConfig.Password

	// MIME basics
	msg := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n"
	msg += fmt.Sprintf("From: Club de Cocina <%s>\r\n", from)
	msg += fmt.Sprintf("To: %s\r\n", strings.Join(to, ","))
	msg += fmt.Sprintf("Subject: %s\r\n\r\n", subject)
	msg += htmlBody

	auth := smtp.PlainAuth("", from, password, smtpHost)

	err := smtp.SendMail(smtpHost+":"+smtpPort, auth, from, to, []byte(msg))
	if err != nil {
		fmt.Println("Error sending email:", err)
		return err
	}
	return nil
}

// HTML wrapper shared by every club email
func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #FAF7F2; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 15px rgba(0,0,0,0.05); }
			.header { background-color: #7A3B2E; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #3D2B1F; line-height: 1.6; }
			.content h2 { color: #7A3B2E; margin-top: 0; }
			.footer { background-color: #FAF7F2; padding: 20px; text-align: center; font-size: 12px; color: #666666; border-top: 1px solid #E0E0E0; }
			.info-box { background: #FFF3E0; padding: 15px; border-radius: 4px; border-left: 4px solid #D7A05D; margin: 20px 0; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>CLUB DE COCINA</h1>
			</div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">
				&copy; 2026 Club de Cocina. All rights reserved.
			</div>
		</div>
	</body>
	</html>
	`, title, bodyContent)
}

// --- Triggers ---

// 1. Welcome / Signup
func SendWelcomeEmail(email, name string) {
	subject := "Welcome to Club de Cocina"
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Welcome to <strong>Club de Cocina</strong>! Your account has been created.</p>
		<p>Browse the upcoming courses and reserve your seat whenever you are ready.</p>
	`, name)

	go SendEmail([]string{email}, subject, getEmailTemplate("Welcome!", body))
}

// 2. Enrollment received (pending payment)
func SendEnrollmentPendingEmail(email, name, courseName string, scheduledAt time.Time, amount float64) {
	subject := "Seat reserved: " + courseName
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your seat for <strong>%s</strong> on %s is reserved.</p>
		<div class="info-box">
			Amount due: <strong>$%.2f</strong>. Please upload your payment proof
			from your enrollments page to confirm the seat.
		</div>
	`, name, courseName, scheduledAt.Format("02 Jan 2006 15:04"), amount)

	go SendEmail([]string{email}, subject, getEmailTemplate("Seat Reserved", body))
}

// 3. Enrollment confirmed by an admin
func SendEnrollmentConfirmedEmail(email, name, courseName string, scheduledAt time.Time) {
	subject := "Enrollment confirmed: " + courseName
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your payment was verified and your seat for <strong>%s</strong> is confirmed.</p>
		<p>See you on %s. Bring an apron!</p>
	`, name, courseName, scheduledAt.Format("02 Jan 2006 15:04"))

	go SendEmail([]string{email}, subject, getEmailTemplate("See You in the Kitchen", body))
}

// 4. Enrollment cancelled
func SendEnrollmentCancelledEmail(email, name, courseName string) {
	subject := "Enrollment cancelled: " + courseName
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your enrollment in <strong>%s</strong> has been cancelled.</p>
		<p>The seat is released. You can enroll again while seats last.</p>
	`, name, courseName)

	go SendEmail([]string{email}, subject, getEmailTemplate("Enrollment Cancelled", body))
}

// 5. Course cancelled (to every active enrollee)
func SendCourseCancelledEmail(email, name, courseName string) {
	subject := "Course cancelled: " + courseName
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>We are sorry: <strong>%s</strong> has been cancelled by the club.</p>
		<div class="info-box">
			If you already paid, an administrator will contact you about the refund.
		</div>
	`, name, courseName)

	go SendEmail([]string{email}, subject, getEmailTemplate("Course Cancelled", body))
}
