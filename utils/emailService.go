package utils

import (
	"campushire/config"
	"fmt"
	"net/smtp"
	"strings"
)

// Generic Send Email
func SendEmail(to []string, subject string, htmlBody string) error {
	smtpHost := "smtp.gmail.com"
	smtpPort := "587"

	from := config.AppConfig.EmailSender
	password := config.AppConfig.Password

	// MIME basics
	msg := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n"
	msg += fmt.Sprintf("From: CampusHire <%s>\r\n", from)
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

func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 15px rgba(0,0,0,0.05); }
			.header { background-color: #1A3C6E; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #1A3C6E; line-height: 1.6; }
			.content h2 { color: #1A3C6E; margin-top: 0; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; border-top: 1px solid #E0E0E0; }
			.info-box { background: #E8F0FE; padding: 15px; border-radius: 4px; border-left: 4px solid #3FA66A; margin: 20px 0; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>CAMPUSHIRE</h1>
			</div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">
				&copy; 2026 CampusHire. All rights reserved.
			</div>
		</div>
	</body>
	</html>
	`, title, bodyContent)
}

// --- Triggers ---

// 1. Welcome / Signup
func SendWelcomeEmail(email, name string) {
	subject := "Welcome to CampusHire"
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Welcome to <strong>CampusHire</strong>! Your account has been created successfully.</p>
		<p>Browse open positions, enroll in courses and track your learning progress from your dashboard.</p>
	`, name)

	go SendEmail([]string{email}, subject, getEmailTemplate("Welcome Onboard!", body))
}

// 2. Enrollment Confirmation
func SendEnrollmentEmail(email, name, courseTitle string) {
	subject := "Enrolled: " + courseTitle
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>You are now enrolled in <strong>%s</strong>.</p>
		<div class="info-box">
			<strong>Next Steps:</strong> Head to the course page and start with the first module.
		</div>
	`, name, courseTitle)

	go SendEmail([]string{email}, subject, getEmailTemplate("Enrollment Successful", body))
}

// 3. Course Completed + Certificate Issued
func SendCourseCompletedEmail(email, name, courseTitle, certificateNumber string) {
	subject := "Course Completed: " + courseTitle
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Congratulations! You have completed <strong>%s</strong>.</p>
		<div class="info-box">
			Your certificate number is <strong>%s</strong>. Find it under your certificates.
		</div>
	`, name, courseTitle, certificateNumber)

	go SendEmail([]string{email}, subject, getEmailTemplate("Congratulations!", body))
}

// 4. Quiz Passed
func SendQuizPassedEmail(email, name, quizTitle string, score int) {
	subject := "Quiz Passed: " + quizTitle
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>You passed <strong>%s</strong> with a score of <strong>%d%%</strong>.</p>
		<p>Keep going to finish the course and earn your certificate.</p>
	`, name, quizTitle, score)

	go SendEmail([]string{email}, subject, getEmailTemplate("Well Done!", body))
}

// 5. Application Received (to recruiter)
func SendApplicationReceivedEmail(recruiterEmail, recruiterName, applicantName, jobTitle string) {
	subject := "New Application: " + jobTitle
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p><strong>%s</strong> has applied for <strong>%s</strong>.</p>
		<p>Review the application from your recruiter dashboard.</p>
	`, recruiterName, applicantName, jobTitle)

	go SendEmail([]string{recruiterEmail}, subject, getEmailTemplate("New Application", body))
}
