package utils

import (
	"fmt"
	"log"

	"lms/config"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendEmail delivers one transactional email through SendGrid. No-op with a
// log line when the API key is absent (local development).
func SendEmail(toEmail, toName, subject, htmlBody string) error {
	cfg := config.AppConfig
	if cfg.SendGridAPIKey == "" {
		log.Printf("Email skipped (SendGrid not configured): %s -> %s", subject, toEmail)
		return nil
	}

	from := mail.NewEmail("Course Platform", cfg.EmailSender)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, "", htmlBody)

	client := sendgrid.NewSendClient(cfg.SendGridAPIKey)
	resp, err := client.Send(message)
	if err != nil {
		log.Printf("Error sending email to %s: %v", toEmail, err)
		return err
	}
	if resp.StatusCode >= 400 {
		log.Printf("SendGrid rejected email to %s: %d %s", toEmail, resp.StatusCode, resp.Body)
		return fmt.Errorf("sendgrid status %d", resp.StatusCode)
	}
	return nil
}

func emailTemplate(title, bodyContent string) string {
	return fmt.Sprintf(`
	<html>
		<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px;">
			<div style="max-width: 600px; margin: auto; background-color: #ffffff; border-radius: 8px; padding: 30px;">
				<h2 style="color: #333333; text-align: center;">%s</h2>
				%s
				<p style="text-align: center; font-size: 12px; color: #bbbbbb; margin-top: 30px;">Course Platform Team</p>
			</div>
		</body>
	</html>
	`, title, bodyContent)
}

// --- Triggers ---

// SendEnrollmentApprovedEmail notifies a student that their payment proof
// was accepted.
func SendEnrollmentApprovedEmail(email, name, courseTitle string) {
	subject := "Enrollment Approved: " + courseTitle
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your payment has been verified and you are now enrolled in <strong>%s</strong>.</p>
		<p>You can access all course content from your dashboard.</p>
	`, name, courseTitle)

	go SendEmail(email, name, subject, emailTemplate("Enrollment Approved", body))
}

// SendEnrollmentRejectedEmail notifies a student of a rejected payment proof.
func SendEnrollmentRejectedEmail(email, name, courseTitle, reason string) {
	subject := "Enrollment Update: " + courseTitle
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Unfortunately your enrollment request for <strong>%s</strong> was not approved.</p>
		<div style="color: #dc3545; font-weight: bold;">Reason: %s</div>
		<p>Please verify your payment details and submit a new request.</p>
	`, name, courseTitle, reason)

	go SendEmail(email, name, subject, emailTemplate("Enrollment Rejected", body))
}

// SendBookingProcessedEmail notifies a booking contact about the educator's
// decision.
func SendBookingProcessedEmail(email, name, serviceType, decision string) {
	if email == "" {
		return
	}
	subject := fmt.Sprintf("Booking %s: %s", decision, serviceType)
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Your booking for <strong>%s</strong> has been %s.</p>
	`, name, serviceType, decision)

	go SendEmail(email, name, subject, emailTemplate("Booking Update", body))
}

// SendPendingReminderEmail nudges the educator about requests waiting longer
// than the configured age.
func SendPendingReminderEmail(email, name string, pendingCount int64) {
	subject := "Pending enrollment requests awaiting review"
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>You have <strong>%d</strong> enrollment request(s) that have been pending for a while.</p>
		<p>Please review them from your dashboard.</p>
	`, name, pendingCount)

	go SendEmail(email, name, subject, emailTemplate("Review Reminder", body))
}
