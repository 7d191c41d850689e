package utils

import (
	"crypto/tls"
	"fmt"
	"net/smtp"
	"os"
	"time"
)

// ======================
// SMTP Configuration
// ======================
var (
	smtpHost      = os.Getenv("SMTP_HOST")
	smtpPort      = os.Getenv("SMTP_PORT")
	smtpUsername  = os.Getenv("SMTP_USERNAME")
	smtpPassword  = os.Getenv("SMTP_PASSWORD")
	smtpFromName  = os.Getenv("SMTP_FROM_NAME")
	smtpFromEmail = os.Getenv("SMTP_FROM_EMAIL")
	smtpTimeout   = 10 * time.Second
)

// sendEmail sends a single plain-text mail via STARTTLS.
func sendEmail(to, subject, body string) error {
	if smtpHost == "" || smtpUsername == "" || smtpPassword == "" {
		fmt.Println("⚠️ SMTP not configured. Email not sent.")
		return nil
	}

	if smtpFromEmail == "" {
		smtpFromEmail = smtpUsername
	}

	addr := fmt.Sprintf("%s:%s", smtpHost, smtpPort)

	client, err := smtp.Dial(addr)
	if err != nil {
		return fmt.Errorf("failed to dial SMTP server: %w", err)
	}
	defer client.Close()

	tlsConfig := &tls.Config{
		InsecureSkipVerify: true,
		ServerName:         smtpHost,
	}

	if err = client.StartTLS(tlsConfig); err != nil {
		return fmt.Errorf("failed to start TLS: %w", err)
	}

	auth := smtp.PlainAuth("", smtpUsername, smtpPassword, smtpHost)
	if err := client.Auth(auth); err != nil {
		return fmt.Errorf("authentication failed: %w", err)
	}

	if err := client.Mail(smtpFromEmail); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("failed to set recipient: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to open data writer: %w", err)
	}

	msg := fmt.Sprintf("From: %s <%s>\r\nTo: %s\r\nSubject: %s\r\n\r\n%s",
		smtpFromName, smtpFromEmail, to, subject, body)
	if _, err := w.Write([]byte(msg)); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to close data writer: %w", err)
	}

	return client.Quit()
}

// SendJoinRequestDecisionEmail notifies a requester that their join request
// was approved or rejected. Fire and forget from the caller's perspective.
func SendJoinRequestDecisionEmail(to, mandapamName, status string) {
	go func() {
		subject := fmt.Sprintf("Your join request for %s was %s", mandapamName, status)
		body := fmt.Sprintf(
			"Namaste,\n\nYour request to join %s has been %s by the mandapam admin.\n\n— Mandapam Management",
			mandapamName, status,
		)
		if err := sendEmail(to, subject, body); err != nil {
			fmt.Printf("⚠️ Failed to send decision email to %s: %v\n", to, err)
		}
	}()
}

// SendVolunteerRoleEmail notifies a member they have been assigned a role.
func SendVolunteerRoleEmail(to, mandapamName, role string) {
	go func() {
		subject := fmt.Sprintf("You are now a %s at %s", role, mandapamName)
		body := fmt.Sprintf(
			"Namaste,\n\nThe admin of %s has assigned you the role of %s.\n\n— Mandapam Management",
			mandapamName, role,
		)
		if err := sendEmail(to, subject, body); err != nil {
			fmt.Printf("⚠️ Failed to send role email to %s: %v\n", to, err)
		}
	}()
}
