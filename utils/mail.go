package utils

import (
	"bytes"
	"fmt"
	"html/template"
	"log"
	"net/smtp"
	"os"
)

type EmailData struct {
	Name    string
	Message string
	LinkURL string
}

// SendEmail renders the given HTML template and delivers it over SMTP.
// When SMTP_ADDRESS is unset the mail is logged instead of sent, so the
// application stays usable without a configured provider.
func SendEmail(emailTo string, emailSubject string, data EmailData, templatePath string) error {
	smtpAddress := os.Getenv("SMTP_ADDRESS")
	if smtpAddress == "" {
		log.Printf("[mail] to=%s subject=%q link=%s (SMTP not configured, logging only)", emailTo, emailSubject, data.LinkURL)
		return nil
	}

	tmpl, err := template.ParseFiles(templatePath)
	if err != nil {
		return fmt.Errorf("template parse error: %w", err)
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("template execution error: %w", err)
	}

	message := fmt.Sprintf(
		"From: %s\r\nSubject: %s\r\nMIME-version: 1.0;\r\nContent-Type: text/html; charset=\"UTF-8\";\r\n\r\n%s",
		os.Getenv("FROM_EMAIL"),
		emailSubject,
		body.String(),
	)

	auth := smtp.PlainAuth(
		"",
		os.Getenv("FROM_EMAIL"),
		os.Getenv("FROM_EMAIL_PASSWORD"),
		os.Getenv("FROM_EMAIL_SMTP"),
	)

	if err := smtp.SendMail(smtpAddress, auth, os.Getenv("FROM_EMAIL"), []string{emailTo}, []byte(message)); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
