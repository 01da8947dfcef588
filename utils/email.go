// utils/email.go
package utils

import (
	"fmt"
	"log"
	"os"

	"ecotrack-api/models"

	"github.com/keighl/postmark"
)

// EmailService handles sending emails using Postmark. When no API token
// is configured the service logs instead of sending, so local runs work
// without an account.
type EmailService struct {
	client *postmark.Client
	sender string
}

// NewEmailService initializes and returns a new EmailService instance
func NewEmailService() *EmailService {
	apiToken := os.Getenv("POSTMARK_API_TOKEN")
	if apiToken == "" {
		log.Println("POSTMARK_API_TOKEN not set; email sending disabled")
		return &EmailService{}
	}
	return &EmailService{
		client: postmark.NewClient(apiToken, ""),
		sender: os.Getenv("EMAIL_SENDER"),
	}
}

// SendEmail sends a basic email to the specified recipient
func (es *EmailService) SendEmail(toEmail, subject, htmlContent string) error {
	if es.client == nil {
		log.Printf("Email disabled; would send %q to %s", subject, toEmail)
		return nil
	}
	_, err := es.client.SendEmail(postmark.Email{
		From:     es.sender,
		To:       toEmail,
		Subject:  subject,
		HtmlBody: htmlContent,
		TextBody: htmlContent,
	})
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// SendOrderConfirmationEmail notifies a user that their payment went
// through.
func (es *EmailService) SendOrderConfirmationEmail(toEmail, productName string, order models.Order) error {
	subject := "Order Confirmation - EcoTrack"
	htmlContent := fmt.Sprintf(
		"<strong>Thank you for your order!</strong><br><br>Your payment for <strong>%s</strong> (order %s) has been received.<br><br>Total: <strong>%.2f</strong><br>Payment Method: <strong>%s</strong><br><br>Thank you for shopping sustainably with EcoTrack!",
		productName,
		order.ID.Hex(),
		order.TotalPrice,
		order.PaymentMethod,
	)
	return es.SendEmail(toEmail, subject, htmlContent)
}
