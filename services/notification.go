package services

import (
	"context"
	"fmt"
	"hackmate-backend/config"
	"log"
	"sync"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"google.golang.org/api/option"
)

// NotificationService delivers email and push notifications. Every send is
// best-effort: failures are logged and never returned to the caller, so a
// dead SendGrid key or missing Firebase credentials can't block an
// invitation, match or message from committing.
type NotificationService struct {
	fcmOnce sync.Once
	fcm     *messaging.Client
}

var notifService = &NotificationService{}

func GetNotificationService() *NotificationService {
	return notifService
}

// ============================================================
// PUSH NOTIFICATIONS via Firebase Cloud Messaging
// ============================================================

func (ns *NotificationService) fcmClient() *messaging.Client {
	ns.fcmOnce.Do(func() {
		ctx := context.Background()
		app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(config.AppConfig.FirebaseCredPath))
		if err != nil {
			log.Printf("⚠️  Firebase not configured, push disabled: %v", err)
			return
		}
		client, err := app.Messaging(ctx)
		if err != nil {
			log.Printf("⚠️  Firebase messaging unavailable, push disabled: %v", err)
			return
		}
		ns.fcm = client
	})
	return ns.fcm
}

func (ns *NotificationService) sendPush(fcmToken string, title string, body string, data map[string]string) {
	if fcmToken == "" {
		return
	}
	client := ns.fcmClient()
	if client == nil {
		return
	}

	_, err := client.Send(context.Background(), &messaging.Message{
		Token: fcmToken,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	})
	if err != nil {
		log.Printf("❌ Push send error: %v", err)
		return
	}

	log.Printf("✅ Push notification sent: %s", title)
}

// ============================================================
// EMAIL NOTIFICATIONS via SendGrid
// ============================================================

func (ns *NotificationService) sendEmail(toEmail string, toName string, subject string, htmlBody string) {
	if config.AppConfig.SendGridAPIKey == "" {
		log.Printf("⚠️  SendGrid API key not set, skipping email to %s", toEmail)
		return
	}

	from := mail.NewEmail(config.AppConfig.AppName, config.AppConfig.SendGridFrom)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, "", htmlBody)

	client := sendgrid.NewSendClient(config.AppConfig.SendGridAPIKey)
	resp, err := client.Send(message)
	if err != nil {
		log.Printf("❌ Email send error: %v", err)
		return
	}
	if resp.StatusCode >= 400 {
		log.Printf("⚠️  SendGrid returned status %d for %s", resp.StatusCode, toEmail)
		return
	}

	log.Printf("✅ Email sent to %s: %s", toEmail, subject)
}

// ============================================================
// NOTIFICATION KINDS
// ============================================================

// NotifyInvitation tells the receiver someone wants to team up.
func (ns *NotificationService) NotifyInvitation(toEmail, toName, toFCMToken, senderName, message string) {
	body := fmt.Sprintf(`
		<h2>New collaboration invitation</h2>
		<p><strong>%s</strong> wants to team up with you on %s.</p>`,
		senderName, config.AppConfig.AppName)
	if message != "" {
		body += fmt.Sprintf(`<blockquote>%s</blockquote>`, message)
	}
	body += fmt.Sprintf(`<p><a href="%s/invitations">View invitation</a></p>`, config.AppConfig.FrontendURL)

	ns.sendEmail(toEmail, toName, senderName+" invited you to collaborate", body)
	ns.sendPush(toFCMToken, "New invitation", senderName+" wants to team up with you", map[string]string{
		"type": "invitation",
	})
}

// NotifyInvitationAccepted tells the original sender they have a new match.
func (ns *NotificationService) NotifyInvitationAccepted(toEmail, toName, toFCMToken, accepterName string) {
	body := fmt.Sprintf(`
		<h2>It's a match!</h2>
		<p><strong>%s</strong> accepted your invitation. You can now message each other.</p>
		<p><a href="%s/messages">Start the conversation</a></p>`,
		accepterName, config.AppConfig.FrontendURL)

	ns.sendEmail(toEmail, toName, accepterName+" accepted your invitation", body)
	ns.sendPush(toFCMToken, "It's a match!", accepterName+" accepted your invitation", map[string]string{
		"type": "match",
	})
}

// NotifyNewMessage pushes a preview to the recipient. Chat messages get a
// push only, no email.
func (ns *NotificationService) NotifyNewMessage(toFCMToken, senderName, preview, conversationID string) {
	if len(preview) > 80 {
		preview = preview[:80] + "…"
	}
	ns.sendPush(toFCMToken, senderName, preview, map[string]string{
		"type":            "message",
		"conversation_id": conversationID,
	})
}

// SendVerificationEmail delivers the email-verification link after signup.
func (ns *NotificationService) SendVerificationEmail(toEmail, toName, token string) {
	body := fmt.Sprintf(`
		<h2>Welcome to %s!</h2>
		<p>Please confirm your email address to finish setting up your account.</p>
		<p><a href="%s/verify-email?token=%s">Verify email</a></p>`,
		config.AppConfig.AppName, config.AppConfig.FrontendURL, token)

	ns.sendEmail(toEmail, toName, "Verify your email", body)
}

// SendPasswordResetEmail delivers the reset link. The link expires in an hour.
func (ns *NotificationService) SendPasswordResetEmail(toEmail, toName, token string) {
	body := fmt.Sprintf(`
		<h2>Password reset</h2>
		<p>We received a request to reset your password. This link expires in 1 hour.</p>
		<p><a href="%s/reset-password?token=%s">Reset password</a></p>
		<p>If you didn't request this, you can ignore this email.</p>`,
		config.AppConfig.FrontendURL, token)

	ns.sendEmail(toEmail, toName, "Reset your password", body)
}
