package utils

import (
	"fmt"
	"time"

	"skillhub/config"
	"skillhub/models"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
)

// WelcomeWebhookPayload is the body posted to the notification endpoint on a
// successful registration.
type WelcomeWebhookPayload struct {
	Name               string `json:"name"`
	Email              string `json:"email"`
	Role               string `json:"role"`
	RegistrationNumber string `json:"registrationNumber,omitempty"`
	Department         string `json:"department,omitempty"`
	RegistrationDate   string `json:"registrationDate"`
	Platform           string `json:"platform"`
}

// SendWelcomeWebhook posts the new user's details to the configured
// notification endpoint with a bounded timeout. Callers treat a failure as
// log-and-continue: registration must never roll back because the webhook
// was down.
func SendWelcomeWebhook(user models.User) error {
	webhookURL := config.AppConfig.WebhookURL
	if webhookURL == "" {
		return nil
	}

	payload := WelcomeWebhookPayload{
		Name:               user.Name,
		Email:              user.Email,
		Role:               user.Role,
		RegistrationNumber: user.RegistrationNumber,
		Department:         user.Department,
		RegistrationDate:   time.Now().UTC().Format(time.RFC3339),
		Platform:           "SkillHub",
	}

	client := resty.New().SetTimeout(time.Duration(config.AppConfig.WebhookTimeoutSec) * time.Second)
	resp, err := client.R().
		SetHeader("Content-Type", "application/json").
		SetBody(payload).
		Post(webhookURL)
	if err != nil {
		return err
	}
	if resp.StatusCode() >= 400 {
		return fmt.Errorf("welcome webhook returned status %d", resp.StatusCode())
	}

	logrus.WithFields(logrus.Fields{
		"email":  user.Email,
		"status": resp.StatusCode(),
	}).Info("Welcome webhook delivered")
	return nil
}
