package utils

import (
	"cocina/config"
	"log"
	"time"

	"github.com/go-resty/resty/v2"
)

// NotifyAdminEnrollment posts an admin alert to the external mail-script
// endpoint after a successful admission. Best-effort: the call runs on its
// own goroutine, failures are logged and dropped, never surfaced to the
// enrollment that triggered it.
func NotifyAdminEnrollment(courseName, userName, userEmail, phone string, amount float64) {
	url := config.AppConfig.NotifyScriptURL
	if url == "" {
		return
	}

	payload := map[string]interface{}{
		"event":     "enrollment",
		"course":    courseName,
		"name":      userName,
		"email":     userEmail,
		"phone":     phone,
		"amount":    amount,
		"timestamp": time.Now().Format(time.RFC3339),
	}

	go func() {
		client := resty.New().SetTimeout(10 * time.Second)
		resp, err := client.R().
			SetHeader("Content-Type", "application/json").
			SetHeader("X-Api-Key", config.AppConfig.NotifyScriptKey).
			SetBody(payload).
			Post(url)
		if err != nil {
			log.Printf("[NOTIFY] script call failed: %v", err)
			return
		}
		if resp.IsError() {
			log.Printf("[NOTIFY] script returned %d: %s", resp.StatusCode(), resp.String())
		}
	}()
}

// NotifyAdminProofUploaded alerts the admins that a payment proof landed and
// is waiting for verification
func NotifyAdminProofUploaded(courseName, userName, userEmail string) {
	url := config.AppConfig.NotifyScriptURL
	if url == "" {
		return
	}

	payload := map[string]interface{}{
		"event":     "proof_uploaded",
		"course":    courseName,
		"name":      userName,
		"email":     userEmail,
		"timestamp": time.Now().Format(time.RFC3339),
	}

	go func() {
		client := resty.New().SetTimeout(10 * time.Second)
		resp, err := client.R().
			SetHeader("Content-Type", "application/json").
			SetHeader("X-Api-Key", config.AppConfig.NotifyScriptKey).
			SetBody(payload).
			Post(url)
		if err != nil {
			log.Printf("[NOTIFY] script call failed: %v", err)
			return
		}
		if resp.IsError() {
			log.Printf("[NOTIFY] script returned %d: %s", resp.StatusCode(), resp.String())
		}
	}()
}
