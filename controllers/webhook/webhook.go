package webhookController

import (
	"encoding/json"
	"errors"
	"log"
	"strings"

	"lms/config"
	"lms/database"
	"lms/middleware"
	"lms/models"
	"lms/services"
	"lms/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type clerkEvent struct {
	Type string `json:"type"`
	Data struct {
		ID             string `json:"id"`
		FirstName      string `json:"first_name"`
		LastName       string `json:"last_name"`
		ImageURL       string `json:"image_url"`
		EmailAddresses []struct {
			EmailAddress string `json:"email_address"`
		} `json:"email_addresses"`
	} `json:"data"`
}

func sanitize(value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "null" || trimmed == "undefined" {
		return ""
	}
	return trimmed
}

// fullName joins first and last names; empty when the provider sent neither,
// in which case the stored name is left untouched.
func fullName(first, last string) string {
	first = sanitize(first)
	last = sanitize(last)
	switch {
	case first != "" && last != "":
		return first + " " + last
	case first != "":
		return first
	default:
		return last
	}
}

// ClerkWebhooks mirrors identity-provider user lifecycle events into the
// local users table.
func ClerkWebhooks(c *fiber.Ctx) error {
	payload := c.Body()

	err := utils.VerifyClerkSignature(
		payload,
		c.Get("svix-id"),
		c.Get("svix-timestamp"),
		c.Get("svix-signature"),
		config.AppConfig.ClerkWebhookSecret,
	)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Webhook signature verification failed", nil)
	}

	var event clerkEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid webhook payload", nil)
	}

	db := database.Database.Db

	switch event.Type {
	case "user.created":
		if len(event.Data.EmailAddresses) == 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Missing email address", nil)
		}
		user := models.User{
			ID:       event.Data.ID,
			Name:     fullName(event.Data.FirstName, event.Data.LastName),
			Email:    event.Data.EmailAddresses[0].EmailAddress,
			ImageUrl: event.Data.ImageURL,
			Role:     models.RoleStudent,
		}
		if err := db.Create(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				// Redelivered event; the mirror already exists.
				return c.JSON(fiber.Map{})
			}
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, err.Error(), nil)
		}
		return c.JSON(fiber.Map{})

	case "user.updated":
		if len(event.Data.EmailAddresses) == 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Missing email address", nil)
		}
		updates := map[string]interface{}{
			"email":     event.Data.EmailAddresses[0].EmailAddress,
			"image_url": event.Data.ImageURL,
		}
		if name := fullName(event.Data.FirstName, event.Data.LastName); name != "" {
			updates["name"] = name
		}
		if err := db.Model(&models.User{}).Where("id = ?", event.Data.ID).Updates(updates).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, err.Error(), nil)
		}
		return c.JSON(fiber.Map{})

	case "user.deleted":
		if err := db.Delete(&models.User{}, "id = ?", event.Data.ID).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, err.Error(), nil)
		}
		return c.JSON(fiber.Map{})

	default:
		log.Printf("Unhandled webhook event type: %s", event.Type)
		return c.JSON(fiber.Map{})
	}
}

type stripeEvent struct {
	Type string `json:"type"`
	Data struct {
		Object struct {
			ID       string            `json:"id"`
			Metadata map[string]string `json:"metadata"`
		} `json:"object"`
	} `json:"data"`
}

// StripeWebhooks settles card checkouts. The session metadata carries the
// purchase id we attached when opening the checkout.
func StripeWebhooks(c *fiber.Ctx) error {
	payload := c.Body()

	err := utils.VerifyStripeSignature(payload, c.Get("Stripe-Signature"), config.AppConfig.StripeWebhookSecret)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString("Webhook Error: " + err.Error())
	}

	var event stripeEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return c.Status(fiber.StatusBadRequest).SendString("Webhook Error: invalid payload")
	}

	db := database.Database.Db

	switch event.Type {
	case "checkout.session.completed":
		purchaseID := event.Data.Object.Metadata["purchaseId"]
		if purchaseID == "" {
			return c.Status(fiber.StatusBadRequest).SendString("Webhook Error: missing purchaseId metadata")
		}
		if err := services.CompletePurchase(db, purchaseID); err != nil {
			log.Printf("Stripe webhook: completing purchase %s failed: %v", purchaseID, err)
		}

	case "checkout.session.expired", "checkout.session.async_payment_failed":
		purchaseID := event.Data.Object.Metadata["purchaseId"]
		if purchaseID != "" {
			if err := services.FailPurchase(db, purchaseID); err != nil {
				log.Printf("Stripe webhook: failing purchase %s: %v", purchaseID, err)
			}
		}

	default:
		log.Printf("Unhandled event type %s", event.Type)
	}

	return c.JSON(fiber.Map{"received": true})
}
