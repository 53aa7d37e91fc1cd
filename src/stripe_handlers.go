package main

import (
	"carebook/src/common"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"
)

func stripeHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/webhooks/stripe", func(ctx *gin.Context) {
			payload, err := io.ReadAll(ctx.Request.Body)
			if err != nil {
				log.Printf("[StripeEvent] Error reading request body: %s\n", err.Error())
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			whsecret := os.Getenv("STRIPE_WEBHOOK_SECRET")
			event, err := webhook.ConstructEvent(payload, ctx.GetHeader("Stripe-Signature"), whsecret)
			if err != nil {
				log.Printf("[StripeEvent] Error verifying webhook signature: %s\n", err.Error())
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid signature"})
				return
			}
			log.Printf("[StripeEvent] %s\n", event.Type)

			switch event.Type {
			case "payment_intent.succeeded":
				var pi stripe.PaymentIntent
				if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
					log.Printf("[StripeEvent] Error parsing PaymentIntent: %s\n", err.Error())
					ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
					return
				}
				if err := common.ReconcileSuccess(&pi); err != nil {
					log.Printf("[StripeEvent] Error reconciling success for [%s]: %s\n", pi.ID, err.Error())
					ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Error while processing event"})
					return
				}
			case "payment_intent.payment_failed":
				var pi stripe.PaymentIntent
				if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
					log.Printf("[StripeEvent] Error parsing PaymentIntent: %s\n", err.Error())
					ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
					return
				}
				if err := common.ReconcileFailure(&pi); err != nil {
					log.Printf("[StripeEvent] Error reconciling failure for [%s]: %s\n", pi.ID, err.Error())
					ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Error while processing event"})
					return
				}
			case "charge.refunded":
				var ch stripe.Charge
				if err := json.Unmarshal(event.Data.Raw, &ch); err != nil {
					log.Printf("[StripeEvent] Error parsing Charge: %s\n", err.Error())
					ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
					return
				}
				if err := common.ReconcileRefund(&ch); err != nil {
					log.Printf("[StripeEvent] Error reconciling refund for [%s]: %s\n", ch.ID, err.Error())
					ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Error while processing event"})
					return
				}
			default:
				log.Printf("[StripeEvent] Unhandled event type: %s\n", event.Type)
			}

			ctx.JSON(http.StatusOK, gin.H{"received": true})
		})
	return g
}
