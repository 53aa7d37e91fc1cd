package main

import (
	"carebook/src/common"
	"carebook/src/db"
	"carebook/src/models"
	"carebook/src/types"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func paymentHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/payments/intent", func(ctx *gin.Context) {
			var body types.CreatePaymentIntentRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			userId := ctx.GetUint("id")
			result, status, err := common.CreatePaymentIntent(userId, &body.BookingData)
			if err != nil {
				ctx.JSON(status, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(status, result)
		}).
		GET("/payments/:id", func(ctx *gin.Context) {
			idParam := ctx.Params.ByName("id")
			paymentId, err := uuid.Parse(idParam)
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			userId := ctx.GetUint("id")
			role := ctx.GetString("role")
			db := db.GetDb()
			var payment models.Payment
			query := db.Model(&models.Payment{}).Where("id = ?", paymentId)
			if role != string(types.ROLE_ADMIN) {
				query = query.Where("user_id = ?", userId)
			}
			if err := query.First(&payment).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					ctx.JSON(http.StatusNotFound, gin.H{"error": "Payment not found"})
					return
				}
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Error while processing request"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": payment})
		})
	return g
}
