package main

import (
	"carebook/src/common"
	"carebook/src/db"
	"carebook/src/models"
	"carebook/src/types"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func bookingHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/bookings", func(ctx *gin.Context) {
			userId := ctx.GetUint("id")
			db := db.GetDb()
			var bookings []models.Booking
			if err := db.
				Model(&models.Booking{}).
				Where(&models.Booking{UserID: userId}).
				Order("created_at DESC").
				Limit(50).
				Find(&bookings).
				Error; err != nil {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Error while processing request"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": bookings, "count": len(bookings)})
		}).
		GET("/bookings/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			userId := ctx.GetUint("id")
			role := ctx.GetString("role")
			db := db.GetDb()
			var booking models.Booking
			query := db.Model(&models.Booking{}).Where("id = ?", params.ID)
			if role != string(types.ROLE_ADMIN) {
				query = query.Where("user_id = ?", userId)
			}
			if err := query.Preload("Payment").First(&booking).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					ctx.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
					return
				}
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Error while processing request"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": booking})
		}).
		POST("/bookings", func(ctx *gin.Context) {
			var body types.CreateBookingRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			userId := ctx.GetUint("id")
			booking, status, err := common.CreateBooking(userId, &body)
			if err != nil {
				ctx.JSON(status, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(status, gin.H{
				"id":           booking.ID,
				"service_name": booking.ServiceName,
				"status":       booking.Status,
				"total_cost":   booking.TotalCost,
			})
		}).
		PUT("/bookings/:id/cancel", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var body types.CancelBookingRequestBody
			if ctx.Request.ContentLength > 0 {
				if err := ctx.ShouldBindJSON(&body); err != nil {
					ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
					return
				}
			}
			userId := ctx.GetUint("id")
			booking, status, err := common.CancelBooking(params.ID, userId, body.Reason)
			if err != nil {
				ctx.JSON(status, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(status, gin.H{
				"id":           booking.ID,
				"status":       booking.Status,
				"cancelled_at": booking.CancelledAt,
			})
		})
	return g
}
