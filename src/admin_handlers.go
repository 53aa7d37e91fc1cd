package main

import (
	"carebook/src/common"
	"carebook/src/db"
	"carebook/src/models"
	"carebook/src/types"
	"carebook/src/utils"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

func adminHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/bookings", func(ctx *gin.Context) {
			var query types.ListQueryParams
			if err := ctx.ShouldBindQuery(&query); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			db := db.GetDb()
			q := db.Model(&models.Booking{})
			if query.Status != "" {
				q = q.Where("status = ?", query.Status)
			}
			if query.Category != "" {
				q = q.Where("category = ?", query.Category)
			}
			if query.Search != "" {
				pattern := utils.ILikePattern(query.Search)
				q = q.Where("name ILIKE ? OR phone ILIKE ? OR email ILIKE ? OR service_name ILIKE ?", pattern, pattern, pattern, pattern)
			}
			var total int64
			if err := q.Count(&total).Error; err != nil {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Error while processing request"})
				return
			}
			offset, limit := utils.Paginate(query.Page, query.Limit)
			var bookings []models.Booking
			if err := q.
				Order("created_at DESC").
				Offset(offset).
				Limit(limit).
				Find(&bookings).
				Error; err != nil {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Error while processing request"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{
				"items":      bookings,
				"pagination": utils.NewPagination(total, query.Page, limit),
			})
		}).
		PUT("/bookings/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var body types.AdminUpdateBookingRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			db := db.GetDb()
			var booking models.Booking
			if err := db.
				Model(&models.Booking{}).
				Where("id = ?", params.ID).
				First(&booking).
				Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					ctx.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
					return
				}
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Error while processing request"})
				return
			}
			updates := map[string]any{}
			if body.Status != nil {
				updates["status"] = *body.Status
				if *body.Status == types.BOOKING_CANCELLED && booking.Status != types.BOOKING_CANCELLED {
					updates["cancelled_at"] = time.Now()
					if body.CancellationReason == nil {
						updates["cancellation_reason"] = "Cancelled by admin"
					}
				}
			}
			if body.PaymentStatus != nil {
				updates["payment_status"] = *body.PaymentStatus
			}
			if body.CaregiverName != nil {
				updates["caregiver_name"] = *body.CaregiverName
			}
			if body.Notes != nil {
				updates["notes"] = *body.Notes
			}
			if body.CancellationReason != nil {
				updates["cancellation_reason"] = *body.CancellationReason
			}
			if len(updates) == 0 {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "Nothing to update"})
				return
			}
			if err := db.Transaction(func(tx *gorm.DB) error {
				return tx.
					Model(&models.Booking{}).
					Where("id = ?", booking.ID).
					Updates(updates).
					Error
			}); err != nil {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Error while processing request"})
				return
			}
			if err := db.Model(&models.Booking{}).Where("id = ?", booking.ID).First(&booking).Error; err != nil {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Error while processing request"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": booking})
		}).
		GET("/services", func(ctx *gin.Context) {
			var query types.ListQueryParams
			if err := ctx.ShouldBindQuery(&query); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			db := db.GetDb()
			q := db.Model(&models.Service{})
			if query.Category != "" {
				q = q.Where("category = ?", query.Category)
			}
			if query.IsActive != nil {
				q = q.Where("is_active = ?", *query.IsActive)
			}
			if query.Search != "" {
				pattern := utils.ILikePattern(query.Search)
				q = q.Where("name ILIKE ? OR description ILIKE ?", pattern, pattern)
			}
			var total int64
			if err := q.Count(&total).Error; err != nil {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Error while processing request"})
				return
			}
			offset, limit := utils.Paginate(query.Page, query.Limit)
			var services []models.Service
			if err := q.
				Order("service_id ASC").
				Offset(offset).
				Limit(limit).
				Find(&services).
				Error; err != nil {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Error while processing request"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{
				"items":      services,
				"pagination": utils.NewPagination(total, query.Page, limit),
			})
		}).
		POST("/services", func(ctx *gin.Context) {
			var body types.CreateServiceRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			service, err := common.CreateService(&body)
			if err != nil {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Error while processing request"})
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": service})
		}).
		PUT("/services/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var body types.UpdateServiceRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			db := db.GetDb()
			var service models.Service
			if err := db.
				Model(&models.Service{}).
				Where(&models.Service{ServiceID: params.ID}).
				First(&service).
				Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					ctx.JSON(http.StatusNotFound, gin.H{"error": "Service not found"})
					return
				}
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Error while processing request"})
				return
			}
			updates := map[string]any{}
			if body.Name != nil {
				updates["name"] = *body.Name
				updates["slug"] = slug.Make(*body.Name)
			}
			if body.Category != nil {
				updates["category"] = *body.Category
			}
			if body.Description != nil {
				updates["description"] = *body.Description
			}
			if body.Rate != nil {
				updates["rate"] = *body.Rate
			}
			if body.RateUnit != nil {
				updates["rate_unit"] = *body.RateUnit
			}
			if body.Features != nil {
				updates["features"] = *body.Features
			}
			if body.IsActive != nil {
				updates["is_active"] = *body.IsActive
			}
			if len(updates) == 0 {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "Nothing to update"})
				return
			}
			if err := db.Transaction(func(tx *gorm.DB) error {
				return tx.
					Model(&models.Service{}).
					Where("id = ?", service.ID).
					Updates(updates).
					Error
			}); err != nil {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Error while processing request"})
				return
			}
			common.InvalidateServiceCache()
			if err := db.Model(&models.Service{}).Where("id = ?", service.ID).First(&service).Error; err != nil {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Error while processing request"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": service})
		}).
		DELETE("/services/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			db := db.GetDb()
			result := db.
				Unscoped().
				Where(&models.Service{ServiceID: params.ID}).
				Delete(&models.Service{})
			if result.Error != nil {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Error while processing request"})
				return
			}
			if result.RowsAffected == 0 {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "Service not found"})
				return
			}
			common.InvalidateServiceCache()
			ctx.JSON(http.StatusOK, gin.H{"deleted": true})
		}).
		GET("/users", func(ctx *gin.Context) {
			var query types.ListQueryParams
			if err := ctx.ShouldBindQuery(&query); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			db := db.GetDb()
			q := db.Model(&models.User{})
			if query.IsActive != nil {
				q = q.Where("is_active = ?", *query.IsActive)
			}
			if query.Search != "" {
				pattern := utils.ILikePattern(query.Search)
				q = q.Where("name ILIKE ? OR email ILIKE ? OR phone ILIKE ?", pattern, pattern, pattern)
			}
			var total int64
			if err := q.Count(&total).Error; err != nil {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Error while processing request"})
				return
			}
			offset, limit := utils.Paginate(query.Page, query.Limit)
			var users []models.User
			if err := q.
				Order("created_at DESC").
				Offset(offset).
				Limit(limit).
				Find(&users).
				Error; err != nil {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Error while processing request"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{
				"items":      users,
				"pagination": utils.NewPagination(total, query.Page, limit),
			})
		}).
		PUT("/users/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			var body types.AdminUpdateUserRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			updates := map[string]any{}
			if body.Name != nil {
				updates["name"] = *body.Name
			}
			if body.Role != nil {
				updates["role"] = *body.Role
			}
			if body.IsActive != nil {
				updates["is_active"] = *body.IsActive
			}
			if len(updates) == 0 {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "Nothing to update"})
				return
			}
			db := db.GetDb()
			result := db.
				Model(&models.User{}).
				Where("id = ?", params.ID).
				Updates(updates)
			if result.Error != nil {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Error while processing request"})
				return
			}
			if result.RowsAffected == 0 {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
				return
			}
			var user models.User
			if err := db.Model(&models.User{}).Where("id = ?", params.ID).First(&user).Error; err != nil {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Error while processing request"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": user})
		}).
		GET("/payments", func(ctx *gin.Context) {
			var query types.ListQueryParams
			if err := ctx.ShouldBindQuery(&query); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			db := db.GetDb()
			q := db.Model(&models.Payment{})
			if query.Status != "" {
				q = q.Where("status = ?", query.Status)
			}
			if query.Search != "" {
				pattern := utils.ILikePattern(query.Search)
				q = q.Where("stripe_payment_intent_id ILIKE ?", pattern)
			}
			var total int64
			if err := q.Count(&total).Error; err != nil {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Error while processing request"})
				return
			}
			offset, limit := utils.Paginate(query.Page, query.Limit)
			var payments []models.Payment
			if err := q.
				Order("created_at DESC").
				Offset(offset).
				Limit(limit).
				Find(&payments).
				Error; err != nil {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Error while processing request"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{
				"items":      payments,
				"pagination": utils.NewPagination(total, query.Page, limit),
			})
		}).
		POST("/payments/refund", func(ctx *gin.Context) {
			var body types.AdminRefundRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			paymentId, err := uuid.Parse(body.PaymentID)
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			payment, status, err := common.AdminInitiateRefund(paymentId, body.Reason)
			if err != nil {
				ctx.JSON(status, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(status, gin.H{"data": payment})
		}).
		GET("/stats", func(ctx *gin.Context) {
			db := db.GetDb()
			var totalUsers, totalBookings, pendingBookings, confirmedBookings int64
			var revenue float64
			if err := db.Model(&models.User{}).Count(&totalUsers).Error; err != nil {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Error while processing request"})
				return
			}
			if err := db.Model(&models.Booking{}).Count(&totalBookings).Error; err != nil {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Error while processing request"})
				return
			}
			if err := db.
				Model(&models.Booking{}).
				Where("status = ?", types.BOOKING_PENDING).
				Count(&pendingBookings).
				Error; err != nil {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Error while processing request"})
				return
			}
			if err := db.
				Model(&models.Booking{}).
				Where("status = ?", types.BOOKING_CONFIRMED).
				Count(&confirmedBookings).
				Error; err != nil {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Error while processing request"})
				return
			}
			if err := db.
				Model(&models.Payment{}).
				Where("status = ?", types.PAYMENT_SUCCEEDED).
				Select("COALESCE(SUM(amount), 0)").
				Scan(&revenue).
				Error; err != nil {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Error while processing request"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{
				"totalUsers":        totalUsers,
				"totalBookings":     totalBookings,
				"pendingBookings":   pendingBookings,
				"confirmedBookings": confirmedBookings,
				"totalRevenue":      revenue,
			})
		})
	return g
}
