package main

import (
	"carebook/src/controllers"
	"carebook/src/db"
	"carebook/src/models"
	"carebook/src/types"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func authHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		POST("/auth/register", func(ctx *gin.Context) {
			userId, status, err := controllers.AuthRegister(ctx)
			if err != nil {
				ctx.JSON(status, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(status, gin.H{"id": userId})
		}).
		POST("/auth/login", func(ctx *gin.Context) {
			token, status, err := controllers.AuthLogin(ctx)
			if err != nil {
				ctx.JSON(status, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(status, gin.H{"token": token})
		})
	return g
}

func profileHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/profile", func(ctx *gin.Context) {
			userId := ctx.GetUint("id")
			db := db.GetDb()
			var user models.User
			if err := db.
				Model(&models.User{}).
				Where("id = ?", userId).
				First(&user).
				Error; err != nil {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Error while processing request"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": user})
		}).
		PUT("/profile", func(ctx *gin.Context) {
			var body types.UpdateProfileRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			updates := map[string]any{}
			if body.Name != nil {
				updates["name"] = *body.Name
			}
			if body.Phone != nil {
				updates["phone"] = *body.Phone
			}
			if len(updates) == 0 {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "Nothing to update"})
				return
			}
			userId := ctx.GetUint("id")
			db := db.GetDb()
			if err := db.Transaction(func(tx *gorm.DB) error {
				return tx.
					Model(&models.User{}).
					Where("id = ?", userId).
					Updates(updates).
					Error
			}); err != nil {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Error while processing request"})
				return
			}
			var user models.User
			if err := db.Model(&models.User{}).Where("id = ?", userId).First(&user).Error; err != nil {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Error while processing request"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": user})
		})
	return g
}
