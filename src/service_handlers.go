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

func serviceHandlers(g *gin.RouterGroup) *gin.RouterGroup {
	g.
		GET("/services", func(ctx *gin.Context) {
			services, err := common.ActiveServices()
			if err != nil {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Error while processing request"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": services, "count": len(services)})
		}).
		GET("/services/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			db := db.GetDb()
			var service models.Service
			if err := db.
				Model(&models.Service{}).
				Where(&models.Service{ServiceID: params.ID, IsActive: true}).
				First(&service).
				Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					ctx.JSON(http.StatusNotFound, gin.H{"error": "Service not found"})
					return
				}
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Error while processing request"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": service})
		})
	return g
}
