package common

import (
	"carebook/src/db"
	"carebook/src/lib"
	"carebook/src/models"
	"carebook/src/types"
	"context"
	"encoding/json"
	"log"

	"github.com/gosimple/slug"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const serviceCacheKey = "services:active"

// NextServiceID mints the next dense service id from the counters row under
// a row lock, so two concurrent admin creates cannot compute the same id.
func NextServiceID(tx *gorm.DB) (uint, error) {
	var counter models.Counter
	err := tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where(&models.Counter{Name: "service_id"}).
		First(&counter).
		Error
	if err == gorm.ErrRecordNotFound {
		counter = models.Counter{Name: "service_id", Value: 0}
		if err := tx.Create(&counter).Error; err != nil {
			return 0, err
		}
	} else if err != nil {
		return 0, err
	}
	next := counter.Value + 1
	if err := tx.
		Model(&models.Counter{}).
		Where("id = ?", counter.ID).
		Update("value", next).
		Error; err != nil {
		return 0, err
	}
	return next, nil
}

func CreateService(body *types.CreateServiceRequestBody) (*models.Service, error) {
	var service models.Service
	db := db.GetDb()
	err := db.Transaction(func(tx *gorm.DB) error {
		serviceId, err := NextServiceID(tx)
		if err != nil {
			return err
		}
		isActive := true
		if body.IsActive != nil {
			isActive = *body.IsActive
		}
		service = models.Service{
			ServiceID:   serviceId,
			Name:        body.Name,
			Slug:        slug.Make(body.Name),
			Category:    body.Category,
			Description: body.Description,
			Rate:        body.Rate,
			RateUnit:    body.RateUnit,
			Features:    body.Features,
			IsActive:    isActive,
		}
		return tx.Create(&service).Error
	})
	if err != nil {
		return nil, err
	}
	InvalidateServiceCache()
	return &service, nil
}

// ActiveServices returns the browsable catalog, served from redis when warm.
func ActiveServices() ([]models.Service, error) {
	var services []models.Service
	rd := lib.GetRedisClient()
	if rd != nil {
		val := rd.JSONGet(context.Background(), serviceCacheKey).Val()
		if val != "" {
			if err := json.Unmarshal([]byte(val), &services); err == nil {
				return services, nil
			}
		}
	}
	db := db.GetDb()
	if err := db.
		Model(&models.Service{}).
		Where(&models.Service{IsActive: true}).
		Order("popularity DESC, service_id ASC").
		Find(&services).
		Error; err != nil {
		return nil, err
	}
	if rd != nil {
		if _, err := rd.JSONSet(context.Background(), serviceCacheKey, "$", &services).Result(); err != nil {
			log.Printf("[redis] Error caching service catalog: %s\n", err.Error())
		}
	}
	return services, nil
}

func InvalidateServiceCache() {
	rd := lib.GetRedisClient()
	if rd == nil {
		return
	}
	if err := rd.Del(context.Background(), serviceCacheKey).Err(); err != nil {
		log.Printf("[redis] Error invalidating service catalog cache: %s\n", err.Error())
	}
}
