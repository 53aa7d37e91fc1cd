package boot

import (
	"carebook/src/common"
	"carebook/src/db"
	"carebook/src/lib"
	"carebook/src/models"
	"carebook/src/types"
	"carebook/src/utils"
	"log"
	"os"
	"time"

	"gorm.io/gorm"
)

func InitDb() *gorm.DB {
	db := db.GetDb()

	err := db.AutoMigrate(
		&models.User{},
		&models.Service{},
		&models.Booking{},
		&models.Payment{},
		&models.Counter{},
	)
	if err != nil {
		log.Fatalf("error migration: %s", err.Error())
	}

	return db
}

// SeedAdminUser creates the first admin account from ADMIN_EMAIL and
// ADMIN_PASSWORD when no account with that email exists yet.
func SeedAdminUser() {
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		return
	}
	db := db.GetDb()
	var count int64
	if err := db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		log.Printf("[seed] Error checking admin account: %s\n", err.Error())
		return
	}
	if count > 0 {
		return
	}
	hash, err := utils.HashPassword(password)
	if err != nil {
		log.Printf("[seed] Error hashing admin password: %s\n", err.Error())
		return
	}
	admin := models.User{
		Name:         "Administrator",
		Email:        email,
		PasswordHash: hash,
		Provider:     "credentials",
		Role:         types.ROLE_ADMIN,
		IsActive:     true,
	}
	if err := db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&admin).Error
	}); err != nil {
		log.Printf("[seed] Error creating admin account: %s\n", err.Error())
		return
	}
	log.Printf("[seed] Admin account created [%s]\n", email)
}

// SeedCatalog inserts the default care service catalog on an empty services
// table, minting ids through the counter so later admin creates continue
// the sequence.
func SeedCatalog() {
	db := db.GetDb()
	var count int64
	if err := db.Model(&models.Service{}).Count(&count).Error; err != nil {
		log.Printf("[seed] Error checking service catalog: %s\n", err.Error())
		return
	}
	if count > 0 {
		return
	}
	defaults := []types.CreateServiceRequestBody{
		{
			Name:        "Baby Care Specialist",
			Category:    types.CATEGORY_BABY_CARE,
			Description: "Trained caregivers for infants and toddlers at your home",
			Rate:        200,
			RateUnit:    types.RATE_PER_HOUR,
			Features:    types.JSONBArray{"Feeding & hygiene", "Sleep routines", "First-aid trained"},
		},
		{
			Name:        "Elderly Care Companion",
			Category:    types.CATEGORY_ELDERLY_CARE,
			Description: "Daily companionship and assistance for senior family members",
			Rate:        1500,
			RateUnit:    types.RATE_PER_DAY,
			Features:    types.JSONBArray{"Medication reminders", "Mobility support", "Meal assistance"},
		},
		{
			Name:        "Special Care Attendant",
			Category:    types.CATEGORY_SPECIAL_CARE,
			Description: "Dedicated support for patients needing round-the-clock attention",
			Rate:        2500,
			RateUnit:    types.RATE_PER_DAY,
			Features:    types.JSONBArray{"Post-surgery care", "Physiotherapy assistance", "Vitals monitoring"},
		},
	}
	for _, body := range defaults {
		if _, err := common.CreateService(&body); err != nil {
			log.Printf("[seed] Error seeding service [%s]: %s\n", body.Name, err.Error())
		}
	}
	log.Printf("[seed] Service catalog seeded with %d entries\n", len(defaults))
}

func InitScheduler() {
	sched, err := lib.GetScheduler()
	if err != nil {
		log.Println("An error has occurred. Check logs for info")
		return
	}
	id, err := lib.CreateCronJob(common.ExpireStalePendingBookings, time.Hour)
	if err != nil {
		log.Printf("Error scheduling booking expiry sweep: %s\n", err.Error())
		return
	}
	log.Printf("Scheduled booking expiry sweep: %s\n", *id)
	sched.Start()
}

func StopScheduler() {
	sched, err := lib.GetScheduler()
	if err != nil {
		log.Println("Error retrieving Scheduler. Check logs for info")
		return
	}
	if err := sched.Shutdown(); err != nil {
		log.Println("An error has occurred while stopping Scheduler. Check logs for info")
	}
}
