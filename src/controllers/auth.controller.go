package controllers

import (
	"carebook/src/db"
	"carebook/src/models"
	"carebook/src/types"
	"carebook/src/utils"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func AuthRegister(ctx *gin.Context) (userId *uint, status int, err error) {
	var body types.RegisterRequestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		return nil, http.StatusBadRequest, err
	}

	db := db.GetDb()
	var count int64
	if err := db.
		Model(&models.User{}).
		Where("email = ?", body.Email).
		Count(&count).
		Error; err != nil {
		return nil, http.StatusInternalServerError, err
	}
	if count > 0 {
		return nil, http.StatusConflict, errors.New("an account with this email already exists")
	}

	hash, err := utils.HashPassword(body.Password)
	if err != nil {
		log.Printf("Error hashing password: %s\n", err.Error())
		return nil, http.StatusInternalServerError, errors.New("could not create account")
	}

	user := models.User{
		Name:         body.Name,
		Email:        body.Email,
		Phone:        body.Phone,
		PasswordHash: hash,
		Provider:     "credentials",
		Role:         types.ROLE_USER,
		IsActive:     true,
	}
	if err := db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&user).Error
	}); err != nil {
		log.Printf("Error creating user: %s\n", err.Error())
		return nil, http.StatusBadRequest, err
	}
	return &user.ID, http.StatusCreated, nil
}

func AuthLogin(ctx *gin.Context) (token *string, status int, err error) {
	var body types.LoginRequestBody
	if err := ctx.ShouldBindJSON(&body); err != nil {
		return nil, http.StatusBadRequest, err
	}

	db := db.GetDb()
	var user models.User
	if err := db.
		Model(&models.User{}).
		Where(&models.User{Email: body.Email}).
		First(&user).
		Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, http.StatusUnauthorized, errors.New("invalid email or password")
		}
		return nil, http.StatusInternalServerError, err
	}
	if user.Provider != "credentials" || !utils.CheckPassword(body.Password, user.PasswordHash) {
		return nil, http.StatusUnauthorized, errors.New("invalid email or password")
	}
	if !user.IsActive {
		return nil, http.StatusForbidden, errors.New("account is deactivated")
	}

	if err := db.Transaction(func(tx *gorm.DB) error {
		return tx.
			Model(&models.User{}).
			Where("id = ?", user.ID).
			Update("last_active", time.Now()).
			Error
	}); err != nil {
		log.Printf("Error recording login for user [%d]: %s\n", user.ID, err.Error())
	}

	jwt, err := utils.GenerateJWT(user.Email, user.ID, user.Role)
	if err != nil {
		log.Printf("Error generating JWT token: %s\n", err.Error())
		return nil, http.StatusInternalServerError, errors.New("could not issue session")
	}
	return &jwt, http.StatusOK, nil
}
