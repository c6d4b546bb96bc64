package models

import (
	"context"
	"errors"
	"time"

	"bitbucket.org/lfkitchen/costing_backend/config"
	"bitbucket.org/lfkitchen/costing_backend/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type User struct {
	ID        int       `gorm:"primary_key" json:"id"`
	Email     string    `gorm:"size:100;not null;unique" json:"email" binding:"required"`
	Name      string    `gorm:"size:100;not null" json:"name" binding:"required"`
	Password  string    `gorm:"size:255;not null" json:"password"`
	IsActive  *bool     `gorm:"not null" json:"is_active"`
	Role      UserRole  `gorm:"size:20;default:operator" json:"role"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (result *User) PrepareGive() {
	result.Password = ""
}

type LoginInfo struct {
	Token string `json:"token"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func Login(ctx context.Context, email string, password string) (*LoginInfo, error) {
	db := config.GetDB()
	var result LoginInfo

	user := User{}
	err := db.WithContext(ctx).Model(&User{}).Where("email = ?", email).Take(&user).Error
	if err != nil {
		return &result, errors.New("invalid email or password")
	}

	err = utils.ComparePassword(user.Password, password)
	if err != nil && err == bcrypt.ErrMismatchedHashAndPassword {
		return &result, errors.New("invalid email or password")
	}

	if user.IsActive == nil || !*user.IsActive {
		return &result, errors.New("user is disabled")
	}

	token, err := utils.JwtGenerate(user.ID, user.Email, user.Name, string(user.Role))
	if err != nil {
		return &result, err
	}

	result.Token = token
	result.Name = user.Name
	result.Email = user.Email
	result.Role = string(user.Role)
	return &result, nil
}

func CreateUser(ctx context.Context, email string, name string, password string, role UserRole) (*User, error) {
	if !utils.IsValidEmail(email) {
		return nil, errors.New("invalid email")
	}
	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := User{
		Email:    email,
		Name:     name,
		Password: string(hashedPassword),
		IsActive: utils.NewTrue(),
		Role:     role,
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&user).Error; err != nil {
		if utils.IsDuplicateEntryErr(err) {
			return nil, errors.New("email already registered")
		}
		return nil, err
	}
	user.PrepareGive()
	return &user, nil
}

func GetUser(ctx context.Context, id int) (*User, error) {
	db := config.GetDB()
	var user User
	err := db.WithContext(ctx).First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrorRecordNotFound
		}
		return nil, err
	}
	user.PrepareGive()
	return &user, nil
}
