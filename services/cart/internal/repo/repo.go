package repo

import (
	"errors"

	"gorm.io/gorm"
)

var ErrProductNotFound = errors.New("product not found")

type GormRepo struct {
	DB *gorm.DB
}
