package entity

import (
	"time"
)

type Organization struct {
	Id         int64
	Name       string
	AdminEmail string
	Address    string
	CreatedAt  time.Time
	UpdatedAt  *time.Time
}
