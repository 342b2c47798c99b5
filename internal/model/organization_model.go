package model

import (
	"time"
)

type Organization struct {
	Id         int64     `gorm:"primaryKey;autoIncrement"`
	OrgName    string    `gorm:"type:varchar(255);not null"`
	AdminEmail string    `gorm:"type:varchar(255);not null;index"`
	Address    string    `gorm:"type:varchar(512)"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime"`
}

func (Organization) TableName() string {
	return "organizations"
}
