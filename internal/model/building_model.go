package model

import (
	"time"

	"gorm.io/datatypes"
)

type Building struct {
	Id             int64          `gorm:"primaryKey;autoIncrement"`
	BuildingName   string         `gorm:"type:varchar(255);not null"`
	Address        string         `gorm:"type:varchar(512)"`
	BuildingType   string         `gorm:"type:varchar(100)"`
	GrossFloorArea float64        `gorm:"default:0"`
	YearBuilt      int            `gorm:"default:0"`
	OrgId          int64          `gorm:"not null;index"`
	AdminEmail     string         `gorm:"type:varchar(255)"`
	ManagerEmails  datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt      time.Time      `gorm:"autoCreateTime"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime"`
}

func (Building) TableName() string {
	return "buildings"
}
