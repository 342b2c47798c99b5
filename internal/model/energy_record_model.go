package model

import (
	"time"
)

// EnergyRecord rows come from portfolio-manager benchmarking imports.
type EnergyRecord struct {
	Id            int64     `gorm:"primaryKey;autoIncrement"`
	BuildingId    int64     `gorm:"not null;index"`
	OrgId         int64     `gorm:"not null;index"`
	StartDate     time.Time `gorm:"index"`
	UsageQuantity float64   `gorm:"default:0"`
	UsageUnits    string    `gorm:"type:varchar(50)"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
}

func (EnergyRecord) TableName() string {
	return "espm_data"
}
