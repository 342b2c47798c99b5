package model

import (
	"time"
)

type Measure struct {
	Id          int64     `gorm:"primaryKey;autoIncrement"`
	BuildingId  int64     `gorm:"not null;index"`
	OrgId       int64     `gorm:"not null;index"`
	MeasureName string    `gorm:"type:varchar(255);not null"`
	Status      string    `gorm:"type:varchar(50)"`
	CreatedAt   time.Time `gorm:"autoCreateTime;index"`
}

func (Measure) TableName() string {
	return "measures"
}
