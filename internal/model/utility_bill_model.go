package model

import (
	"time"
)

type UtilityBill struct {
	Id         int64     `gorm:"primaryKey;autoIncrement"`
	BuildingId int64     `gorm:"not null;index"`
	OrgId      int64     `gorm:"not null;index"`
	BillDate   time.Time `gorm:"index"`
	BillType   string    `gorm:"type:varchar(50)"`
	Amount     float64   `gorm:"default:0"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

func (UtilityBill) TableName() string {
	return "bills"
}
