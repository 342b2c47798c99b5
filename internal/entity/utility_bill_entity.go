package entity

import (
	"time"
)

type UtilityBill struct {
	Id         int64
	BuildingId int64
	OrgId      int64
	BillDate   time.Time
	BillType   string
	Amount     float64
	CreatedAt  time.Time
}
