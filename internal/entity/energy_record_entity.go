package entity

import (
	"time"
)

// EnergyRecord is one monthly benchmarking reading for a building.
type EnergyRecord struct {
	Id            int64
	BuildingId    int64
	OrgId         int64
	StartDate     time.Time
	UsageQuantity float64
	UsageUnits    string
	CreatedAt     time.Time
}
