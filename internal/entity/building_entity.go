package entity

import (
	"time"
)

type Building struct {
	Id             int64
	Name           string
	Address        string
	BuildingType   string
	GrossFloorArea float64
	YearBuilt      int
	OrgId          int64
	AdminEmail     string
	ManagerEmails  []string
	CreatedAt      time.Time
	UpdatedAt      *time.Time
}
