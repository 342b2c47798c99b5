package entity

import (
	"time"
)

type Measure struct {
	Id         int64
	BuildingId int64
	OrgId      int64
	Name       string
	Status     string
	CreatedAt  time.Time
}
