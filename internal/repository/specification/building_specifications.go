package specification

import (
	"gorm.io/gorm"
)

// ByBuildingID scopes rows to one building.
type ByBuildingID struct {
	BuildingID int64
}

func (s ByBuildingID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("building_id = ?", s.BuildingID)
}

// ByOrgID scopes rows to one organization.
type ByOrgID struct {
	OrgID int64
}

func (s ByOrgID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("org_id = ?", s.OrgID)
}

// ByFileIDs restricts document chunks to a set of indexed files.
type ByFileIDs struct {
	FileIDs []string
}

func (s ByFileIDs) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("file_id IN ?", s.FileIDs)
}
