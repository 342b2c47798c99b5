package mapper

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"building-chat-be/internal/entity"
)

func TestBuildingMapperRoundTrip(t *testing.T) {
	m := NewBuildingMapper()
	updated := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)

	src := &entity.Building{
		Id:             7,
		Name:           "Riverside Tower",
		Address:        "12 Riverside Drive",
		BuildingType:   "Office",
		GrossFloorArea: 185000,
		YearBuilt:      2004,
		OrgId:          3,
		AdminEmail:     "admin@greenfield.example",
		ManagerEmails:  []string{"manager@greenfield.example", "ops@greenfield.example"},
		UpdatedAt:      &updated,
	}

	back := m.ToEntity(m.ToModel(src))
	require.NotNil(t, back)

	assert.Equal(t, src.Id, back.Id)
	assert.Equal(t, src.Name, back.Name)
	assert.Equal(t, src.ManagerEmails, back.ManagerEmails)
	require.NotNil(t, back.UpdatedAt)
	assert.True(t, back.UpdatedAt.Equal(updated))
}

func TestBuildingMapperNilSafe(t *testing.T) {
	m := NewBuildingMapper()
	assert.Nil(t, m.ToEntity(nil))
	assert.Nil(t, m.ToModel(nil))
}

func TestBuildingMapperMalformedManagerEmails(t *testing.T) {
	m := NewBuildingMapper()
	model := m.ToModel(&entity.Building{Id: 1, Name: "A"})
	model.ManagerEmails = []byte("{not json")

	back := m.ToEntity(model)
	require.NotNil(t, back)
	assert.Empty(t, back.ManagerEmails)
}
