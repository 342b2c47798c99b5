package main

import (
	"encoding/json"
	"log"
	"os"
	"time"

	"building-chat-be/internal/model"
	"building-chat-be/pkg/database"

	"github.com/joho/godotenv"
	"gorm.io/datatypes"
)

// Seeds a small demo portfolio so the chat endpoints have data to answer
// about. Safe to run repeatedly; rows are matched by name before insert.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDB(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Seeding demo organization and buildings...")

	org := model.Organization{
		OrgName:    "Greenfield Properties",
		AdminEmail: "admin@greenfield.example",
		Address:    "100 Market Street, Springfield",
	}
	if err := db.Where("org_name = ?", org.OrgName).FirstOrCreate(&org).Error; err != nil {
		log.Fatalf("Error: Failed to seed organization: %v", err)
	}

	managerEmails, _ := json.Marshal([]string{"manager@greenfield.example"})

	buildings := []model.Building{
		{
			BuildingName:   "Riverside Tower",
			Address:        "12 Riverside Drive, Springfield",
			BuildingType:   "Office",
			GrossFloorArea: 185000,
			YearBuilt:      2004,
			OrgId:          org.Id,
			AdminEmail:     org.AdminEmail,
			ManagerEmails:  datatypes.JSON(managerEmails),
		},
		{
			BuildingName:   "Elm Street Plaza",
			Address:        "450 Elm Street, Springfield",
			BuildingType:   "Retail",
			GrossFloorArea: 92000,
			YearBuilt:      1998,
			OrgId:          org.Id,
			AdminEmail:     org.AdminEmail,
			ManagerEmails:  datatypes.JSON(managerEmails),
		},
	}

	for i := range buildings {
		if err := db.Where("building_name = ?", buildings[i].BuildingName).FirstOrCreate(&buildings[i]).Error; err != nil {
			log.Fatalf("Error: Failed to seed building %s: %v", buildings[i].BuildingName, err)
		}
	}

	tower := buildings[0]

	measures := []model.Measure{
		{BuildingId: tower.Id, OrgId: org.Id, MeasureName: "LED Lighting Retrofit", Status: "completed"},
		{BuildingId: tower.Id, OrgId: org.Id, MeasureName: "HVAC Schedule Optimization", Status: "in_progress"},
		{BuildingId: tower.Id, OrgId: org.Id, MeasureName: "Rooftop Solar Feasibility Study", Status: "proposed"},
	}
	for i := range measures {
		if err := db.Where("building_id = ? AND measure_name = ?", measures[i].BuildingId, measures[i].MeasureName).
			FirstOrCreate(&measures[i]).Error; err != nil {
			log.Fatalf("Error: Failed to seed measure: %v", err)
		}
	}

	now := time.Now().UTC()
	for month := 0; month < 6; month++ {
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -month, 0)

		energy := model.EnergyRecord{
			BuildingId:    tower.Id,
			OrgId:         org.Id,
			StartDate:     start,
			UsageQuantity: 42000 - float64(month)*850,
			UsageUnits:    "kWh",
		}
		if err := db.Where("building_id = ? AND start_date = ?", energy.BuildingId, energy.StartDate).
			FirstOrCreate(&energy).Error; err != nil {
			log.Fatalf("Error: Failed to seed energy record: %v", err)
		}

		bill := model.UtilityBill{
			BuildingId: tower.Id,
			OrgId:      org.Id,
			BillDate:   start,
			BillType:   "electric",
			Amount:     5200 - float64(month)*110,
		}
		if err := db.Where("building_id = ? AND bill_date = ? AND bill_type = ?", bill.BuildingId, bill.BillDate, bill.BillType).
			FirstOrCreate(&bill).Error; err != nil {
			log.Fatalf("Error: Failed to seed bill: %v", err)
		}
	}

	log.Println("✅ Success: Demo data seeded.")
}
