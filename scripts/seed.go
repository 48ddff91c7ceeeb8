package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/medroute/emergency-routing/internal/adapters/database"
	"github.com/medroute/emergency-routing/internal/domain/entities"
	"github.com/medroute/emergency-routing/internal/infrastructure/clients/postgres"
	"github.com/medroute/emergency-routing/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer pgClient.Close()

	hospitalRepo := database.NewHospitalAdapter(pgClient)

	ctx := context.Background()

	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, truncating tables before seeding")
		_, err := pgClient.DB().ExecContext(ctx, `
			TRUNCATE TABLE
				bed_reservations,
				hospital_beds,
				hospitals
			RESTART IDENTITY CASCADE
		`)
		if err != nil {
			log.Fatalf("Failed to reset tables: %v", err)
		}
	}

	for _, hospital := range seedHospitals() {
		if err := hospitalRepo.Upsert(ctx, hospital); err != nil {
			log.Printf("Failed to seed hospital %s: %v", hospital.Name, err)
			continue
		}
		log.Printf("Seeded hospital %s (%s)", hospital.Name, hospital.ID)
	}

	log.Println("Seeding complete")
}

func beds(icu, icuFree, trauma, traumaFree, general, generalFree, pediatric, pediatricFree int) map[entities.BedCategory]entities.BedDepartment {
	return map[entities.BedCategory]entities.BedDepartment{
		entities.BedCategoryICU:       entities.NewBedDepartment("ICU", icu, icuFree),
		entities.BedCategoryTrauma:    entities.NewBedDepartment("Trauma", trauma, traumaFree),
		entities.BedCategoryGeneral:   entities.NewBedDepartment("General", general, generalFree),
		entities.BedCategoryPediatric: entities.NewBedDepartment("Pediatric", pediatric, pediatricFree),
	}
}

func seedHospitals() []*entities.Hospital {
	now := time.Now()
	hospitals := []*entities.Hospital{
		{
			ID:           "h1",
			Name:         "Apollo Hospital Delhi",
			Location:     "Sarita Vihar, Delhi",
			Address:      "101 Mathura Road, Sarita Vihar, Delhi 110076",
			Coordinates:  entities.Coordinates{Latitude: 28.5355, Longitude: 77.2410},
			Phone:        "+91-11-4166-1111",
			Beds:         beds(50, 12, 35, 8, 150, 35, 40, 10),
			OxygenSupply: 85,
			ERLoad:       72,
			Status:       entities.HospitalStatusHighLoad,
		},
		{
			ID:           "h2",
			Name:         "Fortis Hospital Mumbai",
			Location:     "Andheri East, Mumbai",
			Address:      "154 LBS Road, Andheri East, Mumbai 400069",
			Coordinates:  entities.Coordinates{Latitude: 19.1136, Longitude: 72.8697},
			Phone:        "+91-22-6803-6000",
			Beds:         beds(45, 28, 30, 20, 120, 45, 35, 18),
			OxygenSupply: 92,
			ERLoad:       45,
			Status:       entities.HospitalStatusStable,
		},
		{
			ID:           "h3",
			Name:         "Max Super Specialty Hospital Bangalore",
			Location:     "Vasantkunj, Bangalore",
			Address:      "11 Golf Course Road, Vasantkunj, Bangalore 560052",
			Coordinates:  entities.Coordinates{Latitude: 12.9716, Longitude: 77.5946},
			Phone:        "+91-80-4658-4658",
			Beds:         beds(60, 8, 40, 5, 180, 25, 45, 6),
			OxygenSupply: 78,
			ERLoad:       88,
			Status:       entities.HospitalStatusCritical,
		},
		{
			ID:           "h4",
			Name:         "AIIMS New Delhi",
			Location:     "Ansari Nagar, Delhi",
			Address:      "Sri Aurobindo Marg, Ansari Nagar, Delhi 110029",
			Coordinates:  entities.Coordinates{Latitude: 28.5677, Longitude: 77.2009},
			Phone:        "+91-11-2658-8500",
			Beds:         beds(40, 35, 25, 22, 100, 65, 30, 25),
			OxygenSupply: 95,
			ERLoad:       30,
			Status:       entities.HospitalStatusStable,
		},
		{
			ID:           "h5",
			Name:         "Lilavati Hospital & Research Centre",
			Location:     "Bandra Reclamation, Mumbai",
			Address:      "A-791 Lilavati, Bandra Reclamation, Mumbai 400050",
			Coordinates:  entities.Coordinates{Latitude: 19.0596, Longitude: 72.8295},
			Phone:        "+91-22-2430-5000",
			Beds:         beds(55, 22, 32, 15, 140, 50, 38, 16),
			OxygenSupply: 88,
			ERLoad:       58,
			Status:       entities.HospitalStatusStable,
		},
		{
			ID:           "h6",
			Name:         "Apollo Gleneagles Hospital Kolkata",
			Location:     "Salt Lake City, Kolkata",
			Address:      "58 Canal South Road, Salt Lake City, Kolkata 700091",
			Coordinates:  entities.Coordinates{Latitude: 22.5355, Longitude: 88.3794},
			Phone:        "+91-33-4004-4404",
			Beds:         beds(48, 18, 32, 12, 130, 40, 36, 14),
			OxygenSupply: 89,
			ERLoad:       65,
			Status:       entities.HospitalStatusHighLoad,
		},
		{
			ID:           "h7",
			Name:         "Ruby General Hospital Kolkata",
			Location:     "Alipore, Kolkata",
			Address:      "147 Syed Amir Ali Avenue, Alipore, Kolkata 700027",
			Coordinates:  entities.Coordinates{Latitude: 22.5198, Longitude: 88.3627},
			Phone:        "+91-33-4050-5050",
			Beds:         beds(40, 30, 28, 18, 110, 50, 30, 15),
			OxygenSupply: 93,
			ERLoad:       42,
			Status:       entities.HospitalStatusStable,
		},
	}

	for _, hospital := range hospitals {
		hospital.CreatedAt = now
		hospital.UpdatedAt = now
	}
	return hospitals
}
