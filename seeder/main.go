// Seeder imports the demo catalog into the products collection, or
// destroys it with -d. Run with: go run ./seeder [-d]
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"ecotrack-api/models"
	"ecotrack-api/utils"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/bson"
)

func demoProducts() []interface{} {
	now := time.Now()
	return []interface{}{
		models.Product{
			Name:                 "Organic Cotton T-Shirt",
			Description:          "A premium, eco-friendly t-shirt made from 100% organic cotton sourced from sustainable farms.",
			Category:             "Clothing",
			Materials:            []string{"Organic Cotton"},
			Images:               []string{"https://images.unsplash.com/photo-1521572163474-6864f9cf17ab?ixlib=rb-4.0.3&auto=format&fit=crop&w=800&q=80"},
			SustainabilityRating: 9,
			Stages: []models.SupplyChainStage{
				{
					StageName:   "Cotton Farming",
					Description: "Harvesting organic cotton without harmful pesticides.",
					Address:     "Green Fields Farm, Punjab, India",
					Date:        time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC),
					Sequence:    0,
					Location:    models.GeoPoint{Type: "Point", Coordinates: []float64{76.7794, 30.7333}},
				},
				{
					StageName:   "Spinning & Weaving",
					Description: "Processing raw cotton into fabric using renewable energy.",
					Address:     "EcoTextile Mill, Ahmedabad, India",
					Date:        time.Date(2023, 2, 10, 0, 0, 0, 0, time.UTC),
					Sequence:    1,
					Location:    models.GeoPoint{Type: "Point", Coordinates: []float64{72.5714, 23.0225}},
				},
				{
					StageName:   "Distribution Center",
					Description: "Final packaging and shipping to retailers.",
					Address:     "EcoLogistics Hub, London, UK",
					Date:        time.Date(2023, 3, 5, 0, 0, 0, 0, time.UTC),
					Sequence:    2,
					Location:    models.GeoPoint{Type: "Point", Coordinates: []float64{-0.1278, 51.5074}},
				},
			},
			CreatedAt: now,
			UpdatedAt: now,
		},
		models.Product{
			Name:                 "Recycled Aluminum Water Bottle",
			Description:          "Durable water bottle made from 100% recycled aluminum.",
			Category:             "Accessories",
			Materials:            []string{"Recycled Aluminum", "Bamboo"},
			Images:               []string{"https://images.unsplash.com/photo-1602143407151-0111d191c2c5?ixlib=rb-4.0.3&auto=format&fit=crop&w=800&q=80"},
			SustainabilityRating: 8,
			Stages: []models.SupplyChainStage{
				{
					StageName:   "Material Recovery",
					Description: "Collecting and sorting aluminum waste.",
					Address:     "RecycleOne Facility, Berlin, Germany",
					Date:        time.Date(2023, 4, 1, 0, 0, 0, 0, time.UTC),
					Sequence:    0,
					Location:    models.GeoPoint{Type: "Point", Coordinates: []float64{13.4050, 52.5200}},
				},
				{
					StageName:   "Manufacturing",
					Description: "Molding bottles and attaching bamboo caps.",
					Address:     "GreenMfg Plant, Paris, France",
					Date:        time.Date(2023, 4, 20, 0, 0, 0, 0, time.UTC),
					Sequence:    1,
					Location:    models.GeoPoint{Type: "Point", Coordinates: []float64{2.3522, 48.8566}},
				},
			},
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
}

func main() {
	destroy := flag.Bool("d", false, "destroy the products collection instead of seeding")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Proceeding with environment variables.")
	}

	client := utils.ConnectDB()
	defer func() {
		if err := client.Disconnect(context.TODO()); err != nil {
			log.Fatal(err)
		}
	}()

	collection := client.Database(utils.DatabaseName).Collection("products")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if _, err := collection.DeleteMany(ctx, bson.M{}); err != nil {
		log.Fatalf("Failed to clear products: %v", err)
	}

	if *destroy {
		log.Println("Data Destroyed!")
		return
	}

	if _, err := collection.InsertMany(ctx, demoProducts()); err != nil {
		log.Fatalf("Failed to seed products: %v", err)
	}
	log.Println("Data Imported!")
}
