package models

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GeoPoint is a GeoJSON Point. Coordinates are [longitude, latitude] —
// the GeoJSON convention, which is the reverse of what most mapping
// libraries take. Consumers render through the journey payload, which
// does the flip.
type GeoPoint struct {
	Type        string    `bson:"type" json:"type"`
	Coordinates []float64 `bson:"coordinates" json:"coordinates"`
}

// Lng returns the longitude component.
func (p GeoPoint) Lng() float64 { return p.Coordinates[0] }

// Lat returns the latitude component.
func (p GeoPoint) Lat() float64 { return p.Coordinates[1] }

// SupplyChainStage is one step of a product's journey, embedded in the
// product document. Sequence is the explicit journey position: 0 is the
// origin, and stages are stored sorted by it.
type SupplyChainStage struct {
	StageName   string    `bson:"stage_name" json:"stageName"`
	Description string    `bson:"description" json:"description"`
	Address     string    `bson:"address,omitempty" json:"address,omitempty"`
	Date        time.Time `bson:"date" json:"date"`
	Sequence    int       `bson:"sequence" json:"sequence"`
	Location    GeoPoint  `bson:"location" json:"location"`
}

// Product represents a catalog listing with its supply-chain journey
type Product struct {
	ID                   primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name                 string             `bson:"name" json:"name"`
	Description          string             `bson:"description" json:"description"`
	Category             string             `bson:"category" json:"category"`
	Materials            []string           `bson:"materials" json:"materials"`
	Images               []string           `bson:"images" json:"images"`
	SustainabilityRating int                `bson:"sustainability_rating" json:"sustainabilityRating"`
	Stages               []SupplyChainStage `bson:"stages" json:"stages"`
	CreatedAt            time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt            time.Time          `bson:"updated_at" json:"updatedAt"`
}

// Validate checks the fields a write must carry. It does not touch stage
// ordering; NormalizeStages handles that.
func (p *Product) Validate() error {
	if p.Name == "" {
		return errors.New("name is required")
	}
	if p.Description == "" {
		return errors.New("description is required")
	}
	if p.Category == "" {
		return errors.New("category is required")
	}
	if p.SustainabilityRating < 1 || p.SustainabilityRating > 10 {
		return errors.New("sustainabilityRating must be between 1 and 10")
	}
	for i, stage := range p.Stages {
		if stage.StageName == "" {
			return fmt.Errorf("stage %d: stageName is required", i)
		}
		if stage.Description == "" {
			return fmt.Errorf("stage %d: description is required", i)
		}
		if err := validateLocation(stage.Location); err != nil {
			return fmt.Errorf("stage %d: %w", i, err)
		}
	}
	return nil
}

func validateLocation(loc GeoPoint) error {
	if loc.Type != "Point" {
		return errors.New("location type must be Point")
	}
	if len(loc.Coordinates) != 2 {
		return errors.New("location coordinates must be [longitude, latitude]")
	}
	if loc.Lng() < -180 || loc.Lng() > 180 {
		return errors.New("longitude out of range")
	}
	if loc.Lat() < -90 || loc.Lat() > 90 {
		return errors.New("latitude out of range")
	}
	return nil
}

// NormalizeStages makes the journey order explicit. When the caller set
// any sequence numbers they must form a permutation of 0..N-1, and the
// stages are sorted by them. When every sequence is zero, list order is
// adopted as the journey order. Either way the stored list is sorted and
// sequence i lives at index i, so an insertion or reorder can never
// silently corrupt the journey path.
func (p *Product) NormalizeStages() error {
	n := len(p.Stages)
	if n == 0 {
		return nil
	}

	allZero := true
	for _, s := range p.Stages {
		if s.Sequence != 0 {
			allZero = false
			break
		}
	}

	if allZero {
		for i := range p.Stages {
			p.Stages[i].Sequence = i
		}
		return nil
	}

	seen := make([]bool, n)
	for _, s := range p.Stages {
		if s.Sequence < 0 || s.Sequence >= n || seen[s.Sequence] {
			return fmt.Errorf("stage sequence numbers must be a permutation of 0..%d", n-1)
		}
		seen[s.Sequence] = true
	}

	sort.SliceStable(p.Stages, func(i, j int) bool {
		return p.Stages[i].Sequence < p.Stages[j].Sequence
	})
	return nil
}
