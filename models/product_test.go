package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validProduct() Product {
	return Product{
		Name:                 "Organic Cotton T-Shirt",
		Description:          "Eco-friendly t-shirt",
		Category:             "Clothing",
		SustainabilityRating: 9,
		Stages: []SupplyChainStage{
			{
				StageName:   "Cotton Farming",
				Description: "Harvesting organic cotton",
				Location:    GeoPoint{Type: "Point", Coordinates: []float64{76.7794, 30.7333}},
			},
		},
	}
}

func TestValidateAcceptsValidProduct(t *testing.T) {
	p := validProduct()
	assert.NoError(t, p.Validate())
}

func TestValidateRatingBounds(t *testing.T) {
	for _, rating := range []int{0, -1, 11, 100} {
		p := validProduct()
		p.SustainabilityRating = rating
		assert.Error(t, p.Validate(), "rating %d should be rejected", rating)
	}
	for rating := 1; rating <= 10; rating++ {
		p := validProduct()
		p.SustainabilityRating = rating
		assert.NoError(t, p.Validate(), "rating %d should be accepted", rating)
	}
}

func TestValidateRequiredFields(t *testing.T) {
	p := validProduct()
	p.Name = ""
	assert.Error(t, p.Validate())

	p = validProduct()
	p.Description = ""
	assert.Error(t, p.Validate())

	p = validProduct()
	p.Category = ""
	assert.Error(t, p.Validate())
}

func TestValidateStageLocation(t *testing.T) {
	p := validProduct()
	p.Stages[0].Location.Type = "Polygon"
	assert.Error(t, p.Validate())

	p = validProduct()
	p.Stages[0].Location.Coordinates = []float64{76.7794}
	assert.Error(t, p.Validate())

	p = validProduct()
	p.Stages[0].Location.Coordinates = []float64{200, 30}
	assert.Error(t, p.Validate())

	p = validProduct()
	p.Stages[0].Location.Coordinates = []float64{76, 95}
	assert.Error(t, p.Validate())
}

func TestNormalizeStagesAssignsListOrder(t *testing.T) {
	p := validProduct()
	p.Stages = []SupplyChainStage{
		{StageName: "Farm", Description: "d", Location: GeoPoint{Type: "Point", Coordinates: []float64{1, 1}}},
		{StageName: "Mill", Description: "d", Location: GeoPoint{Type: "Point", Coordinates: []float64{2, 2}}},
		{StageName: "Port", Description: "d", Location: GeoPoint{Type: "Point", Coordinates: []float64{3, 3}}},
	}

	assert.NoError(t, p.NormalizeStages())
	for i, s := range p.Stages {
		assert.Equal(t, i, s.Sequence)
	}
}

func TestNormalizeStagesSortsBySequence(t *testing.T) {
	p := validProduct()
	p.Stages = []SupplyChainStage{
		{StageName: "Port", Sequence: 2, Description: "d", Location: GeoPoint{Type: "Point", Coordinates: []float64{3, 3}}},
		{StageName: "Farm", Sequence: 0, Description: "d", Location: GeoPoint{Type: "Point", Coordinates: []float64{1, 1}}},
		{StageName: "Mill", Sequence: 1, Description: "d", Location: GeoPoint{Type: "Point", Coordinates: []float64{2, 2}}},
	}

	assert.NoError(t, p.NormalizeStages())
	assert.Equal(t, "Farm", p.Stages[0].StageName)
	assert.Equal(t, "Mill", p.Stages[1].StageName)
	assert.Equal(t, "Port", p.Stages[2].StageName)
}

func TestNormalizeStagesRejectsBadSequences(t *testing.T) {
	// Duplicate sequence
	p := validProduct()
	p.Stages = []SupplyChainStage{
		{StageName: "Farm", Sequence: 1},
		{StageName: "Mill", Sequence: 1},
	}
	assert.Error(t, p.NormalizeStages())

	// Gap: not a permutation of 0..N-1
	p.Stages = []SupplyChainStage{
		{StageName: "Farm", Sequence: 0},
		{StageName: "Mill", Sequence: 2},
	}
	assert.Error(t, p.NormalizeStages())

	// Negative
	p.Stages = []SupplyChainStage{
		{StageName: "Farm", Sequence: -1},
		{StageName: "Mill", Sequence: 0},
	}
	assert.Error(t, p.NormalizeStages())
}

func TestNormalizeStagesSingleAndEmpty(t *testing.T) {
	p := validProduct()
	p.Stages = nil
	assert.NoError(t, p.NormalizeStages())

	p.Stages = []SupplyChainStage{{StageName: "Farm", Sequence: 0}}
	assert.NoError(t, p.NormalizeStages())
	assert.Equal(t, 0, p.Stages[0].Sequence)
}
