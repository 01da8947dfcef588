// Package journey turns a product's supply-chain stages into the payload
// a map/timeline client renders directly: marker positions, the polyline
// path, a bounding viewport, and timeline entries. Output order is always
// stage list order — the journey order — never a date or geographic sort.
package journey

import (
	"time"

	"ecotrack-api/models"
)

// Position is a [latitude, longitude] pair, the order mapping libraries
// take. Stage locations are stored GeoJSON-style as [lng, lat]; Build
// does the flip so no client ever has to.
type Position [2]float64

// Viewport is the bounding box covering every stage.
type Viewport struct {
	SouthWest Position `json:"southWest"`
	NorthEast Position `json:"northEast"`
}

// TimelineEntry is one row of the vertical journey timeline.
type TimelineEntry struct {
	Sequence    int       `json:"sequence"`
	StageName   string    `json:"stageName"`
	Description string    `json:"description"`
	Address     string    `json:"address,omitempty"`
	Date        time.Time `json:"date"`
	Origin      bool      `json:"origin"`
}

// Journey is the full rendering contract for one product.
type Journey struct {
	Positions []Position      `json:"positions"`
	Path      []Position      `json:"path"`
	Viewport  *Viewport       `json:"viewport,omitempty"`
	Timeline  []TimelineEntry `json:"timeline"`
}

// Build computes the rendering payload from stages already in journey
// order. A product with no stages yields an empty journey with no
// viewport.
func Build(stages []models.SupplyChainStage) Journey {
	j := Journey{
		Positions: make([]Position, 0, len(stages)),
		Path:      make([]Position, 0, len(stages)),
		Timeline:  make([]TimelineEntry, 0, len(stages)),
	}
	if len(stages) == 0 {
		return j
	}

	var vp Viewport
	for i, stage := range stages {
		pos := Position{stage.Location.Lat(), stage.Location.Lng()}
		j.Positions = append(j.Positions, pos)
		// The polyline visits markers in the order they were plotted.
		// Path keeps its own backing array so mutating one slice can
		// never bend the other.
		j.Path = append(j.Path, pos)
		j.Timeline = append(j.Timeline, TimelineEntry{
			Sequence:    stage.Sequence,
			StageName:   stage.StageName,
			Description: stage.Description,
			Address:     stage.Address,
			Date:        stage.Date,
			Origin:      i == 0,
		})

		if i == 0 {
			vp = Viewport{SouthWest: pos, NorthEast: pos}
			continue
		}
		if pos[0] < vp.SouthWest[0] {
			vp.SouthWest[0] = pos[0]
		}
		if pos[1] < vp.SouthWest[1] {
			vp.SouthWest[1] = pos[1]
		}
		if pos[0] > vp.NorthEast[0] {
			vp.NorthEast[0] = pos[0]
		}
		if pos[1] > vp.NorthEast[1] {
			vp.NorthEast[1] = pos[1]
		}
	}

	j.Viewport = &vp
	return j
}
