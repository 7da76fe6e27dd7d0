// internal/models/spaces.go
package models

// Floor is one level of a building.
type Floor struct {
	ID         string  `json:"id"`
	BuildingID string  `json:"buildingId"`
	Name       string  `json:"name"`
	Level      int     `json:"level"`
	Area       float64 `json:"area"`
	Capacity   int     `json:"capacity"`
}

// Space is a bookable or assignable area on a floor.
type Space struct {
	ID       string  `json:"id"`
	FloorID  string  `json:"floorId"`
	Name     string  `json:"name"`
	Type     string  `json:"type"`
	Area     float64 `json:"area"`
	Capacity int     `json:"capacity"`
	Occupied int     `json:"occupied"`
}

// OccupancySummary aggregates spaces of one building.
type OccupancySummary struct {
	BuildingID    string         `json:"buildingId"`
	Floors        int            `json:"floors"`
	Spaces        int            `json:"spaces"`
	TotalCapacity int            `json:"totalCapacity"`
	TotalOccupied int            `json:"totalOccupied"`
	Utilization   float64        `json:"utilization"` // percent
	ByType        map[string]int `json:"byType"`
}

// SummarizeOccupancy computes an OccupancySummary for the given floors and spaces.
func SummarizeOccupancy(buildingID string, floors []Floor, spaces []Space) OccupancySummary {
	s := OccupancySummary{BuildingID: buildingID, Floors: len(floors), ByType: map[string]int{}}
	for _, sp := range spaces {
		s.Spaces++
		s.TotalCapacity += sp.Capacity
		s.TotalOccupied += sp.Occupied
		s.ByType[sp.Type]++
	}
	if s.TotalCapacity > 0 {
		s.Utilization = round1(float64(s.TotalOccupied) * 100 / float64(s.TotalCapacity))
	}
	return s
}
