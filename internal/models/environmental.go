// internal/models/environmental.go
package models

// EnergyData is one month of utility consumption for a building.
type EnergyData struct {
	BuildingID      string  `json:"buildingId"`
	Month           string  `json:"month"` // YYYY-MM
	ElectricityKWh  float64 `json:"electricityKWh"`
	WaterM3         float64 `json:"waterM3"`
	GasM3           float64 `json:"gasM3"`
	EmissionsKgCO2e float64 `json:"emissionsKgCO2e"`
}

// EmissionsSummary aggregates energy data of one building.
type EmissionsSummary struct {
	BuildingID          string  `json:"buildingId"`
	Months              int     `json:"months"`
	TotalElectricityKWh float64 `json:"totalElectricityKWh"`
	TotalWaterM3        float64 `json:"totalWaterM3"`
	TotalEmissionsTCO2e float64 `json:"totalEmissionsTCO2e"`
	// ChangePercent compares the latest month's emissions with the previous one.
	ChangePercent float64 `json:"changePercent"`
}

// SummarizeEmissions computes an EmissionsSummary; data must be sorted by month.
func SummarizeEmissions(buildingID string, data []EnergyData) EmissionsSummary {
	s := EmissionsSummary{BuildingID: buildingID, Months: len(data)}
	var kg float64
	for _, d := range data {
		s.TotalElectricityKWh += d.ElectricityKWh
		s.TotalWaterM3 += d.WaterM3
		kg += d.EmissionsKgCO2e
	}
	s.TotalEmissionsTCO2e = round1(kg / 1000)
	if n := len(data); n >= 2 && data[n-2].EmissionsKgCO2e > 0 {
		prev, last := data[n-2].EmissionsKgCO2e, data[n-1].EmissionsKgCO2e
		s.ChangePercent = round1((last - prev) * 100 / prev)
	}
	return s
}
