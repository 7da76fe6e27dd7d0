// internal/services/environmental/repository.go
package environmental

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"sort"
	"time"

	"iwms-dashboard/internal/common/config"
	"iwms-dashboard/internal/common/database"
	httpclient "iwms-dashboard/internal/common/http"
	"iwms-dashboard/internal/fixtures"
	"iwms-dashboard/internal/models"
)

// Repository reads monthly utility data, oldest month first.
type Repository interface {
	ListEnergyData(ctx context.Context, buildingID string) ([]models.EnergyData, error)
}

func NewRepository(cfg *Config, pg *database.PostgresClient, bms *httpclient.Client) (Repository, error) {
	switch cfg.Source {
	case config.SourceFixtures, "":
		return &FixtureRepository{Delay: cfg.Delay}, nil
	case config.SourcePostgres:
		if pg == nil {
			return nil, fmt.Errorf("%s: postgres source configured without a connection", ServiceName)
		}
		return &PostgresRepository{DB: pg, Timeout: cfg.Timeout}, nil
	case config.SourceBMS:
		if bms == nil {
			return nil, fmt.Errorf("%s: bms source configured without a gateway client", ServiceName)
		}
		return &GatewayRepository{Client: bms}, nil
	default:
		return nil, fmt.Errorf("%s: unsupported source %q", ServiceName, cfg.Source)
	}
}

// ==========================
// Fixtures
// ==========================

type FixtureRepository struct {
	Delay time.Duration
}

func (r *FixtureRepository) ListEnergyData(ctx context.Context, buildingID string) ([]models.EnergyData, error) {
	if err := fixtures.Delay(ctx, r.Delay); err != nil {
		return nil, err
	}
	all, err := fixtures.Load[models.EnergyData](fixtures.Energy)
	if err != nil {
		return nil, err
	}
	out := make([]models.EnergyData, 0)
	for _, d := range all {
		if d.BuildingID == buildingID {
			out = append(out, d)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out, nil
}

// ==========================
// PostgreSQL
// ==========================

var queries = map[string]string{
	"energy": `
		SELECT building_id, to_char(month, 'YYYY-MM'), electricity_kwh, water_m3, gas_m3, emissions_kg_co2e
		FROM energy_readings
		WHERE building_id = $1
		ORDER BY month`,
}

type PostgresRepository struct {
	DB      *database.PostgresClient
	Timeout time.Duration
}

func scanEnergy(rows *sql.Rows) (models.EnergyData, error) {
	var d models.EnergyData
	err := rows.Scan(&d.BuildingID, &d.Month, &d.ElectricityKWh, &d.WaterM3, &d.GasM3, &d.EmissionsKgCO2e)
	return d, err
}

func (r *PostgresRepository) ListEnergyData(ctx context.Context, buildingID string) ([]models.EnergyData, error) {
	return database.QueryAll(ctx, r.DB, r.Timeout, "environmental.energy", queries["energy"], scanEnergy, buildingID)
}

// ==========================
// Building management gateway
// ==========================

// GatewayRepository reads meter data from the building management system.
// Upstream failures surface as errors.ResponseError with the gateway's message.
type GatewayRepository struct {
	Client *httpclient.Client
}

type gatewayReadings struct {
	BuildingID string              `json:"buildingId"`
	Readings   []models.EnergyData `json:"readings"`
}

func (r *GatewayRepository) ListEnergyData(ctx context.Context, buildingID string) ([]models.EnergyData, error) {
	var resp gatewayReadings
	if err := r.Client.GetJSON(ctx, "/buildings/"+url.PathEscape(buildingID)+"/energy", &resp); err != nil {
		return nil, err
	}
	out := make([]models.EnergyData, 0, len(resp.Readings))
	for _, d := range resp.Readings {
		if d.BuildingID == "" {
			d.BuildingID = buildingID
		}
		out = append(out, d)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out, nil
}
