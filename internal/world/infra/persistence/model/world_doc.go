package model

import (
	"StrategyGame/internal/world/domain"
)

type WorldDoc struct {
	ID       string          `bson:"_id"`
	Name     string          `bson:"name"`
	Settings WorldSettingsDoc `bson:"settings"`
}

type WorldSettingsDoc struct {
	Name        string `bson:"name,omitempty"`
	Description string `bson:"description,omitempty"`

	TickRateMillis int `bson:"tick_rate_millis"`

	ResourceBaseProductionRate     int     `bson:"resource_base_production_rate"`
	ResourceProductionGrowthFactor float64 `bson:"resource_production_growth_factor"`

	UnitTrainingSpeed float64 `bson:"unit_training_speed"`
	ConstructionSpeed float64 `bson:"construction_speed"`
	ResearchSpeed     float64 `bson:"research_speed"`

	MaxSectorColumns int `bson:"max_sector_columns"`
	MaxSectorRows    int `bson:"max_sector_rows"`
	SectorSize       int `bson:"sector_size"`
}

func DocToWorld(doc WorldDoc) *domain.World {
	return &domain.World{
		ID:   domain.WorldID(doc.ID),
		Name: doc.Name,
		Settings: domain.WorldSettings{
			Name:                           doc.Settings.Name,
			Description:                    doc.Settings.Description,
			TickRateMillis:                 doc.Settings.TickRateMillis,
			ResourceBaseProductionRate:     doc.Settings.ResourceBaseProductionRate,
			ResourceProductionGrowthFactor: doc.Settings.ResourceProductionGrowthFactor,
			UnitTrainingSpeed:              doc.Settings.UnitTrainingSpeed,
			ConstructionSpeed:              doc.Settings.ConstructionSpeed,
			ResearchSpeed:                  doc.Settings.ResearchSpeed,
			MaxSectorColumns:               doc.Settings.MaxSectorColumns,
			MaxSectorRows:                  doc.Settings.MaxSectorRows,
			SectorSize:                     doc.Settings.SectorSize,
		},
	}
}

func WorldToDoc(w domain.World) WorldDoc {
	return WorldDoc{
		ID:   string(w.ID),
		Name: w.Name,
		Settings: WorldSettingsDoc{
			Name:                           w.Settings.Name,
			Description:                    w.Settings.Description,
			TickRateMillis:                 w.Settings.TickRateMillis,
			ResourceBaseProductionRate:     w.Settings.ResourceBaseProductionRate,
			ResourceProductionGrowthFactor: w.Settings.ResourceProductionGrowthFactor,
			UnitTrainingSpeed:              w.Settings.UnitTrainingSpeed,
			ConstructionSpeed:              w.Settings.ConstructionSpeed,
			ResearchSpeed:                  w.Settings.ResearchSpeed,
			MaxSectorColumns:               w.Settings.MaxSectorColumns,
			MaxSectorRows:                  w.Settings.MaxSectorRows,
			SectorSize:                     w.Settings.SectorSize,
		},
	}
}
