package model

import (
	"StrategyGame/internal/catalog/domain"
)

type UnitDoc struct {
	ID            string         `bson:"_id"`
	Name          string         `bson:"name"`
	Population    int            `bson:"population"`
	Price         map[string]int `bson:"price,omitempty"`
	HP            int            `bson:"hp"`
	DamageType    int8           `bson:"damage_type"`
	DamageAmount  int            `bson:"damage_amount"`
	MovementSpeed int            `bson:"movement_speed"`
	ProducedAt    string         `bson:"produced_at,omitempty"`
	TrainingTime  int            `bson:"training_time"`
	FactionID     string         `bson:"faction_id,omitempty"`
}

type BuildingDoc struct {
	ID                      string         `bson:"_id"`
	Name                    string         `bson:"name"`
	Type                    int8           `bson:"type"`
	BaseConstructionTime    float64        `bson:"base_construction_time"`
	TimeMultiplierPerLevel  float64        `bson:"time_multiplier_per_level"`
	Price                   map[string]int `bson:"price,omitempty"`
	PriceMultiplierPerLevel float64        `bson:"price_multiplier_per_level"`
	FactionID               string         `bson:"faction_id,omitempty"`
	ProducesResource        string         `bson:"produces_resource,omitempty"`
}

type ResearchDoc struct {
	ID               string         `bson:"_id"`
	Name             string         `bson:"name"`
	Price            map[string]int `bson:"price,omitempty"`
	BaseResearchTime float64        `bson:"base_research_time"`
}

type ResourceDoc struct {
	ID   string `bson:"_id"`
	Name string `bson:"name"`
}

func DocToUnit(doc UnitDoc) *domain.MilitaryUnit {
	return &domain.MilitaryUnit{
		ID:         domain.UnitID(doc.ID),
		Name:       doc.Name,
		Population: doc.Population,
		Price:      docToPrice(doc.Price),
		HP:         doc.HP,
		Damage: domain.Damage{
			Type:   domain.DamageType(doc.DamageType),
			Amount: doc.DamageAmount,
		},
		MovementSpeed: doc.MovementSpeed,
		ProducedAt:    domain.BuildingID(doc.ProducedAt),
		TrainingTime:  doc.TrainingTime,
		FactionID:     domain.FactionID(doc.FactionID),
	}
}

func UnitToDoc(u domain.MilitaryUnit) UnitDoc {
	return UnitDoc{
		ID:            string(u.ID),
		Name:          u.Name,
		Population:    u.Population,
		Price:         priceToDoc(u.Price),
		HP:            u.HP,
		DamageType:    int8(u.Damage.Type),
		DamageAmount:  u.Damage.Amount,
		MovementSpeed: u.MovementSpeed,
		ProducedAt:    string(u.ProducedAt),
		TrainingTime:  u.TrainingTime,
		FactionID:     string(u.FactionID),
	}
}

func DocToBuilding(doc BuildingDoc) *domain.Building {
	return &domain.Building{
		ID:   domain.BuildingID(doc.ID),
		Name: doc.Name,
		Type: domain.BuildingType(doc.Type),
		Blueprint: domain.BuildingBlueprint{
			BaseConstructionTime:    doc.BaseConstructionTime,
			TimeMultiplierPerLevel:  doc.TimeMultiplierPerLevel,
			Price:                   docToPrice(doc.Price),
			PriceMultiplierPerLevel: doc.PriceMultiplierPerLevel,
		},
		FactionID:        domain.FactionID(doc.FactionID),
		ProducesResource: domain.ResourceID(doc.ProducesResource),
	}
}

func BuildingToDoc(b domain.Building) BuildingDoc {
	return BuildingDoc{
		ID:                      string(b.ID),
		Name:                    b.Name,
		Type:                    int8(b.Type),
		BaseConstructionTime:    b.Blueprint.BaseConstructionTime,
		TimeMultiplierPerLevel:  b.Blueprint.TimeMultiplierPerLevel,
		Price:                   priceToDoc(b.Blueprint.Price),
		PriceMultiplierPerLevel: b.Blueprint.PriceMultiplierPerLevel,
		FactionID:               string(b.FactionID),
		ProducesResource:        string(b.ProducesResource),
	}
}

func DocToResearch(doc ResearchDoc) *domain.Research {
	return &domain.Research{
		ID:               domain.ResearchID(doc.ID),
		Name:             doc.Name,
		Price:            docToPrice(doc.Price),
		BaseResearchTime: doc.BaseResearchTime,
	}
}

func docToPrice(in map[string]int) map[domain.ResourceID]int {
	out := make(map[domain.ResourceID]int, len(in))
	for id, v := range in {
		out[domain.ResourceID(id)] = v
	}
	return out
}

func priceToDoc(in map[domain.ResourceID]int) map[string]int {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]int, len(in))
	for id, v := range in {
		out[string(id)] = v
	}
	return out
}
