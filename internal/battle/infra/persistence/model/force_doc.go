package model

import (
	"time"

	"StrategyGame/internal/battle/domain"
	catalog "StrategyGame/internal/catalog/domain"
	citydomain "StrategyGame/internal/city/domain"
)

type AttackForceDoc struct {
	ID                string     `bson:"_id"`
	OriginCityID      string     `bson:"origin_city_id"`
	DestinationCityID string     `bson:"destination_city_id"`
	Units             []StackDoc `bson:"units"`
	ArrivesAt         time.Time  `bson:"arrives_at"`
}

type StackDoc struct {
	UnitID string `bson:"unit_id"`
	Count  int    `bson:"count"`
}

func ForceToDoc(f *domain.AttackForce) AttackForceDoc {
	doc := AttackForceDoc{
		ID:                string(f.ID),
		OriginCityID:      string(f.OriginCityID),
		DestinationCityID: string(f.DestinationCityID),
		ArrivesAt:         f.ArrivesAt,
	}
	for _, stack := range f.Units {
		doc.Units = append(doc.Units, StackDoc{UnitID: string(stack.UnitID), Count: stack.Count})
	}
	return doc
}

func DocToForce(doc AttackForceDoc) *domain.AttackForce {
	f := &domain.AttackForce{
		ID:                domain.ForceID(doc.ID),
		OriginCityID:      citydomain.CityID(doc.OriginCityID),
		DestinationCityID: citydomain.CityID(doc.DestinationCityID),
		ArrivesAt:         doc.ArrivesAt,
	}
	for _, stack := range doc.Units {
		f.Units = append(f.Units, citydomain.CityArmy{UnitID: catalog.UnitID(stack.UnitID), Count: stack.Count})
	}
	return f
}
