package model

import (
	"time"

	catalog "StrategyGame/internal/catalog/domain"
	"StrategyGame/internal/city/domain"
	world "StrategyGame/internal/world/domain"
)

// CityDoc 是城市文档的落盘形态。
// 锁字段放在顶层，TryAcquireLock 的条件更新直接作用于它们。
type CityDoc struct {
	ID        string `bson:"_id"`
	PlayerID  string `bson:"player_id,omitempty"`
	Name      string `bson:"name"`
	WorldID   string `bson:"world_id"`
	SectorID  string `bson:"sector_id"`
	X         int    `bson:"x"`
	Y         int    `bson:"y"`
	FactionID string `bson:"faction_id,omitempty"`

	Contents ContentsDoc `bson:"contents"`

	LockToken      string    `bson:"lock_token,omitempty"`
	LockExpiration time.Time `bson:"lock_expiration,omitempty"`
}

type ContentsDoc struct {
	Armies          []ArmyDoc      `bson:"armies,omitempty"`
	ResourceStorage map[string]int `bson:"resource_storage,omitempty"`
	Buildings       map[string]int `bson:"buildings,omitempty"`
	Researches      map[string]int `bson:"researches,omitempty"`

	TrainingQueue     []QueueEntryDoc `bson:"training_queue,omitempty"`
	ConstructionQueue []QueueEntryDoc `bson:"construction_queue,omitempty"`
	ResearchQueue     []QueueEntryDoc `bson:"research_queue,omitempty"`
}

type ArmyDoc struct {
	UnitID string `bson:"unit_id"`
	Count  int    `bson:"count"`
}

type QueueEntryDoc struct {
	EntryID   string         `bson:"entry_id"`
	Kind      int8           `bson:"kind"`
	TargetID  string         `bson:"target_id"`
	StartedAt time.Time      `bson:"started_at"`
	ReadyAt   time.Time      `bson:"ready_at"`
	Quantity  int            `bson:"quantity"`
	Cost      map[string]int `bson:"cost,omitempty"`
}

func CityToDoc(c *domain.City) CityDoc {
	return CityDoc{
		ID:             string(c.ID),
		PlayerID:       c.PlayerID,
		Name:           c.Name,
		WorldID:        string(c.WorldID),
		SectorID:       string(c.SectorID),
		X:              c.X,
		Y:              c.Y,
		FactionID:      string(c.FactionID),
		Contents:       ContentsToDoc(c.Contents),
		LockToken:      c.LockToken,
		LockExpiration: c.LockExpiration,
	}
}

func DocToCity(doc CityDoc) *domain.City {
	return &domain.City{
		ID:             domain.CityID(doc.ID),
		PlayerID:       doc.PlayerID,
		Name:           doc.Name,
		WorldID:        world.WorldID(doc.WorldID),
		SectorID:       world.SectorID(doc.SectorID),
		X:              doc.X,
		Y:              doc.Y,
		FactionID:      catalog.FactionID(doc.FactionID),
		Contents:       DocToContents(doc.Contents),
		LockToken:      doc.LockToken,
		LockExpiration: doc.LockExpiration,
	}
}

func ContentsToDoc(c domain.CityContents) ContentsDoc {
	doc := ContentsDoc{
		ResourceStorage:   resourceMapToDoc(c.ResourceStorage),
		Buildings:         buildingMapToDoc(c.Buildings),
		Researches:        researchMapToDoc(c.Researches),
		TrainingQueue:     queueToDoc(c.TrainingQueue),
		ConstructionQueue: queueToDoc(c.ConstructionQueue),
		ResearchQueue:     queueToDoc(c.ResearchQueue),
	}
	for _, stack := range c.Armies {
		doc.Armies = append(doc.Armies, ArmyDoc{UnitID: string(stack.UnitID), Count: stack.Count})
	}
	return doc
}

func DocToContents(doc ContentsDoc) domain.CityContents {
	c := domain.NewCityContents()
	for _, stack := range doc.Armies {
		c.Armies = append(c.Armies, domain.CityArmy{UnitID: catalog.UnitID(stack.UnitID), Count: stack.Count})
	}
	for id, v := range doc.ResourceStorage {
		c.ResourceStorage[catalog.ResourceID(id)] = v
	}
	for id, v := range doc.Buildings {
		c.Buildings[catalog.BuildingID(id)] = v
	}
	for id, v := range doc.Researches {
		c.Researches[catalog.ResearchID(id)] = v
	}
	c.TrainingQueue = docToQueue(doc.TrainingQueue)
	c.ConstructionQueue = docToQueue(doc.ConstructionQueue)
	c.ResearchQueue = docToQueue(doc.ResearchQueue)
	return c
}

func queueToDoc(queue []domain.QueueEntry) []QueueEntryDoc {
	out := make([]QueueEntryDoc, 0, len(queue))
	for _, e := range queue {
		out = append(out, QueueEntryDoc{
			EntryID:   e.EntryID,
			Kind:      int8(e.Kind),
			TargetID:  e.TargetID,
			StartedAt: e.StartedAt,
			ReadyAt:   e.ReadyAt,
			Quantity:  e.Quantity,
			Cost:      resourceMapToDoc(e.Cost),
		})
	}
	return out
}

func docToQueue(docs []QueueEntryDoc) []domain.QueueEntry {
	out := make([]domain.QueueEntry, 0, len(docs))
	for _, d := range docs {
		cost := make(map[catalog.ResourceID]int, len(d.Cost))
		for id, v := range d.Cost {
			cost[catalog.ResourceID(id)] = v
		}
		out = append(out, domain.QueueEntry{
			EntryID:   d.EntryID,
			Kind:      domain.QueueKind(d.Kind),
			TargetID:  d.TargetID,
			StartedAt: d.StartedAt,
			ReadyAt:   d.ReadyAt,
			Quantity:  d.Quantity,
			Cost:      cost,
		})
	}
	return out
}

func resourceMapToDoc(in map[catalog.ResourceID]int) map[string]int {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]int, len(in))
	for id, v := range in {
		out[string(id)] = v
	}
	return out
}

func buildingMapToDoc(in map[catalog.BuildingID]int) map[string]int {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]int, len(in))
	for id, v := range in {
		out[string(id)] = v
	}
	return out
}

func researchMapToDoc(in map[catalog.ResearchID]int) map[string]int {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]int, len(in))
	for id, v := range in {
		out[string(id)] = v
	}
	return out
}
