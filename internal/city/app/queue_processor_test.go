package app

import (
	"context"
	"testing"
	"time"

	"StrategyGame/internal/city/domain"
	citymemory "StrategyGame/internal/city/infra/persistence/memory"
)

func TestProcessCity_到期条目在锁内结算并落盘(t *testing.T) {
	repo := citymemory.NewCityRepo()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	c := newTestCity("c1", nil)
	c.Contents.TrainingQueue = []domain.QueueEntry{
		queueEntry(domain.QueueTraining, "spearman", now.Add(-time.Second), 4),
	}
	_ = repo.InsertCity(context.Background(), c)
	clock := func() time.Time { return now }
	processor := NewQueueProcessor(repo, newTestLocker(repo, clock), NewQueueApplier(newTestCatalog(), nopLogger{}), clock, nopLogger{})

	processed, err := processor.ProcessCity(context.Background(), "c1")

	if err != nil {
		t.Fatalf("err = %v", err)
	}
	if !processed {
		t.Fatal("processed = false, want true")
	}
	stored, _ := repo.GetCity(context.Background(), "c1")
	if len(stored.Contents.Armies) != 1 || stored.Contents.Armies[0].Count != 4 {
		t.Fatalf("armies = %+v, want 4 spearman", stored.Contents.Armies)
	}
	if len(stored.Contents.TrainingQueue) != 0 {
		t.Fatalf("queue = %+v, want empty", stored.Contents.TrainingQueue)
	}
	if stored.LockToken != "" {
		t.Fatalf("lock not released: %q", stored.LockToken)
	}
}

func TestProcessCity_没有到期条目时不落盘(t *testing.T) {
	repo := citymemory.NewCityRepo()
	now := time.Now()
	c := newTestCity("c1", nil)
	c.Contents.TrainingQueue = []domain.QueueEntry{
		queueEntry(domain.QueueTraining, "spearman", now.Add(time.Hour), 4),
	}
	_ = repo.InsertCity(context.Background(), c)
	processor := NewQueueProcessor(repo, newTestLocker(repo, time.Now), NewQueueApplier(newTestCatalog(), nopLogger{}), time.Now, nopLogger{})

	processed, err := processor.ProcessCity(context.Background(), "c1")

	if err != nil {
		t.Fatalf("err = %v", err)
	}
	if processed {
		t.Fatal("processed = true, want false")
	}
}
