package main

import (
	"context"
	"errors"
	"fmt"
	nethttp "net/http"
	"os/signal"
	"sync"
	"syscall"
	"time"

	battleapp "StrategyGame/internal/battle/app"
	battlemongo "StrategyGame/internal/battle/infra/persistence/mongodb"
	catalogmongo "StrategyGame/internal/catalog/infra/persistence/mongodb"
	cityapp "StrategyGame/internal/city/app"
	citymongo "StrategyGame/internal/city/infra/persistence/mongodb"
	cityhandler "StrategyGame/internal/city/interfaces/handler"
	sharedmongo "StrategyGame/internal/shared/infrastructure/mongo"
	"StrategyGame/internal/shared/logs"
	"StrategyGame/internal/shared/serverconfig"
	transporthttp "StrategyGame/internal/shared/transport/http"
	"StrategyGame/internal/sim"
	worldmongo "StrategyGame/internal/world/infra/persistence/mongodb"
	"StrategyGame/modules/kit/logx"

	"go.uber.org/zap"
)

func main() {
	serverconfig.Load()
	if err := logs.Init("game", serverconfig.Conf.Log); err != nil {
		panic(err)
	}
	logs.Info("conf", zap.Any("conf", serverconfig.Conf))

	mongoClient, err := sharedmongo.Open(serverconfig.Conf.MongoDB, logs.Logger())
	if err != nil {
		logs.Fatal("open mongodb failed", zap.Error(err))
	}
	defer func() {
		_ = mongoClient.Disconnect(context.Background())
	}()
	db := mongoClient.Database(serverconfig.Conf.MongoDB.Database)

	log := logx.NewZapLogger(logs.Logger())
	clock := cityapp.Clock(time.Now)
	simCfg := serverconfig.Conf.Simulation

	cityRepo := citymongo.NewCityRepo(db)
	catalogRepo := catalogmongo.NewCatalogRepo(db)
	worldRepo := worldmongo.NewWorldRepo(db)
	forceRepo := battlemongo.NewForceRepo(db)

	locker := cityapp.NewCityLocker(cityRepo, clock, cityapp.LockOptions{
		Lease:       time.Duration(simCfg.LockLeaseS) * time.Second,
		MaxAttempts: simCfg.LockRetries,
		RetryDelay:  time.Duration(simCfg.LockRetryDelayMS) * time.Millisecond,
	}, log)

	ledger := cityapp.NewResourceLedger(cityRepo, locker, log)
	applier := cityapp.NewQueueApplier(catalogRepo, log)
	processor := cityapp.NewQueueProcessor(cityRepo, locker, applier, clock, log)
	cityService := cityapp.NewCityService(cityRepo, worldRepo, clock, log)
	training := cityapp.NewTrainingService(cityRepo, catalogRepo, worldRepo, locker, clock, log)
	construction := cityapp.NewConstructionService(cityRepo, catalogRepo, worldRepo, locker, clock, log)
	research := cityapp.NewResearchService(cityRepo, catalogRepo, worldRepo, locker, clock, log)
	battles := battleapp.NewBattleService(forceRepo, cityRepo, catalogRepo, locker, clock, log)

	production := sim.NewProductionLoop(worldRepo, cityRepo, catalogRepo, ledger,
		time.Duration(simCfg.ProductionIntervalMS)*time.Millisecond, clock, log)
	queueSweep := sim.NewQueueSweeper(cityRepo, processor,
		time.Duration(simCfg.QueueSweepIntervalMS)*time.Millisecond, simCfg.QueueBatchSize, log)
	battleSweep := sim.NewBattleSweeper(forceRepo, battles,
		time.Duration(simCfg.BattleSweepIntervalS)*time.Second, clock, log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var loops sync.WaitGroup
	loops.Add(3)
	go func() { defer loops.Done(); production.Run(ctx) }()
	go func() { defer loops.Done(); queueSweep.Run(ctx) }()
	go func() { defer loops.Done(); battleSweep.Run(ctx) }()

	addr := fmt.Sprintf("%s:%d", serverconfig.Conf.HTTPServer.Host, serverconfig.Conf.HTTPServer.Port)
	httpServer := transporthttp.NewHttpServer(addr, nil, log)
	cityhandler.NewCity(cityService, training, construction, research, battles, log).
		RegisterRoutes(httpServer.Group())

	go func() {
		logs.Info("http server started", zap.String("addr", addr))
		if err := httpServer.Start(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			logs.Fatal("http server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logs.Info("收到退出信号，准备优雅退出")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logs.Warn("http server shutdown", zap.Error(err))
	}
	// 三条主循环在 ctx 取消后于当轮收尾处退出，等它们把手头的城市处理完。
	loops.Wait()
	logs.Info("已退出")
}
