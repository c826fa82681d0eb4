package handler

import (
	"context"
	nethttp "net/http"

	battleapp "StrategyGame/internal/battle/app"
	catalog "StrategyGame/internal/catalog/domain"
	"StrategyGame/internal/city/app"
	"StrategyGame/internal/city/domain"
	"StrategyGame/internal/city/interfaces/handler/dto"
	"StrategyGame/internal/shared/transport"
	"StrategyGame/internal/shared/transport/http/middleware"
	world "StrategyGame/internal/world/domain"
	"StrategyGame/modules/kit/errx"
	"StrategyGame/modules/kit/logx"
	"StrategyGame/modules/kit/tracex"

	"github.com/gin-gonic/gin"
)

// City 汇集城市相关的 HTTP 入口：定居点、训练、建造、研究、出征。
type City struct {
	cities       *app.CityService
	training     *app.TrainingService
	construction *app.ConstructionService
	research     *app.ResearchService
	battles      *battleapp.BattleService
	log          logx.Logger
}

func NewCity(cities *app.CityService, training *app.TrainingService, construction *app.ConstructionService,
	research *app.ResearchService, battles *battleapp.BattleService, log logx.Logger) *City {
	return &City{
		cities:       cities,
		training:     training,
		construction: construction,
		research:     research,
		battles:      battles,
		log:          log,
	}
}

func (h *City) RegisterRoutes(group *gin.RouterGroup) {
	cityGroup := group.Group("/city", middleware.JWTAuth())
	cityGroup.POST("", h.FoundSettlement)
	cityGroup.GET("/:id", h.GetCity)

	cityGroup.POST("/:id/training", h.StartTraining)
	cityGroup.DELETE("/:id/training/:entry", h.CancelTraining)

	cityGroup.POST("/:id/construction", h.StartConstruction)
	cityGroup.DELETE("/:id/construction/:entry", h.CancelConstruction)
	cityGroup.DELETE("/:id/building/:building", h.DestroyBuilding)

	cityGroup.POST("/:id/research", h.StartResearch)
	cityGroup.DELETE("/:id/research/:entry", h.CancelResearch)

	cityGroup.POST("/:id/attack", h.LaunchAttack)
}

type foundSettlementReq struct {
	Name      string `json:"name" binding:"required"`
	WorldID   string `json:"world_id" binding:"required"`
	SectorID  string `json:"sector_id" binding:"required"`
	X         int    `json:"x"`
	Y         int    `json:"y"`
	FactionID string `json:"faction_id"`
}

func (h *City) FoundSettlement(c *gin.Context) {
	ctx := h.spanCtx(c)

	var req foundSettlementReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, nethttp.StatusBadRequest, transport.InvalidParam, "参数有误")
		return
	}

	city, err := h.cities.FoundSettlement(ctx, app.FoundSettlementReq{
		PlayerID:  c.GetString(middleware.PlayerIDKey),
		Name:      req.Name,
		WorldID:   world.WorldID(req.WorldID),
		SectorID:  world.SectorID(req.SectorID),
		X:         req.X,
		Y:         req.Y,
		FactionID: catalog.FactionID(req.FactionID),
	})
	if err != nil {
		h.error(ctx, c, "found settlement", err)
		return
	}
	h.ok(c, gin.H{"city_id": string(city.ID)})
}

func (h *City) GetCity(c *gin.Context) {
	ctx := h.spanCtx(c)

	city, err := h.cities.GetCity(ctx, domain.CityID(c.Param("id")))
	if err != nil {
		h.error(ctx, c, "get city", err)
		return
	}
	h.ok(c, city)
}

type startTrainingReq struct {
	UnitID string `json:"unit_id" binding:"required"`
	Amount int    `json:"amount" binding:"required"`
}

func (h *City) StartTraining(c *gin.Context) {
	ctx := h.spanCtx(c)

	var req startTrainingReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, nethttp.StatusBadRequest, transport.InvalidParam, "参数有误")
		return
	}

	entry, err := h.training.StartTraining(ctx, domain.CityID(c.Param("id")), catalog.UnitID(req.UnitID), req.Amount)
	if err != nil {
		h.error(ctx, c, "start training", err)
		return
	}
	h.ok(c, entry)
}

func (h *City) CancelTraining(c *gin.Context) {
	ctx := h.spanCtx(c)

	if err := h.training.CancelTraining(ctx, domain.CityID(c.Param("id")), c.Param("entry")); err != nil {
		h.error(ctx, c, "cancel training", err)
		return
	}
	h.ok(c, nil)
}

type startConstructionReq struct {
	BuildingID string `json:"building_id" binding:"required"`
}

func (h *City) StartConstruction(c *gin.Context) {
	ctx := h.spanCtx(c)

	var req startConstructionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, nethttp.StatusBadRequest, transport.InvalidParam, "参数有误")
		return
	}

	entry, err := h.construction.StartConstruction(ctx, domain.CityID(c.Param("id")), catalog.BuildingID(req.BuildingID))
	if err != nil {
		h.error(ctx, c, "start construction", err)
		return
	}
	h.ok(c, entry)
}

func (h *City) CancelConstruction(c *gin.Context) {
	ctx := h.spanCtx(c)

	if err := h.construction.CancelConstruction(ctx, domain.CityID(c.Param("id")), c.Param("entry")); err != nil {
		h.error(ctx, c, "cancel construction", err)
		return
	}
	h.ok(c, nil)
}

func (h *City) DestroyBuilding(c *gin.Context) {
	ctx := h.spanCtx(c)

	if err := h.construction.DestroyBuilding(ctx, domain.CityID(c.Param("id")), catalog.BuildingID(c.Param("building"))); err != nil {
		h.error(ctx, c, "destroy building", err)
		return
	}
	h.ok(c, nil)
}

type startResearchReq struct {
	ResearchID string `json:"research_id" binding:"required"`
}

func (h *City) StartResearch(c *gin.Context) {
	ctx := h.spanCtx(c)

	var req startResearchReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, nethttp.StatusBadRequest, transport.InvalidParam, "参数有误")
		return
	}

	entry, err := h.research.StartResearch(ctx, domain.CityID(c.Param("id")), catalog.ResearchID(req.ResearchID))
	if err != nil {
		h.error(ctx, c, "start research", err)
		return
	}
	h.ok(c, entry)
}

func (h *City) CancelResearch(c *gin.Context) {
	ctx := h.spanCtx(c)

	if err := h.research.CancelResearch(ctx, domain.CityID(c.Param("id")), c.Param("entry")); err != nil {
		h.error(ctx, c, "cancel research", err)
		return
	}
	h.ok(c, nil)
}

type launchAttackReq struct {
	DestinationCityID string `json:"destination_city_id" binding:"required"`
	Units             []struct {
		UnitID string `json:"unit_id" binding:"required"`
		Count  int    `json:"count" binding:"required"`
	} `json:"units" binding:"required"`
}

func (h *City) LaunchAttack(c *gin.Context) {
	ctx := h.spanCtx(c)

	var req launchAttackReq
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, nethttp.StatusBadRequest, transport.InvalidParam, "参数有误")
		return
	}

	units := make([]domain.CityArmy, 0, len(req.Units))
	for _, u := range req.Units {
		units = append(units, domain.CityArmy{UnitID: catalog.UnitID(u.UnitID), Count: u.Count})
	}
	force, err := h.battles.LaunchAttack(ctx, domain.CityID(c.Param("id")), domain.CityID(req.DestinationCityID), units)
	if err != nil {
		h.error(ctx, c, "launch attack", err)
		return
	}
	h.ok(c, gin.H{"force_id": string(force.ID), "arrives_at": force.ArrivesAt})
}

func (h *City) spanCtx(c *gin.Context) context.Context {
	return tracex.WithSpanID(c.Request.Context(), "city")
}

func (h *City) ok(c *gin.Context, data any) {
	c.JSON(nethttp.StatusOK, dto.Success(transport.OK, data))
}

func (h *City) fail(c *gin.Context, status, code int, msg string) {
	c.JSON(status, dto.Error(code, msg))
}

func (h *City) error(ctx context.Context, c *gin.Context, action string, err error) {
	if isSysError(err) {
		logx.ReportSysErrorWithLoggerContext(ctx, h.log, logx.NewSysLog("city "+action+" tech error", err))
	} else {
		logx.ReportBizWithLoggerContext(ctx, h.log, logx.NewBizLog("city "+action+" reject", errx.CodeOf(err), err.Error()))
	}
	status, code, msg := toHTTP(err)
	h.fail(c, status, code, msg)
}
