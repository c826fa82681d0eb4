package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	battleapp "StrategyGame/internal/battle/app"
	battlememory "StrategyGame/internal/battle/infra/persistence/memory"
	catalog "StrategyGame/internal/catalog/domain"
	catalogmemory "StrategyGame/internal/catalog/infra/persistence/memory"
	"StrategyGame/internal/city/app"
	"StrategyGame/internal/city/domain"
	citymemory "StrategyGame/internal/city/infra/persistence/memory"
	"StrategyGame/internal/shared/security"
	"StrategyGame/internal/shared/transport"
	world "StrategyGame/internal/world/domain"
	worldmemory "StrategyGame/internal/world/infra/persistence/memory"
	"StrategyGame/modules/kit/logx"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type nopLogger struct{}

func (nopLogger) Info(msg string, fields ...zap.Field)  {}
func (nopLogger) Error(msg string, fields ...zap.Field) {}
func (nopLogger) Debug(msg string, fields ...zap.Field) {}
func (nopLogger) Warn(msg string, fields ...zap.Field)  {}
func (nopLogger) WithContext(ctx context.Context) logx.Logger {
	return nopLogger{}
}

func newTestRouter(t *testing.T, cities *citymemory.CityRepo) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cat := catalogmemory.NewCatalogRepo()
	cat.Units["spearman"] = catalog.MilitaryUnit{
		ID:           "spearman",
		Name:         "枪兵",
		Price:        map[catalog.ResourceID]int{"wood": 10},
		Damage:       catalog.Damage{Type: catalog.DamageRock, Amount: 5},
		TrainingTime: 30,
	}
	worlds := worldmemory.NewWorldRepo()
	worlds.Worlds["w1"] = world.World{ID: "w1", Settings: world.WorldSettings{TickRateMillis: 1000}}

	log := nopLogger{}
	locker := app.NewCityLocker(cities, time.Now, app.LockOptions{
		Lease:       time.Second,
		MaxAttempts: 3,
		RetryDelay:  time.Millisecond,
	}, log)
	cityService := app.NewCityService(cities, worlds, time.Now, log)
	training := app.NewTrainingService(cities, cat, worlds, locker, time.Now, log)
	construction := app.NewConstructionService(cities, cat, worlds, locker, time.Now, log)
	research := app.NewResearchService(cities, cat, worlds, locker, time.Now, log)
	battles := battleapp.NewBattleService(battlememory.NewForceRepo(), cities, cat, locker, time.Now, log)

	r := gin.New()
	NewCity(cityService, training, construction, research, battles, log).RegisterRoutes(r.Group("/api"))
	return r
}

func authedRequest(t *testing.T, method, path, body string) *http.Request {
	t.Helper()
	token, err := security.Award("p1")
	if err != nil {
		t.Fatalf("签发失败: %v", err)
	}
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestStartTrainingHandler_下单成功返回条目(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-123")
	cities := citymemory.NewCityRepo()
	contents := domain.NewCityContents()
	contents.ResourceStorage["wood"] = 100
	_ = cities.InsertCity(context.Background(), &domain.City{ID: "c1", WorldID: "w1", SectorID: "s1", Contents: contents})
	r := newTestRouter(t, cities)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, authedRequest(t, http.MethodPost, "/api/city/c1/training", `{"unit_id":"spearman","amount":3}`))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var resp struct {
		Code int             `json:"code"`
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("响应解析失败: %v", err)
	}
	if resp.Code != transport.OK {
		t.Fatalf("code = %d, want %d", resp.Code, transport.OK)
	}
	c1, _ := cities.GetCity(context.Background(), "c1")
	if c1.Contents.ResourceStorage["wood"] != 70 || len(c1.Contents.TrainingQueue) != 1 {
		t.Fatalf("state = %+v", c1.Contents)
	}
}

func TestStartTrainingHandler_资源不足返回400和业务码(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-123")
	cities := citymemory.NewCityRepo()
	_ = cities.InsertCity(context.Background(), &domain.City{ID: "c1", WorldID: "w1", SectorID: "s1", Contents: domain.NewCityContents()})
	r := newTestRouter(t, cities)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, authedRequest(t, http.MethodPost, "/api/city/c1/training", `{"unit_id":"spearman","amount":3}`))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var resp struct {
		Code int `json:"code"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("响应解析失败: %v", err)
	}
	if resp.Code != transport.ResourceInsufficient {
		t.Fatalf("code = %d, want %d", resp.Code, transport.ResourceInsufficient)
	}
}

func TestStartTrainingHandler_城市不存在返回404(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-123")
	r := newTestRouter(t, citymemory.NewCityRepo())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, authedRequest(t, http.MethodPost, "/api/city/ghost/training", `{"unit_id":"spearman","amount":1}`))

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
}

func TestStartTrainingHandler_请求体缺字段返回参数错误(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-123")
	r := newTestRouter(t, citymemory.NewCityRepo())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, authedRequest(t, http.MethodPost, "/api/city/c1/training", `{"unit_id":"spearman"}`))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	var resp struct {
		Code int `json:"code"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("响应解析失败: %v", err)
	}
	if resp.Code != transport.InvalidParam {
		t.Fatalf("code = %d, want %d", resp.Code, transport.InvalidParam)
	}
}

func TestCityRoutes_未认证一律401(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret-123")
	r := newTestRouter(t, citymemory.NewCityRepo())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/city/c1", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}
