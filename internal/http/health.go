package http

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/suppository-service/internal/circuitbreaker"
	"github.com/guttosm/suppository-service/internal/service"
)

// readinessBudget bounds all dependency checks of one readiness probe.
const readinessBudget = 2 * time.Second

// HealthChecker is a dependency probed by /readyz.
type HealthChecker interface {
	Check(ctx context.Context) error
}

// CheckerFunc adapts a function to HealthChecker.
type CheckerFunc func(ctx context.Context) error

// Check implements HealthChecker.
func (f CheckerFunc) Check(ctx context.Context) error { return f(ctx) }

// CalculatorCheck runs the worked example through calc, with overage and
// rounding off, and verifies the required base of 2 - 0.2/3 g.
func CalculatorCheck(calc service.Calculator) CheckerFunc {
	return func(ctx context.Context) error {
		var none float64
		raw := service.RawFromState(service.ExampleState())
		raw.OverageFraction = &none
		raw.RoundingStepG = &none

		out, err := calc.Calculate(ctx, raw)
		if err != nil {
			return err
		}
		want := 2 - 0.2/3
		if got := out.Result.RequiredBaseBatchG; math.Abs(got-want) > 1e-9 {
			return fmt.Errorf("worked example gave %.4f g, want %.4f g", got, want)
		}
		return nil
	}
}

// HealthHandler serves the liveness and readiness probes.
type HealthHandler struct {
	checkers        map[string]HealthChecker
	circuitBreakers map[string]*circuitbreaker.CircuitBreaker
}

// NewHealthHandler creates a HealthHandler with nothing registered.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{
		checkers:        make(map[string]HealthChecker),
		circuitBreakers: make(map[string]*circuitbreaker.CircuitBreaker),
	}
}

// RegisterChecker adds a dependency to the readiness probe.
func (h *HealthHandler) RegisterChecker(name string, checker HealthChecker) {
	h.checkers[name] = checker
}

// RegisterCircuitBreaker reports cb's state as "<name>_circuit".
func (h *HealthHandler) RegisterCircuitBreaker(name string, cb *circuitbreaker.CircuitBreaker) {
	h.circuitBreakers[name] = cb
}

// Register mounts /healthz and /readyz.
func (h *HealthHandler) Register(router *gin.Engine) {
	router.GET("/healthz", h.Liveness)
	router.GET("/readyz", h.Readiness)
}

// Liveness handles the liveness probe endpoint.
// @Summary     Liveness probe
// @Description Returns OK if the process is serving requests.
// @Tags        Health
// @Produce     json
// @Success     200 {object} map[string]string "Service is alive"
// @Router      /healthz [get]
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readiness handles the readiness probe endpoint.
// @Summary     Readiness probe
// @Description Runs the calculator self-check and the MongoDB checks, and reports circuit breaker states.
// @Tags        Health
// @Produce     json
// @Success     200 {object} map[string]interface{} "Service is ready"
// @Failure     503 {object} map[string]interface{} "Service is not ready"
// @Router      /readyz [get]
func (h *HealthHandler) Readiness(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), readinessBudget)
	defer cancel()

	ready := true
	checks := make(map[string]string, len(h.checkers)+len(h.circuitBreakers))

	for name, checker := range h.checkers {
		if err := checker.Check(ctx); err != nil {
			checks[name] = err.Error()
			ready = false
			continue
		}
		checks[name] = "ok"
	}

	for name, cb := range h.circuitBreakers {
		stats := cb.GetStats()
		checks[name+"_circuit"] = stats.State
		if !stats.IsHealthy {
			ready = false
		}
	}

	if len(checks) == 0 {
		checks["service"] = "ok"
	}

	status, text := http.StatusOK, "ok"
	if !ready {
		status, text = http.StatusServiceUnavailable, "degraded"
	}
	c.JSON(status, gin.H{"status": text, "checks": checks})
}
