package monitoring

import (
	"context"
	"net/http"
	"runtime"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// Metrics holds request counters for the whole process. Handlers read a
// snapshot through GetMetrics so callers never touch the live maps.
type Metrics struct {
	mu sync.RWMutex

	RequestCount    int64
	RequestDuration time.Duration
	ActiveRequests  int64
	ErrorCount      int64
	StatusCodes     map[string]int64
	Endpoints       map[string]int64
	StartTime       time.Time
	LastRequest     time.Time

	totalDuration time.Duration
}

// MetricsSnapshot is a point-in-time copy safe to share across goroutines.
type MetricsSnapshot struct {
	RequestCount    int64            `json:"request_count"`
	RequestDuration time.Duration    `json:"avg_request_duration"`
	ActiveRequests  int64            `json:"active_requests"`
	ErrorCount      int64            `json:"error_count"`
	StatusCodes     map[string]int64 `json:"status_codes"`
	Endpoints       map[string]int64 `json:"endpoints"`
	StartTime       time.Time        `json:"start_time"`
	LastRequest     time.Time        `json:"last_request"`
}

var globalMetrics = &Metrics{
	StatusCodes: make(map[string]int64),
	Endpoints:   make(map[string]int64),
	StartTime:   time.Now(),
}

// MetricsMiddleware records request counts, latency, status classes and
// per-endpoint hit counts.
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		globalMetrics.mu.Lock()
		globalMetrics.ActiveRequests++
		globalMetrics.mu.Unlock()

		c.Next()

		duration := time.Since(start)
		status := c.Writer.Status()
		endpoint := c.Request.Method + " " + c.FullPath()
		if c.FullPath() == "" {
			endpoint = c.Request.Method + " " + c.Request.URL.Path
		}

		globalMetrics.mu.Lock()
		globalMetrics.ActiveRequests--
		globalMetrics.RequestCount++
		globalMetrics.totalDuration += duration
		globalMetrics.RequestDuration = globalMetrics.totalDuration / time.Duration(globalMetrics.RequestCount)
		globalMetrics.LastRequest = time.Now()
		globalMetrics.StatusCodes[http.StatusText(status)]++
		globalMetrics.Endpoints[endpoint]++
		if status >= http.StatusInternalServerError {
			globalMetrics.ErrorCount++
		}
		globalMetrics.mu.Unlock()
	}
}

func GetMetrics() MetricsSnapshot {
	globalMetrics.mu.RLock()
	defer globalMetrics.mu.RUnlock()

	snapshot := MetricsSnapshot{
		RequestCount:    globalMetrics.RequestCount,
		RequestDuration: globalMetrics.RequestDuration,
		ActiveRequests:  globalMetrics.ActiveRequests,
		ErrorCount:      globalMetrics.ErrorCount,
		StatusCodes:     make(map[string]int64, len(globalMetrics.StatusCodes)),
		Endpoints:       make(map[string]int64, len(globalMetrics.Endpoints)),
		StartTime:       globalMetrics.StartTime,
		LastRequest:     globalMetrics.LastRequest,
	}
	for k, v := range globalMetrics.StatusCodes {
		snapshot.StatusCodes[k] = v
	}
	for k, v := range globalMetrics.Endpoints {
		snapshot.Endpoints[k] = v
	}
	return snapshot
}

// MemoryMetrics reports allocation figures in megabytes.
type MemoryMetrics struct {
	Alloc      uint64 `json:"alloc_mb"`
	TotalAlloc uint64 `json:"total_alloc_mb"`
	Sys        uint64 `json:"sys_mb"`
	NumGC      uint32 `json:"num_gc"`
}

type SystemMetrics struct {
	Uptime         time.Duration `json:"uptime"`
	GoroutineCount int           `json:"goroutine_count"`
	CPUCount       int           `json:"cpu_count"`
	GoVersion      string        `json:"go_version"`
	MemoryUsage    MemoryMetrics `json:"memory_usage"`
}

// Uptime is the elapsed time since process start.
func Uptime() time.Duration {
	globalMetrics.mu.RLock()
	defer globalMetrics.mu.RUnlock()
	return time.Since(globalMetrics.StartTime)
}

func GetSystemMetrics() SystemMetrics {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	globalMetrics.mu.RLock()
	uptime := time.Since(globalMetrics.StartTime)
	globalMetrics.mu.RUnlock()

	return SystemMetrics{
		Uptime:         uptime,
		GoroutineCount: runtime.NumGoroutine(),
		CPUCount:       runtime.NumCPU(),
		GoVersion:      runtime.Version(),
		MemoryUsage: MemoryMetrics{
			Alloc:      bToMb(m.Alloc),
			TotalAlloc: bToMb(m.TotalAlloc),
			Sys:        bToMb(m.Sys),
			NumGC:      m.NumGC,
		},
	}
}

func bToMb(b uint64) uint64 {
	return b / 1024 / 1024
}

// HealthCheck couples a registered probe with its last recorded outcome.
type HealthCheck struct {
	Name      string    `json:"name"`
	Status    string    `json:"status"`
	Message   string    `json:"message,omitempty"`
	CheckedAt time.Time `json:"checked_at"`

	fn HealthCheckFunc
}

type HealthCheckFunc func(ctx context.Context) error

type healthChecker struct {
	mu     sync.RWMutex
	checks map[string]HealthCheck
}

var globalHealthChecker = &healthChecker{
	checks: make(map[string]HealthCheck),
}

func RegisterHealthCheck(name string, check HealthCheckFunc) {
	globalHealthChecker.mu.Lock()
	defer globalHealthChecker.mu.Unlock()
	globalHealthChecker.checks[name] = HealthCheck{Name: name, fn: check}
}

// RunHealthChecks executes every registered probe with a short deadline.
func RunHealthChecks() map[string]HealthCheck {
	globalHealthChecker.mu.RLock()
	checks := make(map[string]HealthCheck, len(globalHealthChecker.checks))
	for name, check := range globalHealthChecker.checks {
		checks[name] = check
	}
	globalHealthChecker.mu.RUnlock()

	results := make(map[string]HealthCheck, len(checks))
	for name, check := range checks {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		check.Status = "healthy"
		check.Message = ""
		check.CheckedAt = time.Now()
		if err := check.fn(ctx); err != nil {
			check.Status = "unhealthy"
			check.Message = err.Error()
		}
		cancel()
		results[name] = check
	}
	return results
}

func allHealthy(checks map[string]HealthCheck) bool {
	for _, check := range checks {
		if check.Status != "healthy" {
			return false
		}
	}
	return true
}

// MetricsHandler exposes application and system metrics as JSON.
func MetricsHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"application": GetMetrics(),
			"system":      GetSystemMetrics(),
			"timestamp":   time.Now(),
		})
	}
}

func HealthHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		checks := RunHealthChecks()
		status := "healthy"
		code := http.StatusOK
		if !allHealthy(checks) {
			status = "unhealthy"
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{
			"status":    status,
			"checks":    checks,
			"timestamp": time.Now(),
		})
	}
}

func ReadinessHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		checks := RunHealthChecks()
		status := "ready"
		code := http.StatusOK
		if !allHealthy(checks) {
			status = "not ready"
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{
			"status":    status,
			"checks":    checks,
			"timestamp": time.Now(),
		})
	}
}

func LivenessHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		globalMetrics.mu.RLock()
		uptime := time.Since(globalMetrics.StartTime)
		globalMetrics.mu.RUnlock()

		c.JSON(http.StatusOK, gin.H{
			"status":    "alive",
			"uptime":    uptime.String(),
			"timestamp": time.Now(),
		})
	}
}
