package telemetry

import (
	"context"
	"log/slog"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"go.opentelemetry.io/otel"
)

var meter = otel.Meter("go.perf_stats")
var cpuGauge, _ = meter.Float64Gauge("cpu_usage")
var memoryGauge, _ = meter.Int64Gauge("allocated_mb")
var liveObjectsGauge, _ = meter.Int64Gauge("live_objects")
var goroutineGauge, _ = meter.Int64Gauge("goroutine_count")

// RecordPerfStats samples process stats once, runs are short lived so
// this is called at the end of a run rather than on a ticker.
func RecordPerfStats(ctx context.Context) {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	cpuUsage, err := cpu.PercentWithContext(ctx, time.Millisecond*200, false)
	if err == nil && len(cpuUsage) > 0 {
		cpuGauge.Record(ctx, cpuUsage[0])
	} else {
		slog.DebugContext(ctx, "failed to read cpu usage", "err", err)
	}

	allocatedMb := int64(memStats.Alloc / 1_000_000)
	memoryGauge.Record(ctx, allocatedMb)
	liveObjectsGauge.Record(ctx, int64(memStats.Mallocs)-int64(memStats.Frees))
	goroutineGauge.Record(ctx, int64(runtime.NumGoroutine()))

	slog.DebugContext(ctx, "perf stats", "allocated_mb", allocatedMb, "goroutines", runtime.NumGoroutine())
}
