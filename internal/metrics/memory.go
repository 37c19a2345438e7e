package metrics

import (
	"runtime"

	"github.com/prometheus/client_golang/prometheus"
)

// MemorySnapshot holds a point-in-time memory reading.
type MemorySnapshot struct {
	HeapAlloc    uint64 // bytes in use by application
	HeapSys      uint64 // bytes obtained from OS for heap
	Sys          uint64 // total bytes obtained from OS
	TotalAlloc   uint64 // cumulative bytes allocated
	NumGC        uint32 // number of completed GC cycles
	PauseTotalNs uint64 // cumulative GC pause time
	HeapObjects  uint64 // number of allocated heap objects
}

// MemoryCollector reads runtime memory statistics.
type MemoryCollector struct{}

// NewMemoryCollector creates a new memory collector.
func NewMemoryCollector() *MemoryCollector {
	return &MemoryCollector{}
}

// Snapshot reads current memory statistics.
func (mc *MemoryCollector) Snapshot() MemorySnapshot {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return MemorySnapshot{
		HeapAlloc:    m.HeapAlloc,
		HeapSys:      m.HeapSys,
		Sys:          m.Sys,
		TotalAlloc:   m.TotalAlloc,
		NumGC:        m.NumGC,
		PauseTotalNs: m.PauseTotalNs,
		HeapObjects:  m.HeapObjects,
	}
}

// gauges exposes the heap figures as gauges read at gather time.
func (mc *MemoryCollector) gauges() []prometheus.Collector {
	gauge := func(name, help string, read func(MemorySnapshot) float64) prometheus.Collector {
		return prometheus.NewGaugeFunc(prometheus.GaugeOpts{Namespace: namespace, Name: name, Help: help},
			func() float64 { return read(mc.Snapshot()) })
	}
	return []prometheus.Collector{
		gauge("heap_alloc_bytes", "Bytes of allocated heap objects.",
			func(s MemorySnapshot) float64 { return float64(s.HeapAlloc) }),
		gauge("heap_objects", "Number of allocated heap objects.",
			func(s MemorySnapshot) float64 { return float64(s.HeapObjects) }),
		gauge("gc_cycles", "Completed GC cycles.",
			func(s MemorySnapshot) float64 { return float64(s.NumGC) }),
	}
}
