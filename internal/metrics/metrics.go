// Package metrics exposes system snapshots as Prometheus metrics. Each
// scrape takes one fresh snapshot; nothing is retained between scrapes.
package metrics

import (
	"strconv"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/hiveden/hwsnap/internal/hw"
)

const namespace = "hwsnap"

// SnapshotCollector implements prometheus.Collector on top of hw.Collector.
type SnapshotCollector struct {
	collector *hw.Collector
	logger    *zap.Logger

	up           *prometheus.Desc
	memTotal     *prometheus.Desc
	memFree      *prometheus.Desc
	memInUse     *prometheus.Desc
	storageTotal *prometheus.Desc
	storageFree  *prometheus.Desc
	storageInUse *prometheus.Desc
	cpuCores     *prometheus.Desc
	cpuFrequency *prometheus.Desc
	cpuInfo      *prometheus.Desc
	cpuFeature   *prometheus.Desc
}

// NewSnapshotCollector wraps c for registration with a prometheus.Registry.
func NewSnapshotCollector(c *hw.Collector, logger *zap.Logger) *SnapshotCollector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SnapshotCollector{
		collector: c,
		logger:    logger,

		up: prometheus.NewDesc(namespace+"_up",
			"Whether the last system snapshot succeeded.", nil, nil),
		memTotal: prometheus.NewDesc(namespace+"_memory_total_megabytes",
			"Total RAM in megabytes.", nil, nil),
		memFree: prometheus.NewDesc(namespace+"_memory_free_megabytes",
			"Free RAM in megabytes.", nil, nil),
		memInUse: prometheus.NewDesc(namespace+"_memory_in_use_percent",
			"Percentage of RAM in use.", nil, nil),
		storageTotal: prometheus.NewDesc(namespace+"_storage_total_megabytes",
			"Total capacity of the probed volume in megabytes.", []string{"path"}, nil),
		storageFree: prometheus.NewDesc(namespace+"_storage_free_megabytes",
			"Free capacity of the probed volume in megabytes.", []string{"path"}, nil),
		storageInUse: prometheus.NewDesc(namespace+"_storage_in_use_percent",
			"Percentage of the probed volume in use.", []string{"path"}, nil),
		cpuCores: prometheus.NewDesc(namespace+"_cpu_logical_cores",
			"OS-reported logical processor count.", nil, nil),
		cpuFrequency: prometheus.NewDesc(namespace+"_cpu_frequency_mhz",
			"Processor clock speed in MHz, 0 when unknown.", nil, nil),
		cpuInfo: prometheus.NewDesc(namespace+"_cpu_info",
			"Processor identification.", []string{"vendor", "brand", "family", "model"}, nil),
		cpuFeature: prometheus.NewDesc(namespace+"_cpu_feature",
			"Whether the processor supports a SIMD extension.", []string{"feature"}, nil),
	}
}

// Describe implements prometheus.Collector.
func (s *SnapshotCollector) Describe(ch chan<- *prometheus.Desc) {
	for _, d := range []*prometheus.Desc{
		s.up, s.memTotal, s.memFree, s.memInUse,
		s.storageTotal, s.storageFree, s.storageInUse,
		s.cpuCores, s.cpuFrequency, s.cpuInfo, s.cpuFeature,
	} {
		ch <- d
	}
}

// Collect implements prometheus.Collector.
func (s *SnapshotCollector) Collect(ch chan<- prometheus.Metric) {
	var snap hw.Snapshot
	if err := s.collector.Collect(&snap); err != nil {
		s.logger.Error("snapshot for scrape failed", zap.Error(err))
		ch <- prometheus.MustNewConstMetric(s.up, prometheus.GaugeValue, 0)
		return
	}
	ch <- prometheus.MustNewConstMetric(s.up, prometheus.GaugeValue, 1)

	// Vendor and brand come straight from CPUID registers and may hold
	// bytes that are not UTF-8, which Prometheus rejects as label values.
	gauge := func(d *prometheus.Desc, v float64, labels ...string) {
		for i, l := range labels {
			labels[i] = strings.ToValidUTF8(l, "?")
		}
		m, err := prometheus.NewConstMetric(d, prometheus.GaugeValue, v, labels...)
		if err != nil {
			m = prometheus.NewInvalidMetric(d, err)
		}
		ch <- m
	}

	gauge(s.memTotal, float64(snap.RAM.TotalMB))
	gauge(s.memFree, float64(snap.RAM.FreeMB))
	gauge(s.memInUse, float64(snap.RAM.InUse))

	gauge(s.storageTotal, float64(snap.HDD.TotalMB), snap.HDD.Path)
	gauge(s.storageFree, float64(snap.HDD.FreeMB), snap.HDD.Path)
	gauge(s.storageInUse, float64(snap.HDD.InUse), snap.HDD.Path)

	cpu := snap.CPU
	gauge(s.cpuCores, float64(cpu.Cores))
	gauge(s.cpuFrequency, float64(cpu.FrequencyMHz))
	gauge(s.cpuInfo, 1, cpu.VendorString(), cpu.BrandString(),
		strconv.FormatUint(uint64(cpu.Family), 10), strconv.FormatUint(uint64(cpu.Model), 10))

	for name, on := range map[string]bool{
		"mmx":    cpu.Features.MMX,
		"sse":    cpu.Features.SSE,
		"sse2":   cpu.Features.SSE2,
		"sse3":   cpu.Features.SSE3,
		"sse4_1": cpu.Features.SSE41,
		"sse4_2": cpu.Features.SSE42,
		"avx":    cpu.Features.AVX,
	} {
		v := 0.0
		if on {
			v = 1
		}
		gauge(s.cpuFeature, v, name)
	}
}
