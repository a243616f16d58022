package metrics

import (
	"runtime"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/load"
	"github.com/shirou/gopsutil/v3/mem"
)

// HostCollector samples CPU, memory and load of the machine running the
// bridge on every scrape. Readings the platform cannot provide are skipped.
type HostCollector struct {
	cpuPercent *prometheus.Desc
	memUsed    *prometheus.Desc
	memTotal   *prometheus.Desc
	load       *prometheus.Desc
	numCPU     *prometheus.Desc
}

// NewHostCollector creates the host resource collector
func NewHostCollector() *HostCollector {
	name := func(n string) string { return prometheus.BuildFQName("parttrack", "host", n) }
	return &HostCollector{
		cpuPercent: prometheus.NewDesc(name("cpu_percent"), "CPU usage since the previous scrape (0-100).", nil, nil),
		memUsed:    prometheus.NewDesc(name("memory_used_bytes"), "Used memory.", nil, nil),
		memTotal:   prometheus.NewDesc(name("memory_total_bytes"), "Total memory.", nil, nil),
		load:       prometheus.NewDesc(name("load_average"), "System load average.", []string{"window"}, nil),
		numCPU:     prometheus.NewDesc(name("cpus"), "Logical CPUs.", nil, nil),
	}
}

// Describe implements prometheus.Collector
func (c *HostCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.cpuPercent
	ch <- c.memUsed
	ch <- c.memTotal
	ch <- c.load
	ch <- c.numCPU
}

// Collect implements prometheus.Collector
func (c *HostCollector) Collect(ch chan<- prometheus.Metric) {
	ch <- prometheus.MustNewConstMetric(c.numCPU, prometheus.GaugeValue, float64(runtime.NumCPU()))

	// Zero interval compares against the previous call, no blocking
	if percents, err := cpu.Percent(0, false); err == nil && len(percents) > 0 {
		ch <- prometheus.MustNewConstMetric(c.cpuPercent, prometheus.GaugeValue, percents[0])
	}

	if vm, err := mem.VirtualMemory(); err == nil {
		ch <- prometheus.MustNewConstMetric(c.memUsed, prometheus.GaugeValue, float64(vm.Used))
		ch <- prometheus.MustNewConstMetric(c.memTotal, prometheus.GaugeValue, float64(vm.Total))
	}

	// Not available on Windows
	if avg, err := load.Avg(); err == nil {
		ch <- prometheus.MustNewConstMetric(c.load, prometheus.GaugeValue, avg.Load1, "1m")
		ch <- prometheus.MustNewConstMetric(c.load, prometheus.GaugeValue, avg.Load5, "5m")
		ch <- prometheus.MustNewConstMetric(c.load, prometheus.GaugeValue, avg.Load15, "15m")
	}
}
