package metrics

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/testlane/testlane/internal/store"
	"go.uber.org/zap"
)

type tenantStatsCollector struct {
	store          store.Store
	totalCompanies *prometheus.Desc
	totalUsers     *prometheus.Desc
	totalProjects  *prometheus.Desc
	totalTestCases *prometheus.Desc
}

func NewTenantStatsCollector(s store.Store) prometheus.Collector {
	fqName := func(name string) string {
		return fmt.Sprintf("%s_%s", testlane, name)
	}

	return &tenantStatsCollector{
		store: s,
		totalCompanies: prometheus.NewDesc(
			fqName("companies_total"),
			"Total number of companies.",
			nil,
			prometheus.Labels{},
		),
		totalUsers: prometheus.NewDesc(
			fqName("users_total"),
			"Total number of registered users.",
			nil,
			prometheus.Labels{},
		),
		totalProjects: prometheus.NewDesc(
			fqName("projects_total"),
			"Total number of projects across all companies.",
			nil,
			prometheus.Labels{},
		),
		totalTestCases: prometheus.NewDesc(
			fqName("test_cases_total"),
			"Total number of test cases across all projects.",
			nil,
			prometheus.Labels{},
		),
	}
}

func (c *tenantStatsCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.totalCompanies
	ch <- c.totalUsers
	ch <- c.totalProjects
	ch <- c.totalTestCases
}

// Collect implements Collector.
func (c *tenantStatsCollector) Collect(ch chan<- prometheus.Metric) {
	stats, err := c.store.Statistics(context.Background())
	if err != nil {
		zap.S().Named("tenant_collector").Errorf("failed to collect tenant statistics: %s", err)
		return
	}
	ch <- prometheus.MustNewConstMetric(c.totalCompanies, prometheus.GaugeValue, float64(stats.TotalCompanies))
	ch <- prometheus.MustNewConstMetric(c.totalUsers, prometheus.GaugeValue, float64(stats.TotalUsers))
	ch <- prometheus.MustNewConstMetric(c.totalProjects, prometheus.GaugeValue, float64(stats.TotalProjects))
	ch <- prometheus.MustNewConstMetric(c.totalTestCases, prometheus.GaugeValue, float64(stats.TotalTestCases))
}
