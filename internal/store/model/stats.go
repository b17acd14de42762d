package model

// TenantStats is a point-in-time count of the main entities, exposed through
// the prometheus collector.
type TenantStats struct {
	TotalCompanies int64
	TotalUsers     int64
	TotalProjects  int64
	TotalTestCases int64
}
