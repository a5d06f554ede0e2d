package cron

import (
	"brightlaptop.GO/cron/jobs"
)

// Map of job names to job functions
type CronJob struct {
	Schedule string
	Job      func(...string)
}

var CronJobs = map[string]CronJob{
	"bestsellersnapshot": {Schedule: "0 * * * *", Job: jobs.BestSellerSnapshotJob},
	"catalogcachedump":   {Schedule: "@every 30m", Job: jobs.CatalogCacheDumpJob},
	// Add more jobs here
}
