// Package jobs provides scheduled background tasks for shipflow.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. PendingSignoffReportJob - publishes a signoff.summary event per environment
// listing how many shipment records wait on each party and the oldest of them.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	report := jobs.NewPendingSignoffReportJob(summaryHandler, publisher, envs, cfg.ReportSchedule, logger)
//	jobManager := jobs.NewJobManager(report)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Scheduling
//
// Schedules take six fields, seconds first. The report defaults to
// DefaultReportSchedule.
//
// # Error Handling
//
// - The report job logs a failing environment and carries on with the next
// - Failed job starts will stop any already running jobs
package jobs
