package config

const (
	// TopicJobs carries job.created, job.updated and job.deleted events.
	TopicJobs = "jobly.jobs"

	// TopicCompanies carries company lifecycle events.
	TopicCompanies = "jobly.companies"
)
