package driving

import "context"

// IngestOrchestrator drives document ingestion from the content source into
// the vector index.
type IngestOrchestrator interface {
	// Run processes every document in the source to completion and returns a
	// summary. Per-document failures are recorded in the summary and never
	// abort the run; Run itself only errors when the source listing or a
	// shared service is unusable.
	Run(ctx context.Context) (*IngestSummary, error)

	// Status returns a snapshot of the run in progress.
	Status() IngestStatus
}

// IngestStatus is a point-in-time view of an ingestion run.
type IngestStatus struct {
	// Running indicates an ingestion run is in progress.
	Running bool

	// Processed is the count of documents re-indexed so far.
	Processed int

	// Skipped is the count of documents already up to date.
	Skipped int

	// Failed is the count of documents that could not be indexed.
	Failed int
}

// IngestSummary is the final report of an ingestion run.
type IngestSummary struct {
	// Processed is the count of documents re-indexed.
	Processed int

	// Skipped is the count of documents whose indexed version already
	// matched the source.
	Skipped int

	// Failures lists the documents that could not be indexed.
	Failures []IngestFailure
}

// IngestFailure records one document that failed during a run.
type IngestFailure struct {
	// DocumentID is the failed document.
	DocumentID string

	// Reason is the error that stopped it.
	Reason string
}
