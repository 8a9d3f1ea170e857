// Package domain contains the core business entities for the utility-bill
// retrieval pipeline: documents, chunks, retrieved hits and answers.
// It has no dependencies on adapters or external services.
package domain
