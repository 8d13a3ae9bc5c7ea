package domain

import "errors"

var (
	// ErrIndexNotReady signals the search index has not been created yet.
	ErrIndexNotReady = errors.New("search index not ready")
	// ErrDatasetNotFound signals the disclosure workbook is missing.
	ErrDatasetNotFound = errors.New("dataset file not found")
	// ErrLoadFailed signals a bulk load into the search store failed.
	// Sink failure is fatal to an ingestion run and is never retried here.
	ErrLoadFailed = errors.New("bulk load failed")
)
