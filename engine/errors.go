package engine

import "errors"

var (
	// ErrContractViolation marks caller errors: mismatched lengths, negative counts, mode mismatch
	// Never retried, never silently repaired
	ErrContractViolation = errors.New("contract violation")

	// ErrEnvironmentUnavailable marks a parallel execution facility that could not be acquired
	// Surfaced once from Initialize, there is no serial fallback
	ErrEnvironmentUnavailable = errors.New("parallel execution environment unavailable")

	// ErrNotInitialized is returned by operations that need Initialize to have succeeded
	ErrNotInitialized = errors.New("simulator not initialized")

	// ErrStaleGeneration is returned when a commit targets buffers that were replaced after its snapshot
	ErrStaleGeneration = errors.New("snapshot generation is stale")
)
