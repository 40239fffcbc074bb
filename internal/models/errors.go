package models

import "errors"

var (
	// ErrInvalidInput is returned when a field fails format or domain validation
	ErrInvalidInput = errors.New("invalid input")

	// ErrPackageNotFound is returned when no repository knows the requested package
	ErrPackageNotFound = errors.New("package not found")

	// ErrNoCandidateVersion is returned when no version satisfies the stability floor
	ErrNoCandidateVersion = errors.New("no candidate version")

	// ErrWrite is returned when the manifest cannot be persisted
	ErrWrite = errors.New("write failed")

	// ErrAborted is returned when the operator declines to generate the manifest
	ErrAborted = errors.New("command aborted")
)
