// Package util provides utility functions for fastdl.
package util

import "errors"

// Sentinel errors for package util.
// These errors can be checked with errors.Is() for specific error handling.
var (
	// Folder structure errors
	ErrStructureUnrecognized = errors.New("folder is neither an addon nor a gamemode")

	// File and directory errors
	ErrExpectedDirectory = errors.New("expected directory but got file")
	ErrIOFailure         = errors.New("io failure")

	// Configuration errors
	ErrInvalidConfig = errors.New("invalid configuration")

	// Verification errors
	ErrArtifactMismatch = errors.New("compressed artifact does not match its original")
)
