// Package util provides the low-level building blocks for fastdl.
//
// It contains the pieces that do not know anything about addons, gamemodes
// or content categories:
//
// Compression:
//   - BZip2 codec (the compression format FastDL clients expect)
//   - Round-trip decompression used by verification and tests
//
// Publication:
//   - Exists checks that treat any present entry as satisfied
//   - PublishExclusive, which writes a temporary sibling and hard-links it
//     into place only if the target is still missing, so two writers can
//     never both create the same artifact
//
// Paths:
//   - Lowercase normalisation of slash-separated relative paths
//
// Errors returned from this package wrap ErrIOFailure where the failure came
// from the filesystem, so callers can tell IO problems apart from bad input.
package util
