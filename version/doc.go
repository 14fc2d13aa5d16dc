// Package version reports build metadata for fastdl.
//
// Values injected with -ldflags take precedence; otherwise the module
// version and vcs stamps from debug.ReadBuildInfo are used, falling back to
// "development" and "unknown".
package version
