// Package buildinfo holds release metadata stamped at link time.
//
// GoReleaser fills these through -ldflags when cutting a release. A plain
// `go build` leaves them empty and the version command falls back to what
// debug.ReadBuildInfo can report.
package buildinfo

// Version is the release tag, e.g. "v1.4.0".
var Version string

// Commit is the VCS revision the release was built from.
var Commit string

// Date is the build timestamp in RFC 3339 form.
var Date string
