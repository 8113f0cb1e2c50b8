package sclisp

// Version is SCLisp's textual version.
const Version = "0.2.2"

// VersionMajor, VersionMinor and VersionRevision make up Version.
const (
	VersionMajor    = 0
	VersionMinor    = 2
	VersionRevision = 2
)

// PackedVersion returns the packed integer form:
// major*1_000_000 + minor*1_000 + revision.
func PackedVersion() int {
	return VersionMajor*1_000_000 + VersionMinor*1_000 + VersionRevision
}
