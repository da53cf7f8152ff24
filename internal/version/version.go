// internal/version/version.go
package version

// Version is the toolchain release tag reported by --version.
const Version = "0.1.0"
