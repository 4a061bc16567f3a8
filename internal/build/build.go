package build

// Version of blotches. Set with -ldflags during release.
var Version = "0.0.0"
