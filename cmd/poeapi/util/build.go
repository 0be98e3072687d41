package util

// BuildHash and BuildVersion are set during the compilation time.
var (
	BuildHash    = "dev"
	BuildVersion = "dev"
)
