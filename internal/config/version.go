package config

// Version is the waylog binary version.
// Set at build time via: -ldflags "-X github.com/waylog/waylog/internal/config.Version=<tag>"
// Defaults to "dev" when built without ldflags.
var Version = "dev"
