package app

// Build metadata, injected via -ldflags at release time.
var (
	Name      = "linkgraph"
	Version   = "dev"
	GitTag    = ""
	BuildTime = ""
)
