package versioning

// Populated at build time through -ldflags.
var (
	Commit    string
	Branch    string
	BuildTime string
)
