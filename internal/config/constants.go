package config

const SourceFileExt = ".mtt"

// SourceFileExtensions are all recognized source file extensions
var SourceFileExtensions = []string{".mtt", ".minitt"}

// Default store capacities. Each one bounds a fixed-size structure allocated
// up front; exceeding a bound at runtime is a recoverable error, never a
// crash. Hosts with tighter memory budgets override these through a limits
// file (see limits.go).
const (
	DefaultTermCapacity   = 4096
	DefaultLevelCapacity  = 512
	DefaultSymbolCapacity = 512
	DefaultContextDepth   = 32
	DefaultEnvCapacity    = 256
)
