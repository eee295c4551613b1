package config

// SourceFileExt is the default source file extension.
const SourceFileExt = ".py"

// SourceFileExtensions are all recognized source file extensions, in
// resolution-preference order.
var SourceFileExtensions = []string{".py", ".pyi"}

// InitFileName is the file that makes a directory importable as a package.
const InitFileName = "__init__"

// ConfigFileName is the workspace configuration file looked up at the
// project root.
const ConfigFileName = "pynav.yaml"

// DefaultCacheFileName is the on-disk module-path index, relative to the
// project root.
const DefaultCacheFileName = ".pynav-index.db"

// Conventional receiver parameter names.
const (
	SelfParamName = "self"
	ClsParamName  = "cls"
)
