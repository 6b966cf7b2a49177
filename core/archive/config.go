package archive

// Config holds configuration for the expansion pack.
type Config struct {
	// Path is the zip file to open. Empty disables compressed loads from an archive.
	Path string `mapstructure:"path" default:""`
	// EntryCacheSize is the number of decompressed entries kept in memory.
	EntryCacheSize int `mapstructure:"entry_cache_size" default:"64"`
}
