package catalog

// Config holds configuration for the catalog and where its origin files
// come from.
type Config struct {
	// Source selects where plugins are read from: "dir" or "bucket".
	Source string `mapstructure:"source" default:"dir"`
	// DataDir is the plugin directory used by the "dir" source.
	DataDir string `mapstructure:"data_dir" default:"./Data"`
	// LoadOrder is the path of a plugins.txt file. When empty, every plugin
	// of the source is loaded with masters first.
	LoadOrder string `mapstructure:"load_order" default:""`
	// BucketPrefix is the object prefix used by the "bucket" source.
	BucketPrefix string `mapstructure:"bucket_prefix" default:"Data/"`
	// EditorIDBuffer bounds editor ID reads during cell scans.
	EditorIDBuffer int `mapstructure:"edid_buffer" default:"512"`
}

const (
	SourceDir    = "dir"
	SourceBucket = "bucket"
)

// IsValidSource checks if the configured source is known.
func (c Config) IsValidSource() bool {
	switch c.Source {
	case SourceDir, SourceBucket:
		return true
	default:
		return false
	}
}
