package config

// Source kinds.
const (
	SourceSample = "sample"
	SourceGTFS   = "gtfs"
	SourceGTFSRT = "gtfsrt"
)

// MinIOConfig locates a GTFS zip in an S3 compatible object store
type MinIOConfig struct {
	Endpoint  string `yaml:"endpoint" validate:"omitempty,hostname_port"`
	Bucket    string `yaml:"bucket" validate:"required_with=Endpoint"`
	Object    string `yaml:"object" validate:"required_with=Endpoint"`
	AccessKey string `yaml:"accessKey"`
	SecretKey string `yaml:"secretKey"`
	UseSSL    bool   `yaml:"useSSL"`
}

// GTFSConfig contains GTFS static feed configuration
type GTFSConfig struct {
	Path        string      `yaml:"path"`
	StaticURL   string      `yaml:"staticURL" validate:"omitempty,url"`
	ServiceDate string      `yaml:"serviceDate" validate:"omitempty,datetime=2006-01-02"`
	Timezone    string      `yaml:"timezone" validate:"omitempty,timezone"`
	MinIO       MinIOConfig `yaml:"minio"`
}

// GTFSRTConfig contains GTFS-Realtime trip updates configuration
type GTFSRTConfig struct {
	TripUpdatesURL string `yaml:"tripUpdatesURL" validate:"omitempty,url"`
	Path           string `yaml:"path"`
	TimeoutMS      int    `yaml:"timeoutMS" validate:"gte=0"`
}

// SourceConfig selects where itineraries come from
type SourceConfig struct {
	Kind   string       `yaml:"kind" validate:"oneof=sample gtfs gtfsrt"`
	GTFS   GTFSConfig   `yaml:"gtfs"`
	GTFSRT GTFSRTConfig `yaml:"gtfsrt"`
}

// FilterConfig contains the predicates applied by the filter command
type FilterConfig struct {
	DepartAfter       string `yaml:"departAfter" validate:"omitempty,departafter"` // now|now+<duration>|RFC3339
	MaxGroundMinutes  int    `yaml:"maxGroundMinutes" validate:"gte=0"`           // 0 disables
	ChronologicalOnly bool   `yaml:"chronologicalOnly"`
	Workers           int    `yaml:"workers" validate:"gte=0"` // 0 or 1 evaluates sequentially
}

// OutputConfig selects the renderer
type OutputConfig struct {
	Format string `yaml:"format" validate:"oneof=text json yaml"`
}

// Feed is a named itinerary source
type Feed struct {
	Name   string       `yaml:"name" validate:"required"`
	Source SourceConfig `yaml:"source"`
}

// AppConfig is the root configuration structure
type AppConfig struct {
	Source SourceConfig `yaml:"source"`
	Filter FilterConfig `yaml:"filter"`
	Output OutputConfig `yaml:"output"`
	Feeds  []Feed       `yaml:"feeds" validate:"dive"`
}
