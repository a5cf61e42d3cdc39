package config

type Database struct {
	// sqlite keeps the whole store in one file next to the process, which is
	// what a single bench machine wants; postgres is for shared deployments.
	Driver   string `mapstructure:"DATABASE_DRIVER" default:"sqlite"`
	Path     string `mapstructure:"DATABASE_PATH" default:"./labstock.db"`
	Host     string `mapstructure:"DATABASE_HOST" default:"localhost"`
	Port     int    `mapstructure:"DATABASE_PORT" default:"5432"`
	Name     string `mapstructure:"DATABASE_NAME" default:"labstock"`
	User     string `mapstructure:"DATABASE_USER" default:"postgres"`
	Password string `mapstructure:"DATABASE_PASSWORD" default:"labstock"`
}

type Redis struct {
	Enable   bool   `mapstructure:"REDIS_ENABLE" default:"false"`
	Host     string `mapstructure:"REDIS_HOST" default:"127.0.0.1"`
	Port     int    `mapstructure:"REDIS_PORT" default:"6379"`
	Password string `mapstructure:"REDIS_PASSWORD"`
	DB       int    `mapstructure:"REDIS_DB" default:"0"`
}

type Server struct {
	Platform string `mapstructure:"PLATFORM" default:"labstock"`
	Service  string `mapstructure:"SERVICE" default:"api"`
	Port     int    `mapstructure:"WEB_PORT" default:"8080"`
	Env      string `mapstructure:"ENV" default:"dev"`
}

type Auth struct {
	JWTSecret     string `mapstructure:"JWT_SECRET" default:"labstock-dev-secret"`
	TokenTTLHours int    `mapstructure:"TOKEN_TTL_HOURS" default:"24"`
	// Bootstrap admin created on migrate when the users table has none.
	AdminUsername string `mapstructure:"ADMIN_USERNAME" default:"admin"`
	AdminPassword string `mapstructure:"ADMIN_PASSWORD" default:"1234"`
}

// Inventory pins the policy constants the import and expiry paths apply
// uniformly, so tests and deployments can rely on them.
type Inventory struct {
	// Days ahead within which an expiry counts as "soon".
	ExpiryHorizonDays int `mapstructure:"EXPIRY_HORIZON_DAYS" default:"60"`
	// Quantity used when an imported row has a missing or unparseable
	// stock quantity.
	ImportQuantityFallback int `mapstructure:"IMPORT_QUANTITY_FALLBACK" default:"1"`
}

type PubChem struct {
	Addr string `mapstructure:"PUBCHEM_ADDR" default:"https://pubchem.ncbi.nlm.nih.gov"`
}

type Log struct {
	LogPath  string `mapstructure:"LOG_PATH" default:"./info.log"`
	LogLevel string `mapstructure:"LOG_LEVEL" default:"info"`
}

type Trace struct {
	Version       string `mapstructure:"TRACE_VERSION" default:"0.0.1"`
	TraceEndpoint string `mapstructure:"TRACE_TRACEENDPOINT" default:""`
}
