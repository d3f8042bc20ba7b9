// internal/app/bootstrap/appconfig.go
package bootstrap

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// WAFFLE's CoreConfig covers framework-level settings (ports, TLS,
// logging, body limits); AppConfig is everything specific to HackHub.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Max connection pool size
	MongoMinPoolSize uint64 // Min connection pool size

	// JWTSecret verifies the HS256 bearer tokens minted by the identity
	// service. It must match that service's signing key.
	JWTSecret string

	// CORSOrigins is the comma-separated list of allowed browser origins.
	CORSOrigins string
}
