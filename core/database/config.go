package database

// Config holds configuration for the database connection.
// The database only stores audit history; an empty Name disables it.
type Config struct {
	// Driver is the database driver (sqlite, mysql).
	Driver string `mapstructure:"driver" default:"sqlite"`
	// Host is the database host (mysql only).
	Host string `mapstructure:"host" default:"localhost"`
	// Port is the database port (mysql only).
	Port int `mapstructure:"port" default:"3306"`
	// User is the database user (mysql only).
	User string `mapstructure:"user" default:"root"`
	// Password is the database password (mysql only).
	Password string `mapstructure:"password" default:""`
	// Name is the database name, or the file path for sqlite.
	Name string `mapstructure:"name" default:""`
	// TimeoutSeconds bounds connection setup and I/O.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
	// AutoMigrate creates the history table. When false the existing table
	// is only checked, for accounts without DDL rights.
	AutoMigrate bool `mapstructure:"auto_migrate" default:"true"`
}

const (
	DriverSQLite = "sqlite"
	DriverMySQL  = "mysql"
)

// Enabled reports whether a database is configured.
func (c Config) Enabled() bool {
	return c.Name != ""
}
