package shared

import (
	"database/sql"
	"fmt"
	"net"
	"net/url"

	"github.com/go-sql-driver/mysql"
	_ "github.com/mattn/go-sqlite3"
)

var sqliteOptions = url.Values{
	// enforce FOREIGN KEY constraints; sqlite leaves them off by default
	"_foreign_keys": []string{"on"},
	// sleep when locked instead of failing with SQLITE_BUSY
	"_busy_timeout": []string{"5000"},
}

// DSN returns the driver name and data source name for the configured store.
//
// mysql DSNs are assembled from host, name, user and password; a host without a port gets 3306.
func DSN(cfg DatabaseConfig) (string, string, error) {
	switch cfg.Driver {
	case DriverSQLite, "":
		if cfg.Path == "" {
			return "", "", fmt.Errorf("%w: empty sqlite path", ErrInvalidConfig)
		}
		return DriverSQLite, fmt.Sprintf("file:%s?%s", cfg.Path, sqliteOptions.Encode()), nil
	case DriverMySQL:
		addr := cfg.Host
		if _, _, err := net.SplitHostPort(addr); err != nil {
			addr = net.JoinHostPort(addr, "3306")
		}

		mc := mysql.NewConfig()
		mc.Net = "tcp"
		mc.Addr = addr
		mc.DBName = cfg.Name
		mc.User = cfg.User
		mc.Passwd = cfg.Password
		mc.Params = map[string]string{"charset": "utf8mb4"}
		return DriverMySQL, mc.FormatDSN(), nil
	default:
		return "", "", fmt.Errorf("%w: unsupported driver %q", ErrInvalidConfig, cfg.Driver)
	}
}

// NewDatabase opens a connection to the configured database and verifies it with a ping.
// Returns an open database connection or an error if connection fails.
func NewDatabase(cfg DatabaseConfig) (*sql.DB, error) {
	driver, dsn, err := DSN(cfg)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// ConfigureDatabase sets connection limits for the database.
// Zero values leave the driver defaults in place.
func ConfigureDatabase(db *sql.DB, maxOpenConns, maxIdleConns int) {
	if maxOpenConns > 0 {
		db.SetMaxOpenConns(maxOpenConns)
	}
	if maxIdleConns > 0 {
		db.SetMaxIdleConns(maxIdleConns)
	}
}
