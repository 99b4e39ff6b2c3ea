// Package mysql registers the MySQL dialector with the gorm adapter.
package mysql

import (
	"fmt"

	driver "github.com/go-sql-driver/mysql"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	dbconfig "github.com/tigerroll/flclient/pkg/flclient/adapter/database/config"
	gormadapter "github.com/tigerroll/flclient/pkg/flclient/adapter/database/gorm"
)

// DBType is the database type handled by this package.
const DBType = "mysql"

func init() {
	gormadapter.RegisterDialector(DBType, NewDialector)
}

// NewDialector creates a MySQL dialector.
func NewDialector(cfg dbconfig.DatabaseConfig) (gorm.Dialector, error) {
	return mysql.Open(ConnectionString(cfg)), nil
}

// ConnectionString generates the DSN for cfg with parseTime enabled.
func ConnectionString(c dbconfig.DatabaseConfig) string {
	dsn := driver.NewConfig()
	dsn.User = c.User
	dsn.Passwd = c.Password
	dsn.Net = "tcp"
	dsn.Addr = fmt.Sprintf("%s:%d", c.Host, c.Port)
	dsn.DBName = c.Database
	dsn.ParseTime = true
	return dsn.FormatDSN()
}
