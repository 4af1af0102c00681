package iosource

import (
	_ "github.com/duckdb/duckdb-go/v2"
	_ "github.com/microsoft/go-mssqldb"
	_ "modernc.org/sqlite"
)
