package app

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/guttosm/salespulse/config"
)

func TestInitPostgres_OpenError(t *testing.T) {
	old := sqlOpener
	sqlOpener = func(driverName, dataSourceName string) (*sql.DB, error) {
		return nil, errors.New("open failed")
	}
	t.Cleanup(func() { sqlOpener = old })

	_, err := InitPostgres(config.Config{Postgres: config.PostgresConfig{User: "u", Password: "p", Host: "h", Port: 5432, DBName: "d", SSLMode: "disable"}})
	if err == nil {
		t.Fatalf("expected error from InitPostgres when open fails")
	}
}

func TestInitPostgres_PingError(t *testing.T) {
	old := sqlOpener
	sqlOpener = func(driverName, dataSourceName string) (*sql.DB, error) {
		// Use sqlmock to return a *sql.DB whose Ping fails (enable ping monitoring)
		db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
		if err != nil {
			t.Fatalf("sqlmock new: %v", err)
		}
		// Cause Ping to fail
		mock.ExpectPing().WillReturnError(errors.New("ping failed"))
		return db, nil
	}
	t.Cleanup(func() { sqlOpener = old })

	_, err := InitPostgres(config.Config{Postgres: config.PostgresConfig{User: "u", Password: "p", Host: "h", Port: 5432, DBName: "d", SSLMode: "disable"}})
	if err == nil {
		t.Fatalf("expected ping error from InitPostgres")
	}
}

func TestInitPostgres_DSNSelection(t *testing.T) {
	fields := config.PostgresConfig{User: "u", Password: "p", Host: "h", Port: 5432, DBName: "d", SSLMode: "disable"}
	explicit := fields
	explicit.URL = "postgres://override@elsewhere:6543/other?sslmode=require"

	cases := []struct {
		name string
		pg   config.PostgresConfig
		want string
	}{
		{name: "explicit url wins", pg: explicit, want: explicit.URL},
		{name: "assembled from fields", pg: fields, want: "postgres://u:p@h:5432/d?sslmode=disable"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var gotDriver, gotDSN string
			old := sqlOpener
			sqlOpener = func(driverName, dataSourceName string) (*sql.DB, error) {
				gotDriver, gotDSN = driverName, dataSourceName
				db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
				if err != nil {
					t.Fatalf("sqlmock new: %v", err)
				}
				mock.ExpectPing()
				return db, nil
			}
			t.Cleanup(func() { sqlOpener = old })

			db, err := InitPostgres(config.Config{Postgres: tc.pg})
			if err != nil {
				t.Fatalf("InitPostgres: %v", err)
			}
			defer db.Close()
			if gotDriver != "postgres" || gotDSN != tc.want {
				t.Fatalf("opened %q with %q, want postgres with %q", gotDriver, gotDSN, tc.want)
			}
		})
	}
}
