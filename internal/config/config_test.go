package config

import (
	"strings"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"memory needs nothing", Config{StoreBackend: BackendMemory}, ""},
		{"redis needs nothing", Config{StoreBackend: BackendRedis}, ""},
		{"file with path", Config{StoreBackend: BackendFile, StorePath: "agora.json"}, ""},
		{"file without path", Config{StoreBackend: BackendFile}, "STORE_PATH"},
		{"sqlite without path", Config{StoreBackend: BackendSQLite}, "SQLITE_PATH"},
		{"postgres without db name", Config{StoreBackend: BackendPostgres}, "DB_NAME"},
		{"postgres dev default password", Config{StoreBackend: BackendPostgres, DBName: "agora", DBPassword: "password", Env: "development"}, ""},
		{"postgres prod default password", Config{StoreBackend: BackendPostgres, DBName: "agora", DBPassword: "password", Env: "production"}, "DB_PASSWORD"},
		{"unknown backend", Config{StoreBackend: "carrier-pigeon"}, "unknown STORE_BACKEND"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestPostgresDSN(t *testing.T) {
	cfg := Config{
		DBHost:     "db.internal",
		DBPort:     "5433",
		DBUser:     "agora",
		DBPassword: "s3cret",
		DBName:     "forum",
		DBSSLMode:  "require",
	}
	want := "host=db.internal port=5433 user=agora password=s3cret dbname=forum sslmode=require"
	if got := cfg.PostgresDSN(); got != want {
		t.Errorf("PostgresDSN() = %q, want %q", got, want)
	}
}
