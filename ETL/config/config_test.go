package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LilVoxy/comm_star_schema/ETL/models"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultETLConfig, cfg)
}

func TestLoadConfigOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "etl.json")
	content := `{
		"input_path": "comms.csv",
		"snapshot_path": "out.snap",
		"enable_olap_load": true,
		"olap_config": {"host": "db", "port": 3307}
	}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "comms.csv", cfg.InputPath)
	assert.Equal(t, DefaultETLConfig.OutputPath, cfg.OutputPath)
	assert.Equal(t, "out.snap", cfg.SnapshotPath)
	assert.True(t, cfg.EnableOLAPLoad)
	assert.Equal(t, "db", cfg.OLAPConfig.Host)
	assert.Equal(t, 3307, cfg.OLAPConfig.Port)
	assert.Equal(t, "root", cfg.OLAPConfig.User)
	assert.Equal(t, SourceCSV, cfg.SourceType())
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{"), 0o644))
	_, err = LoadConfig(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := GetConfig()
	assert.NoError(t, cfg.Validate())

	noInput := GetConfig()
	noInput.InputPath = ""
	assert.Error(t, noInput.Validate())

	noOutput := GetConfig()
	noOutput.OutputPath = ""
	assert.Error(t, noOutput.Validate())

	mysqlSource := GetConfig()
	mysqlSource.Source.Type = "MySQL"
	assert.NoError(t, mysqlSource.Validate())
	mysqlSource.Source.Table = ""
	assert.Error(t, mysqlSource.Validate())

	unknown := GetConfig()
	unknown.Source.Type = "parquet"
	assert.ErrorIs(t, unknown.Validate(), models.ErrUnsupportedSource)
}

func TestDSN(t *testing.T) {
	dsn := DatabaseConfig{Host: "db", Port: 3307, User: "etl", Password: "secret", DBName: "analytics"}.DSN()

	parsed, err := mysql.ParseDSN(dsn)
	require.NoError(t, err)
	assert.Equal(t, "etl", parsed.User)
	assert.Equal(t, "secret", parsed.Passwd)
	assert.Equal(t, "tcp", parsed.Net)
	assert.Equal(t, "db:3307", parsed.Addr)
	assert.Equal(t, "analytics", parsed.DBName)
	assert.True(t, parsed.ParseTime)
}

func TestCloseDatabaseNil(t *testing.T) {
	assert.NoError(t, CloseDatabase(nil))
}
