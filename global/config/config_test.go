package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Murilinho145SG/Routs/global/env"
	"github.com/stretchr/testify/assert"
)

func TestLoadDefaultConfig(t *testing.T) {
	dir := t.TempDir()
	content := "logger:\n  level: DEBUG\nweb:\n  name: edge\n  addr: 127.0.0.1:9000\n"
	assert.NoError(t, os.WriteFile(filepath.Join(dir, "default.yaml"), []byte(content), 0644))

	old := env.ConfigPath
	env.SetDefaultConfigPath(dir)
	defer env.SetDefaultConfigPath(old)

	defaultConfig := DefaultConfig{}
	assert.NoError(t, LoadDefaultConfig(&defaultConfig))
	assert.Equal(t, "DEBUG", defaultConfig.LoggerConfig.Level)
	assert.Equal(t, "edge", defaultConfig.WebConfig.Name)
	assert.Equal(t, "127.0.0.1:9000", defaultConfig.WebConfig.Addr)
}
