package lumber

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name     string
		instance int
		wantErr  bool
	}{
		{name: "zap", instance: InstanceZapLogger},
		{name: "logrus", instance: InstanceLogrusLogger},
		{name: "unknown", instance: 42, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &LoggingConfig{
				EnableConsole: true,
				ConsoleLevel:  Debug,
				EnableFile:    true,
				FileLevel:     Debug,
				FileLocation:  filepath.Join(t.TempDir(), "herald.log"),
			}
			logger, err := NewLogger(cfg, true, tt.instance)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			logger.WithFields(Fields{"build_id": "b1"}).Infof("logger %s ready", tt.name)
		})
	}
}

func TestNewLoggerNotVerbose(t *testing.T) {
	cfg := &LoggingConfig{EnableConsole: true, ConsoleLevel: Debug, FileLevel: Debug}
	_, err := NewLogger(cfg, false, InstanceZapLogger)
	require.NoError(t, err)
	assert.Equal(t, Info, cfg.ConsoleLevel)
	assert.Equal(t, Info, cfg.FileLevel)
}
