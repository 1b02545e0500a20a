package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateBaseURL(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "http URL", input: "http://localhost:8080", wantErr: false},
		{name: "https URL", input: "https://analytics.example.com/v1", wantErr: false},
		{name: "missing scheme", input: "analytics.example.com", wantErr: true},
		{name: "wrong scheme", input: "ftp://example.com", wantErr: true},
		{name: "scheme only", input: "http://", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBaseURL(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidatePort(t *testing.T) {
	assert.NoError(t, ValidatePort("3000"))
	assert.NoError(t, ValidatePort(" 80 "))
	assert.Error(t, ValidatePort("0"))
	assert.Error(t, ValidatePort("65536"))
	assert.Error(t, ValidatePort("http"))
}

func TestProjectSpec_ToConfig(t *testing.T) {
	spec := &ProjectSpec{
		BaseURL:     "https://tg.example.com",
		UseMock:     false,
		Port:        9000,
		SnapshotDir: "snapshots/",
	}

	cfg := spec.ToConfig()
	require.NotNil(t, cfg.API.Mock)
	assert.False(t, *cfg.API.Mock)
	assert.Equal(t, "https://tg.example.com", cfg.API.BaseURL)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "snapshots/", cfg.Snapshot.Dir)

	// Fields the wizard does not ask about keep their defaults.
	require.NotNil(t, cfg.Cache.Enabled)
	assert.True(t, *cfg.Cache.Enabled)
}
