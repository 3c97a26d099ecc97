package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cuemby/eventchannel/pkg/config"
	"github.com/cuemby/eventchannel/pkg/types"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newResetCmd(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{}
	addResetFlags(cmd)
	require.NoError(t, cmd.Flags().Parse(args))
	return cmd
}

func TestResetRequest(t *testing.T) {
	floor := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	three := 3
	zero := 0
	id := int64(42)

	tests := []struct {
		name    string
		args    []string
		want    types.ResetRequest
		wantErr bool
	}{
		{
			name: "channel only",
			args: []string{"--channel", "orders"},
			want: types.ResetRequest{ChannelName: "orders"},
		},
		{
			name: "date floor and retry ceiling",
			args: []string{"--channel", "orders", "--since", "2026-01-01T00:00:00Z", "--max-retries", "3"},
			want: types.ResetRequest{ChannelName: "orders", DateFloor: &floor, RetryCeiling: &three},
		},
		{
			name: "zero retries is a filter",
			args: []string{"--channel", "orders", "--max-retries", "0"},
			want: types.ResetRequest{ChannelName: "orders", RetryCeiling: &zero},
		},
		{
			name: "single event",
			args: []string{"--channel", "orders", "--event-id", "42"},
			want: types.ResetRequest{ChannelName: "orders", EventID: &id},
		},
		{
			name:    "bad date",
			args:    []string{"--channel", "orders", "--since", "yesterday"},
			wantErr: true,
		},
		{
			name:    "blank channel",
			args:    []string{"--channel", " "},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resetRequest(newResetCmd(t, tt.args...))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want.ChannelName, got.ChannelName)
			assert.Equal(t, tt.want.RetryCeiling, got.RetryCeiling)
			assert.Equal(t, tt.want.EventID, got.EventID)
			if tt.want.DateFloor == nil {
				assert.Nil(t, got.DateFloor)
			} else {
				require.NotNil(t, got.DateFloor)
				assert.True(t, tt.want.DateFloor.Equal(*got.DateFloor))
			}
		})
	}
}

func newServeCmd(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{}
	addServeFlags(cmd)
	require.NoError(t, cmd.Flags().Parse(args))
	return cmd
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig(newServeCmd(t))
	require.NoError(t, err)
	assert.Equal(t, config.DefaultGRPCAddr, cfg.Server.GRPCAddr)
	assert.Equal(t, config.DefaultHTTPAddr, cfg.Server.HTTPAddr)
	assert.Empty(t, cfg.Channels)
}

func TestLoadConfigFlagsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "eventd.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  grpc_addr: 0.0.0.0:9000
  log_level: info
channels:
  - name: orders
    persistent: true
`), 0o600))

	cfg, err := loadConfig(newServeCmd(t, "--config", path, "--log-level", "debug", "--data-dir", "/tmp/events"))
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:9000", cfg.Server.GRPCAddr)
	assert.Equal(t, "debug", cfg.Server.LogLevel)
	assert.Equal(t, "/tmp/events", cfg.Server.DataDir)
	require.Len(t, cfg.Channels, 1)
	assert.True(t, cfg.Channels[0].Persistent)
}

func TestLoadConfigRejectsBadLevel(t *testing.T) {
	_, err := loadConfig(newServeCmd(t, "--log-level", "loud"))
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}
