package main

import (
	"bytes"
	"context"
	"io"
	"net"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xgd16/tspl-generator/config"
	"github.com/xgd16/tspl-generator/printer"
)

const testJob = `
label:
  width: 50
  height: 25
elements:
  - type: text
    x: 8
    y: 8
    text: hello
  - type: print
    copies: 1
`

const wantProgram = "SIZE 50 mm,25 mm\r\n" +
	"SPEED 3\r\n" +
	"DENSITY 8\r\n" +
	"GAP 3 mm,0 mm\r\n" +
	"CLS\r\n" +
	"TEXT 8,8,\"1\",0,1,1,\"hello\"\r\n" +
	"PRINT 1\r\n"

func setupFiles(t *testing.T) (configFile, jobFile string) {
	t.Helper()
	dir := t.TempDir()
	configFile = filepath.Join(dir, "tsplprint.yaml")
	jobFile = filepath.Join(dir, "job.yaml")
	cfg := "logging:\n  output: " + filepath.Join(dir, "tsplprint.log") + "\n"
	require.NoError(t, os.WriteFile(configFile, []byte(cfg), 0o644))
	require.NoError(t, os.WriteFile(jobFile, []byte(testJob), 0o644))
	return configFile, jobFile
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRender(t *testing.T) {
	configFile, jobFile := setupFiles(t)
	out, err := run(t, "render", "--config", configFile, jobFile)
	require.NoError(t, err)
	assert.Equal(t, wantProgram, out)
}

func TestRenderToFile(t *testing.T) {
	configFile, jobFile := setupFiles(t)
	target := filepath.Join(t.TempDir(), "label.prn")
	out, err := run(t, "render", "--config", configFile, "-o", target, jobFile)
	require.NoError(t, err)
	assert.Empty(t, out)

	got, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, wantProgram, string(got))
}

func TestPrintToStdout(t *testing.T) {
	configFile, jobFile := setupFiles(t)
	out, err := run(t, "print", "--config", configFile, "--copies", "2", jobFile)
	require.NoError(t, err)
	assert.Equal(t, wantProgram+"PRINT 2\r\n", out)
}

func TestRenderRejectsBadLogLevel(t *testing.T) {
	configFile, jobFile := setupFiles(t)
	_, err := run(t, "render", "--config", configFile, "--log-level", "loud", jobFile)
	assert.Error(t, err)
}

func TestRenderMissingJob(t *testing.T) {
	configFile, _ := setupFiles(t)
	_, err := run(t, "render", "--config", configFile, filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestWithDefaultPort(t *testing.T) {
	assert.Equal(t, "10.0.0.5:9100", withDefaultPort("10.0.0.5", rawPort))
	assert.Equal(t, "10.0.0.5:515", withDefaultPort("10.0.0.5:515", rawPort))
	assert.Equal(t, "printer.local:515", withDefaultPort("printer.local", lpdPort))
}

func TestOpenDeviceUsesConfiguredProtocol(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	for kind, want := range map[string]printer.Protocol{
		config.DeviceLPD: printer.ProtocolLPD,
		config.DeviceRaw: printer.ProtocolRaw,
	} {
		t.Run(kind, func(t *testing.T) {
			d := config.DeviceConfig{Kind: kind, Address: ln.Addr().String()}
			p, err := openDevice(context.Background(), d, io.Discard)
			require.NoError(t, err)
			assert.Equal(t, want, p.Protocol())
			require.NoError(t, p.CloseConnection())
		})
	}
}
