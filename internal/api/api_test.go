package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hiveden/hwsnap/internal/hw"
	"github.com/hiveden/hwsnap/internal/metrics"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type mockProvider struct {
	storageErr error
}

func (m *mockProvider) Memory() (hw.MemoryInfo, error) {
	return hw.MemoryInfo{TotalMB: 4096, FreeMB: 1024, InUse: 75}, nil
}

func (m *mockProvider) Storage(path string) (hw.StorageInfo, error) {
	if m.storageErr != nil {
		return hw.StorageInfo{}, m.storageErr
	}
	return hw.StorageInfo{Path: path, TotalMB: 2048, FreeMB: 1024, InUse: 50}, nil
}

func (m *mockProvider) CPU() (hw.CPUInfo, error) {
	info := hw.CPUInfo{Cores: 4}
	copy(info.Vendor[:], "GenuineIntel")
	return info, nil
}

func newTestHandler(p hw.Provider) *APIHandler {
	h := NewAPIHandler(hw.NewCollector(hw.WithProvider(p), hw.WithStoragePath("/")), nil)
	h.inventory = func() (*hw.HardwareInfo, error) {
		return &hw.HardwareInfo{TotalCores: 4, Disks: []hw.DiskInfo{{Name: "sda"}}}, nil
	}
	h.hostInfo = func() (*hw.SystemInfo, error) {
		return &hw.SystemInfo{OS: "linux", Distro: "arch"}, nil
	}
	return h
}

func serve(r http.Handler, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	r.ServeHTTP(w, req)
	return w
}

func TestGetSnapshot(t *testing.T) {
	r := NewRouter(newTestHandler(&mockProvider{}), nil)

	w := serve(r, "/snapshot")
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "GenuineIntel", body["cpu"]["vendor"])
	assert.EqualValues(t, 4096, body["ram"]["total_mb"])
	assert.Equal(t, "/", body["hdd"]["path"])
}

func TestGetSnapshotError(t *testing.T) {
	r := NewRouter(newTestHandler(&mockProvider{storageErr: errors.New("statfs failed")}), nil)

	w := serve(r, "/snapshot")
	require.Equal(t, http.StatusInternalServerError, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body["error"], "statfs failed")
}

func TestGetHardwareInfo(t *testing.T) {
	r := NewRouter(newTestHandler(&mockProvider{}), nil)

	w := serve(r, "/hw")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total_cores":4`)
	assert.Contains(t, w.Body.String(), `"sda"`)
}

func TestGetHardwareInfoError(t *testing.T) {
	h := newTestHandler(&mockProvider{})
	h.inventory = func() (*hw.HardwareInfo, error) { return nil, errors.New("sysfs unavailable") }

	w := serve(NewRouter(h, nil), "/hw")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestGetSystemInfo(t *testing.T) {
	w := serve(NewRouter(newTestHandler(&mockProvider{}), nil), "/system")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"distro":"arch"`)
}

func TestHealth(t *testing.T) {
	w := serve(NewRouter(newTestHandler(&mockProvider{}), nil), "/healthz")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	h := newTestHandler(&mockProvider{})

	reg := prometheus.NewRegistry()
	reg.MustRegister(metrics.NewSnapshotCollector(h.collector, nil))

	w := serve(NewRouter(h, reg), "/metrics")
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "hwsnap_memory_total_megabytes 4096"))
}

func TestMetricsEndpointDisabled(t *testing.T) {
	w := serve(NewRouter(newTestHandler(&mockProvider{}), nil), "/metrics")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
