package app

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srs-sudeep/vyuwer/internal/config"
	"github.com/srs-sudeep/vyuwer/internal/logger"
	"github.com/srs-sudeep/vyuwer/internal/model"
	"github.com/srs-sudeep/vyuwer/internal/repository"
)

func newTestApp(t *testing.T) (*App, *config.Config, *bytes.Buffer) {
	t.Helper()
	dir := t.TempDir()
	cfg := &config.Config{
		ProductionDB:  filepath.Join(dir, "image_features.db"),
		TestDB:        filepath.Join(dir, "test_image_features.db"),
		BusyTimeoutMs: 1000,
		JournalMode:   "WAL",
	}

	var logs bytes.Buffer
	l, err := logger.New("", &logs, &logs)
	require.NoError(t, err)

	var out bytes.Buffer
	return NewApp(cfg, l, &out), cfg, &out
}

func tableExists(t *testing.T, path, table string) bool {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		return false
	}
	conn, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	defer conn.Close()

	var name string
	err = conn.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
	if err == sql.ErrNoRows {
		return false
	}
	require.NoError(t, err)
	return true
}

func TestRunDemo(t *testing.T) {
	a, cfg, out := newTestApp(t)

	require.NoError(t, a.RunDemo(context.Background()))

	for _, path := range []string{cfg.ProductionDB, cfg.TestDB} {
		assert.True(t, tableExists(t, path, "image_features"), path)
		assert.True(t, tableExists(t, path, "image_description"), path)
	}

	line := strings.TrimSpace(out.String())
	require.True(t, strings.HasPrefix(line, "Retrieved image feature: "), line)

	var feature model.ImageFeature
	require.NoError(t, json.Unmarshal([]byte(strings.TrimPrefix(line, "Retrieved image feature: ")), &feature))
	assert.Equal(t, "1", feature.ID)
	assert.Equal(t, "camera_1", feature.CameraID)
	assert.Equal(t, []model.Keypoint{{X: 0, Y: 0, Size: 1, Angle: 0}, {X: 1, Y: 1, Size: 2, Angle: 45}}, feature.Keypoints)
	assert.Equal(t, []byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, feature.Descriptors)
	require.NotNil(t, feature.ImgFilename)
	assert.Equal(t, "image_1.jpg", *feature.ImgFilename)
}

func TestRunDemo_SecondRunFails(t *testing.T) {
	a, _, _ := newTestApp(t)

	require.NoError(t, a.RunDemo(context.Background()))

	err := a.RunDemo(context.Background())
	assert.ErrorIs(t, err, repository.ErrUniqueViolation)
}

func TestShowFeature_NotFound(t *testing.T) {
	a, _, out := newTestApp(t)
	ctx := context.Background()

	require.NoError(t, a.InitTables(ctx, TargetTest))
	require.NoError(t, a.ShowFeature(ctx, TargetTest, "camera_9"))

	assert.Equal(t, "No image feature found for the given camera_id.\n", out.String())
}

func TestDeleteFeatures(t *testing.T) {
	a, _, out := newTestApp(t)
	ctx := context.Background()

	require.NoError(t, a.RunDemo(ctx))
	out.Reset()

	require.NoError(t, a.DeleteFeatures(ctx, TargetProduction, "camera_1"))
	assert.Equal(t, "Deleted 1 image feature(s).\n", out.String())

	out.Reset()
	require.NoError(t, a.ShowFeature(ctx, TargetProduction, "camera_1"))
	assert.Contains(t, out.String(), "No image feature found")
}

func TestClearTest(t *testing.T) {
	a, cfg, _ := newTestApp(t)
	ctx := context.Background()

	require.NoError(t, a.InitTables(ctx, TargetProduction))
	require.NoError(t, a.InitTables(ctx, TargetTest))
	require.NoError(t, a.ClearTest(ctx))

	assert.False(t, tableExists(t, cfg.TestDB, "image_features"))
	assert.True(t, tableExists(t, cfg.TestDB, "image_description"))
	assert.True(t, tableExists(t, cfg.ProductionDB, "image_features"))
}

func TestUnknownTarget(t *testing.T) {
	a, _, _ := newTestApp(t)

	err := a.InitTables(context.Background(), "staging")
	assert.ErrorContains(t, err, `unknown storage target "staging"`)
}

func TestRootCommand(t *testing.T) {
	a, cfg, out := newTestApp(t)
	ctx := context.Background()

	cmd := NewRootCommand(a)
	cmd.SetArgs([]string{"init", "--target", "test"})
	require.NoError(t, cmd.ExecuteContext(ctx))
	assert.True(t, tableExists(t, cfg.TestDB, "image_features"))
	assert.False(t, tableExists(t, cfg.ProductionDB, "image_features"))

	cmd = NewRootCommand(a)
	cmd.SetArgs([]string{"get", "--target", "test", "--camera", "camera_1"})
	require.NoError(t, cmd.ExecuteContext(ctx))
	assert.Contains(t, out.String(), "No image feature found")

	cmd = NewRootCommand(a)
	cmd.SetArgs([]string{})
	require.NoError(t, cmd.ExecuteContext(ctx))
	assert.Contains(t, out.String(), "Retrieved image feature:")

	cmd = NewRootCommand(a)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"delete"})
	assert.Error(t, cmd.ExecuteContext(ctx))
}
