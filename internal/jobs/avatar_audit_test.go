package jobs

import (
	"context"
	"errors"
	"testing"

	"myapp_backend/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type stubFiles struct {
	paths []string
	err   error
}

func (s stubFiles) ListFiles() ([]string, error) { return s.paths, s.err }

type stubAvatars struct {
	paths []string
	err   error
}

func (s stubAvatars) AvatarPaths(context.Context) ([]string, error) { return s.paths, s.err }

func TestAvatarAudit_RunOnce(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	job := NewAvatarAuditJob(
		stubFiles{paths: []string{"/uploads/a.png", "/uploads/b.png", "/uploads/c.png"}},
		stubAvatars{paths: []string{"/uploads/b.png", "/uploads/gone.png"}},
		zap.New(core),
		&config.Config{},
	)

	report, err := job.RunOnce(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, report.Files)
	assert.Equal(t, 2, report.Referenced)
	assert.Equal(t, []string{"/uploads/a.png", "/uploads/c.png"}, report.Orphans)
	assert.Equal(t, []string{"/uploads/gone.png"}, report.Missing)
	assert.Equal(t, 2, logs.FilterMessage("Orphaned avatar file").Len())
}

func TestAvatarAudit_Errors(t *testing.T) {
	boom := errors.New("boom")

	job := NewAvatarAuditJob(stubFiles{err: boom}, stubAvatars{}, zap.NewNop(), &config.Config{})
	_, err := job.RunOnce(context.Background())
	assert.ErrorIs(t, err, boom)

	job = NewAvatarAuditJob(stubFiles{}, stubAvatars{err: boom}, zap.NewNop(), &config.Config{})
	_, err = job.RunOnce(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestAvatarAudit_Schedule(t *testing.T) {
	disabled := NewAvatarAuditJob(stubFiles{}, stubAvatars{}, zap.NewNop(), &config.Config{})
	assert.NoError(t, disabled.SetupAndStart())
	disabled.Stop()

	bad := NewAvatarAuditJob(stubFiles{}, stubAvatars{}, zap.NewNop(), &config.Config{AvatarAuditJobSchedule: "not a schedule"})
	assert.Error(t, bad.SetupAndStart())

	daily := NewAvatarAuditJob(stubFiles{}, stubAvatars{}, zap.NewNop(), &config.Config{AvatarAuditJobSchedule: "@daily"})
	require.NoError(t, daily.SetupAndStart())
	daily.Stop()
}

func TestCronLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := NewCronLogger(zap.New(core))

	l.Info("tick", "entry", 1, "dangling")
	l.Error(errors.New("bad"), "failed")

	require.Equal(t, 2, logs.Len())
	first := logs.All()[0].ContextMap()
	assert.EqualValues(t, 1, first["entry"])
	assert.Equal(t, "MISSING_VALUE", first["dangling"])
	assert.Equal(t, "bad", logs.All()[1].ContextMap()["error"])
}
