package risk

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AYEX777/Pr-sub001/internal/models"
)

type fakeAlertStore struct {
	created []models.Alert
	err     error
}

func (f *fakeAlertStore) CreateAlert(ctx context.Context, lineID string, severity models.Severity, message string) (models.Alert, error) {
	if f.err != nil {
		return models.Alert{}, f.err
	}
	alert := models.Alert{ID: "alert-1", LineID: lineID, Severity: severity, Message: message}
	f.created = append(f.created, alert)
	return alert, nil
}

type fakeSink struct {
	received []models.Alert
}

func (f *fakeSink) NotifyAlert(alert models.Alert) {
	f.received = append(f.received, alert)
}

func floatPtr(v float64) *float64 { return &v }

func TestMaybeEmitAlertStrictBoundary(t *testing.T) {
	store := &fakeAlertStore{}
	emitter := NewEmitter(store, testLogger())

	assert.Nil(t, emitter.MaybeEmitAlert(context.Background(), "line-A", 0.85, nil))
	assert.Empty(t, store.created)

	alert := emitter.MaybeEmitAlert(context.Background(), "line-A", 0.8500001, nil)
	require.NotNil(t, alert)
	assert.Equal(t, models.SeverityWarning, alert.Severity)
}

func TestMaybeEmitAlertSeverity(t *testing.T) {
	store := &fakeAlertStore{}
	emitter := NewEmitter(store, testLogger())

	warning := emitter.MaybeEmitAlert(context.Background(), "line-A", 0.90, floatPtr(120.3))
	require.NotNil(t, warning)
	assert.Equal(t, models.SeverityWarning, warning.Severity)

	critical := emitter.MaybeEmitAlert(context.Background(), "line-A", 0.95, floatPtr(12.0))
	require.NotNil(t, critical)
	assert.Equal(t, models.SeverityCritical, critical.Severity)
}

func TestMaybeEmitAlertMessage(t *testing.T) {
	store := &fakeAlertStore{}
	emitter := NewEmitter(store, testLogger())

	alert := emitter.MaybeEmitAlert(context.Background(), "line-A", 0.90, floatPtr(120.3))
	require.NotNil(t, alert)
	assert.Contains(t, alert.Message, "10 bar")
	assert.Contains(t, alert.Message, "90%")
	assert.Contains(t, alert.Message, "120 min")

	noTBE := emitter.MaybeEmitAlert(context.Background(), "line-B", 0.90, nil)
	require.NotNil(t, noTBE)
	assert.Contains(t, noTBE.Message, "TBE not applicable")
}

func TestMaybeEmitAlertInsertFailureIsBestEffort(t *testing.T) {
	store := &fakeAlertStore{err: errors.New("insert failed")}
	sink := &fakeSink{}
	emitter := NewEmitter(store, testLogger(), sink)

	alert := emitter.MaybeEmitAlert(context.Background(), "line-A", 0.97, nil)
	assert.Nil(t, alert)
	assert.Empty(t, sink.received)
}

func TestMaybeEmitAlertFansOutToSinks(t *testing.T) {
	store := &fakeAlertStore{}
	sink := &fakeSink{}
	emitter := NewEmitter(store, testLogger(), sink)

	alert := emitter.MaybeEmitAlert(context.Background(), "line-A", 0.96, floatPtr(30.0))
	require.NotNil(t, alert)
	require.Len(t, sink.received, 1)
	assert.Equal(t, *alert, sink.received[0])
}
