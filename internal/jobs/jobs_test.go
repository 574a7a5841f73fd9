package jobs_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"orderdesk/internal/adapters/out/memory"
	"orderdesk/internal/core/application/usecases/queries"
	"orderdesk/internal/core/application/views"
	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/jobs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func seed(t *testing.T, store *memory.OrderStore, name string, eggs int) {
	t.Helper()
	draft, err := order.NewDraft(order.NewOrderInput{CustomerName: name, EggBoxes: &eggs}, order.DefaultCatalog())
	require.NoError(t, err)
	_, err = store.Create(t.Context(), draft)
	require.NoError(t, err)
}

func TestManagementRefreshJob_Run(t *testing.T) {
	store := memory.NewOrderStore()
	set := views.NewOrderSet(nil)
	handler := queries.NewGetManagementViewQueryHandler(views.NewPullSynchronizer(store, set))
	var buf bytes.Buffer
	job := jobs.NewManagementRefreshJob(handler, "*/5 * * * * *", newLogger(&buf))

	seed(t, store, "Ana", 2)
	seed(t, store, "Marc", 3)

	job.Run(t.Context())

	assert.Equal(t, 2, set.Len())
	assert.Equal(t, 5, set.Statistics().PendingEggBoxes)
}

// brokenStore fails every read.
type brokenStore struct{ *memory.OrderStore }

func (brokenStore) ListByCreatedDesc(context.Context) ([]*order.Order, error) {
	return nil, errors.New("store offline")
}

func TestManagementRefreshJob_FailedRunKeepsView(t *testing.T) {
	store := memory.NewOrderStore()
	seed(t, store, "Ana", 1)
	set := views.NewOrderSet(nil)
	_, err := views.NewPullSynchronizer(store, set).Refresh(t.Context())
	require.NoError(t, err)

	handler := queries.NewGetManagementViewQueryHandler(views.NewPullSynchronizer(brokenStore{store}, set))
	var buf bytes.Buffer
	job := jobs.NewManagementRefreshJob(handler, "*/5 * * * * *", newLogger(&buf))

	job.Run(t.Context())

	assert.Equal(t, 1, set.Len())
	assert.Contains(t, buf.String(), "store offline")
}

func TestStatisticsReportJob_Run(t *testing.T) {
	store := memory.NewOrderStore()
	seed(t, store, "Ana", 2)
	set := views.NewOrderSet(nil)
	pull := views.NewPullSynchronizer(store, set)
	_, err := pull.Refresh(t.Context())
	require.NoError(t, err)

	var buf bytes.Buffer
	job := jobs.NewStatisticsReportJob(queries.NewGetManagementViewQueryHandler(pull), "0 * * * * *", newLogger(&buf))

	job.Run(t.Context())

	var line map[string]any
	for _, raw := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(raw), &entry))
		if entry["msg"] == "Order statistics" {
			line = entry
			break
		}
	}
	require.NotNil(t, line)
	assert.Equal(t, "Order statistics", line["msg"])
	assert.EqualValues(t, 1, line["pendingCount"])
	assert.EqualValues(t, 2, line["pendingEggBoxes"])
	assert.EqualValues(t, "statistics_report_job", line["component"])
}

func TestJobManager_StartAndStop(t *testing.T) {
	store := memory.NewOrderStore()
	handler := queries.NewGetManagementViewQueryHandler(views.NewPullSynchronizer(store, views.NewOrderSet(nil)))
	var buf bytes.Buffer

	t.Run("refresh disabled", func(t *testing.T) {
		jm := jobs.NewJobManager(handler, "", "0 * * * * *", newLogger(&buf))
		require.NoError(t, jm.StartAll())
		jm.StopAll()
		assert.NotContains(t, buf.String(), "Management refresh job started")
	})

	t.Run("invalid schedule", func(t *testing.T) {
		jm := jobs.NewJobManager(handler, "every now and then", "0 * * * * *", newLogger(&buf))
		err := jm.StartAll()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "management refresh job")
	})

	t.Run("both jobs", func(t *testing.T) {
		buf.Reset()
		jm := jobs.NewJobManager(handler, "*/10 * * * * *", "0 * * * * *", newLogger(&buf))
		require.NoError(t, jm.StartAll())
		jm.StopAll()
		assert.Contains(t, buf.String(), "Management refresh job started")
		assert.Contains(t, buf.String(), "Statistics report job stopped")
	})
}
