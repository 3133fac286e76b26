package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/shenikar/incident_reporting_system/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestIncidentsXLSX(t *testing.T) {
	created := time.Date(2025, 3, 1, 10, 30, 0, 0, time.UTC)
	incidents := []*models.Incident{
		{
			ID:          7,
			UserID:      "user-1",
			Type:        models.TypeFire,
			Title:       "Fire on Main St",
			Description: "Smoke visible",
			Latitude:    -33.92,
			Longitude:   18.42,
			Urgency:     models.UrgencyCritical,
			Status:      models.StatusPending,
			CreatedAt:   created,
			UpdatedAt:   created,
		},
	}

	data, err := IncidentsXLSX(incidents)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetName}, f.GetSheetList())

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, IncidentHeader, rows[0])
	assert.Equal(t, "7", rows[1][0])
	assert.Equal(t, "Fire on Main St", rows[1][3])
	assert.Equal(t, "critical", rows[1][7])
	assert.Equal(t, "2025-03-01T10:30:00Z", rows[1][9])
}

func TestIncidentsXLSX_Empty(t *testing.T) {
	data, err := IncidentsXLSX(nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
