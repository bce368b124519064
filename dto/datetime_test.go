package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDateTimeWireFormat(t *testing.T) {
	dt := DateTime(time.Date(2026, 3, 14, 15, 9, 26, 0, time.Local))

	b, err := json.Marshal(dt)
	require.NoError(t, err)
	require.Equal(t, `"2026-03-14 15:09:26"`, string(b))

	var back DateTime
	require.NoError(t, json.Unmarshal(b, &back))
	require.True(t, back.Time().Equal(dt.Time()))
}

func TestParseDateTimeRejectsOtherLayouts(t *testing.T) {
	_, err := ParseDateTime("2026-03-14T15:09:26Z")
	require.Error(t, err)

	_, err = ParseDateTime("2026-03-14 15:09:26")
	require.NoError(t, err)
}
