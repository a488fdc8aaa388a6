package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCloneSessionsIsDeep(t *testing.T) {
	original := []*ClassSession{
		{ID: "1", Spots: 5, Day: DayIndex(2)},
		nil,
		{ID: "2", Spots: 1, Date: "2025-03-07"},
	}

	copied := CloneSessions(original)
	require.Len(t, copied, 2)

	copied[0].Spots = 0
	*copied[0].Day = 6

	assert.Equal(t, 5, original[0].Spots)
	assert.Equal(t, 2, *original[0].Day)
	assert.Nil(t, copied[1].Day)
}

func TestStartMinutes(t *testing.T) {
	s := &ClassSession{StartTime: "07:30"}
	minutes, ok := s.StartMinutes()
	assert.True(t, ok)
	assert.Equal(t, 450, minutes)

	_, ok = (&ClassSession{StartTime: "soon"}).StartMinutes()
	assert.False(t, ok)
}
