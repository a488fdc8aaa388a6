package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const catalogJSON = `{
	"sessions": [
		{"id": "1", "name": "Joga", "time": "18:00", "duration": 60, "instructor": "Anna",
		 "room": "A", "level": "Początkujący", "spots": 5, "day": 0},
		{"id": "2", "name": "Boks", "time": "07:30", "duration": 45, "instructor": "Marek",
		 "spots": 0, "date": "2025-03-07", "isSubstitution": true, "substitutedFor": "Piotr"}
	],
	"reservations": {
		"ola": [{"id": "r1", "classId": "1", "activityName": "Joga", "date": "2025-03-03", "time": "18:00", "duration": 60}]
	}
}`

func writeCatalog(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestFileSource(t *testing.T) {
	src := NewFile(writeCatalog(t, catalogJSON))

	sessions, err := src.Sessions(context.Background())
	require.NoError(t, err)
	require.Len(t, sessions, 2)

	require.NotNil(t, sessions[0].Day)
	assert.Equal(t, 0, *sessions[0].Day)
	assert.False(t, sessions[0].HasDate())
	assert.True(t, sessions[1].IsSubstituted())
	assert.Equal(t, "2025-03-07", sessions[1].Date)

	reservations, err := src.Reservations(context.Background(), "ola")
	require.NoError(t, err)
	require.Len(t, reservations, 1)
	assert.Equal(t, "Joga", reservations[0].ActivityName)

	none, err := src.Reservations(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Empty(t, none)

	_, err = src.Reservations(context.Background(), "")
	assert.ErrorIs(t, err, ErrNoVisitor)
}

func TestFileSourceAcceptsBareArray(t *testing.T) {
	src := NewFile(writeCatalog(t, `[{"id": "1", "name": "Joga", "time": "9:00", "day": 3}]`))

	sessions, err := src.Sessions(context.Background())
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, "9:00", sessions[0].StartTime)
}

func TestFileSourceErrors(t *testing.T) {
	_, err := NewFile(filepath.Join(t.TempDir(), "missing.json")).Sessions(context.Background())
	assert.Error(t, err)

	_, err = NewFile(writeCatalog(t, `{"sessions": 5}`)).Sessions(context.Background())
	assert.Error(t, err)
}
