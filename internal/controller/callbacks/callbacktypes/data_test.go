package callbacktypes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenDataRoundTrip(t *testing.T) {
	id, offset, err := ParseOpen(OpenData("42", 3))
	require.NoError(t, err)
	assert.Equal(t, "42", id)
	assert.Equal(t, 3, offset)

	id, offset, err = ParseOpen(OpenData("gym:7", 0))
	require.NoError(t, err)
	assert.Equal(t, "gym:7", id)
	assert.Equal(t, 0, offset)
}

func TestParseOpenRejectsBadData(t *testing.T) {
	for _, data := range []string{"open:", "open:42", "open::3", "open:42:x", "open:42:7", "open:42:-1", "book"} {
		_, _, err := ParseOpen(data)
		assert.Error(t, err, data)
	}
}

func TestParseCancel(t *testing.T) {
	id, err := ParseCancel(CancelData("r-1"))
	require.NoError(t, err)
	assert.Equal(t, "r-1", id)

	_, err = ParseCancel("cancel:")
	assert.Error(t, err)
	_, err = ParseCancel("noop")
	assert.Error(t, err)
}
