package locale

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFor(t *testing.T) {
	assert.Equal(t, "Zarezerwuj", For("pl").BookButton)
	assert.Equal(t, "Zarezerwuj", For("pl-PL").BookButton)
	assert.Equal(t, "Book now", For("en").BookButton)
	assert.Equal(t, "Book now", For("en-GB").BookButton)
	assert.Equal(t, "Zarezerwuj", For("").BookButton)
	assert.Equal(t, "Zarezerwuj", For("not a tag!").BookButton)
}

func TestWeekdayIsCapitalised(t *testing.T) {
	assert.Equal(t, "Poniedziałek", For("pl").Weekday(time.Monday))
	assert.Equal(t, "Środa", For("pl").Weekday(time.Wednesday))
	assert.Equal(t, "Sunday", For("en").Weekday(time.Sunday))
}
