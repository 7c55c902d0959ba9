package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseStatus(t *testing.T) {
	for _, s := range []string{"new", "no_answer", "not_interested", "interested"} {
		got, ok := ParseStatus(s)
		assert.True(t, ok, s)
		assert.Equal(t, Status(s), got)
	}

	for _, s := range []string{"", "bogus", "NEW", "done", "new "} {
		_, ok := ParseStatus(s)
		assert.False(t, ok, s)
	}
}

func TestStatusesOrder(t *testing.T) {
	assert.Equal(t, []Status{StatusNew, StatusNoAnswer, StatusNotInterested, StatusInterested}, Statuses())
}
