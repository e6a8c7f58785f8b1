package reports

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewIDIsTwoDigits(t *testing.T) {
	for i := 0; i < 100; i++ {
		id := NewID()
		assert.Len(t, id, 2)
		for _, r := range id {
			assert.True(t, r >= '0' && r <= '9', "id %q contains non-digit %q", id, r)
		}
	}
}
