package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUpdate(t *testing.T) {
	s := New(2)
	s.Update(2)
	s.Update(2)
	s.SetWsClients(1)

	snap := s.Snapshot()
	assert.Equal(t, uint64(2), snap.Frames)
	assert.Equal(t, uint64(4), snap.DrawCalls)
	assert.Equal(t, 2, snap.Objects)
	assert.Equal(t, 1, snap.WsClients)
	assert.GreaterOrEqual(t, snap.Uptime, 0.0)
}
