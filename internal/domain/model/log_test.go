package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogEntry_WithField(t *testing.T) {
	tests := []struct {
		name   string
		entry  *LogEntry
		key    string
		value  interface{}
		verify func(*testing.T, *LogEntry)
	}{
		{
			name:  "nil fields map is initialized",
			entry: &LogEntry{},
			key:   "mode",
			value: "density",
			verify: func(t *testing.T, e *LogEntry) {
				assert.Equal(t, "density", e.Fields["mode"])
			},
		},
		{
			name: "keeps existing fields",
			entry: &LogEntry{
				Fields: map[string]interface{}{"unit_count": 12},
			},
			key:   "components",
			value: 2,
			verify: func(t *testing.T, e *LogEntry) {
				assert.Equal(t, 12, e.Fields["unit_count"])
				assert.Equal(t, 2, e.Fields["components"])
			},
		},
		{
			name: "overwrites a field",
			entry: &LogEntry{
				Fields: map[string]interface{}{"required_base_batch_g": 1.5},
			},
			key:   "required_base_batch_g",
			value: 1.75,
			verify: func(t *testing.T, e *LogEntry) {
				assert.Equal(t, 1.75, e.Fields["required_base_batch_g"])
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.entry.WithField(tt.key, tt.value)
			assert.Same(t, tt.entry, result)
			tt.verify(t, result)
		})
	}
}

func TestLogEntry_WithFields(t *testing.T) {
	entry := &LogEntry{ActionType: "calculate"}
	entry.WithFields(map[string]interface{}{
		"mode":       "displacement_factor",
		"unit_count": 30,
	}).WithFields(map[string]interface{}{"source": SourceChat})

	assert.Len(t, entry.Fields, 3)
	assert.Equal(t, "displacement_factor", entry.Fields["mode"])
	assert.Equal(t, SourceChat, entry.Fields["source"])
}
