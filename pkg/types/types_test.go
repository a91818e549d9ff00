package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTaskStateRowStateLabel(t *testing.T) {
	success := "success"
	empty := ""

	tests := []struct {
		name  string
		state *string
		want  string
	}{
		{name: "state present", state: &success, want: "success"},
		{name: "null state", state: nil, want: "none"},
		{name: "empty state", state: &empty, want: "none"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := TaskStateRow{DagID: "etl_daily", TaskID: "extract", State: tt.state}
			assert.Equal(t, tt.want, row.StateLabel())
		})
	}
}
