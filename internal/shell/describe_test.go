package shell

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDescribe(t *testing.T) {
	s, _, clock := newTestSession(t)

	tests := []struct {
		name   string
		screen Screen
		setup  func()
		want   []string
	}{
		{
			name:   "validation before first run",
			screen: ScreenValidation,
			want:   []string{"[Validation]", "status:   Passed", "last run: —"},
		},
		{
			name:   "validation after a run",
			screen: ScreenValidation,
			setup:  func() { s.RunValidation() },
			want:   []string{"status:   Failed", "last run: 09:26:53"},
		},
		{
			name:   "tooling log",
			screen: ScreenTooling,
			setup:  func() { clock.Advance(time.Second); s.RunToolchain() },
			want:   []string{"runs: 1", "[09:26:54] Router matched: JS runtime"},
		},
		{
			name:   "workflow",
			screen: ScreenWorkflow,
			want:   []string{"Pending", "Parse Intent", "Execute + Verify"},
		},
		{
			name:   "datavault",
			screen: ScreenDataVault,
			want:   []string{"snapshots: 12", "memory:    1.8 GB", "retention: 30 days"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.setup != nil {
				tt.setup()
			}
			out := Describe(s.Snapshot(), tt.screen, s.FormatTime)
			for _, w := range tt.want {
				assert.Contains(t, out, w)
			}
		})
	}
}
