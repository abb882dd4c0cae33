package aura

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/actionsum/auraswitch/pkg/activity"
	"github.com/actionsum/auraswitch/pkg/utils"
)

func TestDecide(t *testing.T) {
	tests := []struct {
		name    string
		process string
		audio   bool
		idle    int64
		want    Mode
	}{
		{"VLC playing", utils.NormalizeProcessName("VLC.exe"), true, 0, ModeBreathe},
		{"Chrome playing", "chrome", true, 0, ModeBreathe},
		{"mpv playing while idle", "mpv", true, 900, ModeBreathe},
		{"PotPlayer variant", "potplayermini64", true, 0, ModeBreathe},
		{"Substring match", "google-chrome-stable", true, 0, ModeBreathe},
		{"Mixed case process", "VLC", true, 0, ModeBreathe},
		{"Discord playing", "discord", true, 0, ModeStrobe},
		{"Game playing while idle", "game", true, 1200, ModeStrobe},
		{"Silent and idle", "code", false, 601, ModeStatic},
		{"Silent at threshold", "code", false, 600, ModeStatic},
		{"Silent and active", "code", false, 0, ModeStatic},
		{"Media player silent", "vlc", false, 0, ModeStatic},
		{"Empty process playing", "", true, 0, ModeStrobe},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Decide(tt.process, tt.audio, tt.idle))
		})
	}
}

func TestDecideIsDeterministic(t *testing.T) {
	inputs := []activity.Snapshot{
		{ActiveProcess: "vlc", AudioPlaying: true},
		{ActiveProcess: "discord", AudioPlaying: true},
		{ActiveProcess: "code", IdleSeconds: 601},
		{ActiveProcess: "code"},
	}

	for _, in := range inputs {
		first := DecideSnapshot(in)
		for i := 0; i < 10; i++ {
			assert.Equal(t, first, DecideSnapshot(in), "input %+v", in)
		}
	}
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "none", ModeNone.String())
	assert.Equal(t, "AuraBreathe", ModeBreathe.String())
	assert.True(t, ModeStatic.IsStatic())
	assert.False(t, ModeStrobe.IsStatic())
	assert.NotEqual(t, ModeNone, ModeStatic)
}
