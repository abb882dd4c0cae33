package hybrid

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/actionsum/auraswitch/pkg/activity"
)

type stubProbe struct {
	playing bool
	err     error
	calls   int
}

func (s *stubProbe) IsAudioPlaying() (bool, error) {
	s.calls++
	return s.playing, s.err
}

func TestAudioProbeInterface(t *testing.T) {
	var _ activity.AudioActivityProbe = (*AudioProbe)(nil)
}

func TestAudioProbePrefersFirst(t *testing.T) {
	meter := &stubProbe{playing: true}
	mpris := &stubProbe{playing: false}

	probe := NewAudioProbe(nil)
	probe.Add("pulse", meter)
	probe.Add("mpris", mpris)

	playing, err := probe.IsAudioPlaying()
	require.NoError(t, err)
	assert.True(t, playing)
	assert.Equal(t, 0, mpris.calls)
	assert.Equal(t, "pulse", probe.LastSuccessfulMethod())
	assert.Equal(t, []string{"pulse", "mpris"}, probe.Methods())
}

func TestAudioProbeFallsBack(t *testing.T) {
	meter := &stubProbe{err: errors.New("no default sink")}
	mpris := &stubProbe{playing: true}

	probe := NewAudioProbe(nil)
	probe.Add("pulse", meter)
	probe.Add("mpris", mpris)

	playing, err := probe.IsAudioPlaying()
	require.NoError(t, err)
	assert.True(t, playing)
	assert.Equal(t, "mpris", probe.LastSuccessfulMethod())
}

func TestAudioProbeAllFail(t *testing.T) {
	probe := NewAudioProbe(nil)
	_, err := probe.IsAudioPlaying()
	assert.Error(t, err)

	probe.Add("pulse", &stubProbe{err: errors.New("no default sink")})
	probe.Add("mpris", &stubProbe{err: errors.New("no session bus")})

	_, err = probe.IsAudioPlaying()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no default sink")
	assert.Contains(t, err.Error(), "no session bus")
}
