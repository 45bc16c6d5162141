package audio

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/harunnryd/shoki/internal/config"
	shokiErrors "github.com/harunnryd/shoki/internal/errors"

	"github.com/stretchr/testify/require"
)

func newTestSpeaker(t *testing.T, synthCmd string) *Speaker {
	t.Helper()

	s, err := NewSpeaker(config.AudioConfig{
		SynthCmd:  synthCmd,
		OutputDir: t.TempDir(),
		Playback:  false,
	})
	require.NoError(t, err)
	return s
}

func TestNewSpeaker_RejectsEmptyCommand(t *testing.T) {
	_, err := NewSpeaker(config.AudioConfig{SynthCmd: "   "})
	require.Error(t, err)
	require.True(t, shokiErrors.IsCategory(err, shokiErrors.ErrInvalidInput))
}

func TestSynthesize_WritesOutputFile(t *testing.T) {
	s := newTestSpeaker(t, `sh -c "touch {out}"`)

	path, err := s.Synthesize(context.Background(), "The meeting room is booked.")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(filepath.Base(path), "shoki-"))
	require.True(t, strings.HasSuffix(path, ".wav"))

	_, err = os.Stat(path)
	require.NoError(t, err)
}

func TestSynthesize_EmptyAfterCleaning(t *testing.T) {
	s := newTestSpeaker(t, "true")

	_, err := s.Synthesize(context.Background(), "  \n\t ")
	require.Error(t, err)
	require.True(t, shokiErrors.IsCategory(err, shokiErrors.ErrUnavailable))
}

func TestSynthesize_CommandFailureIsUnavailable(t *testing.T) {
	s := newTestSpeaker(t, "false")

	_, err := s.Synthesize(context.Background(), "hello")
	require.Error(t, err)
	require.True(t, shokiErrors.IsCategory(err, shokiErrors.ErrUnavailable))
}

func TestSpeak_SkipsPlaybackWhenDisabled(t *testing.T) {
	s := newTestSpeaker(t, "true")

	path, err := s.Speak(context.Background(), "hello there")
	require.NoError(t, err)
	require.NotEmpty(t, path)
}
