package audio

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/harunnryd/shoki/internal/config"
	shokiErrors "github.com/harunnryd/shoki/internal/errors"

	"github.com/google/shlex"
	"github.com/google/uuid"
)

// Speaker converts text to a playable audio file through a configured
// synthesizer command. Failures are reported as ErrUnavailable so callers
// fall back to text-only output; audio is never fatal to a turn.
type Speaker struct {
	synthArgs []string
	outputDir string
	playback  bool
	timeout   time.Duration
}

// Placeholders recognized in the synthesizer command line.
const (
	placeholderText = "{text}"
	placeholderOut  = "{out}"
)

func NewSpeaker(cfg config.AudioConfig) (*Speaker, error) {
	args, err := shlex.Split(cfg.SynthCmd)
	if err != nil {
		return nil, shokiErrors.Wrap(err, "parse synth command")
	}
	if len(args) == 0 {
		return nil, shokiErrors.InvalidInput("empty synth command")
	}

	outputDir := strings.TrimSpace(cfg.OutputDir)
	if outputDir == "" {
		outputDir = os.TempDir()
	}

	timeout, err := config.DurationOrDefault(cfg.SynthTimeout, config.DefaultAudioSynthTimeout)
	if err != nil {
		return nil, shokiErrors.Wrap(err, "parse synth timeout")
	}

	return &Speaker{
		synthArgs: args,
		outputDir: outputDir,
		playback:  cfg.Playback,
		timeout:   timeout,
	}, nil
}

// Synthesize renders the text to a wav file and returns its path. The text
// is cleaned first; text that is empty after cleaning is unavailable, not
// an error worth surfacing.
func (s *Speaker) Synthesize(ctx context.Context, text string) (string, error) {
	cleaned := CleanText(text)
	if cleaned == "" {
		return "", shokiErrors.Unavailable("no speakable text")
	}

	outPath := filepath.Join(s.outputDir, fmt.Sprintf("shoki-%s.wav", uuid.NewString()))

	argv := make([]string, 0, len(s.synthArgs)+1)
	textInline := false
	outInline := false
	for _, arg := range s.synthArgs {
		switch {
		case strings.Contains(arg, placeholderText):
			argv = append(argv, strings.ReplaceAll(arg, placeholderText, cleaned))
			textInline = true
		case strings.Contains(arg, placeholderOut):
			argv = append(argv, strings.ReplaceAll(arg, placeholderOut, outPath))
			outInline = true
		default:
			argv = append(argv, arg)
		}
	}
	if !outInline {
		argv = append(argv, outPath)
	}

	runCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, argv[0], argv[1:]...)
	if !textInline {
		cmd.Stdin = strings.NewReader(cleaned)
	}

	if out, err := cmd.CombinedOutput(); err != nil {
		slog.Warn("Speech synthesis failed", "command", argv[0], "error", err, "output", strings.TrimSpace(string(out)))
		return "", shokiErrors.Unavailable("speech synthesis failed")
	}

	slog.Info("Audio synthesized", "path", outPath)
	return outPath, nil
}

// Play plays the audio file with the platform's audio player. A playback
// failure does not invalidate the synthesized file.
func (s *Speaker) Play(ctx context.Context, path string) error {
	var argv []string
	switch runtime.GOOS {
	case "darwin":
		argv = []string{"afplay", path}
	case "linux":
		argv = []string{"aplay", path}
	case "windows":
		argv = []string{"powershell", "-c", fmt.Sprintf("(New-Object Media.SoundPlayer '%s').PlaySync()", path)}
	default:
		return shokiErrors.Unavailable(fmt.Sprintf("audio playback not supported on %s", runtime.GOOS))
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	if err := cmd.Run(); err != nil {
		return shokiErrors.Wrap(err, "audio playback")
	}
	return nil
}

// Speak synthesizes the text and, when playback is enabled, plays it.
// Returns the audio file path; the file survives playback failures.
func (s *Speaker) Speak(ctx context.Context, text string) (string, error) {
	path, err := s.Synthesize(ctx, text)
	if err != nil {
		return "", err
	}

	if s.playback {
		if err := s.Play(ctx, path); err != nil {
			slog.Warn("Audio playback failed", "path", path, "error", err)
		}
	}

	return path, nil
}
