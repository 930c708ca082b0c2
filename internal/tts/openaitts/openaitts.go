package openaitts

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/vteach/qa-backend/internal/config"
	"github.com/vteach/qa-backend/internal/tts"
	"github.com/vteach/qa-backend/pkg/logger_i"
)

type openAISynthesizer struct {
	client   openai.Client
	audioDir string
	logger   *logger_i.Logger
}

// New returns a Synthesizer that writes MP3 files into audioDir. The
// directory is created if it does not exist.
func New(apiKey string, httpClient *http.Client, audioDir string) (tts.Synthesizer, error) {
	if err := os.MkdirAll(audioDir, 0o755); err != nil {
		return nil, fmt.Errorf("unable to create audio directory %s: %w", audioDir, err)
	}
	client := openai.NewClient(
		option.WithAPIKey(apiKey),
		option.WithHTTPClient(httpClient),
	)
	return &openAISynthesizer{
		client:   client,
		audioDir: audioDir,
		logger:   logger_i.NewLogger("openaiTTS"),
	}, nil
}

func (s *openAISynthesizer) Convert(ctx context.Context, text string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, config.SynthesisTimeout)
	defer cancel()

	startTime := time.Now()
	resp, err := s.client.Audio.Speech.New(ctx, openai.AudioSpeechNewParams{
		Model: config.OpenAISpeechModel,
		Voice: openai.AudioSpeechNewParamsVoiceAlloy,
		Input: text,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", tts.ErrSynthesis, err)
	}
	defer resp.Body.Close()

	fileName := uuid.New().String() + ".mp3"
	filePath := filepath.Join(s.audioDir, fileName)
	out, err := os.Create(filePath)
	if err != nil {
		return "", fmt.Errorf("%w: unable to create %s: %v", tts.ErrSynthesis, filePath, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		os.Remove(filePath)
		return "", fmt.Errorf("%w: unable to write %s: %v", tts.ErrSynthesis, filePath, err)
	}

	s.logger.Debug("synthesized speech", "file", fileName, "timeElapsed", time.Since(startTime).String())
	return fileName, nil
}
