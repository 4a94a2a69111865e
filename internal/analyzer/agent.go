package analyzer

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/agent-api/core/pkg/agent"
	"github.com/agent-api/core/types"
	"github.com/agent-api/ollama"
)

// OllamaExtractor runs extraction against a local Ollama vision model
// through an agent-api agent.
type OllamaExtractor struct {
	agent *agent.DefaultAgent
}

// NewOllamaExtractor initializes the vision agent against a running Ollama
// instance.
func NewOllamaExtractor(ctx context.Context, logger *slog.Logger, baseURL string, port int, model string) (*OllamaExtractor, error) {
	opts := &ollama.ProviderOpts{
		Logger:  logger,
		BaseURL: baseURL,
		Port:    port,
	}
	provider := ollama.NewProvider(opts)
	provider.UseModel(ctx, &types.Model{ID: model})

	agentConf := &agent.NewAgentConfig{
		Provider:     provider,
		Logger:       logger,
		SystemPrompt: "You are a visual analysis assistant that reads live stream overlays and returns strict JSON. Never include commentary outside the JSON object.",
	}

	return &OllamaExtractor{agent: agent.NewAgent(agentConf)}, nil
}

// Extract sends one frame through the vision agent and returns the raw model
// text. The agent API takes an image path, so the frame bytes go through a
// temp file.
func (e *OllamaExtractor) Extract(ctx context.Context, prompt string, image []byte) (string, error) {
	tmp, err := os.CreateTemp("", "streampulse-frame-*.png")
	if err != nil {
		return "", fmt.Errorf("failed to stage frame for agent: %v", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(image); err != nil {
		tmp.Close()
		return "", fmt.Errorf("failed to write staged frame '%s': %v", filepath.Base(tmpPath), err)
	}
	if err := tmp.Close(); err != nil {
		return "", err
	}

	response := e.agent.Run(
		ctx,
		agent.WithInput(prompt),
		agent.WithImagePath(tmpPath),
	)
	if response.Err != nil {
		return "", response.Err
	}

	if len(response.Messages) == 0 {
		return "", fmt.Errorf("no response messages received from model")
	}

	// Get the model's response (not the prompt)
	return response.Messages[len(response.Messages)-1].Content, nil
}
