package interactive

import (
	"context"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/manifoldco/promptui"
	"github.com/sahilm/fuzzy"
	"github.com/trebuchet-org/treb-gov/internal/domain/config"
	"github.com/trebuchet-org/treb-gov/internal/domain/models"
	"github.com/trebuchet-org/treb-gov/internal/usecase"
)

// SelectorAdapter handles interactive selection
type SelectorAdapter struct {
	config *config.RuntimeConfig
}

// NewSelectorAdapter creates a new selector adapter
func NewSelectorAdapter(cfg *config.RuntimeConfig) *SelectorAdapter {
	return &SelectorAdapter{config: cfg}
}

// SelectToken selects a token from a list
func (s *SelectorAdapter) SelectToken(ctx context.Context, tokens []models.Token, prompt string) (*models.Token, error) {
	if len(tokens) == 0 {
		return nil, fmt.Errorf("no tokens provided for selection")
	}
	if len(tokens) == 1 {
		return &tokens[0], nil
	}
	if s.config.NonInteractive {
		return nil, fmt.Errorf("interactive selection not available in non-interactive mode, pass --token")
	}

	index, err := s.run(prompt, formatTokenOptions(tokens))
	if err != nil {
		return nil, err
	}
	return &tokens[index], nil
}

// SelectPool selects a deposit destination
func (s *SelectorAdapter) SelectPool(ctx context.Context, pools []models.Pool, prompt string) (models.Pool, error) {
	if len(pools) == 0 {
		return "", fmt.Errorf("no pools provided for selection")
	}
	if len(pools) == 1 {
		return pools[0], nil
	}
	if s.config.NonInteractive {
		return "", fmt.Errorf("interactive selection not available in non-interactive mode, pass --pool")
	}

	options := make([]string, len(pools))
	for i, p := range pools {
		options[i] = string(p)
	}
	index, err := s.run(prompt, options)
	if err != nil {
		return "", err
	}
	return pools[index], nil
}

func (s *SelectorAdapter) run(prompt string, options []string) (int, error) {
	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}",
		Active:   "▸ {{ . | cyan }}",
		Inactive: "  {{ . | faint }}",
		Selected: "✓ {{ . | green }}",
		Help:     color.New(color.FgYellow).Sprint("Use arrow keys to navigate, Enter to select"),
	}

	promptSelect := promptui.Select{
		Label:     prompt,
		Items:     options,
		Templates: templates,
		Size:      10,
		Searcher:  createFuzzySearchFunc(options),
	}

	index, _, err := promptSelect.Run()
	if err != nil {
		return 0, fmt.Errorf("selection cancelled: %w", err)
	}
	return index, nil
}

// formatTokenOptions creates display strings for token selection
func formatTokenOptions(tokens []models.Token) []string {
	options := make([]string, len(tokens))
	for i, token := range tokens {
		symbol := color.New(color.FgWhite, color.Bold).Sprint(token.Symbol)
		if token.IsNativeToken {
			options[i] = fmt.Sprintf("%s (%s)", symbol, color.New(color.FgYellow).Sprint("native"))
			continue
		}
		options[i] = fmt.Sprintf("%s %s (%s)", symbol, token.Name, color.New(color.FgBlue).Sprint(token.Address.Hex()))
	}
	return options
}

// createFuzzySearchFunc creates a fuzzy search function for promptui
func createFuzzySearchFunc(items []string) func(input string, index int) bool {
	return func(input string, index int) bool {
		// Empty search shows all items
		if input == "" {
			return true
		}

		input = strings.ToLower(input)
		item := strings.ToLower(items[index])

		if strings.Contains(item, input) {
			return true
		}

		pattern := fuzzy.Find(input, []string{item})
		return len(pattern) > 0
	}
}

// Ensure the adapter implements the interface
var _ usecase.TokenSelector = (*SelectorAdapter)(nil)
