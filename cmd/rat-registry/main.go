// Command rat-registry is the maintainer tool for the model/preset registry
// document ratd loads at startup (§4.6, §6): add and inspect models, set
// presets, validate the document, and pull model ids from providers that
// expose a list-models endpoint.
package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/emesal/ratatoskr/pkg/provider/types"
	"github.com/emesal/ratatoskr/pkg/registry"
)

var registryPath string

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:          "rat-registry",
	Short:        "Maintain the ratd model/preset registry document",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&registryPath, "registry", "", "path to the registry JSON document")
	rootCmd.MarkPersistentFlagRequired("registry")

	modelAddCmd.Flags().String("id", "", "model id")
	modelAddCmd.MarkFlagRequired("id")
	modelAddCmd.Flags().String("provider", "", "provider name, e.g. anthropic")
	modelAddCmd.MarkFlagRequired("provider")
	modelAddCmd.Flags().StringSlice("capabilities", nil, "comma-separated capability list, e.g. chat,chat_streaming")
	modelAddCmd.Flags().Int64("context-window", 0, "context window in tokens (0 means unset)")
	modelAddCmd.Flags().Int64("max-output-tokens", 0, "max output tokens (0 means unset)")
	modelAddCmd.Flags().Float64("prompt-price", 0, "prompt price per million tokens (0 means unset)")
	modelAddCmd.Flags().Float64("completion-price", 0, "completion price per million tokens (0 means unset)")

	presetSetCmd.Flags().String("tier", "", "preset tier, e.g. budget")
	presetSetCmd.MarkFlagRequired("tier")
	presetSetCmd.Flags().String("slot", "", "preset slot, e.g. agentic")
	presetSetCmd.MarkFlagRequired("slot")
	presetSetCmd.Flags().String("model", "", "model id the preset resolves to")
	presetSetCmd.MarkFlagRequired("model")

	fetchCmd.Flags().String("provider", "", "ollama or openrouter")
	fetchCmd.MarkFlagRequired("provider")
	fetchCmd.Flags().String("base-url", "", "override the provider's default endpoint")

	modelsCmd.AddCommand(modelAddCmd, modelsListCmd)
	presetsCmd.AddCommand(presetSetCmd, presetsListCmd)
	rootCmd.AddCommand(modelsCmd, presetsCmd, validateCmd, fetchCmd)
}

func loadRegistry() (*registry.Registry, error) {
	reg := registry.New()
	if _, err := os.Stat(registryPath); err != nil {
		if os.IsNotExist(err) {
			return reg, nil
		}
		return nil, err
	}
	if err := reg.LoadFile(registryPath); err != nil {
		return nil, fmt.Errorf("loading %s: %w", registryPath, err)
	}
	return reg, nil
}

func saveRegistry(reg *registry.Registry) error {
	if err := reg.SaveFile(registryPath); err != nil {
		return fmt.Errorf("saving %s: %w", registryPath, err)
	}
	return nil
}

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "Manage registered models",
}

var modelAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add or merge a model into the registry",
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := loadRegistry()
		if err != nil {
			return err
		}

		id, _ := cmd.Flags().GetString("id")
		providerName, _ := cmd.Flags().GetString("provider")
		capNames, _ := cmd.Flags().GetStringSlice("capabilities")
		contextWindow, _ := cmd.Flags().GetInt64("context-window")
		maxOutputTokens, _ := cmd.Flags().GetInt64("max-output-tokens")
		promptPrice, _ := cmd.Flags().GetFloat64("prompt-price")
		completionPrice, _ := cmd.Flags().GetFloat64("completion-price")

		caps := make([]types.Capability, 0, len(capNames))
		for _, name := range capNames {
			caps = append(caps, types.Capability(strings.TrimSpace(name)))
		}

		meta := types.ModelMetadata{
			Info: types.ModelInfo{
				ID:           id,
				Provider:     providerName,
				Capabilities: types.NewCapabilities(caps...),
			},
		}
		if contextWindow > 0 {
			meta.Info.ContextWindow = &contextWindow
		}
		if maxOutputTokens > 0 {
			meta.MaxOutputTokens = &maxOutputTokens
		}
		if promptPrice > 0 || completionPrice > 0 {
			pricing := &types.Pricing{}
			if promptPrice > 0 {
				pricing.PromptPerMTok = &promptPrice
			}
			if completionPrice > 0 {
				pricing.CompletionPerMTok = &completionPrice
			}
			meta.Pricing = pricing
		}

		reg.Merge(meta)
		if err := saveRegistry(reg); err != nil {
			return err
		}
		fmt.Printf("merged model %s\n", id)
		return nil
	},
}

var modelsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered models",
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := loadRegistry()
		if err != nil {
			return err
		}
		return printJSON(reg.List())
	},
}

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "Manage tier/slot presets",
}

var presetSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Set a tier/slot preset to resolve to a model",
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := loadRegistry()
		if err != nil {
			return err
		}

		tier, _ := cmd.Flags().GetString("tier")
		slot, _ := cmd.Flags().GetString("slot")
		model, _ := cmd.Flags().GetString("model")

		reg.SetPreset(tier, slot, types.PresetEntry{ModelID: model})
		if err := saveRegistry(reg); err != nil {
			return err
		}
		fmt.Printf("set %s/%s -> %s\n", tier, slot, model)
		return nil
	},
}

var presetsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List presets as a tier/slot -> model table",
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := loadRegistry()
		if err != nil {
			return err
		}
		buf := &strings.Builder{}
		if err := reg.Save(buf); err != nil {
			return err
		}
		var doc registry.Document
		if err := json.Unmarshal([]byte(buf.String()), &doc); err != nil {
			return err
		}
		return printJSON(doc.Presets)
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check that every preset resolves to a known model",
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := loadRegistry()
		if err != nil {
			return err
		}
		if err := reg.ValidatePresets(); err != nil {
			return err
		}
		fmt.Println("ok")
		return nil
	},
}

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch model ids from a provider's list-models endpoint and merge them in",
	Long: "Fetch supports ollama (/api/tags) and openrouter (/models). Anthropic and " +
		"HuggingFace have no general-purpose list-models endpoint to fetch from, so " +
		"models for those providers must be added with 'rat-registry models add'.",
	RunE: func(cmd *cobra.Command, args []string) error {
		providerName, _ := cmd.Flags().GetString("provider")
		baseURL, _ := cmd.Flags().GetString("base-url")

		ids, err := fetchProviderModelIDs(providerName, baseURL)
		if err != nil {
			return err
		}

		reg, err := loadRegistry()
		if err != nil {
			return err
		}
		for _, id := range ids {
			reg.Merge(types.ModelMetadata{Info: types.ModelInfo{ID: id, Provider: providerName}})
		}
		if err := saveRegistry(reg); err != nil {
			return err
		}
		fmt.Printf("merged %d models from %s\n", len(ids), providerName)
		return nil
	},
}

func fetchProviderModelIDs(providerName, baseURL string) ([]string, error) {
	switch providerName {
	case "ollama":
		if baseURL == "" {
			baseURL = "http://localhost:11434"
		}
		return fetchOllamaModelIDs(baseURL)
	case "openrouter":
		if baseURL == "" {
			baseURL = "https://openrouter.ai/api/v1"
		}
		return fetchOpenRouterModelIDs(baseURL)
	default:
		return nil, fmt.Errorf("fetch is not supported for provider %q (supported: ollama, openrouter)", providerName)
	}
}

func fetchOllamaModelIDs(baseURL string) ([]string, error) {
	resp, err := http.Get(strings.TrimSuffix(baseURL, "/") + "/api/tags")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ollama /api/tags returned %d", resp.StatusCode)
	}

	var body struct {
		Models []struct {
			Name string `json:"name"`
		} `json:"models"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, err
	}

	ids := make([]string, len(body.Models))
	for i, m := range body.Models {
		ids[i] = m.Name
	}
	return ids, nil
}

func fetchOpenRouterModelIDs(baseURL string) ([]string, error) {
	resp, err := http.Get(strings.TrimSuffix(baseURL, "/") + "/models")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("openrouter /models returned %d", resp.StatusCode)
	}

	var body struct {
		Data []struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, err
	}

	ids := make([]string, len(body.Data))
	for i, m := range body.Data {
		ids[i] = m.ID
	}
	return ids, nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

