// Command rat is the command-line client for ratd: a thin wrapper around
// rpc.Client that exercises the gateway from a terminal the same way any
// other consumer would (§6, §12).
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/emesal/ratatoskr/pkg/provider/types"
	"github.com/emesal/ratatoskr/pkg/rpc"
)

// DefaultAddress is used when neither --address nor RATD_ADDRESS is set.
const DefaultAddress = "127.0.0.1:9741"

var address string

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:          "rat",
	Short:        "Command-line client for the ratd model gateway",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&address, "address", "", "ratd address (default: $RATD_ADDRESS or "+DefaultAddress+")")

	chatCmd.Flags().String("model", "", "model string, e.g. anthropic:claude-sonnet-4-6 or registry:budget/agentic")
	chatCmd.MarkFlagRequired("model")
	chatCmd.Flags().Bool("stream", false, "stream the response token by token")

	embedCmd.Flags().String("model", "", "model id to embed with")
	embedCmd.MarkFlagRequired("model")

	nliCmd.Flags().String("model", "", "model id to run NLI with")
	nliCmd.MarkFlagRequired("model")
	nliCmd.Flags().String("hypothesis", "", "the hypothesis to test against the premise")
	nliCmd.MarkFlagRequired("hypothesis")

	tokenizeCmd.Flags().String("model", "", "model id to count tokens for")
	tokenizeCmd.MarkFlagRequired("model")

	modelsCmd.AddCommand(modelsListCmd, modelsStatusCmd)

	rootCmd.AddCommand(chatCmd, embedCmd, nliCmd, tokenizeCmd, modelsCmd, resolveCmd, capabilitiesCmd, healthCmd)
}

func resolveAddress() string {
	if address != "" {
		return address
	}
	if env := os.Getenv("RATD_ADDRESS"); env != "" {
		return env
	}
	return DefaultAddress
}

func dial() (*rpc.Client, error) {
	return rpc.Dial(resolveAddress())
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func readPromptArg(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("reading prompt from stdin: %w", err)
	}
	return string(data), nil
}

var chatCmd = &cobra.Command{
	Use:   "chat [message]",
	Short: "Send a chat message and print the response",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		model, _ := cmd.Flags().GetString("model")
		stream, _ := cmd.Flags().GetBool("stream")

		message, err := readPromptArg(args)
		if err != nil {
			return err
		}

		client, err := dial()
		if err != nil {
			return fmt.Errorf("connecting to ratd: %w", err)
		}
		defer client.Close()

		ctx := context.Background()
		messages := []types.Message{types.NewUserMessage(message)}
		opts := types.ChatOptions{Model: model}

		if !stream {
			resp, err := client.Chat(ctx, messages, opts)
			if err != nil {
				return err
			}
			fmt.Println(resp.Content)
			return nil
		}

		chatStream, err := client.ChatStream(ctx, messages, opts)
		if err != nil {
			return err
		}
		defer chatStream.Close()

		for {
			event, err := chatStream.Next(ctx)
			if err == io.EOF {
				fmt.Println()
				return nil
			}
			if err != nil {
				return err
			}
			if event.Type == types.ChatEventContent {
				fmt.Print(event.Text)
			}
		}
	},
}

var embedCmd = &cobra.Command{
	Use:   "embed [text]",
	Short: "Embed text and print the resulting vector",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		model, _ := cmd.Flags().GetString("model")
		text, err := readPromptArg(args)
		if err != nil {
			return err
		}

		client, err := dial()
		if err != nil {
			return fmt.Errorf("connecting to ratd: %w", err)
		}
		defer client.Close()

		result, err := client.Embed(context.Background(), model, text)
		if err != nil {
			return err
		}
		return printJSON(result)
	},
}

var nliCmd = &cobra.Command{
	Use:   "nli [premise]",
	Short: "Run natural-language inference against a hypothesis",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		model, _ := cmd.Flags().GetString("model")
		hypothesis, _ := cmd.Flags().GetString("hypothesis")
		premise, err := readPromptArg(args)
		if err != nil {
			return err
		}

		client, err := dial()
		if err != nil {
			return fmt.Errorf("connecting to ratd: %w", err)
		}
		defer client.Close()

		result, err := client.InferNli(context.Background(), model, premise, hypothesis)
		if err != nil {
			return err
		}
		return printJSON(result)
	},
}

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [text]",
	Short: "Count the tokens a model would consume for text",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		model, _ := cmd.Flags().GetString("model")
		text, err := readPromptArg(args)
		if err != nil {
			return err
		}

		client, err := dial()
		if err != nil {
			return fmt.Errorf("connecting to ratd: %w", err)
		}
		defer client.Close()

		count, err := client.CountTokens(context.Background(), model, text)
		if err != nil {
			return err
		}
		fmt.Println(count)
		return nil
	},
}

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "Inspect the gateway's model registry",
}

var modelsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every registered model",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := dial()
		if err != nil {
			return fmt.Errorf("connecting to ratd: %w", err)
		}
		defer client.Close()

		models, err := client.ListModels()
		if err != nil {
			return err
		}
		return printJSON(models)
	},
}

var modelsStatusCmd = &cobra.Command{
	Use:   "status <id>",
	Short: "Show whether a model id is registered",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := dial()
		if err != nil {
			return fmt.Errorf("connecting to ratd: %w", err)
		}
		defer client.Close()

		model, found, err := client.ModelStatus(args[0])
		if err != nil {
			return err
		}
		if !found {
			fmt.Printf("%s: not found\n", args[0])
			return nil
		}
		return printJSON(model)
	},
}

var resolveCmd = &cobra.Command{
	Use:   "resolve <model-string>",
	Short: "Resolve a model string (including registry: presets) to a model id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := dial()
		if err != nil {
			return fmt.Errorf("connecting to ratd: %w", err)
		}
		defer client.Close()

		resolved, err := client.ResolvePreset(args[0])
		if err != nil {
			return err
		}
		return printJSON(resolved)
	},
}

var capabilitiesCmd = &cobra.Command{
	Use:   "capabilities",
	Short: "List the capabilities the gateway currently supports",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := dial()
		if err != nil {
			return fmt.Errorf("connecting to ratd: %w", err)
		}
		defer client.Close()

		return printJSON(client.Capabilities().List())
	},
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check daemon liveness",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := dial()
		if err != nil {
			return fmt.Errorf("connecting to ratd: %w", err)
		}
		defer client.Close()

		health, err := client.Health()
		if err != nil {
			return err
		}
		return printJSON(health)
	},
}
