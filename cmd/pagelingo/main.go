package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"codeberg.org/snonux/pagelingo/internal/align"
	"codeberg.org/snonux/pagelingo/internal/cli"
	"codeberg.org/snonux/pagelingo/internal/fragment"
	"codeberg.org/snonux/pagelingo/internal/provider"
	"codeberg.org/snonux/pagelingo/internal/server"
	"codeberg.org/snonux/pagelingo/internal/translate"
)

func main() {
	// Create flags instance
	flags := cli.NewFlags()

	// Create root command
	rootCmd := cli.CreateRootCommand(flags)

	// Set up command initialization
	cobra.OnInitialize(func() {
		cli.InitConfig(flags.CfgFile)
	})

	// Set the run function
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runCommand(cmd, args, flags)
	}

	// Execute command
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runCommand(cmd *cobra.Command, args []string, flags *cli.Flags) error {
	// Handle --list-languages flag
	if flags.ListLanguages {
		names := provider.SupportedLanguages()
		sort.Strings(names)
		for _, name := range names {
			fmt.Println(name)
		}
		return nil
	}

	orchestrator, err := buildOrchestrator(cmd.Context(), flags, cmd)
	if err != nil {
		return err
	}

	// HTTP backend mode
	if flags.Serve {
		listen := flags.Listen
		if !cmd.Flags().Changed("listen") && viper.IsSet("server.listen") {
			listen = viper.GetString("server.listen")
		}
		return server.New(orchestrator, listen).ListenAndServe()
	}

	if len(args) == 0 {
		return fmt.Errorf("please provide a file to translate or use --serve")
	}

	if !cmd.Flags().Changed("language") && viper.IsSet("translate.language") {
		flags.TargetLanguage = viper.GetString("translate.language")
	}

	return translateFile(cmd.Context(), orchestrator, flags, args[0])
}

// buildOrchestrator wires the configured providers into the pipeline.
func buildOrchestrator(ctx context.Context, flags *cli.Flags, cmd *cobra.Command) (*translate.Orchestrator, error) {
	config := provider.DefaultConfig()
	config.GeminiKey = cli.GetGeminiKey()
	config.OpenAIKey = cli.GetOpenAIKey()
	config.HuggingFaceToken = cli.GetHuggingFaceToken()
	config.GeminiModel = flags.GeminiModel
	config.OpenAIModel = flags.OpenAIModel

	// Use config file values if not overridden by flags
	if !cmd.Flags().Changed("gemini-model") && viper.IsSet("provider.gemini_model") {
		config.GeminiModel = viper.GetString("provider.gemini_model")
	}
	if !cmd.Flags().Changed("openai-model") && viper.IsSet("provider.openai_model") {
		config.OpenAIModel = viper.GetString("provider.openai_model")
	}

	providers, err := provider.NewProviders(ctx, config)
	if err != nil {
		return nil, err
	}
	if len(providers) == 0 {
		fmt.Fprintln(os.Stderr, "Warning: no provider credentials configured")
		fmt.Fprintln(os.Stderr, "Set GEMINI_API_KEY, OPENAI_API_KEY or HUGGINGFACE_API_TOKEN")
	}

	opts := &translate.Options{
		MaxChunkChars: flags.MaxChunkChars,
		Concurrency:   flags.Concurrency,
	}
	if !cmd.Flags().Changed("max-chunk-chars") && viper.IsSet("translate.max_chunk_chars") {
		opts.MaxChunkChars = viper.GetInt("translate.max_chunk_chars")
	}
	if !cmd.Flags().Changed("concurrency") && viper.IsSet("translate.concurrency") {
		opts.Concurrency = viper.GetInt("translate.concurrency")
	}

	return translate.New(providers, opts), nil
}

// translateFile translates one file and writes the rewritten text to
// stdout or the output file. HTML files are broken into their visible
// text nodes; plain text files use one fragment per non-empty line.
func translateFile(ctx context.Context, orchestrator *translate.Orchestrator, flags *cli.Flags, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open input file: %w", err)
	}
	defer file.Close()

	var fragments []fragment.TextFragment
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		fragments, err = fragment.FromHTML(file)
		if err != nil {
			return err
		}
	default:
		data, err := io.ReadAll(file)
		if err != nil {
			return fmt.Errorf("failed to read input file: %w", err)
		}
		fragments = textFragments(string(data))
	}

	if len(fragments) == 0 {
		return fmt.Errorf("no translatable text found in %s", path)
	}

	fmt.Fprintf(os.Stderr, "Translating %d fragments to %s...\n", len(fragments), flags.TargetLanguage)

	instructions, _, err := orchestrator.TranslatePage(ctx, fragments, flags.TargetLanguage)
	if err != nil {
		return err
	}

	output := align.Apply(fragments, instructions) + "\n"
	if flags.OutputFile != "" {
		if err := os.WriteFile(flags.OutputFile, []byte(output), 0644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Translation written to %s\n", flags.OutputFile)
		return nil
	}

	fmt.Print(output)
	return nil
}

// textFragments captures one fragment per non-empty line of cleaned
// plain text.
func textFragments(content string) []fragment.TextFragment {
	var texts []string
	for _, line := range strings.Split(content, "\n") {
		if cleaned := fragment.CleanText(line); cleaned != "" {
			texts = append(texts, cleaned)
		}
	}
	return fragment.Capture(texts)
}
