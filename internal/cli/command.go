package cli

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"codeberg.org/snonux/pagelingo/internal"
)

// CreateRootCommand creates and configures the root cobra command
func CreateRootCommand(flags *Flags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "pagelingo [file]",
		Short: "Web page translation backend",
		Long: `pagelingo translates whole web pages without disturbing their structure.

It splits page text into provider-safe chunks, translates them through
Gemini (with OpenAI and HuggingFace opus-mt as fallbacks) and
redistributes the translation back onto the original text fragments.

Examples:
  pagelingo --serve                       # Run the HTTP backend for the extension
  pagelingo -l french page.html           # Translate an HTML file to French
  pagelingo -l german notes.txt -o out.txt`,
		Args:    cobra.MaximumNArgs(1),
		Version: internal.Version,
	}

	setupFlags(rootCmd, flags)

	return rootCmd
}

func setupFlags(cmd *cobra.Command, flags *Flags) {
	// Global flags
	cmd.PersistentFlags().StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.pagelingo.yaml)")

	// Local flags
	cmd.Flags().BoolVar(&flags.Serve, "serve", false, "Run the HTTP backend server")
	cmd.Flags().StringVar(&flags.Listen, "listen", flags.Listen, "Listen address for --serve")
	cmd.Flags().StringVarP(&flags.TargetLanguage, "language", "l", flags.TargetLanguage, "Target language (e.g. spanish, french, japanese)")
	cmd.Flags().StringVarP(&flags.OutputFile, "output", "o", "", "Write translated text to file instead of stdout")
	cmd.Flags().BoolVar(&flags.ListLanguages, "list-languages", false, "List supported target languages")
	cmd.Flags().IntVar(&flags.MaxChunkChars, "max-chunk-chars", flags.MaxChunkChars, "Maximum characters per translation chunk")
	cmd.Flags().IntVar(&flags.Concurrency, "concurrency", flags.Concurrency, "Concurrent in-flight chunk translations (1-16)")

	// Provider flags
	cmd.Flags().StringVar(&flags.GeminiModel, "gemini-model", flags.GeminiModel, "Gemini model for the primary provider")
	cmd.Flags().StringVar(&flags.OpenAIModel, "openai-model", flags.OpenAIModel, "OpenAI model for the alternate provider")

	// Bind flags to viper
	bindFlagsToViper(cmd)
}

func bindFlagsToViper(cmd *cobra.Command) {
	viper.BindPFlag("server.listen", cmd.Flags().Lookup("listen"))
	viper.BindPFlag("translate.language", cmd.Flags().Lookup("language"))
	viper.BindPFlag("translate.max_chunk_chars", cmd.Flags().Lookup("max-chunk-chars"))
	viper.BindPFlag("translate.concurrency", cmd.Flags().Lookup("concurrency"))
	viper.BindPFlag("provider.gemini_model", cmd.Flags().Lookup("gemini-model"))
	viper.BindPFlag("provider.openai_model", cmd.Flags().Lookup("openai-model"))
}

// InitConfig initializes viper configuration
func InitConfig(cfgFile string) {
	// Credentials may live in a local .env file, matching the original
	// backend deployment.
	_ = godotenv.Load()

	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting home directory: %v\n", err)
			return
		}

		// Search config in home directory with name ".pagelingo" (without extension)
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".pagelingo")
	}

	// Environment variables
	viper.SetEnvPrefix("PAGELINGO")
	viper.AutomaticEnv()

	// Read config file
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// GetGeminiKey retrieves the Gemini API key from environment or config
func GetGeminiKey() string {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		return key
	}
	return viper.GetString("provider.gemini_key")
}

// GetOpenAIKey retrieves the OpenAI API key from environment or config
func GetOpenAIKey() string {
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return key
	}
	return viper.GetString("provider.openai_key")
}

// GetHuggingFaceToken retrieves the HuggingFace API token from
// environment or config
func GetHuggingFaceToken() string {
	if token := os.Getenv("HUGGINGFACE_API_TOKEN"); token != "" {
		return token
	}
	return viper.GetString("provider.huggingface_token")
}
