package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"codeberg.org/snonux/wordcycle/internal"
)

// CreateRootCommand creates and configures the root cobra command
func CreateRootCommand(flags *Flags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "wordcycle",
		Short: "Timed vocabulary flashcards",
		Long: `wordcycle cycles through a vocabulary list in a small window: it shows
a word, reveals its reading and meaning after a delay, then moves on.

Words live in a CSV file with the columns word, reading and meaning.

Examples:
  wordcycle                          # Launch the flashcard window (default)
  wordcycle --import n5.csv          # Use n5.csv as the word file
  wordcycle --import words.txt       # Import "word = reading = meaning" lines
  wordcycle --list                   # Print the current word list
  wordcycle --anki --deck-name N5    # Export the word list as an Anki package`,
		Args:    cobra.NoArgs,
		Version: internal.Version,
	}

	// Set up flags
	setupFlags(rootCmd, flags)

	return rootCmd
}

// DefaultDataDir is where settings and the default word file live.
func DefaultDataDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "state", "wordcycle")
}

func setupFlags(cmd *cobra.Command, flags *Flags) {
	// Global flags
	cmd.PersistentFlags().StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.wordcycle.yaml)")
	cmd.PersistentFlags().BoolVarP(&flags.Verbose, "verbose", "v", false, "Verbose logging")

	// Local flags
	cmd.Flags().StringVar(&flags.DataDir, "data-dir", DefaultDataDir(), "Directory holding config.json and the default words.csv")
	cmd.Flags().StringVarP(&flags.WordFile, "words", "w", "", "Word file to use for this run (not saved to the settings)")
	cmd.Flags().StringVar(&flags.ImportFile, "import", "", "Import a word list (.csv becomes the word file, other files are read as text)")
	cmd.Flags().BoolVar(&flags.ListWords, "list", false, "Print the word list and exit")
	cmd.Flags().BoolVar(&flags.Archive, "archive", false, "Copy the word file into the archive directory")
	cmd.Flags().BoolVar(&flags.GenerateAnki, "anki", false, "Generate Anki import file (APKG format by default, use --anki-csv for CSV)")
	cmd.Flags().BoolVar(&flags.AnkiCSV, "anki-csv", false, "Generate CSV format instead of APKG when using --anki")
	cmd.Flags().StringVar(&flags.DeckName, "deck-name", flags.DeckName, "Deck name for APKG export")
	cmd.Flags().StringVarP(&flags.OutputPath, "output", "o", "", "Anki export path (default: <deck name>.apkg or .csv)")

	// Bind flags to viper
	bindFlagsToViper(cmd)
}

func bindFlagsToViper(cmd *cobra.Command) {
	viper.BindPFlag("data.directory", cmd.Flags().Lookup("data-dir"))
	viper.BindPFlag("words.file", cmd.Flags().Lookup("words"))
	viper.BindPFlag("anki.deck_name", cmd.Flags().Lookup("deck-name"))
	viper.BindPFlag("log.verbose", cmd.PersistentFlags().Lookup("verbose"))
}

// InitConfig initializes viper configuration
func InitConfig(cfgFile string) {
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

		// Search config in home directory with name ".wordcycle" (without extension)
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".wordcycle")
	}

	// Environment variables, e.g. WORDCYCLE_DATA_DIRECTORY
	viper.SetEnvPrefix("WORDCYCLE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Read config file
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// ApplyConfig copies values from the config file and environment into
// flags the user did not set on the command line.
func ApplyConfig(cmd *cobra.Command, flags *Flags) {
	if !cmd.Flags().Changed("data-dir") {
		if dir := viper.GetString("data.directory"); dir != "" {
			flags.DataDir = expandHome(dir)
		}
	}
	if !cmd.Flags().Changed("words") {
		if file := viper.GetString("words.file"); file != "" {
			flags.WordFile = expandHome(file)
		}
	}
	if !cmd.Flags().Changed("deck-name") {
		if name := viper.GetString("anki.deck_name"); name != "" {
			flags.DeckName = name
		}
	}
	if !cmd.PersistentFlags().Changed("verbose") {
		flags.Verbose = viper.GetBool("log.verbose")
	}
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
