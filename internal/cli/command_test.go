package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"codeberg.org/snonux/wordcycle/internal"
)

// resetViper restores the global viper instance after a test.
func resetViper(t *testing.T) {
	t.Helper()

	originalConfig := viper.New()
	*originalConfig = *viper.GetViper()
	t.Cleanup(func() {
		*viper.GetViper() = *originalConfig
	})
	viper.Reset()
}

func TestCreateRootCommand(t *testing.T) {
	resetViper(t)
	flags := NewFlags()
	cmd := CreateRootCommand(flags)

	if cmd.Use != "wordcycle" {
		t.Errorf("Expected Use to be 'wordcycle', got %s", cmd.Use)
	}

	if !strings.Contains(cmd.Short, "flashcards") {
		t.Errorf("Expected Short description to mention flashcards, got %q", cmd.Short)
	}

	if cmd.Version != internal.Version {
		t.Errorf("Expected version %s, got %s", internal.Version, cmd.Version)
	}

	flagTests := []struct {
		name       string
		persistent bool
	}{
		{"config", true},
		{"verbose", true},
		{"data-dir", false},
		{"words", false},
		{"import", false},
		{"list", false},
		{"archive", false},
		{"anki", false},
		{"anki-csv", false},
		{"deck-name", false},
		{"output", false},
	}

	for _, tt := range flagTests {
		t.Run("flag_"+tt.name, func(t *testing.T) {
			var flag *pflag.Flag
			if tt.persistent {
				flag = cmd.PersistentFlags().Lookup(tt.name)
			} else {
				flag = cmd.Flags().Lookup(tt.name)
			}
			if flag == nil {
				t.Errorf("Expected flag %s to exist", tt.name)
			}
		})
	}
}

func TestCreateRootCommand_RejectsArgs(t *testing.T) {
	resetViper(t)
	cmd := CreateRootCommand(NewFlags())

	if err := cmd.Args(cmd, []string{"猫"}); err == nil {
		t.Error("Expected positional arguments to be rejected")
	}
}

func TestSetupFlags(t *testing.T) {
	resetViper(t)
	cmd := &cobra.Command{}
	flags := NewFlags()

	setupFlags(cmd, flags)

	dataDirFlag := cmd.Flags().Lookup("data-dir")
	if dataDirFlag == nil {
		t.Fatal("data-dir flag not found")
	}

	home, _ := os.UserHomeDir()
	expectedDefault := filepath.Join(home, ".local", "state", "wordcycle")
	if dataDirFlag.DefValue != expectedDefault {
		t.Errorf("Expected default data dir to be %s, got %s", expectedDefault, dataDirFlag.DefValue)
	}

	deckFlag := cmd.Flags().Lookup("deck-name")
	if deckFlag == nil {
		t.Fatal("deck-name flag not found")
	}
	if deckFlag.DefValue != "Vocabulary" {
		t.Errorf("Expected default deck name to be Vocabulary, got %s", deckFlag.DefValue)
	}
}

func TestInitConfig(t *testing.T) {
	resetViper(t)

	tests := []struct {
		name      string
		setupFunc func(t *testing.T) string
	}{
		{
			name: "with config file",
			setupFunc: func(t *testing.T) string {
				cfgPath := filepath.Join(t.TempDir(), "test-config.yaml")
				content := `data:
  directory: /test/data
anki:
  deck_name: JLPT N5`
				if err := os.WriteFile(cfgPath, []byte(content), 0644); err != nil {
					t.Fatalf("Failed to create test config: %v", err)
				}
				return cfgPath
			},
		},
		{
			name: "without config file",
			setupFunc: func(t *testing.T) string {
				return ""
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			viper.Reset()

			cfgPath := tt.setupFunc(t)
			InitConfig(cfgPath)

			if cfgPath != "" {
				if got := viper.GetString("anki.deck_name"); got != "JLPT N5" {
					t.Errorf("Expected deck name from config, got %q", got)
				}
			}

			t.Setenv("WORDCYCLE_TEST_VAR", "test-value")
			if viper.GetString("test_var") != "test-value" {
				t.Error("Environment variable not properly loaded")
			}

			t.Setenv("WORDCYCLE_WORDS_FILE", "/env/words.csv")
			if viper.GetString("words.file") != "/env/words.csv" {
				t.Error("Nested key not read from environment")
			}
		})
	}
}

func TestBindFlagsToViper(t *testing.T) {
	resetViper(t)

	cmd := &cobra.Command{}
	flags := NewFlags()
	setupFlags(cmd, flags)

	cmd.Flags().Set("data-dir", "/test/data")
	cmd.Flags().Set("words", "/test/words.csv")
	cmd.Flags().Set("deck-name", "Kanji")
	cmd.PersistentFlags().Set("verbose", "true")

	bindFlagsToViper(cmd)

	if viper.GetString("data.directory") != "/test/data" {
		t.Errorf("Expected data.directory to be /test/data, got %s", viper.GetString("data.directory"))
	}

	if viper.GetString("words.file") != "/test/words.csv" {
		t.Errorf("Expected words.file to be /test/words.csv, got %s", viper.GetString("words.file"))
	}

	if viper.GetString("anki.deck_name") != "Kanji" {
		t.Errorf("Expected anki.deck_name to be Kanji, got %s", viper.GetString("anki.deck_name"))
	}

	if !viper.GetBool("log.verbose") {
		t.Error("Expected log.verbose to be true")
	}
}

func TestApplyConfig(t *testing.T) {
	resetViper(t)

	flags := NewFlags()
	cmd := CreateRootCommand(flags)
	if err := cmd.ParseFlags([]string{"--deck-name", "From Flag"}); err != nil {
		t.Fatalf("ParseFlags failed: %v", err)
	}

	viper.Set("data.directory", "~/vocab")
	viper.Set("words.file", "/cfg/words.csv")
	viper.Set("anki.deck_name", "From Config")
	viper.Set("log.verbose", true)

	ApplyConfig(cmd, flags)

	home, _ := os.UserHomeDir()
	if flags.DataDir != filepath.Join(home, "vocab") {
		t.Errorf("Expected data dir from config with ~ expanded, got %s", flags.DataDir)
	}
	if flags.WordFile != "/cfg/words.csv" {
		t.Errorf("Expected word file from config, got %s", flags.WordFile)
	}
	if flags.DeckName != "From Flag" {
		t.Errorf("Expected command line to win for deck name, got %s", flags.DeckName)
	}
	if !flags.Verbose {
		t.Error("Expected verbose from config")
	}
}

func TestNewLogger(t *testing.T) {
	for _, verbose := range []bool{false, true} {
		logger, err := NewLogger(verbose)
		if err != nil {
			t.Fatalf("NewLogger(%v) error = %v", verbose, err)
		}
		if got := logger.Core().Enabled(-1); got != verbose {
			t.Errorf("NewLogger(%v) debug enabled = %v", verbose, got)
		}
	}
}
