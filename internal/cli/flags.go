package cli

// Flags holds all command-line flag values
type Flags struct {
	// General flags
	CfgFile  string
	DataDir  string
	WordFile string
	Verbose  bool

	// Headless actions; without any of them the GUI starts
	ImportFile   string
	ListWords    bool
	Archive      bool
	GenerateAnki bool

	// Anki export flags
	AnkiCSV    bool
	DeckName   string
	OutputPath string
}

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	return &Flags{
		DeckName: "Vocabulary",
	}
}

// HasAction reports whether any headless action was requested.
func (f *Flags) HasAction() bool {
	return f.ImportFile != "" || f.ListWords || f.Archive || f.GenerateAnki
}
