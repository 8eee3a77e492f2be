package config

const (
	// Settings file looked up next to the executable
	DefaultConfigFile = "dtb-selector.yml"

	// Relative to the executable directory
	DefaultCatalogFile = "consoles.json"
	DefaultConsolesDir = "consoles"
	DefaultHistoryDB   = "dtb_selector.db"

	// Relative to the working directory
	DefaultLogFile = "dtb_selector.log"

	DefaultLogLevel = "info"

	// Language modes
	LanguageAsk  = "ask"
	LanguageAuto = "auto"
)
