package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/gigurra/spending-combiner/internal"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Params struct {
	Directory  string `descr:"Directory containing the monthly Kategorien-YYYY-MM exports" short:"d" env:"SPENDING_DIRECTORY" default:"."`
	Year       int    `descr:"Year to combine (YYYY), required" short:"y" env:"SPENDING_YEAR" optional:"true"`
	Config     string `descr:"Path to config file (default: ~/.spending-combiner/config.yaml)" optional:"true"`
	Output     string `descr:"Output file (default: combined_spending_<year>.<format>)" short:"o" optional:"true"`
	Format     string `descr:"Output file format" alts:"csv,xlsx,json" strict:"true" default:"csv"`
	Print      bool   `descr:"Print the combined table" short:"p" optional:"true"`
	Report     bool   `descr:"Print a per-month report of parsed, missing and rejected files" optional:"true"`
	Verbose    bool   `descr:"Log row-level diagnostics" short:"v" optional:"true"`
	InitConfig bool   `descr:"Write a config template to the config path and exit" optional:"true"`
}

func main() {
	// a .env file is optional
	_ = godotenv.Load()

	boa.NewCmdT[Params]("spending-combiner").
		WithShort("Combine monthly category spending exports into one table per year").
		WithLong("Reads Kategorien-YYYY-MM exports for each month of a year, rebuilds the \"Parent - Child\" " +
			"category names, rejects files whose declared date range does not match their month, and writes " +
			"one row per category with one column per month (zero where a month is missing).").
		WithRunFunc(func(params *Params) {
			setupLogging(params.Verbose)

			if params.InitConfig {
				path := configPath(params.Config)
				if err := internal.NewDefaultConfig().Save(path); err != nil {
					fmt.Fprintf(os.Stderr, "Error writing config: %v\n", err)
					os.Exit(1)
				}
				fmt.Printf("Config template written to %s\n", path)
				return
			}

			cfg, err := loadConfig(params.Config)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
				os.Exit(1)
			}

			if params.Year == 0 {
				fmt.Fprintf(os.Stderr, "Error: --year is required\n")
				os.Exit(2)
			}
			if params.Year < 1 || params.Year > 9999 {
				fmt.Fprintf(os.Stderr, "Error: invalid year %d\n", params.Year)
				os.Exit(2)
			}

			if err := run(params, cfg); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
		}).
		Run()
}

func run(params *Params, cfg *internal.Config) error {
	source := internal.NewDirSource(params.Directory, cfg)
	combiner := internal.NewCombiner(source,
		internal.WithConfig(cfg),
		internal.WithLogger(log.Logger),
	)

	table, report := combiner.Combine(params.Year)

	output := params.Output
	if output == "" {
		output = internal.OutputFileName(params.Year, params.Format)
	}
	opts := internal.WriteOptions{Delimiter: cfg.Delim(), DecimalComma: cfg.DecimalComma}
	if err := internal.WriteFile(output, params.Format, table, opts); err != nil {
		return fmt.Errorf("writing %s: %w", output, err)
	}

	if params.Report {
		internal.PrintReport(os.Stdout, report)
		fmt.Println()
	}
	if params.Print {
		internal.PrintTable(os.Stdout, table, internal.GetCurrency(table.Currency))
		fmt.Println()
	}

	fmt.Printf("Combined %d categories from %d months into %s\n",
		table.Len(), report.Count(internal.StatusParsed), output)
	return nil
}

func setupLogging(verbose bool) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
}

func configPath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	return internal.DefaultConfigPath()
}

// loadConfig reads an explicit config path, or the default path if it exists.
func loadConfig(explicit string) (*internal.Config, error) {
	path := configPath(explicit)
	if path == "" {
		return internal.NewDefaultConfig(), nil
	}

	cfg, err := internal.LoadConfig(path)
	if err != nil {
		if explicit == "" && errors.Is(err, fs.ErrNotExist) {
			return internal.NewDefaultConfig(), nil
		}
		return nil, err
	}
	return cfg, nil
}
