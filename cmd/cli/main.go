package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/wadjakorntonsri/go-catalog/pkg/adapters/repository/sqlite"
	"github.com/wadjakorntonsri/go-catalog/pkg/config"
	"github.com/wadjakorntonsri/go-catalog/pkg/core/domain"
	"github.com/wadjakorntonsri/go-catalog/pkg/logger"
	"github.com/wadjakorntonsri/go-catalog/pkg/ports"
)

func main() {
	exportCmd := flag.NewFlagSet("export", flag.ExitOnError)
	exportFile := exportCmd.String("file", "", "write to this file instead of stdout")
	importCmd := flag.NewFlagSet("import", flag.ExitOnError)
	importFile := importCmd.String("file", "", "JSON file to import")

	if len(os.Args) < 2 {
		fmt.Println("expected 'export' or 'import' subcommands")
		os.Exit(1)
	}

	cfg := config.Load()
	// Logs go to stderr so an export on stdout stays clean JSON
	log, err := logger.New("local", cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	repo, err := sqlite.NewSQLiteRepository(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("failed to connect to db", zap.Error(err))
	}
	defer repo.Close()

	ctx := context.Background()
	switch os.Args[1] {
	case "export":
		exportCmd.Parse(os.Args[2:])
		out := io.Writer(os.Stdout)
		if *exportFile != "" {
			f, err := os.Create(*exportFile)
			if err != nil {
				log.Fatal("failed to create file", zap.Error(err))
			}
			defer f.Close()
			out = f
		}
		if err := doExport(ctx, repo, out); err != nil {
			log.Fatal("export failed", zap.Error(err))
		}
	case "import":
		importCmd.Parse(os.Args[2:])
		if *importFile == "" {
			importCmd.PrintDefaults()
			os.Exit(1)
		}
		f, err := os.Open(*importFile)
		if err != nil {
			log.Fatal("failed to open file", zap.Error(err))
		}
		defer f.Close()
		count, err := doImport(ctx, repo, f)
		if err != nil {
			log.Fatal("import failed", zap.Error(err))
		}
		log.Info("import finished", zap.Int("rows", count))
	default:
		fmt.Println("expected 'export' or 'import' subcommands")
		os.Exit(1)
	}
}

func doExport(ctx context.Context, repo ports.DumpRepository, w io.Writer) error {
	dump, err := repo.Dump(ctx)
	if err != nil {
		return err
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(dump)
}

// doImport restores a dump, keeping ids. Categories and collections whose
// slug already exists are left alone.
func doImport(ctx context.Context, repo ports.DumpRepository, r io.Reader) (int, error) {
	var dump domain.CatalogDump
	if err := json.NewDecoder(r).Decode(&dump); err != nil {
		return 0, fmt.Errorf("decode: %w", err)
	}
	return repo.Restore(ctx, &dump)
}
