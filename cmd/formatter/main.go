// Package main provides the document formatter and linter command-line tool.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"docblog/internal/config"
	"docblog/internal/models"
	"docblog/internal/source"
	"docblog/internal/table"
	"docblog/internal/validator"
)

func main() {
	// Define command-line flags
	configFile := flag.String("config", "", "Path to YAML configuration file (default: configs/blog.yaml if present)")
	targetPath := flag.String("path", "", "File or directory to format (default: build.docs_dir)")
	write := flag.Bool("write", false, "Write changes to file (default: false, dry-run)")
	quiet := flag.Bool("quiet", false, "Only report documents with errors")
	help := flag.Bool("help", false, "Show usage information")

	flag.Parse()

	if *help {
		printUsage()
		os.Exit(0)
	}

	cfg, loaded, err := config.LoadOrDefault(*configFile)
	if err != nil {
		log.Printf("⚠️  Failed to load config: %v (proceeding with defaults)\n", err)

		cfg = config.Default()
	} else if loaded {
		fmt.Printf("⚙️  Configuration loaded: %s\n", cfg)
	}

	path := *targetPath
	if path == "" {
		path = cfg.Build.DocsDir
	}

	fmt.Printf("📂 Scanning path: %s\n", path)

	if *write {
		fmt.Println("✍️  Write mode ENABLED (files will be modified)")
	} else {
		fmt.Println("👀 Dry-run mode (no changes will be written)")
	}

	fmt.Println()

	v := validator.NewDocumentValidator()

	count := 0
	changed := 0
	invalid := 0
	errors := 0

	err = filepath.WalkDir(path, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			log.Printf("❌ Error accessing path %s: %v\n", p, err)

			errors++

			return nil
		}

		if d.IsDir() {
			// Skip .git, node_modules, etc.
			if strings.HasPrefix(d.Name(), ".") && p != path {
				return filepath.SkipDir
			}

			return nil
		}

		if !source.IsMarkdown(d.Name()) {
			return nil
		}

		count++

		wasChanged, valid, procErr := processFile(p, *write, *quiet, v)

		switch {
		case procErr != nil:
			fmt.Printf("❌ Failed to process %s: %v\n", p, procErr)

			errors++
		case wasChanged && *write:
			changed++

			fmt.Printf("✅ Formatted: %s\n", p)
		case wasChanged:
			changed++

			fmt.Printf("📝 Would format: %s\n", p)
		}

		if !valid {
			invalid++
		}

		return nil
	})
	if err != nil {
		log.Fatalf("❌ Error walking path: %v\n", err)
	}

	fmt.Println("\n----------------------------------------------------------------")
	fmt.Printf("📈 Summary:\n")
	fmt.Printf("  Scanned: %d files\n", count)
	fmt.Printf("  Changed: %d files\n", changed)
	fmt.Printf("  Invalid: %d files\n", invalid)
	fmt.Printf("  Errors:  %d\n", errors)

	if changed > 0 && !*write {
		fmt.Println("\n💡 Run with -write to apply changes.")
		os.Exit(1)
	}

	if invalid > 0 || errors > 0 {
		os.Exit(1)
	}
}

// processFile lints one document and realigns its tables. It reports
// whether the formatted text differs from the file and whether the
// document would build.
func processFile(path string, write, quiet bool, v *validator.DocumentValidator) (changed, valid bool, err error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return false, false, err
	}

	original := string(content)

	res := v.Validate(models.Document{ID: filepath.Base(path), Content: original})
	if !res.IsValid || (!quiet && len(res.Warnings) > 0) {
		fmt.Println(res)
		res.PrintErrors(os.Stdout)

		if !quiet {
			res.PrintWarnings(os.Stdout)
		}
	}

	formatted := table.FormatTables(original)
	if formatted == original {
		return false, res.IsValid, nil
	}

	if write {
		if err := os.WriteFile(path, []byte(formatted), 0644); err != nil {
			return false, res.IsValid, err
		}
	}

	return true, res.IsValid, nil
}

func printUsage() {
	fmt.Println("Usage: ./bin/formatter [OPTIONS]")
	fmt.Println()
	fmt.Println("Lints markdown documents and realigns their tables.")
	fmt.Println()
	fmt.Println("Options:")
	flag.PrintDefaults()
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  ./bin/formatter -path Docs")
	fmt.Println("  ./bin/formatter -path Docs/post.md -write")
}
