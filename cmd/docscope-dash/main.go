package main

import (
	"bufio"
	_ "embed"
	"context"
	"fmt"
	"log/slog"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"

	"github.com/drios/docscope/internal/dashboard"
	"github.com/drios/docscope/internal/document"
	"github.com/drios/docscope/internal/logging"
)

//go:embed VERSION.txt
var versionFile string

var version = strings.TrimSpace(versionFile)

func main() {
	// Check for version flag before parsing other flags
	for _, arg := range os.Args[1:] {
		if arg == "--version" || arg == "-version" || arg == "-v" {
			fmt.Println(version)
			os.Exit(0)
		}
	}

	fs := ff.NewFlagSet("docscope-dash")
	var (
		serverURL   = fs.StringLong("server", "http://localhost:8000", "docscope backend base URL")
		search      = fs.StringLong("search", "", "Filter documents by filename or summary text")
		docType     = fs.StringLong("type", dashboard.TypeAll, "Filter documents by type ('all' for every type)")
		deleteID    = fs.IntLong("delete", 0, "Delete the document with this id (asks for confirmation)")
		assumeYes   = fs.BoolLong("yes", "Skip the delete confirmation prompt")
		timeout     = fs.DurationLong("timeout", 2*time.Minute, "How long to wait for an analysis")
		logLevel    = fs.StringLong("log-level", "warn", "Log level: debug, info, warn, error")
		showVersion = fs.BoolLong("version", "Show version information")
	)

	if err := ff.Parse(fs, os.Args[1:],
		ff.WithEnvVarPrefix("DOCSCOPE"),
	); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", ffhelp.Flags(fs))
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	// Check version flag after parsing
	if *showVersion {
		fmt.Println(version)
		os.Exit(0)
	}

	slog.SetDefault(logging.New("docscope-dash", *logLevel))

	ctx := context.Background()
	client := dashboard.NewClient(*serverURL)

	if files := fs.GetArgs(); len(files) > 0 {
		if err := analyzeFiles(ctx, client, files, *timeout); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	}

	store := dashboard.NewStore(client, confirmer(*assumeYes))

	if *deleteID > 0 {
		if err := store.Remove(ctx, int64(*deleteID)); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Deleted document %d\n", *deleteID)
	}

	if err := store.Refresh(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	renderDashboard(store, *search, *docType)
}

// analyzeFiles narrows the selection to its first PDF and runs it through
// one analysis session, reporting anything that was skipped.
func analyzeFiles(ctx context.Context, client *dashboard.Client, paths []string, timeout time.Duration) error {
	candidates := make([]dashboard.File, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		candidates = append(candidates, dashboard.File{
			Name:      filepath.Base(path),
			MediaType: mime.TypeByExtension(filepath.Ext(path)),
			Data:      data,
		})
	}

	file, skipped, ok := dashboard.FirstEligible(candidates)
	if !ok {
		return fmt.Errorf("none of the %d selected files is a PDF", len(candidates))
	}
	if skipped > 0 {
		fmt.Printf("Analyzing %s (%d other files ignored)\n", file.Name, skipped)
	} else {
		fmt.Printf("Analyzing %s\n", file.Name)
	}

	session := dashboard.NewSession(client, timeout)
	if err := session.Analyze(ctx, file); err != nil {
		if msg := session.Failure(); msg != "" {
			return fmt.Errorf("%s", msg)
		}
		return err
	}

	renderOutcome(session.Outcome())
	return nil
}

func renderOutcome(outcome *document.AnalysisOutcome) {
	fmt.Printf("\n%s (%d pages", outcome.Filename, outcome.PageCount)
	if outcome.DetectedClass != "" {
		fmt.Printf(", %s", outcome.DetectedClass)
	}
	fmt.Println(")")

	rec := outcome.Record
	if rec == nil || !rec.HasData() {
		fmt.Println("  no data extracted from this document")
		return
	}

	field := func(label, value string) {
		if value != "" {
			fmt.Printf("  %-12s %s\n", label, value)
		}
	}
	field("Type", rec.DocumentType)
	field("Date", rec.Date)
	if names := rec.Issuer.Names(); len(names) > 0 {
		field("Issuer", strings.Join(names, ", "))
	}
	field("Recipient", rec.Recipient)
	field("Tax ID", rec.TaxID)
	if rec.Total != "" {
		field("Total", fmt.Sprintf("%s %s", rec.CurrencySymbol(), rec.Total))
	}
	field("Subtotal", rec.Subtotal)
	field("Tax", rec.Tax)
	for _, item := range rec.LineItems {
		fmt.Printf("    - %s\n", item)
	}
	field("Summary", rec.Summary)
}

func renderDashboard(store *dashboard.Store, search, docType string) {
	stats := store.Stats()

	fmt.Printf("\nDocuments: %d   Expenses: %s   Types: %d\n",
		stats.TotalDocuments,
		dashboard.FormatExpenses(stats),
		dashboard.DistinctTypes(stats),
	)

	for _, slice := range dashboard.ChartSlices(stats) {
		fmt.Printf("  %-24s %3d  %s\n", slice.Label, slice.Count, slice.Color)
	}

	docs := dashboard.Filter(store.Documents(), search, docType)
	if len(docs) == 0 {
		fmt.Println("\nNo documents match.")
		return
	}

	fmt.Printf("\n%-5s %-30s %-22s %-6s %s\n", "ID", "FILENAME", "TYPE", "PAGES", "CREATED")
	for _, doc := range docs {
		fmt.Printf("%-5d %-30s %-22s %-6d %s\n",
			doc.ID,
			doc.Filename,
			doc.DocumentType,
			doc.PageCount,
			doc.CreatedAt.Format("2006-01-02 15:04"),
		)
	}
}

// confirmer builds the delete confirmation prompt. With --yes it approves
// everything; otherwise it asks on the terminal and defaults to no.
func confirmer(assumeYes bool) dashboard.Confirmer {
	if assumeYes {
		return func(document.StoredDocument) bool { return true }
	}
	return func(doc document.StoredDocument) bool {
		name := doc.Filename
		if name == "" {
			name = fmt.Sprintf("document %d", doc.ID)
		}
		fmt.Printf("Delete %s? [y/N] ", name)
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil {
			return false
		}
		answer := strings.ToLower(strings.TrimSpace(line))
		return answer == "y" || answer == "yes"
	}
}
