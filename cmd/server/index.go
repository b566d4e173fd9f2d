package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/manuscripta/searchkit/pkg/indexable"
	"github.com/manuscripta/searchkit/pkg/lang"
	"github.com/manuscripta/searchkit/pkg/store"
)

func cmdIndex(args []string) {
	fs := flag.NewFlagSet("index", flag.ExitOnError)
	input := fs.String("input", "", "path to a JSON file with an array of documents")
	dbPath := fs.String("db", "searchkit.db", "path to the records database")
	langbase := fs.String("langbase", "", "path to a langbase CSV (default: embedded table)")
	encoding := fs.String("encoding", "", "langbase encoding (e.g. latin-1)")
	fs.Parse(args)

	if *input == "" {
		fmt.Fprintln(os.Stderr, "Usage: searchkit index --input <documents.json> [--db <path>]")
		os.Exit(1)
	}

	cat := lang.NewCatalog(*langbase, *encoding, nil)
	if err := cat.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "load language table: %v\n", err)
		os.Exit(1)
	}

	data, err := os.ReadFile(*input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read input: %v\n", err)
		os.Exit(1)
	}

	var docs []indexable.Document
	if err := json.Unmarshal(data, &docs); err != nil {
		fmt.Fprintf(os.Stderr, "parse input: %v\n", err)
		os.Exit(1)
	}

	st, err := store.Open(*dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open store: %v\n", err)
		os.Exit(1)
	}
	defer st.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	table := cat.Table()
	indexed, failed, total := 0, 0, 0
	for i := range docs {
		doc := &docs[i]
		if doc.ID == "" {
			fmt.Fprintf(os.Stderr, "document %d: missing id, skipped\n", i)
			failed++
			continue
		}
		records := indexable.NormalizeDocument(doc, table)
		if err := st.ReplaceDocument(ctx, doc.ID, records); err != nil {
			fmt.Fprintf(os.Stderr, "[%s] index failed: %v\n", doc.ID, err)
			failed++
			continue
		}
		indexed++
		total += len(records)
	}

	fmt.Printf("indexed %d document(s), %d record(s)", indexed, total)
	if failed > 0 {
		fmt.Printf(", %d failed", failed)
	}
	fmt.Println()
	if failed > 0 {
		os.Exit(1)
	}
}
