package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"proposal-manager/internal/domain"
	"proposal-manager/pkg/docparse"
)

// Dev harness: extract text from a DOCX and show what the metadata parser
// recognizes, without a database or server.
func main() {
	docType := flag.String("type", domain.DocumentTypeProjectData, "document type: project_data or bios_objectives")
	showText := flag.Bool("text", false, "also print the extracted text")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: parsedoc [-type project_data|bios_objectives] [-text] file.docx\n")
		os.Exit(2)
	}
	path := flag.Arg(0)

	f, err := os.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open: %v\n", err)
		os.Exit(2)
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		fmt.Fprintf(os.Stderr, "stat: %v\n", err)
		os.Exit(2)
	}

	extracted, err := docparse.ExtractDocx(f, info.Size())
	if err != nil {
		fmt.Fprintf(os.Stderr, "extract: %v\n", err)
		os.Exit(1)
	}

	var meta map[string]interface{}
	switch *docType {
	case domain.DocumentTypeProjectData:
		meta = docparse.ParseProjectData(extracted.Text).Map()
	case domain.DocumentTypeBiosObjectives:
		meta = docparse.ParseBiosObjectives(extracted.Text).Map()
	default:
		fmt.Fprintf(os.Stderr, "unknown type %q\n", *docType)
		os.Exit(2)
	}

	out, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "marshal: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(out))

	if *showText {
		fmt.Println("---")
		fmt.Println(extracted.Text)
	}
}
