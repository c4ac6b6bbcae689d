package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"proposal-manager/internal/domain"
	"proposal-manager/internal/model"
	"proposal-manager/pkg/export"
)

// Renders a proposal JSON file to HTML for eyeballing the export layout
// without Chrome or a database. Input file shape: {"project": {...},
// "content": {...}}.
func main() {
	in := "sample_proposal.json"
	if len(os.Args) > 1 {
		in = os.Args[1]
	}
	b, err := os.ReadFile(in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read sample: %v\n", err)
		os.Exit(2)
	}

	var payload struct {
		Project domain.Project        `json:"project"`
		Content model.ProposalContent `json:"content"`
	}
	if err := json.Unmarshal(b, &payload); err != nil {
		fmt.Fprintf(os.Stderr, "unmarshal: %v\n", err)
		os.Exit(2)
	}

	html, err := export.RenderHTML(&payload.Project, &payload.Content, export.DefaultContact)
	if err != nil {
		fmt.Fprintf(os.Stderr, "render: %v\n", err)
		os.Exit(2)
	}

	outFile := filepath.Join("proposal-data", "generated", "proposal_sample.html")
	if err := os.MkdirAll(filepath.Dir(outFile), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "mkdir: %v\n", err)
		os.Exit(2)
	}
	if err := os.WriteFile(outFile, []byte(html), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "write out: %v\n", err)
		os.Exit(2)
	}
	fmt.Printf("wrote %s\n", outFile)
}
