package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"folio.dev/internal/config"
	"folio.dev/internal/logging"
	"folio.dev/internal/projects"
	"folio.dev/internal/services"
)

// payloadFile is one build-time JSON document
type payloadFile struct {
	Name  string
	Build func(ctx context.Context) (any, error)
}

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: generate <output-dir>")
		os.Exit(1)
	}

	outputDir := os.Args[1]
	if err := run(context.Background(), outputDir); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Done!")
}

func run(ctx context.Context, outputDir string) error {
	logger, err := logging.New(false, true)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	source, cleanup, err := services.NewProjectSource(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	return generate(ctx, outputDir, payloads(cfg, source, logger))
}

func payloads(cfg *config.Config, source projects.Source, logger *zap.Logger) []payloadFile {
	projectService := services.NewProjectService(source, logger)
	blogService := services.NewBlogService(cfg.ContentPath, cfg.ShowDrafts, logger)

	files := []payloadFile{}
	for _, policy := range []projects.Policy{projects.PolicyShowcase, projects.PolicyRanked} {
		files = append(files, payloadFile{
			Name: fmt.Sprintf("projects.%s.json", policy),
			Build: func(ctx context.Context) (any, error) {
				return projectService.Payload(ctx, policy)
			},
		})
	}
	files = append(files, payloadFile{
		Name: "posts.json",
		Build: func(ctx context.Context) (any, error) {
			return blogService.List()
		},
	})
	return files
}

// generate writes every payload, stopping at the first failure so a
// broken fetch never ships a partial build
func generate(ctx context.Context, outputDir string, files []payloadFile) error {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	for _, f := range files {
		fmt.Printf("Generating %s...\n", f.Name)

		payload, err := f.Build(ctx)
		if err != nil {
			return fmt.Errorf("%s: %w", f.Name, err)
		}

		data, err := json.MarshalIndent(payload, "", "  ")
		if err != nil {
			return fmt.Errorf("%s: failed to marshal JSON: %w", f.Name, err)
		}

		path := filepath.Join(outputDir, f.Name)
		if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
			return fmt.Errorf("%s: failed to write file: %w", f.Name, err)
		}

		fmt.Printf("  Created %s (%d bytes)\n", path, len(data))
	}
	return nil
}
