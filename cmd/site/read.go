package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"folio.dev/internal/services"
)

var readWidth int

// readCmd renders a post in the terminal, or lists posts without a slug
var readCmd = &cobra.Command{
	Use:   "read [slug]",
	Short: "Read a blog post in the terminal",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		blog := services.NewBlogService(cfg.ContentPath, cfg.ShowDrafts, logger)
		out := cmd.OutOrStdout()

		if len(args) == 0 {
			posts, err := blog.List()
			if err != nil {
				return err
			}
			for _, p := range posts {
				fmt.Fprintf(out, "%s  %-40s %s\n", p.Date.Format("2006-01-02"), p.Slug, p.Title)
			}
			return nil
		}

		post, err := blog.Get(args[0])
		if err != nil {
			return err
		}

		renderer, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(readWidth),
		)
		if err != nil {
			return fmt.Errorf("failed to create renderer: %w", err)
		}

		var doc strings.Builder
		fmt.Fprintf(&doc, "# %s\n\n*%s*\n\n", post.Title, post.Date.Format("January 2, 2006"))
		doc.WriteString(post.Markdown)

		rendered, err := renderer.Render(doc.String())
		if err != nil {
			return fmt.Errorf("failed to render post: %w", err)
		}
		_, err = fmt.Fprint(out, rendered)
		return err
	},
}

func init() {
	readCmd.Flags().IntVarP(&readWidth, "width", "w", 80, "Word wrap width")
}
