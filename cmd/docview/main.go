// Command docview renders markup documents from the shell: JSON render
// tree or HTML to stdout, DOCX to a file.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/debashish17/docview/internal/export"
	"github.com/debashish17/docview/internal/paginate"
	"github.com/debashish17/docview/internal/parser"
	"github.com/debashish17/docview/internal/render"
	"github.com/spf13/cobra"
)

var (
	flagFormat string
	flagMode   string
	flagHTML   bool
	flagOut    string
)

func main() {
	root := &cobra.Command{
		Use:   "docview",
		Short: "Render LaTeX/Markdown/HTML documents to a preview tree",
	}

	renderCmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a document to a JSON tree or HTML",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runRender,
	}
	renderCmd.Flags().StringVar(&flagFormat, "format", "", "input format: latex, markdown or html (default: auto-detect)")
	renderCmd.Flags().StringVar(&flagMode, "mode", "preview", "view mode: preview or code")
	renderCmd.Flags().BoolVar(&flagHTML, "html", false, "emit HTML instead of the JSON tree")

	exportCmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Export a document to DOCX",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runExport,
	}
	exportCmd.Flags().StringVar(&flagFormat, "format", "", "input format: latex, markdown or html (default: auto-detect)")
	exportCmd.Flags().StringVarP(&flagOut, "out", "o", "document.docx", "output file")

	root.AddCommand(renderCmd, exportCmd)
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func readInput(args []string) (string, error) {
	if len(args) == 0 {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func buildTree(text string) *render.Node {
	renderer := render.New(nil)
	if flagMode == "code" {
		return renderer.Code(text)
	}
	doc := parser.Parse(text, parser.Format(flagFormat))
	return renderer.Preview(paginate.Paginate(doc), doc)
}

func runRender(cmd *cobra.Command, args []string) error {
	text, err := readInput(args)
	if err != nil {
		return err
	}
	tree := buildTree(text)
	if flagHTML {
		fmt.Fprintln(cmd.OutOrStdout(), render.HTML(tree))
		return nil
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(tree)
}

func runExport(cmd *cobra.Command, args []string) error {
	text, err := readInput(args)
	if err != nil {
		return err
	}
	flagMode = "preview"
	data, err := export.DOCX(buildTree(text))
	if err != nil {
		return err
	}
	if err := os.WriteFile(flagOut, data, 0o644); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d bytes)\n", flagOut, len(data))
	return nil
}
