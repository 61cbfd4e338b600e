package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/gubarz/mdgen/internal/caption"
	"github.com/gubarz/mdgen/internal/check"
	"github.com/gubarz/mdgen/internal/config"
	"github.com/gubarz/mdgen/internal/diffutil"
	"github.com/gubarz/mdgen/internal/doc"
	"github.com/gubarz/mdgen/internal/include"
	"github.com/gubarz/mdgen/internal/link"
	"github.com/gubarz/mdgen/internal/shell"
	"github.com/gubarz/mdgen/internal/split"
	"github.com/gubarz/mdgen/internal/toc"
)

var version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:   "mdgen",
	Short: "Markdown generation filters",
	Long: `A family of Markdown filters driven by directive comments.

Tables of contents, heading numbers, figure/table captions, file and
command inclusion, and per-section document splitting, all marked up
with HTML comments that standard renderers ignore.`,
	SilenceUsage: true,
}

var tocCmd = &cobra.Command{
	Use:   "toc [file...]",
	Short: "Insert or refresh tables of contents",
	Long: `Refreshes the content between <!-- <toc> --> and <!-- </toc> -->
markers with a linked list of the headings the block covers.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runToc,
}

var numberCmd = &cobra.Command{
	Use:   "number [file...]",
	Short: "Renumber headings and migrate fragment links",
	Long: `Prefixes headings with hierarchical "1.2.3." numbers, rewrites
in-document fragment links whose anchors changed, and refreshes any
TOC blocks.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runNumber,
}

var includeCmd = &cobra.Command{
	Use:   "include [file...]",
	Short: "Expand include directives",
	Long: `Expands <!-- <include file="..."> --> and
<!-- <include command="..."> --> directives, replacing previously
expanded content so repeated runs stay current.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runInclude,
}

var captionsCmd = &cobra.Command{
	Use:   "captions [file...]",
	Short: "Number figure and table captions",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCaptions,
}

var splitCmd = &cobra.Command{
	Use:   "split FILE",
	Short: "Split a document into per-section files",
	Long: `Extracts each <!-- <section file="PATH"> --> region into PATH,
links the region from the master document, and rewrites fragment
links across the new file boundaries.`,
	Args: cobra.ExactArgs(1),
	RunE: runSplit,
}

var checkCmd = &cobra.Command{
	Use:   "check [file...]",
	Short: "Report fragment links with no matching heading",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCheck,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.AddCommand(tocCmd, numberCmd, includeCmd, captionsCmd, splitCmd, checkCmd)

	rootCmd.PersistentFlags().BoolP("write", "w", false, "Rewrite files in place instead of printing to stdout")
	rootCmd.PersistentFlags().Bool("diff", false, "Print a unified diff of pending changes instead of the document")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Report per-file progress on stderr")

	tocCmd.Flags().String("marker", "", "TOC list marker: \"-\" or \"1.\"")
	numberCmd.Flags().String("marker", "", "TOC list marker: \"-\" or \"1.\"")
}

func initConfig() {
	if err := config.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
	}
}

// transform rewrites one document buffer.
type transform func(path string, lines []string) ([]string, error)

// processFiles runs fn over every named file and routes the result per
// the output flags: --diff prints a unified diff, --write rewrites the
// file in place, the default prints the document to stdout.
func processFiles(cmd *cobra.Command, args []string, fn transform) error {
	write, _ := cmd.Flags().GetBool("write")
	diff, _ := cmd.Flags().GetBool("diff")
	verbose, _ := cmd.Flags().GetBool("verbose")

	for _, path := range args {
		lines, err := doc.Load(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		next, err := fn(path, lines)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}

		before, after := doc.Join(lines), doc.Join(next)
		switch {
		case diff:
			body, err := diffutil.Unified(path, before, after, config.GetDiffContext())
			if err != nil {
				return fmt.Errorf("diff %s: %w", path, err)
			}
			fmt.Print(body)
		case write:
			if string(before) != string(after) {
				if err := doc.Save(path, next); err != nil {
					return fmt.Errorf("write %s: %w", path, err)
				}
				if verbose {
					fmt.Fprintf(os.Stderr, "%s %s\n", styleFile.Render(path), styleOK.Render("updated"))
				}
			} else if verbose {
				fmt.Fprintf(os.Stderr, "%s %s\n", styleFile.Render(path), styleDim.Render("unchanged"))
			}
		default:
			if _, err := os.Stdout.Write(after); err != nil {
				return err
			}
		}
	}
	return nil
}

func tocOptions(cmd *cobra.Command) toc.Options {
	if m, _ := cmd.Flags().GetString("marker"); m != "" {
		config.SetTocMarker(m)
	}
	return toc.Options{
		Marker:        config.GetTocMarker(),
		ExcludeLevels: config.GetExcludeLevels(),
		ExcludeTitles: config.GetExcludeTitles(),
	}
}

func runToc(cmd *cobra.Command, args []string) error {
	opts := tocOptions(cmd)
	return processFiles(cmd, args, func(_ string, lines []string) ([]string, error) {
		return toc.Assemble(lines, opts), nil
	})
}

func runNumber(cmd *cobra.Command, args []string) error {
	opts := tocOptions(cmd)
	return processFiles(cmd, args, func(_ string, lines []string) ([]string, error) {
		next, remap := toc.Renumber(lines, opts)
		next = toc.MigrateLinks(next, func(ln string) string {
			return link.RewriteSlugs(ln, remap)
		})
		return toc.Assemble(next, opts), nil
	})
}

func runInclude(cmd *cobra.Command, args []string) error {
	exp := &include.Expander{
		Runner:   shell.New(config.GetShell()),
		MaxDepth: config.GetIncludeDepth(),
	}
	return processFiles(cmd, args, func(path string, lines []string) ([]string, error) {
		return exp.Expand(path, lines)
	})
}

func runCaptions(cmd *cobra.Command, args []string) error {
	return processFiles(cmd, args, func(_ string, lines []string) ([]string, error) {
		return caption.Apply(lines), nil
	})
}

func runSplit(cmd *cobra.Command, args []string) error {
	write, _ := cmd.Flags().GetBool("write")
	if !write {
		return fmt.Errorf("split rewrites multiple files; run it with --write")
	}
	verbose, _ := cmd.Flags().GetBool("verbose")

	path := args[0]
	lines, err := doc.Load(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	res := split.Split(filepath.Base(path), lines)
	if len(res.Sections) == 0 {
		return fmt.Errorf("no section markers found in %s", path)
	}

	base := filepath.Dir(path)
	for _, sec := range res.Sections {
		target := filepath.Join(base, sec.File)
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return fmt.Errorf("create %s: %w", filepath.Dir(target), err)
		}
		if err := doc.Save(target, sec.Lines); err != nil {
			return fmt.Errorf("write %s: %w", target, err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "%s %s\n", styleFile.Render(target), styleOK.Render("written"))
		}
	}
	if err := doc.Save(path, res.Master); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "%s %s\n", styleFile.Render(path),
			styleOK.Render(fmt.Sprintf("split into %d sections", len(res.Sections))))
	}
	return nil
}

func runCheck(cmd *cobra.Command, args []string) error {
	verbose, _ := cmd.Flags().GetBool("verbose")

	total := 0
	for _, path := range args {
		b, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		probs := check.File(path, b)
		for _, p := range probs {
			fmt.Fprintf(os.Stderr, "%s:%d: unresolved fragment link %s\n",
				p.File, p.Line, styleWarn.Render(p.Target))
		}
		if verbose && len(probs) == 0 {
			fmt.Fprintf(os.Stderr, "%s %s\n", styleFile.Render(path), styleOK.Render("ok"))
		}
		total += len(probs)
	}
	if total > 0 {
		return fmt.Errorf("%d unresolved fragment link(s)", total)
	}
	return nil
}

func main() {
	rootCmd.Version = version
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
