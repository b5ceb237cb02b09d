// Package lexicon provides CLI commands for inspecting, exporting and
// validating the word tables the translator draws from.
package lexicon

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/klytics/numsay/internal/config"
	"github.com/klytics/numsay/internal/output"
	"github.com/klytics/numsay/numword"
)

// NewCommand creates the "lexicon" command with all subcommands.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lexicon",
		Short: "Inspect, export, and validate lexicons",
		Long: `Show the word tables the translator draws from, export them as an
editable YAML pack, and validate edited packs before use.`,
	}

	cmd.AddCommand(newShowCmd())
	cmd.AddCommand(newScalesCmd())
	cmd.AddCommand(newExportCmd())
	cmd.AddCommand(newCheckCmd())

	return cmd
}

// activeLexicon resolves the lexicon the CLI is configured to speak: the
// configured pack when one is set, the built-in English tables otherwise.
func activeLexicon() (*numword.Lexicon, error) {
	config.Load() // ensure loaded
	tr, err := config.Translator()
	if err != nil {
		return nil, err
	}
	return tr.Lexicon(), nil
}

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the active lexicon's word tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			lex, err := activeLexicon()
			if err != nil {
				return err
			}
			p := lex.Pack()

			jsonFlag, _ := cmd.Flags().GetBool("json")
			if jsonFlag {
				return output.PrintJSON("lexicon show", p)
			}

			content := renderShow(p, lex.MaxGroups())
			if output.ShouldPage(content, output.DefaultPageHeight) {
				return output.Page(content)
			}
			fmt.Print(content)
			return nil
		},
	}
}

func renderShow(p *numword.Pack, maxGroups int) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Language: %s\n\n", p.Language)

	fmt.Fprintf(&b, "Ones (0-19):\n")
	for i, w := range p.Words.Ones {
		fmt.Fprintf(&b, "  %2d  %s\n", i, w)
	}

	fmt.Fprintf(&b, "\nTens (20-90):\n")
	for i, w := range p.Words.Tens {
		fmt.Fprintf(&b, "  %2d  %s\n", (i+2)*10, w)
	}

	fmt.Fprintf(&b, "\nHundred:     %s\n", p.Words.Hundred)
	fmt.Fprintf(&b, "Negative:    %s\n", p.Words.Negative)
	if p.Words.Conjunction != "" {
		fmt.Fprintf(&b, "Conjunction: %s\n", p.Words.Conjunction)
	}

	fmt.Fprintf(&b, "\nScales:\n")
	for _, s := range p.Scales {
		fmt.Fprintf(&b, "  10^%-3d %s\n", s.Power, s.Word)
	}

	fmt.Fprintf(&b, "\nLargest speakable number: 10^%d - 1\n", 3*maxGroups)
	return b.String()
}

func newScalesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scales",
		Short: "List the scale words and the powers they name",
		RunE: func(cmd *cobra.Command, args []string) error {
			lex, err := activeLexicon()
			if err != nil {
				return err
			}

			jsonFlag, _ := cmd.Flags().GetBool("json")
			if jsonFlag {
				return output.PrintJSON("lexicon scales", lex.Pack().Scales)
			}

			tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintf(tw, "POWER\tWORD\tNUMERAL\n")
			for i, w := range lex.Scales() {
				power := (i + 1) * 3
				fmt.Fprintf(tw, "10^%d\t%s\t%s\n", power, w, numeralFor(i+1))
			}
			tw.Flush()

			fmt.Printf("\nLargest speakable number: 10^%d - 1\n", 3*lex.MaxGroups())
			return nil
		},
	}
}

// numeralFor renders the numeral for thousand-group n: 1 → "1,000".
func numeralFor(groups int) string {
	return "1" + strings.Repeat(",000", groups)
}

func newExportCmd() *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the active lexicon as an editable YAML pack",
		Long: `Writes the active lexicon in pack form. Edit the words or append scale
words, then point lexicon.pack at the file:

  numsay lexicon export -o mywords.yaml
  numsay config set lexicon.pack mywords.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			lex, err := activeLexicon()
			if err != nil {
				return err
			}

			data, err := lex.Pack().Marshal()
			if err != nil {
				return err
			}

			if outPath == "" {
				fmt.Print(string(data))
				return nil
			}

			if err := os.WriteFile(outPath, data, 0644); err != nil {
				return fmt.Errorf("could not write %s: %w", outPath, err)
			}
			fmt.Printf("Exported lexicon → %s\n", outPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "output", "o", "", "Write the pack to a file instead of stdout")
	return cmd
}

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <pack.yaml>",
		Short: "Validate a lexicon pack file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lex, err := numword.LoadLexicon(args[0])
			if err != nil {
				return err
			}

			tr, err := numword.New(numword.Options{Lexicon: lex})
			if err != nil {
				return err
			}
			sample, err := tr.Translate(121)
			if err != nil {
				return err
			}

			maxPower := 3 * lex.MaxGroups()

			jsonFlag, _ := cmd.Flags().GetBool("json")
			if jsonFlag {
				return output.PrintJSON("lexicon check", map[string]interface{}{
					"file":     args[0],
					"valid":    true,
					"language": lex.Tag().String(),
					"scales":   len(lex.Scales()),
					"maxPower": maxPower,
					"sample":   sample,
				})
			}

			green := color.New(color.FgGreen).SprintFunc()
			fmt.Printf("%s Lexicon pack is valid: %s\n", green("✓"), args[0])
			fmt.Printf("  Language: %s\n", lex.Tag())
			fmt.Printf("  Scales:   %d (largest speakable: 10^%d - 1)\n", len(lex.Scales()), maxPower)
			fmt.Printf("  Sample:   121 → %q\n", sample)
			return nil
		},
	}
}
