// Command psy inspects layered YAML/JSON configuration from the command line.
// Its merge subcommand runs the same resolve, parse, and merge pipeline the
// library applies, which makes it handy for debugging override stacks.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	yamlsettings "github.com/qs5779/pydantic-settings-yaml"
)

// version is overridden at build time via -ldflags.
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "psy",
		Short:         "Inspect layered YAML/JSON configuration",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newMergeCmd())
	root.AddCommand(newVersionCmd())
	return root
}

func newMergeCmd() *cobra.Command {
	var (
		output       string
		allowMissing bool
		subpath      string
	)
	cmd := &cobra.Command{
		Use:   "merge FILE...",
		Short: "Merge configuration files and print the result",
		Long: `Merge parses the given YAML or JSON files in order, applies the optional
subpath expression to each, deep-merges the documents with later files
winning, and prints the merged mapping.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entries := make([]yamlsettings.FileEntry, len(args))
			for i, path := range args {
				entries[i] = yamlsettings.FileEntry{
					Path: path,
					Options: yamlsettings.FileOptions{
						Subpath:  subpath,
						Optional: allowMissing,
					},
				}
			}
			source, err := yamlsettings.New(
				yamlsettings.WithName("psy merge"),
				yamlsettings.WithFiles(yamlsettings.PathOptions(entries...)),
				yamlsettings.WithReload(false),
			)
			if err != nil {
				return err
			}
			merged, err := source.Load()
			if err != nil {
				return err
			}
			return writeDocument(cmd.OutOrStdout(), merged, output)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "yaml", "output format, yaml or json")
	cmd.Flags().BoolVar(&allowMissing, "allow-missing", false, "skip files that do not exist instead of failing")
	cmd.Flags().StringVar(&subpath, "subpath", "", "subpath expression applied to every file")
	return cmd
}

func writeDocument(w io.Writer, doc map[string]any, format string) error {
	switch format {
	case "yaml":
		buf, err := yaml.Marshal(doc)
		if err != nil {
			return err
		}
		_, err = w.Write(buf)
		return err
	case "json":
		buf, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return err
		}
		buf = append(buf, '\n')
		_, err = w.Write(buf)
		return err
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the psy version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version)
		},
	}
}
