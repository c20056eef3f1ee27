package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/probekit/pkg/classify"
	"github.com/dmitrymomot/probekit/pkg/config"
	"github.com/dmitrymomot/probekit/pkg/probe"
)

var (
	snapshotPath string
	signature    string
	fieldName    string
)

var classifyCmd = &cobra.Command{
	Use:   "classify",
	Short: "Classify a snapshot file and print the result",
	Long: `Classify reads a JSON or YAML environment snapshot, classifies it against
the given signature and prints the result as JSON. With --field only that
encoded field is printed.`,
	Example: `  probed classify --snapshot testdata/chrome.yaml --signature "Mozilla/5.0 ... Chrome/55.0"
  probed classify --snapshot env.json --signature "$UA" --field BROWSER_NAME`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		var ceilings classify.Ceilings
		if err := config.Load(&ceilings); err != nil {
			return err
		}

		o, err := probe.LoadFile(snapshotPath)
		if err != nil {
			return fmt.Errorf("load %s: %w", snapshotPath, err)
		}

		r := classify.New(classify.WithCeilings(ceilings)).Classify(o, probe.NewSignature(signature))
		out := cmd.OutOrStdout()

		if fieldName != "" {
			v, err := r.Encode().Field(strings.ToUpper(fieldName))
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(out, v)
			return err
		}

		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	},
}

func init() {
	classifyCmd.Flags().StringVarP(&snapshotPath, "snapshot", "s", "", "snapshot file (.json, .yaml or .yml)")
	classifyCmd.Flags().StringVarP(&signature, "signature", "u", "", "self-reported signature, usually a user agent")
	classifyCmd.Flags().StringVarP(&fieldName, "field", "f", "", "print a single encoded field")
	_ = classifyCmd.MarkFlagRequired("snapshot")
}
