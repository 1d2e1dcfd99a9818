package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/dawnpage/internal/schema"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace the configuration with a JSON document",
	Long: "Validate the document and, when it is valid, replace the configuration with it. Use - to read stdin.\n" +
		"The document is sent to the running server (--server); --offline writes storage directly and must " +
		"only be used while the server is stopped.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := readDocument(cmd, args[0])
		if err != nil {
			return err
		}

		var cfg schema.AppConfig
		if offline {
			sess, closeFn, err := openOfflineSession(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()
			cfg, err = sess.ImportRaw(cmd.Context(), data)
			if err != nil {
				return printIssues(cmd.ErrOrStderr(), err)
			}
		} else {
			cfg, err = newServerClient(serverURL).Import(cmd.Context(), data)
			if err != nil {
				return printIssues(cmd.ErrOrStderr(), err)
			}
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Imported %d link(s), %d section(s), %d widget(s)\n",
			len(cfg.Links.Items), len(cfg.Links.Sections), len(cfg.Widgets.Items))
		return nil
	},
}

var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Check a JSON configuration document without importing it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := readDocument(cmd, args[0])
		if err != nil {
			return err
		}
		if _, err := schema.ParseJSON(data); err != nil {
			return printIssues(cmd.ErrOrStderr(), err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "OK")
		return nil
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Replace the configuration with the default one",
	Long:  "Reset the running server's configuration (--server), or storage directly with --offline while the server is stopped.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if offline {
			sess, closeFn, err := openOfflineSession(cmd.Context())
			if err != nil {
				return err
			}
			defer closeFn()
			if _, err := sess.Reset(cmd.Context()); err != nil {
				return err
			}
		} else if _, err := newServerClient(serverURL).Reset(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Configuration reset (%s)\n", schema.StorageKey)
		return nil
	},
}

func readDocument(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}
