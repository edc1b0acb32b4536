// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cli

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"littlehands/internal/cache"
	"littlehands/internal/cms"
	"littlehands/internal/fallback"
)

//go:embed schema.yaml
var schemaYAML []byte

// schemaWriter creates or updates content types.
type schemaWriter interface {
	UpsertContentType(ctx context.Context, ct cms.ContentTypeDef) error
}

// entryWriter creates or updates published entries.
type entryWriter interface {
	UpsertEntry(ctx context.Context, contentType, id string, fields map[string]any) error
}

func newProvisionCmd(a *app) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "provision",
		Short: "Set up a Contentful space for the site",
		Long: `Creates the site's content model and starter content in the configured
Contentful space. Requires CONTENTFUL_SPACE_ID and CONTENTFUL_MANAGEMENT_TOKEN.
Both subcommands are idempotent.`,
	}
	cmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "print what would be written without calling the CMS")

	cmd.AddCommand(&cobra.Command{
		Use:   "schema",
		Short: "Create or update the content types",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			defs, err := loadSchema(schemaYAML)
			if err != nil {
				return err
			}
			w, err := a.writer(cmd.OutOrStdout(), dryRun)
			if err != nil {
				return err
			}
			if err := provisionSchema(cmd.Context(), w, defs); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d content types provisioned\n", len(defs))
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "seed",
		Short: "Publish the built-in content as CMS entries",
		Long: `Publishes the fallback content set as CMS entries so a new space starts
with the same articles, sections and site settings. Images are not uploaded.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fb, err := fallback.New()
			if err != nil {
				return err
			}
			w, err := a.writer(cmd.OutOrStdout(), dryRun)
			if err != nil {
				return err
			}
			n, err := seed(cmd.Context(), w, fb.Corpus())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d entries provisioned\n", n)
			if !dryRun {
				a.invalidateCache(cmd.Context())
			}
			return nil
		},
	})

	return cmd
}

// managementWriter is the subset of the management client the provisioning
// commands use.
type managementWriter interface {
	schemaWriter
	entryWriter
}

func (a *app) writer(out io.Writer, dryRun bool) (managementWriter, error) {
	if dryRun {
		return &printWriter{out: out}, nil
	}
	return cms.NewManagementClient(cms.ManagementConfig{
		BaseURL:     a.cfg.ManagementURL,
		SpaceID:     a.cfg.SpaceID,
		Environment: a.cfg.Environment,
		Token:       a.cfg.ManagementToken,
	})
}

// invalidateCache drops cached delivery responses so the server picks up
// the new entries immediately. Failures are logged only.
func (a *app) invalidateCache(ctx context.Context) {
	cfg := a.cfg
	if !cfg.CacheEnabled() {
		return
	}
	client, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		slog.Warn("cache not invalidated", "error", err)
		return
	}
	defer client.Close()

	n, err := cache.NewEnvelopeCache(client, cfg.CMSCacheTTL).InvalidateAll(ctx)
	if err != nil {
		slog.Warn("cache not invalidated", "error", err)
		return
	}
	slog.Info("cms cache invalidated", "keys", n)
}

// loadSchema parses content type definitions and rejects duplicates and
// definitions without an id or fields.
func loadSchema(src []byte) ([]cms.ContentTypeDef, error) {
	var defs []cms.ContentTypeDef
	dec := yaml.NewDecoder(bytes.NewReader(src))
	dec.KnownFields(true)
	if err := dec.Decode(&defs); err != nil {
		return nil, fmt.Errorf("parse schema: %w", err)
	}

	seen := make(map[string]bool, len(defs))
	for _, d := range defs {
		if d.ID == "" || len(d.Fields) == 0 {
			return nil, fmt.Errorf("schema: content type %q needs an id and fields", d.Name)
		}
		if seen[d.ID] {
			return nil, fmt.Errorf("schema: duplicate content type %q", d.ID)
		}
		seen[d.ID] = true

		fields := make(map[string]bool, len(d.Fields))
		for _, f := range d.Fields {
			if fields[f.ID] {
				return nil, fmt.Errorf("schema: %s: duplicate field %q", d.ID, f.ID)
			}
			fields[f.ID] = true
		}
		if !fields[d.DisplayField] {
			return nil, fmt.Errorf("schema: %s: display field %q is not a field", d.ID, d.DisplayField)
		}
	}
	return defs, nil
}

func provisionSchema(ctx context.Context, w schemaWriter, defs []cms.ContentTypeDef) error {
	for _, d := range defs {
		if err := w.UpsertContentType(ctx, d); err != nil {
			return err
		}
	}
	return nil
}

// printWriter reports writes instead of performing them.
type printWriter struct {
	out io.Writer
}

func (p *printWriter) UpsertContentType(_ context.Context, ct cms.ContentTypeDef) error {
	_, err := fmt.Fprintf(p.out, "content type %s (%d fields)\n", ct.ID, len(ct.Fields))
	return err
}

func (p *printWriter) UpsertEntry(_ context.Context, contentType, id string, fields map[string]any) error {
	body, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("entry %s: %w", id, err)
	}
	_, err = fmt.Fprintf(p.out, "entry %s %s %s\n", contentType, id, body)
	return err
}
