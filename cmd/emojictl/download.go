// Copyright 2023 - 2025, VnPower and the EmojiFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"go.uber.org/ratelimit"
	"golang.org/x/sync/errgroup"

	"codeberg.org/emojife/emojife/core"
)

const (
	defaultExtension = ".webp"
	dirPerm          = 0o755
	filePerm         = 0o644
)

var (
	errUnsafeName = errors.New("emoji name is not a plain file name")
	errDownload   = errors.New("download failed")
	errBadRate    = errors.New("--rate must be at least 1 request per second")
)

// downloader saves emoji images to a directory at a bounded request rate.
type downloader struct {
	httpClient *http.Client
	limiter    ratelimit.Limiter
	dir        string
	workers    int
	overwrite  bool
}

func newDownloadCmd() *cobra.Command {
	var (
		dir       string
		rate      int
		workers   int
		overwrite bool
	)

	cmd := &cobra.Command{
		Use:   "download <category>",
		Short: "Downloads every emoji image of a category.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if rate < 1 {
				return fmt.Errorf("%w, got %d", errBadRate, rate)
			}

			state, err := fetch(cmd, args[0])
			if err != nil {
				return err
			}

			d := &downloader{
				httpClient: httpClient(),
				limiter:    ratelimit.New(rate),
				dir:        dir,
				workers:    workers,
				overwrite:  overwrite,
			}

			saved, err := d.run(cmd.Context(), state.Emojis)

			log.Info().
				Str("category", state.Category).
				Int("saved", saved).
				Int("total", len(state.Emojis)).
				Str("dir", dir).
				Msg("Download finished")

			return err
		},
	}

	cmd.Flags().StringVarP(&dir, "output", "o", ".", "Directory to save images in.")
	cmd.Flags().IntVarP(&rate, "rate", "r", 10, "Maximum image requests per second.")
	cmd.Flags().IntVarP(&workers, "workers", "w", 4, "Number of concurrent downloads.")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace files that already exist.")

	return cmd
}

// run downloads emojis and returns how many files were written.
func (d *downloader) run(ctx context.Context, emojis []core.EmojiAsset) (int, error) {
	if err := os.MkdirAll(d.dir, dirPerm); err != nil {
		return 0, fmt.Errorf("failed to create output directory: %w", err)
	}

	results := make([]bool, len(emojis))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(d.workers, 1))

	for i, emoji := range emojis {
		g.Go(func() error {
			saved, err := d.save(ctx, emoji)
			results[i] = saved

			return err
		})
	}

	err := g.Wait()

	saved := 0

	for _, ok := range results {
		if ok {
			saved++
		}
	}

	return saved, err
}

// save downloads one emoji. It reports false without error for existing files
// when overwriting is disabled.
func (d *downloader) save(ctx context.Context, emoji core.EmojiAsset) (bool, error) {
	target, err := d.targetPath(emoji)
	if err != nil {
		return false, err
	}

	if !d.overwrite {
		if _, err := os.Stat(target); err == nil {
			log.Debug().Str("path", target).Msg("Skipping existing file")

			return false, nil
		}
	}

	d.limiter.Take()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, emoji.DownloadURL, nil)
	if err != nil {
		return false, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("failed to make HTTP request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("%w: %s: status %d", errDownload, emoji.Name, resp.StatusCode)
	}

	// Write to a temporary file first so an interrupted download leaves nothing behind.
	tmp, err := os.CreateTemp(d.dir, ".emojictl-*")
	if err != nil {
		return false, fmt.Errorf("failed to create temporary file: %w", err)
	}

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())

		return false, fmt.Errorf("failed to read %s: %w", emoji.Name, err)
	}

	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())

		return false, fmt.Errorf("failed to write %s: %w", emoji.Name, err)
	}

	if err := os.Chmod(tmp.Name(), filePerm); err != nil {
		_ = os.Remove(tmp.Name())

		return false, fmt.Errorf("failed to write %s: %w", emoji.Name, err)
	}

	if err := os.Rename(tmp.Name(), target); err != nil {
		_ = os.Remove(tmp.Name())

		return false, fmt.Errorf("failed to write %s: %w", emoji.Name, err)
	}

	log.Debug().Str("path", target).Msg("Saved emoji")

	return true, nil
}

// targetPath returns the file an emoji is saved to. The extension is taken
// from the download URL.
func (d *downloader) targetPath(emoji core.EmojiAsset) (string, error) {
	name := emoji.Name
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("%w: %q", errUnsafeName, name)
	}

	ext := defaultExtension

	if u, err := url.Parse(emoji.DownloadURL); err == nil {
		if e := path.Ext(u.Path); e != "" {
			ext = e
		}
	}

	return filepath.Join(d.dir, name+ext), nil
}
