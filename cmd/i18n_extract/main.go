// Copyright 2023 - 2025, VnPower and the EmojiFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
Command i18n_extract writes the gettext template for EmojiFE.

It collects constant msgids passed to i18n.Tr, i18n.TrN and i18n.MsgKey
across the module, then adds the msgids that are only known at run time:
category folder names and the grid status messages.

	go run ./cmd/i18n_extract -o po/emojife.pot
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/tools/go/packages"

	"codeberg.org/emojife/emojife/client"
	"codeberg.org/emojife/emojife/config"
	"codeberg.org/emojife/emojife/core/audit"
	"codeberg.org/emojife/emojife/core/category"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

func main() {
	audit.SetDefaultLogger()

	outPath := flag.String("o", "po/emojife.pot", "output file")
	flag.Parse()

	wd, err := os.Getwd()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get working directory")
	}

	// templ-generated Go sources must exist on disk before this runs.
	pkgs, err := packages.Load(&packages.Config{Mode: packages.LoadAllSyntax, Tests: false}, "./...")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load packages")
	}

	if packages.PrintErrors(pkgs) > 0 {
		log.Fatal().Msg("Failed to load packages due to errors")
	}

	cat := extractRefs(pkgs, findProjectRoot(wd), findI18nPkgPaths(pkgs))
	addRuntimeMsgids(cat)

	if err := os.MkdirAll(filepath.Dir(*outPath), dirPerm); err != nil {
		log.Fatal().Err(err).Msg("Failed to create output directory")
	}

	if err := os.WriteFile(*outPath, []byte(cat.pot(detectVersion(), time.Now())), filePerm); err != nil {
		log.Fatal().Err(err).Str("path", *outPath).Msg("Failed to write output file")
	}

	log.Info().
		Str("path", *outPath).
		Int("msgids", len(cat.entries)).
		Msg("Successfully generated message template")
}

// addRuntimeMsgids adds msgids that reach i18n.Tr through variables.
func addRuntimeMsgids(cat *catalog) {
	for _, c := range category.All() {
		cat.addNote(c.Folder, "Category name")
	}

	for _, msg := range []string{client.MessageLoading, client.MessageEmpty, client.MessageFailed} {
		cat.addNote(msg, "Emoji grid status")
	}

	for _, title := range []string{"About", "Error"} {
		cat.addNote(title, "Page title")
	}
}

// catalog accumulates msgids and where they were found.
type catalog struct {
	entries map[key]*entry
}

// key identifies a gettext entry. For non-plural entries, plural is empty.
type key struct {
	id     string
	plural string
}

type entry struct {
	refs  []ref
	notes []string
}

type ref struct {
	file string
	line int
}

func newCatalog() *catalog {
	return &catalog{entries: make(map[key]*entry)}
}

func (c *catalog) get(k key) *entry {
	e, ok := c.entries[k]
	if !ok {
		e = &entry{}
		c.entries[k] = e
	}

	return e
}

func (c *catalog) addRef(k key, r ref) {
	e := c.get(k)
	e.refs = append(e.refs, r)
}

func (c *catalog) addNote(msgid, note string) {
	e := c.get(key{id: msgid})

	for _, n := range e.notes {
		if n == note {
			return
		}
	}

	e.notes = append(e.notes, note)
}

// pot renders the catalog as a POT file, sorted by msgid.
func (c *catalog) pot(version string, now time.Time) string {
	keys := make([]key, 0, len(c.entries))
	for k := range c.entries {
		keys = append(keys, k)
	}

	sort.Slice(keys, func(i, j int) bool {
		if keys[i].id != keys[j].id {
			return keys[i].id < keys[j].id
		}

		return keys[i].plural < keys[j].plural
	})

	var b strings.Builder

	writeHeader(&b, version, now)

	for i, k := range keys {
		e := c.entries[k]

		for _, note := range e.notes {
			fmt.Fprintf(&b, "#. %s\n", note)
		}

		if len(e.refs) > 0 {
			sort.Slice(e.refs, func(i, j int) bool {
				if e.refs[i].file != e.refs[j].file {
					return e.refs[i].file < e.refs[j].file
				}

				return e.refs[i].line < e.refs[j].line
			})

			// Duplicates are adjacent after sorting.
			fmt.Fprint(&b, "#:")

			var last ref

			for _, r := range e.refs {
				if r != last {
					fmt.Fprintf(&b, " %s:%d", r.file, r.line)
					last = r
				}
			}

			fmt.Fprintln(&b)
		}

		fmt.Fprintf(&b, "msgid %q\n", k.id)

		if k.plural != "" {
			fmt.Fprintf(&b, "msgid_plural %q\n", k.plural)
			fmt.Fprintf(&b, "msgstr[0] \"\"\n")
			fmt.Fprintf(&b, "msgstr[1] \"\"\n")
		} else {
			fmt.Fprintf(&b, "msgstr \"\"\n")
		}

		// Add a separating blank line, but not after the very last entry.
		if i < len(keys)-1 {
			fmt.Fprintln(&b)
		}
	}

	return b.String()
}

// writeHeader emits a POT header.
func writeHeader(b *strings.Builder, version string, now time.Time) {
	fmt.Fprintln(b, `msgid ""`)
	fmt.Fprintln(b, `msgstr ""`)
	fmt.Fprintf(b, "\"Project-Id-Version: EmojiFE %s\\n\"\n", version)
	fmt.Fprintf(b, "\"POT-Creation-Date: %s\\n\"\n", now.UTC().Format("2006-01-02 15:04+0000"))
	fmt.Fprintln(b, `"Language: en\n"`)
	fmt.Fprintln(b, `"MIME-Version: 1.0\n"`)
	fmt.Fprintln(b, `"Content-Type: text/plain; charset=UTF-8\n"`)
	fmt.Fprintln(b, `"Content-Transfer-Encoding: 8bit\n"`)
	fmt.Fprintln(b, `"Plural-Forms: nplurals=2; plural=(n != 1);\n"`)
	fmt.Fprintln(b)
}

// detectVersion resolves a human-friendly version string using git describe.
// Falls back to the release version when git is unavailable.
func detectVersion() string {
	out, err := exec.Command("git", "describe", "--tags", "--always", "--dirty").Output()
	if err != nil {
		return config.BuildVersion
	}

	return strings.TrimSpace(string(out))
}

// findProjectRoot returns the nearest parent directory of wd that contains
// go.mod, or wd itself.
func findProjectRoot(wd string) string {
	dir := filepath.Clean(wd)

	for {
		if fi, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil && !fi.IsDir() {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return wd
		}

		dir = parent
	}
}
