// Copyright 2024 - 2025, the guidefe contributors
// SPDX-License-Identifier: AGPL-3.0-only

/*
I18ncheck cross-checks the guide pages against the translation dictionaries.

It collects every data-translate key used by the HTML files under the
content directory and compares the set with each dictionary under the
languages directory. Keys used by a page but missing from a dictionary
fall back at runtime, so they are reported as warnings; keys missing from
the default dictionary are errors, since there is nothing left to fall
back to. Unused dictionary keys are listed so translations can be pruned.

Usage:

	i18ncheck [-content dir] [-languages dir] [-default code]
*/
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"codeberg.org/guidefe/guidefe/i18n"
)

func main() {
	contentDir := flag.String("content", "./content", "Directory containing the guide pages.")
	languagesDir := flag.String("languages", "./languages", "Directory containing the dictionaries.")
	defaultCode := flag.String("default", string(i18n.DefaultCode), "Default language code.")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	usedKeys, err := collectUsedKeys(os.DirFS(*contentDir))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to scan guide pages")
	}

	dictionaries, err := loadDictionaries(os.DirFS(*languagesDir))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load dictionaries")
	}

	if len(dictionaries) == 0 {
		log.Fatal().Str("dir", *languagesDir).Msg("No dictionaries found")
	}

	failed := false

	for _, code := range sortedCodes(dictionaries) {
		dict := dictionaries[code]

		missing, unused := diffKeys(usedKeys, dict)

		for _, key := range missing {
			if code == *defaultCode {
				failed = true

				log.Error().Str("lang", code).Str("key", key).Msg("Key missing from the default dictionary")
			} else {
				log.Warn().Str("lang", code).Str("key", key).Msg("Key missing; will fall back")
			}
		}

		for _, key := range unused {
			log.Info().Str("lang", code).Str("key", key).Msg("Key not used by any page")
		}
	}

	if _, ok := dictionaries[*defaultCode]; !ok {
		failed = true

		log.Error().Str("lang", *defaultCode).Msg("Default dictionary does not exist")
	}

	if failed {
		os.Exit(1)
	}

	fmt.Printf("checked %d keys against %d dictionaries\n", len(usedKeys), len(dictionaries))
}

// collectUsedKeys walks every HTML file and gathers data-translate keys,
// plus the metadata keys every page implicitly uses.
func collectUsedKeys(content fs.FS) (map[string][]string, error) {
	used := map[string][]string{
		i18n.PageTitleKey:       {"(page metadata)"},
		i18n.PageDescriptionKey: {"(page metadata)"},
	}

	err := fs.WalkDir(content, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() || !strings.HasSuffix(path, ".html") {
			return nil
		}

		f, err := content.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()

		doc, err := goquery.NewDocumentFromReader(f)
		if err != nil {
			return fmt.Errorf("failed to parse %s: %w", path, err)
		}

		doc.Find("[" + i18n.TranslateAttr + "]").Each(func(_ int, sel *goquery.Selection) {
			if key, _ := sel.Attr(i18n.TranslateAttr); key != "" {
				used[key] = append(used[key], path)
			}
		})

		return nil
	})
	if err != nil {
		return nil, err
	}

	return used, nil
}

// loadDictionaries reads every <code>.json file into a flat dictionary.
func loadDictionaries(languages fs.FS) (map[string]i18n.Dictionary, error) {
	entries, err := fs.ReadDir(languages, ".")
	if err != nil {
		return nil, err
	}

	dicts := make(map[string]i18n.Dictionary, len(entries))

	for _, entry := range entries {
		code, ok := strings.CutSuffix(entry.Name(), ".json")
		if entry.IsDir() || !ok {
			continue
		}

		raw, err := fs.ReadFile(languages, entry.Name())
		if err != nil {
			return nil, err
		}

		var dict i18n.Dictionary
		if err := json.Unmarshal(raw, &dict); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", filepath.Join(".", entry.Name()), err)
		}

		dicts[code] = dict
	}

	return dicts, nil
}

// diffKeys returns the used keys missing from dict and the dict keys no
// page uses, both sorted.
func diffKeys(used map[string][]string, dict i18n.Dictionary) (missing, unused []string) {
	for key := range used {
		if _, ok := dict[key]; !ok {
			missing = append(missing, key)
		}
	}

	for key := range dict {
		if _, ok := used[key]; !ok {
			unused = append(unused, key)
		}
	}

	sort.Strings(missing)
	sort.Strings(unused)

	return missing, unused
}

func sortedCodes(dicts map[string]i18n.Dictionary) []string {
	codes := make([]string, 0, len(dicts))
	for code := range dicts {
		codes = append(codes, code)
	}

	sort.Strings(codes)

	return codes
}
