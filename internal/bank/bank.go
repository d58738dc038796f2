// Package bank loads the static trivia data once at startup into an
// immutable table and hands out per-session shuffle bags so questions do not
// repeat until a bag is exhausted.
package bank

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/multierr"

	"github.com/partyquiz/hotseat-backend/internal/question"
)

//go:embed questions.json
var defaultData []byte

// Entry is one raw question: choices are in authoritative order, so element
// 0 is the correct hot-seat answer and the full slice is the fastest-finger
// ranking.
type Entry struct {
	Text    string   `json:"text"`
	Choices []string `json:"choices"`
}

type bankFile struct {
	FastestFinger []Entry `json:"fastestFinger"`
	Easy          []Entry `json:"easy"`
	Medium        []Entry `json:"medium"`
	Hard          []Entry `json:"hard"`
}

// Bank is the immutable question table shared by every session.
type Bank struct {
	FastestFinger []Entry
	HotSeat       map[question.Difficulty][]Entry
}

// Default returns the bank embedded in the binary.
func Default() (*Bank, error) {
	return parse(defaultData)
}

// LoadDir reads every *.json file in dir and merges them into one bank,
// accumulating per-file problems instead of stopping at the first.
func LoadDir(dir string) (*Bank, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("bank: no question files in %s", dir)
	}

	merged := &Bank{HotSeat: map[question.Difficulty][]Entry{}}
	var errs error
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		b, err := parse(data)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", path, err))
			continue
		}
		merged.FastestFinger = append(merged.FastestFinger, b.FastestFinger...)
		for d, entries := range b.HotSeat {
			merged.HotSeat[d] = append(merged.HotSeat[d], entries...)
		}
	}
	if errs != nil {
		return nil, errs
	}
	return merged, merged.validate()
}

func parse(data []byte) (*Bank, error) {
	var f bankFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	b := &Bank{
		FastestFinger: f.FastestFinger,
		HotSeat: map[question.Difficulty][]Entry{
			question.Easy:   f.Easy,
			question.Medium: f.Medium,
			question.Hard:   f.Hard,
		},
	}
	return b, b.validate()
}

func (b *Bank) validate() error {
	var errs error
	check := func(section string, entries []Entry) {
		if len(entries) == 0 {
			errs = multierr.Append(errs, fmt.Errorf("bank: section %q is empty", section))
		}
		for i, e := range entries {
			if e.Text == "" {
				errs = multierr.Append(errs, fmt.Errorf("bank: %s[%d]: empty text", section, i))
			}
			if len(e.Choices) != question.NumChoices {
				errs = multierr.Append(errs,
					fmt.Errorf("bank: %s[%d]: want %d choices, got %d", section, i, question.NumChoices, len(e.Choices)))
			}
		}
	}
	check("fastestFinger", b.FastestFinger)
	check("easy", b.HotSeat[question.Easy])
	check("medium", b.HotSeat[question.Medium])
	check("hard", b.HotSeat[question.Hard])
	return errs
}
