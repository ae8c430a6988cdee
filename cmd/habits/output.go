package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/comitanigiacomo/kanso-habit-store/internal/core/domain"
)

const (
	outputText = "text"
	outputJSON = "json"
	outputYAML = "yaml"
)

// render writes v in the structured formats, or calls text for the default one.
func (s *session) render(w io.Writer, v any, text func(io.Writer) error) error {
	switch s.output {
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case outputYAML:
		// Round trip through JSON so YAML keys match the JSON field names.
		raw, err := json.Marshal(v)
		if err != nil {
			return err
		}
		var generic any
		if err := json.Unmarshal(raw, &generic); err != nil {
			return err
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(generic); err != nil {
			return err
		}
		return enc.Close()
	default:
		return text(w)
	}
}

func habitTable(w io.Writer, habits []domain.Habit) error {
	if len(habits) == 0 {
		_, err := fmt.Fprintln(w, "No habits yet. Add one with: habits add <name>")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tHABIT\tSTREAK\tBEST")
	for _, h := range habits {
		fmt.Fprintf(tw, "%s\t%s %s\t%d\t%d\n", h.ID, h.Emoji, h.Name, h.Streak, h.BestStreak)
	}
	return tw.Flush()
}

func progressBar(percentage int) string {
	const width = 20
	filled := percentage * width / 100
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", width-filled) + "]"
}
