package report

import (
	"cmp"
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/imamik/topocheck/internal/validation"
)

// ValidatorResult is the outcome of one validator for one file.
type ValidatorResult struct {
	Name               string   `json:"name"`
	Passed             bool     `json:"passed"`
	InvalidConfigTypes []string `json:"invalidConfigTypes,omitempty"`
	Error              string   `json:"error,omitempty"`
}

// FileReport is the outcome for one request file.
type FileReport struct {
	File       string            `json:"file"`
	Topology   string            `json:"topology,omitempty"`
	Stack      string            `json:"stack,omitempty"`
	Passed     bool              `json:"passed"`
	Error      string            `json:"error,omitempty"`
	Validators []ValidatorResult `json:"validators,omitempty"`
	DurationMS int64             `json:"durationMs"`
}

// Errored reports whether the file could not be validated at all.
func (f FileReport) Errored() bool {
	return f.Error != ""
}

// Summary is the outcome of a whole run.
type Summary struct {
	Files   []FileReport `json:"files"`
	Passed  int          `json:"passed"`
	Failed  int          `json:"failed"`
	Errored int          `json:"errored"`
}

// OK reports whether every file passed.
func (s Summary) OK() bool {
	return s.Failed == 0 && s.Errored == 0
}

// FromValidation converts a pipeline report.
func FromValidation(file, stack string, r *validation.Report) FileReport {
	fr := FileReport{
		File:       file,
		Topology:   r.Topology,
		Stack:      stack,
		Passed:     r.Passed(),
		DurationMS: r.Duration.Milliseconds(),
	}
	for _, res := range r.Results {
		vr := ValidatorResult{Name: res.Validator, Passed: res.Passed}
		if res.Err != nil {
			vr.InvalidConfigTypes = validation.InvalidConfigTypes(res.Err)
			if len(vr.InvalidConfigTypes) == 0 {
				vr.Error = res.Err.Error()
			}
		}
		fr.Validators = append(fr.Validators, vr)
	}
	return fr
}

// FromError reports a file that could not be loaded, resolved or run.
func FromError(file string, err error, elapsed time.Duration) FileReport {
	return FileReport{File: file, Error: err.Error(), DurationMS: elapsed.Milliseconds()}
}

// NewSummary tallies file reports. Files are ordered by name.
func NewSummary(files []FileReport) Summary {
	s := Summary{Files: slices.Clone(files)}
	slices.SortFunc(s.Files, func(a, b FileReport) int { return cmp.Compare(a.File, b.File) })
	for _, f := range s.Files {
		switch {
		case f.Errored():
			s.Errored++
		case f.Passed:
			s.Passed++
		default:
			s.Failed++
		}
	}
	return s
}

// WriteJSON writes the summary as indented JSON.
func WriteJSON(w io.Writer, s Summary) error {
	if s.Files == nil {
		s.Files = []FileReport{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return nil
}

// WriteText writes a human-readable summary. Color is used only when asked.
func WriteText(w io.Writer, s Summary, color bool) error {
	st := newStyles(lipgloss.NewRenderer(w), color)
	var b strings.Builder

	fmt.Fprintf(&b, "%s %s\n\n", st.title.Render("topocheck"), st.dim.Render(fmt.Sprintf("%d file(s) checked", len(s.Files))))

	for _, f := range s.Files {
		label := f.File
		if f.Stack != "" {
			label += " " + st.dim.Render("("+f.Stack+")")
		}

		switch {
		case f.Errored():
			fmt.Fprintf(&b, "%s %s\n", st.errored.Render(warnMark), label)
			fmt.Fprintf(&b, "     %s\n", st.errored.Render(f.Error))
		case f.Passed:
			fmt.Fprintf(&b, "%s %s\n", st.passed.Render(checkMark), label)
		default:
			fmt.Fprintf(&b, "%s %s\n", st.failed.Render(crossMark), label)
			for _, v := range f.Validators {
				if v.Passed {
					continue
				}
				if len(v.InvalidConfigTypes) > 0 {
					fmt.Fprintf(&b, "     %s: config types not defined in the stack: %s\n",
						st.name.Render(v.Name), strings.Join(v.InvalidConfigTypes, ", "))
				} else {
					fmt.Fprintf(&b, "     %s: %s\n", st.name.Render(v.Name), v.Error)
				}
			}
		}
	}

	fmt.Fprintf(&b, "\n%s, %s, %s\n",
		st.passed.Render(fmt.Sprintf("%d passed", s.Passed)),
		st.failed.Render(fmt.Sprintf("%d failed", s.Failed)),
		st.errored.Render(fmt.Sprintf("%d errored", s.Errored)),
	)

	_, err := io.WriteString(w, b.String())
	return err
}

// IsTerminal reports whether w is an interactive terminal.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
