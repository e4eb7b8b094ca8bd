// Package report renders simulation events for the console.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/nvandessel/cellwalk/internal/simulation"
)

// errWriter remembers the first write error and drops later writes.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	if err != nil {
		e.err = err
	}
	return n, err
}

// TextObserver writes the human-readable snapshot stream.
type TextObserver struct {
	w        *errWriter
	interval time.Duration
}

// Text returns an observer printing the run to w as plain text.
func Text(w io.Writer) *TextObserver {
	return &TextObserver{w: &errWriter{w: w}}
}

// Err returns the first error hit while writing, if any.
func (o *TextObserver) Err() error {
	return o.w.err
}

func (o *TextObserver) Started(info simulation.RunInfo) {
	o.interval = info.SnapshotInterval
	fmt.Fprintf(o.w, "Initial number of particles: %d\n", info.Particles)
	fmt.Fprintf(o.w, "Duration: %s\n", describeDuration(info.Duration()))
	if info.SnapshotInterval == time.Second {
		fmt.Fprintln(o.w, "Snapshots every second:")
	} else {
		fmt.Fprintf(o.w, "Snapshots every %s:\n", info.SnapshotInterval)
	}
}

func (o *TextObserver) Snapshot(step int, cells []int) {
	fmt.Fprintln(o.w, FormatSnapshot(o.label(step), cells))
}

func (o *TextObserver) Completed(res simulation.Result) {
	if res.Interrupted {
		fmt.Fprintf(o.w, "The simulation was interrupted after %d snapshots.\n", res.Steps)
	} else {
		fmt.Fprintln(o.w, "The simulation is complete.")
	}
	if res.WorkerFailures > 0 {
		fmt.Fprintf(o.w, "Failed particle workers: %d\n", res.WorkerFailures)
	}
	fmt.Fprintf(o.w, "Initial number of particles: %d\n", res.Initial)
	fmt.Fprintf(o.w, "Final number of particles: %d\n", res.Final)
	fmt.Fprintln(o.w, Verdict(res))
}

func (o *TextObserver) label(step int) string {
	if o.interval == time.Second {
		return strconv.Itoa(step) + "s"
	}
	return strconv.Itoa(step)
}

// FormatSnapshot renders one snapshot line: "[label] c0 c1 ... cN-1".
func FormatSnapshot(label string, cells []int) string {
	var sb strings.Builder
	sb.WriteString("[")
	sb.WriteString(label)
	sb.WriteString("]")
	for _, c := range cells {
		sb.WriteByte(' ')
		sb.WriteString(strconv.Itoa(c))
	}
	return sb.String()
}

// Verdict returns the final conservation line for res.
func Verdict(res simulation.Result) string {
	if res.Conserved {
		return "The total number of particles remained unchanged."
	}
	return "The total number of particles has changed."
}

func describeDuration(d time.Duration) string {
	if d == time.Minute {
		return "1 minute"
	}
	return d.String()
}

// event is one line of the JSON stream.
type event struct {
	Event  string              `json:"event"`
	Run    *simulation.RunInfo `json:"run,omitempty"`
	Step   int                 `json:"step,omitempty"`
	Cells  []int               `json:"cells,omitempty"`
	Result *simulation.Result  `json:"result,omitempty"`
}

// JSONObserver writes every event as a JSON line.
type JSONObserver struct {
	enc *json.Encoder
	err error
}

// JSON returns an observer writing JSON lines to w.
func JSON(w io.Writer) *JSONObserver {
	return &JSONObserver{enc: json.NewEncoder(w)}
}

func (o *JSONObserver) Started(info simulation.RunInfo) {
	o.encode(event{Event: "started", Run: &info})
}

func (o *JSONObserver) Snapshot(step int, cells []int) {
	o.encode(event{Event: "snapshot", Step: step, Cells: cells})
}

func (o *JSONObserver) Completed(res simulation.Result) {
	o.encode(event{Event: "completed", Result: &res})
}

// Err returns the first error hit while encoding, if any.
func (o *JSONObserver) Err() error {
	return o.err
}

// encode writes ev unless an earlier event already failed.
func (o *JSONObserver) encode(ev event) {
	if o.err != nil {
		return
	}
	if err := o.enc.Encode(ev); err != nil {
		o.err = fmt.Errorf("failed to write %s event: %w", ev.Event, err)
	}
}
