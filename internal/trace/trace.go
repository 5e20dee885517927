// Package trace renders an interpreter run's recorded Steps into the JSON
// document shape used by hosts that want to replay or inspect execution
// (spec §6, "trace interface"). Building is done incrementally with
// tidwall/sjson rather than by round-tripping through a Go struct and
// encoding/json, since the step count and each step's variable set are only
// known as the run progresses.
package trace

import (
	"fmt"
	"sort"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/maiaiia/pseudocronic/internal/interp"
)

// Encode renders steps as the top-level JSON array the trace interface
// (spec §6) documents: [{...}, ...]. Each step object carries
// step/type/line/description/node_details/value/variables/output. Variable
// names are emitted in sorted order so two runs over the same program
// produce byte-identical trace JSON.
func Encode(steps []interp.Step) (string, error) {
	doc := `[]`
	for _, s := range steps {
		obj, err := encodeStep(s)
		if err != nil {
			return "", err
		}
		doc, err = sjson.SetRaw(doc, "-1", obj)
		if err != nil {
			return "", err
		}
	}
	return doc, nil
}

func encodeStep(s interp.Step) (string, error) {
	obj := "{}"
	var err error
	set := func(path string, value any) {
		if err != nil {
			return
		}
		obj, err = sjson.Set(obj, path, value)
	}

	set("step", s.StepNumber)
	set("type", s.NodeKind)
	set("line", s.Line)
	set("description", s.Description)
	if s.NodeDetails != "" {
		set("node_details", s.NodeDetails)
	}
	set("output", s.OutputSoFar)
	if s.Value != nil {
		set("value", valueJSON(*s.Value))
	}

	names := make([]string, 0, len(s.Snapshot))
	for name := range s.Snapshot {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		// Identifiers in this dialect are letters/digits/underscore only
		// (internal/lexer), so no path-escaping is needed here.
		set("variables."+name, valueJSON(s.Snapshot[name]))
	}
	return obj, err
}

// valueJSON converts a runtime Value to the plain Go type sjson encodes it
// as: int64/float64/bool/string.
func valueJSON(v interp.Value) any {
	switch v.Kind {
	case interp.VInt:
		return v.I
	case interp.VReal:
		return v.F
	case interp.VBool:
		return v.B
	case interp.VString:
		return v.S
	default:
		return nil
	}
}

// StepCount returns the number of recorded steps in a trace document, read
// back with gjson.
func StepCount(doc string) int {
	return int(gjson.Get(doc, "#").Int())
}

// At returns the gjson.Result for the step at index i (0-based).
func At(doc string, i int) gjson.Result {
	return gjson.Get(doc, fmt.Sprintf("%d", i))
}

// FinalOutput returns output from the last recorded step, or "" if the
// trace has no steps.
func FinalOutput(doc string) string {
	n := StepCount(doc)
	if n == 0 {
		return ""
	}
	return At(doc, n-1).Get("output").String()
}
