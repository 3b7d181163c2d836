package serializer

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"text/tabwriter"
)

const emptyValue = "<empty>"

// writeTable prints data as FIELD/VALUE rows with dotted, indexed keys.
// Data goes through its JSON form first so field names and omitempty rules
// match the JSON output.
func writeTable(w io.Writer, data any) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to serialize to table: %w", err)
	}
	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return fmt.Errorf("failed to serialize to table: %w", err)
	}

	type row struct{ field, value string }
	var rows []row
	flatten("", generic, func(field, value string) {
		rows = append(rows, row{field, value})
	})

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "FIELD\tVALUE")
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%s\n", r.field, r.value)
	}
	return tw.Flush()
}

func flatten(prefix string, v any, emit func(field, value string)) {
	switch val := v.(type) {
	case map[string]any:
		if len(val) == 0 {
			emit(prefix, emptyValue)
			return
		}
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		for _, k := range keys {
			key := k
			if prefix != "" {
				key = prefix + "." + k
			}
			flatten(key, val[k], emit)
		}
	case []any:
		if len(val) == 0 {
			emit(prefix, emptyValue)
			return
		}
		for i, item := range val {
			flatten(fmt.Sprintf("%s[%d]", prefix, i), item, emit)
		}
	case nil:
		emit(prefix, emptyValue)
	default:
		emit(prefix, fmt.Sprint(val))
	}
}
