package ipa

import (
	"bytes"
	"encoding/json"
	"sort"
)

type jsonKV struct {
	Key string
	Val string
	Raw bool
}

// RenderOptions controls JSON layout. Without Sort, keys keep field
// declaration order (records) or input order (keyed output).
type RenderOptions struct {
	Pretty bool
	Sort   bool
}

// RenderInfo renders a single record as a JSON object.
func RenderInfo(info Info, opts RenderOptions) string {
	return finishJSON(renderJSONObject(info.jsonFields(), opts.Sort), opts)
}

// RenderJSON renders records as a JSON array.
func RenderJSON(infos []Info, opts RenderOptions) string {
	items := make([]string, 0, len(infos))
	for _, info := range infos {
		items = append(items, renderJSONObject(info.jsonFields(), opts.Sort))
	}
	return finishJSON(renderJSONArray(items), opts)
}

// RenderJSONKeyed renders results as one JSON object keyed by strategy.
// Results without a key are dropped; a repeated key keeps the last record.
func RenderJSONKeyed(results []Result, key KeyStrategy, opts RenderOptions) string {
	fields := make([]jsonKV, 0, len(results))
	index := make(map[string]int, len(results))
	for _, res := range results {
		k := key.keyFor(res)
		if k == "" {
			continue
		}
		val := renderJSONObject(res.Info.jsonFields(), opts.Sort)
		if i, ok := index[k]; ok {
			fields[i].Val = val
			continue
		}
		index[k] = len(fields)
		fields = append(fields, jsonKV{Key: k, Val: val, Raw: true})
	}
	return finishJSON(renderJSONObject(fields, opts.Sort), opts)
}

func finishJSON(compact string, opts RenderOptions) string {
	if !opts.Pretty {
		return compact
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, []byte(compact), "", "  "); err != nil {
		return compact
	}
	return buf.String()
}

func renderJSONObject(fields []jsonKV, sorted bool) string {
	if sorted {
		fields = append([]jsonKV(nil), fields...)
		sort.SliceStable(fields, func(i, j int) bool {
			return fields[i].Key < fields[j].Key
		})
	}
	var buf bytes.Buffer
	buf.WriteString("{")
	for i, field := range fields {
		if i > 0 {
			buf.WriteString(",")
		}
		writeJSONField(&buf, field.Key, field.Val, field.Raw)
	}
	buf.WriteString("}")
	return buf.String()
}

func renderJSONArray(items []string) string {
	var buf bytes.Buffer
	buf.WriteString("[")
	for i, item := range items {
		if i > 0 {
			buf.WriteString(",")
		}
		buf.WriteString(item)
	}
	buf.WriteString("]")
	return buf.String()
}

func writeJSONField(buf *bytes.Buffer, key, value string, raw bool) {
	buf.WriteString(renderJSONString(key))
	buf.WriteString(":")
	if raw {
		buf.WriteString(value)
		return
	}
	buf.WriteString(renderJSONString(value))
}

func renderJSONString(value string) string {
	data, _ := json.Marshal(value)
	return string(data)
}
