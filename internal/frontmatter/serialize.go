package frontmatter

import (
	"bytes"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// SerializeYAML writes fields as canonical YAML (without delimiters).
//
// The same data decoded from YAML, TOML or JSON serializes to the same bytes:
// keys are sorted at every level, integral floats are written as integers
// (JSON has no integer type) and timestamps are written in RFC 3339. The
// newline comes from style (default \n). An empty map yields an empty slice.
func SerializeYAML(fields map[string]any, style Style) ([]byte, error) {
	if len(fields) == 0 {
		return []byte{}, nil
	}

	root, err := toNode(fields)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	err = enc.Encode(root)
	if cerr := enc.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return nil, err
	}

	out := buf.Bytes()
	if style.Newline != "" && style.Newline != "\n" {
		out = bytes.ReplaceAll(out, []byte("\n"), []byte(style.Newline))
	}
	return out, nil
}

func toNode(v any) (*yaml.Node, error) {
	switch vv := v.(type) {
	case nil:
		return scalar("!!null", "null"), nil
	case string:
		return scalar("!!str", vv), nil
	case bool:
		return scalar("!!bool", strconv.FormatBool(vv)), nil
	case int:
		return scalar("!!int", strconv.Itoa(vv)), nil
	case int64:
		return scalar("!!int", strconv.FormatInt(vv, 10)), nil
	case uint64:
		return scalar("!!int", strconv.FormatUint(vv, 10)), nil
	case float64:
		if vv == math.Trunc(vv) && math.Abs(vv) < 1<<53 {
			return scalar("!!int", strconv.FormatInt(int64(vv), 10)), nil
		}
		return scalar("!!float", strconv.FormatFloat(vv, 'g', -1, 64)), nil
	case time.Time:
		return scalar("!!timestamp", vv.UTC().Format(time.RFC3339Nano)), nil
	case map[string]any:
		return mapNode(vv)
	case []any:
		return seqNode(len(vv), func(i int) any { return vv[i] })
	}

	// Everything else: other map and slice types, and go-toml's local date types.
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map:
		m := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			m[fmt.Sprint(iter.Key().Interface())] = iter.Value().Interface()
		}
		return mapNode(m)
	case reflect.Slice, reflect.Array:
		return seqNode(rv.Len(), func(i int) any { return rv.Index(i).Interface() })
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32:
		return toNode(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32:
		return toNode(rv.Uint())
	case reflect.Float32:
		return toNode(rv.Float())
	}
	if s, ok := v.(fmt.Stringer); ok {
		return scalar("!!str", s.String()), nil
	}
	return nil, fmt.Errorf("cannot serialize value of type %T", v)
}

func mapNode(m map[string]any) (*yaml.Node, error) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	n := &yaml.Node{Kind: yaml.MappingNode}
	for _, k := range keys {
		val, err := toNode(m[k])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", k, err)
		}
		n.Content = append(n.Content, scalar("!!str", k), val)
	}
	return n, nil
}

func seqNode(n int, at func(int) any) (*yaml.Node, error) {
	seq := &yaml.Node{Kind: yaml.SequenceNode}
	for i := 0; i < n; i++ {
		item, err := toNode(at(i))
		if err != nil {
			return nil, fmt.Errorf("[%d]: %w", i, err)
		}
		seq.Content = append(seq.Content, item)
	}
	return seq, nil
}

func scalar(tag, value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}
