package configwriter

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"os"
	"strings"
)

// Read parses a config file back into a settings map using the same
// extension rules as Write. Unrecognized extensions return the raw file body
// under the "raw" key. INI and XML values come back as strings; JSON values
// keep their types, with whole numbers normalized to int so a written map
// reads back equal.
func (w *Writer) Read(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	switch formatFor(path, "") {
	case "ini":
		return decodeINI(string(data)), nil
	case "json":
		return decodeJSON(data)
	case "xml":
		return decodeXML(data)
	default:
		return map[string]any{"raw": string(data)}, nil
	}
}

func decodeINI(body string) map[string]any {
	out := make(map[string]any)
	for _, line := range strings.Split(body, "\n") {
		k, v, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		out[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}
	return out
}

func decodeJSON(data []byte) (map[string]any, error) {
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("parse json config: %w", err)
	}
	for k, v := range out {
		if f, ok := v.(float64); ok && f == float64(int(f)) {
			out[k] = int(f)
		}
	}
	return out, nil
}

// decodeXML reads the flat <Settings> element tree written by encodeXML.
func decodeXML(data []byte) (map[string]any, error) {
	dec := xml.NewDecoder(strings.NewReader(string(data)))
	out := make(map[string]any)

	var current string
	for {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "Settings" {
				continue
			}
			current = t.Name.Local
		case xml.CharData:
			if current != "" {
				out[current] = strings.TrimSpace(string(t))
			}
		case xml.EndElement:
			current = ""
		}
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("parse xml config: no settings elements found")
	}
	return out, nil
}
