package output

import (
	"io"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// PrintYAML writes data as YAML. data goes through its JSON encoding
// first so that custom MarshalJSON methods and key order carry over.
func PrintYAML(w io.Writer, data any) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	var doc yaml.Node
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return err
	}
	blockStyle(&doc)

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	defer func() { _ = enc.Close() }()
	return enc.Encode(&doc)
}

// blockStyle clears the flow and quoting styles the JSON source left on
// every node.
func blockStyle(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		blockStyle(c)
	}
}
