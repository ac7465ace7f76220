package export

import (
	"gopkg.in/yaml.v3"

	"github.com/joseph-ayodele/resume-extractor/internal/record"
)

// EncodeYAML returns the record as a mapping in key order; Social Links
// stays a list.
func EncodeYAML(rec record.Record) ([]byte, error) {
	doc := &yaml.Node{Kind: yaml.MappingNode}
	for _, f := range rec.Fields() {
		key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: f.Key}
		var val *yaml.Node
		if f.Value.Kind() == record.KindSequence {
			val = &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
			for _, item := range f.Value.Items() {
				val.Content = append(val.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: item})
			}
		} else {
			val = &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: f.Value.Scalar()}
		}
		doc.Content = append(doc.Content, key, val)
	}
	return yaml.Marshal(doc)
}
