package retriever

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Document is one policy entry of the seed corpus.
type Document struct {
	ID       string            `yaml:"id"`
	Text     string            `yaml:"text"`
	Metadata map[string]string `yaml:"metadata"`
}

//go:embed policies.yaml
var defaultCorpus []byte

// LoadCorpus reads the policy corpus from path, or the embedded default
// corpus when path is empty.
func LoadCorpus(path string) ([]Document, error) {
	data := defaultCorpus
	if strings.TrimSpace(path) != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read corpus: %w", err)
		}
	}

	var docs []Document
	if err := yaml.Unmarshal(data, &docs); err != nil {
		return nil, fmt.Errorf("parse corpus: %w", err)
	}

	for i, doc := range docs {
		if strings.TrimSpace(doc.ID) == "" {
			return nil, fmt.Errorf("corpus entry %d has no id", i)
		}
		if strings.TrimSpace(doc.Text) == "" {
			return nil, fmt.Errorf("corpus entry %q has no text", doc.ID)
		}
	}

	return docs, nil
}
