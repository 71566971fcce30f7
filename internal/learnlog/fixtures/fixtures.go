// Package fixtures loads interaction batches from YAML for bulk import and
// dev seeding.
//
//	interactions:
//	  - learner_id: 1
//	    item_id: 5
//	    kind: attempt
package fixtures

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/BrandonDHaskell/learnlog/internal/learnlog/types"
)

type document struct {
	Interactions []types.RecordInteractionRequest `yaml:"interactions"`
}

// Load decodes a fixture document. Unknown keys are an error. An empty
// document yields no requests.
func Load(r io.Reader) ([]types.RecordInteractionRequest, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("decode fixtures: %w", err)
	}
	return doc.Interactions, nil
}

func LoadFile(path string) ([]types.RecordInteractionRequest, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixtures %s: %w", path, err)
	}
	return Load(bytes.NewReader(b))
}
