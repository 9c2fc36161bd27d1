package partition

import (
	"fmt"

	"github.com/pelletier/go-toml/v2"
)

type document struct {
	Range  Range   `toml:"range"`
	Blocks []Block `toml:"block"`
}

// Export encodes p as TOML: a [range] table followed by one [[block]]
// table per block.
func Export(p Plan) ([]byte, error) {
	data, err := toml.Marshal(document{Range: p.Range, Blocks: p.Blocks})
	if err != nil {
		return nil, fmt.Errorf("encoding plan: %w", err)
	}
	return data, nil
}

// Import decodes a plan written by Export and validates it.
func Import(data []byte) (Plan, error) {
	var doc document
	if err := toml.Unmarshal(data, &doc); err != nil {
		return Plan{}, fmt.Errorf("decoding plan: %w", err)
	}
	p := Plan{Range: doc.Range, Blocks: doc.Blocks}
	if err := Validate(p); err != nil {
		return Plan{}, err
	}
	return p, nil
}
