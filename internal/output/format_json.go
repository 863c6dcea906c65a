// Package output renders projection results for the CLI. This is the
// machine/console surface only; rich results rendering lives outside this
// repository.
package output

import (
	"encoding/json"

	"github.com/taxlever/taxlever/internal/impact"
)

// JSONFormatter formats a projection as JSON
type JSONFormatter struct {
	Pretty bool // If true, format with indentation
}

// Format generates JSON output for a projection
func (jf *JSONFormatter) Format(p *impact.Projection) (string, error) {
	var data []byte
	var err error

	if jf.Pretty {
		data, err = json.MarshalIndent(p, "", "  ")
	} else {
		data, err = json.Marshal(p)
	}

	if err != nil {
		return "", err
	}

	return string(data), nil
}
