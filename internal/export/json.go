package export

import (
	"encoding/json"
	"io"

	"github.com/vovakirdan/tza-rng/internal/search"
)

func init() {
	Register("json", func() Encoder { return jsonEncoder{} })
}

type jsonEncoder struct{}

func (jsonEncoder) Name() string        { return "json" }
func (jsonEncoder) Description() string { return "Indented JSON record" }

func (jsonEncoder) Encode(w io.Writer, rec search.Record) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rec)
}
