package export

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tza-rng/internal/search"
)

func init() {
	Register("yaml", func() Encoder { return yamlEncoder{} })
}

type yamlEncoder struct{}

func (yamlEncoder) Name() string        { return "yaml" }
func (yamlEncoder) Description() string { return "YAML record" }

func (yamlEncoder) Encode(w io.Writer, rec search.Record) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(rec); err != nil {
		return err
	}
	return enc.Close()
}
