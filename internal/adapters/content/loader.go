package content

import (
	"bytes"
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	domain "symptowise/internal/domain/content"
)

//go:embed site.yaml
var siteYAML []byte

// Load parses the embedded site copy.
// PRE: none
// POST: returns validated site copy or a parse/validation error
func Load() (domain.Site, error) {
	return Parse(siteYAML)
}

// Parse decodes site copy from YAML, rejecting unknown keys.
// PRE: data is a YAML document
// POST: returns validated site copy or an error naming the problem
func Parse(data []byte) (domain.Site, error) {
	var site domain.Site
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&site); err != nil {
		return domain.Site{}, fmt.Errorf("decode site copy: %w", err)
	}
	if err := site.Validate(); err != nil {
		return domain.Site{}, fmt.Errorf("invalid site copy: %w", err)
	}
	return site, nil
}
