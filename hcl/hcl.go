// Package hcl maps HCL configuration files onto the runtime types of the redaction core.
package hcl

import (
	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/hcl/v2/hclsimple"

	"github.com/hashicorp/tracescrub/redact"
)

type HCL struct {
	Redact *Redact `hcl:"redact,block" json:"redact"`
}

// Redact configures the sensitive-name set for a run. The list fully replaces the
// built-in defaults rather than extending them.
type Redact struct {
	SensitiveNames []string `hcl:"sensitive_argument_names,optional"`
}

// Parse takes a file path and decodes the file from disk into HCL types. Unrecognized
// blocks or attributes fail the decode.
func Parse(path string) (HCL, error) {
	var h HCL
	err := hclsimple.DecodeFile(path, nil, &h)
	if err != nil {
		return HCL{}, err
	}
	return h, nil
}

// MapConfig maps decoded HCL onto a redact.Config.
func MapConfig(h HCL) redact.Config {
	hclog.L().Trace("hcl.MapConfig()", "hcl", h)
	var cfg redact.Config
	if h.Redact != nil {
		cfg.SensitiveNames = h.Redact.SensitiveNames
	}
	return cfg
}

const ExampleConfig = `redact {
  sensitive_argument_names = ["password", "api_token", "session_key"]
}
`
