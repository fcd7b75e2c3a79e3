package types

// Change records a single tree replacement performed by a rewrite rule.
type Change struct {
	Rule   string `json:"rule"`
	Before string `json:"before"`
	After  string `json:"after"`
}

// Report is the result of folding one source unit.
type Report struct {
	Filename     string   `json:"filename,omitempty"`
	Passes       int      `json:"passes"`
	Replacements int      `json:"replacements"`
	Changes      []Change `json:"changes,omitempty"`
	Output       string   `json:"output"`
}

// ConfigRule is the per-rule configuration block.
type ConfigRule struct {
	Disabled bool `yaml:"disabled"`
}
