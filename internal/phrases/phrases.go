// Package phrases holds the user-facing sentences of the chat gateway. A
// built-in catalog is embedded; deployments may override any entry with a
// YAML file of the same layout.
package phrases

import (
	_ "embed"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultCatalog []byte

type Labels struct {
	Default   string `yaml:"default"`
	Instagram string `yaml:"instagram"`
	Email     string `yaml:"email"`
	Telegram  string `yaml:"telegram"`
}

type Phrases struct {
	Welcome     string   `yaml:"welcome"`
	Suggestions []string `yaml:"suggestions"`
	// Found is the results fallback; {n} is the count, {label} the dataset label.
	Found       string `yaml:"found"`
	Analysis    string `yaml:"analysis"`
	Results     string `yaml:"results"`
	Unavailable string `yaml:"unavailable"`
	Apology     string `yaml:"apology"`
	Labels      Labels `yaml:"labels"`
}

// Default returns the embedded catalog.
func Default() Phrases {
	var p Phrases
	if err := yaml.Unmarshal(defaultCatalog, &p); err != nil {
		panic(fmt.Sprintf("phrases: embedded catalog is invalid: %v", err))
	}
	return p
}

// Load returns the embedded catalog with any entries from path laid over it.
// An empty path returns the defaults.
func Load(path string) (Phrases, error) {
	p := Default()
	if strings.TrimSpace(path) == "" {
		return p, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Phrases{}, err
	}
	var override Phrases
	if err := yaml.Unmarshal(b, &override); err != nil {
		return Phrases{}, fmt.Errorf("parse %s: %w", path, err)
	}
	p.merge(override)
	return p, nil
}

func (p *Phrases) merge(o Phrases) {
	setIfNotEmpty(&p.Welcome, o.Welcome)
	setIfNotEmpty(&p.Found, o.Found)
	setIfNotEmpty(&p.Analysis, o.Analysis)
	setIfNotEmpty(&p.Results, o.Results)
	setIfNotEmpty(&p.Unavailable, o.Unavailable)
	setIfNotEmpty(&p.Apology, o.Apology)
	setIfNotEmpty(&p.Labels.Default, o.Labels.Default)
	setIfNotEmpty(&p.Labels.Instagram, o.Labels.Instagram)
	setIfNotEmpty(&p.Labels.Email, o.Labels.Email)
	setIfNotEmpty(&p.Labels.Telegram, o.Labels.Telegram)
	if len(o.Suggestions) > 0 {
		p.Suggestions = append([]string(nil), o.Suggestions...)
	}
}

func setIfNotEmpty(dst *string, v string) {
	if strings.TrimSpace(v) != "" {
		*dst = v
	}
}

// FoundEntries renders the results fallback, e.g. "Found 3 entries:".
func (p Phrases) FoundEntries(n int64, label string) string {
	if label == "" {
		label = p.Labels.Default
	}
	r := strings.NewReplacer("{n}", strconv.FormatInt(n, 10), "{label}", label)
	return r.Replace(p.Found)
}

// ServiceUnavailable renders the reply for a non-success webhook status.
func (p Phrases) ServiceUnavailable(status int) string {
	return strings.ReplaceAll(p.Unavailable, "{status}", strconv.Itoa(status))
}
