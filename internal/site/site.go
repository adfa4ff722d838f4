// Package site loads the marketing content shared by every page: company
// details, navigation, services and the contact form's subject options.
package site

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/TAPAN-2835/Business-Website/chrome"
	"gopkg.in/yaml.v3"
)

//go:embed site.yaml
var defaultYAML []byte

// Company holds the contact details shown in the header and footer.
type Company struct {
	Name    string `yaml:"name"`
	Tagline string `yaml:"tagline"`
	Email   string `yaml:"email"`
	Phone   string `yaml:"phone"`
	Address string `yaml:"address"`
}

// Hero is the home page banner.
type Hero struct {
	Heading string      `yaml:"heading"`
	Lead    string      `yaml:"lead"`
	CTA     chrome.Link `yaml:"cta"`
}

// Value is one of the "what we stand for" cards on the about page.
type Value struct {
	Title string `yaml:"title"`
	Text  string `yaml:"text"`
}

// About is the about page copy.
type About struct {
	Heading    string   `yaml:"heading"`
	Paragraphs []string `yaml:"paragraphs"`
	Values     []Value  `yaml:"values"`
}

// Service is one offering on the services page.
type Service struct {
	Slug    string `yaml:"slug"`
	Title   string `yaml:"title"`
	Icon    string `yaml:"icon"`
	Summary string `yaml:"summary"`
}

// Option is a subject choice in the contact form.
type Option struct {
	Value string `yaml:"value"`
	Label string `yaml:"label"`
}

// Site is the whole content file.
type Site struct {
	Company  Company       `yaml:"company"`
	Nav      []chrome.Link `yaml:"nav"`
	Hero     Hero          `yaml:"hero"`
	About    About         `yaml:"about"`
	Services []Service     `yaml:"services"`
	Subjects []Option      `yaml:"subjects"`
}

// Default returns the built-in content.
func Default() (*Site, error) {
	return Parse(defaultYAML)
}

// Load reads content from path, or the built-in content when path is "".
func Load(path string) (*Site, error) {
	if strings.TrimSpace(path) == "" {
		return Default()
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read site file: %w", err)
	}
	s, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Parse decodes and validates YAML content. Unknown keys are rejected.
func Parse(b []byte) (*Site, error) {
	var s Site
	dec := yaml.NewDecoder(strings.NewReader(string(b)))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("decode site content: %w", err)
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Site) validate() error {
	var errs []error
	if strings.TrimSpace(s.Company.Name) == "" {
		errs = append(errs, errors.New("company.name is required"))
	}
	if len(s.Nav) == 0 {
		errs = append(errs, errors.New("nav needs at least one link"))
	}
	if len(s.Subjects) == 0 {
		errs = append(errs, errors.New("subjects needs at least one option"))
	}
	seen := map[string]bool{}
	for i, o := range s.Subjects {
		if strings.TrimSpace(o.Value) == "" {
			errs = append(errs, fmt.Errorf("subjects[%d].value is empty", i))
		}
		if seen[o.Value] {
			errs = append(errs, fmt.Errorf("subjects[%d].value %q is duplicated", i, o.Value))
		}
		seen[o.Value] = true
	}
	return errors.Join(errs...)
}

// HasSubject reports whether v is one of the configured subject values.
func (s *Site) HasSubject(v string) bool {
	return slices.ContainsFunc(s.Subjects, func(o Option) bool { return o.Value == v })
}

// SubjectLabel returns the display label for v, or v itself.
func (s *Site) SubjectLabel(v string) string {
	for _, o := range s.Subjects {
		if o.Value == v {
			return o.Label
		}
	}
	return v
}
