package store

import (
	"context"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/vvka-141/sflink/pkg/sflink"
)

// Fixture is a YAML description of wiki content: pages with their categories,
// property labels and property values.
//
//	pages:
//	  - title: Paris
//	    text: "Capital of [[France]]"
//	    categories: [Cities]
//	properties:
//	  - id: _SF_DF
//	    label: Has default form
//	values:
//	  - subject: Category:Cities
//	    property: _SF_DF
//	    page: Form:City
type Fixture struct {
	Pages      []FixturePage     `yaml:"pages"`
	Properties []FixtureProperty `yaml:"properties"`
	Values     []FixtureValue    `yaml:"values"`
}

type FixturePage struct {
	Title      string   `yaml:"title"`
	Text       string   `yaml:"text"`
	Categories []string `yaml:"categories,omitempty"`
}

type FixtureProperty struct {
	ID    string `yaml:"id"`
	Label string `yaml:"label"`
}

// FixtureValue asserts one value. Exactly one of Page and Text is set.
type FixtureValue struct {
	Subject  string  `yaml:"subject"`
	Property string  `yaml:"property"`
	Page     string  `yaml:"page,omitempty"`
	Text     *string `yaml:"text,omitempty"`
}

// ImportStats counts what Import wrote.
type ImportStats struct {
	Pages      int
	Categories int
	Properties int
	Values     int
}

// ParseFixture decodes and checks a fixture document.
func ParseFixture(data []byte) (*Fixture, error) {
	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse fixture: %w: %v", sflink.ErrInvalidConfig, err)
	}

	for i, p := range f.Pages {
		if p.Title == "" {
			return nil, fmt.Errorf("pages[%d]: title is required: %w", i, sflink.ErrInvalidConfig)
		}
	}
	for i, p := range f.Properties {
		if p.ID == "" {
			return nil, fmt.Errorf("properties[%d]: id is required: %w", i, sflink.ErrInvalidConfig)
		}
	}
	for i, v := range f.Values {
		switch {
		case v.Subject == "" || v.Property == "":
			return nil, fmt.Errorf("values[%d]: subject and property are required: %w", i, sflink.ErrInvalidConfig)
		case (v.Page == "") == (v.Text == nil):
			return nil, fmt.Errorf("values[%d]: exactly one of page and text must be set: %w", i, sflink.ErrInvalidConfig)
		}
	}
	return &f, nil
}

// Import writes f into the store. Titles are parsed with titles. Pages are
// written before their categories; the import is not atomic.
func (s *Store) Import(ctx context.Context, f *Fixture, titles sflink.TitleResolver) (ImportStats, error) {
	var stats ImportStats

	parse := func(text string) (sflink.PageIdentity, error) {
		page, ok := titles.NewFromText(text)
		if !ok {
			return sflink.PageIdentity{}, fmt.Errorf("%w: %q", sflink.ErrInvalidTitle, text)
		}
		return page, nil
	}

	for _, p := range f.Pages {
		page, err := parse(p.Title)
		if err != nil {
			return stats, err
		}
		if err := s.SavePage(ctx, page, p.Text); err != nil {
			return stats, err
		}
		stats.Pages++

		for _, category := range p.Categories {
			cat, ok := titles.MakeTitleSafe(sflink.NSCategory, category)
			if !ok {
				return stats, fmt.Errorf("%w: category %q", sflink.ErrInvalidTitle, category)
			}
			if err := s.AddCategory(ctx, page, cat.Name); err != nil {
				return stats, err
			}
			stats.Categories++
		}
	}

	for _, p := range f.Properties {
		if err := s.LabelProperty(ctx, p.ID, p.Label); err != nil {
			return stats, err
		}
		stats.Properties++
	}

	for _, v := range f.Values {
		subject, err := parse(v.Subject)
		if err != nil {
			return stats, err
		}
		value := sflink.PropertyValue{}
		if v.Text != nil {
			value = sflink.TextValue(*v.Text)
		} else {
			target, err := parse(v.Page)
			if err != nil {
				return stats, err
			}
			value = sflink.PageValue(target.Namespace, target.Name)
		}
		if err := s.Assert(ctx, subject, v.Property, value); err != nil {
			return stats, err
		}
		stats.Values++
	}

	return stats, nil
}
