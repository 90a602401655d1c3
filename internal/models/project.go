package models

// Project represents a showcased software project
//
// Optional fields are pointers: nil means the value is absent, which is
// distinct from an empty string.
type Project struct {
	Name        string  `json:"name" yaml:"name"`
	URL         string  `json:"url" yaml:"url"`
	GitHubURL   *string `json:"githubUrl,omitempty" yaml:"githubUrl,omitempty"`
	HomepageURL *string `json:"homepageUrl,omitempty" yaml:"homepageUrl,omitempty"`
	Archived    bool    `json:"archived" yaml:"archived"`
	Description *string `json:"description,omitempty" yaml:"description,omitempty"`
	Stars       int     `json:"stars" yaml:"stars"`
	Downloads   int     `json:"downloads" yaml:"downloads"`
	Language    *string `json:"language,omitempty" yaml:"language,omitempty"`
}

// ProjectList wraps the array of projects
type ProjectList struct {
	Projects []Project `json:"projects" yaml:"projects"`
}

// Record is the loose key/value form of an entity as it crosses a
// serialization boundary. A nil value marks an absent field.
type Record map[string]any

// Record returns the project as a Record, mapping absent optional fields to nil
func (p Project) Record() Record {
	return Record{
		"name":        p.Name,
		"url":         p.URL,
		"githubUrl":   deref(p.GitHubURL),
		"homepageUrl": deref(p.HomepageURL),
		"archived":    p.Archived,
		"description": deref(p.Description),
		"stars":       p.Stars,
		"downloads":   p.Downloads,
		"language":    deref(p.Language),
	}
}

// SourceURL returns the link to the project's code, falling back to URL
func (p Project) SourceURL() string {
	if p.GitHubURL != nil && *p.GitHubURL != "" {
		return *p.GitHubURL
	}
	return p.URL
}

// Clone returns a copy that shares no pointers with p
func (p Project) Clone() Project {
	c := p
	c.GitHubURL = cloneString(p.GitHubURL)
	c.HomepageURL = cloneString(p.HomepageURL)
	c.Description = cloneString(p.Description)
	c.Language = cloneString(p.Language)
	return c
}

// String returns a pointer to s, for filling optional fields
func String(s string) *string {
	return &s
}

func deref(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
