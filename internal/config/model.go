package config

// Profile is the unified, format-agnostic representation of a user profile:
// logger settings and the per-category default selections.
type Profile struct {
	Settings   *Settings
	Categories map[string]*CategorySelection
}

// Settings holds the profile's logger configuration. Empty fields mean
// "keep the value chosen on the command line".
type Settings struct {
	LogLevel  string
	LogFormat string
}

// CategorySelection is the format-agnostic representation of one `category`
// block: which extension id the user wants as that category's default.
type CategorySelection struct {
	Name    string
	Default string
}

// NewProfile returns an empty profile with an initialized category table.
func NewProfile() *Profile {
	return &Profile{Categories: make(map[string]*CategorySelection)}
}

// Merge folds other into p. Later sources win: settings fields and category
// selections from other replace the ones already present.
func (p *Profile) Merge(other *Profile) {
	if other == nil {
		return
	}
	if other.Settings != nil {
		if p.Settings == nil {
			p.Settings = &Settings{}
		}
		if other.Settings.LogLevel != "" {
			p.Settings.LogLevel = other.Settings.LogLevel
		}
		if other.Settings.LogFormat != "" {
			p.Settings.LogFormat = other.Settings.LogFormat
		}
	}
	for name, sel := range other.Categories {
		p.Categories[name] = sel
	}
}
