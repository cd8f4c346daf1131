package hclcfg

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"

	"github.com/Otacon/emesene/internal/config"
	"github.com/Otacon/emesene/internal/ctxlog"
	"github.com/Otacon/emesene/internal/fsutil"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL profile loader.
func NewLoader() *Loader {
	return &Loader{}
}

var profileSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "settings"},
		{Type: "category", LabelNames: []string{"name"}},
	},
}

var settingsSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "log_level"},
		{Name: "log_format"},
	},
}

var categorySchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "default", Required: true},
	},
}

// Load reads every .hcl profile file under the given paths, translates each
// into the format-agnostic model and merges them in order, later files
// winning.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Profile, error) {
	logger := ctxlog.FromContext(ctx)
	profile := config.NewProfile()
	parser := hclparse.NewParser()

	for _, path := range paths {
		filePaths, err := fsutil.FindFilesByExtension(path, ".hcl")
		if err != nil {
			return nil, fmt.Errorf("failed to locate profile files in %s: %w", path, err)
		}
		for _, filePath := range filePaths {
			hclFile, diags := parser.ParseHCLFile(filePath)
			if diags.HasErrors() {
				return nil, fmt.Errorf("failed to parse profile file %s: %w", filePath, diags)
			}
			part, err := translate(hclFile.Body)
			if err != nil {
				return nil, fmt.Errorf("failed to translate profile file %s: %w", filePath, err)
			}
			profile.Merge(part)
			logger.Debug("Loaded profile file.", "file", filePath)
		}
	}

	logger.Debug("Profile loaded.", "category_selections", len(profile.Categories))
	return profile, nil
}

func translate(body hcl.Body) (*config.Profile, error) {
	content, diags := body.Content(profileSchema)
	if diags.HasErrors() {
		return nil, diags
	}

	profile := config.NewProfile()
	for _, block := range content.Blocks {
		switch block.Type {
		case "settings":
			settings, err := translateSettings(block.Body)
			if err != nil {
				return nil, err
			}
			profile.Settings = settings
		case "category":
			name := block.Labels[0]
			sel, err := translateCategory(name, block.Body)
			if err != nil {
				return nil, err
			}
			profile.Categories[name] = sel
		}
	}
	return profile, nil
}

func translateSettings(body hcl.Body) (*config.Settings, error) {
	content, diags := body.Content(settingsSchema)
	if diags.HasErrors() {
		return nil, diags
	}

	settings := &config.Settings{}
	var err error
	if settings.LogLevel, err = stringAttr(content.Attributes["log_level"]); err != nil {
		return nil, err
	}
	if settings.LogFormat, err = stringAttr(content.Attributes["log_format"]); err != nil {
		return nil, err
	}
	return settings, nil
}

func translateCategory(name string, body hcl.Body) (*config.CategorySelection, error) {
	content, diags := body.Content(categorySchema)
	if diags.HasErrors() {
		return nil, diags
	}

	def, err := stringAttr(content.Attributes["default"])
	if err != nil {
		return nil, fmt.Errorf("category %q: %w", name, err)
	}
	return &config.CategorySelection{Name: name, Default: def}, nil
}

// stringAttr evaluates an attribute expression and converts the result to a
// string. Profiles are static selections, so expressions are evaluated
// without a variable context.
func stringAttr(attr *hcl.Attribute) (string, error) {
	if attr == nil {
		return "", nil
	}
	val, diags := attr.Expr.Value(nil)
	if diags.HasErrors() {
		return "", diags
	}
	val, err := convert.Convert(val, cty.String)
	if err != nil {
		return "", fmt.Errorf("attribute %q must be a string: %w", attr.Name, err)
	}
	return val.AsString(), nil
}
