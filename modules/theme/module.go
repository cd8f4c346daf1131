// Package theme provides the built-in implementations of the
// "status_icons" extension point. The category is multi-instance: a host
// may render several icon sets side by side, typically through the
// category's fan-out view.
package theme

import (
	"reflect"

	"github.com/Otacon/emesene/internal/extension"
)

// CategoryName is the extension point owned by this package.
const CategoryName = "status_icons"

// IconSet is the contract every status icon extension must satisfy.
type IconSet interface {
	Name() string
	Icon(status string) string
}

// DefaultIcons is the stock emoji icon set.
type DefaultIcons struct{}

// Name implements IconSet.
func (s *DefaultIcons) Name() string { return "default" }

// Icon implements IconSet.
func (s *DefaultIcons) Icon(status string) string {
	switch status {
	case "online":
		return "🟢"
	case "busy":
		return "🔴"
	case "away":
		return "🟡"
	case "idle":
		return "🌙"
	default:
		return "⚪"
	}
}

// MonochromeIcons is a plain-text icon set for terminals without emoji
// support.
type MonochromeIcons struct{}

// Name implements IconSet.
func (s *MonochromeIcons) Name() string { return "monochrome" }

// Icon implements IconSet.
func (s *MonochromeIcons) Icon(status string) string {
	switch status {
	case "online":
		return "[*]"
	case "busy":
		return "[!]"
	case "away":
		return "[~]"
	case "idle":
		return "[z]"
	default:
		return "[ ]"
	}
}

// Module implements the extension.Module interface for this package.
type Module struct{}

// Register creates the status_icons category and registers the built-in
// icon sets.
func (m *Module) Register(r *extension.Registry) error {
	def := &extension.Extension{
		Type: reflect.TypeOf(&DefaultIcons{}),
		New:  func(args ...any) (any, error) { return &DefaultIcons{}, nil },
	}
	mono := &extension.Extension{
		Type: reflect.TypeOf(&MonochromeIcons{}),
		New:  func(args ...any) (any, error) { return &MonochromeIcons{}, nil },
	}

	ifaces := []*extension.Interface{extension.InterfaceOf[IconSet]("theme.IconSet")}
	cat := r.RegisterCategory(CategoryName, def, ifaces, false)
	if err := cat.Register(mono); err != nil {
		return err
	}
	return cat.SetDefault(def)
}
