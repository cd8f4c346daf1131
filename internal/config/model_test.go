package config

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestProfile_Merge(t *testing.T) {
	t.Parallel()

	base := NewProfile()
	base.Settings = &Settings{LogLevel: "info", LogFormat: "text"}
	base.Categories["sound"] = &CategorySelection{Name: "sound", Default: "first"}

	override := NewProfile()
	override.Settings = &Settings{LogLevel: "debug"}
	override.Categories["sound"] = &CategorySelection{Name: "sound", Default: "second"}
	override.Categories["theme"] = &CategorySelection{Name: "theme", Default: "mono"}

	base.Merge(override)

	want := &Profile{
		Settings: &Settings{LogLevel: "debug", LogFormat: "text"},
		Categories: map[string]*CategorySelection{
			"sound": {Name: "sound", Default: "second"},
			"theme": {Name: "theme", Default: "mono"},
		},
	}
	if diff := cmp.Diff(want, base); diff != "" {
		t.Fatalf("merged profile mismatch (-want +got):\n%s", diff)
	}
}

func TestProfile_MergeNil(t *testing.T) {
	t.Parallel()

	base := NewProfile()
	base.Merge(nil)

	assert.Nil(t, base.Settings)
	assert.Empty(t, base.Categories)
}
