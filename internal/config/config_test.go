package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), LocalConfigName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, []string{"yojo", "sweet"}, cfg.Keys())

	yojo, err := cfg.Category("yojo")
	require.NoError(t, err)
	rule := cfg.Rule(yojo)
	assert.True(t, rule.UseMarkers)
	assert.Equal(t, "イチゴ", rule.Marker("いちご"))
	assert.Equal(t, "ぶどう", rule.Marker("ぶどう"))
	assert.Equal(t, ".png", rule.Suffix)

	sweet, err := cfg.Category("sweet")
	require.NoError(t, err)
	assert.Empty(t, cfg.Rule(sweet).Marker("いちご"))
}

func TestLoadConfigEmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadConfigOverrides(t *testing.T) {
	path := writeConfig(t, `
suffix = ".webp"
ignore = ["*_old.*"]

[[category]]
key = "playable"
input = "data/playable.json"
image_dir = "img/playable"
use_markers = true

[category.markers]
"めろん" = "メロン"
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, ".webp", cfg.Suffix)
	assert.Equal(t, "、。・", cfg.Strip)
	assert.True(t, cfg.Normalize)
	assert.Equal(t, []string{"*_old.*"}, cfg.Ignore)
	require.Equal(t, []string{"playable"}, cfg.Keys())

	cat := cfg.Categories[0]
	assert.Equal(t, "data/playable_updated.json", cat.Output)
	assert.Equal(t, "/images/playable", cat.URLPrefix)
	assert.Equal(t, "fruit", cat.Attribute)
	assert.Equal(t, map[string]string{"めろん": "メロン"}, cat.Markers)
}

func TestLoadConfigKeepsDefaultCategories(t *testing.T) {
	path := writeConfig(t, `normalize = false`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.False(t, cfg.Normalize)
	assert.Equal(t, []string{"yojo", "sweet"}, cfg.Keys())
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "malformed", content: `suffix = `},
		{name: "missing key", content: "[[category]]\ninput = \"a.json\"\nimage_dir = \"img\"\n"},
		{name: "missing input", content: "[[category]]\nkey = \"a\"\nimage_dir = \"img\"\n"},
		{name: "missing image dir", content: "[[category]]\nkey = \"a\"\ninput = \"a.json\"\n"},
		{name: "duplicate key", content: "[[category]]\nkey = \"a\"\ninput = \"a.json\"\nimage_dir = \"img\"\n[[category]]\nkey = \"a\"\ninput = \"b.json\"\nimage_dir = \"img\"\n"},
		{name: "bad ignore", content: `ignore = ["[a"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.content))
			assert.Error(t, err)
		})
	}

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestWriteConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	require.NoError(t, WriteConfig(path, Default()))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, Default().Categories, cfg.Categories)
	assert.Equal(t, Default().Strip, cfg.Strip)
}

func TestResolveConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	workdir := t.TempDir()

	assert.Equal(t, "explicit.toml", ResolveConfigPath("explicit.toml", workdir))
	assert.Equal(t, "", ResolveConfigPath("", workdir))

	require.NoError(t, WriteConfig(GetConfigFilePath(), Default()))
	assert.Equal(t, GetConfigFilePath(), ResolveConfigPath("", workdir))

	local := filepath.Join(workdir, LocalConfigName)
	require.NoError(t, WriteConfig(local, Default()))
	assert.Equal(t, local, ResolveConfigPath("", workdir))
}

func TestSelect(t *testing.T) {
	cfg := Default()

	all, err := cfg.Select(nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	some, err := cfg.Select([]string{"sweet"})
	require.NoError(t, err)
	require.Len(t, some, 1)
	assert.Equal(t, "sweet", some[0].Key)

	_, err = cfg.Select([]string{"playable"})
	assert.Error(t, err)
}

func TestImageURLAndResolve(t *testing.T) {
	cat := Category{URLPrefix: "/images/yojo/"}
	assert.Equal(t, "/images/yojo/a.png", cat.ImageURL("a.png"))

	assert.Equal(t, filepath.Join("base", "src/data/yojo.json"), Resolve("base", "src/data/yojo.json"))
	assert.Equal(t, "/abs/yojo.json", Resolve("base", "/abs/yojo.json"))
}
