package generation

import "testing"

func TestResolve_DefaultsWithoutSettings(t *testing.T) {
	r := Resolve("blog", "", "", map[string]ChannelSettingData{})

	if r.Style != "casual" {
		t.Errorf("Expected default style casual, got %s", r.Style)
	}
	if r.Language != "ru" {
		t.Errorf("Expected default language ru, got %s", r.Language)
	}
	if r.Length != "medium" {
		t.Errorf("Expected default length medium, got %s", r.Length)
	}
}

func TestResolve_SettingsBeatDefaults(t *testing.T) {
	settings := map[string]ChannelSettingData{
		"blog": {DefaultStyle: "formal", DefaultLanguage: "en", DefaultLength: "long"},
	}

	r := Resolve("blog", "", "", settings)

	if r.Style != "formal" {
		t.Errorf("Expected style formal, got %s", r.Style)
	}
	if r.Language != "en" {
		t.Errorf("Expected language en, got %s", r.Language)
	}
	if r.Length != "long" {
		t.Errorf("Expected length long, got %s", r.Length)
	}
}

func TestResolve_OverridesBeatSettings(t *testing.T) {
	settings := map[string]ChannelSettingData{
		"blog": {DefaultStyle: "formal", DefaultLanguage: "en", DefaultLength: "long"},
	}

	r := Resolve("blog", "funny", "ru", settings)

	if r.Style != "funny" {
		t.Errorf("Expected override style funny, got %s", r.Style)
	}
	if r.Language != "ru" {
		t.Errorf("Expected override language ru, got %s", r.Language)
	}
	// Length has no override path, settings value stays
	if r.Length != "long" {
		t.Errorf("Expected length long from settings, got %s", r.Length)
	}
}

func TestResolve_SettingsForOtherChannelIgnored(t *testing.T) {
	settings := map[string]ChannelSettingData{
		"twitter": {DefaultStyle: "formal", DefaultLanguage: "en"},
	}

	r := Resolve("blog", "", "", settings)

	if r.Style != "casual" || r.Language != "ru" {
		t.Errorf("Expected defaults for unconfigured channel, got %s/%s", r.Style, r.Language)
	}
}

func TestResolve_EmptySettingFieldsFallBack(t *testing.T) {
	settings := map[string]ChannelSettingData{
		"blog": {DefaultStyle: "formal"},
	}

	r := Resolve("blog", "", "", settings)

	if r.Style != "formal" {
		t.Errorf("Expected style formal, got %s", r.Style)
	}
	if r.Language != "ru" {
		t.Errorf("Expected default language for empty setting field, got %s", r.Language)
	}
	if r.Length != "medium" {
		t.Errorf("Expected default length for empty setting field, got %s", r.Length)
	}
}
