package generation

// Fallback presentation parameters for channels without stored settings.
const (
	DefaultStyle    = "casual"
	DefaultLanguage = "ru"
	DefaultLength   = "medium"
)

// Resolved holds the effective style, language and length for one channel.
type Resolved struct {
	Style    string
	Language string
	Length   string
}

// Resolve applies the configuration cascade for a channel: request override
// wins over the stored per-channel setting, which wins over the defaults.
// Length has no override path.
func Resolve(channelID, styleOverride, languageOverride string, settings map[string]ChannelSettingData) Resolved {
	r := Resolved{
		Style:    DefaultStyle,
		Language: DefaultLanguage,
		Length:   DefaultLength,
	}

	if cs, ok := settings[channelID]; ok {
		if cs.DefaultStyle != "" {
			r.Style = cs.DefaultStyle
		}
		if cs.DefaultLanguage != "" {
			r.Language = cs.DefaultLanguage
		}
		if cs.DefaultLength != "" {
			r.Length = cs.DefaultLength
		}
	}

	if styleOverride != "" {
		r.Style = styleOverride
	}
	if languageOverride != "" {
		r.Language = languageOverride
	}

	return r
}
