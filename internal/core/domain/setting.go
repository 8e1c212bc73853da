package domain

// Well-known site setting keys. The settings table is a sparse key/value
// mapping, not a fixed schema; a missing key always reads as the empty
// string.
const (
	SettingSiteLogo      = "site_logo"
	SettingAdminPassword = "admin_password"
)

// SupportedLanguages lists the locale codes accepted for the per-user
// language preference.
var SupportedLanguages = []string{
	"en", "tr", "de", "fr", "it", "es", "pt", "pl", "cs",
	"bs", "ar", "fa", "ku", "ru", "zh", "ja", "ko",
}

// DefaultLanguage is used when no preference has been stored.
const DefaultLanguage = "en"

// IsSupportedLanguage reports whether code is a known locale.
func IsSupportedLanguage(code string) bool {
	for _, l := range SupportedLanguages {
		if l == code {
			return true
		}
	}
	return false
}
