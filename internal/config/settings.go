package config

import (
	"fyne.io/fyne/v2"

	"github.com/billshinji/Vsix-Downloader/internal/platform"
)

// Settings keys for Fyne preferences
const (
	KeyDownloadDir        = "download_directory"
	KeyLanguage           = "app_language"
	KeyAutoRevealComplete = "auto_reveal_on_complete"
	KeyLastTargetPlatform = "last_target_platform"
)

// Default values
const (
	DefaultLanguage           = "system"
	DefaultAutoRevealComplete = false
)

// FallbackDownloadDir is used when the user Downloads directory cannot be
// resolved from the environment.
const FallbackDownloadDir = "/tmp/downloads"

// KnownTargetPlatforms lists the platform qualifiers the marketplace serves
// platform-specific builds for. The form offers these as suggestions; any
// free-form value is accepted.
var KnownTargetPlatforms = []string{
	"win32-x64",
	"win32-arm64",
	"linux-x64",
	"linux-arm64",
	"linux-armhf",
	"darwin-x64",
	"darwin-arm64",
	"alpine-x64",
	"alpine-arm64",
	"web",
}

// Settings manages application configuration
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// GetDownloadDirectory returns the configured download directory, defaulting
// to the user's Downloads directory.
func (s *Settings) GetDownloadDirectory() string {
	dir := s.app.Preferences().String(KeyDownloadDir)
	if dir == "" {
		defaultDir, err := platform.DownloadsDir()
		if err != nil {
			defaultDir = FallbackDownloadDir
		}
		s.SetDownloadDirectory(defaultDir)
		return defaultDir
	}
	return dir
}

// SetDownloadDirectory sets the download directory
func (s *Settings) SetDownloadDirectory(dir string) {
	s.app.Preferences().SetString(KeyDownloadDir, dir)
}

// GetLanguage returns the configured language
func (s *Settings) GetLanguage() string {
	lang := s.app.Preferences().String(KeyLanguage)
	if lang == "" {
		s.SetLanguage(DefaultLanguage)
		return DefaultLanguage
	}
	return lang
}

// SetLanguage sets the application language
func (s *Settings) SetLanguage(lang string) {
	s.app.Preferences().SetString(KeyLanguage, lang)
}

// GetLanguageOptions returns available language options
func (s *Settings) GetLanguageOptions() map[string]string {
	return map[string]string{
		"system": "System Default",
		"en":     "English",
		"ru":     "Русский",
		"pt":     "Português",
	}
}

// GetAutoRevealOnComplete returns whether to reveal the saved package in the
// file manager when a download completes.
func (s *Settings) GetAutoRevealOnComplete() bool {
	return s.app.Preferences().BoolWithFallback(KeyAutoRevealComplete, DefaultAutoRevealComplete)
}

// SetAutoRevealOnComplete sets whether to auto-reveal completed downloads
func (s *Settings) SetAutoRevealOnComplete(autoReveal bool) {
	s.app.Preferences().SetBool(KeyAutoRevealComplete, autoReveal)
}

// GetLastTargetPlatform returns the platform qualifier used for the previous
// download. Empty means the universal package.
func (s *Settings) GetLastTargetPlatform() string {
	return s.app.Preferences().String(KeyLastTargetPlatform)
}

// SetLastTargetPlatform remembers the platform qualifier for the next launch
func (s *Settings) SetLastTargetPlatform(target string) {
	s.app.Preferences().SetString(KeyLastTargetPlatform, target)
}
