// Package localization provides the user-facing strings of the API in
// several languages. English and Polish ship built in; a directory of
// <lang>.json files can extend or override them at startup.
package localization

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// DefaultLanguage is the fallback when the requested language or key is missing.
const DefaultLanguage = "en"

var builtin = map[string]map[string]string{
	"en": {
		"error.credentials_required": "username and password are required",
		"error.credentials_empty":    "username and password must not be empty",
		"error.username_taken":       "username already taken",
		"error.invalid_credentials":  "invalid username or password",
		"error.registration_failed":  "registration failed",
		"error.login_failed":         "login failed",
		"error.token_missing":        "authorization token missing",
		"error.token_invalid":        "invalid token or expired",
		"error.token_failed":         "failed to create token",
		"error.peers_failed":         "failed to load peers",
		"error.upgrade_failed":       "failed to upgrade connection",
	},
	"pl": {
		"error.credentials_required": "login i hasło są wymagane",
		"error.credentials_empty":    "login i hasło nie mogą być puste",
		"error.username_taken":       "użytkownik już istnieje",
		"error.invalid_credentials":  "błędny login lub hasło",
		"error.registration_failed":  "rejestracja nie powiodła się",
		"error.login_failed":         "logowanie nie powiodło się",
		"error.token_missing":        "brak tokenu autoryzacji",
		"error.token_invalid":        "token nieprawidłowy lub wygasł",
		"error.token_failed":         "nie udało się utworzyć tokenu",
		"error.peers_failed":         "nie udało się wczytać listy użytkowników",
		"error.upgrade_failed":       "nie udało się nawiązać połączenia",
	},
}

// Localizer manages the translations for the application.
type Localizer struct {
	translations map[string]map[string]string
	mu           sync.RWMutex
}

// NewLocalizer returns a Localizer preloaded with the built-in languages.
func NewLocalizer() *Localizer {
	translations := make(map[string]map[string]string, len(builtin))
	for lang, entries := range builtin {
		copied := make(map[string]string, len(entries))
		for k, v := range entries {
			copied[k] = v
		}
		translations[lang] = copied
	}
	return &Localizer{translations: translations}
}

// LoadDir merges translations from a directory of <lang>.json files on top of
// the built-in ones. Keys present in a file override the defaults.
func (l *Localizer) LoadDir(path string) error {
	files, err := os.ReadDir(path)
	if err != nil {
		return fmt.Errorf("failed to read localization directory: %w", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(file.Name(), ".json") {
			continue
		}

		lang := strings.TrimSuffix(file.Name(), ".json")
		data, err := os.ReadFile(filepath.Join(path, file.Name()))
		if err != nil {
			return fmt.Errorf("failed to read localization file %s: %w", file.Name(), err)
		}

		var entries map[string]string
		if err := json.Unmarshal(data, &entries); err != nil {
			return fmt.Errorf("failed to parse localization file %s: %w", file.Name(), err)
		}

		if l.translations[lang] == nil {
			l.translations[lang] = make(map[string]string, len(entries))
		}
		for k, v := range entries {
			l.translations[lang][k] = v
		}
	}
	return nil
}

// GetString returns the localized string for a given key and language.
// Unknown languages fall back to English; an unknown key returns the key
// itself so a missing translation never hides an error.
func (l *Localizer) GetString(lang, key string) string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if entries, ok := l.translations[lang]; ok {
		if value, ok := entries[key]; ok {
			return value
		}
	}
	if lang != DefaultLanguage {
		if entries, ok := l.translations[DefaultLanguage]; ok {
			if value, ok := entries[key]; ok {
				return value
			}
		}
	}
	return key
}

// PickLanguage extracts the preferred supported language from an
// Accept-Language header value ("pl-PL,pl;q=0.9,en;q=0.8" -> "pl").
func (l *Localizer) PickLanguage(acceptLanguage string) string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	for _, part := range strings.Split(acceptLanguage, ",") {
		tag := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		if tag == "" {
			continue
		}
		lang := strings.ToLower(strings.SplitN(tag, "-", 2)[0])
		if _, ok := l.translations[lang]; ok {
			return lang
		}
	}
	return DefaultLanguage
}
