// Package i18n resolves request languages and localizes user-facing
// messages. Catalogs are YAML files embedded at build time, one per locale.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// DefaultLocale is the fallback language for unknown or absent tags.
const DefaultLocale = "en"

//go:embed locales/*.yaml
var embeddedLocaleFS embed.FS

type catalogFile struct {
	Locale   string            `yaml:"locale"`
	Messages map[string]string `yaml:"messages"`
}

// Bundle holds every locale catalog plus a matcher for Accept-Language
// resolution.
type Bundle struct {
	defaultTag language.Tag
	supported  []language.Tag
	matcher    language.Matcher
	messages   map[string]map[string]string
}

// Load parses the embedded locale catalogs.
func Load() (*Bundle, error) {
	return LoadFromFS(embeddedLocaleFS)
}

// MustLoad is Load or panic; embedded catalogs failing to parse is a build
// defect, not a runtime condition.
func MustLoad() *Bundle {
	b, err := Load()
	if err != nil {
		panic(err)
	}
	return b
}

// LoadFromFS parses locale catalogs from the provided filesystem.
func LoadFromFS(localeFS fs.FS) (*Bundle, error) {
	paths, err := fs.Glob(localeFS, "locales/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("glob locale catalogs: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no locale catalogs found")
	}
	sort.Strings(paths)

	bundle := &Bundle{messages: map[string]map[string]string{}}
	for _, path := range paths {
		data, err := fs.ReadFile(localeFS, path)
		if err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", path, err)
		}
		var file catalogFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("parse catalog %s: %w", path, err)
		}
		locale := strings.TrimSpace(file.Locale)
		if locale == "" {
			return nil, fmt.Errorf("catalog %s: locale is required", path)
		}
		if len(file.Messages) == 0 {
			return nil, fmt.Errorf("catalog %s: messages map is required", path)
		}
		if _, dup := bundle.messages[locale]; dup {
			return nil, fmt.Errorf("catalog %s: locale %q already defined", path, locale)
		}
		bundle.messages[locale] = file.Messages
	}

	if _, ok := bundle.messages[DefaultLocale]; !ok {
		return nil, fmt.Errorf("default locale %s is not defined in catalogs", DefaultLocale)
	}

	// The matcher falls back to the first supported tag, so the default
	// locale must lead.
	locales := make([]string, 0, len(bundle.messages))
	for locale := range bundle.messages {
		if locale != DefaultLocale {
			locales = append(locales, locale)
		}
	}
	sort.Strings(locales)
	locales = append([]string{DefaultLocale}, locales...)

	for _, locale := range locales {
		tag, err := language.Parse(locale)
		if err != nil {
			return nil, fmt.Errorf("locale %q: %w", locale, err)
		}
		bundle.supported = append(bundle.supported, tag)
	}
	bundle.defaultTag = bundle.supported[0]
	bundle.matcher = language.NewMatcher(bundle.supported)
	return bundle, nil
}

// Default returns the default language tag.
func (b *Bundle) Default() language.Tag {
	return b.defaultTag
}

// Supported returns the supported language tags, default first.
func (b *Bundle) Supported() []language.Tag {
	return b.supported
}

// Resolve picks the best supported tag for an Accept-Language header value.
// Unparseable or unmatched values resolve to the default tag.
func (b *Bundle) Resolve(acceptLanguage string) language.Tag {
	accept := strings.TrimSpace(acceptLanguage)
	if accept == "" {
		return b.defaultTag
	}
	wanted, _, err := language.ParseAcceptLanguage(accept)
	if err != nil || len(wanted) == 0 {
		return b.defaultTag
	}
	_, index, _ := b.matcher.Match(wanted...)
	return b.supported[index]
}

// Message returns the localized string for key in the given locale, falling
// back to the default locale and finally to the key itself.
func (b *Bundle) Message(tag language.Tag, key string) string {
	if msgs, ok := b.messages[tag.String()]; ok {
		if msg, ok := msgs[key]; ok {
			return msg
		}
	}
	if msg, ok := b.messages[DefaultLocale][key]; ok {
		return msg
	}
	return key
}
