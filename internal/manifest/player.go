package manifest

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io/fs"
	"sort"
	"strings"

	"golang.org/x/text/language"

	"trackdeck/internal/fileutil"
	"trackdeck/internal/services"
)

//go:embed player.html.tmpl
//go:embed translations/*.json
var playerFS embed.FS

// Texts holds the player strings for one language.
type Texts struct {
	Title          string `json:"title"`
	ButtonPlay     string `json:"button_play"`
	ButtonPause    string `json:"button_pause"`
	NoSongDetected string `json:"no_song_detected"`
}

// PlayerConfig selects the language and branding of the generated page.
type PlayerConfig struct {
	Language string
	Title    string
	Emoji    string
}

// LoadTexts returns the strings for the requested language, falling back to
// the closest embedded translation and finally to English. The second return
// is the language actually used.
func LoadTexts(lang string) (Texts, string, error) {
	available, err := availableLanguages()
	if err != nil {
		return Texts{}, "", err
	}

	matched := "en"
	if desired, parseErr := language.Parse(lang); parseErr == nil {
		tags := make([]language.Tag, 0, len(available))
		for _, name := range available {
			tag, tagErr := language.Parse(name)
			if tagErr != nil {
				continue
			}
			tags = append(tags, tag)
		}
		matcher := language.NewMatcher(tags)
		_, index, confidence := matcher.Match(desired)
		if confidence > language.No {
			matched = available[index]
		}
	}

	data, err := playerFS.ReadFile("translations/" + matched + ".json")
	if err != nil {
		return Texts{}, "", services.Wrap(services.ErrConfiguration, "manifest", "load-texts",
			fmt.Sprintf("read translation %s", matched), err)
	}
	var texts Texts
	if err := json.Unmarshal(data, &texts); err != nil {
		return Texts{}, "", services.Wrap(services.ErrConfiguration, "manifest", "load-texts",
			fmt.Sprintf("parse translation %s", matched), err)
	}
	return texts, matched, nil
}

// availableLanguages lists the embedded translations with English first, so
// the matcher falls back to it when nothing else fits.
func availableLanguages() ([]string, error) {
	entries, err := fs.ReadDir(playerFS, "translations")
	if err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "manifest", "load-texts", "list translations", err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := strings.TrimSuffix(entry.Name(), ".json")
		if name == "en" {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return append([]string{"en"}, names...), nil
}

// WritePlayer renders the player page at path.
func WritePlayer(path string, cfg PlayerConfig) error {
	texts, matched, err := LoadTexts(cfg.Language)
	if err != nil {
		return err
	}

	title := cfg.Title
	if strings.TrimSpace(title) == "" {
		title = texts.Title
	}

	tmpl, err := template.ParseFS(playerFS, "player.html.tmpl")
	if err != nil {
		return services.Wrap(services.ErrRender, "manifest", "write-player", "parse template", err)
	}

	var buf bytes.Buffer
	err = tmpl.Execute(&buf, struct {
		Language string
		Title    string
		Emoji    string
		Texts    Texts
	}{Language: matched, Title: title, Emoji: cfg.Emoji, Texts: texts})
	if err != nil {
		return services.Wrap(services.ErrRender, "manifest", "write-player", "execute template", err)
	}

	if err := fileutil.WriteAtomic(path, buf.Bytes(), 0o644); err != nil {
		return services.Wrap(services.ErrRender, "manifest", "write-player", path, err)
	}
	return nil
}
