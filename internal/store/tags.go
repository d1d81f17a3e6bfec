package store

import (
	"path/filepath"

	"github.com/tasksheet/tasksheet-cli/internal/model"
)

const (
	availableTagsFile = "availableTags.json"
	tagColorsFile     = "tagColors.json"
)

// DefaultTags seeds the available-tags set on first use.
var DefaultTags = []string{model.DefaultTag, "work", "health"}

// LoadAvailableTags returns the local available-tags set, seeded with the
// defaults when no file exists yet.
func LoadAvailableTags(dir string) ([]string, error) {
	var tags []string
	if err := loadJSON(filepath.Join(dir, availableTagsFile), &tags); err != nil {
		return nil, err
	}
	if len(tags) == 0 {
		tags = append(tags, DefaultTags...)
	}
	return tags, nil
}

func SaveAvailableTags(dir string, tags []string) error {
	return saveJSON(filepath.Join(dir, availableTagsFile), tags)
}

// DeleteAvailableTag removes tag from the set. The fallback tag can never
// be removed.
func DeleteAvailableTag(dir, tag string) error {
	if tag == model.DefaultTag {
		return nil
	}
	tags, err := LoadAvailableTags(dir)
	if err != nil {
		return err
	}
	kept := make([]string, 0, len(tags))
	for _, t := range tags {
		if t != tag {
			kept = append(kept, t)
		}
	}
	return SaveAvailableTags(dir, kept)
}

// AddAvailableTag inserts tag if the set does not already hold it.
func AddAvailableTag(dir, tag string) error {
	if tag == "" {
		return nil
	}
	tags, err := LoadAvailableTags(dir)
	if err != nil {
		return err
	}
	for _, t := range tags {
		if t == tag {
			return nil
		}
	}
	return SaveAvailableTags(dir, append(tags, tag))
}

func LoadTagColors(dir string) (map[string]string, error) {
	colors := make(map[string]string)
	if err := loadJSON(filepath.Join(dir, tagColorsFile), &colors); err != nil {
		return nil, err
	}
	return colors, nil
}

func SaveTagColor(dir, tag, color string) error {
	colors, err := LoadTagColors(dir)
	if err != nil {
		return err
	}
	colors[tag] = color
	return saveJSON(filepath.Join(dir, tagColorsFile), colors)
}
