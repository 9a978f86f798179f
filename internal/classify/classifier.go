package classify

import (
	"path/filepath"
	"strings"

	"stacks/internal/desktop"
	"stacks/internal/textutil"
)

// DefaultOthers is the fallback category name.
const DefaultOthers = "Others"

// Source records where a MIME type came from.
type Source string

const (
	SourceNone      Source = "none"
	SourceExtension Source = "extension"
	SourceSniff     Source = "sniff"
)

// Rule records which step of the classification chain picked the category.
type Rule string

const (
	RuleMedia       Rule = "media"
	RuleApplication Rule = "application"
	RuleFallback    Rule = "fallback"
)

// Classification explains how a file was categorized.
type Classification struct {
	Name     string
	MIMEType string
	Source   Source
	Rule     Rule
	Category string
}

// Options configures a Classifier.
type Options struct {
	// Others is the fallback category. Empty means DefaultOthers.
	Others string
	// Extensions maps lowercase extensions with leading dot to MIME types.
	Extensions map[string]string
	// Sniffer inspects file contents when the extension is unknown. Nil
	// disables content sniffing.
	Sniffer Sniffer
}

// Classifier maps files to category folder names.
type Classifier struct {
	provider   desktop.Provider
	folders    desktop.SpecialFolders
	others     string
	extensions map[string]string
	sniffer    Sniffer
}

// New builds a Classifier. The provider's special folder names are read
// once here.
func New(provider desktop.Provider, opts Options) *Classifier {
	others := strings.TrimSpace(opts.Others)
	if others == "" {
		others = DefaultOthers
	}
	return &Classifier{
		provider:   provider,
		folders:    provider.SpecialFolders(),
		others:     others,
		extensions: opts.Extensions,
		sniffer:    opts.Sniffer,
	}
}

// Others returns the fallback category name.
func (c *Classifier) Others() string { return c.others }

// Folders returns the localized media folder names.
func (c *Classifier) Folders() desktop.SpecialFolders { return c.folders }

// FixedCategories returns the categories that exist independently of
// installed applications: Others, Music, Pictures, Videos.
func (c *Classifier) FixedCategories() []string {
	return []string{c.others, c.folders.Music, c.folders.Pictures, c.folders.Videos}
}

// Classify returns the category for the file at path.
func (c *Classifier) Classify(path string) string {
	return c.Describe(path).Category
}

// Describe classifies the file at path and reports how the category was
// chosen. Only the base name is used for extension lookup; the full path is
// read when content sniffing is needed.
func (c *Classifier) Describe(path string) Classification {
	result := Classification{Name: filepath.Base(path), Source: SourceNone}

	if t := typeByExtension(extension(result.Name), c.extensions); t != "" {
		result.MIMEType = t
		result.Source = SourceExtension
	} else if c.sniffer != nil {
		if t, err := c.sniffer.Sniff(path); err == nil && t != "" {
			result.MIMEType = t
			result.Source = SourceSniff
		}
	}

	if result.MIMEType == "" {
		return c.fallback(result)
	}

	topLevel, _, _ := strings.Cut(result.MIMEType, "/")
	switch topLevel {
	case "audio":
		return c.media(result, c.folders.Music)
	case "video":
		return c.media(result, c.folders.Videos)
	case "image":
		return c.media(result, c.folders.Pictures)
	}

	if app, ok := c.provider.DefaultApp(result.MIMEType); ok {
		if category, ok := AppCategory(app); ok {
			result.Rule = RuleApplication
			result.Category = category
			return result
		}
	}
	return c.fallback(result)
}

func (c *Classifier) media(result Classification, folder string) Classification {
	result.Rule = RuleMedia
	result.Category = folder
	return result
}

func (c *Classifier) fallback(result Classification) Classification {
	result.Rule = RuleFallback
	result.Category = c.others
	return result
}

// AppCategory converts an application display name into the folder name
// used for its category. It reports false if the name cannot be used as a
// folder name.
func AppCategory(displayName string) (string, bool) {
	name := textutil.SanitizeFileName(displayName)
	return name, name != ""
}
