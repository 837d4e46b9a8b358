package manifest

import (
	"fmt"
	"strings"

	"github.com/jakoblorz/go-eject/internal/filesystem"
	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
)

// Manifest is a package.json document loaded into memory.
//
// Edits operate on the raw JSON text so that fields the tool does not
// recognize (version, license, dependencies, ...) survive a cleanup run
// untouched and in their original order. The in-memory document and the
// on-disk file may diverge between edits; only Flush commits.
type Manifest struct {
	fs   filesystem.FileSystem
	path string
	raw  []byte
}

// Load reads and validates the manifest at path.
//
// A missing or unparsable manifest is a fatal precondition violation for
// the whole cleanup run, so the error is returned as-is for the caller
// to propagate.
func Load(fs filesystem.FileSystem, path string) (*Manifest, error) {
	data, err := fs.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %s: %w", path, err)
	}

	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("manifest %s is not valid JSON", path)
	}

	return &Manifest{fs: fs, path: path, raw: data}, nil
}

// Path returns the on-disk location of the manifest.
func (m *Manifest) Path() string {
	return m.path
}

// Get resolves a gjson path against the current in-memory document.
func (m *Manifest) Get(path string) gjson.Result {
	return gjson.GetBytes(m.raw, path)
}

// SetName sets the package name.
func (m *Manifest) SetName(name string) error {
	return m.set("name", name)
}

// ClearDescription resets the description to the empty string.
func (m *Manifest) ClearDescription() error {
	return m.set("description", "")
}

// ClearKeywords resets keywords to an empty list.
func (m *Manifest) ClearKeywords() error {
	return m.set("keywords", []string{})
}

// RemoveDevDependencies deletes devDependencies entries by exact name.
// Names that are not present are ignored.
func (m *Manifest) RemoveDevDependencies(names ...string) error {
	for _, name := range names {
		if err := m.delete("devDependencies." + escapePathKey(name)); err != nil {
			return fmt.Errorf("failed to remove devDependency %s: %w", name, err)
		}
	}
	return nil
}

// RemoveScripts deletes scripts entries by exact name.
// Names that are not present are ignored.
func (m *Manifest) RemoveScripts(names ...string) error {
	for _, name := range names {
		if err := m.delete("scripts." + escapePathKey(name)); err != nil {
			return fmt.Errorf("failed to remove script %s: %w", name, err)
		}
	}
	return nil
}

// DropTransientFields removes the template's own pipeline markers: the
// "cleanup" script entry and a literal `"type": "module"` field. Both are
// no-ops when absent, so the drop can run before every flush.
func (m *Manifest) DropTransientFields() error {
	if err := m.delete("scripts.cleanup"); err != nil {
		return fmt.Errorf("failed to remove cleanup script entry: %w", err)
	}

	if m.Get("type").String() == "module" {
		if err := m.delete("type"); err != nil {
			return fmt.Errorf("failed to remove type field: %w", err)
		}
	}

	return nil
}

// Flush applies the pending transient-field drop and overwrites the
// manifest file with the pretty-printed document plus a trailing newline.
// This is the single commit point for all in-memory edits.
func (m *Manifest) Flush() error {
	if err := m.DropTransientFields(); err != nil {
		return err
	}

	out := pretty.Pretty(m.raw)
	if len(out) == 0 || out[len(out)-1] != '\n' {
		out = append(out, '\n')
	}

	if err := m.fs.WriteFile(m.path, out, 0644); err != nil {
		return fmt.Errorf("failed to write manifest %s: %w", m.path, err)
	}

	m.raw = out
	return nil
}

func (m *Manifest) set(path string, value interface{}) error {
	updated, err := sjson.SetBytes(m.raw, path, value)
	if err != nil {
		return fmt.Errorf("failed to set %s: %w", path, err)
	}
	m.raw = updated
	return nil
}

func (m *Manifest) delete(path string) error {
	updated, err := sjson.DeleteBytes(m.raw, path)
	if err != nil {
		return err
	}
	m.raw = updated
	return nil
}

// escapePathKey escapes path metacharacters so a literal object key can
// be addressed through gjson and sjson. Beyond the separator and wildcard
// characters, sjson refuses paths containing an unescaped @, # or | as
// "complex", which every scoped npm name like "@types/jest" would hit.
func escapePathKey(key string) string {
	replacer := strings.NewReplacer(
		".", `\.`,
		"*", `\*`,
		"?", `\?`,
		"@", `\@`,
		"#", `\#`,
		"|", `\|`,
		":", `\:`,
	)
	return replacer.Replace(key)
}
