package tsconfig

import (
	"fmt"
	"strings"

	"github.com/jakoblorz/go-eject/internal/filesystem"
	"github.com/tidwall/gjson"
	"github.com/tidwall/jsonc"
)

// RemoveTypeEntry removes a type-declaration entry (for example "jest")
// from compilerOptions.types in the tsconfig at path.
//
// tsconfig files are JSONC: comments and trailing commas are legal. The
// document is translated with jsonc.ToJSON, which blanks comments in place
// and keeps every byte offset stable. That lets us locate the types list in
// the translated copy and splice the shortened list into the original
// bytes, so comments and formatting everywhere else survive verbatim.
//
// A missing file, a missing types list or an absent entry is a no-op.
// A document that still fails to parse after translation is reported as an
// error; the caller is expected to warn and leave the file untouched.
func RemoveTypeEntry(fs filesystem.FileSystem, path, entry string) (bool, error) {
	if !fs.Exists(path) {
		return false, nil
	}

	src, err := fs.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", path, err)
	}

	translated := jsonc.ToJSON(src)
	if len(translated) != len(src) || !gjson.ValidBytes(translated) {
		return false, fmt.Errorf("cannot parse %s", path)
	}

	types := gjson.GetBytes(translated, "compilerOptions.types")
	if !types.Exists() {
		return false, nil
	}
	if !types.IsArray() || types.Index == 0 {
		return false, fmt.Errorf("compilerOptions.types in %s is not a plain array", path)
	}

	kept := make([]string, 0)
	found := false
	for _, el := range types.Array() {
		if el.Type == gjson.String && el.String() == entry {
			found = true
			continue
		}
		kept = append(kept, el.Raw)
	}
	if !found {
		return false, nil
	}

	// Rewrite only the list's textual region; remaining entries keep their
	// original raw text and order.
	var out []byte
	out = append(out, src[:types.Index]...)
	out = append(out, '[')
	out = append(out, strings.Join(kept, ", ")...)
	out = append(out, ']')
	out = append(out, src[types.Index+len(types.Raw):]...)

	if err := fs.WriteFile(path, out, 0644); err != nil {
		return false, fmt.Errorf("failed to write %s: %w", path, err)
	}

	return true, nil
}
