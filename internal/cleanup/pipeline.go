package cleanup

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/jakoblorz/go-eject/internal/filesystem"
	"github.com/jakoblorz/go-eject/internal/manifest"
	"github.com/jakoblorz/go-eject/internal/npm"
	"github.com/jakoblorz/go-eject/internal/prompt"
	"github.com/jakoblorz/go-eject/internal/slug"
	"github.com/jakoblorz/go-eject/internal/tsconfig"
	"github.com/jakoblorz/go-eject/internal/tui"
)

// Pipeline executes the fixed, ordered cleanup steps against a project
// directory, driven by interactively collected boolean decisions.
//
// Every step is independently idempotent: a missing target is a logged
// skip, never an error, so re-running on an already-cleaned project is a
// no-op. There is no rollback; deletions performed before a fatal error
// stay deleted.
type Pipeline struct {
	fs        filesystem.FileSystem
	confirm   prompt.Confirmer
	installer npm.Installer
	config    Config
	out       io.Writer
}

// Report captures what a run actually did, for the caller and for tests.
type Report struct {
	Slug          string
	TestsRemoved  bool
	Installed     bool
	InstallFailed bool
	ScriptRemoved bool
}

// New creates a Pipeline over the given collaborators.
func New(fs filesystem.FileSystem, confirm prompt.Confirmer, installer npm.Installer, config Config, out io.Writer) *Pipeline {
	return &Pipeline{
		fs:        fs,
		confirm:   confirm,
		installer: installer,
		config:    config,
		out:       out,
	}
}

// fileStep is one entry of the fixed target table processed after the
// manifest flush.
type fileStep struct {
	path  string
	apply func(dir, path string)
}

// Run executes the pipeline in dir (the working directory when empty).
func (p *Pipeline) Run(dir string) (*Report, error) {
	if dir == "" {
		cwd, err := p.fs.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		dir = cwd
	}

	report := &Report{Slug: slug.Derive(filepath.Base(dir))}

	man, err := manifest.Load(p.fs, filepath.Join(dir, p.config.Manifest))
	if err != nil {
		return nil, err
	}

	if err := man.SetName(report.Slug); err != nil {
		return nil, err
	}
	if err := man.ClearDescription(); err != nil {
		return nil, err
	}
	if err := man.ClearKeywords(); err != nil {
		return nil, err
	}
	p.successf("package renamed to %s", report.Slug)

	keepTests, err := p.confirm.Confirm("Do you want to keep the tests?")
	if err != nil {
		return nil, fmt.Errorf("failed to read answer: %w", err)
	}
	if keepTests {
		p.notef("keeping tests and test tooling")
	} else {
		if err := p.removeTests(dir, man); err != nil {
			return nil, err
		}
		report.TestsRemoved = true
	}

	// Single commit point for the manifest edits above; Flush also drops
	// the transient scripts.cleanup and type fields.
	if err := man.Flush(); err != nil {
		return nil, err
	}
	p.successf("updated %s", p.config.Manifest)

	steps := []fileStep{
		{p.config.Lockfile, p.removeFile},
		{p.config.ReadmeName, p.resetReadme},
		{p.config.SampleSource, p.removeFile},
		{p.config.EnvExample, p.promoteEnv},
	}
	for _, step := range steps {
		step.apply(dir, step.path)
	}

	install, err := p.confirm.Confirm("Install packages now?")
	if err != nil {
		return nil, fmt.Errorf("failed to read answer: %w", err)
	}
	if install {
		if err := p.installer.Install(dir); err != nil {
			report.InstallFailed = true
			if p.config.StrictInstall {
				return report, err
			}
			p.warnf("%v", err)
		} else {
			report.Installed = true
		}
	}

	if err := p.maybeRemoveCleanupScript(dir, man, report); err != nil {
		return report, err
	}

	summary, err := renderSummary(summaryData{
		Name:      report.Slug,
		Installed: report.Installed,
	})
	if err != nil {
		return report, fmt.Errorf("failed to render summary: %w", err)
	}
	fmt.Fprintln(p.out, "\n"+tui.TitleStyle.Render("Cleanup complete"))
	fmt.Fprintln(p.out, summary)

	return report, nil
}

// removeTests strips the test harness: devDependencies, script entries,
// the runner config, the test directories and the tsconfig types entry.
func (p *Pipeline) removeTests(dir string, man *manifest.Manifest) error {
	if err := man.RemoveDevDependencies(p.config.TestDevDependencies...); err != nil {
		return err
	}
	if err := man.RemoveScripts(p.config.TestScripts...); err != nil {
		return err
	}

	p.removeFile(dir, p.config.TestConfig)
	for _, testDir := range p.config.TestDirs {
		p.removeDir(dir, testDir)
	}

	tsconfigPath := filepath.Join(dir, p.config.TSConfig)
	changed, err := tsconfig.RemoveTypeEntry(p.fs, tsconfigPath, p.config.TestTypeEntry)
	if err != nil {
		// Malformed compiler config is a warning, not a pipeline abort;
		// the file stays untouched.
		p.warnf("%v, leaving %s untouched", err, p.config.TSConfig)
		return nil
	}
	if changed {
		p.successf("removed %s from %s types", p.config.TestTypeEntry, p.config.TSConfig)
	}

	return nil
}

func (p *Pipeline) removeFile(dir, rel string) {
	path := filepath.Join(dir, rel)
	if !p.fs.Exists(path) {
		p.notef("%s not found, skipping", rel)
		return
	}
	if err := p.fs.Remove(path); err != nil {
		p.warnf("failed to remove %s: %v", rel, err)
		return
	}
	p.successf("removed %s", rel)
}

func (p *Pipeline) removeDir(dir, rel string) {
	path := filepath.Join(dir, rel)
	if !p.fs.Exists(path) {
		p.notef("%s not found, skipping", rel)
		return
	}
	if err := p.fs.RemoveAll(path); err != nil {
		p.warnf("failed to remove %s: %v", rel, err)
		return
	}
	p.successf("removed %s", rel)
}

// resetReadme locates the readme by case-insensitive name match in the
// project root and overwrites it with the placeholder heading.
func (p *Pipeline) resetReadme(dir, name string) {
	entries, err := p.fs.ReadDir(dir)
	if err != nil {
		p.warnf("failed to list %s: %v", dir, err)
		return
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(entry.Name(), name) {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := p.fs.WriteFile(path, []byte(p.config.ReadmeContent), 0644); err != nil {
			p.warnf("failed to reset %s: %v", entry.Name(), err)
			return
		}
		p.successf("reset %s", entry.Name())
		return
	}

	p.notef("no readme found, skipping")
}

// promoteEnv renames the example env file to the active name. If the
// destination already exists, platform rename semantics apply (silent
// overwrite on POSIX).
func (p *Pipeline) promoteEnv(dir, rel string) {
	src := filepath.Join(dir, rel)
	if !p.fs.Exists(src) {
		p.notef("%s not found, skipping", rel)
		return
	}

	dst := filepath.Join(dir, p.config.EnvFile)
	if err := p.fs.Rename(src, dst); err != nil {
		p.warnf("failed to rename %s: %v", rel, err)
		return
	}
	p.successf("renamed %s to %s", rel, p.config.EnvFile)
}

// maybeRemoveCleanupScript runs the third prompt when the template still
// carries its bundled cleanup script. An affirmative answer re-flushes the
// manifest (re-applying the transient-field drop) and deletes the script.
func (p *Pipeline) maybeRemoveCleanupScript(dir string, man *manifest.Manifest, report *Report) error {
	if !p.fs.Exists(filepath.Join(dir, p.config.CleanupScript)) {
		return nil
	}

	remove, err := p.confirm.Confirm("Remove the cleanup script?")
	if err != nil {
		return fmt.Errorf("failed to read answer: %w", err)
	}
	if !remove {
		p.notef("cleanup script kept, you can run it again later")
		return nil
	}

	if err := man.Flush(); err != nil {
		return err
	}
	p.removeFile(dir, p.config.CleanupScript)
	report.ScriptRemoved = true
	return nil
}

func (p *Pipeline) successf(format string, args ...interface{}) {
	fmt.Fprintf(p.out, "✓ %s\n", fmt.Sprintf(format, args...))
}

func (p *Pipeline) warnf(format string, args ...interface{}) {
	fmt.Fprintf(p.out, "⚠️  %s\n", fmt.Sprintf(format, args...))
}

func (p *Pipeline) notef(format string, args ...interface{}) {
	fmt.Fprintln(p.out, tui.SubtleStyle.Render(fmt.Sprintf(format, args...)))
}
