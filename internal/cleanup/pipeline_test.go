package cleanup

import (
	"bytes"
	"errors"
	"testing"

	"github.com/jakoblorz/go-eject/internal/filesystem"
	"github.com/jakoblorz/go-eject/internal/npm"
	"github.com/jakoblorz/go-eject/internal/prompt"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

const manifestFixture = `{
  "name": "starter-template",
  "version": "0.1.0",
  "description": "A batteries-included starter",
  "keywords": ["starter", "template"],
  "license": "MIT",
  "type": "module",
  "scripts": {
    "build": "tsc",
    "test": "jest",
    "test:watch": "jest --watch",
    "cleanup": "node scripts/cleanup.mjs"
  },
  "devDependencies": {
    "@types/jest": "^29.5.0",
    "jest": "^29.7.0",
    "ts-jest": "^29.1.0",
    "typescript": "^5.4.0"
  }
}
`

const tsconfigFixture = `{
  // compiler options for the starter template
  "compilerOptions": {
    "target": "ES2022",
    "types": ["node", "jest"]
  },
  "include": ["src"]
}
`

// newTemplateProject seeds a full starter-template tree under dir.
func newTemplateProject(dir string) *filesystem.MockFileSystem {
	fs := filesystem.NewMockFileSystem()
	fs.SetCurrentDir(dir)

	fs.AddFile(dir+"/package.json", []byte(manifestFixture))
	fs.AddFile(dir+"/package-lock.json", []byte(`{"lockfileVersion": 3}`))
	fs.AddFile(dir+"/README.md", []byte("# Starter Template\n\nDemo docs.\n"))
	fs.AddFile(dir+"/jest.config.js", []byte("module.exports = {};\n"))
	fs.AddFile(dir+"/tsconfig.json", []byte(tsconfigFixture))
	fs.AddFile(dir+"/test/app.test.ts", []byte("test('noop', () => {});\n"))
	fs.AddFile(dir+"/src/tests/unit.test.ts", []byte("test('unit', () => {});\n"))
	fs.AddFile(dir+"/src/index.ts", []byte("export {};\n"))
	fs.AddFile(dir+"/src/example.ts", []byte("export const example = 42;\n"))
	fs.AddFile(dir+"/.env.example", []byte("API_KEY=\n"))
	fs.AddFile(dir+"/scripts/cleanup.mjs", []byte("// template cleanup\n"))

	return fs
}

func runPipeline(t *testing.T, fs *filesystem.MockFileSystem, dir string, config Config, answers ...bool) (*Report, *prompt.MockConfirmer, *npm.MockInstaller, *bytes.Buffer) {
	t.Helper()

	confirmer := prompt.NewMockConfirmer(answers...)
	installer := npm.NewMockInstaller()
	var out bytes.Buffer

	report, err := New(fs, confirmer, installer, config, &out).Run(dir)
	require.NoError(t, err)

	return report, confirmer, installer, &out
}

func TestPipelineRemovesEverything(t *testing.T) {
	dir := "/workspace/My Cool App!!"
	fs := newTemplateProject(dir)

	// no to tests, no to install, yes to removing the cleanup script
	report, confirmer, installer, _ := runPipeline(t, fs, dir, DefaultConfig(), false, false, true)

	require.Equal(t, "my-cool-app", report.Slug)
	require.True(t, report.TestsRemoved)
	require.False(t, report.Installed)
	require.True(t, report.ScriptRemoved)

	require.Len(t, confirmer.Questions, 3)
	require.Contains(t, confirmer.Questions[0], "keep the tests")
	require.Contains(t, confirmer.Questions[1], "Install packages")
	require.Contains(t, confirmer.Questions[2], "cleanup script")
	require.Empty(t, installer.Calls)

	written, err := fs.ReadFile(dir + "/package.json")
	require.NoError(t, err)
	require.Equal(t, "my-cool-app", gjson.GetBytes(written, "name").String())
	require.Equal(t, "", gjson.GetBytes(written, "description").String())
	require.Empty(t, gjson.GetBytes(written, "keywords").Array())
	require.False(t, gjson.GetBytes(written, "scripts.test").Exists())
	require.False(t, gjson.GetBytes(written, `scripts.test:watch`).Exists())
	require.False(t, gjson.GetBytes(written, "scripts.cleanup").Exists())
	require.False(t, gjson.GetBytes(written, "devDependencies.jest").Exists())
	require.False(t, gjson.GetBytes(written, "devDependencies.ts-jest").Exists())
	require.False(t, gjson.GetBytes(written, `devDependencies.@types/jest`).Exists())
	require.Equal(t, "^5.4.0", gjson.GetBytes(written, "devDependencies.typescript").String())
	require.False(t, gjson.GetBytes(written, "type").Exists())

	require.False(t, fs.Exists(dir+"/package-lock.json"))
	require.False(t, fs.Exists(dir+"/jest.config.js"))
	require.False(t, fs.Exists(dir+"/test"))
	require.False(t, fs.Exists(dir+"/test/app.test.ts"))
	require.False(t, fs.Exists(dir+"/src/tests"))
	require.False(t, fs.Exists(dir+"/src/example.ts"))
	require.False(t, fs.Exists(dir+"/scripts/cleanup.mjs"))
	require.True(t, fs.Exists(dir+"/src/index.ts"))

	readme, err := fs.ReadFile(dir + "/README.md")
	require.NoError(t, err)
	require.Equal(t, "# My Project\n\n", string(readme))

	require.False(t, fs.Exists(dir+"/.env.example"))
	env, err := fs.ReadFile(dir + "/.env")
	require.NoError(t, err)
	require.Equal(t, "API_KEY=\n", string(env))

	tsconfig, err := fs.ReadFile(dir + "/tsconfig.json")
	require.NoError(t, err)
	types := gjson.GetBytes(tsconfig, "compilerOptions.types")
	require.Len(t, types.Array(), 1)
	require.Equal(t, "node", types.Array()[0].String())
}

func TestPipelineKeepTests(t *testing.T) {
	dir := "/workspace/demo-app"
	fs := newTemplateProject(dir)

	report, _, _, _ := runPipeline(t, fs, dir, DefaultConfig(), true, false, false)
	require.False(t, report.TestsRemoved)

	written, err := fs.ReadFile(dir + "/package.json")
	require.NoError(t, err)

	// Manifest identity edits happen regardless of the tests answer.
	require.Equal(t, "demo-app", gjson.GetBytes(written, "name").String())
	require.Equal(t, "", gjson.GetBytes(written, "description").String())

	// Test harness stays exactly in place.
	require.Equal(t, "jest", gjson.GetBytes(written, "scripts.test").String())
	require.Equal(t, "^29.7.0", gjson.GetBytes(written, "devDependencies.jest").String())
	require.True(t, fs.Exists(dir+"/jest.config.js"))
	require.True(t, fs.Exists(dir+"/test/app.test.ts"))
	require.True(t, fs.Exists(dir+"/src/tests/unit.test.ts"))

	tsconfig, err := fs.ReadFile(dir + "/tsconfig.json")
	require.NoError(t, err)
	require.Len(t, gjson.GetBytes(tsconfig, "compilerOptions.types").Array(), 2)

	// Transient fields are dropped on every flush, even when tests stay.
	require.False(t, gjson.GetBytes(written, "scripts.cleanup").Exists())
	require.False(t, gjson.GetBytes(written, "type").Exists())
}

func TestPipelineIsIdempotent(t *testing.T) {
	dir := "/workspace/demo-app"
	fs := newTemplateProject(dir)

	runPipeline(t, fs, dir, DefaultConfig(), false, false, true)

	// Second run on the already-cleaned project: every filesystem target
	// is gone, so each step skips without error.
	report, confirmer, _, _ := runPipeline(t, fs, dir, DefaultConfig(), false, false)

	require.Equal(t, "demo-app", report.Slug)
	// The cleanup script was removed in the first run, so its prompt is
	// not asked again.
	require.Len(t, confirmer.Questions, 2)

	readme, err := fs.ReadFile(dir + "/README.md")
	require.NoError(t, err)
	require.Equal(t, "# My Project\n\n", string(readme))
}

func TestPipelineInstall(t *testing.T) {
	dir := "/workspace/demo-app"
	fs := newTemplateProject(dir)

	report, _, installer, _ := runPipeline(t, fs, dir, DefaultConfig(), false, true, false)

	require.True(t, report.Installed)
	require.Equal(t, []string{dir}, installer.Calls)
}

func TestPipelineInstallFailureLenient(t *testing.T) {
	dir := "/workspace/demo-app"
	fs := newTemplateProject(dir)

	confirmer := prompt.NewMockConfirmer(false, true, false)
	installer := npm.NewMockInstaller()
	installer.Err = errors.New("npm install failed: exit status 1")
	var out bytes.Buffer

	report, err := New(fs, confirmer, installer, DefaultConfig(), &out).Run(dir)
	require.NoError(t, err)
	require.True(t, report.InstallFailed)
	require.False(t, report.Installed)
	require.Contains(t, out.String(), "npm install failed")
}

func TestPipelineInstallFailureStrict(t *testing.T) {
	dir := "/workspace/demo-app"
	fs := newTemplateProject(dir)

	config := DefaultConfig()
	config.StrictInstall = true

	confirmer := prompt.NewMockConfirmer(false, true)
	installer := npm.NewMockInstaller()
	installer.Err = errors.New("npm install failed: exit status 1")
	var out bytes.Buffer

	_, err := New(fs, confirmer, installer, config, &out).Run(dir)
	require.ErrorContains(t, err, "npm install failed")
}

func TestPipelineKeepCleanupScript(t *testing.T) {
	dir := "/workspace/demo-app"
	fs := newTemplateProject(dir)

	report, _, _, _ := runPipeline(t, fs, dir, DefaultConfig(), false, false, false)

	require.False(t, report.ScriptRemoved)
	require.True(t, fs.Exists(dir+"/scripts/cleanup.mjs"))
}

func TestPipelineMissingManifestIsFatal(t *testing.T) {
	fs := filesystem.NewMockFileSystem()
	fs.AddDir("/workspace/empty")

	confirmer := prompt.NewMockConfirmer()
	installer := npm.NewMockInstaller()
	var out bytes.Buffer

	_, err := New(fs, confirmer, installer, DefaultConfig(), &out).Run("/workspace/empty")
	require.Error(t, err)
	// Nothing was asked before the fatal precondition failure.
	require.Empty(t, confirmer.Questions)
}

func TestPipelineMalformedTsconfigWarnsAndContinues(t *testing.T) {
	dir := "/workspace/demo-app"
	fs := newTemplateProject(dir)
	broken := `{"compilerOptions": { "types": [`
	require.NoError(t, fs.WriteFile(dir+"/tsconfig.json", []byte(broken), 0644))

	report, _, _, out := runPipeline(t, fs, dir, DefaultConfig(), false, false, false)

	require.True(t, report.TestsRemoved)
	require.Contains(t, out.String(), "⚠️")

	// The unparsable file is left exactly as it was.
	written, err := fs.ReadFile(dir + "/tsconfig.json")
	require.NoError(t, err)
	require.Equal(t, broken, string(written))

	// The rest of the test removal still happened.
	require.False(t, fs.Exists(dir+"/jest.config.js"))
	require.False(t, fs.Exists(dir+"/test"))
}

func TestPipelineReadmeCaseInsensitive(t *testing.T) {
	dir := "/workspace/demo-app"
	fs := newTemplateProject(dir)
	require.NoError(t, fs.Rename(dir+"/README.md", dir+"/ReadMe.MD"))

	runPipeline(t, fs, dir, DefaultConfig(), false, false, false)

	readme, err := fs.ReadFile(dir + "/ReadMe.MD")
	require.NoError(t, err)
	require.Equal(t, "# My Project\n\n", string(readme))
}

func TestPipelineEnvDestinationOverwritten(t *testing.T) {
	dir := "/workspace/demo-app"
	fs := newTemplateProject(dir)
	fs.AddFile(dir+"/.env", []byte("OLD=1\n"))

	runPipeline(t, fs, dir, DefaultConfig(), false, false, false)

	// The mock mirrors POSIX rename: the destination is overwritten.
	env, err := fs.ReadFile(dir + "/.env")
	require.NoError(t, err)
	require.Equal(t, "API_KEY=\n", string(env))
	require.False(t, fs.Exists(dir+"/.env.example"))
}
