package cli_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/quilldocs/quill/internal/testutil"
)

func standardCorpus(t *testing.T) *testutil.TestCorpus {
	t.Helper()
	return testutil.NewTestCorpus(t).
		WithPage("commands", "jail", testutil.CommandPage("jail", "Locks a player up.")).
		WithPage("commands", "dot_yes", testutil.CommandPage(".yes", "Votes yes on the current poll.")).
		WithPage("cvars", "sp_sv_sound_asterisk", testutil.CvarPage("sp_sv_sound_*", "Per-sound volume family.")).
		Build()
}

func TestBuildDryRunWritesNothing(t *testing.T) {
	corpus := standardCorpus(t)

	result := corpus.RunCLI("build").MustSucceed(t)
	if result.DataBool("written") {
		t.Error("dry run reported written=true")
	}
	corpus.AssertFileNotExists("map.json")

	// jail, dot_yes, .yes, sp_sv_sound_*
	if n, ok := result.Data["entries"].(float64); !ok || int(n) != 4 {
		t.Errorf("entries = %v, want 4", result.Data["entries"])
	}
}

func TestBuildWritePersistsMapAndCache(t *testing.T) {
	corpus := standardCorpus(t)

	corpus.RunCLI("build", "--write").MustSucceed(t)

	corpus.AssertFileExists("map.json")
	corpus.AssertFileContains("map.json", `"jail"`)
	corpus.AssertFileContains("map.json", `".yes"`)
	corpus.AssertFileContains("map.json", `"sp_sv_sound_*"`)
	corpus.AssertFileExists(".quill/lookup.db")

	// A second write over an unchanged corpus is a no-op.
	before := corpus.ReadFile("map.json")
	corpus.RunCLI("build", "--write").MustSucceed(t)
	if after := corpus.ReadFile("map.json"); after != before {
		t.Error("rebuilding an unchanged corpus changed map.json")
	}
}

func TestBuildRejectsWriteWithOnly(t *testing.T) {
	corpus := standardCorpus(t)

	corpus.RunCLI("build", "--write", "--only", "cvars").MustFail(t, "INVALID_INPUT")
}

func TestMissingCorpusIsStructuredError(t *testing.T) {
	corpus := standardCorpus(t)

	// The later --corpus-path wins over the harness default.
	missing := filepath.Join(corpus.Path, "nowhere")
	result := corpus.RunCLI("check", "--corpus-path", missing)
	result.MustFail(t, "CORPUS_NOT_FOUND")
	if result.ExitCode == 0 {
		t.Error("missing corpus must exit non-zero")
	}
}

func TestBuildConflictExitsNonZero(t *testing.T) {
	corpus := testutil.NewTestCorpus(t).
		WithPage("commands", "jail", testutil.CommandPage("jail", "Locks a player up.")).
		WithPage("cvars", "jail", testutil.CvarPage("jail", "Conflicting cvar page.")).
		Build()

	result := corpus.RunCLI("build")
	result.MustFail(t, "MERGE_CONFLICT")
	if result.ExitCode == 0 {
		t.Error("conflicting sources must exit non-zero")
	}

	conflicts, _ := result.Error.Details["conflicts"].([]interface{})
	if len(conflicts) != 1 {
		t.Fatalf("conflicts = %d, want 1\nRaw: %s", len(conflicts), result.RawJSON)
	}
	c, _ := conflicts[0].(map[string]interface{})
	if c["name"] != "jail" {
		t.Errorf("conflict name = %v, want jail", c["name"])
	}
	if c["kept_path"] != "commands/jail.md" {
		t.Errorf("kept_path = %v, want commands/jail.md (first page in scan order wins)", c["kept_path"])
	}
}

func TestLookupExactAliasAndWildcard(t *testing.T) {
	corpus := standardCorpus(t)
	corpus.RunCLI("build", "--write").MustSucceed(t)

	result := corpus.RunCLI("lookup", "jail").MustSucceed(t)
	if result.DataString("path") != "commands/jail.md" {
		t.Errorf("path = %q", result.DataString("path"))
	}

	result = corpus.RunCLI("lookup", ".yes").MustSucceed(t)
	if result.DataString("path") != "commands/dot_yes.md" {
		t.Errorf("alias path = %q", result.DataString("path"))
	}

	result = corpus.RunCLI("lookup", "sp_sv_sound_feet").MustSucceed(t)
	if result.DataString("name") != "sp_sv_sound_*" {
		t.Errorf("wildcard resolved to %q, want sp_sv_sound_*", result.DataString("name"))
	}
}

func TestLookupMissSetsExitCode(t *testing.T) {
	corpus := standardCorpus(t)
	corpus.RunCLI("build", "--write").MustSucceed(t)

	result := corpus.RunCLI("lookup", "no_such_name").MustFail(t, "NAME_NOT_FOUND")
	if result.ExitCode == 0 {
		t.Error("a lookup miss must exit non-zero")
	}
}

func TestLookupSeedsCacheFromMap(t *testing.T) {
	corpus := standardCorpus(t)
	corpus.RunCLI("build", "--write").MustSucceed(t)

	// Simulate a fresh checkout: map.json present, cache gone.
	if err := os.RemoveAll(filepath.Join(corpus.Path, ".quill")); err != nil {
		t.Fatal(err)
	}

	corpus.RunCLI("lookup", "jail").MustSucceed(t)
}

func TestShowRendersPage(t *testing.T) {
	corpus := standardCorpus(t)
	corpus.RunCLI("build", "--write").MustSucceed(t)

	result := corpus.RunCLI("show", "jail").MustSucceed(t)
	content := result.DataString("content")
	if content == "" {
		t.Fatalf("empty content\nRaw: %s", result.RawJSON)
	}
	if want := "### jail"; !strings.Contains(content, want) {
		t.Errorf("content missing %q:\n%s", want, content)
	}
}

func TestCheckCleanCorpus(t *testing.T) {
	corpus := standardCorpus(t)
	corpus.RunCLI("build", "--write").MustSucceed(t)

	result := corpus.RunCLI("check").MustSucceed(t)
	if result.ExitCode != 0 {
		t.Errorf("clean corpus exited %d\nRaw: %s", result.ExitCode, result.RawJSON)
	}
	result.AssertResultCount(t, "issues", 0)
}

func TestCheckDanglingIndexRef(t *testing.T) {
	corpus := testutil.NewTestCorpus(t).
		WithPage("commands", "jail", testutil.CommandPage("jail", "Locks a player up.")).
		WithIndex("- `jail` — command — none — `commands/jail.md`\n" +
			"- `speed` — cvar — none — `cvars/speed.md`\n").
		Build()

	result := corpus.RunCLI("check")
	if result.ExitCode == 0 {
		t.Error("dangling index reference must exit non-zero")
	}

	issues := result.DataList("issues")
	if len(issues) != 1 {
		t.Fatalf("issues = %d, want exactly 1\nRaw: %s", len(issues), result.RawJSON)
	}
	issue, _ := issues[0].(map[string]interface{})
	if issue["check"] != "index-ref" {
		t.Errorf("check = %v, want index-ref", issue["check"])
	}
	if issue["path"] != "cvars/speed.md" {
		t.Errorf("path = %v, want cvars/speed.md", issue["path"])
	}
}

func TestCheckSchemaSeverityDowngrade(t *testing.T) {
	// Page without a synopsis; schema_severity demotes it to a warning.
	corpus := testutil.NewTestCorpus(t).
		WithPage("cvars", "speed", "### speed\n\nMovement speed multiplier.\n").
		WithIndex("- `speed` — cvar — none — `cvars/speed.md`\n").
		WithQuillYAML("schema_severity: warning\n").
		Build()

	result := corpus.RunCLI("check").MustSucceed(t)
	if result.ExitCode != 0 {
		t.Errorf("warnings alone exited %d", result.ExitCode)
	}

	strict := corpus.RunCLI("check", "--strict")
	if strict.ExitCode == 0 {
		t.Error("--strict must fail on warnings")
	}
}

func TestCheckOrphanExclusion(t *testing.T) {
	corpus := testutil.NewTestCorpus(t).
		WithPage("commands", "scratchpad", testutil.CommandPage("scratchpad", "Internal notes.")).
		WithQuillYAML("exclude:\n  - scratchpad\n").
		Build()

	result := corpus.RunCLI("check").MustSucceed(t)
	if result.ExitCode != 0 {
		t.Errorf("excluded orphan exited %d\nRaw: %s", result.ExitCode, result.RawJSON)
	}
	result.AssertResultCount(t, "issues", 0)
}

func TestCheckOnlyScopesReferences(t *testing.T) {
	// The index references a cvar page; a commands-only pass must not
	// flag it and must not flag the cvar page as orphaned.
	corpus := testutil.NewTestCorpus(t).
		WithPage("commands", "jail", testutil.CommandPage("jail", "Locks a player up.")).
		WithIndex("- `jail` — command — none — `commands/jail.md`\n" +
			"- `speed` — cvar — none — `cvars/speed.md`\n").
		Build()

	result := corpus.RunCLI("check", "--only", "commands").MustSucceed(t)
	if result.ExitCode != 0 {
		t.Errorf("scoped check exited %d\nRaw: %s", result.ExitCode, result.RawJSON)
	}
	result.AssertResultCount(t, "issues", 0)
}

func TestNewScaffoldsAliasPage(t *testing.T) {
	corpus := testutil.NewTestCorpus(t).Build()

	result := corpus.RunCLI("new", "commands", ".no", "--summary", "Votes no.").MustSucceed(t)
	if result.DataString("path") != "commands/dot_no.md" {
		t.Errorf("path = %q, want commands/dot_no.md", result.DataString("path"))
	}
	corpus.AssertFileContains("commands/dot_no.md", "### .no")
	corpus.AssertFileContains("commands/dot_no.md", "Votes no.")

	// Refuses to clobber.
	corpus.RunCLI("new", "commands", ".no").MustFail(t, "PAGE_EXISTS")
}

func TestDescriptionsSync(t *testing.T) {
	page := "---\ndescription: out of date\n---\n### jail\n\nLocks a player up.\n\nSynopsis:\n\n```\njail\n```\n"
	corpus := testutil.NewTestCorpus(t).
		WithQuillYAML("extension: .mdc\n").
		WithFile("commands/jail.mdc", page).
		Build()

	// Dry run reports the drift but leaves the file alone.
	result := corpus.RunCLI("descriptions").MustSucceed(t)
	result.AssertResultCount(t, "changes", 1)
	corpus.AssertFileContains("commands/jail.mdc", "out of date")

	corpus.RunCLI("descriptions", "--write").MustSucceed(t)
	corpus.AssertFileContains("commands/jail.mdc", `description: "Locks a player up."`)
	corpus.AssertFileNotContains("commands/jail.mdc", "out of date")

	// Second run is clean.
	result = corpus.RunCLI("descriptions").MustSucceed(t)
	result.AssertResultCount(t, "changes", 0)
}

func TestVersionReportsModule(t *testing.T) {
	corpus := testutil.NewTestCorpus(t).Build()

	result := corpus.RunCLI("version").MustSucceed(t)
	if result.DataString("module_path") != "github.com/quilldocs/quill" {
		t.Errorf("module_path = %q", result.DataString("module_path"))
	}
}
