package scripting

import (
	"os"
	"path/filepath"
	"testing"

	lua "github.com/yuin/gopher-lua"
)

func writeScript(t *testing.T, dir, name, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestEngineLoadsScriptsAndCallsFunctions(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "behavior.lua", `
last_id = 0
function on_tick(id, dt)
    last_id = id
end
`)

	e, err := NewEngine(dir, nil)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	defer e.Close()

	if !e.HasFunction("on_tick") {
		t.Fatal("expected on_tick to be defined")
	}
	if e.HasFunction("missing") {
		t.Fatal("undefined function reported as present")
	}

	if err := e.CallProcess("on_tick", 42, 0.016); err != nil {
		t.Fatalf("call: %v", err)
	}

	if err := e.CallProcess("missing", 1, 0.016); err == nil {
		t.Fatal("expected an error calling an undefined function")
	}
}

func TestEngineLoadsSubdirectories(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "sim")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	writeScript(t, sub, "nested.lua", "function nested() end")
	writeScript(t, dir, "readme.txt", "not a script")

	e, err := NewEngine(dir, nil)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	defer e.Close()

	if !e.HasFunction("nested") {
		t.Fatal("script in subdirectory was not loaded")
	}
}

func TestMissingScriptsDirIsNotAnError(t *testing.T) {
	e, err := NewEngine(filepath.Join(t.TempDir(), "absent"), nil)
	if err != nil {
		t.Fatalf("missing dir should not fail: %v", err)
	}
	e.Close()
}

func TestRegisteredGoFunctionIsCallable(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "caller.lua", `
function use_api(id, dt)
    record(id * 2)
end
`)

	e, err := NewEngine(dir, nil)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	defer e.Close()

	var got int
	e.RegisterFunc("record", func(L *lua.LState) int {
		got = int(L.CheckNumber(1))
		return 0
	})

	if err := e.CallProcess("use_api", 21, 0.016); err != nil {
		t.Fatalf("call: %v", err)
	}
	if got != 42 {
		t.Fatalf("expected 42 through the registered api, got %d", got)
	}
}

func TestScriptLoadErrorSurfaces(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "broken.lua", "function (")

	if _, err := NewEngine(dir, nil); err == nil {
		t.Fatal("expected a load error for broken lua")
	}
}
