package session

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/JPM1118/imgbind/internal/config"
	"github.com/JPM1118/imgbind/internal/resolver"
	"github.com/JPM1118/imgbind/internal/testutil"
)

const doc = `{
  "v": "5.7.4", "w": 100, "h": 100,
  "assets": [
    {"id": "ast1", "w": 4, "h": 3, "u": "images/", "p": "cat.png", "e": 0},
    {"id": "ast2", "w": 2, "h": 2, "u": "images/", "p": "dog.png", "e": 0}
  ],
  "layers": [
    {"ty": 2, "nm": "cat", "refId": "ast1"},
    {"ty": 2, "nm": "dog", "refId": "ast2"},
    {"ty": 2, "nm": "ghost", "refId": "ast9"}
  ]
}`

func setup(t *testing.T) (docPath, overrides string) {
	t.Helper()
	dir := t.TempDir()
	docPath = filepath.Join(dir, "anim.json")
	if err := os.WriteFile(docPath, []byte(doc), 0644); err != nil {
		t.Fatal(err)
	}
	testutil.WritePNG(t, filepath.Join(dir, "images", "cat.png"), testutil.Pixel(color.Black))
	overrides = filepath.Join(dir, "overrides")
	testutil.WritePNG(t, filepath.Join(overrides, "white.png"), testutil.Pixel(color.White))
	return docPath, overrides
}

func TestOpen_RegistersDeclaredLayers(t *testing.T) {
	docPath, overrides := setup(t)
	s, err := Open(Options{DocPath: docPath, Config: config.Defaults(), ReplacementDir: overrides})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(s.Layers()) != 3 {
		t.Errorf("document layers = %d, want 3", len(s.Layers()))
	}
	if len(s.Resolver.Layers()) != 2 {
		t.Errorf("registered layers = %d, want 2 (ghost dropped)", len(s.Resolver.Layers()))
	}
	if s.SourceKind() != config.SourceFilepath {
		t.Errorf("SourceKind() = %q, want filepath", s.SourceKind())
	}
}

func TestOpen_ResolvesFromDocumentDir(t *testing.T) {
	docPath, overrides := setup(t)
	s, err := Open(Options{DocPath: docPath, Config: config.Defaults(), ReplacementDir: overrides})
	if err != nil {
		t.Fatal(err)
	}
	s.Resolver.ResolveAll()

	cat := s.Layers()[0]
	if !testutil.SameColor(cat.Image(), testutil.Pixel(color.Black)) {
		t.Error("cat should load from the document's images directory")
	}
	if s.Layers()[1].Image() != nil {
		t.Error("dog has no file and should stay empty")
	}
}

func TestOpen_ReplaceFlagMergesOverConfig(t *testing.T) {
	docPath, overrides := setup(t)
	cfg := config.Defaults()
	cfg.Replacements.Images["cat.png"] = "missing.png"

	s, err := Open(Options{
		DocPath:        docPath,
		Config:         cfg,
		ReplacementDir: overrides,
		Replace:        map[string]string{"cat.png": "white.png"},
	})
	if err != nil {
		t.Fatal(err)
	}
	s.Resolver.ResolveAll()

	if !testutil.SameColor(s.Layers()[0].Image(), testutil.Pixel(color.White)) {
		t.Error("flag replacement should win over the config entry")
	}
}

func TestToggleSource_SwitchesToPlaceholder(t *testing.T) {
	docPath, overrides := setup(t)
	var events []resolver.PassEvent
	s, err := Open(Options{
		DocPath:        docPath,
		Config:         config.Defaults(),
		ReplacementDir: overrides,
		Logger:         resolver.LoggerFunc(func(e resolver.PassEvent) { events = append(events, e) }),
	})
	if err != nil {
		t.Fatal(err)
	}
	events = nil

	if kind := s.ToggleSource(); kind != config.SourcePlaceholder {
		t.Fatalf("ToggleSource() = %q, want placeholder", kind)
	}
	if len(events) != 1 || events[0].Kind != resolver.PassResolve {
		t.Errorf("swap should run exactly one resolve pass, got %+v", events)
	}

	dog := s.Layers()[1]
	if dog.Image() == nil || dog.Image().Bounds().Dx() != 2 {
		t.Errorf("dog should get a 2x2 placeholder, got %v", dog.Image())
	}

	if kind := s.ToggleSource(); kind != config.SourceFilepath {
		t.Errorf("second ToggleSource() = %q, want filepath", kind)
	}
}

func TestUseSource_Unknown(t *testing.T) {
	docPath, overrides := setup(t)
	s, err := Open(Options{DocPath: docPath, Config: config.Defaults(), ReplacementDir: overrides})
	if err != nil {
		t.Fatal(err)
	}
	if err := s.UseSource("network"); err == nil {
		t.Error("unknown source kind should error")
	}
}

func TestOpen_MissingDocument(t *testing.T) {
	_, err := Open(Options{DocPath: filepath.Join(t.TempDir(), "nope.json"), Config: config.Defaults()})
	if err == nil {
		t.Fatal("missing document should error")
	}
}

func TestReplacementFiles(t *testing.T) {
	docPath, overrides := setup(t)
	s, err := Open(Options{
		DocPath:        docPath,
		Config:         config.Defaults(),
		ReplacementDir: overrides,
		Replace:        map[string]string{"dog.png": "b.png", "cat.png": "a.png"},
	})
	if err != nil {
		t.Fatal(err)
	}

	got := s.ReplacementFiles()
	want := []string{filepath.Join(overrides, "a.png"), filepath.Join(overrides, "b.png")}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("ReplacementFiles() = %v, want %v", got, want)
	}
}

func TestReplacementFiles_DefaultDir(t *testing.T) {
	docPath, _ := setup(t)
	data := t.TempDir()
	t.Setenv("XDG_DATA_HOME", data)

	cfg := config.Defaults()
	cfg.Replacements.Images["cat.png"] = "a.png"
	s, err := Open(Options{DocPath: docPath, Config: cfg})
	if err != nil {
		t.Fatal(err)
	}

	got := s.ReplacementFiles()
	want := filepath.Join(data, "imgbind", "replacements", "a.png")
	if len(got) != 1 || got[0] != want {
		t.Errorf("ReplacementFiles() = %v, want [%s]", got, want)
	}
	if s.Config().Replacements.Images["cat.png"] != "a.png" {
		t.Error("Config() should return the configuration the session was opened with")
	}
}
