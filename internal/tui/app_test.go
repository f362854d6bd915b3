package tui

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/staggeredsix/catbreak/internal/cache"
	"github.com/staggeredsix/catbreak/internal/news"
	"github.com/staggeredsix/catbreak/internal/settings"
)

type fakeFetcher struct {
	calls int
	raw   []byte
	err   error
}

func (f *fakeFetcher) Fetch(ctx context.Context, address string) (*news.Payload, []byte, error) {
	f.calls++
	if f.err != nil {
		return nil, nil, f.err
	}
	payload, err := news.Decode(f.raw)
	if err != nil {
		return nil, nil, err
	}
	return payload, f.raw, nil
}

func testApp(t *testing.T, cfg settings.Settings, fetcher Fetcher) (*App, *cache.Cache) {
	t.Helper()
	store, err := cache.Open(filepath.Join(t.TempDir(), "catbreak.db"))
	if err != nil {
		t.Fatalf("opening cache: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	app := NewApp(RunOpts{
		Settings:     cfg,
		SettingsPath: filepath.Join(t.TempDir(), "settings.yaml"),
		Store:        store,
		Fetcher:      fetcher,
	})
	app.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return app, store
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func TestCachedPayloadRendersWithoutFetch(t *testing.T) {
	fetcher := &fakeFetcher{}
	app, store := testApp(t, settings.Settings{BackendAddress: "192.168.0.10"}, fetcher)
	if err := store.Write([]byte(`[{"url":"https://a","title":"Good story","summary":"sum","rating":2}]`)); err != nil {
		t.Fatalf("seeding cache: %v", err)
	}

	msg := app.loadCmd()()
	loaded, ok := msg.(newsLoadedMsg)
	if !ok {
		t.Fatalf("loadCmd returned %T, want newsLoadedMsg", msg)
	}
	if !loaded.fromCache {
		t.Error("payload not served from cache")
	}
	if fetcher.calls != 0 {
		t.Errorf("fetcher called %d times with warm cache, want 0", fetcher.calls)
	}

	app.Update(msg)
	if !strings.Contains(app.View(), "Good story") {
		t.Error("cached article title not rendered")
	}
}

func TestEmptyCacheFetchesOnceAndWritesThrough(t *testing.T) {
	raw := []byte(`{"articles":[{"url":"https://a","title":"t","summary":"s","rating":3}]}`)
	fetcher := &fakeFetcher{raw: raw}
	app, store := testApp(t, settings.Settings{BackendAddress: "192.168.0.10"}, fetcher)

	msg := app.loadCmd()()
	if fetcher.calls != 1 {
		t.Fatalf("fetcher called %d times on cold cache, want 1", fetcher.calls)
	}
	app.Update(msg)

	got, ok, err := store.Read()
	if err != nil {
		t.Fatalf("reading cache: %v", err)
	}
	if !ok || !bytes.Equal(got, raw) {
		t.Errorf("cache = %s, want fetched payload %s", got, raw)
	}
	if n := strings.Count(app.View(), news.DefaultGlyph); n != 3 {
		t.Errorf("rendered %d rating glyphs, want exactly 3", n)
	}
}

func TestUnrecognizedPayloadShowsNoArticles(t *testing.T) {
	app, store := testApp(t, settings.Settings{BackendAddress: "192.168.0.10"}, &fakeFetcher{})
	if err := store.Write([]byte(`{"count":0}`)); err != nil {
		t.Fatalf("seeding cache: %v", err)
	}

	app.Update(app.loadCmd()())
	if !strings.Contains(app.View(), "No articles available.") {
		t.Error("empty normalization did not render the placeholder")
	}
}

func TestRefreshFetchesExactlyOnce(t *testing.T) {
	raw := []byte(`{"articles":[{"url":"https://a","title":"Fresh","summary":"s","rating":3}]}`)
	fetcher := &fakeFetcher{raw: raw}
	app, store := testApp(t, settings.Settings{BackendAddress: "192.168.0.10"}, fetcher)
	if err := store.Write([]byte(`[{"url":"https://old","title":"Stale","summary":"o","rating":1}]`)); err != nil {
		t.Fatalf("seeding cache: %v", err)
	}
	app.Update(app.loadCmd()())

	msg := app.refreshCmd()()
	if fetcher.calls != 1 {
		t.Fatalf("refresh performed %d fetches, want exactly 1", fetcher.calls)
	}
	app.Update(msg)

	view := app.View()
	if strings.Contains(view, "Stale") {
		t.Error("stale article still rendered after refresh")
	}
	if !strings.Contains(view, "Fresh") {
		t.Error("fresh article not rendered after refresh")
	}

	got, ok, err := store.Read()
	if err != nil {
		t.Fatalf("reading cache: %v", err)
	}
	if !ok || !bytes.Equal(got, raw) {
		t.Errorf("cache = %s, want refreshed payload %s", got, raw)
	}
}

func TestFailedFetchShowsErrorAndWritesNothing(t *testing.T) {
	fetcher := &fakeFetcher{err: errors.New("connection refused")}
	app, store := testApp(t, settings.Settings{BackendAddress: "192.168.0.10"}, fetcher)

	msg := app.loadCmd()()
	if _, ok := msg.(fetchFailedMsg); !ok {
		t.Fatalf("loadCmd returned %T, want fetchFailedMsg", msg)
	}
	app.Update(msg)

	if !strings.Contains(app.View(), "❌ Could not load news.") {
		t.Error("fetch failure did not render the error line")
	}
	if _, ok, _ := store.Read(); ok {
		t.Error("failed fetch wrote to the cache")
	}
}

func TestNoAddressEntersSettingsWithoutFetch(t *testing.T) {
	fetcher := &fakeFetcher{}
	app, _ := testApp(t, settings.Settings{}, fetcher)

	msg := app.loadCmd()()
	if _, ok := msg.(setupNeededMsg); !ok {
		t.Fatalf("loadCmd returned %T, want setupNeededMsg", msg)
	}
	if fetcher.calls != 0 {
		t.Errorf("fetcher called %d times without a backend address, want 0", fetcher.calls)
	}

	app.Update(msg)
	if app.mode != modeSettings {
		t.Error("app did not enter settings mode")
	}
}

func TestSettingsKeysTypeIntoInput(t *testing.T) {
	app, _ := testApp(t, settings.Settings{}, &fakeFetcher{})
	app.Update(setupNeededMsg{})

	app.Update(key("q"))
	if app.mode != modeSettings {
		t.Fatal("q quit the popup while typing in settings")
	}
	if app.addressInput.Value() != "q" {
		t.Errorf("address input = %q, want %q", app.addressInput.Value(), "q")
	}
}

func TestSettingsSavePersistsAndReloads(t *testing.T) {
	app, _ := testApp(t, settings.Settings{}, &fakeFetcher{raw: []byte(`[]`)})
	app.Update(setupNeededMsg{})
	app.addressInput.SetValue("  10.0.0.5  ")
	app.siteInput.SetValue("https://example.com")

	_, cmd := app.Update(key("enter"))
	if cmd == nil {
		t.Fatal("enter in settings mode produced no command")
	}
	msg := cmd()
	saved, ok := msg.(settingsSavedMsg)
	if !ok {
		t.Fatalf("save returned %T, want settingsSavedMsg", msg)
	}
	if saved.saved.BackendAddress != "10.0.0.5" {
		t.Errorf("saved address = %q, want trimmed %q", saved.saved.BackendAddress, "10.0.0.5")
	}

	onDisk, err := settings.Load(app.settingsPath)
	if err != nil {
		t.Fatalf("reloading settings: %v", err)
	}
	if onDisk.BackendAddress != "10.0.0.5" || onDisk.SiteURL != "https://example.com" {
		t.Errorf("settings on disk = %+v", onDisk)
	}

	_, cmd = app.Update(msg)
	if app.mode != modeFeed {
		t.Error("app did not return to the feed after saving")
	}
	if cmd == nil {
		t.Error("saving with an empty feed did not trigger a load")
	}
}

func TestOpenKeyOpensSelectedArticle(t *testing.T) {
	var opened []string
	app, store := testApp(t, settings.Settings{BackendAddress: "192.168.0.10"}, &fakeFetcher{})
	app.openURL = func(u string) error {
		opened = append(opened, u)
		return nil
	}
	if err := store.Write([]byte(`[{"url":"https://a","title":"A","summary":"","rating":1},{"url":"https://b","title":"B","summary":"","rating":1}]`)); err != nil {
		t.Fatalf("seeding cache: %v", err)
	}
	app.Update(app.loadCmd()())

	app.Update(key("j"))
	_, cmd := app.Update(key("o"))
	if cmd == nil {
		t.Fatal("o on a selected article produced no command")
	}
	cmd()

	if len(opened) != 1 || opened[0] != "https://b" {
		t.Errorf("opened = %v, want [https://b]", opened)
	}
}

func TestSiteKeyOpensConfiguredSite(t *testing.T) {
	var opened []string
	app, _ := testApp(t, settings.Settings{BackendAddress: "192.168.0.10", SiteURL: "https://site.example"}, &fakeFetcher{})
	app.openURL = func(u string) error {
		opened = append(opened, u)
		return nil
	}
	app.loading = false

	_, cmd := app.Update(key("s"))
	if cmd == nil {
		t.Fatal("s with a configured site produced no command")
	}
	cmd()

	if len(opened) != 1 || opened[0] != "https://site.example" {
		t.Errorf("opened = %v, want [https://site.example]", opened)
	}
}

func TestQuitKey(t *testing.T) {
	app, _ := testApp(t, settings.Settings{BackendAddress: "192.168.0.10"}, &fakeFetcher{})
	app.loading = false

	_, cmd := app.Update(key("q"))
	if cmd == nil {
		t.Fatal("q produced no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q did not quit")
	}
}
