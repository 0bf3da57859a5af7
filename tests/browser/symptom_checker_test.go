package browser_test

import (
	"testing"

	"github.com/playwright-community/playwright-go"
)

// addSymptom clicks the named symptom in the available list and waits for the badge.
func addSymptom(t *testing.T, page playwright.Page, name string) {
	t.Helper()
	if err := page.Locator("button[data-symptom='" + name + "']").Click(); err != nil {
		t.Fatalf("failed to add %s: %v", name, err)
	}
	waitVisible(t, page, ".selected .badge:has-text('"+name+"')", 5000)
}

// TestSymptomChecker_SearchAddAnalyze walks the main flow: search, select, analyze.
func TestSymptomChecker_SearchAddAnalyze(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping browser test in short mode")
	}

	app := newTestApp(t)
	page := app.newPage(t)
	app.visit(t, page, "/symptoms")

	analyze := page.Locator("form.analyze button[type=submit]")
	if disabled, _ := analyze.IsDisabled(); !disabled {
		t.Error("Analyze button should be disabled with no selection")
	}
	waitVisible(t, page, "h3:has-text('Common Symptoms:')", 3000)

	// Typing submits the search.
	if err := page.Locator("input[name=q]").Fill("fever"); err != nil {
		t.Fatalf("failed to fill search: %v", err)
	}
	if err := page.WaitForURL("**/symptoms?q=fever", playwright.PageWaitForURLOptions{
		Timeout: playwright.Float(5000),
	}); err != nil {
		t.Fatalf("search did not navigate: %v", err)
	}
	waitVisible(t, page, "h3:has-text('Search Results:')", 3000)
	if n, _ := page.Locator("button.symptom-option").Count(); n != 1 {
		t.Errorf("search results = %d, want 1", n)
	}

	addSymptom(t, page, "Fever")
	if n, _ := page.Locator("button[data-symptom='Fever']").Count(); n != 0 {
		t.Error("selected symptom still offered in the list")
	}
	if disabled, _ := analyze.IsDisabled(); disabled {
		t.Error("Analyze button should be enabled after selecting a symptom")
	}

	if err := analyze.Click(); err != nil {
		t.Fatalf("failed to analyze: %v", err)
	}
	waitVisible(t, page, "h2:has-text('Analysis Results')", 5000)
	waitVisible(t, page, ".condition:has-text('Common Cold')", 3000)
	if n, _ := page.Locator(".emergency").Count(); n != 0 {
		t.Error("emergency banner shown for a moderate symptom")
	}

	// A severe symptom raises the banner on the next analysis.
	app.visit(t, page, "/symptoms")
	addSymptom(t, page, "Chest Pain")
	if err := analyze.Click(); err != nil {
		t.Fatalf("failed to analyze: %v", err)
	}
	waitVisible(t, page, ".emergency:has-text('Seek Immediate Medical Attention')", 5000)
}

// TestSymptomChecker_RemoveSymptom verifies the remove control on a selected badge.
func TestSymptomChecker_RemoveSymptom(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping browser test in short mode")
	}

	app := newTestApp(t)
	page := app.newPage(t)
	app.visit(t, page, "/symptoms")

	addSymptom(t, page, "Headache")
	addSymptom(t, page, "Cough")

	if err := page.Locator("button[aria-label='Remove Headache']").Click(); err != nil {
		t.Fatalf("failed to remove: %v", err)
	}
	waitVisible(t, page, "button[data-symptom='Headache']", 5000)
	if n, _ := page.Locator(".selected .badge").Count(); n != 1 {
		t.Errorf("selected badges = %d, want 1", n)
	}
}

// TestSymptomChecker_VisitorsAreIsolated verifies that selections do not leak between visitors.
func TestSymptomChecker_VisitorsAreIsolated(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping browser test in short mode")
	}

	app := newTestApp(t)
	alice := app.newPage(t)
	bob := app.newPage(t)

	app.visit(t, alice, "/symptoms")
	addSymptom(t, alice, "Nausea")

	app.visit(t, bob, "/symptoms")
	if n, _ := bob.Locator(".selected .badge").Count(); n != 0 {
		t.Errorf("second visitor sees %d selected symptoms, want 0", n)
	}
	if app.Sessions.Len() != 1 {
		t.Errorf("sessions after one visitor selected = %d, want 1", app.Sessions.Len())
	}

	addSymptom(t, bob, "Fever")
	if n, _ := bob.Locator(".selected .badge").Count(); n != 1 {
		t.Errorf("second visitor selected badges = %d, want 1", n)
	}
	if app.Sessions.Len() != 2 {
		t.Errorf("sessions = %d, want 2", app.Sessions.Len())
	}
}
