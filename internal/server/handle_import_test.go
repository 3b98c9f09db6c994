package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func importRequest(token, level, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost,
		"/api/admin/questions/import?level="+level, strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func TestImportQuestions(t *testing.T) {
	r, _ := setupServer(t)
	admin := loginAdmin(t, r)

	body := strings.Join([]string{
		"Which planet is known as the red planet?|Mars|Venus|Mercury|Saturn",
		"How many days are there in a week?|Seven|Six|Eight|Five", // already seeded
		"Malformed line with too few fields|Yes",
		"",
	}, "\n")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, importRequest(admin.Token, "0", body))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	report := decodeJSON[ImportReport](t, w)
	if report.Processed != 3 {
		t.Errorf("processed = %d, want 3", report.Processed)
	}
	if report.Created != 1 {
		t.Errorf("created = %d, want 1", report.Created)
	}
	if report.Failed != 2 {
		t.Errorf("failed = %d, want 2", report.Failed)
	}
}

func TestImportQuestionsRequiresAdmin(t *testing.T) {
	r, _ := setupServer(t)
	player := registerPlayer(t, r, "Maria", "maria@example.com")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, importRequest(player.Token, "0", "Q?|A|B|C|D"))
	if w.Code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", w.Code)
	}
}

func TestImportQuestionsBadLevel(t *testing.T) {
	r, _ := setupServer(t)
	admin := loginAdmin(t, r)

	for _, level := range []string{"", "-1", "15", "abc"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, importRequest(admin.Token, level, "Q?|A|B|C|D"))
		if w.Code != http.StatusBadRequest {
			t.Errorf("level %q: expected 400, got %d", level, w.Code)
		}
	}
}
