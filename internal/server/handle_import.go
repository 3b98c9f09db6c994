package server

import (
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/quizline/hotseat/internal/hotseat"
)

// handleImportQuestions bulk-loads bank questions for one difficulty level.
// The body is plain text, one question per line:
//
//	question text|correct answer|wrong|wrong|wrong
//
// Lines that do not parse, or whose question text already exists in the
// bank, are counted as failed; the rest of the file still imports. The
// whole import is one transaction.
func handleImportQuestions(store Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		level, err := strconv.Atoi(r.URL.Query().Get("level"))
		if err != nil || level < 0 || level > hotseat.Levels-1 {
			writeError(w, http.StatusBadRequest, "level must be an integer between 0 and 14")
			return
		}

		body, err := io.ReadAll(r.Body)
		r.Body.Close()
		if err != nil {
			writeError(w, http.StatusBadRequest, "reading request body")
			return
		}
		lines := strings.Split(string(body), "\n")

		report, err := store.ImportQuestions(r.Context(), level, lines)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		writeJSON(w, http.StatusOK, report)
	}
}
