package qbank

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/linuxgeek/simulado/internal/model"
	"github.com/rs/zerolog"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func okEnvelope(data any) map[string]any {
	return map[string]any{"success": true, "data": data}
}

func notFoundEnvelope(code string) map[string]any {
	return map[string]any{
		"success": false,
		"error":   map[string]string{"code": code, "message": "not found"},
	}
}

func TestClientSimulados(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/simulados" {
			t.Errorf("path = %s", r.URL.Path)
		}
		writeJSON(w, http.StatusOK, okEnvelope([]map[string]any{
			{"id": "5f6c2d0e-9d7a-4b1f-8f05-1d2c3b4a5e6f", "slug": "lpic1", "title": "LPIC-1", "is_active": true},
		}))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, zerolog.Nop())
	sims, err := client.Simulados(context.Background())
	if err != nil {
		t.Fatalf("Simulados: %v", err)
	}
	if len(sims) != 1 || sims[0].Slug != "lpic1" {
		t.Fatalf("sims = %+v", sims)
	}
}

func TestClientQuestionsExamParam(t *testing.T) {
	tests := []struct {
		name     string
		examCode string
		wantExam string
	}{
		{"specific exam", "101", "101"},
		{"mixed omits param", model.ExamCodeMixed, ""},
		{"empty omits param", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotExam string
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotExam = r.URL.Query().Get("exam")
				writeJSON(w, http.StatusOK, okEnvelope([]map[string]any{
					{"id": "q1", "type": "multiple", "question": "?", "options": []string{"a", "b"}, "answer": 1},
				}))
			}))
			defer srv.Close()

			client := NewClient(srv.URL, zerolog.Nop())
			questions, err := client.Questions(context.Background(), "lpic1", tt.examCode)
			if err != nil {
				t.Fatalf("Questions: %v", err)
			}
			if gotExam != tt.wantExam {
				t.Fatalf("exam param = %q, want %q", gotExam, tt.wantExam)
			}
			if len(questions) != 1 {
				t.Fatalf("len = %d", len(questions))
			}
			if questions[0].Correct == nil || *questions[0].Correct != 1 {
				t.Fatalf("Correct = %v, want 1", questions[0].Correct)
			}
		})
	}
}

func TestClientNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, notFoundEnvelope("SIMULADO_NOT_FOUND"))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, zerolog.Nop())
	if _, err := client.Questions(context.Background(), "nope", ""); !errors.Is(err, ErrSimuladoNotFound) {
		t.Fatalf("err = %v, want ErrSimuladoNotFound", err)
	}
	if _, err := client.ExamOptions(context.Background(), "nope"); !errors.Is(err, ErrSimuladoNotFound) {
		t.Fatalf("err = %v, want ErrSimuladoNotFound", err)
	}
}

func TestClientErrorEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"success": false,
			"error":   map[string]string{"code": "INTERNAL_ERROR", "message": "boom"},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, zerolog.Nop())
	_, err := client.Simulados(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if errors.Is(err, ErrSimuladoNotFound) {
		t.Fatal("server error mapped to not-found")
	}
}

func TestClientEmptyPoolIsNotError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, okEnvelope([]any{}))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, zerolog.Nop())
	questions, err := client.Questions(context.Background(), "lpic1", "101")
	if err != nil {
		t.Fatalf("Questions: %v", err)
	}
	if len(questions) != 0 {
		t.Fatalf("len = %d, want 0", len(questions))
	}
}
