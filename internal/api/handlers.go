// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/pdiddy/minutes-engine/internal/extract"
	"github.com/pdiddy/minutes-engine/internal/markdown"
	"github.com/pdiddy/minutes-engine/internal/minutes"
	"github.com/pdiddy/minutes-engine/internal/session"
	"github.com/pdiddy/minutes-engine/pkg/types"
)

// sourceText labels transcripts submitted as JSON.
const sourceText = "text"

// errNoText means an upload produced no transcript text.
var errNoText = errors.New("no text")

type generateRequest struct {
	Transcript string `json:"transcript"`
}

type extractResponse struct {
	Name       string `json:"name"`
	Kind       string `json:"kind"`
	Characters int    `json:"characters"`
	Text       string `json:"text"`
}

type minutesResponse struct {
	SessionID string              `json:"session_id"`
	Source    string              `json:"source"`
	Record    types.MinutesRecord `json:"record"`
	Markdown  string              `json:"markdown"`
}

type failureResponse struct {
	Error  string              `json:"error"`
	Record types.MinutesRecord `json:"record"`
}

func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	name, kind, text, err := s.readUpload(w, r)
	if err != nil {
		s.uploadError(w, name, err)
		return
	}
	writeJSON(w, http.StatusOK, extractResponse{Name: name, Kind: kind.String(), Characters: len([]rune(text)), Text: text})
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusCreated, s.sessions.Create())
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if !s.sessions.Delete(chi.URLParam(r, "sessionID")) {
		writeError(w, http.StatusNotFound, session.ErrNotFound.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleGenerate accepts either a JSON body {"transcript": "..."} or a
// multipart upload in field "file".
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookup(w, r)
	if !ok {
		return
	}

	source, transcript, err := s.readTranscript(w, r)
	if err != nil {
		s.uploadError(w, source, err)
		return
	}

	var (
		res    minutes.Result
		reason string
	)
	s.withGenerator(func(g *minutes.Generator) {
		res = g.Generate(r.Context(), transcript)
		reason = g.LastError()
	})

	if !res.OK {
		s.sessions.Fail(sess.ID, reason)
		s.logger.Warn("generation failed", "session", sess.ID, "error", reason)
		writeJSON(w, http.StatusBadGateway, failureResponse{
			Error:  "Failed to generate minutes. Error: " + reason,
			Record: res.Record,
		})
		return
	}

	updated, err := s.sessions.SetRecord(sess.ID, source, res.Record)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, minutesResponse{
		SessionID: updated.ID,
		Source:    updated.Source,
		Record:    res.Record,
		Markdown:  markdown.Format(res.Record),
	})
}

func (s *Server) handleGetMinutes(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookupRecord(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, minutesResponse{
		SessionID: sess.ID,
		Source:    sess.Source,
		Record:    *sess.Record,
		Markdown:  markdown.Format(*sess.Record),
	})
}

func (s *Server) handleDownloadMarkdown(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookupRecord(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": markdown.DownloadName}))
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, markdown.Format(*sess.Record))
}

func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (session.Session, bool) {
	sess, err := s.sessions.Get(chi.URLParam(r, "sessionID"))
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return session.Session{}, false
	}
	return sess, true
}

func (s *Server) lookupRecord(w http.ResponseWriter, r *http.Request) (session.Session, bool) {
	sess, ok := s.lookup(w, r)
	if !ok {
		return sess, false
	}
	if sess.Record == nil {
		writeError(w, http.StatusNotFound, "no minutes generated for this session")
		return sess, false
	}
	return sess, true
}

func (s *Server) readTranscript(w http.ResponseWriter, r *http.Request) (string, string, error) {
	mt, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mt == "multipart/form-data" {
		name, _, text, err := s.readUpload(w, r)
		return name, text, err
	}

	var req generateRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.maxUpload)).Decode(&req); err != nil {
		return sourceText, "", fmt.Errorf("decoding request: %w", err)
	}
	if strings.TrimSpace(req.Transcript) == "" {
		return sourceText, "", errNoText
	}
	return sourceText, req.Transcript, nil
}

// readUpload reads multipart field "file" and extracts its text. The
// declared part type wins; application/octet-stream falls back to the file
// extension.
func (s *Server) readUpload(w http.ResponseWriter, r *http.Request) (string, extract.Kind, string, error) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)
	file, hdr, err := r.FormFile("file")
	if err != nil {
		return "", extract.KindUnknown, "", fmt.Errorf("reading upload: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return hdr.Filename, extract.KindUnknown, "", fmt.Errorf("reading upload: %w", err)
	}

	ct := hdr.Header.Get("Content-Type")
	kind := extract.Classify(ct)
	if kind == extract.KindUnknown {
		ct = extract.ContentTypeForPath(hdr.Filename)
		kind = extract.Classify(ct)
	}

	text := s.extractor.Extract(data, ct)
	if strings.TrimSpace(text) == "" {
		return hdr.Filename, kind, "", errNoText
	}
	s.logger.Info("transcript loaded", "name", hdr.Filename, "kind", kind.String(), "characters", len([]rune(text)))
	return hdr.Filename, kind, text, nil
}

func (s *Server) uploadError(w http.ResponseWriter, name string, err error) {
	if errors.Is(err, errNoText) {
		if name == "" || name == sourceText {
			writeError(w, http.StatusUnprocessableEntity, "transcript is empty")
			return
		}
		writeError(w, http.StatusUnprocessableEntity, fmt.Sprintf("could not extract text from %s", name))
		return
	}
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		writeError(w, http.StatusRequestEntityTooLarge, err.Error())
		return
	}
	writeError(w, http.StatusBadRequest, err.Error())
}
