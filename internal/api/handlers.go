package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/harrylevesque/boxtrack/internal/crypto"
	"github.com/harrylevesque/boxtrack/internal/files"
	"github.com/harrylevesque/boxtrack/internal/labels"
	"github.com/harrylevesque/boxtrack/internal/models"
	"github.com/harrylevesque/boxtrack/internal/qr"
	"github.com/harrylevesque/boxtrack/internal/render"
	"github.com/harrylevesque/boxtrack/internal/utils"
)

const maxRequestBytes = 1 << 20

// Server holds what the handlers share. It is safe for concurrent use.
type Server struct {
	cfg      utils.Config
	log      *utils.Logger
	qr       qr.Options
	renderer *render.Renderer
}

// NewServer checks cfg and builds a Server.
func NewServer(cfg utils.Config, logger *utils.Logger) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	level, err := qr.ParseLevel(cfg.ErrorCorrection)
	if err != nil {
		return nil, err
	}
	enc, err := qr.EncoderByName(cfg.QREncoder)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = utils.Discard()
	}
	return &Server{
		cfg:      cfg,
		log:      logger,
		qr:       qr.Options{Level: level, Encoder: enc},
		renderer: &render.Renderer{
			Title:        "Box labels",
			Creator:      "BoxTrack",
			CreationDate: time.Now().UTC().Truncate(time.Second),
		},
	}, nil
}

// GetTimeHandler returns the current server time in RFC3339 format
func GetTimeHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"time": time.Now().Format(time.RFC3339)})
}

// GenerateLabelsHandler renders the posted boxes as a label PDF.
func (s *Server) GenerateLabelsHandler(w http.ResponseWriter, r *http.Request) {
	var req files.BoxBatch
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes))
	if err := dec.Decode(&req); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large", "")
			return
		}
		writeError(w, http.StatusBadRequest, "invalid request body", utils.KindInvalidInput.String())
		return
	}
	if s.cfg.MaxBatch > 0 && len(req.Boxes) > s.cfg.MaxBatch {
		writeError(w, http.StatusRequestEntityTooLarge,
			fmt.Sprintf("%d boxes exceeds the limit of %d per request", len(req.Boxes), s.cfg.MaxBatch),
			utils.KindInvalidInput.String())
		return
	}
	var cal models.Calibration
	if req.Calibration != nil {
		cal = *req.Calibration
	}

	if err := render.ValidateRequest(req.Boxes, cal); err != nil {
		s.writeGenerateError(w, err)
		return
	}

	tag, err := s.labelsETag(req.Boxes, cal)
	if err != nil {
		s.writeGenerateError(w, err)
		return
	}
	w.Header().Set("ETag", tag)
	if crypto.MatchesETag(r.Header.Get("If-None-Match"), tag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	pdf, err := render.GenerateLabelPDF(r.Context(), req.Boxes, render.Options{
		Calibration: cal,
		BaseURL:     s.cfg.BaseURL,
		QR:          s.qr,
		Renderer:    s.renderer,
		Logger:      s.log,
	})
	if err != nil {
		s.writeGenerateError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="box-labels-%d.pdf"`, len(req.Boxes)))
	w.Header().Set("Content-Length", strconv.Itoa(len(pdf)))
	w.WriteHeader(http.StatusOK)
	w.Write(pdf)
}

// labelsKey is everything that shapes a label document. Its JSON encoding
// is the source of the document's ETag.
type labelsKey struct {
	Boxes        []models.LabelBox  `json:"boxes"`
	Calibration  models.Calibration `json:"calibration"`
	BaseURL      string             `json:"base_url"`
	Level        string             `json:"level"`
	Encoder      string             `json:"encoder"`
	Title        string             `json:"title"`
	Creator      string             `json:"creator"`
	CreationDate time.Time          `json:"creation_date"`
}

func (s *Server) labelsETag(boxes []models.LabelBox, cal models.Calibration) (string, error) {
	return crypto.RequestETag(labelsKey{
		Boxes:        boxes,
		Calibration:  cal,
		BaseURL:      s.cfg.BaseURL,
		Level:        s.qr.Level.String(),
		Encoder:      s.cfg.QREncoder,
		Title:        s.renderer.Title,
		Creator:      s.renderer.Creator,
		CreationDate: s.renderer.CreationDate,
	})
}

func (s *Server) writeGenerateError(w http.ResponseWriter, err error) {
	status := statusForError(err)
	if status == http.StatusInternalServerError {
		s.log.Errorf("label generation failed: %v", err)
		writeError(w, status, "label generation failed", utils.KindOf(err).String())
		return
	}
	writeError(w, status, err.Error(), utils.KindOf(err).String())
}

// QRSvgHandler returns the QR code of one box as SVG. The optional size
// query parameter sets the edge length in user units.
func (s *Server) QRSvgHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing box id", utils.KindInvalidInput.String())
		return
	}
	opts := s.qr
	if v := r.URL.Query().Get("size"); v != "" {
		size, err := strconv.Atoi(v)
		if err != nil || size < 21 || size > 4096 {
			writeError(w, http.StatusBadRequest, "size must be an integer between 21 and 4096", utils.KindInvalidInput.String())
			return
		}
		opts.Size = float64(size)
	}
	doc, err := qr.GenerateQRSvg(labels.GenerateBoxURL(id, s.cfg.BaseURL), opts)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error(), utils.KindEncoding.String())
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Write([]byte(doc))
}

// LabelIDHandler returns the printed form and QR target of a box id.
func (s *Server) LabelIDHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"id":         id,
		"display_id": labels.FormatBoxID(id),
		"url":        labels.GenerateBoxURL(id, s.cfg.BaseURL),
	})
}

func statusForError(err error) int {
	switch utils.KindOf(err) {
	case utils.KindInvalidInput, utils.KindCalibration:
		return http.StatusBadRequest
	case utils.KindEncoding:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, status int, msg, kind string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	body := map[string]string{"error": msg}
	if kind != "" {
		body["kind"] = kind
	}
	json.NewEncoder(w).Encode(body)
}
