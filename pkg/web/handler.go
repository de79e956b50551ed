package web

import (
	"errors"
	"fmt"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/rs/xid"
	"go.uber.org/zap"

	"pixelfrag/pkg/convert"
	"pixelfrag/pkg/store"
)

const (
	// maxMemory is how much of a multipart upload is kept in memory before
	// spilling to temporary files.
	maxMemory = 32 << 20
	// formOverhead is allowed on top of the converter's size limit for the
	// multipart framing around the file.
	formOverhead = 1 << 20
)

func NewHandler(conv *convert.Converter, board *store.Board, logger *zap.Logger) *Handler {
	h := &Handler{
		conv:   conv,
		board:  board,
		logger: logger,
		mux:    http.NewServeMux(),
	}

	h.mux.HandleFunc("/", h.index)
	h.mux.HandleFunc("/convert", h.convert)
	h.mux.HandleFunc("/files/", h.file)

	return h
}

// Handler serves the upload page, runs conversions and hands out the
// artifacts kept on the board.
type Handler struct {
	conv   *convert.Converter
	board  *store.Board
	logger *zap.Logger
	mux    *http.ServeMux
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

type pageData struct {
	Current *convert.Result
	Error   string
}

func (h *Handler) render(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := page.Execute(w, pageData{Current: h.board.Current(), Error: msg}); err != nil {
		h.logger.With(zap.Error(err)).Info("render page failed")
	}
}

func (h *Handler) index(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	h.render(w, http.StatusOK, "")
}

func (h *Handler) convert(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if limit := h.conv.MaxSize(); limit > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, int64(limit)+formOverhead)
	}

	if err := r.ParseMultipartForm(maxMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.render(w, http.StatusRequestEntityTooLarge, fmt.Sprintf("%s: limit is %s", convert.ErrTooLarge, h.conv.MaxSize()))
			return
		}
		http.Error(w, "expected a multipart upload", http.StatusBadRequest)
		return
	}
	defer func() {
		_ = r.MultipartForm.RemoveAll()
	}()

	in := convert.Input{}
	if file, header, err := r.FormFile("file"); err == nil {
		defer func() {
			_ = file.Close()
		}()
		in = convert.Input{Name: header.Filename, Body: file}
	} else if !errors.Is(err, http.ErrMissingFile) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	_, err := h.conv.Run(r.Context(), in, h.board)
	switch {
	case err == nil, errors.Is(err, convert.ErrNoInput):
		http.Redirect(w, r, "/", http.StatusSeeOther)
	case errors.Is(err, convert.ErrTooLarge):
		h.render(w, http.StatusRequestEntityTooLarge, err.Error())
	case errors.Is(err, convert.ErrDecode):
		h.render(w, http.StatusUnprocessableEntity, err.Error())
	default:
		h.logger.With(zap.String("source", in.Name), zap.Error(err)).Info("conversion failed")
		h.render(w, http.StatusInternalServerError, err.Error())
	}
}

func (h *Handler) file(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	parts := strings.SplitN(strings.TrimPrefix(r.URL.Path, "/files/"), "/", 2)
	if len(parts) != 2 {
		http.NotFound(w, r)
		return
	}

	id, err := xid.FromString(parts[0])
	if err != nil {
		http.NotFound(w, r)
		return
	}

	a, ok := h.board.Lookup(id, parts[1])
	if !ok {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", a.MIME)
	w.Header().Set("Content-Length", strconv.Itoa(len(a.Data)))
	if r.URL.Query().Get("dl") != "" {
		w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": a.Name}))
	}
	w.WriteHeader(http.StatusOK)

	if r.Method == http.MethodGet {
		_, _ = w.Write(a.Data)
	}
}
