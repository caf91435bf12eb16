package scorecardhttp

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/odyssey-erp/scorecard/internal/platform/httpx"
	"github.com/odyssey-erp/scorecard/internal/scorecard"
	"github.com/odyssey-erp/scorecard/internal/scoring"
	"github.com/odyssey-erp/scorecard/internal/shared"
	"github.com/odyssey-erp/scorecard/internal/view"
)

// Flash texts shown after form submissions.
const (
	msgSaved        = "Изменения сохранены"
	msgAdded        = "Показатель добавлен"
	msgRemoved      = "Показатель удален"
	msgReset        = "Значения сброшены"
	msgLastMetric   = "Нельзя удалить последний показатель"
	msgInvalidInput = "Введите корректное число"
)

// StateStore loads and saves the scorecard of a session.
type StateStore interface {
	Load(sess *shared.Session) (*scorecard.Scorecard, error)
	Save(sess *shared.Session, card *scorecard.Scorecard) error
	Clear(sess *shared.Session)
}

// Recorder receives evaluation and list-operation events.
type Recorder interface {
	ObserveEvaluation(finalGrade int, finalPercentage float64)
	ObserveListOp(op string, err error)
}

// Options tunes the JSON API.
type Options struct {
	AllowedOrigins    []string
	EvaluateRateLimit int
}

// Handler serves the scorecard dashboard and its JSON API.
type Handler struct {
	logger    *slog.Logger
	store     StateStore
	templates *view.Engine
	csrf      *shared.CSRFManager
	recorder  Recorder
	validator *validator.Validate
	opts      Options
}

// NewHandler constructs the scorecard HTTP handler.
func NewHandler(logger *slog.Logger, store StateStore, templates *view.Engine, csrf *shared.CSRFManager, recorder Recorder, opts Options) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.EvaluateRateLimit <= 0 {
		opts.EvaluateRateLimit = 120
	}
	return &Handler{
		logger:    logger,
		store:     store,
		templates: templates,
		csrf:      csrf,
		recorder:  recorder,
		validator: validator.New(),
		opts:      opts,
	}
}

func (h *Handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	sess := shared.SessionFromContext(r.Context())
	card, err := h.load(sess)
	if err != nil {
		h.handleServerError(w, "load scorecard", err)
		return
	}
	vm, err := buildViewModel(card, card.Evaluate())
	if err != nil {
		h.handleServerError(w, "build view model", err)
		return
	}

	csrfToken, err := h.csrf.EnsureToken(r.Context(), sess)
	if err != nil {
		h.handleServerError(w, "csrf token", err)
		return
	}
	data := view.TemplateData{
		Title:       "Панель управления",
		CSRFToken:   csrfToken,
		Flash:       sess.PopFlash(),
		CurrentPath: r.URL.Path,
		Data:        vm,
	}
	if err := h.templates.Render(w, "pages/scorecard.html", data); err != nil {
		h.logger.Error("render scorecard", slog.Any("error", err))
	}
}

func (h *Handler) handleMain(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	form := mainForm{Plan: r.PostFormValue("plan"), Fact: r.PostFormValue("fact")}
	h.mutate(w, r, "main", form, func(card *scorecard.Scorecard) (string, error) {
		vals, err := numbers(form.Plan, form.Fact)
		if err != nil {
			return "", err
		}
		card.SetMain(vals[0], vals[1])
		return msgSaved, nil
	})
}

func (h *Handler) handleEmployees(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	form := employeesForm{EmployeeCount: r.PostFormValue("employee_count")}
	h.mutate(w, r, "employees", form, func(card *scorecard.Scorecard) (string, error) {
		n, err := scorecard.ParseEmployeeCount(form.EmployeeCount)
		if err != nil {
			return "", err
		}
		card.SetEmployeeCount(n)
		return msgSaved, nil
	})
}

func (h *Handler) handleAdd(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, "add", nil, func(card *scorecard.Scorecard) (string, error) {
		card.Add()
		return msgAdded, nil
	})
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	form := metricForm{
		ID:   chi.URLParam(r, "id"),
		Name: r.PostFormValue("name"),
		Plan: r.PostFormValue("plan"),
		Fact: r.PostFormValue("fact"),
	}
	h.mutate(w, r, "update", form, func(card *scorecard.Scorecard) (string, error) {
		vals, err := numbers(form.Plan, form.Fact)
		if err != nil {
			return "", err
		}
		if err := card.Update(form.ID, scorecard.FieldPlan, vals[0]); err != nil {
			return "", err
		}
		if err := card.Update(form.ID, scorecard.FieldFact, vals[1]); err != nil {
			return "", err
		}
		if _, present := r.PostForm["name"]; present {
			card.Rename(form.ID, form.Name)
		}
		return msgSaved, nil
	})
}

func (h *Handler) handleRemove(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	h.mutate(w, r, "remove", nil, func(card *scorecard.Scorecard) (string, error) {
		if err := card.Remove(id); err != nil {
			return "", err
		}
		return msgRemoved, nil
	})
}

func (h *Handler) handleReset(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, "reset", nil, func(card *scorecard.Scorecard) (string, error) {
		card.Reset()
		return msgReset, nil
	})
}

// mutate loads the session scorecard, validates form, applies fn and
// redirects back to the dashboard with a flash describing the outcome.
func (h *Handler) mutate(w http.ResponseWriter, r *http.Request, op string, form any, fn func(*scorecard.Scorecard) (string, error)) {
	sess := shared.SessionFromContext(r.Context())
	card, err := h.load(sess)
	if err != nil {
		h.handleServerError(w, "load scorecard", err)
		return
	}

	if form != nil {
		if err := h.validator.Struct(form); err != nil {
			h.logger.Warn("scorecard form rejected", slog.String("op", op), slog.Any("error", firstValidationError(err)))
			h.recordListOp(op, err)
			sess.AddFlash(shared.FlashMessage{Kind: "error", Message: msgInvalidInput})
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
	}

	msg, err := fn(card)
	if err == nil {
		err = card.Check()
	}
	h.recordListOp(op, err)
	if err != nil {
		sess.AddFlash(shared.FlashMessage{Kind: "error", Message: flashFor(err)})
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	if err := h.store.Save(sess, card); err != nil {
		h.handleServerError(w, "save scorecard", err)
		return
	}
	h.recordEvaluation(card.Evaluate())
	sess.AddFlash(shared.FlashMessage{Kind: "success", Message: msg})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) handleAPIState(w http.ResponseWriter, r *http.Request) {
	card, err := h.load(shared.SessionFromContext(r.Context()))
	if err != nil {
		h.logger.Error("load scorecard", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, scorecardResponse{State: card, Result: card.Evaluate()})
}

func (h *Handler) handleAPIEvaluate(w http.ResponseWriter, r *http.Request) {
	var req evaluateRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %v", httpx.ErrValidation, firstValidationError(err)))
		return
	}
	res := scoring.Evaluate(req.input())
	if !res.Finite() {
		httpx.RespondError(w, fmt.Errorf("%w: percentage out of range", httpx.ErrValidation))
		return
	}
	h.recordEvaluation(res)
	httpx.JSON(w, http.StatusOK, res)
}

func (h *Handler) handleAPIUpdate(w http.ResponseWriter, r *http.Request) {
	var req updateRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		httpx.RespondError(w, err)
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %v", httpx.ErrValidation, firstValidationError(err)))
		return
	}
	field, err := scorecard.ParseField(req.Field)
	if err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %v", httpx.ErrValidation, err))
		return
	}

	sess := shared.SessionFromContext(r.Context())
	card, err := h.load(sess)
	if err != nil {
		h.logger.Error("load scorecard", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	id := chi.URLParam(r, "id")
	if _, ok := card.Find(id); !ok {
		httpx.RespondError(w, fmt.Errorf("metric %s: %w", id, httpx.ErrNotFound))
		return
	}
	err = card.Update(id, field, *req.Value)
	if err == nil {
		err = card.Check()
	}
	h.recordListOp("update", err)
	if err != nil {
		httpx.RespondError(w, fmt.Errorf("%w: %v", httpx.ErrValidation, err))
		return
	}
	if err := h.store.Save(sess, card); err != nil {
		h.logger.Error("save scorecard", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	res := card.Evaluate()
	h.recordEvaluation(res)
	httpx.JSON(w, http.StatusOK, scorecardResponse{State: card, Result: res})
}

func (h *Handler) handleAPIRemove(w http.ResponseWriter, r *http.Request) {
	sess := shared.SessionFromContext(r.Context())
	card, err := h.load(sess)
	if err != nil {
		h.logger.Error("load scorecard", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	id := chi.URLParam(r, "id")
	if _, ok := card.Find(id); !ok {
		httpx.RespondError(w, fmt.Errorf("metric %s: %w", id, httpx.ErrNotFound))
		return
	}
	err = card.Remove(id)
	h.recordListOp("remove", err)
	if errors.Is(err, scorecard.ErrLastMetric) {
		httpx.RespondError(w, fmt.Errorf("%w: %v", httpx.ErrConflict, err))
		return
	}
	if err == nil {
		err = h.store.Save(sess, card)
	}
	if err != nil {
		h.logger.Error("save scorecard", slog.Any("error", err))
		httpx.RespondError(w, err)
		return
	}
	res := card.Evaluate()
	h.recordEvaluation(res)
	httpx.JSON(w, http.StatusOK, scorecardResponse{State: card, Result: res})
}

// load reads the session scorecard. Corrupt state is logged and replaced
// by defaults.
func (h *Handler) load(sess *shared.Session) (*scorecard.Scorecard, error) {
	card, err := h.store.Load(sess)
	if errors.Is(err, scorecard.ErrCorruptState) {
		h.logger.Warn("discarding corrupt scorecard state", slog.Any("error", err))
		return card, nil
	}
	return card, err
}

// recordEvaluation counts a result produced by a state change or an
// explicit API evaluation. Page views are not counted.
func (h *Handler) recordEvaluation(res scoring.Result) {
	if h.recorder != nil {
		h.recorder.ObserveEvaluation(res.FinalGrade, res.FinalPercentage)
	}
}

func (h *Handler) recordListOp(op string, err error) {
	if h.recorder != nil {
		h.recorder.ObserveListOp(op, err)
	}
}

func (h *Handler) handleServerError(w http.ResponseWriter, msg string, err error) {
	h.logger.Error(msg, slog.Any("error", err))
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

func flashFor(err error) string {
	switch {
	case errors.Is(err, scorecard.ErrLastMetric):
		return msgLastMetric
	case errors.Is(err, scorecard.ErrInvalidNumber):
		return msgInvalidInput
	default:
		return err.Error()
	}
}
