package get

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"regexp"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"production-schedule/internal/storage"
	"production-schedule/internal/storage/mysql"
)

type WorkPlans interface {
	WorkPlansByDate(ctx context.Context, date string) ([]*storage.WorkPlan, error)
	WorkPlanByID(ctx context.Context, id int) (*storage.WorkPlan, error)
}

type Meta struct {
	Date     string `json:"date"`
	Total    int    `json:"total"`
	Timezone string `json:"timezone"`
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ListResponse keeps "data" present even for an empty day; clients rely on
// an array, not a missing key.
type ListResponse struct {
	Success bool                `json:"success"`
	Data    []*storage.WorkPlan `json:"data"`
	Message string              `json:"message,omitempty"`
	Errors  []FieldError        `json:"errors,omitempty"`
	Meta    *Meta               `json:"meta,omitempty"`
}

type ItemResponse struct {
	Success bool              `json:"success"`
	Data    *storage.WorkPlan `json:"data,omitempty"`
	Message string            `json:"message,omitempty"`
}

var dateFormat = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// GetWorkPlansByDate serves GET /workplans?date=YYYY-MM-DD. A date with no
// plans is a success with an empty list and an explanatory message, never
// an error.
func GetWorkPlansByDate(log *slog.Logger, workPlans WorkPlans, env, timezone string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.workplans.GetWorkPlansByDate"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		date := r.URL.Query().Get("date")
		if fieldErrors := validateDate(date); len(fieldErrors) > 0 {
			log.Warn("invalid date parameter", slog.String("date", date))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, ListResponse{
				Success: false,
				Message: "รูปแบบวันที่ไม่ถูกต้อง (ต้องเป็น YYYY-MM-DD)",
				Errors:  fieldErrors,
			})
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		plans, err := workPlans.WorkPlansByDate(ctx, date)
		if err != nil {
			log.Error("failed to fetch work plans", slog.String("error", err.Error()))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, ListResponse{
				Success: false,
				Message: serverErrorMessage(env, err),
			})
			return
		}

		response := ListResponse{
			Success: true,
			Data:    plans,
			Meta: &Meta{
				Date:     date,
				Total:    len(plans),
				Timezone: timezone,
			},
		}
		if len(plans) == 0 {
			response.Message = "ไม่พบข้อมูลในวันที่ระบุ"
		}

		render.JSON(w, r, response)
	}
}

// GetWorkPlanByID serves GET /workplans/{id}.
func GetWorkPlanByID(log *slog.Logger, workPlans WorkPlans, env string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.workplans.GetWorkPlanByID"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		id, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			log.Warn("invalid work plan id", slog.String("id", chi.URLParam(r, "id")))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, ItemResponse{Success: false, Message: "รหัสงานไม่ถูกต้อง"})
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		plan, err := workPlans.WorkPlanByID(ctx, id)
		if err != nil {
			if errors.Is(err, mysql.ErrWorkPlanNotFound) {
				log.Warn("work plan not found", slog.Int("id", id))
				w.WriteHeader(http.StatusNotFound)
				render.JSON(w, r, ItemResponse{Success: false, Message: "ไม่พบข้อมูลงานที่ระบุ"})
				return
			}

			log.Error("failed to fetch work plan", slog.Int("id", id), slog.String("error", err.Error()))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, ItemResponse{
				Success: false,
				Message: serverErrorMessage(env, err),
			})
			return
		}

		render.JSON(w, r, ItemResponse{Success: true, Data: plan})
	}
}

func validateDate(date string) []FieldError {
	if date == "" {
		return []FieldError{{Field: "date", Message: "วันที่จำเป็นต้องระบุ"}}
	}
	if !dateFormat.MatchString(date) {
		return []FieldError{{Field: "date", Message: "รูปแบบวันที่ไม่ถูกต้อง (ต้องเป็น YYYY-MM-DD)"}}
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return []FieldError{{Field: "date", Message: "วันที่ไม่ถูกต้อง"}}
	}
	return nil
}

// serverErrorMessage hides query details behind a generic message outside
// of local/dev runs.
func serverErrorMessage(env string, err error) string {
	if env == "prod" {
		return "เกิดข้อผิดพลาดของระบบ"
	}
	return err.Error()
}
