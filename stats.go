package main

import (
	"context"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// weekdayAbbrev matches the three-letter names used by habit day maps and the
// weekly chart.
func weekdayAbbrev(t time.Time) string {
	return t.Format("Mon")
}

// dayWindowUTC returns the half-open UTC window covering a YYYY-MM-DD calendar
// day. Day boundaries are fixed to UTC regardless of the user's locale; a
// stated limitation of the date views.
func dayWindowUTC(date string) (time.Time, time.Time, *apiError) {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return time.Time{}, time.Time{}, validationError("Invalid date format, expected YYYY-MM-DD.")
	}
	from := day.UTC()
	return from, from.Add(24 * time.Hour), nil
}

// localDayWindow returns the half-open window covering t's calendar day in
// t's location. The weekly chart buckets by the server's local day.
func localDayWindow(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return start, start.Add(24 * time.Hour)
}

type dailyStat struct {
	Day       string `json:"day"`
	Completed int64  `json:"completed"`
	Pending   int64  `json:"pending"`
}

// dailyStatsForPastWeek builds the 7-point completed/pending histogram, oldest
// day first, today last. Recomputed on every call; nothing is cached.
func (s *Server) dailyStatsForPastWeek(ctx context.Context, userID primitive.ObjectID) ([]dailyStat, error) {
	stats := make([]dailyStat, 0, 7)
	for i := 6; i >= 0; i-- {
		day := s.now().AddDate(0, 0, -i)
		from, to := localDayWindow(day)
		completed, err := s.store.CountTodosByStatusInWindow(ctx, userID, StatusCompleted, from, to)
		if err != nil {
			return nil, err
		}
		pending, err := s.store.CountTodosByStatusInWindow(ctx, userID, StatusPending, from, to)
		if err != nil {
			return nil, err
		}
		stats = append(stats, dailyStat{
			Day:       weekdayAbbrev(day),
			Completed: completed,
			Pending:   pending,
		})
	}
	return stats, nil
}

func (s *Server) weeklyStats(w http.ResponseWriter, r *http.Request) {
	userID, apiErr := requirePathUser(r, "userId")
	if apiErr != nil {
		writeError(w, apiErr)
		return
	}
	stats, err := s.dailyStatsForPastWeek(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"dailyStats": stats})
}

// todayHabits lists the habits with no completed or skipped mark for the
// current weekday.
func (s *Server) todayHabits(w http.ResponseWriter, r *http.Request) {
	userID, apiErr := requirePathUser(r, "userId")
	if apiErr != nil {
		writeError(w, apiErr)
		return
	}
	habits, err := s.store.ListHabitsByUser(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	today := weekdayAbbrev(s.now())
	pending := []Habit{}
	for _, h := range habits {
		if h.Completed[today] || h.Skipped[today] {
			continue
		}
		pending = append(pending, h)
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"habits": pending})
}
