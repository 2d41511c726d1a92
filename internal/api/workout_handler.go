package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"pulsemind/fitness-coach/internal/domain"
	"pulsemind/fitness-coach/internal/service"
	"pulsemind/fitness-coach/internal/tracking"
)

// WorkoutHandler holds the workout service dependency.
type WorkoutHandler struct {
	workoutService service.WorkoutService
}

// NewWorkoutHandler creates a new WorkoutHandler.
func NewWorkoutHandler(workoutService service.WorkoutService) *WorkoutHandler {
	return &WorkoutHandler{workoutService: workoutService}
}

// --- Request/Response Structs ---

type StartTrackingRequest struct {
	Day string `json:"day"`
}

type SetRequest struct {
	ExerciseIndex int `json:"exerciseIndex"`
	SetIndex      int `json:"setIndex"`
}

type SetRepsRequest struct {
	ExerciseIndex int `json:"exerciseIndex"`
	SetIndex      int `json:"setIndex"`
	Reps          int `json:"reps"`
}

type SetWeightRequest struct {
	ExerciseIndex int      `json:"exerciseIndex"`
	SetIndex      int      `json:"setIndex"`
	Weight        *float64 `json:"weight"`
}

type NotesRequest struct {
	Notes string `json:"notes"`
}

type RestDurationRequest struct {
	Seconds int `json:"seconds" binding:"required,gt=0"`
}

type ExerciseProgress struct {
	ExerciseName  string `json:"exerciseName"`
	CompletedSets int    `json:"completedSets"`
	TotalSets     int    `json:"totalSets"`
}

type TrackerResponse struct {
	Date          string                     `json:"date"`
	DayName       string                     `json:"dayName"`
	PlanID        string                     `json:"planId"`
	Exercises     []domain.CompletedExercise `json:"exercises"`
	Notes         string                     `json:"notes"`
	ElapsedSecs   int                        `json:"elapsedSeconds"`
	ClockRunning  bool                       `json:"clockRunning"`
	RestRemaining int                        `json:"restRemaining"`
	RestDuration  int                        `json:"restDuration"`
	RestState     string                     `json:"restState"`
	CompletedSets int                        `json:"completedSets"`
	TotalSets     int                        `json:"totalSets"`
	Progress      int                        `json:"progress"`
	PerExercise   []ExerciseProgress         `json:"perExercise"`
}

type SaveResponse struct {
	SessionID       string   `json:"sessionId"`
	PromotedRecords []string `json:"promotedRecords"`
}

type SessionResponse struct {
	ID        string                     `json:"id"`
	PlanID    string                     `json:"planId"`
	Date      string                     `json:"date"`
	DayName   string                     `json:"dayName"`
	Exercises []domain.CompletedExercise `json:"exercises"`
	Duration  *int                       `json:"duration,omitempty"`
	Notes     string                     `json:"notes,omitempty"`
}

type RecordResponse struct {
	ExerciseName string    `json:"exerciseName"`
	MaxWeight    *float64  `json:"maxWeight,omitempty"`
	MaxReps      *int      `json:"maxReps,omitempty"`
	AchievedDate string    `json:"achievedDate"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type CalendarResponse struct {
	Cells            []tracking.CalendarCell `json:"cells"`
	SessionsThisWeek int                     `json:"sessionsThisWeek"`
}

// --- Tracking Handler Methods ---

// StartTracking opens (or resumes) today's tracking session.
func (h *WorkoutHandler) StartTracking(c *gin.Context) {
	userID, err := getAuthSubjectFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, err.Error())
		return
	}

	var req StartTrackingRequest
	// Body is optional; an empty day selects today's weekday.
	_ = c.ShouldBindJSON(&req)

	tracker, err := h.workoutService.StartTracking(c.Request.Context(), userID, req.Day)
	if err != nil {
		if errors.Is(err, service.ErrNoActivePlan) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to start tracking")
		}
		return
	}
	c.JSON(http.StatusOK, MapTrackerToResponse(tracker))
}

// GetTracking returns the live tracker snapshot with progress counters.
func (h *WorkoutHandler) GetTracking(c *gin.Context) {
	userID, err := getAuthSubjectFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, err.Error())
		return
	}

	tracker, err := h.workoutService.CurrentTracker(userID)
	if err != nil {
		abortWithError(c, http.StatusNotFound, err.Error())
		return
	}
	c.JSON(http.StatusOK, MapTrackerToResponse(tracker))
}

// ToggleSet flips one set's completed flag.
func (h *WorkoutHandler) ToggleSet(c *gin.Context) {
	userID, err := getAuthSubjectFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, err.Error())
		return
	}

	var req SetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	completed, err := h.workoutService.ToggleSet(userID, req.ExerciseIndex, req.SetIndex)
	if err != nil {
		h.abortTrackingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"completed": completed})
}

// UpdateSetReps overwrites the rep count of one set.
func (h *WorkoutHandler) UpdateSetReps(c *gin.Context) {
	userID, err := getAuthSubjectFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, err.Error())
		return
	}

	var req SetRepsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	if err := h.workoutService.UpdateSetReps(userID, req.ExerciseIndex, req.SetIndex, req.Reps); err != nil {
		h.abortTrackingError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// UpdateSetWeight overwrites (or clears) the weight of one set.
func (h *WorkoutHandler) UpdateSetWeight(c *gin.Context) {
	userID, err := getAuthSubjectFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, err.Error())
		return
	}

	var req SetWeightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	if err := h.workoutService.UpdateSetWeight(userID, req.ExerciseIndex, req.SetIndex, req.Weight); err != nil {
		h.abortTrackingError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// UpdateNotes replaces the session notes.
func (h *WorkoutHandler) UpdateNotes(c *gin.Context) {
	userID, err := getAuthSubjectFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, err.Error())
		return
	}

	var req NotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	if err := h.workoutService.UpdateNotes(userID, req.Notes); err != nil {
		h.abortTrackingError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// StartRest reloads and starts the rest countdown.
func (h *WorkoutHandler) StartRest(c *gin.Context) {
	h.restAction(c, h.workoutService.StartRest)
}

// StopRest halts the countdown keeping the remaining time.
func (h *WorkoutHandler) StopRest(c *gin.Context) {
	h.restAction(c, h.workoutService.StopRest)
}

// ResetRest halts the countdown and restores the full duration.
func (h *WorkoutHandler) ResetRest(c *gin.Context) {
	h.restAction(c, h.workoutService.ResetRest)
}

func (h *WorkoutHandler) restAction(c *gin.Context, action func(string) error) {
	userID, err := getAuthSubjectFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, err.Error())
		return
	}
	if err := action(userID); err != nil {
		h.abortTrackingError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SetRestDuration changes the configured rest countdown length.
func (h *WorkoutHandler) SetRestDuration(c *gin.Context) {
	userID, err := getAuthSubjectFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, err.Error())
		return
	}

	var req RestDurationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	if err := h.workoutService.SetRestDuration(userID, req.Seconds); err != nil {
		h.abortTrackingError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ToggleClock flips the session clock between running and paused.
func (h *WorkoutHandler) ToggleClock(c *gin.Context) {
	userID, err := getAuthSubjectFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, err.Error())
		return
	}

	running, err := h.workoutService.ToggleClock(userID)
	if err != nil {
		h.abortTrackingError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"running": running})
}

// SaveTracking persists the live session and promotes personal records.
func (h *WorkoutHandler) SaveTracking(c *gin.Context) {
	userID, err := getAuthSubjectFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, err.Error())
		return
	}

	session, promoted, err := h.workoutService.Save(c.Request.Context(), userID)
	if err != nil {
		h.abortTrackingError(c, err)
		return
	}
	c.JSON(http.StatusOK, SaveResponse{
		SessionID:       session.ID.Hex(),
		PromotedRecords: promoted,
	})
}

// StopTracking discards the live tracker without saving it.
func (h *WorkoutHandler) StopTracking(c *gin.Context) {
	userID, err := getAuthSubjectFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, err.Error())
		return
	}

	h.workoutService.StopTracking(userID)
	c.Status(http.StatusNoContent)
}

func (h *WorkoutHandler) abortTrackingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNoTrackingSession):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, tracking.ErrExerciseIndex), errors.Is(err, tracking.ErrSetIndex):
		abortWithError(c, http.StatusBadRequest, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, "Tracking operation failed")
	}
}

// --- Session / Record / Calendar Handler Methods ---

// GetSessions lists saved sessions, optionally bounded by ?start=&end=.
func (h *WorkoutHandler) GetSessions(c *gin.Context) {
	userID, err := getAuthSubjectFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, err.Error())
		return
	}

	sessions, err := h.workoutService.GetSessions(c.Request.Context(), userID, c.Query("start"), c.Query("end"))
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve sessions")
		return
	}
	c.JSON(http.StatusOK, mapSessions(sessions))
}

// GetSessionByDate returns the session saved on one calendar date.
func (h *WorkoutHandler) GetSessionByDate(c *gin.Context) {
	userID, err := getAuthSubjectFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, err.Error())
		return
	}

	date := c.Param("date")
	if _, err := time.Parse(domain.DateLayout, date); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid date format, use YYYY-MM-DD")
		return
	}

	session, err := h.workoutService.GetSessionByDate(c.Request.Context(), userID, date)
	if err != nil {
		if errors.Is(err, service.ErrSessionAccessDenied) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to retrieve session")
		}
		return
	}
	c.JSON(http.StatusOK, MapSessionToResponse(session))
}

// GetSessionsByPlan returns the history recorded against one plan.
func (h *WorkoutHandler) GetSessionsByPlan(c *gin.Context) {
	userID, err := getAuthSubjectFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, err.Error())
		return
	}

	planID, err := primitive.ObjectIDFromHex(c.Param("planId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid plan ID format")
		return
	}

	sessions, err := h.workoutService.GetSessionsByPlan(c.Request.Context(), planID, userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve sessions")
		return
	}
	c.JSON(http.StatusOK, mapSessions(sessions))
}

// DeleteSession removes one saved session the caller owns.
func (h *WorkoutHandler) DeleteSession(c *gin.Context) {
	userID, err := getAuthSubjectFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, err.Error())
		return
	}

	sessionID, err := primitive.ObjectIDFromHex(c.Param("sessionId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid session ID format")
		return
	}

	if err := h.workoutService.DeleteSession(c.Request.Context(), sessionID, userID); err != nil {
		if errors.Is(err, service.ErrSessionAccessDenied) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to delete session")
		}
		return
	}
	c.Status(http.StatusNoContent)
}

// GetRecords returns all of the caller's personal records.
func (h *WorkoutHandler) GetRecords(c *gin.Context) {
	userID, err := getAuthSubjectFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, err.Error())
		return
	}

	records, err := h.workoutService.GetRecords(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve records")
		return
	}

	response := make([]RecordResponse, len(records))
	for i, record := range records {
		response[i] = MapRecordToResponse(&record)
	}
	c.JSON(http.StatusOK, response)
}

// GetRecordByExercise returns the caller's record for one exercise.
func (h *WorkoutHandler) GetRecordByExercise(c *gin.Context) {
	userID, err := getAuthSubjectFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, err.Error())
		return
	}

	record, err := h.workoutService.GetRecordByExercise(c.Request.Context(), userID, c.Param("exerciseName"))
	if err != nil {
		abortWithError(c, http.StatusNotFound, "Record not found")
		return
	}
	c.JSON(http.StatusOK, MapRecordToResponse(record))
}

// GetCalendar lays out one month (?month=YYYY-MM, default current).
func (h *WorkoutHandler) GetCalendar(c *gin.Context) {
	userID, err := getAuthSubjectFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, err.Error())
		return
	}

	now := time.Now().UTC()
	year, month := now.Year(), now.Month()
	if monthParam := c.Query("month"); monthParam != "" {
		parsed, err := time.Parse("2006-01", monthParam)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid month format, use YYYY-MM")
			return
		}
		year, month = parsed.Year(), parsed.Month()
	}

	cells, weekly, err := h.workoutService.Calendar(c.Request.Context(), userID, year, month)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to build calendar")
		return
	}
	c.JSON(http.StatusOK, CalendarResponse{
		Cells:            cells,
		SessionsThisWeek: weekly,
	})
}

// --- Mappers ---

// MapTrackerToResponse converts a live tracker to its DTO.
func MapTrackerToResponse(tracker *tracking.Tracker) TrackerResponse {
	exercises := tracker.Exercises()
	completedTotal := 0
	total := 0
	perExercise := make([]ExerciseProgress, len(exercises))
	for i, exercise := range exercises {
		completed := 0
		for _, set := range exercise.Sets {
			if set.Completed {
				completed++
			}
		}
		completedTotal += completed
		total += len(exercise.Sets)
		perExercise[i] = ExerciseProgress{
			ExerciseName:  exercise.ExerciseName,
			CompletedSets: completed,
			TotalSets:     len(exercise.Sets),
		}
	}
	progress := 0
	if total > 0 {
		progress = completedTotal * 100 / total
	}
	return TrackerResponse{
		Date:          tracker.Date,
		DayName:       tracker.DayName,
		PlanID:        tracker.PlanID.Hex(),
		Exercises:     exercises,
		Notes:         tracker.Notes(),
		ElapsedSecs:   tracker.ElapsedSeconds(),
		ClockRunning:  tracker.ClockRunning(),
		RestRemaining: tracker.RestRemaining(),
		RestDuration:  tracker.RestDuration(),
		RestState:     string(tracker.RestState()),
		CompletedSets: completedTotal,
		TotalSets:     total,
		Progress:      progress,
		PerExercise:   perExercise,
	}
}

// MapSessionToResponse converts a domain WorkoutSession to its DTO.
func MapSessionToResponse(session *domain.WorkoutSession) SessionResponse {
	if session == nil {
		return SessionResponse{}
	}
	return SessionResponse{
		ID:        session.ID.Hex(),
		PlanID:    session.PlanID.Hex(),
		Date:      session.Date,
		DayName:   session.DayName,
		Exercises: session.CompletedExercises,
		Duration:  session.Duration,
		Notes:     session.Notes,
	}
}

func mapSessions(sessions []domain.WorkoutSession) []SessionResponse {
	response := make([]SessionResponse, len(sessions))
	for i := range sessions {
		response[i] = MapSessionToResponse(&sessions[i])
	}
	return response
}

// MapRecordToResponse converts a domain PersonalRecord to its DTO.
func MapRecordToResponse(record *domain.PersonalRecord) RecordResponse {
	if record == nil {
		return RecordResponse{}
	}
	return RecordResponse{
		ExerciseName: record.ExerciseName,
		MaxWeight:    record.MaxWeight,
		MaxReps:      record.MaxReps,
		AchievedDate: record.AchievedDate,
		UpdatedAt:    record.UpdatedAt,
	}
}
