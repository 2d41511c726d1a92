package service

import (
	"context"
	"errors"
	"log"
	"sort"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"pulsemind/fitness-coach/internal/config"
	"pulsemind/fitness-coach/internal/domain"
	"pulsemind/fitness-coach/internal/repository"
	"pulsemind/fitness-coach/internal/tracking"
)

// --- Error Definitions ---
var (
	ErrSessionAccessDenied = errors.New("Session not found or unauthorized")
	ErrNoTrackingSession   = errors.New("no active tracking session")
)

// WorkoutService drives live workout tracking and the session, record
// and calendar queries built on top of the saved sessions.
type WorkoutService interface {
	// Live tracking engine.
	StartTracking(ctx context.Context, userID, day string) (*tracking.Tracker, error)
	CurrentTracker(userID string) (*tracking.Tracker, error)
	ToggleSet(userID string, exerciseIdx, setIdx int) (bool, error)
	UpdateSetReps(userID string, exerciseIdx, setIdx, reps int) error
	UpdateSetWeight(userID string, exerciseIdx, setIdx int, weight *float64) error
	ToggleClock(userID string) (bool, error)
	StartRest(userID string) error
	StopRest(userID string) error
	ResetRest(userID string) error
	SetRestDuration(userID string, seconds int) error
	UpdateNotes(userID, notes string) error
	Save(ctx context.Context, userID string) (*domain.WorkoutSession, []string, error)
	StopTracking(userID string)

	// Saved session queries.
	GetSessions(ctx context.Context, userID, from, to string) ([]domain.WorkoutSession, error)
	GetSessionByDate(ctx context.Context, userID, date string) (*domain.WorkoutSession, error)
	GetSessionsByPlan(ctx context.Context, planID primitive.ObjectID, userID string) ([]domain.WorkoutSession, error)
	DeleteSession(ctx context.Context, sessionID primitive.ObjectID, userID string) error

	// Personal records.
	GetRecords(ctx context.Context, userID string) ([]domain.PersonalRecord, error)
	GetRecordByExercise(ctx context.Context, userID, exerciseName string) (*domain.PersonalRecord, error)

	// Calendar.
	Calendar(ctx context.Context, userID string, year int, month time.Month) ([]tracking.CalendarCell, int, error)
}

type workoutService struct {
	planRepo    repository.PlanRepository
	sessionRepo repository.SessionRepository
	recordRepo  repository.RecordRepository
	manager     *tracking.Manager
	cfg         config.TrackingConfig
}

// NewWorkoutService creates a new instance of workoutService.
func NewWorkoutService(
	planRepo repository.PlanRepository,
	sessionRepo repository.SessionRepository,
	recordRepo repository.RecordRepository,
	manager *tracking.Manager,
	cfg config.TrackingConfig,
) WorkoutService {
	if cfg.RestDuration <= 0 {
		cfg.RestDuration = 90 * time.Second
	}
	if cfg.DefaultSets <= 0 {
		cfg.DefaultSets = 3
	}
	if cfg.DefaultReps <= 0 {
		cfg.DefaultReps = 10
	}
	return &workoutService{
		planRepo:    planRepo,
		sessionRepo: sessionRepo,
		recordRepo:  recordRepo,
		manager:     manager,
		cfg:         cfg,
	}
}

// StartTracking opens today's tracking session for the selected plan
// day. A session already saved today for the same day is resumed;
// otherwise a fresh checklist is built from the active plan's routines.
// The active-plan lookup runs first, so a user without one never
// touches the session store.
func (s *workoutService) StartTracking(ctx context.Context, userID, day string) (*tracking.Tracker, error) {
	if userID == "" {
		return nil, errors.New("user ID cannot be empty")
	}

	plan, err := s.planRepo.GetActiveByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNoActivePlan
		}
		return nil, err
	}

	if day == "" {
		day = time.Now().UTC().Weekday().String()
	}
	today := domain.Today()
	restSeconds := int(s.cfg.RestDuration.Seconds())

	existing, err := s.sessionRepo.GetByUserAndDate(ctx, userID, today)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if existing != nil && existing.DayName == day {
		tracker := tracking.ResumeTracker(existing, restSeconds)
		s.manager.Put(userID, tracker)
		return tracker, nil
	}

	var routines []domain.Routine
	if exerciseDay := plan.DayByName(day); exerciseDay != nil {
		routines = exerciseDay.Routines
	}
	tracker := tracking.NewTracker(userID, plan.ID, today, day, routines,
		s.cfg.DefaultSets, s.cfg.DefaultReps, restSeconds)
	s.manager.Put(userID, tracker)
	return tracker, nil
}

// CurrentTracker returns the user's live tracker.
func (s *workoutService) CurrentTracker(userID string) (*tracking.Tracker, error) {
	tracker := s.manager.Get(userID)
	if tracker == nil {
		return nil, ErrNoTrackingSession
	}
	return tracker, nil
}

func (s *workoutService) ToggleSet(userID string, exerciseIdx, setIdx int) (bool, error) {
	tracker, err := s.CurrentTracker(userID)
	if err != nil {
		return false, err
	}
	return tracker.ToggleSet(exerciseIdx, setIdx)
}

func (s *workoutService) UpdateSetReps(userID string, exerciseIdx, setIdx, reps int) error {
	tracker, err := s.CurrentTracker(userID)
	if err != nil {
		return err
	}
	return tracker.UpdateSetReps(exerciseIdx, setIdx, reps)
}

func (s *workoutService) UpdateSetWeight(userID string, exerciseIdx, setIdx int, weight *float64) error {
	tracker, err := s.CurrentTracker(userID)
	if err != nil {
		return err
	}
	return tracker.UpdateSetWeight(exerciseIdx, setIdx, weight)
}

func (s *workoutService) ToggleClock(userID string) (bool, error) {
	tracker, err := s.CurrentTracker(userID)
	if err != nil {
		return false, err
	}
	return tracker.ToggleClock(), nil
}

func (s *workoutService) StartRest(userID string) error {
	tracker, err := s.CurrentTracker(userID)
	if err != nil {
		return err
	}
	tracker.StartRest()
	return nil
}

func (s *workoutService) StopRest(userID string) error {
	tracker, err := s.CurrentTracker(userID)
	if err != nil {
		return err
	}
	tracker.StopRest()
	return nil
}

func (s *workoutService) ResetRest(userID string) error {
	tracker, err := s.CurrentTracker(userID)
	if err != nil {
		return err
	}
	tracker.ResetRest()
	return nil
}

func (s *workoutService) SetRestDuration(userID string, seconds int) error {
	tracker, err := s.CurrentTracker(userID)
	if err != nil {
		return err
	}
	tracker.SetRestDuration(seconds)
	return nil
}

func (s *workoutService) UpdateNotes(userID, notes string) error {
	tracker, err := s.CurrentTracker(userID)
	if err != nil {
		return err
	}
	tracker.SetNotes(notes)
	return nil
}

// StopTracking discards the live tracker without saving. A saved
// session for the day is untouched and can be resumed later.
func (s *workoutService) StopTracking(userID string) {
	s.manager.Remove(userID)
}

// Save persists the live tracker as today's session, then promotes
// personal records for every exercise with lifted weight. Record
// failures are logged and skipped so a broken record never loses the
// session itself. Returns the promoted exercise names.
func (s *workoutService) Save(ctx context.Context, userID string) (*domain.WorkoutSession, []string, error) {
	tracker, err := s.CurrentTracker(userID)
	if err != nil {
		return nil, nil, err
	}

	session := tracker.Snapshot()
	sessionID, err := s.sessionRepo.Upsert(ctx, session)
	if err != nil {
		return nil, nil, err
	}
	session.ID = sessionID

	promoted := make([]string, 0)
	for _, exercise := range session.CompletedExercises {
		candidate := recordCandidate(exercise, session.Date)
		if candidate == nil {
			continue
		}
		improved, err := s.promoteRecord(ctx, userID, *candidate)
		if err != nil {
			log.Printf("ERROR: Failed to update record for %s (user %s): %v", candidate.ExerciseName, userID, err)
			continue
		}
		if improved {
			promoted = append(promoted, candidate.ExerciseName)
		}
	}
	return session, promoted, nil
}

// recordCandidate extracts the best completed lift of one exercise.
// Only completed sets with a recorded weight count; an exercise without
// one produces no candidate.
func recordCandidate(exercise domain.CompletedExercise, date string) *domain.RecordCandidate {
	var maxWeight *float64
	var maxReps *int
	for _, set := range exercise.Sets {
		if !set.Completed || set.Weight == nil {
			continue
		}
		if maxWeight == nil || *set.Weight > *maxWeight {
			w := *set.Weight
			maxWeight = &w
		}
		if maxReps == nil || set.Reps > *maxReps {
			r := set.Reps
			maxReps = &r
		}
	}
	if maxWeight == nil {
		return nil
	}
	return &domain.RecordCandidate{
		ExerciseName: exercise.ExerciseName,
		MaxWeight:    maxWeight,
		MaxReps:      maxReps,
		AchievedDate: date,
	}
}

func (s *workoutService) promoteRecord(ctx context.Context, userID string, candidate domain.RecordCandidate) (bool, error) {
	existing, err := s.recordRepo.GetByUserAndExercise(ctx, userID, candidate.ExerciseName)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			record := domain.NewRecordFromCandidate(userID, candidate)
			if _, err := s.recordRepo.Create(ctx, record); err != nil {
				return false, err
			}
			return true, nil
		}
		return false, err
	}

	if !existing.Promote(candidate) {
		return false, nil
	}
	if err := s.recordRepo.Update(ctx, existing); err != nil {
		return false, err
	}
	return true, nil
}

// GetSessions returns the user's sessions, optionally bounded by an
// inclusive date range, newest first.
func (s *workoutService) GetSessions(ctx context.Context, userID, from, to string) ([]domain.WorkoutSession, error) {
	if userID == "" {
		return nil, errors.New("user ID cannot be empty")
	}
	sessions, err := s.sessionRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	filtered := sessions[:0]
	for _, session := range sessions {
		if from != "" && session.Date < from {
			continue
		}
		if to != "" && session.Date > to {
			continue
		}
		filtered = append(filtered, session)
	}
	// ISO dates sort lexically.
	sort.Slice(filtered, func(i, j int) bool {
		return filtered[i].Date > filtered[j].Date
	})
	return filtered, nil
}

// GetSessionByDate returns the user's session for one calendar date.
func (s *workoutService) GetSessionByDate(ctx context.Context, userID, date string) (*domain.WorkoutSession, error) {
	session, err := s.sessionRepo.GetByUserAndDate(ctx, userID, date)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSessionAccessDenied
		}
		return nil, err
	}
	return session, nil
}

// GetSessionsByPlan returns the caller's sessions recorded against one plan.
func (s *workoutService) GetSessionsByPlan(ctx context.Context, planID primitive.ObjectID, userID string) ([]domain.WorkoutSession, error) {
	sessions, err := s.sessionRepo.GetByPlanID(ctx, planID)
	if err != nil {
		return nil, err
	}
	owned := sessions[:0]
	for _, session := range sessions {
		if session.UserID == userID {
			owned = append(owned, session)
		}
	}
	sort.Slice(owned, func(i, j int) bool {
		return owned[i].Date > owned[j].Date
	})
	return owned, nil
}

// DeleteSession removes a session the user owns. Ownership is enforced
// inside the store delete, so a foreign ID changes nothing.
func (s *workoutService) DeleteSession(ctx context.Context, sessionID primitive.ObjectID, userID string) error {
	err := s.sessionRepo.Delete(ctx, sessionID, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrSessionAccessDenied
		}
		return err
	}
	return nil
}

// GetRecords returns all of the user's personal records.
func (s *workoutService) GetRecords(ctx context.Context, userID string) ([]domain.PersonalRecord, error) {
	return s.recordRepo.GetByUserID(ctx, userID)
}

// GetRecordByExercise returns the user's record for one exercise name.
func (s *workoutService) GetRecordByExercise(ctx context.Context, userID, exerciseName string) (*domain.PersonalRecord, error) {
	record, err := s.recordRepo.GetByUserAndExercise(ctx, userID, exerciseName)
	if err != nil {
		return nil, err
	}
	return record, nil
}

// Calendar lays out one month of the user's sessions and counts the
// sessions in the trailing seven days.
func (s *workoutService) Calendar(ctx context.Context, userID string, year int, month time.Month) ([]tracking.CalendarCell, int, error) {
	sessions, err := s.sessionRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	cells := tracking.MonthGrid(year, month, sessions)
	weekly := tracking.SessionsThisWeek(sessions)
	return cells, weekly, nil
}
