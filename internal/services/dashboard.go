package services

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"

	"github.com/Williamtrix2022/uniplan/internal/models"
)

// Dashboard is the composed payload of GET /api/dashboard.
type Dashboard struct {
	Summary       DashboardSummary    `json:"resumen"`
	Pomodoro      DashboardPomodoro   `json:"pomodoro"`
	UpcomingItems DashboardActivities `json:"proximas_actividades"`
}

type DashboardSummary struct {
	Subjects     models.SubjectStats  `json:"materias"`
	Tasks        models.TaskStats     `json:"tareas"`
	Notes        models.NoteStats     `json:"notas"`
	Calendar     models.CalendarStats `json:"calendario"`
	Productivity int                  `json:"productividad_semanal"`
}

type DashboardPomodoro struct {
	Today     models.PomodoroStats          `json:"hoy"`
	Week      models.PomodoroStats          `json:"semana"`
	BySubject []models.PomodoroSubjectStats `json:"por_materia"`
}

type DashboardActivities struct {
	Tasks       []models.Task          `json:"tareas"`
	TodayEvents []models.CalendarEvent `json:"eventos_hoy"`
}

// WeeklySummary is the payload of GET /api/dashboard/weekly.
type WeeklySummary struct {
	StudyByDay    []models.PomodoroDayStats `json:"estudio_por_dia"`
	WeekEvents    []models.CalendarEvent    `json:"eventos_semana"`
	UpcomingTasks []models.Task             `json:"tareas_proximas"`
}

// TodaySummary is the payload of GET /api/dashboard/today.
type TodaySummary struct {
	StudyMinutes int                    `json:"minutos_estudiados"`
	Sessions     int                    `json:"sesiones_pomodoro"`
	Events       []models.CalendarEvent `json:"eventos"`
	PendingTasks []models.Task          `json:"tareas_pendientes"`
}

type DashboardService interface {
	Dashboard(ctx context.Context, db *gorm.DB, studentID uuid.UUID) (Dashboard, error)
	Weekly(ctx context.Context, db *gorm.DB, studentID uuid.UUID) (WeeklySummary, error)
	Today(ctx context.Context, db *gorm.DB, studentID uuid.UUID) (TodaySummary, error)
}

// DashboardServiceImpl composes the per-resource aggregators. It owns no
// queries of its own beyond the fan-out.
type DashboardServiceImpl struct {
	subjects SubjectService
	tasks    TaskService
	notes    NoteService
	calendar CalendarService
	pomodoro PomodoroService
}

func NewDashboardService(subjects SubjectService, tasks TaskService, notes NoteService, calendar CalendarService, pomodoro PomodoroService) *DashboardServiceImpl {
	return &DashboardServiceImpl{
		subjects: subjects,
		tasks:    tasks,
		notes:    notes,
		calendar: calendar,
		pomodoro: pomodoro,
	}
}

// fanOut runs every read concurrently and waits for all of them. The join
// is all-or-nothing: the first error wins and fails the whole request.
func fanOut(reads ...func() error) error {
	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	for _, read := range reads {
		wg.Add(1)
		go func(read func() error) {
			defer wg.Done()
			if err := read(); err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
			}
		}(read)
	}

	wg.Wait()
	return firstErr
}

// Productivity is the weekly completion percentage, rounded to the nearest
// integer and defined as 0 for an empty task list.
func Productivity(completed, total int64) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}

func (s *DashboardServiceImpl) Dashboard(ctx context.Context, db *gorm.DB, studentID uuid.UUID) (Dashboard, error) {
	var (
		subjectStats  models.SubjectStats
		taskStats     models.TaskStats
		noteStats     models.NoteStats
		calendarStats models.CalendarStats
		weekStats     models.PomodoroStats
		todayStats    models.PomodoroStats
		upcomingTasks []models.Task
		todayEvents   []models.CalendarEvent
		bySubject     []models.PomodoroSubjectStats
	)

	err := fanOut(
		func() (err error) { subjectStats, err = s.subjects.Stats(ctx, db, studentID); return },
		func() (err error) { taskStats, err = s.tasks.Stats(ctx, db, studentID); return },
		func() (err error) { noteStats, err = s.notes.Stats(ctx, db, studentID); return },
		func() (err error) { calendarStats, err = s.calendar.Stats(ctx, db, studentID); return },
		func() (err error) { weekStats, err = s.pomodoro.Stats(ctx, db, studentID, PeriodWeek); return },
		func() (err error) { todayStats, err = s.pomodoro.Stats(ctx, db, studentID, PeriodToday); return },
		func() (err error) { upcomingTasks, err = s.tasks.Upcoming(ctx, db, studentID); return },
		func() (err error) { todayEvents, err = s.calendar.Today(ctx, db, studentID); return },
		func() (err error) { bySubject, err = s.pomodoro.BySubject(ctx, db, studentID); return },
	)
	if err != nil {
		return Dashboard{}, err
	}

	return Dashboard{
		Summary: DashboardSummary{
			Subjects:     subjectStats,
			Tasks:        taskStats,
			Notes:        noteStats,
			Calendar:     calendarStats,
			Productivity: Productivity(taskStats.Completed, taskStats.Total),
		},
		Pomodoro: DashboardPomodoro{
			Today:     todayStats,
			Week:      weekStats,
			BySubject: bySubject,
		},
		UpcomingItems: DashboardActivities{
			Tasks:       upcomingTasks,
			TodayEvents: todayEvents,
		},
	}, nil
}

func (s *DashboardServiceImpl) Weekly(ctx context.Context, db *gorm.DB, studentID uuid.UUID) (WeeklySummary, error) {
	var (
		byDay         []models.PomodoroDayStats
		weekEvents    []models.CalendarEvent
		upcomingTasks []models.Task
	)

	err := fanOut(
		func() (err error) { byDay, err = s.pomodoro.ByDay(ctx, db, studentID); return },
		func() (err error) { weekEvents, err = s.calendar.Week(ctx, db, studentID); return },
		func() (err error) { upcomingTasks, err = s.tasks.Upcoming(ctx, db, studentID); return },
	)
	if err != nil {
		return WeeklySummary{}, err
	}

	return WeeklySummary{
		StudyByDay:    byDay,
		WeekEvents:    weekEvents,
		UpcomingTasks: upcomingTasks,
	}, nil
}

func (s *DashboardServiceImpl) Today(ctx context.Context, db *gorm.DB, studentID uuid.UUID) (TodaySummary, error) {
	var (
		sessions     []models.PomodoroSession
		events       []models.CalendarEvent
		pendingTasks []models.Task
	)

	err := fanOut(
		func() (err error) { sessions, err = s.pomodoro.Today(ctx, db, studentID); return },
		func() (err error) { events, err = s.calendar.Today(ctx, db, studentID); return },
		func() (err error) {
			pendingTasks, err = s.tasks.List(ctx, db, studentID, TaskFilters{Status: models.StatusPending})
			return
		},
	)
	if err != nil {
		return TodaySummary{}, err
	}

	minutes := 0
	for _, session := range sessions {
		minutes += session.StudyMinutes
	}

	now := time.Now()
	dueToday := []models.Task{}
	for _, task := range pendingTasks {
		if sameCalendarDay(task.DueDate, now) {
			dueToday = append(dueToday, task)
		}
	}

	return TodaySummary{
		StudyMinutes: minutes,
		Sessions:     len(sessions),
		Events:       events,
		PendingTasks: dueToday,
	}, nil
}
