package services

import (
	"math"

	"learnhub/models"

	"gorm.io/gorm"
)

// CourseMetrics is one row of the instructor/admin dashboard. Counts are
// integers and the rate is a rounded percentage; nothing open-ended passes
// through to the presentation layer.
type CourseMetrics struct {
	CourseID         uint   `json:"course_id"`
	Title            string `json:"title"`
	TotalEnrollments int64  `json:"total_enrollments"`
	Completed        int64  `json:"completed"`
	DropOff          int64  `json:"drop_off"`
	CompletionRate   int    `json:"completion_rate"`
}

// Scope selects whose courses are aggregated. The zero value means all
// courses (admin); a non-zero InstructorID restricts to courses that
// instructor owns.
type Scope struct {
	InstructorID uint
}

type AnalyticsService struct {
	DB          *gorm.DB
	Completions CompletionSource
}

func NewAnalyticsService(db *gorm.DB, completions CompletionSource) *AnalyticsService {
	return &AnalyticsService{DB: db, Completions: completions}
}

// Aggregate derives per-course metrics for the scope. The ownership filter is
// applied in the query itself, never after the fact, so counts for unowned
// courses are not computed even transiently. Zero-row courses and empty
// scopes are valid: the result is simply zeros or an empty slice.
func (s *AnalyticsService) Aggregate(scope Scope) ([]CourseMetrics, error) {
	type row struct {
		ID    uint
		Title string
		Total int64
	}

	q := s.DB.Model(&models.Course{}).
		Select("courses.id, courses.title, COUNT(enrollments.id) AS total").
		Joins("LEFT JOIN enrollments ON enrollments.course_id = courses.id").
		Group("courses.id, courses.title").
		Order("courses.id ASC")
	if scope.InstructorID != 0 {
		q = q.Where("courses.instructor_id = ?", scope.InstructorID)
	}

	var rows []row
	if err := q.Scan(&rows).Error; err != nil {
		return nil, err
	}

	metrics := make([]CourseMetrics, 0, len(rows))
	for _, r := range rows {
		completed, err := s.Completions.CompletedCount(r.ID)
		if err != nil {
			return nil, err
		}
		m := CourseMetrics{
			CourseID:         r.ID,
			Title:            r.Title,
			TotalEnrollments: r.Total,
			Completed:        completed,
			DropOff:          r.Total - completed,
		}
		if r.Total > 0 {
			m.CompletionRate = int(math.Round(float64(completed) / float64(r.Total) * 100))
		}
		metrics = append(metrics, m)
	}
	return metrics, nil
}
