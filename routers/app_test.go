package routers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"coursedesk/config"
	courseModels "coursedesk/models/course"
	"coursedesk/routers"
	"coursedesk/testsupport"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type moduleView struct {
	ID            string       `json:"id"`
	Title         string       `json:"title"`
	Description   string       `json:"description"`
	DisplayOrder  int          `json:"display_order"`
	IsFreePreview bool         `json:"is_free_preview"`
	Lessons       []lessonView `json:"lessons"`
}

type lessonView struct {
	ID           string `json:"id"`
	ModuleID     string `json:"module_id"`
	Title        string `json:"title"`
	ContentType  string `json:"content_type"`
	DisplayOrder int    `json:"display_order"`
}

func newApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	db := testsupport.MustOpenDB(t)
	return routers.NewApp(&config.Config{CorsOrigins: "*"}), db
}

func call(t *testing.T, app *fiber.App, method, path string, body any) (int, envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var env envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return resp.StatusCode, env
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func listModules(t *testing.T, app *fiber.App, courseID string) []moduleView {
	t.Helper()
	status, env := call(t, app, http.MethodGet, "/admin/courses/"+courseID+"/modules", nil)
	require.Equal(t, http.StatusOK, status)
	return decode[struct {
		Modules []moduleView `json:"modules"`
	}](t, env.Data).Modules
}

func moduleTitles(modules []moduleView) []string {
	out := make([]string, len(modules))
	for i, m := range modules {
		out[i] = m.Title
	}
	return out
}

func TestCreateModuleAppendsAtEnd(t *testing.T) {
	app, db := newApp(t)
	course := testsupport.SeedCourse(t, db, "Go Basics")
	base := "/admin/courses/" + course.ID + "/modules"

	status, env := call(t, app, http.MethodPost, base, map[string]string{"title": " Intro "})
	require.Equal(t, http.StatusCreated, status)
	first := decode[moduleView](t, env.Data)
	assert.Equal(t, "Intro", first.Title)
	assert.Equal(t, 0, first.DisplayOrder)
	assert.NotNil(t, first.Lessons)

	status, env = call(t, app, http.MethodPost, base, map[string]string{"title": "Deeper"})
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, 1, decode[moduleView](t, env.Data).DisplayOrder)

	assert.Equal(t, []string{"Intro", "Deeper"}, moduleTitles(listModules(t, app, course.ID)))
}

func TestCreateModuleValidation(t *testing.T) {
	app, db := newApp(t)
	course := testsupport.SeedCourse(t, db, "Go Basics")

	status, env := call(t, app, http.MethodPost, "/admin/courses/"+course.ID+"/modules", map[string]string{"title": "   "})
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.False(t, env.Status)
	errs := decode[map[string]string](t, env.Data)
	assert.Contains(t, errs, "title")

	status, _ = call(t, app, http.MethodPost, "/admin/courses/not-a-uuid/modules", map[string]string{"title": "x"})
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = call(t, app, http.MethodPost, "/admin/courses/"+uuid.NewString()+"/modules", map[string]string{"title": "x"})
	assert.Equal(t, http.StatusNotFound, status)
}

func TestListModulesNestsLessonsInOrder(t *testing.T) {
	app, db := newApp(t)
	course := testsupport.SeedCourse(t, db, "Go Basics")
	second := testsupport.SeedModule(t, db, course.ID, "Second", 1)
	first := testsupport.SeedModule(t, db, course.ID, "First", 0)
	testsupport.SeedLesson(t, db, first, "B", courseModels.ContentQuiz, 1)
	testsupport.SeedLesson(t, db, first, "A", courseModels.ContentVideo, 0)
	gone := testsupport.SeedLesson(t, db, first, "Gone", courseModels.ContentVideo, 2)
	require.NoError(t, db.Model(&gone).Update("is_deleted", true).Error)

	modules := listModules(t, app, course.ID)
	require.Len(t, modules, 2)
	assert.Equal(t, first.ID, modules[0].ID)
	assert.Equal(t, second.ID, modules[1].ID)
	require.Len(t, modules[0].Lessons, 2)
	assert.Equal(t, "A", modules[0].Lessons[0].Title)
	assert.Equal(t, "B", modules[0].Lessons[1].Title)
	assert.Equal(t, first.ID, modules[0].Lessons[0].ModuleID)
	assert.NotNil(t, modules[1].Lessons)
	assert.Empty(t, modules[1].Lessons)
}

func TestUpdateModuleIsPartial(t *testing.T) {
	app, db := newApp(t)
	course := testsupport.SeedCourse(t, db, "Go Basics")
	module := testsupport.SeedModule(t, db, course.ID, "Intro", 0)
	require.NoError(t, db.Model(&module).Update("description", "keep me").Error)

	status, env := call(t, app, http.MethodPut, "/admin/courses/"+course.ID+"/modules/"+module.ID,
		map[string]any{"is_free_preview": true})
	require.Equal(t, http.StatusOK, status)

	updated := decode[moduleView](t, env.Data)
	assert.Equal(t, "Intro", updated.Title)
	assert.Equal(t, "keep me", updated.Description)
	assert.True(t, updated.IsFreePreview)
}

func TestDeleteModuleCascadesToLessons(t *testing.T) {
	app, db := newApp(t)
	course := testsupport.SeedCourse(t, db, "Go Basics")
	module := testsupport.SeedModule(t, db, course.ID, "Intro", 0)
	testsupport.SeedModule(t, db, course.ID, "Next", 1)

	status, env := call(t, app, http.MethodPost, "/admin/courses/"+course.ID+"/modules/"+module.ID+"/lessons",
		map[string]any{"title": "Welcome", "video_duration_seconds": 330})
	require.Equal(t, http.StatusCreated, status)
	lesson := decode[lessonView](t, env.Data)

	var stored courseModels.Course
	require.NoError(t, db.First(&stored, "id = ?", course.ID).Error)
	require.Equal(t, 1, stored.TotalLessons)
	require.Equal(t, 330, stored.TotalDurationSeconds)

	status, env = call(t, app, http.MethodDelete, "/admin/courses/"+course.ID+"/modules/"+module.ID, nil)
	require.Equal(t, http.StatusOK, status)
	assert.True(t, env.Status)

	require.NoError(t, db.First(&stored, "id = ?", course.ID).Error)
	assert.Equal(t, 0, stored.TotalLessons)
	assert.Equal(t, 0, stored.TotalDurationSeconds)

	assert.Equal(t, []string{"Next"}, moduleTitles(listModules(t, app, course.ID)))

	var storedLesson courseModels.Lesson
	require.NoError(t, db.First(&storedLesson, "id = ?", lesson.ID).Error)
	assert.True(t, storedLesson.IsDeleted)

	status, _ = call(t, app, http.MethodGet, "/admin/courses/"+course.ID+"/modules/"+module.ID+"/lessons/"+lesson.ID, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestReorderModules(t *testing.T) {
	app, db := newApp(t)
	course := testsupport.SeedCourse(t, db, "Go Basics")
	s1 := testsupport.SeedModule(t, db, course.ID, "S1", 0)
	s2 := testsupport.SeedModule(t, db, course.ID, "S2", 1)
	path := "/admin/courses/" + course.ID + "/modules/reorder"

	status, _ := call(t, app, http.MethodPut, path, map[string]any{"moduleIds": []string{s2.ID, s1.ID}})
	require.Equal(t, http.StatusOK, status)

	modules := listModules(t, app, course.ID)
	assert.Equal(t, []string{"S2", "S1"}, moduleTitles(modules))
	assert.Equal(t, 0, modules[0].DisplayOrder)
	assert.Equal(t, 1, modules[1].DisplayOrder)

	t.Run("stale list conflicts", func(t *testing.T) {
		status, _ := call(t, app, http.MethodPut, path, map[string]any{"moduleIds": []string{s1.ID}})
		assert.Equal(t, http.StatusConflict, status)
		assert.Equal(t, []string{"S2", "S1"}, moduleTitles(listModules(t, app, course.ID)))
	})

	t.Run("duplicates fail validation", func(t *testing.T) {
		status, env := call(t, app, http.MethodPut, path, map[string]any{"moduleIds": []string{s1.ID, s1.ID}})
		assert.Equal(t, http.StatusUnprocessableEntity, status)
		assert.Contains(t, decode[map[string]string](t, env.Data), "moduleIds")
	})
}

func TestLessonLifecycle(t *testing.T) {
	app, db := newApp(t)
	course := testsupport.SeedCourse(t, db, "Go Basics")
	module := testsupport.SeedModule(t, db, course.ID, "Intro", 0)
	base := "/admin/courses/" + course.ID + "/modules/" + module.ID + "/lessons"

	status, env := call(t, app, http.MethodPost, base, map[string]any{"title": "Welcome", "video_duration_seconds": 120})
	require.Equal(t, http.StatusCreated, status)
	welcome := decode[lessonView](t, env.Data)
	assert.Equal(t, courseModels.ContentVideo, welcome.ContentType)
	assert.Equal(t, 0, welcome.DisplayOrder)

	status, env = call(t, app, http.MethodPost, base, map[string]any{"title": "Check", "content_type": "quiz"})
	require.Equal(t, http.StatusCreated, status)
	check := decode[lessonView](t, env.Data)
	assert.Equal(t, 1, check.DisplayOrder)

	status, env = call(t, app, http.MethodPost, base, map[string]any{"title": "Bad", "content_type": "podcast"})
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Contains(t, decode[map[string]string](t, env.Data), "content_type")

	var stored courseModels.Course
	require.NoError(t, db.First(&stored, "id = ?", course.ID).Error)
	assert.Equal(t, 2, stored.TotalLessons)
	assert.Equal(t, 120, stored.TotalDurationSeconds)

	status, _ = call(t, app, http.MethodPut, base+"/reorder", map[string]any{"lessonIds": []string{check.ID, welcome.ID}})
	require.Equal(t, http.StatusOK, status)

	status, env = call(t, app, http.MethodGet, base, nil)
	require.Equal(t, http.StatusOK, status)
	lessons := decode[struct {
		Lessons []lessonView `json:"lessons"`
	}](t, env.Data).Lessons
	require.Len(t, lessons, 2)
	assert.Equal(t, check.ID, lessons[0].ID)
	assert.Equal(t, 0, lessons[0].DisplayOrder)

	status, _ = call(t, app, http.MethodPut, base+"/"+check.ID, map[string]any{"title": "Knowledge check"})
	require.Equal(t, http.StatusOK, status)

	status, _ = call(t, app, http.MethodDelete, base+"/"+welcome.ID, nil)
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, db.First(&stored, "id = ?", course.ID).Error)
	assert.Equal(t, 1, stored.TotalLessons)
	assert.Equal(t, 0, stored.TotalDurationSeconds)
}

func TestLessonReorderRejectsForeignLesson(t *testing.T) {
	app, db := newApp(t)
	course := testsupport.SeedCourse(t, db, "Go Basics")
	s1 := testsupport.SeedModule(t, db, course.ID, "S1", 0)
	s2 := testsupport.SeedModule(t, db, course.ID, "S2", 1)
	own := testsupport.SeedLesson(t, db, s1, "Own", courseModels.ContentVideo, 0)
	foreign := testsupport.SeedLesson(t, db, s2, "Foreign", courseModels.ContentVideo, 0)

	status, _ := call(t, app, http.MethodPut, "/admin/courses/"+course.ID+"/modules/"+s1.ID+"/lessons/reorder",
		map[string]any{"lessonIds": []string{foreign.ID, own.ID}})
	assert.Equal(t, http.StatusConflict, status)
}

func TestCourseDetailsCountsLiveModules(t *testing.T) {
	app, db := newApp(t)
	course := testsupport.SeedCourse(t, db, "Go Basics")
	testsupport.SeedModule(t, db, course.ID, "Intro", 0)
	gone := testsupport.SeedModule(t, db, course.ID, "Gone", 1)
	require.NoError(t, db.Model(&gone).Update("is_deleted", true).Error)

	status, env := call(t, app, http.MethodGet, "/admin/courses/"+course.ID, nil)
	require.Equal(t, http.StatusOK, status)
	details := decode[struct {
		ModuleCount int64 `json:"module_count"`
	}](t, env.Data)
	assert.Equal(t, int64(1), details.ModuleCount)

	t.Run("query failure answers 500", func(t *testing.T) {
		require.NoError(t, db.Migrator().DropTable(&courseModels.Module{}))

		status, env := call(t, app, http.MethodGet, "/admin/courses/"+course.ID, nil)
		assert.Equal(t, http.StatusInternalServerError, status)
		assert.False(t, env.Status)

		status, _ = call(t, app, http.MethodPost, "/admin/courses/"+course.ID+"/modules", map[string]string{"title": "Orphan"})
		assert.Equal(t, http.StatusInternalServerError, status)
	})
}

func TestListCourses(t *testing.T) {
	app, db := newApp(t)
	for _, title := range []string{"Go Basics", "Advanced Go", "Rust Intro"} {
		testsupport.SeedCourse(t, db, title)
	}
	gone := testsupport.SeedCourse(t, db, "Go Archive")
	require.NoError(t, db.Model(&gone).Update("is_deleted", true).Error)

	type courseList struct {
		Courses []struct {
			Title string `json:"title"`
		} `json:"courses"`
		Pagination struct {
			Total int64 `json:"total"`
			Page  int   `json:"page"`
			Limit int   `json:"limit"`
		} `json:"pagination"`
	}

	status, env := call(t, app, http.MethodGet, "/admin/courses", nil)
	require.Equal(t, http.StatusOK, status)
	all := decode[courseList](t, env.Data)
	assert.Len(t, all.Courses, 3)
	assert.Equal(t, int64(3), all.Pagination.Total)
	assert.Equal(t, 1, all.Pagination.Page)
	assert.Equal(t, 10, all.Pagination.Limit)

	status, env = call(t, app, http.MethodGet, "/admin/courses?search=go&limit=1&page=2", nil)
	require.Equal(t, http.StatusOK, status)
	paged := decode[courseList](t, env.Data)
	assert.Equal(t, int64(2), paged.Pagination.Total)
	require.Len(t, paged.Courses, 1)
	assert.Contains(t, paged.Courses[0].Title, "Go")

	status, env = call(t, app, http.MethodGet, "/admin/courses?page=0", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Contains(t, decode[map[string]string](t, env.Data), "page")
}

func TestUnknownRouteUsesEnvelope(t *testing.T) {
	app, _ := newApp(t)

	status, env := call(t, app, http.MethodGet, "/admin/nothing-here", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.False(t, env.Status)
	assert.NotEmpty(t, env.Message)
}
