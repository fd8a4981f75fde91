// Package contentclient talks to the course content REST endpoints.
package contentclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	modulesPath = "/courses/{courseId}/modules"
	modulePath  = "/courses/{courseId}/modules/{moduleId}"
	lessonsPath = "/courses/{courseId}/modules/{moduleId}/lessons"
	lessonPath  = "/courses/{courseId}/modules/{moduleId}/lessons/{lessonId}"
)

// Option customises a Client.
type Option func(*resty.Client)

// WithTimeout bounds every request.
func WithTimeout(d time.Duration) Option {
	return func(c *resty.Client) { c.SetTimeout(d) }
}

// WithHeader adds a header to every request.
func WithHeader(key, value string) Option {
	return func(c *resty.Client) { c.SetHeader(key, value) }
}

// WithTransport swaps the underlying round tripper.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *resty.Client) { c.SetTransport(rt) }
}

// Client calls the course content service.
type Client struct {
	rest *resty.Client
}

// New builds a client rooted at baseURL (e.g. http://localhost:3000/admin).
func New(baseURL string, opts ...Option) *Client {
	rc := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetHeader("Accept", "application/json").
		SetTimeout(15 * time.Second)
	for _, opt := range opts {
		opt(rc)
	}
	return &Client{rest: rc}
}

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (c *Client) do(ctx context.Context, op, method, path string, params map[string]string, body, out any) error {
	var ok, failed envelope
	req := c.rest.R().
		SetContext(ctx).
		SetPathParams(params).
		SetResult(&ok).
		SetError(&failed)
	if body != nil {
		req.SetBody(body)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return &RemoteRequestError{Op: op, Method: method, Path: path, Err: err}
	}
	if !resp.IsSuccess() {
		msg := failed.Message
		if msg == "" {
			msg = strings.TrimSpace(resp.String())
			if len(msg) > 200 {
				msg = msg[:200]
			}
		}
		return &RemoteRequestError{Op: op, Method: method, Path: path, StatusCode: resp.StatusCode(), Message: msg}
	}

	if out == nil || len(ok.Data) == 0 || string(ok.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(ok.Data, out); err != nil {
		return &RemoteRequestError{
			Op: op, Method: method, Path: path, StatusCode: resp.StatusCode(),
			Err: fmt.Errorf("decode response: %w", err),
		}
	}
	return nil
}

// CreateCourse creates an empty course.
func (c *Client) CreateCourse(ctx context.Context, title, description string) (Course, error) {
	var course Course
	err := c.do(ctx, "create course", http.MethodPost, "/courses", nil,
		map[string]string{"title": title, "description": description}, &course)
	return course, err
}

// ListModules returns every section of a course with lessons nested, in order.
func (c *Client) ListModules(ctx context.Context, courseID string) ([]Section, error) {
	var data struct {
		Modules []Section `json:"modules"`
	}
	err := c.do(ctx, "list modules", http.MethodGet, modulesPath,
		map[string]string{"courseId": courseID}, nil, &data)
	if err != nil {
		return nil, err
	}
	return data.Modules, nil
}

// GetModule returns one section with its lessons.
func (c *Client) GetModule(ctx context.Context, courseID, sectionID string) (Section, error) {
	var section Section
	err := c.do(ctx, "get module", http.MethodGet, modulePath,
		map[string]string{"courseId": courseID, "moduleId": sectionID}, nil, &section)
	return section, err
}

// CreateModule appends a section to a course.
func (c *Client) CreateModule(ctx context.Context, courseID string, in SectionInput) (Section, error) {
	var section Section
	err := c.do(ctx, "create module", http.MethodPost, modulesPath,
		map[string]string{"courseId": courseID}, in, &section)
	return section, err
}

// UpdateModule applies a partial update to a section.
func (c *Client) UpdateModule(ctx context.Context, courseID, sectionID string, patch SectionPatch) (Section, error) {
	var section Section
	err := c.do(ctx, "update module", http.MethodPut, modulePath,
		map[string]string{"courseId": courseID, "moduleId": sectionID}, patch, &section)
	return section, err
}

// DeleteModule removes a section; the server cascades to its lessons.
func (c *Client) DeleteModule(ctx context.Context, courseID, sectionID string) error {
	return c.do(ctx, "delete module", http.MethodDelete, modulePath,
		map[string]string{"courseId": courseID, "moduleId": sectionID}, nil, nil)
}

// ReorderModules persists the complete section order of a course.
func (c *Client) ReorderModules(ctx context.Context, courseID string, ids []string) error {
	return c.do(ctx, "reorder modules", http.MethodPut, modulesPath+"/reorder",
		map[string]string{"courseId": courseID},
		map[string][]string{"moduleIds": ids}, nil)
}

// ListLessons returns the lessons of one section in order.
func (c *Client) ListLessons(ctx context.Context, courseID, sectionID string) ([]Lesson, error) {
	var data struct {
		Lessons []Lesson `json:"lessons"`
	}
	err := c.do(ctx, "list lessons", http.MethodGet, lessonsPath,
		map[string]string{"courseId": courseID, "moduleId": sectionID}, nil, &data)
	if err != nil {
		return nil, err
	}
	return data.Lessons, nil
}

// CreateLesson appends a lesson to a section.
func (c *Client) CreateLesson(ctx context.Context, courseID, sectionID string, in LessonInput) (Lesson, error) {
	var lesson Lesson
	err := c.do(ctx, "create lesson", http.MethodPost, lessonsPath,
		map[string]string{"courseId": courseID, "moduleId": sectionID}, in, &lesson)
	return lesson, err
}

// UpdateLesson applies a partial update to a lesson.
func (c *Client) UpdateLesson(ctx context.Context, courseID, sectionID, lessonID string, patch LessonPatch) (Lesson, error) {
	var lesson Lesson
	err := c.do(ctx, "update lesson", http.MethodPut, lessonPath,
		map[string]string{"courseId": courseID, "moduleId": sectionID, "lessonId": lessonID}, patch, &lesson)
	return lesson, err
}

// DeleteLesson removes a lesson.
func (c *Client) DeleteLesson(ctx context.Context, courseID, sectionID, lessonID string) error {
	return c.do(ctx, "delete lesson", http.MethodDelete, lessonPath,
		map[string]string{"courseId": courseID, "moduleId": sectionID, "lessonId": lessonID}, nil, nil)
}

// ReorderLessons persists the complete lesson order of one section.
func (c *Client) ReorderLessons(ctx context.Context, courseID, sectionID string, ids []string) error {
	return c.do(ctx, "reorder lessons", http.MethodPut, lessonsPath+"/reorder",
		map[string]string{"courseId": courseID, "moduleId": sectionID},
		map[string][]string{"lessonIds": ids}, nil)
}
