package contenttree

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"coursedesk/contentclient"
	"coursedesk/ordering"
)

type remoteCall struct {
	op   string
	args []string
}

// fakeRemote is an in-memory content service. Successful calls change its
// sections so a reload returns what a real server would.
type fakeRemote struct {
	mu       sync.Mutex
	sections []Section
	calls    []remoteCall
	fail     map[string]error
	listErr  error
	gate     chan struct{}
	seq      int
}

func newFakeRemote(sections ...Section) *fakeRemote {
	return &fakeRemote{sections: sections, fail: map[string]error{}}
}

func serverError(op string) error {
	return &contentclient.RemoteRequestError{Op: op, StatusCode: http.StatusInternalServerError, Message: "Internal Server Error"}
}

func (f *fakeRemote) failOn(op string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fail[op] = serverError(op)
}

func (f *fakeRemote) failList(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listErr = err
}

func (f *fakeRemote) mutatingCalls() []remoteCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []remoteCall
	for _, c := range f.calls {
		if c.op != "list modules" {
			out = append(out, c)
		}
	}
	return out
}

func (f *fakeRemote) snapshot() []Section {
	f.mu.Lock()
	defer f.mu.Unlock()
	return cloneSections(f.sections)
}

// enter records the call, waits on the gate if one is set, and returns the
// injected failure for op. A cancelled ctx fails the call like a real client.
func (f *fakeRemote) enter(ctx context.Context, op string, args ...string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f.mu.Lock()
	f.calls = append(f.calls, remoteCall{op: op, args: args})
	gate := f.gate
	err := f.fail[op]
	f.mu.Unlock()

	if gate != nil && op != "list modules" {
		select {
		case <-gate:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return err
}

func (f *fakeRemote) nextID(prefix string) string {
	f.seq++
	return fmt.Sprintf("%s-%d", prefix, f.seq)
}

func (f *fakeRemote) ListModules(ctx context.Context, courseID string) ([]Section, error) {
	if err := f.enter(ctx, "list modules", courseID); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	return cloneSections(f.sections), nil
}

func (f *fakeRemote) CreateModule(ctx context.Context, courseID string, in contentclient.SectionInput) (Section, error) {
	if err := f.enter(ctx, "create module", courseID, in.Title); err != nil {
		return Section{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	s := Section{
		ID: f.nextID("srv-section"), CourseID: courseID, Title: in.Title, Description: in.Description,
		Order: nextSectionOrder(f.sections), Lessons: []Lesson{},
	}
	f.sections = append(f.sections, s)
	return cloneSection(s), nil
}

func (f *fakeRemote) UpdateModule(ctx context.Context, courseID, sectionID string, patch SectionPatch) (Section, error) {
	if err := f.enter(ctx, "update module", courseID, sectionID); err != nil {
		return Section{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	i := findSection(f.sections, sectionID)
	if i < 0 {
		return Section{}, &contentclient.RemoteRequestError{Op: "update module", StatusCode: http.StatusNotFound}
	}
	if patch.Title != nil {
		f.sections[i].Title = *patch.Title
	}
	if patch.Description != nil {
		f.sections[i].Description = *patch.Description
	}
	if patch.IsFreePreview != nil {
		f.sections[i].IsFreePreview = *patch.IsFreePreview
	}
	return cloneSection(f.sections[i]), nil
}

func (f *fakeRemote) DeleteModule(ctx context.Context, courseID, sectionID string) error {
	if err := f.enter(ctx, "delete module", courseID, sectionID); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if i := findSection(f.sections, sectionID); i >= 0 {
		f.sections = append(f.sections[:i], f.sections[i+1:]...)
	}
	return nil
}

func (f *fakeRemote) ReorderModules(ctx context.Context, courseID string, ids []string) error {
	if err := f.enter(ctx, "reorder modules", append([]string{courseID}, ids...)...); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	next, ok := ordering.Arrange(f.sections, sectionKey, ids)
	if !ok {
		return &contentclient.RemoteRequestError{Op: "reorder modules", StatusCode: http.StatusConflict}
	}
	for i := range next {
		next[i].Order = i
	}
	f.sections = next
	return nil
}

func (f *fakeRemote) CreateLesson(ctx context.Context, courseID, secID string, in LessonInput) (Lesson, error) {
	if err := f.enter(ctx, "create lesson", courseID, secID, in.Title, string(in.ContentType)); err != nil {
		return Lesson{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	i := findSection(f.sections, secID)
	if i < 0 {
		return Lesson{}, &contentclient.RemoteRequestError{Op: "create lesson", StatusCode: http.StatusNotFound}
	}
	l := Lesson{
		ID: f.nextID("srv-lesson"), SectionID: secID, Title: in.Title, ContentType: in.ContentType,
		VideoDurationSeconds: in.VideoDurationSeconds, IsFreePreview: in.IsFreePreview,
		Order: nextLessonOrder(f.sections[i].Lessons),
	}
	f.sections[i].Lessons = append(f.sections[i].Lessons, l)
	return l, nil
}

func (f *fakeRemote) UpdateLesson(ctx context.Context, courseID, secID, lesID string, patch LessonPatch) (Lesson, error) {
	if err := f.enter(ctx, "update lesson", courseID, secID, lesID); err != nil {
		return Lesson{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	si := findSection(f.sections, secID)
	if si < 0 {
		return Lesson{}, &contentclient.RemoteRequestError{Op: "update lesson", StatusCode: http.StatusNotFound}
	}
	li := findLesson(f.sections[si].Lessons, lesID)
	if li < 0 {
		return Lesson{}, &contentclient.RemoteRequestError{Op: "update lesson", StatusCode: http.StatusNotFound}
	}
	applyLessonPatch(&f.sections[si].Lessons[li], patch)
	return f.sections[si].Lessons[li], nil
}

func (f *fakeRemote) DeleteLesson(ctx context.Context, courseID, secID, lesID string) error {
	if err := f.enter(ctx, "delete lesson", courseID, secID, lesID); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if si := findSection(f.sections, secID); si >= 0 {
		if li := findLesson(f.sections[si].Lessons, lesID); li >= 0 {
			lessons := f.sections[si].Lessons
			f.sections[si].Lessons = append(lessons[:li], lessons[li+1:]...)
		}
	}
	return nil
}

func (f *fakeRemote) ReorderLessons(ctx context.Context, courseID, secID string, ids []string) error {
	if err := f.enter(ctx, "reorder lessons", append([]string{courseID, secID}, ids...)...); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	si := findSection(f.sections, secID)
	if si < 0 {
		return &contentclient.RemoteRequestError{Op: "reorder lessons", StatusCode: http.StatusNotFound}
	}
	next, ok := ordering.Arrange(f.sections[si].Lessons, lessonKey, ids)
	if !ok {
		return &contentclient.RemoteRequestError{Op: "reorder lessons", StatusCode: http.StatusConflict}
	}
	for i := range next {
		next[i].Order = i
	}
	f.sections[si].Lessons = next
	return nil
}
