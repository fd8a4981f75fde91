package contenttree

import (
	"context"
	"sort"

	"coursedesk/contentclient"
)

type (
	Section      = contentclient.Section
	Lesson       = contentclient.Lesson
	SectionPatch = contentclient.SectionPatch
	LessonInput  = contentclient.LessonInput
	LessonPatch  = contentclient.LessonPatch
)

// Remote is the subset of the content service the tree needs.
type Remote interface {
	ListModules(ctx context.Context, courseID string) ([]Section, error)
	CreateModule(ctx context.Context, courseID string, in contentclient.SectionInput) (Section, error)
	UpdateModule(ctx context.Context, courseID, sectionID string, patch SectionPatch) (Section, error)
	DeleteModule(ctx context.Context, courseID, sectionID string) error
	ReorderModules(ctx context.Context, courseID string, ids []string) error
	CreateLesson(ctx context.Context, courseID, sectionID string, in LessonInput) (Lesson, error)
	UpdateLesson(ctx context.Context, courseID, sectionID, lessonID string, patch LessonPatch) (Lesson, error)
	DeleteLesson(ctx context.Context, courseID, sectionID, lessonID string) error
	ReorderLessons(ctx context.Context, courseID, sectionID string, ids []string) error
}

func sectionKey(s Section) string { return s.ID }
func lessonKey(l Lesson) string   { return l.ID }

func cloneSection(s Section) Section {
	lessons := make([]Lesson, len(s.Lessons))
	copy(lessons, s.Lessons)
	s.Lessons = lessons
	return s
}

func cloneSections(in []Section) []Section {
	out := make([]Section, len(in))
	for i, s := range in {
		out[i] = cloneSection(s)
	}
	return out
}

func findSection(sections []Section, id string) int {
	for i := range sections {
		if sections[i].ID == id {
			return i
		}
	}
	return -1
}

func findLesson(lessons []Lesson, id string) int {
	for i := range lessons {
		if lessons[i].ID == id {
			return i
		}
	}
	return -1
}

// owner returns the index of the section holding lessonID, or -1.
func owner(sections []Section, lessonID string) int {
	for i := range sections {
		if findLesson(sections[i].Lessons, lessonID) >= 0 {
			return i
		}
	}
	return -1
}

func nextSectionOrder(sections []Section) int {
	next := 0
	for _, s := range sections {
		if s.Order >= next {
			next = s.Order + 1
		}
	}
	return next
}

func nextLessonOrder(lessons []Lesson) int {
	next := 0
	for _, l := range lessons {
		if l.Order >= next {
			next = l.Order + 1
		}
	}
	return next
}

// normalize sorts a server tree into display order and carries expanded
// flags over from prev by section id.
func normalize(fresh, prev []Section) []Section {
	expanded := make(map[string]bool, len(prev))
	for _, s := range prev {
		expanded[s.ID] = s.Expanded
	}

	out := cloneSections(fresh)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	for i := range out {
		out[i].Expanded = expanded[out[i].ID]
		if out[i].Lessons == nil {
			out[i].Lessons = []Lesson{}
		}
		lessons := out[i].Lessons
		sort.SliceStable(lessons, func(a, b int) bool { return lessons[a].Order < lessons[b].Order })
		for j := range lessons {
			if lessons[j].SectionID == "" {
				lessons[j].SectionID = out[i].ID
			}
		}
	}
	return out
}
