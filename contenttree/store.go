// Package contenttree keeps an editable, ordered copy of a course's sections
// and lessons in sync with the content service.
package contenttree

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"coursedesk/contentclient"
	"coursedesk/ordering"
)

// Option customises a Store.
type Option func(*Store)

// WithLogger routes reconciliation logs to l.
func WithLogger(l *log.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// Stats summarises the tree for the editor header.
type Stats struct {
	Sections             int
	Lessons              int
	PreviewLessons       int
	TotalDurationSeconds int
}

// Store is the editor-facing content tree of one course.
type Store struct {
	courseID string
	remote   Remote
	logger   *log.Logger
	coord    *Coordinator
}

// NewStore builds an empty store for courseID. Call Load before mutating.
func NewStore(courseID string, remote Remote, opts ...Option) *Store {
	s := &Store{courseID: courseID, remote: remote, logger: log.Default()}
	for _, opt := range opts {
		opt(s)
	}
	s.coord = newCoordinator(courseID, remote, s.logger)
	return s
}

// CourseID returns the id of the course the store edits.
func (s *Store) CourseID() string { return s.courseID }

// State reports the store's lifecycle phase.
func (s *Store) State() State { return s.coord.State() }

// Load fetches the full tree from the server, replacing local state.
func (s *Store) Load(ctx context.Context) error { return s.coord.Load(ctx) }

// Sections returns a copy of the tree in display order.
func (s *Store) Sections() []Section {
	var out []Section
	s.coord.read(func(sections []Section) { out = cloneSections(sections) })
	return out
}

// Section returns a copy of one section.
func (s *Store) Section(id string) (Section, bool) {
	var (
		out   Section
		found bool
	)
	s.coord.read(func(sections []Section) {
		if i := findSection(sections, id); i >= 0 {
			out, found = cloneSection(sections[i]), true
		}
	})
	return out, found
}

// Lesson returns a copy of one lesson.
func (s *Store) Lesson(sectionID, lessonID string) (Lesson, bool) {
	var (
		out   Lesson
		found bool
	)
	s.coord.read(func(sections []Section) {
		si := findSection(sections, sectionID)
		if si < 0 {
			return
		}
		if li := findLesson(sections[si].Lessons, lessonID); li >= 0 {
			out, found = sections[si].Lessons[li], true
		}
	})
	return out, found
}

// Stats counts sections, lessons, preview lessons and total video duration.
func (s *Store) Stats() Stats {
	var st Stats
	s.coord.read(func(sections []Section) {
		st.Sections = len(sections)
		for _, sec := range sections {
			st.Lessons += len(sec.Lessons)
			for _, l := range sec.Lessons {
				if l.IsFreePreview {
					st.PreviewLessons++
				}
				st.TotalDurationSeconds += l.VideoDurationSeconds
			}
		}
	})
	return st
}

// ToggleExpanded flips a section's expanded flag. It reports false for an
// unknown section.
func (s *Store) ToggleExpanded(id string) bool {
	return s.coord.local(func(sections []Section) bool {
		i := findSection(sections, id)
		if i < 0 {
			return false
		}
		sections[i].Expanded = !sections[i].Expanded
		return true
	})
}

// SetExpanded sets every section's expanded flag.
func (s *Store) SetExpanded(expanded bool) {
	s.coord.local(func(sections []Section) bool {
		for i := range sections {
			sections[i].Expanded = expanded
		}
		return true
	})
}

// AddSection appends a section. The returned section carries the server id.
func (s *Store) AddSection(ctx context.Context, title, description string) (Section, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return Section{}, &ValidationError{Field: "title", Message: "section title is required"}
	}
	description = strings.TrimSpace(description)
	tempID := uuid.NewString()

	var created Section
	err := s.coord.Run(ctx, Mutation{
		Op: "add section",
		Apply: func(sections []Section) ([]Section, error) {
			return append(sections, Section{
				ID:          tempID,
				CourseID:    s.courseID,
				Title:       title,
				Description: description,
				Order:       nextSectionOrder(sections),
				Lessons:     []Lesson{},
				Expanded:    true,
				CreatedAt:   time.Now(),
			}), nil
		},
		Persist: func(ctx context.Context) (Settle, error) {
			var err error
			created, err = s.remote.CreateModule(ctx, s.courseID, contentclient.SectionInput{Title: title, Description: description})
			if err != nil {
				return nil, err
			}
			return func(sections []Section) []Section {
				i := findSection(sections, tempID)
				if i < 0 {
					return sections
				}
				local := sections[i]
				created.Lessons = local.Lessons
				created.Expanded = local.Expanded
				for j := range created.Lessons {
					created.Lessons[j].SectionID = created.ID
				}
				sections[i] = created
				created = cloneSection(created)
				return sections
			}, nil
		},
	})
	if err != nil {
		return Section{}, err
	}
	if created.Lessons == nil {
		created.Lessons = []Lesson{}
	}
	return created, nil
}

// EditSection applies a partial update. Unknown ids and empty patches are no-ops.
func (s *Store) EditSection(ctx context.Context, id string, patch SectionPatch) error {
	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return &ValidationError{Field: "title", Message: "section title cannot be blank"}
		}
		patch.Title = &title
	}
	if patch.Description != nil {
		desc := strings.TrimSpace(*patch.Description)
		patch.Description = &desc
	}
	if patch.Empty() {
		return nil
	}

	return s.coord.Run(ctx, Mutation{
		Op: "edit section",
		Apply: func(sections []Section) ([]Section, error) {
			i := findSection(sections, id)
			if i < 0 {
				return nil, errNoChange
			}
			if patch.Title != nil {
				sections[i].Title = *patch.Title
			}
			if patch.Description != nil {
				sections[i].Description = *patch.Description
			}
			if patch.IsFreePreview != nil {
				sections[i].IsFreePreview = *patch.IsFreePreview
			}
			return sections, nil
		},
		Persist: func(ctx context.Context) (Settle, error) {
			_, err := s.remote.UpdateModule(ctx, s.courseID, id, patch)
			return nil, err
		},
	})
}

// DeleteSection removes a section and every lesson in it.
func (s *Store) DeleteSection(ctx context.Context, id string) error {
	return s.coord.Run(ctx, Mutation{
		Op: "delete section",
		Apply: func(sections []Section) ([]Section, error) {
			i := findSection(sections, id)
			if i < 0 {
				return nil, errNoChange
			}
			return append(sections[:i], sections[i+1:]...), nil
		},
		Persist: func(ctx context.Context) (Settle, error) {
			return nil, s.remote.DeleteModule(ctx, s.courseID, id)
		},
	})
}

// urls applies the same url rule the content service enforces.
var urls = validator.New()

func validateVideoURL(raw string) error {
	if raw == "" {
		return nil
	}
	if err := urls.Var(raw, "url"); err != nil {
		return &ValidationError{Field: "video_url", Message: "video url must be a valid URL"}
	}
	return nil
}

func validateLessonInput(in *LessonInput) error {
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return &ValidationError{Field: "title", Message: "lesson title is required"}
	}
	in.Description = strings.TrimSpace(in.Description)
	in.VideoURL = strings.TrimSpace(in.VideoURL)
	if err := validateVideoURL(in.VideoURL); err != nil {
		return err
	}
	if in.ContentType == "" {
		in.ContentType = contentclient.ContentVideo
	}
	if !in.ContentType.Valid() {
		return &ValidationError{Field: "content_type", Message: "unknown content type " + string(in.ContentType)}
	}
	if in.VideoDurationSeconds < 0 {
		return &ValidationError{Field: "video_duration_seconds", Message: "duration cannot be negative"}
	}
	return nil
}

func validateLessonPatch(p *LessonPatch) error {
	if p.Title != nil {
		title := strings.TrimSpace(*p.Title)
		if title == "" {
			return &ValidationError{Field: "title", Message: "lesson title cannot be blank"}
		}
		p.Title = &title
	}
	if p.VideoURL != nil {
		videoURL := strings.TrimSpace(*p.VideoURL)
		if err := validateVideoURL(videoURL); err != nil {
			return err
		}
		p.VideoURL = &videoURL
	}
	if p.ContentType != nil && !p.ContentType.Valid() {
		return &ValidationError{Field: "content_type", Message: "unknown content type " + string(*p.ContentType)}
	}
	if p.VideoDurationSeconds != nil && *p.VideoDurationSeconds < 0 {
		return &ValidationError{Field: "video_duration_seconds", Message: "duration cannot be negative"}
	}
	return nil
}

func applyLessonPatch(l *Lesson, p LessonPatch) {
	if p.Title != nil {
		l.Title = *p.Title
	}
	if p.Description != nil {
		l.Description = *p.Description
	}
	if p.ContentType != nil {
		l.ContentType = *p.ContentType
	}
	if p.VideoURL != nil {
		l.VideoURL = *p.VideoURL
	}
	if p.VideoDurationSeconds != nil {
		l.VideoDurationSeconds = *p.VideoDurationSeconds
	}
	if p.IsFreePreview != nil {
		l.IsFreePreview = *p.IsFreePreview
	}
}

// AddLesson appends a lesson to a section. Content type defaults to video.
func (s *Store) AddLesson(ctx context.Context, sectionID string, in LessonInput) (Lesson, error) {
	if err := validateLessonInput(&in); err != nil {
		return Lesson{}, err
	}
	tempID := uuid.NewString()

	var created Lesson
	err := s.coord.Run(ctx, Mutation{
		Op: "add lesson",
		Apply: func(sections []Section) ([]Section, error) {
			i := findSection(sections, sectionID)
			if i < 0 {
				return nil, ErrUnknownSection
			}
			sections[i].Lessons = append(sections[i].Lessons, Lesson{
				ID:                   tempID,
				SectionID:            sectionID,
				Title:                in.Title,
				Description:          in.Description,
				ContentType:          in.ContentType,
				VideoURL:             in.VideoURL,
				VideoDurationSeconds: in.VideoDurationSeconds,
				Order:                nextLessonOrder(sections[i].Lessons),
				IsFreePreview:        in.IsFreePreview,
				CreatedAt:            time.Now(),
			})
			return sections, nil
		},
		Persist: func(ctx context.Context) (Settle, error) {
			var err error
			created, err = s.remote.CreateLesson(ctx, s.courseID, sectionID, in)
			if err != nil {
				return nil, err
			}
			if created.SectionID == "" {
				created.SectionID = sectionID
			}
			return func(sections []Section) []Section {
				si := owner(sections, tempID)
				if si < 0 {
					return sections
				}
				li := findLesson(sections[si].Lessons, tempID)
				sections[si].Lessons[li] = created
				return sections
			}, nil
		},
	})
	if err != nil {
		return Lesson{}, err
	}
	return created, nil
}

// EditLesson applies a partial update. Unknown ids and empty patches are no-ops.
func (s *Store) EditLesson(ctx context.Context, sectionID, lessonID string, patch LessonPatch) error {
	if err := validateLessonPatch(&patch); err != nil {
		return err
	}
	if patch.Empty() {
		return nil
	}
	return s.editLesson(ctx, "edit lesson", sectionID, lessonID, func(Lesson) LessonPatch { return patch })
}

// ToggleLessonPreview flips a lesson's free-preview flag.
func (s *Store) ToggleLessonPreview(ctx context.Context, sectionID, lessonID string) error {
	return s.editLesson(ctx, "toggle lesson preview", sectionID, lessonID, func(l Lesson) LessonPatch {
		preview := !l.IsFreePreview
		return LessonPatch{IsFreePreview: &preview}
	})
}

// editLesson derives the patch from the lesson as it is when the change is
// applied, so concurrent toggles do not read a stale flag.
func (s *Store) editLesson(ctx context.Context, op, sectionID, lessonID string, derive func(Lesson) LessonPatch) error {
	var patch LessonPatch
	return s.coord.Run(ctx, Mutation{
		Op: op,
		Apply: func(sections []Section) ([]Section, error) {
			si := findSection(sections, sectionID)
			if si < 0 {
				return nil, errNoChange
			}
			li := findLesson(sections[si].Lessons, lessonID)
			if li < 0 {
				return nil, errNoChange
			}
			patch = derive(sections[si].Lessons[li])
			applyLessonPatch(&sections[si].Lessons[li], patch)
			return sections, nil
		},
		Persist: func(ctx context.Context) (Settle, error) {
			_, err := s.remote.UpdateLesson(ctx, s.courseID, sectionID, lessonID, patch)
			return nil, err
		},
	})
}

// DeleteLesson removes one lesson.
func (s *Store) DeleteLesson(ctx context.Context, sectionID, lessonID string) error {
	return s.coord.Run(ctx, Mutation{
		Op: "delete lesson",
		Apply: func(sections []Section) ([]Section, error) {
			si := findSection(sections, sectionID)
			if si < 0 {
				return nil, errNoChange
			}
			li := findLesson(sections[si].Lessons, lessonID)
			if li < 0 {
				return nil, errNoChange
			}
			lessons := sections[si].Lessons
			sections[si].Lessons = append(lessons[:li], lessons[li+1:]...)
			return sections, nil
		},
		Persist: func(ctx context.Context) (Settle, error) {
			return nil, s.remote.DeleteLesson(ctx, s.courseID, sectionID, lessonID)
		},
	})
}

// ReorderSections sets the section order to ids, which must name every
// section exactly once.
func (s *Store) ReorderSections(ctx context.Context, ids []string) error {
	proposed := append([]string(nil), ids...)
	return s.reorderSections(ctx, "reorder sections", func(current []Section) ([]string, error) {
		if !ordering.IsPermutation(ordering.IDs(current, sectionKey), proposed) {
			return nil, ErrInvalidOrder
		}
		return proposed, nil
	})
}

// MoveSection places movedID immediately before targetID.
func (s *Store) MoveSection(ctx context.Context, movedID, targetID string) error {
	return s.reorderSections(ctx, "move section", func(current []Section) ([]string, error) {
		if !ordering.Contains(current, sectionKey, movedID) || !ordering.Contains(current, sectionKey, targetID) {
			return nil, ErrInvalidOrder
		}
		next, updates := ordering.Reorder(current, sectionKey, movedID, targetID)
		if updates == nil {
			return nil, errNoChange
		}
		return ordering.IDs(next, sectionKey), nil
	})
}

func (s *Store) reorderSections(ctx context.Context, op string, plan func([]Section) ([]string, error)) error {
	var ids []string
	return s.coord.Run(ctx, Mutation{
		Op: op,
		Apply: func(sections []Section) ([]Section, error) {
			var err error
			if ids, err = plan(sections); err != nil {
				return nil, err
			}
			if ordering.SameOrder(ordering.IDs(sections, sectionKey), ids) {
				return nil, errNoChange
			}
			next, ok := ordering.Arrange(sections, sectionKey, ids)
			if !ok {
				return nil, ErrInvalidOrder
			}
			for i := range next {
				next[i].Order = i
			}
			return next, nil
		},
		Persist: func(ctx context.Context) (Settle, error) {
			return nil, s.remote.ReorderModules(ctx, s.courseID, ids)
		},
	})
}

// ReorderLessons sets one section's lesson order to ids, which must name every
// lesson of that section exactly once.
func (s *Store) ReorderLessons(ctx context.Context, sectionID string, ids []string) error {
	proposed := append([]string(nil), ids...)
	return s.reorderLessons(ctx, "reorder lessons", sectionID, func(sections []Section, si int) ([]string, error) {
		for _, id := range proposed {
			if findLesson(sections[si].Lessons, id) < 0 && owner(sections, id) >= 0 {
				return nil, ErrCrossSection
			}
		}
		if !ordering.IsPermutation(ordering.IDs(sections[si].Lessons, lessonKey), proposed) {
			return nil, ErrInvalidOrder
		}
		return proposed, nil
	})
}

// MoveLesson places movedID immediately before targetID within one section.
func (s *Store) MoveLesson(ctx context.Context, sectionID, movedID, targetID string) error {
	return s.reorderLessons(ctx, "move lesson", sectionID, func(sections []Section, si int) ([]string, error) {
		lessons := sections[si].Lessons
		for _, id := range []string{movedID, targetID} {
			if findLesson(lessons, id) >= 0 {
				continue
			}
			if owner(sections, id) >= 0 {
				return nil, ErrCrossSection
			}
			return nil, ErrInvalidOrder
		}
		next, updates := ordering.Reorder(lessons, lessonKey, movedID, targetID)
		if updates == nil {
			return nil, errNoChange
		}
		return ordering.IDs(next, lessonKey), nil
	})
}

func (s *Store) reorderLessons(ctx context.Context, op, secID string, plan func([]Section, int) ([]string, error)) error {
	var ids []string
	return s.coord.Run(ctx, Mutation{
		Op: op,
		Apply: func(sections []Section) ([]Section, error) {
			si := findSection(sections, secID)
			if si < 0 {
				return nil, ErrUnknownSection
			}
			var err error
			if ids, err = plan(sections, si); err != nil {
				return nil, err
			}
			lessons := sections[si].Lessons
			if ordering.SameOrder(ordering.IDs(lessons, lessonKey), ids) {
				return nil, errNoChange
			}
			next, ok := ordering.Arrange(lessons, lessonKey, ids)
			if !ok {
				return nil, ErrInvalidOrder
			}
			for i := range next {
				next[i].Order = i
			}
			sections[si].Lessons = next
			return sections, nil
		},
		Persist: func(ctx context.Context) (Settle, error) {
			return nil, s.remote.ReorderLessons(ctx, s.courseID, secID, ids)
		},
	})
}
