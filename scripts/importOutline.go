package main

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"coursedesk/config"
	"coursedesk/contentclient"
	"coursedesk/contenttree"
)

// importSummary counts what an outline import did
type importSummary struct {
	Sections int
	Inserted int
	Updated  int
	Skipped  int
}

// Usage: go run ./scripts/importOutline.go <outline.csv> [course-id]
// Columns: section,lesson,content_type,video_url,duration_seconds,preview
func main() {
	config.LoadConfig()

	path := "outline.csv"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	file, err := os.Open(path)
	if err != nil {
		log.Fatalf("Failed to open CSV file: %v", err)
	}
	defer file.Close()

	ctx := context.Background()
	client := contentclient.New(config.AppConfig.ContentApiURL,
		contentclient.WithTimeout(time.Duration(config.AppConfig.ContentApiTimeoutSeconds)*time.Second))

	courseID := ""
	if len(os.Args) > 2 {
		courseID = os.Args[2]
	} else {
		title := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		course, err := client.CreateCourse(ctx, title, "Imported from "+filepath.Base(path))
		if err != nil {
			log.Fatalf("Failed to create course: %v", err)
		}
		courseID = course.ID
		log.Printf("Created course %q (%s)", course.Title, course.ID)
	}

	store := contenttree.NewStore(courseID, client)
	if err := store.Load(ctx); err != nil {
		log.Fatalf("Failed to load course %s: %v", courseID, err)
	}

	summary, err := importOutline(ctx, store, file)
	if err != nil {
		log.Fatalf("Import failed: %v", err)
	}

	log.Printf("=== Import Complete ===")
	log.Printf("Sections created: %d", summary.Sections)
	log.Printf("Lessons inserted: %d", summary.Inserted)
	log.Printf("Lessons updated: %d", summary.Updated)
	log.Printf("Skipped: %d", summary.Skipped)
	log.Printf("Total processed: %d", summary.Inserted+summary.Updated+summary.Skipped)
}

// importOutline adds every row of the CSV to the loaded store. Sections and
// lessons are matched by title, so re-running an import updates in place.
func importOutline(ctx context.Context, store *contenttree.Store, r io.Reader) (importSummary, error) {
	var summary importSummary

	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return summary, err
	}
	if len(records) < 2 {
		log.Println("CSV file is empty or has only headers")
		return summary, nil
	}

	// Map header indices
	headerIndex := make(map[string]int)
	for i, h := range records[0] {
		headerIndex[strings.ToLower(strings.TrimSpace(h))] = i
	}

	sectionIDs := make(map[string]string)
	for _, s := range store.Sections() {
		sectionIDs[s.Title] = s.ID
	}

	for i, row := range records[1:] {
		sectionTitle := getField(row, headerIndex, "section")
		lessonTitle := getField(row, headerIndex, "lesson")
		if sectionTitle == "" || lessonTitle == "" {
			skipped(&summary, i, "missing section or lesson title")
			continue
		}

		sectionID, ok := sectionIDs[sectionTitle]
		if !ok {
			section, err := store.AddSection(ctx, sectionTitle, "")
			if err != nil {
				return summary, err
			}
			sectionID = section.ID
			sectionIDs[sectionTitle] = sectionID
			summary.Sections++
		}

		contentType := contentclient.ContentType(strings.ToLower(getField(row, headerIndex, "content_type")))
		videoURL := getField(row, headerIndex, "video_url")
		durationCell := getField(row, headerIndex, "duration_seconds")
		previewCell := getField(row, headerIndex, "preview")
		duration := parseInt(durationCell)
		preview := parseBool(previewCell)

		existing, found := findLessonByTitle(store, sectionID, lessonTitle)
		if !found {
			_, err = store.AddLesson(ctx, sectionID, contentclient.LessonInput{
				Title:                lessonTitle,
				ContentType:          contentType,
				VideoURL:             videoURL,
				VideoDurationSeconds: duration,
				IsFreePreview:        preview,
			})
			if err == nil {
				summary.Inserted++
			}
		} else {
			// blank cells keep what the lesson already has
			var patch contentclient.LessonPatch
			if contentType != "" {
				patch.ContentType = &contentType
			}
			if videoURL != "" {
				patch.VideoURL = &videoURL
			}
			if durationCell != "" {
				patch.VideoDurationSeconds = &duration
			}
			if previewCell != "" {
				patch.IsFreePreview = &preview
			}
			err = store.EditLesson(ctx, sectionID, existing.ID, patch)
			if err == nil {
				summary.Updated++
			}
		}

		var verr *contenttree.ValidationError
		switch {
		case err == nil:
		case errors.As(err, &verr):
			skipped(&summary, i, verr.Error())
		default:
			return summary, err
		}
	}
	return summary, nil
}

func skipped(summary *importSummary, row int, reason string) {
	summary.Skipped++
	log.Printf("Skipping row %d: %s", row+2, reason)
}

func findLessonByTitle(store *contenttree.Store, sectionID, title string) (contenttree.Lesson, bool) {
	section, ok := store.Section(sectionID)
	if !ok {
		return contenttree.Lesson{}, false
	}
	for _, l := range section.Lessons {
		if l.Title == title {
			return l, true
		}
	}
	return contenttree.Lesson{}, false
}

// getField safely gets a field from the row by header name
func getField(row []string, headerIndex map[string]int, field string) string {
	if idx, ok := headerIndex[field]; ok && idx < len(row) {
		return strings.TrimSpace(row[idx])
	}
	return ""
}

// parseInt converts string to int
func parseInt(s string) int {
	if s == "" {
		return 0
	}
	val, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return val
}

// parseBool accepts true/false, 1/0 and yes/no
func parseBool(s string) bool {
	switch strings.ToLower(s) {
	case "yes", "y":
		return true
	}
	val, err := strconv.ParseBool(s)
	if err != nil {
		return false
	}
	return val
}
