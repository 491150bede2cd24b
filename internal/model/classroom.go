package model

import "time"

// Class is owned by exactly one teacher and holds the roster of enrolled
// student IDs. Membership is set-like: order is irrelevant and duplicates,
// while not prevented, are harmless.
type Class struct {
	ID          string    `bson:"id" json:"id"`
	Name        string    `bson:"name" json:"name"`
	Description string    `bson:"description" json:"description"`
	TeacherID   string    `bson:"teacher_id" json:"teacher_id"`
	Students    []string  `bson:"students" json:"students"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
}

// HasStudent reports whether the given user ID is on the roster.
func (c *Class) HasStudent(userID string) bool {
	for _, id := range c.Students {
		if id == userID {
			return true
		}
	}
	return false
}

// Lesson belongs to exactly one class and is authored by that class's
// teacher — TeacherID always equals the owning class's TeacherID.
// The Google* fields reference imported external content; the URL fields
// point at supplementary media.
type Lesson struct {
	ID             string    `bson:"id" json:"id"`
	Title          string    `bson:"title" json:"title"`
	Description    string    `bson:"description" json:"description"`
	ClassID        string    `bson:"class_id" json:"class_id"`
	TeacherID      string    `bson:"teacher_id" json:"teacher_id"`
	SlidesURL      string    `bson:"slides_url,omitempty" json:"slides_url,omitempty"`
	GoogleSlidesID string    `bson:"google_slides_id,omitempty" json:"google_slides_id,omitempty"`
	GoogleDocsID   string    `bson:"google_docs_id,omitempty" json:"google_docs_id,omitempty"`
	AudioURL       string    `bson:"audio_url,omitempty" json:"audio_url,omitempty"`
	VideoURL       string    `bson:"video_url,omitempty" json:"video_url,omitempty"`
	CreatedAt      time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time `bson:"updated_at" json:"updated_at"`
}

// SlideImport is a snapshot of a Google Slides presentation taken at import
// time. Content holds the raw presentation body as returned by the provider;
// it is never re-fetched or synchronised after the import.
type SlideImport struct {
	ID             string    `bson:"id" json:"id"`
	UserID         string    `bson:"user_id" json:"user_id"`
	LessonID       string    `bson:"lesson_id,omitempty" json:"lesson_id,omitempty"`
	GoogleSlidesID string    `bson:"google_slides_id" json:"google_slides_id"`
	Title          string    `bson:"title" json:"title"`
	Content        []byte    `bson:"content" json:"-"`
	ImportedAt     time.Time `bson:"imported_at" json:"imported_at"`
}
