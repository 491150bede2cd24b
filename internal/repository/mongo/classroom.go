package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sakif/lessonhub/internal/apperror"
	"github.com/sakif/lessonhub/internal/model"
	"github.com/sakif/lessonhub/internal/repository"
)

var (
	_ repository.ClassRepository       = (*DB)(nil)
	_ repository.LessonRepository      = (*DB)(nil)
	_ repository.SlideImportRepository = (*DB)(nil)
)

func (db *DB) CreateClass(ctx context.Context, class *model.Class) error {
	if _, err := db.db.Collection(collClasses).InsertOne(ctx, class); err != nil {
		return fmt.Errorf("mongo: inserting class %s: %w", class.ID, err)
	}
	return nil
}

func (db *DB) GetClassByID(ctx context.Context, id string) (*model.Class, error) {
	var class model.Class
	err := db.db.Collection(collClasses).FindOne(ctx, bson.M{"id": id}).Decode(&class)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperror.NotFound("class", id)
	}
	if err != nil {
		return nil, fmt.Errorf("mongo: fetching class %s: %w", id, err)
	}
	return &class, nil
}

func (db *DB) ListClassesByTeacher(ctx context.Context, teacherID string) ([]model.Class, error) {
	return db.findClasses(ctx, bson.M{"teacher_id": teacherID})
}

// ListClassesByStudent matches on roster membership: a filter on an array
// field matches documents whose array contains the value.
func (db *DB) ListClassesByStudent(ctx context.Context, studentID string) ([]model.Class, error) {
	return db.findClasses(ctx, bson.M{"students": studentID})
}

func (db *DB) findClasses(ctx context.Context, filter bson.M) ([]model.Class, error) {
	cursor, err := db.db.Collection(collClasses).Find(ctx, filter, byNewest())
	if err != nil {
		return nil, fmt.Errorf("mongo: listing classes: %w", err)
	}
	classes := []model.Class{}
	if err := cursor.All(ctx, &classes); err != nil {
		return nil, fmt.Errorf("mongo: decoding classes: %w", err)
	}
	return classes, nil
}

// AddStudent appends to the roster. $addToSet rather than $push: duplicates
// are harmless but there is no reason to store them.
func (db *DB) AddStudent(ctx context.Context, classID, studentID string) error {
	res, err := db.db.Collection(collClasses).UpdateOne(ctx,
		bson.M{"id": classID},
		bson.M{"$addToSet": bson.M{"students": studentID}},
	)
	if err != nil {
		return fmt.Errorf("mongo: enrolling student in class %s: %w", classID, err)
	}
	if res.MatchedCount == 0 {
		return apperror.NotFound("class", classID)
	}
	return nil
}

func (db *DB) CreateLesson(ctx context.Context, lesson *model.Lesson) error {
	if _, err := db.db.Collection(collLessons).InsertOne(ctx, lesson); err != nil {
		return fmt.Errorf("mongo: inserting lesson %s: %w", lesson.ID, err)
	}
	return nil
}

func (db *DB) ListLessonsByClass(ctx context.Context, classID string) ([]model.Lesson, error) {
	return db.findLessons(ctx, bson.M{"class_id": classID})
}

// ListLessonsByClasses restricts to a pre-resolved set of class ids (a
// student's enrollments). An empty set yields an empty result, not an error.
func (db *DB) ListLessonsByClasses(ctx context.Context, classIDs []string) ([]model.Lesson, error) {
	if len(classIDs) == 0 {
		return []model.Lesson{}, nil
	}
	return db.findLessons(ctx, bson.M{"class_id": bson.M{"$in": classIDs}})
}

func (db *DB) ListLessonsByTeacher(ctx context.Context, teacherID string) ([]model.Lesson, error) {
	return db.findLessons(ctx, bson.M{"teacher_id": teacherID})
}

func (db *DB) findLessons(ctx context.Context, filter bson.M) ([]model.Lesson, error) {
	cursor, err := db.db.Collection(collLessons).Find(ctx, filter, byNewest())
	if err != nil {
		return nil, fmt.Errorf("mongo: listing lessons: %w", err)
	}
	lessons := []model.Lesson{}
	if err := cursor.All(ctx, &lessons); err != nil {
		return nil, fmt.Errorf("mongo: decoding lessons: %w", err)
	}
	return lessons, nil
}

// SetLessonSlidesRef filters on (id, teacher_id) so ownership is enforced by
// the update itself: an existing lesson owned by someone else simply does
// not match.
func (db *DB) SetLessonSlidesRef(ctx context.Context, lessonID, teacherID, slidesID string) (bool, error) {
	return db.setLessonRef(ctx, lessonID, teacherID, "google_slides_id", slidesID)
}

func (db *DB) SetLessonDocsRef(ctx context.Context, lessonID, teacherID, docsID string) (bool, error) {
	return db.setLessonRef(ctx, lessonID, teacherID, "google_docs_id", docsID)
}

func (db *DB) setLessonRef(ctx context.Context, lessonID, teacherID, field, value string) (bool, error) {
	res, err := db.db.Collection(collLessons).UpdateOne(ctx,
		bson.M{"id": lessonID, "teacher_id": teacherID},
		bson.M{"$set": bson.M{field: value}},
	)
	if err != nil {
		return false, fmt.Errorf("mongo: updating lesson %s %s: %w", lessonID, field, err)
	}
	return res.MatchedCount > 0, nil
}

func (db *DB) CreateSlideImport(ctx context.Context, imp *model.SlideImport) error {
	if _, err := db.db.Collection(collSlideImports).InsertOne(ctx, imp); err != nil {
		return fmt.Errorf("mongo: inserting slide import %s: %w", imp.ID, err)
	}
	return nil
}

func (db *DB) ListSlideImportsByUser(ctx context.Context, userID string) ([]model.SlideImport, error) {
	opts := options.Find().SetSort(bson.D{{Key: "imported_at", Value: -1}})
	cursor, err := db.db.Collection(collSlideImports).Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo: listing slide imports: %w", err)
	}
	imports := []model.SlideImport{}
	if err := cursor.All(ctx, &imports); err != nil {
		return nil, fmt.Errorf("mongo: decoding slide imports: %w", err)
	}
	return imports, nil
}
