package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/peoplecore/identity-system/internal/core/domain"
)

const usersCollection = "users"

// UserRepository persists identities in a single document per user: base
// fields plus the role-specific subdocument, so insert/update/delete of base
// and payload are one atomic write.
type UserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{coll: db.Collection(usersCollection)}
}

// EnsureUserIndexes creates the unique index backing case-insensitive email
// uniqueness. Call once at startup.
func EnsureUserIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(usersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email_lower", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("ensure user indexes: %w", err)
	}
	return nil
}

type managerDoc struct {
	DepartmentID int    `bson:"department_id"`
	JobTitle     string `bson:"job_title,omitempty"`
}

type employeeDoc struct {
	JobTitle string `bson:"job_title"`
}

type userDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	FullName     string             `bson:"full_name"`
	Email        string             `bson:"email"`
	EmailLower   string             `bson:"email_lower"`
	PasswordHash string             `bson:"password_hash"`
	Role         string             `bson:"role"`
	IsActive     bool               `bson:"is_active"`
	CreatedAt    time.Time          `bson:"created_at"`
	Manager      *managerDoc        `bson:"manager,omitempty"`
	Employee     *employeeDoc       `bson:"employee,omitempty"`
}

func toDoc(u *domain.User) userDoc {
	doc := userDoc{
		FullName:     u.FullName,
		Email:        u.Email,
		EmailLower:   domain.NormalizeEmail(u.Email),
		PasswordHash: u.PasswordHash,
		Role:         string(u.Role),
		IsActive:     u.IsActive,
		CreatedAt:    u.CreatedAt,
	}
	if u.Manager != nil {
		doc.Manager = &managerDoc{DepartmentID: u.Manager.DepartmentID, JobTitle: u.Manager.JobTitle}
	}
	if u.Employee != nil {
		doc.Employee = &employeeDoc{JobTitle: u.Employee.JobTitle}
	}
	return doc
}

func fromDoc(doc userDoc) *domain.User {
	u := &domain.User{
		ID:           doc.ID.Hex(),
		FullName:     doc.FullName,
		Email:        doc.Email,
		PasswordHash: doc.PasswordHash,
		Role:         domain.Role(doc.Role),
		IsActive:     doc.IsActive,
		CreatedAt:    doc.CreatedAt.UTC(),
	}
	if doc.Manager != nil {
		u.Manager = &domain.ManagerProfile{DepartmentID: doc.Manager.DepartmentID, JobTitle: doc.Manager.JobTitle}
	}
	if doc.Employee != nil {
		u.Employee = &domain.EmployeeProfile{JobTitle: doc.Employee.JobTitle}
	}
	return u
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var doc userDoc
	filter := bson.M{"email_lower": domain.NormalizeEmail(email)}
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return fromDoc(doc), nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}
	var doc userDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return fromDoc(doc), nil
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	filter := bson.M{"email_lower": domain.NormalizeEmail(email)}
	n, err := r.coll.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("exists by email: %w", err)
	}
	return n > 0, nil
}

func (r *UserRepository) Insert(ctx context.Context, user *domain.User) (*domain.User, error) {
	res, err := r.coll.InsertOne(ctx, toDoc(user))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("insert user: unexpected inserted id type %T", res.InsertedID)
	}
	created := *user
	created.ID = oid.Hex()
	return &created, nil
}

func (r *UserRepository) Update(ctx context.Context, user *domain.User) error {
	oid, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		return domain.ErrUserNotFound
	}

	doc := toDoc(user)
	doc.ID = oid
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": oid}, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateEmail
		}
		return fmt.Errorf("update user: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return false, fmt.Errorf("delete user: %w", err)
	}
	return res.DeletedCount > 0, nil
}
